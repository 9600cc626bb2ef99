package http

import (
	"net/http"

	"credit-approval-system/internal/usecase/customer"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	uc  *customer.Usecase
	log *zap.Logger
}

func NewCustomerHandler(uc *customer.Usecase, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{uc: uc, log: orNop(log)}
}

type registerReq struct {
	FirstName     string          `json:"first_name"     validate:"required,max=50"`
	LastName      string          `json:"last_name"      validate:"required,max=50"`
	Age           int             `json:"age"            validate:"gte=18,lte=100"`
	MonthlyIncome decimal.Decimal `json:"monthly_income" validate:"gte=0,dec2"`
	PhoneNumber   string          `json:"phone_number"   validate:"required,phone10"`
}

func (h *CustomerHandler) Register(c echo.Context) error {
	var req registerReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Register(c.Request().Context(), customer.RegisterInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
