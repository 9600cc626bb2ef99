package http

import (
	"net/http"

	"credit-approval-system/internal/usecase/credit"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CreditHandler struct {
	uc  *credit.Usecase
	log *zap.Logger
}

func NewCreditHandler(uc *credit.Usecase, log *zap.Logger) *CreditHandler {
	return &CreditHandler{uc: uc, log: orNop(log)}
}

type eligibilityReq struct {
	CustomerID   uint64          `json:"customer_id"   validate:"required"`
	LoanAmount   decimal.Decimal `json:"loan_amount"   validate:"gt=0,dec2"`
	InterestRate decimal.Decimal `json:"interest_rate" validate:"gte=0,lte=100,dec2"`
	Tenure       int             `json:"tenure"        validate:"gte=1,lte=300"`
}

func (h *CreditHandler) CheckEligibility(c echo.Context) error {
	var req eligibilityReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.CheckEligibility(c.Request().Context(), credit.EligibilityInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// CreateLoan answers 200 for approvals and rejections alike; loan_id is null
// when rejected.
func (h *CreditHandler) CreateLoan(c echo.Context) error {
	var req eligibilityReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.CreateLoan(c.Request().Context(), credit.EligibilityInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CreditHandler) CreditScore(c echo.Context) error {
	id, ok := pathID(c, "customer_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid customer_id path param"})
	}
	dto, err := h.uc.GetScore(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
