package http

import (
	"errors"
	"net/http"
	"strconv"

	"credit-approval-system/internal/domain/credit"
	"credit-approval-system/internal/domain/customer"
	"credit-approval-system/internal/domain/loan"
	ucCustomer "credit-approval-system/internal/usecase/customer"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// statusOf maps domain errors onto HTTP codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, customer.ErrNotFound), errors.Is(err, loan.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, credit.ErrInvalidPrincipal),
		errors.Is(err, credit.ErrInvalidRate),
		errors.Is(err, credit.ErrInvalidTerm),
		errors.Is(err, ucCustomer.ErrInvalidInput),
		errors.Is(err, customer.ErrPhoneTaken):
		return http.StatusBadRequest
	case errors.Is(err, credit.ErrMalformedHistory):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// writeError answers with the mapped status. Causes of 500s stay in the log.
func writeError(c echo.Context, log *zap.Logger, err error) error {
	code := statusOf(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			zap.Error(err),
		)
		msg = "internal error"
		if errors.Is(err, credit.ErrComputation) {
			msg = "installment could not be computed"
		}
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}

// bindAndValidate writes the error response itself; ok is false when the
// handler must stop.
func bindAndValidate(c echo.Context, req any) (ok bool, err error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

// pathID reads a positive integer path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}
