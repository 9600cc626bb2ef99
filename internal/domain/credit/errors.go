package credit

import "errors"

var (
	ErrInvalidTerm      = errors.New("tenure must be between 1 and 300 months")
	ErrInvalidRate      = errors.New("interest rate must be between 0 and 100")
	ErrInvalidPrincipal = errors.New("invalid loan amount")

	// Raised when arithmetic on valid input produces an unusable result.
	ErrComputation = errors.New("installment computation failed")

	ErrMalformedHistory = errors.New("malformed loan history")
)
