package credit

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	MinTenure = 1
	MaxTenure = 300

	// scale kept for intermediate results; only the installment is rounded
	workPrecision = 34
)

var (
	one          = decimal.NewFromInt(1)
	hundred      = decimal.NewFromInt(100)
	monthsInYear = decimal.NewFromInt(12)
	maxRate      = hundred
	halfCent     = decimal.RequireFromString("0.005")
)

// ComputeInstallment returns the fixed monthly payment that amortizes
// principal over termMonths at annualRatePercent:
//
//	r   = annualRatePercent / 12 / 100
//	emi = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate splits the principal evenly. The result is rounded half-up to
// cents.
func ComputeInstallment(principal, annualRatePercent decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if termMonths < MinTenure {
		return decimal.Zero, ErrInvalidTerm
	}
	if annualRatePercent.IsNegative() {
		return decimal.Zero, ErrInvalidRate
	}
	if !principal.IsPositive() {
		return decimal.Zero, ErrInvalidPrincipal
	}

	n := decimal.NewFromInt(int64(termMonths))
	r := annualRatePercent.DivRound(monthsInYear.Mul(hundred), workPrecision)

	var emi decimal.Decimal
	if r.IsZero() {
		emi = principal.DivRound(n, workPrecision)
	} else {
		growth := compound(r, termMonths)
		denom := growth.Sub(one)
		if !denom.IsPositive() {
			return decimal.Zero, fmt.Errorf("%w: growth factor %s at monthly rate %s", ErrComputation, growth, r)
		}
		emi = principal.Mul(r).Mul(growth).DivRound(denom, workPrecision)
	}

	emi = emi.Round(2)
	if !emi.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: installment for %s over %d months rounds to zero", ErrComputation, principal, termMonths)
	}
	return emi, nil
}

// compound returns (1+r)^n by repeated squaring.
func compound(r decimal.Decimal, n int) decimal.Decimal {
	base := one.Add(r)
	out := one
	for n > 0 {
		if n&1 == 1 {
			out = out.Mul(base).Round(workPrecision)
		}
		base = base.Mul(base).Round(workPrecision)
		n >>= 1
	}
	return out
}

// ValidateRequest checks the requested terms before any computation runs.
func ValidateRequest(amount, annualRatePercent decimal.Decimal, termMonths int) error {
	if !amount.IsPositive() {
		return ErrInvalidPrincipal
	}
	if annualRatePercent.IsNegative() || annualRatePercent.GreaterThan(maxRate) {
		return ErrInvalidRate
	}
	if termMonths < MinTenure || termMonths > MaxTenure {
		return ErrInvalidTerm
	}
	if floor := MinPrincipal(termMonths); amount.LessThan(floor) {
		return fmt.Errorf("%w: %s is below the minimum of %s for %d months",
			ErrInvalidPrincipal, amount, floor.StringFixed(2), termMonths)
	}
	return nil
}

// MinPrincipal is the smallest amount whose installment over termMonths does
// not round to 0.00. Interest only raises the installment, so the zero-rate
// split is the binding case.
func MinPrincipal(termMonths int) decimal.Decimal {
	return halfCent.Mul(decimal.NewFromInt(int64(termMonths))).RoundCeil(2)
}
