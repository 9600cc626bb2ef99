package credit

import "github.com/shopspring/decimal"

type Reason string

const (
	ReasonApproved       Reason = "approved"
	ReasonUnaffordable   Reason = "emi_exceeds_income_share"
	ReasonScoreTooLow    Reason = "credit_score_too_low"
	ReasonRateBelowFloor Reason = "rate_below_band_floor"
)

// Message is the customer-facing text for a decision reason.
func (r Reason) Message() string {
	switch r {
	case ReasonApproved:
		return "Loan approved successfully"
	case ReasonUnaffordable:
		return "Loan not approved: total EMIs would exceed 50% of monthly income"
	case ReasonScoreTooLow:
		return "Loan not approved: credit score too low"
	case ReasonRateBelowFloor:
		return "Loan not approved: interest rate below the minimum for this credit score"
	}
	return "Loan not approved based on eligibility criteria"
}

type Decision struct {
	Approved      bool
	CorrectedRate decimal.Decimal
	// Zero unless approved.
	Installment decimal.Decimal
	Reason      Reason
}

// Rejected builds a rejection that leaves the requested rate untouched.
func Rejected(requestedRate decimal.Decimal, reason Reason) Decision {
	return Decision{Approved: false, CorrectedRate: requestedRate, Installment: decimal.Zero, Reason: reason}
}

var (
	maxEMIShare = decimal.RequireFromString("0.5")

	bandHigh = decimal.NewFromInt(50)
	bandMid  = decimal.NewFromInt(30)
	bandLow  = decimal.NewFromInt(10)

	floorMid = decimal.NewFromInt(12)
	floorLow = decimal.NewFromInt(16)
)

// Affordable reports whether existing plus requested EMIs stay within half
// of the monthly income.
func Affordable(currentEMIs, requested, monthlyIncome decimal.Decimal) bool {
	return !currentEMIs.Add(requested).GreaterThan(monthlyIncome.Mul(maxEMIShare))
}

// Decide applies the score bands to a requested rate:
//
//	score > 50        approve at the requested rate
//	30 < score <= 50  approve only if rate >= 12
//	10 < score <= 30  approve only if rate >= 16
//	score <= 10       reject
//
// A rate below the band floor is rejected, never raised.
func Decide(score, requestedRate decimal.Decimal) (bool, decimal.Decimal, Reason) {
	var floor decimal.Decimal
	switch {
	case score.GreaterThan(bandHigh):
		return true, requestedRate, ReasonApproved
	case score.GreaterThan(bandMid):
		floor = floorMid
	case score.GreaterThan(bandLow):
		floor = floorLow
	default:
		return false, requestedRate, ReasonScoreTooLow
	}
	if requestedRate.LessThan(floor) {
		return false, requestedRate, ReasonRateBelowFloor
	}
	return true, decimal.Max(requestedRate, floor), ReasonApproved
}
