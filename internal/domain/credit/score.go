package credit

import (
	"fmt"
	"time"

	"credit-approval-system/internal/domain/customer"
	"credit-approval-system/internal/domain/loan"

	"github.com/shopspring/decimal"
)

var (
	// Score assigned to customers without any loan history.
	BaseScore = decimal.NewFromInt(10)

	WeightOnTime       = decimal.NewFromInt(25)
	WeightLoanCount    = decimal.NewFromInt(20)
	WeightCurrentYear  = decimal.NewFromInt(15)
	WeightLoanToIncome = decimal.NewFromInt(25)
	WeightDebtVsLimit  = decimal.NewFromInt(15)

	factorModerate = decimal.RequireFromString("0.7")
	factorMany     = decimal.RequireFromString("0.4")
	factorLow      = decimal.RequireFromString("0.3")
)

// ScoreBreakdown holds the points each component contributed. When the
// customer's active debt exceeds the approved limit every component is
// discarded and Score is 0.
type ScoreBreakdown struct {
	OnTime        decimal.Decimal `json:"on_time"`
	LoanCount     decimal.Decimal `json:"loan_count"`
	CurrentYear   decimal.Decimal `json:"current_year"`
	LoanToIncome  decimal.Decimal `json:"loan_to_income"`
	DebtVsLimit   decimal.Decimal `json:"debt_vs_limit"`
	NewCustomer   bool            `json:"new_customer"`
	LimitExceeded bool            `json:"limit_exceeded"`
	Score         decimal.Decimal `json:"score"`
}

// Evaluate scores a customer from their full loan history as of today.
func Evaluate(c customer.Customer, loans []loan.Loan, today time.Time) (ScoreBreakdown, error) {
	if len(loans) == 0 {
		return ScoreBreakdown{NewCustomer: true, Score: BaseScore}, nil
	}

	var (
		b           ScoreBreakdown
		totalWeight decimal.Decimal
	)

	// 1. EMIs paid on time against the months the loans ran
	paid, span := 0, 0
	for _, l := range loans {
		paid += l.EMIsPaidOnTime
		span += l.MonthsSpan()
	}
	if span <= 0 {
		return ScoreBreakdown{}, fmt.Errorf("%w: customer %d loans span %d months", ErrMalformedHistory, c.ID, span)
	}
	ratio := decimal.NewFromInt(int64(paid)).DivRound(decimal.NewFromInt(int64(span)), workPrecision)
	b.OnTime = WeightOnTime.Mul(decimal.Min(one, ratio))
	totalWeight = totalWeight.Add(WeightOnTime)

	// 2. number of loans taken
	switch n := len(loans); {
	case n <= 3:
		b.LoanCount = WeightLoanCount
	case n <= 5:
		b.LoanCount = WeightLoanCount.Mul(factorModerate)
	default:
		b.LoanCount = WeightLoanCount.Mul(factorMany)
	}
	totalWeight = totalWeight.Add(WeightLoanCount)

	// 3. loans opened this calendar year
	thisYear := 0
	for _, l := range loans {
		if l.StartDate.Year() == today.Year() {
			thisYear++
		}
	}
	switch thisYear {
	case 0:
		b.CurrentYear = WeightCurrentYear
	case 1:
		b.CurrentYear = WeightCurrentYear.Mul(factorModerate)
	default:
		b.CurrentYear = WeightCurrentYear.Mul(factorLow)
	}
	totalWeight = totalWeight.Add(WeightCurrentYear)

	// 4. approved volume against yearly income; no income is the worst case
	volume := decimal.Zero
	for _, l := range loans {
		volume = volume.Add(l.LoanAmount)
	}
	yearly := c.MonthlySalary.Mul(monthsInYear)
	switch {
	case yearly.IsPositive() && volume.LessThanOrEqual(yearly):
		b.LoanToIncome = WeightLoanToIncome
	case yearly.IsPositive() && volume.LessThanOrEqual(yearly.Mul(decimal.NewFromInt(2))):
		b.LoanToIncome = WeightLoanToIncome.Mul(factorModerate)
	default:
		b.LoanToIncome = WeightLoanToIncome.Mul(factorLow)
	}
	totalWeight = totalWeight.Add(WeightLoanToIncome)

	// 5. active debt against the approved limit
	debt := decimal.Zero
	for _, l := range loans {
		if l.IsActive(today) {
			debt = debt.Add(l.LoanAmount)
		}
	}
	totalWeight = totalWeight.Add(WeightDebtVsLimit)
	if debt.GreaterThan(c.ApprovedLimit) {
		return ScoreBreakdown{LimitExceeded: true, Score: decimal.Zero}, nil
	}
	b.DebtVsLimit = WeightDebtVsLimit

	acc := b.OnTime.Add(b.LoanCount).Add(b.CurrentYear).Add(b.LoanToIncome).Add(b.DebtVsLimit)
	b.Score = decimal.Min(hundred, acc.DivRound(totalWeight, workPrecision).Mul(hundred))
	return b, nil
}
