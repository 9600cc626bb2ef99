package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("loan not found")

// Table: loans
type Loan struct {
	ID           uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"loan_id"`
	CustomerID   uint64          `gorm:"column:customer_id;not null;index:idx_loans_customer" json:"customer_id"`
	LoanAmount   decimal.Decimal `gorm:"column:loan_amount;type:decimal(18,2);not null" json:"loan_amount"`
	Tenure       int             `gorm:"column:tenure;not null" json:"tenure"`
	InterestRate decimal.Decimal `gorm:"column:interest_rate;type:decimal(6,2);not null" json:"interest_rate"`
	// Computed once when the loan is created.
	MonthlyRepayment decimal.Decimal `gorm:"column:monthly_repayment;type:decimal(18,2);not null" json:"monthly_repayment"`
	// Maintained by repayment tracking, read-only here.
	EMIsPaidOnTime int       `gorm:"column:emis_paid_on_time;not null;default:0" json:"emis_paid_on_time"`
	StartDate      time.Time `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate        time.Time `gorm:"column:end_date;type:date;not null" json:"end_date"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// IsActive reports whether the loan has not ended as of today.
func (l Loan) IsActive(today time.Time) bool {
	return !DateOf(l.EndDate).Before(DateOf(today))
}

// MonthsSpan is the calendar month distance between start and end,
// ignoring the day of month.
func (l Loan) MonthsSpan() int { return MonthsBetween(l.StartDate, l.EndDate) }

// RepaymentsLeft counts the installments still due as of today.
func (l Loan) RepaymentsLeft(today time.Time) int {
	if !DateOf(l.EndDate).After(DateOf(today)) {
		return 0
	}
	left := l.Tenure - MonthsBetween(l.StartDate, today)
	if left < 0 {
		return 0
	}
	return left
}

// Draft carries the fields of a loan that does not exist yet.
type Draft struct {
	CustomerID       uint64
	LoanAmount       decimal.Decimal
	Tenure           int
	InterestRate     decimal.Decimal
	MonthlyRepayment decimal.Decimal
	StartDate        time.Time
}

func (d Draft) Loan() *Loan {
	start := DateOf(d.StartDate)
	return &Loan{
		CustomerID:       d.CustomerID,
		LoanAmount:       d.LoanAmount,
		Tenure:           d.Tenure,
		InterestRate:     d.InterestRate,
		MonthlyRepayment: d.MonthlyRepayment,
		EMIsPaidOnTime:   0,
		StartDate:        start,
		EndDate:          AddMonths(start, d.Tenure),
	}
}
