package customer

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound   = errors.New("customer not found")
	ErrPhoneTaken = errors.New("phone number already registered")
)

// Table: customers
type Customer struct {
	ID            uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"customer_id"`
	FirstName     string          `gorm:"column:first_name;size:50;not null" json:"first_name"`
	LastName      string          `gorm:"column:last_name;size:50;not null" json:"last_name"`
	Age           int             `gorm:"column:age;not null;default:25" json:"age"`
	PhoneNumber   string          `gorm:"column:phone_number;size:10;not null;uniqueIndex:ux_customers_phone" json:"phone_number"`
	MonthlySalary decimal.Decimal `gorm:"column:monthly_salary;type:decimal(18,2);not null" json:"monthly_salary"`
	// Fixed at registration; never recomputed.
	ApprovedLimit decimal.Decimal `gorm:"column:approved_limit;type:decimal(18,2);not null" json:"approved_limit"`
	CurrentDebt   decimal.Decimal `gorm:"column:current_debt;type:decimal(18,2);not null;default:0" json:"current_debt"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Customer) TableName() string { return "customers" }

func (c Customer) FullName() string { return c.FirstName + " " + c.LastName }

var (
	limitMultiplier = decimal.NewFromInt(36)
	limitStep       = decimal.NewFromInt(100_000)
)

// ApprovedLimitFor returns 36x the monthly income rounded to the nearest
// 100,000. Ties round to even.
func ApprovedLimitFor(monthlyIncome decimal.Decimal) decimal.Decimal {
	return monthlyIncome.Mul(limitMultiplier).Div(limitStep).RoundBank(0).Mul(limitStep)
}
