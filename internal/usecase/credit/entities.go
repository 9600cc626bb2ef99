package credit

import "github.com/shopspring/decimal"

type EligibilityInput struct {
	CustomerID   uint64
	LoanAmount   decimal.Decimal
	InterestRate decimal.Decimal
	Tenure       int
}

type EligibilityDTO struct {
	CustomerID            uint64          `json:"customer_id"`
	Approval              bool            `json:"approval"`
	InterestRate          decimal.Decimal `json:"interest_rate"`
	CorrectedInterestRate decimal.Decimal `json:"corrected_interest_rate"`
	Tenure                int             `json:"tenure"`
	MonthlyInstallment    decimal.Decimal `json:"monthly_installment"`
	Reason                string          `json:"reason"`
}

type CreateLoanDTO struct {
	LoanID             *uint64         `json:"loan_id"` // null when rejected
	CustomerID         uint64          `json:"customer_id"`
	LoanApproved       bool            `json:"loan_approved"`
	Message            string          `json:"message"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
}

type ScoreDTO struct {
	CustomerID    uint64          `json:"customer_id"`
	CreditScore   decimal.Decimal `json:"credit_score"`
	OnTime        decimal.Decimal `json:"on_time"`
	LoanCount     decimal.Decimal `json:"loan_count"`
	CurrentYear   decimal.Decimal `json:"current_year"`
	LoanToIncome  decimal.Decimal `json:"loan_to_income"`
	DebtVsLimit   decimal.Decimal `json:"debt_vs_limit"`
	NewCustomer   bool            `json:"new_customer"`
	LimitExceeded bool            `json:"limit_exceeded"`
}
