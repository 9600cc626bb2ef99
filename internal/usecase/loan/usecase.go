package loan

import (
	"context"
	"fmt"
	"time"

	"credit-approval-system/internal/domain/customer"
	"credit-approval-system/internal/domain/loan"
)

type Usecase struct {
	repo      loan.Repository
	customers customer.Repository
	now       func() time.Time
}

func NewUsecase(r loan.Repository, customers customer.Repository) *Usecase {
	return &Usecase{repo: r, customers: customers, now: time.Now}
}

// WithClock replaces the source of "today" used for repayments_left.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func (u *Usecase) Get(ctx context.Context, loanID uint64) (*LoanDTO, error) {
	l, err := u.repo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	c, err := u.customers.GetByID(ctx, l.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("owner of loan %d: %w", l.ID, err)
	}
	return &LoanDTO{
		LoanID: l.ID,
		Customer: CustomerSummary{
			ID:          c.ID,
			FirstName:   c.FirstName,
			LastName:    c.LastName,
			PhoneNumber: c.PhoneNumber,
			Age:         c.Age,
		},
		LoanAmount:         l.LoanAmount,
		InterestRate:       l.InterestRate,
		MonthlyInstallment: l.MonthlyRepayment,
		Tenure:             l.Tenure,
	}, nil
}

// ListByCustomer returns every loan of the customer, oldest first.
func (u *Usecase) ListByCustomer(ctx context.Context, customerID uint64) ([]LoanItemDTO, error) {
	if _, err := u.customers.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	loans, err := u.repo.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	today := loan.DateOf(u.now())
	out := make([]LoanItemDTO, 0, len(loans))
	for _, l := range loans {
		out = append(out, LoanItemDTO{
			LoanID:             l.ID,
			LoanAmount:         l.LoanAmount,
			InterestRate:       l.InterestRate,
			MonthlyInstallment: l.MonthlyRepayment,
			RepaymentsLeft:     l.RepaymentsLeft(today),
		})
	}
	return out, nil
}
