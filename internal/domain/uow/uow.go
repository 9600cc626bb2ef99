package uow

import (
	"context"

	"credit-approval-system/internal/domain/customer"
	"credit-approval-system/internal/domain/loan"
)

type Repos struct {
	Customers customer.Repository
	Loans     loan.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the customer row first, then pass it in; concurrent calls for the
	// same customer run one after another
	WithinCustomerTx(ctx context.Context, customerID uint64, fn func(r Repos, c *customer.Customer) error) error
}
