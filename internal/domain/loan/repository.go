package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	// All loans of the customer, order unspecified.
	ListByCustomerID(ctx context.Context, customerID uint64) ([]Loan, error)

	// Insert or overwrite by primary key. Used by bulk ingestion only.
	Upsert(ctx context.Context, l *Loan) (created bool, err error)
}
