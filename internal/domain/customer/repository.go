package customer

import "context"

type Repository interface {
	Create(ctx context.Context, c *Customer) error
	Save(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id uint64) (*Customer, error)
	GetByPhone(ctx context.Context, phone string) (*Customer, error)

	// Locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Customer, error)
}
