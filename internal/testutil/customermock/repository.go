package customermock

import (
	"context"

	domain "credit-approval-system/internal/domain/customer"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Lookups without a func report ErrNotFound.
type Repo struct {
	CreateFn           func(ctx context.Context, c *domain.Customer) error
	SaveFn             func(ctx context.Context, c *domain.Customer) error
	GetByIDFn          func(ctx context.Context, id uint64) (*domain.Customer, error)
	GetByPhoneFn       func(ctx context.Context, phone string) (*domain.Customer, error)
	GetByIDForUpdateFn func(ctx context.Context, id uint64) (*domain.Customer, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Customer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, c *domain.Customer) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Customer, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	if m.GetByPhoneFn != nil {
		return m.GetByPhoneFn(ctx, phone)
	}
	return nil, domain.ErrNotFound
}

// Falls back to GetByIDFn so a single stub serves both lookups.
func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Customer, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return m.GetByID(ctx, id)
}

// Fixed returns a Repo whose lookups by id always yield a copy of c.
func Fixed(c domain.Customer) *Repo {
	get := func(_ context.Context, id uint64) (*domain.Customer, error) {
		if id != c.ID {
			return nil, domain.ErrNotFound
		}
		out := c
		return &out, nil
	}
	return &Repo{GetByIDFn: get}
}
