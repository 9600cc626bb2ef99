package loanmock

import (
	"context"

	domain "credit-approval-system/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, l *domain.Loan) error
	GetByIDFn          func(ctx context.Context, id uint64) (*domain.Loan, error)
	ListByCustomerIDFn func(ctx context.Context, customerID uint64) ([]domain.Loan, error)
	UpsertFn           func(ctx context.Context, l *domain.Loan) (bool, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

// no func → empty history
func (m *Repo) ListByCustomerID(ctx context.Context, customerID uint64) ([]domain.Loan, error) {
	if m.ListByCustomerIDFn != nil {
		return m.ListByCustomerIDFn(ctx, customerID)
	}
	return nil, nil
}

func (m *Repo) Upsert(ctx context.Context, l *domain.Loan) (bool, error) {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, l)
	}
	return true, nil
}
