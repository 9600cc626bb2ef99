package mysql

import (
	"context"
	"errors"

	loanDomain "credit-approval-system/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&out).Error; err != nil {
		return nil, notFound(err, loanDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *LoanRepository) ListByCustomerID(ctx context.Context, customerID uint64) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

// Upsert keeps the original created_at when the loan id already exists.
func (r *LoanRepository) Upsert(ctx context.Context, l *loanDomain.Loan) (bool, error) {
	db := r.db.WithContext(ctx)
	var existing loanDomain.Loan
	err := db.Select("id", "created_at").Where("id = ?", l.ID).Take(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return true, db.Create(l).Error
	case err != nil:
		return false, err
	}
	l.CreatedAt = existing.CreatedAt
	return false, db.Save(l).Error
}
