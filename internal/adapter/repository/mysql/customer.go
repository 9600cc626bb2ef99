package mysql

import (
	"context"
	"errors"

	customerDomain "credit-approval-system/internal/domain/customer"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerRepository struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) *CustomerRepository { return &CustomerRepository{db: db} }

func (r *CustomerRepository) Create(ctx context.Context, c *customerDomain.Customer) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return customerDomain.ErrPhoneTaken
	}
	return err
}

func (r *CustomerRepository) Save(ctx context.Context, c *customerDomain.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uint64) (*customerDomain.Customer, error) {
	var out customerDomain.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&out).Error; err != nil {
		return nil, notFound(err, customerDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *CustomerRepository) GetByPhone(ctx context.Context, phone string) (*customerDomain.Customer, error) {
	var out customerDomain.Customer
	if err := r.db.WithContext(ctx).Where("phone_number = ?", phone).Take(&out).Error; err != nil {
		return nil, notFound(err, customerDomain.ErrNotFound)
	}
	return &out, nil
}

// GetByIDForUpdate issues SELECT ... FOR UPDATE; only meaningful inside a tx.
func (r *CustomerRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*customerDomain.Customer, error) {
	var out customerDomain.Customer
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&out).Error
	if err != nil {
		return nil, notFound(err, customerDomain.ErrNotFound)
	}
	return &out, nil
}
