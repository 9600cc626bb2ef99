package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"credit-approval-system/internal/domain/customer"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrInvalidInput = errors.New("invalid customer data")

const (
	minAge      = 18
	maxAge      = 100
	phoneDigits = 10
)

type Usecase struct {
	repo customer.Repository
	log  *zap.Logger
}

func NewUsecase(r customer.Repository, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, log: log}
}

func validPhone(p string) bool {
	if len(p) != phoneDigits {
		return false
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validate(in RegisterInput) error {
	switch {
	case strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "":
		return fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	case in.Age < minAge || in.Age > maxAge:
		return fmt.Errorf("%w: age must be between %d and %d", ErrInvalidInput, minAge, maxAge)
	case in.MonthlyIncome.IsNegative():
		return fmt.Errorf("%w: monthly income must not be negative", ErrInvalidInput)
	case !validPhone(in.PhoneNumber):
		return fmt.Errorf("%w: phone number must have %d digits", ErrInvalidInput, phoneDigits)
	}
	return nil
}

// Register stores a new customer with an approved limit derived from income.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*CustomerDTO, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	// the unique index catches races; this gives the common case a clean error
	_, err := u.repo.GetByPhone(ctx, in.PhoneNumber)
	switch {
	case err == nil:
		return nil, customer.ErrPhoneTaken
	case !errors.Is(err, customer.ErrNotFound):
		return nil, err
	}

	c := &customer.Customer{
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		Age:           in.Age,
		PhoneNumber:   in.PhoneNumber,
		MonthlySalary: in.MonthlyIncome.Round(2),
		ApprovedLimit: customer.ApprovedLimitFor(in.MonthlyIncome),
		CurrentDebt:   decimal.Zero,
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	u.log.Info("customer registered",
		zap.Uint64("customer_id", c.ID),
		zap.String("approved_limit", c.ApprovedLimit.String()))
	return toDTO(c), nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*CustomerDTO, error) {
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(c), nil
}

func toDTO(c *customer.Customer) *CustomerDTO {
	return &CustomerDTO{
		CustomerID:    c.ID,
		Name:          c.FullName(),
		Age:           c.Age,
		MonthlyIncome: c.MonthlySalary,
		ApprovedLimit: c.ApprovedLimit,
		PhoneNumber:   c.PhoneNumber,
	}
}
