package customer

import (
	"context"
	"errors"
	"testing"

	domain "credit-approval-system/internal/domain/customer"
	"credit-approval-system/internal/testutil/customermock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() RegisterInput {
	return RegisterInput{
		FirstName:     "Asha",
		LastName:      "Rao",
		Age:           29,
		MonthlyIncome: decimal.NewFromInt(50_000),
		PhoneNumber:   "9876543210",
	}
}

func TestRegister_OK(t *testing.T) {
	var saved *domain.Customer
	repo := &customermock.Repo{
		CreateFn: func(_ context.Context, c *domain.Customer) error {
			c.ID = 7
			saved = c
			return nil
		},
	}
	uc := NewUsecase(repo, nil)

	dto, err := uc.Register(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, uint64(7), dto.CustomerID)
	assert.Equal(t, "Asha Rao", dto.Name)
	assert.Equal(t, 29, dto.Age)
	assert.True(t, dto.ApprovedLimit.Equal(decimal.NewFromInt(1_800_000)), "limit=%s", dto.ApprovedLimit)
	assert.True(t, saved.CurrentDebt.IsZero())
	assert.Equal(t, "9876543210", saved.PhoneNumber)
}

func TestRegister_LimitRoundsToNearestLakh(t *testing.T) {
	cases := map[string]string{
		"0":      "0",
		"1000":   "0",       // 36,000 -> 0
		"2000":   "100000",  // 72,000 -> 100,000
		"37500":  "1400000", // 1,350,000 is a tie -> even
		"41666":  "1500000",
		"125000": "4500000",
	}
	for income, want := range cases {
		repo := &customermock.Repo{}
		in := validInput()
		in.MonthlyIncome = decimal.RequireFromString(income)
		dto, err := NewUsecase(repo, nil).Register(context.Background(), in)
		require.NoError(t, err, income)
		assert.True(t, dto.ApprovedLimit.Equal(decimal.RequireFromString(want)), "income %s: got %s want %s", income, dto.ApprovedLimit, want)
	}
}

func TestRegister_Validation(t *testing.T) {
	repo := &customermock.Repo{
		GetByPhoneFn: func(context.Context, string) (*domain.Customer, error) {
			t.Fatalf("repository must not be called for invalid input")
			return nil, nil
		},
	}
	uc := NewUsecase(repo, nil)

	mutations := map[string]func(*RegisterInput){
		"blank first name": func(in *RegisterInput) { in.FirstName = "  " },
		"missing last":     func(in *RegisterInput) { in.LastName = "" },
		"minor":            func(in *RegisterInput) { in.Age = 17 },
		"too old":          func(in *RegisterInput) { in.Age = 101 },
		"negative income":  func(in *RegisterInput) { in.MonthlyIncome = decimal.NewFromInt(-1) },
		"short phone":      func(in *RegisterInput) { in.PhoneNumber = "98765" },
		"letters in phone": func(in *RegisterInput) { in.PhoneNumber = "98765abcde" },
	}
	for name, mutate := range mutations {
		in := validInput()
		mutate(&in)
		_, err := uc.Register(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidInput, name)
	}
}

func TestRegister_PhoneTaken(t *testing.T) {
	repo := &customermock.Repo{
		GetByPhoneFn: func(context.Context, string) (*domain.Customer, error) {
			return &domain.Customer{ID: 1}, nil
		},
		CreateFn: func(context.Context, *domain.Customer) error {
			t.Fatalf("Create must not be called when the phone is taken")
			return nil
		},
	}
	_, err := NewUsecase(repo, nil).Register(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrPhoneTaken)
}

func TestRegister_RaceOnUniqueIndex(t *testing.T) {
	repo := &customermock.Repo{
		CreateFn: func(context.Context, *domain.Customer) error { return domain.ErrPhoneTaken },
	}
	_, err := NewUsecase(repo, nil).Register(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrPhoneTaken)
}

func TestRegister_LookupError(t *testing.T) {
	boom := errors.New("db down")
	repo := &customermock.Repo{
		GetByPhoneFn: func(context.Context, string) (*domain.Customer, error) { return nil, boom },
	}
	_, err := NewUsecase(repo, nil).Register(context.Background(), validInput())
	assert.ErrorIs(t, err, boom)
}

func TestGet(t *testing.T) {
	uc := NewUsecase(customermock.Fixed(domain.Customer{ID: 3, FirstName: "A", LastName: "B", Age: 40}), nil)

	dto, err := uc.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "A B", dto.Name)

	_, err = uc.Get(context.Background(), 4)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
