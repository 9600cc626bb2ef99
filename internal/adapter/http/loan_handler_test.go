package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"testing"
	"time"

	"credit-approval-system/internal/domain/customer"
	domain "credit-approval-system/internal/domain/loan"
	"credit-approval-system/internal/testutil/customermock"
	loanmock "credit-approval-system/internal/testutil/loanmock"
	uc "credit-approval-system/internal/usecase/loan"

	"github.com/shopspring/decimal"
)

func newLoanHandler() *LoanHandler {
	start := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	l := domain.Loan{
		ID: 5, CustomerID: 1, LoanAmount: decimal.NewFromInt(60_000), Tenure: 12,
		InterestRate: decimal.NewFromInt(14), MonthlyRepayment: decimal.RequireFromString("5387.24"),
		StartDate: start, EndDate: domain.AddMonths(start, 12),
	}
	repo := &loanmock.Repo{
		GetByIDFn: func(_ context.Context, id uint64) (*domain.Loan, error) {
			if id != l.ID {
				return nil, domain.ErrNotFound
			}
			out := l
			return &out, nil
		},
		ListByCustomerIDFn: func(context.Context, uint64) ([]domain.Loan, error) {
			return []domain.Loan{l}, nil
		},
	}
	customers := customermock.Fixed(customer.Customer{
		ID: 1, FirstName: "Meera", LastName: "Nair", Age: 30, PhoneNumber: "9000000001",
	})
	return NewLoanHandler(uc.NewUsecase(repo, customers).WithClock(clock), nil)
}

func TestViewLoan_Success(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler()

	c, rec := newContext(e, stdhttp.MethodGet, "/view-loan/5", nil, "loan_id", "5")
	if err := h.ViewLoan(c); err != nil {
		t.Fatalf("ViewLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got uc.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.LoanID != 5 || got.Customer.FirstName != "Meera" || got.Tenure != 12 {
		t.Fatalf("unexpected dto: %+v", got)
	}
	if !got.MonthlyInstallment.Equal(decimal.RequireFromString("5387.24")) {
		t.Fatalf("installment = %s", got.MonthlyInstallment)
	}
}

func TestViewLoan_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler()

	c, rec := newContext(e, stdhttp.MethodGet, "/view-loan/6", nil, "loan_id", "6")
	if err := h.ViewLoan(c); err != nil {
		t.Fatalf("ViewLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if er.Error != domain.ErrNotFound.Error() {
		t.Fatalf("error = %q", er.Error)
	}
}

func TestViewLoan_BadID(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler()

	c, rec := newContext(e, stdhttp.MethodGet, "/view-loan/x", nil, "loan_id", "x")
	if err := h.ViewLoan(c); err != nil {
		t.Fatalf("ViewLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestViewLoans(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler()

	c, rec := newContext(e, stdhttp.MethodGet, "/view-loans/1", nil, "customer_id", "1")
	if err := h.ViewLoans(c); err != nil {
		t.Fatalf("ViewLoans error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got []uc.LoanItemDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	// started 2026-04-15, six months elapsed by 2026-10-15
	if len(got) != 1 || got[0].LoanID != 5 || got[0].RepaymentsLeft != 6 {
		t.Fatalf("unexpected items: %+v", got)
	}
}

func TestViewLoans_UnknownCustomer(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler()

	c, rec := newContext(e, stdhttp.MethodGet, "/view-loans/9", nil, "customer_id", "9")
	if err := h.ViewLoans(c); err != nil {
		t.Fatalf("ViewLoans error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
