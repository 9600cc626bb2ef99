package credit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"credit-approval-system/internal/domain/credit"
	"credit-approval-system/internal/domain/customer"
	"credit-approval-system/internal/domain/loan"
	"credit-approval-system/internal/domain/uow"
	"credit-approval-system/internal/infrastructure/metrics"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	opCheck  = "check"
	opCreate = "create"
)

type Usecase struct {
	customers customer.Repository
	loans     loan.Repository
	uow       uow.UnitOfWork
	log       *zap.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewUsecase: loan creation goes through tx; reads use the plain repos.
func NewUsecase(customers customer.Repository, loans loan.Repository, tx uow.UnitOfWork, log *zap.Logger, m *metrics.Metrics) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{customers: customers, loans: loans, uow: tx, log: log, metrics: m, now: time.Now}
}

// WithClock replaces the source of "today".
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func (u *Usecase) today() time.Time { return loan.DateOf(u.now()) }

// ScoreDetail computes the score breakdown and reports lookup and data
// errors to the caller.
func (u *Usecase) ScoreDetail(ctx context.Context, customerID uint64) (credit.ScoreBreakdown, error) {
	c, err := u.customers.GetByID(ctx, customerID)
	if err != nil {
		return credit.ScoreBreakdown{}, err
	}
	history, err := u.loans.ListByCustomerID(ctx, customerID)
	if err != nil {
		return credit.ScoreBreakdown{}, fmt.Errorf("list loans of customer %d: %w", customerID, err)
	}
	return credit.Evaluate(*c, history, u.today())
}

// Score is the fail-closed form of ScoreDetail: any error yields 0.
func (u *Usecase) Score(ctx context.Context, customerID uint64) decimal.Decimal {
	b, err := u.ScoreDetail(ctx, customerID)
	return u.absorb(customerID, b, err)
}

// absorb is the single place where scoring errors turn into a score of 0.
func (u *Usecase) absorb(customerID uint64, b credit.ScoreBreakdown, err error) decimal.Decimal {
	if err != nil {
		reason := fallbackReason(err)
		u.log.Error("credit score unavailable, falling back to 0",
			zap.Uint64("customer_id", customerID),
			zap.String("reason", reason),
			zap.Error(err))
		u.metrics.ObserveFallback(reason)
		return decimal.Zero
	}
	if b.LimitExceeded {
		u.log.Warn("customer has exceeded approved limit", zap.Uint64("customer_id", customerID))
	}
	u.metrics.ObserveScore(b.Score.InexactFloat64())
	return b.Score
}

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, customer.ErrNotFound):
		return "customer_not_found"
	case errors.Is(err, credit.ErrMalformedHistory):
		return "malformed_history"
	}
	return "repository_error"
}

// evaluate runs the affordability gate and the score bands against a
// snapshot read through loans.
func (u *Usecase) evaluate(ctx context.Context, loans loan.Repository, c *customer.Customer, in EligibilityInput) (credit.Decision, error) {
	history, err := loans.ListByCustomerID(ctx, c.ID)
	if err != nil {
		return credit.Decision{}, fmt.Errorf("list loans of customer %d: %w", c.ID, err)
	}
	today := u.today()

	currentEMIs := decimal.Zero
	for _, l := range history {
		if l.IsActive(today) {
			currentEMIs = currentEMIs.Add(l.MonthlyRepayment)
		}
	}

	requested, err := credit.ComputeInstallment(in.LoanAmount, in.InterestRate, in.Tenure)
	if err != nil {
		return credit.Decision{}, err
	}

	// the income gate wins over any score
	if !credit.Affordable(currentEMIs, requested, c.MonthlySalary) {
		u.log.Info("emis exceed half of monthly income",
			zap.Uint64("customer_id", c.ID),
			zap.String("current_emis", currentEMIs.StringFixed(2)),
			zap.String("requested_emi", requested.StringFixed(2)),
			zap.String("monthly_salary", c.MonthlySalary.StringFixed(2)))
		return credit.Rejected(in.InterestRate, credit.ReasonUnaffordable), nil
	}

	b, err := credit.Evaluate(*c, history, today)
	score := u.absorb(c.ID, b, err)

	approved, rate, reason := credit.Decide(score, in.InterestRate)
	if !approved {
		return credit.Rejected(in.InterestRate, reason), nil
	}
	installment, err := credit.ComputeInstallment(in.LoanAmount, rate, in.Tenure)
	if err != nil {
		return credit.Decision{}, err
	}
	return credit.Decision{Approved: true, CorrectedRate: rate, Installment: installment, Reason: reason}, nil
}

func (u *Usecase) CheckEligibility(ctx context.Context, in EligibilityInput) (*EligibilityDTO, error) {
	if err := credit.ValidateRequest(in.LoanAmount, in.InterestRate, in.Tenure); err != nil {
		return nil, err
	}
	c, err := u.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	d, err := u.evaluate(ctx, u.loans, c, in)
	if err != nil {
		return nil, err
	}
	u.metrics.ObserveDecision(opCheck, string(d.Reason))
	u.log.Info("eligibility checked",
		zap.Uint64("customer_id", c.ID),
		zap.Bool("approved", d.Approved),
		zap.String("corrected_rate", d.CorrectedRate.String()))

	return &EligibilityDTO{
		CustomerID:            c.ID,
		Approval:              d.Approved,
		InterestRate:          in.InterestRate,
		CorrectedInterestRate: d.CorrectedRate,
		Tenure:                in.Tenure,
		MonthlyInstallment:    d.Installment,
		Reason:                string(d.Reason),
	}, nil
}

// CreateLoan evaluates and, on approval, persists the loan in one
// transaction holding the customer's row lock.
func (u *Usecase) CreateLoan(ctx context.Context, in EligibilityInput) (*CreateLoanDTO, error) {
	if err := credit.ValidateRequest(in.LoanAmount, in.InterestRate, in.Tenure); err != nil {
		return nil, err
	}
	if u.uow == nil {
		return nil, errors.New("loan creation requires a unit of work")
	}

	var (
		out *CreateLoanDTO
		d   credit.Decision
	)
	err := u.uow.WithinCustomerTx(ctx, in.CustomerID, func(r uow.Repos, c *customer.Customer) error {
		var err error
		d, err = u.evaluate(ctx, r.Loans, c, in)
		if err != nil {
			return err
		}
		out = &CreateLoanDTO{
			CustomerID:         c.ID,
			LoanApproved:       d.Approved,
			Message:            d.Reason.Message(),
			MonthlyInstallment: d.Installment,
		}
		if !d.Approved {
			return nil
		}

		l := loan.Draft{
			CustomerID:       c.ID,
			LoanAmount:       in.LoanAmount,
			Tenure:           in.Tenure,
			InterestRate:     d.CorrectedRate,
			MonthlyRepayment: d.Installment,
			StartDate:        u.today(),
		}.Loan()
		if err := r.Loans.Create(ctx, l); err != nil {
			return fmt.Errorf("persist loan for customer %d: %w", c.ID, err)
		}
		id := l.ID
		out.LoanID = &id
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.metrics.ObserveDecision(opCreate, string(d.Reason))
	if out.LoanID != nil {
		u.metrics.IncrementLoansCreated()
		u.log.Info("loan created",
			zap.Uint64("customer_id", out.CustomerID),
			zap.Uint64("loan_id", *out.LoanID),
			zap.String("monthly_installment", out.MonthlyInstallment.StringFixed(2)))
	}
	return out, nil
}

func (u *Usecase) GetScore(ctx context.Context, customerID uint64) (*ScoreDTO, error) {
	b, err := u.ScoreDetail(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &ScoreDTO{
		CustomerID:    customerID,
		CreditScore:   b.Score,
		OnTime:        b.OnTime,
		LoanCount:     b.LoanCount,
		CurrentYear:   b.CurrentYear,
		LoanToIncome:  b.LoanToIncome,
		DebtVsLimit:   b.DebtVsLimit,
		NewCustomer:   b.NewCustomer,
		LimitExceeded: b.LimitExceeded,
	}, nil
}
