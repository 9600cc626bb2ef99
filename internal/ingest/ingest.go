// Package ingest loads customer and loan workbooks into the database.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"credit-approval-system/internal/domain/customer"
	"credit-approval-system/internal/domain/loan"
	"credit-approval-system/internal/domain/uow"

	"go.uber.org/zap"
)

type Result struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

type Ingester struct {
	tx  uow.UnitOfWork
	log *zap.Logger
}

func New(tx uow.UnitOfWork, log *zap.Logger) *Ingester {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ingester{tx: tx, log: log}
}

type customerCols struct {
	id, first, last, age, phone, salary, limit, debt int
}

func customerColumns(s *sheet) (customerCols, error) {
	var (
		c   customerCols
		err error
	)
	opt := func(names ...string) int {
		if i, ok := s.column(names...); ok {
			return i
		}
		return -1
	}
	c.id = opt("Customer ID")
	c.age = opt("Age")
	c.limit = opt("Approved Limit")
	c.debt = opt("Current Debt")
	if c.first, err = s.require("First Name"); err != nil {
		return c, err
	}
	if c.last, err = s.require("Last Name"); err != nil {
		return c, err
	}
	if c.phone, err = s.require("Phone Number"); err != nil {
		return c, err
	}
	if c.salary, err = s.require("Monthly Salary", "Monthly Income"); err != nil {
		return c, err
	}
	return c, nil
}

func parseCustomer(r row, c customerCols) (*customer.Customer, error) {
	out := &customer.Customer{
		FirstName:   r.cell(c.first),
		LastName:    r.cell(c.last),
		PhoneNumber: r.digits(c.phone),
	}
	if out.FirstName == "" || out.PhoneNumber == "" {
		return nil, errors.New("first name and phone number are required")
	}
	var err error
	if out.MonthlySalary, err = r.decimal(c.salary); err != nil {
		return nil, fmt.Errorf("monthly salary: %w", err)
	}
	if r.cell(c.limit) == "" {
		out.ApprovedLimit = customer.ApprovedLimitFor(out.MonthlySalary)
	} else if out.ApprovedLimit, err = r.decimal(c.limit); err != nil {
		return nil, fmt.Errorf("approved limit: %w", err)
	}
	if out.CurrentDebt, err = r.optDecimal(c.debt); err != nil {
		return nil, fmt.Errorf("current debt: %w", err)
	}
	if r.cell(c.age) != "" {
		age, err := r.integer(c.age)
		if err != nil {
			return nil, fmt.Errorf("age: %w", err)
		}
		out.Age = int(age)
	}
	if r.cell(c.id) != "" {
		id, err := r.integer(c.id)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("customer id %q is invalid", r.cell(c.id))
		}
		out.ID = uint64(id)
	}
	return out, nil
}

// Customers upserts customers by phone number. A new customer keeps the
// sheet's Customer ID when that id is still free, so the loan sheet can
// refer to it.
func (in *Ingester) Customers(ctx context.Context, src io.Reader) (Result, error) {
	var res Result
	s, err := readSheet(src)
	if err != nil {
		return res, err
	}
	cols, err := customerColumns(s)
	if err != nil {
		return res, err
	}

	err = in.tx.WithinTx(ctx, func(repos uow.Repos) error {
		res = Result{}
		for n, raw := range s.rows {
			r := row(raw)
			if r.blank() {
				continue
			}
			line := n + 2 // 1-based, after the header
			c, err := parseCustomer(r, cols)
			if err != nil {
				in.log.Warn("customer row skipped", zap.Int("row", line), zap.Error(err))
				res.Skipped++
				continue
			}

			existing, err := repos.Customers.GetByPhone(ctx, c.PhoneNumber)
			switch {
			case err == nil:
				existing.FirstName, existing.LastName = c.FirstName, c.LastName
				existing.MonthlySalary, existing.ApprovedLimit, existing.CurrentDebt = c.MonthlySalary, c.ApprovedLimit, c.CurrentDebt
				if c.Age > 0 {
					existing.Age = c.Age
				}
				if err := repos.Customers.Save(ctx, existing); err != nil {
					return fmt.Errorf("row %d: update customer %d: %w", line, existing.ID, err)
				}
				res.Updated++
				continue
			case !errors.Is(err, customer.ErrNotFound):
				return fmt.Errorf("row %d: %w", line, err)
			}

			if c.ID != 0 {
				if _, err := repos.Customers.GetByID(ctx, c.ID); err == nil {
					in.log.Warn("customer id taken by another phone, assigning a new one",
						zap.Int("row", line), zap.Uint64("customer_id", c.ID))
					c.ID = 0
				} else if !errors.Is(err, customer.ErrNotFound) {
					return fmt.Errorf("row %d: %w", line, err)
				}
			}
			if c.Age == 0 {
				c.Age = defaultAge
			}
			if err := repos.Customers.Create(ctx, c); err != nil {
				return fmt.Errorf("row %d: create customer: %w", line, err)
			}
			res.Created++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	in.log.Info("customer ingestion completed",
		zap.Int("created", res.Created), zap.Int("updated", res.Updated), zap.Int("skipped", res.Skipped))
	return res, nil
}

// matches the column default of customers.age
const defaultAge = 25

type loanCols struct {
	customer, id, amount, tenure, rate, emi, paid, start, end int
}

func loanColumns(s *sheet) (loanCols, error) {
	var (
		c   loanCols
		err error
	)
	for _, f := range []struct {
		dst   *int
		names []string
	}{
		{&c.customer, []string{"Customer ID"}},
		{&c.id, []string{"Loan ID"}},
		{&c.amount, []string{"Loan Amount"}},
		{&c.tenure, []string{"Tenure"}},
		{&c.rate, []string{"Interest Rate"}},
		{&c.emi, []string{"Monthly payment", "Monthly Repayment"}},
		{&c.paid, []string{"EMIs paid on Time"}},
		{&c.start, []string{"Date of Approval", "Start Date"}},
		{&c.end, []string{"End Date"}},
	} {
		if *f.dst, err = s.require(f.names...); err != nil {
			return c, err
		}
	}
	return c, nil
}

func parseLoan(r row, c loanCols) (*loan.Loan, error) {
	var (
		l   loan.Loan
		err error
		n   int64
	)
	if n, err = r.integer(c.id); err != nil || n <= 0 {
		return nil, fmt.Errorf("loan id %q is invalid", r.cell(c.id))
	}
	l.ID = uint64(n)
	if n, err = r.integer(c.customer); err != nil || n <= 0 {
		return nil, fmt.Errorf("customer id %q is invalid", r.cell(c.customer))
	}
	l.CustomerID = uint64(n)
	if l.LoanAmount, err = r.decimal(c.amount); err != nil {
		return nil, fmt.Errorf("loan amount: %w", err)
	}
	if n, err = r.integer(c.tenure); err != nil {
		return nil, fmt.Errorf("tenure: %w", err)
	}
	l.Tenure = int(n)
	if l.InterestRate, err = r.decimal(c.rate); err != nil {
		return nil, fmt.Errorf("interest rate: %w", err)
	}
	if l.MonthlyRepayment, err = r.decimal(c.emi); err != nil {
		return nil, fmt.Errorf("monthly payment: %w", err)
	}
	if n, err = r.integer(c.paid); err != nil {
		return nil, fmt.Errorf("emis paid on time: %w", err)
	}
	l.EMIsPaidOnTime = int(n)
	start, err := r.date(c.start)
	if err != nil {
		return nil, fmt.Errorf("date of approval: %w", err)
	}
	end, err := r.date(c.end)
	if err != nil {
		return nil, fmt.Errorf("end date: %w", err)
	}
	l.StartDate, l.EndDate = loan.DateOf(start), loan.DateOf(end)
	return &l, nil
}

// Loans upserts loans by loan id. Rows whose customer does not exist are
// skipped with a warning.
func (in *Ingester) Loans(ctx context.Context, src io.Reader) (Result, error) {
	var res Result
	s, err := readSheet(src)
	if err != nil {
		return res, err
	}
	cols, err := loanColumns(s)
	if err != nil {
		return res, err
	}

	err = in.tx.WithinTx(ctx, func(repos uow.Repos) error {
		res = Result{}
		for n, raw := range s.rows {
			r := row(raw)
			if r.blank() {
				continue
			}
			line := n + 2
			l, err := parseLoan(r, cols)
			if err != nil {
				in.log.Warn("loan row skipped", zap.Int("row", line), zap.Error(err))
				res.Skipped++
				continue
			}
			if _, err := repos.Customers.GetByID(ctx, l.CustomerID); err != nil {
				if !errors.Is(err, customer.ErrNotFound) {
					return fmt.Errorf("row %d: %w", line, err)
				}
				in.log.Warn("customer not found for loan",
					zap.Int("row", line), zap.Uint64("customer_id", l.CustomerID), zap.Uint64("loan_id", l.ID))
				res.Skipped++
				continue
			}
			created, err := repos.Loans.Upsert(ctx, l)
			if err != nil {
				return fmt.Errorf("row %d: upsert loan %d: %w", line, l.ID, err)
			}
			if created {
				res.Created++
			} else {
				res.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	in.log.Info("loan ingestion completed",
		zap.Int("created", res.Created), zap.Int("updated", res.Updated), zap.Int("skipped", res.Skipped))
	return res, nil
}

// Files ingests the customer workbook, then the loan workbook.
func (in *Ingester) Files(ctx context.Context, customersPath, loansPath string) (customers, loans Result, err error) {
	open := func(path string, run func(context.Context, io.Reader) (Result, error)) (Result, error) {
		f, err := os.Open(path)
		if err != nil {
			return Result{}, err
		}
		defer f.Close()
		res, err := run(ctx, f)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", path, err)
		}
		return res, nil
	}
	if customers, err = open(customersPath, in.Customers); err != nil {
		return
	}
	loans, err = open(loansPath, in.Loans)
	return
}
