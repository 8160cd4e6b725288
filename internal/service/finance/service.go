package finance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/nalaaircon/nala-backend/internal/config"
	"github.com/nalaaircon/nala-backend/internal/domain/employee"
	"github.com/nalaaircon/nala-backend/internal/domain/expense"
	"github.com/nalaaircon/nala-backend/internal/domain/finance"
	"github.com/nalaaircon/nala-backend/internal/pkg/validator"
)

type IncomeServiceImpl struct {
	incomeRepo  finance.IncomeRepository
	expenseRepo expense.ExpenseRepository
	rules       config.Rules
}

func NewIncomeService(incomeRepo finance.IncomeRepository, expenseRepo expense.ExpenseRepository, rules config.Rules) finance.IncomeService {
	return &IncomeServiceImpl{
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		rules:       rules,
	}
}

// Create implements finance.IncomeService.
func (s *IncomeServiceImpl) Create(ctx context.Context, req finance.CreateIncomeRequest) (finance.Income, error) {
	if err := req.Validate(); err != nil {
		return finance.Income{}, err
	}

	branch := req.Branch
	if branch == "" {
		branch = s.rules.DefaultBranch
	}
	if _, ok := s.rules.Office(branch); !ok {
		return finance.Income{}, fmt.Errorf("%w: %s", employee.ErrInvalidBranch, branch)
	}

	income, err := s.incomeRepo.Create(ctx, finance.Income{
		Source:      req.Source,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		Branch:      branch,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		return finance.Income{}, fmt.Errorf("failed to create income: %w", err)
	}

	slog.Info("income recorded", "income_id", income.ID, "amount", income.Amount.String(), "branch", income.Branch)
	return income, nil
}

// List implements finance.IncomeService.
func (s *IncomeServiceImpl) List(ctx context.Context, filter finance.IncomeFilter) ([]finance.Income, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	items, err := s.incomeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list income: %w", err)
	}
	return items, nil
}

// Delete implements finance.IncomeService.
func (s *IncomeServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.incomeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}
	return nil
}

// Cashflow implements finance.IncomeService.
func (s *IncomeServiceImpl) Cashflow(ctx context.Context, period string) (finance.Cashflow, error) {
	from, to, err := validator.PeriodRange(period)
	if err != nil {
		return finance.Cashflow{}, validator.ValidationErrors{{Field: "period", Message: "must be in YYYY-MM format"}}
	}

	income, err := s.incomeRepo.List(ctx, finance.IncomeFilter{From: from, To: to})
	if err != nil {
		return finance.Cashflow{}, fmt.Errorf("failed to list income: %w", err)
	}
	expenses, err := s.expenseRepo.List(ctx, expense.ExpenseFilter{From: from, To: to})
	if err != nil {
		return finance.Cashflow{}, fmt.Errorf("failed to list expenses: %w", err)
	}

	cf := finance.Cashflow{Period: period, Income: decimal.Zero, Expenses: decimal.Zero}
	for _, in := range income {
		cf.Income = cf.Income.Add(in.Amount)
	}
	for _, e := range expenses {
		cf.Expenses = cf.Expenses.Add(e.Amount)
	}
	cf.Net = cf.Income.Sub(cf.Expenses)
	return cf, nil
}
