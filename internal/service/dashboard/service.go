package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/nalaaircon/nala-backend/internal/domain/attendance"
	"github.com/nalaaircon/nala-backend/internal/domain/dashboard"
	"github.com/nalaaircon/nala-backend/internal/domain/employee"
	"github.com/nalaaircon/nala-backend/internal/domain/finance"
	"github.com/nalaaircon/nala-backend/internal/domain/inventory"
	"github.com/nalaaircon/nala-backend/internal/domain/kpi"
	"github.com/nalaaircon/nala-backend/internal/domain/records"
	payrollservice "github.com/nalaaircon/nala-backend/internal/service/payroll"
)

type summaryFunc func(s *DashboardServiceImpl, ctx context.Context) (any, error)

// summaries dispatches a module to the function that builds its summary.
var summaries = map[dashboard.Module]summaryFunc{
	dashboard.ModuleFinancing: func(s *DashboardServiceImpl, ctx context.Context) (any, error) { return s.financing(ctx) },
	dashboard.ModuleInventory: func(s *DashboardServiceImpl, ctx context.Context) (any, error) { return s.inventory(ctx) },
	dashboard.ModuleAbsensi:   func(s *DashboardServiceImpl, ctx context.Context) (any, error) { return s.absensi(ctx) },
	dashboard.ModuleDatabase:  func(s *DashboardServiceImpl, ctx context.Context) (any, error) { return s.database(ctx) },
	dashboard.ModuleKPI:       func(s *DashboardServiceImpl, ctx context.Context) (any, error) { return s.kpi(ctx) },
}

type DashboardServiceImpl struct {
	incomeService    finance.IncomeService
	inventoryService inventory.InventoryService
	kpiService       kpi.KPIService
	recordService    records.RecordService
	employeeRepo     employee.EmployeeRepository
	attendanceRepo   attendance.AttendanceRepository
	calc             *payrollservice.Calculator
	now              func() time.Time
}

func NewDashboardService(
	incomeService finance.IncomeService,
	inventoryService inventory.InventoryService,
	kpiService kpi.KPIService,
	recordService records.RecordService,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	calc *payrollservice.Calculator,
	now func() time.Time,
) dashboard.DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardServiceImpl{
		incomeService:    incomeService,
		inventoryService: inventoryService,
		kpiService:       kpiService,
		recordService:    recordService,
		employeeRepo:     employeeRepo,
		attendanceRepo:   attendanceRepo,
		calc:             calc,
		now:              now,
	}
}

// Summary implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Summary(ctx context.Context, module dashboard.Module) (any, error) {
	fn, ok := summaries[module]
	if !ok {
		return nil, dashboard.ErrUnknownModule
	}
	return fn(s, ctx)
}

// Overview implements dashboard.DashboardService.
// Each module summary is loaded in its own goroutine.
func (s *DashboardServiceImpl) Overview(ctx context.Context) (dashboard.Overview, error) {
	var overview dashboard.Overview

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		summary, err := s.financing(gCtx)
		overview.Financing = summary
		return err
	})
	g.Go(func() error {
		summary, err := s.inventory(gCtx)
		overview.Inventory = summary
		return err
	})
	g.Go(func() error {
		summary, err := s.absensi(gCtx)
		overview.Absensi = summary
		return err
	})
	g.Go(func() error {
		summary, err := s.database(gCtx)
		overview.Database = summary
		return err
	})
	g.Go(func() error {
		summary, err := s.kpi(gCtx)
		overview.KPI = summary
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.Overview{}, err
	}
	return overview, nil
}

func (s *DashboardServiceImpl) financing(ctx context.Context) (dashboard.FinancingSummary, error) {
	cf, err := s.incomeService.Cashflow(ctx, s.calc.Period(s.now()))
	if err != nil {
		return dashboard.FinancingSummary{}, fmt.Errorf("failed to load cashflow: %w", err)
	}
	return dashboard.FinancingSummary{Period: cf.Period, Income: cf.Income, Expenses: cf.Expenses, Net: cf.Net}, nil
}

func (s *DashboardServiceImpl) inventory(ctx context.Context) (dashboard.InventorySummary, error) {
	items, err := s.inventoryService.ListItems(ctx, inventory.ItemFilter{})
	if err != nil {
		return dashboard.InventorySummary{}, fmt.Errorf("failed to list inventory: %w", err)
	}

	summary := dashboard.InventorySummary{TotalItems: len(items), StockValue: decimal.Zero}
	for _, item := range items {
		switch item.Category {
		case inventory.CategoryMaterial:
			summary.MaterialItems++
		case inventory.CategoryACUnit:
			summary.ACUnitItems++
		}
		if item.IsLowStock() {
			summary.LowStock++
		}
		summary.StockValue = summary.StockValue.Add(item.UnitPrice.Mul(item.Quantity))
	}
	summary.StockValue = summary.StockValue.Round(0)
	return summary, nil
}

func (s *DashboardServiceImpl) absensi(ctx context.Context) (dashboard.AbsensiSummary, error) {
	today := s.calc.Date(s.now())

	// inactive employees are excluded by the repository
	employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{})
	if err != nil {
		return dashboard.AbsensiSummary{}, fmt.Errorf("failed to list employees: %w", err)
	}
	active := len(employees)

	records, err := s.attendanceRepo.ListByDate(ctx, today, "")
	if err != nil {
		return dashboard.AbsensiSummary{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	summary := dashboard.AbsensiSummary{Date: today, ActiveEmployees: active}
	for _, a := range records {
		if a.CheckIn == nil {
			continue
		}
		summary.CheckedIn++
		if a.CheckOut != nil {
			summary.CheckedOut++
		}
		if a.LateMinutes > 0 {
			summary.Late++
		}
	}
	summary.Absent = max(active-summary.CheckedIn, 0)
	return summary, nil
}

func (s *DashboardServiceImpl) database(ctx context.Context) (dashboard.DatabaseSummary, error) {
	var summary dashboard.DatabaseSummary

	employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{})
	if err != nil {
		return summary, fmt.Errorf("failed to list employees: %w", err)
	}
	summary.Employees = len(employees)

	counts := []struct {
		collection records.Collection
		dst        *int
	}{
		{records.Customers, &summary.Customers},
		{records.Projects, &summary.Projects},
		{records.Bookings, &summary.Bookings},
	}
	for _, c := range counts {
		n, err := s.recordService.Count(ctx, string(c.collection))
		if err != nil {
			return summary, fmt.Errorf("failed to count %s: %w", c.collection, err)
		}
		*c.dst = n
	}
	return summary, nil
}

func (s *DashboardServiceImpl) kpi(ctx context.Context) (dashboard.KPISummary, error) {
	period := s.calc.Period(s.now())
	rows, err := s.kpiService.Summaries(ctx, period)
	if err != nil {
		return dashboard.KPISummary{}, fmt.Errorf("failed to load kpi summaries: %w", err)
	}

	summary := dashboard.KPISummary{Period: period, Employees: len(rows), AveragePercentage: decimal.Zero}
	total := decimal.Zero
	for _, row := range rows {
		for _, n := range row.Counts {
			summary.JobsCompleted += n
		}
		pct, err := decimal.NewFromString(row.AveragePercentage)
		if err != nil {
			return dashboard.KPISummary{}, fmt.Errorf("invalid kpi percentage %q: %w", row.AveragePercentage, err)
		}
		total = total.Add(pct)
	}
	if len(rows) > 0 {
		summary.AveragePercentage = total.Div(decimal.NewFromInt(int64(len(rows)))).Round(2)
	}
	return summary, nil
}
