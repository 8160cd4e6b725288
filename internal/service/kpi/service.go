package kpi

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nalaaircon/nala-backend/internal/domain/employee"
	"github.com/nalaaircon/nala-backend/internal/domain/inventory"
	"github.com/nalaaircon/nala-backend/internal/domain/kpi"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
	"github.com/nalaaircon/nala-backend/internal/pkg/validator"
	payrollservice "github.com/nalaaircon/nala-backend/internal/service/payroll"
)

type KPIServiceImpl struct {
	tx               recordstore.Transactor
	kpiRepo          kpi.KPIRepository
	employeeRepo     employee.EmployeeRepository
	movementRepo     inventory.MovementRepository
	inventoryService inventory.InventoryService
	calc             *payrollservice.Calculator
}

func NewKPIService(
	tx recordstore.Transactor,
	kpiRepo kpi.KPIRepository,
	employeeRepo employee.EmployeeRepository,
	movementRepo inventory.MovementRepository,
	inventoryService inventory.InventoryService,
	calc *payrollservice.Calculator,
) kpi.KPIService {
	return &KPIServiceImpl{
		tx:               tx,
		kpiRepo:          kpiRepo,
		employeeRepo:     employeeRepo,
		movementRepo:     movementRepo,
		inventoryService: inventoryService,
		calc:             calc,
	}
}

// RecordJobCompletion implements kpi.KPIService.
func (s *KPIServiceImpl) RecordJobCompletion(ctx context.Context, req kpi.JobCompletionRequest) (kpi.JobCompletionResult, error) {
	if err := req.Validate(); err != nil {
		return kpi.JobCompletionResult{}, err
	}

	eventID := req.EventID
	if eventID == "" {
		eventID = uuid.Must(uuid.NewV7()).String()
	}
	refID := kpi.ReferenceID(req.EmployeeID, req.Period, req.JobType, eventID)

	var rec kpi.Record
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}

		seen, err := s.kpiRepo.GetJobEvent(ctx, refID)
		if err != nil {
			return fmt.Errorf("failed to get job event: %w", err)
		}
		if seen != nil {
			slog.Info("job completion replayed", "event_id", eventID, "status", seen.Status)
			rec, err = s.current(ctx, req.EmployeeID, req.Period)
			return err
		}
		if _, err := s.kpiRepo.CreateJobEvent(ctx, kpi.JobEvent{
			ReferenceID: refID,
			EventID:     eventID,
			EmployeeID:  req.EmployeeID,
			Period:      req.Period,
			JobType:     req.JobType,
		}); err != nil {
			return fmt.Errorf("failed to save job event: %w", err)
		}

		rec, err = s.current(ctx, req.EmployeeID, req.Period)
		if err != nil {
			return err
		}
		rec.Increment(req.JobType, 1)
		rec, err = s.kpiRepo.Upsert(ctx, rec)
		if err != nil {
			return fmt.Errorf("failed to save kpi record: %w", err)
		}

		notes := fmt.Sprintf("Pemakaian %s", req.JobType)
		for _, m := range req.Materials {
			if _, err := s.inventoryService.ReduceStock(ctx, m.InventoryID, m.Quantity, inventory.RefProject, refID, notes); err != nil {
				return fmt.Errorf("failed to issue material %s: %w", m.InventoryID, err)
			}
		}
		return nil
	})
	if err != nil {
		return kpi.JobCompletionResult{}, err
	}

	slog.Info("job completion recorded",
		"employee_id", req.EmployeeID, "period", req.Period, "job_type", req.JobType,
		"event_id", eventID, "materials", len(req.Materials))
	return kpi.JobCompletionResult{Record: rec, EventID: eventID, ReferenceID: refID}, nil
}

// ReverseJobCompletion implements kpi.KPIService.
// Issued material comes back as "project" stock-ins under the same reference.
func (s *KPIServiceImpl) ReverseJobCompletion(ctx context.Context, req kpi.ReverseJobRequest) (kpi.Record, error) {
	if err := req.Validate(); err != nil {
		return kpi.Record{}, err
	}
	refID := kpi.ReferenceID(req.EmployeeID, req.Period, req.JobType, req.EventID)

	var rec kpi.Record
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		event, err := s.kpiRepo.GetJobEvent(ctx, refID)
		if err != nil {
			return fmt.Errorf("failed to get job event: %w", err)
		}
		if event == nil {
			return kpi.ErrJobEventNotFound
		}
		if event.IsReversed() {
			return fmt.Errorf("%w: event %s already reversed", kpi.ErrJobEventNotFound, req.EventID)
		}

		rec, err = s.current(ctx, req.EmployeeID, req.Period)
		if err != nil {
			return err
		}
		rec.Increment(req.JobType, -1)
		rec, err = s.kpiRepo.Upsert(ctx, rec)
		if err != nil {
			return fmt.Errorf("failed to save kpi record: %w", err)
		}

		issued, err := s.movementRepo.ListByReference(ctx, inventory.RefProject, refID, inventory.MovementOut)
		if err != nil {
			return fmt.Errorf("failed to list job movements: %w", err)
		}
		for _, m := range issued {
			if _, err := s.inventoryService.AddStock(ctx, m.InventoryID, m.Quantity, inventory.RefProject, refID, "Pembatalan pekerjaan"); err != nil {
				return fmt.Errorf("failed to return material %s: %w", m.InventoryID, err)
			}
		}
		return s.kpiRepo.MarkJobEventReversed(ctx, event.ID)
	})
	if err != nil {
		return kpi.Record{}, err
	}

	slog.Info("job completion reversed",
		"employee_id", req.EmployeeID, "period", req.Period, "job_type", req.JobType, "event_id", req.EventID)
	return rec, nil
}

// current returns the stored record or a fresh one with zero counters.
func (s *KPIServiceImpl) current(ctx context.Context, employeeID, period string) (kpi.Record, error) {
	rec, err := s.kpiRepo.GetByEmployeePeriod(ctx, employeeID, period)
	if err != nil {
		return kpi.Record{}, fmt.Errorf("failed to get kpi record: %w", err)
	}
	if rec == nil {
		return kpi.Record{EmployeeID: employeeID, Period: period}, nil
	}
	return *rec, nil
}

// Upsert implements kpi.KPIService.
func (s *KPIServiceImpl) Upsert(ctx context.Context, req kpi.UpsertRequest) (kpi.Record, error) {
	if err := req.Validate(); err != nil {
		return kpi.Record{}, err
	}

	var rec kpi.Record
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		var err error
		rec, err = s.current(ctx, req.EmployeeID, req.Period)
		if err != nil {
			return err
		}
		rec.SetCounts(req.Counts)
		rec, err = s.kpiRepo.Upsert(ctx, rec)
		if err != nil {
			return fmt.Errorf("failed to save kpi record: %w", err)
		}
		return nil
	})
	if err != nil {
		return kpi.Record{}, err
	}
	return rec, nil
}

// GetRecord implements kpi.KPIService.
func (s *KPIServiceImpl) GetRecord(ctx context.Context, employeeID, period string) (kpi.Record, error) {
	if !validator.IsValidPeriod(period) {
		return kpi.Record{}, validator.ValidationErrors{{Field: "period", Message: "must be in YYYY-MM format"}}
	}
	return s.current(ctx, employeeID, period)
}

// Summaries implements kpi.KPIService.
func (s *KPIServiceImpl) Summaries(ctx context.Context, period string) ([]kpi.Summary, error) {
	if !validator.IsValidPeriod(period) {
		return nil, validator.ValidationErrors{{Field: "period", Message: "must be in YYYY-MM format"}}
	}

	employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	records, err := s.kpiRepo.ListByPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list kpi records: %w", err)
	}
	byEmployee := make(map[string]kpi.Record, len(records))
	for _, r := range records {
		byEmployee[r.EmployeeID] = r
	}

	summaries := make([]kpi.Summary, 0, len(employees))
	for _, e := range employees {
		rec, ok := byEmployee[e.ID]
		if !ok {
			rec = kpi.Record{EmployeeID: e.ID, Period: period}
		}
		counts := rec.Counts()
		summaries = append(summaries, kpi.Summary{
			EmployeeID:        e.ID,
			EmployeeName:      e.Name,
			Period:            period,
			Counts:            counts,
			AveragePercentage: s.calc.AverageKPI(counts).StringFixed(2),
		})
	}
	return summaries, nil
}
