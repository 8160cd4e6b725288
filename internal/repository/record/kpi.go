package record

import (
	"context"

	"github.com/nalaaircon/nala-backend/internal/domain/kpi"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
)

type kpiRepository struct {
	store recordstore.Store
}

func NewKPIRepository(store recordstore.Store) kpi.KPIRepository {
	return &kpiRepository{store: store}
}

// GetByEmployeePeriod implements kpi.KPIRepository.
func (r *kpiRepository) GetByEmployeePeriod(ctx context.Context, employeeID, period string) (*kpi.Record, error) {
	q := recordstore.Query().Eq("employee_id", employeeID).Eq("period", period)
	return first[kpi.Record](ctx, r.store, recordstore.KPIRecords, q)
}

// Upsert implements kpi.KPIRepository.
func (r *kpiRepository) Upsert(ctx context.Context, rec kpi.Record) (kpi.Record, error) {
	var out kpi.Record
	err := r.store.WithTx(ctx, func(ctx context.Context) error {
		existing, err := r.GetByEmployeePeriod(ctx, rec.EmployeeID, rec.Period)
		if err != nil {
			return err
		}
		if existing == nil {
			rec.ID = ""
			out, err = create(ctx, r.store, recordstore.KPIRecords, rec)
			return err
		}
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
		out, err = update(ctx, r.store, recordstore.KPIRecords, existing.ID, rec, kpi.ErrKPIRecordNotFound)
		return err
	})
	return out, err
}

// ListByPeriod implements kpi.KPIRepository.
func (r *kpiRepository) ListByPeriod(ctx context.Context, period string) ([]kpi.Record, error) {
	q := recordstore.Query().Eq("period", period).OrderBy("employee_id", false)
	return list[kpi.Record](ctx, r.store, recordstore.KPIRecords, q)
}

// ListByEmployee implements kpi.KPIRepository.
func (r *kpiRepository) ListByEmployee(ctx context.Context, employeeID string) ([]kpi.Record, error) {
	q := recordstore.Query().Eq("employee_id", employeeID).OrderBy("period", true)
	return list[kpi.Record](ctx, r.store, recordstore.KPIRecords, q)
}

// GetJobEvent implements kpi.KPIRepository.
func (r *kpiRepository) GetJobEvent(ctx context.Context, referenceID string) (*kpi.JobEvent, error) {
	q := recordstore.Query().Eq("reference_id", referenceID)
	return first[kpi.JobEvent](ctx, r.store, recordstore.KPIJobEvents, q)
}

// CreateJobEvent implements kpi.KPIRepository.
func (r *kpiRepository) CreateJobEvent(ctx context.Context, event kpi.JobEvent) (kpi.JobEvent, error) {
	if event.Status == "" {
		event.Status = kpi.JobEventRecorded
	}
	return create(ctx, r.store, recordstore.KPIJobEvents, event)
}

// MarkJobEventReversed implements kpi.KPIRepository.
func (r *kpiRepository) MarkJobEventReversed(ctx context.Context, id string) error {
	return patch(ctx, r.store, recordstore.KPIJobEvents, id, recordstore.Record{"status": kpi.JobEventReversed}, kpi.ErrJobEventNotFound)
}
