// Package recordstore is the collection-oriented persistence layer shared by
// every domain. Records are JSON documents addressed by collection and id.
// The same contract is served by the remote PostgreSQL database and by the
// local SQLite file used when the remote database is unreachable.
package recordstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Collection names a logical table.
type Collection string

const (
	Employees          Collection = "employees"
	Customers          Collection = "customers"
	Projects           Collection = "projects"
	Attendance         Collection = "attendance"
	LeaveRequests      Collection = "leave_requests"
	Inventory          Collection = "inventory"
	InventoryMovements Collection = "inventory_movements"
	Expenses           Collection = "expenses"
	Kasbon             Collection = "kasbon"
	KPIRecords         Collection = "kpi_records"
	KPIJobEvents       Collection = "kpi_job_events"
	Income             Collection = "income"
	SalarySlips        Collection = "salary_slips"
	Bookings           Collection = "bookings"
)

var collections = map[Collection]bool{
	Employees: true, Customers: true, Projects: true, Attendance: true,
	LeaveRequests: true, Inventory: true, InventoryMovements: true,
	Expenses: true, Kasbon: true, KPIRecords: true, KPIJobEvents: true, Income: true,
	SalarySlips: true, Bookings: true,
}

// ParseCollection validates a collection name coming from outside the process.
func ParseCollection(name string) (Collection, error) {
	c := Collection(name)
	if !collections[c] {
		return "", fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
	return c, nil
}

// Reserved field names maintained by the store.
const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// TimeLayout is RFC3339 with a fixed microsecond fraction, so timestamps of
// the same zone sort lexicographically.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

var (
	ErrNotFound          = errors.New("record not found")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrInvalidField      = errors.New("invalid field name")
)

// Record is a single stored document.
type Record map[string]any

// ID returns the record id or an empty string.
func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

// String returns a string field or an empty string.
func (r Record) String(field string) string {
	v, _ := r[field].(string)
	return v
}

// Transactor runs fn inside a transaction. Nested calls create a savepoint:
// an error returned by the inner fn rolls back only the inner work.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store is the record store contract served by every backend.
type Store interface {
	Transactor

	// GetAll returns the records matching f. A nil filter returns everything.
	GetAll(ctx context.Context, c Collection, f *Filter) ([]Record, error)
	GetByID(ctx context.Context, c Collection, id string) (Record, error)
	// Create stores rec, assigning an id when none is given and stamping created_at.
	Create(ctx context.Context, c Collection, rec Record) (Record, error)
	// Update merges fields into the stored record and stamps updated_at.
	Update(ctx context.Context, c Collection, id string, fields Record) (Record, error)
	Delete(ctx context.Context, c Collection, id string) error

	Backend() string
	Close() error
}

var fieldNameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func checkField(field string) error {
	if !fieldNameRegex.MatchString(field) {
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	return nil
}

func checkCollection(c Collection) error {
	if !collections[c] {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, string(c))
	}
	return nil
}

// newRecordID returns a time-ordered UUIDv7.
func newRecordID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func now() string {
	return time.Now().UTC().Format(TimeLayout)
}

// prepareCreate copies rec and fills the fields the store owns.
func prepareCreate(rec Record) Record {
	out := make(Record, len(rec)+2)
	for k, v := range rec {
		out[k] = v
	}
	if out.ID() == "" {
		out[FieldID] = newRecordID()
	}
	if s, _ := out[FieldCreatedAt].(string); s == "" {
		out[FieldCreatedAt] = now()
	}
	return out
}

// preparePatch copies fields without the id and stamps updated_at.
func preparePatch(fields Record) Record {
	out := make(Record, len(fields)+1)
	for k, v := range fields {
		if k == FieldID || k == FieldCreatedAt {
			continue
		}
		out[k] = v
	}
	out[FieldUpdatedAt] = now()
	return out
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*PostgresStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)
