package records

import (
	"context"
	"fmt"
	"regexp"

	"github.com/nalaaircon/nala-backend/internal/domain/records"
	"github.com/nalaaircon/nala-backend/internal/pkg/validator"
)

var (
	reserved  = []string{"id", "created_at", "updated_at"}
	fieldName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
)

type RecordServiceImpl struct {
	documentRepo records.DocumentRepository
}

func NewRecordService(documentRepo records.DocumentRepository) records.RecordService {
	return &RecordServiceImpl{documentRepo: documentRepo}
}

// List implements records.RecordService.
func (s *RecordServiceImpl) List(ctx context.Context, collection string, filter records.Filter) ([]records.Document, error) {
	schema, err := records.SchemaFor(collection)
	if err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	docs, err := s.documentRepo.List(ctx, schema, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	return docs, nil
}

// Get implements records.RecordService.
func (s *RecordServiceImpl) Get(ctx context.Context, collection, id string) (records.Document, error) {
	schema, err := records.SchemaFor(collection)
	if err != nil {
		return nil, err
	}
	return s.documentRepo.GetByID(ctx, schema.Collection, id)
}

// Create implements records.RecordService.
func (s *RecordServiceImpl) Create(ctx context.Context, collection string, doc records.Document) (records.Document, error) {
	schema, err := records.SchemaFor(collection)
	if err != nil {
		return nil, err
	}
	if err := checkReserved(doc); err != nil {
		return nil, err
	}

	var errs validator.ValidationErrors
	for _, field := range schema.Required {
		v, _ := doc[field].(string)
		if validator.IsEmpty(v) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "is required"})
		}
	}
	if date, ok := doc["service_date"].(string); ok && date != "" {
		if _, valid := validator.IsValidDate(date); !valid {
			errs = append(errs, validator.ValidationError{Field: "service_date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	fields := make(records.Document, len(doc)+len(schema.Defaults))
	for k, v := range schema.Defaults {
		fields[k] = v
	}
	for k, v := range doc {
		fields[k] = v
	}

	created, err := s.documentRepo.Create(ctx, schema.Collection, fields)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update implements records.RecordService.
func (s *RecordServiceImpl) Update(ctx context.Context, collection, id string, fields records.Document) (records.Document, error) {
	schema, err := records.SchemaFor(collection)
	if err != nil {
		return nil, err
	}
	if err := checkReserved(fields); err != nil {
		return nil, err
	}
	for _, field := range schema.Required {
		if v, ok := fields[field]; ok {
			if str, _ := v.(string); validator.IsEmpty(str) {
				return nil, validator.ValidationErrors{{Field: field, Message: "is required"}}
			}
		}
	}
	return s.documentRepo.Update(ctx, schema.Collection, id, fields)
}

// Delete implements records.RecordService.
func (s *RecordServiceImpl) Delete(ctx context.Context, collection, id string) error {
	schema, err := records.SchemaFor(collection)
	if err != nil {
		return err
	}
	return s.documentRepo.Delete(ctx, schema.Collection, id)
}

// Count implements records.RecordService.
func (s *RecordServiceImpl) Count(ctx context.Context, collection string) (int, error) {
	schema, err := records.SchemaFor(collection)
	if err != nil {
		return 0, err
	}
	return s.documentRepo.Count(ctx, schema.Collection)
}

func checkReserved(doc records.Document) error {
	for _, field := range reserved {
		if _, ok := doc[field]; ok {
			return fmt.Errorf("%w: %s", records.ErrReservedField, field)
		}
	}
	for field := range doc {
		if !fieldName.MatchString(field) {
			return validator.ValidationErrors{{Field: field, Message: "field names use lowercase letters, digits and underscores"}}
		}
	}
	return nil
}
