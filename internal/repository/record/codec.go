// Package record implements the domain repositories on top of the record
// store. Entities are converted to and from store records through their JSON
// form, so the json tags of an entity are its stored field names.
package record

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
)

const zeroTime = "0001-01-01T00:00:00Z"

// encode turns an entity into a record. Store-owned fields that are still
// empty are dropped so the store fills them in.
func encode(v any) (recordstore.Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", v, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var rec recordstore.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", v, err)
	}

	if rec.ID() == "" {
		delete(rec, recordstore.FieldID)
	}
	if rec.String(recordstore.FieldCreatedAt) == zeroTime {
		delete(rec, recordstore.FieldCreatedAt)
	}
	if v, ok := rec[recordstore.FieldUpdatedAt]; ok && (v == nil || v == zeroTime) {
		delete(rec, recordstore.FieldUpdatedAt)
	}
	return rec, nil
}

func decode[T any](rec recordstore.Record) (T, error) {
	var out T
	raw, err := json.Marshal(rec)
	if err != nil {
		return out, fmt.Errorf("failed to decode record %s: %w", rec.ID(), err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to decode record %s: %w", rec.ID(), err)
	}
	return out, nil
}

func decodeAll[T any](recs []recordstore.Record) ([]T, error) {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		v, err := decode[T](rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// notFound replaces a store ErrNotFound with the domain sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, recordstore.ErrNotFound) {
		return sentinel
	}
	return err
}

func create[T any](ctx context.Context, s recordstore.Store, c recordstore.Collection, v T) (T, error) {
	rec, err := encode(v)
	if err != nil {
		var zero T
		return zero, err
	}
	created, err := s.Create(ctx, c, rec)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to create %s record: %w", c, err)
	}
	return decode[T](created)
}

func getByID[T any](ctx context.Context, s recordstore.Store, c recordstore.Collection, id string, missing error) (T, error) {
	rec, err := s.GetByID(ctx, c, id)
	if err != nil {
		var zero T
		return zero, notFound(err, missing)
	}
	return decode[T](rec)
}

func list[T any](ctx context.Context, s recordstore.Store, c recordstore.Collection, f *recordstore.Filter) ([]T, error) {
	recs, err := s.GetAll(ctx, c, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c, err)
	}
	return decodeAll[T](recs)
}

// first returns nil when nothing matches f.
func first[T any](ctx context.Context, s recordstore.Store, c recordstore.Collection, f *recordstore.Filter) (*T, error) {
	items, err := list[T](ctx, s, c, f.Take(1))
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return &items[0], nil
}

func update[T any](ctx context.Context, s recordstore.Store, c recordstore.Collection, id string, v T, missing error) (T, error) {
	var zero T
	rec, err := encode(v)
	if err != nil {
		return zero, err
	}
	updated, err := s.Update(ctx, c, id, rec)
	if err != nil {
		return zero, notFound(err, missing)
	}
	return decode[T](updated)
}

func patch(ctx context.Context, s recordstore.Store, c recordstore.Collection, id string, fields recordstore.Record, missing error) error {
	if _, err := s.Update(ctx, c, id, fields); err != nil {
		return notFound(err, missing)
	}
	return nil
}

func remove(ctx context.Context, s recordstore.Store, c recordstore.Collection, id string, missing error) error {
	if err := s.Delete(ctx, c, id); err != nil {
		return notFound(err, missing)
	}
	return nil
}
