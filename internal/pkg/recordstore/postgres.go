package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nalaaircon/nala-backend/internal/pkg/database"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS records (
		collection TEXT NOT NULL,
		id         TEXT NOT NULL,
		data       JSONB NOT NULL,
		PRIMARY KEY (collection, id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_records_data ON records USING GIN (data)`,
}

type postgresTxKey struct{}

// PostgresStore keeps every collection in one jsonb table.
type PostgresStore struct {
	db *database.DB
}

func NewPostgresStore(ctx context.Context, db *database.DB) (*PostgresStore, error) {
	for _, stmt := range postgresSchema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("failed to migrate records table: %w", err)
		}
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Backend() string { return "postgres" }

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}

// querier returns the transaction stored in ctx or the pool.
func (s *PostgresStore) querier(ctx context.Context) database.Querier {
	if tx, ok := ctx.Value(postgresTxKey{}).(pgx.Tx); ok {
		return tx
	}
	return s.db.Pool
}

func (s *PostgresStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	var (
		tx  pgx.Tx
		err error
	)
	if outer, ok := ctx.Value(postgresTxKey{}).(pgx.Tx); ok {
		// pgx turns a nested Begin into a savepoint.
		tx, err = outer.Begin(ctx)
	} else {
		tx, err = s.db.BeginTx(ctx)
	}
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, postgresTxKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetAll(ctx context.Context, c Collection, f *Filter) ([]Record, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}
	query, args, err := buildSelect(postgresDialect{}, c, f)
	if err != nil {
		return nil, err
	}

	rows, err := s.querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", c, err)
		}
		rec, err := decodeRecord([]byte(raw))
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", c, err)
	}
	return records, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, c Collection, id string) (Record, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}
	var raw string
	err := s.querier(ctx).QueryRow(ctx,
		`SELECT data::text FROM records WHERE collection = $1 AND id = $2`,
		string(c), id,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", c, id, err)
	}
	return decodeRecord([]byte(raw))
}

func (s *PostgresStore) Create(ctx context.Context, c Collection, rec Record) (Record, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}
	rec = prepareCreate(rec)
	encoded, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	var raw string
	err = s.querier(ctx).QueryRow(ctx,
		`INSERT INTO records (collection, id, data) VALUES ($1, $2, ($3::text)::jsonb) RETURNING data::text`,
		string(c), rec.ID(), string(encoded),
	).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", c, err)
	}
	return decodeRecord([]byte(raw))
}

func (s *PostgresStore) Update(ctx context.Context, c Collection, id string, fields Record) (Record, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(preparePatch(fields))
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	var raw string
	err = s.querier(ctx).QueryRow(ctx,
		`UPDATE records SET data = data || ($3::text)::jsonb WHERE collection = $1 AND id = $2 RETURNING data::text`,
		string(c), id, string(encoded),
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update %s/%s: %w", c, id, err)
	}
	return decodeRecord([]byte(raw))
}

func (s *PostgresStore) Delete(ctx context.Context, c Collection, id string) error {
	if err := checkCollection(c); err != nil {
		return err
	}
	tag, err := s.querier(ctx).Exec(ctx,
		`DELETE FROM records WHERE collection = $1 AND id = $2`,
		string(c), id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", c, id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
