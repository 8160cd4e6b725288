package recordstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nalaaircon/nala-backend/internal/pkg/database"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS records (
		collection TEXT NOT NULL,
		id         TEXT NOT NULL,
		data       TEXT NOT NULL,
		PRIMARY KEY (collection, id)
	)`,
}

type sqliteTxKey struct{}

type sqliteTx struct {
	tx    *sql.Tx
	depth int
}

// SQLiteStore is the local record file. Documents are stored as JSON text and
// queried with the json1 functions.
type SQLiteStore struct {
	db *database.SQLiteDB
}

func NewSQLiteStore(ctx context.Context, db *database.SQLiteDB) (*SQLiteStore, error) {
	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("failed to migrate records table: %w", err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Backend() string { return "sqlite" }

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) querier(ctx context.Context) database.SQLQuerier {
	if t, ok := ctx.Value(sqliteTxKey{}).(*sqliteTx); ok {
		return t.tx
	}
	return s.db.DB
}

func (s *SQLiteStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if outer, ok := ctx.Value(sqliteTxKey{}).(*sqliteTx); ok {
		return s.withSavepoint(ctx, outer, fn)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, sqliteTxKey{}, &sqliteTx{tx: tx})); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) withSavepoint(ctx context.Context, outer *sqliteTx, fn func(ctx context.Context) error) error {
	inner := &sqliteTx{tx: outer.tx, depth: outer.depth + 1}
	name := fmt.Sprintf("sp_%d", inner.depth)

	if _, err := outer.tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return fmt.Errorf("create savepoint: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_, _ = outer.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, sqliteTxKey{}, inner)); err != nil {
		if _, rbErr := outer.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		if _, relErr := outer.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name); relErr != nil {
			return fmt.Errorf("release error: %v (original error: %w)", relErr, err)
		}
		return err
	}

	if _, err := outer.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetAll(ctx context.Context, c Collection, f *Filter) ([]Record, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}
	query, args, err := buildSelect(sqliteDialect{}, c, f)
	if err != nil {
		return nil, err
	}

	rows, err := s.querier(ctx).QueryContext(ctx, query, args...)
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

func (s *SQLiteStore) GetByID(ctx context.Context, c Collection, id string) (Record, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}
	var raw string
	err := s.querier(ctx).QueryRowContext(ctx,
		`SELECT data FROM records WHERE collection = ? AND id = ?`,
		string(c), id,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", c, id, err)
	}
	return decodeRecord([]byte(raw))
}

func (s *SQLiteStore) Create(ctx context.Context, c Collection, rec Record) (Record, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}
	rec = prepareCreate(rec)
	encoded, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	if _, err := s.querier(ctx).ExecContext(ctx,
		`INSERT INTO records (collection, id, data) VALUES (?, ?, ?)`,
		string(c), rec.ID(), string(encoded),
	); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", c, err)
	}
	return decodeRecord(encoded)
}

// Update merges in Go rather than with json_patch, which drops keys whose new
// value is null.
func (s *SQLiteStore) Update(ctx context.Context, c Collection, id string, fields Record) (Record, error) {
	current, err := s.GetByID(ctx, c, id)
	if err != nil {
		return nil, err
	}
	for k, v := range preparePatch(fields) {
		current[k] = v
	}
	encoded, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	res, err := s.querier(ctx).ExecContext(ctx,
		`UPDATE records SET data = ? WHERE collection = ? AND id = ?`,
		string(encoded), string(c), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s/%s: %w", c, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return decodeRecord(encoded)
}

func (s *SQLiteStore) Delete(ctx context.Context, c Collection, id string) error {
	if err := checkCollection(c); err != nil {
		return err
	}
	res, err := s.querier(ctx).ExecContext(ctx,
		`DELETE FROM records WHERE collection = ? AND id = ?`,
		string(c), id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", c, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", c, id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
