// Package recordstoretest provides record store doubles for service tests.
package recordstoretest

import (
	"context"
	"errors"
	"sync"

	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
)

// ErrInjected is returned by FlakyStore for the operations it is told to fail.
var ErrInjected = errors.New("injected store failure")

// Op names a store operation that FlakyStore can fail.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// FlakyStore wraps a real store and fails chosen operations on chosen
// collections. Everything else is delegated.
type FlakyStore struct {
	recordstore.Store

	mu    sync.Mutex
	fails map[key]int
}

type key struct {
	op Op
	c  recordstore.Collection
}

// NewFlakyStore wraps an in-memory store.
func NewFlakyStore() *FlakyStore {
	return &FlakyStore{Store: recordstore.NewMemoryStore(), fails: make(map[key]int)}
}

// FailOn makes the next n calls of op on c fail. A negative n fails forever.
func (s *FlakyStore) FailOn(op Op, c recordstore.Collection, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fails[key{op, c}] = n
}

// Heal removes every injected failure.
func (s *FlakyStore) Heal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fails = make(map[key]int)
}

func (s *FlakyStore) shouldFail(op Op, c recordstore.Collection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{op, c}
	n, ok := s.fails[k]
	if !ok || n == 0 {
		return false
	}
	if n > 0 {
		s.fails[k] = n - 1
	}
	return true
}

func (s *FlakyStore) Create(ctx context.Context, c recordstore.Collection, rec recordstore.Record) (recordstore.Record, error) {
	if s.shouldFail(OpCreate, c) {
		return nil, ErrInjected
	}
	return s.Store.Create(ctx, c, rec)
}

func (s *FlakyStore) Update(ctx context.Context, c recordstore.Collection, id string, fields recordstore.Record) (recordstore.Record, error) {
	if s.shouldFail(OpUpdate, c) {
		return nil, ErrInjected
	}
	return s.Store.Update(ctx, c, id, fields)
}

func (s *FlakyStore) Delete(ctx context.Context, c recordstore.Collection, id string) error {
	if s.shouldFail(OpDelete, c) {
		return ErrInjected
	}
	return s.Store.Delete(ctx, c, id)
}
