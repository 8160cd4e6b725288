package recordstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

type memoryTxKey struct{}

// MemoryStore keeps records as JSON documents in process memory. It backs the
// test suites and behaves like the persistent backends: values go through a
// JSON round trip, and transactions roll back by restoring a snapshot.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[Collection]map[string][]byte

	// txMu serialises top-level transactions.
	txMu sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[Collection]map[string][]byte)}
}

func (s *MemoryStore) Backend() string { return "memory" }

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) GetAll(ctx context.Context, c Collection, f *Filter) ([]Record, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	records := make([]Record, 0, len(s.data[c]))
	for _, raw := range s.data[c] {
		rec, err := decodeRecord(raw)
		if err != nil {
			s.mu.RUnlock()
			return nil, err
		}
		records = append(records, rec)
	}
	s.mu.RUnlock()

	return f.Apply(records), nil
}

func (s *MemoryStore) GetByID(ctx context.Context, c Collection, id string) (Record, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.data[c][id]
	if !ok {
		return nil, ErrNotFound
	}
	return decodeRecord(raw)
}

func (s *MemoryStore) Create(ctx context.Context, c Collection, rec Record) (Record, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}
	rec = prepareCreate(rec)
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[c] == nil {
		s.data[c] = make(map[string][]byte)
	}
	if _, exists := s.data[c][rec.ID()]; exists {
		return nil, fmt.Errorf("record %s/%s already exists", c, rec.ID())
	}
	s.data[c][rec.ID()] = raw
	return decodeRecord(raw)
}

func (s *MemoryStore) Update(ctx context.Context, c Collection, id string, fields Record) (Record, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.data[c][id]
	if !ok {
		return nil, ErrNotFound
	}
	rec, err := decodeRecord(raw)
	if err != nil {
		return nil, err
	}
	for k, v := range preparePatch(fields) {
		rec[k] = v
	}
	raw, err = json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	s.data[c][id] = raw
	return decodeRecord(raw)
}

func (s *MemoryStore) Delete(ctx context.Context, c Collection, id string) error {
	if err := checkCollection(c); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[c][id]; !ok {
		return ErrNotFound
	}
	delete(s.data[c], id)
	return nil
}

func (s *MemoryStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(memoryTxKey{}) == nil {
		s.txMu.Lock()
		defer s.txMu.Unlock()
		ctx = context.WithValue(ctx, memoryTxKey{}, true)
	}

	snapshot := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snapshot)
			panic(p)
		}
		if err != nil {
			s.restore(snapshot)
		}
	}()

	return fn(ctx)
}

func (s *MemoryStore) snapshot() map[Collection]map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(map[Collection]map[string][]byte, len(s.data))
	for c, rows := range s.data {
		copied := make(map[string][]byte, len(rows))
		for id, raw := range rows {
			copied[id] = raw
		}
		snap[c] = copied
	}
	return snap
}

func (s *MemoryStore) restore(snap map[Collection]map[string][]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = snap
}

func decodeRecord(raw []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return rec, nil
}
