package state

import (
	"context"
	"sync"

	"tracechain/pkg/platform/sentinel"
)

// InMemoryStore keeps state in a map. It intentionally favors clarity over
// performance and is the default backend for tests and ephemeral runs.
//
// RunInTx holds a single transaction mutex for the whole callback, which
// serializes transactions exactly the way the ledger engine serializes them:
// a concurrent creation for the same address observes the winner's write and
// fails its uniqueness check (or its Set) with ErrConflict.
type InMemoryStore struct {
	txMu    sync.Mutex
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[string][]byte)}
}

func (s *InMemoryStore) Get(_ context.Context, addresses []string) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string][]byte, len(addresses))
	for _, addr := range addresses {
		if data, ok := s.entries[addr]; ok && len(data) > 0 {
			cp := make([]byte, len(data))
			copy(cp, data)
			result[addr] = cp
		}
	}
	return result, nil
}

func (s *InMemoryStore) Set(_ context.Context, entries map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for addr := range entries {
		if existing, ok := s.entries[addr]; ok && len(existing) > 0 {
			return sentinel.ErrConflict
		}
	}
	for addr, data := range entries {
		cp := make([]byte, len(data))
		copy(cp, data)
		s.entries[addr] = cp
	}
	return nil
}

func (s *InMemoryStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(ctx)
}
