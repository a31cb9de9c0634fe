package replay

import (
	"context"
	"sync"
	"time"

	"tracechain/pkg/platform/sentinel"
)

// InMemoryGuard keeps seen ids in a map with lazy expiry. Suitable for a
// single instance; distributed deployments use the redis guard.
type InMemoryGuard struct {
	mu   sync.Mutex
	seen map[string]time.Time
}

func NewInMemoryGuard() *InMemoryGuard {
	return &InMemoryGuard{seen: make(map[string]time.Time)}
}

func (g *InMemoryGuard) MarkSeen(_ context.Context, txID string, ttl time.Duration) error {
	if txID == "" {
		return nil
	}
	now := time.Now()
	g.mu.Lock()
	defer g.mu.Unlock()
	if expiry, ok := g.seen[txID]; ok && now.Before(expiry) {
		return sentinel.ErrAlreadySeen
	}
	for id, expiry := range g.seen {
		if now.After(expiry) {
			delete(g.seen, id)
		}
	}
	g.seen[txID] = now.Add(ttl)
	return nil
}
