package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Publisher receives committed-creation events. Implementations must be safe
// for concurrent use; emission failures never roll back the committed write.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// Store is an append-only sink for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	List(ctx context.Context) ([]Event, error)
}

// ChannelPublisher hands events to a background worker through a buffered
// channel so the creation path never blocks on the sink.
type ChannelPublisher struct {
	inbox chan<- Event
}

func NewChannelPublisher(inbox chan<- Event) *ChannelPublisher {
	return &ChannelPublisher{inbox: inbox}
}

func (p *ChannelPublisher) Emit(ctx context.Context, event Event) error {
	event = stamp(event)
	select {
	case p.inbox <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// InMemoryStore keeps events in memory for tests and ephemeral runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, stamp(event))
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events...), nil
}

// Emit makes the store usable directly as a Publisher in tests.
func (s *InMemoryStore) Emit(ctx context.Context, event Event) error {
	return s.Append(ctx, event)
}

func stamp(event Event) Event {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return event
}
