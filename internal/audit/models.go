package audit

import "time"

// Event is emitted after a type definition commits. Keep it transport-agnostic
// so stores and sinks can fan out.
type Event struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"` // request timestamp, informational
	EntityKind string    `json:"entityKind"`
	EntityID   string    `json:"entityId"`
	Address    string    `json:"address"`
	Signer     string    `json:"signer"`
}
