// Package state is the registry's view of the ledger-backed key-value store.
// Operations read everything they need in one batch, validate, then issue one
// atomic write inside the same transaction boundary.
package state

import "context"

// Store exposes the snapshot get/set contract the ledger engine provides.
// Stores are interface-driven to keep the core testable and to allow swapping
// in-memory and PostgreSQL persistence without rewiring the service.
type Store interface {
	// Get reads the given addresses in one batch. Absent addresses are
	// omitted from the result, never reported as errors.
	Get(ctx context.Context, addresses []string) (map[string][]byte, error)
	// Set commits entries atomically. Committing to an address that already
	// holds a value fails with sentinel.ErrConflict; state is append-only.
	Set(ctx context.Context, entries map[string][]byte) error
}

// TxRunner executes fn inside one transaction boundary so a uniqueness read
// and the subsequent write observe the same snapshot. Two concurrent
// transactions targeting the same address serialize; the loser sees the
// winner's committed write.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
