// Package replay rejects re-submission of an already accepted transaction id
// at the dispatch edge. The core stays idempotent through the uniqueness
// guard regardless; this guard exists to give callers a crisp
// at-most-once-submission failure instead of a downstream conflict.
package replay

import (
	"context"
	"time"
)

// Guard marks transaction ids as seen.
type Guard interface {
	// MarkSeen records the id for the given retention window. Returns
	// sentinel.ErrAlreadySeen when the id was recorded before.
	MarkSeen(ctx context.Context, txID string, ttl time.Duration) error
}
