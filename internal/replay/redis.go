package replay

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"tracechain/pkg/platform/sentinel"
)

var markSeenDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "tracechain_replay_mark_seen_duration_ms",
	Help:    "Latency of replay-guard checks in milliseconds",
	Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
})

const seenKeyPrefix = "replay:txid:"

// RedisGuard is the production guard for distributed deployments where every
// instance must share the seen-id set.
type RedisGuard struct {
	client *redis.Client
}

func NewRedisGuard(client *redis.Client) *RedisGuard {
	return &RedisGuard{client: client}
}

// MarkSeen uses SETNX so the record-and-check is one atomic step; the key
// existence is what matters, the value is a marker.
func (g *RedisGuard) MarkSeen(ctx context.Context, txID string, ttl time.Duration) error {
	start := time.Now()
	defer func() {
		markSeenDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	if txID == "" {
		return nil
	}
	ok, err := g.client.SetNX(ctx, seenKeyPrefix+txID, "1", ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return sentinel.ErrAlreadySeen
	}
	return nil
}
