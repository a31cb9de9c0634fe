package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"tracechain/internal/replay"
	"tracechain/pkg/platform/sentinel"
	"tracechain/pkg/requestcontext"
)

// ReplayGuard rejects a transaction id the dispatch layer has accepted
// before. Clients submit the id in X-Transaction-ID; requests without the
// header pass through (the core's uniqueness guard still protects state).
func ReplayGuard(guard replay.Guard, ttl time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			txID := r.Header.Get("X-Transaction-ID")
			if txID == "" {
				next.ServeHTTP(w, r)
				return
			}
			if err := guard.MarkSeen(r.Context(), txID, ttl); err != nil {
				if errors.Is(err, sentinel.ErrAlreadySeen) {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusConflict)
					_, _ = w.Write([]byte(`{"error":"conflict","error_description":"transaction id already submitted"}`))
					return
				}
				logger.ErrorContext(r.Context(), "replay guard unavailable",
					"error", err.Error(),
					"request_id", requestcontext.RequestID(r.Context()),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"error":"unavailable"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
