package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cache"
)

const IdempotencyKeyHeader = "Idempotency-Key"

// IdempotencyStore is implemented by *cache.IdempotencyStore.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*cache.CachedResponse, error)
	Acquire(ctx context.Context, key string) (bool, error)
	Save(ctx context.Context, key string, resp cache.CachedResponse) error
	Release(ctx context.Context, key string) error
}

type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// Idempotency replays the first successful response for a repeated Idempotency-Key
// and rejects duplicates that arrive while the first is still in flight.
func Idempotency(store IdempotencyStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idempKey := r.Header.Get(IdempotencyKeyHeader)
			if idempKey == "" || r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			key := cache.Key(r.URL.Path, UserIDFromContext(ctx), idempKey)

			cached, err := store.Get(ctx, key)
			if err != nil {
				slog.WarnContext(ctx, "idempotency lookup failed", "error", err)
			}
			if cached != nil {
				w.Header().Set("Content-Type", cached.ContentType)
				w.Header().Set("Idempotent-Replayed", "true")
				w.WriteHeader(cached.StatusCode)
				_, _ = w.Write(cached.Body)
				return
			}

			acquired, err := store.Acquire(ctx, key)
			if err != nil {
				slog.WarnContext(ctx, "idempotency lock failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !acquired {
				response.Processing(w, "A request with this Idempotency-Key is still being processed")
				return
			}
			defer func() {
				if err := store.Release(context.WithoutCancel(ctx), key); err != nil {
					slog.WarnContext(ctx, "idempotency unlock failed", "error", err)
				}
			}()

			rec := &responseRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			if rec.status >= 200 && rec.status < 300 {
				if err := store.Save(context.WithoutCancel(ctx), key, cache.CachedResponse{
					StatusCode:  rec.status,
					ContentType: w.Header().Get("Content-Type"),
					Body:        rec.body.Bytes(),
				}); err != nil {
					slog.WarnContext(ctx, "idempotency save failed", "error", err)
				}
			}
		})
	}
}
