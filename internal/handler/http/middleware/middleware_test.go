package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func okHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true}`))
	})
}

func TestAuthRequired(t *testing.T) {
	svc := jwt.NewJWTService("secret", "15m")
	calls := 0
	h := jwtauth.Verifier(svc.JWTAuth())(AuthRequired(svc.JWTAuth())(okHandler(&calls)))

	t.Run("access token", func(t *testing.T) {
		token, _, err := svc.GenerateAccessToken("user-1", "ana@example.com", "hr")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-access token", func(t *testing.T) {
		_, token, err := svc.JWTAuth().Encode(map[string]interface{}{"user_id": "user-1", "type": "refresh"})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	assert.Equal(t, 1, calls)
}

func TestRateLimit(t *testing.T) {
	calls := 0
	h := RateLimit(NewClientRateLimiter(rate.Limit(0.001), 2))(okHandler(&calls))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 3, calls)
}

func TestClientRateLimiter_Sweep(t *testing.T) {
	now := time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC)
	limiter := NewClientRateLimiter(rate.Limit(1), 1)
	limiter.now = func() time.Time { return now }

	limiter.GetLimiter("ip:10.0.0.1")
	limiter.GetLimiter("user:idle")
	now = now.Add(DefaultLimiterIdleTTL - time.Minute)
	limiter.GetLimiter("ip:10.0.0.1")
	assert.Equal(t, 2, limiter.Len())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, limiter.Sweep())
	assert.Equal(t, 1, limiter.Len())

	now = now.Add(DefaultLimiterIdleTTL + time.Second)
	assert.Equal(t, 1, limiter.Sweep())
	assert.Zero(t, limiter.Len())
}

type memoryIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]cache.CachedResponse
	locks   map[string]bool
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{entries: map[string]cache.CachedResponse{}, locks: map[string]bool{}}
}

func (m *memoryIdempotencyStore) Get(_ context.Context, key string) (*cache.CachedResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if resp, ok := m.entries[key]; ok {
		return &resp, nil
	}
	return nil, nil
}

func (m *memoryIdempotencyStore) Acquire(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[key] {
		return false, nil
	}
	m.locks[key] = true
	return true, nil
}

func (m *memoryIdempotencyStore) Save(_ context.Context, key string, resp cache.CachedResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = resp
	return nil
}

func (m *memoryIdempotencyStore) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, key)
	return nil
}

func TestIdempotency_ReplaysCompletedResponse(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0
	h := Idempotency(store)(okHandler(&calls))

	send := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll", strings.NewReader(`{}`))
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := send("abc")
	second := send("abc")

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
	assert.Equal(t, 1, calls)

	send("other")
	send("")
	assert.Equal(t, 3, calls)
	assert.Empty(t, store.locks)
}

func TestIdempotency_InFlightDuplicate(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0
	h := Idempotency(store)(okHandler(&calls))
	_, err := store.Acquire(context.Background(), cache.Key("/api/v1/payroll", "", "abc"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll", strings.NewReader(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "PROCESSING")
	assert.Zero(t, calls)
}

func TestIdempotency_FailedResponseNotCached(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0
	h := Idempotency(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll", nil)
		req.Header.Set(IdempotencyKeyHeader, "abc")
		h.ServeHTTP(httptest.NewRecorder(), req)
	}
	assert.Equal(t, 2, calls)
	assert.Empty(t, store.entries)
}
