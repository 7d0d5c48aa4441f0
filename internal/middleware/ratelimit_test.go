// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/storefront/internal/core"
)

func TestRateLimiter_LocalFallbackLimitsPerKey(t *testing.T) {
	rl := NewRateLimiter(t.Context(), nil, RateLimitConfig{
		Limit:   PerMinute(2, 2),
		KeyFunc: KeyByClient,
	})
	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(clientID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/signin", nil)
		req = req.WithContext(WithClientID(req.Context(), clientID))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send("a").Code)
	assert.Equal(t, http.StatusOK, send("a").Code)

	limited := send("a")
	require.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))

	var body core.Response
	require.NoError(t, json.NewDecoder(limited.Body).Decode(&body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "RATE_LIMITED", body.Error.Code)

	assert.Equal(t, http.StatusOK, send("b").Code, "other clients keep their own budget")
}

func TestRateLimiter_Bypass(t *testing.T) {
	rl := NewRateLimiter(t.Context(), nil, RateLimitConfig{
		Limit:      PerMinute(1, 1),
		BypassFunc: func(*http.Request) bool { return true },
	})
	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestLocalLimiter_SweepStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := newLocalLimiter(ctx)

	cancel()

	select {
	case <-l.done:
	case <-time.After(time.Second):
		t.Fatal("sweeper still running after cancel")
	}
}

func TestLocalLimiter_SweepDropsIdleBuckets(t *testing.T) {
	l := newLocalLimiter(t.Context())
	limit := PerMinute(5, 5)

	_, err := l.allow("idle", limit)
	require.NoError(t, err)
	_, err = l.allow("busy", limit)
	require.NoError(t, err)

	v, ok := l.limiters.Load("idle")
	require.True(t, ok)
	v.(*limiterEntry).lastAccess.Store(time.Now().Add(-2 * entryTTL).Unix())

	l.sweep(time.Now())

	_, idle := l.limiters.Load("idle")
	_, busy := l.limiters.Load("busy")
	assert.False(t, idle)
	assert.True(t, busy)
}

func TestKeyByIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "ratelimit:ip:10.0.0.1", KeyByIP(req))

	req.Header.Set("X-Forwarded-For", "1.1.1.1, 2.2.2.2")
	assert.Equal(t, "ratelimit:ip:2.2.2.2", KeyByIP(req))
}

func TestKeyByClientAndEndpoint(t *testing.T) {
	req := httptest.NewRequest(
		http.MethodGet,
		"/v1/items/123/parts/0190b7a4-2f6e-7c1a-9d55-4b3a2f1e0d9c",
		nil,
	)
	req = req.WithContext(WithClientID(req.Context(), "c1"))

	assert.Equal(
		t,
		"ratelimit:client:c1:endpoint:/v1/items/{id}/parts/{id}",
		KeyByClientAndEndpoint(req),
	)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "from-proxy")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "from-proxy", seen)
}
