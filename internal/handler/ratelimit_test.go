package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(3)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "request %d", i)
	}
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "clients are limited independently")

	now = now.Add(20 * time.Second)
	assert.True(t, l.Allow("10.0.0.1"), "one token refills every 20s")
	assert.False(t, l.Allow("10.0.0.1"))
}

func TestIPRateLimiter_ForgetsIdleClients(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(1)
	l.now = func() time.Time { return now }

	l.Allow("10.0.0.1")
	l.Allow("10.0.0.2")
	assert.Len(t, l.clients, 2)

	now = now.Add(idleLimiterTTL + time.Minute)
	l.Allow("10.0.0.3")
	assert.Len(t, l.clients, 1)
}

func TestRateLimitMiddleware(t *testing.T) {
	l := NewIPRateLimiter(1)
	limited := 0
	h := RateLimit(l, func(w http.ResponseWriter, r *http.Request) {
		limited++
		w.WriteHeader(http.StatusTooManyRequests)
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "203.0.113.9:5555"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req.RemoteAddr = "203.0.113.9:6666"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, 1, limited)
}
