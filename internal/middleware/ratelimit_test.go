package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func rateLimitedHandler(m *RateLimitMiddleware, maxRequests, windowSeconds int) http.Handler {
	return m.RateLimit(maxRequests, windowSeconds)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func doRequest(handler http.Handler, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodGet, "/api/lookup", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit_ExceededReturns429(t *testing.T) {
	m := NewRateLimitMiddleware()
	handler := rateLimitedHandler(m, 2, 60)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1234"))
	}
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "10.0.0.1:1234"))

	// A different client is unaffected.
	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.2:1234"))
}

func TestRateLimit_WindowExpiryFreesBudget(t *testing.T) {
	clock := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	m := NewRateLimitMiddleware()
	m.now = func() time.Time { return clock }
	handler := rateLimitedHandler(m, 2, 60)

	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "10.0.0.1:1234"))

	// Once the window has passed, the old timestamps expire and the
	// client's budget is restored.
	clock = clock.Add(61 * time.Second)
	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1234"))
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{"remote addr with port", "10.0.0.1:1234", nil, "10.0.0.1"},
		{"x-forwarded-for first entry", "10.0.0.1:1234", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "203.0.113.7"},
		{"x-real-ip", "10.0.0.1:1234", map[string]string{"X-Real-IP": "203.0.113.9"}, "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/lookup", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, getClientIP(req))
		})
	}
}
