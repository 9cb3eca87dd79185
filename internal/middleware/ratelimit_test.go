package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func rateLimitedServe(mw *RateLimitMiddleware, path string, ip string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = ip + ":12345"
	rec := httptest.NewRecorder()

	mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	return rec.Code
}

func TestRateLimitMiddleware_Defaults(t *testing.T) {
	t.Parallel()

	mw := NewRateLimitMiddleware(0, -1)
	assert.Equal(t, 100, mw.generalRPM)
	assert.Equal(t, 10, mw.authRPM)
}

func TestRateLimitMiddleware_GeneralBucket(t *testing.T) {
	t.Parallel()

	mw := NewRateLimitMiddleware(2, 1)

	assert.Equal(t, http.StatusOK, rateLimitedServe(mw, "/api/v1/products", "10.0.0.1"))
	assert.Equal(t, http.StatusOK, rateLimitedServe(mw, "/api/v1/products", "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, rateLimitedServe(mw, "/api/v1/products", "10.0.0.1"))

	// Another client has its own bucket.
	assert.Equal(t, http.StatusOK, rateLimitedServe(mw, "/api/v1/products", "10.0.0.2"))
}

func TestRateLimitMiddleware_AuthBucketIsTighter(t *testing.T) {
	t.Parallel()

	mw := NewRateLimitMiddleware(10, 1)

	assert.Equal(t, http.StatusOK, rateLimitedServe(mw, "/api/v1/auth/login", "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, rateLimitedServe(mw, "/api/v1/auth/login", "10.0.0.1"))

	// The general bucket for the same client is untouched.
	assert.Equal(t, http.StatusOK, rateLimitedServe(mw, "/api/v1/products", "10.0.0.1"))
}

func TestRateLimitMiddleware_TooManyRequestsBody(t *testing.T) {
	t.Parallel()

	mw := NewRateLimitMiddleware(1, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.RemoteAddr = "10.0.0.9:12345"

	first := httptest.NewRecorder()
	mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(first, req)

	second := httptest.NewRecorder()
	mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(second, req)

	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))
	assert.Contains(t, second.Body.String(), "RATE_LIMITED")
}

func TestExtractClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{name: "remote addr host", remoteAddr: "192.168.1.5:43210", want: "192.168.1.5"},
		{name: "x-forwarded-for takes the first hop", remoteAddr: "10.0.0.1:1", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"}, want: "203.0.113.7"},
		{name: "x-real-ip fallback", remoteAddr: "10.0.0.1:1", headers: map[string]string{"X-Real-IP": "203.0.113.9"}, want: "203.0.113.9"},
		{name: "empty remote addr", remoteAddr: "", want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, extractClientIP(req))
		})
	}
}
