package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRequireAPIKey(t *testing.T) {
	const apiKey = "secret-key"
	h := RequireAPIKey(apiKey, NewClientGuard(nil))(okHandler)

	tests := []struct {
		name string
		key  string
		path string
		want int
	}{
		{"valid key", apiKey, "/api/v1/worlds", http.StatusOK},
		{"wrong key", "wrong-key", "/api/v1/worlds", http.StatusUnauthorized},
		{"missing key", "", "/api/v1/characters/user-1", http.StatusUnauthorized},
		{"prefix of key", "secret", "/api/v1/achievements", http.StatusUnauthorized},
		{"healthz is public", "", "/healthz", http.StatusOK},
		{"version is public", "", "/version", http.StatusOK},
		{"metrics is public", "", "/metrics", http.StatusOK},
		{"swagger is public", "", "/swagger/index.html", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.key != "" {
				req.Header.Set(HeaderAPIKey, tt.key)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	guard := NewClientGuard(nil)
	guard.limit = 3
	h := RateLimit(guard)(okHandler)

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/worlds", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, send("10.0.0.1:5000").Code)
	}

	rec := send("10.0.0.1:5001")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, retryAfterSeconds, rec.Header().Get(HeaderRetryAfter))

	// Other clients have their own window
	assert.Equal(t, http.StatusOK, send("10.0.0.2:5000").Code)
}

func TestClientGuard_ClientIP(t *testing.T) {
	guard := NewClientGuard([]string{"10.0.0.254"})

	tests := []struct {
		name      string
		peer      string
		forwarded string
		want      string
	}{
		{"direct client", "203.0.113.7:4000", "", "203.0.113.7"},
		{"untrusted peer cannot forward", "203.0.113.7:4000", "198.51.100.1", "203.0.113.7"},
		{"trusted proxy forwards last hop", "10.0.0.254:4000", "1.1.1.1, 198.51.100.1", "198.51.100.1"},
		{"trusted proxy without header", "10.0.0.254:4000", "", "10.0.0.254"},
		{"garbage hop ignored", "10.0.0.254:4000", "not-an-ip", "10.0.0.254"},
		{"remote addr without port", "203.0.113.9", "", "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.peer
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, guard.clientIP(req))
		})
	}
}

func TestSecureHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecureHeaders(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	for name, want := range securityHeaders {
		assert.Equal(t, want, rec.Header().Get(name), name)
	}
}

func TestLimitBody(t *testing.T) {
	h := LimitBody(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		if _, err := r.Body.Read(buf); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"points":{"strength":100}}`)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
