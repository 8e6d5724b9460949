package server

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/QuestAcademy_Go/internal/logger"
)

// clientWindow counts one client's activity inside a fixed window.
// The LRU entry is never re-added, so it expires guardWindow after the first request.
type clientWindow struct {
	mu         sync.Mutex
	requests   int
	failedAuth int
}

// ClientGuard tracks request volume and failed API key attempts per client IP
type ClientGuard struct {
	mu      sync.Mutex
	clients *expirable.LRU[string, *clientWindow]
	trusted map[string]struct{}
	limit   int
}

// NewClientGuard creates a guard. X-Forwarded-For is only honoured for requests from trustedProxies.
func NewClientGuard(trustedProxies []string) *ClientGuard {
	trusted := make(map[string]struct{}, len(trustedProxies))
	for _, p := range trustedProxies {
		trusted[strings.TrimSpace(p)] = struct{}{}
	}
	return &ClientGuard{
		clients: expirable.NewLRU[string, *clientWindow](guardMaxClients, nil, guardWindow),
		trusted: trusted,
		limit:   maxRequestsPerWindow,
	}
}

func (g *ClientGuard) window(ip string) *clientWindow {
	g.mu.Lock()
	defer g.mu.Unlock()

	if w, ok := g.clients.Get(ip); ok {
		return w
	}
	w := &clientWindow{}
	g.clients.Add(ip, w)
	return w
}

// allow counts a request and reports whether the client is still under the limit
func (g *ClientGuard) allow(ip string) bool {
	w := g.window(ip)
	w.mu.Lock()
	defer w.mu.Unlock()

	w.requests++
	if w.requests <= g.limit {
		return true
	}
	if (w.requests-g.limit)%highRateLogEvery == 1 {
		logger.Warn(SecurityAlertHighRate, "ip", ip, "requests", w.requests)
	}
	return false
}

func (g *ClientGuard) recordFailedAuth(ip string) {
	w := g.window(ip)
	w.mu.Lock()
	w.failedAuth++
	n := w.failedAuth
	w.mu.Unlock()

	if n >= failedAuthAlertThreshold {
		logger.Warn(SecurityAlertFailedAuth, "ip", ip, "count", n)
	}
}

// clientIP is the peer address, or the last X-Forwarded-For hop when the peer is a trusted proxy
func (g *ClientGuard) clientIP(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if _, ok := g.trusted[peer]; !ok {
		return peer
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return peer
	}
	hops := strings.Split(forwarded, ",")
	if hop := strings.TrimSpace(hops[len(hops)-1]); net.ParseIP(hop) != nil {
		return hop
	}
	return peer
}

func isPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// RequireAPIKey rejects requests outside PublicPaths that lack the shared API key
func RequireAPIKey(apiKey string, guard *ClientGuard) func(http.Handler) http.Handler {
	want := []byte(apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			got := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(got), want) != 1 {
				ip := guard.clientIP(r)
				guard.recordFailedAuth(ip)
				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed, "ip", ip, "path", r.URL.Path, "has_key", got != "")
				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit answers 429 once a client exceeds maxRequestsPerWindow in the current window
func RateLimit(guard *ClientGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := guard.clientIP(r)
			if !guard.allow(ip) {
				w.Header().Set(HeaderRetryAfter, retryAfterSeconds)
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LimitBody caps request bodies at maxBytes
func LimitBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SecureHeaders sets the static hardening headers on every response
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for name, value := range securityHeaders {
			h.Set(name, value)
		}
		next.ServeHTTP(w, r)
	})
}
