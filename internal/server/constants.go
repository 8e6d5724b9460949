package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

const (
	SecurityAlertFailedAuth = "Repeated API key failures from client"
	SecurityAlertHighRate   = "Client over request limit"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
)

const (
	HeaderAPIKey        = "X-API-Key"
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	HeaderForwardedFor  = "X-Forwarded-For"
	HeaderRetryAfter    = "Retry-After"
)

// securityHeaders are set on every response
var securityHeaders = map[string]string{
	"X-Content-Type-Options": "nosniff",
	"X-Frame-Options":        "DENY",
	"Referrer-Policy":        "no-referrer",
	"Cache-Control":          "no-store",
}

// Per-client limits, counted over one fixed window per IP
const (
	guardWindow              = 5 * time.Minute
	guardMaxClients          = 10000
	failedAuthAlertThreshold = 5
	maxRequestsPerWindow     = 1000
	highRateLogEvery         = 100
	retryAfterSeconds        = "300"
)

const (
	maxRequestBodyBytes = 1 << 20
	readHeaderTimeout   = 5 * time.Second
)

// PublicPaths bypass authentication
var PublicPaths = []string{
	"/swagger/",
	"/healthz",
	"/readyz",
	"/version",
	"/metrics",
}

// RedactedValue replaces secret header values in logs
const RedactedValue = "[REDACTED]"
