package handler

import (
	"context"
	"errors"
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/osse101/QuestAcademy_Go/internal/database"
	"github.com/osse101/QuestAcademy_Go/internal/logger"
)

const readinessTimeout = 2 * time.Second

const (
	statusOK          = "ok"
	statusUnavailable = "unavailable"
	checkDatabase     = "database"
)

// Version is set with -ldflags "-X .../internal/handler.Version=..."; VERSION overrides "dev"
var Version = "dev"

// HealthResponse is the liveness and readiness body
type HealthResponse struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is the outcome of one readiness dependency
type CheckResult struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// VersionInfo describes the running build
type VersionInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Revision  string `json:"revision,omitempty"`
	BuiltAt   string `json:"built_at,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
}

// HandleHealthz reports that the process is serving
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: statusOK})
	}
}

// HandleReadyz reports ready once the progress store answers a ping within readinessTimeout
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(dbPool database.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := probe(r.Context(), dbPool.Ping)

		resp := HealthResponse{Status: statusOK, Checks: map[string]CheckResult{checkDatabase: result}}
		code := http.StatusOK
		if result.Status != statusOK {
			logger.FromContext(r.Context()).Error("Readiness check failed", "check", checkDatabase, "error", result.Error)
			resp.Status = statusUnavailable
			code = http.StatusServiceUnavailable
		}
		respondJSON(w, code, resp)
	}
}

// probe runs ping under readinessTimeout. Driver errors are not echoed to the caller.
func probe(ctx context.Context, ping func(context.Context) error) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	result := CheckResult{Status: statusOK, LatencyMS: time.Since(start).Milliseconds()}

	switch {
	case err == nil:
	case errors.Is(err, context.DeadlineExceeded):
		result.Status, result.Error = statusUnavailable, "timeout"
	default:
		result.Status, result.Error = statusUnavailable, "unreachable"
	}
	return result
}

// HandleVersion returns the build description
// @Summary Build version
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion() http.HandlerFunc {
	info := buildInfo()
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, info)
	}
}

func buildInfo() VersionInfo {
	info := VersionInfo{
		Service:   logger.DefaultServiceName,
		Version:   Version,
		GoVersion: runtime.Version(),
	}
	if info.Version == "dev" {
		if v := os.Getenv("VERSION"); v != "" {
			info.Version = v
		}
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.time":
			info.BuiltAt = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}
