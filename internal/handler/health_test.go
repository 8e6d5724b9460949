package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

func TestHandleHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	HandleHealthz().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestHandleReadyz(t *testing.T) {
	tests := []struct {
		name     string
		pingErr  error
		want     int
		status   string
		checkErr string
	}{
		{"store reachable", nil, http.StatusOK, "ok", ""},
		{"store down", errors.New("dial tcp 10.0.0.5:5432: connection refused"), http.StatusServiceUnavailable, "unavailable", "unreachable"},
		{"ping timed out", context.DeadlineExceeded, http.StatusServiceUnavailable, "unavailable", "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &MockDBPool{}
			db.On("Ping", mock.MatchedBy(func(ctx context.Context) bool {
				_, hasDeadline := ctx.Deadline()
				return hasDeadline
			})).Return(tt.pingErr)

			w := httptest.NewRecorder()
			HandleReadyz(db).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.want, w.Code)
			assert.NotContains(t, w.Body.String(), "10.0.0.5")

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.status, resp.Status)
			require.Contains(t, resp.Checks, "database")
			assert.Equal(t, tt.status, resp.Checks["database"].Status)
			assert.Equal(t, tt.checkErr, resp.Checks["database"].Error)
			db.AssertExpectations(t)
		})
	}
}

func TestHandleReadyz_BoundsPing(t *testing.T) {
	db := &MockDBPool{}
	db.On("Ping", mock.Anything).Run(func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		deadline, _ := ctx.Deadline()
		assert.WithinDuration(t, time.Now().Add(readinessTimeout), deadline, time.Second)
	}).Return(nil)

	HandleReadyz(db).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/readyz", nil))
	db.AssertExpectations(t)
}

func TestHandleVersion(t *testing.T) {
	w := httptest.NewRecorder()
	HandleVersion().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var info VersionInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "quest-academy", info.Service)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.NotEmpty(t, info.Version)
}
