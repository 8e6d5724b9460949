package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/osse101/QuestAcademy_Go/internal/event"
)

func TestEventMetricsCollector_HandleEvent(t *testing.T) {
	c := NewEventMetricsCollector()
	ctx := context.Background()

	t.Run("AnswerRecorded", func(t *testing.T) {
		answers := AnswersRecorded.WithLabelValues("metrics-test-math", "true")
		before, xpBefore := testutil.ToFloat64(answers), testutil.ToFloat64(XPAwarded)

		assert.NoError(t, c.HandleEvent(ctx, event.NewAnswerRecordedEvent("user-1", "metrics-test-math", true, 15)))

		assert.Equal(t, before+1, testutil.ToFloat64(answers))
		assert.Equal(t, xpBefore+15, testutil.ToFloat64(XPAwarded))
	})

	t.Run("LevelUpCountsEveryLevel", func(t *testing.T) {
		before := testutil.ToFloat64(LevelUps)
		assert.NoError(t, c.HandleEvent(ctx, event.NewCharacterLevelUpEvent("user-1", 2, 5, 9)))
		assert.Equal(t, before+3, testutil.ToFloat64(LevelUps))
	})

	t.Run("UndecodablePayload", func(t *testing.T) {
		bad := event.Event{Type: event.WorldUnlocked, Payload: "not a payload"}
		undecodable := EventsUndecodable.WithLabelValues(string(event.WorldUnlocked))
		before := testutil.ToFloat64(undecodable)

		assert.NoError(t, c.HandleEvent(ctx, bad))
		assert.Equal(t, before+1, testutil.ToFloat64(undecodable))
	})

	t.Run("UnknownTypeOnlyObserved", func(t *testing.T) {
		observed := EventsObserved.WithLabelValues("metrics.test")
		assert.NoError(t, c.HandleEvent(ctx, event.Event{Type: "metrics.test"}))
		assert.Equal(t, float64(1), testutil.ToFloat64(observed))
	})
}

func TestEventMetricsCollector_Register(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)

	unlocked := WorldsUnlocked.WithLabelValues("metrics-test-world")
	before := testutil.ToFloat64(unlocked)

	assert.NoError(t, bus.Publish(context.Background(), event.NewWorldUnlockedEvent("user-2", "metrics-test-world")))
	assert.Equal(t, before+1, testutil.ToFloat64(unlocked))
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/metrics-test/{userID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	for _, user := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics-test/"+user, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics-test-missing", nil))

	assert.Equal(t, float64(2), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-test/{userID}", "202")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")), float64(1))
	assert.Equal(t, float64(0), testutil.ToFloat64(HTTPRequestsInFlight))
}
