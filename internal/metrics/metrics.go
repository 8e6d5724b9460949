package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quest_academy"

// Subsystems group the series under a common prefix, e.g. quest_academy_http_requests_total
const (
	subsystemHTTP        = "http"
	subsystemEvents      = "events"
	subsystemProgression = "progression"
)

// httpLatencyBuckets span 1ms to 10s
var httpLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		counterOpts(subsystemHTTP, "requests_total", "HTTP requests served, by route pattern and status."),
		[]string{LabelMethod, LabelRoute, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystemHTTP,
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   httpLatencyBuckets,
	}, []string{LabelMethod, LabelRoute})

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystemHTTP,
		Name:      "requests_in_flight",
		Help:      "HTTP requests currently being served.",
	})
)

var (
	EventsObserved = promauto.NewCounterVec(
		counterOpts(subsystemEvents, "observed_total", "Domain events seen on the bus."),
		[]string{LabelType},
	)

	EventsUndecodable = promauto.NewCounterVec(
		counterOpts(subsystemEvents, "undecodable_total", "Domain events whose payload did not match the expected version."),
		[]string{LabelType},
	)
)

// Progression counters are fed by the event collector, except where a service
// records an outcome that never produces an event.
var (
	AnswersRecorded = promauto.NewCounterVec(
		counterOpts(subsystemProgression, "answers_total", "Answers recorded, by subject and correctness."),
		[]string{LabelSubject, LabelCorrect},
	)

	XPAwarded = promauto.NewCounter(counterOpts(subsystemProgression, "xp_awarded_total", "Experience granted to characters."))

	LevelUps = promauto.NewCounter(counterOpts(subsystemProgression, "level_ups_total", "Character levels gained."))

	WorldsUnlocked = promauto.NewCounterVec(
		counterOpts(subsystemProgression, "worlds_unlocked_total", "First-time world unlocks."),
		[]string{LabelWorld},
	)

	AchievementsAwarded = promauto.NewCounterVec(
		counterOpts(subsystemProgression, "achievements_awarded_total", "Achievements awarded, by id and rarity."),
		[]string{LabelAchievement, LabelRarity},
	)

	AchievementChecks = promauto.NewCounterVec(
		counterOpts(subsystemProgression, "achievement_checks_total", "Achievement evaluations, by what triggered them."),
		[]string{LabelTrigger},
	)

	StatPointsAllocated = promauto.NewCounterVec(
		counterOpts(subsystemProgression, "stat_points_allocated_total", "Stat points spent, by stat."),
		[]string{LabelStat},
	)

	Respecs = promauto.NewCounterVec(
		counterOpts(subsystemProgression, "respecs_total", "Respec attempts, by outcome."),
		[]string{LabelOutcome},
	)
)

func counterOpts(subsystem, name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}
}
