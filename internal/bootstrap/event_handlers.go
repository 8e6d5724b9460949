package bootstrap

import (
	"log/slog"

	"github.com/osse101/QuestAcademy_Go/internal/achievement"
	"github.com/osse101/QuestAcademy_Go/internal/event"
	"github.com/osse101/QuestAcademy_Go/internal/eventlog"
	"github.com/osse101/QuestAcademy_Go/internal/metrics"
)

// EventHandlerDependencies are the consumers wired onto the event bus
type EventHandlerDependencies struct {
	EventBus           event.Bus
	AchievementService achievement.Service
	JobQueue           achievement.JobQueue
	EventLogService    eventlog.Service
}

type subscription struct {
	name   string
	attach func(event.Bus)
}

// subscriptions lists bus consumers in attach order, which the bus also uses
// for delivery
func (d EventHandlerDependencies) subscriptions() []subscription {
	return []subscription{
		{"metrics", metrics.NewEventMetricsCollector().Register},
		{"achievements", achievement.NewEventHandler(d.AchievementService, d.JobQueue).Register},
		{"activity_log", d.EventLogService.Subscribe},
	}
}

// RegisterEventHandlers attaches every consumer to deps.EventBus
func RegisterEventHandlers(deps EventHandlerDependencies) {
	subs := deps.subscriptions()
	names := make([]string, 0, len(subs))
	for _, s := range subs {
		s.attach(deps.EventBus)
		names = append(names, s.name)
	}
	slog.Info(LogMsgSubscribersAttached, "subscribers", names)
}
