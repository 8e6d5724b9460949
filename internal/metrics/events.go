package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/QuestAcademy_Go/internal/event"
	"github.com/osse101/QuestAcademy_Go/internal/logger"
)

// recorder turns one event payload into counter updates
type recorder func(payload any) error

// recordAs adapts a typed recording function to a recorder
func recordAs[T any](fn func(T)) recorder {
	return func(payload any) error {
		p, err := event.DecodePayload[T](payload)
		if err != nil {
			return err
		}
		fn(p)
		return nil
	}
}

var recorders = map[event.Type]recorder{
	event.AnswerRecorded: recordAs(func(p event.AnswerRecordedPayloadV1) {
		AnswersRecorded.WithLabelValues(p.SubjectID, strconv.FormatBool(p.Correct)).Inc()
		XPAwarded.Add(float64(p.XPGained))
	}),
	event.CharacterLevelUp: recordAs(func(p event.CharacterLevelUpPayloadV1) {
		LevelUps.Add(float64(p.NewLevel - p.OldLevel))
	}),
	event.WorldUnlocked: recordAs(func(p event.WorldUnlockedPayloadV1) {
		WorldsUnlocked.WithLabelValues(p.WorldID).Inc()
	}),
	event.AchievementUnlocked: recordAs(func(p event.AchievementUnlockedPayloadV1) {
		AchievementsAwarded.WithLabelValues(p.AchievementID, p.Rarity).Inc()
	}),
	event.CharacterRespec: func(any) error {
		Respecs.WithLabelValues(OutcomePerformed).Inc()
		return nil
	},
}

// EventMetricsCollector mirrors bus traffic into prometheus counters
type EventMetricsCollector struct{}

func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes the collector to every event type it records
func (c *EventMetricsCollector) Register(bus event.Bus) {
	for eventType := range recorders {
		bus.Subscribe(eventType, c.HandleEvent)
	}
}

// HandleEvent never returns an error; a bad payload only bumps EventsUndecodable
func (c *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsObserved.WithLabelValues(string(evt.Type)).Inc()

	record, ok := recorders[evt.Type]
	if !ok {
		return nil
	}
	if err := record(evt.Payload); err != nil {
		EventsUndecodable.WithLabelValues(string(evt.Type)).Inc()
		logger.FromContext(ctx).Debug(LogMsgEventPayloadUndecodable, "type", evt.Type, "error", err)
	}
	return nil
}
