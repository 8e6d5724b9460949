package achievement

import (
	"context"
	"fmt"

	"github.com/osse101/QuestAcademy_Go/internal/event"
	"github.com/osse101/QuestAcademy_Go/internal/logger"
	"github.com/osse101/QuestAcademy_Go/internal/metrics"
	"github.com/osse101/QuestAcademy_Go/internal/worker"
)

// JobQueue accepts background jobs without blocking
type JobQueue interface {
	TryEnqueue(job worker.Job) bool
}

// EventHandler schedules achievement checks after learning activity
type EventHandler struct {
	service Service
	queue   JobQueue
}

// NewEventHandler creates a new achievement event handler
func NewEventHandler(service Service, queue JobQueue) *EventHandler {
	return &EventHandler{
		service: service,
		queue:   queue,
	}
}

// Register subscribes the handler to relevant events
func (h *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.AnswerRecorded, h.HandleAnswerRecorded)
	bus.Subscribe(event.CharacterLevelUp, h.HandleCharacterLevelUp)
}

// HandleAnswerRecorded queues a check for the answering user
func (h *EventHandler) HandleAnswerRecorded(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.AnswerRecordedPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgDecodePayloadFailed, err)
	}
	h.queueCheck(ctx, payload.UserID, evt.Type)
	return nil
}

// HandleCharacterLevelUp queues a check so level achievements are granted
func (h *EventHandler) HandleCharacterLevelUp(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.CharacterLevelUpPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgDecodePayloadFailed, err)
	}
	h.queueCheck(ctx, payload.UserID, evt.Type)
	return nil
}

func (h *EventHandler) queueCheck(ctx context.Context, userID string, trigger event.Type) {
	log := logger.FromContext(ctx)

	// The job outlives the request, so only its id is carried over
	requestID, traced := logger.RequestIDFromContext(ctx)
	job := worker.Named(CheckJobName, worker.JobFunc(func(jobCtx context.Context) error {
		if traced {
			jobCtx = logger.WithRequestID(jobCtx, requestID)
		}
		metrics.AchievementChecks.WithLabelValues(metrics.TriggerEvent).Inc()
		_, err := h.service.CheckAndAward(jobCtx, userID)
		return err
	}))

	// A dropped check is picked up by the next sweep
	if !h.queue.TryEnqueue(job) {
		log.Warn(LogMsgAchievementCheckDropped, "user_id", userID, "trigger", trigger)
		return
	}
	log.Debug(LogMsgAchievementCheckQueued, "user_id", userID, "trigger", trigger)
}
