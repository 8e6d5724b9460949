package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/QuestAcademy_Go/internal/config"
	"github.com/osse101/QuestAcademy_Go/internal/event"
)

// EventSystem pairs the in-process bus with the retrying publisher services write through.
// Subscribers register on Bus; producers only ever see Publisher.
type EventSystem struct {
	Bus       *event.MemoryBus
	Publisher *event.ResilientPublisher
}

// NewEventSystem builds the bus and starts the publisher's retry worker.
// Non-positive retry settings fall back to the publisher defaults.
func NewEventSystem(cfg *config.Config) (*EventSystem, error) {
	deadLetter := cfg.EventDeadLetterPath
	if deadLetter == "" {
		deadLetter = defaultDeadLetterPath
	}

	bus := event.NewMemoryBus()
	publisher, err := event.NewResilientPublisher(bus, cfg.EventMaxRetries, cfg.EventRetryDelay, deadLetter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgEventSystem, err)
	}

	slog.Info(LogMsgEventSystemReady,
		"max_retries", cfg.EventMaxRetries,
		"retry_delay", cfg.EventRetryDelay,
		"deadletter_path", deadLetter)

	return &EventSystem{Bus: bus, Publisher: publisher}, nil
}
