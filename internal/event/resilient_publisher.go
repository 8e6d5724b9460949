package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/QuestAcademy_Go/internal/logger"
)

type retryEntry struct {
	event     Event
	attempt   int
	lastErr   error
	notBefore time.Time
	// pending is set when the bus reported which handlers failed
	pending   *DeliveryError
}

func (e *retryEntry) fail(err error) {
	e.lastErr = err
	e.pending = nil
	var de *DeliveryError
	if errors.As(err, &de) {
		e.pending = de
	}
}

// ResilientPublisher wraps an event Bus with a retry queue and a dead-letter file.
// The first publish attempt is synchronous; failures are retried in the background
// with exponential backoff and dead-lettered once maxRetries is exhausted.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewResilientPublisher creates a publisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	if maxRetries <= 0 {
		maxRetries = RetryMaxAttempts
	}
	if retryDelay <= 0 {
		retryDelay = RetryInitialDelaySeconds * time.Second
	}

	p := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	p.wg.Add(1)
	go p.retryWorker()

	return p, nil
}

// PublishWithRetry publishes an event, queuing it for retry on failure. It never blocks on retries.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err)

	entry := retryEntry{
		event:     event,
		attempt:   1,
		notBefore: time.Now().Add(CalculateRetryDelay(p.retryDelay, 1)),
	}
	entry.fail(err)
	p.enqueue(entry)
}

// Publish satisfies Bus so the publisher can stand in for the bus it wraps
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	p.PublishWithRetry(ctx, event)
	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) enqueue(entry retryEntry) {
	select {
	case p.retryQueue <- entry:
	default:
		logger.Warn(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		p.writeDeadLetter(entry)
	}
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.shutdown:
			p.drain()
			return
		case entry := <-p.retryQueue:
			if wait := time.Until(entry.notBefore); wait > 0 {
				timer := time.NewTimer(wait)
				select {
				case <-timer.C:
				case <-p.shutdown:
					timer.Stop()
					p.attempt(entry, true)
					p.drain()
					return
				}
			}
			p.attempt(entry, false)
		}
	}
}

// attempt retries one entry. final disables requeueing during shutdown.
// Only the handlers that failed last time are called again when known.
func (p *ResilientPublisher) attempt(entry retryEntry, final bool) {
	var err error
	if entry.pending != nil {
		err = entry.pending.Redeliver(context.Background(), entry.event)
	} else {
		err = p.bus.Publish(context.Background(), entry.event)
	}
	if err == nil {
		logger.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", entry.attempt)
		return
	}

	entry.fail(err)
	if final || entry.attempt >= p.maxRetries {
		logger.Warn(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempts", entry.attempt+1)
		p.writeDeadLetter(entry)
		return
	}

	logger.Warn(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", entry.attempt, "error", err)
	entry.attempt++
	entry.notBefore = time.Now().Add(CalculateRetryDelay(p.retryDelay, entry.attempt))
	p.enqueue(entry)
}

func (p *ResilientPublisher) drain() {
	drained := 0
	for {
		select {
		case entry := <-p.retryQueue:
			p.attempt(entry, true)
			drained++
		default:
			if drained > 0 {
				logger.Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (p *ResilientPublisher) writeDeadLetter(entry retryEntry) {
	if p.deadLetter == nil {
		logger.Error(LogMsgEventDroppedShutdown, "event_type", entry.event.Type)
		return
	}
	lastErr := entry.lastErr
	if lastErr == nil {
		lastErr = errors.New("unknown publish failure")
	}
	if err := p.deadLetter.Write(entry.event, entry.attempt+1, lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "event_type", entry.event.Type, "error", err)
	}
}

// Shutdown stops the retry worker after draining the queue and closes the dead-letter file
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.closeOnce.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}

	if p.deadLetter != nil {
		return p.deadLetter.Close()
	}
	return nil
}
