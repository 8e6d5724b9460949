package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/QuestAcademy_Go/internal/event"
	"github.com/osse101/QuestAcademy_Go/internal/scheduler"
	"github.com/osse101/QuestAcademy_Go/internal/server"
	"github.com/osse101/QuestAcademy_Go/internal/worker"
)

// ShutdownComponents lists what GracefulShutdown stops. Nil fields are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	ResilientPublisher *event.ResilientPublisher
}

type shutdownStep struct {
	name string
	stop func(ctx context.Context) error
}

// GracefulShutdown stops the server first and the event publisher last, so that
// achievement checks still draining from the worker pool can publish.
// A failing step is logged and the remaining steps still run.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShutdownStarted)

	for _, step := range c.steps() {
		slog.Info(LogMsgShutdownStep, "component", step.name)
		if err := step.stop(ctx); err != nil {
			slog.Error(LogMsgShutdownStepFailed, "component", step.name, "error", err)
		}
	}

	slog.Info(LogMsgShutdownComplete)
}

func (c ShutdownComponents) steps() []shutdownStep {
	var steps []shutdownStep
	if c.Server != nil {
		steps = append(steps, shutdownStep{"http server", c.Server.Stop})
	}
	if c.Scheduler != nil {
		steps = append(steps, shutdownStep{"scheduler", func(context.Context) error {
			c.Scheduler.Stop()
			return nil
		}})
	}
	if c.WorkerPool != nil {
		steps = append(steps, shutdownStep{"worker pool", func(ctx context.Context) error {
			return drain(ctx, c.WorkerPool.Stop)
		}})
	}
	if c.ResilientPublisher != nil {
		steps = append(steps, shutdownStep{"event publisher", c.ResilientPublisher.Shutdown})
	}
	return steps
}

// drain runs stop in the background and gives up when ctx ends
func drain(ctx context.Context, stop func()) error {
	done := make(chan struct{})
	go func() {
		stop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
