package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuestAcademy_Go/internal/worker"
)

type countingJob struct {
	runs atomic.Int32
}

func (j *countingJob) Process(context.Context) error {
	j.runs.Add(1)
	return nil
}

// fire runs a registered entry's trigger without waiting for its schedule
func fire(t *testing.T, s *Scheduler, id cron.EntryID) {
	t.Helper()
	entry := s.cron.Entry(id)
	require.True(t, entry.Valid(), "entry %d not registered", id)
	entry.Job.Run()
}

func TestScheduler_TriggerEnqueuesJob(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	job := &countingJob{}
	id, err := sched.Schedule("@hourly", "activity-retention", job)
	require.NoError(t, err)

	fire(t, sched, id)
	fire(t, sched, id)

	assert.Eventually(t, func() bool { return job.runs.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_FullQueueSkipsTick(t *testing.T) {
	// Not started, so the single slot stays taken
	pool := worker.NewPool(1, 1)
	require.True(t, pool.TryEnqueue(&countingJob{}))

	sched := New(pool)
	job := &countingJob{}
	id, err := sched.Schedule("*/5 * * * *", "achievement-sweep", job)
	require.NoError(t, err)

	assert.NotPanics(t, func() { fire(t, sched, id) })

	pool.Start()
	pool.Stop()
	assert.Zero(t, job.runs.Load())
}

func TestScheduler_StartStop(t *testing.T) {
	sched := New(worker.NewPool(1, 1))
	_, err := sched.Schedule("@every 1h", "idle", &countingJob{})
	require.NoError(t, err)

	sched.Start()
	done := make(chan struct{})
	go func() {
		sched.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestScheduler_InvalidSpec(t *testing.T) {
	sched := New(worker.NewPool(1, 1))

	_, err := sched.Schedule("every now and then", "bad", &countingJob{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgInvalidSchedule)
}

func TestValidateSchedule(t *testing.T) {
	for _, spec := range []string{"*/15 * * * *", "@hourly", "@every 10m", "0 3 * * 1-5"} {
		assert.NoError(t, ValidateSchedule(spec), spec)
	}
	for _, spec := range []string{"* * *", "61 * * * *", "@fortnightly", ""} {
		assert.Error(t, ValidateSchedule(spec), spec)
	}
}
