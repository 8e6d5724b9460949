package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/QuestAcademy_Go/internal/logger"
)

// Job is a unit of background work
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a plain function to Job
type JobFunc func(ctx context.Context) error

func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

type namedJob struct {
	Job
	name string
}

// Named attaches a name to job for the pool's failure logs
func Named(name string, job Job) Job {
	return namedJob{Job: job, name: name}
}

func jobName(job Job) string {
	if n, ok := job.(namedJob); ok {
		return n.name
	}
	return anonymousJob
}

// Pool runs jobs on a fixed set of goroutines. Each job gets its own
// DefaultJobTimeout context; a panicking job is logged and the worker survives.
type Pool struct {
	workers    int
	jobQueue   chan Job
	jobTimeout time.Duration
	wg         sync.WaitGroup
	quit       chan struct{}
	stopOnce   sync.Once
}

func NewPool(workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, queueSize),
		jobTimeout: DefaultJobTimeout,
		quit:       make(chan struct{}),
	}
}

func (p *Pool) Start() {
	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.quit:
			p.drain()
			return
		}
	}
}

// drain runs whatever is still queued once Stop has been called
func (p *Pool) drain() {
	ran := 0
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
			ran++
		default:
			if ran > 0 {
				logger.Info(LogMsgQueueDrained, "jobs", ran)
			}
			return
		}
	}
}

func (p *Pool) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), p.jobTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgWorkerJobPanicked, "job", jobName(job), "panic", fmt.Sprint(r))
		}
	}()

	if err := job.Process(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "job", jobName(job), "error", err)
	}
}

// Enqueue adds a job to the queue, blocking while it is full
func (p *Pool) Enqueue(job Job) {
	select {
	case <-p.quit:
		logger.Warn(LogMsgJobDroppedStopped, "job", jobName(job))
		return
	default:
	}

	select {
	case p.jobQueue <- job:
	case <-p.quit:
		logger.Warn(LogMsgJobDroppedStopped, "job", jobName(job))
	}
}

// TryEnqueue adds a job without blocking. It returns false when the queue is
// full or the pool has been stopped.
func (p *Pool) TryEnqueue(job Job) bool {
	select {
	case <-p.quit:
		logger.Warn(LogMsgJobDroppedStopped, "job", jobName(job))
		return false
	default:
	}

	select {
	case p.jobQueue <- job:
		return true
	default:
		logger.Warn(LogMsgJobQueueFull, "job", jobName(job))
		return false
	}
}

// Stop signals the workers, lets them finish queued jobs and waits for them
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.quit) })
	p.wg.Wait()
}
