package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dgallion1/dirgest/internal/extract"
	"github.com/dgallion1/dirgest/internal/parser"
)

// ErrQueueFull is returned by Submit when no queue slot is free.
var ErrQueueFull = errors.New("job queue is full")

// Deps are the collaborators shared by all workers.
type Deps struct {
	Extractor     *extract.Extractor
	Publisher     *Publisher // nil disables publishing
	ParserOptions parser.Options
	Log           *zap.Logger
	Metrics       *Metrics
	Latency       *LatencyStats
}

func (d Deps) withDefaults() Deps {
	if d.Extractor == nil {
		d.Extractor = extract.New(extract.DefaultOptions(), nil)
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Metrics == nil {
		d.Metrics = NewMetrics(nil)
	}
	if d.Latency == nil {
		d.Latency = NewLatencyStats(time.Hour)
	}
	return d
}

// Orchestrator manages the directory extraction pipeline.
type Orchestrator struct {
	jobs    *JobStore
	queue   chan *Job
	deps    Deps
	workers int

	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
func NewOrchestrator(deps Deps, workers, queueSize int, jobTTL time.Duration) *Orchestrator {
	deps = deps.withDefaults()
	if workers <= 0 {
		workers = 1
	}
	return &Orchestrator{
		jobs:    NewJobStore(jobTTL),
		queue:   make(chan *Job, queueSize),
		deps:    deps,
		workers: workers,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.workers {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.deps)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					o.deps.Metrics.QueueDepth.Set(float64(len(o.queue)))
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				if n := o.jobs.Cleanup(); n > 0 {
					o.deps.Log.Debug("expired jobs removed", zap.Int("count", n))
				}
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline. Queued jobs that no worker
// picked up are marked failed.
func (o *Orchestrator) Stop() {
	o.once.Do(func() {
		if o.cancel != nil {
			o.cancel()
		}
		close(o.queue)
		o.wg.Wait()
		for job := range o.queue {
			job.AddError("pipeline stopped")
			job.SetStatus(StatusFailed, "shutdown")
		}
	})
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		o.deps.Metrics.QueueDepth.Set(float64(len(o.queue)))
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("%w (%d)", ErrQueueFull, cap(o.queue))
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// Jobs returns snapshots of all retained jobs.
func (o *Orchestrator) Jobs() []JobSnapshot {
	return o.jobs.List()
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Publisher returns the publisher, nil when publishing is disabled.
func (o *Orchestrator) Publisher() *Publisher {
	return o.deps.Publisher
}

// Latency returns the rolling extraction latency tracker.
func (o *Orchestrator) Latency() *LatencyStats {
	return o.deps.Latency
}
