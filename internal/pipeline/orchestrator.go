package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/tripgest/internal/backend"
	"github.com/dgallion1/tripgest/internal/config"
	"github.com/dgallion1/tripgest/internal/itinerary"
	"github.com/dgallion1/tripgest/internal/store"
)

var (
	ErrQueueFull = errors.New("job queue is full")
	ErrStopped   = errors.New("pipeline stopped")
)

// Orchestrator runs plan jobs on a fixed pool of workers.
type Orchestrator struct {
	jobs    *JobStore
	queue   chan *Job
	backend backend.Client
	memo    *itinerary.Memo
	store   store.Store
	log     *slog.Logger
	cfg     config.Config
	metrics *pipelineMetrics

	mu      sync.Mutex
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewOrchestrator creates the pipeline; call Start to launch workers.
func NewOrchestrator(cfg config.Config, client backend.Client, st store.Store, memo *itinerary.Memo, log *slog.Logger) *Orchestrator {
	if memo == nil {
		memo = itinerary.NewMemo(cfg.ParseCacheSize)
	}
	return &Orchestrator{
		jobs:    NewJobStore(cfg.JobTTL),
		queue:   make(chan *Job, max(cfg.MaxQueueSize, 1)),
		backend: client,
		memo:    memo,
		store:   st,
		log:     log,
		cfg:     cfg,
		metrics: newPipelineMetrics(),
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range max(o.cfg.WorkerCount, 1) {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := o.newWorker()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					o.metrics.queueDepth.Dec()
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
			case now := <-ticker.C:
				if n := o.jobs.Cleanup(now); n > 0 {
					o.log.Debug("evicted expired jobs", "count", n)
				}
			}
		}
	}()
}

func (o *Orchestrator) newWorker() *Worker {
	return NewWorker(o.backend, o.memo, o.store, o.log)
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	o.stopped = true
	close(o.queue)
	o.mu.Unlock()

	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()
}

// Submit queues a job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		job.SetStatus(StatusFailed, "stopped")
		return ErrStopped
	}
	select {
	case o.queue <- job:
		o.metrics.jobsSubmitted.Inc()
		o.metrics.queueDepth.Inc()
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		o.metrics.jobsRejected.Inc()
		return fmt.Errorf("%w (%d)", ErrQueueFull, cap(o.queue))
	}
}

// Plan runs a request synchronously on the caller's goroutine. The job is
// registered so its status can be polled like a queued one.
func (o *Orchestrator) Plan(ctx context.Context, userID, request string) (*store.Record, *Job, error) {
	job := NewJob(userID, request)
	o.jobs.Put(job)
	rec, err := o.newWorker().Run(ctx, job)
	return rec, job, err
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Store returns the itinerary store for direct use by API handlers.
func (o *Orchestrator) Store() store.Store {
	return o.store
}

// Memo returns the shared parse cache.
func (o *Orchestrator) Memo() *itinerary.Memo {
	return o.memo
}
