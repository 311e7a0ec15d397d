package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/tripgest/internal/backend"
	"github.com/dgallion1/tripgest/internal/itinerary"
	"github.com/dgallion1/tripgest/internal/store"
)

// Worker runs plan jobs: backend request, proposal parse, record save.
type Worker struct {
	backend backend.Client
	memo    *itinerary.Memo
	store   store.Store
	log     *slog.Logger
	metrics *pipelineMetrics

	backoff func(err error, attempt int) time.Duration
}

func NewWorker(client backend.Client, memo *itinerary.Memo, st store.Store, log *slog.Logger) *Worker {
	if memo == nil {
		memo = itinerary.NewMemo(0)
	}
	return &Worker{
		backend: client,
		memo:    memo,
		store:   st,
		log:     log,
		metrics: newPipelineMetrics(),
		backoff: RetryDelay,
	}
}

// Process runs a queued job; its outcome is visible through the job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	w.metrics.activeWorkers.Inc()
	defer w.metrics.activeWorkers.Dec()
	_, _ = w.Run(ctx, job)
}

// Run executes the job and returns the stored record.
func (w *Worker) Run(ctx context.Context, job *Job) (*store.Record, error) {
	log := w.log.With("job_id", job.ID, "user_id", job.UserID)
	start := time.Now()

	// Phase 1: backend
	job.SetStatus(StatusRequesting, "requesting proposal")
	resp, err := w.request(ctx, log, job)
	if err != nil {
		return nil, w.fail(job, log, "backend", err)
	}

	// Phase 2: parse
	job.SetStatus(StatusParsing, "parsing proposal")
	it := w.memo.Parse(resp.Proposal)
	warnings := itinerary.Diagnose(resp.Proposal)
	if warnings == nil {
		warnings = []itinerary.Warning{}
	}
	w.metrics.parseWarnings.Add(float64(len(warnings)))
	for _, warn := range warnings {
		log.Debug("proposal warning", "code", warn.Code, "day", warn.Day, "message", warn.Message)
	}

	packages := resp.Packages
	if packages == nil {
		packages = []backend.Package{}
	}
	rec := &store.Record{
		ID:            uuid.NewString(),
		UserID:        job.UserID,
		Request:       job.Request,
		ExtractedInfo: resp.ExtractedInfo,
		Packages:      packages,
		Proposal:      resp.Proposal,
		Itinerary:     it,
		Warnings:      warnings,
		Timings:       resp.Timings,
		ContentHash:   store.ContentHash(resp.Proposal),
		CreatedAt:     time.Now().UTC(),
	}

	// Phase 3: store
	job.SetStatus(StatusStoring, "storing itinerary")
	if err := w.store.Save(ctx, rec); err != nil {
		return nil, w.fail(job, log, "store", err)
	}

	job.Complete(rec.ID, len(warnings))
	w.metrics.jobsFinished.WithLabelValues(string(StatusCompleted)).Inc()
	w.metrics.planDuration.Observe(time.Since(start).Seconds())
	log.Info("plan completed",
		"itinerary_id", rec.ID,
		"destination", resp.Destination(),
		"days", len(it.Days),
		"warnings", len(warnings),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return rec, nil
}

// request calls the backend, retrying transient failures with backoff.
func (w *Worker) request(ctx context.Context, log *slog.Logger, job *Job) (*backend.Response, error) {
	var resp *backend.Response
	var lastErr error
	for attempt := range MaxRetries {
		job.AddAttempt()
		resp, lastErr = w.backend.Process(ctx, job.Request)
		if lastErr == nil || !IsRetryable(lastErr) || attempt == MaxRetries-1 {
			break
		}
		w.metrics.backendRetries.Inc()
		log.Warn("retryable backend error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(w.backoff(lastErr, attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return resp, lastErr
}

func (w *Worker) fail(job *Job, log *slog.Logger, phase string, err error) error {
	log.Error("plan failed", "phase", phase, "error", err)
	job.AddError(fmt.Sprintf("%s: %s", phase, err))
	job.SetStatus(StatusFailed, phase)
	w.metrics.jobsFinished.WithLabelValues(string(StatusFailed)).Inc()
	return fmt.Errorf("%s: %w", phase, err)
}
