package pipeline

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the state of a plan job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusRequesting JobStatus = "requesting"
	StatusParsing    JobStatus = "parsing"
	StatusStoring    JobStatus = "storing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Terminal reports whether no further transitions will happen.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job tracks one travel request from backend call to stored itinerary.
type Job struct {
	mu sync.Mutex

	ID      string
	UserID  string
	Request string

	status      JobStatus
	phase       string
	itineraryID string
	attempts    int
	warnings    int
	errors      []string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewJob creates a queued job with a fresh id.
func NewJob(userID, request string) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.NewString(),
		UserID:    userID,
		Request:   request,
		status:    StatusQueued,
		phase:     "queued",
		createdAt: now,
		updatedAt: now,
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.status = status
	j.phase = phase
	j.updatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.updatedAt = time.Now()
}

// AddAttempt counts one backend call.
func (j *Job) AddAttempt() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.attempts++
	j.updatedAt = time.Now()
}

// Complete marks the job done and records the stored itinerary.
func (j *Job) Complete(itineraryID string, warnings int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.status = StatusCompleted
	j.phase = "done"
	j.itineraryID = itineraryID
	j.warnings = warnings
	j.updatedAt = time.Now()
}

// Status returns the current status.
func (j *Job) Status() JobStatus {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

func (j *Job) lastUpdate() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.updatedAt
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	UserID      string    `json:"user_id"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	ItineraryID string    `json:"itinerary_id,omitempty"`
	Attempts    int       `json:"attempts"`
	Warnings    int       `json:"warnings"`
	Errors      []string  `json:"errors"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := make([]string, len(j.errors))
	copy(errs, j.errors)
	return JobSnapshot{
		ID:          j.ID,
		UserID:      j.UserID,
		Status:      j.status,
		Phase:       j.phase,
		ItineraryID: j.itineraryID,
		Attempts:    j.attempts,
		Warnings:    j.warnings,
		Errors:      errs,
		CreatedAt:   j.createdAt,
		UpdatedAt:   j.updatedAt,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes jobs that have not changed within the TTL and returns how
// many were dropped.
func (s *JobStore) Cleanup(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, job := range s.jobs {
		if now.Sub(job.lastUpdate()) > s.ttl {
			delete(s.jobs, id)
			n++
		}
	}
	return n
}
