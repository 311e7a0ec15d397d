package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/tripgest/internal/pipeline"
	"github.com/dgallion1/tripgest/internal/store"
)

const maxPlanBody = 64 << 10

type planRequest struct {
	Email  string `json:"email"`
	UserID string `json:"user_id"`
}

func (s *Server) decodePlanRequest(w http.ResponseWriter, r *http.Request) (planRequest, bool) {
	var req planRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxPlanBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return req, false
	}
	if strings.TrimSpace(req.Email) == "" {
		jsonError(w, "email is required", http.StatusBadRequest)
		return req, false
	}
	if err := store.ValidateID(req.UserID); err != nil {
		jsonError(w, "user_id is required and must not contain '/'", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

// handlePlan runs a travel request end to end and returns the stored
// record.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodePlanRequest(w, r)
	if !ok {
		return
	}

	rec, job, err := s.orchestrator.Plan(r.Context(), req.UserID, req.Email)
	if err != nil {
		code := http.StatusInternalServerError
		if job.Snapshot().Phase == "backend" {
			code = http.StatusBadGateway
		}
		jsonError(w, err.Error(), code)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handlePlanAsync(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodePlanRequest(w, r)
	if !ok {
		return
	}

	job := pipeline.NewJob(req.UserID, req.Email)
	if err := s.orchestrator.Submit(job); err != nil {
		if !errors.Is(err, pipeline.ErrQueueFull) && !errors.Is(err, pipeline.ErrStopped) {
			s.log.Error("submit plan job", "error", err)
		}
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   job.ID,
		"status":   pipeline.StatusQueued,
		"poll_url": fmt.Sprintf("/api/plan/%s/status", job.ID),
	})
}

func (s *Server) handlePlanStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}
