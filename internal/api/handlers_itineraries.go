package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/tripgest/internal/export"
	"github.com/dgallion1/tripgest/internal/store"
)

// itinerarySummary is one entry of the list endpoint.
type itinerarySummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Destination string    `json:"destination,omitempty"`
	Days        int       `json:"days"`
	Warnings    int       `json:"warnings"`
	CreatedAt   time.Time `json:"created_at"`
}

func summarize(rec store.Record) itinerarySummary {
	sum := itinerarySummary{
		ID:          rec.ID,
		Destination: rec.ExtractedInfo.Destination,
		Warnings:    len(rec.Warnings),
		CreatedAt:   rec.CreatedAt,
	}
	if rec.Itinerary != nil {
		sum.Title = rec.Itinerary.Title
		sum.Days = len(rec.Itinerary.Days)
	}
	return sum
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		jsonError(w, "user_id query parameter is required", http.StatusBadRequest)
		return "", false
	}
	return userID, true
}

// storeError maps store errors to responses.
func (s *Server) storeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, "itinerary not found", http.StatusNotFound)
	case errors.Is(err, store.ErrInvalidID):
		jsonError(w, err.Error(), http.StatusBadRequest)
	default:
		s.log.Error(op, "error", err)
		jsonError(w, op+": "+err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleListItineraries(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	recs, err := s.orchestrator.Store().List(r.Context(), userID)
	if err != nil {
		s.storeError(w, "failed to list itineraries", err)
		return
	}
	out := make([]itinerarySummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, summarize(rec))
	}
	writeJSON(w, http.StatusOK, map[string]any{"itineraries": out})
}

func (s *Server) handleGetItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	rec, err := s.orchestrator.Store().Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, "failed to get itinerary", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.orchestrator.Store().Delete(r.Context(), userID, id); err != nil {
		s.storeError(w, "failed to delete itinerary", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func (s *Server) handleExportItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	format, err := export.ForFormat(r.URL.Query().Get("format"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	rec, err := s.orchestrator.Store().Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, "failed to get itinerary", err)
		return
	}
	it := rec.Itinerary
	if it == nil {
		it = s.orchestrator.Memo().Parse(rec.Proposal)
	}

	var buf bytes.Buffer
	if err := format.Write(it, &buf); err != nil {
		s.log.Error("export failed", "itinerary_id", rec.ID, "format", format.Name, "error", err)
		jsonError(w, "export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", format.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(it, format)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
