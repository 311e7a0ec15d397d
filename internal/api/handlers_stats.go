package api

import (
	"net/http"
)

func (s *Server) handleBackendStats(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"mock":        s.cfg.BackendMock,
		"parse_cache": s.orchestrator.Memo().Stats(),
		"queue_depth": s.orchestrator.QueueDepth(),
	}
	if s.stats != nil {
		resp["latency"] = s.stats.Snapshot()
	}
	writeJSON(w, http.StatusOK, resp)
}
