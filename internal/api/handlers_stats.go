package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleLatencyStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"workers": s.cfg.WorkerCount,
		"stats":   s.orchestrator.Latency().Snapshot(),
	})
}

// handleJobStats returns diagnostics and tallies of a finished job.
func (s *Server) handleJobStats(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	res := job.Result()
	if res == nil {
		jsonError(w, "job has no result yet: "+string(job.Snapshot().Status), http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"job_id":      job.ID,
		"diagnostics": res.Diagnostics,
	})
}
