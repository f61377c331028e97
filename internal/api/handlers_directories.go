package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dgallion1/dirgest/internal/pipeline"
)

func (s *Server) handleListDirectories(w http.ResponseWriter, r *http.Request) {
	pub := s.orchestrator.Publisher()
	if pub == nil {
		jsonError(w, "publishing is disabled", http.StatusServiceUnavailable)
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	docs, err := pub.List(r.Context(), limit)
	if err != nil {
		s.log.Error("list directories failed", zap.Error(err))
		jsonError(w, "failed to list directories", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"directories": docs})
}

func (s *Server) handleDeleteDirectory(w http.ResponseWriter, r *http.Request) {
	pub := s.orchestrator.Publisher()
	if pub == nil {
		jsonError(w, "publishing is disabled", http.StatusServiceUnavailable)
		return
	}

	docID := chi.URLParam(r, "docID")
	err := pub.Delete(r.Context(), docID)
	switch {
	case errors.Is(err, pipeline.ErrDirectoryNotFound):
		jsonError(w, "directory not found", http.StatusNotFound)
		return
	case err != nil:
		s.log.Error("delete directory failed", zap.String("doc_id", docID), zap.Error(err))
		jsonError(w, "failed to delete directory", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"doc_id": docID, "status": "deleted"})
}
