package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/wordlens/wordlens/internal/errors"
)

// statusHandler reports corpus, progress, and budget state as JSON.
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	report, err := s.deps.Status(r.Context())
	if err != nil {
		HandleError(w, r, apperrors.WrapInternal(r.Context(), err, "Failed to collect status"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(report)
}
