package server

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/wordlens/wordlens/internal/errors"
	"github.com/wordlens/wordlens/internal/metrics"
	"github.com/wordlens/wordlens/internal/observability"
	servermw "github.com/wordlens/wordlens/internal/server/middleware"
)

// RunAccepted is the response body for an accepted run trigger.
type RunAccepted struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id,omitempty"`
}

// runsHandler starts a reclamation run in the background. Only one run
// may be in flight at a time; concurrent triggers get a 409.
func (s *Server) runsHandler(w http.ResponseWriter, r *http.Request) {
	if !s.runs.TryStart() {
		HandleError(w, r, apperrors.NewConflictError("A reclamation run is already in progress"))
		return
	}

	requestID := servermw.GetRequestID(r.Context())

	go func() {
		// The run outlives the triggering request.
		report, err := s.deps.Run(context.Background())
		s.runs.Finish(report)
		metrics.RecordOperation("reclaim_run", err == nil)

		logger := observability.ServerLogger
		if logger == nil {
			return
		}
		if err != nil {
			logger.Error("Reclamation run failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			return
		}
		logger.Info("Reclamation run completed",
			zap.String("request_id", requestID),
			zap.String("run_id", report.RunID),
			zap.Int("validated", report.Validated),
			zap.Int("promoted", report.Promoted),
			zap.Int("remaining", report.Remaining))
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(RunAccepted{Status: "started", RequestID: requestID})
}

// latestRunHandler returns the report of the most recent completed run.
func (s *Server) latestRunHandler(w http.ResponseWriter, r *http.Request) {
	report := s.runs.Last()
	if report == nil {
		HandleError(w, r, apperrors.NewNotFoundError("No completed runs yet"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(report)
}
