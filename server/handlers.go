package server

import (
	"net/http"

	"github.com/ShahwaizZahid/Job-Listing/version"
)

// handleHealth reports process liveness and database reachability.
// Always answers 200 so callers read the status field rather than the code.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	versionInfo := version.Get()

	status := "ok"
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Warnw("Health check database ping failed", "error", err)
		status = "degraded"
	}

	health := map[string]interface{}{
		"status":     status,
		"version":    versionInfo.Version,
		"commit":     versionInfo.CommitHash,
		"build_time": versionInfo.BuildTime,
	}

	writeJSON(w, http.StatusOK, health)
}

// handleRoot answers the bare root path and 404s anything unrouted
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Job Listing API"})
}
