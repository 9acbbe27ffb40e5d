package handler

import (
	"encoding/json"
	"net/http"

	"github.com/golang-cafe/job-portal/internal/server"
	"github.com/golang-cafe/job-portal/internal/stats"

	"github.com/pkg/errors"
)

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// GetStatsHandler serves the aggregate statistics, cached until the next
// create or the cache TTL.
func GetStatsHandler(svr server.Server, statsRepo *stats.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cached, ok := svr.CacheGet(server.CacheKeyStats); ok {
			svr.RawJSON(w, http.StatusOK, cached)
			return
		}
		gen := svr.StatsGeneration()
		s, err := statsRepo.Stats(r.Context())
		if err != nil {
			svr.Log(err, "unable to compute stats")
			svr.JSON(w, http.StatusInternalServerError, statusResponse{Status: "error", Message: errors.Cause(err).Error()})
			return
		}
		body, err := json.Marshal(s)
		if err != nil {
			svr.Log(err, "unable to marshal stats")
			svr.JSON(w, http.StatusInternalServerError, statusResponse{Status: "error", Message: err.Error()})
			return
		}
		if _, err := svr.CacheStats(gen, body); err != nil {
			svr.Log(err, "unable to cache stats")
		}
		svr.RawJSON(w, http.StatusOK, body)
	}
}
