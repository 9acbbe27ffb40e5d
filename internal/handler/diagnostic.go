package handler

import (
	"net/http"

	"github.com/golang-cafe/job-portal/internal/meta"
	"github.com/golang-cafe/job-portal/internal/server"

	"github.com/pkg/errors"
)

type diagnosticResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Tables  []string     `json:"tables,omitempty"`
	Stats   *meta.Counts `json:"stats,omitempty"`
	Error   string       `json:"error,omitempty"`
	Help    []string     `json:"help,omitempty"`
}

// TestConnectionHandler reports whether the database is reachable, its
// tables and the row count of each portal table.
func TestConnectionHandler(svr server.Server, metaRepo *meta.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		fail := func(err error) {
			svr.Log(err, "database connectivity check failed")
			svr.JSON(w, http.StatusInternalServerError, diagnosticResponse{
				Status:  "error",
				Message: "Error de conexión a la base de datos",
				Error:   errors.Cause(err).Error(),
				Help:    meta.Hints,
			})
		}
		tables, err := metaRepo.Tables(ctx)
		if err != nil {
			fail(err)
			return
		}
		counts, err := metaRepo.Counts(ctx)
		if err != nil {
			fail(err)
			return
		}
		svr.JSON(w, http.StatusOK, diagnosticResponse{
			Status:  "success",
			Message: "Conexión a la base de datos exitosa",
			Tables:  tables,
			Stats:   &counts,
		})
	}
}
