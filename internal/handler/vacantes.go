package handler

import (
	"net/http"
	"strings"

	"github.com/golang-cafe/job-portal/internal/application"
	"github.com/golang-cafe/job-portal/internal/job"
	"github.com/golang-cafe/job-portal/internal/query"
	"github.com/golang-cafe/job-portal/internal/server"

	"github.com/gorilla/mux"
)

func GetVacantesHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := job.ParseFiltersFromQuery(r.URL.Query())
		if err != nil {
			badRequest(svr, w, err)
			return
		}
		jobs, err := jobRepo.Jobs(r.Context(), f)
		if err != nil {
			serverError(svr, w, err, "unable to list vacantes")
			return
		}
		svr.JSON(w, http.StatusOK, jobs)
	}
}

func CreateVacanteHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var j job.Job
		if err := decodePayload(r, vacanteValidator, &j); err != nil {
			badRequest(svr, w, err)
			return
		}
		j.Description = strings.TrimSpace(stripHTML.Sanitize(j.Description))
		j.Salary = job.RoundSalary(j.Salary)
		if len(j.MissingFields()) > 0 {
			badRequest(svr, w, errMissingFields)
			return
		}
		id, err := jobRepo.Create(r.Context(), j)
		if err != nil {
			serverError(svr, w, err, "unable to create vacante")
			return
		}
		created(svr, w, id, "Vacante created successfully")
	}
}

// GetVacantePostulantesHandler pages through one vacancy's applications,
// newest first. The vacancy is not required to exist.
func GetVacantePostulantesHandler(svr server.Server, applicationRepo *application.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := query.ParseID(mux.Vars(r)["id"])
		if err != nil {
			badRequest(svr, w, err)
			return
		}
		v := r.URL.Query()
		v.Del("vacanteId")
		f, err := application.ParseFiltersFromQuery(v)
		if err != nil {
			badRequest(svr, w, err)
			return
		}
		f.JobID = id
		page, err := applicationRepo.ApplicationsPage(r.Context(), f, query.ParsePage(v, query.DefaultPageSize))
		if err != nil {
			serverError(svr, w, err, "unable to page postulantes")
			return
		}
		svr.JSON(w, http.StatusOK, page)
	}
}
