package handler

import (
	"database/sql"
	"net/http"

	"github.com/golang-cafe/job-portal/internal/company"
	"github.com/golang-cafe/job-portal/internal/job"
	"github.com/golang-cafe/job-portal/internal/query"
	"github.com/golang-cafe/job-portal/internal/server"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

type companyWithJobs struct {
	company.Company
	Jobs []job.Job `json:"vacantes"`
}

// GetEmpresasHandler lists every company, or a single one when ?id= is set.
// ?withVacantes=true embeds the company's vacancies.
func GetEmpresasHandler(svr server.Server, companyRepo *company.Repository, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		v := r.URL.Query()
		if v.Get("id") == "" {
			companies, err := companyRepo.Companies(ctx)
			if err != nil {
				serverError(svr, w, err, "unable to list empresas")
				return
			}
			svr.JSON(w, http.StatusOK, companies)
			return
		}
		id, err := query.ParseID(v.Get("id"))
		if err != nil {
			badRequest(svr, w, err)
			return
		}
		c, err := companyRepo.CompanyByID(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			notFound(svr, w, "Empresa no encontrada")
			return
		}
		if err != nil {
			serverError(svr, w, err, "unable to get empresa")
			return
		}
		if v.Get("withVacantes") != "true" {
			svr.JSON(w, http.StatusOK, c)
			return
		}
		jobs, err := jobRepo.Jobs(ctx, job.Filters{CompanyID: id})
		if err != nil {
			serverError(svr, w, err, "unable to list vacantes for empresa")
			return
		}
		svr.JSON(w, http.StatusOK, companyWithJobs{Company: c, Jobs: jobs})
	}
}

func CreateEmpresaHandler(svr server.Server, companyRepo *company.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c company.Company
		if err := decodePayload(r, empresaValidator, &c); err != nil {
			badRequest(svr, w, err)
			return
		}
		if len(c.MissingFields()) > 0 {
			badRequest(svr, w, errMissingFields)
			return
		}
		id, err := companyRepo.Create(r.Context(), c)
		if err != nil {
			serverError(svr, w, err, "unable to create empresa")
			return
		}
		created(svr, w, id, "Empresa created successfully")
	}
}

// GetEmpresaVacantesHandler pages through one company's vacancies. The
// company is not required to exist.
func GetEmpresaVacantesHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := query.ParseID(mux.Vars(r)["id"])
		if err != nil {
			badRequest(svr, w, err)
			return
		}
		v := r.URL.Query()
		f := job.Filters{
			CompanyID: id,
			Mode:      v.Get("modalidad"),
			Status:    v.Get("estatus"),
		}
		page, err := jobRepo.JobsPage(r.Context(), f, query.ParsePage(v, query.DefaultPageSize))
		if err != nil {
			serverError(svr, w, err, "unable to page vacantes for empresa")
			return
		}
		svr.JSON(w, http.StatusOK, page)
	}
}
