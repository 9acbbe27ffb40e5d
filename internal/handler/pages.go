package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-cafe/job-portal/internal/application"
	"github.com/golang-cafe/job-portal/internal/company"
	"github.com/golang-cafe/job-portal/internal/database"
	"github.com/golang-cafe/job-portal/internal/job"
	"github.com/golang-cafe/job-portal/internal/meta"
	"github.com/golang-cafe/job-portal/internal/query"
	"github.com/golang-cafe/job-portal/internal/server"
	"github.com/golang-cafe/job-portal/internal/stats"

	"github.com/pkg/errors"
)

const (
	companyJobsPageSize    = 5
	jobApplicantsPageSize  = 10
	recentJobsOnIndex      = 5
	msgCompleteAllFields   = "Por favor completa todos los campos"
	msgInvalidEmail        = "Por favor ingresa un correo válido"
	bannerSuccess          = "success"
	bannerError            = "error"
	formFieldDateLayoutLen = len(database.DateLayout)
)

// Banner is the inline message shown above a form.
type Banner struct {
	Kind    string
	Message string
}

func successBanner(msg string) *Banner {
	return &Banner{Kind: bannerSuccess, Message: msg}
}

func errorBanner(msg string) *Banner {
	return &Banner{Kind: bannerError, Message: msg}
}

func formDate(v string) database.Date {
	v = strings.TrimSpace(v)
	if len(v) < formFieldDateLayoutLen {
		return database.Date{}
	}
	d, err := database.ParseDate(v)
	if err != nil {
		return database.Date{}
	}
	return d
}

func formID(v string) int64 {
	id, err := query.ParseID(v)
	if err != nil {
		return 0
	}
	return id
}

func IndexPageHandler(svr server.Server, jobRepo *job.Repository, metaRepo *meta.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		jobs, err := jobRepo.Jobs(ctx, job.Filters{Limit: recentJobsOnIndex})
		if err != nil {
			svr.Log(err, "unable to retrieve recent vacantes")
			svr.Render(w, http.StatusInternalServerError, "index.html", map[string]interface{}{
				"Banner": errorBanner(errors.Cause(err).Error()),
			})
			return
		}
		counts, err := metaRepo.Counts(ctx)
		if err != nil {
			svr.Log(err, "unable to count rows")
		}
		svr.Render(w, http.StatusOK, "index.html", map[string]interface{}{
			"Jobs":   jobs,
			"Counts": counts,
		})
	}
}

func GetEmpresaFormHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderEmpresaForm(svr, w, http.StatusOK, company.Company{RegisteredAt: database.Today()}, nil)
	}
}

func SubmitEmpresaFormHandler(svr server.Server, companyRepo *company.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderEmpresaForm(svr, w, http.StatusBadRequest, company.Company{}, errorBanner(errInvalidBody.Error()))
			return
		}
		c := company.Company{
			Name:         strings.TrimSpace(r.PostForm.Get("nombre")),
			Industry:     strings.TrimSpace(r.PostForm.Get("giro")),
			Size:         strings.TrimSpace(r.PostForm.Get("tamaño")),
			Phone:        strings.TrimSpace(r.PostForm.Get("teléfono")),
			RegisteredAt: formDate(r.PostForm.Get("fecha_registro")),
			City:         strings.TrimSpace(r.PostForm.Get("ciudad")),
			Address:      strings.TrimSpace(r.PostForm.Get("dirección")),
		}
		if len(c.MissingFields()) > 0 {
			renderEmpresaForm(svr, w, http.StatusBadRequest, c, errorBanner(msgCompleteAllFields))
			return
		}
		if _, err := companyRepo.Create(r.Context(), c); err != nil {
			svr.Log(err, "unable to create empresa from form")
			renderEmpresaForm(svr, w, http.StatusInternalServerError, c, errorBanner("Error al registrar la empresa: "+errors.Cause(err).Error()))
			return
		}
		if err := svr.InvalidateStats(); err != nil {
			svr.Log(err, "unable to invalidate stats cache")
		}
		renderEmpresaForm(svr, w, http.StatusOK, company.Company{RegisteredAt: database.Today()}, successBanner("Empresa registrada exitosamente"))
	}
}

func renderEmpresaForm(svr server.Server, w http.ResponseWriter, status int, form company.Company, banner *Banner) {
	svr.Render(w, status, "empresa-form.html", map[string]interface{}{
		"Form":   form,
		"Banner": banner,
		"Sizes":  company.Sizes,
		"Cities": company.Cities,
	})
}

func GetVacanteFormHandler(svr server.Server, companyRepo *company.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := job.Job{Status: job.StatusActive, PublishedAt: database.Today()}
		renderVacanteForm(svr, w, r, companyRepo, http.StatusOK, form, nil)
	}
}

func SubmitVacanteFormHandler(svr server.Server, companyRepo *company.Repository, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderVacanteForm(svr, w, r, companyRepo, http.StatusBadRequest, job.Job{}, errorBanner(errInvalidBody.Error()))
			return
		}
		salary, err := strconv.ParseFloat(strings.TrimSpace(r.PostForm.Get("salario")), 64)
		if err != nil || salary < 0 {
			salary = 0
		}
		j := job.Job{
			CompanyID:   formID(r.PostForm.Get("id_empresa")),
			Title:       strings.TrimSpace(r.PostForm.Get("puesto")),
			Description: strings.TrimSpace(stripHTML.Sanitize(r.PostForm.Get("descripción"))),
			Salary:      job.RoundSalary(salary),
			Mode:        strings.TrimSpace(r.PostForm.Get("modalidad")),
			Specialty:   strings.TrimSpace(r.PostForm.Get("especialidad")),
			PublishedAt: formDate(r.PostForm.Get("fecha_publicación")),
			Status:      strings.TrimSpace(r.PostForm.Get("estatus")),
		}
		if len(j.MissingFields()) > 0 {
			renderVacanteForm(svr, w, r, companyRepo, http.StatusBadRequest, j, errorBanner(msgCompleteAllFields))
			return
		}
		if _, err := jobRepo.Create(r.Context(), j); err != nil {
			svr.Log(err, "unable to create vacante from form")
			renderVacanteForm(svr, w, r, companyRepo, http.StatusInternalServerError, j, errorBanner("Error al crear la vacante: "+errors.Cause(err).Error()))
			return
		}
		if err := svr.InvalidateStats(); err != nil {
			svr.Log(err, "unable to invalidate stats cache")
		}
		form := job.Job{Status: job.StatusActive, PublishedAt: database.Today()}
		renderVacanteForm(svr, w, r, companyRepo, http.StatusOK, form, successBanner("Vacante creada exitosamente"))
	}
}

func renderVacanteForm(svr server.Server, w http.ResponseWriter, r *http.Request, companyRepo *company.Repository, status int, form job.Job, banner *Banner) {
	companies, err := companyRepo.Companies(r.Context())
	if err != nil {
		svr.Log(err, "unable to list empresas for vacante form")
		if banner == nil {
			banner = errorBanner("Error al cargar las empresas: " + errors.Cause(err).Error())
		}
	}
	svr.Render(w, status, "vacante-form.html", map[string]interface{}{
		"Form":      form,
		"Banner":    banner,
		"Companies": companies,
		"Modes":     job.Modes,
		"Statuses":  job.Statuses,
	})
}

func GetPostulacionFormHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := application.Application{
			JobID:       formID(r.URL.Query().Get("vacante")),
			Status:      application.StatusUnderReview,
			SubmittedAt: database.Today(),
		}
		renderPostulacionForm(svr, w, r, jobRepo, http.StatusOK, form, nil)
	}
}

func SubmitPostulacionFormHandler(svr server.Server, jobRepo *job.Repository, applicationRepo *application.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderPostulacionForm(svr, w, r, jobRepo, http.StatusBadRequest, application.Application{}, errorBanner(errInvalidBody.Error()))
			return
		}
		a := application.Application{
			JobID:       formID(r.PostForm.Get("id_vacante")),
			Name:        strings.TrimSpace(r.PostForm.Get("nombre_postulante")),
			Email:       strings.TrimSpace(r.PostForm.Get("correo")),
			Phone:       strings.TrimSpace(r.PostForm.Get("teléfono")),
			CVURL:       strings.TrimSpace(r.PostForm.Get("cv_url")),
			SubmittedAt: database.Today(),
			Status:      application.StatusUnderReview,
		}
		if len(a.MissingFields()) > 0 {
			renderPostulacionForm(svr, w, r, jobRepo, http.StatusBadRequest, a, errorBanner(msgCompleteAllFields))
			return
		}
		if !application.IsEmail(a.Email) {
			renderPostulacionForm(svr, w, r, jobRepo, http.StatusBadRequest, a, errorBanner(msgInvalidEmail))
			return
		}
		if _, err := applicationRepo.Create(r.Context(), a); err != nil {
			svr.Log(err, "unable to create postulacion from form")
			renderPostulacionForm(svr, w, r, jobRepo, http.StatusInternalServerError, a, errorBanner("Error al enviar la postulación: "+errors.Cause(err).Error()))
			return
		}
		if err := svr.InvalidateStats(); err != nil {
			svr.Log(err, "unable to invalidate stats cache")
		}
		form := application.Application{Status: application.StatusUnderReview, SubmittedAt: database.Today()}
		renderPostulacionForm(svr, w, r, jobRepo, http.StatusOK, form, successBanner("Postulación enviada exitosamente! Revisaremos tu solicitud pronto."))
	}
}

func renderPostulacionForm(svr server.Server, w http.ResponseWriter, r *http.Request, jobRepo *job.Repository, status int, form application.Application, banner *Banner) {
	jobs, err := jobRepo.Jobs(r.Context(), job.Filters{})
	if err != nil {
		svr.Log(err, "unable to list vacantes for postulacion form")
		if banner == nil {
			banner = errorBanner("Error al cargar las vacantes: " + errors.Cause(err).Error())
		}
	}
	svr.Render(w, status, "postulacion-form.html", map[string]interface{}{
		"Form":   form,
		"Banner": banner,
		"Jobs":   jobs,
	})
}

// EmpresasPageHandler lists every company. ?empresa= expands one company's
// vacancies and ?vacante= expands one vacancy's applicants, each paginated.
func EmpresasPageHandler(svr server.Server, companyRepo *company.Repository, jobRepo *job.Repository, applicationRepo *application.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		v := r.URL.Query()
		data := map[string]interface{}{
			"Modes":    job.Modes,
			"Statuses": job.Statuses,
			"Mode":     v.Get("modalidad"),
			"Status":   v.Get("estatus"),
			"WithCV":   v.Get("withCV") == "true",
			"Page":     pageNumber(v.Get("page")),
		}
		companyID, err := query.OptionalID(v, "empresa")
		if err != nil {
			data["Banner"] = errorBanner(err.Error())
			svr.Render(w, http.StatusBadRequest, "empresas.html", data)
			return
		}
		jobID, err := query.OptionalID(v, "vacante")
		if err != nil {
			data["Banner"] = errorBanner(err.Error())
			svr.Render(w, http.StatusBadRequest, "empresas.html", data)
			return
		}
		data["CompanyID"] = companyID
		data["JobID"] = jobID

		companies, err := companyRepo.Companies(ctx)
		if err != nil {
			svr.Log(err, "unable to list empresas")
			data["Banner"] = errorBanner("Error al cargar las empresas: " + errors.Cause(err).Error())
			svr.Render(w, http.StatusInternalServerError, "empresas.html", data)
			return
		}
		data["Companies"] = companies

		if companyID != 0 {
			f := job.Filters{CompanyID: companyID, Mode: v.Get("modalidad"), Status: v.Get("estatus")}
			jobs, err := jobRepo.JobsPage(ctx, f, query.NewPage(pageNumber(v.Get("page")), companyJobsPageSize))
			if err != nil {
				svr.Log(err, "unable to page vacantes for empresa")
				data["Banner"] = errorBanner("Error al cargar las vacantes: " + errors.Cause(err).Error())
				svr.Render(w, http.StatusInternalServerError, "empresas.html", data)
				return
			}
			data["JobsPage"] = jobs
		}
		if jobID != 0 {
			f := application.Filters{JobID: jobID, WithCV: v.Get("withCV") == "true"}
			apps, err := applicationRepo.ApplicationsPage(ctx, f, query.NewPage(pageNumber(v.Get("vpage")), jobApplicantsPageSize))
			if err != nil {
				svr.Log(err, "unable to page postulantes for vacante")
				data["Banner"] = errorBanner("Error al cargar los postulantes: " + errors.Cause(err).Error())
				svr.Render(w, http.StatusInternalServerError, "empresas.html", data)
				return
			}
			data["ApplicantsPage"] = apps
		}
		svr.Render(w, http.StatusOK, "empresas.html", data)
	}
}

func pageNumber(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return n
}

func EstadisticasPageHandler(svr server.Server, statsRepo *stats.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := statsRepo.Stats(r.Context())
		if err != nil {
			svr.Log(err, "unable to compute stats for page")
			svr.Render(w, http.StatusInternalServerError, "estadisticas.html", map[string]interface{}{
				"Banner": errorBanner(errors.Cause(err).Error()),
			})
			return
		}
		svr.Render(w, http.StatusOK, "estadisticas.html", map[string]interface{}{
			"Stats": s,
		})
	}
}
