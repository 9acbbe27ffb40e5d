package handler

import (
	"net/http"

	"github.com/golang-cafe/job-portal/internal/application"
	"github.com/golang-cafe/job-portal/internal/company"
	"github.com/golang-cafe/job-portal/internal/job"
	"github.com/golang-cafe/job-portal/internal/meta"
	"github.com/golang-cafe/job-portal/internal/server"
	"github.com/golang-cafe/job-portal/internal/stats"
)

// RegisterRoutes wires the JSON API and the HTML pages onto svr.
func RegisterRoutes(svr server.Server) {
	companyRepo := company.NewRepository(svr.Conn)
	jobRepo := job.NewRepository(svr.Conn)
	applicationRepo := application.NewRepository(svr.Conn)
	statsRepo := stats.NewRepository(svr.Conn)
	metaRepo := meta.NewRepository(svr.Conn)

	get := []string{http.MethodGet}
	post := []string{http.MethodPost}

	// api
	svr.RegisterRoute("/api/empresas", GetEmpresasHandler(svr, companyRepo, jobRepo), get)
	svr.RegisterRoute("/api/empresas", CreateEmpresaHandler(svr, companyRepo), post)
	svr.RegisterRoute("/api/empresas/{id}/vacantes", GetEmpresaVacantesHandler(svr, jobRepo), get)
	svr.RegisterRoute("/api/vacantes", GetVacantesHandler(svr, jobRepo), get)
	svr.RegisterRoute("/api/vacantes", CreateVacanteHandler(svr, jobRepo), post)
	svr.RegisterRoute("/api/vacantes/{id}/postulantes", GetVacantePostulantesHandler(svr, applicationRepo), get)
	svr.RegisterRoute("/api/postulaciones", GetPostulacionesHandler(svr, applicationRepo), get)
	svr.RegisterRoute("/api/postulaciones", CreatePostulacionHandler(svr, applicationRepo), post)
	svr.RegisterRoute("/api/stats", GetStatsHandler(svr, statsRepo), get)
	svr.RegisterRoute("/api/test", TestConnectionHandler(svr, metaRepo), get)

	// pages
	svr.RegisterRoute("/", IndexPageHandler(svr, jobRepo, metaRepo), get)
	svr.RegisterRoute("/empresas", EmpresasPageHandler(svr, companyRepo, jobRepo, applicationRepo), get)
	svr.RegisterRoute("/empresas/nueva", GetEmpresaFormHandler(svr), get)
	svr.RegisterRoute("/empresas/nueva", SubmitEmpresaFormHandler(svr, companyRepo), post)
	svr.RegisterRoute("/vacantes/nueva", GetVacanteFormHandler(svr, companyRepo), get)
	svr.RegisterRoute("/vacantes/nueva", SubmitVacanteFormHandler(svr, companyRepo, jobRepo), post)
	svr.RegisterRoute("/vacantes/feed.xml", ServeRSSFeed(svr, companyRepo, jobRepo), get)
	svr.RegisterRoute("/postulaciones/nueva", GetPostulacionFormHandler(svr, jobRepo), get)
	svr.RegisterRoute("/postulaciones/nueva", SubmitPostulacionFormHandler(svr, jobRepo, applicationRepo), post)
	svr.RegisterRoute("/sitemap.xml", SitemapHandler(svr, companyRepo), get)
	svr.RegisterRoute("/estadisticas", EstadisticasPageHandler(svr, statsRepo), get)
}
