package handler

import (
	"net/http"

	"github.com/golang-cafe/job-portal/internal/application"
	"github.com/golang-cafe/job-portal/internal/server"
)

func GetPostulacionesHandler(svr server.Server, applicationRepo *application.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := application.ParseFiltersFromQuery(r.URL.Query())
		if err != nil {
			badRequest(svr, w, err)
			return
		}
		apps, err := applicationRepo.Applications(r.Context(), f)
		if err != nil {
			serverError(svr, w, err, "unable to list postulaciones")
			return
		}
		svr.JSON(w, http.StatusOK, apps)
	}
}

func CreatePostulacionHandler(svr server.Server, applicationRepo *application.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a application.Application
		if err := decodePayload(r, postulacionValidator, &a); err != nil {
			badRequest(svr, w, err)
			return
		}
		if len(a.MissingFields()) > 0 {
			badRequest(svr, w, errMissingFields)
			return
		}
		id, err := applicationRepo.Create(r.Context(), a)
		if err != nil {
			serverError(svr, w, err, "unable to create postulacion")
			return
		}
		created(svr, w, id, "Postulación created successfully")
	}
}
