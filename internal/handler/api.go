package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/golang-cafe/job-portal/internal/server"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
)

const maxBodyBytes = 1 << 20

var (
	errInvalidBody   = errors.New("Cuerpo de la solicitud inválido")
	errMissingFields = errors.New("Todos los campos son requeridos")
)

var stripHTML = bluemonday.StrictPolicy()

type errorResponse struct {
	Error string `json:"error"`
}

type createdResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

func badRequest(svr server.Server, w http.ResponseWriter, err error) {
	svr.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func notFound(svr server.Server, w http.ResponseWriter, msg string) {
	svr.JSON(w, http.StatusNotFound, errorResponse{Error: msg})
}

// serverError logs err with msg and reports the underlying cause to the caller.
func serverError(svr server.Server, w http.ResponseWriter, err error, msg string) {
	svr.Log(err, msg)
	svr.JSON(w, http.StatusInternalServerError, errorResponse{Error: errors.Cause(err).Error()})
}

// decodePayload reads a JSON body, checks it against v and decodes it into
// dst. It returns errInvalidBody or errMissingFields on client errors.
func decodePayload(r *http.Request, v *payloadValidator, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil || !json.Valid(body) {
		return errInvalidBody
	}
	keyErrs, err := v.Validate(r.Context(), body)
	if err != nil {
		return errInvalidBody
	}
	if len(keyErrs) > 0 {
		return errMissingFields
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return errMissingFields
	}
	return nil
}

// created invalidates cached statistics and writes the 201 envelope.
func created(svr server.Server, w http.ResponseWriter, id int64, msg string) {
	if err := svr.InvalidateStats(); err != nil {
		svr.Log(err, "unable to invalidate stats cache")
	}
	svr.JSON(w, http.StatusCreated, createdResponse{Message: msg, ID: id})
}
