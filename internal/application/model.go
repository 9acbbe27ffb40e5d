package application

import (
	"regexp"

	"github.com/golang-cafe/job-portal/internal/database"
)

const StatusUnderReview = "En revisión"

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail reports whether s looks like an address, using the same loose
// pattern as the submission form.
func IsEmail(s string) bool {
	return emailRe.MatchString(s)
}

// Application is a candidate's submission to a vacancy.
type Application struct {
	ID          int64         `json:"id_postulación"`
	JobID       int64         `json:"id_vacante"`
	Name        string        `json:"nombre_postulante"`
	Email       string        `json:"correo"`
	Phone       string        `json:"teléfono"`
	CVURL       string        `json:"cv_url"`
	SubmittedAt database.Date `json:"fecha_postulación"`
	Status      string        `json:"estatus"`
}

// HasCV reports whether the application links a CV.
func (a Application) HasCV() bool {
	return a.CVURL != ""
}

// MissingFields lists the json names of required fields that are empty.
func (a Application) MissingFields() []string {
	var missing []string
	if a.JobID == 0 {
		missing = append(missing, "id_vacante")
	}
	if a.Name == "" {
		missing = append(missing, "nombre_postulante")
	}
	if a.Email == "" {
		missing = append(missing, "correo")
	}
	if a.Phone == "" {
		missing = append(missing, "teléfono")
	}
	if a.CVURL == "" {
		missing = append(missing, "cv_url")
	}
	if a.SubmittedAt.IsZero() {
		missing = append(missing, "fecha_postulación")
	}
	if a.Status == "" {
		missing = append(missing, "estatus")
	}
	return missing
}
