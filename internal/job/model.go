package job

import (
	"math"

	"github.com/golang-cafe/job-portal/internal/database"
)

const (
	ModeOnSite = "Presencial"
	ModeRemote = "Remoto"
	ModeHybrid = "Híbrido"

	StatusActive = "Activa"
	StatusClosed = "Cerrada"
	StatusPaused = "Pausada"
)

// MinSalary is the smallest amount the salario column can hold.
const MinSalary = 0.01

var (
	Modes    = []string{ModeOnSite, ModeRemote, ModeHybrid}
	Statuses = []string{StatusActive, StatusClosed, StatusPaused}
)

// Job is a vacancy published by a company.
type Job struct {
	ID          int64         `json:"id_vacante"`
	CompanyID   int64         `json:"id_empresa"`
	Title       string        `json:"puesto"`
	Description string        `json:"descripción"`
	Salary      float64       `json:"salario"`
	Mode        string        `json:"modalidad"`
	Specialty   string        `json:"especialidad"`
	PublishedAt database.Date `json:"fecha_publicación"`
	Status      string        `json:"estatus"`
}

// RoundSalary rounds to cents, the precision the salario column stores.
func RoundSalary(x float64) float64 {
	return math.Round(x*100) / 100
}

// MissingFields lists the json names of required fields that are empty.
// A zero salary counts as missing.
func (j Job) MissingFields() []string {
	var missing []string
	if j.CompanyID == 0 {
		missing = append(missing, "id_empresa")
	}
	if j.Title == "" {
		missing = append(missing, "puesto")
	}
	if j.Description == "" {
		missing = append(missing, "descripción")
	}
	if j.Salary <= 0 {
		missing = append(missing, "salario")
	}
	if j.Mode == "" {
		missing = append(missing, "modalidad")
	}
	if j.Specialty == "" {
		missing = append(missing, "especialidad")
	}
	if j.PublishedAt.IsZero() {
		missing = append(missing, "fecha_publicación")
	}
	if j.Status == "" {
		missing = append(missing, "estatus")
	}
	return missing
}
