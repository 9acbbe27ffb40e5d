package stats

import (
	"github.com/golang-cafe/job-portal/internal/database"
)

type Totals struct {
	Companies    int64 `json:"empresas"`
	Jobs         int64 `json:"vacantes"`
	Applications int64 `json:"postulaciones"`
}

type CompanyJobs struct {
	CompanyID int64  `json:"id_empresa"`
	Name      string `json:"nombre"`
	Jobs      int64  `json:"vacantes"`
}

type ModeCount struct {
	Mode  string `json:"modalidad"`
	Total int64  `json:"total"`
}

// JobApplications counts applications per vacancy. Title is nil for
// applications whose vacancy no longer exists.
type JobApplications struct {
	JobID int64   `json:"id_vacante"`
	Title *string `json:"puesto"`
	Total int64   `json:"total"`
}

type DateCount struct {
	Date  database.Date `json:"fecha"`
	Total int64         `json:"total"`
}

type Applicant struct {
	ID    int64   `json:"id_postulacion"`
	Name  string  `json:"nombre"`
	Email string  `json:"correo"`
	CVURL *string `json:"cv_url"`
}

type JobApplicants struct {
	JobID      int64       `json:"id_vacante"`
	Title      string      `json:"puesto"`
	Applicants []Applicant `json:"postulantes"`
}

// SalarySummary describes the distribution of published salaries.
type SalarySummary struct {
	Count  int     `json:"total"`
	Min    float64 `json:"minimo"`
	Max    float64 `json:"maximo"`
	Mean   float64 `json:"media"`
	Median float64 `json:"mediana"`
	P90    float64 `json:"p90"`
	StdDev float64 `json:"desviacion"`
}

type Stats struct {
	Status             string            `json:"status"`
	Totals             Totals            `json:"stats"`
	CompanyJobs        []CompanyJobs     `json:"empresasVacantes"`
	JobsByMode         []ModeCount       `json:"vacantesModalidad"`
	ApplicationsByJob  []JobApplications `json:"postulacionesPorVacante"`
	ApplicationsByDate []DateCount       `json:"postulacionesPorFecha"`
	ClosedJobs         int64             `json:"vacantesCerradas"`
	ApplicantsWithCV   int64             `json:"postulantesConCV"`
	JobApplicants      []JobApplicants   `json:"vacantesConPostulantes"`
	Salaries           SalarySummary     `json:"salarios"`
}
