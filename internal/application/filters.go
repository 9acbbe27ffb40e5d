package application

import (
	"net/url"

	"github.com/golang-cafe/job-portal/internal/database"
	"github.com/golang-cafe/job-portal/internal/query"
)

// Filters narrows application listings. Zero values mean "any".
type Filters struct {
	JobID  int64
	WithCV bool
	From   database.Date // inclusive
	To     database.Date // inclusive
}

// ParseFiltersFromQuery reads vacanteId, withCV, from and to. Only the exact
// value "true" enables withCV.
func ParseFiltersFromQuery(v url.Values) (Filters, error) {
	jobID, err := query.OptionalID(v, "vacanteId")
	if err != nil {
		return Filters{}, err
	}
	from, err := query.OptionalDate(v, "from")
	if err != nil {
		return Filters{}, err
	}
	to, err := query.OptionalDate(v, "to")
	if err != nil {
		return Filters{}, err
	}
	return Filters{
		JobID:  jobID,
		WithCV: v.Get("withCV") == "true",
		From:   from,
		To:     to,
	}, nil
}

func (f Filters) where() *query.Builder {
	b := &query.Builder{}
	if f.JobID != 0 {
		b.Where("id_vacante = ?", f.JobID)
	}
	if f.WithCV {
		b.Where("cv_url IS NOT NULL AND cv_url <> ''")
	}
	if !f.From.IsZero() {
		b.Where(`"fecha_postulación" >= ?`, f.From)
	}
	if !f.To.IsZero() {
		b.Where(`"fecha_postulación" <= ?`, f.To)
	}
	return b
}
