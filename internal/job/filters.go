package job

import (
	"net/url"

	"github.com/golang-cafe/job-portal/internal/query"
)

// Filters narrows vacancy listings. Zero values mean "any".
type Filters struct {
	CompanyID int64
	Mode      string
	Status    string // compared case-insensitively
	Limit     int
}

// ParseFiltersFromQuery reads empresaId, modalidad, estatus and limit.
func ParseFiltersFromQuery(v url.Values) (Filters, error) {
	companyID, err := query.OptionalID(v, "empresaId")
	if err != nil {
		return Filters{}, err
	}
	limit, err := query.OptionalLimit(v, "limit")
	if err != nil {
		return Filters{}, err
	}
	return Filters{
		CompanyID: companyID,
		Mode:      v.Get("modalidad"),
		Status:    v.Get("estatus"),
		Limit:     limit,
	}, nil
}

func (f Filters) where() *query.Builder {
	b := &query.Builder{}
	if f.CompanyID != 0 {
		b.Where("id_empresa = ?", f.CompanyID)
	}
	if f.Mode != "" {
		b.Where("modalidad = ?", f.Mode)
	}
	if f.Status != "" {
		b.Where("LOWER(estatus) = LOWER(?)", f.Status)
	}
	return b
}
