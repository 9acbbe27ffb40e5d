package stats

import (
	"math"

	moremath "github.com/aclements/go-moremath/stats"
)

// joinRow is one row of the vacantes LEFT JOIN postulaciones query.
// ApplicationID is nil when the vacancy has no applications.
type joinRow struct {
	JobID         int64
	Title         string
	ApplicationID *int64
	Name          *string
	Email         *string
	CVURL         *string
}

// groupApplicants folds the flat join into one entry per vacancy in a single
// pass. Vacancies keep the order in which they first appear, applicants the
// order of their rows. Vacancies without applications get an empty list.
func groupApplicants(rows []joinRow) []JobApplicants {
	res := make([]JobApplicants, 0)
	index := make(map[int64]int)
	for _, r := range rows {
		i, ok := index[r.JobID]
		if !ok {
			i = len(res)
			index[r.JobID] = i
			res = append(res, JobApplicants{JobID: r.JobID, Title: r.Title, Applicants: make([]Applicant, 0)})
		}
		if r.ApplicationID == nil {
			continue
		}
		a := Applicant{ID: *r.ApplicationID, CVURL: r.CVURL}
		if r.Name != nil {
			a.Name = *r.Name
		}
		if r.Email != nil {
			a.Email = *r.Email
		}
		res[i].Applicants = append(res[i].Applicants, a)
	}
	return res
}

// summarizeSalaries expects xs sorted ascending.
func summarizeSalaries(xs []float64) SalarySummary {
	if len(xs) == 0 {
		return SalarySummary{}
	}
	s := moremath.Sample{Xs: xs, Sorted: true}
	min, max := s.Bounds()
	sum := SalarySummary{
		Count:  len(xs),
		Min:    min,
		Max:    max,
		Mean:   round2(s.Mean()),
		Median: round2(s.Quantile(0.5)),
		P90:    round2(s.Quantile(0.9)),
	}
	if len(xs) > 1 {
		sum.StdDev = round2(s.StdDev())
	}
	return sum
}

func round2(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return math.Round(f*100) / 100
}
