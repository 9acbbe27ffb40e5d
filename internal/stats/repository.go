package stats

import (
	"context"
	"database/sql"

	"github.com/golang-cafe/job-portal/internal/database"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const topJobsLimit = 50

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db}
}

// Stats runs the aggregate queries concurrently on the shared pool. The first
// failing query cancels the rest and its error is returned.
func (r *Repository) Stats(ctx context.Context) (Stats, error) {
	res := Stats{Status: "success"}
	var joined []joinRow
	var salaries []float64

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		res.Totals, err = r.totals(ctx)
		return errors.Wrap(err, "totals")
	})
	g.Go(func() (err error) {
		res.CompanyJobs, err = r.companyJobs(ctx)
		return errors.Wrap(err, "empresasVacantes")
	})
	g.Go(func() (err error) {
		res.JobsByMode, err = r.jobsByMode(ctx)
		return errors.Wrap(err, "vacantesModalidad")
	})
	g.Go(func() (err error) {
		res.ApplicationsByJob, err = r.applicationsByJob(ctx)
		return errors.Wrap(err, "postulacionesPorVacante")
	})
	g.Go(func() (err error) {
		res.ApplicationsByDate, err = r.applicationsByDate(ctx)
		return errors.Wrap(err, "postulacionesPorFecha")
	})
	g.Go(func() (err error) {
		res.ClosedJobs, err = r.count(ctx, `SELECT COUNT(*) FROM vacantes WHERE LOWER(estatus) LIKE '%cerr%'`)
		return errors.Wrap(err, "vacantesCerradas")
	})
	g.Go(func() (err error) {
		res.ApplicantsWithCV, err = r.count(ctx, `SELECT COUNT(*) FROM postulaciones WHERE cv_url IS NOT NULL AND cv_url <> ''`)
		return errors.Wrap(err, "postulantesConCV")
	})
	g.Go(func() (err error) {
		joined, err = r.jobApplicantRows(ctx)
		return errors.Wrap(err, "vacantesConPostulantes")
	})
	g.Go(func() (err error) {
		salaries, err = r.salaries(ctx)
		return errors.Wrap(err, "salarios")
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	res.JobApplicants = groupApplicants(joined)
	res.Salaries = summarizeSalaries(salaries)
	return res, nil
}

func (r *Repository) count(ctx context.Context, stmt string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, stmt).Scan(&n)
	return n, err
}

func (r *Repository) totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := r.db.QueryRowContext(ctx, `SELECT
	(SELECT COUNT(*) FROM empresas),
	(SELECT COUNT(*) FROM vacantes),
	(SELECT COUNT(*) FROM postulaciones)`).Scan(&t.Companies, &t.Jobs, &t.Applications)
	return t, err
}

func (r *Repository) companyJobs(ctx context.Context) ([]CompanyJobs, error) {
	res := make([]CompanyJobs, 0)
	rows, err := r.db.QueryContext(ctx, `SELECT e.id_empresa, e.nombre, COUNT(v.id_vacante) AS vacantes
FROM empresas e
LEFT JOIN vacantes v ON v.id_empresa = e.id_empresa
GROUP BY e.id_empresa, e.nombre
ORDER BY vacantes DESC, e.id_empresa ASC`)
	if err != nil {
		return res, err
	}
	defer rows.Close()
	for rows.Next() {
		var c CompanyJobs
		if err := rows.Scan(&c.CompanyID, &c.Name, &c.Jobs); err != nil {
			return res, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r *Repository) jobsByMode(ctx context.Context) ([]ModeCount, error) {
	res := make([]ModeCount, 0)
	rows, err := r.db.QueryContext(ctx, `SELECT modalidad, COUNT(*) AS total FROM vacantes GROUP BY modalidad ORDER BY modalidad`)
	if err != nil {
		return res, err
	}
	defer rows.Close()
	for rows.Next() {
		var m ModeCount
		if err := rows.Scan(&m.Mode, &m.Total); err != nil {
			return res, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func (r *Repository) applicationsByJob(ctx context.Context) ([]JobApplications, error) {
	res := make([]JobApplications, 0)
	rows, err := r.db.QueryContext(ctx, `SELECT p.id_vacante, v.puesto, COUNT(*) AS total
FROM postulaciones p
LEFT JOIN vacantes v ON p.id_vacante = v.id_vacante
GROUP BY p.id_vacante, v.puesto
ORDER BY total DESC, p.id_vacante ASC
LIMIT ?`, topJobsLimit)
	if err != nil {
		return res, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			j     JobApplications
			title sql.NullString
		)
		if err := rows.Scan(&j.JobID, &title, &j.Total); err != nil {
			return res, err
		}
		if title.Valid {
			j.Title = &title.String
		}
		res = append(res, j)
	}
	return res, rows.Err()
}

func (r *Repository) applicationsByDate(ctx context.Context) ([]DateCount, error) {
	res := make([]DateCount, 0)
	rows, err := r.db.QueryContext(ctx, `SELECT "fecha_postulación" AS fecha, COUNT(*) AS total
FROM postulaciones
GROUP BY "fecha_postulación"
ORDER BY "fecha_postulación" ASC`)
	if err != nil {
		return res, err
	}
	defer rows.Close()
	for rows.Next() {
		var d DateCount
		if err := rows.Scan(&d.Date, &d.Total); err != nil {
			return res, err
		}
		res = append(res, d)
	}
	return res, rows.Err()
}

func (r *Repository) jobApplicantRows(ctx context.Context) ([]joinRow, error) {
	res := make([]joinRow, 0)
	rows, err := r.db.QueryContext(ctx, `SELECT v.id_vacante, v.puesto, p."id_postulación", p.nombre_postulante, p.correo, p.cv_url
FROM vacantes v
LEFT JOIN postulaciones p ON p.id_vacante = v.id_vacante
ORDER BY v.id_vacante ASC, p."id_postulación" ASC`)
	if err != nil {
		return res, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			jr                 joinRow
			appID              sql.NullInt64
			name, email, cvURL sql.NullString
		)
		if err := rows.Scan(&jr.JobID, &jr.Title, &appID, &name, &email, &cvURL); err != nil {
			return res, err
		}
		if appID.Valid {
			jr.ApplicationID = &appID.Int64
		}
		if name.Valid {
			jr.Name = &name.String
		}
		if email.Valid {
			jr.Email = &email.String
		}
		if cvURL.Valid {
			jr.CVURL = &cvURL.String
		}
		res = append(res, jr)
	}
	return res, rows.Err()
}

func (r *Repository) salaries(ctx context.Context) ([]float64, error) {
	res := make([]float64, 0)
	rows, err := r.db.QueryContext(ctx, `SELECT salario FROM vacantes ORDER BY salario ASC`)
	if err != nil {
		return res, err
	}
	defer rows.Close()
	for rows.Next() {
		var s float64
		if err := rows.Scan(&s); err != nil {
			return res, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}
