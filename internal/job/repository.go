package job

import (
	"context"

	"github.com/golang-cafe/job-portal/internal/database"
	"github.com/golang-cafe/job-portal/internal/query"
	"github.com/pkg/errors"
)

const (
	columns = `id_vacante, id_empresa, puesto, "descripción", salario, modalidad, especialidad, "fecha_publicación", estatus`
	orderBy = ` ORDER BY "fecha_publicación" DESC, id_vacante DESC`
)

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db}
}

// Create inserts j and returns the generated id_vacante. A missing company
// is rejected by the foreign key, not here.
func (r *Repository) Create(ctx context.Context, j Job) (int64, error) {
	stmt := `INSERT INTO vacantes (id_empresa, puesto, "descripción", salario, modalidad, especialidad, "fecha_publicación", estatus)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id_vacante`
	var id int64
	err := r.db.QueryRowContext(ctx, stmt, j.CompanyID, j.Title, j.Description, j.Salary, j.Mode, j.Specialty, j.PublishedAt, j.Status).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "unable to insert vacante")
	}
	return id, nil
}

func (r *Repository) JobByID(ctx context.Context, id int64) (Job, error) {
	j, err := scanJob(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM vacantes WHERE id_vacante = ?`, id))
	if err != nil {
		return Job{}, errors.Wrapf(err, "unable to get vacante %d", id)
	}
	return j, nil
}

// Jobs lists vacancies matching f, newest publication first.
func (r *Repository) Jobs(ctx context.Context, f Filters) ([]Job, error) {
	b := f.where()
	stmt := `SELECT ` + columns + ` FROM vacantes` + b.WhereSQL() + orderBy
	args := b.Args()
	if f.Limit > 0 {
		stmt += ` LIMIT ?`
		args = append(args, f.Limit)
	}
	jobs, err := queryJobs(ctx, r.db, stmt, args...)
	if err != nil {
		return jobs, errors.Wrap(err, "unable to list vacantes")
	}
	return jobs, nil
}

// JobsPage returns one page of the vacancies matching f. f.Limit is ignored.
func (r *Repository) JobsPage(ctx context.Context, f Filters, p query.Page) (query.Paginated[Job], error) {
	res := query.Paginated[Job]{Items: make([]Job, 0)}
	b := f.where()
	err := r.db.Snapshot(ctx, func(q database.Querier) error {
		var total int
		if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM vacantes`+b.WhereSQL(), b.Args()...).Scan(&total); err != nil {
			return err
		}
		items, err := queryJobs(ctx, q, `SELECT `+columns+` FROM vacantes`+b.WhereSQL()+orderBy+` LIMIT ? OFFSET ?`, b.Args(p.Size, p.Offset())...)
		if err != nil {
			return err
		}
		res.Items = items
		res.Pagination = query.NewPagination(total, p)
		return nil
	})
	if err != nil {
		return res, errors.Wrap(err, "unable to page vacantes")
	}
	return res, nil
}

func queryJobs(ctx context.Context, q database.Querier, stmt string, args ...interface{}) ([]Job, error) {
	res := make([]Job, 0)
	rows, err := q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return res, err
	}
	defer rows.Close()
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return res, err
		}
		res = append(res, j)
	}
	return res, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(s scanner) (Job, error) {
	var j Job
	err := s.Scan(
		&j.ID,
		&j.CompanyID,
		&j.Title,
		&j.Description,
		&j.Salary,
		&j.Mode,
		&j.Specialty,
		&j.PublishedAt,
		&j.Status,
	)
	return j, err
}
