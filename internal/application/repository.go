package application

import (
	"context"
	"database/sql"

	"github.com/golang-cafe/job-portal/internal/database"
	"github.com/golang-cafe/job-portal/internal/query"
	"github.com/pkg/errors"
)

const (
	columns = `"id_postulación", id_vacante, nombre_postulante, correo, "teléfono", cv_url, "fecha_postulación", estatus`
	orderBy = ` ORDER BY "fecha_postulación" DESC, "id_postulación" DESC`
)

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db}
}

// Create inserts a and returns the generated id_postulación.
func (r *Repository) Create(ctx context.Context, a Application) (int64, error) {
	stmt := `INSERT INTO postulaciones (id_vacante, nombre_postulante, correo, "teléfono", cv_url, "fecha_postulación", estatus)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING "id_postulación"`
	var id int64
	err := r.db.QueryRowContext(ctx, stmt, a.JobID, a.Name, a.Email, a.Phone, a.CVURL, a.SubmittedAt, a.Status).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "unable to insert postulación")
	}
	return id, nil
}

func (r *Repository) ApplicationByID(ctx context.Context, id int64) (Application, error) {
	a, err := scanApplication(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM postulaciones WHERE "id_postulación" = ?`, id))
	if err != nil {
		return Application{}, errors.Wrapf(err, "unable to get postulación %d", id)
	}
	return a, nil
}

// Applications lists applications matching f, newest first.
func (r *Repository) Applications(ctx context.Context, f Filters) ([]Application, error) {
	b := f.where()
	res, err := queryApplications(ctx, r.db, `SELECT `+columns+` FROM postulaciones`+b.WhereSQL()+orderBy, b.Args()...)
	if err != nil {
		return res, errors.Wrap(err, "unable to list postulaciones")
	}
	return res, nil
}

// ApplicationsPage returns one page of the applications matching f. The
// vacancy is not required to exist.
func (r *Repository) ApplicationsPage(ctx context.Context, f Filters, p query.Page) (query.Paginated[Application], error) {
	res := query.Paginated[Application]{Items: make([]Application, 0)}
	b := f.where()
	err := r.db.Snapshot(ctx, func(q database.Querier) error {
		var total int
		if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM postulaciones`+b.WhereSQL(), b.Args()...).Scan(&total); err != nil {
			return err
		}
		items, err := queryApplications(ctx, q, `SELECT `+columns+` FROM postulaciones`+b.WhereSQL()+orderBy+` LIMIT ? OFFSET ?`, b.Args(p.Size, p.Offset())...)
		if err != nil {
			return err
		}
		res.Items = items
		res.Pagination = query.NewPagination(total, p)
		return nil
	})
	if err != nil {
		return res, errors.Wrap(err, "unable to page postulaciones")
	}
	return res, nil
}

func queryApplications(ctx context.Context, q database.Querier, stmt string, args ...interface{}) ([]Application, error) {
	res := make([]Application, 0)
	rows, err := q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return res, err
	}
	defer rows.Close()
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return res, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanApplication(s scanner) (Application, error) {
	var (
		a  Application
		cv sql.NullString
	)
	err := s.Scan(
		&a.ID,
		&a.JobID,
		&a.Name,
		&a.Email,
		&a.Phone,
		&cv,
		&a.SubmittedAt,
		&a.Status,
	)
	a.CVURL = cv.String
	return a, err
}
