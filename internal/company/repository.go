package company

import (
	"context"

	"github.com/golang-cafe/job-portal/internal/database"
	"github.com/pkg/errors"
)

const columns = `id_empresa, nombre, giro, "tamaño", "teléfono", fecha_registro, ciudad, "dirección"`

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db}
}

// Create inserts c and returns the generated id_empresa.
func (r *Repository) Create(ctx context.Context, c Company) (int64, error) {
	stmt := `INSERT INTO empresas (nombre, giro, "tamaño", "teléfono", fecha_registro, ciudad, "dirección")
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id_empresa`
	var id int64
	err := r.db.QueryRowContext(ctx, stmt, c.Name, c.Industry, c.Size, c.Phone, c.RegisteredAt, c.City, c.Address).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "unable to insert empresa")
	}
	return id, nil
}

// CompanyByID returns sql.ErrNoRows (wrapped) when the company does not exist.
func (r *Repository) CompanyByID(ctx context.Context, id int64) (Company, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM empresas WHERE id_empresa = ?`, id)
	c, err := scanCompany(row)
	if err != nil {
		return Company{}, errors.Wrapf(err, "unable to get empresa %d", id)
	}
	return c, nil
}

func (r *Repository) Companies(ctx context.Context) ([]Company, error) {
	res := make([]Company, 0)
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM empresas ORDER BY id_empresa ASC`)
	if err != nil {
		return res, errors.Wrap(err, "unable to list empresas")
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return res, err
		}
		res = append(res, c)
	}
	if err := rows.Err(); err != nil {
		return res, err
	}
	return res, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCompany(s scanner) (Company, error) {
	var c Company
	err := s.Scan(
		&c.ID,
		&c.Name,
		&c.Industry,
		&c.Size,
		&c.Phone,
		&c.RegisteredAt,
		&c.City,
		&c.Address,
	)
	return c, err
}
