package meta

import (
	"context"

	"github.com/golang-cafe/job-portal/internal/database"

	"github.com/pkg/errors"
)

// Counts holds the row count of every portal table.
type Counts struct {
	Companies    int64 `json:"empresas"`
	Jobs         int64 `json:"vacantes"`
	Applications int64 `json:"postulaciones"`
}

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db}
}

func (r *Repository) Ping(ctx context.Context) error {
	return errors.Wrap(r.db.PingContext(ctx), "unable to reach database")
}

// Tables lists the tables of the current schema in name order.
func (r *Repository) Tables(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Dialect().TablesQuery())
	if err != nil {
		return nil, errors.Wrap(err, "unable to list tables")
	}
	defer rows.Close()
	tables := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func (r *Repository) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	err := r.db.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM empresas),
		(SELECT COUNT(*) FROM vacantes),
		(SELECT COUNT(*) FROM postulaciones)`).Scan(&c.Companies, &c.Jobs, &c.Applications)
	if err != nil {
		return Counts{}, errors.Wrap(err, "unable to count rows")
	}
	return c, nil
}

// Hints are returned alongside a failed connectivity check.
var Hints = []string{
	"Verifica que el servidor de base de datos esté corriendo",
	"Verifica que la base de datos configurada en DATABASE_NAME existe",
	"Ejecuta las migraciones con MIGRATE=true",
	"Verifica las credenciales DATABASE_USER y DATABASE_PASSWORD",
}
