package database

import (
	"context"
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
)

//go:embed migrations
var migrationFS embed.FS

// Migrate applies the embedded migrations for the pool's dialect that have
// not been recorded in schema_migrations yet, in lexical order.
func Migrate(ctx context.Context, db *DB) ([]string, error) {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version VARCHAR(255) PRIMARY KEY, applied BIGINT NOT NULL)`); err != nil {
		return nil, errors.Wrap(err, "unable to create schema_migrations")
	}
	dir := path.Join("migrations", db.dialect.String())
	entries, err := fs.ReadDir(migrationFS, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", dir)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	applied := make([]string, 0, len(files))
	for _, fname := range files {
		version := strings.TrimSuffix(fname, path.Ext(fname))
		var count int
		if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM schema_migrations WHERE version = ?`, version).Scan(&count); err != nil {
			return applied, errors.Wrapf(err, "unable to check migration %s", version)
		}
		if count > 0 {
			continue
		}
		stmt, err := fs.ReadFile(migrationFS, path.Join(dir, fname))
		if err != nil {
			return applied, errors.Wrapf(err, "unable to read migration %s", fname)
		}
		err = db.inTx(ctx, func(q Querier) error {
			if _, err := q.ExecContext(ctx, string(stmt)); err != nil {
				return err
			}
			_, err := q.ExecContext(ctx, `INSERT INTO schema_migrations (version, applied) VALUES (?, ?)`, version, time.Now().Unix())
			return err
		})
		if err != nil {
			return applied, errors.Wrapf(err, "unable to apply migration %s", fname)
		}
		applied = append(applied, version)
	}
	return applied, nil
}
