package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-cafe/job-portal/internal/config"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Dialect is the SQL flavour spoken by the underlying driver.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

func (d Dialect) String() string {
	if d == SQLite {
		return config.DriverSQLite
	}
	return config.DriverPostgres
}

func (d Dialect) driverName() string {
	return d.String()
}

// Rebind rewrites ? placeholders into the dialect's bind syntax. Question
// marks inside single quoted literals and double quoted identifiers are left
// untouched.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var (
		b        strings.Builder
		n        int
		inString bool
		inIdent  bool
	)
	b.Grow(len(query) + 8)
	for _, r := range query {
		switch {
		case r == '\'' && !inIdent:
			inString = !inString
		case r == '"' && !inString:
			inIdent = !inIdent
		case r == '?' && !inString && !inIdent:
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// TablesQuery lists the user tables of the current schema, one name per row.
func (d Dialect) TablesQuery() string {
	if d == SQLite {
		return `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`
	}
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_type = 'BASE TABLE' ORDER BY table_name`
}

func (d Dialect) snapshotTxOptions() *sql.TxOptions {
	if d == SQLite {
		// sqlite transactions are serializable already
		return nil
	}
	return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
}

// Querier is implemented by both DB and Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// DB wraps the connection pool shared by every request.
type DB struct {
	conn    *sql.DB
	dialect Dialect
}

// GetDbConn opens the pool described by cfg and checks it is reachable.
func GetDbConn(ctx context.Context, cfg config.Config) (*DB, error) {
	if cfg.DatabaseDriver == config.DriverSQLite {
		return Open(ctx, SQLite, cfg.DatabaseName, 1)
	}
	databaseURL := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.DatabaseUser, cfg.DatabasePassword),
		Host:     fmt.Sprintf("%s:%s", cfg.DatabaseHost, cfg.DatabasePort),
		Path:     cfg.DatabaseName,
		RawQuery: url.Values{"sslmode": []string{cfg.DatabaseSSLMode}}.Encode(),
	}
	return Open(ctx, Postgres, databaseURL.String(), cfg.DatabaseMaxOpenConns)
}

// Open establishes a pool bounded to maxOpen live connections. Callers
// beyond that limit wait for a free connection without a queue limit.
func Open(ctx context.Context, dialect Dialect, dsn string, maxOpen int) (*DB, error) {
	conn, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s connection", dialect)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, errors.Wrapf(err, "unable to ping %s", dialect)
	}
	conn.SetMaxOpenConns(maxOpen)
	conn.SetMaxIdleConns(maxOpen)
	if dialect == SQLite {
		// an in-memory database lives as long as its connection
		conn.SetConnMaxLifetime(0)
		if _, err := conn.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
			conn.Close()
			return nil, errors.Wrap(err, "unable to enable sqlite foreign keys")
		}
	} else {
		conn.SetConnMaxLifetime(5 * time.Minute)
	}
	return &DB{conn: conn, dialect: dialect}, nil
}

// CloseDbConn closes db conn
func CloseDbConn(db *DB) {
	db.conn.Close()
}

func (db *DB) Dialect() Dialect {
	return db.dialect
}

func (db *DB) Stats() sql.DBStats {
	return db.conn.Stats()
}

func (db *DB) PingContext(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return db.conn.ExecContext(ctx, db.dialect.Rebind(query), args...)
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return db.conn.QueryContext(ctx, db.dialect.Rebind(query), args...)
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRowContext(ctx, db.dialect.Rebind(query), args...)
}

// Tx is a transaction that rebinds placeholders like DB does.
type Tx struct {
	tx      *sql.Tx
	dialect Dialect
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return t.tx.ExecContext(ctx, t.dialect.Rebind(query), args...)
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, t.dialect.Rebind(query), args...)
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return t.tx.QueryRowContext(ctx, t.dialect.Rebind(query), args...)
}

// Snapshot runs fn inside a read-only transaction so that every statement
// issued by fn observes the same snapshot.
func (db *DB) Snapshot(ctx context.Context, fn func(q Querier) error) error {
	tx, err := db.conn.BeginTx(ctx, db.dialect.snapshotTxOptions())
	if err != nil {
		return errors.Wrap(err, "unable to begin snapshot transaction")
	}
	if err := fn(&Tx{tx: tx, dialect: db.dialect}); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// inTx runs fn in a read-write transaction.
func (db *DB) inTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(&Tx{tx: tx, dialect: db.dialect}); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
