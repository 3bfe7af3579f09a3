// Package iodb implements database operations for PostgreSQL (pgxpool),
// DuckDB and SQLite. This is an impure I/O package that implements
// contracts defined in pkg/.
package iodb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/gnames/gnobs/pkg/config"
	"github.com/gnames/gnobs/pkg/db"
	"github.com/gnames/gnobs/pkg/dialect"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/marcboeker/go-duckdb/v2"
	_ "modernc.org/sqlite"
)

// operator implements db.Operator. PostgreSQL goes through a pgxpool
// that is also exposed as *sql.DB; embedded engines use database/sql
// drivers directly.
type operator struct {
	d    dialect.Dialect
	pool *pgxpool.Pool
	db   *sql.DB
}

// New creates a new database operator (without connecting).
func New() db.Operator {
	return &operator{}
}

// Connect opens the database of the configured dialect.
func (o *operator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	d := dialect.New(cfg.Dialect)
	var err error
	switch d {
	case dialect.Postgres:
		err = o.connectPostgres(ctx, cfg)
	case dialect.DuckDB, dialect.SQLite:
		err = o.connectEmbedded(ctx, d, cfg.Path)
	default:
		return UnknownDialectError(cfg.Dialect)
	}
	if err != nil {
		return err
	}
	o.d = d
	slog.Info("Connected to database", "dialect", d.String())
	return nil
}

func (o *operator) connectPostgres(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)
	target := fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.Database)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError(dialect.Postgres, target, err)
	}

	// readers and writers each hold one connection for their lifetime
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 0
	poolConfig.MaxConnIdleTime = 0

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(dialect.Postgres, target, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(dialect.Postgres, target, err)
	}

	o.pool = pool
	o.db = stdlib.OpenDBFromPool(pool)
	return nil
}

func (o *operator) connectEmbedded(
	ctx context.Context,
	d dialect.Dialect,
	path string,
) error {
	dsn := path
	if d == dialect.SQLite {
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)"
	}

	sdb, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return ConnectionError(d, path, err)
	}
	if err = sdb.PingContext(ctx); err != nil {
		sdb.Close()
		return ConnectionError(d, path, err)
	}
	o.db = sdb
	return nil
}

// Close releases all database connections.
func (o *operator) Close() error {
	var err error
	if o.db != nil {
		err = o.db.Close()
		o.db = nil
	}
	if o.pool != nil {
		o.pool.Close()
		o.pool = nil
	}
	return err
}

func (o *operator) Dialect() dialect.Dialect {
	return o.d
}

func (o *operator) DB() *sql.DB {
	return o.db
}

// Pool returns the underlying pgxpool.Pool for PostgreSQL.
func (o *operator) Pool() *pgxpool.Pool {
	return o.pool
}

// TableExists checks if a table exists in the current database.
func (o *operator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if o.db == nil {
		return false, NotConnectedError()
	}

	var query string
	switch o.d {
	case dialect.Postgres:
		query = `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = current_schema()
			AND table_name = $1
		)`
	case dialect.DuckDB:
		query = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_name = ?
		)`
	default:
		query = `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table' AND name = ?
		)`
	}

	var exists bool
	err := o.db.QueryRowContext(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, TableCheckError(tableName, err)
	}

	return exists, nil
}

// DropTables drops each table if it exists.
func (o *operator) DropTables(ctx context.Context, tableNames []string) error {
	if o.db == nil {
		return NotConnectedError()
	}

	for _, table := range tableNames {
		dropSQL := fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
		if o.d == dialect.Postgres {
			dropSQL += " CASCADE"
		}
		if _, err := o.db.ExecContext(ctx, dropSQL); err != nil {
			return DropTableError(table, err)
		}
	}

	return nil
}
