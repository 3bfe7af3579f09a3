package db

import (
	"context"
	"database/sql"

	"github.com/gnames/gnobs/pkg/config"
	"github.com/gnames/gnobs/pkg/dialect"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management for every supported dialect
// and exposes the connection handles to the schema manager and the
// feature store.
type Operator interface {
	// Connect opens the database described by the config. Embedded
	// engines use cfg.Path.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database and its connection pool.
	Close() error

	// Dialect is the engine the operator is connected to.
	Dialect() dialect.Dialect

	// DB returns a database/sql handle for any dialect. Feature readers
	// and writers take their own connections from it.
	DB() *sql.DB

	// Pool returns the pgxpool.Pool of PostgreSQL connections, nil for
	// embedded engines.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// DropTables drops the given tables if they exist.
	DropTables(ctx context.Context, tableNames []string) error
}
