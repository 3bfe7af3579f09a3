// Package dialect enumerates the SQL engines a feature store can sit on.
// The set is closed: every switch over Dialect handles all three variants.
package dialect

import (
	"fmt"
	"strings"
)

// Dialect determines the SQL text and the geometry encoding used by a
// store operation.
type Dialect int

const (
	// Unknown is the zero value and is never accepted by a store.
	Unknown Dialect = iota

	// Postgres has full SQL geometry functions (PostGIS). Geometries travel
	// as WKB, the SRID is a separate integer column.
	Postgres

	// DuckDB is the embedded analytical engine. Geometries travel as WKT
	// text and reading requires a textual cast in the projection.
	DuckDB

	// SQLite is the plain embedded engine. Geometries are opaque blobs
	// stored verbatim.
	SQLite
)

// New converts a configuration string to a Dialect.
func New(s string) Dialect {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postgres", "postgresql", "postgis", "pg":
		return Postgres
	case "duckdb", "duck":
		return DuckDB
	case "sqlite", "sqlite3":
		return SQLite
	default:
		return Unknown
	}
}

// String returns the canonical configuration name of the dialect.
func (d Dialect) String() string {
	switch d {
	case Postgres:
		return "postgres"
	case DuckDB:
		return "duckdb"
	case SQLite:
		return "sqlite"
	default:
		return "unknown"
	}
}

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	switch d {
	case Postgres:
		return "pgx"
	case DuckDB:
		return "duckdb"
	case SQLite:
		return "sqlite"
	default:
		return ""
	}
}

// Placeholder returns the bind parameter for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
	switch d {
	case Postgres:
		return fmt.Sprintf("$%d", n)
	default:
		return "?"
	}
}

// GeometryColumnType is the column type that holds shapes.
func (d Dialect) GeometryColumnType() string {
	switch d {
	case Postgres:
		return "GEOMETRY"
	case DuckDB:
		return "VARCHAR"
	case SQLite:
		return "BLOB"
	default:
		return ""
	}
}

// IsValid is true for the three supported engines.
func (d Dialect) IsValid() bool {
	switch d {
	case Postgres, DuckDB, SQLite:
		return true
	default:
		return false
	}
}
