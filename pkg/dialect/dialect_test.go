package dialect_test

import (
	"testing"

	"github.com/gnames/gnobs/pkg/dialect"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		msg string
		inp string
		res dialect.Dialect
	}{
		{"postgres", "postgres", dialect.Postgres},
		{"postgis alias", " PostGIS ", dialect.Postgres},
		{"duckdb", "duckdb", dialect.DuckDB},
		{"sqlite3 alias", "sqlite3", dialect.SQLite},
		{"unknown", "oracle", dialect.Unknown},
		{"empty", "", dialect.Unknown},
	}

	for _, v := range tests {
		res := dialect.New(v.inp)
		assert.Equal(t, v.res, res, v.msg)
		assert.Equal(t, v.res != dialect.Unknown, res.IsValid(), v.msg)
	}
}

func TestDialectSQL(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("$3", dialect.Postgres.Placeholder(3))
	assert.Equal("?", dialect.DuckDB.Placeholder(3))
	assert.Equal("?", dialect.SQLite.Placeholder(1))

	assert.Equal("pgx", dialect.Postgres.DriverName())
	assert.Equal("duckdb", dialect.DuckDB.DriverName())
	assert.Equal("sqlite", dialect.SQLite.DriverName())

	assert.Equal("GEOMETRY", dialect.Postgres.GeometryColumnType())
	assert.Equal("VARCHAR", dialect.DuckDB.GeometryColumnType())
	assert.Equal("BLOB", dialect.SQLite.GeometryColumnType())

	for _, d := range []dialect.Dialect{dialect.Postgres, dialect.DuckDB, dialect.SQLite} {
		assert.Equal(d, dialect.New(d.String()))
	}
}
