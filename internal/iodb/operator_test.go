package iodb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnobs/internal/iodb"
	"github.com/gnames/gnobs/internal/iotesting"
	"github.com/gnames/gnobs/pkg/config"
	"github.com/gnames/gnobs/pkg/dialect"
	"github.com/gnames/gnobs/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorSQLite(t *testing.T) {
	ctx := context.Background()
	op := iodb.New()
	require.NoError(t, op.Connect(ctx, &iotesting.EmbeddedConfig(t, "sqlite").Database))
	defer op.Close()

	assert.Equal(t, dialect.SQLite, op.Dialect())
	assert.NotNil(t, op.DB())
	assert.Nil(t, op.Pool())

	exists, err := op.TableExists(ctx, "things")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = op.DB().ExecContext(ctx, "CREATE TABLE things (id TEXT)")
	require.NoError(t, err)
	exists, err = op.TableExists(ctx, "things")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, op.DropTables(ctx, []string{"things", "missing"}))
	exists, err = op.TableExists(ctx, "things")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestOperatorDuckDB(t *testing.T) {
	cfg := iotesting.EmbeddedConfig(t, "duckdb")
	ctx := context.Background()
	op := iodb.New()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()

	_, err := op.DB().ExecContext(ctx, "CREATE TABLE things (id VARCHAR)")
	require.NoError(t, err)
	exists, err := op.TableExists(ctx, "things")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestOperatorPostgres(t *testing.T) {
	cfg := iotesting.PostgresConfig(t)
	ctx := context.Background()
	op := iodb.New()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()

	assert.NotNil(t, op.Pool())
	_, err := op.TableExists(ctx, "sampling_features")
	assert.NoError(t, err)
}

func TestOperatorErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown dialect", func(t *testing.T) {
		op := iodb.New()
		err := op.Connect(ctx, &config.DatabaseConfig{Dialect: "oracle"})
		require.Error(t, err)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.DBUnknownDialectError, gnErr.Code)
	})

	t.Run("not connected", func(t *testing.T) {
		op := iodb.New()
		_, err := op.TableExists(ctx, "x")
		require.Error(t, err)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	})

	t.Run("missing directory", func(t *testing.T) {
		op := iodb.New()
		cfg := &config.DatabaseConfig{
			Dialect: "sqlite",
			Path:    filepath.Join(t.TempDir(), "no", "such", "dir", "x.db"),
		}
		err := op.Connect(ctx, cfg)
		require.Error(t, err)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	})
}
