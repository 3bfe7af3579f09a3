package iooptimize

import (
	"context"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnobs/internal/iodb"
	"github.com/gnames/gnobs/internal/ioschema"
	"github.com/gnames/gnobs/internal/iotesting"
	"github.com/gnames/gnobs/pkg/config"
	"github.com/gnames/gnobs/pkg/dialect"
	"github.com/gnames/gnobs/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatements(t *testing.T) {
	assert.Equal(t, []string{
		"VACUUM ANALYZE obs_sampling_features",
		"VACUUM ANALYZE obs_sensor_locations",
	}, statements(dialect.Postgres, "obs"))
	assert.Equal(t, []string{"VACUUM", "ANALYZE"}, statements(dialect.SQLite, ""))
	assert.Equal(t, []string{"CHECKPOINT", "ANALYZE"}, statements(dialect.DuckDB, ""))
}

func TestOptimize(t *testing.T) {
	ctx := context.Background()
	for _, d := range []string{"sqlite", "duckdb", "postgres"} {
		t.Run(d, func(t *testing.T) {
			var cfg *config.Config
			if d == "postgres" {
				cfg = iotesting.PostgresConfig(t)
			} else {
				cfg = iotesting.EmbeddedConfig(t, d)
			}
			op := iodb.New()
			require.NoError(t, op.Connect(ctx, &cfg.Database))
			defer op.Close()
			require.NoError(t, ioschema.NewManager(op).Create(ctx, cfg))

			assert.NoError(t, NewOptimizer(op).Optimize(ctx, cfg))
		})
	}
}

func TestOptimizeNotConnected(t *testing.T) {
	err := NewOptimizer(iodb.New()).Optimize(context.Background(), config.New())
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
}
