// Package iooptimize implements lifecycle.Optimizer for every supported
// dialect. It reclaims space left by removed features and refreshes
// statistics of the query planner.
package iooptimize

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnobs/pkg/config"
	"github.com/gnames/gnobs/pkg/db"
	"github.com/gnames/gnobs/pkg/dialect"
	"github.com/gnames/gnobs/pkg/feature"
	"github.com/gnames/gnobs/pkg/lifecycle"
	"github.com/gnames/gnobs/pkg/schema"
)

type optimizer struct {
	operator db.Operator
}

// NewOptimizer creates a new Optimizer.
func NewOptimizer(op db.Operator) lifecycle.Optimizer {
	return &optimizer{operator: op}
}

// Optimize runs the statements returned by statements. None of them can
// run inside a transaction, so they go straight to the connection pool.
func (o *optimizer) Optimize(ctx context.Context, cfg *config.Config) error {
	if o.operator.DB() == nil {
		return NotConnectedError()
	}

	timeStart := time.Now()
	d := o.operator.Dialect()
	for _, v := range statements(d, cfg.Database.Schema) {
		slog.Info("Running maintenance statement", "statement", v)
		var err error
		if d == dialect.Postgres {
			_, err = o.operator.Pool().Exec(ctx, v)
		} else {
			_, err = o.operator.DB().ExecContext(ctx, v)
		}
		if err != nil {
			return StatementError(v, err)
		}
	}

	slog.Info("Optimization completed",
		"dialect", d.String(),
		"duration", gnfmt.TimeString(time.Since(timeStart).Seconds()),
	)
	return nil
}

// statements returns maintenance statements of a dialect. PostgreSQL
// vacuums only the feature tables, embedded engines work on the whole
// file.
func statements(d dialect.Dialect, prefix string) []string {
	switch d {
	case dialect.Postgres:
		var res []string
		for _, k := range []feature.Kind{feature.Sampling, feature.Sensor} {
			res = append(res, "VACUUM ANALYZE "+schema.Table(prefix, k.Table()))
		}
		return res
	case dialect.SQLite:
		return []string{"VACUUM", "ANALYZE"}
	case dialect.DuckDB:
		return []string{"CHECKPOINT", "ANALYZE"}
	}
	return nil
}
