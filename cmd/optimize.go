package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/gnobs/internal/iooptimize"
	"github.com/spf13/cobra"
)

// getOptimizeCmd returns the optimize command.
func getOptimizeCmd() *cobra.Command {
	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "Reclaim space and refresh statistics of feature tables",
		Long: `Run database maintenance after large ingests or removals.

Statements per database:
  PostgreSQL  VACUUM ANALYZE of both feature tables
  SQLite      VACUUM and ANALYZE of the database file
  DuckDB      CHECKPOINT and ANALYZE

Examples:
  gnobs optimize
  gnobs optimize -d postgres --schema buoys`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runOptimize()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return optimizeCmd
}

func runOptimize() error {
	ctx := context.Background()

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Optimization in progress, <em>it might take a while</em>...")
	if err = iooptimize.NewOptimizer(op).Optimize(ctx, cfg); err != nil {
		return err
	}
	gn.Info("Feature tables are optimized")
	return nil
}
