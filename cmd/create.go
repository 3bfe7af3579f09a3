package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnobs/internal/iodb"
	"github.com/gnames/gnobs/internal/ioschema"
	"github.com/gnames/gnobs/pkg/db"
	"github.com/gnames/gnobs/pkg/feature"
	"github.com/gnames/gnobs/pkg/schema"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
func getCreateCmd() *cobra.Command {
	var forceCreate bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create feature tables",
		Long: `Create sampling feature and sensor location tables.

This command:
  1. Connects to the configured database (PostgreSQL, DuckDB or SQLite)
  2. Checks for existing feature tables and prompts for confirmation
  3. Enables PostGIS and runs GORM AutoMigrate on PostgreSQL, or runs
     CREATE TABLE statements on embedded engines
  4. Creates indexes

Use --force to skip confirmation and drop existing tables.

Examples:
  gnobs create
  gnobs create --force
  gnobs create -d duckdb --db-path /data/obs.duckdb --schema buoys`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCreate(forceCreate)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	createCmd.Flags().BoolVarP(&forceCreate, "force", "f",
		false, "drop existing tables without confirmation")

	return createCmd
}

func runCreate(force bool) error {
	ctx := context.Background()

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	exists, err := hasFeatureTables(ctx, op, cfg.Database.Schema)
	if err != nil {
		return err
	}

	sm := ioschema.NewManager(op)
	if exists {
		if !force && !confirmDrop() {
			gn.Info("Aborted. No changes made.")
			return nil
		}
		gn.Info("Dropping existing feature tables...")
		if err = sm.Drop(ctx, cfg); err != nil {
			return err
		}
	}

	gn.Info("Creating feature tables...")
	if err = sm.Create(ctx, cfg); err != nil {
		return err
	}

	gn.Info(`Feature tables are ready.
Next steps:
	 - Run '<em>gnobs extract -m mapping.yaml file.csv</em>' to check a file
	 - Run '<em>gnobs ingest -m mapping.yaml file.csv</em>' to store its features
`)
	return nil
}

// connect opens the configured database. Embedded engines without a
// configured path use a file in the data directory.
func connect(ctx context.Context) (db.Operator, error) {
	dbCfg := cfg.Database
	dbCfg.Path = cfg.DatabasePath()

	op := iodb.New()
	if err := op.Connect(ctx, &dbCfg); err != nil {
		return nil, err
	}
	gn.Info("Connected to %s database", op.Dialect())
	return op, nil
}

func hasFeatureTables(
	ctx context.Context,
	op db.Operator,
	prefix string,
) (bool, error) {
	for _, k := range []feature.Kind{feature.Sampling, feature.Sensor} {
		ok, err := op.TableExists(ctx, schema.Table(prefix, k.Table()))
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

func confirmDrop() bool {
	gn.Warn("\nWarning: Database contains feature tables.")
	gn.Warn("Creating them again will drop ALL stored features.")
	fmt.Print("\nDo you want to continue? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		gn.Warn("Failed to read user input")
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}
