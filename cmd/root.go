/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnobs/internal/iofs"
	"github.com/gnames/gnobs/internal/iologger"
	app "github.com/gnames/gnobs/pkg"
	"github.com/gnames/gnobs/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir   string
	opts      []config.Option
	cfg       *config.Config
	logCloser io.Closer
)

// getRootCmd creates the base command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gnobs",
		Short:   "GNobs ingests sensor observation files and stores their features",
		Long: `GNobs reads delimited observation files (time series and profiles),
groups their rows into observations with sparse result matrices and
stores sensor locations and sampling points in a spatial database.

Supported databases: PostgreSQL with PostGIS, DuckDB and SQLite.

Commands:
  - create: create feature tables
  - extract: print observations, procedures, phenomena or bounds of files
  - ingest: extract files and store their features
  - features: list or remove stored features
  - optimize: reclaim space and refresh statistics

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNOBS_*)
  3. Config file (~/.config/gnobs/config.yaml)
  4. Built-in defaults

  See 'go doc github.com/gnames/gnobs/pkg/config' for complete list.`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gnobs version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gnobs")

	dbFlags(rootCmd)

	rootCmd.AddCommand(
		getCreateCmd(),
		getExtractCmd(),
		getIngestCmd(),
		getFeaturesCmd(),
		getOptimizeCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// CLI flags override config file and environment
	cfg.Update(dbFlagOptions(cmd))
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	logCloser, err = iologger.Init(config.LogDir(homeDir), cfg.Log, false)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"dialect", cfg.Database.Dialect,
	)

	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Environment variables are bound explicitly to keep the list of
	// allowed ones visible. They match the fields of config.ToOptions().
	v.SetEnvPrefix("GNOBS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.dialect", "GNOBS_DATABASE_DIALECT")
	v.BindEnv("database.host", "GNOBS_DATABASE_HOST")
	v.BindEnv("database.port", "GNOBS_DATABASE_PORT")
	v.BindEnv("database.user", "GNOBS_DATABASE_USER")
	v.BindEnv("database.password", "GNOBS_DATABASE_PASSWORD")
	v.BindEnv("database.database", "GNOBS_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "GNOBS_DATABASE_SSL_MODE")
	v.BindEnv("database.path", "GNOBS_DATABASE_PATH")
	v.BindEnv("database.schema", "GNOBS_DATABASE_SCHEMA")
	v.BindEnv("database.batch_size", "GNOBS_DATABASE_BATCH_SIZE")

	// Ingest configuration
	v.BindEnv("ingest.separator", "GNOBS_INGEST_SEPARATOR")
	v.BindEnv("ingest.quote", "GNOBS_INGEST_QUOTE")
	v.BindEnv("ingest.date_format", "GNOBS_INGEST_DATE_FORMAT")
	v.BindEnv("ingest.observation_type", "GNOBS_INGEST_OBSERVATION_TYPE")
	v.BindEnv("ingest.procedure_prefix", "GNOBS_INGEST_PROCEDURE_PREFIX")
	v.BindEnv("ingest.procedure_id", "GNOBS_INGEST_PROCEDURE_ID")
	v.BindEnv("ingest.mapping_file", "GNOBS_INGEST_MAPPING_FILE")

	// Store configuration
	v.BindEnv("store.sampling_id_base", "GNOBS_STORE_SAMPLING_ID_BASE")
	v.BindEnv("store.sensor_id_base", "GNOBS_STORE_SENSOR_ID_BASE")

	// Log configuration
	v.BindEnv("log.level", "GNOBS_LOG_LEVEL")
	v.BindEnv("log.format", "GNOBS_LOG_FORMAT")
	v.BindEnv("log.destination", "GNOBS_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "GNOBS_JOBS_NUMBER")

	v.AutomaticEnv()
}
