// Package config provides configuration management for gnobs.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: dialect, host, port, user, password, database, ssl_mode,
//     path, schema, batch_size
//   - Ingest: separator, quote, date_format, observation_type,
//     procedure_prefix, procedure_id, mapping_file
//   - Store: sampling_id_base, sensor_id_base
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Extract.Sensors, Phenomena, FeaturesOfInterest (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNOBS_ prefix with underscores for nesting:
//
//	GNOBS_DATABASE_DIALECT=duckdb
//	GNOBS_DATABASE_PATH=/data/obs.duckdb
//	GNOBS_INGEST_SEPARATOR=;
//	GNOBS_LOG_LEVEL=info
//	GNOBS_JOBS_NUMBER=8
package config

import (
	"runtime"
	"time"
)

// Config represents the complete gnobs configuration.
type Config struct {
	// Database contains feature store connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Ingest contains defaults for reading delimited observation files.
	Ingest IngestConfig `mapstructure:"ingest" yaml:"ingest"`

	// Store contains identifier policy of the feature tables.
	Store StoreConfig `mapstructure:"store" yaml:"store"`

	// Extract contains runtime filters of the extract and ingest commands.
	Extract ExtractConfig `mapstructure:"extract" yaml:"extract"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of files processed concurrently.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains feature store connection parameters.
type DatabaseConfig struct {
	// Dialect is the database engine.
	// Valid values: "postgres", "duckdb", "sqlite".
	Dialect string `mapstructure:"dialect" yaml:"dialect"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// Path is the database file of DuckDB and SQLite. When empty a file
	// in the data directory is used.
	Path string `mapstructure:"path" yaml:"path"`

	// Schema is the prefix of feature table names. It must be a plain
	// SQL identifier.
	Schema string `mapstructure:"schema" yaml:"schema"`

	// BatchSize is the number of features sent to a writer at once.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// IngestConfig provides defaults for settings a mapping file leaves
// empty.
type IngestConfig struct {
	// Separator is the token separator of delimited files.
	Separator string `mapstructure:"separator" yaml:"separator"`

	// Quote encloses tokens that contain the separator.
	Quote string `mapstructure:"quote" yaml:"quote"`

	// DateFormat is a Go time layout.
	DateFormat string `mapstructure:"date_format" yaml:"date_format"`

	// ObservationType is "timeseries" or "profile".
	ObservationType string `mapstructure:"observation_type" yaml:"observation_type"`

	// ProcedurePrefix is prepended to procedure identifiers.
	ProcedurePrefix string `mapstructure:"procedure_prefix" yaml:"procedure_prefix"`

	// ProcedureID is the procedure of files without a procedure column.
	// The file name is used when it is empty.
	ProcedureID string `mapstructure:"procedure_id" yaml:"procedure_id"`

	// MappingFile is the path to the YAML column mapping.
	MappingFile string `mapstructure:"mapping_file" yaml:"mapping_file"`
}

// StoreConfig sets identifier bases of the feature tables.
type StoreConfig struct {
	// SamplingIDBase prefixes generated sampling feature identifiers.
	SamplingIDBase string `mapstructure:"sampling_id_base" yaml:"sampling_id_base"`

	// SensorIDBase prefixes generated sensor location identifiers.
	SensorIDBase string `mapstructure:"sensor_id_base" yaml:"sensor_id_base"`
}

// ExtractConfig narrows extraction results. Empty slices mean no
// restriction.
type ExtractConfig struct {
	Sensors            []string `mapstructure:"sensors" yaml:"sensors"`
	Phenomena          []string `mapstructure:"phenomena" yaml:"phenomena"`
	FeaturesOfInterest []string `mapstructure:"features_of_interest" yaml:"features_of_interest"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Dialect:   "sqlite",
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "gnobs",
			SSLMode:   "disable",
			BatchSize: 1_000,
		},
		Ingest: IngestConfig{
			Separator:       ",",
			Quote:           `"`,
			DateFormat:      time.RFC3339,
			ObservationType: "timeseries",
		},
		Store: StoreConfig{
			SamplingIDBase: "sampling-point-",
			SensorIDBase:   "sensor-location-",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
