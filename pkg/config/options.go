package config

import (
	"strings"

	"github.com/gnames/gnobs/pkg/dialect"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseDialect sets the database engine.
// Valid values: "postgres", "duckdb", "sqlite" and their aliases.
func OptDatabaseDialect(s string) Option {
	d := dialect.New(s)
	return func(c *Config) {
		if isValidEnum("Database.Dialect", d.String()) {
			c.Database.Dialect = d.String()
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of features written per batch.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptDatabasePath sets the file of DuckDB and SQLite databases.
func OptDatabasePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Path", s) {
			c.Database.Path = s
		}
	}
}

// OptDatabaseSchema sets the prefix of feature table names. The store
// refuses to open when it is not a plain SQL identifier.
func OptDatabaseSchema(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Schema", s) {
			c.Database.Schema = s
		}
	}
}

// OptIngestSeparator sets the token separator. It must be one character.
func OptIngestSeparator(s string) Option {
	return func(c *Config) {
		if isValidRune("Ingest Separator", s) {
			c.Ingest.Separator = s
		}
	}
}

// OptIngestQuote sets the quote character.
func OptIngestQuote(s string) Option {
	return func(c *Config) {
		if isValidRune("Ingest Quote", s) {
			c.Ingest.Quote = s
		}
	}
}

// OptIngestDateFormat sets the Go time layout of date columns.
func OptIngestDateFormat(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Ingest DateFormat", s) {
			c.Ingest.DateFormat = s
		}
	}
}

// OptIngestObservationType sets the kind of observations in files.
// Valid values: "timeseries", "profile".
func OptIngestObservationType(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Ingest.ObservationType", s) {
			c.Ingest.ObservationType = s
		}
	}
}

// OptIngestProcedurePrefix sets the prefix of procedure identifiers.
func OptIngestProcedurePrefix(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Ingest ProcedurePrefix", s) {
			c.Ingest.ProcedurePrefix = s
		}
	}
}

// OptIngestProcedureID sets the procedure of files without a procedure
// column.
func OptIngestProcedureID(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Ingest ProcedureID", s) {
			c.Ingest.ProcedureID = s
		}
	}
}

// OptIngestMappingFile sets the path to the YAML column mapping.
func OptIngestMappingFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Ingest MappingFile", s) {
			c.Ingest.MappingFile = s
		}
	}
}

// OptStoreSamplingIDBase sets the prefix of sampling feature identifiers.
func OptStoreSamplingIDBase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Store SamplingIDBase", s) {
			c.Store.SamplingIDBase = s
		}
	}
}

// OptStoreSensorIDBase sets the prefix of sensor location identifiers.
func OptStoreSensorIDBase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Store SensorIDBase", s) {
			c.Store.SensorIDBase = s
		}
	}
}

// OptExtractSensors sets the allow-list of procedure identifiers.
// Runtime-only field - not in ToOptions().
func OptExtractSensors(ss []string) Option {
	return func(c *Config) {
		if ss = cleanList(ss); len(ss) > 0 {
			c.Extract.Sensors = ss
		}
	}
}

// OptExtractPhenomena restricts measure columns that are read.
// Runtime-only field - not in ToOptions().
func OptExtractPhenomena(ss []string) Option {
	return func(c *Config) {
		if ss = cleanList(ss); len(ss) > 0 {
			c.Extract.Phenomena = ss
		}
	}
}

// OptExtractFeaturesOfInterest restricts rows by feature of interest.
// Runtime-only field - not in ToOptions().
func OptExtractFeaturesOfInterest(ss []string) Option {
	return func(c *Config) {
		if ss = cleanList(ss); len(ss) > 0 {
			c.Extract.FeaturesOfInterest = ss
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of files processed concurrently.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, data, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
