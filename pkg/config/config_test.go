package config_test

import (
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gnames/gnobs/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "gnobs"),
		},
		{
			msg: "data dir",
			fn:  config.DataDir,
			res: filepath.Join(tempHome, ".local", "share", "gnobs", "data"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "gnobs", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "gnobs", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	assert.Equal(t, "sqlite", cfg.Database.Dialect)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "gnobs", cfg.Database.Database)
	assert.Equal(t, "", cfg.Database.Schema)
	assert.Equal(t, 1_000, cfg.Database.BatchSize)

	assert.Equal(t, ",", cfg.Ingest.Separator)
	assert.Equal(t, `"`, cfg.Ingest.Quote)
	assert.Equal(t, time.RFC3339, cfg.Ingest.DateFormat)
	assert.Equal(t, "timeseries", cfg.Ingest.ObservationType)

	assert.Equal(t, "sampling-point-", cfg.Store.SamplingIDBase)
	assert.Equal(t, "sensor-location-", cfg.Store.SensorIDBase)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Log.Destination)

	assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
}

func TestDatabasePath(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir("/home/obs"),
		config.OptDatabaseDialect("duck"),
	})
	assert.Equal(t,
		filepath.Join("/home/obs", ".local", "share", "gnobs", "data", "gnobs.duckdb"),
		cfg.DatabasePath(),
	)

	cfg.Update([]config.Option{config.OptDatabasePath("/tmp/x.db")})
	assert.Equal(t, "/tmp/x.db", cfg.DatabasePath())
}

func TestOptionDatabaseDialect(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"canonical", "duckdb", "duckdb"},
		{"alias", "PostGIS", "postgres"},
		{"sqlite3", "sqlite3", "sqlite"},
		{"ignores unknown", "oracle", "sqlite"},
		{"ignores empty", "", "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabaseDialect(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.Dialect)
		})
	}
}

func TestOptionDatabaseHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets valid host", "db.example.com", "db.example.com"},
		{"trims whitespace", "  db.example.com  ", "db.example.com"},
		{"ignores empty string", "", "localhost"},
		{"ignores whitespace-only", "   ", "localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabaseHost(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.Host)
		})
	}
}

func TestOptionIngestRunes(t *testing.T) {
	tests := []struct {
		name     string
		sep      string
		quote    string
		expSep   string
		expQuote string
	}{
		{"semicolon and single quote", ";", "'", ";", "'"},
		{"tab is kept", "\t", `"`, "\t", `"`},
		{"ignores long values", ";;", "''", ",", `"`},
		{"ignores empty", "", "", ",", `"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{
				config.OptIngestSeparator(tt.sep),
				config.OptIngestQuote(tt.quote),
			})
			assert.Equal(t, tt.expSep, cfg.Ingest.Separator)
			assert.Equal(t, tt.expQuote, cfg.Ingest.Quote)
		})
	}
}

func TestOptionIngestObservationType(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptIngestObservationType(" Profile ")})
	assert.Equal(t, "profile", cfg.Ingest.ObservationType)

	cfg.Update([]config.Option{config.OptIngestObservationType("trajectory")})
	assert.Equal(t, "profile", cfg.Ingest.ObservationType)
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets debug level", "debug", "debug"},
		{"normalizes case", "WARN", "warn"},
		{"ignores invalid level", "trace", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogLevel(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Level)
		})
	}
}

func TestOptionLogDestination(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptLogDestination("stderr")})
	assert.Equal(t, "stderr", cfg.Log.Destination)

	cfg.Update([]config.Option{config.OptLogDestination("syslog")})
	assert.Equal(t, "stderr", cfg.Log.Destination)
}

func TestOptionInts(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabaseBatchSize(500),
		config.OptJobsNumber(3),
		config.OptDatabasePort(0),
	})
	assert.Equal(t, 500, cfg.Database.BatchSize)
	assert.Equal(t, 3, cfg.JobsNumber)
	assert.Equal(t, 5432, cfg.Database.Port)

	cfg.Update([]config.Option{config.OptJobsNumber(-1)})
	assert.Equal(t, 3, cfg.JobsNumber)
}

func TestOptionExtractFilters(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptExtractSensors([]string{" P1", "", "P2 "}),
		config.OptExtractPhenomena(nil),
		config.OptExtractFeaturesOfInterest([]string{"st-1"}),
	})
	assert.Equal(t, []string{"P1", "P2"}, cfg.Extract.Sensors)
	assert.Nil(t, cfg.Extract.Phenomena)
	assert.Equal(t, []string{"st-1"}, cfg.Extract.FeaturesOfInterest)
}

func TestToOptions(t *testing.T) {
	src := config.New()
	src.Update([]config.Option{
		config.OptDatabaseDialect("duckdb"),
		config.OptDatabasePath("/data/obs.duckdb"),
		config.OptDatabaseSchema("obs"),
		config.OptIngestSeparator(";"),
		config.OptIngestProcedurePrefix("urn:sensor:"),
		config.OptIngestMappingFile("/data/mapping.yaml"),
		config.OptStoreSensorIDBase("loc-"),
		config.OptLogFormat("tint"),
		config.OptJobsNumber(2),
		config.OptHomeDir("/home/obs"),
		config.OptExtractSensors([]string{"P1"}),
	})

	dst := config.New()
	dst.Update(src.ToOptions())

	assert.Equal(t, src.Database, dst.Database)
	assert.Equal(t, src.Ingest, dst.Ingest)
	assert.Equal(t, src.Store, dst.Store)
	assert.Equal(t, src.Log, dst.Log)
	assert.Equal(t, src.JobsNumber, dst.JobsNumber)

	t.Run("runtime fields are not persistent", func(t *testing.T) {
		assert.Empty(t, dst.HomeDir)
		assert.Nil(t, dst.Extract.Sensors)
	})
}
