package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Extract filters).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	addString := func(s string, fn func(string) Option) {
		if s != "" {
			res = append(res, fn(s))
		}
	}
	addInt := func(i int, fn func(int) Option) {
		if i > 0 {
			res = append(res, fn(i))
		}
	}

	addString(c.Database.Dialect, OptDatabaseDialect)
	addString(c.Database.Host, OptDatabaseHost)
	addInt(c.Database.Port, OptDatabasePort)
	addString(c.Database.User, OptDatabaseUser)
	addString(c.Database.Password, OptDatabasePassword)
	addString(c.Database.Database, OptDatabaseDatabase)
	addString(c.Database.SSLMode, OptDatabaseSSLMode)
	addString(c.Database.Path, OptDatabasePath)
	addString(c.Database.Schema, OptDatabaseSchema)
	addInt(c.Database.BatchSize, OptDatabaseBatchSize)

	addString(c.Ingest.Separator, OptIngestSeparator)
	addString(c.Ingest.Quote, OptIngestQuote)
	addString(c.Ingest.DateFormat, OptIngestDateFormat)
	addString(c.Ingest.ObservationType, OptIngestObservationType)
	addString(c.Ingest.ProcedurePrefix, OptIngestProcedurePrefix)
	addString(c.Ingest.ProcedureID, OptIngestProcedureID)
	addString(c.Ingest.MappingFile, OptIngestMappingFile)

	addString(c.Store.SamplingIDBase, OptStoreSamplingIDBase)
	addString(c.Store.SensorIDBase, OptStoreSensorIDBase)

	addString(c.Log.Format, OptLogFormat)
	addString(c.Log.Level, OptLogLevel)
	addString(c.Log.Destination, OptLogDestination)

	addInt(c.JobsNumber, OptJobsNumber)
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidRune(name, s string) bool {
	res := utf8.RuneCountInString(s) == 1
	if !res {
		gn.Warn("<em>%s</em> has to be one character, ignoring '%s'", name, s)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Database.Dialect": {"postgres": s, "duckdb": s, "sqlite": s},
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Ingest.ObservationType": {"timeseries": s, "profile": s},
		"Log.Level":              {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":             {"json": s, "text": s, "tint": s},
		"Log.Destination":        {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	} else {
		gn.Warn(
			"<em>%s</em> does not support '%s' as a value. "+
				"Valid values are: \n%s\nIgnoring...",
			name, val, strings.Join(lines, "\n"),
		)
		return false
	}
}

// cleanList trims elements and drops empty ones.
func cleanList(ss []string) []string {
	var res []string
	for _, v := range ss {
		if v = strings.TrimSpace(v); v != "" {
			res = append(res, v)
		}
	}
	return res
}
