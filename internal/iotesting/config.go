// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gnames/gnobs/pkg/config"
)

const (
	// TestDatabaseName is the PostgreSQL database used for all integration
	// tests. This ensures tests never accidentally run against production
	// databases.
	TestDatabaseName = "gnobs_test"

	// PostgresEnv enables PostgreSQL integration tests when set.
	PostgresEnv = "GNOBS_TEST_PG"
)

// EmbeddedConfig returns a configuration with a fresh database file of
// the given dialect ("sqlite" or "duckdb") in a temporary directory.
// DuckDB tests are skipped in short mode.
func EmbeddedConfig(t *testing.T, d string) *config.Config {
	t.Helper()
	if d == "duckdb" && testing.Short() {
		t.Skip("Skipping DuckDB test in short mode")
	}
	dir := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(dir),
		config.OptDatabaseDialect(d),
		config.OptDatabasePath(filepath.Join(dir, "gnobs_test."+d)),
	})
	return cfg
}

// PostgresConfig returns a configuration for PostgreSQL integration tests.
// The test is skipped in short mode and when GNOBS_TEST_PG is not set.
// Connection settings come from GNOBS_DATABASE_* environment variables
// when present; the database name is always TestDatabaseName.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    cfg := iotesting.PostgresConfig(t)
//	    // ... use cfg for database operations
//	}
func PostgresConfig(t *testing.T) *config.Config {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if os.Getenv(PostgresEnv) == "" {
		t.Skipf("Skipping PostgreSQL test, %s is not set", PostgresEnv)
	}

	cfg := config.New()
	opts := []config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptDatabaseDialect("postgres"),
		config.OptDatabaseDatabase(TestDatabaseName),
	}
	if s := os.Getenv("GNOBS_DATABASE_HOST"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if s := os.Getenv("GNOBS_DATABASE_PORT"); s != "" {
		if i, err := strconv.Atoi(s); err == nil {
			opts = append(opts, config.OptDatabasePort(i))
		}
	}
	if s := os.Getenv("GNOBS_DATABASE_USER"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := os.Getenv("GNOBS_DATABASE_PASSWORD"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	cfg.Update(opts)
	return cfg
}

// SetupTempHome points HOME to a temporary directory for the duration of
// the test, so nothing is written to the real ~/.config/gnobs.
func SetupTempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return dir
}
