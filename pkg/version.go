// Package gnobs ingests delimited sensor files into an
// Observations-and-Measurements model and persists georeferenced features
// in PostgreSQL, DuckDB or SQLite.
package gnobs

var (
	// Version of gnobs, set at build time.
	Version = "v0.1.0"
	// Build timestamp, set at build time.
	Build = "n/a"
)
