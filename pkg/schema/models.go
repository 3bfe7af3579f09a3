// Package schema provides the table models of the gnobs feature store.
// The same models drive hand written DDL for embedded engines and GORM
// migrations for PostgreSQL.
package schema

import (
	"database/sql"
	"regexp"

	"github.com/gnames/gnobs/pkg/dialect"
)

// geometryType is the ddl tag value substituted with the geometry column
// type of a dialect.
const geometryType = "GEOMETRY"

// DDLGenerator defines how Go models generate DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL(d dialect.Dialect, prefix string) string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL(prefix string) []string

	// TableName returns the table name without prefix.
	TableName() string
}

// SamplingFeature is a point where observations are taken.
type SamplingFeature struct {
	// ID is the feature identifier, usually the configured base plus a
	// sequence number.
	ID string `db:"id" ddl:"VARCHAR(255) PRIMARY KEY" gorm:"primaryKey;type:varchar(255)"`

	Name        string `db:"name" ddl:"VARCHAR(255)" gorm:"type:varchar(255)"`
	Description string `db:"description" ddl:"TEXT" gorm:"type:text"`

	// SampledFeature is the identifier of the larger feature this one
	// samples, for example a river for a station.
	SampledFeature string `db:"sampled_feature" ddl:"VARCHAR(255)" gorm:"type:varchar(255)"`

	// Shape is the encoded geometry, NULL for features without one.
	Shape []byte `db:"shape" ddl:"GEOMETRY" gorm:"type:geometry"`

	// SRID is NULL exactly when Shape is NULL.
	SRID sql.NullInt32 `db:"srid" ddl:"INTEGER" gorm:"column:srid;type:integer"`
}

// SensorLocation is a place where a procedure was deployed.
type SensorLocation struct {
	ID    string        `db:"id" ddl:"VARCHAR(255) PRIMARY KEY" gorm:"primaryKey;type:varchar(255)"`
	Shape []byte        `db:"shape" ddl:"GEOMETRY" gorm:"type:geometry"`
	SRID  sql.NullInt32 `db:"srid" ddl:"INTEGER" gorm:"column:srid;type:integer"`
}

// AllModels returns all feature table models.
func AllModels() []DDLGenerator {
	return []DDLGenerator{
		&SamplingFeature{},
		&SensorLocation{},
	}
}

var prefixRx = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsValidPrefix checks that a table prefix is a plain SQL identifier.
// The empty prefix is valid.
func IsValidPrefix(prefix string) bool {
	return prefix == "" || prefixRx.MatchString(prefix)
}

// Table joins a prefix and a table name.
func Table(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "_" + name
}
