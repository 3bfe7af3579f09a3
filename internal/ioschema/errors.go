package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnobs/pkg/errcode"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// SchemaPrefixError creates an error for a table prefix that is not a
// plain SQL identifier.
func SchemaPrefixError(prefix string) error {
	msg := `Table prefix <em>%s</em> is not valid

<em>How to fix:</em>
  Use letters, digits and underscores only, starting with a letter
  or an underscore (database.schema in config.yaml)`

	return &gn.Error{
		Code: errcode.DBSchemaPrefixError,
		Msg:  msg,
		Vars: []any{prefix},
		Err:  fmt.Errorf("invalid table prefix %q", prefix),
	}
}

// GORMConnectionError creates an error for GORM
// connection failures.
func GORMConnectionError(err error) error {
	msg := `Cannot connect to database with GORM

<em>Possible causes:</em>
  - Connection pool not initialized
  - Database configuration issue

<em>How to fix:</em>
  1. Ensure database operator is connected
  2. Check database configuration`

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// ExtensionError creates an error for a PostgreSQL extension that
// cannot be enabled.
func ExtensionError(ext string, err error) error {
	msg := `Cannot enable <em>%s</em> extension

<em>How to fix:</em>
  1. Install PostGIS on the database server
  2. Check database user can run CREATE EXTENSION`

	return &gn.Error{
		Code: errcode.SchemaExtensionError,
		Msg:  msg,
		Vars: []any{ext},
		Err:  fmt.Errorf("failed to enable extension %s: %w", ext, err),
	}
}

// CreateSchemaError creates an error for table
// creation failures.
func CreateSchemaError(err error) error {
	msg := `Cannot create feature tables

<em>Possible causes:</em>
  - Insufficient database permissions
  - Existing tables with incompatible columns

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Drop old tables with <em>gnobs create --force</em>`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to create feature tables: %w", err),
	}
}
