package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnobs/pkg/dialect"
	"github.com/gnames/gnobs/pkg/errcode"
)

// ConnectionError is returned when the database cannot be opened.
func ConnectionError(d dialect.Dialect, target string, err error) error {
	msg := `Cannot connect to <em>%s</em> database <em>%s</em>

<em>Possible causes:</em>
  - PostgreSQL is not running or rejects the credentials
  - The directory of an embedded database file does not exist
  - The database file is locked by another process

<em>How to fix:</em>
  1. Check the database section of ~/.config/gnobs/config.yaml
  2. For PostgreSQL run <em>pg_isready</em>`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{d.String(), target},
		Err:  fmt.Errorf("failed to connect to %s %s: %w", d, target, err),
	}
}

// NotConnectedError is returned when an operation runs before Connect.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// UnknownDialectError is returned for an unsupported database engine.
func UnknownDialectError(s string) error {
	msg := "Unknown database dialect <em>%s</em>, " +
		"use postgres, duckdb or sqlite"

	return &gn.Error{
		Code: errcode.DBUnknownDialectError,
		Msg:  msg,
		Vars: []any{s},
		Err:  fmt.Errorf("unknown database dialect %q", s),
	}
}

func TableCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"

	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to check table %s: %w", table, err),
	}
}

func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"

	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}
