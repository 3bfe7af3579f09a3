package iofeature

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnobs/pkg/errcode"
	"github.com/gnames/gnobs/pkg/geodesy"
)

func SchemaPrefixError(prefix string) error {
	msg := "Table prefix <em>%s</em> is not a valid SQL identifier"
	return &gn.Error{
		Code: errcode.DBSchemaPrefixError,
		Msg:  msg,
		Vars: []any{prefix},
		Err:  fmt.Errorf("invalid table prefix %q", prefix),
	}
}

func UnknownKindError(kind string) error {
	msg := "Unknown feature kind <em>%s</em>, use sampling or sensor"
	return &gn.Error{
		Code: errcode.FeatureUnknownKindError,
		Msg:  msg,
		Vars: []any{kind},
		Err:  fmt.Errorf("unknown feature kind %q", kind),
	}
}

func QueryError(table string, err error) error {
	msg := "Cannot query features from <em>%s</em>"
	return &gn.Error{
		Code: errcode.FeatureQueryError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("cannot query %s: %w", table, err),
	}
}

func ScanError(table string, err error) error {
	msg := "Cannot read a feature row from <em>%s</em>"
	return &gn.Error{
		Code: errcode.FeatureScanError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("cannot scan %s row: %w", table, err),
	}
}

func ReprojectError(id string, from, to geodesy.CRS, err error) error {
	msg := "Cannot reproject feature <em>%s</em> from %s to %s"
	return &gn.Error{
		Code: errcode.FeatureReprojectError,
		Msg:  msg,
		Vars: []any{id, from.String(), to.String()},
		Err: fmt.Errorf(
			"cannot reproject feature %s from %s to %s: %w", id, from, to, err,
		),
	}
}

func RemoveError(table, id string, err error) error {
	msg := "Cannot remove feature <em>%s</em> from <em>%s</em>"
	return &gn.Error{
		Code: errcode.FeatureRemoveError,
		Msg:  msg,
		Vars: []any{id, table},
		Err:  fmt.Errorf("cannot remove %s from %s: %w", id, table, err),
	}
}

func IDAllocationError(table string, err error) error {
	msg := "Cannot allocate a new identifier in <em>%s</em>"
	return &gn.Error{
		Code: errcode.FeatureIDAllocationError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("cannot allocate id in %s: %w", table, err),
	}
}

func CursorClosedError(table string) error {
	msg := "Feature cursor on <em>%s</em> is closed"
	return &gn.Error{
		Code: errcode.FeatureCursorClosedError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("cursor on %s is closed", table),
	}
}

func NotConnectedError() error {
	msg := "Feature store opened without database connection"
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}
