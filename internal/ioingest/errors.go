package ioingest

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnobs/pkg/errcode"
)

func MappingError(field, reason string) error {
	msg := "Invalid mapping setting <em>%s</em>: %s"
	vars := []any{field, reason}
	return &gn.Error{
		Code: errcode.IngestMappingError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid mapping setting %s: %s", field, reason),
	}
}

func OpenSourceError(name string, err error) error {
	msg := "Cannot open source <em>%s</em>"
	vars := []any{name}
	return &gn.Error{
		Code: errcode.IngestOpenSourceError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot open source %s: %w", name, err),
	}
}

func ReadSourceError(name string, line int, err error) error {
	msg := "Cannot read source <em>%s</em> after line %d"
	vars := []any{name, line}
	return &gn.Error{
		Code: errcode.IngestReadSourceError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read source %s after line %d: %w", name, line, err),
	}
}

func CanceledError(name string, line int, err error) error {
	msg := "Reading of <em>%s</em> stopped at line %d"
	vars := []any{name, line}
	return &gn.Error{
		Code: errcode.IngestCanceledError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("reading %s stopped at line %d: %w", name, line, err),
	}
}

func MissingHeaderError(name string) error {
	msg := "Source <em>%s</em> has no header row"
	vars := []any{name}
	return &gn.Error{
		Code: errcode.IngestMissingHeaderError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("source %s has no header row", name),
	}
}

func MissingColumnError(name, column, field string) error {
	msg := "Source <em>%s</em> has no column <em>%s</em> for the %s field"
	vars := []any{name, column, field}
	return &gn.Error{
		Code: errcode.IngestMissingColumnError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"source %s has no column %q for the %s field", name, column, field,
		),
	}
}
