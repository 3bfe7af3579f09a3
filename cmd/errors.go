package cmd

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnobs/pkg/errcode"
)

func InvalidFlagError(flag, val string, allowed []string) error {
	msg := "Invalid value <em>%s</em> of <em>--%s</em>, use one of %v"
	vars := []any{val, flag, allowed}
	return &gn.Error{
		Code: errcode.InvalidFlagError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid value %q of --%s", val, flag),
	}
}

func EmptyDatabaseError(prefix string) error {
	return &gn.Error{
		Code: errcode.DBEmptyDatabaseError,
		Msg: `<err>Feature tables are missing.</err>
   Run <em>'gnobs create'</em> first to create them.`,
		Err: fmt.Errorf("feature tables with prefix %q do not exist", prefix),
	}
}

func MappingNotSetError() error {
	return &gn.Error{
		Code: errcode.IngestMappingError,
		Msg: `<err>Column mapping is not set.</err>
   Use <em>--mapping</em> or set <em>ingest.mapping_file</em> in config.yaml.`,
		Err: errors.New("mapping file is not set"),
	}
}
