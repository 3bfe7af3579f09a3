package iomapping

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnobs/pkg/errcode"
)

func ParseError(path string, err error) error {
	msg := `Cannot parse column mapping <em>%s</em>

Possible causes:
  - the file is not valid YAML
  - a key is misspelled (see mapping keys in the documentation)`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.IngestMappingParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot parse mapping %s: %w", path, err),
	}
}
