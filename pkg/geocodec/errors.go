package geocodec

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnobs/pkg/dialect"
	"github.com/gnames/gnobs/pkg/errcode"
)

func EncodeError(d dialect.Dialect, err error) error {
	msg := "Cannot encode geometry for <em>%s</em>"
	vars := []any{d.String()}
	return &gn.Error{
		Code: errcode.GeometryEncodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot encode geometry for %s: %w", d, err),
	}
}

func DecodeError(d dialect.Dialect, err error) error {
	msg := "Cannot decode geometry stored in <em>%s</em>"
	vars := []any{d.String()}
	return &gn.Error{
		Code: errcode.GeometryDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot decode geometry from %s: %w", d, err),
	}
}
