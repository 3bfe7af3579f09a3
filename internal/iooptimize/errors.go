package iooptimize

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnobs/pkg/errcode"
)

func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database not connected",
		Err:  fmt.Errorf("optimize: database is not connected"),
	}
}

func StatementError(stmt string, err error) error {
	msg := `<title>Cannot Optimize Feature Tables</title>
<warn>Statement <em>%s</em> failed.</warn>

<em>How to fix:</em>
  1. Make sure no other process writes to the database
  2. Check that feature tables exist: <em>gnobs create</em>
  3. Check database logs for details`
	vars := []any{stmt}
	return &gn.Error{
		Code: errcode.SchemaOptimizeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot run %q: %w", stmt, err),
	}
}
