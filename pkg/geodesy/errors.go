package geodesy

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnobs/pkg/errcode"
)

// UnknownCRSError is returned for SRIDs the geodesy cannot resolve.
func UnknownCRSError(srid int) error {
	msg := "Unknown coordinate reference system <em>EPSG:%d</em>"
	vars := []any{srid}
	return &gn.Error{
		Code: errcode.GeodesyUnknownCRSError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown SRID %d", srid),
	}
}

// TransformError is returned when a geometry cannot be reprojected.
func TransformError(from, to CRS, err error) error {
	msg := "Cannot transform geometry from <em>%s</em> to <em>%s</em>"
	vars := []any{from.String(), to.String()}
	return &gn.Error{
		Code: errcode.GeodesyTransformError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot transform %s -> %s: %w", from, to, err),
	}
}
