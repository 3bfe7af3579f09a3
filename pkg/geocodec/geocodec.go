// Package geocodec converts geometries to and from the representation each
// SQL dialect stores: WKB for PostgreSQL, WKT for DuckDB and an opaque WKB
// blob for SQLite. The SRID always travels in its own integer column, and
// both columns go through Encode and come back through Decode together.
package geocodec

import (
	"database/sql"
	"fmt"

	"github.com/gnames/gnobs/pkg/dialect"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/encoding/wkt"
)

// Encode returns the shape and SRID column values for a geometry.
// A nil geometry encodes to SQL NULL for both columns.
func Encode(
	g orb.Geometry,
	srid int,
	d dialect.Dialect,
) (shape any, sridCol any, err error) {
	if g == nil {
		return nil, nil, nil
	}

	switch d {
	case dialect.Postgres, dialect.SQLite:
		bs, err := wkb.Marshal(g)
		if err != nil {
			return nil, nil, EncodeError(d, err)
		}
		return bs, srid, nil
	case dialect.DuckDB:
		return wkt.MarshalString(g), srid, nil
	default:
		return nil, nil, EncodeError(d,
			fmt.Errorf("unsupported dialect %s", d))
	}
}

// Decode converts scanned shape and SRID columns back to a geometry and
// its SRID. A NULL shape decodes to a nil geometry without error; a NULL
// SRID gives 0. The SRID is not interpreted here, reprojection belongs to
// the caller.
func Decode(
	raw any,
	sridCol any,
	d dialect.Dialect,
) (orb.Geometry, int, error) {
	if raw == nil {
		return nil, 0, nil
	}
	srid, err := asSRID(sridCol)
	if err != nil {
		return nil, 0, DecodeError(d, err)
	}
	g, err := decodeShape(raw, d)
	if err != nil || g == nil {
		return nil, 0, err
	}
	return g, srid, nil
}

func decodeShape(raw any, d dialect.Dialect) (orb.Geometry, error) {

	switch d {
	case dialect.Postgres, dialect.SQLite:
		bs, err := asBytes(raw)
		if err != nil {
			return nil, DecodeError(d, err)
		}
		if len(bs) == 0 {
			return nil, nil
		}
		g, err := wkb.Unmarshal(bs)
		if err != nil {
			return nil, DecodeError(d, err)
		}
		return g, nil
	case dialect.DuckDB:
		s, err := asString(raw)
		if err != nil {
			return nil, DecodeError(d, err)
		}
		if s == "" {
			return nil, nil
		}
		g, err := wkt.Unmarshal(s)
		if err != nil {
			return nil, DecodeError(d, err)
		}
		return g, nil
	default:
		return nil, DecodeError(d, fmt.Errorf("unsupported dialect %s", d))
	}
}

func asSRID(v any) (int, error) {
	switch v := v.(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case sql.NullInt64:
		if !v.Valid {
			return 0, nil
		}
		return int(v.Int64), nil
	default:
		return 0, fmt.Errorf("cannot use %T as SRID", v)
	}
}

func asBytes(raw any) ([]byte, error) {
	switch v := raw.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("cannot use %T as binary geometry", raw)
	}
}

func asString(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("cannot use %T as text geometry", raw)
	}
}
