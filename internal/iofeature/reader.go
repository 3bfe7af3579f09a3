package iofeature

import (
	"context"
	"database/sql"
	"io"

	"github.com/gnames/gnobs/pkg/dialect"
	"github.com/gnames/gnobs/pkg/feature"
	"github.com/gnames/gnobs/pkg/geocodec"
	"github.com/gnames/gnobs/pkg/geodesy"
)

// reader is a forward-only cursor over one feature table. It owns its
// connection. Removals are queued while the result set is open and run
// once it is exhausted or closed, because the connection cannot execute
// a statement while rows are pending.
type reader struct {
	ctx   context.Context
	conn  *sql.Conn
	rows  *sql.Rows
	d     dialect.Dialect
	geo   geodesy.Geodesy
	table string
	ft    feature.FeatureType

	next      *feature.Feature
	lastID    string
	removable bool
	removals  []string

	exhausted bool
	closed    bool
}

func newReader(
	ctx context.Context,
	conn *sql.Conn,
	d dialect.Dialect,
	geo geodesy.Geodesy,
	table string,
	q feature.Query,
) (*reader, error) {
	args := make([]any, len(q.IDs))
	for i, v := range q.IDs {
		args[i] = v
	}
	rows, err := conn.QueryContext(ctx, selectSQL(d, table, q.Kind, len(args)), args...)
	if err != nil {
		return nil, QueryError(table, err)
	}
	res := reader{
		ctx:   ctx,
		conn:  conn,
		rows:  rows,
		d:     d,
		geo:   geo,
		table: table,
		ft:    feature.FeatureType{Name: table, Kind: q.Kind},
	}
	return &res, nil
}

// FeatureType has a zero CRS until the first row with a geometry is read.
func (r *reader) FeatureType() feature.FeatureType {
	return r.ft
}

func (r *reader) HasNext() (bool, error) {
	if r.closed {
		return false, CursorClosedError(r.table)
	}
	if r.next != nil {
		return true, nil
	}
	if r.exhausted {
		return false, nil
	}

	if !r.rows.Next() {
		err := r.rows.Err()
		r.rows.Close()
		r.exhausted = true
		if err != nil {
			return false, QueryError(r.table, err)
		}
		return false, r.flush()
	}

	f, err := r.scan()
	if err != nil {
		return false, err
	}
	r.next = &f
	return true, nil
}

func (r *reader) Next() (feature.Feature, error) {
	ok, err := r.HasNext()
	if err != nil {
		return feature.Feature{}, err
	}
	if !ok {
		return feature.Feature{}, io.EOF
	}
	res := *r.next
	r.next = nil
	r.lastID = res.ID
	r.removable = true
	return res, nil
}

func (r *reader) Remove() error {
	if r.closed {
		return CursorClosedError(r.table)
	}
	if !r.removable {
		return nil
	}
	r.removable = false
	r.removals = append(r.removals, r.lastID)
	if r.exhausted {
		return r.flush()
	}
	return nil
}

func (r *reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.rows.Close()
	err := r.flush()
	if cerr := r.conn.Close(); err == nil {
		err = cerr
	}
	return err
}

// flush deletes queued features.
func (r *reader) flush() error {
	q := deleteSQL(r.d, r.table)
	for len(r.removals) > 0 {
		id := r.removals[0]
		if _, err := r.conn.ExecContext(r.ctx, q, id); err != nil {
			return RemoveError(r.table, id, err)
		}
		r.removals = r.removals[1:]
	}
	return nil
}

// scan converts the current row. The first row with an SRID fixes the
// CRS of the cursor; geometries of later rows in other systems are
// reprojected into it.
func (r *reader) scan() (feature.Feature, error) {
	var id string
	var name, desc, sampled sql.NullString
	var shape any
	var srid sql.NullInt64

	dest := []any{&id, &shape, &srid}
	if r.ft.Kind == feature.Sampling {
		dest = []any{&id, &name, &desc, &sampled, &shape, &srid}
	}
	if err := r.rows.Scan(dest...); err != nil {
		return feature.Feature{}, ScanError(r.table, err)
	}

	g, sridNum, err := geocodec.Decode(shape, srid, r.d)
	if err != nil {
		return feature.Feature{}, ScanError(r.table, err)
	}

	res := feature.Feature{
		Kind:           r.ft.Kind,
		ID:             id,
		Name:           name.String,
		Description:    desc.String,
		SampledFeature: sampled.String,
		Geometry:       g,
	}
	if g == nil || sridNum == 0 {
		return res, nil
	}

	crs, err := r.geo.CRS(sridNum)
	if err != nil {
		// an unknown system is still usable while nothing needs
		// reprojection
		crs = geodesy.CRS{SRID: sridNum}
	}
	if r.ft.CRS.IsZero() {
		r.ft.CRS = crs
	}
	if !r.geo.Equal(crs, r.ft.CRS) {
		res.Geometry, err = r.geo.Transform(g, crs, r.ft.CRS)
		if err != nil {
			return feature.Feature{}, ReprojectError(id, crs, r.ft.CRS, err)
		}
	}
	res.CRS = r.ft.CRS
	return res, nil
}
