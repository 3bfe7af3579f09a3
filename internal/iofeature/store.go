// Package iofeature implements feature.Store on top of database/sql for
// every supported dialect. Geometries are converted with geocodec and
// reconciled to one CRS per cursor with geodesy.
package iofeature

import (
	"context"

	"github.com/gnames/gnobs/pkg/config"
	"github.com/gnames/gnobs/pkg/db"
	"github.com/gnames/gnobs/pkg/feature"
	"github.com/gnames/gnobs/pkg/geodesy"
	"github.com/gnames/gnobs/pkg/schema"
)

type store struct {
	op     db.Operator
	geo    geodesy.Geodesy
	prefix string

	samplingBase string
	sensorBase   string
}

// New creates a feature store on a connected operator. The store takes
// ownership of the operator and closes it in Close. A table prefix that
// is not a plain SQL identifier is refused.
func New(
	op db.Operator,
	cfg *config.Config,
	geo geodesy.Geodesy,
) (feature.Store, error) {
	prefix := cfg.Database.Schema
	if !schema.IsValidPrefix(prefix) {
		return nil, SchemaPrefixError(prefix)
	}
	if op.DB() == nil {
		return nil, NotConnectedError()
	}
	res := store{
		op:           op,
		geo:          geo,
		prefix:       prefix,
		samplingBase: cfg.Store.SamplingIDBase,
		sensorBase:   cfg.Store.SensorIDBase,
	}
	return &res, nil
}

func (s *store) table(k feature.Kind) (string, error) {
	base := k.Table()
	if base == "" {
		return "", UnknownKindError(k.String())
	}
	return schema.Table(s.prefix, base), nil
}

func (s *store) Reader(ctx context.Context, q feature.Query) (feature.Reader, error) {
	table, err := s.table(q.Kind)
	if err != nil {
		return nil, err
	}
	conn, err := s.op.DB().Conn(ctx)
	if err != nil {
		return nil, QueryError(table, err)
	}
	res, err := newReader(ctx, conn, s.op.Dialect(), s.geo, table, q)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return res, nil
}

func (s *store) Writer(ctx context.Context, k feature.Kind) (feature.Writer, error) {
	table, err := s.table(k)
	if err != nil {
		return nil, err
	}
	conn, err := s.op.DB().Conn(ctx)
	if err != nil {
		return nil, QueryError(table, err)
	}

	d := s.op.Dialect()
	var alloc allocator
	if k == feature.Sampling {
		alloc = countAllocator{table: table, idBase: s.samplingBase}
	} else {
		alloc = maxAllocator{table: table, idBase: s.sensorBase}
	}

	res := writer{
		conn:  conn,
		d:     d,
		kind:  k,
		table: table,
		alloc: alloc,
	}
	return &res, nil
}

func (s *store) Close() error {
	return s.op.Close()
}
