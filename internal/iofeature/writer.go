package iofeature

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gnames/gnobs/pkg/dialect"
	"github.com/gnames/gnobs/pkg/feature"
	"github.com/gnames/gnobs/pkg/geocodec"
	"github.com/gnames/gnobs/pkg/geodesy"
)

// writer inserts features of one kind over its own connection. Every row
// is a separate statement, so a failed row does not affect the others.
type writer struct {
	conn    *sql.Conn
	d       dialect.Dialect
	kind    feature.Kind
	table   string
	alloc   allocator
	skipped int
}

func (w *writer) Add(ctx context.Context, fs []feature.Feature) ([]string, error) {
	q := insertSQL(w.d, w.table, w.kind)
	res := make([]string, 0, len(fs))

	// ids given in the batch are never handed out to blank ones
	given := make(map[string]struct{}, len(fs))
	for _, f := range fs {
		if !isBlank(f.ID) {
			given[f.ID] = struct{}{}
		}
	}

	// next candidate number, resolved on the first blank id of the batch
	num := 0
	for _, f := range fs {
		id := f.ID
		if isBlank(id) {
			var err error
			if id, err = w.newID(ctx, &num, given); err != nil {
				return res, err
			}
		} else if !w.alloc.accepts(id) {
			slog.Warn("Skipping feature with id that clashes with generated ids",
				"table", w.table, "id", id, "id-base", w.alloc.base())
			w.skipped++
			continue
		}

		srid := f.CRS.SRID
		if srid == 0 {
			srid = geodesy.WGS84
		}
		shape, sridCol, err := geocodec.Encode(f.Geometry, srid, w.d)
		if err != nil {
			slog.Warn("Skipping feature with unencodable geometry",
				"table", w.table, "id", id, "error", err)
			w.skipped++
			continue
		}

		args := []any{id}
		if w.kind == feature.Sampling {
			args = append(args,
				nullString(f.Name),
				nullString(f.Description),
				nullString(f.SampledFeature),
			)
		}
		args = append(args, shape, sridCol)

		if _, err = w.conn.ExecContext(ctx, q, args...); err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			slog.Warn("Skipping feature that failed to insert",
				"table", w.table, "id", id, "error", err)
			w.skipped++
			continue
		}
		res = append(res, id)
	}
	return res, nil
}

// newID returns the first id from num on that is neither given in the
// batch nor stored in the table. num is left past the returned id.
func (w *writer) newID(
	ctx context.Context,
	num *int,
	given map[string]struct{},
) (string, error) {
	if *num == 0 {
		n, err := w.alloc.next(ctx, w.conn)
		if err != nil {
			return "", err
		}
		*num = n
	}

	q := existsSQL(w.d, w.table)
	for {
		id := w.alloc.base() + strconv.Itoa(*num)
		*num++
		if _, ok := given[id]; ok {
			continue
		}
		var n int
		if err := w.conn.QueryRowContext(ctx, q, id).Scan(&n); err != nil {
			return "", IDAllocationError(w.table, err)
		}
		if n == 0 {
			return id, nil
		}
	}
}

func isBlank(id string) bool {
	return strings.TrimSpace(id) == ""
}

func (w *writer) Skipped() int {
	return w.skipped
}

func (w *writer) Close() error {
	return w.conn.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
