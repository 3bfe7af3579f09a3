package ioingest

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/gnobs/internal/iocsv"
	"github.com/gnames/gnobs/pkg/ingest"
	"github.com/gnames/gnobs/pkg/om"
)

// row is one non-empty data row with its resolved columns.
type row struct {
	cells []string
	line  int
	cols  *columnIndex
}

// cell returns the trimmed token at idx, or an empty string when the
// column is absent or the row is too short.
func (r *row) cell(idx int) string {
	if idx < 0 || idx >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[idx])
}

// walk opens the source, resolves the header and calls fn for every
// data row that has at least one measurement token. Malformed and empty
// rows are counted in skipped and never reach fn.
func (e *extractor) walk(
	ctx context.Context,
	src ingest.Source,
	skipped *om.SkipReport,
	fn func(*row) error,
) (*columnIndex, error) {
	name := src.Name()
	rc, err := src.Open()
	if err != nil {
		return nil, OpenSourceError(name, err)
	}
	defer rc.Close()

	r := iocsv.NewReader(rc, e.sep, e.quote)
	header, err := r.Header()
	if errors.Is(err, iocsv.ErrNoHeader) {
		return nil, MissingHeaderError(name)
	}
	if err != nil {
		return nil, ReadSourceError(name, r.Line(), err)
	}

	cols, err := resolveColumns(name, header, e.m)
	if err != nil {
		return nil, err
	}
	measures := cols.activeMeasures()

	for {
		if err = ctx.Err(); err != nil {
			return nil, CanceledError(name, r.Line(), err)
		}

		cells, err := r.Read()
		if err == io.EOF {
			return cols, nil
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			slog.Warn("Skipping malformed row",
				"source", name, "line", perr.StartLine, "error", perr.Err)
			skipped.MalformedRows++
			continue
		}
		if err != nil {
			return nil, ReadSourceError(name, r.Line(), err)
		}

		rw := &row{cells: cells, line: r.Line(), cols: cols}
		if isEmpty(rw, measures) {
			skipped.EmptyRows++
			continue
		}
		if err = fn(rw); err != nil {
			return nil, err
		}
	}
}

// isEmpty is true when every measure column of the row is blank. A file
// without measure columns has no empty rows.
func isEmpty(r *row, measures []column) bool {
	if len(measures) == 0 {
		return false
	}
	for _, v := range measures {
		if r.cell(v.idx) != "" {
			return false
		}
	}
	return true
}

// procedureID returns the procedure of the row. Rows of files without a
// procedure column, or with a blank cell, belong to the fixed procedure.
func (e *extractor) procedureID(r *row) string {
	if id := r.cell(r.cols.procedure); id != "" {
		return e.m.ProcedurePrefix + id
	}
	return e.fixedProcedure
}

// parseDate returns the row date. The flag is false when the file has no
// date column; err is set when the cell cannot be parsed.
func (e *extractor) parseDate(r *row) (time.Time, bool, error) {
	if r.cols.date == absent {
		return time.Time{}, false, nil
	}
	t, err := time.ParseInLocation(e.m.DateFormat, r.cell(r.cols.date), time.UTC)
	if err != nil {
		return time.Time{}, false, err
	}
	return t.UTC(), true, nil
}

// parseCoordinates returns longitude and latitude of the row. The flag is
// false when the file has no coordinate columns.
func parseCoordinates(r *row) (lon, lat float64, ok bool, err error) {
	if !r.cols.hasCoordinates() {
		return 0, 0, false, nil
	}
	if lat, err = parseNumber(r.cell(r.cols.lat)); err != nil {
		return 0, 0, false, err
	}
	if lon, err = parseNumber(r.cell(r.cols.lon)); err != nil {
		return 0, 0, false, err
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false, errOutOfRange
	}
	return lon, lat, true, nil
}

var (
	errNotFinite  = errors.New("value is not a finite number")
	errOutOfRange = errors.New("coordinates are out of range")
)

// parseNumber parses a decimal token. NaN and infinities count as
// unparseable.
func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	return f, nil
}
