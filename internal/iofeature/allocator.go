package iofeature

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"
	"strings"
)

// allocator hands out identifiers made of a base and a number.
type allocator interface {
	// next returns the first free number for the table.
	next(ctx context.Context, conn *sql.Conn) (int, error)

	// accepts reports whether a caller supplied id can be stored.
	accepts(id string) bool

	base() string
}

// countAllocator numbers ids after the count of rows in the table.
// Sampling feature tables use it.
type countAllocator struct {
	table  string
	idBase string
}

func (a countAllocator) base() string {
	return a.idBase
}

func (a countAllocator) accepts(string) bool {
	return true
}

// next returns count+1. Rows removed earlier can make that id taken, the
// writer moves forward past taken ids.
func (a countAllocator) next(ctx context.Context, conn *sql.Conn) (int, error) {
	var count int
	err := conn.QueryRowContext(ctx, countSQL(a.table)).Scan(&count)
	if err != nil {
		return 0, IDAllocationError(a.table, err)
	}
	return count + 1, nil
}

// maxAllocator numbers ids after the largest numeric suffix found among
// ids that start with the base. Sensor location tables use it.
type maxAllocator struct {
	table  string
	idBase string
}

func (a maxAllocator) base() string {
	return a.idBase
}

// accepts rejects ids that start with the base but do not end with a
// number, they would be invisible to next.
func (a maxAllocator) accepts(id string) bool {
	suffix, ok := strings.CutPrefix(id, a.idBase)
	if !ok {
		return true
	}
	_, err := strconv.Atoi(suffix)
	return err == nil
}

func (a maxAllocator) next(ctx context.Context, conn *sql.Conn) (int, error) {
	rows, err := conn.QueryContext(ctx, idsSQL(a.table))
	if err != nil {
		return 0, IDAllocationError(a.table, err)
	}
	defer rows.Close()

	var res int
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return 0, IDAllocationError(a.table, err)
		}
		suffix, ok := strings.CutPrefix(id, a.idBase)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			slog.Warn("Ignoring identifier without numeric suffix",
				"table", a.table, "id", id)
			continue
		}
		res = max(res, n)
	}
	if err = rows.Err(); err != nil {
		return 0, IDAllocationError(a.table, err)
	}
	return res + 1, nil
}
