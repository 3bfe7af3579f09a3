package iofeature

import (
	"fmt"
	"strings"

	"github.com/gnames/gnobs/pkg/dialect"
	"github.com/gnames/gnobs/pkg/feature"
)

// columns lists the columns of a feature table in scan order. The
// geometry column is always followed by the SRID.
func columns(k feature.Kind) []string {
	if k == feature.Sampling {
		return []string{
			"id", "name", "description", "sampled_feature", "shape", "srid",
		}
	}
	return []string{"id", "shape", "srid"}
}

// shapeSelect is the projection that returns the geometry in the form
// geocodec decodes for the dialect.
func shapeSelect(d dialect.Dialect) string {
	switch d {
	case dialect.Postgres:
		return "ST_AsBinary(shape)"
	case dialect.DuckDB:
		return "CAST(shape AS VARCHAR)"
	default:
		return "shape"
	}
}

// selectSQL reads features ordered by id, optionally restricted to
// idNum identifiers.
func selectSQL(d dialect.Dialect, table string, k feature.Kind, idNum int) string {
	cols := columns(k)
	for i, v := range cols {
		if v == "shape" {
			cols[i] = shapeSelect(d)
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", strings.Join(cols, ", "), table)
	if idNum > 0 {
		phs := make([]string, idNum)
		for i := range phs {
			phs[i] = d.Placeholder(i + 1)
		}
		fmt.Fprintf(&sb, " WHERE id IN (%s)", strings.Join(phs, ", "))
	}
	sb.WriteString(" ORDER BY id")
	return sb.String()
}

// insertSQL inserts one feature. PostgreSQL builds the geometry from WKB
// and the SRID parameter; other dialects store the encoded value as is.
func insertSQL(d dialect.Dialect, table string, k feature.Kind) string {
	cols := columns(k)
	vals := make([]string, len(cols))
	for i := range cols {
		vals[i] = d.Placeholder(i + 1)
	}
	if d == dialect.Postgres {
		shape := len(cols) - 2
		vals[shape] = fmt.Sprintf(
			"ST_GeomFromWKB(%s, %s)", vals[shape], vals[shape+1],
		)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(vals, ", "))
}

func deleteSQL(d dialect.Dialect, table string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE id = %s", table, d.Placeholder(1))
}

func countSQL(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
}

func existsSQL(d dialect.Dialect, table string) string {
	return fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE id = %s", table, d.Placeholder(1),
	)
}

func idsSQL(table string) string {
	return fmt.Sprintf("SELECT id FROM %s", table)
}
