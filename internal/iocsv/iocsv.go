// Package iocsv tokenizes delimited text into rows of string cells.
// The first row is the header.
package iocsv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

const bom = "\ufeff"

// ErrNoHeader is returned when the input has no header row.
var ErrNoHeader = errors.New("no header row")

// Reader returns rows of cells. With the standard double quote it relies
// on encoding/csv; any other quote character uses a line based splitter
// that does not support line breaks inside quoted tokens.
type Reader struct {
	csv  *csv.Reader
	line *lineReader

	header []string
	lineNo int
}

// NewReader creates a Reader with the given separator and quote runes.
func NewReader(r io.Reader, sep, quote rune) *Reader {
	res := &Reader{}
	if quote == '"' {
		cr := csv.NewReader(r)
		cr.Comma = sep
		cr.LazyQuotes = true
		cr.FieldsPerRecord = -1
		res.csv = cr
		return res
	}
	res.line = &lineReader{
		br:    bufio.NewReader(r),
		sep:   sep,
		quote: quote,
	}
	return res
}

// Header reads the header row. It must be called before Read.
func (r *Reader) Header() ([]string, error) {
	if r.header != nil {
		return r.header, nil
	}
	row, err := r.next()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, err
	}
	if len(row) > 0 {
		row[0] = strings.TrimPrefix(row[0], bom)
	}
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}
	r.header = row
	return row, nil
}

// Read returns the next data row, or io.EOF.
func (r *Reader) Read() ([]string, error) {
	if r.header == nil {
		if _, err := r.Header(); err != nil {
			return nil, err
		}
	}
	return r.next()
}

// Line is the 1-based line number of the last row returned.
func (r *Reader) Line() int {
	return r.lineNo
}

func (r *Reader) next() ([]string, error) {
	if r.csv != nil {
		row, err := r.csv.Read()
		if err != nil {
			return nil, err
		}
		r.lineNo, _ = r.csv.FieldPos(0)
		return row, nil
	}
	row, n, err := r.line.read()
	if err != nil {
		return nil, err
	}
	r.lineNo = n
	return row, nil
}

type lineReader struct {
	br    *bufio.Reader
	sep   rune
	quote rune
	n     int
}

func (l *lineReader) read() ([]string, int, error) {
	for {
		s, err := l.br.ReadString('\n')
		if s == "" && err != nil {
			return nil, 0, err
		}
		l.n++
		s = strings.TrimRight(s, "\r\n")
		if s == "" {
			if err != nil {
				return nil, 0, err
			}
			continue
		}
		return l.split(s), l.n, nil
	}
}

// split cuts a line on the separator, honoring quoted tokens. A doubled
// quote inside a quoted token stands for one quote character.
func (l *lineReader) split(s string) []string {
	var res []string
	var sb strings.Builder
	inQuote := false
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == l.quote && inQuote:
			if i+1 < len(runes) && runes[i+1] == l.quote {
				sb.WriteRune(c)
				i++
				continue
			}
			inQuote = false
		case c == l.quote && sb.Len() == 0:
			inQuote = true
		case c == l.sep && !inQuote:
			res = append(res, sb.String())
			sb.Reset()
		default:
			sb.WriteRune(c)
		}
	}
	return append(res, sb.String())
}
