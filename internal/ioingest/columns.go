package ioingest

import (
	"github.com/gnames/gnobs/pkg/ingest"
	"github.com/gnames/gnobs/pkg/om"
)

// absent marks a logical field without a column in the header.
const absent = -1

// column is a named position in the header.
type column struct {
	name string
	idx  int
}

// columnIndex maps logical fields to header positions. It is built once
// per pass from the header row and never modified afterwards.
type columnIndex struct {
	main      int
	date      int
	lat       int
	lon       int
	z         int
	foi       int
	procedure int
	procName  int
	procDesc  int

	// measures has one entry per configured measure column, absent ones
	// included.
	measures  []column
	qualities []column
}

// resolveColumns builds the column index from the header. Column names
// are compared by exact string equality; the first duplicate wins.
func resolveColumns(
	srcName string,
	header []string,
	m ingest.Mapping,
) (*columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		if _, ok := pos[h]; !ok {
			pos[h] = i
		}
	}
	find := func(name string) int {
		if name == "" {
			return absent
		}
		if i, ok := pos[name]; ok {
			return i
		}
		return absent
	}

	res := &columnIndex{
		main:      find(m.MainColumn),
		date:      find(m.DateColumn),
		lat:       find(m.LatitudeColumn),
		lon:       find(m.LongitudeColumn),
		z:         find(m.ZColumn),
		foi:       find(m.FeatureOfInterestColumn),
		procedure: find(m.ProcedureColumn),
		procName:  find(m.ProcedureNameColumn),
		procDesc:  find(m.ProcedureDescriptionColumn),
	}
	for _, v := range m.MeasureColumns {
		res.measures = append(res.measures, column{name: v, idx: find(v)})
	}
	for _, v := range m.QualityColumns {
		res.qualities = append(res.qualities, column{name: v, idx: find(v)})
	}

	if res.main == absent {
		return nil, MissingColumnError(srcName, m.MainColumn, "main")
	}
	// A time series is indexed by its dates, so the date column is as
	// required as the main one.
	if m.Type() == om.Timeseries && res.date == absent {
		return nil, MissingColumnError(srcName, m.DateColumn, "date")
	}
	return res, nil
}

// activeMeasures returns measure columns present in the header, in
// mapping order.
func (ci *columnIndex) activeMeasures() []column {
	var res []column
	for _, v := range ci.measures {
		if v.idx != absent {
			res = append(res, v)
		}
	}
	return res
}

// activeQualities returns quality columns present in the header.
func (ci *columnIndex) activeQualities() []column {
	var res []column
	for _, v := range ci.qualities {
		if v.idx != absent {
			res = append(res, v)
		}
	}
	return res
}

func (ci *columnIndex) hasCoordinates() bool {
	return ci.lat != absent && ci.lon != absent
}

func names(cols []column) []string {
	res := make([]string, len(cols))
	for i, v := range cols {
		res[i] = v.name
	}
	return res
}
