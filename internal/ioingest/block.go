package ioingest

import (
	"sort"
	"time"

	"github.com/gnames/gnobs/pkg/om"
)

// blockKey identifies one observation. The date only takes part in the
// key of profiles; time series of the same sensor share a single block.
type blockKey struct {
	procedure   string
	name        string
	description string
	foi         string
	date        int64
}

// mainKey is the main-field value of a result row.
type mainKey struct {
	time int64
	main float64
}

type blockRow struct {
	time      time.Time
	main      float64
	values    map[string]float64
	qualities []string
}

type position struct {
	lon, lat float64
	z        *float64
}

// block accumulates the rows of one observation until the file ends.
type block struct {
	key       blockKey
	procedure om.Procedure
	foi       string

	// fields holds phenomena with at least one parsed value.
	fields    map[string]struct{}
	rows      map[mainKey]*blockRow
	positions map[mainKey]position
	dates     *om.GeoSpatialBound
}

func newBlock(key blockKey, proc om.Procedure, foi string) *block {
	return &block{
		key:       key,
		procedure: proc,
		foi:       foi,
		fields:    make(map[string]struct{}),
		rows:      make(map[mainKey]*blockRow),
		positions: make(map[mainKey]position),
		dates:     om.NewGeoSpatialBound(),
	}
}

// add stores parsed values of one row. Values of a repeated main key
// replace earlier ones per phenomenon.
func (b *block) add(
	k mainKey,
	t time.Time,
	main float64,
	values map[string]float64,
	qualities []string,
) {
	br, ok := b.rows[k]
	if !ok {
		br = &blockRow{time: t, main: main, values: make(map[string]float64)}
		b.rows[k] = br
	}
	for f, v := range values {
		br.values[f] = v
		b.fields[f] = struct{}{}
	}
	if len(qualities) > 0 {
		br.qualities = qualities
	}
}

// observation finalizes the block. Fields follow the order of measures,
// rows are sorted by the main field and missing cells become holes.
func (b *block) observation(
	id string,
	typ om.ObservationType,
	mainField string,
	measures []column,
	qualities []string,
) om.Observation {
	var fields []string
	for _, v := range measures {
		if _, ok := b.fields[v.name]; ok {
			fields = append(fields, v.name)
		}
	}

	keys := make([]mainKey, 0, len(b.rows))
	for k := range b.rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].time != keys[j].time {
			return keys[i].time < keys[j].time
		}
		return keys[i].main < keys[j].main
	})

	res := om.Observation{
		ID:                id,
		UUID:              observationUUID(id),
		Type:              typ,
		Procedure:         b.procedure,
		FeatureOfInterest: b.foi,
		Time:              b.dates.TimePrimitive(),
		Result: om.Result{
			MainField:     mainField,
			Fields:        fields,
			QualityFields: qualities,
			Rows:          make([]om.ResultRow, 0, len(keys)),
		},
	}

	for _, k := range keys {
		br := b.rows[k]
		rr := om.ResultRow{
			Time:      br.time,
			Main:      br.main,
			Values:    make([]*float64, len(fields)),
			Qualities: padQualities(br.qualities, len(qualities)),
		}
		for i, f := range fields {
			if v, ok := br.values[f]; ok {
				rr.Values[i] = &v
			}
		}
		res.Result.Rows = append(res.Result.Rows, rr)

		if p, ok := b.positions[k]; ok {
			res.Positions = append(res.Positions, om.Position{
				Time: br.time,
				Main: br.main,
				Lat:  p.lat,
				Lon:  p.lon,
				Z:    p.z,
			})
		}
	}
	return res
}

func padQualities(qs []string, n int) []string {
	if n == 0 {
		return nil
	}
	res := make([]string, n)
	copy(res, qs)
	return res
}
