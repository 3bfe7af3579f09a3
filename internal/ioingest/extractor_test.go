package ioingest_test

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnobs/internal/ioingest"
	"github.com/gnames/gnobs/pkg/errcode"
	"github.com/gnames/gnobs/pkg/ingest"
	"github.com/gnames/gnobs/pkg/om"
	"github.com/gnames/gnuuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tsMapping() ingest.Mapping {
	return ingest.Mapping{
		MainColumn:      "time",
		LatitudeColumn:  "lat",
		LongitudeColumn: "lon",
		ProcedureColumn: "proc",
		MeasureColumns:  []string{"temp", "sal"},
	}
}

func newExtractor(t *testing.T, m ingest.Mapping) ingest.Extractor {
	t.Helper()
	ex, err := ioingest.New(m)
	require.NoError(t, err)
	return ex
}

func TestResultsScenario(t *testing.T) {
	data := `time,lat,lon,proc,temp,sal
2021-06-01T01:00:00Z,45.1,-1.2,P1,12.7,
2021-06-01T00:00:00Z,45.1,-1.2,P1,12.5,
2021-06-01T02:00:00Z,45.2,-1.3,P1,,35.1
`
	ex := newExtractor(t, tsMapping())
	res, err := ex.Results(context.Background(),
		ingest.StringSource("scenario", data), ingest.Filter{})
	require.NoError(t, err)

	require.Len(t, res.Observations, 1)
	obs := res.Observations[0]
	assert.Equal(t, "scenario-1", obs.ID)
	assert.Equal(t, gnuuid.New("scenario-1"), obs.UUID)
	assert.Equal(t, "P1", obs.Procedure.ID)
	assert.Equal(t, "P1", obs.Procedure.Name)
	assert.Equal(t, om.Timeseries, obs.Type)
	assert.Equal(t, []string{"temp", "sal"}, obs.Result.Fields)
	assert.Equal(t, []string{"temp", "sal"}, res.Fields)

	rows := obs.Result.Rows
	require.Len(t, rows, 3)
	t0 := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range rows {
		assert.Equal(t, t0.Add(time.Duration(i)*time.Hour), v.Time)
		assert.Len(t, v.Values, 2)
	}
	require.NotNil(t, rows[0].Values[0])
	assert.Equal(t, 12.5, *rows[0].Values[0])
	assert.Nil(t, rows[0].Values[1])
	assert.Nil(t, rows[1].Values[1])
	assert.Nil(t, rows[2].Values[0])
	require.NotNil(t, rows[2].Values[1])
	assert.Equal(t, 35.1, *rows[2].Values[1])

	require.NotNil(t, obs.Time)
	assert.Equal(t, t0, obs.Time.Begin)
	assert.Equal(t, t0.Add(2*time.Hour), obs.Time.End)
	assert.Len(t, obs.Positions, 3)

	require.NotNil(t, res.Bound.Envelope)
	assert.Equal(t, -1.3, res.Bound.Envelope.Min[0])
	assert.Equal(t, 45.2, res.Bound.Envelope.Max[1])
	require.Len(t, res.Procedures, 1)
	assert.Equal(t, "component", res.Procedures[0].Type)
	assert.Equal(t, 0, res.Skipped.DroppedRows())

	t.Run("holes survive encoding", func(t *testing.T) {
		txt := obs.Result.Encode(om.DefaultTextEncoding, obs.Type)
		recs, err := csv.NewReader(strings.NewReader(txt)).ReadAll()
		require.NoError(t, err)
		require.Len(t, recs, 3)
		for _, v := range recs {
			assert.Len(t, v, 1+len(obs.Result.Fields))
		}
		assert.Equal(t, "", recs[0][2])
		assert.Equal(t, "", recs[2][1])
	})
}

func TestResultsRowSkipTolerance(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("time,lat,lon,proc,temp,sal\n")
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 10 {
		date := t0.Add(time.Duration(i) * time.Minute).Format(time.RFC3339)
		if i == 4 {
			date = "not-a-date"
		}
		sb.WriteString(date + ",10,20,P1,1.5,2\n")
	}

	ex := newExtractor(t, tsMapping())
	res, err := ex.Results(context.Background(),
		ingest.StringSource("skip", sb.String()), ingest.Filter{})
	require.NoError(t, err)
	require.Len(t, res.Observations, 1)
	assert.Len(t, res.Observations[0].Result.Rows, 9)
	assert.Equal(t, 1, res.Skipped.BadDates)
	assert.Equal(t, 1, res.Skipped.DroppedRows())
}

func TestResultsPartial(t *testing.T) {
	data := `time,lat,lon,proc,temp,sal
2020-01-01T00:00:00Z,north,20,P1,1,2
2020-01-01T01:00:00Z,10,20,P1,oops,2
2020-01-01T02:00:00Z,10,20,P1,,
2020-01-01T03:00:00Z,10,20,P1,x,y
`
	ex := newExtractor(t, tsMapping())
	res, err := ex.Results(context.Background(),
		ingest.StringSource("partial", data), ingest.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped.BadCoordinates)
	assert.Equal(t, 3, res.Skipped.BadCells)
	assert.Equal(t, 1, res.Skipped.EmptyRows)
	assert.Equal(t, 1, res.Skipped.NoValues)

	require.Len(t, res.Observations, 1)
	obs := res.Observations[0]
	assert.Len(t, obs.Result.Rows, 2)
	assert.Len(t, obs.Positions, 1, "row with bad latitude has no position")
}

func TestResultsPartitioning(t *testing.T) {
	data := `time,lat,lon,proc,temp,sal
2020-01-01T00:00:00Z,10,20,P1,1,
2020-01-01T00:00:00Z,10,20,P2,1,
2020-01-01T01:00:00Z,10,20,P1,2,
`
	ex := newExtractor(t, tsMapping())
	res, err := ex.Results(context.Background(),
		ingest.StringSource("part", data), ingest.Filter{})
	require.NoError(t, err)
	require.Len(t, res.Observations, 2)
	assert.Equal(t, "P1", res.Observations[0].Procedure.ID)
	assert.Len(t, res.Observations[0].Result.Rows, 2)
	assert.Equal(t, "P2", res.Observations[1].Procedure.ID)
	assert.Equal(t, "part-2", res.Observations[1].ID)
	assert.Equal(t, []string{"temp"}, res.Fields)
}

func TestResultsNoEmptyObservations(t *testing.T) {
	data := `time,lat,lon,proc,temp,sal
2020-01-01T00:00:00Z,10,20,P1,1,5
2020-01-01T00:00:00Z,10,20,P2,2,
2020-01-01T00:00:00Z,10,20,P3,n/a,n/a
`
	ex := newExtractor(t, tsMapping())

	tests := []struct {
		msg      string
		filter   ingest.Filter
		procs    []string
		empty    int
		noValues int
	}{
		{"no filter", ingest.Filter{}, []string{"P1", "P2"}, 0, 1},
		{"phenomenon", ingest.Filter{Phenomena: []string{"sal"}}, []string{"P1"}, 1, 1},
	}
	for _, v := range tests {
		res, err := ex.Results(context.Background(),
			ingest.StringSource("e", data), v.filter)
		require.NoError(t, err, v.msg)

		var procs []string
		for _, obs := range res.Observations {
			assert.NotEmpty(t, obs.Result.Rows, v.msg)
			assert.NotEmpty(t, obs.Result.Fields, v.msg)
			procs = append(procs, obs.Procedure.ID)
		}
		assert.Equal(t, v.procs, procs, v.msg)
		assert.Equal(t, v.empty, res.Skipped.EmptyRows, v.msg)
		assert.Equal(t, v.noValues, res.Skipped.NoValues, v.msg)
		assert.Equal(t, v.empty+v.noValues, res.Skipped.DroppedRows(), v.msg)
	}
}

func TestResultsProfile(t *testing.T) {
	data := `station,date,depth,temp,qc
S1,2020-01-01,10,4.5,good
S1,2020-01-01,2,8.1,bad
S1,2020-01-02,5,6,
S1,2020-01-02,deep,6,
`
	m := ingest.Mapping{
		MainColumn:              "depth",
		DateColumn:              "date",
		DateFormat:              "2006-01-02",
		FeatureOfInterestColumn: "station",
		ProcedureID:             "ctd",
		ProcedurePrefix:         "urn:sensor:",
		MeasureColumns:          []string{"temp"},
		QualityColumns:          []string{"qc"},
		ObservationType:         "profile",
	}
	ex := newExtractor(t, m)
	res, err := ex.Results(context.Background(),
		ingest.StringSource("prof", data), ingest.Filter{})
	require.NoError(t, err)

	require.Len(t, res.Observations, 2)
	obs := res.Observations[0]
	assert.Equal(t, om.Profile, obs.Type)
	assert.Equal(t, "urn:sensor:ctd", obs.Procedure.ID)
	assert.Equal(t, "S1", obs.FeatureOfInterest)
	assert.Equal(t, []string{"qc"}, obs.Result.QualityFields)
	require.Len(t, obs.Result.Rows, 2)
	assert.Equal(t, 2.0, obs.Result.Rows[0].Main)
	assert.Equal(t, 10.0, obs.Result.Rows[1].Main)
	assert.Equal(t, "2,8.1,bad\n10,4.5,good",
		obs.Result.Encode(om.DefaultTextEncoding, obs.Type))
	assert.True(t, obs.Time.IsInstant())

	assert.Equal(t, []string{"S1"}, res.FeaturesOfInterest)
	assert.Equal(t, 1, res.Skipped.BadMainValues)
	assert.Nil(t, res.Bound.Envelope)
}

func TestResultsFilters(t *testing.T) {
	data := `time,lat,lon,proc,temp,sal,foi
2020-01-01T00:00:00Z,10,20,P1,1,5,A
2020-01-01T00:00:00Z,10,20,P2,1,6,A
2020-01-01T01:00:00Z,10,20,P2,2,7,B
`
	m := tsMapping()
	m.FeatureOfInterestColumn = "foi"
	ex := newExtractor(t, m)

	tests := []struct {
		msg      string
		filter   ingest.Filter
		obsNum   int
		fields   []string
		filtered int
	}{
		{"no filter", ingest.Filter{}, 3, []string{"temp", "sal"}, 0},
		{"sensor", ingest.Filter{Sensors: []string{"P2"}}, 2, []string{"temp", "sal"}, 1},
		{"phenomenon", ingest.Filter{Phenomena: []string{"sal"}}, 3, []string{"sal"}, 0},
		{"foi", ingest.Filter{FeaturesOfInterest: []string{"B"}}, 1, []string{"temp", "sal"}, 2},
	}
	for _, v := range tests {
		res, err := ex.Results(context.Background(),
			ingest.StringSource("flt", data), v.filter)
		require.NoError(t, err, v.msg)
		assert.Len(t, res.Observations, v.obsNum, v.msg)
		assert.Equal(t, v.fields, res.Fields, v.msg)
		assert.Equal(t, v.filtered, res.Skipped.FilteredRows, v.msg)
	}
}

func TestCustomSeparator(t *testing.T) {
	data := "time;proc;temp\n" +
		"2020-01-01T00:00:00Z;'P;1';3.5\n"
	m := ingest.Mapping{
		MainColumn:      "time",
		ProcedureColumn: "proc",
		MeasureColumns:  []string{"temp"},
		Separator:       ";",
		Quote:           "'",
	}
	ex := newExtractor(t, m)
	ids, err := ex.ExtractProcedures(context.Background(),
		ingest.StringSource("sep", data))
	require.NoError(t, err)
	assert.Equal(t, []string{"P;1"}, ids)
}

func TestExtractProcedures(t *testing.T) {
	data := `time,lat,lon,proc,temp,sal
2020-01-01T00:00:00Z,10,20,B,1,
2020-01-01T00:00:00Z,10,20,A,1,
2020-01-01T00:00:00Z,10,20,,1,
2020-01-01T01:00:00Z,10,20,B,2,
`
	m := tsMapping()
	m.ProcedurePrefix = "urn:"
	ex := newExtractor(t, m)
	ids, err := ex.ExtractProcedures(context.Background(),
		ingest.StringSource("station7", data))
	require.NoError(t, err)
	assert.Equal(t, []string{"urn:B", "urn:A", "urn:station7"}, ids)
}

func TestProcedures(t *testing.T) {
	data := `time,lat,lon,proc,temp,sal
2020-01-01T00:00:00Z,10,20,P1,1,
2020-01-02T00:00:00Z,11,21,P2,1,
2020-01-03T00:00:00Z,12,22,P1,1,
2020-01-04T00:00:00Z,north,20,P3,1,
`
	ex := newExtractor(t, tsMapping())
	trees, err := ex.Procedures(context.Background(),
		ingest.StringSource("tree", data))
	require.NoError(t, err)
	require.Len(t, trees, 3)

	p1 := trees[0]
	assert.Equal(t, "P1", p1.ID)
	assert.Equal(t, []string{"temp", "sal"}, p1.Fields)
	require.NotNil(t, p1.Bound.Envelope)
	assert.Equal(t, 20.0, p1.Bound.Envelope.Min[0])
	assert.Equal(t, 22.0, p1.Bound.Envelope.Max[0])
	tp := p1.Bound.TimePrimitive()
	require.NotNil(t, tp)
	assert.Equal(t, 2*24*time.Hour, tp.End.Sub(tp.Begin))

	assert.Equal(t, "P2", trees[1].ID)
	assert.True(t, trees[1].Bound.TimePrimitive().IsInstant())

	t.Run("node without coordinates", func(t *testing.T) {
		p3 := trees[2]
		assert.Equal(t, "P3", p3.ID)
		assert.Nil(t, p3.Bound.Envelope)
		assert.True(t, p3.Bound.TimePrimitive().IsInstant())
	})

	t.Run("result procedures", func(t *testing.T) {
		res, err := ex.Results(context.Background(),
			ingest.StringSource("tree", data), ingest.Filter{})
		require.NoError(t, err)
		require.Len(t, res.Procedures, 3)
		assert.Equal(t, "P3", res.Procedures[2].ID)
		assert.Nil(t, res.Procedures[2].Bound.Envelope)
		assert.NotNil(t, res.Procedures[0].Bound.Envelope)
	})
}

func TestPhenomenonNames(t *testing.T) {
	data := `time,temp,sal,oxy
2020-01-01T00:00:00Z,x,1,
2020-01-01T01:00:00Z,,2,
`
	m := ingest.Mapping{
		MainColumn:     "time",
		MeasureColumns: []string{"oxy", "temp", "sal", "chl"},
	}
	ex := newExtractor(t, m)
	res, err := ex.PhenomenonNames(context.Background(),
		ingest.StringSource("ph", data))
	require.NoError(t, err)
	assert.Equal(t, []string{"sal"}, res)
}

func TestTemporalBounds(t *testing.T) {
	data := `time,temp
2020-01-02T00:00:00Z,1
bad,1
2020-01-01T00:00:00Z,1
2020-01-05T00:00:00Z,
`
	m := ingest.Mapping{MainColumn: "time", MeasureColumns: []string{"temp"}}
	ex := newExtractor(t, m)
	tp, err := ex.TemporalBounds(context.Background(),
		ingest.StringSource("tb", data))
	require.NoError(t, err)
	require.NotNil(t, tp)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), tp.Begin)
	assert.Equal(t, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), tp.End)

	tp, err = ex.TemporalBounds(context.Background(),
		ingest.StringSource("tb", "time,temp\n"))
	require.NoError(t, err)
	assert.Nil(t, tp)
}

func TestErrors(t *testing.T) {
	ctx := context.Background()
	ex := newExtractor(t, tsMapping())

	tests := []struct {
		msg  string
		src  ingest.Source
		code gn.ErrorCode
	}{
		{"no header", ingest.StringSource("e", ""), errcode.IngestMissingHeaderError},
		{"no main column", ingest.StringSource("e", "date,temp\n"),
			errcode.IngestMissingColumnError},
		{"no file", ingest.FileSource("/no/such/file.csv"),
			errcode.IngestOpenSourceError},
	}
	for _, v := range tests {
		_, err := ex.Results(ctx, v.src, ingest.Filter{})
		require.Error(t, err, v.msg)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
	}

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := ex.Results(ctx,
			ingest.StringSource("c", "time,temp\n2020-01-01T00:00:00Z,1\n"),
			ingest.Filter{})
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.IngestCanceledError, gnErr.Code)
		assert.ErrorIs(t, gnErr.Err, context.Canceled)
	})
}

func TestNewMappingErrors(t *testing.T) {
	tests := []struct {
		msg string
		m   ingest.Mapping
	}{
		{"no main", ingest.Mapping{}},
		{"long separator", ingest.Mapping{MainColumn: "t", Separator: ";;"}},
		{"same quote", ingest.Mapping{MainColumn: "t", Separator: "'", Quote: "'"}},
		{"bad type", ingest.Mapping{MainColumn: "t", ObservationType: "grid"}},
	}
	for _, v := range tests {
		_, err := ioingest.New(v.m)
		require.Error(t, err, v.msg)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, errcode.IngestMappingError, gnErr.Code, v.msg)
	}
}
