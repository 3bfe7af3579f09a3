// Package ioingest implements ingest.Extractor for delimited text files.
// Every entry point is one streaming pass over its source that shares the
// same header resolution and row walking with the others.
package ioingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gnames/gnobs/pkg/ingest"
	"github.com/gnames/gnobs/pkg/om"
	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
)

type extractor struct {
	m     ingest.Mapping
	typ   om.ObservationType
	sep   rune
	quote rune

	// fixedProcedure is the procedure of rows without a procedure cell.
	// It is empty until a source is known, see forSource.
	fixedProcedure string
}

// New creates an Extractor for the given mapping. Empty settings of the
// mapping get their defaults.
func New(m ingest.Mapping) (ingest.Extractor, error) {
	m = m.WithDefaults()
	if m.MainColumn == "" {
		return nil, MappingError("main_column", "cannot be empty")
	}
	sep, err := singleRune("separator", m.Separator)
	if err != nil {
		return nil, err
	}
	quote, err := singleRune("quote", m.Quote)
	if err != nil {
		return nil, err
	}
	if sep == quote {
		return nil, MappingError("quote", "cannot be the same as separator")
	}
	switch strings.ToLower(strings.TrimSpace(m.ObservationType)) {
	case "", "timeseries", "profile":
	default:
		return nil, MappingError("observation_type",
			"must be 'timeseries' or 'profile'")
	}

	res := extractor{
		m:     m,
		typ:   m.Type(),
		sep:   sep,
		quote: quote,
	}
	return &res, nil
}

func singleRune(field, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, MappingError(field, "must be exactly one character")
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// forSource returns a copy of the extractor bound to the fixed procedure
// of the source.
func (e *extractor) forSource(src ingest.Source) *extractor {
	res := *e
	id := e.m.ProcedureID
	if id == "" {
		id = src.Name()
	}
	res.fixedProcedure = e.m.ProcedurePrefix + id
	return &res
}

// ExtractProcedures returns distinct procedure IDs of the source in
// first-occurrence order.
func (e *extractor) ExtractProcedures(
	ctx context.Context,
	src ingest.Source,
) ([]string, error) {
	e = e.forSource(src)
	var res []string
	seen := make(map[string]struct{})
	var skipped om.SkipReport
	_, err := e.walk(ctx, src, &skipped, func(r *row) error {
		id := e.procedureID(r)
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			res = append(res, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// PhenomenonNames returns measure columns with at least one parseable
// value, in mapping order.
func (e *extractor) PhenomenonNames(
	ctx context.Context,
	src ingest.Source,
) ([]string, error) {
	e = e.forSource(src)
	found := make(map[string]struct{})
	var skipped om.SkipReport
	cols, err := e.walk(ctx, src, &skipped, func(r *row) error {
		for _, v := range r.cols.activeMeasures() {
			if _, ok := found[v.name]; ok {
				continue
			}
			if _, err := parseNumber(r.cell(v.idx)); err == nil {
				found[v.name] = struct{}{}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var res []string
	for _, v := range cols.activeMeasures() {
		if _, ok := found[v.name]; ok {
			res = append(res, v.name)
		}
	}
	return res, nil
}

// TemporalBounds returns the extent of parseable dates, nil if there are
// none.
func (e *extractor) TemporalBounds(
	ctx context.Context,
	src ingest.Source,
) (*om.TimePrimitive, error) {
	e = e.forSource(src)
	bound := om.NewGeoSpatialBound()
	var skipped om.SkipReport
	_, err := e.walk(ctx, src, &skipped, func(r *row) error {
		t, ok, err := e.parseDate(r)
		if err != nil {
			slog.Debug("Skipping unparseable date",
				"source", src.Name(), "line", r.line, "error", err)
			return nil
		}
		if ok {
			bound.AddDate(t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bound.TimePrimitive(), nil
}

// Procedures builds one tree node per procedure. The current node
// changes whenever the procedure ID of a row differs from the previous
// one; a procedure seen before gets its old node back.
func (e *extractor) Procedures(
	ctx context.Context,
	src ingest.Source,
) ([]*om.ProcedureTree, error) {
	e = e.forSource(src)
	var res []*om.ProcedureTree
	nodes := make(map[string]*om.ProcedureTree)
	var current *om.ProcedureTree
	var skipped om.SkipReport

	_, err := e.walk(ctx, src, &skipped, func(r *row) error {
		id := e.procedureID(r)
		if current == nil || current.ID != id {
			current = nodes[id]
			if current == nil {
				fields := names(r.cols.activeMeasures())
				current = om.NewProcedureTree(id, e.m.ProcedureType, fields)
				nodes[id] = current
				res = append(res, current)
			}
		}

		if t, ok, err := e.parseDate(r); err == nil && ok {
			current.Bound.AddDate(t)
		}
		if lon, lat, ok, err := parseCoordinates(r); err == nil && ok {
			current.Bound.AddXYCoordinate(lon, lat)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Results runs the full extraction of the source.
func (e *extractor) Results(
	ctx context.Context,
	src ingest.Source,
	f ingest.Filter,
) (*om.ExtractionResult, error) {
	e = e.forSource(src)
	a := newAssembly(e, src.Name(), f)
	cols, err := e.walk(ctx, src, &a.res.Skipped, a.process)
	if err != nil {
		return nil, err
	}
	res := a.finish(cols)
	slog.Info("Extracted observations",
		"source", src.Name(),
		"observations", len(res.Observations),
		"procedures", len(res.Procedures),
		"dropped-rows", res.Skipped.DroppedRows(),
	)
	return res, nil
}

// observationID numbers observations of a source from 1 in block
// creation order.
func observationID(srcName string, ordinal int) string {
	return fmt.Sprintf("%s-%d", srcName, ordinal)
}

func observationUUID(id string) uuid.UUID {
	return gnuuid.New(id)
}

type stringSet map[string]struct{}

func newStringSet(ss []string) stringSet {
	if len(ss) == 0 {
		return nil
	}
	res := make(stringSet, len(ss))
	for _, v := range ss {
		res[v] = struct{}{}
	}
	return res
}

// allows is true for a nil set.
func (s stringSet) allows(v string) bool {
	if s == nil {
		return true
	}
	_, ok := s[v]
	return ok
}

// assembly is the state of one Results pass.
type assembly struct {
	e       *extractor
	srcName string

	sensors stringSet
	fois    stringSet
	phenoms stringSet

	// measures are active measure columns after the phenomenon filter,
	// set on the first row.
	measures  []column
	qualities []column

	blocks     map[blockKey]*block
	blockOrder []*block

	trees   map[string]*om.ProcedureTree
	current *om.ProcedureTree

	foiSeen map[string]struct{}
	res     *om.ExtractionResult
}

func newAssembly(e *extractor, srcName string, f ingest.Filter) *assembly {
	return &assembly{
		e:       e,
		srcName: srcName,
		sensors: newStringSet(f.Sensors),
		fois:    newStringSet(f.FeaturesOfInterest),
		phenoms: newStringSet(f.Phenomena),
		blocks:  make(map[blockKey]*block),
		trees:   make(map[string]*om.ProcedureTree),
		foiSeen: make(map[string]struct{}),
		res: &om.ExtractionResult{
			Bound: om.NewGeoSpatialBound(),
		},
	}
}

func (a *assembly) setColumns(cols *columnIndex) {
	if a.measures != nil || cols == nil {
		return
	}
	a.measures = make([]column, 0, len(cols.measures))
	for _, v := range cols.activeMeasures() {
		if a.phenoms.allows(v.name) {
			a.measures = append(a.measures, v)
		}
	}
	a.qualities = cols.activeQualities()
}

// process handles one non-empty row.
func (a *assembly) process(r *row) error {
	a.setColumns(r.cols)
	e := a.e
	skipped := &a.res.Skipped

	procID := e.procedureID(r)
	if !a.sensors.allows(procID) {
		skipped.FilteredRows++
		return nil
	}

	foi := r.cell(r.cols.foi)
	if !a.fois.allows(foi) {
		skipped.FilteredRows++
		return nil
	}

	date, hasDate, err := e.parseDate(r)
	if err != nil {
		slog.Warn("Skipping row with unparseable date",
			"source", a.srcName, "line", r.line, "error", err)
		skipped.BadDates++
		return nil
	}

	if a.blank(r) {
		skipped.EmptyRows++
		return nil
	}

	node := a.procedureNode(procID)
	if hasDate {
		a.res.Bound.AddDate(date)
		node.Bound.AddDate(date)
	}

	var pos *position
	lon, lat, hasPos, err := parseCoordinates(r)
	switch {
	case err != nil:
		slog.Debug("Ignoring unparseable coordinates",
			"source", a.srcName, "line", r.line, "error", err)
		skipped.BadCoordinates++
	case hasPos:
		a.res.Bound.AddXYCoordinate(lon, lat)
		node.Bound.AddXYCoordinate(lon, lat)
		pos = &position{lon: lon, lat: lat}
		if z, err := parseNumber(r.cell(r.cols.z)); err == nil {
			pos.z = &z
		}
	}

	var k mainKey
	var main float64
	if e.typ == om.Profile {
		main, err = parseNumber(r.cell(r.cols.main))
		if err != nil {
			slog.Warn("Skipping row with unparseable main value",
				"source", a.srcName, "line", r.line, "error", err)
			skipped.BadMainValues++
			return nil
		}
		k.main = main
	} else {
		if !hasDate {
			skipped.BadMainValues++
			return nil
		}
		k.time = date.UnixNano()
	}

	values := make(map[string]float64, len(a.measures))
	for _, v := range a.measures {
		s := r.cell(v.idx)
		if s == "" {
			continue
		}
		f, err := parseNumber(s)
		if err != nil {
			slog.Debug("Ignoring unparseable measurement",
				"source", a.srcName, "line", r.line, "field", v.name,
				"error", err)
			skipped.BadCells++
			continue
		}
		values[v.name] = f
	}
	if len(values) == 0 {
		skipped.NoValues++
		return nil
	}

	var qualities []string
	if len(a.qualities) > 0 {
		qualities = make([]string, len(a.qualities))
		for i, v := range a.qualities {
			qualities[i] = r.cell(v.idx)
		}
	}

	b := a.block(procID, foi, r, date, hasDate)
	b.add(k, date, main, values, qualities)
	if pos != nil {
		b.positions[k] = *pos
	}
	return nil
}

// blank is true when every measure cell left by the phenomenon filter is
// empty.
func (a *assembly) blank(r *row) bool {
	for _, v := range a.measures {
		if r.cell(v.idx) != "" {
			return false
		}
	}
	return true
}

// block returns the block of the row, creating it on first use. Only rows
// with at least one value get here, so no block stays empty.
func (a *assembly) block(
	procID, foi string,
	r *row,
	date time.Time,
	hasDate bool,
) *block {
	key := blockKey{procedure: procID, foi: foi}
	key.name = r.cell(r.cols.procName)
	if key.name == "" {
		key.name = procID
	}
	key.description = r.cell(r.cols.procDesc)
	if key.description == "" {
		key.description = key.name
	}
	if a.e.typ == om.Profile && hasDate {
		key.date = date.UnixNano()
	}
	b := a.blocks[key]
	if b == nil {
		proc := om.Procedure{
			ID:          procID,
			Name:        key.name,
			Description: key.description,
		}
		b = newBlock(key, proc, foi)
		a.blocks[key] = b
		a.blockOrder = append(a.blockOrder, b)
	}
	if foi != "" {
		if _, ok := a.foiSeen[foi]; !ok {
			a.foiSeen[foi] = struct{}{}
			a.res.FeaturesOfInterest = append(a.res.FeaturesOfInterest, foi)
		}
	}
	if hasDate {
		b.dates.AddDate(date)
	}
	return b
}

// procedureNode switches the current procedure node when the ID changes.
func (a *assembly) procedureNode(id string) *om.ProcedureTree {
	if a.current != nil && a.current.ID == id {
		return a.current
	}
	node := a.trees[id]
	if node == nil {
		node = om.NewProcedureTree(id, a.e.m.ProcedureType, names(a.measures))
		a.trees[id] = node
		a.res.Procedures = append(a.res.Procedures, node)
	}
	a.current = node
	return node
}

func (a *assembly) finish(cols *columnIndex) *om.ExtractionResult {
	a.setColumns(cols)
	res := a.res
	mainField := a.e.m.MainColumn
	qualityNames := names(a.qualities)
	if len(qualityNames) == 0 {
		qualityNames = nil
	}

	fieldSeen := make(map[string]struct{})
	res.Observations = make([]om.Observation, 0, len(a.blockOrder))
	for i, b := range a.blockOrder {
		id := observationID(a.srcName, i+1)
		obs := b.observation(id, a.e.typ, mainField, a.measures, qualityNames)
		for _, f := range obs.Result.Fields {
			fieldSeen[f] = struct{}{}
		}
		res.Observations = append(res.Observations, obs)
	}

	for _, v := range a.measures {
		if _, ok := fieldSeen[v.name]; ok {
			res.Fields = append(res.Fields, v.name)
		}
	}
	return res
}
