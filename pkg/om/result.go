package om

// ProcedureTree is a procedure with its own spatio-temporal bound.
// Children are reserved for composite systems; sensors read from
// delimited files are leaves.
type ProcedureTree struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Fields   []string         `json:"fields"`
	Bound    *GeoSpatialBound `json:"bound"`
	Children []*ProcedureTree `json:"children,omitempty"`
}

// NewProcedureTree creates a leaf node with an empty bound.
func NewProcedureTree(id, typ string, fields []string) *ProcedureTree {
	return &ProcedureTree{
		ID:     id,
		Type:   typ,
		Fields: fields,
		Bound:  NewGeoSpatialBound(),
	}
}

// SkipReport counts data dropped by the tolerant parsing policy.
// Rows counted in MalformedRows, EmptyRows, FilteredRows, BadDates,
// BadMainValues and NoValues were dropped entirely; BadCoordinates and
// BadCells only lost that piece. NoValues rows had measure tokens, none
// of them parseable.
type SkipReport struct {
	MalformedRows  int `json:"malformedRows"`
	EmptyRows      int `json:"emptyRows"`
	FilteredRows   int `json:"filteredRows"`
	BadDates       int `json:"badDates"`
	BadMainValues  int `json:"badMainValues"`
	BadCoordinates int `json:"badCoordinates"`
	BadCells       int `json:"badCells"`
	NoValues       int `json:"noValues"`
}

// DroppedRows is the number of data rows that contributed nothing.
func (s SkipReport) DroppedRows() int {
	return s.MalformedRows + s.EmptyRows + s.FilteredRows + s.BadDates +
		s.BadMainValues + s.NoValues
}

// ExtractionResult aggregates a full pass over one file.
type ExtractionResult struct {
	// Bound is the global envelope and time extent.
	Bound *GeoSpatialBound `json:"bound"`

	// Observations are in block creation order.
	Observations []Observation `json:"observations"`

	// Procedures carry per-procedure bounds, in first-occurrence order.
	Procedures []*ProcedureTree `json:"procedures"`

	// Fields are phenomena measured at least once in the file.
	Fields []string `json:"fields"`

	// FeaturesOfInterest are in first-occurrence order.
	FeaturesOfInterest []string `json:"featuresOfInterest,omitempty"`

	Skipped SkipReport `json:"skipped"`
}

// TimePrimitive is the global time extent, or nil for a file without
// usable dates.
func (r *ExtractionResult) TimePrimitive() *TimePrimitive {
	if r.Bound == nil {
		return nil
	}
	return r.Bound.TimePrimitive()
}
