// Package ingest defines the contract of the delimited-file extraction
// engine: which logical fields live in which columns, how rows are
// filtered and what each query entry point returns.
//
// Every entry point of Extractor is an independent single pass over its
// Source. Nothing is cached between calls.
package ingest

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnames/gnobs/pkg/om"
)

// Extractor reads observation data from delimited text files.
type Extractor interface {
	// ExtractProcedures returns distinct procedure IDs in first-occurrence
	// order.
	ExtractProcedures(ctx context.Context, src Source) ([]string, error)

	// Results runs the full extraction and builds one observation per
	// (procedure, feature of interest, profile date) combination.
	Results(ctx context.Context, src Source, f Filter) (*om.ExtractionResult, error)

	// PhenomenonNames returns configured measure columns that carry at
	// least one numeric value, in mapping order.
	PhenomenonNames(ctx context.Context, src Source) ([]string, error)

	// TemporalBounds returns the time extent of the file, nil when no row
	// has a usable date.
	TemporalBounds(ctx context.Context, src Source) (*om.TimePrimitive, error)

	// Procedures returns one tree node per procedure with its own bound.
	Procedures(ctx context.Context, src Source) ([]*om.ProcedureTree, error)
}

// Filter narrows Results. Empty slices mean no restriction.
type Filter struct {
	// Sensors is an allow-list of procedure IDs (prefix included).
	Sensors []string
	// Phenomena restricts which measure columns are read.
	Phenomena []string
	// FeaturesOfInterest restricts rows by their feature of interest.
	FeaturesOfInterest []string
}

// Source can be opened any number of times; each query entry point opens
// it once and closes it when the pass ends.
type Source interface {
	// Name identifies the source in observation IDs and logs.
	Name() string
	// Open returns a fresh reader positioned at the start of the data.
	Open() (io.ReadCloser, error)
}

type fileSource struct {
	path string
}

// FileSource creates a Source backed by a file on disk. The observation
// IDs use the file name without its extension.
func FileSource(path string) Source {
	return fileSource{path: path}
}

func (fs fileSource) Name() string {
	base := filepath.Base(fs.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (fs fileSource) Open() (io.ReadCloser, error) {
	return os.Open(fs.path)
}

type stringSource struct {
	name, data string
}

// StringSource creates an in-memory Source.
func StringSource(name, data string) Source {
	return stringSource{name: name, data: data}
}

func (ss stringSource) Name() string {
	return ss.name
}

func (ss stringSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(ss.data)), nil
}

// Mapping tells the engine which column holds which logical field and how
// to tokenize and parse the file.
type Mapping struct {
	// MainColumn indexes the result matrix: the timestamp column for time
	// series, the depth/pressure column for profiles. Required.
	MainColumn string `yaml:"main_column"`

	// DateColumn holds the observation date. For time series it defaults
	// to MainColumn.
	DateColumn string `yaml:"date_column"`

	// DateFormat is a Go time layout. Defaults to time.RFC3339.
	DateFormat string `yaml:"date_format"`

	LatitudeColumn  string `yaml:"latitude_column"`
	LongitudeColumn string `yaml:"longitude_column"`
	ZColumn         string `yaml:"z_column"`

	FeatureOfInterestColumn string `yaml:"foi_column"`

	// ProcedureColumn holds the procedure ID. When empty the whole file
	// belongs to ProcedureID.
	ProcedureColumn            string `yaml:"procedure_column"`
	ProcedureNameColumn        string `yaml:"procedure_name_column"`
	ProcedureDescriptionColumn string `yaml:"procedure_description_column"`

	// ProcedurePrefix is prepended to every procedure ID read from a cell.
	ProcedurePrefix string `yaml:"procedure_prefix"`

	// ProcedureID is the fixed procedure of files without ProcedureColumn.
	ProcedureID string `yaml:"procedure_id"`

	// ProcedureType tags procedure tree nodes. Defaults to "component".
	ProcedureType string `yaml:"procedure_type"`

	// MeasureColumns are the phenomena, in the order they are reported.
	MeasureColumns []string `yaml:"measure_columns"`

	// QualityColumns are kept as text next to the measurements.
	QualityColumns []string `yaml:"quality_columns"`

	// ObservationType is "timeseries" or "profile".
	ObservationType string `yaml:"observation_type"`

	// Separator splits tokens. Defaults to ','.
	Separator string `yaml:"separator"`

	// Quote encloses tokens containing the separator. Defaults to '"'.
	Quote string `yaml:"quote"`
}

// Type returns the parsed observation type.
func (m Mapping) Type() om.ObservationType {
	return om.NewObservationType(m.ObservationType)
}

// WithDefaults returns a copy of the mapping with empty settings filled in.
func (m Mapping) WithDefaults() Mapping {
	if m.DateFormat == "" {
		m.DateFormat = time.RFC3339
	}
	if m.DateColumn == "" && m.Type() == om.Timeseries {
		m.DateColumn = m.MainColumn
	}
	if m.ProcedureType == "" {
		m.ProcedureType = "component"
	}
	if m.Separator == "" {
		m.Separator = ","
	}
	if m.Quote == "" {
		m.Quote = `"`
	}
	return m
}
