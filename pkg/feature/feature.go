// Package feature describes the spatial features gnobs persists and the
// contracts of the store that reads and writes them.
//
// Two kinds of features exist. Sampling features are the points where
// observations are taken; sensor locations are the places a procedure
// was deployed at.
package feature

import (
	"context"
	"strings"

	"github.com/gnames/gnobs/pkg/geodesy"
	"github.com/paulmach/orb"
)

// Kind selects the feature table.
type Kind int

const (
	UnknownKind Kind = iota
	Sampling
	Sensor
)

// NewKind parses a kind name. Unknown names give UnknownKind.
func NewKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sampling", "sampling_feature", "sampling_features":
		return Sampling
	case "sensor", "sensor_location", "sensor_locations":
		return Sensor
	}
	return UnknownKind
}

func (k Kind) String() string {
	switch k {
	case Sampling:
		return "sampling"
	case Sensor:
		return "sensor"
	}
	return "unknown"
}

// Table is the base name of the table of the kind, before any prefix.
func (k Kind) Table() string {
	switch k {
	case Sampling:
		return "sampling_features"
	case Sensor:
		return "sensor_locations"
	}
	return ""
}

// Feature is one stored geometry with its identity.
type Feature struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id"`

	// Name, Description and SampledFeature are only kept for sampling
	// features.
	Name           string `json:"name,omitempty"`
	Description    string `json:"description,omitempty"`
	SampledFeature string `json:"sampledFeature,omitempty"`

	// Geometry can be nil, it is stored as NULL.
	Geometry orb.Geometry `json:"-"`

	// CRS of Geometry. A zero CRS on write means WGS84.
	CRS geodesy.CRS `json:"crs"`
}

// FeatureType describes the features a Reader returns. CRS is fixed by
// the first row read and stays the same for the life of the cursor.
type FeatureType struct {
	Name string      `json:"name"`
	Kind Kind        `json:"kind"`
	CRS  geodesy.CRS `json:"crs"`
}

// Query selects features to read.
type Query struct {
	Kind Kind
	// IDs restricts the result to the given identifiers, all features are
	// returned when it is empty.
	IDs []string
}

// Reader is a forward-only cursor over stored features. Its states are
// not started, iterating, exhausted and closed.
type Reader interface {
	// FeatureType returns the declared type of the features.
	FeatureType() FeatureType

	// HasNext reports whether Next has a feature to return. It can be
	// called any number of times between two Next calls.
	HasNext() (bool, error)

	// Next returns the following feature, reprojected into the CRS of
	// the feature type when needed.
	Next() (Feature, error)

	// Remove deletes the feature last returned by Next. It does nothing
	// before the first Next.
	Remove() error

	// Close releases the connection. Pending removals are applied first.
	Close() error
}

// Writer inserts features.
type Writer interface {
	// Add inserts features and returns their identifiers in input order.
	// Blank identifiers are allocated. A row that fails to insert is
	// logged and left out of the result.
	Add(ctx context.Context, fs []Feature) ([]string, error)

	// Skipped is the number of rows Add failed to insert so far.
	Skipped() int

	// Close releases the connection.
	Close() error
}

// Store opens readers and writers on one database.
type Store interface {
	// Reader opens a cursor for the query. The caller must close it.
	Reader(ctx context.Context, q Query) (Reader, error)

	// Writer opens a writer for one kind of feature. The caller must
	// close it.
	Writer(ctx context.Context, k Kind) (Writer, error)

	// Close releases the database.
	Close() error
}
