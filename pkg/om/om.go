// Package om holds the Observations-and-Measurements model produced by the
// ingestion engine: observations with their sparse result matrix,
// procedures and spatio-temporal bounds.
package om

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObservationType decides what indexes the result matrix.
type ObservationType int

const (
	// Timeseries observations are indexed by timestamp.
	Timeseries ObservationType = iota
	// Profile observations are indexed by a vertical value (depth,
	// pressure) and have one fixed date per observation.
	Profile
)

// NewObservationType converts a configuration string.
// Anything but "profile" is a time series.
func NewObservationType(s string) ObservationType {
	if strings.ToLower(strings.TrimSpace(s)) == "profile" {
		return Profile
	}
	return Timeseries
}

func (ot ObservationType) String() string {
	if ot == Profile {
		return "profile"
	}
	return "timeseries"
}

// Procedure identifies the sensor that produced an observation.
type Procedure struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Observation is the immutable outcome of one observation block.
type Observation struct {
	// ID is <fileName>-<ordinal>.
	ID string `json:"id"`

	// UUID is a name-based UUID derived from ID.
	UUID uuid.UUID `json:"uuid"`

	Type              ObservationType `json:"type"`
	Procedure         Procedure       `json:"procedure"`
	FeatureOfInterest string          `json:"featureOfInterest,omitempty"`

	// Time covers all dates seen for the block.
	Time *TimePrimitive `json:"time,omitempty"`

	Result    Result     `json:"result"`
	Positions []Position `json:"positions,omitempty"`
}

// Position is the location of the sensor at one main-field value.
type Position struct {
	Time time.Time `json:"time,omitzero"`
	Main float64   `json:"main"`
	Lat  float64   `json:"lat"`
	Lon  float64   `json:"lon"`
	Z    *float64  `json:"z,omitempty"`
}

// Result is the sparse measurement matrix of an observation.
type Result struct {
	// MainField is the indexing column.
	MainField string `json:"mainField"`

	// Fields are the phenomena measured at least once.
	Fields []string `json:"fields"`

	// QualityFields are carried along as text.
	QualityFields []string `json:"qualityFields,omitempty"`

	// Rows are sorted by main value.
	Rows []ResultRow `json:"rows"`
}

// ResultRow holds the measurements at one main-field value. Values has
// the same length as Result.Fields; nil marks a hole.
type ResultRow struct {
	Time      time.Time  `json:"time,omitzero"`
	Main      float64    `json:"main"`
	Values    []*float64 `json:"values"`
	Qualities []string   `json:"qualities,omitempty"`
}

// TextEncoding describes how a result matrix is rendered as text.
type TextEncoding struct {
	TokenSeparator string
	BlockSeparator string
}

// DefaultTextEncoding renders comma separated lines.
var DefaultTextEncoding = TextEncoding{
	TokenSeparator: ",",
	BlockSeparator: "\n",
}

// Encode renders the matrix: one block per row, the main value first,
// then one token per field (empty for a hole), then quality tokens.
func (r Result) Encode(enc TextEncoding, ot ObservationType) string {
	var sb strings.Builder
	for i, row := range r.Rows {
		if i > 0 {
			sb.WriteString(enc.BlockSeparator)
		}
		if ot == Timeseries {
			sb.WriteString(row.Time.UTC().Format(time.RFC3339Nano))
		} else {
			sb.WriteString(formatFloat(row.Main))
		}
		for _, v := range row.Values {
			sb.WriteString(enc.TokenSeparator)
			if v != nil {
				sb.WriteString(formatFloat(*v))
			}
		}
		for j := range r.QualityFields {
			sb.WriteString(enc.TokenSeparator)
			if j < len(row.Qualities) {
				sb.WriteString(row.Qualities[j])
			}
		}
	}
	return sb.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
