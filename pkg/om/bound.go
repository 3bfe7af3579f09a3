package om

import (
	"time"

	"github.com/paulmach/orb"
)

// TimePrimitive is either a time instant (Begin equals End) or a period.
type TimePrimitive struct {
	Begin time.Time `json:"begin"`
	End   time.Time `json:"end"`
}

// IsInstant is true when the primitive collapses to a single moment.
func (tp TimePrimitive) IsInstant() bool {
	return tp.Begin.Equal(tp.End)
}

// GeoSpatialBound is a running envelope and time interval.
// The zero value is an empty bound ready to use.
type GeoSpatialBound struct {
	// Envelope holds min/max longitude (X) and latitude (Y). It is nil
	// until the first coordinate is added.
	Envelope *orb.Bound `json:"envelope,omitempty"`

	// Time is nil until the first date is added.
	Time *TimePrimitive `json:"time,omitempty"`
}

// NewGeoSpatialBound creates an empty bound.
func NewGeoSpatialBound() *GeoSpatialBound {
	return &GeoSpatialBound{}
}

// AddXYCoordinate extends the envelope by a longitude/latitude pair.
func (b *GeoSpatialBound) AddXYCoordinate(lon, lat float64) {
	pt := orb.Point{lon, lat}
	if b.Envelope == nil {
		bnd := pt.Bound()
		b.Envelope = &bnd
		return
	}
	bnd := b.Envelope.Extend(pt)
	b.Envelope = &bnd
}

// AddDate extends the time interval.
func (b *GeoSpatialBound) AddDate(t time.Time) {
	if b.Time == nil {
		b.Time = &TimePrimitive{Begin: t, End: t}
		return
	}
	if t.Before(b.Time.Begin) {
		b.Time.Begin = t
	}
	if t.After(b.Time.End) {
		b.Time.End = t
	}
}

// Merge extends b with everything o has seen.
func (b *GeoSpatialBound) Merge(o *GeoSpatialBound) {
	if o == nil {
		return
	}
	if o.Envelope != nil {
		b.AddXYCoordinate(o.Envelope.Min[0], o.Envelope.Min[1])
		b.AddXYCoordinate(o.Envelope.Max[0], o.Envelope.Max[1])
	}
	if o.Time != nil {
		b.AddDate(o.Time.Begin)
		b.AddDate(o.Time.End)
	}
}

// IsEmpty is true when neither coordinates nor dates were added.
func (b *GeoSpatialBound) IsEmpty() bool {
	return b.Envelope == nil && b.Time == nil
}

// TimePrimitive returns a copy of the accumulated time interval, or nil.
func (b *GeoSpatialBound) TimePrimitive() *TimePrimitive {
	if b.Time == nil {
		return nil
	}
	res := *b.Time
	return &res
}
