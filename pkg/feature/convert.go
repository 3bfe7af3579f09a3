package feature

import (
	"github.com/gnames/gnobs/pkg/om"
	"github.com/paulmach/orb"
)

// SensorLocations converts procedures with a spatial extent into sensor
// location features. A sensor that never moved gets a point, a moving one
// gets the polygon of its envelope. Identifiers are left blank for the
// store to allocate.
func SensorLocations(procs []*om.ProcedureTree) []Feature {
	var res []Feature
	for _, v := range procs {
		if v.Bound == nil || v.Bound.Envelope == nil {
			continue
		}
		res = append(res, Feature{
			Kind:     Sensor,
			Geometry: boundGeometry(*v.Bound.Envelope),
		})
	}
	return res
}

// SamplingPoints converts observations with positions into sampling
// features. The geometry is a point for a fixed position and the path of
// the sensor otherwise. The name is the feature of interest when the file
// has one, the observation identifier when it does not.
func SamplingPoints(obs []om.Observation) []Feature {
	var res []Feature
	for _, v := range obs {
		g := positionsGeometry(v.Positions)
		if g == nil {
			continue
		}
		name := v.FeatureOfInterest
		if name == "" {
			name = v.ID
		}
		res = append(res, Feature{
			Kind:           Sampling,
			Name:           name,
			Description:    v.ID,
			SampledFeature: v.FeatureOfInterest,
			Geometry:       g,
		})
	}
	return res
}

func boundGeometry(b orb.Bound) orb.Geometry {
	if b.Min.Equal(b.Max) {
		return b.Min
	}
	return b.ToPolygon()
}

// positionsGeometry drops consecutive repeated positions.
func positionsGeometry(ps []om.Position) orb.Geometry {
	var ls orb.LineString
	for _, v := range ps {
		pt := orb.Point{v.Lon, v.Lat}
		if len(ls) > 0 && ls[len(ls)-1].Equal(pt) {
			continue
		}
		ls = append(ls, pt)
	}
	switch len(ls) {
	case 0:
		return nil
	case 1:
		return ls[0]
	default:
		return ls
	}
}
