// Package geodesy resolves SRIDs to coordinate reference systems and
// reprojects geometries between them.
//
// Only the transformations gnobs needs are provided: geographic WGS84
// (EPSG:4326) and spherical web mercator (EPSG:3857 and its legacy
// alias EPSG:900913). The math comes from github.com/paulmach/orb/project.
package geodesy

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

const (
	// WGS84 is the SRID of geographic longitude/latitude coordinates.
	WGS84 = 4326
	// WebMercator is the SRID of spherical mercator coordinates.
	WebMercator = 3857
	// GoogleMercator is the legacy unofficial code of WebMercator.
	GoogleMercator = 900913
)

// CRS is a coordinate reference system identified by its SRID.
type CRS struct {
	// SRID is the integer code as stored in the database.
	SRID int
	// Name is a human readable label. It is metadata and does not take
	// part in equality.
	Name string
}

// String returns the EPSG code of the CRS.
func (c CRS) String() string {
	return fmt.Sprintf("EPSG:%d", c.SRID)
}

// IsZero is true when the CRS was never resolved.
func (c CRS) IsZero() bool {
	return c.SRID == 0
}

// Geodesy is the contract the feature store uses for CRS handling.
type Geodesy interface {
	// CRS resolves an SRID.
	CRS(srid int) (CRS, error)

	// Equal compares two reference systems ignoring metadata.
	Equal(a, b CRS) bool

	// Transform returns a reprojected copy of g. The input geometry is
	// never modified.
	Transform(g orb.Geometry, from, to CRS) (orb.Geometry, error)
}

type orbGeodesy struct{}

// New returns the default Geodesy implementation.
func New() Geodesy {
	return orbGeodesy{}
}

var crsNames = map[int]string{
	WGS84:          "WGS 84",
	WebMercator:    "WGS 84 / Pseudo-Mercator",
	GoogleMercator: "Google Maps Global Mercator",
}

func (orbGeodesy) CRS(srid int) (CRS, error) {
	name, ok := crsNames[srid]
	if !ok {
		return CRS{}, UnknownCRSError(srid)
	}
	return CRS{SRID: srid, Name: name}, nil
}

func (orbGeodesy) Equal(a, b CRS) bool {
	return canonical(a.SRID) == canonical(b.SRID)
}

func (g orbGeodesy) Transform(
	geom orb.Geometry,
	from, to CRS,
) (orb.Geometry, error) {
	if geom == nil {
		return nil, nil
	}
	src, dst := canonical(from.SRID), canonical(to.SRID)
	if _, ok := crsNames[src]; !ok {
		return nil, TransformError(from, to, UnknownCRSError(from.SRID))
	}
	if _, ok := crsNames[dst]; !ok {
		return nil, TransformError(from, to, UnknownCRSError(to.SRID))
	}

	res := orb.Clone(geom)
	switch {
	case src == dst:
		return res, nil
	case src == WGS84 && dst == WebMercator:
		return project.Geometry(res, project.WGS84.ToMercator), nil
	case src == WebMercator && dst == WGS84:
		return project.Geometry(res, project.Mercator.ToWGS84), nil
	}
	return nil, TransformError(from, to,
		fmt.Errorf("no transformation from %s to %s", from, to))
}

func canonical(srid int) int {
	if srid == GoogleMercator {
		return WebMercator
	}
	return srid
}
