package geodesy_test

import (
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnobs/pkg/errcode"
	"github.com/gnames/gnobs/pkg/geodesy"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRS(t *testing.T) {
	g := geodesy.New()

	crs, err := g.CRS(4326)
	require.NoError(t, err)
	assert.Equal(t, 4326, crs.SRID)
	assert.Equal(t, "EPSG:4326", crs.String())

	_, err = g.CRS(27700)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.GeodesyUnknownCRSError, gnErr.Code)
}

func TestEqual(t *testing.T) {
	g := geodesy.New()
	merc, _ := g.CRS(3857)
	google, _ := g.CRS(900913)
	wgs, _ := g.CRS(4326)

	assert.True(t, g.Equal(merc, google), "aliases ignore metadata")
	assert.True(t, g.Equal(wgs, geodesy.CRS{SRID: 4326, Name: "other"}))
	assert.False(t, g.Equal(wgs, merc))
}

func TestTransform(t *testing.T) {
	g := geodesy.New()
	wgs, _ := g.CRS(4326)
	merc, _ := g.CRS(3857)

	t.Run("round trip point", func(t *testing.T) {
		pt := orb.Point{-73.9857, 40.7484}
		res, err := g.Transform(pt, wgs, merc)
		require.NoError(t, err)
		mp := res.(orb.Point)
		assert.InDelta(t, -8236050.45, mp[0], 1)
		assert.InDelta(t, 4975301.25, mp[1], 1)

		back, err := g.Transform(mp, merc, wgs)
		require.NoError(t, err)
		bp := back.(orb.Point)
		assert.InDelta(t, pt[0], bp[0], 1e-7)
		assert.InDelta(t, pt[1], bp[1], 1e-7)
	})

	t.Run("input is not modified", func(t *testing.T) {
		ls := orb.LineString{{10, 10}, {20, 20}}
		_, err := g.Transform(ls, wgs, merc)
		require.NoError(t, err)
		assert.Equal(t, orb.LineString{{10, 10}, {20, 20}}, ls)
	})

	t.Run("same crs copies", func(t *testing.T) {
		pt := orb.Point{1, 2}
		res, err := g.Transform(pt, wgs, wgs)
		require.NoError(t, err)
		assert.Equal(t, pt, res)
	})

	t.Run("nil geometry", func(t *testing.T) {
		res, err := g.Transform(nil, wgs, merc)
		require.NoError(t, err)
		assert.Nil(t, res)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := g.Transform(orb.Point{1, 2}, wgs, geodesy.CRS{SRID: 2154})
		require.Error(t, err)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.GeodesyTransformError, gnErr.Code)
	})
}
