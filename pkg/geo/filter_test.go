package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type site struct {
	Name string
	Loc  Point
}

func siteLoc(s site) Point { return s.Loc }

// latAtKm returns the latitude of a point due north of the equator at the
// given great-circle distance. Due-north displacement makes the haversine
// distance exactly R*dLat, so boundary cases can be constructed precisely.
func latAtKm(km float64) float64 {
	return km / EarthRadiusKm * 180 / math.Pi
}

func TestFilterBoundaryInclusive(t *testing.T) {
	origin := Point{0, 0}
	onEdge := site{"edge", Point{latAtKm(20.0), 0}}
	beyond := site{"beyond", Point{latAtKm(20.0001), 0}}

	edgeDist, err := DistanceKm(origin, onEdge.Loc)
	require.NoError(t, err)

	// Radius exactly equal to the edge candidate's distance: included.
	got, err := FilterWithinRadius(origin, edgeDist, []site{onEdge, beyond}, siteLoc)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "edge", got[0].Item.Name)
	assert.Equal(t, edgeDist, got[0].DistanceKm)
}

func TestFilterSortsAscending(t *testing.T) {
	origin := Point{0, 0}
	items := []site{
		{"c", Point{latAtKm(15), 0}},
		{"a", Point{latAtKm(2), 0}},
		{"d", Point{latAtKm(19), 0}},
		{"b", Point{latAtKm(7), 0}},
	}
	got, err := FilterWithinRadius(origin, 20, items, siteLoc)
	require.NoError(t, err)
	require.Len(t, got, 4)
	names := []string{got[0].Item.Name, got[1].Item.Name, got[2].Item.Name, got[3].Item.Name}
	assert.Equal(t, []string{"a", "b", "c", "d"}, names)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].DistanceKm, got[i].DistanceKm)
	}
}

func TestFilterStableOnTies(t *testing.T) {
	origin := Point{0, 0}
	same := Point{latAtKm(5), 0}
	items := []site{{"first", same}, {"second", same}, {"third", same}}
	got, err := FilterWithinRadius(origin, 20, items, siteLoc)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Item.Name)
	assert.Equal(t, "second", got[1].Item.Name)
	assert.Equal(t, "third", got[2].Item.Name)
}

func TestFilterEmptyAndNoMatches(t *testing.T) {
	origin := Point{0, 0}

	got, err := FilterWithinRadius(origin, 20, nil, siteLoc)
	require.NoError(t, err)
	assert.Empty(t, got)

	far := []site{{"far", Point{latAtKm(500), 0}}}
	got, err = FilterWithinRadius(origin, 20, far, siteLoc)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilterMissingOrigin(t *testing.T) {
	items := []site{{"x", Point{1, 1}}}
	_, err := FilterWithinRadius(Point{math.NaN(), 0}, 20, items, siteLoc)
	assert.ErrorIs(t, err, ErrMissingOrigin)
	_, err = FilterWithinRadius(Point{0, math.NaN()}, 20, items, siteLoc)
	assert.ErrorIs(t, err, ErrMissingOrigin)
}

func TestFilterInvalidCandidate(t *testing.T) {
	items := []site{{"bad", Point{math.NaN(), 0}}}
	_, err := FilterWithinRadius(Point{0, 0}, 20, items, siteLoc)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}
