package geography

import (
	"context"
	"errors"
	"fmt"

	"github.com/richxcame/ridematch/pkg/geo"
)

// DefaultGeocodeRadiusKm is how far the offline geocoder looks for a locality.
const DefaultGeocodeRadiusKm = 50.0

var (
	// ErrNoNearbyLocality is returned when no known locality lies within range.
	ErrNoNearbyLocality = errors.New("no known locality near coordinates")
	// ErrInvalidCoordinates is returned for points outside WGS84 bounds.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// ReverseGeocoder turns coordinates into a free-text address.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, point geo.Point) (string, error)
}

// LocalityGeocoder resolves coordinates to the nearest entry of the built-in
// locality table.
type LocalityGeocoder struct {
	maxDistanceKm float64
	places        []Place
}

// NewLocalityGeocoder creates an offline geocoder. A non-positive radius uses DefaultGeocodeRadiusKm.
func NewLocalityGeocoder(maxDistanceKm float64) *LocalityGeocoder {
	if maxDistanceKm <= 0 {
		maxDistanceKm = DefaultGeocodeRadiusKm
	}
	return &LocalityGeocoder{maxDistanceKm: maxDistanceKm, places: places}
}

// Nearest returns the closest place and its distance in kilometres.
func (g *LocalityGeocoder) Nearest(point geo.Point) (Place, float64, error) {
	if !point.Valid() {
		return Place{}, 0, ErrInvalidCoordinates
	}

	best := -1
	bestDistance := 0.0
	for i, p := range g.places {
		d := point.DistanceTo(p.Point)
		if best == -1 || d < bestDistance {
			best, bestDistance = i, d
		}
	}
	if best == -1 || bestDistance > g.maxDistanceKm {
		return Place{}, 0, ErrNoNearbyLocality
	}
	return g.places[best], bestDistance, nil
}

// ReverseGeocode returns "<locality>, <province>" for the nearest known place.
func (g *LocalityGeocoder) ReverseGeocode(_ context.Context, point geo.Point) (string, error) {
	place, _, err := g.Nearest(point)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s, %s", place.Name, place.Province.DisplayName()), nil
}
