package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	maputo := Point{Lat: -25.9692, Lng: 32.5732}
	beira := Point{Lat: -19.8436, Lng: 34.8389}

	d := maputo.DistanceTo(beira)
	assert.InDelta(t, 720, d, 15)
	assert.Equal(t, d, beira.DistanceTo(maputo))
	assert.Zero(t, maputo.DistanceTo(maputo))
}

func TestPointValid(t *testing.T) {
	assert.True(t, Point{Lat: -25.9, Lng: 32.5}.Valid())
	assert.False(t, Point{Lat: -91, Lng: 0}.Valid())
	assert.False(t, Point{Lat: 0, Lng: 181}.Valid())
}
