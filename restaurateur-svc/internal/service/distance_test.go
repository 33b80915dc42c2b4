package service

import (
	"testing"

	"foodcart/geocoding"
	"foodcart/restaurateur-svc/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func place(address string, lat, lon float64) *geocoding.Place {
	return &geocoding.Place{Address: address, Lat: &lat, Lon: &lon}
}

func TestGeodesicKM(t *testing.T) {
	tests := []struct {
		name     string
		a, b     geocoding.Coordinates
		expected float64
		delta    float64
	}{
		{
			name:     "same point",
			a:        geocoding.Coordinates{Lat: 55.75, Lon: 37.62},
			b:        geocoding.Coordinates{Lat: 55.75, Lon: 37.62},
			expected: 0,
			delta:    1e-9,
		},
		{
			name:     "one degree along the equator meridian",
			a:        geocoding.Coordinates{Lat: 0, Lon: 0},
			b:        geocoding.Coordinates{Lat: 1, Lon: 0},
			expected: 110.574,
			delta:    0.01,
		},
		{
			name:     "moscow to saint petersburg",
			a:        geocoding.Coordinates{Lat: 55.7558, Lon: 37.6173},
			b:        geocoding.Coordinates{Lat: 59.9343, Lon: 30.3351},
			expected: 634,
			delta:    5,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.InDelta(t, testCase.expected, GeodesicKM(testCase.a, testCase.b), testCase.delta)
			assert.InDelta(t, testCase.expected, GeodesicKM(testCase.b, testCase.a), testCase.delta)
		})
	}
}

func TestAnnotateDistances(t *testing.T) {
	places := map[string]*geocoding.Place{
		"order":   place("order", 55.75, 37.62),
		"near":    place("near", 55.76, 37.62),
		"far":     place("far", 55.95, 37.62),
		"broken":  place("broken", 120, 37.62),
		"nowhere": {Address: "nowhere"},
	}
	candidates := []domain.Candidate{
		{RestaurantID: 1, Name: "Far", Address: "far"},
		{RestaurantID: 2, Name: "Unknown B", Address: "missing"},
		{RestaurantID: 3, Name: "Near", Address: "near"},
		{RestaurantID: 4, Name: "Unknown A", Address: "nowhere"},
		{RestaurantID: 5, Name: "Broken", Address: "broken"},
	}

	annotateDistances(candidates, "order", places)

	var names []string
	for _, c := range candidates {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Near", "Far", "Broken", "Unknown A", "Unknown B"}, names)

	require.True(t, candidates[0].HasDistance)
	assert.InDelta(t, 1.113, candidates[0].DistanceKM, 0.01)
	assert.Regexp(t, `^\d+\.\d{3}$`, candidates[0].Distance)
	for _, c := range candidates[2:] {
		assert.False(t, c.HasDistance)
		assert.Equal(t, InvalidAddress, c.Distance)
	}
}

func TestAnnotateDistances_UnknownOrderAddress(t *testing.T) {
	places := map[string]*geocoding.Place{
		"near": place("near", 55.76, 37.62),
	}
	candidates := []domain.Candidate{{RestaurantID: 1, Name: "Near", Address: "near"}}

	annotateDistances(candidates, "order", places)

	assert.False(t, candidates[0].HasDistance)
	assert.Equal(t, InvalidAddress, candidates[0].Distance)
}
