package service

import (
	"fmt"
	"sort"

	"foodcart/geocoding"
	"foodcart/restaurateur-svc/internal/domain"

	"github.com/tidwall/geodesic"
)

// InvalidAddress is shown instead of a distance when either end of the
// route has no usable coordinates.
const InvalidAddress = "Неверный адрес доставки"

// GeodesicKM is the WGS84 ellipsoid distance between a and b in kilometres.
func GeodesicKM(a, b geocoding.Coordinates) float64 {
	var meters float64
	geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &meters, nil, nil)
	return meters / 1000
}

func validCoordinates(c geocoding.Coordinates) bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

func coordinatesOf(places map[string]*geocoding.Place, address string) (geocoding.Coordinates, bool) {
	coords, ok := places[address].Coordinates()
	if !ok || !validCoordinates(coords) {
		return geocoding.Coordinates{}, false
	}
	return coords, true
}

// annotateDistances fills the distance of every candidate from its address
// to orderAddress and orders them nearest first. Candidates without a
// distance go last, ties are broken by name.
func annotateDistances(candidates []domain.Candidate, orderAddress string, places map[string]*geocoding.Place) {
	orderCoords, orderOK := coordinatesOf(places, orderAddress)

	for i := range candidates {
		restaurantCoords, ok := coordinatesOf(places, candidates[i].Address)
		if !ok || !orderOK {
			candidates[i].Distance = InvalidAddress
			continue
		}
		km := GeodesicKM(restaurantCoords, orderCoords)
		candidates[i].DistanceKM = km
		candidates[i].HasDistance = true
		candidates[i].Distance = fmt.Sprintf("%.3f", km)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.HasDistance != b.HasDistance {
			return a.HasDistance
		}
		if a.HasDistance && a.DistanceKM != b.DistanceKM {
			return a.DistanceKM < b.DistanceKM
		}
		return a.Name < b.Name
	})
}
