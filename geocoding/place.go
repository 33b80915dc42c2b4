// Package geocoding turns free-form addresses into coordinates and keeps
// the answers in the places table so an address is geocoded at most once.
package geocoding

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by a Geocoder that has no match for an address.
	ErrNotFound = errors.New("address not found by geocoder")
	// ErrPlaceNotCached is returned by place stores on a lookup miss.
	ErrPlaceNotCached = errors.New("place is not cached")
	// ErrGeocoderUnavailable wraps geocoder failures other than ErrNotFound.
	ErrGeocoderUnavailable = errors.New("geocoder unavailable")
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Place is a cached geocoder answer. Nil coordinates mean the geocoder
// did not recognise the address.
type Place struct {
	ID        int       `db:"id" json:"id"`
	Address   string    `db:"address" json:"address"`
	Lat       *float64  `db:"lat" json:"lat"`
	Lon       *float64  `db:"lon" json:"lon"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (p *Place) Coordinates() (Coordinates, bool) {
	if p == nil || p.Lat == nil || p.Lon == nil {
		return Coordinates{}, false
	}
	return Coordinates{Lat: *p.Lat, Lon: *p.Lon}, true
}

func newPlace(address string, coords *Coordinates) *Place {
	place := &Place{Address: address, UpdatedAt: time.Now()}
	if coords != nil {
		lat, lon := coords.Lat, coords.Lon
		place.Lat, place.Lon = &lat, &lon
	}
	return place
}
