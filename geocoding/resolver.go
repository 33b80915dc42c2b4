package geocoding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type PlaceRepository interface {
	Get(ctx context.Context, address string) (*Place, error)
	Save(ctx context.Context, place *Place) error
}

type PlaceCache interface {
	Get(ctx context.Context, address string) (*Place, error)
	Set(ctx context.Context, place *Place) error
}

type Geocoder interface {
	Fetch(ctx context.Context, address string) (Coordinates, error)
}

// Resolver looks an address up in the hot cache, then the places table,
// and only then asks the geocoder. Geocoder answers, including "not
// found", are written back to both stores. Transport errors are not.
type Resolver struct {
	places   PlaceRepository
	cache    PlaceCache
	geocoder Geocoder
	logger   *zap.SugaredLogger
}

func NewResolver(places PlaceRepository, cache PlaceCache, geocoder Geocoder, logger *zap.SugaredLogger) *Resolver {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Resolver{
		places:   places,
		cache:    cache,
		geocoder: geocoder,
		logger:   logger,
	}
}

func (r *Resolver) Resolve(ctx context.Context, address string) (*Place, error) {
	return r.resolve(ctx, address, true)
}

func (r *Resolver) resolve(ctx context.Context, address string, fetch bool) (*Place, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return newPlace(address, nil), nil
	}

	if r.cache != nil {
		place, err := r.cache.Get(ctx, address)
		if err == nil {
			return place, nil
		}
		if !errors.Is(err, ErrPlaceNotCached) {
			r.logger.Warnw("place cache lookup failed", "address", address, "error", err)
		}
	}

	place, err := r.places.Get(ctx, address)
	switch {
	case err == nil:
		r.warm(ctx, place)
		return place, nil
	case !errors.Is(err, ErrPlaceNotCached):
		return nil, fmt.Errorf("load place: %w", err)
	}

	if !fetch {
		return nil, fmt.Errorf("geocode %q skipped: %w", address, ErrGeocoderUnavailable)
	}

	coords, err := r.geocoder.Fetch(ctx, address)
	switch {
	case err == nil:
		place = newPlace(address, &coords)
	case errors.Is(err, ErrNotFound):
		place = newPlace(address, nil)
	default:
		return nil, fmt.Errorf("geocode %q: %w: %w", address, ErrGeocoderUnavailable, err)
	}

	if err := r.places.Save(ctx, place); err != nil {
		return nil, fmt.Errorf("save place: %w", err)
	}
	r.warm(ctx, place)

	r.logger.Infow("address geocoded", "address", address, "found", place.Lat != nil)
	return place, nil
}

// ResolveMany resolves each distinct address once. Addresses that could
// not be resolved are logged and left out of the result. After the first
// geocoder failure the remaining addresses are served from the stores only.
func (r *Resolver) ResolveMany(ctx context.Context, addresses []string) map[string]*Place {
	resolved := make(map[string]*Place, len(addresses))
	fetch := true
	for _, address := range addresses {
		if _, seen := resolved[address]; seen {
			continue
		}
		place, err := r.resolve(ctx, address, fetch)
		if err != nil {
			if fetch && errors.Is(err, ErrGeocoderUnavailable) {
				fetch = false
				r.logger.Warnw("geocoder unavailable, skipping remaining lookups", "error", err)
			}
			r.logger.Errorw("failed to resolve address", "address", address, "error", err)
			resolved[address] = nil
			continue
		}
		resolved[address] = place
	}
	for address, place := range resolved {
		if place == nil {
			delete(resolved, address)
		}
	}
	return resolved
}

func (r *Resolver) warm(ctx context.Context, place *Place) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, place); err != nil {
		r.logger.Warnw("failed to cache place", "address", place.Address, "error", err)
	}
}
