// Package geocode resolves free-form location strings to coordinates and a
// formatted address.
package geocode

import (
	"context"

	"campwild/internal/middleware"

	geo "github.com/codingsince1985/geo-golang"
	"github.com/codingsince1985/geo-golang/google"
)

// Result is a resolved location.
type Result struct {
	Lat              float64
	Lng              float64
	FormattedAddress string
}

// Geocoder resolves a location string. A nil Result with nil error means the
// provider found no match for the address.
type Geocoder interface {
	Locate(ctx context.Context, address string) (*Result, error)
}

type providerGeocoder struct {
	backend geo.Geocoder
}

// NewGoogle returns a Geocoder backed by the Google Maps API.
func NewGoogle(apiKey string) Geocoder {
	return &providerGeocoder{backend: google.Geocoder(apiKey)}
}

// New wraps an arbitrary geo-golang backend. Used by tests and alternative
// providers.
func New(backend geo.Geocoder) Geocoder {
	return &providerGeocoder{backend: backend}
}

func (g *providerGeocoder) Locate(ctx context.Context, address string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loc, err := g.backend.Geocode(address)
	middleware.ObserveExternalCall("geocoder", err)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, nil
	}

	result := &Result{
		Lat:              loc.Lat,
		Lng:              loc.Lng,
		FormattedAddress: address,
	}

	// Best-effort: replace the raw input with the provider's canonical address.
	if addr, err := g.backend.ReverseGeocode(loc.Lat, loc.Lng); err == nil && addr != nil && addr.FormattedAddress != "" {
		result.FormattedAddress = addr.FormattedAddress
	}

	return result, nil
}
