// README: Google Maps geocoder implementation.
package geocode

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"carpool/internal/types"
)

// GoogleGeocoder resolves locations through the Google Maps Geocoding API.
type GoogleGeocoder struct {
	client *maps.Client
}

// NewGoogleGeocoder creates a GoogleGeocoder with the given API key.
func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing maps API key", ErrGeocodeFailure)
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleGeocoder{client: client}, nil
}

func (g *GoogleGeocoder) Resolve(ctx context.Context, locationText string) (types.Point, error) {
	text := strings.TrimSpace(locationText)
	if text == "" {
		return types.Point{}, fmt.Errorf("%w: empty location", ErrGeocodeFailure)
	}

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: text})
	if err != nil {
		return types.Point{}, fmt.Errorf("%w: %v", ErrGeocodeFailure, err)
	}
	if len(results) == 0 {
		return types.Point{}, fmt.Errorf("%w: no results for %q", ErrGeocodeFailure, text)
	}

	loc := results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}
