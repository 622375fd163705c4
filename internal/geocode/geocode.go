// README: Geocoder contract; resolves free-text locations to coordinates.
package geocode

import (
	"context"
	"errors"

	"carpool/internal/types"
)

// ErrGeocodeFailure covers every way a lookup can come back unusable:
// zero results, a missing provider key, or a transport error. The
// matching engine never substitutes a default coordinate on failure.
var ErrGeocodeFailure = errors.New("location could not be resolved")

type Geocoder interface {
	Resolve(ctx context.Context, locationText string) (types.Point, error)
}
