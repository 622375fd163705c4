// README: Match scoring policy: route deviation relative to the rider's direct distance.
package match

import "errors"

// ErrDegenerateRoute is returned when the rider's start and end resolve
// to the same point; every candidate score would divide by zero.
var ErrDegenerateRoute = errors.New("rider route has zero length")

// Breakdown records the two proximity distances behind a score.
type Breakdown struct {
	StartKm float64 `json:"start_km"`
	EndKm   float64 `json:"end_km"`
}

func (b Breakdown) deviationKm() float64 {
	return b.StartKm + b.EndKm
}

// Score converts a deviation into a match percentage:
//
//	100 − (deviation / direct) × 50
//
// The value is deliberately unclamped: scores below 0 or above 100 are
// meaningful signals of poor or excellent fit, and callers threshold
// rather than clamp.
func Score(directKm float64, b Breakdown) (float64, error) {
	if directKm == 0 {
		return 0, ErrDegenerateRoute
	}
	return 100 - (b.deviationKm()/directKm)*50, nil
}
