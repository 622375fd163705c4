// README: Match engine orchestrates geocoding, scoring, ranking, and the quality threshold.
package match

import (
	"context"
	"log/slog"
	"sort"

	"carpool/internal/geocode"
	"carpool/internal/modules/ride"
	"carpool/internal/observability"
)

// RideSource supplies the candidate ride offers for a match query.
type RideSource interface {
	List(ctx context.Context) ([]ride.Offer, error)
}

// Result is derived per query and never persisted.
type Result struct {
	Offer     ride.Offer `json:"ride"`
	Score     float64    `json:"match_percentage"`
	Breakdown Breakdown  `json:"distance_breakdown"`
}

type Engine struct {
	geocoder  geocode.Geocoder
	rides     RideSource
	threshold float64
	logger    *slog.Logger
}

func NewEngine(geocoder geocode.Geocoder, rides RideSource, threshold float64, logger *slog.Logger) *Engine {
	return &Engine{geocoder: geocoder, rides: rides, threshold: threshold, logger: logger}
}

// FindMatches geocodes the rider's endpoints, scores every candidate
// offer against them, and returns results sorted descending by score.
// Candidates at or above the threshold are returned alone when any
// exist; otherwise the full ranked list comes back, so a rider always
// sees the best available options. Read-only: no offer or booking is
// touched.
func (e *Engine) FindMatches(ctx context.Context, riderStartText, riderEndText string) ([]Result, error) {
	start, err := e.geocoder.Resolve(ctx, riderStartText)
	if err != nil {
		observability.GeocodeFailures.Inc()
		return nil, err
	}
	end, err := e.geocoder.Resolve(ctx, riderEndText)
	if err != nil {
		observability.GeocodeFailures.Inc()
		return nil, err
	}

	directKm, err := DistanceKm(start, end)
	if err != nil {
		return nil, err
	}
	if directKm == 0 {
		return nil, ErrDegenerateRoute
	}

	candidates, err := e.rides.List(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(candidates))
	for _, offer := range candidates {
		startKm, err := DistanceKm(start, offer.Route.From)
		if err != nil {
			e.logger.Error("ride offer has malformed coordinates", "ride_id", offer.ID, "error", err)
			return nil, err
		}
		endKm, err := DistanceKm(end, offer.Route.To)
		if err != nil {
			e.logger.Error("ride offer has malformed coordinates", "ride_id", offer.ID, "error", err)
			return nil, err
		}

		b := Breakdown{StartKm: startKm, EndKm: endKm}
		score, err := Score(directKm, b)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{Offer: offer, Score: score, Breakdown: b})
	}

	// Stable sort keeps candidate insertion order as the tie-break, so
	// identical inputs always rank identically.
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	observability.MatchQueriesTotal.Inc()
	return e.applyThreshold(results), nil
}

func (e *Engine) applyThreshold(results []Result) []Result {
	cleared := make([]Result, 0, len(results))
	for _, r := range results {
		if r.Score >= e.threshold {
			cleared = append(cleared, r)
		}
	}
	if len(cleared) == 0 {
		return results
	}
	return cleared
}
