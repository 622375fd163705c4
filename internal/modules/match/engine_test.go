package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"testing"

	"carpool/internal/geocode"
	"carpool/internal/modules/ride"
	"carpool/internal/types"
)

// stubGeocoder resolves from a fixed table.
type stubGeocoder struct {
	points map[string]types.Point
}

func (s *stubGeocoder) Resolve(_ context.Context, text string) (types.Point, error) {
	p, ok := s.points[text]
	if !ok {
		return types.Point{}, fmt.Errorf("%w: no results for %q", geocode.ErrGeocodeFailure, text)
	}
	return p, nil
}

// stubRides serves a fixed candidate list.
type stubRides struct {
	offers []ride.Offer
	err    error
}

func (s *stubRides) List(_ context.Context) ([]ride.Offer, error) {
	return s.offers, s.err
}

// kmNorth shifts a point north by the given number of kilometres.
func kmNorth(p types.Point, km float64) types.Point {
	const kmPerDegree = earthRadiusKm * math.Pi / 180
	return types.Point{Lat: p.Lat + km/kmPerDegree, Lng: p.Lng}
}

func offerAt(id string, from, to types.Point) ride.Offer {
	return ride.Offer{
		ID:          types.ID(id),
		DriverName:  "driver-" + id,
		DriverPhone: "555-" + id,
		Vehicle:     ride.Vehicle{Name: "Corolla", PlateNumber: "ABC-" + id, Capacity: 4},
		Route:       ride.Route{FromLabel: "from-" + id, From: from, ToLabel: "to-" + id, To: to},
	}
}

func testEngine(g geocode.Geocoder, rides RideSource) *Engine {
	return NewEngine(g, rides, 50, slog.Default())
}

var (
	riderStart = types.Point{Lat: 40.0, Lng: -75.0}
	riderEnd   = kmNorth(types.Point{Lat: 40.0, Lng: -75.0}, 20) // 20 km direct
)

func riderGeocoder() *stubGeocoder {
	return &stubGeocoder{points: map[string]types.Point{
		"Downtown Station": riderStart,
		"Airport Terminal": riderEnd,
	}}
}

// candidateWithDeviation builds an offer whose total deviation from the
// rider's route is exactly devKm (all of it at the start point).
func candidateWithDeviation(id string, devKm float64) ride.Offer {
	return offerAt(id, kmNorth(riderStart, -devKm), riderEnd)
}

func findMatches(t *testing.T, e *Engine) []Result {
	t.Helper()
	results, err := e.FindMatches(context.Background(), "Downtown Station", "Airport Terminal")
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	return results
}

func TestFindMatches_ThresholdKeepsClearingSubset(t *testing.T) {
	// Scores roughly 30, 80, 20: deviations 28, 8, 32 km over a 20 km
	// direct route.
	rides := &stubRides{offers: []ride.Offer{
		candidateWithDeviation("a", 28),
		candidateWithDeviation("b", 8),
		candidateWithDeviation("c", 32),
	}}
	results := findMatches(t, testEngine(riderGeocoder(), rides))

	if len(results) != 1 {
		t.Fatalf("expected only the clearing candidate, got %d results", len(results))
	}
	if results[0].Offer.ID != "b" {
		t.Errorf("expected candidate b, got %s", results[0].Offer.ID)
	}
	if math.Abs(results[0].Score-80) > 0.5 {
		t.Errorf("score = %v, want roughly 80", results[0].Score)
	}
}

func TestFindMatches_FallbackReturnsFullRankedList(t *testing.T) {
	// Scores roughly 30 and 20; nothing clears 50, so the full list
	// comes back ranked descending.
	rides := &stubRides{offers: []ride.Offer{
		candidateWithDeviation("low", 32),  // ~20
		candidateWithDeviation("high", 28), // ~30
	}}
	results := findMatches(t, testEngine(riderGeocoder(), rides))

	if len(results) != 2 {
		t.Fatalf("expected full fallback list, got %d results", len(results))
	}
	if results[0].Offer.ID != "high" || results[1].Offer.ID != "low" {
		t.Errorf("expected [high low], got [%s %s]", results[0].Offer.ID, results[1].Offer.ID)
	}
	if results[0].Score < results[1].Score {
		t.Errorf("results not descending: %v then %v", results[0].Score, results[1].Score)
	}
}

func TestFindMatches_DeterministicOrderingAndTieBreak(t *testing.T) {
	// Two identical candidates tie exactly; insertion order decides.
	rides := &stubRides{offers: []ride.Offer{
		candidateWithDeviation("first", 8),
		candidateWithDeviation("second", 8),
		candidateWithDeviation("best", 2),
	}}
	e := testEngine(riderGeocoder(), rides)

	a := findMatches(t, e)
	b := findMatches(t, e)

	for i := range a {
		if a[i].Offer.ID != b[i].Offer.ID {
			t.Fatalf("ordering not deterministic at %d: %s vs %s", i, a[i].Offer.ID, b[i].Offer.ID)
		}
	}
	if a[0].Offer.ID != "best" || a[1].Offer.ID != "first" || a[2].Offer.ID != "second" {
		t.Errorf("expected [best first second], got [%s %s %s]", a[0].Offer.ID, a[1].Offer.ID, a[2].Offer.ID)
	}
}

func TestFindMatches_CloseRideRanksFirst(t *testing.T) {
	// Ride A starts ~0.5 km from the rider's start and ends ~0.5 km
	// from the rider's end: deviation ~1 km over 20 km direct, score
	// ~97.5. Ride B deviates far more.
	a := offerAt("A", kmNorth(riderStart, 0.5), kmNorth(riderEnd, 0.5))
	b := offerAt("B", kmNorth(riderStart, 6), kmNorth(riderEnd, 6))
	rides := &stubRides{offers: []ride.Offer{b, a}}

	results := findMatches(t, testEngine(riderGeocoder(), rides))

	if results[0].Offer.ID != "A" {
		t.Fatalf("expected ride A first, got %s", results[0].Offer.ID)
	}
	if math.Abs(results[0].Score-97.5) > 0.5 {
		t.Errorf("score = %v, want roughly 97.5", results[0].Score)
	}
	if results[0].Breakdown.StartKm > 0.6 || results[0].Breakdown.EndKm > 0.6 {
		t.Errorf("unexpected breakdown: %+v", results[0].Breakdown)
	}
}

func TestFindMatches_GeocodeFailureAborts(t *testing.T) {
	g := &stubGeocoder{points: map[string]types.Point{"Downtown Station": riderStart}}
	rides := &stubRides{offers: []ride.Offer{candidateWithDeviation("a", 1)}}
	_, err := testEngine(g, rides).FindMatches(context.Background(), "Downtown Station", "Airport Terminal")
	if !errors.Is(err, geocode.ErrGeocodeFailure) {
		t.Fatalf("expected ErrGeocodeFailure, got %v", err)
	}
}

func TestFindMatches_DegenerateRoute(t *testing.T) {
	g := &stubGeocoder{points: map[string]types.Point{
		"Downtown Station": riderStart,
		"Airport Terminal": riderStart, // same point
	}}
	rides := &stubRides{offers: []ride.Offer{candidateWithDeviation("a", 1)}}
	_, err := testEngine(g, rides).FindMatches(context.Background(), "Downtown Station", "Airport Terminal")
	if !errors.Is(err, ErrDegenerateRoute) {
		t.Fatalf("expected ErrDegenerateRoute, got %v", err)
	}
}

func TestFindMatches_NoCandidates(t *testing.T) {
	results := findMatches(t, testEngine(riderGeocoder(), &stubRides{}))
	if len(results) != 0 {
		t.Fatalf("expected empty result, got %d", len(results))
	}
}
