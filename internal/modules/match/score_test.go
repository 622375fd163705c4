package match

import (
	"errors"
	"math"
	"testing"
)

func TestScore(t *testing.T) {
	cases := []struct {
		name    string
		direct  float64
		start   float64
		end     float64
		want    float64
	}{
		{"perfect overlap", 20, 0, 0, 100},
		{"one km deviation over 20km", 20, 0.5, 0.5, 97.5},
		{"deviation equal to direct", 10, 5, 5, 50},
		{"deviation double the direct", 10, 10, 10, 0},
		{"worse than opposite", 10, 15, 15, -50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Score(tc.direct, Breakdown{StartKm: tc.start, EndKm: tc.end})
			if err != nil {
				t.Fatalf("Score: %v", err)
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Score = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestScore_DegenerateRoute(t *testing.T) {
	_, err := Score(0, Breakdown{StartKm: 1, EndKm: 1})
	if !errors.Is(err, ErrDegenerateRoute) {
		t.Fatalf("expected ErrDegenerateRoute, got %v", err)
	}
}
