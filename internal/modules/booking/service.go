// README: Booking service implements the accept/reject lifecycle and both query views.
package booking

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"carpool/internal/modules/ride"
	"carpool/internal/observability"
	"carpool/internal/types"
)

var (
	ErrNotFound          = errors.New("booking or ride offer not found")
	ErrCapacityExceeded  = errors.New("not enough seats in vehicle")
	ErrInvalidTransition = errors.New("invalid booking state transition")
	ErrBadRequest        = errors.New("bad request")
)

type Service struct {
	store  Store
	rides  ride.Store
	logger *slog.Logger
}

func NewService(store Store, rides ride.Store, logger *slog.Logger) *Service {
	return &Service{store: store, rides: rides, logger: logger}
}

type CreateCommand struct {
	RiderName     string
	RiderPhone    string
	StartLabel    string
	EndLabel      string
	NumPassengers int
	Preferences   ride.Preferences
	RideOfferID   *types.ID
}

// Create registers a pending booking. The target ride offer is
// optional at creation; accept requires one.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (types.ID, error) {
	switch {
	case cmd.RiderName == "", cmd.RiderPhone == "":
		return "", ErrBadRequest
	case strings.TrimSpace(cmd.StartLabel) == "", strings.TrimSpace(cmd.EndLabel) == "":
		return "", ErrBadRequest
	case cmd.NumPassengers < 1:
		return "", ErrBadRequest
	}

	if cmd.RideOfferID != nil {
		if _, err := s.rides.Get(ctx, *cmd.RideOfferID); err != nil {
			if errors.Is(err, ride.ErrNotFound) {
				return "", ErrNotFound
			}
			return "", err
		}
	}

	if cmd.Preferences.Tier == "" {
		cmd.Preferences.Tier = ride.TierEconomy
	}

	b := &Booking{
		ID:            types.ID(uuid.NewString()),
		RiderName:     cmd.RiderName,
		RiderPhone:    cmd.RiderPhone,
		Route:         RequestedRoute{StartLabel: cmd.StartLabel, EndLabel: cmd.EndLabel},
		NumPassengers: cmd.NumPassengers,
		Preferences:   cmd.Preferences,
		Status:        StatusPending,
		RideOfferID:   cmd.RideOfferID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.Create(ctx, b); err != nil {
		return "", err
	}
	s.logger.Info("booking created", "booking_id", b.ID, "rider_phone", b.RiderPhone)
	return b.ID, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Booking, error) {
	return s.store.Get(ctx, id)
}

// Accept moves a pending booking to accepted and takes its seats from
// the referenced ride offer. The store applies both mutations as one
// atomic unit; a lost race or a full vehicle leaves booking and
// capacity untouched.
func (s *Service) Accept(ctx context.Context, id types.ID) error {
	if err := s.store.ApplyAccept(ctx, id); err != nil {
		return err
	}
	observability.BookingsAccepted.Inc()
	s.logger.Info("booking accepted", "booking_id", id)
	return nil
}

// Reject moves a pending booking to rejected. No capacity side effect,
// even when a ride offer is referenced.
func (s *Service) Reject(ctx context.Context, id types.ID) error {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(b.Status, StatusRejected) {
		return ErrInvalidTransition
	}
	ok, err := s.store.UpdateStatus(ctx, id, b.Status, StatusRejected)
	if err != nil {
		return err
	}
	if !ok {
		// Status moved under us; whatever it moved to, pending is gone.
		return ErrInvalidTransition
	}
	observability.BookingsRejected.Inc()
	s.logger.Info("booking rejected", "booking_id", id)
	return nil
}

// RequestsForDriver returns pending and accepted bookings that
// reference one of the driver's ride offers, joined with the offer
// summary.
func (s *Service) RequestsForDriver(ctx context.Context, driverPhone string) ([]DriverRequest, error) {
	if strings.TrimSpace(driverPhone) == "" {
		return nil, ErrBadRequest
	}
	offers, err := s.rides.ListByDriverPhone(ctx, strings.TrimSpace(driverPhone))
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return []DriverRequest{}, nil
	}

	byID := make(map[types.ID]*ride.Offer, len(offers))
	ids := make([]types.ID, len(offers))
	for i := range offers {
		byID[offers[i].ID] = &offers[i]
		ids[i] = offers[i].ID
	}

	bookings, err := s.store.ListForRides(ctx, ids, []Status{StatusPending, StatusAccepted})
	if err != nil {
		return nil, err
	}

	requests := make([]DriverRequest, 0, len(bookings))
	for _, b := range bookings {
		requests = append(requests, DriverRequest{Booking: b, Ride: summarize(byID[*b.RideOfferID])})
	}
	return requests, nil
}

// BookingsForRider returns the rider's bookings, each joined with the
// referenced ride's driver/vehicle summary when one is associated.
func (s *Service) BookingsForRider(ctx context.Context, riderPhone string) ([]RiderBooking, error) {
	if strings.TrimSpace(riderPhone) == "" {
		return nil, ErrBadRequest
	}
	bookings, err := s.store.ListByRiderPhone(ctx, strings.TrimSpace(riderPhone))
	if err != nil {
		return nil, err
	}

	out := make([]RiderBooking, 0, len(bookings))
	for _, b := range bookings {
		rb := RiderBooking{Booking: b}
		if b.RideOfferID != nil {
			if o, err := s.rides.Get(ctx, *b.RideOfferID); err == nil {
				sum := summarize(o)
				rb.Ride = &sum
			}
		}
		out = append(out, rb)
	}
	return out, nil
}
