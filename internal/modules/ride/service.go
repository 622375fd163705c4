// README: Ride service implements publish, listing, and delete.
package ride

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"carpool/internal/geocode"
	"carpool/internal/types"
)

var (
	ErrNotFound   = errors.New("ride offer not found")
	ErrBadRequest = errors.New("bad request")
)

type Service struct {
	store    Store
	geocoder geocode.Geocoder
	logger   *slog.Logger
}

func NewService(store Store, geocoder geocode.Geocoder, logger *slog.Logger) *Service {
	return &Service{store: store, geocoder: geocoder, logger: logger}
}

type PublishCommand struct {
	DriverName  string
	DriverPhone string
	Vehicle     Vehicle
	FromLabel   string
	ToLabel     string
	Schedule    Schedule
	Preferences Preferences
}

// Publish geocodes both endpoints before persisting anything: no ride
// offer exists without resolved coordinates.
func (s *Service) Publish(ctx context.Context, cmd PublishCommand) (types.ID, error) {
	if err := validatePublish(cmd); err != nil {
		return "", err
	}

	from, err := s.geocoder.Resolve(ctx, cmd.FromLabel)
	if err != nil {
		return "", err
	}
	to, err := s.geocoder.Resolve(ctx, cmd.ToLabel)
	if err != nil {
		return "", err
	}

	if cmd.Preferences.Tier == "" {
		cmd.Preferences.Tier = TierEconomy
	}

	o := &Offer{
		ID:          types.ID(uuid.NewString()),
		DriverName:  cmd.DriverName,
		DriverPhone: cmd.DriverPhone,
		Vehicle:     cmd.Vehicle,
		Route: Route{
			FromLabel: cmd.FromLabel,
			From:      from,
			ToLabel:   cmd.ToLabel,
			To:        to,
		},
		Schedule:    cmd.Schedule,
		Preferences: cmd.Preferences,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.Create(ctx, o); err != nil {
		return "", err
	}
	s.logger.Info("ride published", "ride_id", o.ID, "driver_phone", o.DriverPhone)
	return o.ID, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Offer, error) {
	return s.store.Get(ctx, id)
}

// ListMine returns the offers published by the given driver.
func (s *Service) ListMine(ctx context.Context, driverPhone string) ([]Offer, error) {
	if strings.TrimSpace(driverPhone) == "" {
		return nil, ErrBadRequest
	}
	return s.store.ListByDriverPhone(ctx, strings.TrimSpace(driverPhone))
}

// ListOthers returns every offer not published by the given phone, so
// riders never see their own rides as candidates.
func (s *Service) ListOthers(ctx context.Context, phone string) ([]Offer, error) {
	return s.store.ListExcludingPhone(ctx, strings.TrimSpace(phone))
}

func (s *Service) Delete(ctx context.Context, id types.ID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("ride deleted", "ride_id", id)
	return nil
}

func validatePublish(cmd PublishCommand) error {
	switch {
	case cmd.DriverName == "", cmd.DriverPhone == "":
		return ErrBadRequest
	case strings.TrimSpace(cmd.FromLabel) == "", strings.TrimSpace(cmd.ToLabel) == "":
		return ErrBadRequest
	case cmd.Vehicle.Name == "", cmd.Vehicle.PlateNumber == "":
		return ErrBadRequest
	case cmd.Vehicle.Capacity < 0:
		return ErrBadRequest
	}
	return nil
}
