// README: Ride offer persistence contract and PostgreSQL implementation.
package ride

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carpool/internal/types"
)

// Store defines persistence operations for ride offers. Capacity is
// mutated only through DecrementCapacity so the seat invariant has a
// single enforcement point.
type Store interface {
	Create(ctx context.Context, o *Offer) error
	Get(ctx context.Context, id types.ID) (*Offer, error)
	List(ctx context.Context) ([]Offer, error)
	ListByDriverPhone(ctx context.Context, phone string) ([]Offer, error)
	ListExcludingPhone(ctx context.Context, phone string) ([]Offer, error)
	Delete(ctx context.Context, id types.ID) error
	// DecrementCapacity atomically subtracts seats from the offer's
	// remaining capacity. It reports false without mutating anything
	// when the remaining capacity is smaller than seats.
	DecrementCapacity(ctx context.Context, id types.ID, seats int) (bool, error)
}

const offerColumns = `
    id, driver_name, driver_phone,
    vehicle_name, plate_number, vehicle_color, capacity,
    from_label, from_lat, from_lng, to_label, to_lat, to_lng,
    ride_date, departure, arrival,
    pets_allowed, smoking_allowed, tier, notes, created_at`

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, o *Offer) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO ride_offers (`+offerColumns+`)
        VALUES (
            $1, $2, $3,
            $4, $5, $6, $7,
            $8, $9, $10, $11, $12, $13,
            $14, $15, $16,
            $17, $18, $19, $20, $21
        )`,
		string(o.ID), o.DriverName, o.DriverPhone,
		o.Vehicle.Name, o.Vehicle.PlateNumber, o.Vehicle.Color, o.Vehicle.Capacity,
		o.Route.FromLabel, o.Route.From.Lat, o.Route.From.Lng,
		o.Route.ToLabel, o.Route.To.Lat, o.Route.To.Lng,
		o.Schedule.Date, o.Schedule.Departure, o.Schedule.Arrival,
		o.Preferences.PetsAllowed, o.Preferences.SmokingAllowed, o.Preferences.Tier, o.Preferences.Notes,
		o.CreatedAt,
	)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, id types.ID) (*Offer, error) {
	row := s.db.QueryRow(ctx, `SELECT `+offerColumns+` FROM ride_offers WHERE id = $1`, string(id))
	o, err := scanOffer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Offer, error) {
	return s.query(ctx, `SELECT `+offerColumns+` FROM ride_offers ORDER BY created_at`)
}

func (s *PostgresStore) ListByDriverPhone(ctx context.Context, phone string) ([]Offer, error) {
	return s.query(ctx, `SELECT `+offerColumns+` FROM ride_offers WHERE driver_phone = $1 ORDER BY created_at`, phone)
}

func (s *PostgresStore) ListExcludingPhone(ctx context.Context, phone string) ([]Offer, error) {
	return s.query(ctx, `SELECT `+offerColumns+` FROM ride_offers WHERE driver_phone <> $1 ORDER BY created_at`, phone)
}

func (s *PostgresStore) Delete(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM ride_offers WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DecrementCapacity(ctx context.Context, id types.ID, seats int) (bool, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE ride_offers
        SET capacity = capacity - $1
        WHERE id = $2 AND capacity >= $1`,
		seats, string(id),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) query(ctx context.Context, sql string, args ...any) ([]Offer, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, *o)
	}
	return offers, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOffer(row rowScanner) (*Offer, error) {
	var o Offer
	var createdAt time.Time
	err := row.Scan(
		&o.ID, &o.DriverName, &o.DriverPhone,
		&o.Vehicle.Name, &o.Vehicle.PlateNumber, &o.Vehicle.Color, &o.Vehicle.Capacity,
		&o.Route.FromLabel, &o.Route.From.Lat, &o.Route.From.Lng,
		&o.Route.ToLabel, &o.Route.To.Lat, &o.Route.To.Lng,
		&o.Schedule.Date, &o.Schedule.Departure, &o.Schedule.Arrival,
		&o.Preferences.PetsAllowed, &o.Preferences.SmokingAllowed, &o.Preferences.Tier, &o.Preferences.Notes,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	o.CreatedAt = createdAt
	return &o, nil
}
