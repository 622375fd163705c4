// README: Booking persistence contract and PostgreSQL implementation.
package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carpool/internal/types"
)

// Store defines persistence operations for bookings. ApplyAccept is
// the one place capacity and status move together; everything else is
// plain reads and a compare-and-swap status update.
type Store interface {
	Create(ctx context.Context, b *Booking) error
	Get(ctx context.Context, id types.ID) (*Booking, error)
	// UpdateStatus flips the status only when the current value still
	// matches from; reports whether the swap applied.
	UpdateStatus(ctx context.Context, id types.ID, from, to Status) (bool, error)
	// ApplyAccept atomically decrements the referenced offer's capacity
	// by the booking's passenger count and marks the booking accepted.
	// Either both mutations land or neither does.
	ApplyAccept(ctx context.Context, id types.ID) error
	ListByRiderPhone(ctx context.Context, phone string) ([]Booking, error)
	ListForRides(ctx context.Context, rideIDs []types.ID, statuses []Status) ([]Booking, error)
}

const bookingColumns = `
    id, rider_name, rider_phone, start_label, end_label, num_passengers,
    pets_allowed, smoking_allowed, tier, notes, status, ride_offer_id, created_at`

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, b *Booking) error {
	var rideID *string
	if b.RideOfferID != nil {
		v := string(*b.RideOfferID)
		rideID = &v
	}
	_, err := s.db.Exec(ctx, `
        INSERT INTO bookings (`+bookingColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		string(b.ID), b.RiderName, b.RiderPhone,
		b.Route.StartLabel, b.Route.EndLabel, b.NumPassengers,
		b.Preferences.PetsAllowed, b.Preferences.SmokingAllowed, b.Preferences.Tier, b.Preferences.Notes,
		string(b.Status), rideID, b.CreatedAt,
	)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, id types.ID) (*Booking, error) {
	row := s.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, string(id))
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id types.ID, from, to Status) (bool, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE bookings SET status = $1 WHERE id = $2 AND status = $3`,
		string(to), string(id), string(from),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) ApplyAccept(ctx context.Context, id types.ID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var status string
	var numPassengers int
	var rideID *string
	err = tx.QueryRow(ctx, `
        SELECT status, num_passengers, ride_offer_id
        FROM bookings WHERE id = $1
        FOR UPDATE`, string(id),
	).Scan(&status, &numPassengers, &rideID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if Status(status) != StatusPending {
		return ErrInvalidTransition
	}
	if rideID == nil {
		return ErrNotFound
	}

	tag, err := tx.Exec(ctx, `
        UPDATE ride_offers
        SET capacity = capacity - $1
        WHERE id = $2 AND capacity >= $1`,
		numPassengers, *rideID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM ride_offers WHERE id = $1)`, *rideID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrCapacityExceeded
	}

	if _, err := tx.Exec(ctx, `UPDATE bookings SET status = $1 WHERE id = $2`, string(StatusAccepted), string(id)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit accept: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByRiderPhone(ctx context.Context, phone string) ([]Booking, error) {
	return s.query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE rider_phone = $1 ORDER BY created_at`, phone)
}

func (s *PostgresStore) ListForRides(ctx context.Context, rideIDs []types.ID, statuses []Status) ([]Booking, error) {
	ids := make([]string, len(rideIDs))
	for i, id := range rideIDs {
		ids[i] = string(id)
	}
	states := make([]string, len(statuses))
	for i, st := range statuses {
		states[i] = string(st)
	}
	return s.query(ctx, `
        SELECT `+bookingColumns+`
        FROM bookings
        WHERE ride_offer_id = ANY($1) AND status = ANY($2)
        ORDER BY created_at`, ids, states)
}

func (s *PostgresStore) query(ctx context.Context, sql string, args ...any) ([]Booking, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*Booking, error) {
	var b Booking
	var status string
	var rideID *string
	err := row.Scan(
		&b.ID, &b.RiderName, &b.RiderPhone,
		&b.Route.StartLabel, &b.Route.EndLabel, &b.NumPassengers,
		&b.Preferences.PetsAllowed, &b.Preferences.SmokingAllowed, &b.Preferences.Tier, &b.Preferences.Notes,
		&status, &rideID, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Status = Status(status)
	if rideID != nil {
		v := types.ID(*rideID)
		b.RideOfferID = &v
	}
	return &b, nil
}
