// README: Schema bootstrap; creates tables on startup when missing.
package infra

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// In production, use a proper migration tool.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    phone         TEXT NOT NULL,
    is_rider      BOOLEAN NOT NULL DEFAULT FALSE,
    is_driver     BOOLEAN NOT NULL DEFAULT FALSE,
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS ride_offers (
    id               TEXT PRIMARY KEY,
    driver_name      TEXT NOT NULL,
    driver_phone     TEXT NOT NULL,
    vehicle_name     TEXT NOT NULL,
    plate_number     TEXT NOT NULL,
    vehicle_color    TEXT NOT NULL,
    capacity         INTEGER NOT NULL CHECK (capacity >= 0),
    from_label       TEXT NOT NULL,
    from_lat         DOUBLE PRECISION NOT NULL,
    from_lng         DOUBLE PRECISION NOT NULL,
    to_label         TEXT NOT NULL,
    to_lat           DOUBLE PRECISION NOT NULL,
    to_lng           DOUBLE PRECISION NOT NULL,
    ride_date        TEXT NOT NULL,
    departure        TEXT NOT NULL,
    arrival          TEXT NOT NULL,
    pets_allowed     BOOLEAN NOT NULL DEFAULT FALSE,
    smoking_allowed  BOOLEAN NOT NULL DEFAULT FALSE,
    tier             TEXT NOT NULL DEFAULT 'Economy',
    notes            TEXT NOT NULL DEFAULT '',
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_ride_offers_driver_phone ON ride_offers (driver_phone);

CREATE TABLE IF NOT EXISTS bookings (
    id              TEXT PRIMARY KEY,
    rider_name      TEXT NOT NULL,
    rider_phone     TEXT NOT NULL,
    start_label     TEXT NOT NULL,
    end_label       TEXT NOT NULL,
    num_passengers  INTEGER NOT NULL CHECK (num_passengers >= 1),
    pets_allowed    BOOLEAN NOT NULL DEFAULT FALSE,
    smoking_allowed BOOLEAN NOT NULL DEFAULT FALSE,
    tier            TEXT NOT NULL DEFAULT 'Economy',
    notes           TEXT NOT NULL DEFAULT '',
    status          TEXT NOT NULL DEFAULT 'pending',
    ride_offer_id   TEXT REFERENCES ride_offers(id),
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_bookings_rider_phone ON bookings (rider_phone);
CREATE INDEX IF NOT EXISTS idx_bookings_ride_offer ON bookings (ride_offer_id);

CREATE TABLE IF NOT EXISTS messages (
    id           TEXT PRIMARY KEY,
    sender_phone TEXT NOT NULL,
    sender_name  TEXT NOT NULL,
    peer_phone   TEXT NOT NULL,
    body         TEXT NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_messages_pair ON messages (sender_phone, peer_phone, created_at);
`

func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, schemaSQL)
	return err
}
