// README: User persistence. Postgres implementation plus the Store interface.
package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carpool/internal/types"
)

type Store interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, u *User) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO users (id, name, email, phone, is_rider, is_driver, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		string(u.ID), u.Name, u.Email, u.Phone, u.Roles.Rider, u.Roles.Driver, u.PasswordHash, u.CreatedAt)
	return err
}

func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, email, phone, is_rider, is_driver, password_hash, created_at
		FROM users WHERE email = $1`, email)

	var u User
	var id string
	err := row.Scan(&id, &u.Name, &u.Email, &u.Phone, &u.Roles.Rider, &u.Roles.Driver, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.ID = types.ID(id)
	return &u, nil
}
