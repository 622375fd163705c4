// README: Message persistence. Postgres implementation plus the Store interface.
package message

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"carpool/internal/types"
)

type Store interface {
	Create(ctx context.Context, m *Message) error
	// ListConversation returns every message exchanged between the two
	// phones, oldest first.
	ListConversation(ctx context.Context, phoneA, phoneB string) ([]Message, error)
}

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, m *Message) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO messages (id, sender_phone, sender_name, peer_phone, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		string(m.ID), m.SenderPhone, m.SenderName, m.PeerPhone, m.Body, m.CreatedAt)
	return err
}

func (s *PostgresStore) ListConversation(ctx context.Context, phoneA, phoneB string) ([]Message, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, sender_phone, sender_name, peer_phone, body, created_at
		FROM messages
		WHERE (sender_phone = $1 AND peer_phone = $2)
		   OR (sender_phone = $2 AND peer_phone = $1)
		ORDER BY created_at ASC, id ASC`,
		phoneA, phoneB)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		var id string
		if err := rows.Scan(&id, &m.SenderPhone, &m.SenderName, &m.PeerPhone, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.ID = types.ID(id)
		out = append(out, m)
	}
	return out, rows.Err()
}
