// README: Message service implements send and conversation retrieval.
package message

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"carpool/internal/types"
)

var ErrBadRequest = errors.New("bad request")

type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

type SendCommand struct {
	SenderPhone string
	SenderName  string
	PeerPhone   string
	Body        string
}

func (s *Service) Send(ctx context.Context, cmd SendCommand) (*Message, error) {
	cmd.SenderPhone = strings.TrimSpace(cmd.SenderPhone)
	cmd.PeerPhone = strings.TrimSpace(cmd.PeerPhone)
	switch {
	case cmd.SenderPhone == "", cmd.PeerPhone == "":
		return nil, ErrBadRequest
	case cmd.SenderPhone == cmd.PeerPhone:
		return nil, ErrBadRequest
	case strings.TrimSpace(cmd.Body) == "":
		return nil, ErrBadRequest
	}

	m := &Message{
		ID:          types.ID(uuid.NewString()),
		SenderPhone: cmd.SenderPhone,
		SenderName:  cmd.SenderName,
		PeerPhone:   cmd.PeerPhone,
		Body:        cmd.Body,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.Create(ctx, m); err != nil {
		return nil, err
	}
	s.logger.Info("message sent", "message_id", m.ID, "sender_phone", m.SenderPhone, "peer_phone", m.PeerPhone)
	return m, nil
}

// Conversation returns the full exchange between the caller and the
// peer, oldest message first.
func (s *Service) Conversation(ctx context.Context, callerPhone, peerPhone string) ([]Message, error) {
	callerPhone = strings.TrimSpace(callerPhone)
	peerPhone = strings.TrimSpace(peerPhone)
	if callerPhone == "" || peerPhone == "" {
		return nil, ErrBadRequest
	}
	return s.store.ListConversation(ctx, callerPhone, peerPhone)
}
