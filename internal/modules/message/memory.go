// README: In-memory message store for tests and local runs.
package message

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu       sync.RWMutex
	messages []Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Create(_ context.Context, m *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, *m)
	return nil
}

func (s *MemoryStore) ListConversation(_ context.Context, phoneA, phoneB string) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Message
	for _, m := range s.messages {
		if (m.SenderPhone == phoneA && m.PeerPhone == phoneB) ||
			(m.SenderPhone == phoneB && m.PeerPhone == phoneA) {
			out = append(out, m)
		}
	}
	return out, nil
}
