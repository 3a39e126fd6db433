package assistant

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps append-only conversation logs in memory. A conversation comes
// into existence on first use, seeded with the concierge greeting.
type Store struct {
	mu            sync.Mutex
	conversations map[string][]Message
}

func NewStore() *Store {
	return &Store{conversations: make(map[string][]Message)}
}

func (s *Store) ensure(convID string) {
	if _, ok := s.conversations[convID]; ok {
		return
	}
	s.conversations[convID] = []Message{{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Kind:      KindText,
		Content:   Greeting,
		CreatedAt: time.Now(),
	}}
}

// Append adds a message to the conversation, creating it if needed.
func (s *Store) Append(convID string, m Message) Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure(convID)
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	if m.Kind == "" {
		m.Kind = KindText
	}
	s.conversations[convID] = append(s.conversations[convID], m)
	return m
}

// History returns a copy of the conversation log.
func (s *Store) History(convID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure(convID)
	log := s.conversations[convID]
	out := make([]Message, len(log))
	copy(out, log)
	return out
}
