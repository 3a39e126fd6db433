package usage

import (
	"fmt"
	"time"
)

// Service meters assistant queries against a monthly token allowance.
// Records initialize lazily and reset when the calendar month rolls over.
type Service struct {
	store *Store
	quota int
	now   func() time.Time
}

func NewService(store *Store, quota int) *Service {
	if quota <= 0 {
		quota = DefaultTokens
	}
	return &Service{store: store, quota: quota, now: time.Now}
}

// UseToken consumes one token for the caller, rolling the record over to a
// fresh allowance when a new month starts.
func (s *Service) UseToken(caller string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	month := s.now().Format("2006-01")
	r := s.store.get(caller)
	if r == nil || r.Month != month {
		r = &Record{Month: month, Remaining: s.quota}
		s.store.put(caller, r)
	}
	if r.Remaining <= 0 {
		return fmt.Errorf("caller %s: %w", caller, ErrInsufficientTokens)
	}
	r.Remaining--
	return nil
}

// Remaining reports the caller's balance for the current month.
func (s *Service) Remaining(caller string) int {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	month := s.now().Format("2006-01")
	r := s.store.get(caller)
	if r == nil || r.Month != month {
		return s.quota
	}
	return r.Remaining
}
