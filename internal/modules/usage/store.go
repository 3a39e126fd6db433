package usage

import "sync"

// Store holds per-caller allowance records in memory.
type Store struct {
	mu      sync.Mutex
	records map[string]*Record
}

func NewStore() *Store {
	return &Store{records: make(map[string]*Record)}
}

func (s *Store) get(caller string) *Record {
	return s.records[caller]
}

func (s *Store) put(caller string, r *Record) {
	s.records[caller] = r
}
