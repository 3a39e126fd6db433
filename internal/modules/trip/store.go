// README: In-memory store for the single active trip session.
package trip

import "sync"

// Store holds the single current session: app state, the preference snapshot
// backing the current itinerary, and the itinerary itself. Exactly one
// itinerary is current at a time; replacement is wholesale.
type Store struct {
	mu        sync.RWMutex
	state     AppState
	prefs     *Preferences
	itinerary *Itinerary
	activeDay int
}

func NewStore() *Store {
	return &Store{state: StateLanding, activeDay: 1}
}

func (s *Store) State() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Transition moves the machine from 'from' to 'to'. It fails when the stored
// state no longer equals 'from' or the transition is not in the table.
func (s *Store) Transition(from, to AppState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != from || !CanTransition(from, to) {
		return false
	}
	s.state = to
	return true
}

// SetCurrent installs the itinerary and the preference snapshot that produced
// it as one unit.
func (s *Store) SetCurrent(prefs Preferences, it *Itinerary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := prefs
	s.prefs = &p
	s.itinerary = it
	s.activeDay = 1
}

func (s *Store) Current() (*Preferences, *Itinerary) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs, s.itinerary
}

func (s *Store) ActiveDay() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeDay
}

func (s *Store) SetActiveDay(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeDay = n
}
