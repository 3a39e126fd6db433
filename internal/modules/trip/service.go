// README: Trip service implements the page state machine and the generation
// failure path.
package trip

import (
	"context"
	"errors"
	"fmt"
	"log"
)

var (
	ErrInvalidState = errors.New("invalid state transition")
	ErrNotFound     = errors.New("no current itinerary")
	ErrBadRequest   = errors.New("bad request")
)

// Generator produces a complete itinerary for a preference snapshot.
// The AI provider implements this.
type Generator interface {
	GenerateItinerary(ctx context.Context, prefs Preferences) (*Itinerary, error)
}

type Service struct {
	store     *Store
	generator Generator
}

func NewService(store *Store, generator Generator) *Service {
	return &Service{store: store, generator: generator}
}

func (s *Service) State() AppState {
	return s.store.State()
}

// StartPlanning moves Landing → Planning.
func (s *Service) StartPlanning() error {
	if !s.store.Transition(StateLanding, StatePlanning) {
		return ErrInvalidState
	}
	return nil
}

// SubmitPreferences carries the finalized snapshot through Generating into
// Dashboard. Entering Generating triggers exactly one generation request, and
// the machine always exits Generating: on any generation error the fixed
// fallback itinerary is substituted so the dashboard never needs to
// special-case a degraded trip.
func (s *Service) SubmitPreferences(ctx context.Context, prefs Preferences) (*Itinerary, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	if !s.store.Transition(StatePlanning, StateGenerating) {
		return nil, ErrInvalidState
	}

	it, err := s.generator.GenerateItinerary(ctx, prefs)
	if err == nil {
		err = Validate(it)
	}
	if err != nil {
		log.Printf("trip: generation failed, substituting fallback: %v", err)
		it = FallbackItinerary()
	}

	s.store.SetCurrent(prefs, it)
	if !s.store.Transition(StateGenerating, StateDashboard) {
		return nil, ErrInvalidState
	}
	return it, nil
}

// Current returns the itinerary backing the dashboard.
func (s *Service) Current() (*Itinerary, error) {
	_, it := s.store.Current()
	if it == nil {
		return nil, ErrNotFound
	}
	return it, nil
}

// Preferences returns the snapshot backing the current itinerary.
func (s *Service) Preferences() (*Preferences, error) {
	p, _ := s.store.Current()
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// SelectDay records the active day and returns the resolved plan; unknown day
// numbers resolve to the first day.
func (s *Service) SelectDay(n int) (*DayPlan, error) {
	it, err := s.Current()
	if err != nil {
		return nil, err
	}
	s.store.SetActiveDay(n)
	d := it.Day(n)
	if d == nil {
		return nil, ErrNotFound
	}
	return d, nil
}

// Briefing composes the spoken morning summary for the given day.
func (s *Service) Briefing(n int) (string, error) {
	it, err := s.Current()
	if err != nil {
		return "", err
	}
	d := it.Day(n)
	if d == nil || len(d.Items) == 0 {
		return "", ErrNotFound
	}
	first := d.Items[0]
	return fmt.Sprintf("Day %d in %s. Your morning begins at %s with %s. %s",
		d.DayNumber, it.Location, first.Time, first.Title, first.Description), nil
}

// ActiveDay resolves the currently selected day plan.
func (s *Service) ActiveDay() (*DayPlan, error) {
	it, err := s.Current()
	if err != nil {
		return nil, err
	}
	d := it.Day(s.store.ActiveDay())
	if d == nil {
		return nil, ErrNotFound
	}
	return d, nil
}
