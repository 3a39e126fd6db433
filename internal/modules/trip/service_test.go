package trip

import (
	"context"
	"errors"
	"testing"
)

type fakeGenerator struct {
	calls int
	it    *Itinerary
	err   error
}

func (f *fakeGenerator) GenerateItinerary(_ context.Context, _ Preferences) (*Itinerary, error) {
	f.calls++
	return f.it, f.err
}

func generatedItinerary() *Itinerary {
	return &Itinerary{
		ID:       "it-test-1",
		Location: "Lisbon",
		Days: []DayPlan{
			{DayNumber: 1, Label: "Alfama", Items: []ItineraryItem{{Time: "09:00", Title: "Castle walk", Period: PeriodMorning}}},
			{DayNumber: 2, Label: "Belém", Items: []ItineraryItem{{Time: "12:30", Title: "Pastéis stop", Period: PeriodLunch}}},
		},
	}
}

func newPlanningService(t *testing.T, gen Generator) *Service {
	t.Helper()
	svc := NewService(NewStore(), gen)
	if err := svc.StartPlanning(); err != nil {
		t.Fatalf("StartPlanning: %v", err)
	}
	return svc
}

func TestSubmitPreferencesSuccess(t *testing.T) {
	gen := &fakeGenerator{it: generatedItinerary()}
	svc := newPlanningService(t, gen)

	it, err := svc.SubmitPreferences(context.Background(), DefaultPreferences())
	if err != nil {
		t.Fatalf("SubmitPreferences: %v", err)
	}
	if gen.calls != 1 {
		t.Errorf("generator calls = %d, want 1", gen.calls)
	}
	if svc.State() != StateDashboard {
		t.Errorf("state = %q, want %q", svc.State(), StateDashboard)
	}
	if it.ID != "it-test-1" {
		t.Errorf("itinerary id = %q, want generated one", it.ID)
	}
}

func TestSubmitPreferencesFallsBackOnError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	svc := newPlanningService(t, gen)

	it, err := svc.SubmitPreferences(context.Background(), DefaultPreferences())
	if err != nil {
		t.Fatalf("SubmitPreferences should absorb generation errors, got %v", err)
	}
	if it.ID != FallbackID {
		t.Errorf("itinerary id = %q, want fallback %q", it.ID, FallbackID)
	}
	if svc.State() != StateDashboard {
		t.Errorf("state = %q, want %q", svc.State(), StateDashboard)
	}
}

func TestSubmitPreferencesFallsBackOnInvalidResult(t *testing.T) {
	gen := &fakeGenerator{it: &Itinerary{ID: "broken", Location: "Nowhere"}}
	svc := newPlanningService(t, gen)

	it, err := svc.SubmitPreferences(context.Background(), DefaultPreferences())
	if err != nil {
		t.Fatalf("SubmitPreferences: %v", err)
	}
	if it.ID != FallbackID {
		t.Errorf("itinerary id = %q, want fallback %q", it.ID, FallbackID)
	}
}

func TestSubmitPreferencesRejectsBadSnapshot(t *testing.T) {
	gen := &fakeGenerator{it: generatedItinerary()}
	svc := newPlanningService(t, gen)

	prefs := DefaultPreferences()
	prefs.Destination = ""
	if _, err := svc.SubmitPreferences(context.Background(), prefs); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("err = %v, want ErrBadRequest", err)
	}
	if gen.calls != 0 {
		t.Errorf("generator calls = %d, want 0 before a valid snapshot", gen.calls)
	}
	if svc.State() != StatePlanning {
		t.Errorf("state = %q, want to remain %q", svc.State(), StatePlanning)
	}
}

func TestSubmitPreferencesRequiresPlanningState(t *testing.T) {
	gen := &fakeGenerator{it: generatedItinerary()}
	svc := NewService(NewStore(), gen)

	if _, err := svc.SubmitPreferences(context.Background(), DefaultPreferences()); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
	if gen.calls != 0 {
		t.Errorf("generator calls = %d, want 0", gen.calls)
	}
}

func TestSelectDay(t *testing.T) {
	gen := &fakeGenerator{it: generatedItinerary()}
	svc := newPlanningService(t, gen)
	if _, err := svc.SubmitPreferences(context.Background(), DefaultPreferences()); err != nil {
		t.Fatalf("SubmitPreferences: %v", err)
	}

	d, err := svc.SelectDay(2)
	if err != nil {
		t.Fatalf("SelectDay(2): %v", err)
	}
	if d.DayNumber != 2 {
		t.Errorf("day = %d, want 2", d.DayNumber)
	}

	// Unknown day numbers resolve to the first day.
	d, err = svc.SelectDay(9)
	if err != nil {
		t.Fatalf("SelectDay(9): %v", err)
	}
	if d.DayNumber != 1 {
		t.Errorf("day = %d, want fallback to 1", d.DayNumber)
	}
}

func TestBriefing(t *testing.T) {
	gen := &fakeGenerator{it: generatedItinerary()}
	svc := newPlanningService(t, gen)
	if _, err := svc.SubmitPreferences(context.Background(), DefaultPreferences()); err != nil {
		t.Fatalf("SubmitPreferences: %v", err)
	}

	text, err := svc.Briefing(1)
	if err != nil {
		t.Fatalf("Briefing: %v", err)
	}
	want := "Day 1 in Lisbon. Your morning begins at 09:00 with Castle walk. "
	if text != want {
		t.Errorf("briefing = %q, want %q", text, want)
	}
}

func TestCurrentBeforeGeneration(t *testing.T) {
	svc := NewService(NewStore(), &fakeGenerator{})
	if _, err := svc.Current(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
