// README: Trip aggregate, preference snapshot, and app-state definitions.
package trip

import (
	"errors"
	"fmt"
)

type Mood string

const (
	MoodAdventurous Mood = "Adventurous"
	MoodRelaxed     Mood = "Relaxed"
	MoodCultural    Mood = "Cultural"
	MoodLuxury      Mood = "Luxury"
)

type Companion string

const (
	CompanionSolo    Companion = "Solo"
	CompanionPartner Companion = "Partner"
	CompanionFamily  Companion = "Family"
	CompanionFriends Companion = "Friends"
)

type Budget string

const (
	BudgetEconomy  Budget = "Economy"
	BudgetBusiness Budget = "Business"
	BudgetElite    Budget = "Elite"
)

type TravelMode string

const (
	ModeCheapest TravelMode = "Cheapest"
	ModeFastest  TravelMode = "Fastest"
	ModeBalanced TravelMode = "Balanced"
)

// Preferences is the wizard's output. It is treated as an immutable snapshot:
// the service copies it on submit and nothing mutates it afterwards.
type Preferences struct {
	Postcode      string     `json:"postcode"`
	Destination   string     `json:"destination"`
	Mood          Mood       `json:"mood"`
	Companion     Companion  `json:"companion"`
	Budget        Budget     `json:"budget"`
	Duration      int        `json:"duration"`
	StartDate     string     `json:"startDate,omitempty"`
	TravelerCount int        `json:"travelerCount"`
	Dietary       []string   `json:"dietary,omitempty"`
	TravelMode    TravelMode `json:"travelMode,omitempty"`
}

func (p Preferences) Validate() error {
	if p.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrBadRequest)
	}
	if p.Duration < 1 || p.Duration > 30 {
		return fmt.Errorf("%w: duration must be 1-30 days", ErrBadRequest)
	}
	if p.TravelerCount < 1 {
		return fmt.Errorf("%w: traveler count must be positive", ErrBadRequest)
	}
	switch p.Mood {
	case MoodAdventurous, MoodRelaxed, MoodCultural, MoodLuxury:
	default:
		return fmt.Errorf("%w: unknown mood %q", ErrBadRequest, p.Mood)
	}
	switch p.Companion {
	case CompanionSolo, CompanionPartner, CompanionFamily, CompanionFriends:
	default:
		return fmt.Errorf("%w: unknown companion %q", ErrBadRequest, p.Companion)
	}
	switch p.Budget {
	case BudgetEconomy, BudgetBusiness, BudgetElite:
	default:
		return fmt.Errorf("%w: unknown budget %q", ErrBadRequest, p.Budget)
	}
	return nil
}

// DefaultPreferences mirrors the wizard's initial selection.
func DefaultPreferences() Preferences {
	return Preferences{
		Destination:   "Tokyo & Kyoto",
		Mood:          MoodCultural,
		Companion:     CompanionPartner,
		Budget:        BudgetElite,
		Duration:      4,
		TravelerCount: 2,
	}
}

type Status string

const (
	StatusDraft      Status = "DRAFT"
	StatusPlanning   Status = "PLANNING"
	StatusOptimizing Status = "OPTIMIZING"
	StatusGenerated  Status = "GENERATED"
	StatusActive     Status = "ACTIVE"
)

type SegmentType string

const (
	SegmentTaxi   SegmentType = "TAXI"
	SegmentTrain  SegmentType = "TRAIN"
	SegmentFlight SegmentType = "FLIGHT"
	SegmentWalk   SegmentType = "WALK"
	SegmentBus    SegmentType = "BUS"
)

type TransportSegment struct {
	Type      SegmentType `json:"type"`
	Label     string      `json:"label"`
	Duration  string      `json:"duration"`
	Cost      string      `json:"cost"`
	Optimized bool        `json:"optimized"`
	Notes     string      `json:"notes,omitempty"`
}

type Period string

const (
	PeriodMorning   Period = "MORNING"
	PeriodLunch     Period = "LUNCH"
	PeriodAfternoon Period = "AFTERNOON"
	PeriodEvening   Period = "EVENING"
)

type ItemMeta struct {
	Wifi     string `json:"wifi,omitempty"`
	Vibe     string `json:"vibe,omitempty"`
	Payment  string `json:"payment,omitempty"`
	Distance string `json:"distance,omitempty"`
}

type ItineraryItem struct {
	Time        string    `json:"time"`
	Period      Period    `json:"period"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Meta        *ItemMeta `json:"meta,omitempty"`
}

type DayPlan struct {
	DayNumber int             `json:"dayNumber"`
	Label     string          `json:"label"`
	Items     []ItineraryItem `json:"items"`
}

type DoorToDoor struct {
	Outbound  []TransportSegment `json:"outbound"`
	Inbound   []TransportSegment `json:"inbound"`
	TotalCost string             `json:"totalCost"`
	TotalTime string             `json:"totalTime"`
}

type Accommodation struct {
	Name          string `json:"name"`
	Location      string `json:"location"`
	ImageURL      string `json:"imageUrl"`
	BookingStatus string `json:"bookingStatus"`
}

type ESIMOption struct {
	Provider string `json:"provider"`
	Plan     string `json:"plan"`
	Price    string `json:"price"`
	Coverage string `json:"coverage"`
}

type CurrencyInfo struct {
	From           string  `json:"from"`
	To             string  `json:"to"`
	Rate           float64 `json:"rate"`
	Recommendation string  `json:"recommendation"`
}

type SouvenirTip struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type WeatherInfo struct {
	Forecast string `json:"forecast"`
	Temp     string `json:"temp"`
	Icon     string `json:"icon"`
}

type Essentials struct {
	ESIM     []ESIMOption `json:"esim"`
	Currency CurrencyInfo `json:"currency"`
	Souvenir SouvenirTip  `json:"souvenir"`
	Weather  WeatherInfo  `json:"weather"`
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

type Insight struct {
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Priority Priority `json:"priority"`
}

// Itinerary is produced once per generation attempt and replaced wholesale on
// success or fallback, never partially mutated.
type Itinerary struct {
	ID            string        `json:"id"`
	Location      string        `json:"location"`
	Dates         string        `json:"dates"`
	Status        Status        `json:"status"`
	Days          []DayPlan     `json:"days"`
	DoorToDoor    DoorToDoor    `json:"doorToDoor"`
	Accommodation Accommodation `json:"accommodation"`
	Essentials    Essentials    `json:"essentials"`
	AIInsights    []Insight     `json:"aiInsights"`
}

// Day resolves a day plan by number, defaulting to the first day when the
// requested number is not present.
func (it *Itinerary) Day(n int) *DayPlan {
	if it == nil || len(it.Days) == 0 {
		return nil
	}
	for i := range it.Days {
		if it.Days[i].DayNumber == n {
			return &it.Days[i]
		}
	}
	return &it.Days[0]
}

var ErrInvalidItinerary = errors.New("invalid itinerary")

// Validate enforces the rendering contract: the fallback fixture is held to
// the same schema as a live-generated itinerary.
func Validate(it *Itinerary) error {
	if it == nil {
		return fmt.Errorf("%w: nil", ErrInvalidItinerary)
	}
	if it.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidItinerary)
	}
	if it.Location == "" {
		return fmt.Errorf("%w: missing location", ErrInvalidItinerary)
	}
	if len(it.Days) == 0 {
		return fmt.Errorf("%w: no days", ErrInvalidItinerary)
	}
	seen := make(map[int]bool, len(it.Days))
	for _, d := range it.Days {
		if d.DayNumber < 1 {
			return fmt.Errorf("%w: day number %d out of range", ErrInvalidItinerary, d.DayNumber)
		}
		if seen[d.DayNumber] {
			return fmt.Errorf("%w: duplicate day number %d", ErrInvalidItinerary, d.DayNumber)
		}
		seen[d.DayNumber] = true
		if len(d.Items) == 0 {
			return fmt.Errorf("%w: day %d has no items", ErrInvalidItinerary, d.DayNumber)
		}
	}
	return nil
}

// AppState is the top-level page state.
type AppState string

const (
	StateLanding    AppState = "landing"
	StatePlanning   AppState = "planning"
	StateGenerating AppState = "generating"
	StateDashboard  AppState = "dashboard"
)

// AllowedTransitions represents the app state flow (diagram) as code.
// Dashboard is terminal; the assistant overlay and day selector are sub-state
// and never re-enter this machine.
var AllowedTransitions = map[AppState][]AppState{
	StateLanding:    {StatePlanning},
	StatePlanning:   {StateGenerating},
	StateGenerating: {StateDashboard},
}

func CanTransition(from, to AppState) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
