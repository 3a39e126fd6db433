// README: Assistant service: routes queries to the right model surface and
// keeps the conversation log.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"voyager/internal/ai"
	"voyager/internal/modules/usage"
	"voyager/internal/types"
)

// Locator resolves the traveler's current position for place searches.
type Locator interface {
	Locate(ctx context.Context) (types.LatLng, error)
}

type Service struct {
	store    *Store
	provider ai.Provider
	locator  Locator
	usage    *usage.Service

	// queries longer than this skip grounding and go to the long-form model
	askThreshold int

	mu       sync.Mutex
	inflight map[string]bool
}

func NewService(store *Store, provider ai.Provider, locator Locator, u *usage.Service, askThreshold int) *Service {
	if askThreshold <= 0 {
		askThreshold = 100
	}
	return &Service{
		store:        store,
		provider:     provider,
		locator:      locator,
		usage:        u,
		askThreshold: askThreshold,
		inflight:     make(map[string]bool),
	}
}

func (s *Service) acquire(convID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[convID] {
		return ErrBusy
	}
	s.inflight[convID] = true
	return nil
}

func (s *Service) release(convID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, convID)
}

// Send records the user message, routes it, and records the reply. At most
// one send per conversation may be in flight. A non-nil position overrides
// the configured locator for place searches.
func (s *Service) Send(ctx context.Context, convID, text string, at *types.LatLng) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}
	if err := s.acquire(convID); err != nil {
		return Message{}, err
	}
	defer s.release(convID)

	if err := s.usage.UseToken(convID); err != nil {
		return Message{}, err
	}

	s.store.Append(convID, Message{Role: RoleUser, Content: text})

	reply := s.answer(ctx, text, at)
	return s.store.Append(convID, reply), nil
}

// answer implements the routing heuristic: long queries get the long-form
// model, short local-sounding queries get place grounding, everything else
// gets web grounding. Grounding failures degrade to a fixed notice instead
// of an error.
func (s *Service) answer(ctx context.Context, text string, at *types.LatLng) Message {
	if len(text) > s.askThreshold {
		out, err := s.provider.Ask(ctx, text)
		if err != nil {
			log.Printf("assistant: long-form query failed: %v", err)
			return Message{Role: RoleAssistant, Content: DegradedMessage}
		}
		return Message{Role: RoleAssistant, Content: out}
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "near") || strings.Contains(lower, "restaurant") {
		answer, err := s.searchPlaces(ctx, text, at)
		if err != nil {
			log.Printf("assistant: place search failed: %v", err)
			return Message{Role: RoleAssistant, Content: DegradedMessage}
		}
		return Message{Role: RoleAssistant, Content: answer.Text, Citations: answer.Citations}
	}

	answer, err := s.provider.SearchWeb(ctx, text)
	if err != nil {
		log.Printf("assistant: web search failed: %v", err)
		return Message{Role: RoleAssistant, Content: DegradedMessage}
	}
	return Message{Role: RoleAssistant, Content: answer.Text, Citations: answer.Citations}
}

func (s *Service) searchPlaces(ctx context.Context, text string, at *types.LatLng) (ai.Answer, error) {
	if at == nil {
		pos, err := s.locator.Locate(ctx)
		if err != nil {
			return ai.Answer{}, fmt.Errorf("locate: %w", err)
		}
		at = &pos
	}
	return s.provider.SearchPlaces(ctx, text, *at)
}

// AnalyzeImage records an image turn and the model's reading of it. A model
// failure degrades to the fixed notice, like text grounding failures do.
func (s *Service) AnalyzeImage(ctx context.Context, convID string, data []byte, mimeType string) (Message, error) {
	if err := s.acquire(convID); err != nil {
		return Message{}, err
	}
	defer s.release(convID)

	if err := s.usage.UseToken(convID); err != nil {
		return Message{}, err
	}

	s.store.Append(convID, Message{Role: RoleUser, Kind: KindImage, Content: ImagePlaceholder})

	out, err := s.provider.AnalyzeImage(ctx, data, mimeType)
	if err != nil {
		log.Printf("assistant: analyze image failed: %v", err)
		return s.store.Append(convID, Message{Role: RoleAssistant, Content: DegradedMessage}), nil
	}
	return s.store.Append(convID, Message{Role: RoleAssistant, Content: out}), nil
}

// History returns the conversation log, seeding the greeting on first access.
func (s *Service) History(convID string) []Message {
	return s.store.History(convID)
}

type noLocator struct{}

func (noLocator) Locate(context.Context) (types.LatLng, error) {
	return types.LatLng{}, errors.New("no position reported")
}

// NoLocator is the fallback when clients are expected to report their own
// position with each message.
func NoLocator() Locator {
	return noLocator{}
}
