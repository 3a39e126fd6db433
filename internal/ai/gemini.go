// README: Gemini-backed implementation of the provider surface.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	gmaps "voyager/internal/maps"
	"voyager/internal/modules/logistics"
	"voyager/internal/modules/trip"
	"voyager/internal/types"
)

const (
	generationModel = "gemini-2.5-pro"
	searchModel     = "gemini-2.5-flash"

	imagePrompt = "Analyze this travel-related image. If it's a ticket, extract details. If it's a landmark, provide history and tips."
	audioPrompt = "Transcribe the following audio exactly."
)

type GeminiProvider struct {
	client    *genai.Client
	places    *gmaps.PlacesService
	logistics *logistics.Service

	// raw REST access for search grounding, which the SDK does not expose
	apiKey     string
	httpClient *http.Client
	searchBase string
}

func NewGeminiProvider(ctx context.Context, apiKey string, places *gmaps.PlacesService, lg *logistics.Service) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("ai: create gemini client: %w", err)
	}
	return &GeminiProvider{
		client:     client,
		places:     places,
		logistics:  lg,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		searchBase: searchEndpoint,
	}, nil
}

func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

// GenerateItinerary asks the model for the day plans and essentials, then
// overlays the identifiers and the locally computed door-to-door journey. The
// model never controls the id or the transport legs.
func (p *GeminiProvider) GenerateItinerary(ctx context.Context, prefs trip.Preferences) (*trip.Itinerary, error) {
	model := p.client.GenerativeModel(generationModel)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(8192)

	resp, err := model.GenerateContent(ctx, genai.Text(itineraryPrompt(prefs)))
	if err != nil {
		return nil, fmt.Errorf("ai: generate itinerary: %w", err)
	}
	raw, err := textFrom(resp)
	if err != nil {
		return nil, err
	}

	var it trip.Itinerary
	if err := json.Unmarshal([]byte(cleanJSONString(raw)), &it); err != nil {
		return nil, fmt.Errorf("ai: decode itinerary: %w", err)
	}

	it.ID = uuid.NewString()
	it.Status = trip.StatusGenerated
	it.Location = prefs.Destination
	it.DoorToDoor = p.logistics.Optimize(prefs)
	return &it, nil
}

func itineraryPrompt(prefs trip.Preferences) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are the Voyager.ai Orchestration Engine.\n")
	fmt.Fprintf(&b, "Create a comprehensive travel itinerary for a %d-day trip to %s.\n", prefs.Duration, prefs.Destination)
	fmt.Fprintf(&b, "CONTEXT: Postcode %s, %s trip, %s mood, %s budget.\n", prefs.Postcode, prefs.Companion, prefs.Mood, prefs.Budget)
	b.WriteString(`REQUIREMENTS: Valid JSON matching this schema. Use real locations.
{
  "location": string,
  "dates": string,
  "days": [{"dayNumber": int, "label": string, "items": [{"time": string, "period": "MORNING"|"LUNCH"|"AFTERNOON"|"EVENING", "title": string, "description": string, "meta": {"wifi": string, "vibe": string, "payment": string, "distance": string}}]}],
  "accommodation": {"name": string, "location": string, "imageUrl": string, "bookingStatus": string},
  "essentials": {
    "esim": [{"provider": string, "plan": string, "price": string, "coverage": string}],
    "currency": {"from": string, "to": string, "rate": number, "recommendation": string},
    "souvenir": {"name": string, "description": string},
    "weather": {"forecast": string, "temp": string, "icon": string}
  },
  "aiInsights": [{"title": string, "message": string, "priority": "LOW"|"MEDIUM"|"HIGH"}]
}
Every day from 1 to the trip length must appear exactly once with at least one item.`)
	return b.String()
}

// Ask handles long-form questions with a raised output budget.
func (p *GeminiProvider) Ask(ctx context.Context, query string) (string, error) {
	model := p.client.GenerativeModel(generationModel)
	model.SetMaxOutputTokens(8192)

	resp, err := model.GenerateContent(ctx, genai.Text(query))
	if err != nil {
		return "", fmt.Errorf("ai: ask: %w", err)
	}
	return textFrom(resp)
}

// SearchPlaces grounds a local query on Places results near the given point.
// The matched places are fed into the prompt and returned as citations. With
// no maps client configured the call fails and the assistant degrades.
func (p *GeminiProvider) SearchPlaces(ctx context.Context, query string, at types.LatLng) (Answer, error) {
	if p.places == nil {
		return Answer{}, ErrNoMapsClient
	}
	places, err := p.places.Nearby(ctx, query, at)
	if err != nil {
		return Answer{}, fmt.Errorf("ai: place lookup: %w", err)
	}

	var b strings.Builder
	b.WriteString("You are a local travel concierge. Answer the user's question using only the places listed below.\n")
	fmt.Fprintf(&b, "QUESTION: %s\n", query)
	b.WriteString("NEARBY PLACES:\n")
	for _, pl := range places {
		fmt.Fprintf(&b, "- %s (%s), rating %.1f\n", pl.Name, pl.Address, pl.Rating)
	}

	model := p.client.GenerativeModel(searchModel)
	resp, err := model.GenerateContent(ctx, genai.Text(b.String()))
	if err != nil {
		return Answer{}, fmt.Errorf("ai: place search: %w", err)
	}
	text, err := textFrom(resp)
	if err != nil {
		return Answer{}, err
	}

	answer := Answer{Text: text}
	for _, pl := range places {
		answer.Citations = append(answer.Citations, Citation{
			Kind:  CitationPlace,
			Title: pl.Name,
			URI:   pl.MapsURL,
		})
	}
	return answer, nil
}

// AnalyzeImage extracts travel-relevant details from an uploaded image.
func (p *GeminiProvider) AnalyzeImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	model := p.client.GenerativeModel(generationModel)
	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: data},
		genai.Text(imagePrompt),
	)
	if err != nil {
		return "", fmt.Errorf("ai: analyze image: %w", err)
	}
	return textFrom(resp)
}

// TranscribeAudio transcribes a WAV clip through the multimodal model.
func (p *GeminiProvider) TranscribeAudio(ctx context.Context, wav []byte) (string, error) {
	model := p.client.GenerativeModel(searchModel)
	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: "audio/wav", Data: wav},
		genai.Text(audioPrompt),
	)
	if err != nil {
		return "", fmt.Errorf("ai: transcribe audio: %w", err)
	}
	return textFrom(resp)
}

func textFrom(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}

// cleanJSONString strips markdown fences the model sometimes wraps around
// JSON output.
func cleanJSONString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
