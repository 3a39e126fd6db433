// README: Provider seams for the language model, grounded search, and voice
// backends.
package ai

import (
	"context"
	"errors"

	"voyager/internal/types"
)

var (
	ErrEmptyResponse = errors.New("model returned no content")
	ErrNoTranscript  = errors.New("no transcriber configured")
	ErrNoMapsClient  = errors.New("no maps client configured")
)

type CitationKind string

const (
	CitationWeb   CitationKind = "web"
	CitationPlace CitationKind = "place"
)

// Citation points at the web page or mapped place an answer was grounded on.
type Citation struct {
	Kind  CitationKind `json:"kind"`
	Title string       `json:"title"`
	URI   string       `json:"uri"`
}

// Answer is a grounded model response.
type Answer struct {
	Text      string     `json:"text"`
	Citations []Citation `json:"citations,omitempty"`
}

// Provider is the full language-model surface the assistant depends on.
// Itinerary generation lives on the same implementation but is consumed
// through trip.Generator to keep the trip module decoupled from this package.
type Provider interface {
	Ask(ctx context.Context, query string) (string, error)
	SearchWeb(ctx context.Context, query string) (Answer, error)
	SearchPlaces(ctx context.Context, query string, at types.LatLng) (Answer, error)
	AnalyzeImage(ctx context.Context, data []byte, mimeType string) (string, error)
}

// Transcriber converts a recorded WAV clip into text.
type Transcriber interface {
	TranscribeAudio(ctx context.Context, wav []byte) (string, error)
}

// Synthesizer renders text as playable audio.
type Synthesizer interface {
	SynthesizeSpeech(ctx context.Context, text string) ([]byte, error)
}
