// README: CLI exercising the concierge pipeline end to end: itinerary
// generation, a grounded question, and optional clip transcription.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"voyager/internal/ai"
	"voyager/internal/config"
	"voyager/internal/maps"
	"voyager/internal/modules/logistics"
	"voyager/internal/modules/trip"
	"voyager/internal/modules/voice"
)

func main() {
	question := flag.String("question", "latest events in Tokyo", "question for the concierge")
	clip := flag.String("clip", "", "path to a raw PCM16 clip to transcribe (16 kHz mono)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}
	cfg := config.Load()
	ctx := context.Background()

	// Place grounding is optional here, the demo only needs web search.
	var places *maps.PlacesService
	if cfg.AI.MapsKey != "" {
		var err error
		places, err = maps.NewPlacesService(cfg.AI.MapsKey)
		if err != nil {
			log.Fatalf("places service: %v", err)
		}
	}
	provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, places, logistics.NewService())
	if err != nil {
		log.Fatalf("gemini provider: %v", err)
	}
	defer provider.Close()

	trips := trip.NewService(trip.NewStore(), provider)
	if err := trips.StartPlanning(); err != nil {
		log.Fatalf("start planning: %v", err)
	}
	it, err := trips.SubmitPreferences(ctx, trip.DefaultPreferences())
	if err != nil {
		log.Fatalf("submit preferences: %v", err)
	}
	fmt.Printf("itinerary %s: %s, %d days\n", it.ID, it.Location, len(it.Days))

	briefing, err := trips.Briefing(1)
	if err != nil {
		log.Fatalf("briefing: %v", err)
	}
	fmt.Println("briefing:", briefing)

	answer, err := provider.SearchWeb(ctx, *question)
	if err != nil {
		log.Fatalf("search: %v", err)
	}
	fmt.Println("concierge:", answer.Text)
	for _, c := range answer.Citations {
		fmt.Printf("  [%s] %s\n", c.Kind, c.URI)
	}

	if *clip != "" {
		transcribe(ctx, cfg, provider, *clip)
	}
}

// transcribe runs the push-to-talk recorder over a PCM file standing in for
// the microphone.
func transcribe(ctx context.Context, cfg config.Config, provider *ai.GeminiProvider, path string) {
	transcriber, err := ai.NewTranscriber(cfg.AI.Transcriber, provider, cfg.AI.OpenAIKey)
	if err != nil {
		log.Fatalf("transcriber: %v", err)
	}

	rec := voice.NewRecorder(fileOpener{path: path}, transcriber)
	if err := rec.Start(ctx); err != nil {
		log.Fatalf("start recorder: %v", err)
	}
	text, err := rec.Stop(ctx)
	if err != nil {
		log.Fatalf("stop recorder: %v", err)
	}
	fmt.Println("transcript:", text)
}

type fileOpener struct {
	path string
}

func (o fileOpener) Open(_ context.Context) (voice.CaptureStream, error) {
	f, err := os.Open(o.path)
	if err != nil {
		return nil, err
	}
	return &fileCapture{f: f}, nil
}

type fileCapture struct {
	f *os.File
}

func (c *fileCapture) ReadFrame() ([]float32, error) {
	buf := make([]byte, voice.FrameSamples*2)
	n, err := io.ReadFull(c.f, buf)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return nil, err
	}
	return voice.DecodePCM16(buf[:n-n%2])
}

func (c *fileCapture) Close() error {
	return c.f.Close()
}
