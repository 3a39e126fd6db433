// README: Voyager API server entrypoint.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"voyager/internal/ai"
	"voyager/internal/config"
	voyagerhttp "voyager/internal/http"
	"voyager/internal/http/handlers"
	"voyager/internal/maps"
	"voyager/internal/modules/assistant"
	"voyager/internal/modules/logistics"
	"voyager/internal/modules/trip"
	"voyager/internal/modules/usage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Without a maps key place grounding is unavailable and local queries
	// degrade; everything else still runs.
	var places *maps.PlacesService
	if cfg.AI.MapsKey != "" {
		var err error
		places, err = maps.NewPlacesService(cfg.AI.MapsKey)
		if err != nil {
			log.Fatalf("places service: %v", err)
		}
	} else {
		log.Println("MAPS_API_KEY not set, place search disabled")
	}

	logisticsSvc := logistics.NewService()
	provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, places, logisticsSvc)
	if err != nil {
		log.Fatalf("gemini provider: %v", err)
	}
	defer provider.Close()

	transcriber, err := ai.NewTranscriber(cfg.AI.Transcriber, provider, cfg.AI.OpenAIKey)
	if err != nil {
		log.Fatalf("transcriber: %v", err)
	}

	var synthesizer ai.Synthesizer
	if cfg.AI.OpenAIKey != "" {
		synthesizer = ai.NewOpenAIVoice(cfg.AI.OpenAIKey)
	}

	dialer := ai.NewGeminiLiveDialer(cfg.AI.GeminiKey, cfg.Voice.InputSampleRate, cfg.Voice.OutputSampleRate)

	trips := trip.NewService(trip.NewStore(), provider)
	assistantSvc := assistant.NewService(
		assistant.NewStore(),
		provider,
		assistant.NoLocator(),
		usage.NewService(usage.NewStore(), 0),
		cfg.Assistant.AskThreshold,
	)

	router := voyagerhttp.NewRouter(
		handlers.NewTripHandler(trips),
		handlers.NewAssistantHandler(assistantSvc),
		handlers.NewVoiceHandler(transcriber, dialer, cfg.Voice.OutboundQueue),
		handlers.NewBriefingHandler(trips, synthesizer),
	)

	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}
	go func() {
		log.Printf("listening on %s", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
