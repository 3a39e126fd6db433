// README: Config loader with env defaults for HTTP, AI providers, and voice settings.
package config

import (
	"os"
	"strconv"
)

type AssistantConfig struct {
	// AskThreshold is the query length above which the assistant routes to the
	// long-form reasoning path instead of grounded search. Tunable heuristic.
	AskThreshold int
}

type VoiceConfig struct {
	InputSampleRate  int
	OutputSampleRate int
	FrameSamples     int
	// OutboundQueue bounds the number of captured frames waiting to be pushed
	// upstream; overflow drops the oldest frame.
	OutboundQueue int
}

type Config struct {
	HTTP struct {
		Addr string
	}
	AI struct {
		GeminiKey string
		OpenAIKey string
		MapsKey   string
		// Transcriber selects the speech-to-text backend: "gemini" or "openai".
		Transcriber string
	}
	Assistant AssistantConfig
	Voice     VoiceConfig
}

func Load() Config {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("VOYAGER_HTTP_ADDR", ":8080")
	cfg.AI.GeminiKey = envOrError("GEMINI_API_KEY")
	cfg.AI.OpenAIKey = envOrDefault("OPENAI_API_KEY", "")
	cfg.AI.MapsKey = envOrDefault("MAPS_API_KEY", "")
	cfg.AI.Transcriber = envOrDefault("VOYAGER_TRANSCRIBER", "gemini")
	cfg.Assistant.AskThreshold = envOrDefaultInt("VOYAGER_ASSISTANT_ASK_THRESHOLD", 100)
	cfg.Voice.InputSampleRate = envOrDefaultInt("VOYAGER_VOICE_INPUT_RATE", 16000)
	cfg.Voice.OutputSampleRate = envOrDefaultInt("VOYAGER_VOICE_OUTPUT_RATE", 24000)
	cfg.Voice.FrameSamples = envOrDefaultInt("VOYAGER_VOICE_FRAME_SAMPLES", 4096)
	cfg.Voice.OutboundQueue = envOrDefaultInt("VOYAGER_VOICE_OUTBOUND_QUEUE", 64)
	return cfg
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrError(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	panic("environment variable " + key + " is required")
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
