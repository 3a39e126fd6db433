// README: Transcriber backend selection.
package ai

import "fmt"

// NewTranscriber picks the transcription backend named in config. The Gemini
// provider doubles as a transcriber; OpenAI is available where a dedicated
// speech model is preferred.
func NewTranscriber(backend string, gemini *GeminiProvider, openaiKey string) (Transcriber, error) {
	switch backend {
	case "gemini":
		return gemini, nil
	case "openai":
		if openaiKey == "" {
			return nil, fmt.Errorf("ai: openai transcriber requires an api key: %w", ErrNoTranscript)
		}
		return NewOpenAIVoice(openaiKey), nil
	default:
		return nil, fmt.Errorf("ai: unknown transcriber backend %q", backend)
	}
}
