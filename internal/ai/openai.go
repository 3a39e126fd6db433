// README: OpenAI-backed voice pipeline: Whisper transcription and TTS.
package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIVoice struct {
	client *openai.Client
}

func NewOpenAIVoice(apiKey string) *OpenAIVoice {
	return &OpenAIVoice{client: openai.NewClient(apiKey)}
}

func (v *OpenAIVoice) TranscribeAudio(ctx context.Context, wav []byte) (string, error) {
	resp, err := v.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   bytes.NewReader(wav),
		FilePath: "clip.wav",
	})
	if err != nil {
		return "", fmt.Errorf("ai: whisper transcription: %w", err)
	}
	return resp.Text, nil
}

func (v *OpenAIVoice) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	resp, err := v.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.TTSModel1,
		Input: text,
		Voice: openai.VoiceNova,
	})
	if err != nil {
		return nil, fmt.Errorf("ai: speech synthesis: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("ai: read synthesized audio: %w", err)
	}
	return audio, nil
}
