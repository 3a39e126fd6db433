// README: Bidirectional live audio stream against the Gemini Live API.
package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

const (
	liveEndpoint = "wss://generativelanguage.googleapis.com/ws/google.ai.generativelanguage.v1alpha.GenerativeService.BidiGenerateContent"
	liveModel    = "models/gemini-2.0-flash-exp"
)

var ErrStreamClosed = errors.New("live stream closed")

// LiveStream is one live voice conversation. SendAudio carries microphone
// PCM upstream; Recv blocks for the next synthesized audio chunk.
type LiveStream interface {
	SendAudio(pcm []byte) error
	Recv() ([]byte, error)
	Close() error
}

// LiveDialer opens live voice conversations.
type LiveDialer interface {
	Dial(ctx context.Context, persona string) (LiveStream, error)
}

type GeminiLiveDialer struct {
	apiKey     string
	inputRate  int
	outputRate int
}

func NewGeminiLiveDialer(apiKey string, inputRate, outputRate int) *GeminiLiveDialer {
	return &GeminiLiveDialer{apiKey: apiKey, inputRate: inputRate, outputRate: outputRate}
}

type livePart struct {
	Text       string     `json:"text,omitempty"`
	InlineData *liveChunk `json:"inlineData,omitempty"`
}

type liveChunk struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type liveSetup struct {
	Setup liveSetupBody `json:"setup"`
}

type liveSetupBody struct {
	Model             string                 `json:"model"`
	GenerationConfig  liveGenerationConfig   `json:"generationConfig"`
	SystemInstruction *liveSystemInstruction `json:"systemInstruction,omitempty"`
}

type liveGenerationConfig struct {
	ResponseModalities []string `json:"responseModalities"`
}

type liveSystemInstruction struct {
	Parts []livePart `json:"parts"`
}

type liveInput struct {
	RealtimeInput liveRealtimeInput `json:"realtimeInput"`
}

type liveRealtimeInput struct {
	MediaChunks []liveChunk `json:"mediaChunks"`
}

type liveServerMessage struct {
	SetupComplete *struct{}          `json:"setupComplete,omitempty"`
	ServerContent *liveServerContent `json:"serverContent,omitempty"`
}

type liveServerContent struct {
	ModelTurn    *liveModelTurn `json:"modelTurn,omitempty"`
	TurnComplete bool           `json:"turnComplete,omitempty"`
}

type liveModelTurn struct {
	Parts []livePart `json:"parts"`
}

// Dial opens the websocket, sends the setup frame, and waits for the server
// to acknowledge before returning the stream.
func (d *GeminiLiveDialer) Dial(ctx context.Context, persona string) (LiveStream, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, liveEndpoint+"?key="+d.apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("ai: dial live endpoint: %w", err)
	}

	setup := liveSetup{Setup: liveSetupBody{
		Model:            liveModel,
		GenerationConfig: liveGenerationConfig{ResponseModalities: []string{"AUDIO"}},
	}}
	if persona != "" {
		setup.Setup.SystemInstruction = &liveSystemInstruction{Parts: []livePart{{Text: persona}}}
	}
	if err := conn.WriteJSON(setup); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ai: send live setup: %w", err)
	}

	var ack liveServerMessage
	if err := conn.ReadJSON(&ack); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ai: live setup ack: %w", err)
	}
	if ack.SetupComplete == nil {
		conn.Close()
		return nil, errors.New("ai: live setup rejected")
	}

	return &geminiLiveStream{conn: conn, inputRate: d.inputRate}, nil
}

type geminiLiveStream struct {
	conn      *websocket.Conn
	inputRate int

	writeMu sync.Mutex
	closed  bool

	// buffered chunks decoded from a model turn but not yet delivered
	pending [][]byte
}

func (s *geminiLiveStream) SendAudio(pcm []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed {
		return ErrStreamClosed
	}

	var frame liveInput
	frame.RealtimeInput.MediaChunks = []liveChunk{{
		MIMEType: fmt.Sprintf("audio/pcm;rate=%d", s.inputRate),
		Data:     base64.StdEncoding.EncodeToString(pcm),
	}}
	if err := s.conn.WriteJSON(frame); err != nil {
		return fmt.Errorf("ai: send live audio: %w", err)
	}
	return nil
}

// Recv returns the next synthesized chunk in arrival order. Recv is not safe
// for concurrent use; the voice session owns the single read loop.
func (s *geminiLiveStream) Recv() ([]byte, error) {
	for len(s.pending) == 0 {
		var msg liveServerMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			return nil, fmt.Errorf("ai: read live frame: %w", err)
		}
		if msg.ServerContent == nil || msg.ServerContent.ModelTurn == nil {
			continue
		}
		for _, part := range msg.ServerContent.ModelTurn.Parts {
			if part.InlineData == nil {
				continue
			}
			pcm, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("ai: decode live audio: %w", err)
			}
			s.pending = append(s.pending, pcm)
		}
	}

	chunk := s.pending[0]
	s.pending = s.pending[1:]
	return chunk, nil
}

func (s *geminiLiveStream) Close() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return s.conn.Close()
}
