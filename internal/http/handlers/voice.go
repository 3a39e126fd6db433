// README: Voice endpoints: push-to-talk transcription and the live audio
// bridge.
package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"voyager/internal/ai"
	"voyager/internal/modules/assistant"
	"voyager/internal/modules/voice"
)

// ConciergePersona steers the live voice model.
const ConciergePersona = "You are a warm, efficient travel concierge. Help with directions, tickets, and bookings."

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

type VoiceHandler struct {
	transcriber ai.Transcriber
	dialer      ai.LiveDialer
	queueSize   int
}

func NewVoiceHandler(transcriber ai.Transcriber, dialer ai.LiveDialer, queueSize int) *VoiceHandler {
	if queueSize <= 0 {
		queueSize = voice.DefaultOutboundQueue
	}
	return &VoiceHandler{transcriber: transcriber, dialer: dialer, queueSize: queueSize}
}

// Transcribe accepts a WAV clip body and returns its transcript.
func (h *VoiceHandler) Transcribe(c *gin.Context) {
	wav, err := io.ReadAll(c.Request.Body)
	if err != nil || len(wav) == 0 {
		writeError(c, assistant.ErrEmptyMessage)
		return
	}

	text, err := h.transcriber.TranscribeAudio(c.Request.Context(), wav)
	if err != nil {
		writeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"text": text})
}

// Live upgrades to a websocket and runs a voice session over it: binary
// frames from the client are the microphone, synthesized chunks flow back as
// binary messages. The client disconnecting ends the session.
func (h *VoiceHandler) Live(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	capture := newWSCapture(conn)
	sess := voice.NewSession(h.dialer, staticOpener{capture}, ConciergePersona, h.queueSize)
	if err := sess.Start(c.Request.Context()); err != nil {
		log.Printf("voice: live session start failed: %v", err)
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "upstream unavailable"))
		return
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for chunk := range sess.Output() {
			if err := conn.WriteMessage(websocket.BinaryMessage, chunk.PCM); err != nil {
				return
			}
		}
	}()

	// Unblocks when the client disconnects or the session tears itself down
	// after an upstream failure. Stop then reports ErrIdle for the latter.
	<-capture.done
	if err := sess.Stop(); err != nil && !errors.Is(err, voice.ErrIdle) {
		log.Printf("voice: live session stop: %v", err)
	}
	wg.Wait()

	if n := sess.Dropped(); n > 0 {
		log.Printf("voice: dropped %d chunks, client fell behind", n)
	}
}

type staticOpener struct {
	capture voice.CaptureStream
}

func (o staticOpener) Open(context.Context) (voice.CaptureStream, error) {
	return o.capture, nil
}

// wsCapture adapts the client websocket's binary PCM16 frames to the capture
// interface. It is the connection's only reader.
type wsCapture struct {
	conn *websocket.Conn
	done chan struct{}
	once sync.Once
}

func newWSCapture(conn *websocket.Conn) *wsCapture {
	return &wsCapture{conn: conn, done: make(chan struct{})}
}

func (c *wsCapture) ReadFrame() ([]float32, error) {
	for {
		kind, frame, err := c.conn.ReadMessage()
		if err != nil {
			c.once.Do(func() { close(c.done) })
			return nil, io.EOF
		}
		if kind != websocket.BinaryMessage || len(frame) == 0 {
			continue
		}
		return voice.DecodePCM16(frame[:len(frame)-len(frame)%2])
	}
}

// Close also closes the websocket so a ReadFrame blocked in ReadMessage
// returns. Without that, a session torn down by an upstream failure would
// wait forever for the microphone pump.
func (c *wsCapture) Close() error {
	c.once.Do(func() { close(c.done) })
	return c.conn.Close()
}
