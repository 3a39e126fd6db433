// README: Push-to-talk recorder: capture, stop, transcribe.
package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"voyager/internal/ai"
)

var (
	ErrBusy        = errors.New("voice pipeline already active")
	ErrIdle        = errors.New("voice pipeline not active")
	ErrMediaAccess = errors.New("microphone access denied")
)

// CaptureStream delivers microphone frames as float32 sample slices.
type CaptureStream interface {
	ReadFrame() ([]float32, error)
	Close() error
}

// CaptureOpener opens the microphone. Implementations wrap platform audio;
// tests substitute fixed frame sequences.
type CaptureOpener interface {
	Open(ctx context.Context) (CaptureStream, error)
}

// Recorder runs the push-to-talk flow: Start captures frames until Stop,
// which hands the accumulated clip to the transcriber. A recorder serves one
// clip at a time but can be reused after Stop.
type Recorder struct {
	opener      CaptureOpener
	transcriber ai.Transcriber

	mu        sync.Mutex
	capture   CaptureStream
	recording bool
	done      chan struct{}
	samples   []float32
	readErr   error
}

func NewRecorder(opener CaptureOpener, transcriber ai.Transcriber) *Recorder {
	return &Recorder{opener: opener, transcriber: transcriber}
}

// Start opens the microphone and begins accumulating frames.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return ErrBusy
	}

	capture, err := r.opener.Open(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMediaAccess, err)
	}

	r.capture = capture
	r.recording = true
	r.samples = nil
	r.readErr = nil
	r.done = make(chan struct{})
	go r.pump(capture, r.done)
	return nil
}

func (r *Recorder) pump(capture CaptureStream, done chan struct{}) {
	defer close(done)
	for {
		frame, err := capture.ReadFrame()
		if err != nil {
			r.mu.Lock()
			// EOF and close both mean the clip ended
			if !errors.Is(err, io.EOF) && !errors.Is(err, fs.ErrClosed) {
				r.readErr = err
			}
			r.mu.Unlock()
			return
		}
		r.mu.Lock()
		r.samples = append(r.samples, frame...)
		r.mu.Unlock()
	}
}

// Stop closes the microphone, waits for the pump to drain, and transcribes
// the clip. The recorder returns to idle whether or not transcription
// succeeds.
func (r *Recorder) Stop(ctx context.Context) (string, error) {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		return "", ErrIdle
	}
	capture := r.capture
	done := r.done
	r.mu.Unlock()

	capture.Close()
	<-done

	r.mu.Lock()
	r.recording = false
	r.capture = nil
	samples := r.samples
	r.samples = nil
	readErr := r.readErr
	r.mu.Unlock()

	if readErr != nil {
		return "", fmt.Errorf("voice: capture failed: %w", readErr)
	}

	wav := WrapWAV(EncodePCM16(samples), InputSampleRate)
	text, err := r.transcriber.TranscribeAudio(ctx, wav)
	if err != nil {
		return "", fmt.Errorf("voice: transcribe clip: %w", err)
	}
	return text, nil
}

// Recording reports whether a clip is being captured.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}
