// README: Live voice session: microphone uplink and synthesized-audio
// downlink over one model stream.
package voice

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"voyager/internal/ai"
)

const DefaultOutboundQueue = 64

// Chunk is one synthesized audio segment with its gapless playback slot.
type Chunk struct {
	PCM      []byte
	Start    time.Time
	Duration time.Duration
}

// liveRun holds the resources of one conversation. Either pump exiting
// shuts the run down, so an upstream failure ends the whole run instead
// of leaving the other half open.
type liveRun struct {
	capture CaptureStream
	stream  ai.LiveStream
	out     chan Chunk

	wg       sync.WaitGroup
	stopOnce sync.Once
	done     chan struct{}
}

func (r *liveRun) shutdown() {
	r.stopOnce.Do(func() {
		r.capture.Close()
		r.stream.Close()
	})
}

// Session runs one live conversation at a time. Start wires the microphone
// into the model stream and begins delivering synthesized chunks on Output;
// the run ends when Stop is called or when either side of the stream fails,
// and the session returns to idle, from which it can be started again.
type Session struct {
	dialer    ai.LiveDialer
	opener    CaptureOpener
	persona   string
	queueSize int

	mu      sync.Mutex
	cur     *liveRun
	sched   Scheduler
	dropped int64
}

func NewSession(dialer ai.LiveDialer, opener CaptureOpener, persona string, queueSize int) *Session {
	if queueSize <= 0 {
		queueSize = DefaultOutboundQueue
	}
	return &Session{dialer: dialer, opener: opener, persona: persona, queueSize: queueSize}
}

// Start opens the microphone and the model stream. On any setup failure
// everything already opened is released and the session stays idle.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur != nil {
		return ErrBusy
	}

	capture, err := s.opener.Open(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMediaAccess, err)
	}
	stream, err := s.dialer.Dial(ctx, s.persona)
	if err != nil {
		capture.Close()
		return fmt.Errorf("voice: open live stream: %w", err)
	}

	r := &liveRun{
		capture: capture,
		stream:  stream,
		out:     make(chan Chunk, s.queueSize),
		done:    make(chan struct{}),
	}
	s.cur = r
	s.sched.Reset()

	r.wg.Add(2)
	go s.uplink(r)
	go s.downlink(r)
	go s.supervise(r)
	return nil
}

// supervise finishes the run once both pumps have exited: it closes Output
// and returns the session to idle.
func (s *Session) supervise(r *liveRun) {
	r.wg.Wait()
	close(r.out)
	s.mu.Lock()
	if s.cur == r {
		s.cur = nil
	}
	s.mu.Unlock()
	close(r.done)
}

func (s *Session) uplink(r *liveRun) {
	defer r.wg.Done()
	defer r.shutdown()
	for {
		frame, err := r.capture.ReadFrame()
		if err != nil {
			return
		}
		if err := r.stream.SendAudio(EncodePCM16(frame)); err != nil {
			log.Printf("voice: uplink send failed: %v", err)
			return
		}
	}
}

// downlink stamps each synthesized chunk with its gapless playback slot and
// enqueues it, dropping the oldest queued chunk when the consumer falls
// behind so playback stays close to real time.
func (s *Session) downlink(r *liveRun) {
	defer r.wg.Done()
	defer r.shutdown()
	for {
		pcm, err := r.stream.Recv()
		if err != nil {
			return
		}

		d := ChunkDuration(len(pcm), OutputSampleRate)
		s.mu.Lock()
		start := s.sched.Schedule(time.Now(), d)
		s.mu.Unlock()
		s.enqueue(r, Chunk{PCM: pcm, Start: start, Duration: d})
	}
}

// enqueue delivers a chunk, evicting the oldest queued one when the queue
// is full. Every chunk that never reaches the consumer counts as dropped,
// including the new one when the freed slot is taken before the retry.
func (s *Session) enqueue(r *liveRun, chunk Chunk) {
	select {
	case r.out <- chunk:
		return
	default:
	}
	select {
	case <-r.out:
		s.noteDrop()
	default:
	}
	select {
	case r.out <- chunk:
	default:
		s.noteDrop()
	}
}

func (s *Session) noteDrop() {
	s.mu.Lock()
	s.dropped++
	s.mu.Unlock()
}

// Output delivers synthesized audio chunks for the current run. The channel
// closes when the run ends.
func (s *Session) Output() <-chan Chunk {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return nil
	}
	return s.cur.out
}

// Dropped reports how many chunks were discarded because the consumer fell
// behind.
func (s *Session) Dropped() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Live reports whether a conversation is running.
func (s *Session) Live() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur != nil
}

// Stop tears the current run down and waits for it to finish. Stopping an
// idle session reports ErrIdle; concurrent Stop calls all wait for the same
// teardown.
func (s *Session) Stop() error {
	s.mu.Lock()
	r := s.cur
	s.mu.Unlock()
	if r == nil {
		return ErrIdle
	}
	r.shutdown()
	<-r.done
	return nil
}
