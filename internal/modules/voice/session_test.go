package voice

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"voyager/internal/ai"
)

// fakeLiveStream records uplink audio and serves queued downlink chunks.
type fakeLiveStream struct {
	mu     sync.Mutex
	sent   [][]byte
	chunks chan []byte
	closed chan struct{}
	once   sync.Once
}

func newFakeLiveStream(buffer int) *fakeLiveStream {
	return &fakeLiveStream{chunks: make(chan []byte, buffer), closed: make(chan struct{})}
}

func (s *fakeLiveStream) SendAudio(pcm []byte) error {
	select {
	case <-s.closed:
		return ErrIdle
	default:
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, pcm)
	return nil
}

func (s *fakeLiveStream) Recv() ([]byte, error) {
	select {
	case chunk := <-s.chunks:
		return chunk, nil
	case <-s.closed:
		return nil, errors.New("stream closed")
	}
}

func (s *fakeLiveStream) Close() error {
	s.once.Do(func() { close(s.closed) })
	return nil
}

func (s *fakeLiveStream) sentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type fakeLiveDialer struct {
	stream *fakeLiveStream
	err    error
	dials  int
}

func (d *fakeLiveDialer) Dial(_ context.Context, _ string) (ai.LiveStream, error) {
	d.dials++
	if d.err != nil {
		return nil, d.err
	}
	return d.stream, nil
}

func TestSessionUplinkForwardsFrames(t *testing.T) {
	stream := newFakeLiveStream(4)
	dialer := &fakeLiveDialer{stream: stream}
	opener := &fakeOpener{capture: newFakeCapture([]float32{0.1}, []float32{0.2})}
	sess := NewSession(dialer, opener, "concierge", 8)

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for stream.sentCount() < 2 {
		time.Sleep(time.Millisecond)
	}
	if err := sess.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	want := EncodePCM16([]float32{0.1})
	sent := stream.sent[0]
	if len(sent) != len(want) || sent[0] != want[0] || sent[1] != want[1] {
		t.Errorf("first uplink frame = %v, want %v", sent, want)
	}
}

func TestSessionDownlinkDelivery(t *testing.T) {
	stream := newFakeLiveStream(4)
	stream.chunks <- []byte{1, 2}
	stream.chunks <- []byte{3, 4}
	dialer := &fakeLiveDialer{stream: stream}
	sess := NewSession(dialer, &fakeOpener{capture: newFakeCapture()}, "concierge", 8)

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	out := sess.Output()

	first := <-out
	second := <-out
	if len(first.PCM) != 2 || first.PCM[0] != 1 || len(second.PCM) != 2 || second.PCM[0] != 3 {
		t.Errorf("chunks = %v, %v; want arrival order", first.PCM, second.PCM)
	}
	if second.Start.Before(first.Start.Add(first.Duration)) {
		t.Errorf("second chunk scheduled at %v, before first ends at %v",
			second.Start, first.Start.Add(first.Duration))
	}

	if err := sess.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if _, ok := <-out; ok {
		t.Error("output channel should close on Stop")
	}
}

func TestSessionStartWhileLive(t *testing.T) {
	dialer := &fakeLiveDialer{stream: newFakeLiveStream(1)}
	sess := NewSession(dialer, &fakeOpener{capture: newFakeCapture()}, "concierge", 8)

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := sess.Start(context.Background()); !errors.Is(err, ErrBusy) {
		t.Fatalf("second Start err = %v, want ErrBusy", err)
	}
	if err := sess.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestSessionReopenAfterStop(t *testing.T) {
	dialer := &fakeLiveDialer{stream: newFakeLiveStream(1)}
	opener := &fakeOpener{capture: newFakeCapture()}
	sess := NewSession(dialer, opener, "concierge", 8)

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	if err := sess.Stop(); err != nil {
		t.Fatalf("first Stop: %v", err)
	}

	dialer.stream = newFakeLiveStream(1)
	opener.capture = newFakeCapture()
	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if err := sess.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	if dialer.dials != 2 {
		t.Errorf("dials = %d, want 2", dialer.dials)
	}
}

func TestSessionDialFailureReleasesMicrophone(t *testing.T) {
	dialer := &fakeLiveDialer{err: errors.New("handshake rejected")}
	capture := newFakeCapture()
	sess := NewSession(dialer, &fakeOpener{capture: capture}, "concierge", 8)

	if err := sess.Start(context.Background()); err == nil {
		t.Fatal("Start should fail when the stream cannot be opened")
	}
	select {
	case <-capture.closed:
	default:
		t.Error("capture must be released when dialing fails")
	}
	if sess.Live() {
		t.Error("session must stay idle after a failed start")
	}
}

func TestSessionStopWhenIdle(t *testing.T) {
	dialer := &fakeLiveDialer{stream: newFakeLiveStream(1)}
	sess := NewSession(dialer, &fakeOpener{capture: newFakeCapture()}, "concierge", 8)
	if err := sess.Stop(); !errors.Is(err, ErrIdle) {
		t.Fatalf("err = %v, want ErrIdle", err)
	}
}

func TestSessionEndsWhenStreamFails(t *testing.T) {
	stream := newFakeLiveStream(1)
	dialer := &fakeLiveDialer{stream: stream}
	opener := &fakeOpener{capture: newFakeCapture()}
	sess := NewSession(dialer, opener, "concierge", 8)

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	out := sess.Output()
	capture := opener.capture

	// Upstream drops the connection while nobody calls Stop.
	stream.Close()

	deadline := time.After(2 * time.Second)
	for sess.Live() {
		select {
		case <-deadline:
			t.Fatal("session did not return to idle after the stream failed")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	select {
	case <-capture.closed:
	default:
		t.Error("microphone must be released when the stream fails")
	}
	if _, ok := <-out; ok {
		t.Error("output channel must close when the stream fails")
	}

	dialer.stream = newFakeLiveStream(1)
	opener.capture = newFakeCapture()
	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("restart after failure: %v", err)
	}
	if err := sess.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestSessionCountsChunkLostOnRetry(t *testing.T) {
	sess := NewSession(nil, nil, "concierge", 8)
	r := &liveRun{out: make(chan Chunk)}

	// No consumer and no queued chunk to evict: the new chunk is lost and
	// must still be counted.
	sess.enqueue(r, Chunk{PCM: []byte{9}})

	if got := sess.Dropped(); got != 1 {
		t.Fatalf("Dropped() = %d, want 1", got)
	}
}

func TestSessionDropsOldestWhenConsumerLags(t *testing.T) {
	stream := newFakeLiveStream(8)
	for i := 0; i < 4; i++ {
		stream.chunks <- []byte{byte(i)}
	}
	dialer := &fakeLiveDialer{stream: stream}
	sess := NewSession(dialer, &fakeOpener{capture: newFakeCapture()}, "concierge", 2)

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	out := sess.Output()

	// Nobody reads until all four chunks arrived; the queue holds two.
	for sess.Dropped() < 2 {
		time.Sleep(time.Millisecond)
	}

	first := <-out
	if first.PCM[0] != 2 {
		t.Errorf("first delivered chunk = %d, want oldest surviving chunk 2", first.PCM[0])
	}

	if err := sess.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
