package voice

import (
	"testing"
	"time"
)

func TestSchedulerQueuesChunksBackToBack(t *testing.T) {
	var s Scheduler
	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	d1 := 170 * time.Millisecond
	d2 := 90 * time.Millisecond

	// Three chunks arriving at the same instant play gaplessly in order.
	if got := s.Schedule(now, d1); !got.Equal(now) {
		t.Errorf("first start = %v, want %v", got, now)
	}
	if got := s.Schedule(now, d2); !got.Equal(now.Add(d1)) {
		t.Errorf("second start = %v, want %v", got, now.Add(d1))
	}
	if got := s.Schedule(now, d1); !got.Equal(now.Add(d1 + d2)) {
		t.Errorf("third start = %v, want %v", got, now.Add(d1+d2))
	}
}

func TestSchedulerNeverSchedulesInThePast(t *testing.T) {
	var s Scheduler
	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

	s.Schedule(now, 50*time.Millisecond)

	// A chunk arriving after the queue drained starts immediately.
	late := now.Add(2 * time.Second)
	if got := s.Schedule(late, 50*time.Millisecond); !got.Equal(late) {
		t.Errorf("late start = %v, want %v", got, late)
	}
}

func TestChunkDuration(t *testing.T) {
	// 24000 Hz, 2 bytes per sample: 48000 bytes is one second.
	if got := ChunkDuration(48000, OutputSampleRate); got != time.Second {
		t.Errorf("duration = %v, want 1s", got)
	}
	if got := ChunkDuration(4800, OutputSampleRate); got != 100*time.Millisecond {
		t.Errorf("duration = %v, want 100ms", got)
	}
}
