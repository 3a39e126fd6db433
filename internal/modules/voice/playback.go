package voice

import "time"

// Scheduler assigns gapless start times to received audio chunks. The cursor
// never moves backwards, so chunks arriving faster than they play queue up
// back to back, and a late chunk starts immediately.
type Scheduler struct {
	cursor time.Time
}

// Schedule returns the start time for a chunk of the given duration and
// advances the cursor past it.
func (s *Scheduler) Schedule(now time.Time, d time.Duration) time.Time {
	start := s.cursor
	if now.After(start) {
		start = now
	}
	s.cursor = start.Add(d)
	return start
}

// Reset clears the cursor for a new playback run.
func (s *Scheduler) Reset() {
	s.cursor = time.Time{}
}

// ChunkDuration reports how long a PCM16 chunk plays at the given rate.
func ChunkDuration(pcmBytes, sampleRate int) time.Duration {
	samples := pcmBytes / 2
	return time.Duration(samples) * time.Second / time.Duration(sampleRate)
}
