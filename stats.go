package ember

import "time"

// statsWindow is the number of frames in the rolling timing window.
const statsWindow = 120

// statsLogInterval is how many updates pass between debug-level stat lines.
const statsLogInterval = 300

// Stats is a snapshot of recent frame costs, suitable for an overlay or the
// benchmark output.
type Stats struct {
	// UpdateMillis and DrawMillis are rolling averages over the last
	// statsWindow frames.
	UpdateMillis float64
	DrawMillis   float64
	Particles    int
	Targets      int
}

// durationRing is a fixed rolling window of frame durations.
type durationRing struct {
	samples [statsWindow]time.Duration
	head    int
	n       int
}

func (r *durationRing) record(d time.Duration) {
	r.samples[r.head] = d
	r.head = (r.head + 1) % statsWindow
	if r.n < statsWindow {
		r.n++
	}
}

func (r *durationRing) averageMillis() float64 {
	if r.n == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < r.n; i++ {
		total += r.samples[i]
	}
	return float64(total.Microseconds()) / float64(r.n) / 1000
}

// Stats returns the current frame-cost snapshot.
func (s *System) Stats() Stats {
	return Stats{
		UpdateMillis: s.updateTimes.averageMillis(),
		DrawMillis:   s.drawTimes.averageMillis(),
		Particles:    len(s.particles),
		Targets:      len(s.targets),
	}
}

// logStats emits a periodic debug line with the rolling averages.
func (s *System) logStats() {
	if s.frameCount%statsLogInterval != 0 {
		return
	}
	s.log.Debugw("frame stats",
		"update_ms", s.updateTimes.averageMillis(),
		"draw_ms", s.drawTimes.averageMillis(),
		"particles", len(s.particles),
		"mode", s.mode.String(),
	)
}
