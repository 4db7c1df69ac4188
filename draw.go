package ember

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// particleRadius is the dot radius in simulation units.
	particleRadius = 2.0

	// jitterAmp and jitterRampStart shape the opening hold's shimmer: still
	// text until just past the midpoint, then a ramp to full amplitude so the
	// first message visibly comes alive before it scatters.
	jitterAmp       = 1.6
	jitterRampStart = 0.55
)

// Draw renders the population onto dst, mapping simulation units to the
// destination bounds. It is safe to call while stopped or paused; a stopped
// system draws nothing.
func (s *System) Draw(dst *ebiten.Image) {
	if !s.running || len(s.particles) == 0 || s.width <= 0 || s.height <= 0 {
		return
	}
	started := time.Now()

	b := dst.Bounds()
	sx := float64(b.Dx()) / s.width
	sy := float64(b.Dy()) / s.height
	ox, oy := float64(b.Min.X), float64(b.Min.Y)

	r := float32(particleRadius * math.Min(sx, sy))
	if r < 1 {
		r = 1
	}

	jitter := s.jitterAmount()
	phase := s.modeElapsed().Seconds()

	for i := range s.particles {
		p := &s.particles[i]
		x, y := p.X, p.Y
		if jitter > 0 && p.HasTarget {
			x += jitter * math.Sin(phase*3.1+p.TargetX*0.37)
			y += jitter * math.Cos(phase*2.7+p.TargetY*0.41)
		}
		vector.DrawFilledCircle(dst,
			float32(ox+x*sx), float32(oy+y*sy), r,
			typePalette[p.Type], true)
	}

	s.drawTimes.record(time.Since(started))
}

// jitterAmount returns the shimmer amplitude for the current frame. Only the
// very first hold shimmers; every later hold, and the balloon phase, stays
// still. Phase time comes from the pause-aware mode clock, so a hidden page
// does not advance the shimmer.
func (s *System) jitterAmount() float64 {
	if s.mode != ModeHolding || s.messageIndex != 0 {
		return 0
	}
	d := s.modeDuration(ModeHolding)
	if d <= 0 {
		return 0
	}
	frac := s.modeElapsed().Seconds() / d
	return jitterAmp * clamp((frac-jitterRampStart)/(1-jitterRampStart), 0, 1)
}
