package ember

import "time"

// Mode is one phase of the animation. The sequence is fixed:
//
//	[EXPLOSION →] PARTICLE_LIFE → FORMING → HOLDING → [BALLOON_RISING →]
//	DISSOLVING → PARTICLE_LIFE → …
//
// cycling through the configured messages. After the last message's dissolve
// the machine stays in PARTICLE_LIFE forever, re-rolling the attraction
// matrix on a fixed interval instead of forming again.
type Mode uint8

const (
	ModeExplosion Mode = iota // legacy intro: radial blast from the canvas center
	ModeParticleLife          // free-running attraction/repulsion
	ModeForming               // particles converge on the current message
	ModeHolding               // formed message pinned in place
	ModeBalloonRising         // balloon sub-animation over a held message
	ModeDissolving            // scatter away from the held shape
)

// String returns the mode name used in logs and the CLI timeline.
func (m Mode) String() string {
	switch m {
	case ModeExplosion:
		return "explosion"
	case ModeParticleLife:
		return "particle-life"
	case ModeForming:
		return "forming"
	case ModeHolding:
		return "holding"
	case ModeBalloonRising:
		return "balloon-rising"
	case ModeDissolving:
		return "dissolving"
	}
	return "unknown"
}

// modeWeights blends the two force families per phase. During FORMING the
// pair always sums to 1.
type modeWeights struct {
	formation float64
	life      float64
}

// weightsFor returns the force blend for a mode given the fraction of its
// duration elapsed. FORMING cross-fades from pure particle life into pure
// formation; holds pin the shape; everything else is pure particle life.
func weightsFor(m Mode, frac float64) modeWeights {
	switch m {
	case ModeExplosion, ModeParticleLife, ModeDissolving:
		return modeWeights{formation: 0, life: 1}
	case ModeForming:
		f := clamp(frac, 0, 1)
		return modeWeights{formation: f, life: 1 - f}
	case ModeHolding, ModeBalloonRising:
		return modeWeights{formation: 1, life: 0}
	}
	return modeWeights{formation: 0, life: 1}
}

// holdDuration picks the hold length for a message: flagged messages hold
// shortest (the balloon fills the gap), the first message holds shorter than
// the rest.
func holdDuration(cfg *Config, idx int) float64 {
	if idx < 0 || idx >= len(cfg.Messages) {
		return cfg.Durations.Holding
	}
	if cfg.Messages[idx].Balloon {
		return cfg.Durations.BalloonHolding
	}
	if idx == 0 {
		return cfg.Durations.FirstHolding
	}
	return cfg.Durations.Holding
}

// introDuration sums the scheduled phase lengths from session start through
// the final message's hold. This is the denominator of Progress: everything
// after the final hold (its balloon, its dissolve, the infinite tail) is not
// part of the intro.
func introDuration(cfg *Config) float64 {
	n := len(cfg.Messages)
	if n == 0 {
		return 0
	}
	d := cfg.Durations
	total := 0.0
	if cfg.Explosion {
		total += d.Explosion + d.ParticleLife + d.Forming
	}
	for k := 0; k < n; k++ {
		if k > 0 {
			total += d.Dissolving + d.ParticleLife + d.Forming
		}
		total += holdDuration(cfg, k)
		if k < n-1 && cfg.Messages[k].Balloon {
			total += d.BalloonRise
		}
	}
	return total
}

// terminal reports whether every message has been shown, which pins the
// machine in PARTICLE_LIFE.
func (s *System) terminal() bool {
	return s.messageIndex >= len(s.cfg.Messages)
}

// currentMessage returns the message being formed or held. Zero value once
// the sequence is exhausted.
func (s *System) currentMessage() Message {
	if s.messageIndex < len(s.cfg.Messages) {
		return s.cfg.Messages[s.messageIndex]
	}
	return Message{}
}

// modeDuration returns the current phase's length in seconds. The terminal
// free-running phase runs on the matrix re-roll interval.
func (s *System) modeDuration(m Mode) float64 {
	d := s.cfg.Durations
	switch m {
	case ModeExplosion:
		return d.Explosion
	case ModeParticleLife:
		if s.terminal() {
			return d.MatrixReroll
		}
		return d.ParticleLife
	case ModeForming:
		return d.Forming
	case ModeHolding:
		return holdDuration(s.cfg, s.messageIndex)
	case ModeBalloonRising:
		return d.BalloonRise
	case ModeDissolving:
		return d.Dissolving
	}
	return d.ParticleLife
}

// modeElapsed is the logical time spent in the current mode: pause spans are
// excluded, so it is invariant under hide/show cycles.
func (s *System) modeElapsed() time.Duration {
	base := s.now()
	if s.paused {
		base = s.pauseStart
	}
	return base.Sub(s.modeStart)
}

// nextMode is the transition table. Total: every mode maps to exactly one
// successor. Only called for non-terminal states; the terminal tail is
// handled by advanceMode re-rolling in place.
func (s *System) nextMode() Mode {
	switch s.mode {
	case ModeExplosion:
		return ModeParticleLife
	case ModeParticleLife:
		return ModeForming
	case ModeForming:
		return ModeHolding
	case ModeHolding:
		if s.currentMessage().Balloon {
			return ModeBalloonRising
		}
		return ModeDissolving
	case ModeBalloonRising:
		return ModeDissolving
	case ModeDissolving:
		return ModeParticleLife
	}
	return ModeParticleLife
}

// advanceMode transitions when the current phase has run its duration. At
// most one transition per frame; phase durations are well above any frame
// interval.
func (s *System) advanceMode() {
	if s.modeElapsed().Seconds() < s.modeDuration(s.mode) {
		return
	}
	if s.mode == ModeParticleLife && s.terminal() {
		// Infinite tail: stay put, fresh matrix, fresh phase clock.
		s.rollMatrix()
		s.modeStart = s.now()
		return
	}
	s.enterMode(s.nextMode())
}

// enterMode switches phases and runs the new phase's entry work.
func (s *System) enterMode(next Mode) {
	prev := s.mode
	s.mode = next
	s.modeStart = s.now()

	switch next {
	case ModeForming:
		s.regenTargets(true)
	case ModeBalloonRising:
		s.balloonEnter()
	case ModeDissolving:
		// Targets stay assigned: the scatter radiates from each particle's
		// own former target.
	case ModeParticleLife:
		if prev == ModeDissolving {
			s.messageIndex++
		}
		clearTargets(s.particles)
		s.rollMatrix()
	case ModeExplosion, ModeHolding:
	}

	s.log.Debugw("mode transition",
		"from", prev.String(),
		"to", next.String(),
		"message", s.messageIndex,
	)
}

// regenTargets samples the current message and assigns targets. newEpisode
// re-rolls formation speeds; a mid-episode regeneration (resize) keeps them
// so particles already en route do not restagger.
func (s *System) regenTargets(newEpisode bool) {
	msg := s.currentMessage()
	s.targets = sampleText(msg.Text, s.width, s.height, s.rng)
	assignTargets(s.particles, s.targets, s.rng, newEpisode)
	s.log.Debugw("targets sampled", "message", msg.Text, "count", len(s.targets))
}

// rollMatrix regenerates the attraction matrix, honoring a forced preset.
func (s *System) rollMatrix() {
	if s.cfg.Matrix != "" {
		s.matrixPreset = MatrixPreset(s.cfg.Matrix)
		s.matrix = GenerateMatrixPreset(s.matrixPreset, s.rng)
	} else {
		s.matrix, s.matrixPreset = GenerateMatrix(s.rng)
	}
	s.log.Debugw("matrix rolled", "preset", string(s.matrixPreset))
}
