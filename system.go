package ember

import (
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// resizeRegenThreshold is how many units either canvas axis must change
// before a displayed shape is re-rasterized.
const resizeRegenThreshold = 50.0

// System owns one simulation session: the particle population, the attraction
// matrix, the mode state machine, and the pause/progress clocks. Create it
// with New, drive it with Start/Update/Draw, tear it down with Stop. All
// methods must be called from the host's single update/draw thread; the
// system is not re-entrant.
type System struct {
	cfg *Config
	log *zap.SugaredLogger
	now func() time.Time
	rng *rand.Rand

	width, height float64
	running       bool
	pendingStart  bool

	particles    []Particle
	grid         grid
	matrix       Matrix
	matrixPreset MatrixPreset
	targets      []Target
	balloon      balloonState

	mode         Mode
	modeStart    time.Time
	sessionStart time.Time
	messageIndex int

	paused      bool
	pauseStart  time.Time
	pausedTotal time.Duration
	lastFrame   time.Time

	pointerX, pointerY float64
	pointerOn          bool

	introTotal  float64
	frameCount  uint64
	updateTimes durationRing
	drawTimes   durationRing
}

// New builds an inert System from cfg. It never fails: a nil config falls
// back to DefaultConfig and unusable values are normalized, so a decorative
// animation can never take its host page down. The handle does nothing until
// Start.
func New(cfg *Config) *System {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	own := *cfg
	own.Messages = append([]Message(nil), cfg.Messages...)
	own.normalize()

	seed := own.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &System{
		cfg: &own,
		log: newLogger(own.LogLevel, own.LogFile),
		now: time.Now,
		rng: rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15)),
	}
}

// SetClock replaces the wall-clock source. Headless drivers and tests use it
// to run deterministically or faster than real time; nil restores time.Now.
func (s *System) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.now = now
}

// Start measures the plane, spawns the population, and begins the session.
// The first message's silhouette is sampled up front and particles spawn on
// it, so the very first frame shows formed text. A second Start while
// running is ignored; starting with unsettled (zero) dimensions is deferred
// until the first real Resize.
func (s *System) Start(w, h float64) {
	if s.running {
		s.log.Warnw("start ignored: already running")
		return
	}
	if w <= 0 || h <= 0 {
		s.pendingStart = true
		s.log.Debugw("start deferred", "width", w, "height", h)
		return
	}
	s.pendingStart = false
	s.width, s.height = w, h
	s.grid.resize(w, h)

	count := s.cfg.DesktopCount
	if w < s.cfg.MobileWidth {
		count = s.cfg.MobileCount
	}
	if need := int(s.cfg.DensityFactor * float64(s.largestSilhouette())); need > count {
		count = need
	}
	s.particles = make([]Particle, count)

	now := s.now()
	s.sessionStart, s.modeStart, s.lastFrame = now, now, now
	s.pausedTotal, s.paused = 0, false
	s.messageIndex = 0
	s.balloon = balloonState{}
	s.introTotal = introDuration(s.cfg)
	s.rollMatrix()

	switch {
	case s.cfg.Explosion:
		s.targets = nil
		spawnBurst(s.particles, w/2, h/2, math.Min(w, h)*0.08, s.rng)
		s.mode = ModeExplosion
	case len(s.cfg.Messages) == 0:
		s.targets = nil
		spawnScattered(s.particles, w, h, s.rng)
		s.mode = ModeParticleLife
	default:
		s.targets = sampleText(s.cfg.Messages[0].Text, w, h, s.rng)
		if len(s.targets) > 0 {
			spawnOnTargets(s.particles, s.targets, s.rng)
			s.mode = ModeHolding
		} else {
			// No silhouette this cycle; free-run until FORMING retries.
			spawnScattered(s.particles, w, h, s.rng)
			s.mode = ModeParticleLife
		}
	}

	s.running = true
	s.log.Infow("session started",
		"width", w,
		"height", h,
		"particles", count,
		"mode", s.mode.String(),
		"intro_seconds", s.introTotal,
	)
}

// largestSilhouette counts the samples of the densest configured message at
// the current plane size, so the population can be padded to cover it.
func (s *System) largestSilhouette() int {
	most := 0
	for _, m := range s.cfg.Messages {
		if n := len(sampleText(m.Text, s.width, s.height, s.rng)); n > most {
			most = n
		}
	}
	return most
}

// Stop ends the session and releases the population. The next Draw renders
// nothing; Start may be called again.
func (s *System) Stop() {
	if !s.running && !s.pendingStart {
		return
	}
	s.running = false
	s.pendingStart = false
	s.particles = nil
	s.targets = nil
	s.balloon = balloonState{}
	s.paused = false
	s.pointerOn = false
	s.log.Infow("session stopped")
}

// Resize tells the system the plane changed. It recomputes the grid layout,
// completes a deferred Start, and re-rasterizes the displayed shape when
// either axis moved by more than resizeRegenThreshold units so held text
// stays crisp.
func (s *System) Resize(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	if s.pendingStart && !s.running {
		s.Start(w, h)
		return
	}
	if !s.running || (w == s.width && h == s.height) {
		return
	}
	dw := math.Abs(w - s.width)
	dh := math.Abs(h - s.height)
	s.width, s.height = w, h
	s.grid.resize(w, h)
	if (dw > resizeRegenThreshold || dh > resizeRegenThreshold) && s.shapeDisplayed() {
		s.regenTargets(false)
	}
	s.log.Debugw("resized", "width", w, "height", h)
}

// shapeDisplayed reports whether a silhouette is on screen or forming.
func (s *System) shapeDisplayed() bool {
	return s.mode == ModeForming || s.mode == ModeHolding || s.mode == ModeBalloonRising
}

// Update advances one logical frame: clamp the frame delta, run mode
// transitions, rebuild the spatial grid, and step the physics. While hidden
// or stopped it is a no-op, so hosts can keep calling it unconditionally.
func (s *System) Update() {
	if !s.running || s.paused {
		return
	}
	started := time.Now()

	now := s.now()
	dt := now.Sub(s.lastFrame).Seconds()
	s.lastFrame = now
	if dt <= 0 {
		return
	}
	if dt > maxDT {
		dt = maxDT
	}

	s.advanceMode()
	if s.mode == ModeBalloonRising {
		s.balloonUpdate(dt)
	}
	s.grid.rebuild(s.particles)
	s.step(dt)

	s.frameCount++
	s.updateTimes.record(time.Since(started))
	s.logStats()
}

// SetPointer feeds the pointer or first touch position in simulation units.
// Repulsion only acts during the free-running phase, never against a forming
// or held shape.
func (s *System) SetPointer(x, y float64, active bool) {
	s.pointerX, s.pointerY = x, y
	s.pointerOn = active
}

// SetVisible forwards the host's visibility. Hiding freezes logical time:
// mode clocks, frame deltas, and Progress all exclude the hidden span, so a
// backgrounded page resumes exactly where it left off.
func (s *System) SetVisible(visible bool) {
	if !s.running {
		return
	}
	if !visible && !s.paused {
		s.paused = true
		s.pauseStart = s.now()
		s.log.Debugw("paused")
		return
	}
	if visible && s.paused {
		span := s.now().Sub(s.pauseStart)
		s.modeStart = s.modeStart.Add(span)
		s.lastFrame = s.lastFrame.Add(span)
		s.pausedTotal += span
		s.paused = false
		s.log.Debugw("resumed", "hidden_seconds", span.Seconds())
	}
}

// Progress reports how far through the one-time intro sequence the session
// is, as a fraction in [0, 1] of the scheduled phase durations through the
// final message's hold, excluding hidden time. It saturates at 1; the
// infinite tail never moves it.
func (s *System) Progress() float64 {
	if !s.running {
		return 0
	}
	if s.introTotal <= 0 {
		return 1
	}
	base := s.now()
	if s.paused {
		base = s.pauseStart
	}
	elapsed := base.Sub(s.sessionStart) - s.pausedTotal
	return clamp(elapsed.Seconds()/s.introTotal, 0, 1)
}

// Ready reports whether the intro sequence has completed.
func (s *System) Ready() bool {
	return s.Progress() >= 1
}

// Mode returns the current animation phase.
func (s *System) Mode() Mode { return s.mode }

// MessageIndex returns how many messages have fully played. It reaches
// len(Messages) once the sequence is exhausted.
func (s *System) MessageIndex() int { return s.messageIndex }

// MatrixName returns the preset behind the active attraction matrix.
func (s *System) MatrixName() MatrixPreset { return s.matrixPreset }

// ParticleCount returns the population size; zero before Start.
func (s *System) ParticleCount() int { return len(s.particles) }

// Particles exposes the live population for metrics and custom rendering.
// The slice is the system's backing array: treat it as read-only.
func (s *System) Particles() []Particle { return s.particles }
