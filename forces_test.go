package ember

import (
	"math"
	"testing"
	"time"
)

func TestPairForceCutoffs(t *testing.T) {
	if got := pairForce(0, 1); got != 0 {
		t.Errorf("pairForce(0, 1) = %v, want 0", got)
	}
	if got := pairForce(-1, 1); got != 0 {
		t.Errorf("pairForce(-1, 1) = %v, want 0", got)
	}
	if got := pairForce(interactionRadius, 1); got != 0 {
		t.Errorf("pairForce at the interaction radius = %v, want 0", got)
	}
	if got := pairForce(interactionRadius+0.001, 1); got != 0 {
		t.Errorf("pairForce beyond the interaction radius = %v, want 0", got)
	}
}

func TestPairForceRepulsionZoneIgnoresMatrix(t *testing.T) {
	// Inside the repulsion radius the force must separate even for the
	// strongest attraction weight, and never exceed the repulsion scale.
	for _, d := range []float64{0.5, 2, 4, 7.9} {
		got := pairForce(d, 1)
		if got >= 0 {
			t.Errorf("pairForce(%v, +1) = %v, want negative", d, got)
		}
		if -got > repulsionScale {
			t.Errorf("pairForce(%v, +1) magnitude %v exceeds %v", d, -got, repulsionScale)
		}
	}
	// Strength grows toward contact.
	if pairForce(1, 1) >= pairForce(6, 1) {
		t.Error("repulsion should strengthen as distance shrinks")
	}
}

func TestPairForceLinearFalloff(t *testing.T) {
	// At half the radius the attraction is half of max.
	assertNear(t, "pairForce(40, 1)", pairForce(40, 1), 0.5*maxForce)
	// The weight scales linearly, including sign.
	assertNear(t, "pairForce(40, -0.5)", pairForce(40, -0.5), -0.25*maxForce)
	// Just inside the outer cutoff the force has nearly vanished.
	if got := pairForce(79.9, 1); got < 0 || got > 0.01*maxForce {
		t.Errorf("pairForce(79.9, 1) = %v, want small positive", got)
	}
}

func TestWrapCoord(t *testing.T) {
	assertNear(t, "wrap(-10, 100)", wrapCoord(-10, 100), 90)
	assertNear(t, "wrap(110, 100)", wrapCoord(110, 100), 10)
	assertNear(t, "wrap(100, 100)", wrapCoord(100, 100), 0)
	assertNear(t, "wrap(55, 100)", wrapCoord(55, 100), 55)
}

func TestShortestDelta(t *testing.T) {
	assertNear(t, "delta(90, 100)", shortestDelta(90, 100), -10)
	assertNear(t, "delta(-90, 100)", shortestDelta(-90, 100), 10)
	assertNear(t, "delta(30, 100)", shortestDelta(30, 100), 30)
	assertNear(t, "delta(-30, 100)", shortestDelta(-30, 100), -30)
}

func TestFrictionAppliedPerFrame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Messages = nil
	cfg.DesktopCount = 1
	cfg.MobileCount = 1
	cfg.Pointer = false
	s, clock := newTestSystem(cfg)
	s.Start(1000, 700)

	// A lone particle feels no pair forces; only friction acts on its
	// velocity. The factor applies per frame whatever dt is.
	s.particles[0].VX = 100
	s.particles[0].VY = 0
	clock.advance(time.Second / 60)
	s.Update()
	assertNear(t, "VX after one frame", s.particles[0].VX, 100*frictionFactor)

	s.particles[0].VX = 100
	clock.advance(time.Millisecond)
	s.Update()
	assertNear(t, "VX after a 1ms frame", s.particles[0].VX, 100*frictionFactor)
}

func TestSpeedClamp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Messages = nil
	cfg.DesktopCount = 1
	cfg.MobileCount = 1
	s, clock := newTestSystem(cfg)
	s.Start(1000, 700)

	s.particles[0].VX = 1e6
	s.particles[0].VY = 1e6
	clock.advance(time.Second / 60)
	s.Update()

	if v := math.Hypot(s.particles[0].VX, s.particles[0].VY); v > maxSpeed+epsilon {
		t.Errorf("speed %v exceeds the clamp %v", v, maxSpeed)
	}
}

func TestPairForceActsAcrossSeam(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Messages = nil
	cfg.DesktopCount = 2
	cfg.MobileCount = 2
	cfg.Pointer = false
	s, clock := newTestSystem(cfg)
	s.Start(800, 600)

	// Two mutually attracting particles 10 units apart through the seam.
	var m Matrix
	m[0][0] = 1
	s.matrix = m
	s.particles[0] = Particle{X: 795, Y: 300, Type: 0}
	s.particles[1] = Particle{X: 5, Y: 300, Type: 0}

	clock.advance(time.Second / 60)
	s.Update()

	// The left particle is pulled rightward through the seam, the right one
	// leftward.
	if s.particles[0].VX <= 0 {
		t.Errorf("seam attraction: particle 0 VX = %v, want > 0", s.particles[0].VX)
	}
	if s.particles[1].VX >= 0 {
		t.Errorf("seam attraction: particle 1 VX = %v, want < 0", s.particles[1].VX)
	}
}

func TestFarPairsUnaffected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Messages = nil
	cfg.DesktopCount = 2
	cfg.MobileCount = 2
	cfg.Pointer = false
	s, clock := newTestSystem(cfg)
	s.Start(800, 600)

	var m Matrix
	m[0][0] = 1
	s.matrix = m
	// 400 units apart on both routes around the torus: out of range.
	s.particles[0] = Particle{X: 200, Y: 300, Type: 0}
	s.particles[1] = Particle{X: 600, Y: 300, Type: 0}

	clock.advance(time.Second / 60)
	s.Update()

	if v := s.particles[0].VX; v != 0 {
		t.Errorf("out-of-range pair produced force: VX = %v", v)
	}
}

func TestDissolveScattersFromOwnTargets(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Messages = []Message{{Text: "hi"}}
	cfg.Durations = shortDurations()
	s, clock := newTestSystem(cfg)
	s.Start(1200, 700)

	// Ride out the first hold (0.4s) into DISSOLVING.
	drive(s, clock, 0.45)
	if s.Mode() != ModeDissolving {
		t.Fatalf("expected dissolving, got %v", s.Mode())
	}

	// Particles sat on their targets, so the blast radiates from each
	// particle's own former target; distance to it must grow.
	before := make([]float64, len(s.particles))
	for i, p := range s.particles {
		before[i] = math.Hypot(p.X-p.TargetX, p.Y-p.TargetY)
	}
	drive(s, clock, 0.2)

	grew := 0
	for i, p := range s.particles {
		if math.Hypot(p.X-p.TargetX, p.Y-p.TargetY) > before[i] {
			grew++
		}
	}
	if grew < len(s.particles)*8/10 {
		t.Errorf("only %d/%d particles scattered away from their targets", grew, len(s.particles))
	}
}

// Planets makes every type self-repelling, so a single-type swarm packed into
// a small disc must disperse rather than clump.
func TestPlanetsSwarmDoesNotCollapse(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Messages = nil
	cfg.DesktopCount = 100
	cfg.MobileCount = 100
	cfg.Matrix = string(PresetPlanets)
	cfg.Pointer = false
	s, clock := newTestSystem(cfg)
	s.Start(800, 600)

	for i := range s.particles {
		a := float64(i) * goldenAngle
		r := 5 * math.Sqrt(float64(i)/float64(len(s.particles)))
		s.particles[i] = Particle{
			X:    400 + math.Cos(a)*r,
			Y:    300 + math.Sin(a)*r,
			Type: 0,
		}
	}

	var sp Spread
	sp.Observe(s.particles)
	start := sp.Last()

	drive(s, clock, 8)

	sp.Observe(s.particles)
	end := sp.Last()
	if end < 30 {
		t.Errorf("swarm spread %v after 8s of self-repulsion, want well dispersed", end)
	}
	if end <= start*2 {
		t.Errorf("spread barely moved: %v -> %v", start, end)
	}
}

func TestStepZeroAlloc(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Messages = nil
	s, _ := newTestSystem(cfg)
	s.Start(1600, 900)

	// Warm up so the grid's slices reach their steady-state capacity.
	s.grid.rebuild(s.particles)
	s.step(1.0 / 60)

	allocs := testing.AllocsPerRun(50, func() {
		s.grid.rebuild(s.particles)
		s.step(1.0 / 60)
	})
	if allocs > 0 {
		t.Errorf("physics step allocated %v times per frame, want 0", allocs)
	}
}
