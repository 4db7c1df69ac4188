package ember

import (
	"math/rand/v2"
	"testing"
	"time"
)

// setupBenchSystem builds a free-running system with exactly n particles: no
// messages means no density padding and the machine stays in particle life,
// which is the hot path. The clock is frozen so the mode machine never fires
// mid-benchmark.
func setupBenchSystem(n int) *System {
	cfg := DefaultConfig()
	cfg.Messages = nil
	cfg.DesktopCount = n
	cfg.Seed = 1
	cfg.Pointer = false
	s := New(cfg)
	clock := &testClock{t: time.Unix(1000, 0)}
	s.SetClock(clock.now)
	s.Start(1280, 720)

	// A few frames so the population is in motion, not a uniform cloud.
	for i := 0; i < 30; i++ {
		clock.advance(time.Second / 60)
		s.Update()
	}
	return s
}

// setupFormingSystem builds a system halfway through FORMING with the swarm
// scattered far from its targets, so both force families run at half weight.
// This is the most expensive frame the simulation produces.
func setupFormingSystem(n int) *System {
	cfg := DefaultConfig()
	cfg.Messages = []Message{{Text: "this is ember"}}
	cfg.DesktopCount = n
	cfg.Seed = 1
	cfg.Pointer = false
	s := New(cfg)
	clock := &testClock{t: time.Unix(1000, 0)}
	s.SetClock(clock.now)
	s.Start(1280, 720)

	rng := rand.New(rand.NewPCG(2, 0))
	for i := range s.particles {
		s.particles[i].X = rng.Float64() * 1280
		s.particles[i].Y = rng.Float64() * 720
	}
	s.mode = ModeForming
	s.modeStart = clock.t.Add(-time.Duration(cfg.Durations.Forming * 0.5 * float64(time.Second)))
	return s
}

// --- Simulation Step Benchmarks ---

func BenchmarkStep_500Particles(b *testing.B) {
	s := setupBenchSystem(500)
	s.grid.rebuild(s.particles) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.grid.rebuild(s.particles)
		s.step(1.0 / 60.0)
	}
}

func BenchmarkStep_1400Particles(b *testing.B) {
	s := setupBenchSystem(1400)
	s.grid.rebuild(s.particles) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.grid.rebuild(s.particles)
		s.step(1.0 / 60.0)
	}
}

func BenchmarkStep_3000Particles(b *testing.B) {
	s := setupBenchSystem(3000)
	s.grid.rebuild(s.particles) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.grid.rebuild(s.particles)
		s.step(1.0 / 60.0)
	}
}

func BenchmarkStep_Forming_1400Particles(b *testing.B) {
	s := setupFormingSystem(1400)
	s.grid.rebuild(s.particles) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.grid.rebuild(s.particles)
		s.step(1.0 / 60.0)
	}
}

// --- Grid Benchmarks ---

func BenchmarkGridRebuild_3000Particles(b *testing.B) {
	s := setupBenchSystem(3000)
	s.grid.rebuild(s.particles) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.grid.rebuild(s.particles)
	}
}

// --- Full Frame Benchmark ---

func BenchmarkUpdate_1400Particles(b *testing.B) {
	cfg := DefaultConfig()
	cfg.Messages = nil
	cfg.DesktopCount = 1400
	cfg.Seed = 1
	cfg.Pointer = false
	s := New(cfg)
	clock := &testClock{t: time.Unix(1000, 0)}
	s.SetClock(clock.now)
	s.Start(1280, 720)
	clock.advance(time.Second / 60)
	s.Update() // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		clock.advance(time.Second / 60)
		s.Update()
	}
}

// --- Text Sampling Benchmark ---

func BenchmarkSampleText(b *testing.B) {
	rng := rand.New(rand.NewPCG(3, 0))
	sampleText("this is ember", 1600, 900, rng) // warmup parses the font

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		sampleText("this is ember", 1600, 900, rng)
	}
}
