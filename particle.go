package ember

import (
	"math"
	"math/rand/v2"
)

// Particle is one simulated body. All particles are created once at session
// start and never destroyed; phases overwrite Type and the target fields,
// while position and velocity carry across transitions untouched.
type Particle struct {
	X, Y   float64
	VX, VY float64

	// Type selects the display color and the attraction-matrix row.
	Type int

	// TargetX, TargetY is the formation goal while HasTarget is set. The
	// coordinates stay valid through the dissolve, which scatters each
	// particle away from its own former target.
	TargetX, TargetY float64
	HasTarget        bool

	// FormationSpeed staggers arrival during formation. Re-rolled once per
	// formation episode so convergence looks organic rather than lock-step.
	FormationSpeed float64
}

// formationSpeedRange is the spread of per-particle formation multipliers.
var formationSpeedRange = Range{Min: 0.5, Max: 1.5}

// spawnOnTargets places particles directly on the target set, cycling when
// the population outnumbers the targets. A sub-unit offset keeps coincident
// spawns from stacking exactly. Velocities start at zero so the first frame
// shows the formed shape at rest.
func spawnOnTargets(ps []Particle, targets []Target, rng *rand.Rand) {
	for i := range ps {
		t := targets[i%len(targets)]
		ps[i] = Particle{
			X:              t.X + rng.Float64() - 0.5,
			Y:              t.Y + rng.Float64() - 0.5,
			Type:           t.Type,
			TargetX:        t.X,
			TargetY:        t.Y,
			HasTarget:      true,
			FormationSpeed: formationSpeedRange.Lerp(rng.Float64()),
		}
	}
}

// spawnScattered fills the plane uniformly with random types and no targets.
func spawnScattered(ps []Particle, w, h float64, rng *rand.Rand) {
	for i := range ps {
		ps[i] = Particle{
			X:              rng.Float64() * w,
			Y:              rng.Float64() * h,
			Type:           rng.IntN(NumTypes),
			FormationSpeed: formationSpeedRange.Lerp(rng.Float64()),
		}
	}
}

// spawnBurst packs particles into a disc around a point, ready to be thrown
// outward by the explosion intro.
func spawnBurst(ps []Particle, cx, cy, radius float64, rng *rand.Rand) {
	for i := range ps {
		r := radius * math.Sqrt(rng.Float64())
		a := rng.Float64() * 2 * math.Pi
		ps[i] = Particle{
			X:              cx + math.Cos(a)*r,
			Y:              cy + math.Sin(a)*r,
			Type:           rng.IntN(NumTypes),
			FormationSpeed: formationSpeedRange.Lerp(rng.Float64()),
		}
	}
}

// assignTargets hands out targets cyclically and overwrites each particle's
// type with its target's. An empty target set means no shape is available
// this cycle: targets are cleared and the phase timer simply runs its course.
// rerollSpeed distinguishes a new formation episode from a mid-episode
// reassignment (resize), which must not restagger particles already en route.
func assignTargets(ps []Particle, targets []Target, rng *rand.Rand, rerollSpeed bool) {
	if len(targets) == 0 {
		clearTargets(ps)
		return
	}
	for i := range ps {
		t := targets[i%len(targets)]
		ps[i].TargetX = t.X
		ps[i].TargetY = t.Y
		ps[i].HasTarget = true
		ps[i].Type = t.Type
		if rerollSpeed {
			ps[i].FormationSpeed = formationSpeedRange.Lerp(rng.Float64())
		}
	}
}

// clearTargets drops formation targets, returning the swarm to pure
// particle-life behavior. Target coordinates are left in place; they are
// meaningless once HasTarget is false.
func clearTargets(ps []Particle) {
	for i := range ps {
		ps[i].HasTarget = false
	}
}
