package ember

import "math"

// Physics constants. Distances are simulation-plane units, forces are units
// per second squared.
const (
	// interactionRadius is the pair-force cutoff and the spatial grid's cell
	// size.
	interactionRadius = 80.0
	// repulsionRadius is the short-range separation zone. Inside it the pair
	// force ignores the matrix and always separates.
	repulsionRadius = 8.0
	repulsionScale  = 50.0
	// maxForce scales the matrix-weighted attraction.
	maxForce = 80.0
	// formationBase scales the pull toward formation targets.
	formationBase = 300.0
	// arrivalDeadZone is the radius around a target with no formation pull,
	// killing jitter at convergence.
	arrivalDeadZone = 1.0
	pointerRadius   = 120.0
	pointerMaxForce = 800.0
	// explosionForce is the starting magnitude of the radial blast; it
	// decays linearly to zero over the phase.
	explosionForce = 320.0
	// frictionFactor is applied to velocity once per frame, not per second.
	// The recorded motion depends on the per-frame application; do not
	// convert to framerate-independent damping.
	frictionFactor = 0.88
	maxSpeed       = 250.0
	// maxDT caps the frame delta so a stalled host cannot produce a huge
	// integration jump.
	maxDT = 0.1

	goldenAngle = 2.399963229728653
)

// pairForce returns the signed force magnitude between two particles at
// distance d given their attraction weight a. Positive pulls them together,
// negative pushes apart. Zero at coincidence and beyond the interaction
// radius; inside the repulsion radius the result is always separating,
// whatever a says.
func pairForce(d, a float64) float64 {
	if d <= 0 || d > interactionRadius {
		return 0
	}
	if d < repulsionRadius {
		return -repulsionScale * (repulsionRadius - d) / repulsionRadius
	}
	return a * (1 - d/interactionRadius) * maxForce
}

// step advances every particle by dt seconds: force accumulation from the
// grid, phase blast, formation pull and pointer repulsion, then integration
// with per-frame friction, speed clamp, and toroidal wrap. Allocates
// nothing.
func (s *System) step(dt float64) {
	w, h := s.width, s.height
	dur := s.modeDuration(s.mode)
	frac := 0.0
	if dur > 0 {
		frac = s.modeElapsed().Seconds() / dur
	}
	wts := weightsFor(s.mode, frac)

	blast := 0.0
	if s.mode == ModeExplosion || s.mode == ModeDissolving {
		blast = explosionForce * (1 - clamp(frac, 0, 1))
	}
	pointer := s.pointerOn && s.cfg.Pointer && s.mode == ModeParticleLife
	centerX, centerY := w/2, h/2

	var cells [9]int32
	for i := range s.particles {
		p := &s.particles[i]
		fx, fy := 0.0, 0.0

		if wts.life > 0 {
			col, row := s.grid.cellCoords(p.X, p.Y)
			nc := s.grid.neighborCells(col, row, &cells)
			for c := 0; c < nc; c++ {
				lo, hi := s.grid.cellRange(cells[c])
				for k := lo; k < hi; k++ {
					j := s.grid.indices[k]
					if int(j) == i {
						continue
					}
					q := &s.particles[j]
					dx := shortestDelta(q.X-p.X, w)
					dy := shortestDelta(q.Y-p.Y, h)
					d2 := dx*dx + dy*dy
					if d2 < 1e-12 || d2 > interactionRadius*interactionRadius {
						continue
					}
					d := math.Sqrt(d2)
					mag := pairForce(d, s.matrix[p.Type][q.Type])
					if mag == 0 {
						continue
					}
					scale := mag / d * wts.life
					fx += dx * scale
					fy += dy * scale
				}
			}
		}

		if blast > 0 {
			// EXPLOSION blasts from the canvas center, DISSOLVING from the
			// particle's own former target, scattering the silhouette
			// outward along its own shape.
			ox, oy := centerX, centerY
			if s.mode == ModeDissolving && p.HasTarget {
				ox, oy = p.TargetX, p.TargetY
			}
			dx := shortestDelta(p.X-ox, w)
			dy := shortestDelta(p.Y-oy, h)
			d2 := dx*dx + dy*dy
			if d2 < 1e-12 {
				// Sitting exactly on the origin. A stable per-particle
				// direction fans the burst out instead of dividing by zero.
				a := float64(i) * goldenAngle
				dx, dy = math.Cos(a), math.Sin(a)
				d2 = 1
			}
			d := math.Sqrt(d2)
			fx += dx / d * blast
			fy += dy / d * blast
		}

		if wts.formation > 0 && p.HasTarget {
			// Formation pull is straight-line, not toroidal: silhouettes
			// are centered on the plane and never straddle the seam.
			dx := p.TargetX - p.X
			dy := p.TargetY - p.Y
			d := math.Sqrt(dx*dx + dy*dy)
			if d > arrivalDeadZone {
				f := formationBase * wts.formation * p.FormationSpeed / d
				fx += dx * f
				fy += dy * f
			}
		}

		if pointer {
			dx := p.X - s.pointerX
			dy := p.Y - s.pointerY
			d2 := dx*dx + dy*dy
			if d2 > 1e-12 && d2 < pointerRadius*pointerRadius {
				d := math.Sqrt(d2)
				falloff := 1 - d/pointerRadius
				f := pointerMaxForce * falloff * falloff / d
				fx += dx * f
				fy += dy * f
			}
		}

		p.VX += fx * dt
		p.VY += fy * dt
		p.VX *= frictionFactor
		p.VY *= frictionFactor
		v2 := p.VX*p.VX + p.VY*p.VY
		if v2 > maxSpeed*maxSpeed {
			k := maxSpeed / math.Sqrt(v2)
			p.VX *= k
			p.VY *= k
		}
		p.X = wrapCoord(p.X+p.VX*dt, w)
		p.Y = wrapCoord(p.Y+p.VY*dt, h)
	}
}

// wrapCoord wraps v into [0, size).
func wrapCoord(v, size float64) float64 {
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	return v
}

// shortestDelta folds a coordinate difference onto the torus, so in-plane
// and across-seam separations compare correctly.
func shortestDelta(d, size float64) float64 {
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}
