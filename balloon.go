package ember

import (
	"math"
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Dot-cluster heuristic tuning. The balloon lifts off from the dot of an
// "i", found as an isolated, small, narrow cluster in the top band of the
// held silhouette, preferably near dotSearchFrac of the line's width.
const (
	dotSearchFrac   = 0.72
	dotBandFrac     = 0.22
	dotMaxWidthFrac = 0.10
	dotMaxShare     = 0.05
	dotGapUnits     = 6.0
	dotIsolationGap = 5.0
)

const (
	balloonSwayAmp = 6.0
	balloonSwayHz  = 0.35
)

// balloonState drives the balloon sub-animation. The glyph is sampled once
// at entry and cached as offsets from its own centroid; each frame moves
// only the centroid. Re-sampling per frame at a moving base makes the shape
// shimmer visibly.
type balloonState struct {
	recruits     []int32
	offsets      []Target
	baseX, baseY float64
	rise         *gween.Tween
	elapsed      float64
}

// balloonEnter locates the lift-off point, recruits the nearest particles,
// and caches the balloon glyph. With no silhouette on screen there is
// nothing to lift from; the phase then just runs its timer with the swarm
// held as-is.
func (s *System) balloonEnter() {
	s.balloon = balloonState{}
	if len(s.targets) == 0 || len(s.particles) == 0 {
		s.log.Debugw("balloon skipped", "targets", len(s.targets))
		return
	}

	dotX, dotY, ok := findDotCluster(s.targets)
	if !ok {
		dotX, dotY = topmostBand(s.targets)
	}

	glyphH := clamp(math.Min(s.width, s.height)*0.18, 40, 110)
	samples := sampleBalloon(glyphH, s.rng)
	if len(samples) == 0 {
		return
	}
	var cx, cy float64
	for _, t := range samples {
		cx += t.X
		cy += t.Y
	}
	cx /= float64(len(samples))
	cy /= float64(len(samples))
	offsets := make([]Target, len(samples))
	for i, t := range samples {
		offsets[i] = Target{X: t.X - cx, Y: t.Y - cy, Type: t.Type}
	}

	n := len(offsets)
	if limit := len(s.particles) / 4; n > limit {
		n = limit
	}

	riseDist := dotY * 0.75

	s.balloon = balloonState{
		recruits: nearestParticles(s.particles, dotX, dotY, n),
		offsets:  offsets,
		baseX:    dotX,
		baseY:    dotY,
		rise:     gween.New(0, float32(riseDist), float32(s.cfg.Durations.BalloonRise), ease.InOutQuad),
	}
	s.log.Debugw("balloon recruited",
		"recruits", n,
		"samples", len(offsets),
		"dot_x", dotX,
		"dot_y", dotY,
		"fallback", !ok,
	)
}

// balloonUpdate advances the centroid along the rise tween with a slight
// sway and re-points every recruit at centroid + cached offset. Recruits
// keep these targets until the next phase hands out new ones; there is no
// exit work.
func (s *System) balloonUpdate(dt float64) {
	b := &s.balloon
	if len(b.recruits) == 0 {
		return
	}
	b.elapsed += dt
	rise, _ := b.rise.Update(float32(dt))
	x := b.baseX + math.Sin(b.elapsed*2*math.Pi*balloonSwayHz)*balloonSwayAmp
	y := b.baseY - float64(rise)

	for k, idx := range b.recruits {
		off := b.offsets[k%len(b.offsets)]
		p := &s.particles[idx]
		p.TargetX = x + off.X
		p.TargetY = y + off.Y
		p.HasTarget = true
	}
}

// nearestParticles returns the indices of the n particles closest to (x, y).
func nearestParticles(ps []Particle, x, y float64, n int) []int32 {
	idx := make([]int32, len(ps))
	for i := range idx {
		idx[i] = int32(i)
	}
	sort.Slice(idx, func(a, b int) bool {
		pa, pb := &ps[idx[a]], &ps[idx[b]]
		da := (pa.X-x)*(pa.X-x) + (pa.Y-y)*(pa.Y-y)
		db := (pb.X-x)*(pb.X-x) + (pb.Y-y)*(pb.Y-y)
		return da < db
	})
	if n > len(idx) {
		n = len(idx)
	}
	return idx[:n:n]
}

// findDotCluster looks for the dot glyph in the silhouette's top band:
// clusters of band points split on horizontal gaps, capped in width and
// share of total points, with clear space below (the dot floats above its
// stem). Among candidates the one nearest the expected horizontal fraction
// wins. ok is false when nothing qualifies.
func findDotCluster(targets []Target) (float64, float64, bool) {
	if len(targets) == 0 {
		return 0, 0, false
	}
	minX, minY := targets[0].X, targets[0].Y
	maxX, maxY := minX, minY
	for _, t := range targets {
		minX = math.Min(minX, t.X)
		maxX = math.Max(maxX, t.X)
		minY = math.Min(minY, t.Y)
		maxY = math.Max(maxY, t.Y)
	}
	boxW := maxX - minX
	boxH := maxY - minY
	if boxW <= 0 || boxH <= 0 {
		return 0, 0, false
	}
	bandY := minY + boxH*dotBandFrac

	band := make([]Target, 0, len(targets)/4)
	for _, t := range targets {
		if t.Y <= bandY {
			band = append(band, t)
		}
	}
	if len(band) == 0 {
		return 0, 0, false
	}
	sort.Slice(band, func(a, b int) bool { return band[a].X < band[b].X })

	maxCount := int(float64(len(targets)) * dotMaxShare)
	if maxCount < 3 {
		maxCount = 3
	}
	wantX := minX + boxW*dotSearchFrac

	bestX, bestY := 0.0, 0.0
	bestDist := math.Inf(1)
	found := false

	start := 0
	for i := 1; i <= len(band); i++ {
		if i < len(band) && band[i].X-band[i-1].X <= dotGapUnits {
			continue
		}
		run := band[start:i]
		start = i

		runMinX, runMaxX := run[0].X, run[len(run)-1].X
		if len(run) > maxCount || runMaxX-runMinX > boxW*dotMaxWidthFrac {
			continue
		}
		var cx, cy, runMaxY float64
		for _, t := range run {
			cx += t.X
			cy += t.Y
			runMaxY = math.Max(runMaxY, t.Y)
		}
		cx /= float64(len(run))
		cy /= float64(len(run))

		// Isolation: nothing directly below the run for a visible gap.
		isolated := true
		for _, t := range targets {
			if t.X >= runMinX-1 && t.X <= runMaxX+1 &&
				t.Y > runMaxY && t.Y < runMaxY+dotIsolationGap {
				isolated = false
				break
			}
		}
		if !isolated {
			continue
		}

		if d := math.Abs(cx - wantX); d < bestDist {
			bestDist = d
			bestX, bestY = cx, cy
			found = true
		}
	}
	return bestX, bestY, found
}

// topmostBand is the fallback lift-off point: the centroid of the highest
// few percent of targets.
func topmostBand(targets []Target) (float64, float64) {
	byY := make([]Target, len(targets))
	copy(byY, targets)
	sort.Slice(byY, func(a, b int) bool { return byY[a].Y < byY[b].Y })

	n := len(byY) / 20
	if n < 8 {
		n = 8
	}
	if n > len(byY) {
		n = len(byY)
	}
	var cx, cy float64
	for _, t := range byY[:n] {
		cx += t.X
		cy += t.Y
	}
	return cx / float64(n), cy / float64(n)
}
