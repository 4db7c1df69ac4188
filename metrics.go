package ember

import "math"

// Metric observes the particle population and reduces it to one number. The
// driver picks the cadence: Observe per sampled frame, Value for the mean of
// everything since Reset, Last for the newest observation.
type Metric interface {
	Name() string
	Observe(ps []Particle)
	Value() float64
	Last() float64
	Reset()
}

// MeanSpeed tracks the average particle speed in units per second.
type MeanSpeed struct {
	last    float64
	total   float64
	samples int
}

func (m *MeanSpeed) Name() string { return "mean-speed" }

func (m *MeanSpeed) Observe(ps []Particle) {
	if len(ps) == 0 {
		return
	}
	var sum float64
	for i := range ps {
		sum += math.Hypot(ps[i].VX, ps[i].VY)
	}
	m.last = sum / float64(len(ps))
	m.total += m.last
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

// Last returns the newest observation.
func (m *MeanSpeed) Last() float64 { return m.last }

func (m *MeanSpeed) Reset() {
	m.last = 0
	m.total = 0
	m.samples = 0
}

// KineticEnergy tracks ½·v² summed over the population, unit mass.
type KineticEnergy struct {
	last    float64
	total   float64
	samples int
}

func (k *KineticEnergy) Name() string { return "kinetic-energy" }

func (k *KineticEnergy) Observe(ps []Particle) {
	var sum float64
	for i := range ps {
		sum += 0.5 * (ps[i].VX*ps[i].VX + ps[i].VY*ps[i].VY)
	}
	k.last = sum
	k.total += sum
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

// Last returns the newest observation.
func (k *KineticEnergy) Last() float64 { return k.last }

func (k *KineticEnergy) Reset() {
	k.last = 0
	k.total = 0
	k.samples = 0
}

// Spread tracks the RMS distance of particles from their centroid: low while
// a message is held, high in free flight. Positions are read as plane
// coordinates, so a swarm hugging the wrap seam reads wide.
type Spread struct {
	last    float64
	total   float64
	samples int
}

func (sp *Spread) Name() string { return "spread" }

func (sp *Spread) Observe(ps []Particle) {
	if len(ps) == 0 {
		return
	}
	var cx, cy float64
	for i := range ps {
		cx += ps[i].X
		cy += ps[i].Y
	}
	cx /= float64(len(ps))
	cy /= float64(len(ps))

	var sum float64
	for i := range ps {
		dx := ps[i].X - cx
		dy := ps[i].Y - cy
		sum += dx*dx + dy*dy
	}
	sp.last = math.Sqrt(sum / float64(len(ps)))
	sp.total += sp.last
	sp.samples++
}

func (sp *Spread) Value() float64 {
	if sp.samples == 0 {
		return 0
	}
	return sp.total / float64(sp.samples)
}

// Last returns the newest observation.
func (sp *Spread) Last() float64 { return sp.last }

func (sp *Spread) Reset() {
	sp.last = 0
	sp.total = 0
	sp.samples = 0
}
