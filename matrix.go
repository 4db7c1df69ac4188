package ember

import "math/rand/v2"

// Matrix is the signed attraction table. Entry [i][j] is how strongly a
// particle of type i is drawn toward (positive) or pushed from (negative) a
// particle of type j. Values stay in [-1, 1].
type Matrix [NumTypes][NumTypes]float64

// MatrixPreset names one of the attraction-matrix generation rules.
type MatrixPreset string

const (
	PresetRandom   MatrixPreset = "random"
	PresetPlanets  MatrixPreset = "planets"
	PresetSnakes   MatrixPreset = "snakes"
	PresetChaos    MatrixPreset = "chaos"
	PresetBalanced MatrixPreset = "balanced"
	PresetSpirals  MatrixPreset = "spirals"
	PresetClusters MatrixPreset = "clusters"
)

// MatrixPresets lists every preset GenerateMatrix can pick from.
var MatrixPresets = []MatrixPreset{
	PresetRandom,
	PresetPlanets,
	PresetSnakes,
	PresetChaos,
	PresetBalanced,
	PresetSpirals,
	PresetClusters,
}

// GenerateMatrix picks a preset uniformly at random and returns its matrix.
// Called on every non-terminal entry into the free-running phase and on the
// re-roll interval of the infinite tail, so the emergent behavior keeps
// changing.
func GenerateMatrix(rng *rand.Rand) (Matrix, MatrixPreset) {
	preset := MatrixPresets[rng.IntN(len(MatrixPresets))]
	return GenerateMatrixPreset(preset, rng), preset
}

// GenerateMatrixPreset builds the matrix for a named preset. Unknown names
// fall back to PresetRandom.
func GenerateMatrixPreset(preset MatrixPreset, rng *rand.Rand) Matrix {
	var m Matrix
	switch preset {
	case PresetPlanets:
		fillPlanets(&m)
	case PresetSnakes:
		fillSnakes(&m)
	case PresetChaos:
		fillChaos(&m, rng)
	case PresetBalanced:
		fillBalanced(&m, rng)
	case PresetSpirals:
		fillSpirals(&m)
	case PresetClusters:
		fillClusters(&m, rng)
	default:
		fillRandom(&m, rng)
	}
	clampMatrix(&m)
	return m
}

// ringDist is the circular distance between two type indices.
func ringDist(i, j int) int {
	d := i - j
	if d < 0 {
		d = -d
	}
	if d > NumTypes/2 {
		d = NumTypes - d
	}
	return d
}

// fillRandom draws every cell uniformly from [-1, 1].
func fillRandom(m *Matrix, rng *rand.Rand) {
	for i := range m {
		for j := range m[i] {
			m[i][j] = rng.Float64()*2 - 1
		}
	}
}

// fillPlanets makes each type self-repelling but strongly drawn to its ring
// neighbors, so types settle into orbiting blobs.
func fillPlanets(m *Matrix) {
	for i := range m {
		for j := range m[i] {
			switch {
			case i == j:
				m[i][j] = -0.5
			case ringDist(i, j) == 1:
				m[i][j] = 0.8
			default:
				m[i][j] = -0.2
			}
		}
	}
}

// fillSnakes chains the types: each chases its successor and flees its
// predecessor, which strings particles into moving trains.
func fillSnakes(m *Matrix) {
	for i := range m {
		for j := range m[i] {
			switch {
			case j == (i+1)%NumTypes:
				m[i][j] = 0.9
			case j == (i+NumTypes-1)%NumTypes:
				m[i][j] = -0.7
			case i == j:
				m[i][j] = 0.2
			default:
				m[i][j] = -0.1
			}
		}
	}
}

// fillChaos layers strong noise over a per-row bias so whole types lurch in
// shared directions while individual pairings stay unpredictable.
func fillChaos(m *Matrix, rng *rand.Rand) {
	for i := range m {
		bias := rng.Float64()*2 - 1
		for j := range m[i] {
			m[i][j] = bias*0.5 + (rng.Float64()*2-1)*0.9
		}
	}
}

// fillBalanced draws a symmetric matrix with moderate magnitudes; symmetric
// forces conserve momentum pairwise, giving drifting, stable structures.
func fillBalanced(m *Matrix, rng *rand.Rand) {
	for i := range m {
		for j := i; j < NumTypes; j++ {
			v := (rng.Float64()*2 - 1) * 0.6
			m[i][j] = v
			m[j][i] = v
		}
	}
}

// fillSpirals attracts each type to the next few indices and repels the
// previous few. The asymmetry makes clusters rotate as they chase.
func fillSpirals(m *Matrix) {
	for i := range m {
		for j := range m[i] {
			delta := (j - i + NumTypes) % NumTypes
			switch {
			case delta == 0:
				m[i][j] = -0.3
			case delta <= 3:
				m[i][j] = 0.7 * (1 - float64(delta-1)/3)
			case delta >= NumTypes-3:
				m[i][j] = -0.5 * (1 - float64(NumTypes-1-delta)/3)
			default:
				m[i][j] = -0.1
			}
		}
	}
}

// fillClusters groups the types into blocks of three: warm within a block,
// cold across blocks, so the swarm separates into distinct colonies.
func fillClusters(m *Matrix, rng *rand.Rand) {
	for i := range m {
		for j := range m[i] {
			noise := (rng.Float64()*2 - 1) * 0.1
			if i/3 == j/3 {
				m[i][j] = 0.7 + noise
			} else {
				m[i][j] = -0.3 + noise
			}
		}
	}
}

func clampMatrix(m *Matrix) {
	for i := range m {
		for j := range m[i] {
			m[i][j] = clamp(m[i][j], -1, 1)
		}
	}
}
