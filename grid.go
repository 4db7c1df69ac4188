package ember

// grid is the per-frame uniform spatial index. Cells are at least
// interactionRadius on each side, so all pair candidates for a particle sit
// in the 3×3 block of cells around its own, with cell indices wrapping
// toroidally to match position wraparound. Rebuilt every frame with a
// counting sort into preallocated slices; steady-state rebuilds allocate
// nothing.
type grid struct {
	cols, rows   int
	cellW, cellH float64

	// starts holds prefix offsets into indices (len cols*rows+1); cell c's
	// particles are indices[starts[c]:starts[c+1]]. cursor is rebuild
	// scratch.
	starts  []int32
	cursor  []int32
	indices []int32
}

// resize recomputes the cell layout for a plane of w×h units. Cells stretch
// to tile the plane exactly, never shrinking below the interaction radius.
func (g *grid) resize(w, h float64) {
	cols := int(w / interactionRadius)
	if cols < 1 {
		cols = 1
	}
	rows := int(h / interactionRadius)
	if rows < 1 {
		rows = 1
	}
	g.cols, g.rows = cols, rows
	g.cellW = w / float64(cols)
	g.cellH = h / float64(rows)

	n := cols * rows
	if cap(g.starts) < n+1 {
		g.starts = make([]int32, n+1)
		g.cursor = make([]int32, n)
	} else {
		g.starts = g.starts[:n+1]
		g.cursor = g.cursor[:n]
	}
}

// rebuild refills the buckets from current particle positions. Must run
// after every position update and before force evaluation.
func (g *grid) rebuild(ps []Particle) {
	if cap(g.indices) < len(ps) {
		g.indices = make([]int32, len(ps))
	} else {
		g.indices = g.indices[:len(ps)]
	}

	for i := range g.starts {
		g.starts[i] = 0
	}
	for i := range ps {
		c := g.cellOf(ps[i].X, ps[i].Y)
		g.starts[c+1]++
	}
	for c := 0; c < len(g.cursor); c++ {
		g.starts[c+1] += g.starts[c]
		g.cursor[c] = g.starts[c]
	}
	for i := range ps {
		c := g.cellOf(ps[i].X, ps[i].Y)
		g.indices[g.cursor[c]] = int32(i)
		g.cursor[c]++
	}
}

// cellOf maps a position to its cell index. Positions are expected in
// [0, w) × [0, h); float edge cases clamp into the last cell.
func (g *grid) cellOf(x, y float64) int {
	cx := int(x / g.cellW)
	if cx < 0 {
		cx = 0
	} else if cx >= g.cols {
		cx = g.cols - 1
	}
	cy := int(y / g.cellH)
	if cy < 0 {
		cy = 0
	} else if cy >= g.rows {
		cy = g.rows - 1
	}
	return cy*g.cols + cx
}

// cellCoords returns the column and row of a position's cell.
func (g *grid) cellCoords(x, y float64) (int, int) {
	c := g.cellOf(x, y)
	return c % g.cols, c / g.cols
}

// neighborCells writes the cell indices of the 3×3 block around (cx, cy)
// into buf, wrapping toroidally, and returns how many were written. When the
// grid is narrower than three cells in either axis the wrapped block would
// visit cells twice and double-count pairs, so duplicates are dropped.
func (g *grid) neighborCells(cx, cy int, buf *[9]int32) int {
	n := 0
	for oy := -1; oy <= 1; oy++ {
		wy := wrapIndex(cy+oy, g.rows)
		for ox := -1; ox <= 1; ox++ {
			wx := wrapIndex(cx+ox, g.cols)
			c := int32(wy*g.cols + wx)
			dup := false
			for k := 0; k < n; k++ {
				if buf[k] == c {
					dup = true
					break
				}
			}
			if !dup {
				buf[n] = c
				n++
			}
		}
	}
	return n
}

// cellRange returns the half-open range of g.indices holding cell c's
// particles.
func (g *grid) cellRange(c int32) (int32, int32) {
	return g.starts[c], g.starts[c+1]
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
