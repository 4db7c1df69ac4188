package ember

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerTracker polls ebiten's mouse and touch state once per frame and
// feeds the result to a System. Touches win over the mouse cursor, so the
// repulsor still works on phones where CursorPosition reports a stale point.
// The zero value is ready to use.
type PointerTracker struct {
	touchIDs []ebiten.TouchID
}

// Apply reads the current pointer state and forwards it to sys. w and h are
// the logical canvas size in the same units ebiten reports positions in; a
// mouse cursor outside that box counts as inactive.
func (t *PointerTracker) Apply(sys *System, w, h float64) {
	t.touchIDs = ebiten.AppendTouchIDs(t.touchIDs[:0])
	if len(t.touchIDs) > 0 {
		x, y := ebiten.TouchPosition(t.touchIDs[0])
		sys.SetPointer(float64(x), float64(y), true)
		return
	}

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	inside := x >= 0 && x < w && y >= 0 && y < h
	sys.SetPointer(x, y, inside)
}
