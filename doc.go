// Package ember is a particle-life hero animation for [Ebitengine].
//
// Ember simulates a 2D artificial-life particle system, twelve particle
// species pushed and pulled by a signed attraction matrix, and periodically
// gathers the swarm into text silhouettes: a scripted intro sequence cycles
// through a list of messages, then the simulation settles into an infinite
// free-running phase that re-rolls its attraction matrix to stay novel.
//
// # Quick start
//
// Create a [System] from a [Config], start it with the canvas size, and call
// [System.Update] and [System.Draw] from an [ebiten.Game]:
//
//	type Game struct{ sys *ember.System }
//
//	func (g *Game) Update() error {
//		g.sys.SetVisible(ebiten.IsFocused())
//		g.sys.Update()
//		return nil
//	}
//	func (g *Game) Draw(screen *ebiten.Image) { g.sys.Draw(screen) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
//	func main() {
//		sys := ember.New(ember.DefaultConfig())
//		sys.Start(1280, 720)
//		ebiten.RunGame(&Game{sys: sys})
//	}
//
// See examples/hero for a complete host with window resizing, pointer
// forwarding, and focus-based pausing.
//
// # Phases
//
// A session moves through a fixed sequence of modes: the first message is
// shown immediately (particles spawn already formed), then each message
// dissolves into free particle life before the next one forms. One message
// may be flagged to trigger the balloon sub-animation, where a handful of
// particles peel off the dot of an "i" and rise as a hot-air balloon. After
// the last message the system free-runs forever.
//
// Progress through the one-time intro is reported by [System.Progress] and
// [System.Ready], excluding any time the host spent hidden
// ([System.SetVisible]).
//
// # Configuration
//
// [Config] covers messages, particle counts, phase durations, and feature
// toggles, loadable from YAML via [LoadConfig]. Named starting points are
// available through [Preset]. Easing for the balloon rise comes from
// [gween]; text silhouettes are rasterized with [x/image] fonts.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [x/image]: https://pkg.go.dev/golang.org/x/image
package ember
