package ember

import (
	"image/color"
	"math"
)

// NumTypes is the number of particle species. Each type selects a display
// color and a row/column in the attraction matrix.
const NumTypes = 12

// Target is one sampled silhouette point: a position in simulation-plane
// units plus the particle type that should occupy it.
type Target struct {
	X, Y float64
	Type int
}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Lerp maps t in [0, 1] onto the range.
func (r Range) Lerp(t float64) float64 {
	return r.Min + (r.Max-r.Min)*t
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// typePalette holds the display color for each particle type: NumTypes hues
// evenly spaced around the HSV wheel at fixed saturation and value.
var typePalette = buildPalette()

func buildPalette() [NumTypes]color.RGBA {
	var pal [NumTypes]color.RGBA
	for i := range pal {
		hue := float64(i) / NumTypes * 360
		r, g, b := hsvToRGB(hue, 0.8, 1)
		pal[i] = color.RGBA{
			R: uint8(r * 255),
			G: uint8(g * 255),
			B: uint8(b * 255),
			A: 255,
		}
	}
	return pal
}

// TypeColor returns the display color for a particle type. Types outside
// [0, NumTypes) wrap around.
func TypeColor(t int) color.RGBA {
	return typePalette[((t%NumTypes)+NumTypes)%NumTypes]
}

// hsvToRGB converts hue in degrees, saturation and value in [0, 1] to RGB
// components in [0, 1].
func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}
