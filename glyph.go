package ember

import (
	"image"
	"math"
	"math/rand/v2"

	"golang.org/x/image/vector"
)

// Balloon glyph proportions, as fractions of the glyph height. The envelope
// is a teardrop: widest a third of the way down, tapering into a narrow neck
// where the ropes attach.
const (
	balloonHalfWidth  = 0.31
	balloonNeckHalf   = 0.05
	balloonNeckY      = 0.68
	balloonRopeHalf   = 0.008
	balloonBasketHalf = 0.10
	balloonBasketTop  = 0.84
	balloonBasketBot  = 0.98
	balloonCornerR    = 0.02
)

// sampleBalloon rasterizes the hot-air balloon glyph at the given height and
// samples it the same way text is sampled: 2× oversampling, alpha threshold,
// fixed stride, random color type per point. Points come back in glyph-local
// units, origin at the glyph's top-left, shuffled.
func sampleBalloon(height float64, rng *rand.Rand) []Target {
	if height <= 0 {
		return nil
	}
	scale := height * oversample
	imgW := int(math.Ceil(2*balloonHalfWidth*scale)) + rasterPad*2
	imgH := int(math.Ceil(scale)) + rasterPad*2
	if imgW <= 0 || imgH <= 0 {
		return nil
	}

	z := vector.NewRasterizer(imgW, imgH)
	// Coordinates below are fractions of the glyph height; f maps them to
	// oversampled pixels.
	f := func(v float64) float32 { return float32(v*scale + rasterPad) }
	xc := balloonHalfWidth

	// Envelope: two cubics per side, meeting at the neck.
	z.MoveTo(f(xc), f(0.02))
	z.CubeTo(f(xc-balloonHalfWidth*0.55), f(0.02), f(xc-balloonHalfWidth), f(0.14), f(xc-balloonHalfWidth), f(0.34))
	z.CubeTo(f(xc-balloonHalfWidth), f(0.52), f(xc-balloonNeckHalf), f(0.60), f(xc-balloonNeckHalf), f(balloonNeckY))
	z.LineTo(f(xc+balloonNeckHalf), f(balloonNeckY))
	z.CubeTo(f(xc+balloonNeckHalf), f(0.60), f(xc+balloonHalfWidth), f(0.52), f(xc+balloonHalfWidth), f(0.34))
	z.CubeTo(f(xc+balloonHalfWidth), f(0.14), f(xc+balloonHalfWidth*0.55), f(0.02), f(xc), f(0.02))
	z.ClosePath()

	// Ropes: thin quads from the neck lips to the basket rim.
	rope(z, f, xc-balloonNeckHalf, balloonNeckY, xc-balloonBasketHalf, balloonBasketTop)
	rope(z, f, xc+balloonNeckHalf, balloonNeckY, xc+balloonBasketHalf, balloonBasketTop)

	// Basket: rounded rectangle.
	roundedRect(z, f, xc-balloonBasketHalf, balloonBasketTop, xc+balloonBasketHalf, balloonBasketBot, balloonCornerR)

	img := image.NewAlpha(image.Rect(0, 0, imgW, imgH))
	z.Draw(img, img.Bounds(), image.Opaque, image.Point{})

	// The glyph is small; scan at the densest stride so the silhouette
	// stays recognizable with few recruits.
	const stride = 2
	var out []Target
	for y := 0; y < imgH; y += stride {
		row := img.Pix[y*img.Stride : y*img.Stride+imgW]
		for x := 0; x < imgW; x += stride {
			if row[x] > alphaThreshold {
				out = append(out, Target{
					X:    float64(x) / oversample,
					Y:    float64(y) / oversample,
					Type: rng.IntN(NumTypes),
				})
			}
		}
	}
	rng.Shuffle(len(out), func(a, b int) { out[a], out[b] = out[b], out[a] })
	return out
}

// rope adds a thin filled quad from (x1, y1) to (x2, y2).
func rope(z *vector.Rasterizer, f func(float64) float32, x1, y1, x2, y2 float64) {
	z.MoveTo(f(x1-balloonRopeHalf), f(y1))
	z.LineTo(f(x1+balloonRopeHalf), f(y1))
	z.LineTo(f(x2+balloonRopeHalf), f(y2))
	z.LineTo(f(x2-balloonRopeHalf), f(y2))
	z.ClosePath()
}

// roundedRect adds a rectangle with quadratic corner arcs.
func roundedRect(z *vector.Rasterizer, f func(float64) float32, x0, y0, x1, y1, r float64) {
	z.MoveTo(f(x0+r), f(y0))
	z.LineTo(f(x1-r), f(y0))
	z.QuadTo(f(x1), f(y0), f(x1), f(y0+r))
	z.LineTo(f(x1), f(y1-r))
	z.QuadTo(f(x1), f(y1), f(x1-r), f(y1))
	z.LineTo(f(x0+r), f(y1))
	z.QuadTo(f(x0), f(y1), f(x0), f(y1-r))
	z.LineTo(f(x0), f(y0+r))
	z.QuadTo(f(x0), f(y0), f(x0+r), f(y0))
	z.ClosePath()
}
