package ember

import (
	"fmt"
	"image"
	"math"
	"math/rand/v2"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	// oversample renders silhouettes at double resolution, independent of
	// device pixel ratio, before sampling back to simulation units.
	oversample = 2
	// alphaThreshold is the coverage a pixel must exceed to become a target.
	alphaThreshold = 128
	// rasterPad keeps hinted glyph edges away from the buffer border, in
	// oversampled pixels.
	rasterPad = 4
)

// fontSizeRange clamps the responsive font size, in simulation units.
var fontSizeRange = Range{Min: 48, Max: 190}

// heroFont parses the embedded bold face once.
var heroFont = sync.OnceValues(func() (*opentype.Font, error) {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("ember: parse embedded font: %w", err)
	}
	return f, nil
})

// sampleText rasterizes a message and collects its silhouette as shuffled
// target points in simulation units. The font size tracks the smaller canvas
// axis, clamped, then shrinks further if the message would overflow the
// plane. Returns nil when no samples can be produced; callers treat that as
// "no shape available this cycle".
func sampleText(text string, w, h float64, rng *rand.Rand) []Target {
	if text == "" || w <= 0 || h <= 0 {
		return nil
	}
	fnt, err := heroFont()
	if err != nil {
		return nil
	}

	size := fontSizeRange.Clamp(math.Min(w, h) * 0.28)
	width, err := measureText(fnt, text, size*oversample)
	if err != nil {
		return nil
	}
	if maxW := w * oversample * 0.92; width > maxW && width > 0 {
		size *= maxW / width
	}

	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size * oversample,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil
	}
	defer face.Close()

	adv := font.MeasureString(face, text)
	met := face.Metrics()
	imgW := adv.Ceil() + rasterPad*2
	imgH := (met.Ascent + met.Descent).Ceil() + rasterPad*2
	if imgW <= 0 || imgH <= 0 {
		return nil
	}

	img := image.NewAlpha(image.Rect(0, 0, imgW, imgH))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(rasterPad, rasterPad),
	}
	d.Dot.Y += met.Ascent
	d.DrawString(text)

	// Scan the raster, centering the block on the plane. Assignment order is
	// shuffled afterward: scan order would stripe the shape when targets are
	// handed out cyclically.
	stride := strideFor(size * oversample)
	offX := (w - float64(imgW)/oversample) / 2
	offY := (h - float64(imgH)/oversample) / 2
	var out []Target
	for y := 0; y < imgH; y += stride {
		row := img.Pix[y*img.Stride : y*img.Stride+imgW]
		for x := 0; x < imgW; x += stride {
			if row[x] > alphaThreshold {
				out = append(out, Target{
					X:    offX + float64(x)/oversample,
					Y:    offY + float64(y)/oversample,
					Type: rng.IntN(NumTypes),
				})
			}
		}
	}
	rng.Shuffle(len(out), func(a, b int) { out[a], out[b] = out[b], out[a] })
	return out
}

// measureText returns the advance width of text at the given pixel size.
func measureText(fnt *opentype.Font, text string, px float64) (float64, error) {
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return 0, err
	}
	defer face.Close()
	return float64(font.MeasureString(face, text)) / 64, nil
}

// strideFor picks the scan stride in oversampled pixels. Small fonts scan
// denser so short messages still yield enough targets; large fonts scan
// sparser to keep target counts near the particle population.
func strideFor(px float64) int {
	s := int(math.Round(px / 55))
	if s < 2 {
		s = 2
	}
	if s > 6 {
		s = 6
	}
	return s
}
