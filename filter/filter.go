/*
Package filter implements the post-processing applied to a rendered canvas
before it is encoded: blur, colour and contrast enhancement, posterization,
scaling and a retro scanline effect.
*/
package filter

import (
	"image"
	"image/color"

	"github.com/disintegration/gift"
	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"
)

const (
	// BlurSigma is the standard deviation of the Gaussian blur
	BlurSigma = 2.0
	// Saturation is the percentage colour saturation is increased by
	Saturation = 50
	// Contrast is the percentage contrast is increased by
	Contrast = 30
	// PosterColors is the number of colours left after posterizing
	PosterColors = 8

	// Odd rows are scaled to scanlineShade/256 of their brightness
	scanlineShade = 154
)

// Options selects which filters run.
type Options struct {
	Blur            bool
	EnhanceColor    bool
	EnhanceContrast bool
	Posterize       bool
	Scanlines       bool
}

// All returns Options with every filter enabled except scanlines, which
// changes the image geometry rather than its colours.
func All() Options {
	return Options{
		Blur:            true,
		EnhanceColor:    true,
		EnhanceContrast: true,
		Posterize:       true,
	}
}

func toRGBA(m image.Image) *image.RGBA {
	if rgba, ok := m.(*image.RGBA); ok {
		return rgba
	}
	b := m.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, m, b.Min, draw.Src)
	return rgba
}

// Apply runs the enabled colour filters over m in a fixed order: blur,
// saturation, contrast and finally posterize. m is never modified.
func Apply(m image.Image, o Options) *image.RGBA {
	var filters []gift.Filter
	if o.Blur {
		filters = append(filters, gift.GaussianBlur(BlurSigma))
	}
	if o.EnhanceColor {
		filters = append(filters, gift.Saturation(Saturation))
	}
	if o.EnhanceContrast {
		filters = append(filters, gift.Contrast(Contrast))
	}

	out := toRGBA(m)
	if len(filters) > 0 {
		g := gift.New(filters...)
		dst := image.NewRGBA(g.Bounds(m.Bounds()))
		g.Draw(dst, m)
		out = dst
	}

	if o.Posterize {
		out = Posterize(out, PosterColors)
	}

	return out
}

// Posterize reduces m to at most n colours chosen by median cut.
func Posterize(m image.Image, n int) *image.RGBA {
	b := m.Bounds()

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	out := image.NewRGBA(b)
	draw.Draw(out, b, pm, b.Min, draw.Src)
	return out
}

// Resize scales m to a size×size square with nearest-neighbour sampling so
// that each canvas cell stays a hard-edged block.
func Resize(m image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), m, m.Bounds(), draw.Src, nil)
	return dst
}

// Scanlines darkens every other row of m in place.
func Scanlines(m *image.RGBA) {
	b := m.Bounds()
	for y := b.Min.Y + 1; y < b.Max.Y; y += 2 {
		row := m.Pix[m.PixOffset(b.Min.X, y):m.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			row[i+0] = uint8(uint32(row[i+0]) * scanlineShade >> 8)
			row[i+1] = uint8(uint32(row[i+1]) * scanlineShade >> 8)
			row[i+2] = uint8(uint32(row[i+2]) * scanlineShade >> 8)
		}
	}
}
