package pixel

import (
	"fmt"
	"image/color"

	"github.com/bodgit/bin2art/palette"
)

// ColorMode selects how each triple is recoloured.
type ColorMode int

// Colour modes
const (
	Normal ColorMode = iota
	Amplified
	Neon
	GameBoy
	CPC
	C64
	Spectrum
	Complement
	Grayscale
	Sepia
	Pastel
)

var colorModeNames = [...]string{
	Normal:     "normal",
	Amplified:  "amplified",
	Neon:       "neon",
	GameBoy:    palette.GameBoy,
	CPC:        palette.CPC,
	C64:        palette.C64,
	Spectrum:   palette.Spectrum,
	Complement: "complement",
	Grayscale:  "grayscale",
	Sepia:      "sepia",
	Pastel:     "pastel",
}

const (
	// amplifyGain is how far each channel is pushed away from the midpoint
	amplifyGain = 2
	midpoint    = 128

	// neonGain scales each channel up, keeping channel ratios until one
	// saturates
	neonGain = 1.5
)

func (m ColorMode) String() string {
	if m < 0 || int(m) >= len(colorModeNames) {
		return fmt.Sprintf("ColorMode(%d)", int(m))
	}
	return colorModeNames[m]
}

// ColorModes returns every colour mode in declaration order.
func ColorModes() []ColorMode {
	modes := make([]ColorMode, len(colorModeNames))
	for i := range modes {
		modes[i] = ColorMode(i)
	}
	return modes
}

// ParseColorMode returns the colour mode with the given name.
func ParseColorMode(s string) (ColorMode, error) {
	for i, n := range colorModeNames {
		if n == s {
			return ColorMode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColorMode, s)
}

// Quantized reports whether the mode snaps colours to a hardware palette.
func (m ColorMode) Quantized() bool {
	switch m {
	case GameBoy, CPC, C64, Spectrum:
		return true
	}
	return false
}

// A Transformer recolours a single opaque triple.
type Transformer func(color.RGBA) color.RGBA

func clampChannel(v int) uint8 {
	return uint8(clamp(v, 0, 0xff))
}

func amplify(v uint8) uint8 {
	return clampChannel(midpoint + (int(v)-midpoint)*amplifyGain)
}

func neon(v uint8) uint8 {
	return clampChannel(int(float64(v) * neonGain))
}

func identity(c color.RGBA) color.RGBA {
	return c
}

func amplified(c color.RGBA) color.RGBA {
	return color.RGBA{amplify(c.R), amplify(c.G), amplify(c.B), 0xff}
}

func neonTransform(c color.RGBA) color.RGBA {
	return color.RGBA{neon(c.R), neon(c.G), neon(c.B), 0xff}
}

func complement(c color.RGBA) color.RGBA {
	return color.RGBA{0xff - c.R, 0xff - c.G, 0xff - c.B, 0xff}
}

func grayscale(c color.RGBA) color.RGBA {
	y := clampChannel(int(0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)))
	return color.RGBA{y, y, y, 0xff}
}

func sepia(c color.RGBA) color.RGBA {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	return color.RGBA{
		clampChannel(int(0.393*r + 0.769*g + 0.189*b)),
		clampChannel(int(0.349*r + 0.686*g + 0.168*b)),
		clampChannel(int(0.272*r + 0.534*g + 0.131*b)),
		0xff,
	}
}

func pastel(c color.RGBA) color.RGBA {
	return color.RGBA{
		uint8((int(c.R) + 0xff) / 2),
		uint8((int(c.G) + 0xff) / 2),
		uint8((int(c.B) + 0xff) / 2),
		0xff,
	}
}

// NewTransformer returns the Transformer for mode m. Palette modes look
// their palette up once here rather than on every call.
func NewTransformer(m ColorMode) (Transformer, error) {
	switch m {
	case Normal:
		return identity, nil
	case Amplified:
		return amplified, nil
	case Neon:
		return neonTransform, nil
	case Complement:
		return complement, nil
	case Grayscale:
		return grayscale, nil
	case Sepia:
		return sepia, nil
	case Pastel:
		return pastel, nil
	case GameBoy, CPC, C64, Spectrum:
		p, err := palette.Lookup(m.String())
		if err != nil {
			return nil, err
		}
		return p.Nearest, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownColorMode, m)
	}
}

// Transform recolours a single triple under mode m.
func Transform(c color.RGBA, m ColorMode) (color.RGBA, error) {
	t, err := NewTransformer(m)
	if err != nil {
		return color.RGBA{}, err
	}
	return t(color.RGBA{c.R, c.G, c.B, 0xff}), nil
}
