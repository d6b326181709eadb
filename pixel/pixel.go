/*
Package pixel turns raw bytes into a square RGBA canvas.

Every three bytes of input become one colour triple, a trailing run of one or
two bytes is zero-padded. The triples are recoloured according to a ColorMode
and then placed on the canvas in the order given by an EffectStyle. Canvas
cells left over once the data runs out are filled with opaque black.

Nothing in this package performs I/O and every function is a pure function of
its arguments, so the same input and Config always produce the same image.
*/
package pixel

import "errors"

var (
	// ErrEmptyInput is returned when there are no bytes to convert.
	ErrEmptyInput = errors.New("pixel: empty input")
	// ErrInsufficientCanvas is returned when an explicit canvas side is too
	// small to hold every triple.
	ErrInsufficientCanvas = errors.New("pixel: canvas too small for data")
	// ErrUnknownColorMode is returned for a colour mode outside the
	// enumeration.
	ErrUnknownColorMode = errors.New("pixel: unknown colour mode")
	// ErrUnknownEffectStyle is returned for an effect style outside the
	// enumeration.
	ErrUnknownEffectStyle = errors.New("pixel: unknown effect style")
)

const (
	bytesPerTriple = 3

	defaultTileSize   = 8
	defaultBandHeight = 1
)

// Config selects how bytes are recoloured and laid out. The zero value is
// the plain row-major rendering with unmodified colours.
type Config struct {
	ColorMode   ColorMode
	EffectStyle EffectStyle

	// Side forces the canvas side length when greater than zero. It must be
	// large enough to hold every triple.
	Side int

	// TileSize is the tile edge used by the mosaic and blocks effects, it
	// defaults to 8 and is clamped to the canvas side.
	TileSize int

	// BandHeight is the number of rows in each band of the horizontal
	// effect, it defaults to 1.
	BandHeight int
}

func clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
