package pixel

import (
	"fmt"
	"math"
)

// Canvas describes the square grid that a number of triples is drawn onto.
type Canvas struct {
	Side    int
	Triples int
}

// Cells returns the number of cells on the canvas.
func (c Canvas) Cells() int {
	return c.Side * c.Side
}

// Filler returns the number of cells with no triple to fill them.
func (c Canvas) Filler() int {
	return c.Cells() - c.Triples
}

// ceilSqrt returns the smallest s such that s*s >= n.
func ceilSqrt(n int) int {
	s := int(math.Sqrt(float64(n)))
	for s*s < n {
		s++
	}
	for s > 0 && (s-1)*(s-1) >= n {
		s--
	}
	return s
}

// NewCanvas works out the smallest square canvas that holds triples colour
// triples. A side greater than zero overrides the computed side as long as
// the data still fits.
func NewCanvas(triples, side int) (Canvas, error) {
	if triples <= 0 {
		return Canvas{}, ErrEmptyInput
	}

	switch {
	case side < 0:
		return Canvas{}, fmt.Errorf("%w: side %d", ErrInsufficientCanvas, side)
	case side == 0:
		side = ceilSqrt(triples)
	case side*side < triples:
		return Canvas{}, fmt.Errorf("%w: side %d holds %d of %d triples", ErrInsufficientCanvas, side, side*side, triples)
	}

	return Canvas{
		Side:    side,
		Triples: triples,
	}, nil
}

// TripleCount returns the number of colour triples n bytes produce.
func TripleCount(n int) int {
	return (n + bytesPerTriple - 1) / bytesPerTriple
}
