package pixel

import (
	"fmt"
	"image"
)

// EffectStyle selects the order in which triples are laid onto the canvas.
type EffectStyle int

// Effect styles
const (
	None EffectStyle = iota
	Mosaic
	Hilbert
	Radial
	Horizontal
	Diagonal
	Blocks
)

var effectStyleNames = [...]string{
	None:       "none",
	Mosaic:     "mosaic",
	Hilbert:    "hilbert",
	Radial:     "radial",
	Horizontal: "horizontal",
	Diagonal:   "diagonal",
	Blocks:     "blocks",
}

func (e EffectStyle) String() string {
	if e < 0 || int(e) >= len(effectStyleNames) {
		return fmt.Sprintf("EffectStyle(%d)", int(e))
	}
	return effectStyleNames[e]
}

// EffectStyles returns every effect style in declaration order.
func EffectStyles() []EffectStyle {
	styles := make([]EffectStyle, len(effectStyleNames))
	for i := range styles {
		styles[i] = EffectStyle(i)
	}
	return styles
}

// ParseEffectStyle returns the effect style with the given name.
func ParseEffectStyle(s string) (EffectStyle, error) {
	for i, n := range effectStyleNames {
		if n == s {
			return EffectStyle(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEffectStyle, s)
}

// A Mapping places source triple i onto the canvas. Each slot covers a
// single cell except under Blocks, where it covers a whole tile. Slots never
// overlap and together cover every cell.
type Mapping struct {
	side  int
	block int

	// Top-left cell of each slot as y*side+x, in source order
	order []int32
}

// NewMapping returns the mapping for style on a canvas of the given side.
// tile and band tune the mosaic/blocks tile edge and the horizontal band
// height, values below one pick the defaults.
func NewMapping(style EffectStyle, side, tile, band int) (*Mapping, error) {
	if side <= 0 {
		return nil, ErrEmptyInput
	}

	if tile < 1 {
		tile = defaultTileSize
	}
	if band < 1 {
		band = defaultBandHeight
	}
	tile = min(tile, side)
	band = min(band, side)

	m := &Mapping{
		side:  side,
		block: 1,
	}

	switch style {
	case None:
		m.order = rowMajorOrder(side)
	case Horizontal:
		m.order = bandOrder(side, band)
	case Diagonal:
		m.order = diagonalOrder(side)
	case Mosaic:
		m.order = mosaicOrder(side, tile)
	case Blocks:
		m.block = tile
		m.order = blockOrder(side, tile)
	case Radial:
		m.order = radialOrder(side)
	case Hilbert:
		m.order = hilbertOrder(side)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEffectStyle, style)
	}

	return m, nil
}

// Side returns the canvas side length.
func (m *Mapping) Side() int {
	return m.side
}

// Len returns the number of source slots. It is side² for every style
// except Blocks, which has one slot per tile.
func (m *Mapping) Len() int {
	return len(m.order)
}

// Position returns the top-left cell of slot i.
func (m *Mapping) Position(i int) image.Point {
	c := int(m.order[i])
	return image.Pt(c%m.side, c/m.side)
}

// Footprint returns the cells covered by slot i, clipped to the canvas.
func (m *Mapping) Footprint(i int) image.Rectangle {
	p := m.Position(i)
	r := image.Rectangle{p, p.Add(image.Pt(m.block, m.block))}
	return r.Intersect(image.Rect(0, 0, m.side, m.side))
}

func cell(side, x, y int) int32 {
	return int32(y*side + x)
}

func rowMajorOrder(side int) []int32 {
	order := make([]int32, side*side)
	for i := range order {
		order[i] = int32(i)
	}
	return order
}

// Bands of h rows, each filled a column at a time; with h == 1 this is
// plain row-major order.
func bandOrder(side, h int) []int32 {
	order := make([]int32, 0, side*side)
	for by := 0; by < side; by += h {
		bh := min(h, side-by)
		for x := 0; x < side; x++ {
			for y := by; y < by+bh; y++ {
				order = append(order, cell(side, x, y))
			}
		}
	}
	return order
}

// Anti-diagonals of constant x+y, each walked with increasing x.
func diagonalOrder(side int) []int32 {
	order := make([]int32, 0, side*side)
	for d := 0; d <= 2*(side-1); d++ {
		for x := max(0, d-side+1); x <= min(d, side-1); x++ {
			order = append(order, cell(side, x, d-x))
		}
	}
	return order
}

// Tiles of k×k in row-major tile order, each filled row-major. Tiles on the
// right and bottom edges are clipped when k doesn't divide side.
func mosaicOrder(side, k int) []int32 {
	order := make([]int32, 0, side*side)
	for ty := 0; ty < side; ty += k {
		for tx := 0; tx < side; tx += k {
			for y := ty; y < min(ty+k, side); y++ {
				for x := tx; x < min(tx+k, side); x++ {
					order = append(order, cell(side, x, y))
				}
			}
		}
	}
	return order
}

// One slot per k×k tile, tiles in row-major order.
func blockOrder(side, k int) []int32 {
	n := (side + k - 1) / k
	order := make([]int32, 0, n*n)
	for y := 0; y < side; y += k {
		for x := 0; x < side; x += k {
			order = append(order, cell(side, x, y))
		}
	}
	return order
}

// Concentric square rings (Chebyshev distance) outward from the centre.
// Each ring starts due east of the centre and walks round clockwise on
// screen, which is increasing atan2(y, x) with y pointing down.
//
// The walk uses doubled coordinates u = 2x-(side-1), v = 2y-(side-1) so that
// the centre is at the origin for both odd and even sides; r is the doubled
// ring radius.
func radialOrder(side int) []int32 {
	order := make([]int32, 0, side*side)
	o := side - 1
	put := func(u, v int) {
		order = append(order, cell(side, (u+o)/2, (v+o)/2))
	}

	for r := o & 1; r <= o; r += 2 {
		if r == 0 {
			put(0, 0)
			continue
		}
		v0 := r & 1
		for v := v0; v <= r; v += 2 {
			put(r, v)
		}
		for u := r - 2; u >= -r; u -= 2 {
			put(u, r)
		}
		for v := r - 2; v >= -r; v -= 2 {
			put(-r, v)
		}
		for u := -r + 2; u <= r; u += 2 {
			put(u, -r)
		}
		for v := -r + 2; v < v0; v += 2 {
			put(r, v)
		}
	}
	return order
}
