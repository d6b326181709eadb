package pixel

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func positions(m *Mapping) []image.Point {
	p := make([]image.Point, m.Len())
	for i := range p {
		p[i] = m.Position(i)
	}
	return p
}

func pts(xy ...int) []image.Point {
	p := make([]image.Point, 0, len(xy)/2)
	for i := 0; i < len(xy); i += 2 {
		p = append(p, image.Pt(xy[i], xy[i+1]))
	}
	return p
}

func TestMappingCoversCanvas(t *testing.T) {
	for _, style := range EffectStyles() {
		t.Run(style.String(), func(t *testing.T) {
			for side := 1; side <= 20; side++ {
				for _, tile := range []int{0, 1, 3, 4, 100} {
					m, err := NewMapping(style, side, tile, tile)
					require.NoError(t, err)

					seen := make([]int, side*side)
					for i := 0; i < m.Len(); i++ {
						r := m.Footprint(i)
						require.False(t, r.Empty(), "side %d tile %d slot %d", side, tile, i)
						for y := r.Min.Y; y < r.Max.Y; y++ {
							for x := r.Min.X; x < r.Max.X; x++ {
								seen[y*side+x]++
							}
						}
					}
					for c, n := range seen {
						require.Equal(t, 1, n, "side %d tile %d cell %d", side, tile, c)
					}
				}
			}
		})
	}
}

func TestMappingNone(t *testing.T) {
	const side = 7
	m, err := NewMapping(None, side, 0, 0)
	require.NoError(t, err)
	require.Equal(t, side*side, m.Len())
	assert.Equal(t, side, m.Side())

	for i := 0; i < m.Len(); i++ {
		assert.Equal(t, image.Pt(i%side, i/side), m.Position(i))
		assert.Equal(t, image.Rect(i%side, i/side, i%side+1, i/side+1), m.Footprint(i))
	}
}

func TestMappingHorizontal(t *testing.T) {
	m, err := NewMapping(Horizontal, 5, 0, 0)
	require.NoError(t, err)
	n, err := NewMapping(None, 5, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, positions(n), positions(m))

	m, err = NewMapping(Horizontal, 3, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, pts(0, 0, 0, 1, 1, 0, 1, 1, 2, 0, 2, 1, 0, 2, 1, 2, 2, 2), positions(m))
}

func TestMappingDiagonal(t *testing.T) {
	m, err := NewMapping(Diagonal, 3, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, pts(0, 0, 0, 1, 1, 0, 0, 2, 1, 1, 2, 0, 1, 2, 2, 1, 2, 2), positions(m))

	m, err = NewMapping(Diagonal, 9, 0, 0)
	require.NoError(t, err)
	p := positions(m)
	for i := 1; i < len(p); i++ {
		d0, d1 := p[i-1].X+p[i-1].Y, p[i].X+p[i].Y
		require.True(t, d1 == d0 || d1 == d0+1)
		if d1 == d0 {
			require.Equal(t, p[i-1].X+1, p[i].X)
		}
	}
}

func TestMappingMosaic(t *testing.T) {
	m, err := NewMapping(Mosaic, 4, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, pts(
		0, 0, 1, 0, 0, 1, 1, 1,
		2, 0, 3, 0, 2, 1, 3, 1,
		0, 2, 1, 2, 0, 3, 1, 3,
		2, 2, 3, 2, 2, 3, 3, 3,
	), positions(m))

	// A tile larger than the canvas is one tile filled row-major
	m, err = NewMapping(Mosaic, 3, 100, 0)
	require.NoError(t, err)
	n, err := NewMapping(None, 3, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, positions(n), positions(m))
}

func TestMappingBlocks(t *testing.T) {
	m, err := NewMapping(Blocks, 5, 2, 0)
	require.NoError(t, err)
	require.Equal(t, 9, m.Len())
	assert.Equal(t, image.Rect(0, 0, 2, 2), m.Footprint(0))
	assert.Equal(t, image.Rect(2, 0, 4, 2), m.Footprint(1))
	assert.Equal(t, image.Rect(4, 0, 5, 2), m.Footprint(2))
	assert.Equal(t, image.Rect(4, 4, 5, 5), m.Footprint(8))

	m, err = NewMapping(Blocks, 6, 100, 0)
	require.NoError(t, err)
	require.Equal(t, 1, m.Len())
	assert.Equal(t, image.Rect(0, 0, 6, 6), m.Footprint(0))

	m, err = NewMapping(Blocks, 6, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 36, m.Len())
}

func TestMappingRadial(t *testing.T) {
	m, err := NewMapping(Radial, 3, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, pts(1, 1, 2, 1, 2, 2, 1, 2, 0, 2, 0, 1, 0, 0, 1, 0, 2, 0), positions(m))

	m, err = NewMapping(Radial, 2, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, pts(1, 1, 0, 1, 0, 0, 1, 0), positions(m))
}

func TestMappingRadialRingsAndAngles(t *testing.T) {
	for _, side := range []int{1, 2, 6, 7, 16, 31} {
		m, err := NewMapping(Radial, side, 0, 0)
		require.NoError(t, err)

		o := side - 1
		ring, angle := -1, -1.0
		for _, p := range positions(m) {
			u, v := 2*p.X-o, 2*p.Y-o
			r := max(abs(u), abs(v))
			a := math.Atan2(float64(v), float64(u))
			if a < 0 {
				a += 2 * math.Pi
			}
			if r != ring {
				require.Greater(t, r, ring, "side %d rings move outward", side)
				ring, angle = r, a
				continue
			}
			require.Greater(t, a, angle, "side %d ring %d angle increases", side, r)
			angle = a
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestHilbertPoint(t *testing.T) {
	assert.Equal(t, []image.Point{{0, 0}, {0, 1}, {1, 1}, {1, 0}}, func() []image.Point {
		var p []image.Point
		for d := 0; d < 4; d++ {
			x, y := hilbertPoint(2, d)
			p = append(p, image.Pt(x, y))
		}
		return p
	}())

	for _, n := range []int{2, 4, 8, 32} {
		x0, y0 := hilbertPoint(n, 0)
		seen := map[image.Point]bool{image.Pt(x0, y0): true}
		for d := 1; d < n*n; d++ {
			x, y := hilbertPoint(n, d)
			require.Equal(t, 1, abs(x-x0)+abs(y-y0), "n %d step %d not adjacent", n, d)
			require.False(t, seen[image.Pt(x, y)])
			seen[image.Pt(x, y)] = true
			x0, y0 = x, y
		}
		x, y := hilbertPoint(n, n*n-1)
		assert.Equal(t, image.Pt(n-1, 0), image.Pt(x, y), "curve ends in the opposite corner")
	}
}

func TestMappingHilbert(t *testing.T) {
	m, err := NewMapping(Hilbert, 8, 0, 0)
	require.NoError(t, err)
	for i := 0; i < m.Len(); i++ {
		x, y := hilbertPoint(8, i)
		assert.Equal(t, image.Pt(x, y), m.Position(i))
	}

	// Clipped curve keeps the curve order of the surviving points
	m, err = NewMapping(Hilbert, 5, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 25, m.Len())
	last := -1
	for i := 0; i < m.Len(); i++ {
		p := m.Position(i)
		d := -1
		for j := 0; j < 64; j++ {
			if x, y := hilbertPoint(8, j); x == p.X && y == p.Y {
				d = j
				break
			}
		}
		require.Greater(t, d, last)
		last = d
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	for in, out := range map[int]int{1: 1, 2: 2, 3: 4, 5: 8, 8: 8, 9: 16, 1000: 1024} {
		assert.Equal(t, out, nextPowerOfTwo(in))
	}
}

func TestMappingUnknown(t *testing.T) {
	m, err := NewMapping(EffectStyle(99), 4, 0, 0)
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, ErrUnknownEffectStyle))

	_, err = ParseEffectStyle("kaleidoscope")
	assert.True(t, errors.Is(err, ErrUnknownEffectStyle))
}

func TestParseEffectStyle(t *testing.T) {
	for _, e := range EffectStyles() {
		got, err := ParseEffectStyle(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}
	assert.Len(t, EffectStyles(), 7)
}
