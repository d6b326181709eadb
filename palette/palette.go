/*
Package palette holds the fixed hardware palettes that the quantizing colour
modes snap pixels to.

Each palette is an ordered list of distinct colours. The order matters: when
two entries are equally close to a colour the earlier one wins.
*/
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownPalette is returned by Lookup for a name not in the catalog.
var ErrUnknownPalette = errors.New("palette: unknown palette")

// Palette is an ordered, immutable list of opaque colours.
type Palette []color.RGBA

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 0xff}
}

// Names of the palettes in the catalog
const (
	GameBoy  = "gameboy"
	CPC      = "cpc"
	C64      = "c64"
	Spectrum = "spectrum"
)

// Original DMG LCD shades, darkest first
var gameBoy = Palette{
	rgb(0x0f, 0x38, 0x0f),
	rgb(0x30, 0x62, 0x30),
	rgb(0x8b, 0xac, 0x0f),
	rgb(0x9b, 0xbc, 0x0f),
}

// Amstrad CPC firmware colours 0-26; each gun is off, half or full
var cpc = Palette{
	rgb(0x00, 0x00, 0x00), // black
	rgb(0x00, 0x00, 0x80), // blue
	rgb(0x00, 0x00, 0xff), // bright blue
	rgb(0x80, 0x00, 0x00), // red
	rgb(0x80, 0x00, 0x80), // magenta
	rgb(0x80, 0x00, 0xff), // mauve
	rgb(0xff, 0x00, 0x00), // bright red
	rgb(0xff, 0x00, 0x80), // purple
	rgb(0xff, 0x00, 0xff), // bright magenta
	rgb(0x00, 0x80, 0x00), // green
	rgb(0x00, 0x80, 0x80), // cyan
	rgb(0x00, 0x80, 0xff), // sky blue
	rgb(0x80, 0x80, 0x00), // yellow
	rgb(0x80, 0x80, 0x80), // white
	rgb(0x80, 0x80, 0xff), // pastel blue
	rgb(0xff, 0x80, 0x00), // orange
	rgb(0xff, 0x80, 0x80), // pink
	rgb(0xff, 0x80, 0xff), // pastel magenta
	rgb(0x00, 0xff, 0x00), // bright green
	rgb(0x00, 0xff, 0x80), // sea green
	rgb(0x00, 0xff, 0xff), // bright cyan
	rgb(0x80, 0xff, 0x00), // lime
	rgb(0x80, 0xff, 0x80), // pastel green
	rgb(0x80, 0xff, 0xff), // pastel cyan
	rgb(0xff, 0xff, 0x00), // bright yellow
	rgb(0xff, 0xff, 0x80), // pastel yellow
	rgb(0xff, 0xff, 0xff), // bright white
}

// Commodore 64 VIC-II colours (Pepto's measurements)
var c64 = Palette{
	rgb(0x00, 0x00, 0x00), // black
	rgb(0xff, 0xff, 0xff), // white
	rgb(0x68, 0x37, 0x2b), // red
	rgb(0x70, 0xa4, 0xb2), // cyan
	rgb(0x6f, 0x3d, 0x86), // purple
	rgb(0x58, 0x8d, 0x43), // green
	rgb(0x35, 0x28, 0x79), // blue
	rgb(0xb8, 0xc7, 0x6f), // yellow
	rgb(0x6f, 0x4f, 0x25), // orange
	rgb(0x43, 0x39, 0x00), // brown
	rgb(0x9a, 0x67, 0x59), // light red
	rgb(0x44, 0x44, 0x44), // dark grey
	rgb(0x6c, 0x6c, 0x6c), // grey
	rgb(0x9a, 0xd2, 0x84), // light green
	rgb(0x6c, 0x5e, 0xb5), // light blue
	rgb(0x95, 0x95, 0x95), // light grey
}

// ZX Spectrum ULA colours, normal then bright. Bright black is identical to
// black on real hardware so it is lifted slightly to keep entries distinct.
var spectrum = Palette{
	rgb(0x00, 0x00, 0x00), // black
	rgb(0x00, 0x00, 0xd7), // blue
	rgb(0xd7, 0x00, 0x00), // red
	rgb(0xd7, 0x00, 0xd7), // magenta
	rgb(0x00, 0xd7, 0x00), // green
	rgb(0x00, 0xd7, 0xd7), // cyan
	rgb(0xd7, 0xd7, 0x00), // yellow
	rgb(0xd7, 0xd7, 0xd7), // white
	rgb(0x10, 0x10, 0x10), // bright black
	rgb(0x00, 0x00, 0xff), // bright blue
	rgb(0xff, 0x00, 0x00), // bright red
	rgb(0xff, 0x00, 0xff), // bright magenta
	rgb(0x00, 0xff, 0x00), // bright green
	rgb(0x00, 0xff, 0xff), // bright cyan
	rgb(0xff, 0xff, 0x00), // bright yellow
	rgb(0xff, 0xff, 0xff), // bright white
}

var catalog = map[string]Palette{
	GameBoy:  gameBoy,
	CPC:      cpc,
	C64:      c64,
	Spectrum: spectrum,
}

// Lookup returns the named palette. The returned slice is a copy so callers
// can't alter the catalog.
func Lookup(name string) (Palette, error) {
	p, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}
	return append(Palette(nil), p...), nil
}

// Names returns the catalog names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for n := range catalog {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func sqDiff(x, y uint8) uint32 {
	d := int32(x) - int32(y)
	return uint32(d * d)
}

// Index returns the index of the palette entry closest to c by squared
// Euclidean distance in RGB space. Ties go to the lowest index.
func (p Palette) Index(c color.RGBA) int {
	ret, bestSum := 0, uint32(1<<32-1)
	for i, v := range p {
		sum := sqDiff(c.R, v.R) + sqDiff(c.G, v.G) + sqDiff(c.B, v.B)
		if sum < bestSum {
			if sum == 0 {
				return i
			}
			ret, bestSum = i, sum
		}
	}
	return ret
}

// Nearest returns the palette entry closest to c.
func (p Palette) Nearest(c color.RGBA) color.RGBA {
	return p[p.Index(c)]
}

// Contains reports whether c is exactly one of the palette entries.
func (p Palette) Contains(c color.RGBA) bool {
	for _, v := range p {
		if v == c {
			return true
		}
	}
	return false
}

// Hex formats c as a #rrggbb string.
func Hex(c color.RGBA) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
