package pixel

import (
	"errors"
	"image/color"
	"math/rand"
	"testing"

	"github.com/bodgit/bin2art/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 0xff}
}

func TestTransform(t *testing.T) {
	tests := []struct {
		mode ColorMode
		in   color.RGBA
		out  color.RGBA
	}{
		{Normal, rgb(100, 150, 200), rgb(100, 150, 200)},
		{Amplified, rgb(128, 0, 192), rgb(128, 0, 255)},
		{Amplified, rgb(160, 96, 127), rgb(192, 64, 126)},
		{Neon, rgb(100, 150, 200), rgb(150, 225, 255)},
		{Neon, rgb(0, 1, 2), rgb(0, 1, 3)},
		{Complement, rgb(100, 150, 200), rgb(155, 105, 55)},
		{Grayscale, rgb(100, 150, 200), rgb(140, 140, 140)},
		{Sepia, rgb(255, 255, 255), rgb(255, 255, 238)},
		{Pastel, rgb(0, 255, 100), rgb(127, 255, 177)},
		{GameBoy, rgb(0, 0, 0), rgb(0x0f, 0x38, 0x0f)},
		{GameBoy, rgb(255, 255, 255), rgb(0x9b, 0xbc, 0x0f)},
		{C64, rgb(0x6f, 0x4f, 0x25), rgb(0x6f, 0x4f, 0x25)},
		{Spectrum, rgb(0xe0, 0x08, 0x04), rgb(0xd7, 0x00, 0x00)},
		{CPC, rgb(0x70, 0x70, 0x90), rgb(0x80, 0x80, 0x80)},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			out, err := Transform(tt.in, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.out, out)
		})
	}
}

func TestTransformGrayscaleChannelsEqual(t *testing.T) {
	out, err := Transform(rgb(100, 150, 200), Grayscale)
	require.NoError(t, err)
	assert.Equal(t, out.R, out.G)
	assert.Equal(t, out.G, out.B)
}

// The gain constants are a chosen policy rather than a hardware fact; these
// checks pin the shape of the curve rather than every value.
func TestTransformGainPolicy(t *testing.T) {
	prev := uint8(0)
	for v := 0; v < 256; v++ {
		out, err := Transform(rgb(uint8(v), uint8(v), uint8(v)), Amplified)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, out.R, prev, "amplified is monotonic")
		if v < midpoint {
			assert.LessOrEqual(t, out.R, uint8(v), "below midpoint moves down")
		} else {
			assert.GreaterOrEqual(t, out.R, uint8(v), "above midpoint moves up")
		}
		prev = out.R

		out, err = Transform(rgb(uint8(v), uint8(v), uint8(v)), Neon)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, out.R, uint8(v), "neon never darkens")
	}
}

func TestTransformQuantizedInPalette(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for _, m := range ColorModes() {
		if !m.Quantized() {
			continue
		}
		p, err := palette.Lookup(m.String())
		require.NoError(t, err)

		tr, err := NewTransformer(m)
		require.NoError(t, err)

		t.Run(m.String(), func(t *testing.T) {
			for i := 0; i < 2000; i++ {
				c := rgb(uint8(r.Intn(256)), uint8(r.Intn(256)), uint8(r.Intn(256)))
				assert.True(t, p.Contains(tr(c)), "%v quantized to %v", c, tr(c))
			}
		})
	}
}

func TestTransformDeterministic(t *testing.T) {
	r := rand.New(rand.NewSource(2))

	for _, m := range ColorModes() {
		for i := 0; i < 100; i++ {
			c := rgb(uint8(r.Intn(256)), uint8(r.Intn(256)), uint8(r.Intn(256)))
			a, err := Transform(c, m)
			require.NoError(t, err)
			b, err := Transform(c, m)
			require.NoError(t, err)
			assert.Equal(t, a, b)
			assert.Equal(t, uint8(0xff), a.A)
		}
	}
}

func TestTransformUnknown(t *testing.T) {
	_, err := Transform(rgb(1, 2, 3), ColorMode(42))
	assert.True(t, errors.Is(err, ErrUnknownColorMode))

	_, err = NewTransformer(ColorMode(-1))
	assert.True(t, errors.Is(err, ErrUnknownColorMode))
}

func TestParseColorMode(t *testing.T) {
	for _, m := range ColorModes() {
		got, err := ParseColorMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := ParseColorMode("vaporwave")
	assert.True(t, errors.Is(err, ErrUnknownColorMode))

	assert.Len(t, ColorModes(), 11)
	assert.Equal(t, "ColorMode(42)", ColorMode(42).String())
}

func TestQuantized(t *testing.T) {
	var quantized []ColorMode
	for _, m := range ColorModes() {
		if m.Quantized() {
			quantized = append(quantized, m)
		}
	}
	assert.Equal(t, []ColorMode{GameBoy, CPC, C64, Spectrum}, quantized)
}
