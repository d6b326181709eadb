package pixel

import (
	"image"
	"image/color"
	"runtime"
	"sync"
)

// Below this many triples the conversion runs on the calling goroutine
const parallelThreshold = 1 << 16

var filler = color.RGBA{0x00, 0x00, 0x00, 0xff}

// Triple returns the i-th colour triple of b, zero-padding a short final
// triple.
func Triple(b []byte, i int) color.RGBA {
	c := color.RGBA{A: 0xff}
	o := i * bytesPerTriple
	if o < len(b) {
		c.R = b[o]
	}
	if o+1 < len(b) {
		c.G = b[o+1]
	}
	if o+2 < len(b) {
		c.B = b[o+2]
	}
	return c
}

// Convert renders b onto a new square canvas according to cfg. The
// configuration is validated in full before anything is allocated, so on
// error no image is returned.
func Convert(b []byte, cfg Config) (*image.RGBA, error) {
	if len(b) == 0 {
		return nil, ErrEmptyInput
	}

	transform, err := NewTransformer(cfg.ColorMode)
	if err != nil {
		return nil, err
	}

	canvas, err := NewCanvas(TripleCount(len(b)), cfg.Side)
	if err != nil {
		return nil, err
	}

	m, err := NewMapping(cfg.EffectStyle, canvas.Side, cfg.TileSize, cfg.BandHeight)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, canvas.Side, canvas.Side))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = filler.A
	}

	n := min(canvas.Triples, m.Len())

	draw := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			c := transform(Triple(b, i))
			r := m.Footprint(i)
			for y := r.Min.Y; y < r.Max.Y; y++ {
				for x := r.Min.X; x < r.Max.X; x++ {
					img.SetRGBA(x, y, c)
				}
			}
		}
	}

	if n < parallelThreshold {
		draw(0, n)
		return img, nil
	}

	// Slots never overlap so each worker writes a disjoint set of cells
	workers := runtime.GOMAXPROCS(0)
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			draw(lo, hi)
		}(lo, min(lo+chunk, n))
	}
	wg.Wait()

	return img, nil
}
