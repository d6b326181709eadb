/*
Package bin2art renders binary files such as ROMs, disk and tape images as
abstract art.

Each file is loaded, drawn onto a square canvas three bytes per pixel,
optionally post-processed, scaled and then written out as an image next to
the other renders in the output directory.
*/
package bin2art

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/bin2art/filter"
	"github.com/bodgit/bin2art/gallery"
	"github.com/bodgit/bin2art/output"
	"github.com/bodgit/bin2art/pixel"
	"github.com/bodgit/bin2art/source"
)

// DefaultSize is the default width and height of rendered images.
const DefaultSize = 1920

// DefaultExtensions lists the file extensions picked up by Scan by default.
var DefaultExtensions = []string{"dsk", "tap", "a26", "cdt", "rom", "mp3", "bin", "cue", "zst", "gz"}

// Options controls how files are rendered.
type Options struct {
	Pixel  pixel.Config
	Filter filter.Options
	Format output.Format

	// Size is the side of the written image in pixels, zero keeps the
	// canvas size
	Size int

	// OutputDir is where images are written, it defaults to the working
	// directory
	OutputDir string

	// Extensions limits which files Scan renders
	Extensions []string

	// Workers is the number of files rendered concurrently by Scan
	Workers int

	// Force renders files even if the gallery has an identical render
	Force bool
}

// DefaultOptions returns the options used when nothing is overridden.
func DefaultOptions() Options {
	return Options{
		Format:     output.PNG,
		Size:       DefaultSize,
		OutputDir:  ".",
		Extensions: DefaultExtensions,
	}
}

// Settings returns a canonical string of every option that changes the
// rendered image.
func (o Options) Settings() string {
	return fmt.Sprintf("color=%s effect=%s side=%d tile=%d band=%d blur=%t saturate=%t contrast=%t posterize=%t scanlines=%t size=%d format=%s",
		o.Pixel.ColorMode, o.Pixel.EffectStyle, o.Pixel.Side, o.Pixel.TileSize, o.Pixel.BandHeight,
		o.Filter.Blur, o.Filter.EnhanceColor, o.Filter.EnhanceContrast, o.Filter.Posterize, o.Filter.Scanlines,
		o.Size, o.Format)
}

// Generator renders files according to its Options.
type Generator struct {
	opts    Options
	gallery *gallery.DB
	logger  *log.Logger
}

// New returns a Generator. The gallery may be nil in which case nothing is
// recorded and every file is always rendered.
func New(opts Options, db *gallery.DB, logger *log.Logger) *Generator {
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	return &Generator{
		opts:    opts,
		gallery: db,
		logger:  logger,
	}
}

// OutputFilename returns the path the image for the named source is written
// to.
func (g *Generator) OutputFilename(name string) string {
	return filepath.Join(g.opts.OutputDir, name+"."+g.opts.Format.Ext())
}

// Image loads file and returns the finished image, before encoding, along
// with the loaded source.
func (g *Generator) Image(file string) (*image.RGBA, *source.Payload, error) {
	g.logger.Printf("Processing %s\n", file)

	p, err := source.Load(file)
	if err != nil {
		return nil, nil, err
	}

	m, _, err := g.image(p)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", file, err)
	}

	return m, p, nil
}

// image returns the finished image and the side of the canvas it was drawn
// from.
func (g *Generator) image(p *source.Payload) (*image.RGBA, int, error) {
	canvas, err := pixel.Convert(p.Data, g.opts.Pixel)
	if err != nil {
		return nil, 0, err
	}
	side := canvas.Bounds().Dx()
	g.logger.Printf("Created %dx%d image with %s effect and %s colours\n", side, side, g.opts.Pixel.EffectStyle, g.opts.Pixel.ColorMode)

	m := filter.Apply(canvas, g.opts.Filter)

	if g.opts.Size > 0 && g.opts.Size != side {
		g.logger.Printf("Resizing to %dx%d\n", g.opts.Size, g.opts.Size)
		m = filter.Resize(m, g.opts.Size)
	}

	if g.opts.Filter.Scanlines {
		filter.Scanlines(m)
	}

	return m, side, nil
}

// Result describes the outcome of rendering one file. Side is the canvas
// side before scaling, for a skipped file it is the side recorded in the
// gallery.
type Result struct {
	Path    string
	Side    int
	Skipped bool
}

func exists(file string) bool {
	_, err := os.Stat(file)
	return err == nil
}

// Render renders file and writes it to the output directory. If the gallery
// already holds an identical render that still exists on disk, nothing is
// written and the result is marked as skipped.
func (g *Generator) Render(file string) (Result, error) {
	return g.renderTo(file, g.OutputFilename(source.Name(file)))
}

func (g *Generator) renderTo(file, out string) (Result, error) {
	g.logger.Printf("Processing %s\n", file)

	p, err := source.Load(file)
	if err != nil {
		return Result{}, err
	}

	settings := g.opts.Settings()

	if g.gallery != nil && !g.opts.Force {
		prev, ok, err := g.gallery.Lookup(p.SHA1, settings)
		if err != nil {
			return Result{}, err
		}
		if ok && prev.Path == out && exists(out) {
			g.logger.Printf("Skipping %s, %s is up to date\n", file, out)
			return Result{Path: out, Side: prev.Side, Skipped: true}, nil
		}
	}

	m, side, err := g.image(p)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", file, err)
	}

	if err := g.write(out, m); err != nil {
		return Result{}, err
	}

	if g.gallery != nil {
		info, err := os.Stat(file)
		if err != nil {
			return Result{}, err
		}
		if err := g.gallery.Record(gallery.Render{
			SHA1:     p.SHA1,
			Name:     filepath.Base(file),
			Size:     info.Size(),
			Settings: settings,
			Path:     out,
			Side:     side,
		}); err != nil {
			return Result{}, err
		}
	}

	return Result{Path: out, Side: side}, nil
}

func (g *Generator) write(file string, m image.Image) error {
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return err
	}

	g.logger.Printf("Saving as %s\n", file)

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if err := output.Encode(f, m, g.opts.Format); err != nil {
		f.Close()
		os.Remove(file)
		return err
	}

	return f.Close()
}

func (g *Generator) included(file string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(file)), ".")
	for _, e := range g.opts.Extensions {
		if strings.EqualFold(strings.TrimPrefix(e, "."), ext) {
			return true
		}
	}
	return false
}
