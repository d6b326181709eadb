package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/bodgit/bin2art"
	"github.com/bodgit/bin2art/filter"
	"github.com/bodgit/bin2art/gallery"
	"github.com/bodgit/bin2art/output"
	"github.com/bodgit/bin2art/palette"
	"github.com/bodgit/bin2art/pixel"
	"github.com/urfave/cli/v2"
)

const defaultPreviewSize = 256

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func names(values ...fmt.Stringer) string {
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = v.String()
	}
	return strings.Join(s, ", ")
}

func colorModeNames() string {
	var v []fmt.Stringer
	for _, m := range pixel.ColorModes() {
		v = append(v, m)
	}
	return names(v...)
}

func effectStyleNames() string {
	var v []fmt.Stringer
	for _, e := range pixel.EffectStyles() {
		v = append(v, e)
	}
	return names(v...)
}

func formatNames() string {
	var v []fmt.Stringer
	for _, f := range output.Formats() {
		v = append(v, f)
	}
	return names(v...)
}

func options(c *cli.Context) (bin2art.Options, error) {
	opts := bin2art.DefaultOptions()

	var err error
	if opts.Pixel.ColorMode, err = pixel.ParseColorMode(c.String("color")); err != nil {
		return opts, err
	}
	if opts.Pixel.EffectStyle, err = pixel.ParseEffectStyle(c.String("effect")); err != nil {
		return opts, err
	}
	if opts.Format, err = output.ParseFormat(c.String("format")); err != nil {
		return opts, err
	}

	if c.Int("side") < 0 {
		return opts, fmt.Errorf("side must be positive, got %d", c.Int("side"))
	}
	opts.Pixel.Side = c.Int("side")
	opts.Pixel.TileSize = c.Int("tile")
	opts.Pixel.BandHeight = c.Int("band")

	if c.Bool("all-effects") {
		opts.Filter = filter.All()
	}
	opts.Filter.Blur = opts.Filter.Blur || c.Bool("blur")
	opts.Filter.EnhanceColor = opts.Filter.EnhanceColor || c.Bool("enhance-color")
	opts.Filter.EnhanceContrast = opts.Filter.EnhanceContrast || c.Bool("enhance-contrast")
	opts.Filter.Posterize = opts.Filter.Posterize || c.Bool("posterize")
	opts.Filter.Scanlines = c.Bool("scanlines")

	opts.Size = c.Int("size")
	opts.OutputDir = c.String("output-dir")
	opts.Extensions = c.StringSlice("ext")
	opts.Workers = c.Int("workers")
	opts.Force = c.Bool("force")

	return opts, nil
}

func logger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// openGallery opens the gallery database if one is configured.
func openGallery(c *cli.Context) (*gallery.DB, error) {
	if c.String("db") == "" {
		return nil, nil
	}
	return gallery.Open(c.String("db"))
}

// generator builds a Generator from the global flags; the returned function
// releases anything it opened.
func generator(c *cli.Context) (*bin2art.Generator, func(), error) {
	opts, err := options(c)
	if err != nil {
		return nil, nil, err
	}

	db, err := openGallery(c)
	if err != nil {
		return nil, nil, err
	}

	return bin2art.New(opts, db, logger(c)), func() {
		if db != nil {
			db.Close()
		}
	}, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "bin2art"
	app.Usage = "Convert binary files into abstract art"
	app.Version = "1.0.0"

	s := newStyles()

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Value:   pixel.Normal.String(),
			Usage:   "color processing mode (" + colorModeNames() + ")",
		},
		&cli.StringFlag{
			Name:    "effect",
			Aliases: []string{"e"},
			Value:   pixel.None.String(),
			Usage:   "pattern effect to apply (" + effectStyleNames() + ")",
		},
		&cli.IntFlag{
			Name:  "side",
			Usage: "force the canvas side in pixels, 0 picks the smallest that fits",
		},
		&cli.IntFlag{
			Name:  "tile",
			Value: 8,
			Usage: "tile size for the mosaic and blocks effects",
		},
		&cli.IntFlag{
			Name:  "band",
			Value: 1,
			Usage: "band height for the horizontal effect",
		},
		&cli.BoolFlag{
			Name:  "blur",
			Usage: "apply Gaussian blur effect",
		},
		&cli.BoolFlag{
			Name:  "enhance-color",
			Usage: "enhance color saturation",
		},
		&cli.BoolFlag{
			Name:  "enhance-contrast",
			Usage: "enhance image contrast",
		},
		&cli.BoolFlag{
			Name:  "posterize",
			Usage: "apply poster effect (reduce colors)",
		},
		&cli.BoolFlag{
			Name:  "all-effects",
			Usage: "apply all post-processing effects",
		},
		&cli.BoolFlag{
			Name:  "scanlines",
			Usage: "darken alternate lines like a CRT",
		},
		&cli.IntFlag{
			Name:    "size",
			Aliases: []string{"s"},
			Value:   bin2art.DefaultSize,
			Usage:   "output image size in pixels, 0 keeps the canvas size",
		},
		&cli.StringFlag{
			Name:    "output-dir",
			Aliases: []string{"o"},
			EnvVars: []string{"BIN2ART_OUTPUT_DIR"},
			Value:   ".",
			Usage:   "directory for output files",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   output.PNG.String(),
			Usage:   "output image format (" + formatNames() + ")",
		},
		&cli.StringSliceFlag{
			Name:  "ext",
			Value: cli.NewStringSlice(bin2art.DefaultExtensions...),
			Usage: "file extensions to scan for",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "number of files rendered at once, 0 uses every CPU",
		},
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"BIN2ART_DB"},
			Usage:   "path to gallery database used to skip unchanged files",
		},
		&cli.BoolFlag{
			Name:  "force",
			Usage: "render files even if the gallery says they are up to date",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "render",
			Usage:     "Render one or more files",
			ArgsUsage: "FILE...",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				g, done, err := generator(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer done()

				var failed int
				for _, file := range c.Args().Slice() {
					result, err := g.Render(file)
					if err != nil {
						fmt.Fprintln(os.Stderr, s.err.Render("FAILED"), err)
						failed++
						continue
					}
					fmt.Println(s.result(result), result.Path)
				}

				if failed > 0 {
					return cli.Exit(fmt.Sprintf("%d of %d files failed", failed, c.NArg()), 1)
				}

				return nil
			},
		},
		{
			Name:      "scan",
			Usage:     "Render every matching file under a directory",
			ArgsUsage: "[DIRECTORY]",
			Action: func(c *cli.Context) error {
				dir := "."
				if c.NArg() > 0 {
					dir = c.Args().First()
				}

				g, done, err := generator(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer done()

				stats, err := g.Scan(dir)
				fmt.Println(s.summary(stats))
				if err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "preview",
			Usage:     "Show a rendered file in the terminal using sixel graphics",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "preview-size",
					Value: defaultPreviewSize,
					Usage: "preview size in pixels",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				opts, err := options(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				opts.Size = c.Int("preview-size")

				m, _, err := bin2art.New(opts, nil, logger(c)).Image(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := output.Preview(os.Stdout, m); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "palettes",
			Usage: "List the hardware palettes",
			Action: func(c *cli.Context) error {
				for _, name := range palette.Names() {
					p, err := palette.Lookup(name)
					if err != nil {
						return cli.Exit(err, 1)
					}
					fmt.Println(s.heading.Render(fmt.Sprintf("%-9s", name)), s.swatches(p))
				}
				return nil
			},
		},
		{
			Name:  "modes",
			Usage: "List the color modes and effects",
			Action: func(c *cli.Context) error {
				fmt.Println(s.heading.Render("colors "), colorModeNames())
				fmt.Println(s.heading.Render("effects"), effectStyleNames())
				fmt.Println(s.heading.Render("formats"), formatNames())
				return nil
			},
		},
		{
			Name:  "history",
			Usage: "List renders recorded in the gallery database",
			Action: func(c *cli.Context) error {
				if c.String("db") == "" {
					return cli.Exit("no gallery database, set --db or BIN2ART_DB", 1)
				}

				db, err := openGallery(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				renders, err := db.List()
				if err != nil {
					return cli.Exit(err, 1)
				}

				for _, r := range renders {
					fmt.Println(s.history(r))
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
