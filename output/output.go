/*
Package output encodes finished images to disk formats and to the terminal.
*/
package output

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/mattn/go-sixel"
	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
)

// ErrUnknownFormat is returned by ParseFormat for an unsupported name.
var ErrUnknownFormat = errors.New("output: unknown format")

// Format is an image file format.
type Format int

// Supported formats
const (
	PNG Format = iota
	JPEG
	BMP
	QOI
)

const jpegQuality = 95

var formatNames = [...]string{
	PNG:  "png",
	JPEG: "jpeg",
	BMP:  "bmp",
	QOI:  "qoi",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// Ext returns the file extension for f, without the leading dot.
func (f Format) Ext() string {
	if f == JPEG {
		return "jpg"
	}
	return f.String()
}

// Formats returns every supported format.
func Formats() []Format {
	return []Format{PNG, JPEG, BMP, QOI}
}

// ParseFormat returns the format with the given name, ignoring case. "jpg"
// is accepted as an alias for JPEG.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(s)
	if s == "jpg" {
		return JPEG, nil
	}
	for i, n := range formatNames {
		if n == s {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Encode writes m to w in format f.
func Encode(w io.Writer, m image.Image, f Format) error {
	switch f {
	case PNG:
		e := png.Encoder{CompressionLevel: png.BestCompression}
		return e.Encode(w, m)
	case JPEG:
		return jpeg.Encode(w, m, &jpeg.Options{Quality: jpegQuality})
	case BMP:
		return bmp.Encode(w, m)
	case QOI:
		return qoi.Encode(w, m)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}

// Preview writes m to w as a sixel graphic for display in a terminal.
func Preview(w io.Writer, m image.Image) error {
	return sixel.NewEncoder(w).Encode(m)
}
