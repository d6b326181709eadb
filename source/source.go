/*
Package source reads the bytes of a binary artifact ready for rendering.

Plain files are read as-is. Files compressed with zstd (.zst) or gzip (.gz)
are transparently decompressed, and CUE sheets (.cue) are resolved to the
user data of their first data track so CD images render the disc contents
rather than the sheet text.
*/
package source

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/vchimishuk/chub/cue"
)

const (
	sectorHeader  = 16
	sectorSize    = 2048
	sectorTrailer = 288
	rawSectorSize = sectorHeader + sectorSize + sectorTrailer
)

// ErrNoDataTrack is returned for a CUE sheet with only audio tracks.
var ErrNoDataTrack = errors.New("source: no data track in cue sheet")

// Payload is the content of a source file.
type Payload struct {
	// Name is the file name without directory or extension
	Name string
	// Data holds the bytes to render
	Data []byte
	// SHA1 is the upper case hex digest of the file as stored on disk
	SHA1 string
}

// Name returns the name a payload loaded from file will have: the base name
// with only the last extension removed.
func Name(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load reads file, decompressing or resolving it according to its
// extension.
func Load(file string) (*Payload, error) {
	p := &Payload{
		Name: Name(file),
	}

	var err error
	switch strings.ToLower(filepath.Ext(file)) {
	case ".zst":
		p.Data, p.SHA1, err = readFile(file, zstdReader)
	case ".gz":
		p.Data, p.SHA1, err = readFile(file, gzipReader)
	case ".cue":
		p.Data, p.SHA1, err = readCue(file)
	default:
		p.Data, p.SHA1, err = readFile(file, plainReader)
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

type readerFunc func(io.Reader) ([]byte, error)

func plainReader(r io.Reader) ([]byte, error) {
	return io.ReadAll(r)
}

func zstdReader(r io.Reader) ([]byte, error) {
	d, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	return io.ReadAll(d)
}

func gzipReader(r io.Reader) ([]byte, error) {
	z, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer z.Close()

	return io.ReadAll(z)
}

func readFile(file string, fn readerFunc) ([]byte, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	h := sha1.New()
	b, err := fn(io.TeeReader(f, h))
	if err != nil {
		return nil, "", fmt.Errorf("source: %s: %w", filepath.Base(file), err)
	}

	// Drain anything the decoder didn't need so the digest covers the file
	if _, err := io.Copy(h, f); err != nil {
		return nil, "", err
	}

	return b, fmt.Sprintf("%X", h.Sum(nil)), nil
}

func firstDataTrack(sheet *cue.Sheet) (string, cue.TrackDataType, error) {
	for _, file := range sheet.Files {
		for _, track := range file.Tracks {
			switch track.DataType {
			case cue.DataTypeMode1_2048, cue.DataTypeMode1_2352:
				return file.Name, track.DataType, nil
			}
		}
	}
	return "", cue.DataTypeAudio, ErrNoDataTrack
}

// readCue returns the user data of every sector in the file holding the
// first data track.
func readCue(file string) ([]byte, string, error) {
	sheet, err := cue.ParseFile(file)
	if err != nil {
		return nil, "", err
	}

	name, dataType, err := firstDataTrack(sheet)
	if err != nil {
		return nil, "", err
	}

	track := filepath.Join(filepath.Dir(file), name)
	if dataType == cue.DataTypeMode1_2048 {
		return readFile(track, plainReader)
	}

	return readFile(track, rawSectors)
}

// rawSectors strips the sync/header and EDC/ECC trailer from each raw 2352
// byte sector. A short final sector keeps whatever user data it has.
func rawSectors(r io.Reader) ([]byte, error) {
	var b []byte
	var sector [rawSectorSize]byte
	for {
		n, err := io.ReadFull(r, sector[:])
		if n > sectorHeader {
			b = append(b, sector[sectorHeader:min(n, sectorHeader+sectorSize)]...)
		}
		switch err {
		case nil:
		case io.EOF, io.ErrUnexpectedEOF:
			return b, nil
		default:
			return nil, err
		}
	}
}
