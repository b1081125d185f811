// Package rfile decodes histograms, spectra and surfaces from serialized
// analysis output.
//
// Objects inside a file are addressed by '/'-separated paths, e.g.
// "numu/spectrum". Source histograms carry underflow and overflow bins which
// are stripped before the core types are constructed.
//
// Decoders are registered per [Format]; [Available] reports at startup
// whether a format can be read by this build.
package rfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-hist/hist"
	"github.com/cwbudde/algo-hist/hist/spectrum"
	"github.com/cwbudde/algo-hist/hist/surface"
)

var (
	// ErrUnknownFormat is returned for file extensions with no known format.
	ErrUnknownFormat = errors.New("rfile: unknown file format")
	// ErrFormatUnavailable is returned for known formats without a decoder in
	// this build.
	ErrFormatUnavailable = errors.New("rfile: format not available")
	// ErrPathNotFound is returned when an object path does not exist.
	ErrPathNotFound = errors.New("rfile: object not found")
	// ErrMalformed is returned when an object exists but cannot be decoded.
	ErrMalformed = errors.New("rfile: malformed object")
)

// File gives access to the objects stored in one source.
type File interface {
	// Hist1D loads the one-dimensional histogram at path.
	Hist1D(path string) (*hist.Hist1D, error)
	// Hist2D loads the two-dimensional histogram at path.
	Hist2D(path string) (*hist.Hist2D, error)
	// Hist loads the histogram at path, detecting its dimension.
	Hist(path string) (*hist.Histogram, error)
	// Spectrum loads the spectrum at path.
	Spectrum(path string) (*spectrum.Spectrum, error)
	// FrequentistSurface loads the frequentist surface at path.
	FrequentistSurface(path string) (*surface.Frequentist, error)
	// Close releases resources held by the file.
	Close() error
}

// Format identifies a serialization format.
type Format int

const (
	FormatJSON Format = iota
	FormatROOT
)

// Decoder reads a File from r.
type Decoder func(r io.Reader) (File, error)

type formatEntry struct {
	name    string
	ext     string
	decoder Decoder
}

var registry = map[Format]formatEntry{
	FormatJSON: {"json", ".json", func(r io.Reader) (File, error) { return DecodeJSON(r) }},
	// ROOT files need a ROOT I/O implementation which this build does not
	// link.
	FormatROOT: {"root", ".root", nil},
}

// String returns the format name.
func (f Format) String() string {
	if e, ok := registry[f]; ok {
		return e.name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Extension returns the file extension of f including the leading dot.
func (f Format) Extension() string { return registry[f].ext }

// Available reports whether files of format f can be decoded.
func Available(f Format) bool {
	e, ok := registry[f]
	return ok && e.decoder != nil
}

// Formats returns all known formats in declaration order.
func Formats() []Format {
	return []Format{FormatJSON, FormatROOT}
}

// FormatFromPath determines the format from the file extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range Formats() {
		if registry[f].ext == ext {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Decode reads a File of format f from r.
func Decode(f Format, r io.Reader) (File, error) {
	e, ok := registry[f]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	if e.decoder == nil {
		return nil, fmt.Errorf("%w: %v", ErrFormatUnavailable, f)
	}
	return e.decoder(r)
}

// Open reads the file at path, choosing the decoder from its extension.
func Open(path string) (File, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	if !Available(f) {
		return nil, fmt.Errorf("%w: %v (%s)", ErrFormatUnavailable, f, path)
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rfile: open %s: %w", path, err)
	}
	defer fh.Close()

	return Decode(f, fh)
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
