package rfile

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/cwbudde/algo-hist/hist"
	"github.com/cwbudde/algo-hist/hist/spectrum"
	"github.com/cwbudde/algo-hist/hist/surface"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONFile is a File backed by a JSON document. Histograms are objects with
// "values", "err_sq" and either "bins" (1D) or "bins_x"/"bins_y" (2D), where
// values and err_sq include underflow and overflow bins.
type JSONFile struct {
	root jsoniter.Any
}

var _ File = (*JSONFile)(nil)

type hist1DDoc struct {
	Values []float64 `json:"values"`
	ErrSq  []float64 `json:"err_sq"`
	Bins   []float64 `json:"bins"`
}

type hist2DDoc struct {
	Values [][]float64 `json:"values"`
	ErrSq  [][]float64 `json:"err_sq"`
	BinsX  []float64   `json:"bins_x"`
	BinsY  []float64   `json:"bins_y"`
}

type scalarDoc struct {
	Values []float64 `json:"values"`
}

// DecodeJSON reads a JSON document from r.
func DecodeJSON(r io.Reader) (*JSONFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("rfile: read json: %w", err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: invalid json document", ErrMalformed)
	}

	root := json.Get(data)
	if root.ValueType() != jsoniter.ObjectValue {
		return nil, fmt.Errorf("%w: json document is not an object", ErrMalformed)
	}
	return &JSONFile{root: root}, nil
}

// Close implements File. It is a no-op.
func (f *JSONFile) Close() error { return nil }

func lookup(from jsoniter.Any, path string) (jsoniter.Any, error) {
	keys := splitPath(path)
	if len(keys) == 0 {
		return from, nil
	}

	node := from
	for i, k := range keys {
		if node.ValueType() != jsoniter.ObjectValue {
			return nil, fmt.Errorf("%w: %q is not an object", ErrPathNotFound, strings.Join(keys[:i], "/"))
		}
		node = node.Get(k)
		if node.ValueType() == jsoniter.InvalidValue {
			return nil, fmt.Errorf("%w: %q", ErrPathNotFound, strings.Join(keys[:i+1], "/"))
		}
	}
	return node, nil
}

func decodeNode(node jsoniter.Any, path string, v any) error {
	if node.ValueType() != jsoniter.ObjectValue {
		return fmt.Errorf("%w: %q is not an object", ErrMalformed, path)
	}
	if err := json.UnmarshalFromString(node.ToString(), v); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrMalformed, path, err)
	}
	return nil
}

// Hist1D implements File.
func (f *JSONFile) Hist1D(path string) (*hist.Hist1D, error) {
	node, err := lookup(f.root, path)
	if err != nil {
		return nil, err
	}
	return loadHist1D(node, path)
}

// Hist2D implements File.
func (f *JSONFile) Hist2D(path string) (*hist.Hist2D, error) {
	node, err := lookup(f.root, path)
	if err != nil {
		return nil, err
	}
	return loadHist2D(node, path)
}

// Hist implements File. Objects with "bins_y" are decoded as 2D.
func (f *JSONFile) Hist(path string) (*hist.Histogram, error) {
	node, err := lookup(f.root, path)
	if err != nil {
		return nil, err
	}
	return loadHist(node, path)
}

// Spectrum implements File. The spectrum object holds "hist" plus "pot" and
// "livetime" single-bin histograms; a missing metric is left unknown.
func (f *JSONFile) Spectrum(path string) (*spectrum.Spectrum, error) {
	node, err := lookup(f.root, path)
	if err != nil {
		return nil, err
	}

	histNode, err := lookup(node, "hist")
	if err != nil {
		return nil, err
	}
	h, err := loadHist(histNode, path+"/hist")
	if err != nil {
		return nil, err
	}

	pot, err := loadScalar(node, path, "pot")
	if err != nil {
		return nil, err
	}
	lt, err := loadScalar(node, path, "livetime")
	if err != nil {
		return nil, err
	}

	return spectrum.New(h, pot, lt), nil
}

// FrequentistSurface implements File. The surface object holds the 2D "hist"
// and "minValues" = [bestValue, bestX, bestY].
func (f *JSONFile) FrequentistSurface(path string) (*surface.Frequentist, error) {
	node, err := lookup(f.root, path)
	if err != nil {
		return nil, err
	}

	histNode, err := lookup(node, "hist")
	if err != nil {
		return nil, err
	}
	heights, err := loadHist2D(histNode, path+"/hist")
	if err != nil {
		return nil, err
	}

	var best []float64
	minNode := node.Get("minValues")
	if minNode.ValueType() != jsoniter.ArrayValue {
		return nil, fmt.Errorf("%w: %q: missing minValues", ErrMalformed, path)
	}
	if err := json.UnmarshalFromString(minNode.ToString(), &best); err != nil {
		return nil, fmt.Errorf("%w: %q: minValues: %w", ErrMalformed, path, err)
	}
	if len(best) < 3 {
		return nil, fmt.Errorf("%w: %q: minValues has %d entries, want 3", ErrMalformed, path, len(best))
	}

	return surface.NewFrequentist(heights, best[0], best[1], best[2])
}

func loadHist(node jsoniter.Any, path string) (*hist.Histogram, error) {
	if node.Get("bins_y").ValueType() != jsoniter.InvalidValue {
		h, err := loadHist2D(node, path)
		if err != nil {
			return nil, err
		}
		return h.Histogram, nil
	}

	h, err := loadHist1D(node, path)
	if err != nil {
		return nil, err
	}
	return h.Histogram, nil
}

func loadHist1D(node jsoniter.Any, path string) (*hist.Hist1D, error) {
	var doc hist1DDoc
	if err := decodeNode(node, path, &doc); err != nil {
		return nil, err
	}
	if len(doc.Values) < 2 || len(doc.ErrSq) < 2 {
		return nil, fmt.Errorf("%w: %q: missing underflow/overflow bins", ErrMalformed, path)
	}

	h, err := hist.New1D(doc.Bins, stripFlow(doc.Values), stripFlow(doc.ErrSq))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrMalformed, path, err)
	}
	return h, nil
}

func loadHist2D(node jsoniter.Any, path string) (*hist.Hist2D, error) {
	var doc hist2DDoc
	if err := decodeNode(node, path, &doc); err != nil {
		return nil, err
	}

	values, err := stripFlow2D(doc.Values)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: values: %w", ErrMalformed, path, err)
	}
	errSq, err := stripFlow2D(doc.ErrSq)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: err_sq: %w", ErrMalformed, path, err)
	}

	h, err := hist.New2D(doc.BinsX, doc.BinsY, values, errSq)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrMalformed, path, err)
	}
	return h, nil
}

// loadScalar reads a single-bin histogram; the value sits between the
// underflow and overflow bins.
func loadScalar(parent jsoniter.Any, path, key string) (spectrum.Quantity, error) {
	node := parent.Get(key)
	if node.ValueType() == jsoniter.InvalidValue {
		return spectrum.Unknown, nil
	}

	var doc scalarDoc
	if err := decodeNode(node, path+"/"+key, &doc); err != nil {
		return spectrum.Unknown, err
	}
	if len(doc.Values) < 2 {
		return spectrum.Unknown, fmt.Errorf("%w: %q: %s has %d values", ErrMalformed, path, key, len(doc.Values))
	}
	return spectrum.Known(doc.Values[1]), nil
}

func stripFlow(v []float64) []float64 {
	return v[1 : len(v)-1]
}

func stripFlow2D(rows [][]float64) ([][]float64, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%d rows, want underflow and overflow rows", len(rows))
	}

	out := make([][]float64, 0, len(rows)-2)
	for i, row := range rows[1 : len(rows)-1] {
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d has %d columns, want underflow and overflow columns", i+1, len(row))
		}
		out = append(out, stripFlow(row))
	}
	return out, nil
}
