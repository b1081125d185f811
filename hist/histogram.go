// Package hist implements ROOT-like binned histograms: bin edges per axis,
// bin contents and the squared error (variance) of every bin.
//
// Histograms support element-wise arithmetic with first-order error
// propagation, in-place scaling, Gaussian or Poisson error margins and
// binned statistics along an axis.
//
// # Layout
//
// An N-dimensional histogram stores its contents in row-major order: the last
// axis varies fastest, so the 2D bin (ix, iy) of a histogram with ny bins
// along y lives at flat index ix*ny + iy.
//
// # Ownership
//
// Constructors copy their inputs and accessors return copies, so a Histogram
// never shares memory with its callers. [Histogram.Scale] is the only
// mutating operation; take a [Histogram.Clone] first when the original must
// be preserved.
//
// # Numeric edge cases
//
// Dividing by empty bins or computing statistics of an empty histogram
// produces NaN or Inf values. These are propagated, not reported as errors.
package hist

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-hist/stats/binned"
)

// Histogram is an N-dimensional binned histogram with per-bin squared
// errors.
type Histogram struct {
	edges   [][]float64
	shape   []int
	strides []int
	content []float64
	errSq   []float64
}

// New constructs a histogram from bin edges per axis and flat row-major
// contents. errSq may be nil, in which case all errors are zero.
//
// For every axis d, len(edges[d]) must equal the number of bins along d
// plus one, and len(content) must equal the product of those bin counts.
// Violations return [ErrShapeMismatch]; non-increasing edges return
// [ErrUnorderedEdges].
func New(edges [][]float64, content, errSq []float64) (*Histogram, error) {
	if len(edges) == 0 {
		return nil, shapeError("histogram needs at least one axis")
	}

	shape := make([]int, len(edges))
	size := 1
	for d, e := range edges {
		if len(e) == 0 {
			return nil, shapeError("axis %d has no edges", d)
		}
		if err := checkEdges(d, e); err != nil {
			return nil, err
		}
		shape[d] = len(e) - 1
		size *= shape[d]
	}

	if len(content) != size {
		return nil, shapeError("content has %d bins, edges imply shape %v", len(content), shape)
	}
	if errSq != nil && len(errSq) != len(content) {
		return nil, shapeError("content has %d bins, squared errors have %d", len(content), len(errSq))
	}

	h := &Histogram{
		edges:   make([][]float64, len(edges)),
		shape:   shape,
		strides: stridesOf(shape),
		content: append([]float64(nil), content...),
		errSq:   make([]float64, len(content)),
	}
	for d, e := range edges {
		h.edges[d] = append([]float64(nil), e...)
	}
	copy(h.errSq, errSq)

	return h, nil
}

// MustNew is like [New] but panics on error. Intended for tests and
// package-level fixtures with literal data.
func MustNew(edges [][]float64, content, errSq []float64) *Histogram {
	h, err := New(edges, content, errSq)
	if err != nil {
		panic(err)
	}
	return h
}

// derive builds a histogram with h's binning around content and errSq.
// Edges are immutable after construction and may be shared.
func (h *Histogram) derive(content, errSq []float64) *Histogram {
	return &Histogram{
		edges:   h.edges,
		shape:   h.shape,
		strides: h.strides,
		content: content,
		errSq:   errSq,
	}
}

func checkEdges(axis int, e []float64) error {
	for i := 1; i < len(e); i++ {
		if !(e[i] > e[i-1]) {
			return fmt.Errorf("%w: axis %d edge %d (%v) after %v", ErrUnorderedEdges, axis, i, e[i], e[i-1])
		}
	}
	if len(e) == 1 && math.IsNaN(e[0]) {
		return fmt.Errorf("%w: axis %d edge is NaN", ErrUnorderedEdges, axis)
	}
	return nil
}

func stridesOf(shape []int) []int {
	strides := make([]int, len(shape))
	s := 1
	for d := len(shape) - 1; d >= 0; d-- {
		strides[d] = s
		s *= shape[d]
	}
	return strides
}

// NDim returns the number of axes.
func (h *Histogram) NDim() int { return len(h.shape) }

// Shape returns the number of bins along each axis.
func (h *Histogram) Shape() []int { return append([]int(nil), h.shape...) }

// Len returns the total number of bins.
func (h *Histogram) Len() int { return len(h.content) }

// Edges returns a copy of the bin edges of axis.
// Panics if axis is out of range.
func (h *Histogram) Edges(axis int) []float64 {
	return append([]float64(nil), h.edges[axis]...)
}

// AllEdges returns a copy of the bin edges of every axis.
func (h *Histogram) AllEdges() [][]float64 {
	out := make([][]float64, len(h.edges))
	for d := range h.edges {
		out[d] = h.Edges(d)
	}
	return out
}

// Content returns a copy of the flat row-major bin contents.
func (h *Histogram) Content() []float64 { return append([]float64(nil), h.content...) }

// ErrSq returns a copy of the flat row-major squared bin errors.
func (h *Histogram) ErrSq() []float64 { return append([]float64(nil), h.errSq...) }

// Errors returns the bin errors, sqrt(errSq).
func (h *Histogram) Errors() []float64 {
	out := make([]float64, len(h.errSq))
	for i, v := range h.errSq {
		out[i] = math.Sqrt(v)
	}
	return out
}

// Index converts per-axis bin indices to a flat index.
// Panics if the number of indices or any index is out of range.
func (h *Histogram) Index(idx ...int) int {
	if len(idx) != len(h.shape) {
		panic(fmt.Sprintf("hist: %d indices for %d axes", len(idx), len(h.shape)))
	}

	flat := 0
	for d, i := range idx {
		if i < 0 || i >= h.shape[d] {
			panic(fmt.Sprintf("hist: index %d out of range [0, %d) on axis %d", i, h.shape[d], d))
		}
		flat += i * h.strides[d]
	}
	return flat
}

// At returns the content of the bin at the given per-axis indices.
func (h *Histogram) At(idx ...int) float64 { return h.content[h.Index(idx...)] }

// ErrSqAt returns the squared error of the bin at the given per-axis indices.
func (h *Histogram) ErrSqAt(idx ...int) float64 { return h.errSq[h.Index(idx...)] }

// Integral returns the sum of all bin contents.
func (h *Histogram) Integral() float64 { return floats.Sum(h.content) }

// Clone returns an independent deep copy of h.
func (h *Histogram) Clone() *Histogram {
	c := &Histogram{
		edges:   make([][]float64, len(h.edges)),
		shape:   append([]int(nil), h.shape...),
		strides: append([]int(nil), h.strides...),
		content: append([]float64(nil), h.content...),
		errSq:   append([]float64(nil), h.errSq...),
	}
	for d, e := range h.edges {
		c.edges[d] = append([]float64(nil), e...)
	}
	return c
}

// Scale multiplies the histogram in place by factor: contents by factor and
// squared errors by factor².
func (h *Histogram) Scale(factor float64) {
	vecmath.ScaleBlock(h.content, h.content, factor)
	vecmath.ScaleBlock(h.errSq, h.errSq, factor*factor)
}

// CompatibleBinning reports whether h and o have the same number of axes and
// exactly equal edges along every axis.
func (h *Histogram) CompatibleBinning(o *Histogram) bool {
	if o == nil || len(h.edges) != len(o.edges) {
		return false
	}
	for d := range h.edges {
		if !floats.Equal(h.edges[d], o.edges[d]) {
			return false
		}
	}
	return true
}

// Project sums the contents over every axis except axis.
func (h *Histogram) Project(axis int) ([]float64, error) {
	if err := h.checkAxis(axis); err != nil {
		return nil, err
	}
	return h.project(h.content, axis), nil
}

// ProjectErrSq sums the squared errors over every axis except axis.
func (h *Histogram) ProjectErrSq(axis int) ([]float64, error) {
	if err := h.checkAxis(axis); err != nil {
		return nil, err
	}
	return h.project(h.errSq, axis), nil
}

func (h *Histogram) project(data []float64, axis int) []float64 {
	if len(h.shape) == 1 {
		return append([]float64(nil), data...)
	}

	out := make([]float64, h.shape[axis])
	stride, n := h.strides[axis], h.shape[axis]
	for i, v := range data {
		out[(i/stride)%n] += v
	}
	return out
}

// Statistic computes the binned statistic kind of the distribution projected
// onto axis. See [binned.Statistic] for the definitions.
func (h *Histogram) Statistic(kind binned.Kind, axis int) (float64, error) {
	projected, err := h.Project(axis)
	if err != nil {
		return 0, err
	}
	return binned.Statistic(projected, h.edges[axis], kind)
}

func (h *Histogram) checkAxis(axis int) error {
	if axis < 0 || axis >= len(h.shape) {
		return fmt.Errorf("%w: axis %d, histogram has %d", ErrAxisOutOfRange, axis, len(h.shape))
	}
	return nil
}
