package hist

import (
	"fmt"
	"slices"
)

// UniformEdges returns n+1 equally spaced edges covering [lo, hi].
func UniformEdges(n int, lo, hi float64) ([]float64, error) {
	if n <= 0 {
		return nil, shapeError("bin count must be > 0: %d", n)
	}
	if !(hi > lo) {
		return nil, fmt.Errorf("%w: range [%v, %v]", ErrUnorderedEdges, lo, hi)
	}

	edges := make([]float64, n+1)
	width := (hi - lo) / float64(n)
	for i := range edges {
		edges[i] = lo + width*float64(i)
	}
	edges[n] = hi
	return edges, nil
}

// FromData1D fills a one-dimensional histogram with samples.
//
// Bins are half-open [edges[i], edges[i+1]) except the last, which also
// includes its upper edge. Samples outside the edges or NaN are dropped.
// weights may be nil for unit weights; otherwise it must match data in
// length. Squared errors accumulate the squared weights.
func FromData1D(data, weights, edges []float64) (*Hist1D, error) {
	if weights != nil && len(weights) != len(data) {
		return nil, shapeError("%d weights for %d samples", len(weights), len(data))
	}
	if err := checkFillEdges(0, edges); err != nil {
		return nil, err
	}

	content := make([]float64, len(edges)-1)
	errSq := make([]float64, len(edges)-1)
	for i, x := range data {
		b := findBin(edges, x)
		if b < 0 {
			continue
		}
		w := weightAt(weights, i)
		content[b] += w
		errSq[b] += w * w
	}

	return New1D(edges, content, errSq)
}

// FromData2D fills a two-dimensional histogram with (x[i], y[i]) samples.
// Binning and weighting follow [FromData1D] along each axis.
func FromData2D(x, y, weights, xEdges, yEdges []float64) (*Hist2D, error) {
	if len(x) != len(y) {
		return nil, shapeError("%d x samples, %d y samples", len(x), len(y))
	}
	if weights != nil && len(weights) != len(x) {
		return nil, shapeError("%d weights for %d samples", len(weights), len(x))
	}
	if err := checkFillEdges(0, xEdges); err != nil {
		return nil, err
	}
	if err := checkFillEdges(1, yEdges); err != nil {
		return nil, err
	}

	nx, ny := len(xEdges)-1, len(yEdges)-1
	content := make([]float64, nx*ny)
	errSq := make([]float64, nx*ny)
	for i := range x {
		bx := findBin(xEdges, x[i])
		by := findBin(yEdges, y[i])
		if bx < 0 || by < 0 {
			continue
		}
		w := weightAt(weights, i)
		content[bx*ny+by] += w
		errSq[bx*ny+by] += w * w
	}

	h, err := New([][]float64{xEdges, yEdges}, content, errSq)
	if err != nil {
		return nil, err
	}
	return &Hist2D{h}, nil
}

func checkFillEdges(axis int, edges []float64) error {
	if len(edges) < 2 {
		return shapeError("axis %d needs at least two edges, got %d", axis, len(edges))
	}
	return checkEdges(axis, edges)
}

// findBin returns the bin containing x, or -1 when x is outside the edges.
func findBin(edges []float64, x float64) int {
	last := len(edges) - 1
	if !(x >= edges[0] && x <= edges[last]) {
		return -1
	}
	if x == edges[last] {
		return last - 1
	}

	i, found := slices.BinarySearch(edges, x)
	if found {
		return i
	}
	return i - 1
}

func weightAt(weights []float64, i int) float64 {
	if weights == nil {
		return 1
	}
	return weights[i]
}
