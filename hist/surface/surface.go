// Package surface models likelihood surfaces: a 2D grid of test-statistic
// values over two fit parameters together with the best-fit point.
//
// [Surface] is a closed interface; [Frequentist] is its only implementation.
package surface

import (
	"fmt"

	"github.com/cwbudde/algo-hist/hist"
	"github.com/cwbudde/algo-hist/stats/dist"
)

// DefaultSigma is the significance used when none is requested.
const DefaultSigma = 1

// Surface is a 2D likelihood surface with a best-fit point.
type Surface interface {
	// Heights returns a copy of the surface values.
	Heights() *hist.Hist2D
	// BestValue returns the surface value at the best-fit point, typically
	// its minimum.
	BestValue() float64
	// BestFit returns the coordinates of the best-fit point.
	BestFit() (x, y float64)
	// Level returns the surface height of the contour at a significance of
	// sigma Gaussian standard deviations.
	Level(sigma float64) float64
	// LevelRelative is Level shifted by bestValue - BestValue(), for contours
	// relative to an external reference minimum.
	LevelRelative(sigma, bestValue float64) float64

	surface()
}

type base struct {
	heights   *hist.Hist2D
	bestValue float64
	bestX     float64
	bestY     float64
}

func newBase(heights *hist.Hist2D, bestValue, bestX, bestY float64) (base, error) {
	if heights == nil || heights.Histogram == nil {
		return base{}, fmt.Errorf("surface: %w: nil heights", hist.ErrShapeMismatch)
	}
	return base{
		heights:   heights.Clone(),
		bestValue: bestValue,
		bestX:     bestX,
		bestY:     bestY,
	}, nil
}

func (b *base) Heights() *hist.Hist2D   { return b.heights.Clone() }
func (b *base) BestValue() float64      { return b.bestValue }
func (b *base) BestFit() (x, y float64) { return b.bestX, b.bestY }
func (b *base) surface()                {}

// Frequentist is a surface of -2 log-likelihood differences, assumed
// distributed as chi-squared with two degrees of freedom.
type Frequentist struct {
	base
}

var _ Surface = (*Frequentist)(nil)

// NewFrequentist creates a frequentist surface. heights is cloned.
func NewFrequentist(heights *hist.Hist2D, bestValue, bestX, bestY float64) (*Frequentist, error) {
	b, err := newBase(heights, bestValue, bestX, bestY)
	if err != nil {
		return nil, err
	}
	return &Frequentist{b}, nil
}

// Level returns x such that a chi-squared(2) variable exceeds x with
// probability 1 - GaussSigmaToProbability(sigma). Level(1) ≈ 2.2957.
func (f *Frequentist) Level(sigma float64) float64 {
	return dist.ChiSquaredLevel(dist.GaussSigmaToProbability(sigma), 2)
}

// LevelRelative returns Level(sigma) + bestValue - BestValue().
func (f *Frequentist) LevelRelative(sigma, bestValue float64) float64 {
	return f.Level(sigma) + (bestValue - f.bestValue)
}

// Levels returns Level for each sigma, in order.
func (f *Frequentist) Levels(sigmas ...float64) []float64 {
	out := make([]float64, len(sigmas))
	for i, s := range sigmas {
		out[i] = f.Level(s)
	}
	return out
}
