// Package binned computes summary statistics of one-dimensional binned
// distributions given as bin contents plus bin edges.
//
// Each bin is represented by its center, weighted by its share of the total
// content. Multi-dimensional histograms must be projected onto the axis of
// interest before calling into this package.
package binned

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrUnknownStatKind is returned for a statistic name or Kind that is not
	// one of mean, rms or stdev.
	ErrUnknownStatKind = errors.New("binned: unknown statistic kind")
	// ErrLengthMismatch is returned when len(edges) != len(content)+1.
	ErrLengthMismatch = errors.New("binned: edges must have one more element than content")
)

// Kind selects the statistic computed by [Statistic].
type Kind int

const (
	KindMean Kind = iota
	// KindRMS is the density-weighted mean of squared bin centers. No square
	// root is taken.
	KindRMS
	// KindStdDev is the density-weighted squared deviation from the mean,
	// i.e. the variance. No square root is taken.
	KindStdDev
)

var kindNames = [...]string{
	KindMean:   "mean",
	KindRMS:    "rms",
	KindStdDev: "stdev",
}

// String returns the canonical name of k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind converts a statistic name ("mean", "rms", "stdev") to a Kind.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStatKind, name)
}

// Centers returns the midpoints of consecutive edges.
func Centers(edges []float64) []float64 {
	if len(edges) < 2 {
		return nil
	}

	out := make([]float64, len(edges)-1)
	for i := range out {
		out[i] = (edges[i] + edges[i+1]) / 2
	}
	return out
}

// Statistic computes the statistic kind of the distribution described by
// content and edges.
//
// content is normalized to a density by dividing by its sum. An all-zero
// content therefore produces NaN; this is not reported as an error.
func Statistic(content, edges []float64, kind Kind) (float64, error) {
	if len(edges) != len(content)+1 {
		return 0, fmt.Errorf("%w: %d edges for %d bins", ErrLengthMismatch, len(edges), len(content))
	}

	centers := Centers(edges)
	density := make([]float64, len(content))
	sum := floats.Sum(content)
	for i, c := range content {
		density[i] = c / sum
	}

	switch kind {
	case KindMean:
		return weightedMean(centers, density), nil
	case KindRMS:
		return weightedMeanSquare(centers, density), nil
	case KindStdDev:
		return weightedVariance(centers, density), nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnknownStatKind, kind)
	}
}

// Mean returns the density-weighted mean bin center.
func Mean(content, edges []float64) (float64, error) {
	return Statistic(content, edges, KindMean)
}

// RMS returns the density-weighted mean of squared bin centers.
func RMS(content, edges []float64) (float64, error) {
	return Statistic(content, edges, KindRMS)
}

// StdDev returns the density-weighted variance of bin centers.
func StdDev(content, edges []float64) (float64, error) {
	return Statistic(content, edges, KindStdDev)
}

func weightedMean(x, w []float64) float64 {
	return floats.Dot(x, w)
}

func weightedMeanSquare(x, w []float64) float64 {
	var s float64
	for i := range x {
		s += x[i] * x[i] * w[i]
	}
	return s
}

func weightedVariance(x, w []float64) float64 {
	mean := weightedMean(x, w)

	var s float64
	for i := range x {
		d := x[i] - mean
		s += d * d * w[i]
	}
	return s
}
