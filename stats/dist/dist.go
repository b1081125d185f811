// Package dist provides the closed-form distribution helpers used to turn
// Gaussian significances into probabilities and confidence intervals.
//
// All functions are pure and never return errors: arguments outside their
// domain produce NaN, matching the convention that numeric edge cases are
// propagated to the caller rather than reported.
package dist

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// GaussSigmaToProbability converts a significance expressed in Gaussian
// sigmas into the probability mass enclosed by [-sigma, sigma]:
//
//	P = Φ(sigma) - Φ(-sigma)
//
// GaussSigmaToProbability(1) ≈ 0.6827, GaussSigmaToProbability(2) ≈ 0.9545.
func GaussSigmaToProbability(sigma float64) float64 {
	return distuv.UnitNormal.CDF(sigma) - distuv.UnitNormal.CDF(-sigma)
}

// PoissonConfidenceInterval returns the confidence interval [low, high] for
// the rate of a Poisson process after a single observation of observed
// counts, at confidence probability.
//
// The bounds are inverse survival functions of Gamma distributions with unit
// rate:
//
//	low  = Gamma(observed).ISF(1 - probability/2)   (0 when observed == 0)
//	high = Gamma(observed+1).ISF(probability/2)
//
// observed need not be an integer (weighted histograms). Negative or NaN
// counts and probabilities outside (0, 1) yield (NaN, NaN).
func PoissonConfidenceInterval(observed, probability float64) (low, high float64) {
	if math.IsNaN(observed) || observed < 0 || !(probability > 0 && probability < 1) {
		return math.NaN(), math.NaN()
	}

	if observed > 0 {
		low = gammaISF(observed, 1-probability/2)
	}
	high = gammaISF(observed+1, probability/2)

	return low, high
}

// PoissonConfidenceIntervals applies [PoissonConfidenceInterval] element-wise
// to observed, writing the bounds into dstLow and dstHigh.
// Panics if the slice lengths differ.
func PoissonConfidenceIntervals(dstLow, dstHigh, observed []float64, probability float64) {
	if len(dstLow) != len(observed) || len(dstHigh) != len(observed) {
		panic("dist: slice length mismatch")
	}

	for i, x := range observed {
		dstLow[i], dstHigh[i] = PoissonConfidenceInterval(x, probability)
	}
}

// ChiSquaredLevel returns the value x for which a chi-squared variable with
// dof degrees of freedom exceeds x with probability 1 - probability, i.e. the
// inverse survival function of chi-squared(dof) at 1 - probability.
//
// ChiSquaredLevel(GaussSigmaToProbability(1), 2) ≈ 2.2957.
func ChiSquaredLevel(probability, dof float64) float64 {
	if !(probability >= 0 && probability < 1) || !(dof > 0) {
		return math.NaN()
	}

	return distuv.ChiSquared{K: dof}.Quantile(probability)
}

// gammaISF is the inverse survival function of Gamma(shape, rate=1).
func gammaISF(shape, q float64) float64 {
	return distuv.Gamma{Alpha: shape, Beta: 1}.Quantile(1 - q)
}
