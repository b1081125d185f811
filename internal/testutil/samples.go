package testutil

import "math/rand"

// UniformSamples draws length samples uniformly from [lo, hi) with a fixed
// seed for reproducibility.
func UniformSamples(seed int64, lo, hi float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = lo + rng.Float64()*(hi-lo)
	}
	return out
}

// GaussianSamples draws length normally distributed samples with a fixed seed.
func GaussianSamples(seed int64, mean, stddev float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = mean + stddev*rng.NormFloat64()
	}
	return out
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[n-1] = hi
	return out
}

// Constant returns a slice of length n filled with value.
func Constant(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}
