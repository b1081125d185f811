package testutil

import (
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	tests := []struct {
		a, b, eps float64
		want      bool
	}{
		{1, 1, 0, true},
		{1, 1.05, 0.1, true},
		{1, 1.2, 0.1, false},
		{math.Inf(1), math.Inf(1), 0, true},
		{math.Inf(1), math.Inf(-1), 1, false},
		{math.Inf(1), 1e308, 1e308, false},
		{math.NaN(), math.NaN(), 0, true},
		{math.NaN(), 0, 1, false},
	}

	for _, tt := range tests {
		if got := NearlyEqual(tt.a, tt.b, tt.eps); got != tt.want {
			t.Errorf("NearlyEqual(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.eps, got, tt.want)
		}
	}
}

func TestCountNonFinite(t *testing.T) {
	data := []float64{1, math.NaN(), math.Inf(-1), 0, math.Inf(1)}
	if got := CountNonFinite(data); got != 3 {
		t.Fatalf("CountNonFinite = %d, want 3", got)
	}
}

func TestLinspace(t *testing.T) {
	RequireSliceNearlyEqual(t, Linspace(0, 1, 5), []float64{0, 0.25, 0.5, 0.75, 1}, 1e-15)
	RequireSliceEqual(t, Linspace(2, 3, 1), []float64{2})
}

func TestSamplesDeterministic(t *testing.T) {
	RequireSliceEqual(t, UniformSamples(7, -1, 1, 16), UniformSamples(7, -1, 1, 16))
	RequireSliceEqual(t, GaussianSamples(7, 0, 1, 16), GaussianSamples(7, 0, 1, 16))

	for i, v := range UniformSamples(3, 2, 5, 1000) {
		if v < 2 || v >= 5 {
			t.Fatalf("sample %d = %v outside [2, 5)", i, v)
		}
	}
}
