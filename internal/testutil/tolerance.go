package testutil

import (
	"math"
	"testing"
)

// NearlyEqual reports whether a and b differ by at most eps. Infinities of the
// same sign and NaN pairs compare equal so that non-finite histogram bins can
// be asserted directly.
func NearlyEqual(a, b, eps float64) bool {
	switch {
	case math.IsNaN(a) || math.IsNaN(b):
		return math.IsNaN(a) && math.IsNaN(b)
	case math.IsInf(a, 0) || math.IsInf(b, 0):
		return a == b
	}

	return math.Abs(a-b) <= eps
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair is not [NearlyEqual] within eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if !NearlyEqual(got[i], want[i], eps) {
			t.Fatalf("index %d: got %v, want %v (eps %v)", i, got[i], want[i], eps)
		}
	}
}

// RequireSliceEqual fails t unless got and want are element-wise identical.
func RequireSliceEqual(t *testing.T, got, want []float64) {
	t.Helper()
	RequireSliceNearlyEqual(t, got, want, 0)
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// CountNonFinite returns the number of NaN or Inf elements in data.
func CountNonFinite(data []float64) int {
	n := 0
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			n++
		}
	}
	return n
}
