package hist

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-hist/internal/testutil"
	"github.com/cwbudde/algo-hist/stats/binned"
)

const tolerance = 1e-12

func sample1D(t *testing.T) *Histogram {
	t.Helper()
	h, err := New([][]float64{{0, 1, 2, 3}}, []float64{10, 20, 30}, []float64{1, 4, 9})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return h
}

func sample2D(t *testing.T) *Histogram {
	t.Helper()
	// 2 x bins, 3 y bins, row-major.
	h, err := New(
		[][]float64{{0, 1, 2}, {0, 10, 20, 30}},
		[]float64{1, 2, 3, 4, 5, 6},
		[]float64{1, 1, 1, 2, 2, 2},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return h
}

func TestNew(t *testing.T) {
	h := sample2D(t)

	if h.NDim() != 2 {
		t.Fatalf("NDim = %d, want 2", h.NDim())
	}
	if s := h.Shape(); s[0] != 2 || s[1] != 3 {
		t.Fatalf("Shape = %v, want [2 3]", s)
	}
	if h.Len() != 6 {
		t.Fatalf("Len = %d, want 6", h.Len())
	}
	if got := h.At(1, 2); got != 6 {
		t.Fatalf("At(1, 2) = %v, want 6", got)
	}
	if got := h.ErrSqAt(1, 0); got != 2 {
		t.Fatalf("ErrSqAt(1, 0) = %v, want 2", got)
	}
	if got := h.Index(1, 1); got != 4 {
		t.Fatalf("Index(1, 1) = %d, want 4", got)
	}
}

func TestNewDefaultsErrorsToZero(t *testing.T) {
	h, err := New([][]float64{{0, 1, 2}}, []float64{5, 6}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	testutil.RequireSliceEqual(t, h.ErrSq(), []float64{0, 0})
}

func TestNewShapeErrors(t *testing.T) {
	tests := []struct {
		name    string
		edges   [][]float64
		content []float64
		errSq   []float64
		want    error
	}{
		{"no axes", nil, []float64{1}, nil, ErrShapeMismatch},
		{"empty edges", [][]float64{{}}, nil, nil, ErrShapeMismatch},
		{"content too short", [][]float64{{0, 1, 2}}, []float64{1}, nil, ErrShapeMismatch},
		{"content too long", [][]float64{{0, 1}}, []float64{1, 2}, nil, ErrShapeMismatch},
		{"errSq shape", [][]float64{{0, 1, 2}}, []float64{1, 2}, []float64{1}, ErrShapeMismatch},
		{"2D size", [][]float64{{0, 1, 2}, {0, 1}}, []float64{1, 2, 3}, nil, ErrShapeMismatch},
		{"decreasing", [][]float64{{0, 2, 1}}, []float64{1, 2}, nil, ErrUnorderedEdges},
		{"repeated", [][]float64{{0, 1, 1}}, []float64{1, 2}, nil, ErrUnorderedEdges},
		{"nan edge", [][]float64{{0, math.NaN()}}, []float64{1}, nil, ErrUnorderedEdges},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.edges, tt.content, tt.errSq)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewCopiesInputs(t *testing.T) {
	edges := []float64{0, 1, 2}
	content := []float64{3, 4}
	errSq := []float64{1, 1}

	h, err := New([][]float64{edges}, content, errSq)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	edges[0], content[0], errSq[0] = -5, 100, 100
	if h.Edges(0)[0] != 0 || h.At(0) != 3 || h.ErrSqAt(0) != 1 {
		t.Fatal("histogram aliases constructor inputs")
	}

	got := h.Content()
	got[1] = 99
	if h.At(1) != 4 {
		t.Fatal("Content exposes internal storage")
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustNew([][]float64{{0, 1}}, []float64{1, 2}, nil)
}

func TestIndexPanics(t *testing.T) {
	h := sample2D(t)
	for _, idx := range [][]int{{0}, {2, 0}, {0, -1}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("Index(%v) did not panic", idx)
				}
			}()
			h.Index(idx...)
		}()
	}
}

func TestScale(t *testing.T) {
	h := sample1D(t)
	h.Scale(2)

	testutil.RequireSliceEqual(t, h.Content(), []float64{20, 40, 60})
	testutil.RequireSliceEqual(t, h.ErrSq(), []float64{4, 16, 36})
}

func TestScaleIdentity(t *testing.T) {
	h := sample2D(t)
	content, errSq := h.Content(), h.ErrSq()

	h.Scale(1)

	testutil.RequireSliceEqual(t, h.Content(), content)
	testutil.RequireSliceEqual(t, h.ErrSq(), errSq)
}

func TestScaleRoundTrip(t *testing.T) {
	for _, c := range []float64{3, -0.25, 1e6, 7.5e-4} {
		h := sample1D(t)
		content, errSq := h.Content(), h.ErrSq()

		h.Scale(c)
		h.Scale(1 / c)

		testutil.RequireSliceNearlyEqual(t, h.Content(), content, 1e-9)
		testutil.RequireSliceNearlyEqual(t, h.ErrSq(), errSq, 1e-9)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	h := sample1D(t)
	c := h.Clone()
	c.Scale(10)

	testutil.RequireSliceEqual(t, h.Content(), []float64{10, 20, 30})
	testutil.RequireSliceEqual(t, c.Content(), []float64{100, 200, 300})
	if !h.CompatibleBinning(c) {
		t.Fatal("clone lost binning")
	}
}

func TestErrors(t *testing.T) {
	testutil.RequireSliceEqual(t, sample1D(t).Errors(), []float64{1, 2, 3})
}

func TestIntegral(t *testing.T) {
	if got := sample2D(t).Integral(); got != 21 {
		t.Fatalf("Integral = %v, want 21", got)
	}
}

func TestProject(t *testing.T) {
	h := sample2D(t)

	x, err := h.Project(0)
	if err != nil {
		t.Fatalf("Project(0): %v", err)
	}
	testutil.RequireSliceEqual(t, x, []float64{6, 15})

	y, err := h.Project(1)
	if err != nil {
		t.Fatalf("Project(1): %v", err)
	}
	testutil.RequireSliceEqual(t, y, []float64{5, 7, 9})

	ey, err := h.ProjectErrSq(1)
	if err != nil {
		t.Fatalf("ProjectErrSq(1): %v", err)
	}
	testutil.RequireSliceEqual(t, ey, []float64{3, 3, 3})
}

func TestProject3D(t *testing.T) {
	content := make([]float64, 2*3*4)
	for i := range content {
		content[i] = float64(i)
	}
	h, err := New([][]float64{{0, 1, 2}, {0, 1, 2, 3}, {0, 1, 2, 3, 4}}, content, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	z, err := h.Project(2)
	if err != nil {
		t.Fatalf("Project(2): %v", err)
	}
	// Sum over x and y of i = 12*ix + 4*iy + iz.
	testutil.RequireSliceEqual(t, z, []float64{60, 66, 72, 78})

	var total float64
	for _, v := range z {
		total += v
	}
	if total != h.Integral() {
		t.Fatalf("projection total %v != integral %v", total, h.Integral())
	}
}

func TestStatistic(t *testing.T) {
	h := sample1D(t)

	got, err := h.Statistic(binned.KindMean, 0)
	if err != nil {
		t.Fatalf("Statistic: %v", err)
	}
	if !testutil.NearlyEqual(got, 11.0/6, tolerance) {
		t.Fatalf("mean = %v, want %v", got, 11.0/6)
	}
}

func TestStatistic2D(t *testing.T) {
	h := sample2D(t)

	// y projection [5, 7, 9] at centers [5, 15, 25].
	got, err := h.Statistic(binned.KindMean, 1)
	if err != nil {
		t.Fatalf("Statistic: %v", err)
	}
	want := (5*5 + 15*7 + 25*9) / 21.0
	if !testutil.NearlyEqual(got, want, tolerance) {
		t.Fatalf("mean = %v, want %v", got, want)
	}
}

func TestStatisticErrors(t *testing.T) {
	h := sample2D(t)

	for _, axis := range []int{-1, 2} {
		if _, err := h.Statistic(binned.KindMean, axis); !errors.Is(err, ErrAxisOutOfRange) {
			t.Fatalf("axis %d: got %v, want ErrAxisOutOfRange", axis, err)
		}
	}
	if _, err := h.Statistic(binned.Kind(7), 0); !errors.Is(err, binned.ErrUnknownStatKind) {
		t.Fatalf("got %v, want ErrUnknownStatKind", err)
	}
}

func TestStatisticEmptyIsNaN(t *testing.T) {
	h := MustNew([][]float64{{0, 1, 2}}, []float64{0, 0}, nil)
	got, err := h.Statistic(binned.KindRMS, 0)
	if err != nil {
		t.Fatalf("Statistic: %v", err)
	}
	if !math.IsNaN(got) {
		t.Fatalf("got %v, want NaN", got)
	}
}
