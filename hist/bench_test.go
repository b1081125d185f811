package hist

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-hist/internal/testutil"
)

func makeBenchHist(b *testing.B, n int, seed int64) *Hist1D {
	b.Helper()
	edges, err := UniformEdges(n, -5, 5)
	if err != nil {
		b.Fatal(err)
	}
	h, err := FromData1D(testutil.GaussianSamples(seed, 0, 1, 8*n), nil, edges)
	if err != nil {
		b.Fatal(err)
	}
	return h
}

func BenchmarkArithmetic(b *testing.B) {
	for _, n := range []int{64, 1024, 16384} {
		x := makeBenchHist(b, n, 1)
		y := makeBenchHist(b, n, 2)

		for _, op := range []struct {
			name string
			fn   func(Operand) (*Hist1D, error)
		}{
			{"add", x.Add},
			{"mul", x.Mul},
			{"div", x.Div},
		} {
			b.Run(fmt.Sprintf("%s/bins=%d", op.name, n), func(b *testing.B) {
				b.SetBytes(int64(n * 16))
				b.ReportAllocs()
				b.ResetTimer()

				for range b.N {
					_, _ = op.fn(y)
				}
			})
		}
	}
}

func BenchmarkErrorMargin(b *testing.B) {
	h := makeBenchHist(b, 1024, 3)

	for _, kind := range []ErrorKind{ErrorNormal, ErrorPoisson} {
		b.Run(kind.String(), func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				_, _, _ = h.ErrorMargin(kind, 1)
			}
		})
	}
}

func BenchmarkFromData1D(b *testing.B) {
	data := testutil.UniformSamples(4, -1, 1, 1<<16)
	edges, err := UniformEdges(256, -1, 1)
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(data) * 8))
	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		_, _ = FromData1D(data, nil, edges)
	}
}
