package hist

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-hist/stats/dist"
)

// ErrorKind selects how [Histogram.ErrorMargin] computes error bars.
type ErrorKind int

const (
	// ErrorNormal uses the propagated squared errors as Gaussian variances.
	ErrorNormal ErrorKind = iota
	// ErrorPoisson treats each bin content as a single Poisson observation
	// and ignores the stored squared errors.
	ErrorPoisson
)

// String returns the canonical name of k.
func (k ErrorKind) String() string {
	switch k {
	case ErrorNormal:
		return "normal"
	case ErrorPoisson:
		return "poisson"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseErrorKind converts "normal" or "poisson" to an ErrorKind. The empty
// string selects [ErrorNormal].
func ParseErrorKind(name string) (ErrorKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "normal":
		return ErrorNormal, nil
	case "poisson":
		return ErrorPoisson, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownErrorKind, name)
	}
}

// ErrorMargin returns the lower and upper error margins of every bin at a
// confidence of sigma Gaussian standard deviations.
//
// For [ErrorNormal] the margins are content ∓ sigma·sqrt(errSq). For
// [ErrorPoisson] sigma is converted to a probability and each bin content is
// replaced by its Poisson confidence interval; see
// [dist.PoissonConfidenceInterval].
func (h *Histogram) ErrorMargin(kind ErrorKind, sigma float64) (low, high []float64, err error) {
	n := len(h.content)

	switch kind {
	case ErrorNormal:
		low = make([]float64, n)
		high = make([]float64, n)
		for i, c := range h.content {
			e := sigma * math.Sqrt(h.errSq[i])
			low[i] = c - e
			high[i] = c + e
		}
		return low, high, nil
	case ErrorPoisson:
		low = make([]float64, n)
		high = make([]float64, n)
		dist.PoissonConfidenceIntervals(low, high, h.content, dist.GaussSigmaToProbability(sigma))
		return low, high, nil
	default:
		return nil, nil, fmt.Errorf("%w: %v", ErrUnknownErrorKind, kind)
	}
}
