package hist

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch is returned when bin edges, contents and squared
	// errors do not describe the same shape.
	ErrShapeMismatch = errors.New("hist: shape mismatch")
	// ErrUnorderedEdges is returned when an axis' edges are not strictly
	// increasing.
	ErrUnorderedEdges = errors.New("hist: bin edges must be strictly increasing")
	// ErrIncompatibleBinning is returned by binary operations on histograms
	// whose bin edges differ.
	ErrIncompatibleBinning = errors.New("hist: incompatible binning")
	// ErrUnknownErrorKind is returned for an error margin kind other than
	// normal or poisson.
	ErrUnknownErrorKind = errors.New("hist: unknown error kind")
	// ErrAxisOutOfRange is returned when an axis index is not in [0, NDim).
	ErrAxisOutOfRange = errors.New("hist: axis out of range")
)

func shapeError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrShapeMismatch}, args...)...)
}
