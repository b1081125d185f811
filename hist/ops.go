package hist

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Operand is the right-hand side of a histogram binary operation: either a
// [Scalar] or a histogram (*Histogram, *Hist1D or *Hist2D).
//
// The set of operands is closed; it cannot be implemented outside this
// package.
type Operand interface {
	operand()
}

// Scalar is a constant operand. It acts as a histogram with the binning of
// the left operand, every bin equal to the constant, and zero error.
type Scalar float64

func (Scalar) operand() {}

func (h *Histogram) operand() {}

// base is promoted to the histogram variants through embedding.
func (h *Histogram) base() *Histogram { return h }

type histogramOperand interface {
	Operand
	base() *Histogram
}

// resolve returns the content and squared errors of o on h's binning.
// The returned slices must not be modified.
func (h *Histogram) resolve(o Operand) (content, errSq []float64, err error) {
	switch v := o.(type) {
	case Scalar:
		content = make([]float64, len(h.content))
		for i := range content {
			content[i] = float64(v)
		}
		return content, make([]float64, len(h.content)), nil
	case histogramOperand:
		b := v.base()
		if b == nil || !h.CompatibleBinning(b) {
			return nil, nil, ErrIncompatibleBinning
		}
		return b.content, b.errSq, nil
	default:
		return nil, nil, fmt.Errorf("%w: unsupported operand %T", ErrIncompatibleBinning, o)
	}
}

// Add returns h + o. Squared errors add.
func (h *Histogram) Add(o Operand) (*Histogram, error) {
	bc, be, err := h.resolve(o)
	if err != nil {
		return nil, err
	}

	content := h.Content()
	vecmath.AddBlockInPlace(content, bc)

	errSq := h.ErrSq()
	vecmath.AddBlockInPlace(errSq, be)

	return h.derive(content, errSq), nil
}

// Sub returns h - o. Squared errors add.
func (h *Histogram) Sub(o Operand) (*Histogram, error) {
	bc, be, err := h.resolve(o)
	if err != nil {
		return nil, err
	}

	content := make([]float64, len(h.content))
	vecmath.ScaleBlock(content, bc, -1)
	vecmath.AddBlockInPlace(content, h.content)

	errSq := h.ErrSq()
	vecmath.AddBlockInPlace(errSq, be)

	return h.derive(content, errSq), nil
}

// Mul returns the bin-wise product h * o with
//
//	errSq = o.content²·h.errSq + h.content²·o.errSq
func (h *Histogram) Mul(o Operand) (*Histogram, error) {
	bc, be, err := h.resolve(o)
	if err != nil {
		return nil, err
	}

	n := len(h.content)
	content := make([]float64, n)
	vecmath.MulBlock(content, h.content, bc)

	errSq := make([]float64, n)
	vecmath.MulBlock(errSq, bc, bc)
	vecmath.MulBlockInPlace(errSq, h.errSq)

	term := make([]float64, n)
	vecmath.MulBlock(term, h.content, h.content)
	vecmath.MulBlockInPlace(term, be)
	vecmath.AddBlockInPlace(errSq, term)

	return h.derive(content, errSq), nil
}

// Div returns the bin-wise ratio h / o with
//
//	errSq = (1/o.content)²·h.errSq + (h.content/o.content²)²·o.errSq
//
// Bins where o is zero yield Inf or NaN.
func (h *Histogram) Div(o Operand) (*Histogram, error) {
	bc, be, err := h.resolve(o)
	if err != nil {
		return nil, err
	}

	n := len(h.content)
	content := make([]float64, n)
	errSq := make([]float64, n)
	for i, a := range h.content {
		b := bc[i]
		inv := 1 / b
		r := a / (b * b)

		content[i] = a / b
		errSq[i] = inv*inv*h.errSq[i] + r*r*be[i]
	}

	return h.derive(content, errSq), nil
}
