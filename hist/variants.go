package hist

import "fmt"

// Hist1D is a one-dimensional view of a [Histogram]. Arithmetic on a Hist1D
// returns a Hist1D.
type Hist1D struct {
	*Histogram
}

// New1D constructs a one-dimensional histogram. errSq may be nil.
func New1D(edges, content, errSq []float64) (*Hist1D, error) {
	h, err := New([][]float64{edges}, content, errSq)
	if err != nil {
		return nil, err
	}
	return &Hist1D{h}, nil
}

// As1D wraps h as a Hist1D. Returns [ErrShapeMismatch] unless h has exactly
// one axis. The view shares h.
func As1D(h *Histogram) (*Hist1D, error) {
	if h == nil || h.NDim() != 1 {
		return nil, shapeError("want a 1D histogram, got %s", describe(h))
	}
	return &Hist1D{h}, nil
}

func as1D(h *Histogram, err error) (*Hist1D, error) {
	if err != nil {
		return nil, err
	}
	return As1D(h)
}

func (h *Hist1D) base() *Histogram {
	if h == nil {
		return nil
	}
	return h.Histogram
}

// XEdges returns a copy of the bin edges.
func (h *Hist1D) XEdges() []float64 { return h.Edges(0) }

// Clone returns an independent deep copy of h.
func (h *Hist1D) Clone() *Hist1D { return &Hist1D{h.Histogram.Clone()} }

// Add returns h + o.
func (h *Hist1D) Add(o Operand) (*Hist1D, error) { return as1D(h.Histogram.Add(o)) }

// Sub returns h - o.
func (h *Hist1D) Sub(o Operand) (*Hist1D, error) { return as1D(h.Histogram.Sub(o)) }

// Mul returns h * o.
func (h *Hist1D) Mul(o Operand) (*Hist1D, error) { return as1D(h.Histogram.Mul(o)) }

// Div returns h / o.
func (h *Hist1D) Div(o Operand) (*Hist1D, error) { return as1D(h.Histogram.Div(o)) }

// Hist2D is a two-dimensional view of a [Histogram] indexed (ix, iy).
// Arithmetic on a Hist2D returns a Hist2D.
type Hist2D struct {
	*Histogram
}

// New2D constructs a two-dimensional histogram from rows of contents:
// content[ix][iy] is the bin at the ix-th x bin and iy-th y bin. errSq may
// be nil. Ragged rows return [ErrShapeMismatch].
func New2D(xEdges, yEdges []float64, content, errSq [][]float64) (*Hist2D, error) {
	flat, err := flattenRows(content, len(yEdges)-1)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}

	var flatErr []float64
	if errSq != nil {
		if len(errSq) != len(content) {
			return nil, shapeError("content has %d rows, squared errors have %d", len(content), len(errSq))
		}
		if flatErr, err = flattenRows(errSq, len(yEdges)-1); err != nil {
			return nil, fmt.Errorf("squared errors: %w", err)
		}
	}

	h, err := New([][]float64{xEdges, yEdges}, flat, flatErr)
	if err != nil {
		return nil, err
	}
	return &Hist2D{h}, nil
}

// As2D wraps h as a Hist2D. Returns [ErrShapeMismatch] unless h has exactly
// two axes. The view shares h.
func As2D(h *Histogram) (*Hist2D, error) {
	if h == nil || h.NDim() != 2 {
		return nil, shapeError("want a 2D histogram, got %s", describe(h))
	}
	return &Hist2D{h}, nil
}

func as2D(h *Histogram, err error) (*Hist2D, error) {
	if err != nil {
		return nil, err
	}
	return As2D(h)
}

func (h *Hist2D) base() *Histogram {
	if h == nil {
		return nil
	}
	return h.Histogram
}

// XEdges returns a copy of the bin edges along the first axis.
func (h *Hist2D) XEdges() []float64 { return h.Edges(0) }

// YEdges returns a copy of the bin edges along the second axis.
func (h *Hist2D) YEdges() []float64 { return h.Edges(1) }

// Rows returns the contents as rows indexed [ix][iy].
func (h *Hist2D) Rows() [][]float64 { return h.rows(h.content) }

// ErrSqRows returns the squared errors as rows indexed [ix][iy].
func (h *Hist2D) ErrSqRows() [][]float64 { return h.rows(h.errSq) }

func (h *Hist2D) rows(data []float64) [][]float64 {
	nx, ny := h.shape[0], h.shape[1]
	out := make([][]float64, nx)
	for ix := range out {
		out[ix] = append([]float64(nil), data[ix*ny:(ix+1)*ny]...)
	}
	return out
}

// Clone returns an independent deep copy of h.
func (h *Hist2D) Clone() *Hist2D { return &Hist2D{h.Histogram.Clone()} }

// Add returns h + o.
func (h *Hist2D) Add(o Operand) (*Hist2D, error) { return as2D(h.Histogram.Add(o)) }

// Sub returns h - o.
func (h *Hist2D) Sub(o Operand) (*Hist2D, error) { return as2D(h.Histogram.Sub(o)) }

// Mul returns h * o.
func (h *Hist2D) Mul(o Operand) (*Hist2D, error) { return as2D(h.Histogram.Mul(o)) }

// Div returns h / o.
func (h *Hist2D) Div(o Operand) (*Hist2D, error) { return as2D(h.Histogram.Div(o)) }

func flattenRows(rows [][]float64, width int) ([]float64, error) {
	if width < 0 {
		return nil, shapeError("no y edges")
	}

	flat := make([]float64, 0, len(rows)*width)
	for ix, row := range rows {
		if len(row) != width {
			return nil, shapeError("row %d has %d bins, want %d", ix, len(row), width)
		}
		flat = append(flat, row...)
	}
	return flat, nil
}

func describe(h *Histogram) string {
	if h == nil {
		return "nil"
	}
	return fmt.Sprintf("%d axes", h.NDim())
}
