// Package spectrum pairs a histogram with its exposure so that it can be
// normalized to a different integrated exposure (POT, protons on target) or
// detector live time.
package spectrum

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-hist/hist"
)

var (
	// ErrAmbiguousNormalization is returned when neither or both of the
	// exposure and live-time targets are given.
	ErrAmbiguousNormalization = errors.New("spectrum: exactly one of exposure or live time must be specified")
	// ErrNonconformantMetadata is returned when combining spectra whose
	// exposure or live time is present in one operand but absent in the other.
	ErrNonconformantMetadata = errors.New("spectrum: nonconformant exposure metadata")
	// ErrMissingNormalization is returned when normalizing on a basis the
	// spectrum carries no value for.
	ErrMissingNormalization = errors.New("spectrum: no stored value for requested normalization")
)

// Quantity is an optional exposure metric.
type Quantity struct {
	Value float64
	Valid bool
}

// Known returns a valid Quantity holding v.
func Known(v float64) Quantity { return Quantity{Value: v, Valid: true} }

// Unknown is the absent Quantity.
var Unknown = Quantity{}

// String formats q, or "none" when absent.
func (q Quantity) String() string {
	if !q.Valid {
		return "none"
	}
	return fmt.Sprintf("%g", q.Value)
}

func (q Quantity) plus(o Quantity) Quantity {
	if !q.Valid {
		return Unknown
	}
	return Known(q.Value + o.Value)
}

// Spectrum is a histogram together with the integrated exposure and live time
// it was recorded with.
type Spectrum struct {
	hist     *hist.Histogram
	exposure Quantity
	liveTime Quantity
}

// New creates a spectrum from h and its exposure metrics. h is cloned.
func New(h *hist.Histogram, exposure, liveTime Quantity) *Spectrum {
	return &Spectrum{hist: h.Clone(), exposure: exposure, liveTime: liveTime}
}

// Exposure returns the stored integrated exposure.
func (s *Spectrum) Exposure() Quantity { return s.exposure }

// LiveTime returns the stored live time.
func (s *Spectrum) LiveTime() Quantity { return s.liveTime }

// Hist returns a copy of the unnormalized histogram.
func (s *Spectrum) Hist() *hist.Histogram { return s.hist.Clone() }

// Normalized returns a copy of the histogram scaled to the requested
// exposure or live time. Exactly one of exposure and liveTime must be valid.
func (s *Spectrum) Normalized(exposure, liveTime Quantity) (*hist.Histogram, error) {
	if exposure.Valid == liveTime.Valid {
		return nil, ErrAmbiguousNormalization
	}

	target, stored, basis := exposure, s.exposure, "exposure"
	if liveTime.Valid {
		target, stored, basis = liveTime, s.liveTime, "live time"
	}
	if !stored.Valid {
		return nil, fmt.Errorf("%w: %s", ErrMissingNormalization, basis)
	}

	result := s.hist.Clone()
	result.Scale(target.Value / stored.Value)
	return result, nil
}

// ToExposure returns the histogram normalized to the integrated exposure v.
func (s *Spectrum) ToExposure(v float64) (*hist.Histogram, error) {
	return s.Normalized(Known(v), Unknown)
}

// ToLiveTime returns the histogram normalized to the live time v.
func (s *Spectrum) ToLiveTime(v float64) (*hist.Histogram, error) {
	return s.Normalized(Unknown, Known(v))
}

// Add returns the spectrum s + o. Histograms are added bin by bin and the
// present exposure metrics are summed.
func (s *Spectrum) Add(o *Spectrum) (*Spectrum, error) {
	return s.combine(o, (*hist.Histogram).Add)
}

// Sub returns the spectrum s - o. Exposure metrics are summed, as for Add.
func (s *Spectrum) Sub(o *Spectrum) (*Spectrum, error) {
	return s.combine(o, (*hist.Histogram).Sub)
}

func (s *Spectrum) combine(o *Spectrum, op func(*hist.Histogram, hist.Operand) (*hist.Histogram, error)) (*Spectrum, error) {
	if err := s.checkConformant(o); err != nil {
		return nil, err
	}

	h, err := op(s.hist, o.hist)
	if err != nil {
		return nil, err
	}

	return &Spectrum{
		hist:     h,
		exposure: s.exposure.plus(o.exposure),
		liveTime: s.liveTime.plus(o.liveTime),
	}, nil
}

func (s *Spectrum) checkConformant(o *Spectrum) error {
	switch {
	case o == nil:
		return fmt.Errorf("%w: nil spectrum", ErrNonconformantMetadata)
	case s.exposure.Valid != o.exposure.Valid:
		return fmt.Errorf("%w: exposure present in only one operand", ErrNonconformantMetadata)
	case s.liveTime.Valid != o.liveTime.Valid:
		return fmt.Errorf("%w: live time present in only one operand", ErrNonconformantMetadata)
	}
	return nil
}
