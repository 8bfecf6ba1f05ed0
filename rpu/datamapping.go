package rpu

import (
	"errors"

	"github.com/quietvoid/dovi-tool-sub001/bitio"
)

// Coefficient is a single mapping-curve coefficient. The data-mapping
// grammar can produce either a fixed-point integer (width
// coefficient_log2_denom+1) or a 32-bit signed value depending on the
// header's coefficient_data_type; both are carried here as a signed
// 64-bit value with the bit width that produced it, per the "single
// carrier with bit-width metadata" design note rather than a tagged
// float/int union.
type Coefficient struct {
	Value int64
	Bits  uint8
}

func readCoefficient(r *bitio.Reader, h *Header) (Coefficient, error) {
	bits := uint8(h.CoefficientLog2Denom) + 1
	if h.CoefficientDataType == 1 {
		bits = 32
	}
	raw, err := r.GetN(int(bits))
	if err != nil {
		return Coefficient{}, err
	}
	return Coefficient{Value: signExtend(raw, int(bits)), Bits: bits}, nil
}

func (c Coefficient) write(w *bitio.Writer) error {
	return w.PutN(truncateCoefficient(c.Value, int(c.Bits)), int(c.Bits))
}

// PolySegment is one polynomial mapping segment: order_minus1 selects the
// coefficient count (order_minus1 + 2).
type PolySegment struct {
	OrderMinus1  uint8
	Coefficients []Coefficient
}

// MmrSegment is one multivariate-multiple-regression mapping segment.
type MmrSegment struct {
	OrderMinus1  uint8
	Constant     Coefficient
	Coefficients [][]Coefficient // up to 7 groups of 7 entries
}

// ComponentMapping is the per-component (Y, Cb, Cr) piecewise mapping
// curve: a set of pivot points dividing the bitdepth range into segments,
// each described by either a polynomial or an MMR segment.
type ComponentMapping struct {
	MappingIdc  uint64
	PivotValues []uint64

	PolySegments []PolySegment
	MmrSegments  []MmrSegment
}

func (m *ComponentMapping) numSegments() int {
	if len(m.PivotValues) == 0 {
		return 1
	}
	return len(m.PivotValues) + 1
}

func readComponentMapping(r *bitio.Reader, h *Header) (*ComponentMapping, error) {
	m := &ComponentMapping{}
	var err error

	if m.MappingIdc, err = r.GetUE(); err != nil {
		return nil, err
	}

	numPivotsMinus2, err := r.GetUE()
	if err != nil {
		return nil, err
	}
	numPivots := numPivotsMinus2 + 2

	m.PivotValues = make([]uint64, numPivots-1)
	for i := range m.PivotValues {
		if m.PivotValues[i], err = r.GetUE(); err != nil {
			return nil, err
		}
	}

	segments := m.numSegments()

	if m.MappingIdc == 0 {
		m.PolySegments = make([]PolySegment, segments)
		for i := range m.PolySegments {
			orderMinus1, err := r.Get8(2)
			if err != nil {
				return nil, err
			}
			seg := PolySegment{OrderMinus1: orderMinus1, Coefficients: make([]Coefficient, orderMinus1+2)}
			for j := range seg.Coefficients {
				if seg.Coefficients[j], err = readCoefficient(r, h); err != nil {
					return nil, err
				}
			}
			m.PolySegments[i] = seg
		}
	} else {
		m.MmrSegments = make([]MmrSegment, segments)
		for i := range m.MmrSegments {
			orderMinus1, err := r.Get8(2)
			if err != nil {
				return nil, err
			}
			seg := MmrSegment{OrderMinus1: orderMinus1}
			if seg.Constant, err = readCoefficient(r, h); err != nil {
				return nil, err
			}
			seg.Coefficients = make([][]Coefficient, orderMinus1+1)
			for g := range seg.Coefficients {
				group := make([]Coefficient, 7)
				for k := range group {
					if group[k], err = readCoefficient(r, h); err != nil {
						return nil, err
					}
				}
				seg.Coefficients[g] = group
			}
			m.MmrSegments[i] = seg
		}
	}

	return m, nil
}

func (m *ComponentMapping) write(w *bitio.Writer, h *Header) error {
	if len(m.PivotValues) == 0 {
		return errors.New("rpu: component mapping needs at least one pivot value")
	}
	if err := w.PutUE(m.MappingIdc); err != nil {
		return err
	}
	if err := w.PutUE(uint64(len(m.PivotValues)) - 1); err != nil {
		return err
	}
	for _, v := range m.PivotValues {
		if err := w.PutUE(v); err != nil {
			return err
		}
	}

	if m.MappingIdc == 0 {
		for _, seg := range m.PolySegments {
			_ = w.PutN(uint64(seg.OrderMinus1), 2)
			for _, c := range seg.Coefficients {
				if err := c.write(w); err != nil {
					return err
				}
			}
		}
	} else {
		for _, seg := range m.MmrSegments {
			_ = w.PutN(uint64(seg.OrderMinus1), 2)
			if err := seg.Constant.write(w); err != nil {
				return err
			}
			for _, group := range seg.Coefficients {
				for _, c := range group {
					if err := c.write(w); err != nil {
						return err
					}
				}
			}
		}
	}

	return nil
}

// DataMapping holds the three per-component mapping curves, present only
// when the header's rpu_type selects mapping metadata.
type DataMapping struct {
	Components [3]*ComponentMapping
}

func parseDataMapping(r *bitio.Reader, h *Header) (*DataMapping, error) {
	dm := &DataMapping{}
	for c := range dm.Components {
		cm, err := readComponentMapping(r, h)
		if err != nil {
			return nil, err
		}
		dm.Components[c] = cm
	}
	return dm, nil
}

func (dm *DataMapping) write(w *bitio.Writer, h *Header) error {
	for _, cm := range dm.Components {
		if err := cm.write(w, h); err != nil {
			return err
		}
	}
	return nil
}

func signExtend(v uint64, bits int) int64 {
	if bits <= 0 || bits >= 64 {
		return int64(v)
	}
	mask := uint64(1) << uint(bits-1)
	return (int64(v) ^ int64(mask)) - int64(mask)
}

func truncateCoefficient(v int64, bits int) uint64 {
	if bits <= 0 || bits >= 64 {
		return uint64(v)
	}
	mask := uint64(1)<<uint(bits) - 1
	return uint64(v) & mask
}
