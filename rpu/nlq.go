package rpu

import "github.com/quietvoid/dovi-tool-sub001/bitio"

// NlqComponent is one component's non-linear-quantizer residual mapping
// parameters, present only for a profile 7 FEL enhancement layer.
type NlqComponent struct {
	Offset                     uint64
	HdrInMaxInt                uint64
	HdrInMax                   uint64
	LinearDeadzoneSlopeInt     uint64
	LinearDeadzoneSlope        uint64
	LinearDeadzoneThresholdInt uint64
	LinearDeadzoneThreshold    uint64
}

// NlqData is the FEL-only non-linear-quantizer section: two fixed pivots
// plus per-component residual parameters.
type NlqData struct {
	Pivot0     uint64
	Pivot1     uint64
	Components [3]NlqComponent
}

func parseNlqData(r *bitio.Reader, h *Header) (*NlqData, error) {
	n := &NlqData{}
	var err error

	if n.Pivot0, err = r.GetUE(); err != nil {
		return nil, err
	}
	if n.Pivot1, err = r.GetUE(); err != nil {
		return nil, err
	}

	offsetBits := int(h.VdrBitDepthMinus8) + 8
	denomBits := int(h.CoefficientLog2Denom)

	for c := range n.Components {
		nc := &n.Components[c]
		if nc.Offset, err = r.GetN(offsetBits); err != nil {
			return nil, err
		}
		if nc.HdrInMaxInt, err = r.GetUE(); err != nil {
			return nil, err
		}
		if nc.HdrInMax, err = r.GetN(denomBits); err != nil {
			return nil, err
		}
		if nc.LinearDeadzoneSlopeInt, err = r.GetUE(); err != nil {
			return nil, err
		}
		if nc.LinearDeadzoneSlope, err = r.GetN(denomBits); err != nil {
			return nil, err
		}
		if nc.LinearDeadzoneThresholdInt, err = r.GetUE(); err != nil {
			return nil, err
		}
		if nc.LinearDeadzoneThreshold, err = r.GetN(denomBits); err != nil {
			return nil, err
		}
	}

	return n, nil
}

func (n *NlqData) write(w *bitio.Writer, h *Header) error {
	if err := w.PutUE(n.Pivot0); err != nil {
		return err
	}
	if err := w.PutUE(n.Pivot1); err != nil {
		return err
	}

	offsetBits := int(h.VdrBitDepthMinus8) + 8
	denomBits := int(h.CoefficientLog2Denom)

	for _, nc := range n.Components {
		if err := w.PutN(nc.Offset, offsetBits); err != nil {
			return err
		}
		if err := w.PutUE(nc.HdrInMaxInt); err != nil {
			return err
		}
		if err := w.PutN(nc.HdrInMax, denomBits); err != nil {
			return err
		}
		if err := w.PutUE(nc.LinearDeadzoneSlopeInt); err != nil {
			return err
		}
		if err := w.PutN(nc.LinearDeadzoneSlope, denomBits); err != nil {
			return err
		}
		if err := w.PutUE(nc.LinearDeadzoneThresholdInt); err != nil {
			return err
		}
		if err := w.PutN(nc.LinearDeadzoneThreshold, denomBits); err != nil {
			return err
		}
	}

	return nil
}
