package extmetadata

import "github.com/quietvoid/dovi-tool-sub001/bitio"

// Level17 carries up-mapping metadata: a set of boost/stretch/drop
// adjustments plus an intensity indicator and chroma lift, used when
// mapping a lower dynamic range source up to a brighter target display.
type Level17 struct {
	MidBoost             uint8
	HighlightStretch     uint8
	ShadowDrop           uint8
	ContrastBoost        uint8
	SaturationBoost      uint8
	DetailBoost          uint8
	ChromaIndicator      uint8
	IntensityIndicatorPQ uint16
	Revision             uint8
	ChromaLift           uint8
}

func parseLevel17(r *bitio.Reader) (Block, error) {
	b := &Level17{}
	var err error
	if b.MidBoost, err = r.Get8(8); err != nil {
		return nil, err
	}
	if b.HighlightStretch, err = r.Get8(8); err != nil {
		return nil, err
	}
	if b.ShadowDrop, err = r.Get8(8); err != nil {
		return nil, err
	}
	if b.ContrastBoost, err = r.Get8(8); err != nil {
		return nil, err
	}
	if b.SaturationBoost, err = r.Get8(8); err != nil {
		return nil, err
	}
	if b.DetailBoost, err = r.Get8(8); err != nil {
		return nil, err
	}
	if b.ChromaIndicator, err = r.Get8(8); err != nil {
		return nil, err
	}
	if b.IntensityIndicatorPQ, err = r.Get16(12); err != nil {
		return nil, err
	}
	if b.Revision, err = r.Get8(4); err != nil {
		return nil, err
	}
	if b.ChromaLift, err = r.Get8(8); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Level17) Level() uint8            { return 17 }
func (b *Level17) BytesSize() uint64       { return 10 }
func (b *Level17) RequiredBits() uint64    { return 80 }
func (b *Level17) SortKey() (uint8, uint16) { return b.Level(), 0 }

func (b *Level17) Write(w *bitio.Writer) error {
	if err := b.Validate(); err != nil {
		return err
	}
	_ = w.PutN(uint64(b.MidBoost), 8)
	_ = w.PutN(uint64(b.HighlightStretch), 8)
	_ = w.PutN(uint64(b.ShadowDrop), 8)
	_ = w.PutN(uint64(b.ContrastBoost), 8)
	_ = w.PutN(uint64(b.SaturationBoost), 8)
	_ = w.PutN(uint64(b.DetailBoost), 8)
	_ = w.PutN(uint64(b.ChromaIndicator), 8)
	_ = w.PutN(uint64(b.IntensityIndicatorPQ), 12)
	_ = w.PutN(uint64(b.Revision), 4)
	_ = w.PutN(uint64(b.ChromaLift), 8)
	return nil
}

func (b *Level17) Validate() error {
	if b.IntensityIndicatorPQ > 0xFFF {
		return validationError(b.Level(), "12-bit field out of range")
	}
	return nil
}
