package extmetadata

import "github.com/quietvoid/dovi-tool-sub001/bitio"

// Level8 is a per-target-display trim pass, the L2 successor that allows
// more than one display target.
type Level8 struct {
	TargetDisplayIndex uint8
	TrimSlope          uint16
	TrimOffset         uint16
	TrimPower          uint16
	TrimChromaWeight   uint16
	TrimSaturationGain uint16
	MsWeight           uint16
}

// DefaultLevel8 returns the unity trim pass targeting display index 0.
func DefaultLevel8() *Level8 {
	return &Level8{
		TargetDisplayIndex: 0,
		TrimSlope:          2048,
		TrimOffset:         2048,
		TrimPower:          2048,
		TrimChromaWeight:   2048,
		TrimSaturationGain: 2048,
		MsWeight:           2048,
	}
}

func parseLevel8(r *bitio.Reader, lengthBytes uint64) (Block, error) {
	b := &Level8{}
	var err error
	if b.TargetDisplayIndex, err = r.Get8(8); err != nil {
		return nil, err
	}
	if b.TrimSlope, err = r.Get16(12); err != nil {
		return nil, err
	}
	if b.TrimOffset, err = r.Get16(12); err != nil {
		return nil, err
	}
	if b.TrimPower, err = r.Get16(12); err != nil {
		return nil, err
	}
	if b.TrimChromaWeight, err = r.Get16(12); err != nil {
		return nil, err
	}
	if b.TrimSaturationGain, err = r.Get16(12); err != nil {
		return nil, err
	}
	if b.MsWeight, err = r.Get16(12); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Level8) Level() uint8            { return 8 }
func (b *Level8) BytesSize() uint64       { return 10 }
func (b *Level8) RequiredBits() uint64    { return 80 }
func (b *Level8) SortKey() (uint8, uint16) { return b.Level(), uint16(b.TargetDisplayIndex) }

func (b *Level8) Write(w *bitio.Writer) error {
	if err := b.Validate(); err != nil {
		return err
	}
	_ = w.PutN(uint64(b.TargetDisplayIndex), 8)
	_ = w.PutN(uint64(b.TrimSlope), 12)
	_ = w.PutN(uint64(b.TrimOffset), 12)
	_ = w.PutN(uint64(b.TrimPower), 12)
	_ = w.PutN(uint64(b.TrimChromaWeight), 12)
	_ = w.PutN(uint64(b.TrimSaturationGain), 12)
	_ = w.PutN(uint64(b.MsWeight), 12)
	return nil
}

func (b *Level8) Validate() error {
	if b.TrimSlope > 0xFFF || b.TrimOffset > 0xFFF || b.TrimPower > 0xFFF ||
		b.TrimChromaWeight > 0xFFF || b.TrimSaturationGain > 0xFFF || b.MsWeight > 0xFFF {
		return validationError(b.Level(), "12-bit field out of range")
	}
	return nil
}
