package extmetadata

import (
	"github.com/quietvoid/dovi-tool-sub001/bitio"
	"github.com/quietvoid/dovi-tool-sub001/pq"
)

// Level2 defaults, matching the reference encoder's "unity" trim pass.
const (
	level2DefaultTargetMaxPQ = 2081
	level2DefaultField       = 2048
)

// Level2 is a creative-intent trim pass for one target display peak
// brightness. ms_weight is a 13-bit two's-complement signed field (see
// DESIGN.md's Open Question resolution).
type Level2 struct {
	TargetMaxPQ        uint16
	TrimSlope          uint16
	TrimOffset         uint16
	TrimPower          uint16
	TrimChromaWeight   uint16
	TrimSaturationGain uint16
	MsWeight           int16
}

// DefaultLevel2 returns the unity trim pass.
func DefaultLevel2() *Level2 {
	return &Level2{
		TargetMaxPQ:        level2DefaultTargetMaxPQ,
		TrimSlope:          level2DefaultField,
		TrimOffset:         level2DefaultField,
		TrimPower:          level2DefaultField,
		TrimChromaWeight:   level2DefaultField,
		TrimSaturationGain: level2DefaultField,
		MsWeight:           level2DefaultField,
	}
}

// FromNits returns a unity trim pass targeting a display of the given
// peak brightness, with target_max_pq derived from nits via the ST 2084
// PQ transfer function.
func FromNits(nits uint16) *Level2 {
	b := DefaultLevel2()
	b.TargetMaxPQ = uint16(pq.NitsToPQ(nits)*4095.0 + 0.5)
	return b
}

func parseLevel2(r *bitio.Reader) (Block, error) {
	b := &Level2{}
	var err error
	if b.TargetMaxPQ, err = r.Get16(12); err != nil {
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
	raw, err := r.Get16(13)
	if err != nil {
		return nil, err
	}
	b.MsWeight = int16(signExtend(uint64(raw), 13))
	return b, nil
}

func (b *Level2) Level() uint8         { return 2 }
func (b *Level2) BytesSize() uint64    { return 11 }
func (b *Level2) RequiredBits() uint64 { return 85 }

func (b *Level2) SortKey() (uint8, uint16) { return b.Level(), b.TargetMaxPQ }

func (b *Level2) Write(w *bitio.Writer) error {
	if err := b.Validate(); err != nil {
		return err
	}
	_ = w.PutN(uint64(b.TargetMaxPQ), 12)
	_ = w.PutN(uint64(b.TrimSlope), 12)
	_ = w.PutN(uint64(b.TrimOffset), 12)
	_ = w.PutN(uint64(b.TrimPower), 12)
	_ = w.PutN(uint64(b.TrimChromaWeight), 12)
	_ = w.PutN(uint64(b.TrimSaturationGain), 12)
	_ = w.PutN(truncate(int64(b.MsWeight), 13), 13)
	return nil
}

func (b *Level2) Validate() error {
	if b.TargetMaxPQ > 0xFFF {
		return validationError(b.Level(), "target_max_pq out of range")
	}
	if b.MsWeight < -4096 || b.MsWeight > 4095 {
		return validationError(b.Level(), "ms_weight out of 13-bit signed range")
	}
	return nil
}
