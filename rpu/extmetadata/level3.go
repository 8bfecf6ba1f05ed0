package extmetadata

import "github.com/quietvoid/dovi-tool-sub001/bitio"

// Level3 carries L1 statistic offsets, applied on top of the L1 block when
// present.
type Level3 struct {
	MinPQOffset uint16
	MaxPQOffset uint16
	AvgPQOffset uint16
}

func parseLevel3(r *bitio.Reader) (Block, error) {
	min, err := r.Get16(12)
	if err != nil {
		return nil, err
	}
	max, err := r.Get16(12)
	if err != nil {
		return nil, err
	}
	avg, err := r.Get16(12)
	if err != nil {
		return nil, err
	}
	return &Level3{MinPQOffset: min, MaxPQOffset: max, AvgPQOffset: avg}, nil
}

func (b *Level3) Level() uint8            { return 3 }
func (b *Level3) BytesSize() uint64       { return 5 }
func (b *Level3) RequiredBits() uint64    { return 36 }
func (b *Level3) SortKey() (uint8, uint16) { return b.Level(), 0 }

func (b *Level3) Write(w *bitio.Writer) error {
	if err := b.Validate(); err != nil {
		return err
	}
	_ = w.PutN(uint64(b.MinPQOffset), 12)
	_ = w.PutN(uint64(b.MaxPQOffset), 12)
	_ = w.PutN(uint64(b.AvgPQOffset), 12)
	return nil
}

func (b *Level3) Validate() error {
	if b.MinPQOffset > 0xFFF || b.MaxPQOffset > 0xFFF || b.AvgPQOffset > 0xFFF {
		return validationError(b.Level(), "12-bit field out of range")
	}
	return nil
}
