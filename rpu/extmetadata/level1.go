package extmetadata

import "github.com/quietvoid/dovi-tool-sub001/bitio"

// Level1 statistics bounds, per the original reference encoder's clamp
// ranges in from_stats.
const (
	L1MinPQMaxValue = 12
	L1MaxPQMinValue = 2081
	L1MaxPQMaxValue = 4095
	L1AvgPQMinValue = 819
)

// Level1 carries per-frame statistical analysis: minimum, maximum and
// average PQ brightness.
type Level1 struct {
	MinPQ uint16
	MaxPQ uint16
	AvgPQ uint16
}

func parseLevel1(r *bitio.Reader) (Block, error) {
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
	return &Level1{MinPQ: min, MaxPQ: max, AvgPQ: avg}, nil
}

// FromStats clamps max/avg into the ranges the reference encoder
// enforces and returns a populated Level1 block.
func FromStats(minPQ, maxPQ, avgPQ uint16) *Level1 {
	if maxPQ < L1MaxPQMinValue {
		maxPQ = L1MaxPQMinValue
	} else if maxPQ > L1MaxPQMaxValue {
		maxPQ = L1MaxPQMaxValue
	}
	if avgPQ < L1AvgPQMinValue {
		avgPQ = L1AvgPQMinValue
	}
	if avgPQ > maxPQ-1 {
		avgPQ = maxPQ - 1
	}
	return &Level1{MinPQ: minPQ, MaxPQ: maxPQ, AvgPQ: avgPQ}
}

func (b *Level1) Level() uint8            { return 1 }
func (b *Level1) BytesSize() uint64       { return 5 }
func (b *Level1) RequiredBits() uint64    { return 36 }
func (b *Level1) SortKey() (uint8, uint16) { return b.Level(), 0 }

func (b *Level1) Write(w *bitio.Writer) error {
	if err := b.Validate(); err != nil {
		return err
	}
	_ = w.PutN(uint64(b.MinPQ), 12)
	_ = w.PutN(uint64(b.MaxPQ), 12)
	_ = w.PutN(uint64(b.AvgPQ), 12)
	return nil
}

func (b *Level1) Validate() error {
	if b.MinPQ > 0xFFF || b.MaxPQ > 0xFFF || b.AvgPQ > 0xFFF {
		return validationError(b.Level(), "12-bit field out of range")
	}
	return nil
}
