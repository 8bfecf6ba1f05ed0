package extmetadata

import "github.com/quietvoid/dovi-tool-sub001/bitio"

// Level4 carries the L2/L8 anchor point used by motion-compensated trim.
type Level4 struct {
	AnchorPQ    uint16
	AnchorPower uint16
}

func parseLevel4(r *bitio.Reader) (Block, error) {
	pq, err := r.Get16(12)
	if err != nil {
		return nil, err
	}
	power, err := r.Get16(12)
	if err != nil {
		return nil, err
	}
	return &Level4{AnchorPQ: pq, AnchorPower: power}, nil
}

func (b *Level4) Level() uint8            { return 4 }
func (b *Level4) BytesSize() uint64       { return 3 }
func (b *Level4) RequiredBits() uint64    { return 24 }
func (b *Level4) SortKey() (uint8, uint16) { return b.Level(), 0 }

func (b *Level4) Write(w *bitio.Writer) error {
	if err := b.Validate(); err != nil {
		return err
	}
	_ = w.PutN(uint64(b.AnchorPQ), 12)
	_ = w.PutN(uint64(b.AnchorPower), 12)
	return nil
}

func (b *Level4) Validate() error {
	if b.AnchorPQ > 0xFFF || b.AnchorPower > 0xFFF {
		return validationError(b.Level(), "12-bit field out of range")
	}
	return nil
}
