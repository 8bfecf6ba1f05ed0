package extmetadata

import "github.com/quietvoid/dovi-tool-sub001/bitio"

// Level10 declares a target display's peak/min brightness and predefined
// color primary set, extending Level9 to more than one target display.
type Level10 struct {
	TargetDisplayIndex uint8
	TargetMaxPQ        uint16
	TargetMinPQ        uint16
	TargetPrimaryIndex uint8
}

func parseLevel10(r *bitio.Reader) (Block, error) {
	b := &Level10{}
	var err error
	if b.TargetDisplayIndex, err = r.Get8(8); err != nil {
		return nil, err
	}
	if b.TargetMaxPQ, err = r.Get16(12); err != nil {
		return nil, err
	}
	if b.TargetMinPQ, err = r.Get16(12); err != nil {
		return nil, err
	}
	if b.TargetPrimaryIndex, err = r.Get8(8); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Level10) Level() uint8            { return 10 }
func (b *Level10) BytesSize() uint64       { return 5 }
func (b *Level10) RequiredBits() uint64    { return 40 }
func (b *Level10) SortKey() (uint8, uint16) { return b.Level(), 0 }

func (b *Level10) Write(w *bitio.Writer) error {
	if err := b.Validate(); err != nil {
		return err
	}
	_ = w.PutN(uint64(b.TargetDisplayIndex), 8)
	_ = w.PutN(uint64(b.TargetMaxPQ), 12)
	_ = w.PutN(uint64(b.TargetMinPQ), 12)
	_ = w.PutN(uint64(b.TargetPrimaryIndex), 8)
	return nil
}

func (b *Level10) Validate() error {
	if b.TargetMaxPQ > 0xFFF || b.TargetMinPQ > 0xFFF {
		return validationError(b.Level(), "12-bit field out of range")
	}
	return nil
}
