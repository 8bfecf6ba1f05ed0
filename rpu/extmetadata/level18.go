package extmetadata

import "github.com/quietvoid/dovi-tool-sub001/bitio"

// Level18 carries the creative environment's preserved/adapted luminance
// points: the PQ code values the mastering display's surround, shadow
// detail floor, and adapted/preserved highlight ceiling sat at.
type Level18 struct {
	SurroundLuminancePQ     uint16
	MinPreservedLuminancePQ uint16
	AdaptationLuminancePQ   uint16
	MaxPreservedLuminancePQ uint16
	Revision                uint8
	Reserved                uint8
}

func parseLevel18(r *bitio.Reader) (Block, error) {
	b := &Level18{}
	var err error
	if b.SurroundLuminancePQ, err = r.Get16(12); err != nil {
		return nil, err
	}
	if b.MinPreservedLuminancePQ, err = r.Get16(12); err != nil {
		return nil, err
	}
	if b.AdaptationLuminancePQ, err = r.Get16(12); err != nil {
		return nil, err
	}
	if b.MaxPreservedLuminancePQ, err = r.Get16(12); err != nil {
		return nil, err
	}
	if b.Revision, err = r.Get8(4); err != nil {
		return nil, err
	}
	if b.Reserved, err = r.Get8(4); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Level18) Level() uint8            { return 18 }
func (b *Level18) BytesSize() uint64       { return 7 }
func (b *Level18) RequiredBits() uint64    { return 56 }
func (b *Level18) SortKey() (uint8, uint16) { return b.Level(), 0 }

func (b *Level18) Write(w *bitio.Writer) error {
	if err := b.Validate(); err != nil {
		return err
	}
	_ = w.PutN(uint64(b.SurroundLuminancePQ), 12)
	_ = w.PutN(uint64(b.MinPreservedLuminancePQ), 12)
	_ = w.PutN(uint64(b.AdaptationLuminancePQ), 12)
	_ = w.PutN(uint64(b.MaxPreservedLuminancePQ), 12)
	_ = w.PutN(uint64(b.Revision), 4)
	_ = w.PutN(uint64(b.Reserved), 4)
	return nil
}

func (b *Level18) Validate() error {
	if b.SurroundLuminancePQ > 0xFFF || b.MinPreservedLuminancePQ > 0xFFF ||
		b.AdaptationLuminancePQ > 0xFFF || b.MaxPreservedLuminancePQ > 0xFFF {
		return validationError(b.Level(), "12-bit field out of range")
	}
	if b.Reserved != 0 {
		return validationError(b.Level(), "reserved field must be 0")
	}
	return nil
}
