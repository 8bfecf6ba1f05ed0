package extmetadata

import "github.com/quietvoid/dovi-tool-sub001/bitio"

// Level15 carries consumer "look" metadata for Precision Rendering/Detail:
// confidence and delta adjustments with and without Precision Rendering
// applied, plus a revision tag.
type Level15 struct {
	Confidence                 uint8
	PrecisionRenderingStrength uint8
	DLocalContrast             uint8
	DBrightness                uint8
	DSaturationPlusOne         uint8
	DContrastPlusOne           uint8
	ConfidenceNoPR             uint8
	DBrightnessNoPR            uint8
	DSaturationPlusOneNoPR     uint8
	DContrastPlusOneNoPR       uint8
	Revision                   uint8
	Reserved                   uint8
}

func parseLevel15(r *bitio.Reader) (Block, error) {
	b := &Level15{}
	var err error
	if b.Confidence, err = r.Get8(8); err != nil {
		return nil, err
	}
	if b.PrecisionRenderingStrength, err = r.Get8(8); err != nil {
		return nil, err
	}
	if b.DLocalContrast, err = r.Get8(8); err != nil {
		return nil, err
	}
	if b.DBrightness, err = r.Get8(8); err != nil {
		return nil, err
	}
	if b.DSaturationPlusOne, err = r.Get8(8); err != nil {
		return nil, err
	}
	if b.DContrastPlusOne, err = r.Get8(8); err != nil {
		return nil, err
	}
	if b.ConfidenceNoPR, err = r.Get8(8); err != nil {
		return nil, err
	}
	if b.DBrightnessNoPR, err = r.Get8(8); err != nil {
		return nil, err
	}
	if b.DSaturationPlusOneNoPR, err = r.Get8(8); err != nil {
		return nil, err
	}
	if b.DContrastPlusOneNoPR, err = r.Get8(8); err != nil {
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

func (b *Level15) Level() uint8            { return 15 }
func (b *Level15) BytesSize() uint64       { return 11 }
func (b *Level15) RequiredBits() uint64    { return 88 }
func (b *Level15) SortKey() (uint8, uint16) { return b.Level(), 0 }

func (b *Level15) Write(w *bitio.Writer) error {
	if err := b.Validate(); err != nil {
		return err
	}
	_ = w.PutN(uint64(b.Confidence), 8)
	_ = w.PutN(uint64(b.PrecisionRenderingStrength), 8)
	_ = w.PutN(uint64(b.DLocalContrast), 8)
	_ = w.PutN(uint64(b.DBrightness), 8)
	_ = w.PutN(uint64(b.DSaturationPlusOne), 8)
	_ = w.PutN(uint64(b.DContrastPlusOne), 8)
	_ = w.PutN(uint64(b.ConfidenceNoPR), 8)
	_ = w.PutN(uint64(b.DBrightnessNoPR), 8)
	_ = w.PutN(uint64(b.DSaturationPlusOneNoPR), 8)
	_ = w.PutN(uint64(b.DContrastPlusOneNoPR), 8)
	_ = w.PutN(uint64(b.Revision), 4)
	_ = w.PutN(uint64(b.Reserved), 4)
	return nil
}

func (b *Level15) Validate() error {
	if b.Reserved != 0 {
		return validationError(b.Level(), "reserved field must be 0")
	}
	return nil
}
