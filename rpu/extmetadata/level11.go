package extmetadata

import "github.com/quietvoid/dovi-tool-sub001/bitio"

// Level11 content-type classification values.
const (
	Level11ContentTypeDocumentary = 1
	Level11ContentTypeMovie       = 2
	Level11ContentTypeSports      = 4
)

// Level11 carries intended-viewing-environment metadata: content type,
// whitepoint, whether the mastering display was a reference monitor, and
// a set of desired-enhancement hints for the target display.
type Level11 struct {
	ContentType         uint8
	ContentSubType      uint8
	Whitepoint          uint8
	ReferenceModeFlag   bool
	Reserved3Bits       uint8
	Sharpness           uint8
	NoiseReduction      uint8
	MpegNoiseReduction  uint8
	FrameRateConversion uint8
	Brightness          uint8
	Color               uint8
	Reserved2Bits1      uint8
	Reserved2Bits2      uint8
}

// DefaultReferenceCinema returns the reference-cinema mastering environment
// commonly embedded by theatrical masters: D65 whitepoint, reference mode,
// enhancements disabled.
func DefaultReferenceCinema() *Level11 {
	return &Level11{
		ContentType:         Level11ContentTypeDocumentary,
		Whitepoint:          4,
		ReferenceModeFlag:   true,
		Sharpness:           1,
		NoiseReduction:      1,
		MpegNoiseReduction:  1,
		FrameRateConversion: 1,
	}
}

func parseLevel11(r *bitio.Reader) (Block, error) {
	b := &Level11{}
	var err error
	if b.ContentType, err = r.Get8(4); err != nil {
		return nil, err
	}
	if b.ContentSubType, err = r.Get8(4); err != nil {
		return nil, err
	}
	if b.Whitepoint, err = r.Get8(4); err != nil {
		return nil, err
	}
	if b.ReferenceModeFlag, err = r.Get(); err != nil {
		return nil, err
	}
	if b.Reserved3Bits, err = r.Get8(3); err != nil {
		return nil, err
	}
	if b.Sharpness, err = r.Get8(2); err != nil {
		return nil, err
	}
	if b.NoiseReduction, err = r.Get8(2); err != nil {
		return nil, err
	}
	if b.MpegNoiseReduction, err = r.Get8(2); err != nil {
		return nil, err
	}
	if b.FrameRateConversion, err = r.Get8(2); err != nil {
		return nil, err
	}
	if b.Brightness, err = r.Get8(2); err != nil {
		return nil, err
	}
	if b.Color, err = r.Get8(2); err != nil {
		return nil, err
	}
	if b.Reserved2Bits1, err = r.Get8(2); err != nil {
		return nil, err
	}
	if b.Reserved2Bits2, err = r.Get8(2); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Level11) Level() uint8            { return 11 }
func (b *Level11) BytesSize() uint64       { return 4 }
func (b *Level11) RequiredBits() uint64    { return 32 }
func (b *Level11) SortKey() (uint8, uint16) { return b.Level(), 0 }

func (b *Level11) Write(w *bitio.Writer) error {
	_ = w.PutN(uint64(b.ContentType), 4)
	_ = w.PutN(uint64(b.ContentSubType), 4)
	_ = w.PutN(uint64(b.Whitepoint), 4)
	w.Put(b.ReferenceModeFlag)
	_ = w.PutN(uint64(b.Reserved3Bits), 3)
	_ = w.PutN(uint64(b.Sharpness), 2)
	_ = w.PutN(uint64(b.NoiseReduction), 2)
	_ = w.PutN(uint64(b.MpegNoiseReduction), 2)
	_ = w.PutN(uint64(b.FrameRateConversion), 2)
	_ = w.PutN(uint64(b.Brightness), 2)
	_ = w.PutN(uint64(b.Color), 2)
	_ = w.PutN(uint64(b.Reserved2Bits1), 2)
	_ = w.PutN(uint64(b.Reserved2Bits2), 2)
	return nil
}

func (b *Level11) Validate() error { return nil }
