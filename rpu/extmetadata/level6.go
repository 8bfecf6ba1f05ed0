package extmetadata

import "github.com/quietvoid/dovi-tool-sub001/bitio"

// Level6 carries the legacy MaxCLL/MaxFALL and mastering display luminance
// metadata, kept for backward compatibility with non-L1 decoders.
type Level6 struct {
	MaxDisplayMasteringLuminance uint16
	MinDisplayMasteringLuminance uint16
	MaxContentLightLevel         uint16
	MaxFrameAverageLightLevel    uint16
}

// SourceMeta is the subset of mastering-display metadata a Level6 block can
// supply when no richer L254/primaries data is available.
type SourceMeta struct {
	MaxDisplayMasteringLuminance uint16
	MinDisplayMasteringLuminance uint16
	MaxContentLightLevel         uint16
	MaxFrameAverageLightLevel    uint16
}

func parseLevel6(r *bitio.Reader) (Block, error) {
	maxDML, err := r.Get16(16)
	if err != nil {
		return nil, err
	}
	minDML, err := r.Get16(16)
	if err != nil {
		return nil, err
	}
	maxCLL, err := r.Get16(16)
	if err != nil {
		return nil, err
	}
	maxFALL, err := r.Get16(16)
	if err != nil {
		return nil, err
	}
	return &Level6{
		MaxDisplayMasteringLuminance: maxDML,
		MinDisplayMasteringLuminance: minDML,
		MaxContentLightLevel:         maxCLL,
		MaxFrameAverageLightLevel:    maxFALL,
	}, nil
}

// SourceMetaFromL6 derives source mastering-display metadata directly from
// this Level6 block's fields.
func (b *Level6) SourceMetaFromL6() *SourceMeta {
	return &SourceMeta{
		MaxDisplayMasteringLuminance: b.MaxDisplayMasteringLuminance,
		MinDisplayMasteringLuminance: b.MinDisplayMasteringLuminance,
		MaxContentLightLevel:         b.MaxContentLightLevel,
		MaxFrameAverageLightLevel:    b.MaxFrameAverageLightLevel,
	}
}

func (b *Level6) Level() uint8            { return 6 }
func (b *Level6) BytesSize() uint64       { return 8 }
func (b *Level6) RequiredBits() uint64    { return 64 }
func (b *Level6) SortKey() (uint8, uint16) { return b.Level(), 0 }

func (b *Level6) Write(w *bitio.Writer) error {
	_ = w.PutN(uint64(b.MaxDisplayMasteringLuminance), 16)
	_ = w.PutN(uint64(b.MinDisplayMasteringLuminance), 16)
	_ = w.PutN(uint64(b.MaxContentLightLevel), 16)
	_ = w.PutN(uint64(b.MaxFrameAverageLightLevel), 16)
	return nil
}

// maxPQLuminance is the ceiling the original implementation enforces on
// every Level6 luminance field, in nits.
const maxPQLuminance = 10000

func (b *Level6) Validate() error {
	if b.MaxDisplayMasteringLuminance > maxPQLuminance ||
		b.MinDisplayMasteringLuminance > maxPQLuminance ||
		b.MaxContentLightLevel > maxPQLuminance ||
		b.MaxFrameAverageLightLevel > maxPQLuminance {
		return validationError(b.Level(), "luminance field exceeds 10000 nits")
	}
	return nil
}
