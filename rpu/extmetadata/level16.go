package extmetadata

import "github.com/quietvoid/dovi-tool-sub001/bitio"

// Level16Params is one local-tone-mapping parameter set Level16 repeats,
// one per zone it covers.
type Level16Params struct {
	ContrastTarget             uint8
	PrecisionRenderingStrength uint8
	DLocalContrast             uint8
	MaxDBrightness             uint8
	MaxDSaturationPlusOne      uint8
}

func (p *Level16Params) read(r *bitio.Reader) error {
	var err error
	if p.ContrastTarget, err = r.Get8(8); err != nil {
		return err
	}
	if p.PrecisionRenderingStrength, err = r.Get8(8); err != nil {
		return err
	}
	if p.DLocalContrast, err = r.Get8(8); err != nil {
		return err
	}
	if p.MaxDBrightness, err = r.Get8(8); err != nil {
		return err
	}
	if p.MaxDSaturationPlusOne, err = r.Get8(8); err != nil {
		return err
	}
	return nil
}

func (p *Level16Params) write(w *bitio.Writer) {
	_ = w.PutN(uint64(p.ContrastTarget), 8)
	_ = w.PutN(uint64(p.PrecisionRenderingStrength), 8)
	_ = w.PutN(uint64(p.DLocalContrast), 8)
	_ = w.PutN(uint64(p.MaxDBrightness), 8)
	_ = w.PutN(uint64(p.MaxDSaturationPlusOne), 8)
}

// Level16 groups local tone-mapping parameter sets for several zones into
// a single variable-length block, tagged with a revision number.
type Level16 struct {
	Revision uint8
	Params   []Level16Params
}

func parseLevel16(r *bitio.Reader, _ uint64) (Block, error) {
	b := &Level16{}
	var err error
	if b.Revision, err = r.Get8(4); err != nil {
		return nil, err
	}
	var count uint8
	if count, err = r.Get8(4); err != nil {
		return nil, err
	}

	b.Params = make([]Level16Params, 0, count)
	for i := uint8(0); i < count; i++ {
		var p Level16Params
		if err = p.read(r); err != nil {
			return nil, err
		}
		b.Params = append(b.Params, p)
	}
	return b, nil
}

func (b *Level16) Level() uint8 { return 16 }

func (b *Level16) BytesSize() uint64 {
	return 1 + uint64(len(b.Params))*5
}

func (b *Level16) RequiredBits() uint64 {
	return b.BytesSize() * 8
}

func (b *Level16) SortKey() (uint8, uint16) { return b.Level(), 0 }

func (b *Level16) Write(w *bitio.Writer) error {
	if err := b.Validate(); err != nil {
		return err
	}
	_ = w.PutN(uint64(b.Revision), 4)
	_ = w.PutN(uint64(len(b.Params)), 4)
	for i := range b.Params {
		b.Params[i].write(w)
	}
	return nil
}

func (b *Level16) Validate() error {
	if len(b.Params) > 0xF {
		return validationError(b.Level(), "count exceeds 4-bit range")
	}
	return nil
}
