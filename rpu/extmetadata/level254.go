package extmetadata

import "github.com/quietvoid/dovi-tool-sub001/bitio"

// Level254 marks an RPU as CM v4.0 and carries the display-management
// pipeline configuration used for profile 8.4's mapping-preserved path.
type Level254 struct {
	DmMode         uint8
	DmVersionIndex uint8
}

// CmV40Default returns the configuration dovi_rpu writers use when
// generating a fresh CM v4.0 RPU.
func CmV40Default() *Level254 {
	return &Level254{DmMode: 0, DmVersionIndex: 2}
}

func parseLevel254(r *bitio.Reader) (Block, error) {
	mode, err := r.Get8(8)
	if err != nil {
		return nil, err
	}
	version, err := r.Get8(8)
	if err != nil {
		return nil, err
	}
	return &Level254{DmMode: mode, DmVersionIndex: version}, nil
}

func (b *Level254) Level() uint8            { return 254 }
func (b *Level254) BytesSize() uint64       { return 2 }
func (b *Level254) RequiredBits() uint64    { return 16 }
func (b *Level254) SortKey() (uint8, uint16) { return b.Level(), 0 }

func (b *Level254) Write(w *bitio.Writer) error {
	_ = w.PutN(uint64(b.DmMode), 8)
	_ = w.PutN(uint64(b.DmVersionIndex), 8)
	return nil
}

func (b *Level254) Validate() error { return nil }
