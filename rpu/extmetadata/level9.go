package extmetadata

import "github.com/quietvoid/dovi-tool-sub001/bitio"

// Level9 names the source color primaries by the predefined index (see
// PredefinedColorspacePrimaries), or 255 for custom primaries carried in a
// Level19 block (not yet standardized, unused by this codec).
type Level9 struct {
	SourcePrimaryIndex uint8
}

func parseLevel9(r *bitio.Reader) (Block, error) {
	idx, err := r.Get8(8)
	if err != nil {
		return nil, err
	}
	return &Level9{SourcePrimaryIndex: idx}, nil
}

func (b *Level9) Level() uint8            { return 9 }
func (b *Level9) BytesSize() uint64       { return 1 }
func (b *Level9) RequiredBits() uint64    { return 8 }
func (b *Level9) SortKey() (uint8, uint16) { return b.Level(), 0 }

func (b *Level9) Write(w *bitio.Writer) error {
	_ = w.PutN(uint64(b.SourcePrimaryIndex), 8)
	return nil
}

func (b *Level9) Validate() error { return nil }
