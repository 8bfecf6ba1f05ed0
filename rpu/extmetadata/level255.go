package extmetadata

import "github.com/quietvoid/dovi-tool-sub001/bitio"

// Level255 carries opaque tool/build identification, stamped by the
// encoder that produced the RPU and otherwise ignored by decoders.
type Level255 struct {
	DmRunMode    uint8
	DmRunVersion uint8
	DmDebug0     uint8
	DmDebug1     uint8
	DmDebug2     uint8
	DmDebug3     uint8
}

func parseLevel255(r *bitio.Reader) (Block, error) {
	b := &Level255{}
	var err error
	for _, f := range []*uint8{&b.DmRunMode, &b.DmRunVersion, &b.DmDebug0, &b.DmDebug1, &b.DmDebug2, &b.DmDebug3} {
		if *f, err = r.Get8(8); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *Level255) Level() uint8            { return 255 }
func (b *Level255) BytesSize() uint64       { return 6 }
func (b *Level255) RequiredBits() uint64    { return 48 }
func (b *Level255) SortKey() (uint8, uint16) { return b.Level(), 0 }

func (b *Level255) Write(w *bitio.Writer) error {
	for _, v := range []uint8{b.DmRunMode, b.DmRunVersion, b.DmDebug0, b.DmDebug1, b.DmDebug2, b.DmDebug3} {
		_ = w.PutN(uint64(v), 8)
	}
	return nil
}

func (b *Level255) Validate() error { return nil }
