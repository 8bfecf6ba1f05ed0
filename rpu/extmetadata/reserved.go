package extmetadata

import "github.com/quietvoid/dovi-tool-sub001/bitio"

// Reserved preserves an unrecognized block level verbatim: the raw payload
// bytes are captured on parse and re-emitted unchanged on write, so a
// decoder that doesn't understand a newer level still round-trips it.
type Reserved struct {
	level       uint8
	lengthBytes uint64
	payload     []byte
}

func parseReserved(r *bitio.Reader, level uint8, lengthBytes uint64) (Block, error) {
	payload, err := r.GetBytes(int(lengthBytes))
	if err != nil {
		return nil, err
	}
	return &Reserved{level: level, lengthBytes: lengthBytes, payload: payload}, nil
}

func (b *Reserved) Level() uint8            { return b.level }
func (b *Reserved) BytesSize() uint64       { return b.lengthBytes }
func (b *Reserved) RequiredBits() uint64    { return b.lengthBytes * 8 }
func (b *Reserved) SortKey() (uint8, uint16) { return b.Level(), 0 }

func (b *Reserved) Write(w *bitio.Writer) error {
	w.PutBytes(b.payload)
	return nil
}

func (b *Reserved) Validate() error { return nil }
