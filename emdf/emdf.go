// Package emdf implements the subset of the Extensible Metadata Delivery
// Format container used to carry a Dolby Vision RPU inside an AV1 ITU-T
// T.35 metadata OBU: a fixed-value header, a variable-bit length integer
// encoding, and payload framing.
package emdf

import (
	"errors"
	"fmt"

	"github.com/quietvoid/dovi-tool-sub001/bitio"
)

// ErrInvalidEmdf is returned when any fixed-value EMDF field does not
// match the constants this package expects.
var ErrInvalidEmdf = errors.New("emdf: invalid container")

// ReadContainer reads and validates the fixed EMDF header, then decodes
// the variable-bit payload size field. It returns the declared payload
// size in bytes; the caller reads that many bytes immediately following.
func ReadContainer(r *bitio.Reader) (payloadSize int, err error) {
	version, err := r.Get8(2)
	if err != nil {
		return 0, err
	}
	if version != 0 {
		return 0, fmt.Errorf("%w: emdf_version %d != 0", ErrInvalidEmdf, version)
	}

	keyID, err := r.Get8(3)
	if err != nil {
		return 0, err
	}
	if keyID != 6 {
		return 0, fmt.Errorf("%w: key_id %d != 6", ErrInvalidEmdf, keyID)
	}

	payloadID, err := r.Get8(5)
	if err != nil {
		return 0, err
	}
	if payloadID != 31 {
		return 0, fmt.Errorf("%w: emdf_payload_id %d != 31", ErrInvalidEmdf, payloadID)
	}

	payloadIDExt, err := readVariableBits(r, 5)
	if err != nil {
		return 0, err
	}
	if payloadIDExt != 225 {
		return 0, fmt.Errorf("%w: emdf_payload_id_ext %d != 225", ErrInvalidEmdf, payloadIDExt)
	}

	for _, name := range []string{"smploffste", "duratione", "groupide", "codecdatae"} {
		flag, err := r.Get()
		if err != nil {
			return 0, err
		}
		if flag {
			return 0, fmt.Errorf("%w: %s != 0", ErrInvalidEmdf, name)
		}
	}

	discardUnknown, err := r.Get()
	if err != nil {
		return 0, err
	}
	if !discardUnknown {
		return 0, fmt.Errorf("%w: discard_unknown_payload != 1", ErrInvalidEmdf)
	}

	size, err := readVariableBits(r, 8)
	if err != nil {
		return 0, err
	}
	return int(size), nil
}

// WriteContainer writes the fixed EMDF header, the payload's variable-bit
// size, the payload bytes themselves, and the fixed EMDF trailer.
func WriteContainer(w *bitio.Writer, payload []byte) error {
	if err := writeHeader(w); err != nil {
		return err
	}
	if err := writeVariableBits(w, uint32(len(payload)), 8); err != nil {
		return err
	}
	w.PutBytes(payload)

	// emdf_payload_id (5 zero bits), emdf_protection (0b01, two zero bits,
	// eight zero bits).
	_ = w.PutN(0, 5)
	_ = w.PutN(0b01, 2)
	_ = w.PutN(0, 2)
	_ = w.PutN(0, 8)

	return nil
}

func writeHeader(w *bitio.Writer) error {
	_ = w.PutN(0, 2) // emdf_version
	_ = w.PutN(6, 3) // key_id
	_ = w.PutN(31, 5) // emdf_payload_id
	if err := writeVariableBits(w, 225, 5); err != nil {
		return err
	}
	_ = w.PutN(0, 4) // smploffste, duratione, groupide, codecdatae
	w.Put(true)       // discard_unknown_payload
	return nil
}

// readVariableBits decodes a variable-length integer built from
// n-bit chunks: read n bits into value; if the following read_more bit
// is zero, stop; otherwise left-shift value by n, add 1<<n, and loop.
func readVariableBits(r *bitio.Reader, n int) (uint32, error) {
	var value uint32
	for {
		tmp, err := r.Get32(n)
		if err != nil {
			return 0, err
		}
		value += tmp

		more, err := r.Get()
		if err != nil {
			return 0, err
		}
		if !more {
			break
		}

		value <<= uint(n)
		value += 1 << uint(n)
	}
	return value, nil
}

// writeVariableBits is the inverse of readVariableBits.
func writeVariableBits(w *bitio.Writer, value uint32, n int) error {
	max := uint32(1) << uint(n)

	if value >= max {
		remaining := value

		for {
			tmp := remaining >> uint(n)
			clipped := tmp << uint(n)
			remaining -= clipped

			byteVal := (clipped - max) >> uint(n)
			if err := w.PutN(uint64(byteVal), n); err != nil {
				return err
			}
			w.Put(true) // read_more

			if remaining <= max {
				break
			}
		}

		if err := w.PutN(uint64(remaining), n); err != nil {
			return err
		}
	} else {
		if err := w.PutN(uint64(value), n); err != nil {
			return err
		}
	}

	w.Put(false)
	return nil
}
