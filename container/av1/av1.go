// Package av1 implements the AV1 ITU-T T.35 metadata OBU framing a Dolby
// Vision RPU travels in: an optional country code, the fixed provider/
// provider-oriented-code magic, an EMDF container, and the inner RPU
// payload.
package av1

import (
	"bytes"
	"fmt"

	"github.com/quietvoid/dovi-tool-sub001/bitio"
	"github.com/quietvoid/dovi-tool-sub001/emdf"
	"github.com/quietvoid/dovi-tool-sub001/rpu"
)

// ErrInvalidMagic is returned when the fixed provider/oriented-code magic
// does not match.
var ErrInvalidMagic = rpu.ErrInvalidMagic

// countryCode is the optional ITU-T T.35 country code for the United
// States, present on some producer outputs ahead of the provider fields.
const countryCode = 0xB5

const terminalProviderCode = 0x3B
const terminalProviderOrientedCode = 0x800

// magic is the fixed 9-byte sequence identifying a Dolby Vision RPU T.35
// metadata OBU payload, immediately after the optional country code.
var magic = []byte{0x00, 0x3B, 0x00, 0x00, 0x08, 0x00, 0x37, 0xCD, 0x08}

// Unwrap strips the optional country code and fixed magic, validates the
// provider fields, unwraps the EMDF container, and returns the inner RPU
// payload ready for rpu.Parse.
func Unwrap(data []byte) ([]byte, error) {
	if len(data) > 0 && data[0] == countryCode {
		data = data[1:]
	}
	if !bytes.HasPrefix(data, magic) {
		return nil, fmt.Errorf("%w: av1 t.35 magic mismatch", ErrInvalidMagic)
	}

	r := bitio.NewReader(data[len(magic):])

	providerCode, err := r.Get16(16)
	if err != nil {
		return nil, err
	}
	if providerCode != terminalProviderCode {
		return nil, fmt.Errorf("%w: itu_t_t35_terminal_provider_code 0x%X", ErrInvalidMagic, providerCode)
	}

	orientedCode, err := r.Get32(32)
	if err != nil {
		return nil, err
	}
	if orientedCode != terminalProviderOrientedCode {
		return nil, fmt.Errorf("%w: itu_t_t35_terminal_provider_oriented_code 0x%X", ErrInvalidMagic, orientedCode)
	}

	payloadSize, err := emdf.ReadContainer(r)
	if err != nil {
		return nil, fmt.Errorf("av1: %w", err)
	}
	return r.GetBytes(payloadSize)
}

// Parse unwraps and parses an AV1-framed RPU payload.
func Parse(data []byte) (*rpu.RPU, error) {
	inner, err := Unwrap(data)
	if err != nil {
		return nil, err
	}
	return rpu.Parse(inner)
}

// Wrap serializes p and frames it as an AV1 T.35 metadata OBU payload:
// magic, provider fields, EMDF container wrapping the RPU bytes, and a
// final 1-padding to the next byte boundary.
func Wrap(p *rpu.RPU) ([]byte, error) {
	payload, err := p.Write()
	if err != nil {
		return nil, err
	}

	w := bitio.NewWriter()
	w.PutBytes(magic)
	_ = w.PutN(terminalProviderCode, 16)
	_ = w.PutN(terminalProviderOrientedCode, 32)
	if err := emdf.WriteContainer(w, payload); err != nil {
		return nil, fmt.Errorf("av1: %w", err)
	}

	for !w.Aligned() {
		w.Put(true)
	}

	return w.Bytes(), nil
}
