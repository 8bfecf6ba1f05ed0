// Package hevc implements the HEVC unspec-62 NAL unit framing a Dolby
// Vision RPU travels in: an optional start code, the `7C 01` NAL header,
// start-code emulation prevention around the inner RPU payload, and the
// CRC/terminator trailer the rpu package itself produces.
package hevc

import (
	"bytes"
	"fmt"

	"github.com/quietvoid/dovi-tool-sub001/emulation"
	"github.com/quietvoid/dovi-tool-sub001/rpu"
)

// ErrInvalidMagic is returned when no recognized leading byte sequence is
// found before the inner RPU prefix byte.
var ErrInvalidMagic = rpu.ErrInvalidMagic

// nalHeader is the two-byte unspec-62 NAL header: forbidden_zero_bit=0,
// nal_unit_type=62 (0x3E) in the high 6 bits of the first byte shifted
// left one, layer_id/temporal_id in the second.
var nalHeader = []byte{0x7C, 0x01}

var startCodePrefixes = [][]byte{
	{0x00, 0x00, 0x00, 0x01},
	{0x00, 0x00, 0x01},
	{0x00, 0x01},
	{0x7C, 0x01},
	{0x01, 0x19},
}

// Unwrap strips any tolerated leading byte sequence down to the first
// 0x19 RPU prefix byte, removes emulation-prevention bytes, and returns
// the inner RPU payload ready for rpu.Parse.
func Unwrap(data []byte) ([]byte, error) {
	stripped, err := stripPrefix(data)
	if err != nil {
		return nil, err
	}
	return emulation.Strip(stripped), nil
}

// Parse unwraps and parses an HEVC-framed RPU payload.
func Parse(data []byte) (*rpu.RPU, error) {
	inner, err := Unwrap(data)
	if err != nil {
		return nil, err
	}
	return rpu.Parse(inner)
}

// Wrap serializes p and frames it as an HEVC unspec-62 NAL: `7C 01`
// header, emulation-prevention applied over the RPU bytes (which already
// include the CRC trailer and 0x80 terminator).
func Wrap(p *rpu.RPU) ([]byte, error) {
	payload, err := p.Write()
	if err != nil {
		return nil, err
	}
	escaped := emulation.Insert(payload)

	out := make([]byte, 0, len(nalHeader)+len(escaped))
	out = append(out, nalHeader...)
	out = append(out, escaped...)

	if out[len(out)-1] != 0x80 {
		return nil, fmt.Errorf("hevc: wrapped payload does not end in 0x80 terminator")
	}
	return out, nil
}

// stripPrefix removes the byte sequences this format tolerates, trying
// them from most to least specific, until data starts at the inner 0x19
// prefix (so a start code followed by the `7C 01` header is removed as a
// whole, and a `01 19` prefix keeps its 0x19 byte).
func stripPrefix(data []byte) ([]byte, error) {
	for len(data) > 0 && data[0] != 0x19 {
		stripped := false
		for _, prefix := range startCodePrefixes {
			if bytes.HasPrefix(data, prefix) {
				n := len(prefix)
				if prefix[n-1] == 0x19 {
					n-- // keep the RPU prefix byte itself
				}
				data = data[n:]
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}
	if len(data) > 0 && data[0] == 0x19 {
		return data, nil
	}
	return nil, fmt.Errorf("%w: no recognized hevc rpu prefix", ErrInvalidMagic)
}
