// Package rpu implements the Dolby Vision Reference Processing Unit
// metadata model: parsing an RPU payload into a structured tree, mutating
// it under a defined set of operations, and re-serializing it bit-exact
// when unmodified.
package rpu

import (
	"encoding/binary"
	"fmt"

	"github.com/quietvoid/dovi-tool-sub001/bitio"
	"github.com/quietvoid/dovi-tool-sub001/crc32mpeg2"
)

// trailerLen is the 4-byte CRC field plus the 1-byte 0x80 terminator.
const trailerLen = 5

// RPU is the full parsed syntax tree of one Dolby Vision RPU payload.
type RPU struct {
	Header      *Header
	DataMapping *DataMapping
	NlqData     *NlqData
	VdrDmData   *VdrDmData
}

// Parse decodes an unwrapped RPU payload (leading 0x19 prefix, trailing
// CRC and 0x80 terminator, no container framing) into a structured model.
// It checks the terminator and the CRC first, before any field is
// decoded, then decodes Header -> [Mapping] -> [NLQ] ->
// [VdrDm -> ExtBlocks*] in order. The bits between the last decoded
// section and the CRC are not checked.
func Parse(data []byte) (*RPU, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	data = stripTrailingPadding(data)
	if len(data) < trailerLen+1 {
		return nil, fmt.Errorf("%w: payload shorter than header+trailer", ErrOutOfBounds)
	}
	if data[len(data)-1] != 0x80 {
		return nil, fmt.Errorf("%w: missing 0x80 terminator", ErrInvalidHeader)
	}

	crcRange := data[1 : len(data)-trailerLen]
	received := binary.BigEndian.Uint32(data[len(data)-trailerLen : len(data)-1])
	computed := crc32mpeg2.Checksum(crcRange)
	if computed != received {
		return nil, fmt.Errorf("%w: computed 0x%08X != received 0x%08X", ErrCrcMismatch, computed, received)
	}

	r := bitio.NewReader(data[:len(data)-trailerLen])

	header, err := parseHeader(r)
	if err != nil {
		return nil, err
	}

	out := &RPU{Header: header}

	if header.RpuType == 2 {
		if out.DataMapping, err = parseDataMapping(r, header); err != nil {
			return nil, fmt.Errorf("rpu: data mapping: %w", err)
		}
	}

	if header.HasNlq() {
		if out.NlqData, err = parseNlqData(r, header); err != nil {
			return nil, fmt.Errorf("rpu: nlq data: %w", err)
		}
	}

	if header.VdrDmMetadataPresentFlag {
		if out.VdrDmData, err = parseVdrDmData(r); err != nil {
			return nil, fmt.Errorf("rpu: vdr dm data: %w", err)
		}
	}

	return out, nil
}

// Write re-serializes the model: payload sections, byte-alignment padding,
// CRC-32/MPEG-2 over everything but the prefix byte, and the 0x80
// terminator. It never emits the tolerated trailing 0x00 some producers
// add (an Open Question resolution: stripped on read, never written).
func (p *RPU) Write() ([]byte, error) {
	w := bitio.NewWriter()

	if err := p.Header.write(w); err != nil {
		return nil, err
	}
	if p.Header.RpuType == 2 {
		if p.DataMapping == nil {
			return nil, fmt.Errorf("%w: rpu_type 2 requires data mapping", ErrInvalidHeader)
		}
		if err := p.DataMapping.write(w, p.Header); err != nil {
			return nil, err
		}
	}
	if p.Header.HasNlq() {
		if p.NlqData == nil {
			return nil, fmt.Errorf("%w: fel profile requires nlq data", ErrInvalidHeader)
		}
		if err := p.NlqData.write(w, p.Header); err != nil {
			return nil, err
		}
	}
	if p.Header.VdrDmMetadataPresentFlag {
		if p.VdrDmData == nil {
			return nil, fmt.Errorf("%w: vdr_dm_metadata_present_flag requires vdr dm data", ErrInvalidHeader)
		}
		if err := p.VdrDmData.write(w); err != nil {
			return nil, err
		}
	}

	w.Align()
	payload := w.Bytes()

	crc := crc32mpeg2.Checksum(payload[1:])
	out := make([]byte, 0, len(payload)+trailerLen)
	out = append(out, payload...)
	out = append(out, byte(crc>>24), byte(crc>>16), byte(crc>>8), byte(crc))
	out = append(out, 0x80)
	return out, nil
}

// stripTrailingPadding removes a tolerated extra 0x00 byte some producers
// emit immediately after the 0x80 terminator.
func stripTrailingPadding(data []byte) []byte {
	if len(data) >= 2 && data[len(data)-1] == 0x00 && data[len(data)-2] == 0x80 {
		return data[:len(data)-1]
	}
	return data
}
