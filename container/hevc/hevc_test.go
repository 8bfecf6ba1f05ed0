package hevc

import (
	"bytes"
	"errors"
	"testing"

	"github.com/quietvoid/dovi-tool-sub001/emulation"
	"github.com/quietvoid/dovi-tool-sub001/rpu"
)

func buildMinimalRPU() *rpu.RPU {
	h := &rpu.Header{
		RpuType:                  2,
		VdrRpuProfile:            8,
		VdrRpuLevel:              1,
		VdrSeqInfoPresentFlag:    true,
		CoefficientLog2Denom:     14,
		BlBitDepthMinus8:         2,
		ElBitDepthMinus8:         2,
		VdrBitDepthMinus8:        2,
		VdrDmMetadataPresentFlag: true,
		NlqMethodIdc:             -1,
	}

	bits := h.CoefficientLog2Denom + 1
	slope := int64(1) << uint(h.CoefficientLog2Denom)
	pivot := uint64(1) << uint(h.VdrBitDepthMinus8+8-1)
	seg := rpu.PolySegment{
		OrderMinus1: 0,
		Coefficients: []rpu.Coefficient{
			{Value: 0, Bits: bits},
			{Value: slope, Bits: bits},
		},
	}

	dm := &rpu.DataMapping{}
	for i := range dm.Components {
		dm.Components[i] = &rpu.ComponentMapping{
			PivotValues:  []uint64{pivot},
			PolySegments: []rpu.PolySegment{seg, seg},
		}
	}

	vdr := &rpu.VdrDmData{SignalEotf: rpu.SignalEotfPQ, SourceMaxPQ: 3000, SourceDiagonal: 42}

	return &rpu.RPU{Header: h, DataMapping: dm, VdrDmData: vdr}
}

func TestWrapParseRoundTrip(t *testing.T) {
	p := buildMinimalRPU()
	wrapped, err := Wrap(p)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	if !bytes.HasPrefix(wrapped, nalHeader) {
		t.Fatalf("Wrap output does not start with the unspec-62 NAL header")
	}

	got, err := Parse(wrapped)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Header.VdrRpuProfile != p.Header.VdrRpuProfile {
		t.Fatalf("round trip VdrRpuProfile = %d, want %d", got.Header.VdrRpuProfile, p.Header.VdrRpuProfile)
	}
}

func TestStripPrefixVariants(t *testing.T) {
	// Each tolerated prefix here replaces the unspec-62 NAL header
	// entirely and sits directly ahead of the 0x19 RPU prefix byte.
	p := buildMinimalRPU()
	payload, err := p.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	escaped := emulation.Insert(payload)

	prefixes := [][]byte{
		{0x00, 0x00, 0x00, 0x01},
		{0x00, 0x00, 0x01},
		{0x00, 0x01},
	}
	for _, prefix := range prefixes {
		withPrefix := append(append([]byte{}, prefix...), escaped...)
		got, err := Parse(withPrefix)
		if err != nil {
			t.Fatalf("Parse with prefix %x: %v", prefix, err)
		}
		if got.Header.VdrRpuProfile != p.Header.VdrRpuProfile {
			t.Fatalf("Parse with prefix %x returned wrong profile", prefix)
		}
	}

	got, err := Parse(escaped)
	if err != nil {
		t.Fatalf("Parse with no prefix (bare 0x19 fallback): %v", err)
	}
	if got.Header.VdrRpuProfile != p.Header.VdrRpuProfile {
		t.Fatalf("Parse with no prefix returned wrong profile")
	}
}

func TestUnwrapRejectsUnrecognizedPrefix(t *testing.T) {
	if _, err := Unwrap([]byte{0xFF, 0xFF, 0xFF}); !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("Unwrap with garbage prefix: got %v, want ErrInvalidMagic", err)
	}
}
