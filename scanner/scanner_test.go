package scanner

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/quietvoid/dovi-tool-sub001/container/hevc"
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

func buildSidecar(t *testing.T, n int) []byte {
	t.Helper()
	var out []byte
	for i := 0; i < n; i++ {
		wrapped, err := hevc.Wrap(buildMinimalRPU())
		if err != nil {
			t.Fatalf("hevc.Wrap: %v", err)
		}
		out = append(out, startCode...)
		out = append(out, wrapped...)
	}
	return out
}

func TestSlicesFindsEachRPU(t *testing.T) {
	sidecar := buildSidecar(t, 3)
	slices, err := Slices(sidecar)
	if err != nil {
		t.Fatalf("Slices: %v", err)
	}
	if len(slices) != 3 {
		t.Fatalf("len(Slices()) = %d, want 3", len(slices))
	}
}

func TestSlicesRejectsInputWithNoStartCode(t *testing.T) {
	if _, err := Slices([]byte{0x19, 0x00, 0x01}); !errors.Is(err, ErrNoRpuFound) {
		t.Fatalf("Slices with no start code: got %v, want ErrNoRpuFound", err)
	}
}

func TestSlicesTrimsTrailingZeroBeforeNextStartCode(t *testing.T) {
	inner := []byte{0x19, 0xAA, 0xBB, 0x00}
	data := append(append(append([]byte{}, startCode...), inner...), startCode...)
	slices, err := Slices(data)
	if err != nil {
		t.Fatalf("Slices: %v", err)
	}
	if len(slices) != 1 {
		t.Fatalf("len(Slices()) = %d, want 1", len(slices))
	}
	if !bytes.Equal(slices[0], inner[:len(inner)-1]) {
		t.Fatalf("Slices()[0] = %x, want %x", slices[0], inner[:len(inner)-1])
	}
}

func TestParseAllPreservesOrder(t *testing.T) {
	sidecar := buildSidecar(t, 5)
	res, err := ParseAll(context.Background(), sidecar)
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if res.FirstErr != nil {
		t.Fatalf("ParseAll: unexpected parse failure at index %d: %v", res.FirstErrIndex, res.FirstErr)
	}
	if len(res.RPUs) != 5 {
		t.Fatalf("len(RPUs) = %d, want 5", len(res.RPUs))
	}
	for i, p := range res.RPUs {
		if p == nil {
			t.Fatalf("RPUs[%d] is nil", i)
		}
	}
}

func TestParseAllRecordsFirstError(t *testing.T) {
	sidecar := buildSidecar(t, 1)
	sidecar = append(sidecar, startCode...)
	sidecar = append(sidecar, 0xFF, 0xFF, 0xFF, 0xFF) // not a valid RPU NAL

	res, err := ParseAll(context.Background(), sidecar)
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if res.FirstErr == nil {
		t.Fatal("ParseAll did not record the malformed second slice as an error")
	}
	if res.FirstErrIndex != 1 {
		t.Fatalf("FirstErrIndex = %d, want 1", res.FirstErrIndex)
	}
	if res.RPUs[0] == nil {
		t.Fatal("RPUs[0] should still have parsed successfully")
	}
}
