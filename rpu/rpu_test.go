package rpu

import (
	"errors"
	"testing"

	"github.com/quietvoid/dovi-tool-sub001/rpu/extmetadata"
)

// identityComponentMapping mirrors rpu/profile's minimal valid encoding of
// an identity curve: one mid-range pivot, two unity segments.
func identityComponentMapping(h *Header) *ComponentMapping {
	bits := h.CoefficientLog2Denom + 1
	slope := int64(1) << uint(h.CoefficientLog2Denom)
	pivot := uint64(1) << uint(h.VdrBitDepthMinus8+8-1)
	seg := PolySegment{
		OrderMinus1: 0,
		Coefficients: []Coefficient{
			{Value: 0, Bits: bits},
			{Value: slope, Bits: bits},
		},
	}
	return &ComponentMapping{
		PivotValues:  []uint64{pivot},
		PolySegments: []PolySegment{seg, seg},
	}
}

func buildTestRPU(t *testing.T) *RPU {
	t.Helper()
	h := &Header{
		RpuType:                  2,
		VdrRpuProfile:            8,
		VdrRpuLevel:              1,
		VdrSeqInfoPresentFlag:    true,
		CoefficientDataType:      0,
		CoefficientLog2Denom:     14,
		BlBitDepthMinus8:         2,
		ElBitDepthMinus8:         2,
		VdrBitDepthMinus8:        2,
		VdrDmMetadataPresentFlag: true,
		NlqMethodIdc:             -1,
	}

	dm := &DataMapping{}
	for i := range dm.Components {
		dm.Components[i] = identityComponentMapping(h)
	}

	vdr := &VdrDmData{
		SignalEotf:     SignalEotfPQ,
		SourceMinPQ:    0,
		SourceMaxPQ:    3000,
		SourceDiagonal: 42,
	}
	if err := vdr.DmData.AddBlock(extmetadata.FromStats(0, 3000, 1500)); err != nil {
		t.Fatalf("AddBlock: %v", err)
	}
	if err := vdr.DmData.AddBlock(extmetadata.DefaultLevel2()); err != nil {
		t.Fatalf("AddBlock: %v", err)
	}

	return &RPU{Header: h, DataMapping: dm, VdrDmData: vdr}
}

func TestWriteParseRoundTrip(t *testing.T) {
	p := buildTestRPU(t)
	data, err := p.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if data[0] != rpuNalPrefix {
		t.Fatalf("Write()[0] = %d, want %d", data[0], rpuNalPrefix)
	}
	if data[len(data)-1] != 0x80 {
		t.Fatalf("Write() missing 0x80 terminator")
	}

	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Header.VdrRpuProfile != p.Header.VdrRpuProfile {
		t.Errorf("VdrRpuProfile = %d, want %d", got.Header.VdrRpuProfile, p.Header.VdrRpuProfile)
	}
	if got.Header.HasNlq() {
		t.Error("HasNlq() = true for a non-FEL profile")
	}
	if got.VdrDmData == nil {
		t.Fatal("VdrDmData is nil after round trip")
	}
	if got.VdrDmData.DmData.Kind() != V29 {
		t.Errorf("DmData.Kind() = %v, want V29", got.VdrDmData.DmData.Kind())
	}
	blocks := got.VdrDmData.DmData.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("len(Blocks()) = %d, want 2", len(blocks))
	}
	if blocks[0].Level() != 1 || blocks[1].Level() != 2 {
		t.Fatalf("block levels = %d, %d, want 1, 2", blocks[0].Level(), blocks[1].Level())
	}
}

func TestParseRejectsEmptyInput(t *testing.T) {
	if _, err := Parse(nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("Parse(nil) = %v, want ErrEmptyInput", err)
	}
}

func TestParseRejectsBadCRC(t *testing.T) {
	p := buildTestRPU(t)
	data, err := p.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data[len(data)-2] ^= 0xFF // corrupt one CRC byte
	if _, err := Parse(data); !errors.Is(err, ErrCrcMismatch) {
		t.Fatalf("Parse with corrupted CRC: got %v, want ErrCrcMismatch", err)
	}
}

func TestParseRejectsMissingTerminator(t *testing.T) {
	p := buildTestRPU(t)
	data, err := p.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data[len(data)-1] = 0x00
	if _, err := Parse(data); !errors.Is(err, ErrInvalidHeader) {
		t.Fatalf("Parse with missing terminator: got %v, want ErrInvalidHeader", err)
	}
}

func TestParseStripsTrailingPaddingByte(t *testing.T) {
	p := buildTestRPU(t)
	data, err := p.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	padded := append(append([]byte{}, data...), 0x00)
	got, err := Parse(padded)
	if err != nil {
		t.Fatalf("Parse with trailing 0x00: %v", err)
	}
	if got.Header.VdrRpuProfile != p.Header.VdrRpuProfile {
		t.Fatalf("Parse with trailing padding changed decoded profile")
	}
}

func TestWriteParseRoundTripCmV40(t *testing.T) {
	p := buildTestRPU(t)
	// A level-254 block is what classifies the DmData container as CM
	// v4.0 on parse; build one directly since AddBlock enforces the V29
	// allow-list it would otherwise have started in.
	p.VdrDmData.DmData = DmData{
		kind: V40,
		blocks: []extmetadata.Block{
			extmetadata.FromStats(0, 3000, 1500),
			extmetadata.DefaultLevel2(),
			extmetadata.CmV40Default(),
		},
	}
	extmetadata.SortBlocks(p.VdrDmData.DmData.blocks)

	data, err := p.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.VdrDmData.DmData.Kind() != V40 {
		t.Fatalf("DmData.Kind() = %v, want V40", got.VdrDmData.DmData.Kind())
	}
	blocks := got.VdrDmData.DmData.Blocks()
	if len(blocks) != 3 {
		t.Fatalf("len(Blocks()) = %d, want 3", len(blocks))
	}
	if blocks[len(blocks)-1].Level() != 254 {
		t.Fatalf("last block level = %d, want 254", blocks[len(blocks)-1].Level())
	}
}

func TestDmDataRejectsDisallowedLevelForKind(t *testing.T) {
	p := buildTestRPU(t)
	err := p.VdrDmData.DmData.AddBlock(&extmetadata.Level9{})
	var lvlErr *InvalidBlockLevelError
	if !errors.As(err, &lvlErr) {
		t.Fatalf("AddBlock(Level9) on a V29 container: got %v, want *InvalidBlockLevelError", err)
	}
	if lvlErr.Error() != "Invalid block level 9 for CM v2.9 RPU" {
		t.Fatalf("InvalidBlockLevelError.Error() = %q", lvlErr.Error())
	}
	if !errors.Is(err, ErrInvalidBlock) {
		t.Fatal("InvalidBlockLevelError does not unwrap to ErrInvalidBlock")
	}
}
