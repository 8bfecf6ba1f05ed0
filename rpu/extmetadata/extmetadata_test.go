package extmetadata

import (
	"testing"

	"github.com/quietvoid/dovi-tool-sub001/bitio"
)

func writeAndParse(t *testing.T, b Block) Block {
	t.Helper()
	w := bitio.NewWriter()
	if err := b.Write(w); err != nil {
		t.Fatalf("Write: %v", err)
	}
	w.Align()
	r := bitio.NewReader(w.Bytes())
	got, err := Parse(r, b.Level(), b.BytesSize())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return got
}

func TestLevel1RoundTrip(t *testing.T) {
	b := FromStats(0, 3000, 1500)
	got := writeAndParse(t, b).(*Level1)
	if *got != *b {
		t.Fatalf("Level1 round trip = %+v, want %+v", got, b)
	}
}

func TestFromStatsClampsRanges(t *testing.T) {
	cases := []struct {
		min, max, avg     uint16
		wantMax, wantAvg uint16
	}{
		{0, 1, 0, L1MaxPQMinValue, L1AvgPQMinValue},
		{0, 5000, 100, L1MaxPQMaxValue, L1AvgPQMinValue},
		{0, 2081, 4090, 2081, 2080},
	}
	for _, c := range cases {
		b := FromStats(c.min, c.max, c.avg)
		if b.MaxPQ != c.wantMax {
			t.Errorf("FromStats(%d,%d,%d).MaxPQ = %d, want %d", c.min, c.max, c.avg, b.MaxPQ, c.wantMax)
		}
		if b.AvgPQ != c.wantAvg {
			t.Errorf("FromStats(%d,%d,%d).AvgPQ = %d, want %d", c.min, c.max, c.avg, b.AvgPQ, c.wantAvg)
		}
	}
}

func TestLevel2RoundTripWithNegativeMsWeight(t *testing.T) {
	b := DefaultLevel2()
	b.MsWeight = -1
	got := writeAndParse(t, b).(*Level2)
	if *got != *b {
		t.Fatalf("Level2 round trip = %+v, want %+v", got, b)
	}
}

func TestLevel2FromNitsSetsTargetMaxPQ(t *testing.T) {
	b := FromNits(1000)
	if b.TargetMaxPQ == level2DefaultTargetMaxPQ {
		t.Fatalf("FromNits(1000).TargetMaxPQ unchanged from default, want derived value")
	}
	if b.TargetMaxPQ > 0xFFF {
		t.Fatalf("FromNits(1000).TargetMaxPQ = %d, out of 12-bit range", b.TargetMaxPQ)
	}
}

func TestLevel2ValidateRejectsOutOfRangeMsWeight(t *testing.T) {
	b := DefaultLevel2()
	b.MsWeight = 5000
	if err := b.Validate(); err == nil {
		t.Fatal("Validate accepted ms_weight out of 13-bit signed range")
	}
}

func TestSignExtendRoundTripsWithTruncate(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 4095, -4096} {
		bits := truncate(v, 13)
		got := signExtend(bits, 13)
		if got != v {
			t.Errorf("signExtend(truncate(%d)) = %d, want %d", v, got, v)
		}
	}
}

func TestLevel6ValidateRejectsLuminanceOver10000(t *testing.T) {
	b := &Level6{MaxDisplayMasteringLuminance: 10001}
	if err := b.Validate(); err == nil {
		t.Fatal("Validate accepted max_display_mastering_luminance above 10000")
	}
}

func TestLevel6RoundTrip(t *testing.T) {
	b := &Level6{
		MaxDisplayMasteringLuminance: 1000,
		MinDisplayMasteringLuminance: 1,
		MaxContentLightLevel:         4000,
		MaxFrameAverageLightLevel:    400,
	}
	got := writeAndParse(t, b).(*Level6)
	if *got != *b {
		t.Fatalf("Level6 round trip = %+v, want %+v", got, b)
	}
}

func TestLevel11RoundTripPreservesEnhancementAndReservedBits(t *testing.T) {
	b := &Level11{
		ContentType:         Level11ContentTypeMovie,
		ContentSubType:      3,
		Whitepoint:          6,
		ReferenceModeFlag:   true,
		Reserved3Bits:       5,
		Sharpness:           2,
		NoiseReduction:      3,
		MpegNoiseReduction:  1,
		FrameRateConversion: 2,
		Brightness:          3,
		Color:               1,
		Reserved2Bits1:      2,
		Reserved2Bits2:      3,
	}
	got := writeAndParse(t, b).(*Level11)
	if *got != *b {
		t.Fatalf("Level11 round trip = %+v, want %+v", got, b)
	}
}

func TestDefaultReferenceCinemaRoundTrips(t *testing.T) {
	b := DefaultReferenceCinema()
	got := writeAndParse(t, b).(*Level11)
	if *got != *b {
		t.Fatalf("DefaultReferenceCinema round trip = %+v, want %+v", got, b)
	}
}

func TestLevel15RoundTrip(t *testing.T) {
	b := &Level15{
		Confidence:                 10,
		PrecisionRenderingStrength: 20,
		DLocalContrast:             30,
		DBrightness:                40,
		DSaturationPlusOne:         50,
		DContrastPlusOne:           60,
		ConfidenceNoPR:             70,
		DBrightnessNoPR:            80,
		DSaturationPlusOneNoPR:     90,
		DContrastPlusOneNoPR:       100,
		Revision:                   1,
	}
	got := writeAndParse(t, b).(*Level15)
	if *got != *b {
		t.Fatalf("Level15 round trip = %+v, want %+v", got, b)
	}
}

func TestLevel15ValidateRejectsNonZeroReserved(t *testing.T) {
	b := &Level15{Reserved: 1}
	if err := b.Validate(); err == nil {
		t.Fatal("Validate accepted non-zero reserved field")
	}
}

func TestLevel16RoundTripWithMultipleParams(t *testing.T) {
	b := &Level16{
		Revision: 2,
		Params: []Level16Params{
			{ContrastTarget: 1, PrecisionRenderingStrength: 2, DLocalContrast: 3, MaxDBrightness: 4, MaxDSaturationPlusOne: 5},
			{ContrastTarget: 6, PrecisionRenderingStrength: 7, DLocalContrast: 8, MaxDBrightness: 9, MaxDSaturationPlusOne: 10},
		},
	}
	got := writeAndParse(t, b).(*Level16)
	if got.Revision != b.Revision {
		t.Fatalf("Level16.Revision = %d, want %d", got.Revision, b.Revision)
	}
	if len(got.Params) != len(b.Params) {
		t.Fatalf("Level16.Params length = %d, want %d", len(got.Params), len(b.Params))
	}
	for i := range b.Params {
		if got.Params[i] != b.Params[i] {
			t.Fatalf("Level16.Params[%d] = %+v, want %+v", i, got.Params[i], b.Params[i])
		}
	}
}

func TestLevel17RoundTripPreservesChromaLift(t *testing.T) {
	b := &Level17{
		MidBoost:             10,
		HighlightStretch:     20,
		ShadowDrop:           30,
		ContrastBoost:        40,
		SaturationBoost:      50,
		DetailBoost:          60,
		ChromaIndicator:      70,
		IntensityIndicatorPQ: 0xABC,
		Revision:             3,
		ChromaLift:           0xFF,
	}
	got := writeAndParse(t, b).(*Level17)
	if *got != *b {
		t.Fatalf("Level17 round trip = %+v, want %+v", got, b)
	}
}

func TestLevel18RoundTrip(t *testing.T) {
	b := &Level18{
		SurroundLuminancePQ:     0x111,
		MinPreservedLuminancePQ: 0x222,
		AdaptationLuminancePQ:   0x333,
		MaxPreservedLuminancePQ: 0x444,
		Revision:                7,
	}
	got := writeAndParse(t, b).(*Level18)
	if *got != *b {
		t.Fatalf("Level18 round trip = %+v, want %+v", got, b)
	}
}

func TestLevel18ValidateRejectsNonZeroReserved(t *testing.T) {
	b := &Level18{Reserved: 1}
	if err := b.Validate(); err == nil {
		t.Fatal("Validate accepted non-zero reserved field")
	}
}

func TestSortBlocksOrdersByLevelThenSortKey(t *testing.T) {
	blocks := []Block{
		&Level2{TargetMaxPQ: 3000},
		&Level1{},
		&Level2{TargetMaxPQ: 1000},
	}
	SortBlocks(blocks)
	if blocks[0].Level() != 1 {
		t.Fatalf("blocks[0].Level() = %d, want 1", blocks[0].Level())
	}
	l2a, ok := blocks[1].(*Level2)
	if !ok || l2a.TargetMaxPQ != 1000 {
		t.Fatalf("blocks[1] = %+v, want Level2{TargetMaxPQ:1000}", blocks[1])
	}
	l2b, ok := blocks[2].(*Level2)
	if !ok || l2b.TargetMaxPQ != 3000 {
		t.Fatalf("blocks[2] = %+v, want Level2{TargetMaxPQ:3000}", blocks[2])
	}
}
