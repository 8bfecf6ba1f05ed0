package rpu

import (
	"testing"

	"github.com/quietvoid/dovi-tool-sub001/rpu/extmetadata"
)

func FuzzParse(f *testing.F) {
	h := &Header{
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
	dm := &DataMapping{}
	for i := range dm.Components {
		dm.Components[i] = identityComponentMapping(h)
	}
	vdr := &VdrDmData{SignalEotf: SignalEotfPQ, SourceMaxPQ: 3000, SourceDiagonal: 42}
	_ = vdr.DmData.AddBlock(extmetadata.FromStats(0, 3000, 1500))
	seed := &RPU{Header: h, DataMapping: dm, VdrDmData: vdr}

	if data, err := seed.Write(); err == nil {
		f.Add(data)
	}
	f.Add([]byte{0x19, 0x80})
	f.Add([]byte(nil))

	f.Fuzz(func(t *testing.T, data []byte) {
		Parse(data) // must not panic
	})
}
