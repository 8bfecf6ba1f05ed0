package cmd

import (
	"fmt"
	"os"

	"github.com/quietvoid/dovi-tool-sub001/rpu"
	"github.com/quietvoid/dovi-tool-sub001/rpu/extmetadata"
	"github.com/quietvoid/dovi-tool-sub001/rpu/profile"
	"github.com/spf13/cobra"
)

// GenerateConfig is the generate subcommand's JSON input: enough to
// synthesize a minimal but valid RPU without a real encode, for
// producing test fixtures.
type GenerateConfig struct {
	Profile    uint8  `json:"profile"`
	Length     int    `json:"length"`
	BlBitDepth uint8  `json:"bl_bit_depth"`
	ElBitDepth uint8  `json:"el_bit_depth"`
	MinPQ      uint16 `json:"min_pq"`
	MaxPQ      uint16 `json:"max_pq"`
	AvgPQ      uint16 `json:"avg_pq"`
	TargetNits uint16 `json:"target_nits"`
}

const generateCoefficientLog2Denom = 14
const generateSourceDiagonal = 42

var generateCmd = &cobra.Command{
	Use:   "generate <config.json> <output.bin>",
	Short: "Build a synthetic RPU sidecar from a small JSON config",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var cfg GenerateConfig
		if err := jsonAPI.Unmarshal(raw, &cfg); err != nil {
			return fmt.Errorf("dovirpu: config.json: %w", err)
		}
		if cfg.Length <= 0 {
			cfg.Length = 1
		}
		if cfg.BlBitDepth == 0 {
			cfg.BlBitDepth = 10
		}
		if cfg.ElBitDepth == 0 {
			cfg.ElBitDepth = cfg.BlBitDepth
		}

		p, err := generateRPU(cfg)
		if err != nil {
			return err
		}

		rpus := make([]*rpu.RPU, cfg.Length)
		for i := range rpus {
			rpus[i] = p
		}
		return writeSidecar(args[1], rpus)
	},
}

func generateRPU(cfg GenerateConfig) (*rpu.RPU, error) {
	target := profile.Profile(cfg.Profile)

	h := &rpu.Header{
		RpuType:               2,
		VdrRpuProfile:         cfg.Profile,
		VdrRpuLevel:           profileDefaultLevel(cfg.Profile),
		VdrSeqInfoPresentFlag: true,
		CoefficientDataType:   0,
		CoefficientLog2Denom:  generateCoefficientLog2Denom,
		BlBitDepthMinus8:      uint64(cfg.BlBitDepth) - 8,
		ElBitDepthMinus8:      uint64(cfg.ElBitDepth) - 8,
		VdrBitDepthMinus8:     uint64(cfg.BlBitDepth) - 8,
		VdrDmMetadataPresentFlag: true,
		NlqMethodIdc:             -1,
	}

	dm := identityDataMapping(h)

	vdr := &rpu.VdrDmData{
		SignalEotf:     rpu.SignalEotfPQ,
		SourceMinPQ:    0,
		SourceMaxPQ:    cfg.MaxPQ,
		SourceDiagonal: generateSourceDiagonal,
	}
	profile.ApplyDefaultMatrices(vdr, target)

	if err := vdr.DmData.AddBlock(extmetadata.FromStats(cfg.MinPQ, cfg.MaxPQ, cfg.AvgPQ)); err != nil {
		return nil, err
	}
	if cfg.TargetNits > 0 {
		if err := vdr.DmData.AddBlock(extmetadata.FromNits(cfg.TargetNits)); err != nil {
			return nil, err
		}
	} else if err := vdr.DmData.AddBlock(extmetadata.DefaultLevel2()); err != nil {
		return nil, err
	}

	return &rpu.RPU{Header: h, DataMapping: dm, VdrDmData: vdr}, nil
}

// profileDefaultLevel picks a plausible vdr_rpu_level for a freshly
// generated RPU; dovirpu does not model the full level-selection table,
// only enough to produce a parseable header.
func profileDefaultLevel(p uint8) uint8 {
	if p == 8 {
		return 1
	}
	return 0
}

// identityDataMapping builds a per-component unity polynomial curve: two
// identical segments split at the mid-range pivot, slope 1, offset 0 on
// each side, matching profile.Convert's own identity reset (see
// resetToIdentity's doc comment for why a single zero-pivot segment
// cannot be encoded).
func identityDataMapping(h *rpu.Header) *rpu.DataMapping {
	bits := h.CoefficientLog2Denom + 1
	slope := int64(1) << uint(h.CoefficientLog2Denom)
	pivot := uint64(1) << uint(h.VdrBitDepthMinus8+8-1)

	dm := &rpu.DataMapping{}
	for i := range dm.Components {
		dm.Components[i] = &rpu.ComponentMapping{
			PivotValues: []uint64{pivot},
			PolySegments: []rpu.PolySegment{
				{
					OrderMinus1: 0,
					Coefficients: []rpu.Coefficient{
						{Value: 0, Bits: bits},
						{Value: slope, Bits: bits},
					},
				},
				{
					OrderMinus1: 0,
					Coefficients: []rpu.Coefficient{
						{Value: 0, Bits: bits},
						{Value: slope, Bits: bits},
					},
				},
			},
		}
	}
	return dm
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
