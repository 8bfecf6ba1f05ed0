package cmd

import (
	"fmt"
	"os"

	"github.com/quietvoid/dovi-tool-sub001/rpu/extmetadata"
	"github.com/spf13/cobra"
)

// EditConfig is the editor subcommand's JSON input: a small set of
// transforms applied to every RPU in a sidecar.
type EditConfig struct {
	Crop         *CropEdit `json:"crop,omitempty"`
	RemoveLevels []uint8   `json:"remove_levels,omitempty"`
	MinPQ        *uint16   `json:"min_pq,omitempty"`
	MaxPQ        *uint16   `json:"max_pq,omitempty"`
	AvgPQ        *uint16   `json:"avg_pq,omitempty"`
}

// CropEdit replaces (or adds) the level-5 active area block.
type CropEdit struct {
	Left   uint16 `json:"left"`
	Right  uint16 `json:"right"`
	Top    uint16 `json:"top"`
	Bottom uint16 `json:"bottom"`
}

var editorCmd = &cobra.Command{
	Use:   "editor <input.bin> <edits.json> <output.bin>",
	Short: "Apply a JSON-described set of edits to every RPU in a sidecar",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		rpus, err := loadSidecar(args[0])
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		var cfg EditConfig
		if err := jsonAPI.Unmarshal(raw, &cfg); err != nil {
			return fmt.Errorf("dovirpu: edits.json: %w", err)
		}

		for i, p := range rpus {
			if p.VdrDmData == nil {
				continue
			}
			dm := &p.VdrDmData.DmData

			if cfg.Crop != nil {
				dm.RemoveLevel(5)
				block := extmetadata.FromOffsets(cfg.Crop.Left, cfg.Crop.Right, cfg.Crop.Top, cfg.Crop.Bottom)
				if err := dm.AddBlock(block); err != nil {
					return fmt.Errorf("dovirpu: rpu %d: %w", i, err)
				}
			}
			for _, level := range cfg.RemoveLevels {
				dm.RemoveLevel(level)
			}
			if cfg.MinPQ != nil || cfg.MaxPQ != nil || cfg.AvgPQ != nil {
				if err := applyStatsEdit(dm, cfg); err != nil {
					return fmt.Errorf("dovirpu: rpu %d: %w", i, err)
				}
			}
		}

		return writeSidecar(args[2], rpus)
	},
}

func applyStatsEdit(dm blockContainer, cfg EditConfig) error {
	var existing *extmetadata.Level1
	for _, b := range dm.Blocks() {
		if l1, ok := b.(*extmetadata.Level1); ok {
			existing = l1
		}
	}
	var min, max, avg uint16 = 0, extmetadata.L1MaxPQMinValue, extmetadata.L1AvgPQMinValue
	if existing != nil {
		min, max, avg = existing.MinPQ, existing.MaxPQ, existing.AvgPQ
	}
	if cfg.MinPQ != nil {
		min = *cfg.MinPQ
	}
	if cfg.MaxPQ != nil {
		max = *cfg.MaxPQ
	}
	if cfg.AvgPQ != nil {
		avg = *cfg.AvgPQ
	}
	dm.RemoveLevel(1)
	return dm.AddBlock(extmetadata.FromStats(min, max, avg))
}

// blockContainer is the subset of *rpu.DmData's API the editor needs,
// named here so applyStatsEdit doesn't have to import rpu for one type.
type blockContainer interface {
	Blocks() []extmetadata.Block
	RemoveLevel(level uint8)
	AddBlock(b extmetadata.Block) error
}

func init() {
	rootCmd.AddCommand(editorCmd)
}
