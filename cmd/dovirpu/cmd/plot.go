package cmd

import (
	"fmt"

	"github.com/quietvoid/dovi-tool-sub001/rpu/extmetadata"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var plotCmd = &cobra.Command{
	Use:   "plot <input.bin> <output.png>",
	Short: "Render L1 min/max/avg PQ across a sidecar's RPUs as a PNG",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rpus, err := loadSidecar(args[0])
		if err != nil {
			return err
		}

		var minPts, maxPts, avgPts plotter.XYs
		var avgVals []float64
		for i, p := range rpus {
			if p.VdrDmData == nil {
				continue
			}
			for _, b := range p.VdrDmData.DmData.Blocks() {
				l1, ok := b.(*extmetadata.Level1)
				if !ok {
					continue
				}
				x := float64(i)
				minPts = append(minPts, plotter.XY{X: x, Y: float64(l1.MinPQ)})
				maxPts = append(maxPts, plotter.XY{X: x, Y: float64(l1.MaxPQ)})
				avgPts = append(avgPts, plotter.XY{X: x, Y: float64(l1.AvgPQ)})
				avgVals = append(avgVals, float64(l1.AvgPQ))
			}
		}

		if len(avgVals) > 0 {
			mean := stat.Mean(avgVals, nil)
			stddev := stat.StdDev(avgVals, nil)
			fmt.Fprintf(cmd.OutOrStdout(), "avg pq across %d frames: mean=%.1f stddev=%.1f\n",
				len(avgVals), mean, stddev)
		}

		p := plot.New()
		p.Title.Text = "L1 PQ across frames"
		p.X.Label.Text = "frame"
		p.Y.Label.Text = "PQ code value"

		if err := addLine(p, "min", minPts); err != nil {
			return err
		}
		if err := addLine(p, "max", maxPts); err != nil {
			return err
		}
		if err := addLine(p, "avg", avgPts); err != nil {
			return err
		}

		return p.Save(10*vg.Inch, 6*vg.Inch, args[1])
	},
}

func addLine(p *plot.Plot, name string, pts plotter.XYs) error {
	if len(pts) == 0 {
		return nil
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)
	p.Legend.Add(name, line)
	return nil
}

func init() {
	rootCmd.AddCommand(plotCmd)
}
