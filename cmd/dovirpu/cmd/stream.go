package cmd

import (
	"fmt"
	"os"

	"github.com/quietvoid/dovi-tool-sub001/container/hevc"
	"github.com/quietvoid/dovi-tool-sub001/rpu"
)

// readNALs reads an Annex B HEVC elementary stream from path and splits
// it into NAL units.
func readNALs(path string) ([]hevc.NalUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return hevc.SplitNALs(data), nil
}

// writeNALs serializes a sequence of NAL payloads (header included) as an
// Annex B elementary stream.
func writeNALs(path string, nals [][]byte) error {
	var out []byte
	for _, nal := range nals {
		out = append(out, startCode...)
		out = append(out, nal...)
	}
	return os.WriteFile(path, out, 0o644)
}

// isVCL reports whether a NAL type is a coded slice segment, per the
// HEVC Annex B nal_unit_type ranges (0-31 are VCL).
func isVCL(nalType uint8) bool {
	return nalType <= 31
}

// injectRPUs interleaves one wrapped RPU NAL before each VCL (slice) NAL
// in nals, assuming one slice per access unit. This is a one-RPU-per-
// frame model, not a full access-unit boundary detector; streams with
// multiple slices per frame are not supported.
func injectRPUs(nals []hevc.NalUnit, rpus []*rpu.RPU) ([][]byte, error) {
	vclCount := 0
	for _, nal := range nals {
		if isVCL(nal.Type) {
			vclCount++
		}
	}
	if vclCount != len(rpus) {
		return nil, fmt.Errorf("dovirpu: %d vcl nals but %d rpus in sidecar", vclCount, len(rpus))
	}

	out := make([][]byte, 0, len(nals)+len(rpus))
	i := 0
	for _, nal := range nals {
		if isVCL(nal.Type) {
			wrapped, err := hevc.Wrap(rpus[i])
			if err != nil {
				return nil, err
			}
			out = append(out, wrapped)
			i++
		}
		out = append(out, nal.Payload)
	}
	return out, nil
}
