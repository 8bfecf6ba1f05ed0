package cmd

import (
	"context"
	"os"

	"github.com/quietvoid/dovi-tool-sub001/container/hevc"
	"github.com/quietvoid/dovi-tool-sub001/rpu"
	"github.com/quietvoid/dovi-tool-sub001/scanner"
)

var startCode = []byte{0x00, 0x00, 0x00, 0x01}

// loadSidecar reads path and parses every RPU NAL it contains.
func loadSidecar(path string) ([]*rpu.RPU, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res, err := scanner.ParseAll(context.Background(), data)
	if err != nil {
		return nil, err
	}
	if res.FirstErr != nil {
		return nil, res.FirstErr
	}
	return res.RPUs, nil
}

// writeSidecar serializes each RPU as an HEVC-framed NAL, delimited by
// `00 00 00 01` start codes, and writes the concatenation to path.
func writeSidecar(path string, rpus []*rpu.RPU) error {
	var out []byte
	for _, p := range rpus {
		wrapped, err := hevc.Wrap(p)
		if err != nil {
			return err
		}
		out = append(out, startCode...)
		out = append(out, wrapped...)
	}
	return os.WriteFile(path, out, 0o644)
}
