package scanner

import (
	"testing"

	"github.com/quietvoid/dovi-tool-sub001/container/hevc"
)

func FuzzSlices(f *testing.F) {
	var sidecar []byte
	for i := 0; i < 2; i++ {
		if wrapped, err := hevc.Wrap(buildMinimalRPU()); err == nil {
			sidecar = append(sidecar, startCode...)
			sidecar = append(sidecar, wrapped...)
		}
	}
	f.Add(sidecar)
	f.Add([]byte{0x00, 0x00, 0x00, 0x01})
	f.Add([]byte(nil))

	f.Fuzz(func(t *testing.T, data []byte) {
		Slices(data) // must not panic
	})
}
