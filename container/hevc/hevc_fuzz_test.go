package hevc

import "testing"

func FuzzParse(f *testing.F) {
	p := buildMinimalRPU()
	if wrapped, err := Wrap(p); err == nil {
		f.Add(wrapped)
	}
	f.Add([]byte{0x7C, 0x01, 0x19, 0x80})
	f.Add([]byte(nil))

	f.Fuzz(func(t *testing.T, data []byte) {
		Parse(data) // must not panic
	})
}
