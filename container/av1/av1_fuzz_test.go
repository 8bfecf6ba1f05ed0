package av1

import "testing"

func FuzzParse(f *testing.F) {
	p := buildMinimalRPU()
	if wrapped, err := Wrap(p); err == nil {
		f.Add(wrapped)
	}
	f.Add(magic)
	f.Add([]byte(nil))

	f.Fuzz(func(t *testing.T, data []byte) {
		Parse(data) // must not panic
	})
}
