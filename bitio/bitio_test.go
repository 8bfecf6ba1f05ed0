package bitio

import "testing"

func TestGetNRoundTrip(t *testing.T) {
	cases := []struct {
		value uint64
		bits  int
	}{
		{0, 1},
		{1, 1},
		{0x3FF, 10},
		{0xFFFFFFFF, 32},
		{0xFFFFFFFFFFFFFFFF, 64},
	}
	for _, c := range cases {
		w := NewWriter()
		if err := w.PutN(c.value, c.bits); err != nil {
			t.Fatalf("PutN(%d, %d): %v", c.value, c.bits, err)
		}
		r := NewReader(w.Bytes())
		got, err := r.GetN(c.bits)
		if err != nil {
			t.Fatalf("GetN: %v", err)
		}
		if got != c.value {
			t.Errorf("PutN(%d,%d) round trip got %d", c.value, c.bits, got)
		}
	}
}

func TestExpGolombUnsigned(t *testing.T) {
	for v := uint64(0); v < 1000; v++ {
		w := NewWriter()
		if err := w.PutUE(v); err != nil {
			t.Fatalf("PutUE(%d): %v", v, err)
		}
		r := NewReader(w.Bytes())
		got, err := r.GetUE()
		if err != nil {
			t.Fatalf("GetUE: %v", err)
		}
		if got != v {
			t.Errorf("ue(v) round trip: put %d got %d", v, got)
		}
	}
}

func TestExpGolombSigned(t *testing.T) {
	for v := int64(-500); v < 500; v++ {
		w := NewWriter()
		if err := w.PutSE(v); err != nil {
			t.Fatalf("PutSE(%d): %v", v, err)
		}
		r := NewReader(w.Bytes())
		got, err := r.GetSE()
		if err != nil {
			t.Fatalf("GetSE: %v", err)
		}
		if got != v {
			t.Errorf("se(v) round trip: put %d got %d", v, got)
		}
	}
}

func TestGetUEKnownEncodings(t *testing.T) {
	// ue(v) for 0 is a single '1' bit; for 1 is '010'; for 2 is '011'.
	r := NewReader([]byte{0b1_010_011_0})
	v0, err := r.GetUE()
	if err != nil || v0 != 0 {
		t.Fatalf("first ue(v) = %d, %v, want 0", v0, err)
	}
	v1, err := r.GetUE()
	if err != nil || v1 != 1 {
		t.Fatalf("second ue(v) = %d, %v, want 1", v1, err)
	}
	v2, err := r.GetUE()
	if err != nil || v2 != 2 {
		t.Fatalf("third ue(v) = %d, %v, want 2", v2, err)
	}
}

func TestGetNOutOfBounds(t *testing.T) {
	r := NewReader([]byte{0xFF})
	if _, err := r.GetN(9); err != ErrOutOfBounds {
		t.Fatalf("GetN past end: got %v, want ErrOutOfBounds", err)
	}
}

func TestGetUERefusesRunPastEnd(t *testing.T) {
	r := NewReader([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	if _, err := r.GetUE(); err != ErrOutOfBounds {
		t.Fatalf("GetUE on all-zero buffer: got %v, want ErrOutOfBounds", err)
	}
}

func TestAlignedAndSkip(t *testing.T) {
	w := NewWriter()
	w.Put(true)
	w.Put(false)
	w.Put(true)
	w.Align()
	if !w.Aligned() {
		t.Fatal("Writer.Align did not align cursor")
	}
	if w.Len() != 8 {
		t.Fatalf("Len after Align = %d, want 8", w.Len())
	}

	r := NewReader(w.Bytes())
	if r.Aligned() != true {
		t.Fatal("fresh Reader should start aligned")
	}
	if err := r.Skip(3); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if r.Aligned() {
		t.Fatal("Reader should not be aligned after Skip(3)")
	}
}

func TestPutBytesGetBytes(t *testing.T) {
	w := NewWriter()
	w.PutBytes([]byte{0x01, 0x02, 0x03})
	r := NewReader(w.Bytes())
	got, err := r.GetBytes(3)
	if err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	want := []byte{0x01, 0x02, 0x03}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("GetBytes = %v, want %v", got, want)
		}
	}
}

func BenchmarkPutUE(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w := NewWriter()
		_ = w.PutUE(uint64(i % 100000))
	}
}

func BenchmarkGetUE(b *testing.B) {
	w := NewWriter()
	for v := uint64(0); v < 1000; v++ {
		_ = w.PutUE(v)
	}
	data := w.Bytes()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := NewReader(data)
		for j := 0; j < 1000; j++ {
			if _, err := r.GetUE(); err != nil {
				b.Fatalf("GetUE: %v", err)
			}
		}
	}
}
