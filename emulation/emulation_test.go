package emulation

import (
	"bytes"
	"testing"
)

func TestInsertKnownCase(t *testing.T) {
	// The 00 00 00 run sits away from the trailing two-byte exclusion
	// window so Insert must escape it.
	in := []byte{0xAA, 0x00, 0x00, 0x00, 0xBB, 0xCC, 0xDD}
	got := Insert(in)
	want := []byte{0xAA, 0x00, 0x00, 0x03, 0x00, 0xBB, 0xCC, 0xDD}
	if !bytes.Equal(got, want) {
		t.Fatalf("Insert(%x) = %x, want %x", in, got, want)
	}
}

func TestInsertLeavesTrailingRunAlone(t *testing.T) {
	// A 00 00 00 run inside the final two bytes is outside the
	// emulation-prevention window and is left untouched.
	in := []byte{0xAA, 0x00, 0x00, 0x00, 0xBB}
	got := Insert(in)
	if !bytes.Equal(got, in) {
		t.Fatalf("Insert(%x) = %x, want unchanged", in, got)
	}
}

func TestInsertStripRoundTrip(t *testing.T) {
	cases := [][]byte{
		{0x01, 0x02, 0x03},
		{0x00, 0x00, 0x00, 0x00, 0x01},
		{0x00, 0x00, 0x01, 0x00, 0x00, 0x02},
		{0xFF, 0x00, 0x00, 0x03, 0x00, 0x00, 0x02},
	}
	for _, c := range cases {
		inserted := Insert(c)
		stripped := Strip(inserted)
		if !bytes.Equal(stripped, c) {
			t.Errorf("Strip(Insert(%x)) = %x, want %x", c, stripped, c)
		}
	}
}

func TestStripLeavesNonEmulatedAlone(t *testing.T) {
	in := []byte{0x00, 0x00, 0x04, 0x00, 0x00, 0x05}
	got := Strip(in)
	if !bytes.Equal(got, in) {
		t.Fatalf("Strip(%x) = %x, want unchanged", in, got)
	}
}
