package bitio

import "testing"

func TestWriteReadBits(t *testing.T) {
	w := NewWriter()
	w.WriteBit(1)
	w.WriteBits(0x1A, 5) // 11010
	w.WriteByte(0xAB)
	w.Flush()

	r := NewReader(w.Bytes())
	if got := r.ReadBit(); got != 1 {
		t.Fatalf("ReadBit = %d, want 1", got)
	}
	if got := r.ReadBits(5); got != 0x1A {
		t.Fatalf("ReadBits = %#x, want 0x1a", got)
	}
	if got := r.ReadByte(); got != 0xAB {
		t.Fatalf("ReadByte = %#x, want 0xab", got)
	}
}

func TestBackpatch48(t *testing.T) {
	w := NewWriter()
	pos := w.ReserveBytes(6)
	w.WriteByte('x')
	w.Write48(0x0102030405, pos)
	w.Flush()

	r := NewReader(w.Bytes())
	if got := r.Read48(); got != 0x0102030405 {
		t.Fatalf("Read48 = %#x, want 0x0102030405", got)
	}
	if got := r.ReadByte(); got != 'x' {
		t.Fatalf("ReadByte = %q, want 'x'", got)
	}
}

func TestCompressedDataEnding(t *testing.T) {
	w := NewWriter()
	w.WriteByte('a')
	r := NewReader(w.Bytes())
	if r.CompressedDataEnding() {
		t.Fatal("CompressedDataEnding true before reading the only byte")
	}
	r.ReadByte()
	if !r.CompressedDataEnding() {
		t.Fatal("CompressedDataEnding false at true end of stream")
	}
}

func TestReadPastEndRaises(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic reading past end of buffer")
		}
	}()
	r := NewReader(nil)
	r.ReadByte()
}

func TestBitPos(t *testing.T) {
	w := NewWriter()
	if w.BitPos() != 0 {
		t.Fatalf("BitPos = %d, want 0", w.BitPos())
	}
	w.WriteBit(1)
	w.WriteBit(0)
	w.WriteBit(1)
	if w.BitPos() != 3 {
		t.Fatalf("BitPos = %d, want 3", w.BitPos())
	}
	w.Flush()
	if w.BitPos() != 8 {
		t.Fatalf("BitPos after flush = %d, want 8", w.BitPos())
	}
}
