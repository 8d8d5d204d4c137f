package gamma

import (
	"reflect"
	"testing"

	"github.com/jkokkala/bwtc-go/bitio"
)

func TestGammaVecRoundTrip(t *testing.T) {
	cases := [][]uint64{
		{0},
		{1, 2, 3, 4, 5},
		{0, 0, 0, 100, 255, 65535},
		nil,
	}
	for _, vals := range cases {
		w := bitio.NewWriter()
		EncodeVec(w, vals, 1)
		w.Flush()

		r := bitio.NewReader(w.Bytes())
		got := DecodeVec(r, len(vals), 1)
		if len(vals) == 0 {
			if len(got) != 0 {
				t.Fatalf("DecodeVec(nil) = %v, want empty", got)
			}
			continue
		}
		if !reflect.DeepEqual(got, vals) {
			t.Fatalf("round trip = %v, want %v", got, vals)
		}
	}
}

func TestDeltaVecRoundTrip(t *testing.T) {
	vals := []uint64{0, 1, 2, 100, 1 << 20, (1 << 30) - 1}
	w := bitio.NewWriter()
	EncodeDeltaVec(w, vals, 1)
	w.Flush()

	r := bitio.NewReader(w.Bytes())
	got := DecodeDeltaVec(r, len(vals), 1)
	if !reflect.DeepEqual(got, vals) {
		t.Fatalf("delta round trip = %v, want %v", got, vals)
	}
}

func TestGammaVecByteAligned(t *testing.T) {
	w := bitio.NewWriter()
	w.WriteBit(1) // misalign before the vector
	EncodeVec(w, []uint64{3}, 0)
	if w.BitPos()%8 != 0 {
		t.Fatalf("EncodeVec left the writer unaligned: bitpos=%d", w.BitPos())
	}
}
