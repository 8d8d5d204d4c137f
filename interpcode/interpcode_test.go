package interpcode

import (
	"reflect"
	"testing"

	"github.com/jkokkala/bwtc-go/bitio"
)

func TestPhaseInRoundTrip(t *testing.T) {
	for _, r := range []uint64{0, 1, 2, 3, 4, 5, 7, 8, 100, 255, 1000} {
		for n := uint64(0); n <= r; n++ {
			w := bitio.NewWriter()
			EncodePhaseIn(w, n, r)
			w.Flush()
			rd := bitio.NewReader(w.Bytes())
			got := DecodePhaseIn(rd, r)
			if got != n {
				t.Fatalf("phase-in round trip r=%d n=%d got %d", r, n, got)
			}
		}
	}
}

func TestPhaseInMinimalBits(t *testing.T) {
	// r=1: single bit should suffice.
	w := bitio.NewWriter()
	EncodePhaseIn(w, 0, 1)
	if w.BitPos() != 1 {
		t.Fatalf("EncodePhaseIn(0, 1) used %d bits, want 1", w.BitPos())
	}
}

func TestListRoundTrip(t *testing.T) {
	cases := []struct {
		list []int64
		max  int64
	}{
		{nil, 10},
		{[]int64{5}, 10},
		{[]int64{0, 1, 2, 3}, 3},
		{[]int64{0, 3, 7, 9, 20}, 20},
		{[]int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 99},
	}
	for _, c := range cases {
		w := bitio.NewWriter()
		EncodeList(w, c.list, c.max)
		w.Flush()
		r := bitio.NewReader(w.Bytes())
		got := DecodeList(r, c.max, len(c.list))
		if len(c.list) == 0 {
			if len(got) != 0 {
				t.Fatalf("DecodeList(empty) = %v, want empty", got)
			}
			continue
		}
		if !reflect.DeepEqual(got, c.list) {
			t.Fatalf("list round trip = %v, want %v", got, c.list)
		}
	}
}
