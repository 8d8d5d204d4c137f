package rle

import (
	"reflect"
	"testing"

	"github.com/jkokkala/bwtc-go/bitio"
)

func roundTrip(t *testing.T, b []byte, p Params) {
	t.Helper()
	d, runs := Encode(b, p)
	got := Decode(d, runs, p)
	if !reflect.DeepEqual(got, b) {
		t.Fatalf("Encode/Decode(%v, %+v) round trip = %v, want %v", b, p, got, b)
	}
}

func TestRoundTrip(t *testing.T) {
	p3 := Params{MinRun: 3, MaxVal: 255}
	cases := [][]byte{
		nil,
		{1},
		{1, 1},
		{1, 1, 1},
		{1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2},
		{5, 5, 5, 5, 5, 6, 7, 7, 7},
	}
	for _, c := range cases {
		roundTrip(t, c, p3)
	}
}

func TestZeroRunOnlyMode(t *testing.T) {
	p := Params{MinRun: 1, MaxVal: 0}
	roundTrip(t, []byte{0, 1, 0, 1, 0}, p)
	roundTrip(t, []byte{0, 0, 0, 0, 1, 1, 1}, p)
}

func TestMinRunBoundary(t *testing.T) {
	p := Params{MinRun: 3, MaxVal: 255}
	// Exactly minrun-1: no run entry at all.
	d, runs := Encode([]byte{9, 9}, p)
	if len(runs) != 0 || !reflect.DeepEqual(d, []byte{9, 9}) {
		t.Fatalf("d=%v runs=%v, want d=[9 9] runs=[]", d, runs)
	}
	// Exactly minrun: one run entry of value 1.
	d, runs = Encode([]byte{9, 9, 9}, p)
	if !reflect.DeepEqual(runs, []uint64{1}) || !reflect.DeepEqual(d, []byte{9, 9, 9}) {
		t.Fatalf("d=%v runs=%v, want d=[9 9 9] runs=[1]", d, runs)
	}
}

func TestInconsistentRLERaises(t *testing.T) {
	p := Params{MinRun: 3, MaxVal: 255}
	defer func() {
		err, ok := recover().(error)
		if !ok || err == nil {
			t.Fatal("expected a panic for an inconsistent run vector")
		}
	}()
	Decode([]byte{9, 9, 9}, nil, p)
}

func TestWriteReadRuns(t *testing.T) {
	runs := []uint64{1, 2, 100, 3, 5}
	w := bitio.NewWriter()
	WriteRuns(w, runs)
	w.Flush()

	r := bitio.NewReader(w.Bytes())
	got := ReadRuns(r)
	if !reflect.DeepEqual(got, runs) {
		t.Fatalf("WriteRuns/ReadRuns round trip = %v, want %v", got, runs)
	}
}
