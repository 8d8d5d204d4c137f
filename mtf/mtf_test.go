package mtf

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/jkokkala/bwtc-go/bitio"
)

func roundTrip(t *testing.T, data []byte, v Variant) {
	t.Helper()
	w := bitio.NewWriter()
	if err := EncodeBlock(w, data, v); err != nil {
		t.Fatalf("EncodeBlock(variant=%c) error: %v", v, err)
	}
	r := bitio.NewReader(w.Bytes())
	got, err := DecodeBlock(r, v)
	if err != nil {
		t.Fatalf("DecodeBlock(variant=%c) error: %v", v, err)
	}
	if !bytes.Equal(got, data) && !(len(got) == 0 && len(data) == 0) {
		t.Fatalf("variant %c round trip mismatch: got %q, want %q", v, got, data)
	}
}

func allVariants() []Variant {
	return []Variant{VariantF, Variantf, VariantA, Varianta, Variant0}
}

func TestRankerRoundTrip(t *testing.T) {
	rk := newRanker()
	in := []byte("banana bandana")
	ranks := rk.encode(in)

	rk2 := newRanker()
	out := rk2.decode(ranks)
	if !bytes.Equal(in, out) {
		t.Fatalf("ranker round trip = %q, want %q", out, in)
	}
}

func TestZeroRunCoalesceRoundTrip(t *testing.T) {
	ranks := []byte{0, 0, 0, 1, 2, 0, 0, 3, 0}
	coalesced, runs := coalesceZeroRuns(ranks)
	got := expandZeroRuns(coalesced, runs)
	if !bytes.Equal(got, ranks) {
		t.Fatalf("zero-run coalesce round trip = %v, want %v", got, ranks)
	}
}

func TestRoundTripAllVariants(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, the quick brown fox")
	for _, v := range allVariants() {
		roundTrip(t, data, v)
	}
}

func TestRoundTripEmptyAllVariants(t *testing.T) {
	for _, v := range allVariants() {
		roundTrip(t, nil, v)
	}
}

func TestRoundTripLongRunsAllVariants(t *testing.T) {
	data := append(bytes.Repeat([]byte{'a'}, 500), bytes.Repeat([]byte{'b'}, 300)...)
	for _, v := range allVariants() {
		roundTrip(t, data, v)
	}
}

func TestRoundTripRandomAllVariants(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	data := make([]byte, 3000)
	for i := range data {
		data[i] = byte(rng.Intn(200))
	}
	for _, v := range allVariants() {
		roundTrip(t, data, v)
	}
}
