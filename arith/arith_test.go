package arith

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/jkokkala/bwtc-go/bitio"
)

func roundTrip(t *testing.T, data []byte) {
	t.Helper()
	w := bitio.NewWriter()
	if err := EncodeBlock(w, data); err != nil {
		t.Fatalf("EncodeBlock(%d bytes) error: %v", len(data), err)
	}
	r := bitio.NewReader(w.Bytes())
	got, err := DecodeBlock(r)
	if err != nil {
		t.Fatalf("DecodeBlock error: %v", err)
	}
	if !bytes.Equal(got, data) && !(len(got) == 0 && len(data) == 0) {
		t.Fatalf("round trip mismatch: got %q, want %q", got, data)
	}
}

func TestRoundTripEmpty(t *testing.T) {
	roundTrip(t, nil)
}

func TestRoundTripSingleSymbol(t *testing.T) {
	roundTrip(t, bytes.Repeat([]byte{'q'}, 200))
	roundTrip(t, []byte{'z'})
}

func TestRoundTripSkewedFrequencies(t *testing.T) {
	data := append(bytes.Repeat([]byte{'a'}, 5000), []byte("the quick brown fox jumps over the lazy dog")...)
	roundTrip(t, data)
}

func TestRoundTripAllSymbolsOnce(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	roundTrip(t, data)
}

func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	data := make([]byte, 20000)
	for i := range data {
		data[i] = byte(rng.Intn(256))
	}
	roundTrip(t, data)
}

func TestRoundTripRareSymbol(t *testing.T) {
	data := bytes.Repeat([]byte{'a'}, 1<<16)
	data = append(data, 'b')
	roundTrip(t, data)
}
