package bwt

import (
	"bytes"
	"math/rand"
	"testing"
)

func roundTrip(t *testing.T, data []byte) {
	t.Helper()
	buf := append([]byte(nil), data...)
	ptr := Encode(buf)
	Decode(buf, ptr)
	if !bytes.Equal(buf, data) {
		t.Fatalf("BWT round trip = %q, want %q", buf, data)
	}
}

func TestRoundTripEmpty(t *testing.T) {
	roundTrip(t, nil)
}

func TestRoundTripSingleByte(t *testing.T) {
	roundTrip(t, []byte{'a'})
}

func TestRoundTripRepeatedByte(t *testing.T) {
	roundTrip(t, bytes.Repeat([]byte{'a'}, 100))
}

func TestRoundTripBanana(t *testing.T) {
	roundTrip(t, []byte("banana"))
}

func TestRoundTripText(t *testing.T) {
	roundTrip(t, []byte("the quick brown fox jumps over the lazy dog"))
}

func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	data := make([]byte, 10000)
	for i := range data {
		data[i] = byte(rng.Intn(256))
	}
	roundTrip(t, data)
}

func TestEncodeEmptyReturnsSentinelIndex(t *testing.T) {
	if ptr := Encode(nil); ptr != -1 {
		t.Fatalf("Encode(nil) = %d, want -1", ptr)
	}
}
