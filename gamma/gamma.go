// Package gamma implements the UniversalIntCodes primitive: Elias gamma
// and delta codes over a vector whose length is supplied externally (the
// codes themselves are not self-delimiting), with an optional additive
// offset so that a zero value can be represented.
package gamma

import (
	"github.com/jkokkala/bwtc-go/bitio"
	"github.com/jkokkala/bwtc-go/internal"
)

func logFloor(n uint64) uint {
	b := uint(0)
	for n > 1 {
		n >>= 1
		b++
	}
	return b
}

func encodeGamma(w *bitio.Writer, n uint64) {
	if n == 0 {
		internal.Raise(internal.InternalInvariant, "gamma code requires a positive value")
	}
	nb := logFloor(n)
	for i := uint(0); i < nb; i++ {
		w.WriteBit(0)
	}
	w.WriteBit(1)
	w.WriteBits(n, nb)
}

func decodeGamma(r *bitio.Reader) uint64 {
	zeros := uint(0)
	for r.ReadBit() == 0 {
		zeros++
		if zeros > 63 {
			internal.Raise(internal.MalformedHeader, "gamma code prefix exceeds 63 zero bits")
		}
	}
	low := r.ReadBits(zeros)
	return (uint64(1) << zeros) | low
}

func encodeDelta(w *bitio.Writer, n uint64) {
	if n == 0 {
		internal.Raise(internal.InternalInvariant, "delta code requires a positive value")
	}
	nb := logFloor(n)
	encodeGamma(w, uint64(nb+1))
	w.WriteBits(n, nb)
}

func decodeDelta(r *bitio.Reader) uint64 {
	nb1 := decodeGamma(r)
	if nb1 == 0 {
		internal.Raise(internal.MalformedHeader, "delta code exponent field is zero")
	}
	nb := uint(nb1 - 1)
	low := r.ReadBits(nb)
	return (uint64(1) << nb) | low
}

// EncodeVec gamma-codes each of vals, after adding offset, as a
// byte-aligned, self-contained run: the writer is flushed to a byte
// boundary before the first code and after the last.
func EncodeVec(w *bitio.Writer, vals []uint64, offset uint64) {
	w.Flush()
	for _, v := range vals {
		encodeGamma(w, v+offset)
	}
	w.Flush()
}

// DecodeVec reads n gamma codes and subtracts offset from each,
// realigning to a byte boundary before and after, mirroring EncodeVec.
func DecodeVec(r *bitio.Reader, n int, offset uint64) []uint64 {
	r.FlushBuffer()
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		v := decodeGamma(r)
		if v < offset {
			internal.Raise(internal.MalformedHeader, "gamma-coded value underflows offset")
		}
		out[i] = v - offset
	}
	r.FlushBuffer()
	return out
}

// EncodeDeltaVec delta-codes each of vals, after adding offset, as a
// byte-aligned run.
func EncodeDeltaVec(w *bitio.Writer, vals []uint64, offset uint64) {
	w.Flush()
	for _, v := range vals {
		encodeDelta(w, v+offset)
	}
	w.Flush()
}

// DecodeDeltaVec reads n delta codes and subtracts offset from each.
func DecodeDeltaVec(r *bitio.Reader, n int, offset uint64) []uint64 {
	r.FlushBuffer()
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		v := decodeDelta(r)
		if v < offset {
			internal.Raise(internal.MalformedHeader, "delta-coded value underflows offset")
		}
		out[i] = v - offset
	}
	r.FlushBuffer()
	return out
}
