// Package interpcode implements InterpolativeIntCode: the phase-in
// (truncated binary) code for a value known to lie in a range of known
// size, and binary interpolative coding of a sorted list of integers
// built on top of it. The interpolative entropy coder (package
// interpolative) reuses the phase-in primitive directly; this package
// additionally exposes the whole-list code as a standalone utility.
package interpcode

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

// EncodePhaseIn writes n, known to lie in [0, r], using floor(log2 r)+1
// bits, or the minimal number of bits required (never more than one bit
// of waste relative to the entropy bound for the range).
func EncodePhaseIn(w *bitio.Writer, n, r uint64) {
	if r == 0 {
		if n != 0 {
			internal.Raise(internal.InternalInvariant, "phase-in value out of range")
		}
		return
	}
	if n > r {
		internal.Raise(internal.InternalInvariant, "phase-in value out of range")
	}
	b := logFloor(r) + 1
	wast := (uint64(1) << b) - (r + 1)
	longer := r - wast + 1
	offset := longer / 2
	m := (n + r + 1 - offset) % (r + 1)
	if m < wast {
		w.WriteBits(m, b-1)
		return
	}
	d := m - wast
	t := (d/2+wast)*2 + d%2
	w.WriteBits(t, b)
}

// DecodePhaseIn reads a value written by EncodePhaseIn for range [0, r].
func DecodePhaseIn(r *bitio.Reader, rr uint64) uint64 {
	if rr == 0 {
		return 0
	}
	b := logFloor(rr) + 1
	wast := (uint64(1) << b) - (rr + 1)
	longer := rr - wast + 1
	offset := longer / 2
	p := r.ReadBits(b - 1)
	var m uint64
	if p < wast {
		m = p
	} else {
		e := uint64(r.ReadBit())
		d := (p-wast)*2 + e
		m = d + wast
	}
	return (m + offset) % (rr + 1)
}

// EncodeList binary-interpolatively codes a sorted, strictly increasing
// list of n values each known to lie in [0, maxValue].
func EncodeList(w *bitio.Writer, list []int64, maxValue int64) {
	encodeRange(w, list, 0, len(list)-1, 0, maxValue)
}

func encodeRange(w *bitio.Writer, list []int64, begin, end int, lo, hi int64) {
	if begin > end {
		return
	}
	if int64(end-begin) == hi-lo {
		return
	}
	if begin == end {
		EncodePhaseIn(w, uint64(list[begin]-lo), uint64(hi-lo))
		return
	}
	h := (end - begin) / 2
	half := begin + h
	subHi := hi - int64(end-half)
	EncodePhaseIn(w, uint64(list[half]-(lo+int64(h))), uint64(subHi-(lo+int64(h))))
	if half > begin {
		encodeRange(w, list, begin, half-1, lo, list[half]-1)
	}
	if half < end {
		encodeRange(w, list, half+1, end, list[half]+1, hi)
	}
}

// DecodeList reverses EncodeList given the number of values n and the
// same maxValue.
func DecodeList(r *bitio.Reader, maxValue int64, n int) []int64 {
	return decodeRange(r, 0, maxValue, n)
}

func decodeRange(r *bitio.Reader, lo, hi int64, n int) []int64 {
	if n == 0 {
		return nil
	}
	if int64(n) == hi-lo+1 {
		out := make([]int64, n)
		for i := range out {
			out[i] = lo + int64(i)
		}
		return out
	}
	h := (n - 1) / 2
	rem := n - h - 1
	subLo := lo + int64(h)
	subHi := hi - int64(rem)
	mid := subLo + int64(DecodePhaseIn(r, uint64(subHi-subLo)))
	left := decodeRange(r, lo, mid-1, h)
	right := decodeRange(r, mid+1, hi, rem)
	out := make([]int64, 0, n)
	out = append(out, left...)
	out = append(out, mid)
	out = append(out, right...)
	return out
}
