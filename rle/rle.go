// Package rle implements the RunLengthTransform primitive: a
// parametrizable run-length collapse that emits at most MinRun literal
// copies of a run character (MinRun-1 copies untouched, the MinRun-th
// copy still written to the literal stream) and records the remainder of
// qualifying runs in a side vector of run lengths.
//
// Only runs of a byte value <= MaxVal qualify; this lets a caller
// restrict the transform to, say, zero-byte runs only (MinRun=1,
// MaxVal=0) instead of every byte value (MinRun=3, MaxVal=255).
package rle

import (
	"github.com/jkokkala/bwtc-go/bitio"
	"github.com/jkokkala/bwtc-go/gamma"
	"github.com/jkokkala/bwtc-go/internal"
)

// Params configures the transform.
type Params struct {
	MinRun int
	MaxVal byte
}

// Encode splits b into a literal stream d and a run-length vector runs.
func Encode(b []byte, p Params) (d []byte, runs []uint64) {
	if len(b) == 0 {
		return nil, nil
	}
	d = make([]byte, 0, len(b))
	curChar := b[0]
	curLen := 0
	flushRun := func() {
		if curLen >= p.MinRun && curChar <= p.MaxVal {
			runs = append(runs, uint64(curLen-p.MinRun+1))
		}
	}
	for i, c := range b {
		if i == 0 || c != curChar {
			if i != 0 {
				flushRun()
			}
			curChar = c
			curLen = 1
		} else {
			curLen++
		}
		if curLen > p.MinRun && c <= p.MaxVal {
			// Run continues past MinRun literal copies; suppressed from d.
		} else {
			d = append(d, c)
		}
	}
	flushRun()
	return d, runs
}

// Decode reverses Encode given the same Params. Like Encode, it returns
// nil for an empty block.
func Decode(d []byte, runs []uint64, p Params) []byte {
	if len(d) == 0 && len(runs) == 0 {
		return nil
	}
	out := make([]byte, 0, len(d))
	var prev byte
	curRun := 0
	runIdx := 0
	for j, temp := range d {
		out = append(out, temp)
		if j != 0 && temp == prev {
			curRun++
		} else {
			prev = temp
			curRun = 1
		}
		if curRun >= p.MinRun && temp <= p.MaxVal {
			if runIdx >= len(runs) {
				internal.Raise(internal.InconsistentRLE, "run vector exhausted before literal stream")
			}
			length := runs[runIdx]
			runIdx++
			if length == 0 {
				internal.Raise(internal.InconsistentRLE, "zero-length run entry")
			}
			for k := uint64(0); k < length-1; k++ {
				out = append(out, temp)
			}
		}
	}
	if runIdx != len(runs) {
		internal.Raise(internal.InconsistentRLE, "run vector has unused entries")
	}
	return out
}

// WriteRuns writes a run-length vector as [48-bit |R|]·[gamma(R)], the
// wire shape shared by the MTF, interpolative and inverse-frequency
// coders whenever RLE is in effect.
func WriteRuns(w *bitio.Writer, runs []uint64) {
	w.Flush()
	pos := w.ReserveBytes(6)
	w.Write48(uint64(len(runs)), pos)
	gamma.EncodeVec(w, runs, 0)
}

// ReadRuns reads a run-length vector written by WriteRuns.
func ReadRuns(r *bitio.Reader) []uint64 {
	n := r.Read48()
	return gamma.DecodeVec(r, int(n), 0)
}
