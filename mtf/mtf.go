// Package mtf implements MTFCoder: a move-to-front transform over the
// full 256-byte alphabet, combined with an optional RLE(3,255) front end
// and a Huffman or arithmetic back end, in five variants selected by a
// one-byte tag:
//
//	F  no RLE,  Huffman backend
//	f  RLE,     Huffman backend
//	A  no RLE,  arithmetic backend
//	a  RLE,     arithmetic backend
//	0  no RLE,  Huffman backend, zero-run coalescing on the rank stream
package mtf

import (
	"github.com/jkokkala/bwtc-go/arith"
	"github.com/jkokkala/bwtc-go/bitio"
	"github.com/jkokkala/bwtc-go/gamma"
	"github.com/jkokkala/bwtc-go/huffman"
	"github.com/jkokkala/bwtc-go/internal"
	"github.com/jkokkala/bwtc-go/rle"
)

// Variant is the one-byte coder tag selecting an MTF configuration.
type Variant byte

const (
	VariantF Variant = 'F'
	Variantf Variant = 'f'
	VariantA Variant = 'A'
	Varianta Variant = 'a'
	Variant0 Variant = '0'
)

func usesRLE(v Variant) bool {
	return v == Variantf || v == Varianta
}

func usesArith(v Variant) bool {
	return v == VariantA || v == Varianta
}

var rleParams = rle.Params{MinRun: 3, MaxVal: 255}

// ranker is the MTF rank list: a permutation of 0..255 initialized to
// the identity and updated by moving the most recently seen byte to the
// front.
type ranker struct {
	dict [256]byte
}

func newRanker() *ranker {
	var rk ranker
	for i := range rk.dict {
		rk.dict[i] = byte(i)
	}
	return &rk
}

func (rk *ranker) encode(vals []byte) []byte {
	out := make([]byte, len(vals))
	for i, v := range vals {
		idx := 0
		for rk.dict[idx] != v {
			idx++
		}
		out[i] = byte(idx)
		copy(rk.dict[1:idx+1], rk.dict[0:idx])
		rk.dict[0] = v
	}
	return out
}

func (rk *ranker) decode(ranks []byte) []byte {
	out := make([]byte, len(ranks))
	for i, idx := range ranks {
		v := rk.dict[idx]
		copy(rk.dict[1:int(idx)+1], rk.dict[0:idx])
		rk.dict[0] = v
		out[i] = v
	}
	return out
}

// coalesceZeroRuns collapses each maximal run of rank-0 entries into a
// single 0 plus a run-length entry, for variant 0.
func coalesceZeroRuns(ranks []byte) (coalesced []byte, runs []uint64) {
	i := 0
	for i < len(ranks) {
		if ranks[i] == 0 {
			j := i
			for j < len(ranks) && ranks[j] == 0 {
				j++
			}
			coalesced = append(coalesced, 0)
			runs = append(runs, uint64(j-i))
			i = j
		} else {
			coalesced = append(coalesced, ranks[i])
			i++
		}
	}
	return coalesced, runs
}

func expandZeroRuns(coalesced []byte, runs []uint64) []byte {
	out := make([]byte, 0, len(coalesced))
	ri := 0
	for _, c := range coalesced {
		out = append(out, c)
		if c == 0 {
			n := runs[ri]
			ri++
			for k := uint64(1); k < n; k++ {
				out = append(out, 0)
			}
		}
	}
	return out
}

func countZeros(b []byte) int {
	n := 0
	for _, v := range b {
		if v == 0 {
			n++
		}
	}
	return n
}

// EncodeBlock MTF-codes block under the given variant.
func EncodeBlock(w *bitio.Writer, block []byte, v Variant) (err error) {
	defer internal.Recover(&err)

	w.Flush()
	lenPos := w.ReserveBytes(6)

	data := block
	if usesRLE(v) {
		d, runs := rle.Encode(block, rleParams)
		data = d
		rle.WriteRuns(w, runs)
	}

	rk := newRanker()
	ranks := rk.encode(data)

	var zeroRuns []uint64
	if v == Variant0 {
		ranks, zeroRuns = coalesceZeroRuns(ranks)
	}

	if usesArith(v) {
		err = arith.EncodeBlock(w, ranks)
	} else {
		err = huffman.EncodeBlock(w, ranks)
	}
	if err != nil {
		return err
	}

	if v == Variant0 {
		gamma.EncodeVec(w, zeroRuns, 0)
	}

	w.Flush()
	total := w.Pos() - (lenPos + 6)
	w.Write48(uint64(total), lenPos)
	return nil
}

// DecodeBlock reverses EncodeBlock.
func DecodeBlock(r *bitio.Reader, v Variant) (block []byte, err error) {
	defer internal.Recover(&err)

	_ = r.Read48() // reserved block byte-length, used only for stream skip-ahead

	var runs []uint64
	if usesRLE(v) {
		runs = rle.ReadRuns(r)
	}

	var ranks []byte
	if usesArith(v) {
		ranks, err = arith.DecodeBlock(r)
	} else {
		ranks, err = huffman.DecodeBlock(r)
	}
	if err != nil {
		return nil, err
	}

	if v == Variant0 {
		n := countZeros(ranks)
		zeroRuns := gamma.DecodeVec(r, n, 0)
		ranks = expandZeroRuns(ranks, zeroRuns)
	}

	rk := newRanker()
	data := rk.decode(ranks)

	if usesRLE(v) {
		data = rle.Decode(data, runs, rleParams)
	}
	return data, nil
}
