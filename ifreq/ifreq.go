// Package ifreq implements InverseFrequencyCoder: an RLE(3,255)
// front end followed by a per-symbol gap-sequence coder. Symbols are
// visited in ascending global-frequency order; for each symbol but the
// most frequent one, the positions it occupies among the not-yet-decided
// positions are transmitted as a gap sequence (first occurrence's gap
// from the start, then each subsequent gap from the previous
// occurrence). The most frequent symbol is never transmitted — whatever
// positions remain unassigned take it.
package ifreq

import (
	"sort"

	"github.com/jkokkala/bwtc-go/bitio"
	"github.com/jkokkala/bwtc-go/gamma"
	"github.com/jkokkala/bwtc-go/internal"
	"github.com/jkokkala/bwtc-go/rle"
)

var rleParams = rle.Params{MinRun: 3, MaxVal: 255}

func stableOrderByFreqAscending(freq []uint64) []int {
	order := make([]int, 256)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return freq[order[i]] < freq[order[j]] })
	return order
}

// gapsAndMark scans d for unmarked occurrences of c, returning the gap
// sequence and the positions to mark once the scan is complete (marking
// happens only after the full scan so that later occurrences of the same
// symbol within this pass are still counted correctly).
func gapsAndMark(d []byte, marked []bool, c byte) (occ []uint64, positions []int) {
	count := uint64(0)
	for i, b := range d {
		if marked[i] {
			continue
		}
		if b == c {
			occ = append(occ, count)
			count = 0
			positions = append(positions, i)
		} else {
			count++
		}
	}
	return occ, positions
}

func assignGaps(occ []uint64, marked []bool, d []byte, c byte) {
	pos := 0
	for _, gap := range occ {
		skipped := uint64(0)
		for skipped < gap {
			if !marked[pos] {
				skipped++
			}
			pos++
		}
		for marked[pos] {
			pos++
		}
		d[pos] = c
		marked[pos] = true
		pos++
	}
}

// EncodeBlock inverse-frequency-codes block.
func EncodeBlock(w *bitio.Writer, block []byte) (err error) {
	defer internal.Recover(&err)

	d, runs := rle.Encode(block, rleParams)
	rle.WriteRuns(w, runs)

	var freq [256]uint64
	for _, b := range d {
		freq[b]++
	}
	fvals := make([]uint64, 256)
	for i, v := range freq {
		fvals[i] = v
	}
	gamma.EncodeVec(w, fvals, 1)

	if len(d) == 0 {
		return nil
	}

	order := stableOrderByFreqAscending(fvals)
	marked := make([]bool, len(d))
	for k := 0; k < 255; k++ {
		c := byte(order[k])
		if fvals[c] == 0 {
			continue
		}
		occ, positions := gapsAndMark(d, marked, c)
		gamma.EncodeVec(w, occ, 1)
		for _, p := range positions {
			marked[p] = true
		}
	}
	w.Flush()
	return nil
}

// DecodeBlock reverses EncodeBlock.
func DecodeBlock(r *bitio.Reader) (block []byte, err error) {
	defer internal.Recover(&err)

	runs := rle.ReadRuns(r)
	fvals := gamma.DecodeVec(r, 256, 1)

	var total uint64
	for _, f := range fvals {
		total += f
	}

	d := make([]byte, total)
	if total > 0 {
		marked := make([]bool, total)
		order := stableOrderByFreqAscending(fvals)
		for k := 0; k < 255; k++ {
			c := byte(order[k])
			if fvals[c] == 0 {
				continue
			}
			occ := gamma.DecodeVec(r, int(fvals[c]), 1)
			assignGaps(occ, marked, d, c)
		}
		last := byte(order[255])
		for i := range d {
			if !marked[i] {
				d[i] = last
			}
		}
		r.FlushBuffer()
	}

	data := rle.Decode(d, runs, rleParams)
	return data, nil
}
