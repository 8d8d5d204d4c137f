// Package interpolative implements InterpolativeCoder: a recursive
// frequency-split coder. Each node transmits, via phase-in codes, how
// many occurrences of each non-dominant symbol fall in the left half of
// its range, then recurses on both halves with their own (cleaned)
// symbol tables. A two-level prefix-sum cache (FreqMem) answers the
// "how many of each symbol in this subrange" queries the encoder needs
// without rescanning the block for every node.
package interpolative

import (
	"github.com/jkokkala/bwtc-go/bitio"
	"github.com/jkokkala/bwtc-go/gamma"
	"github.com/jkokkala/bwtc-go/internal"
	"github.com/jkokkala/bwtc-go/interpcode"
	"github.com/jkokkala/bwtc-go/rle"
)

// rleParams is the restricted RLE mode available to this coder: only
// zero-byte runs collapse, since interpolative coding is typically fed
// BWT output where zero runs dominate.
var rleParams = rle.Params{MinRun: 1, MaxVal: 0}

// clean drops every (alphabet[i], freqs[i]) pair with freqs[i] == 0,
// preserving the relative order of the remaining entries.
func clean(alphabet []byte, freqs []uint64) ([]byte, []uint64) {
	outA := make([]byte, 0, len(alphabet))
	outF := make([]uint64, 0, len(freqs))
	for i, f := range freqs {
		if f > 0 {
			outA = append(outA, alphabet[i])
			outF = append(outF, f)
		}
	}
	return outA, outF
}

func cleanFull(freqs []uint64) ([]byte, []uint64) {
	full := make([]byte, 256)
	for i := range full {
		full[i] = byte(i)
	}
	return clean(full, freqs)
}

func argmax(freqs []uint64) int {
	m := 0
	for i, f := range freqs {
		if f > freqs[m] {
			m = i
		}
	}
	return m
}

func minu64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// freqMem is the two-level prefix-sum cache over data, answering "how
// many occurrences of each byte in alphabet fall in [a,b]" queries.
type freqMem struct {
	data []byte
	size int

	bigInterval int
	big         []uint32 // (size/bigInterval+1) rows of 256

	smallInterval int
	smallBegin    int
	smallEnd      int
	smallAlphabet []byte
	smallBytemap  [256]int
	small         []uint32
}

func sameAlphabet(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newFreqMem(data []byte) *freqMem {
	size := len(data)
	bigInterval := 1
	for (size/bigInterval)*256 > 2000000 {
		bigInterval <<= 1
	}
	bigRows := size/bigInterval + 1
	fm := &freqMem{data: data, size: size, bigInterval: bigInterval, smallInterval: 16}
	fm.big = make([]uint32, bigRows*256)
	for i := 0; i <= size; i++ {
		if i > 0 && i%bigInterval == 0 {
			row := i / bigInterval
			copy(fm.big[row*256:row*256+256], fm.big[(row-1)*256:(row-1)*256+256])
		}
		if i < size {
			fm.big[(i/bigInterval)*256+int(data[i])]++
		}
	}
	return fm
}

// bruteCount exactly counts occurrences of each alphabet byte in
// data[a:b+1] by direct scan, used both as the base case of each cache
// level and to cover the unaligned partial interval at either end of a
// query that a cache level's table can't answer directly.
func (fm *freqMem) bruteCount(a, b int, alphabet []byte) []uint64 {
	out := make([]uint64, len(alphabet))
	idx := make(map[byte]int, len(alphabet))
	for i, by := range alphabet {
		idx[by] = i
	}
	for i := a; i <= b; i++ {
		out[idx[fm.data[i]]]++
	}
	return out
}

// search answers how many occurrences of each alphabet byte fall in
// data[a:b+1]. big[row] holds the exact prefix count through byte
// (row+1)*bigInterval-1, so only a query aligned to bigInterval
// boundaries at both ends can be answered by a single table subtraction;
// this splits an arbitrary query into an aligned middle range (answered
// from big) plus the unaligned partial interval at each end (answered by
// smallSearch, itself exact for arbitrary bounds).
func (fm *freqMem) search(a, b int, alphabet []byte) []uint64 {
	length := b - a + 1
	if length < fm.bigInterval {
		return fm.smallSearch(a, b, alphabet)
	}

	alignedA := a
	if r := alignedA % fm.bigInterval; r != 0 {
		alignedA += fm.bigInterval - r
	}
	bb := b + 1
	alignedB := (bb / fm.bigInterval) * fm.bigInterval

	out := make([]uint64, len(alphabet))
	if a < alignedA {
		head := fm.smallSearch(a, alignedA-1, alphabet)
		for i := range out {
			out[i] += head[i]
		}
	}
	if alignedB < bb {
		tail := fm.smallSearch(alignedB, bb-1, alphabet)
		for i := range out {
			out[i] += tail[i]
		}
	}
	if alignedA < alignedB {
		right := alignedB/fm.bigInterval - 1
		left := alignedA/fm.bigInterval - 1
		for i, by := range alphabet {
			v := uint64(fm.big[right*256+int(by)])
			if left >= 0 {
				v -= uint64(fm.big[left*256+int(by)])
			}
			out[i] += v
		}
	}
	return out
}

// smallSearch mirrors search one level down: small[row] is exact through
// (row+1)*smallInterval-1 positions past smallBegin, so the same
// aligned-middle-plus-brute-force-ends split keeps it exact for any
// [a,b] within (or overlapping) the cached small window.
func (fm *freqMem) smallSearch(a, b int, alphabet []byte) []uint64 {
	if b-a+1 < fm.smallInterval {
		return fm.bruteCount(a, b, alphabet)
	}
	if !(a >= fm.smallBegin && b <= fm.smallEnd && sameAlphabet(fm.smallAlphabet, alphabet)) {
		fm.updateSmall(a, alphabet)
	}
	n := len(fm.smallAlphabet)

	ra := a - fm.smallBegin
	rb1 := b + 1 - fm.smallBegin
	alignedA := ra
	if r := alignedA % fm.smallInterval; r != 0 {
		alignedA += fm.smallInterval - r
	}
	alignedB := (rb1 / fm.smallInterval) * fm.smallInterval

	out := make([]uint64, len(alphabet))
	if ra < alignedA {
		head := fm.bruteCount(fm.smallBegin+ra, fm.smallBegin+alignedA-1, alphabet)
		for i := range out {
			out[i] += head[i]
		}
	}
	if alignedB < rb1 {
		tail := fm.bruteCount(fm.smallBegin+alignedB, fm.smallBegin+rb1-1, alphabet)
		for i := range out {
			out[i] += tail[i]
		}
	}
	if alignedA < alignedB {
		right := alignedB/fm.smallInterval - 1
		left := alignedA/fm.smallInterval - 1
		for i, by := range alphabet {
			v := uint64(fm.small[right*n+fm.smallBytemap[by]])
			if left >= 0 {
				v -= uint64(fm.small[left*n+fm.smallBytemap[by]])
			}
			out[i] += v
		}
	}
	return out
}

func (fm *freqMem) updateSmall(a int, alphabet []byte) {
	b := a + fm.bigInterval - 1
	if b >= fm.size {
		b = fm.size - 1
	}
	n := len(alphabet)
	rows := fm.bigInterval/fm.smallInterval + 2
	fm.small = make([]uint32, rows*n)
	fm.smallAlphabet = alphabet
	for i, by := range alphabet {
		fm.smallBytemap[by] = i
	}
	fm.smallBegin, fm.smallEnd = a, b
	for i := 0; i <= b-a; i++ {
		if i > 0 && i%fm.smallInterval == 0 {
			row := i / fm.smallInterval
			copy(fm.small[row*n:row*n+n], fm.small[(row-1)*n:(row-1)*n+n])
		}
		fm.small[(i/fm.smallInterval)*n+fm.smallBytemap[fm.data[i+a]]]++
	}
}

type encCtx struct {
	w    *bitio.Writer
	fm   *freqMem
	data []byte
}

// output transmits, for every alphabet entry but the most frequent one,
// how many of its occurrences fall in the left half, via a phase-in code
// ranged against the remaining room in that half.
func (c *encCtx) output(l []uint64, parent []uint64, half int) {
	m := argmax(parent)
	remaining := uint64(half)
	for i := range parent {
		if i == m {
			continue
		}
		if remaining == 0 {
			continue
		}
		r := minu64(remaining, parent[i])
		interpcode.EncodePhaseIn(c.w, l[i], r)
		remaining -= l[i]
	}
}

func (c *encCtx) encodeNode(alphabet []byte, freqs []uint64, idx, size int) {
	if size == 0 {
		internal.Raise(internal.InternalInvariant, "zero-size interpolative node")
	}
	var sum uint64
	for _, f := range freqs {
		sum += f
	}
	if sum != uint64(size) {
		internal.Raise(internal.InternalInvariant, "interpolative frequency sum mismatch")
	}
	if len(alphabet) <= 1 || size == 1 {
		return
	}
	if size == 2 {
		var bit byte
		if c.data[idx] == alphabet[1] {
			bit = 1
		}
		c.w.WriteBit(bit)
		return
	}

	half := size / 2
	l := c.fm.search(idx, idx+half-1, alphabet)
	c.output(l, freqs, half)

	leftAlphabet, leftFreqs := clean(alphabet, l)
	if len(leftAlphabet) > 0 {
		c.encodeNode(leftAlphabet, leftFreqs, idx, half)
	}

	rightFreqs := make([]uint64, len(freqs))
	for i := range freqs {
		rightFreqs[i] = freqs[i] - l[i]
	}
	rightAlphabet, rightFreqs2 := clean(alphabet, rightFreqs)
	if len(rightAlphabet) > 0 {
		c.encodeNode(rightAlphabet, rightFreqs2, idx+half, size-half)
	}
}

// EncodeBlock interpolatively codes block.
func EncodeBlock(w *bitio.Writer, block []byte, useRLE bool) (err error) {
	defer internal.Recover(&err)

	data := block
	if useRLE {
		d, runs := rle.Encode(block, rleParams)
		data = d
		rle.WriteRuns(w, runs)
	}

	var freq [256]uint64
	for _, b := range data {
		freq[b]++
	}
	fvals := make([]uint64, 256)
	for i, v := range freq {
		fvals[i] = v
	}
	gamma.EncodeVec(w, fvals, 1)

	if len(data) > 0 {
		alphabet, freqs := cleanFull(fvals)
		fm := newFreqMem(data)
		ctx := &encCtx{w: w, fm: fm, data: data}
		ctx.encodeNode(alphabet, freqs, 0, len(data))
	}
	w.Flush()
	return nil
}

type decCtx struct {
	r   *bitio.Reader
	out []byte
}

func (c *decCtx) input(parent []uint64, half int) []uint64 {
	l := make([]uint64, len(parent))
	m := argmax(parent)
	remaining := uint64(half)
	for i := range parent {
		if i == m {
			continue
		}
		if remaining == 0 {
			l[i] = 0
			continue
		}
		r := minu64(remaining, parent[i])
		v := interpcode.DecodePhaseIn(c.r, r)
		l[i] = v
		remaining -= v
	}
	var others uint64
	for i := range l {
		if i != m {
			others += l[i]
		}
	}
	l[m] = uint64(half) - others
	return l
}

func (c *decCtx) decodeNode(alphabet []byte, freqs []uint64, idx, size int) {
	if size == 0 {
		internal.Raise(internal.InternalInvariant, "zero-size interpolative node")
	}
	var sum uint64
	for _, f := range freqs {
		sum += f
	}
	if sum != uint64(size) {
		internal.Raise(internal.InternalInvariant, "interpolative frequency sum mismatch")
	}
	if len(alphabet) <= 1 || size == 1 {
		sym := alphabet[0]
		for i := 0; i < size; i++ {
			c.out[idx+i] = sym
		}
		return
	}
	if size == 2 {
		bit := c.r.ReadBit()
		if bit == 0 {
			c.out[idx] = alphabet[0]
			c.out[idx+1] = alphabet[1]
		} else {
			c.out[idx] = alphabet[1]
			c.out[idx+1] = alphabet[0]
		}
		return
	}

	half := size / 2
	l := c.input(freqs, half)

	leftAlphabet, leftFreqs := clean(alphabet, l)
	if len(leftAlphabet) > 0 {
		c.decodeNode(leftAlphabet, leftFreqs, idx, half)
	}

	rightFreqs := make([]uint64, len(freqs))
	for i := range freqs {
		rightFreqs[i] = freqs[i] - l[i]
	}
	rightAlphabet, rightFreqs2 := clean(alphabet, rightFreqs)
	if len(rightAlphabet) > 0 {
		c.decodeNode(rightAlphabet, rightFreqs2, idx+half, size-half)
	}
}

// DecodeBlock reverses EncodeBlock.
func DecodeBlock(r *bitio.Reader, useRLE bool) (block []byte, err error) {
	defer internal.Recover(&err)

	var runs []uint64
	if useRLE {
		runs = rle.ReadRuns(r)
	}

	fvals := gamma.DecodeVec(r, 256, 1)
	var total uint64
	for _, f := range fvals {
		total += f
	}

	data := make([]byte, total)
	if total > 0 {
		alphabet, freqs := cleanFull(fvals)
		ctx := &decCtx{r: r, out: data}
		ctx.decodeNode(alphabet, freqs, 0, int(total))
	}
	r.FlushBuffer()

	if useRLE {
		data = rle.Decode(data, runs, rleParams)
	}
	return data, nil
}
