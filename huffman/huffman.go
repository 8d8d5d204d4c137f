// Package huffman implements HuffmanCoder: an order-0 canonical Huffman
// coder over the 256-symbol byte alphabet. Code lengths are computed with
// the in-place, two-pass minimum-redundancy algorithm (Moffat &
// Katajainen), the shape is serialized as a gamma-coded vector of
// per-symbol code lengths (offset 1, so an absent symbol's length-0
// entry survives the codec), and the payload follows as a canonical
// Huffman bitstream.
package huffman

import (
	"sort"

	"github.com/jkokkala/bwtc-go/bitio"
	"github.com/jkokkala/bwtc-go/gamma"
	"github.com/jkokkala/bwtc-go/internal"
)

const maxCodeLen = 32

// computeLengths runs the in-place two-pass algorithm on freqs, sorted
// ascending, and returns the code length assigned to each sorted slot.
// The algorithm runs in place on a copy; freqs itself is left unchanged.
func computeLengths(freqs []uint64) []int {
	n := len(freqs)
	if n == 1 {
		return []int{1}
	}

	a := make([]uint64, n)
	copy(a, freqs)

	// Phase 1: build parent pointers in place.
	a[0] += a[1]
	leaf, root := 2, 0
	for next := 1; next < n-1; next++ {
		if leaf >= n || a[root] < a[leaf] {
			a[next] = a[root]
			a[root] = uint64(next)
			root++
		} else {
			a[next] = a[leaf]
			leaf++
		}
		if leaf >= n || (root < next && a[root] < a[leaf]) {
			a[next] += a[root]
			a[root] = uint64(next)
			root++
		} else {
			a[next] += a[leaf]
			leaf++
		}
	}

	// Phase 2: replace parent pointers with per-node depth-below-root
	// counts.
	a[n-2] = 0
	for next := n - 3; next >= 0; next-- {
		a[next] = a[a[next]] + 1
	}

	// Phase 3: convert level counts into per-leaf code lengths.
	lengths := make([]int, n)
	iNode := n - 2
	iLeaf := n - 1
	depth := 0
	available := 1
	for available > 0 {
		used := 0
		for iNode >= 0 && int(a[iNode]) == depth {
			used++
			iNode--
		}
		for available > used {
			lengths[iLeaf] = depth
			iLeaf--
			available--
		}
		available = 2 * used
		depth++
	}

	return limitLengths(lengths, maxCodeLen)
}

// limitLengths enforces a maximum code length by redistributing the
// Kraft-inequality slack, the same fixup classically used to cap
// DEFLATE-style canonical codes.
func limitLengths(lengths []int, limit int) []int {
	maxLen := 0
	for _, l := range lengths {
		if l > maxLen {
			maxLen = l
		}
	}
	if maxLen <= limit {
		return lengths
	}

	blCount := make([]int, limit+1)
	overflow := 0
	for _, l := range lengths {
		if l > limit {
			overflow++
			blCount[limit]++
		} else {
			blCount[l]++
		}
	}
	for overflow > 0 {
		bits := limit - 1
		for blCount[bits] == 0 {
			bits--
		}
		blCount[bits]--
		blCount[bits+1] += 2
		blCount[limit]--
		overflow -= 2
	}

	idx := make([]int, len(lengths))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return lengths[idx[a]] < lengths[idx[b]] })

	out := make([]int, len(lengths))
	pos := 0
	for l := 1; l <= limit; l++ {
		for c := 0; c < blCount[l]; c++ {
			out[idx[pos]] = l
			pos++
		}
	}
	return out
}

type code struct {
	sym byte
	val uint32
	len int
}

func canonicalCodes(symbols []byte, lengths []int) []code {
	codes := make([]code, len(symbols))
	for i, s := range symbols {
		codes[i] = code{sym: s, len: lengths[i]}
	}
	sort.SliceStable(codes, func(i, j int) bool {
		if codes[i].len != codes[j].len {
			return codes[i].len < codes[j].len
		}
		return codes[i].sym < codes[j].sym
	})
	v := uint32(0)
	prevLen := 0
	for i := range codes {
		v <<= uint(codes[i].len - prevLen)
		codes[i].val = v
		v++
		prevLen = codes[i].len
	}
	return codes
}

// EncodeBlock Huffman-codes block: the shape (256 gamma-coded code
// lengths, offset 1), the 48-bit original length, then the payload.
func EncodeBlock(w *bitio.Writer, block []byte) (err error) {
	defer internal.Recover(&err)

	var freq [256]uint64
	for _, b := range block {
		freq[b]++
	}

	lengths256 := make([]int, 256)
	if len(block) > 0 {
		var symbols []byte
		var freqs []uint64
		for i := 0; i < 256; i++ {
			if freq[i] > 0 {
				symbols = append(symbols, byte(i))
				freqs = append(freqs, freq[i])
			}
		}
		// computeLengths expects ascending-frequency input; sort symbols
		// alongside their frequency before calling it.
		order := make([]int, len(symbols))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool { return freqs[order[a]] < freqs[order[b]] })
		sortedFreqs := make([]uint64, len(freqs))
		for i, o := range order {
			sortedFreqs[i] = freqs[o]
		}
		sortedLens := computeLengths(sortedFreqs)
		for i, o := range order {
			lengths256[symbols[o]] = sortedLens[i]
		}
	}

	shape := make([]uint64, 256)
	for i, l := range lengths256 {
		shape[i] = uint64(l)
	}
	gamma.EncodeVec(w, shape, 1)

	w.Flush()
	lenPos := w.ReserveBytes(6)
	w.Write48(uint64(len(block)), lenPos)

	if len(block) == 0 {
		return nil
	}

	var symbols []byte
	var lens []int
	for i, l := range lengths256 {
		if l > 0 {
			symbols = append(symbols, byte(i))
			lens = append(lens, l)
		}
	}
	codes := canonicalCodes(symbols, lens)
	var table [256]code
	for _, c := range codes {
		table[c.sym] = c
	}

	for _, b := range block {
		c := table[b]
		w.WriteBits(uint64(c.val), uint(c.len))
	}
	w.Flush()
	return nil
}

// DecodeBlock reverses EncodeBlock.
func DecodeBlock(r *bitio.Reader) (block []byte, err error) {
	defer internal.Recover(&err)

	shape := gamma.DecodeVec(r, 256, 1)

	L := r.Read48()

	if L == 0 {
		return []byte{}, nil
	}

	var symbols []byte
	var lens []int
	for i, l := range shape {
		if l > 0 {
			symbols = append(symbols, byte(i))
			lens = append(lens, int(l))
		}
	}
	if len(symbols) == 0 {
		internal.Raise(internal.MalformedHeader, "huffman shape has no symbols for a nonempty block")
	}
	codes := canonicalCodes(symbols, lens)

	maxLen := 0
	for _, c := range codes {
		if c.len > maxLen {
			maxLen = c.len
		}
	}
	firstCode := make([]uint32, maxLen+1)
	firstIndex := make([]int, maxLen+1)
	count := make([]int, maxLen+1)
	for _, c := range codes {
		count[c.len]++
	}
	idx := 0
	code := uint32(0)
	for l := 1; l <= maxLen; l++ {
		firstCode[l] = code
		firstIndex[l] = idx
		code = (code + uint32(count[l])) << 1
		idx += count[l]
	}
	symsByLen := make([]byte, len(codes))
	pos := make([]int, maxLen+1)
	copy(pos, firstIndex)
	for _, c := range codes {
		symsByLen[pos[c.len]] = c.sym
		pos[c.len]++
	}

	out := make([]byte, L)
	for i := uint64(0); i < L; i++ {
		var acc uint32
		length := 0
		for {
			acc = (acc << 1) | uint32(r.ReadBit())
			length++
			if length > maxLen {
				internal.Raise(internal.MalformedHeader, "huffman code exceeds maximum length")
			}
			if length <= maxLen && count[length] > 0 && acc-firstCode[length] < uint32(count[length]) {
				out[i] = symsByLen[firstIndex[length]+int(acc-firstCode[length])]
				break
			}
		}
	}
	r.FlushBuffer()
	return out, nil
}
