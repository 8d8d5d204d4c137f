// Package bwt implements the forward and inverse Burrows-Wheeler
// transform that feeds every entropy coder in this module: a block is
// BWT-transformed before coding and inverse-transformed after decoding,
// using linear-time suffix array construction to build the transform.
package bwt

import "github.com/jkokkala/bwtc-go/internal/sais"

// Encode computes the Burrows-Wheeler transform of buf in place and
// returns the primary index: the row of the (conceptual) sorted
// rotation matrix equal to the original buf. It returns -1 for an empty
// block.
func Encode(buf []byte) (ptr int) {
	if len(buf) == 0 {
		return -1
	}

	n := len(buf)
	t := append(append([]byte(nil), buf...), buf...)
	sa := make([]int, 2*n)
	buf2 := t[n:]

	sais.ComputeSA(t, sa)

	var j int
	for _, i := range sa {
		if i < n {
			if i == 0 {
				ptr = j
				i = n
			}
			buf[j] = buf2[i-1]
			j++
		}
	}
	return ptr
}

// Decode reverses Encode in place, given the primary index returned by
// the matching Encode call.
func Decode(buf []byte, ptr int) {
	if len(buf) == 0 {
		return
	}

	var c [256]int
	for _, v := range buf {
		c[v]++
	}

	var sum int
	for i, v := range c {
		sum += v
		c[i] = sum - v
	}

	tt := make([]int, len(buf))
	for i := range buf {
		b := buf[i]
		tt[c[b]] |= i
		c[b]++
	}

	buf2 := make([]byte, len(buf))
	tPos := tt[ptr]
	for i := range tt {
		buf2[i] = buf[tPos]
		tPos = tt[tPos]
	}
	copy(buf, buf2)
}
