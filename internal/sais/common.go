// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package sais implements a linear time suffix array algorithm, used to
// drive the forward Burrows-Wheeler transform.
package sais

// ComputeSA computes the suffix array of T and places the result in SA.
// Both T and SA must be the same length.
func ComputeSA(T []byte, SA []int) {
	if len(SA) != len(T) {
		panic("mismatching sizes")
	}
	computeSA_byte(T, SA, 0, len(T), 256)
}

// computeSA_byte adapts the byte alphabet to the integer-alphabet SA-IS
// core (computeSA_int): the 256-symbol alphabet of a byte string is just
// the k=256 case of the general algorithm.
func computeSA_byte(T []byte, SA []int, fs, n, k int) {
	Tint := make([]int, n)
	for i := 0; i < n; i++ {
		Tint[i] = int(T[i])
	}
	computeSA_int(Tint, SA, fs, n, k)
}
