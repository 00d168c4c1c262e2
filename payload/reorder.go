/*
NAME
  reorder.go

DESCRIPTION
  reorder.go implements the bitwise track-reordering permutations that align
  sign and magnitude bits within each byte of a 32- or 64-track packed
  sample word, before byte-wise channel permutation and LUT expansion. The
  permutation constants differ by host byte order; both forms are ported
  from the Mark 4 payload decoder's reorder32/reorder64, selected at package
  init time based on the host's native byte order.

LICENSE
  Copyright (c) 2026 The Baseband Authors. All rights reserved.
  Use of this source code is governed by a BSD-style license that can be
  found in the LICENSE file.
*/

package payload

import "unsafe"

// bigEndian is true if the host stores the low-order byte of a multi-byte
// integer at the highest address. The on-disk byte layout of a frame is
// invariant (little-endian words); only the in-register track-reorder masks
// depend on this.
var bigEndian = hostIsBigEndian()

func hostIsBigEndian() bool {
	var x uint16 = 1
	b := (*[2]byte)(unsafe.Pointer(&x))
	return b[0] == 0
}

// Reorder32 permutes the bits of a 32-track packed sample word to align
// sign and magnitude bit pairs, selecting little- or big-endian masks to
// match the host's native byte order. The on-disk bytes are unaffected;
// only the in-register packing changes.
func Reorder32(x uint32) uint32 {
	if bigEndian {
		return (x & 0x55AA55AA) |
			((x & 0xAA00AA00) >> 9) |
			((x & 0x00550055) << 9)
	}
	return (x & 0xAA55AA55) |
		((x & 0x55005500) >> 7) |
		((x & 0x00AA00AA) << 7)
}

// Reorder64 is the 64-track counterpart of Reorder32. The little-endian
// case is the canonical fixture in spec.md §8.4:
// Reorder64(0x0A40C8B6B0BD91F6) == 0x0A40D994F435D176
// (738811025863578102 -> 738829572664316278).
func Reorder64(x uint64) uint64 {
	if bigEndian {
		return (x & 0x55AA55AA55AA55AA) |
			((x & 0xAA00AA00AA00AA00) >> 9) |
			((x & 0x0055005500550055) << 9)
	}
	return (x & 0xAA55AA55AA55AA55) |
		((x & 0x5500550055005500) >> 7) |
		((x & 0x00AA00AA00AA00AA) << 7)
}
