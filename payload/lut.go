/*
NAME
  lut.go

DESCRIPTION
  lut.go builds the process-wide lookup tables used to expand a packed byte
  of tracked samples into real-valued measurements: one 1-bit table and
  three distinct 2-bit sign/magnitude pairing schemes, each valid for one
  (track-count, fanout) regime. See init_luts in the Mark 4 payload decoder
  this was ported from.

LICENSE
  Copyright (c) 2026 The Baseband Authors. All rights reserved.
  Use of this source code is governed by a BSD-style license that can be
  found in the LICENSE file.
*/

package payload

// OptimalTwoBitHigh is the high magnitude level for the VLBI optimal 2-bit
// quantization of Gaussian-distributed input, H ≈ 3.3359·σ.
const OptimalTwoBitHigh = 3.3359

// LUT1Bit[b][i] is the decoded sample for bit i (0..7) of byte b, mapping a
// 1-bit track sample to {-1, +1}.
var LUT1Bit [256][8]float32

// LUT2BitA, LUT2BitB and LUT2BitC are the three sign/magnitude pairing
// schemes for 2-bit tracked samples, keyed by byte value and sample index
// (0..3):
//
//   - LUT2BitA: sign at bits (0,2,4,6), magnitude at (1,3,5,7).
//     Fanout 1 at 8/16-track, fanout 4 at 32/64-track.
//   - LUT2BitB: sign at bits (0,1,4,5), magnitude at (2,3,6,7).
//     Fanout 2 at 8/16-track, fanout 1 at 32/64-track.
//   - LUT2BitC: sign at bits (0,1,2,3), magnitude at (4,5,6,7).
//     Fanout 4 at 8/16-track, fanout 2 at 32/64-track.
var (
	LUT2BitA [256][4]float32
	LUT2BitB [256][4]float32
	LUT2BitC [256][4]float32
)

// fourLevel maps a 2-bit (sign, magnitude) pair, packed as sign + magnitude*2,
// to its decoded level.
var fourLevel = [4]float32{-OptimalTwoBitHigh, 1.0, -1.0, OptimalTwoBitHigh}

func init() {
	for b := 0; b < 256; b++ {
		for i := 0; i < 8; i++ {
			if (b>>uint(i))&1 == 1 {
				LUT1Bit[b][i] = -1.0
			} else {
				LUT1Bit[b][i] = 1.0
			}
		}
		for i := 0; i < 4; i++ {
			s, m := 2*i, 2*i+1
			LUT2BitA[b][i] = twoBitLevel(b, s, m)

			s, m = i+(i/2)*2, i+(i/2)*2+2
			LUT2BitB[b][i] = twoBitLevel(b, s, m)

			s, m = i, i+4
			LUT2BitC[b][i] = twoBitLevel(b, s, m)
		}
	}
}

func twoBitLevel(b, signBit, magBit int) float32 {
	sign := (b >> uint(signBit)) & 1
	mag := (b >> uint(magBit)) & 1
	return fourLevel[sign+mag*2]
}
