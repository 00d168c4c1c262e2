/*
NAME
  bcd.go

DESCRIPTION
  bcd.go implements binary-coded-decimal encoding and decoding as used by
  the Mark 5B header's day/seconds/fraction timestamp fields: one decimal
  digit per nibble, least-significant nibble first.

LICENSE
  Copyright (c) 2026 The Baseband Authors. All rights reserved.
  Use of this source code is governed by a BSD-style license that can be
  found in the LICENSE file.
*/

// Package bcd implements binary-coded-decimal conversion for VLBI header
// timestamp fields.
package bcd

import (
	"github.com/pkg/errors"

	"github.com/vlbi-go/baseband"
)

// Decode converts a little-nibble-first BCD-encoded value to its decimal
// integer value. It fails with ErrBadBCD if any nibble exceeds 9.
func Decode(v uint32) (uint32, error) {
	var result, factor uint32 = 0, 1
	for bcd := v; bcd > 0; bcd >>= 4 {
		digit := bcd & 0xf
		if digit > 9 {
			return 0, errors.Wrapf(baseband.ErrBadBCD, "nibble %d in 0x%x", digit, v)
		}
		result += digit * factor
		factor *= 10
	}
	return result, nil
}

// Encode converts a decimal integer value to its little-nibble-first
// BCD-encoded representation.
func Encode(v uint32) uint32 {
	var result, factor uint32 = 0, 1
	for value := v; value > 0; value /= 10 {
		digit := value % 10
		result += digit * factor
		factor *= 16
	}
	return result
}
