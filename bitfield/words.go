/*
NAME
  words.go

DESCRIPTION
  words.go packs and unpacks the fixed-geometry 4- and 8-word little-endian
  struct codecs shared by Mark 5B and VDIF headers.

LICENSE
  Copyright (c) 2026 The Baseband Authors. All rights reserved.
  Use of this source code is governed by a BSD-style license that can be
  found in the LICENSE file.
*/

// Package bitfield provides a declarative bit-field engine for packed
// 32-bit little-endian header words: packing/unpacking fixed-size word
// vectors, and a Table of named (word, lsb, width, default) field
// definitions supporting merge-with-override across header variants.
package bitfield

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/vlbi-go/baseband"
)

// FourWordSize and EightWordSize are the byte lengths of the two struct
// codecs used by this module: Mark 5B headers and legacy VDIF headers are
// four words (16 bytes); non-legacy VDIF headers are eight words (32 bytes).
const (
	FourWordSize  = 4 * 4
	EightWordSize = 8 * 4
)

// PackFour packs four 32-bit words into 16 bytes, little-endian, word 0 at
// the lowest address.
func PackFour(words [4]uint32) []byte {
	buf := make([]byte, FourWordSize)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], w)
	}
	return buf
}

// UnpackFour unpacks 16 bytes into four 32-bit words. It fails with
// ErrShortRead if b is shorter than FourWordSize.
func UnpackFour(b []byte) ([4]uint32, error) {
	var words [4]uint32
	if len(b) < FourWordSize {
		return words, errors.Wrapf(baseband.ErrShortRead, "need %d bytes, got %d", FourWordSize, len(b))
	}
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return words, nil
}

// PackEight packs eight 32-bit words into 32 bytes, little-endian, word 0 at
// the lowest address.
func PackEight(words [8]uint32) []byte {
	buf := make([]byte, EightWordSize)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], w)
	}
	return buf
}

// UnpackEight unpacks 32 bytes into eight 32-bit words. It fails with
// ErrShortRead if b is shorter than EightWordSize.
func UnpackEight(b []byte) ([8]uint32, error) {
	var words [8]uint32
	if len(b) < EightWordSize {
		return words, errors.Wrapf(baseband.ErrShortRead, "need %d bytes, got %d", EightWordSize, len(b))
	}
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return words, nil
}
