/*
NAME
  codec.go

DESCRIPTION
  codec.go implements the payload codec registry and the one fully wired
  layout this core supports end to end: 8 channels, 2 bits per sample,
  fanout 4 (64 tracks), shared between Mark 5B and the single Mark 4 lookup
  this spec scopes in. Ported from decode_8chan_2bit_fanout4 /
  encode_8chan_2bit_fanout4 in the Mark 4 payload decoder.

LICENSE
  Copyright (c) 2026 The Baseband Authors. All rights reserved.
  Use of this source code is governed by a BSD-style license that can be
  found in the LICENSE file.
*/

// Package payload decodes and encodes tracked baseband samples using
// precomputed lookup tables and bitwise track reordering, producing a
// samples × channels array. Lookup tables are built for 1- and 2-bit
// samples; the codec registry handles only the 8-channel, 2-bit, fanout-4
// layout, and any other layout fails with ErrUnsupportedLayout.
package payload

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/vlbi-go/baseband"
)

// Layout describes a payload's sample geometry: NChan channels, BPS bits
// per complete sample, and Fanout tracks per bit stream. The (NChan, BPS,
// Fanout) triple selects the codec via the registry; their product is the
// track count.
type Layout struct {
	NChan   int
	BPS     int
	Fanout  int
	Complex bool
}

func (l Layout) key() layoutKey {
	return layoutKey{l.NChan, l.BPS, l.Fanout}
}

type layoutKey struct {
	nchan, bps, fanout int
}

type codec struct {
	bytesPerSample int // payload bytes consumed per sample-row across all channels
	decode         func(data []byte, out []float32) ([]float32, error)
	encode         func(samples []float32, nchan int) ([]byte, error)
}

var registry = map[layoutKey]codec{
	{8, 2, 4}: {
		bytesPerSample: 8,
		decode:         decode8Chan2BitFanout4,
		encode:         encode8Chan2BitFanout4,
	},
}

// channelPermutation is the fixed within-quad swap applied to the 8-channel
// variant after track reordering: channel j of the decoded array comes from
// byte column channelPermutation[j] of the reordered word.
var channelPermutation = [8]int{0, 2, 1, 3, 4, 6, 5, 7}

// Decode expands packed payload bytes into a samples×channels real-valued
// array of single-precision floats, according to layout. If out is given it
// must have exactly layout.NChan*samples elements (sample-major, i.e. row i
// holds channels [i*NChan : (i+1)*NChan]); otherwise a new slice is
// allocated. Decode never clips.
func Decode(data []byte, layout Layout, out []float32) ([]float32, error) {
	c, ok := registry[layout.key()]
	if !ok {
		return nil, errors.Wrapf(baseband.ErrUnsupportedLayout, "nchan=%d bps=%d fanout=%d", layout.NChan, layout.BPS, layout.Fanout)
	}
	if len(data)%c.bytesPerSample != 0 {
		return nil, errors.Errorf("payload: data length %d is not a multiple of %d bytes", len(data), c.bytesPerSample)
	}
	return c.decode(data, out)
}

// Encode is the inverse of Decode: it quantizes samples (sample-major,
// NChan columns per layout) to the nearest level and packs them into
// payload bytes. Encode is a bit-exact inverse of Decode for samples drawn
// from {-H, -1, +1, +H}.
func Encode(samples []float32, layout Layout) ([]byte, error) {
	c, ok := registry[layout.key()]
	if !ok {
		return nil, errors.Wrapf(baseband.ErrUnsupportedLayout, "nchan=%d bps=%d fanout=%d", layout.NChan, layout.BPS, layout.Fanout)
	}
	if layout.NChan == 0 || len(samples)%layout.NChan != 0 {
		return nil, errors.Wrapf(baseband.ErrShapeMismatch, "%d samples not divisible by %d channels", len(samples), layout.NChan)
	}
	return c.encode(samples, layout.NChan)
}

func decode8Chan2BitFanout4(data []byte, out []float32) ([]float32, error) {
	const nchan = 8
	nWords := len(data) / 8
	nSamples := nWords * 4
	need := nSamples * nchan
	if out == nil {
		out = make([]float32, need)
	} else if len(out) != need {
		return nil, errors.Wrapf(baseband.ErrShapeMismatch, "out has %d elements, want %d", len(out), need)
	}

	var bytes [8]byte
	for w := 0; w < nWords; w++ {
		word := binary.LittleEndian.Uint64(data[w*8:])
		word = Reorder64(word)
		binary.LittleEndian.PutUint64(bytes[:], word)

		for j := 0; j < nchan; j++ {
			b := bytes[channelPermutation[j]]
			lvls := LUT2BitA[b]
			for s := 0; s < 4; s++ {
				out[(w*4+s)*nchan+j] = lvls[s]
			}
		}
	}
	return out, nil
}

func encode8Chan2BitFanout4(samples []float32, nchan int) ([]byte, error) {
	if nchan != 8 {
		return nil, errors.Wrapf(baseband.ErrShapeMismatch, "8-channel fanout-4 codec given %d channels", nchan)
	}
	nSamples := len(samples) / nchan
	if nSamples%4 != 0 {
		return nil, errors.Errorf("payload: %d samples is not a multiple of fanout 4", nSamples)
	}
	nWords := nSamples / 4
	out := make([]byte, nWords*8)

	for w := 0; w < nWords; w++ {
		var bytes [8]byte
		for j := 0; j < nchan; j++ {
			var b byte
			for s := 0; s < 4; s++ {
				lvl := samples[(w*4+s)*nchan+j]
				b |= quantizeTwoBit(lvl, s)
			}
			bytes[channelPermutation[j]] = b
		}
		word := binary.LittleEndian.Uint64(bytes[:])
		word = Reorder64(word)
		binary.LittleEndian.PutUint64(out[w*8:], word)
	}
	return out, nil
}

// twoBitThreshold is the nearest-level decision boundary between the small
// ({-1,+1}) and large ({-H,+H}) magnitude classes.
const twoBitThreshold = (1.0 + OptimalTwoBitHigh) / 2

// quantizeTwoBit quantizes a single real sample to the bit pair LUT2BitA
// decodes at fanout index i (bits 2i and 2i+1 of the destination byte),
// exactly inverting LUT2BitA's codeword-to-level table so that Decode and
// Encode round-trip for values in {-H, -1, +1, +H}.
func quantizeTwoBit(value float32, i int) byte {
	pos := value >= 0
	big := abs32(value) >= twoBitThreshold
	var b0, b1 byte
	if pos {
		b0 = 1
	}
	if big == pos {
		b1 = 1
	}
	s := uint(2 * i)
	return (b0 << s) | (b1 << (s + 1))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
