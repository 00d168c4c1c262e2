/*
NAME
  header.go

DESCRIPTION
  header.go implements the Mark 5B frame header: four 32-bit little-endian
  words carrying a BCD-coded timestamp, frame number and user/VTG
  bookkeeping, parsed through a single bitfield.Table. Grounded on
  VLBIHeaderBase / bcd_decode / bcd_encode in vlbi_helpers.py and the
  canonical field values exercised by test_mark5b.py::test_header.

LICENSE
  Copyright (c) 2026 The Baseband Authors. All rights reserved.
  Use of this source code is governed by a BSD-style license that can be
  found in the LICENSE file.
*/

// Package mark5b reads, writes and decodes Mark 5B frames: a fixed 16-byte
// header followed by a 10,000-byte payload.
package mark5b

import (
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/vlbi-go/baseband"
	"github.com/vlbi-go/baseband/bitfield"
)

// Wire geometry, fixed for every Mark 5B frame.
const (
	SyncPattern = 0xABADDEED
	HeaderWords = 4
	HeaderSize  = 16
	PayloadSize = 10000
	FrameSize   = HeaderSize + PayloadSize
)

func u64p(v uint64) *uint64 { return &v }

var fields = func() bitfield.Table {
	t, err := bitfield.NewTable(
		bitfield.Field{Name: "sync_pattern", Word: 0, LSB: 0, Width: 32, Default: u64p(SyncPattern)},
		bitfield.Field{Name: "frame_nr", Word: 1, LSB: 0, Width: 15, Default: u64p(0)},
		bitfield.Field{Name: "internal_tvg", Word: 1, LSB: 15, Width: 1, Default: u64p(0)},
		bitfield.Field{Name: "user", Word: 1, LSB: 16, Width: 12, Default: u64p(0)},
		bitfield.Field{Name: "year", Word: 1, LSB: 28, Width: 4, Default: u64p(0)},
		bitfield.Field{Name: "bcd_jday", Word: 2, LSB: 0, Width: 12},
		bitfield.Field{Name: "bcd_seconds", Word: 2, LSB: 12, Width: 20},
		bitfield.Field{Name: "bcd_fraction", Word: 3, LSB: 0, Width: 16, Default: u64p(0)},
		bitfield.Field{Name: "crcc", Word: 3, LSB: 16, Width: 16, Default: u64p(0)},
	)
	if err != nil {
		panic(err)
	}
	return t
}()

// Header is a Mark 5B frame header: sync pattern, frame number, user data
// and a BCD day/seconds/fraction timestamp.
type Header struct {
	words []uint32
}

// FromBytes parses a 16-byte Mark 5B header and verifies its sync pattern.
func FromBytes(b []byte) (Header, error) {
	words, err := bitfield.UnpackFour(b)
	if err != nil {
		return Header{}, errors.Wrap(err, "mark5b: header from bytes")
	}
	h := Header{words: words[:]}
	if err := h.Verify(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// FromFile reads 16 bytes from r and parses them as a Mark 5B header,
// failing with ErrEndOfStream on a short read at the frame boundary.
func FromFile(r io.Reader) (Header, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Header{}, errors.Wrap(baseband.ErrEndOfStream, "mark5b: header from file")
		}
		return Header{}, errors.Wrap(err, "mark5b: header from file")
	}
	return FromBytes(buf)
}

// Values are the keyword arguments accepted by FromValues: explicit raw
// fields plus the semantic Time used to derive the BCD timestamp fields. A
// zero Time leaves the BCD fields at their zero values. RefMJD is not read
// by FromValues: the BCD day field only carries the day modulo 1000.
type Values struct {
	User        uint64
	Year        uint64
	InternalTVG bool
	FrameNr     uint64
	CRCC        uint64
	Time        time.Time
	RefMJD      float64
}

// FromValues builds a header by writing every raw field from values or its
// default, leaving fields named in neither at zero, then applying the
// semantic Time setter last (so it can rely on the other fields already
// being in place), matching the source's from_values contract of
// declaration-order semantic setters layered over lenient raw ones.
func FromValues(v Values) (Header, error) {
	raw := map[string]uint64{
		"user":         v.User,
		"year":         v.Year,
		"frame_nr":     v.FrameNr,
		"crcc":         v.CRCC,
		"internal_tvg": boolToUint(v.InternalTVG),
	}
	words := make([]uint32, HeaderWords)
	var err error
	for _, name := range fields.Names() {
		if val, ok := raw[name]; ok {
			words, err = fields.Set(words, name, val)
		} else if def, ok := fields.Defaults(name); ok {
			words, err = fields.Set(words, name, def)
		} else {
			continue
		}
		if err != nil {
			return Header{}, errors.Wrapf(err, "mark5b: field %q", name)
		}
	}
	h := Header{words: words}
	if err := h.Verify(); err != nil {
		return Header{}, err
	}
	if !v.Time.IsZero() {
		if err := h.SetTime(v.Time); err != nil {
			return Header{}, err
		}
	}
	return h, nil
}

func boolToUint(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// FromKeys builds a header writing every named raw field from values; a
// field absent from values fails with ErrMissingValue.
func FromKeys(values map[string]uint64) (Header, error) {
	words := make([]uint32, HeaderWords)
	var err error
	for _, name := range fields.Names() {
		val, ok := values[name]
		if !ok {
			return Header{}, errors.Wrapf(baseband.ErrMissingValue, "mark5b: field %q", name)
		}
		words, err = fields.Set(words, name, val)
		if err != nil {
			return Header{}, errors.Wrapf(err, "mark5b: field %q", name)
		}
	}
	h := Header{words: words}
	return h, h.Verify()
}

// Verify checks the word-vector length and sync pattern.
func (h Header) Verify() error {
	if len(h.words) != HeaderWords {
		return errors.Errorf("mark5b: header has %d words, want %d", len(h.words), HeaderWords)
	}
	sync, err := fields.Get(h.words, "sync_pattern")
	if err != nil {
		return err
	}
	if sync != SyncPattern {
		return errors.Wrapf(baseband.ErrBadSync, "mark5b: sync_pattern 0x%08X, want 0x%08X", sync, uint32(SyncPattern))
	}
	return nil
}

// Bytes serializes the header back to its 16-byte wire form.
func (h Header) Bytes() []byte {
	var words [4]uint32
	copy(words[:], h.words)
	return bitfield.PackFour(words)
}

// Get returns the raw value of a named field.
func (h Header) Get(name string) (uint64, error) { return fields.Get(h.words, name) }

// GetBool returns the raw value of a named 1-bit field.
func (h Header) GetBool(name string) (bool, error) { return fields.GetBool(h.words, name) }

// Set returns a copy of h with the named raw field replaced.
func (h Header) Set(name string, value uint64) (Header, error) {
	words, err := fields.Set(h.words, name, value)
	if err != nil {
		return Header{}, err
	}
	return Header{words: words}, nil
}

// FrameNr is the frame number within the current second.
func (h Header) FrameNr() uint64 {
	v, _ := h.Get("frame_nr")
	return v
}

// User is the caller-assigned 12-bit user field (word 1 bits 16-27).
func (h Header) User() uint64 {
	v, _ := h.Get("user")
	return v
}

// Year is the 4-bit year-within-decade tag packed alongside user in word 1
// (bits 28-31).
func (h Header) Year() uint64 {
	v, _ := h.Get("year")
	return v
}

// InternalTVG reports whether the internal test-vector generator bit is set.
func (h Header) InternalTVG() bool {
	v, _ := h.GetBool("internal_tvg")
	return v
}

// CRCC is the header's 16-bit CRC field.
func (h Header) CRCC() uint64 {
	v, _ := h.Get("crcc")
	return v
}

// FrameSize is the total byte length of a Mark 5B frame (header + payload).
func (h Header) FrameSize() int { return FrameSize }

// PayloadSize is the byte length of a Mark 5B frame's payload.
func (h Header) PayloadSize() int { return PayloadSize }
