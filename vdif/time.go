/*
NAME
  time.go

DESCRIPTION
  time.go converts between a VDIF header's ref_epoch/seconds/frame_nr fields
  and absolute time. Reference epochs are half-years since 2000-01-01 UTC;
  within an epoch, whole seconds come from the header directly and the
  sub-second remainder comes from frame_nr divided by the stream's frame
  rate, which callers must supply for any frame_nr != 0. Grounded on
  VDIFHeader.get_time/set_time and the ref_epochs table in
  original_source/.../vdif/header.py.

LICENSE
  Copyright (c) 2026 The Baseband Authors. All rights reserved.
  Use of this source code is governed by a BSD-style license that can be
  found in the LICENSE file.
*/

package vdif

import (
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/vlbi-go/baseband"
)

// epochCount bounds the generated ref_epochs table; ref_epoch is a 6-bit
// field so at most 64 epochs can ever be addressed.
const epochCount = 64

var refEpochs = buildRefEpochs()

// mjdEpoch is MJD 0: 1858-11-17 UTC, used to derive a reference MJD for
// resolving a Mark5BOverVDIF header's embedded Mark 5B day field.
var mjdEpoch = time.Date(1858, time.November, 17, 0, 0, 0, 0, time.UTC)

func buildRefEpochs() [epochCount]time.Time {
	var out [epochCount]time.Time
	for k := 0; k < epochCount; k++ {
		year := 2000 + k/2
		month := time.January
		if k%2 == 1 {
			month = time.July
		}
		out[k] = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	}
	return out
}

// RefEpoch returns the UTC instant marking the start of reference epoch k
// (k halves of a year after 2000-01-01).
func RefEpoch(k int) (time.Time, error) {
	if k < 0 || k >= epochCount {
		return time.Time{}, errors.Errorf("vdif: ref_epoch %d out of range [0,%d)", k, epochCount)
	}
	return refEpochs[k], nil
}

// refEpochForTime returns the index of the latest reference epoch not after t.
func refEpochForTime(t time.Time) int {
	k := 0
	for i := 1; i < epochCount && !refEpochs[i].After(t); i++ {
		k = i
	}
	return k
}

// Time returns the absolute UTC instant this header encodes. If frame_nr is
// nonzero, framerate (frames per second) must be positive, or
// ErrMissingFrameRate is returned.
func (h Header) Time(framerate float64) (time.Time, error) {
	refEpoch, err := h.Get("ref_epoch")
	if err != nil {
		return time.Time{}, err
	}
	epoch, err := RefEpoch(int(refEpoch))
	if err != nil {
		return time.Time{}, err
	}
	seconds, err := h.Get("seconds")
	if err != nil {
		return time.Time{}, err
	}
	t := epoch.Add(time.Duration(seconds) * time.Second)

	frameNr, err := h.Get("frame_nr")
	if err != nil {
		return time.Time{}, err
	}
	if frameNr == 0 {
		return t, nil
	}
	if framerate <= 0 {
		return time.Time{}, errors.Wrap(baseband.ErrMissingFrameRate, "vdif: header.Time needs frame rate for nonzero frame_nr")
	}
	frac := float64(frameNr) / framerate
	return t.Add(time.Duration(math.Round(frac * float64(time.Second)))), nil
}

// SetTime writes ref_epoch, seconds and frame_nr from an absolute time. A
// sub-second remainder under 2 ns writes frame_nr 0; a larger remainder
// requires a positive framerate to convert into frame_nr, or
// ErrMissingFrameRate is returned.
func (h Header) SetTime(t time.Time, framerate float64) (Header, error) {
	k := refEpochForTime(t)
	epoch := refEpochs[k]
	elapsed := t.Sub(epoch)
	seconds := int64(elapsed / time.Second)
	remainder := elapsed - time.Duration(seconds)*time.Second

	h2, err := h.Set("ref_epoch", uint64(k))
	if err != nil {
		return Header{}, err
	}
	h2, err = h2.Set("seconds", uint64(seconds))
	if err != nil {
		return Header{}, err
	}
	if remainder < 2*time.Nanosecond {
		return h2.Set("frame_nr", 0)
	}
	if framerate <= 0 {
		return Header{}, errors.Wrap(baseband.ErrMissingFrameRate, "vdif: header.SetTime needs frame rate for a fractional second")
	}
	frameNr := math.Round(remainder.Seconds() * framerate)
	return h2.Set("frame_nr", uint64(frameNr))
}
