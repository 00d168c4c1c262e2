/*
NAME
  rate.go

DESCRIPTION
  rate.go infers a stream's frame rate (frames per second) by scanning
  headers for frame_nr wraparound: the first header must start at frame_nr
  0; skip payloads while frame_nr stays 0, then track the maximum frame_nr
  seen while it keeps increasing, and the rate is one more than that
  maximum. Grounded on get_frame_rate in
  original_source/.../vlbi_helpers.py, including its soft warning when the
  header's seconds field does not advance by exactly one across the wrap.

LICENSE
  Copyright (c) 2026 The Baseband Authors. All rights reserved.
  Use of this source code is governed by a BSD-style license that can be
  found in the LICENSE file.
*/

package vdif

import (
	"io"

	"github.com/pkg/errors"

	"github.com/vlbi-go/baseband"
)

// InferFrameRate scans from the start of r for one full second of frame_nr
// wraparound and returns the number of frames per second. It requires the
// stream to start exactly at frame_nr 0.
func InferFrameRate(r interface {
	io.Reader
	io.Seeker
}, logger baseband.Logger) (int, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, errors.Wrap(err, "vdif: seek to start for frame rate inference")
	}

	header, err := FromFile(r)
	if err != nil {
		return 0, err
	}
	frameNr, err := header.Get("frame_nr")
	if err != nil {
		return 0, err
	}
	if frameNr != 0 {
		return 0, errors.Errorf("vdif: frame rate inference requires frame_nr 0 at stream start, got %d", frameNr)
	}
	sec0, err := header.Get("seconds")
	if err != nil {
		return 0, err
	}

	advance := func(h Header) (Header, error) {
		size, err := h.PayloadSize()
		if err != nil {
			return Header{}, err
		}
		if _, err := r.Seek(int64(size), io.SeekCurrent); err != nil {
			return Header{}, errors.Wrap(err, "vdif: skip payload during frame rate inference")
		}
		return FromFile(r)
	}

	for frameNr == 0 {
		header, err = advance(header)
		if err != nil {
			return 0, err
		}
		frameNr, err = header.Get("frame_nr")
		if err != nil {
			return 0, err
		}
	}

	var maxFrame uint64
	for frameNr > 0 {
		maxFrame = frameNr
		header, err = advance(header)
		if err != nil {
			return 0, err
		}
		frameNr, err = header.Get("frame_nr")
		if err != nil {
			return 0, err
		}
	}

	sec1, err := header.Get("seconds")
	if err != nil {
		return 0, err
	}
	if sec1 != sec0+1 {
		baseband.Warn(logger, "vdif: header time changed by more than 1 second during frame rate inference", "sec0", sec0, "sec1", sec1)
	}

	return int(maxFrame) + 1, nil
}
