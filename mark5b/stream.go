/*
NAME
  stream.go

DESCRIPTION
  stream.go is a thin sequential-read convenience wrapper over ReadFrame,
  mirroring the reference implementation's mark5b.open(...)/fh.read_frame()
  filestreamer (original_source/.../test_mark5b.py::test_filestreamer):
  open once, then pull frames one at a time without re-deriving nchan/bps on
  every call.

LICENSE
  Copyright (c) 2026 The Baseband Authors. All rights reserved.
  Use of this source code is governed by a BSD-style license that can be
  found in the LICENSE file.
*/

package mark5b

import "io"

// Streamer reads successive Mark 5B frames from a byte stream with a fixed
// payload geometry.
type Streamer struct {
	r     io.Reader
	nchan int
	bps   int
}

// Open wraps r as a Streamer decoding nchan channels at bps bits per
// sample for every frame it reads.
func Open(r io.Reader, nchan, bps int) *Streamer {
	return &Streamer{r: r, nchan: nchan, bps: bps}
}

// ReadFrame reads the next frame from the stream.
func (s *Streamer) ReadFrame() (*Frame, error) {
	return ReadFrame(s.r, s.nchan, s.bps)
}
