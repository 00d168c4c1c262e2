/*
NAME
  stream.go

DESCRIPTION
  stream.go is a thin sequential-read convenience wrapper over
  ReadFrameSet, mirroring mark5b.Open/Streamer and the reference
  implementation's vdif.open(...)/fh.read_frameset() filestreamer.

LICENSE
  Copyright (c) 2026 The Baseband Authors. All rights reserved.
  Use of this source code is governed by a BSD-style license that can be
  found in the LICENSE file.
*/

package vdif

import "io"

// seekReader is the io.Reader+io.Seeker pair every VDIF stream operation
// needs, since frame-set assembly rewinds on a frame_nr boundary mismatch.
type seekReader interface {
	io.Reader
	io.Seeker
}

// Streamer reads successive VDIF frame sets from a seekable byte stream.
type Streamer struct {
	r    seekReader
	opts ReadOptions
}

// Open wraps r as a Streamer reading frame sets with the given options.
func Open(r seekReader, opts ReadOptions) *Streamer {
	return &Streamer{r: r, opts: opts}
}

// ReadFrameSet reads the next frame set from the stream.
func (s *Streamer) ReadFrameSet() (*FrameSet, error) {
	return ReadFrameSet(s.r, s.opts)
}

// ReadFrame reads a single frame from the stream without frame-set
// assembly, for callers that know the stream carries one thread per frame.
func (s *Streamer) ReadFrame() (*Frame, error) {
	return ReadFrame(s.r, s.opts.Fanout)
}
