/*
NAME
  frame.go

DESCRIPTION
  frame.go bundles a Mark 5B header with its 10,000-byte payload and caches
  the payload's decoded sample array. Grounded on Mark5BFrame/Mark5BPayload
  in test_mark5b.py::test_frame and test_payload, and on the payload codec
  registry in baseband/payload.

LICENSE
  Copyright (c) 2026 The Baseband Authors. All rights reserved.
  Use of this source code is governed by a BSD-style license that can be
  found in the LICENSE file.
*/

package mark5b

import (
	"io"

	"github.com/pkg/errors"

	"github.com/vlbi-go/baseband"
	"github.com/vlbi-go/baseband/payload"
)

// Frame is a Mark 5B header plus its raw payload bytes.
type Frame struct {
	Header  Header
	Payload []byte

	layout payload.Layout
	cached []float32
}

// ReadFrame reads one full Mark 5B frame (header + payload) from r. nchan
// and bps describe the payload's channel count and bits per sample; Mark 5B
// does not carry these in its header, so the caller supplies them exactly
// as the reference reader's record_read(nchan=..., bps=...) does.
func ReadFrame(r io.Reader, nchan, bps int) (*Frame, error) {
	h, err := FromFile(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, PayloadSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errors.Wrap(baseband.ErrEndOfStream, "mark5b: frame payload")
		}
		return nil, errors.Wrap(err, "mark5b: frame payload")
	}
	f := &Frame{
		Header:  h,
		Payload: buf,
		layout:  payload.Layout{NChan: nchan, BPS: bps, Fanout: trackCount(nchan, bps) / (nchan * bps)},
	}
	if err := f.Verify(); err != nil {
		return nil, err
	}
	return f, nil
}

// trackCount returns the (nchan, bps) track count for the one registered
// Mark 5B layout this core supports end to end, 64 tracks (fanout 4); any
// other (nchan, bps) combination is left at its natural track count so
// payload.Decode's ErrUnsupportedLayout surfaces clearly from Data.
func trackCount(nchan, bps int) int {
	if nchan == 8 && bps == 2 {
		return 64
	}
	return nchan * bps
}

// Verify cross-checks the payload's byte length against PayloadSize.
func (f *Frame) Verify() error {
	if len(f.Payload) != PayloadSize {
		return errors.Errorf("mark5b: payload has %d bytes, want %d", len(f.Payload), PayloadSize)
	}
	return nil
}

// Bytes serializes the frame back to its 10,016-byte wire form.
func (f *Frame) Bytes() []byte {
	out := make([]byte, 0, FrameSize)
	out = append(out, f.Header.Bytes()...)
	out = append(out, f.Payload...)
	return out
}

// Data lazily decodes the payload to a samples×channels float32 array,
// caching the result until Invalidate is called.
func (f *Frame) Data() ([]float32, error) {
	if f.cached != nil {
		return f.cached, nil
	}
	out, err := payload.Decode(f.Payload, f.layout, nil)
	if err != nil {
		return nil, err
	}
	f.cached = out
	return out, nil
}

// Invalidate drops the cached decoded sample array, forcing the next Data
// call to re-decode the payload.
func (f *Frame) Invalidate() {
	f.cached = nil
}
