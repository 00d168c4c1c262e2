/*
NAME
  frameset.go

DESCRIPTION
  frameset.go assembles the frames sharing one frame_nr across multiple
  threads into a FrameSet. Grounded on VDIFFrameSet.fromfile in
  original_source/.../vdif/frame.py: read header0, then loop collecting
  frames whose frame_nr matches header0 until it changes or EOF; rewind by
  one header size on a frame_nr mismatch so the next FrameSet read starts
  from that header; on EOF, seek to end instead. Missing requested threads
  is an error, propagating end-of-stream if that was the cause.

  Contains also (per spec.md §9) the fix for the source's "in" operator bug:
  membership is checked against header0's field names, not a phantom
  header[0] index.

LICENSE
  Copyright (c) 2026 The Baseband Authors. All rights reserved.
  Use of this source code is governed by a BSD-style license that can be
  found in the LICENSE file.
*/

package vdif

import (
	"io"
	"sort"

	"github.com/pkg/errors"

	"github.com/vlbi-go/baseband"
)

// FrameSet is every frame sharing one frame_nr, one per thread.
type FrameSet struct {
	Header0 Header
	Frames  []*Frame

	data []float32
}

// ReadOptions configures ReadFrameSet.
type ReadOptions struct {
	// ThreadIDs restricts collection to these thread IDs. If nil, frames of
	// every thread are collected and at least one frame is required.
	ThreadIDs []int
	// Sort reorders collected frames by ascending thread ID.
	Sort bool
	// Fanout is passed through to each Frame's payload codec selection.
	Fanout int
}

// ReadFrameSet reads the frames for one frame_nr from r, per
// VDIFFrameSet.fromfile's five-step algorithm.
func ReadFrameSet(r interface {
	io.Reader
	io.Seeker
}, opts ReadOptions) (*FrameSet, error) {
	header0, err := FromFile(r)
	if err != nil {
		return nil, err
	}

	wantThreads := opts.ThreadIDs
	threadSet := make(map[int]bool, len(wantThreads))
	for _, id := range wantThreads {
		threadSet[id] = true
	}

	var frames []*Frame
	header := header0
	frameNr0, err := header0.Get("frame_nr")
	if err != nil {
		return nil, err
	}

	var eofErr error
	for {
		frameNr, err := header.Get("frame_nr")
		if err != nil {
			return nil, err
		}
		if frameNr != frameNr0 {
			headerSize := len(header.Bytes())
			if _, err := r.Seek(-int64(headerSize), io.SeekCurrent); err != nil {
				return nil, errors.Wrap(err, "vdif: rewind frame set boundary")
			}
			break
		}

		threadID, err := header.Get("thread_id")
		if err != nil {
			return nil, err
		}
		payloadSize, err := header.PayloadSize()
		if err != nil {
			return nil, err
		}

		wanted := wantThreads == nil || threadSet[int(threadID)]
		if wanted {
			buf := make([]byte, payloadSize)
			if _, err := io.ReadFull(r, buf); err != nil {
				if err == io.EOF || err == io.ErrUnexpectedEOF {
					eofErr = errors.Wrap(baseband.ErrEndOfStream, "vdif: frame set payload")
				} else {
					return nil, errors.Wrap(err, "vdif: frame set payload")
				}
			}
			if eofErr == nil {
				frames = append(frames, &Frame{Header: header, Payload: buf, fanout: opts.Fanout})
			}
		} else {
			if _, err := r.Seek(int64(payloadSize), io.SeekCurrent); err != nil {
				return nil, errors.Wrap(err, "vdif: skip frame set payload")
			}
		}
		if eofErr != nil {
			break
		}

		next, err := FromFile(r)
		if err != nil {
			if errors.Is(err, baseband.ErrEndOfStream) {
				if _, serr := r.Seek(0, io.SeekEnd); serr != nil {
					return nil, errors.Wrap(serr, "vdif: seek to end of frame set")
				}
				eofErr = err
				break
			}
			return nil, err
		}
		header = next
	}

	if wantThreads == nil {
		if len(frames) > 0 {
			id, err := frames[0].Header.Get("thread_id")
			if err != nil {
				return nil, err
			}
			wantThreads = []int{int(id)}
		} else {
			wantThreads = []int{0}
		}
	}

	if len(frames) < len(wantThreads) {
		if eofErr != nil {
			return nil, eofErr
		}
		return nil, errors.Wrapf(baseband.ErrIncompleteFrameSet, "vdif: found %d of %d requested threads", len(frames), len(wantThreads))
	}

	if opts.Sort {
		sort.Slice(frames, func(i, j int) bool {
			a, _ := frames[i].Header.Get("thread_id")
			b, _ := frames[j].Header.Get("thread_id")
			return a < b
		})
	}

	return &FrameSet{Header0: header0, Frames: frames}, nil
}

// Contains reports whether name is a field defined on this frame set's
// header variant.
func (fs *FrameSet) Contains(name string) bool {
	_, ok := tableFor(fs.Header0.kind).Field(name)
	return ok
}

// Data lazily decodes every frame's payload and concatenates them thread
// by thread, sample-major within each thread, caching the result.
func (fs *FrameSet) Data() ([]float32, error) {
	if fs.data != nil {
		return fs.data, nil
	}
	var out []float32
	for _, f := range fs.Frames {
		d, err := f.Data()
		if err != nil {
			return nil, err
		}
		out = append(out, d...)
	}
	fs.data = out
	return out, nil
}
