package vdif

import (
	"bytes"
	"testing"
)

// buildFrameHeader builds a legacy 16-byte header with the given frame_nr
// and thread_id, sized for an 800-byte payload.
func buildFrameHeader(t *testing.T, frameNr, threadID uint64) []byte {
	t.Helper()
	ws := make([]uint32, 4)
	var err error
	for _, kv := range []struct {
		name  string
		value uint64
	}{
		{"seconds", 100},
		{"ref_epoch", 5},
		{"frame_nr", frameNr},
		{"lg2_nchan", 3},
		{"frame_length", (800 + 16) / 8},
		{"complex_data", 0},
		{"bits_per_sample", 1},
		{"thread_id", threadID},
		{"station_id", 1},
	} {
		ws, err = legacyFields.Set(ws, kv.name, kv.value)
		if err != nil {
			t.Fatalf("set %s: %v", kv.name, err)
		}
	}
	ws, err = legacyFields.SetBool(ws, "legacy_mode", true)
	if err != nil {
		t.Fatalf("set legacy_mode: %v", err)
	}
	h := Header{kind: KindLegacy, words: ws}
	return h.Bytes()
}

func frameBytes(t *testing.T, frameNr, threadID uint64) []byte {
	t.Helper()
	hdr := buildFrameHeader(t, frameNr, threadID)
	payload := make([]byte, 800)
	for i := range payload {
		payload[i] = byte(threadID)*16 + byte(i%16)
	}
	return append(hdr, payload...)
}

// TestReadFrameSetSortsByThread reproduces spec.md §8.4 item 5: a multi-
// thread frame set sorts ascending by thread_id regardless of file order.
func TestReadFrameSetSortsByThread(t *testing.T) {
	var stream []byte
	stream = append(stream, frameBytes(t, 0, 2)...)
	stream = append(stream, frameBytes(t, 0, 0)...)
	stream = append(stream, frameBytes(t, 0, 1)...)
	stream = append(stream, frameBytes(t, 1, 2)...) // next frame_nr: stop point

	fs, err := ReadFrameSet(bytes.NewReader(stream), ReadOptions{
		ThreadIDs: []int{0, 1, 2},
		Sort:      true,
		Fanout:    4,
	})
	if err != nil {
		t.Fatalf("ReadFrameSet: %v", err)
	}
	if len(fs.Frames) != 3 {
		t.Fatalf("len(Frames) = %d, want 3", len(fs.Frames))
	}
	var last uint64
	for i, f := range fs.Frames {
		id, err := f.Header.Get("thread_id")
		if err != nil {
			t.Fatalf("Get(thread_id): %v", err)
		}
		if i > 0 && id < last {
			t.Errorf("frame %d has thread_id %d < previous %d", i, id, last)
		}
		last = id
	}

	data, err := fs.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	const samplesPerFrame = (800 / 8) * 4
	const nchan = 8
	wantLen := 3 * samplesPerFrame * nchan
	if len(data) != wantLen {
		t.Errorf("Data() length = %d, want %d", len(data), wantLen)
	}
}

// TestReadFrameSetRewindsOnBoundary checks that reading a second frame set
// from the same stream picks up exactly where the first left off.
func TestReadFrameSetRewindsOnBoundary(t *testing.T) {
	var stream []byte
	stream = append(stream, frameBytes(t, 0, 0)...)
	stream = append(stream, frameBytes(t, 1, 0)...)
	r := bytes.NewReader(stream)

	fs1, err := ReadFrameSet(r, ReadOptions{Fanout: 4})
	if err != nil {
		t.Fatalf("ReadFrameSet 1: %v", err)
	}
	if n, _ := fs1.Header0.Get("frame_nr"); n != 0 {
		t.Errorf("fs1 frame_nr = %d, want 0", n)
	}

	fs2, err := ReadFrameSet(r, ReadOptions{Fanout: 4})
	if err != nil {
		t.Fatalf("ReadFrameSet 2: %v", err)
	}
	if n, _ := fs2.Header0.Get("frame_nr"); n != 1 {
		t.Errorf("fs2 frame_nr = %d, want 1", n)
	}
}

func TestReadFrameSetMissingThreadsIsIncomplete(t *testing.T) {
	stream := frameBytes(t, 0, 0)
	_, err := ReadFrameSet(bytes.NewReader(stream), ReadOptions{
		ThreadIDs: []int{0, 1},
		Fanout:    4,
	})
	if err == nil {
		t.Error("ReadFrameSet with a missing requested thread should fail")
	}
}

func TestFrameSetContains(t *testing.T) {
	stream := frameBytes(t, 0, 0)
	fs, err := ReadFrameSet(bytes.NewReader(stream), ReadOptions{Fanout: 4})
	if err != nil {
		t.Fatalf("ReadFrameSet: %v", err)
	}
	if !fs.Contains("thread_id") {
		t.Error(`Contains("thread_id") = false, want true`)
	}
	if fs.Contains("bcd_jday") {
		t.Error(`Contains("bcd_jday") = true, want false (not a legacy VDIF field)`)
	}
}
