package vdif

import (
	"testing"
	"time"
)

func TestRefEpochTable(t *testing.T) {
	e0, err := RefEpoch(0)
	if err != nil {
		t.Fatalf("RefEpoch(0): %v", err)
	}
	want := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !e0.Equal(want) {
		t.Errorf("RefEpoch(0) = %v, want %v", e0, want)
	}
	e1, err := RefEpoch(1)
	if err != nil {
		t.Fatalf("RefEpoch(1): %v", err)
	}
	want1 := time.Date(2000, time.July, 1, 0, 0, 0, 0, time.UTC)
	if !e1.Equal(want1) {
		t.Errorf("RefEpoch(1) = %v, want %v", e1, want1)
	}
	e28, err := RefEpoch(28)
	if err != nil {
		t.Fatalf("RefEpoch(28): %v", err)
	}
	want28 := time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !e28.Equal(want28) {
		t.Errorf("RefEpoch(28) = %v, want %v", e28, want28)
	}
}

func TestTimeZeroFrameNr(t *testing.T) {
	ws := make([]uint32, 4)
	var err error
	ws, err = legacyFields.Set(ws, "ref_epoch", 28)
	if err != nil {
		t.Fatalf("set ref_epoch: %v", err)
	}
	ws, err = legacyFields.Set(ws, "seconds", 86400)
	if err != nil {
		t.Fatalf("set seconds: %v", err)
	}
	h := Header{kind: KindLegacy, words: ws}

	got, err := h.Time(0)
	if err != nil {
		t.Fatalf("Time: %v", err)
	}
	want := time.Date(2014, time.January, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Time() = %v, want %v", got, want)
	}
}

func TestTimeMissingFrameRate(t *testing.T) {
	ws := make([]uint32, 4)
	ws, _ = legacyFields.Set(ws, "frame_nr", 5)
	h := Header{kind: KindLegacy, words: ws}
	if _, err := h.Time(0); err == nil {
		t.Error("Time() with nonzero frame_nr and no framerate should fail")
	}
}

func TestSetTimeRoundTrip(t *testing.T) {
	in := time.Date(2020, time.March, 15, 12, 34, 56, 500000000, time.UTC)
	const framerate = 4000.0

	var h Header
	h.kind = KindLegacy
	h.words = make([]uint32, 4)
	h, err := h.SetTime(in, framerate)
	if err != nil {
		t.Fatalf("SetTime: %v", err)
	}
	out, err := h.Time(framerate)
	if err != nil {
		t.Fatalf("Time: %v", err)
	}
	diff := out.Sub(in)
	tolerance := time.Duration(0.5 / framerate * float64(time.Second))
	if diff > tolerance || diff < -tolerance {
		t.Errorf("round trip diff %v exceeds tolerance %v", diff, tolerance)
	}
}

func TestSetTimeWholeSecond(t *testing.T) {
	in := time.Date(2020, time.March, 15, 12, 34, 56, 0, time.UTC)
	var h Header
	h.kind = KindLegacy
	h.words = make([]uint32, 4)
	h, err := h.SetTime(in, 0)
	if err != nil {
		t.Fatalf("SetTime with no fractional second should not need a frame rate: %v", err)
	}
	frameNr, err := h.Get("frame_nr")
	if err != nil {
		t.Fatalf("Get(frame_nr): %v", err)
	}
	if frameNr != 0 {
		t.Errorf("frame_nr = %d, want 0 for a whole-second time", frameNr)
	}
}
