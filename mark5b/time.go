/*
NAME
  time.go

DESCRIPTION
  time.go converts between a Mark 5B header's BCD day/seconds/fraction
  fields and absolute time. The day field only carries three BCD digits
  (0-999), so reading requires a reference MJD to resolve which thousand-day
  block ("kday") the frame falls in; any reference within 499 days of the
  true day resolves to the same kday. Grounded on Mark5BHeader.kday/jday/time
  and the ref_mjd tolerance exercised by test_mark5b.py::test_header
  (header5/header6).

LICENSE
  Copyright (c) 2026 The Baseband Authors. All rights reserved.
  Use of this source code is governed by a BSD-style license that can be
  found in the LICENSE file.
*/

package mark5b

import (
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/vlbi-go/baseband/bcd"
)

// mjdEpoch is MJD 0: 1858-11-17 UTC.
var mjdEpoch = time.Date(1858, time.November, 17, 0, 0, 0, 0, time.UTC)

// fractionUnit is the duration represented by one count of bcd_fraction:
// four decimal digits of a second, i.e. 100 microseconds.
const fractionUnit = 100 * time.Microsecond

// Kday resolves the thousands-of-days component of this header's MJD,
// given a reference MJD within 499 days of the frame's true time.
func (h Header) Kday(refMJD float64) (int, error) {
	jday, err := h.JDay()
	if err != nil {
		return 0, err
	}
	return int(math.Round((refMJD-float64(jday))/1000)) * 1000, nil
}

// JDay decodes the header's three-digit BCD day-of-thousand field.
func (h Header) JDay() (int, error) {
	raw, err := h.Get("bcd_jday")
	if err != nil {
		return 0, err
	}
	jday, err := bcd.Decode(uint32(raw))
	if err != nil {
		return 0, errors.Wrap(err, "mark5b: bcd_jday")
	}
	return int(jday), nil
}

// Seconds decodes the header's BCD seconds-of-day field.
func (h Header) Seconds() (int, error) {
	raw, err := h.Get("bcd_seconds")
	if err != nil {
		return 0, err
	}
	seconds, err := bcd.Decode(uint32(raw))
	if err != nil {
		return 0, errors.Wrap(err, "mark5b: bcd_seconds")
	}
	return int(seconds), nil
}

// Fraction decodes the header's four-digit BCD fractional-second field, in
// units of 100 microseconds (0..9999).
func (h Header) Fraction() (int, error) {
	raw, err := h.Get("bcd_fraction")
	if err != nil {
		return 0, err
	}
	frac, err := bcd.Decode(uint32(raw))
	if err != nil {
		return 0, errors.Wrap(err, "mark5b: bcd_fraction")
	}
	return int(frac), nil
}

// Time decodes this header's BCD timestamp to absolute UTC time, resolving
// the day field's thousand-day ambiguity against refMJD.
func (h Header) Time(refMJD float64) (time.Time, error) {
	jday, err := h.JDay()
	if err != nil {
		return time.Time{}, err
	}
	kday, err := h.Kday(refMJD)
	if err != nil {
		return time.Time{}, err
	}
	seconds, err := h.Seconds()
	if err != nil {
		return time.Time{}, err
	}
	fraction, err := h.Fraction()
	if err != nil {
		return time.Time{}, err
	}
	day := mjdEpoch.AddDate(0, 0, kday+jday)
	return day.Add(time.Duration(seconds) * time.Second).Add(time.Duration(fraction) * fractionUnit), nil
}

// SetTime encodes t as this header's BCD day/seconds/fraction fields. The
// day field only ever carries t's day modulo 1000; callers recover the full
// day via Time's refMJD parameter.
func (h *Header) SetTime(t time.Time) error {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	days := int(math.Round(midnight.Sub(mjdEpoch).Hours() / 24))
	sinceMidnight := t.Sub(midnight)
	seconds := int(sinceMidnight / time.Second)
	remainder := sinceMidnight - time.Duration(seconds)*time.Second
	fraction := int(math.Round(float64(remainder) / float64(fractionUnit)))
	if fraction == 10000 {
		fraction = 0
		seconds++
		if seconds == 86400 {
			seconds = 0
			days++
		}
	}

	words, err := fields.Set(h.words, "bcd_jday", uint64(bcd.Encode(uint32(days%1000))))
	if err != nil {
		return err
	}
	words, err = fields.Set(words, "bcd_seconds", uint64(bcd.Encode(uint32(seconds))))
	if err != nil {
		return err
	}
	words, err = fields.Set(words, "bcd_fraction", uint64(bcd.Encode(uint32(fraction))))
	if err != nil {
		return err
	}
	h.words = words
	return nil
}
