/*
NAME
  doc.go

DESCRIPTION
  Package baseband provides shared error values and a leveled logger type
  used across the bitfield, bcd, payload, mark5b and vdif packages of this
  module. See README.md for the wire-format and package overview.

LICENSE
  Copyright (c) 2026 The Baseband Authors. All rights reserved.
  Use of this source code is governed by a BSD-style license that can be
  found in the LICENSE file.
*/

// Package baseband provides reading, writing and decoding of Very Long
// Baseline Interferometry (VLBI) baseband data in the Mark 5B and VDIF wire
// formats, including VDIF's Extended Data Versions and the Mark 5B-over-VDIF
// encapsulation (EDV 0xAB).
//
// The core is a pure, synchronous, in-process codec: given a stream of raw
// bytes it yields typed frames; given frames it yields bytes. It does not
// open files, manage sockets, or perform correlation, dedispersion, or RFI
// detection; those are the concern of a calling application.
package baseband
