// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The statdeck authors

// Package statwire implements the statdeck serial wire format.
//
// The format is line-oriented ASCII: one record per line, newline terminated
// (carriage returns are ignored), with comma-separated numeric fields. A
// record carries at least nine fields; a tenth optional field and anything
// after it allow newer feeders to talk to older displays and vice versa.
// This package provides the bounded line assembler, the record parser, the
// line/readout formatters, and the CBOR push-frame codec used by the
// WebSocket stream.
package statwire

// Wire framing
const (
	Terminator     = '\n'
	CarriageReturn = '\r'
	FieldDelim     = ","
)

// Line limits
const (
	MaxLineLen = 200 // longest accepted line, bytes, terminator excluded
	MinFields  = 9   // records with fewer fields are rejected whole
)

// Field positions within a record
const (
	fieldCPUPct = iota
	fieldMemPct
	fieldGPUPct
	fieldDiskPct
	fieldDiskMBps
	fieldCPUTempF
	fieldGPUTempF
	fieldFreeCGB
	fieldFreeDGB
	fieldIndoorTempF // optional
)

// Sentinels for fields the feeder could not sample. They are carried on the
// wire and preserved through parsing; consumers test them with TempKnown and
// SpaceKnown rather than comparing exactly.
const (
	TempUnknown  = -999.0
	SpaceUnknown = -1.0
)

// Push-frame types carried over the WebSocket stream
const (
	FrameSnapshot uint8 = 0x01
)

// TempKnown reports whether a temperature field holds a real reading
// rather than the unknown sentinel.
func TempKnown(v float64) bool {
	return v > -900
}

// SpaceKnown reports whether a free-space field holds a real reading.
func SpaceKnown(v float64) bool {
	return v >= 0
}

// ClampPct clamps a percentage to the displayable 0-100 range. Parsing never
// clamps; this is for consumers at animate/render time.
func ClampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
