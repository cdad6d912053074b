// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The statdeck authors

package statwire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Push frames are the binary messages carried by the WebSocket stream
// endpoint: a CBOR array [frame_type, body] whose body is a map with small
// integer keys. Integer keys keep frames compact and let either end add
// fields without breaking the other.

// wireFrame is the outer [type, body] envelope.
type wireFrame struct {
	_    struct{} `cbor:",toarray"`
	Type uint8
	Body cbor.RawMessage
}

// snapshotBody is the FrameSnapshot body. Key 10 carries the freshness age
// in milliseconds at send time, -1 before the first accepted parse.
type snapshotBody struct {
	CPUPct      float64 `cbor:"0,keyasint"`
	MemPct      float64 `cbor:"1,keyasint"`
	GPUPct      float64 `cbor:"2,keyasint"`
	DiskPct     float64 `cbor:"3,keyasint"`
	DiskMBps    float64 `cbor:"4,keyasint"`
	CPUTempF    float64 `cbor:"5,keyasint"`
	GPUTempF    float64 `cbor:"6,keyasint"`
	FreeCGB     float64 `cbor:"7,keyasint"`
	FreeDGB     float64 `cbor:"8,keyasint"`
	IndoorTempF float64 `cbor:"9,keyasint"`
	AgeMS       int64   `cbor:"10,keyasint"`
}

// EncodeSnapshotFrame encodes a snapshot push frame.
func EncodeSnapshotFrame(s Snapshot, ageMS int64) ([]byte, error) {
	body, err := cbor.Marshal(snapshotBody{
		CPUPct:      s.CPUPct,
		MemPct:      s.MemPct,
		GPUPct:      s.GPUPct,
		DiskPct:     s.DiskPct,
		DiskMBps:    s.DiskMBps,
		CPUTempF:    s.CPUTempF,
		GPUTempF:    s.GPUTempF,
		FreeCGB:     s.FreeCGB,
		FreeDGB:     s.FreeDGB,
		IndoorTempF: s.IndoorTempF,
		AgeMS:       ageMS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot body: %w", err)
	}
	return cbor.Marshal(wireFrame{Type: FrameSnapshot, Body: body})
}

// DecodeSnapshotFrame decodes a snapshot push frame, returning the snapshot
// and the sender-side freshness age in milliseconds.
func DecodeSnapshotFrame(data []byte) (Snapshot, int64, error) {
	if len(data) == 0 {
		return Snapshot{}, 0, fmt.Errorf("empty frame")
	}

	var f wireFrame
	if err := cbor.Unmarshal(data, &f); err != nil {
		return Snapshot{}, 0, fmt.Errorf("failed to decode frame: %w", err)
	}
	if f.Type != FrameSnapshot {
		return Snapshot{}, 0, fmt.Errorf("unexpected frame type 0x%02X", f.Type)
	}

	var b snapshotBody
	if err := cbor.Unmarshal(f.Body, &b); err != nil {
		return Snapshot{}, 0, fmt.Errorf("failed to decode snapshot body: %w", err)
	}
	s := Snapshot{
		CPUPct:      b.CPUPct,
		MemPct:      b.MemPct,
		GPUPct:      b.GPUPct,
		DiskPct:     b.DiskPct,
		DiskMBps:    b.DiskMBps,
		CPUTempF:    b.CPUTempF,
		GPUTempF:    b.GPUTempF,
		FreeCGB:     b.FreeCGB,
		FreeDGB:     b.FreeDGB,
		IndoorTempF: b.IndoorTempF,
	}
	return s, b.AgeMS, nil
}
