// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The statdeck authors

package statwire

// Snapshot is one complete set of monitored values as carried by a single
// wire record. Values are stored exactly as parsed: percentages may sit
// outside 0-100 and sentinel values are preserved, so diagnostics see what
// the feeder actually sent. Consumers clamp at display time.
type Snapshot struct {
	CPUPct   float64
	MemPct   float64
	GPUPct   float64
	DiskPct  float64
	DiskMBps float64
	CPUTempF float64
	GPUTempF float64
	FreeCGB  float64
	FreeDGB  float64

	// IndoorTempF comes from the optional tenth field and holds
	// TempUnknown when the feeder omitted it.
	IndoorTempF float64
}

// EmptySnapshot returns a snapshot with every optional value at its unknown
// sentinel: the state of a display before the first record arrives.
func EmptySnapshot() Snapshot {
	return Snapshot{
		CPUTempF:    TempUnknown,
		GPUTempF:    TempUnknown,
		IndoorTempF: TempUnknown,
		FreeCGB:     SpaceUnknown,
		FreeDGB:     SpaceUnknown,
	}
}

// HasIndoor reports whether the optional indoor temperature was present.
func (s Snapshot) HasIndoor() bool {
	return TempKnown(s.IndoorTempF)
}

// HasGPU reports whether the GPU temperature was sampled. Feeders without
// an NVML-capable GPU send the sentinel.
func (s Snapshot) HasGPU() bool {
	return TempKnown(s.GPUTempF)
}
