// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The statdeck authors

package statwire

import (
	"fmt"
	"strings"
	"time"
)

// FormatLine renders a snapshot as one wire record, terminator excluded.
// Percentages, temperatures and free space carry one decimal, the disk rate
// two, matching what the stock feeder emits. The optional tenth field is
// written only when the indoor temperature is known, so old consumers keep
// seeing nine fields.
func FormatLine(s Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%.1f,%.1f,%.1f,%.1f,%.2f,%.1f,%.1f,%.1f,%.1f",
		s.CPUPct, s.MemPct, s.GPUPct, s.DiskPct, s.DiskMBps,
		s.CPUTempF, s.GPUTempF, s.FreeCGB, s.FreeDGB)
	if s.HasIndoor() {
		fmt.Fprintf(&b, ",%.1f", s.IndoorTempF)
	}
	return b.String()
}

// FormatSnapshot formats a snapshot into a human-readable string for log
// output. Unknown sentinel fields print as "--".
func FormatSnapshot(s Snapshot, ts time.Time) string {
	result := fmt.Sprintf("[%s] cpu=%.1f%% mem=%.1f%% gpu=%.1f%% disk=%.1f%% io=%.2f MB/s\n",
		ts.Format("15:04:05.000"), s.CPUPct, s.MemPct, s.GPUPct, s.DiskPct, s.DiskMBps)
	result += fmt.Sprintf("  cpuTemp=%s gpuTemp=%s freeC=%s freeD=%s",
		formatTemp(s.CPUTempF), formatTemp(s.GPUTempF),
		formatSpace(s.FreeCGB), formatSpace(s.FreeDGB))
	if s.HasIndoor() {
		result += fmt.Sprintf(" indoor=%s", formatTemp(s.IndoorTempF))
	}
	return result + "\n"
}

func formatTemp(v float64) string {
	if !TempKnown(v) {
		return "--"
	}
	return fmt.Sprintf("%.1f°F", v)
}

func formatSpace(v float64) string {
	if !SpaceKnown(v) {
		return "--"
	}
	return fmt.Sprintf("%.0f GB", v)
}
