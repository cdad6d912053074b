// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The statdeck authors

package statwire

import (
	"errors"
	"fmt"
	"time"
)

// LinkStats tracks line and error counts for one ingest link. The reader and
// parser themselves stay silent about errors; whoever drives them feeds
// their outcomes in here for display and diagnostics.
type LinkStats struct {
	StartTime      time.Time
	LastAcceptTime time.Time

	// Counters
	Bytes      uint64
	TotalLines uint64
	Accepted   uint64
	Rejected   uint64
	Discarded  uint64 // oversized lines thrown away by the reader

	// Rates (calculated)
	LineRate float64 // accepted lines/sec
	ByteRate float64 // bytes/sec
}

// NewLinkStats creates a new statistics tracker.
func NewLinkStats() *LinkStats {
	return &LinkStats{
		StartTime: time.Now(),
	}
}

// CountBytes records n raw bytes read from the link.
func (s *LinkStats) CountBytes(n int) {
	s.Bytes += uint64(n)
}

// CountLine records the parse outcome for one emitted candidate line.
func (s *LinkStats) CountLine(parseErr error) {
	s.TotalLines++
	if parseErr != nil {
		if errors.Is(parseErr, ErrShortLine) {
			s.Rejected++
		}
		return
	}
	s.Accepted++
	s.LastAcceptTime = time.Now()
}

// SyncDiscards copies the reader's oversized-line count.
func (s *LinkStats) SyncDiscards(r *LineReader) {
	s.Discarded = uint64(r.Discarded())
}

// CalculateRates recalculates the accepted-line and byte rates.
func (s *LinkStats) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.LineRate = float64(s.Accepted) / elapsed
		s.ByteRate = float64(s.Bytes) / elapsed
	}
}

// String returns a formatted statistics summary.
func (s *LinkStats) String() string {
	s.CalculateRates()

	var acceptPercent, rejectPercent float64
	if s.TotalLines > 0 {
		acceptPercent = float64(s.Accepted) * 100.0 / float64(s.TotalLines)
		rejectPercent = float64(s.Rejected) * 100.0 / float64(s.TotalLines)
	}

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Link Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Bytes:           %8d\n", s.Bytes)
	result += fmt.Sprintf("Total Lines:     %8d\n", s.TotalLines)
	result += fmt.Sprintf("Accepted:        %8d (%.1f%%)\n", s.Accepted, acceptPercent)
	if s.Rejected > 0 {
		result += fmt.Sprintf("Rejected:        %8d (%.1f%%)\n", s.Rejected, rejectPercent)
	}
	if s.Discarded > 0 {
		result += fmt.Sprintf("Oversized:       %8d\n", s.Discarded)
	}
	result += fmt.Sprintf("Line Rate:       %8.1f lines/sec\n", s.LineRate)
	result += fmt.Sprintf("Byte Rate:       %8.1f bytes/sec\n", s.ByteRate)
	result += "==================================\n"

	return result
}

// Reset resets all counters.
func (s *LinkStats) Reset() {
	*s = LinkStats{StartTime: time.Now()}
}
