// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The statdeck authors

package statwire

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrShortLine is returned when a candidate line carries fewer than
// MinFields fields. The line is rejected whole; the caller keeps its prior
// snapshot.
var ErrShortLine = errors.New("short line")

// ParseLine decodes one candidate line into a Snapshot.
//
// The parser is strict about shape and lenient about content: a token count
// below MinFields rejects the entire line, while an individual token that
// fails numeric conversion becomes zero for that field only and the line is
// still accepted. Tokens past the known field set are ignored, except the
// optional tenth (indoor temperature). Values are not clamped or otherwise
// normalized here.
func ParseLine(line string) (Snapshot, error) {
	tokens := strings.Split(line, FieldDelim)
	if len(tokens) < MinFields {
		return Snapshot{}, fmt.Errorf("%w: %d of %d fields", ErrShortLine, len(tokens), MinFields)
	}

	s := Snapshot{
		CPUPct:      parseField(tokens[fieldCPUPct]),
		MemPct:      parseField(tokens[fieldMemPct]),
		GPUPct:      parseField(tokens[fieldGPUPct]),
		DiskPct:     parseField(tokens[fieldDiskPct]),
		DiskMBps:    parseField(tokens[fieldDiskMBps]),
		CPUTempF:    parseField(tokens[fieldCPUTempF]),
		GPUTempF:    parseField(tokens[fieldGPUTempF]),
		FreeCGB:     parseField(tokens[fieldFreeCGB]),
		FreeDGB:     parseField(tokens[fieldFreeDGB]),
		IndoorTempF: TempUnknown,
	}
	if len(tokens) > fieldIndoorTempF {
		s.IndoorTempF = parseField(tokens[fieldIndoorTempF])
	}
	return s, nil
}

// parseField converts one token to a float, defaulting to zero when the
// token is not a number.
func parseField(tok string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
	if err != nil {
		return 0
	}
	return v
}
