// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The statdeck authors

package statwire

// LineReader assembles raw input bytes into bounded, newline-delimited
// candidate lines. Carriage returns are skipped. A line that outgrows
// MaxLineLen before its terminator is discarded whole: the reader drops the
// accumulated content and keeps dropping until the next terminator
// resynchronizes it, so one oversized burst cannot leak a partial record.
type LineReader struct {
	buf      []byte
	n        int
	dropping bool
	discards int
}

// NewLineReader creates a line reader with the standard capacity.
func NewLineReader() *LineReader {
	return &LineReader{
		buf: make([]byte, MaxLineLen),
	}
}

// Reset returns the reader to its initial state. The discard counter is
// preserved.
func (r *LineReader) Reset() {
	r.n = 0
	r.dropping = false
}

// Discarded returns how many oversized lines have been thrown away since the
// reader was created.
func (r *LineReader) Discarded() int {
	return r.discards
}

// FeedByte processes a single input byte. When the byte completes a line it
// returns the accumulated content and true; otherwise it returns "", false.
// Exactly one line is emitted per terminator, and nothing is emitted before
// one arrives. The terminator that ends an oversized line emits nothing: it
// only ends the discard.
func (r *LineReader) FeedByte(b byte) (string, bool) {
	switch b {
	case CarriageReturn:
		return "", false

	case Terminator:
		if r.dropping {
			r.dropping = false
			r.n = 0
			return "", false
		}
		line := string(r.buf[:r.n])
		r.n = 0
		return line, true
	}

	if r.dropping {
		return "", false
	}
	if r.n == len(r.buf) {
		// Overflow: throw away the partial line and resync on the
		// next terminator.
		r.n = 0
		r.dropping = true
		r.discards++
		return "", false
	}
	r.buf[r.n] = b
	r.n++
	return "", false
}
