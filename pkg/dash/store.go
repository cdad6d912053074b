// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package dash

import (
	"sync/atomic"
	"time"

	"github.com/statdeck/statdeck/pkg/statwire"
)

type sample struct {
	snap statwire.Snapshot
	at   time.Time
}

// Store holds the latest accepted snapshot together with its receipt time.
// One goroutine writes (the ingest path); the render loop and the export
// server read concurrently without locks.
type Store struct {
	started time.Time
	cur     atomic.Pointer[sample]
}

// NewStore creates an empty store. It reports a negative data age until the
// first Put.
func NewStore() *Store {
	return &Store{started: time.Now()}
}

// Put replaces the current snapshot and stamps it with the current time.
func (st *Store) Put(s statwire.Snapshot) {
	st.cur.Store(&sample{snap: s, at: time.Now()})
}

// Latest returns the current snapshot. ok is false before the first Put.
func (st *Store) Latest() (statwire.Snapshot, bool) {
	cur := st.cur.Load()
	if cur == nil {
		return statwire.Snapshot{}, false
	}
	return cur.snap, true
}

// Age returns how long ago the current snapshot arrived. ok is false before
// the first Put.
func (st *Store) Age() (time.Duration, bool) {
	cur := st.cur.Load()
	if cur == nil {
		return 0, false
	}
	return time.Since(cur.at), true
}

// AgeMillis returns the data age in milliseconds, or -1 before the first
// Put. This is the freshness value exported over the wire.
func (st *Store) AgeMillis() int64 {
	age, ok := st.Age()
	if !ok {
		return -1
	}
	return age.Milliseconds()
}

// Uptime returns how long the store (and so the process) has been running.
func (st *Store) Uptime() time.Duration {
	return time.Since(st.started)
}
