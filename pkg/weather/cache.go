// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package weather

import "sync"

// Cache shares the latest report between whoever refreshes it (the dashboard
// loop or a headless refresh loop) and whoever reads it (the export server).
// A failed refresh keeps the previous report so consumers can show stale data
// with an offline flag instead of going blank.
type Cache struct {
	mu      sync.RWMutex
	report  *Report
	lastErr error
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Update records the outcome of one refresh. A nil report with a non-nil
// error leaves the previously cached report in place.
func (c *Cache) Update(rep *Report, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rep != nil {
		c.report = rep
	}
	c.lastErr = err
}

// Latest returns the most recent report (nil before the first successful
// refresh) and the error from the last refresh attempt.
func (c *Cache) Latest() (*Report, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.report, c.lastErr
}

// OK reports whether the last refresh attempt succeeded.
func (c *Cache) OK() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr == nil && c.report != nil
}

// Connected reports whether any refresh has ever succeeded.
func (c *Cache) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.report != nil
}
