// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package weather

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Friday 2024-10-04 00:00 UTC, exactly 20000 days after the epoch.
const day0 = int64(20000 * secondsPerDay)

const tzPlusTwo = 7200

func ptr(v float64) *float64 { return &v }

func fe(dt int64, tmin, tmax float64, desc, icon string) forecastEntry {
	e := forecastEntry{Dt: dt}
	e.Main.TempMin = ptr(tmin)
	e.Main.TempMax = ptr(tmax)
	e.Weather = []apiCondition{{Description: desc, Icon: icon}}
	return e
}

func TestSummarizeBucketsByLocalDay(t *testing.T) {
	base := day0 + 10*3600 // 10:00 UTC, noon local
	entries := []forecastEntry{
		fe(day0+9*3600, 10, 15, "light rain", "10d"),       // local 11:00, day 0
		fe(day0+12*3600, 8, 18, "clear sky", "01d"),        // local 14:00, day 0
		fe(day0+secondsPerDay+10*3600, 5, 12, "few clouds", "02d"), // local noon, day 1
		fe(day0+secondsPerDay+22*3600, 2, 9, "snow", "13n"),        // local 00:00, rolls to day 2
		fe(day0+2*secondsPerDay+11*3600, 4, 14, "mist", "50d"),     // local 13:00, day 2
		fe(day0+3*secondsPerDay+12*3600, 0, 1, "ignored", "01d"),   // day 3, out of range
		{}, // zero timestamp, skipped
	}

	days := summarizeForecast(entries, tzPlusTwo, base)

	require.True(t, days[0].Valid)
	require.True(t, days[1].Valid)
	require.True(t, days[2].Valid)

	// Day 0 spans both entries; the 11:00 one is nearest local noon.
	assert.Equal(t, 8.0, days[0].TempMin)
	assert.Equal(t, 18.0, days[0].TempMax)
	assert.Equal(t, "light rain", days[0].Description)
	assert.Equal(t, "10d", days[0].Icon)
	assert.Equal(t, "Today", days[0].Label)

	assert.Equal(t, "few clouds", days[1].Description)
	assert.Equal(t, 5.0, days[1].TempMin)
	assert.Equal(t, "Sat", days[1].Label)

	// Day 2 holds the midnight rollover entry plus its own 13:00 entry;
	// the latter wins the noon contest.
	assert.Equal(t, 2.0, days[2].TempMin)
	assert.Equal(t, 14.0, days[2].TempMax)
	assert.Equal(t, "mist", days[2].Description)
	assert.Equal(t, "Sun", days[2].Label)
}

func TestSummarizeEmptyList(t *testing.T) {
	days := summarizeForecast(nil, tzPlusTwo, day0)
	for i, d := range days {
		assert.False(t, d.Valid, "day %d", i)
	}
}

func TestSummarizeIgnoresPastEntries(t *testing.T) {
	base := day0 + 10*3600
	entries := []forecastEntry{
		fe(day0-5*3600, 1, 2, "stale", "01d"), // previous local day
		fe(day0+11*3600, 7, 9, "haze", "50d"),
	}
	days := summarizeForecast(entries, tzPlusTwo, base)
	assert.True(t, days[0].Valid)
	assert.Equal(t, "haze", days[0].Description)
	assert.False(t, days[1].Valid)
	assert.False(t, days[2].Valid)
}

func TestSummarizeBaseDayFromFirstEntry(t *testing.T) {
	// A zero observation epoch falls back to the first entry's day.
	entries := []forecastEntry{
		fe(day0+9*3600, 10, 15, "clear sky", "01d"),
		fe(day0+secondsPerDay+9*3600, 3, 6, "fog", "50n"),
	}
	days := summarizeForecast(entries, tzPlusTwo, 0)
	assert.True(t, days[0].Valid)
	assert.True(t, days[1].Valid)
	assert.Equal(t, "clear sky", days[0].Description)
}

func TestSummarizeMissingTempsStayNaN(t *testing.T) {
	e := forecastEntry{Dt: day0 + 12*3600}
	e.Weather = []apiCondition{{Description: "overcast clouds", Icon: "04d"}}

	days := summarizeForecast([]forecastEntry{e}, 0, day0+12*3600)
	require.True(t, days[0].Valid)
	assert.True(t, math.IsNaN(days[0].TempMin))
	assert.True(t, math.IsNaN(days[0].TempMax))
	assert.Equal(t, "overcast clouds", days[0].Description)
}

func TestSummarizeMissingConditionDefaults(t *testing.T) {
	e := forecastEntry{Dt: day0 + 12*3600}
	e.Main.TempMin = ptr(1)
	e.Main.TempMax = ptr(2)

	days := summarizeForecast([]forecastEntry{e}, 0, day0+12*3600)
	require.True(t, days[0].Valid)
	assert.Equal(t, "n/a", days[0].Description)
	assert.Equal(t, "01d", days[0].Icon)
}

func TestDayLabelUsesLocalWeekday(t *testing.T) {
	// 23:00 UTC Friday is already Saturday at UTC+2.
	ts := day0 + 23*3600
	assert.Equal(t, "Sat", dayLabel(ts, tzPlusTwo, false))
	assert.Equal(t, "Fri", dayLabel(ts, 0, false))
	assert.Equal(t, "Today", dayLabel(ts, tzPlusTwo, true))
}
