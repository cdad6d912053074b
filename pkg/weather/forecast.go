// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package weather

import (
	"math"
	"time"
)

const (
	secondsPerDay = 86400
	middaySeconds = 12 * 3600
)

type bucket struct {
	used      bool
	tempMin   float64
	tempMax   float64
	repTS     int64
	bestDelta int64
	desc      string
	icon      string
}

// summarizeForecast folds the 3-hourly entries into ForecastDays per-day
// summaries. Days are local to the reported timezone offset; day zero is the
// local day of baseEpoch (the current observation). Each day's description
// and icon come from the entry closest to local noon, and its min/max span
// every entry of that day.
func summarizeForecast(entries []forecastEntry, tzOffset int, baseEpoch int64) [ForecastDays]Day {
	var days [ForecastDays]Day

	tz := int64(tzOffset)
	baseDay := (baseEpoch + tz) / secondsPerDay
	if baseDay <= 0 && len(entries) > 0 {
		baseDay = (entries[0].Dt + tz) / secondsPerDay
	}

	var buckets [ForecastDays]bucket
	for i := range buckets {
		buckets[i].tempMin = math.Inf(1)
		buckets[i].tempMax = math.Inf(-1)
		buckets[i].bestDelta = math.MaxInt64
		buckets[i].icon = "01d"
	}

	for _, e := range entries {
		if e.Dt == 0 {
			continue
		}
		idx := (e.Dt+tz)/secondsPerDay - baseDay
		if idx < 0 || idx >= ForecastDays {
			continue
		}
		b := &buckets[idx]
		b.used = true

		if v := num(e.Main.TempMin); !math.IsNaN(v) {
			b.tempMin = math.Min(b.tempMin, v)
		}
		if v := num(e.Main.TempMax); !math.IsNaN(v) {
			b.tempMax = math.Max(b.tempMax, v)
		}

		localSeconds := (e.Dt + tz) % secondsPerDay
		delta := localSeconds - middaySeconds
		if delta < 0 {
			delta = -delta
		}
		if delta < b.bestDelta {
			b.bestDelta = delta
			b.repTS = e.Dt
			b.desc, b.icon = condition(e.Weather)
		}
	}

	for i := range days {
		b := buckets[i]
		if !b.used {
			continue
		}
		d := &days[i]
		d.Valid = true
		d.At = time.Unix(b.repTS, 0)
		d.TempMin = b.tempMin
		d.TempMax = b.tempMax
		if math.IsInf(d.TempMin, 1) {
			d.TempMin = math.NaN()
		}
		if math.IsInf(d.TempMax, -1) {
			d.TempMax = math.NaN()
		}
		d.Description = b.desc
		d.Icon = b.icon
		d.Label = dayLabel(b.repTS, tzOffset, i == 0)
	}
	return days
}

func dayLabel(epoch int64, tzOffset int, today bool) string {
	if today {
		return "Today"
	}
	local := time.Unix(epoch, 0).UTC().Add(time.Duration(tzOffset) * time.Second)
	return local.Format("Mon")
}
