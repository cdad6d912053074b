// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package export

import (
	"encoding/json"
	"math"

	"github.com/statdeck/statdeck/pkg/statwire"
	"github.com/statdeck/statdeck/pkg/weather"
)

// metricsPayload is the /metrics document. Nullable numbers are pointers so
// unknown readings serialize as JSON null rather than a sentinel a consumer
// would have to know about.
type metricsPayload struct {
	CPU      float64  `json:"cpu"`
	Mem      float64  `json:"mem"`
	GPU      float64  `json:"gpu"`
	DiskPct  float64  `json:"diskPct"`
	DiskMBps float64  `json:"diskMBps"`
	CPUTempF *float64 `json:"cpuTempF"`
	GPUTempF *float64 `json:"gpuTempF"`
	FreeC    *float64 `json:"freeC"`
	FreeD    *float64 `json:"freeD"`

	DataAgeMS int64 `json:"dataAgeMs"`
	UptimeMS  int64 `json:"uptimeMs"`

	Weather  weatherPayload                     `json:"weather"`
	Forecast [weather.ForecastDays]forecastSlot `json:"forecast"`
}

type weatherPayload struct {
	Location       string   `json:"location"`
	Description    string   `json:"description"`
	Icon           string   `json:"icon"`
	Temperature    *float64 `json:"temperature"`
	FeelsLike      *float64 `json:"feelsLike"`
	TempMin        *float64 `json:"tempMin"`
	TempMax        *float64 `json:"tempMax"`
	Humidity       *float64 `json:"humidity"`
	WindSpeed      *float64 `json:"windSpeed"`
	Updated        int64    `json:"updated"`
	TimezoneOffset int      `json:"timezoneOffset"`
	OK             bool     `json:"ok"`
	Connected      bool     `json:"connected"`
}

type forecastSlot struct {
	Slot        int      `json:"slot"`
	Valid       bool     `json:"valid"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Timestamp   int64    `json:"timestamp"`
	High        *float64 `json:"high"`
	Low         *float64 `json:"low"`
}

// MarshalJSON collapses an empty slot to its slot number and valid flag; a
// filled slot carries the whole summary.
func (f forecastSlot) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return json.Marshal(struct {
			Slot  int  `json:"slot"`
			Valid bool `json:"valid"`
		}{f.Slot, f.Valid})
	}
	type full forecastSlot
	return json.Marshal(full(f))
}

// nullableTemp maps NaN and the unknown-temperature sentinel to null.
func nullableTemp(v float64) *float64 {
	if math.IsNaN(v) || v < -100 {
		return nil
	}
	return &v
}

// nullableNonNeg maps NaN and negative sentinels to null.
func nullableNonNeg(v float64) *float64 {
	if math.IsNaN(v) || v < 0 {
		return nil
	}
	return &v
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func buildMetrics(snap statwire.Snapshot, ageMS, uptimeMS int64, rep *weather.Report, ok, connected bool) metricsPayload {
	return metricsPayload{
		CPU:       snap.CPUPct,
		Mem:       snap.MemPct,
		GPU:       snap.GPUPct,
		DiskPct:   snap.DiskPct,
		DiskMBps:  snap.DiskMBps,
		CPUTempF:  nullableTemp(snap.CPUTempF),
		GPUTempF:  nullableTemp(snap.GPUTempF),
		FreeC:     nullableNonNeg(snap.FreeCGB),
		FreeD:     nullableNonNeg(snap.FreeDGB),
		DataAgeMS: ageMS,
		UptimeMS:  uptimeMS,
		Weather:   buildWeather(rep, ok, connected),
		Forecast:  buildForecast(rep),
	}
}

func buildWeather(rep *weather.Report, ok, connected bool) weatherPayload {
	if rep == nil {
		return weatherPayload{OK: ok, Connected: connected}
	}
	cur := rep.Current

	var updated int64
	if !cur.Observed.IsZero() {
		updated = cur.Observed.Unix()
	}

	return weatherPayload{
		Location:       cur.City,
		Description:    cur.Description,
		Icon:           cur.Icon,
		Temperature:    nullable(cur.Temp),
		FeelsLike:      nullable(cur.FeelsLike),
		TempMin:        nullable(cur.TempMin),
		TempMax:        nullable(cur.TempMax),
		Humidity:       nullableNonNeg(cur.Humidity),
		WindSpeed:      nullableNonNeg(cur.WindSpeed),
		Updated:        updated,
		TimezoneOffset: cur.TZOffset,
		OK:             ok,
		Connected:      connected,
	}
}

func buildForecast(rep *weather.Report) [weather.ForecastDays]forecastSlot {
	var out [weather.ForecastDays]forecastSlot
	for i := range out {
		out[i].Slot = i
	}
	if rep == nil {
		return out
	}
	for i, d := range rep.Days {
		if !d.Valid {
			continue
		}
		var ts int64
		if !d.At.IsZero() {
			ts = d.At.Unix()
		}
		out[i] = forecastSlot{
			Slot:        i,
			Valid:       true,
			Label:       d.Label,
			Description: d.Description,
			Icon:        d.Icon,
			Timestamp:   ts,
			High:        nullable(d.TempMax),
			Low:         nullable(d.TempMin),
		}
	}
	return out
}
