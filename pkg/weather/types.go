// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package weather

import (
	"math"
	"time"
)

// ForecastDays is how many daily summaries a report carries, today included.
const ForecastDays = 3

// Current holds one observation. Float fields that the service did not
// report are NaN.
type Current struct {
	City        string
	Description string
	Icon        string // OWM icon code, e.g. "01d"
	Temp        float64
	FeelsLike   float64
	TempMin     float64
	TempMax     float64
	Humidity    float64
	Pressure    float64
	WindSpeed   float64
	Observed    time.Time
	TZOffset    int // seconds east of UTC at the observed location
}

// Day is one daily forecast summary.
type Day struct {
	Valid       bool
	Label       string // "Today", then abbreviated weekdays
	TempMin     float64
	TempMax     float64
	Description string
	Icon        string
	At          time.Time // timestamp of the representative entry
}

// Report is the result of one full fetch. ForecastOK is false when the
// current observation succeeded but the forecast request did not; the days
// are then all invalid.
type Report struct {
	Current    Current
	Days       [ForecastDays]Day
	ForecastOK bool
	FetchedAt  time.Time
}

// Wire types for the OpenWeatherMap 2.5 API. Numeric fields are pointers so
// absent keys surface as NaN instead of zero.

type apiCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type apiMain struct {
	Temp      *float64 `json:"temp"`
	FeelsLike *float64 `json:"feels_like"`
	TempMin   *float64 `json:"temp_min"`
	TempMax   *float64 `json:"temp_max"`
	Pressure  *float64 `json:"pressure"`
	Humidity  *float64 `json:"humidity"`
}

type currentResponse struct {
	Weather []apiCondition `json:"weather"`
	Main    apiMain        `json:"main"`
	Wind    struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Dt       int64  `json:"dt"`
	Timezone int    `json:"timezone"`
	Name     string `json:"name"`
}

type forecastEntry struct {
	Dt      int64          `json:"dt"`
	Main    apiMain        `json:"main"`
	Weather []apiCondition `json:"weather"`
}

type forecastResponse struct {
	List []forecastEntry `json:"list"`
	City struct {
		Timezone *int `json:"timezone"`
	} `json:"city"`
}

func num(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

func condition(w []apiCondition) (desc, icon string) {
	desc, icon = "n/a", "01d"
	if len(w) == 0 {
		return desc, icon
	}
	if w[0].Description != "" {
		desc = w[0].Description
	}
	if w[0].Icon != "" {
		icon = w[0].Icon
	}
	return desc, icon
}
