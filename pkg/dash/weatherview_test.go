// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package dash

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/statdeck/statdeck/pkg/settings"
	"github.com/statdeck/statdeck/pkg/weather"
)

func testReport() *weather.Report {
	rep := &weather.Report{ForecastOK: true}
	rep.Current = weather.Current{
		City:        "Bergen",
		Description: "scattered clouds",
		Icon:        "03d",
		Temp:        71.6,
		FeelsLike:   70.2,
		TempMin:     66,
		TempMax:     75,
		Humidity:    48,
		Pressure:    1014,
		WindSpeed:   6.9,
	}
	rep.Days[0] = weather.Day{Valid: true, Label: "Today", TempMin: 60, TempMax: 68, Description: "light rain"}
	rep.Days[1] = weather.Day{Valid: true, Label: "Sat", TempMin: 55, TempMax: 64, Description: "clear sky"}
	return rep
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Scattered Clouds", titleCase("scattered clouds"))
	assert.Equal(t, "Light Rain", titleCase("LIGHT RAIN"))
	assert.Equal(t, "Mist", titleCase("mist"))
	assert.Equal(t, "n/a", titleCase(""))
}

func TestMarqueeText(t *testing.T) {
	got := marqueeText(testReport(), settings.UnitsImperial)
	assert.Equal(t, "Bergen | Scattered Clouds | Temp 72F (66F/75F) | Hum 48% | Wind 6.9 mph", got)
}

func TestMarqueeTextMissingValues(t *testing.T) {
	rep := testReport()
	rep.Current.City = ""
	rep.Current.Humidity = math.NaN()
	rep.Current.WindSpeed = math.NaN()

	got := marqueeText(rep, settings.UnitsImperial)
	assert.True(t, strings.HasPrefix(got, "Weather | "), got)
	assert.Contains(t, got, "Hum --%")
	assert.Contains(t, got, "Wind -- mph")
}

func TestMarqueeTextMetricUnits(t *testing.T) {
	got := marqueeText(testReport(), settings.UnitsMetric)
	assert.Contains(t, got, "Temp 72C")
	assert.Contains(t, got, "Wind 6.9 m/s")
}

func TestMarqueeTextNilReport(t *testing.T) {
	assert.Equal(t, "Fetching data ...", marqueeText(nil, settings.UnitsImperial))
}

func TestMarqueeWindowWraps(t *testing.T) {
	// Period is text length plus the gap.
	text := "abc"
	n := marqueeLen(text)
	assert.Equal(t, 3+marqueeGap, n)

	assert.Equal(t, "abc  ", marqueeWindow(text, 0, 5))
	assert.Equal(t, " abc ", marqueeWindow(text, n-1, 5))
	assert.Equal(t, "abc  ", marqueeWindow(text, n, 5), "offset wraps at the period")
}

func TestMarqueeWindowDegenerate(t *testing.T) {
	assert.Equal(t, "", marqueeWindow("abc", 0, 0))
	assert.Equal(t, "   ", marqueeWindow("", 0, 3))
}

func TestRenderWeatherNotConfigured(t *testing.T) {
	out := renderWeather(80, nil, nil, false, 0, settings.UnitsImperial, "14:02", "footer")
	assert.Contains(t, out, "not configured")
	assert.Contains(t, out, "footer")
}

func TestRenderWeatherFetching(t *testing.T) {
	out := renderWeather(80, nil, nil, true, 0, settings.UnitsImperial, "14:02", "footer")
	assert.Contains(t, out, "Fetching weather")
	assert.Contains(t, out, "14:02")
}

func TestRenderWeatherReport(t *testing.T) {
	out := renderWeather(80, testReport(), nil, true, 0, settings.UnitsImperial, "14:02", "footer")

	assert.Contains(t, out, "Bergen")
	assert.Contains(t, out, "72F")
	assert.Contains(t, out, "Feels 70F")
	assert.Contains(t, out, "Scattered Clouds")
	assert.Contains(t, out, "Humidity 48%")
	assert.Contains(t, out, "Wind 6.9 mph")
	assert.Contains(t, out, "Pressure 1014 hPa")
	assert.Contains(t, out, "Today")
	assert.Contains(t, out, "Sat")
	assert.Contains(t, out, "Updated")
	// The third day never arrived: its card renders placeholders.
	assert.Contains(t, out, "--")
}

func TestRenderWeatherOffline(t *testing.T) {
	out := renderWeather(80, testReport(), assert.AnError, true, 0, settings.UnitsImperial, "14:02", "footer")
	assert.Contains(t, out, "Offline")
}
