// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package export

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statdeck/statdeck/pkg/dash"
	"github.com/statdeck/statdeck/pkg/settings"
	"github.com/statdeck/statdeck/pkg/statwire"
	"github.com/statdeck/statdeck/pkg/weather"
)

func testSnapshot() statwire.Snapshot {
	return statwire.Snapshot{
		CPUPct: 50, MemPct: 60, GPUPct: 70, DiskPct: 10, DiskMBps: 1.5,
		CPUTempF: 95, GPUTempF: 140, FreeCGB: 200, FreeDGB: 400,
		IndoorTempF: statwire.TempUnknown,
	}
}

func testReport() *weather.Report {
	rep := &weather.Report{ForecastOK: true, FetchedAt: time.Now()}
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
		Observed:    time.Unix(1700000000, 0),
		TZOffset:    3600,
	}
	rep.Days[0] = weather.Day{
		Valid: true, Label: "Today", TempMin: 60, TempMax: 68,
		Description: "light rain", Icon: "10d", At: time.Unix(1700010000, 0),
	}
	rep.Days[1] = weather.Day{
		Valid: true, Label: "Sat", TempMin: 55, TempMax: 64,
		Description: "clear sky", Icon: "01d", At: time.Unix(1700096400, 0),
	}
	return rep
}

func getJSON(t *testing.T, h http.Handler, path string) map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	return doc
}

func TestMetricsBeforeFirstLine(t *testing.T) {
	s := New(Options{Store: dash.NewStore(), Units: settings.UnitsImperial})
	doc := getJSON(t, s.Handler(), "/metrics")

	assert.Equal(t, 0.0, doc["cpu"])
	assert.Equal(t, 0.0, doc["diskMBps"])
	assert.Nil(t, doc["cpuTempF"])
	assert.Nil(t, doc["gpuTempF"])
	assert.Nil(t, doc["freeC"])
	assert.Nil(t, doc["freeD"])
	assert.Equal(t, -1.0, doc["dataAgeMs"])
	assert.GreaterOrEqual(t, doc["uptimeMs"], 0.0)

	wx, ok := doc["weather"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, wx["ok"])
	assert.Equal(t, false, wx["connected"])
	assert.Nil(t, wx["temperature"])

	fc, ok := doc["forecast"].([]any)
	require.True(t, ok)
	require.Len(t, fc, weather.ForecastDays)
	slot := fc[0].(map[string]any)
	assert.Equal(t, 0.0, slot["slot"])
	assert.Equal(t, false, slot["valid"])
	assert.NotContains(t, slot, "label", "empty slots carry no summary keys")
}

func TestMetricsWithSnapshot(t *testing.T) {
	store := dash.NewStore()
	store.Put(testSnapshot())
	s := New(Options{Store: store, Units: settings.UnitsImperial})

	doc := getJSON(t, s.Handler(), "/metrics")

	assert.Equal(t, 50.0, doc["cpu"])
	assert.Equal(t, 60.0, doc["mem"])
	assert.Equal(t, 70.0, doc["gpu"])
	assert.Equal(t, 10.0, doc["diskPct"])
	assert.Equal(t, 1.5, doc["diskMBps"])
	assert.Equal(t, 95.0, doc["cpuTempF"])
	assert.Equal(t, 140.0, doc["gpuTempF"])
	assert.Equal(t, 200.0, doc["freeC"])
	assert.Equal(t, 400.0, doc["freeD"])
	assert.GreaterOrEqual(t, doc["dataAgeMs"], 0.0)
}

func TestMetricsSentinelsSerializeAsNull(t *testing.T) {
	store := dash.NewStore()
	snap := testSnapshot()
	snap.CPUTempF = statwire.TempUnknown
	snap.GPUTempF = statwire.TempUnknown
	snap.FreeCGB = statwire.SpaceUnknown
	snap.FreeDGB = statwire.SpaceUnknown
	store.Put(snap)
	s := New(Options{Store: store, Units: settings.UnitsImperial})

	doc := getJSON(t, s.Handler(), "/metrics")

	assert.Equal(t, 50.0, doc["cpu"], "known fields survive")
	assert.Nil(t, doc["cpuTempF"])
	assert.Nil(t, doc["gpuTempF"])
	assert.Nil(t, doc["freeC"])
	assert.Nil(t, doc["freeD"])
}

func TestMetricsEmbedsWeather(t *testing.T) {
	cache := weather.NewCache()
	cache.Update(testReport(), nil)
	s := New(Options{Store: dash.NewStore(), Weather: cache, Units: settings.UnitsImperial})

	doc := getJSON(t, s.Handler(), "/metrics")

	wx := doc["weather"].(map[string]any)
	assert.Equal(t, "Bergen", wx["location"])
	assert.Equal(t, "scattered clouds", wx["description"])
	assert.Equal(t, "03d", wx["icon"])
	assert.Equal(t, 71.6, wx["temperature"])
	assert.Equal(t, 48.0, wx["humidity"])
	assert.Equal(t, 6.9, wx["windSpeed"])
	assert.Equal(t, 1700000000.0, wx["updated"])
	assert.Equal(t, 3600.0, wx["timezoneOffset"])
	assert.Equal(t, true, wx["ok"])
	assert.Equal(t, true, wx["connected"])

	fc := doc["forecast"].([]any)
	day0 := fc[0].(map[string]any)
	assert.Equal(t, true, day0["valid"])
	assert.Equal(t, "Today", day0["label"])
	assert.Equal(t, "light rain", day0["description"])
	assert.Equal(t, 68.0, day0["high"])
	assert.Equal(t, 60.0, day0["low"])
	assert.Equal(t, 1700010000.0, day0["timestamp"])

	day2 := fc[2].(map[string]any)
	assert.Equal(t, false, day2["valid"])
	assert.NotContains(t, day2, "high")
}

func TestMetricsWeatherOfflineKeepsLastReport(t *testing.T) {
	cache := weather.NewCache()
	cache.Update(testReport(), nil)
	cache.Update(nil, assert.AnError)
	s := New(Options{Store: dash.NewStore(), Weather: cache, Units: settings.UnitsImperial})

	doc := getJSON(t, s.Handler(), "/metrics")

	wx := doc["weather"].(map[string]any)
	assert.Equal(t, "Bergen", wx["location"], "stale data still served")
	assert.Equal(t, false, wx["ok"])
	assert.Equal(t, true, wx["connected"])
}

func TestStatus(t *testing.T) {
	s := New(Options{
		Store:   dash.NewStore(),
		Addr:    ":8080",
		Version: "1.2.3",
		Units:   settings.UnitsImperial,
	})

	doc := getJSON(t, s.Handler(), "/status")

	assert.Equal(t, ":8080", doc["addr"])
	assert.Equal(t, "1.2.3", doc["version"])
	assert.GreaterOrEqual(t, doc["uptimeSec"], 0.0)
	assert.Contains(t, doc, "host")
}

func TestIndexPage(t *testing.T) {
	s := New(Options{Store: dash.NewStore(), Units: settings.UnitsImperial})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<title>statdeck</title>")
	assert.Contains(t, body, `id="cpu"`)
	assert.Contains(t, body, `fetch('/metrics')`)
	assert.Contains(t, body, "const DEG = '°F';")
}

func TestIndexPageMetricUnits(t *testing.T) {
	s := New(Options{Store: dash.NewStore(), Units: settings.UnitsMetric})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "const DEG = '°C';")
	assert.Contains(t, body, "const WIND = 'm/s';")
	assert.Contains(t, body, "CPU &deg;F", "wire temperatures stay Fahrenheit")
}

func TestIndexUnknownPath(t *testing.T) {
	s := New(Options{Store: dash.NewStore(), Units: settings.UnitsImperial})

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
