// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package weather

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const currentFixture = `{
  "weather": [{"description": "scattered clouds", "icon": "03d"}],
  "main": {"temp": 71.6, "feels_like": 70.2, "temp_min": 66.0, "temp_max": 75.0,
           "pressure": 1014, "humidity": 48},
  "wind": {"speed": 6.9},
  "dt": %d,
  "timezone": 7200,
  "name": "Bergen"
}`

func forecastFixture(dt int64) string {
	return fmt.Sprintf(`{
  "city": {"timezone": 7200},
  "list": [
    {"dt": %d, "main": {"temp_min": 60.0, "temp_max": 68.0},
     "weather": [{"description": "light rain", "icon": "10d"}]},
    {"dt": %d, "main": {"temp_min": 55.0, "temp_max": 64.0},
     "weather": [{"description": "clear sky", "icon": "01d"}]}
  ]
}`, dt, dt+secondsPerDay)
}

func fakeAPI(t *testing.T, weather func(w http.ResponseWriter), forecast func(w http.ResponseWriter)) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/weather", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "testkey", r.URL.Query().Get("appid"))
		assert.Equal(t, "imperial", r.URL.Query().Get("units"))
		weather(w)
	})
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		forecast(w)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewClient("testkey", "Bergen,NO", "imperial").WithBaseURL(srv.URL)
}

func TestFetch(t *testing.T) {
	dt := day0 + 10*3600
	c := fakeAPI(t,
		func(w http.ResponseWriter) { fmt.Fprintf(w, currentFixture, dt) },
		func(w http.ResponseWriter) { fmt.Fprint(w, forecastFixture(dt)) },
	)

	r, err := c.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bergen", r.Current.City)
	assert.Equal(t, "scattered clouds", r.Current.Description)
	assert.Equal(t, "03d", r.Current.Icon)
	assert.Equal(t, 71.6, r.Current.Temp)
	assert.Equal(t, 48.0, r.Current.Humidity)
	assert.Equal(t, 6.9, r.Current.WindSpeed)
	assert.Equal(t, 7200, r.Current.TZOffset)
	assert.Equal(t, dt, r.Current.Observed.Unix())

	require.True(t, r.ForecastOK)
	assert.True(t, r.Days[0].Valid)
	assert.Equal(t, "Today", r.Days[0].Label)
	assert.Equal(t, "light rain", r.Days[0].Description)
	assert.True(t, r.Days[1].Valid)
	assert.Equal(t, "clear sky", r.Days[1].Description)
	assert.False(t, r.Days[2].Valid)
}

func TestFetchMissingFieldsAreNaN(t *testing.T) {
	c := fakeAPI(t,
		func(w http.ResponseWriter) {
			fmt.Fprint(w, `{"weather": [], "main": {"temp": 20.0}, "dt": 1000, "name": ""}`)
		},
		func(w http.ResponseWriter) { fmt.Fprint(w, `{"list": []}`) },
	)

	r, err := c.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 20.0, r.Current.Temp)
	assert.True(t, math.IsNaN(r.Current.Humidity))
	assert.True(t, math.IsNaN(r.Current.WindSpeed))
	assert.Equal(t, "n/a", r.Current.Description)
	assert.Equal(t, "01d", r.Current.Icon)
	// Empty name falls back to the configured city.
	assert.Equal(t, "Bergen,NO", r.Current.City)
	assert.False(t, r.ForecastOK)
}

func TestFetchCurrentErrorIsFatal(t *testing.T) {
	c := fakeAPI(t,
		func(w http.ResponseWriter) { w.WriteHeader(http.StatusUnauthorized) },
		func(w http.ResponseWriter) { fmt.Fprint(w, `{"list": []}`) },
	)

	_, err := c.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestFetchForecastErrorIsTolerated(t *testing.T) {
	dt := day0 + 10*3600
	c := fakeAPI(t,
		func(w http.ResponseWriter) { fmt.Fprintf(w, currentFixture, dt) },
		func(w http.ResponseWriter) { w.WriteHeader(http.StatusInternalServerError) },
	)

	r, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bergen", r.Current.City)
	assert.False(t, r.ForecastOK)
	for _, d := range r.Days {
		assert.False(t, d.Valid)
	}
}

func TestFetchMalformedJSON(t *testing.T) {
	c := fakeAPI(t,
		func(w http.ResponseWriter) { fmt.Fprint(w, `{"main": `) },
		func(w http.ResponseWriter) {},
	)

	_, err := c.Fetch(context.Background())
	require.Error(t, err)
}
