// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

// Package weather fetches current conditions and a short forecast from
// OpenWeatherMap and condenses the 3-hourly forecast into per-day summaries
// for the weather page.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/statdeck/statdeck/pkg/logging"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

	// RefreshInterval is how often callers should re-fetch.
	RefreshInterval = 5 * time.Minute

	requestTimeout = 10 * time.Second
)

// Client talks to the OpenWeatherMap API for one configured city.
type Client struct {
	baseURL string
	key     string
	city    string
	units   string
	http    *http.Client
}

// NewClient returns a client for the given account. Units must be "metric"
// or "imperial"; the caller validates that.
func NewClient(key, city, units string) *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		key:     key,
		city:    city,
		units:   units,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// WithBaseURL points the client at a different endpoint.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = base
	return c
}

// City returns the configured city query string.
func (c *Client) City() string { return c.city }

// Fetch retrieves the current observation and the forecast. A failed
// forecast request is not fatal: the report then carries only the current
// conditions, with ForecastOK unset.
func (c *Client) Fetch(ctx context.Context) (*Report, error) {
	var cur currentResponse
	if err := c.getJSON(ctx, "weather", &cur); err != nil {
		return nil, err
	}

	r := &Report{FetchedAt: time.Now()}
	desc, icon := condition(cur.Weather)
	name := cur.Name
	if name == "" {
		name = c.city
	}
	r.Current = Current{
		City:        name,
		Description: desc,
		Icon:        icon,
		Temp:        num(cur.Main.Temp),
		FeelsLike:   num(cur.Main.FeelsLike),
		TempMin:     num(cur.Main.TempMin),
		TempMax:     num(cur.Main.TempMax),
		Humidity:    num(cur.Main.Humidity),
		Pressure:    num(cur.Main.Pressure),
		WindSpeed:   num(cur.Wind.Speed),
		Observed:    time.Unix(cur.Dt, 0),
		TZOffset:    cur.Timezone,
	}

	var fc forecastResponse
	if err := c.getJSON(ctx, "forecast", &fc); err != nil {
		logging.Warn().Err(err).Msg("Forecast fetch failed, continuing with current data")
		return r, nil
	}

	tz := r.Current.TZOffset
	if fc.City.Timezone != nil {
		tz = *fc.City.Timezone
	}
	r.Days = summarizeForecast(fc.List, tz, cur.Dt)
	for _, d := range r.Days {
		if d.Valid {
			r.ForecastOK = true
			break
		}
	}
	return r, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	u := fmt.Sprintf("%s/%s?q=%s&appid=%s&units=%s",
		c.baseURL, endpoint,
		url.QueryEscape(c.city), url.QueryEscape(c.key), url.QueryEscape(c.units))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s request failed: status %d", endpoint, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}
