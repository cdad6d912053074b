// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package cmd

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/statdeck/statdeck/pkg/settings"
	"github.com/statdeck/statdeck/pkg/weather"
)

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Fetch and print the configured city's weather",
	Long: `Fetch the current observation and three-day forecast once and print them.

Uses the OpenWeatherMap account from the configuration; set a city and
API key with 'statdeck settings' first. Also handy for checking the
account before blaming the dashboard's weather page.`,
	RunE: runWeather,
}

func init() {
	rootCmd.AddCommand(weatherCmd)
}

func runWeather(cmd *cobra.Command, args []string) error {
	if !cfg.WeatherConfigured() {
		return fmt.Errorf("weather is not configured: set city and owm_api_key with 'statdeck settings'")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rep, err := weather.NewClient(cfg.OWMAPIKey, cfg.City, cfg.Units).Fetch(ctx)
	if err != nil {
		return fmt.Errorf("weather fetch failed: %w", err)
	}

	tempUnit, windUnit := "°C", " m/s"
	if cfg.Units == settings.UnitsImperial {
		tempUnit, windUnit = "°F", " mph"
	}

	cur := rep.Current
	local := cur.Observed.In(time.FixedZone("", cur.TZOffset))

	fmt.Printf("%s: %s\n", cur.City, cur.Description)
	fmt.Printf("  Temp:      %s (feels like %s)\n",
		measure(cur.Temp, "%.1f", tempUnit), measure(cur.FeelsLike, "%.1f", tempUnit))
	fmt.Printf("  Range:     %s to %s\n",
		measure(cur.TempMin, "%.1f", tempUnit), measure(cur.TempMax, "%.1f", tempUnit))
	fmt.Printf("  Humidity:  %s\n", measure(cur.Humidity, "%.0f", "%"))
	fmt.Printf("  Pressure:  %s\n", measure(cur.Pressure, "%.0f", " hPa"))
	fmt.Printf("  Wind:      %s\n", measure(cur.WindSpeed, "%.1f", windUnit))
	fmt.Printf("  Observed:  %s local time\n", local.Format("15:04"))

	if !rep.ForecastOK {
		fmt.Printf("\nForecast unavailable.\n")
		return nil
	}

	fmt.Printf("\nForecast:\n")
	for _, d := range rep.Days {
		if !d.Valid {
			continue
		}
		fmt.Printf("  %-6s %s to %s, %s\n", d.Label,
			measure(d.TempMin, "%.0f", tempUnit), measure(d.TempMax, "%.0f", tempUnit),
			d.Description)
	}
	return nil
}

// measure formats one reading, or "--" when the service omitted it.
func measure(v float64, format, unit string) string {
	if math.IsNaN(v) {
		return "--"
	}
	return fmt.Sprintf(format, v) + unit
}
