// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package dash

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/statdeck/statdeck/pkg/settings"
	"github.com/statdeck/statdeck/pkg/weather"
)

// Gap between repetitions of the marquee text, in cells.
const marqueeGap = 10

func tempSuffix(units string) string {
	if units == settings.UnitsMetric {
		return "C"
	}
	return "F"
}

func windSuffix(units string) string {
	if units == settings.UnitsMetric {
		return "m/s"
	}
	return "mph"
}

func fmtWeatherTemp(v float64, units string) string {
	if math.IsNaN(v) {
		return "--"
	}
	return fmt.Sprintf("%.0f%s", v, tempSuffix(units))
}

// titleCase lowercases the text and capitalizes the first letter of each
// word, the way condition descriptions are displayed.
func titleCase(s string) string {
	if s == "" {
		return "n/a"
	}
	out := []rune(strings.ToLower(s))
	capitalize := true
	for i, r := range out {
		if unicode.IsLetter(r) && capitalize {
			out[i] = unicode.ToUpper(r)
			capitalize = false
		} else if r == ' ' {
			capitalize = true
		}
	}
	return string(out)
}

// marqueeText builds the scrolling ticker line from a report.
func marqueeText(rep *weather.Report, units string) string {
	if rep == nil {
		return "Fetching data ..."
	}
	cur := rep.Current

	loc := cur.City
	if loc == "" {
		loc = "Weather"
	}

	var b strings.Builder
	b.WriteString(loc)
	b.WriteString(" | ")
	b.WriteString(titleCase(cur.Description))
	b.WriteString(" | Temp ")
	b.WriteString(fmtWeatherTemp(cur.Temp, units))
	b.WriteString(" (")
	b.WriteString(fmtWeatherTemp(cur.TempMin, units))
	b.WriteString("/")
	b.WriteString(fmtWeatherTemp(cur.TempMax, units))
	b.WriteString(") | Hum ")
	if math.IsNaN(cur.Humidity) {
		b.WriteString("--%")
	} else {
		fmt.Fprintf(&b, "%d%%", int(math.Round(cur.Humidity)))
	}
	b.WriteString(" | Wind ")
	if math.IsNaN(cur.WindSpeed) {
		fmt.Fprintf(&b, "-- %s", windSuffix(units))
	} else {
		fmt.Fprintf(&b, "%.1f %s", cur.WindSpeed, windSuffix(units))
	}
	return b.String()
}

// marqueeWindow returns a width-cell view into the endlessly repeating
// marquee text, starting at offset cells.
func marqueeWindow(text string, offset, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	runes := []rune(text + strings.Repeat(" ", marqueeGap))
	n := len(runes)
	if offset < 0 {
		offset = 0
	}
	out := make([]rune, width)
	for i := range out {
		out[i] = runes[(offset+i)%n]
	}
	return string(out)
}

// marqueeLen returns the repeat period of the marquee for a given text.
func marqueeLen(text string) int {
	return len([]rune(text)) + marqueeGap
}

// renderWeather composes the weather page.
func renderWeather(width int, rep *weather.Report, fetchErr error, configured bool, offset int, units, clock, footer string) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("14"))

	bigStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15"))

	textStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	okStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	badStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9"))

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Align(lipgloss.Center)

	tickerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("238"))

	var s strings.Builder

	if !configured {
		s.WriteString(" ")
		s.WriteString(headerStyle.Render("WEATHER"))
		s.WriteString("\n\n")
		s.WriteString(textStyle.Render(" Weather is not configured."))
		s.WriteString("\n")
		s.WriteString(dimStyle.Render(" Hold s on any page to open setup and add an OpenWeatherMap key and city."))
		s.WriteString("\n\n ")
		s.WriteString(dimStyle.Render(footer))
		s.WriteString("\n")
		return s.String()
	}

	// Header row: location left, clock right.
	loc := "Weather"
	if rep != nil && rep.Current.City != "" {
		loc = rep.Current.City
	}
	header := headerStyle.Render(loc)
	clockText := headerStyle.Render(clock)
	gap := width - lipgloss.Width(header) - lipgloss.Width(clockText) - 2
	if gap < 1 {
		gap = 1
	}
	s.WriteString(" ")
	s.WriteString(header)
	s.WriteString(strings.Repeat(" ", gap))
	s.WriteString(clockText)
	s.WriteString("\n\n")

	if rep == nil {
		if fetchErr != nil {
			s.WriteString(badStyle.Render(fmt.Sprintf(" Weather fetch failed: %v", fetchErr)))
		} else {
			s.WriteString(textStyle.Render(" Fetching weather..."))
		}
		s.WriteString("\n\n ")
		s.WriteString(dimStyle.Render(footer))
		s.WriteString("\n")
		return s.String()
	}

	cur := rep.Current

	// Current conditions block.
	s.WriteString(" ")
	s.WriteString(bigStyle.Render(fmtWeatherTemp(cur.Temp, units)))
	s.WriteString(textStyle.Render("   Feels " + fmtWeatherTemp(cur.FeelsLike, units)))
	s.WriteString("\n ")
	s.WriteString(textStyle.Render(titleCase(cur.Description)))
	s.WriteString("\n ")

	details := make([]string, 0, 3)
	if !math.IsNaN(cur.Humidity) {
		details = append(details, fmt.Sprintf("Humidity %d%%", int(math.Round(cur.Humidity))))
	}
	if !math.IsNaN(cur.WindSpeed) {
		details = append(details, fmt.Sprintf("Wind %.1f %s", cur.WindSpeed, windSuffix(units)))
	}
	if !math.IsNaN(cur.Pressure) {
		details = append(details, fmt.Sprintf("Pressure %.0f hPa", cur.Pressure))
	}
	detailLine := textStyle.Render(strings.Join(details, "   "))

	badge := okStyle.Render("Updated")
	if fetchErr != nil {
		badge = badStyle.Render("Offline")
	}
	gap = width - lipgloss.Width(detailLine) - lipgloss.Width(badge) - 2
	if gap < 1 {
		gap = 1
	}
	s.WriteString(detailLine)
	s.WriteString(strings.Repeat(" ", gap))
	s.WriteString(badge)
	s.WriteString("\n\n")

	// Forecast cards.
	cards := make([]string, 0, weather.ForecastDays)
	cardW := (width-2)/weather.ForecastDays - 4
	if cardW < 10 {
		cardW = 10
	}
	for _, d := range rep.Days {
		var body string
		if d.Valid {
			body = fmt.Sprintf("%s\n%s / %s\n%s",
				d.Label,
				fmtWeatherTemp(d.TempMax, units),
				fmtWeatherTemp(d.TempMin, units),
				titleCase(d.Description))
		} else {
			body = "--\n-- / --\n--"
		}
		cards = append(cards, cardStyle.Width(cardW).Render(body))
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	s.WriteString("\n")

	// Scrolling ticker.
	s.WriteString(tickerStyle.Render(marqueeWindow(marqueeText(rep, units), offset, width)))
	s.WriteString("\n ")
	s.WriteString(dimStyle.Render(footer))
	s.WriteString("\n")

	return s.String()
}
