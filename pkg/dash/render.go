// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package dash

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/statdeck/statdeck/pkg/statwire"
)

// Renderer composes the telemetry page frames. It keeps the last composed
// frame and its inputs: when the discretized inputs have not changed, Frame
// hands back the cached string instead of re-rendering, so a settled bar
// costs nothing per tick.
type Renderer struct {
	width  int
	height int

	last     frameState
	cached   string
	Composed uint64 // frames actually composed, for diagnostics
}

// frameState is everything that can alter a telemetry frame's pixels. Two
// equal states render to byte-identical frames.
type frameState struct {
	valid  bool
	page   Page
	title  string
	big    string
	fill   int
	barW   int
	spark  string
	footer string
}

// NewRenderer creates a renderer for the given terminal size.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{width: width, height: height}
}

// Resize updates the target terminal size and drops the cached frame.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
	r.last = frameState{}
	r.cached = ""
}

// Frame renders a telemetry page. barValue is the eased displayed value in
// 0-100; samples is the page's history window, oldest first.
func (r *Renderer) Frame(page Page, snap statwire.Snapshot, barValue float64, samples []float64, footer string) string {
	barW := r.width - 6
	if barW < 10 {
		barW = 10
	}

	fill := int(barValue / 100.0 * float64(barW))
	if fill < 0 {
		fill = 0
	}
	if fill > barW {
		fill = barW
	}

	sparkRows := r.height - 12
	if sparkRows < 3 {
		sparkRows = 3
	}
	if sparkRows > 8 {
		sparkRows = 8
	}
	canvas := NewCanvas(barW, sparkRows)
	Sparkline(canvas, samples)

	state := frameState{
		valid:  true,
		page:   page,
		title:  pageTitle(page, snap),
		big:    bigValue(page, snap),
		fill:   fill,
		barW:   barW,
		spark:  canvas.String(),
		footer: footer,
	}
	if state == r.last {
		return r.cached
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))

	valueStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15"))

	accentStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("14"))

	trackStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("238"))

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var s strings.Builder

	// Header: title left, big value right.
	title := titleStyle.Render(state.title)
	big := valueStyle.Render(state.big)
	gap := r.width - lipgloss.Width(title) - lipgloss.Width(big) - 2
	if gap < 1 {
		gap = 1
	}
	s.WriteString(" ")
	s.WriteString(title)
	s.WriteString(strings.Repeat(" ", gap))
	s.WriteString(big)
	s.WriteString("\n\n")

	// Animated bar.
	bar := accentStyle.Render(strings.Repeat("█", state.fill)) +
		trackStyle.Render(strings.Repeat("░", state.barW-state.fill))
	s.WriteString(boxStyle.Render(bar))
	s.WriteString("\n")

	// Sparkline.
	s.WriteString(boxStyle.Render(accentStyle.Render(state.spark)))
	s.WriteString("\n")

	s.WriteString(" ")
	s.WriteString(footerStyle.Render(state.footer))
	s.WriteString("\n")

	r.last = state
	r.cached = s.String()
	r.Composed++
	return r.cached
}

// Readout formatting. Unknown sentinels render as placeholders instead of
// numbers.

func fmtPct(v float64) string {
	if v < 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.0f%%", v)
}

func fmtTemp(v float64) string {
	if !statwire.TempKnown(v) {
		return "-"
	}
	return fmt.Sprintf("%.0fF", v)
}

func fmtMBps(v float64) string {
	return fmt.Sprintf("%.1f MB/s", v)
}

func fmtGB(v float64) string {
	if !statwire.SpaceKnown(v) {
		return "N/A"
	}
	return fmt.Sprintf("%.0f GB", v)
}

func pageTitle(p Page, s statwire.Snapshot) string {
	switch p {
	case PageCPU:
		return fmt.Sprintf("CPU %s | MEM %s %s", fmtPct(s.CPUPct), fmtPct(s.MemPct), fmtTemp(s.CPUTempF))
	case PageGPU:
		return fmt.Sprintf("GPU %s | %s", fmtPct(s.GPUPct), fmtTemp(s.GPUTempF))
	case PageDisk:
		return fmt.Sprintf("DISK %s | %s | C:%s D:%s", fmtPct(s.DiskPct), fmtMBps(s.DiskMBps), fmtGB(s.FreeCGB), fmtGB(s.FreeDGB))
	case PageWeather:
		return "WEATHER"
	}
	return ""
}

func bigValue(p Page, s statwire.Snapshot) string {
	switch p {
	case PageCPU:
		return fmtPct(s.CPUPct)
	case PageGPU:
		return fmtPct(s.GPUPct)
	case PageDisk:
		return fmtPct(s.DiskPct)
	case PageWeather:
		return ""
	}
	return ""
}
