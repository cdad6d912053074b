// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

// Package dash is the terminal dashboard: a paged Bubble Tea UI fed by the
// wire ingest pump, with eased bar animation, braille sparklines, a weather
// page, and a one-way setup form.
package dash

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/statdeck/statdeck/pkg/easing"
	"github.com/statdeck/statdeck/pkg/history"
	"github.com/statdeck/statdeck/pkg/settings"
	"github.com/statdeck/statdeck/pkg/statwire"
	"github.com/statdeck/statdeck/pkg/weather"
)

//////////////////////////////////////////////////////////////
// Constants
//////////////////////////////////////////////////////////////

const (
	framePeriod    = 33 * time.Millisecond // ~30 FPS frame cadence
	swipeThreshold = 8                     // horizontal drag cells for a page swipe
	holdToSetup    = 3 * time.Second       // press-and-hold duration to enter setup
	holdMaxGap     = 500 * time.Millisecond
	marqueeSpeed   = 12.0 // ticker cells per second
	staleAfterMS   = 10000
)

//////////////////////////////////////////////////////////////
// Messages
//////////////////////////////////////////////////////////////

// LineMsg delivers one terminator-delimited candidate line from the ingest
// pump, along with the pump's running count of oversized discards.
type LineMsg struct {
	Line      string
	Discarded uint64
}

// LinkUpMsg reports the ingest link (re)connected.
type LinkUpMsg struct {
	Info string
}

// LinkDownMsg reports the ingest link dropped; the pump keeps reconnecting.
type LinkDownMsg struct {
	Err error
}

type frameTickMsg time.Time
type statsTickMsg time.Time
type weatherTickMsg time.Time

type weatherMsg struct {
	report *weather.Report
	err    error
}

//////////////////////////////////////////////////////////////
// Model
//////////////////////////////////////////////////////////////

// Options configures a dashboard model.
type Options struct {
	Store        *Store
	Settings     *settings.Settings
	ConfigPath   string
	ConnInfo     string
	Weather      *weather.Client // nil when the weather account is not configured
	WeatherCache *weather.Cache  // optional write-through for the export server
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	store    *Store
	cfg      *settings.Settings
	cfgPath  string
	connInfo string
	linkUp   bool

	hist     *history.Set
	stats    *statwire.LinkStats
	bar      *easing.Value
	page     Page
	renderer *Renderer

	wx         *weather.Client
	wxCache    *weather.Cache
	report     *weather.Report
	wxErr      error
	marqueePos float64

	configMode bool
	setup      setupModel

	dragging  bool
	dragX     int
	dragStart time.Time
	holdStart time.Time
	lastHold  time.Time

	lastFrame time.Time
	width     int
	height    int
	quitting  bool
}

// NewModel creates the dashboard model. The store is shared with the export
// server; the ingest pump feeds lines in via p.Send(LineMsg{...}).
func NewModel(opts Options) Model {
	return Model{
		store:    opts.Store,
		cfg:      opts.Settings,
		cfgPath:  opts.ConfigPath,
		connInfo: opts.ConnInfo,
		linkUp:   true,
		hist:     history.NewSet(RingCount, 0),
		stats:    statwire.NewLinkStats(),
		bar:      easing.New(opts.Settings.EaseRate, 0),
		renderer: NewRenderer(80, 24),
		wx:       opts.Weather,
		wxCache:  opts.WeatherCache,
		width:    80,
		height:   24,
	}
}

// Saved reports whether the session ended by committing setup changes.
func (m Model) Saved() bool {
	return m.configMode && m.setup.saved
}

//////////////////////////////////////////////////////////////
// Bubble Tea Interface
//////////////////////////////////////////////////////////////

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{frameTick(), statsTick(), tea.EnterAltScreen}
	if m.wx != nil {
		cmds = append(cmds, m.fetchWeatherCmd(), weatherTick())
	}
	return tea.Batch(cmds...)
}

func frameTick() tea.Cmd {
	return tea.Tick(framePeriod, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

func statsTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return statsTickMsg(t)
	})
}

func weatherTick() tea.Cmd {
	return tea.Tick(weather.RefreshInterval, func(t time.Time) tea.Msg {
		return weatherTickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.renderer.Resize(size.Width, size.Height)
		return m, nil
	}

	// Setup mode parks the dashboard until the program exits.
	if m.configMode {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "ctrl+c", "esc":
				m.quitting = true
			}
		}
		var cmd tea.Cmd
		m.setup, cmd = m.setup.Update(msg)
		if m.setup.saved {
			m.quitting = true
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case frameTickMsg:
		now := time.Time(msg)
		if m.lastFrame.IsZero() {
			m.lastFrame = now.Add(-framePeriod)
		}
		dt := now.Sub(m.lastFrame)
		m.lastFrame = now

		m.bar.Update(dt)
		if m.page == PageWeather {
			m.marqueePos += marqueeSpeed * dt.Seconds()
			if n := marqueeLen(marqueeText(m.report, m.cfg.Units)); n > 0 {
				m.marqueePos = math.Mod(m.marqueePos, float64(n))
			}
		}
		return m, frameTick()

	case statsTickMsg:
		m.stats.CalculateRates()
		return m, statsTick()

	case LineMsg:
		m.stats.CountBytes(len(msg.Line) + 1)
		m.stats.Discarded = msg.Discarded
		snap, err := statwire.ParseLine(msg.Line)
		m.stats.CountLine(err)
		if err != nil {
			return m, nil
		}
		m.store.Put(snap)
		m.hist.Push(snap.CPUPct, snap.GPUPct, snap.DiskPct)
		m.bar.Retarget(m.page.Target(snap))
		return m, nil

	case LinkUpMsg:
		m.linkUp = true
		m.connInfo = msg.Info
		return m, nil

	case LinkDownMsg:
		m.linkUp = false
		return m, nil

	case weatherMsg:
		// A failed refresh keeps the previous report on screen; only the
		// Offline badge changes.
		if msg.report != nil {
			m.report = msg.report
		}
		m.wxErr = msg.err
		if m.wxCache != nil {
			m.wxCache.Update(msg.report, msg.err)
		}
		return m, nil

	case weatherTickMsg:
		if m.wx == nil {
			return m, nil
		}
		return m, tea.Batch(m.fetchWeatherCmd(), weatherTick())
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "right", "l", "tab":
		m.setPage(m.page.Next())

	case "left", "h", "shift+tab":
		m.setPage(m.page.Prev())

	case "s":
		// Terminal key auto-repeat stands in for press-and-hold: an
		// unbroken repeat stream of 3 seconds opens setup.
		now := time.Now()
		if m.holdStart.IsZero() || now.Sub(m.lastHold) > holdMaxGap {
			m.holdStart = now
		}
		m.lastHold = now
		if now.Sub(m.holdStart) >= holdToSetup {
			return m.enterSetup()
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		m.dragging = true
		m.dragX = msg.X
		m.dragStart = time.Now()

	case tea.MouseActionRelease:
		if !m.dragging {
			break
		}
		m.dragging = false
		delta := msg.X - m.dragX
		if delta < 0 {
			delta = -delta
		}
		held := time.Since(m.dragStart)
		if held >= holdToSetup && delta < swipeThreshold {
			return m.enterSetup()
		}
		switch {
		case msg.X-m.dragX > swipeThreshold:
			m.setPage(m.page.Prev()) // drag right goes back
		case msg.X-m.dragX < -swipeThreshold:
			m.setPage(m.page.Next())
		}
	}
	return m, nil
}

func (m *Model) setPage(p Page) {
	m.page = p
	snap, ok := m.store.Latest()
	if !ok {
		snap = statwire.EmptySnapshot()
	}
	m.bar.Retarget(p.Target(snap))
}

func (m Model) enterSetup() (tea.Model, tea.Cmd) {
	m.configMode = true
	m.holdStart = time.Time{}
	m.lastHold = time.Time{}
	m.setup = newSetupModel(m.cfg, m.cfgPath)
	return m, m.setup.Init()
}

func (m Model) fetchWeatherCmd() tea.Cmd {
	wx := m.wx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		rep, err := wx.Fetch(ctx)
		return weatherMsg{report: rep, err: err}
	}
}

func (m Model) View() string {
	if m.quitting {
		if m.Saved() {
			return "Configuration saved. Restart statdeck to apply.\n"
		}
		return "Shutting down...\n"
	}

	if m.configMode {
		return m.setup.View()
	}

	footer := m.footer()
	if m.page == PageWeather {
		return renderWeather(m.width, m.report, m.wxErr, m.cfg.WeatherConfigured(),
			int(m.marqueePos), m.cfg.Units, time.Now().Format("15:04"), footer)
	}

	snap, ok := m.store.Latest()
	if !ok {
		snap = statwire.EmptySnapshot()
	}
	return m.renderer.Frame(m.page, snap, m.bar.Current(), m.hist.Ordered(m.page.Ring()), footer)
}

func (m Model) footer() string {
	link := m.connInfo
	if !m.linkUp {
		link = "link down - reconnecting"
	}

	parts := []string{link, freshness(m.store.AgeMillis())}
	parts = append(parts, fmt.Sprintf("%d lines", m.stats.Accepted))
	if m.stats.Rejected > 0 {
		parts = append(parts, fmt.Sprintf("%d short", m.stats.Rejected))
	}
	if m.stats.Discarded > 0 {
		parts = append(parts, fmt.Sprintf("%d oversized", m.stats.Discarded))
	}
	parts = append(parts, "←/→ pages · hold s for setup · q quit")
	return strings.Join(parts, " | ")
}

// freshness describes the data age the way the web dashboard does: live
// under a second, then seconds-ago, then an explicit stale flag.
func freshness(ageMS int64) string {
	switch {
	case ageMS < 0:
		return "no data yet"
	case ageMS < 1000:
		return "live"
	case ageMS <= staleAfterMS:
		return fmt.Sprintf("%ds ago", ageMS/1000)
	default:
		return fmt.Sprintf("STALE %ds", ageMS/1000)
	}
}
