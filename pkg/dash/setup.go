// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package dash

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/statdeck/statdeck/pkg/settings"
)

// Setup form fields, in display order. fieldCount doubles as the focus
// index of the save button.
const (
	fieldPort = iota
	fieldBaud
	fieldListen
	fieldCity
	fieldUnits
	fieldAPIKey
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Serial port",
	"Baud rate",
	"HTTP listen",
	"City",
	"Units",
	"OWM API key",
}

// setupModel is the one-way configuration form. Entering it parks the
// dashboard; committing writes the config file and exits the program so the
// next start runs with the new settings.
type setupModel struct {
	inputs [fieldCount]textinput.Model
	focus  int
	st     *settings.Settings
	path   string
	err    error
	saved  bool
}

func newSetupModel(st *settings.Settings, path string) setupModel {
	m := setupModel{st: st, path: path}

	values := [fieldCount]string{
		st.Port,
		strconv.Itoa(st.Baud),
		st.Listen,
		st.City,
		st.Units,
		st.OWMAPIKey,
	}
	placeholders := [fieldCount]string{
		"/dev/ttyACM0",
		"115200",
		":8080",
		"Portland,US",
		"imperial",
		"",
	}

	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 64
		ti.Width = 32
		ti.SetValue(values[i])
		m.inputs[i] = ti
	}
	m.inputs[fieldAPIKey].EchoMode = textinput.EchoPassword
	m.inputs[fieldAPIKey].EchoCharacter = '•'
	m.inputs[fieldPort].Focus()

	return m
}

func (m setupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m setupModel) Update(msg tea.Msg) (setupModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "down":
			return m.moveFocus(1), nil

		case "shift+tab", "up":
			return m.moveFocus(-1), nil

		case "enter":
			if m.focus == fieldCount {
				return m.commit()
			}
			return m.moveFocus(1), nil
		}
	}

	if m.focus < fieldCount {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m setupModel) moveFocus(delta int) setupModel {
	m.focus = (m.focus + delta + fieldCount + 1) % (fieldCount + 1)
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m setupModel) commit() (setupModel, tea.Cmd) {
	baud, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldBaud].Value()))
	if err != nil {
		m.err = fmt.Errorf("invalid baud rate %q", m.inputs[fieldBaud].Value())
		return m, nil
	}

	next := *m.st
	next.Port = strings.TrimSpace(m.inputs[fieldPort].Value())
	next.Baud = baud
	next.Listen = strings.TrimSpace(m.inputs[fieldListen].Value())
	next.City = strings.TrimSpace(m.inputs[fieldCity].Value())
	next.Units = strings.TrimSpace(m.inputs[fieldUnits].Value())
	next.OWMAPIKey = strings.TrimSpace(m.inputs[fieldAPIKey].Value())

	if err := settings.Save(&next, m.path); err != nil {
		m.err = err
		return m, nil
	}

	*m.st = next
	m.err = nil
	m.saved = true
	return m, tea.Quit
}

func (m setupModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("11")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Width(14)

	focusedLabelStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Width(14)

	buttonStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 2)

	focusedButtonStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("12")).
		Padding(0, 2)

	errStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	var s strings.Builder
	s.WriteString(titleStyle.Render("STATDECK SETUP"))
	s.WriteString("\n\n")

	for i := range m.inputs {
		label := labelStyle
		if i == m.focus {
			label = focusedLabelStyle
		}
		s.WriteString(label.Render(fieldLabels[i]))
		s.WriteString(m.inputs[i].View())
		s.WriteString("\n")
	}

	s.WriteString("\n")
	if m.focus == fieldCount {
		s.WriteString(focusedButtonStyle.Render("Save & Exit"))
	} else {
		s.WriteString(buttonStyle.Render("Save & Exit"))
	}
	s.WriteString("\n")

	if m.err != nil {
		s.WriteString("\n")
		s.WriteString(errStyle.Render(fmt.Sprintf("✗ %v", m.err)))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(hintStyle.Render("tab/enter move between fields · esc abort · saving exits; restart to apply"))
	s.WriteString("\n")

	return s.String()
}
