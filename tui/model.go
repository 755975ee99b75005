// Package tui is a terminal monitor for live MIDI input.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"go-smf/device"
	"go-smf/midi"
	"go-smf/theme"
)

const (
	maxRows   = 500
	portWidth = 18
	kindWidth = 22
)

// row is one line of the event log
type row struct {
	at    time.Time
	port  string
	event midi.Event
}

type Model struct {
	DeviceMgr *device.Manager
	Theme     *theme.Theme
	Thru      *device.Output // may be nil

	rows     []row
	ports    []string
	counts   map[midi.Category]int
	filter   midi.Category // CategoryNone shows everything
	paused   bool
	status   string
	height   int
	quitting bool
}

type MessageMsg device.Message

type DeviceEventMsg device.DeviceEvent

func NewModel(deviceMgr *device.Manager, th *theme.Theme, thru *device.Output) Model {
	return Model{
		DeviceMgr: deviceMgr,
		Theme:     th,
		Thru:      thru,
		counts:    make(map[midi.Category]int),
		height:    24,
	}
}

func ListenForMessages(deviceMgr *device.Manager) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-deviceMgr.Messages()
		if !ok {
			return nil
		}
		return MessageMsg(msg)
	}
}

func ListenForDevices(deviceMgr *device.Manager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForMessages(m.DeviceMgr),
		ListenForDevices(m.DeviceMgr),
	)
}

// filters is the cycle order for the category filter key
var filters = []midi.Category{
	midi.CategoryNone,
	midi.CategoryChannelVoice,
	midi.CategoryChannelMode,
	midi.CategorySystemCommon,
	midi.CategorySystemRealtime,
	midi.CategorySystemExclusive,
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ", "p":
			m.paused = !m.paused

		case "c":
			m.rows = nil
			m.counts = make(map[midi.Category]int)

		case "f":
			for i, f := range filters {
				if f == m.filter {
					m.filter = filters[(i+1)%len(filters)]
					break
				}
			}

		case "!":
			if m.Thru != nil {
				if err := m.Thru.Panic(); err != nil {
					m.status = err.Error()
				} else {
					m.status = "all notes off sent"
				}
			}
		}

	case tea.WindowSizeMsg:
		m.height = msg.Height

	case MessageMsg:
		m = m.record(device.Message(msg))
		return m, ListenForMessages(m.DeviceMgr)

	case DeviceEventMsg:
		event := device.DeviceEvent(msg)
		m.status = fmt.Sprintf("%s %s", event.ID, event.Type)
		m.ports = m.DeviceMgr.Inputs()
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

// record forwards msg to the thru port and appends it to the log.
func (m Model) record(msg device.Message) Model {
	if m.Thru != nil {
		if err := m.Thru.Send(msg.Event); err != nil {
			m.status = err.Error()
		}
	}
	m.counts[msg.Event.Kind().Category()]++
	if m.paused {
		return m
	}
	m.rows = append(m.rows, row{at: msg.At, port: msg.Port, event: msg.Event})
	if len(m.rows) > maxRows {
		m.rows = append([]row(nil), m.rows[len(m.rows)-maxRows:]...)
	}
	return m
}

func (m Model) visible() []row {
	var out []row
	for _, r := range m.rows {
		if m.filter == midi.CategoryNone || r.event.Kind().Category() == m.filter {
			out = append(out, r)
		}
	}
	return out
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	statusStyle := lipgloss.NewStyle().
		Foreground(m.Theme.FG()).
		Background(m.Theme.Muted()).
		Padding(0, 1)

	state := "LIVE"
	if m.paused {
		state = "PAUSED"
	}
	filter := "all"
	if m.filter != midi.CategoryNone {
		filter = m.filter.String()
	}
	thru := ""
	if m.Thru != nil {
		thru = "  thru:" + m.Thru.Name()
	}
	header := headerStyle.Render(fmt.Sprintf("go-smf monitor  %s  ports:%d  filter:%s%s", state, len(m.ports), filter, thru))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n")
	if len(m.ports) == 0 {
		out.WriteString(dimStyle.Render("waiting for MIDI inputs..."))
	} else {
		out.WriteString(dimStyle.Render(strings.Join(m.ports, "  ")))
	}
	out.WriteString("\n\n")

	// header, ports, blank, blank, counts, help, status
	room := m.height - 8
	if room < 1 {
		room = 1
	}
	rows := m.visible()
	if len(rows) > room {
		rows = rows[len(rows)-room:]
	}
	for _, r := range rows {
		out.WriteString(m.renderRow(r))
		out.WriteString("\n")
	}

	out.WriteString("\n")
	out.WriteString(dimStyle.Render(m.countLine()))
	out.WriteString("\n")
	out.WriteString(dimStyle.Render("space:pause  c:clear  f:filter  !:panic  q:quit"))
	if m.status != "" {
		out.WriteString("\n")
		out.WriteString(statusStyle.Render(m.status))
	}

	return out.String()
}

func (m Model) renderRow(r row) string {
	cat := r.event.Kind().Category()
	kindStyle := lipgloss.NewStyle().Foreground(m.Theme.Category(cat))
	symStyle := kindStyle
	if on, ok := r.event.(midi.NoteOn); ok {
		symStyle = lipgloss.NewStyle().Foreground(m.Theme.Velocity(on.Velocity))
	}
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	port := runewidth.FillRight(runewidth.Truncate(r.port, portWidth, "…"), portWidth)
	kind := runewidth.FillRight(r.event.Kind().String(), kindWidth)

	return fmt.Sprintf("%s %s %s %s %s",
		dimStyle.Render(r.at.Format("15:04:05.000")),
		dimStyle.Render(port),
		symStyle.Render(string(m.Theme.Symbol(r.event))),
		kindStyle.Render(kind),
		midi.Describe(r.event),
	)
}

func (m Model) countLine() string {
	var parts []string
	for _, c := range filters[1:] {
		if n := m.counts[c]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", c, n))
		}
	}
	if len(parts) == 0 {
		return "no events"
	}
	return strings.Join(parts, "  ")
}
