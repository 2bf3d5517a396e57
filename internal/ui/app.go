// Package ui is the terminal save/load screen.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/appengine-ltd/autosave-slots/internal/app"
	"github.com/appengine-ltd/autosave-slots/internal/saverepo"
	"github.com/appengine-ltd/autosave-slots/internal/slots"
)

const (
	defaultVisibleRows = 12
	messageLines       = 3
)

type App struct {
	app  *app.App
	flow slots.Flow
}

func NewApp(a *app.App, flow slots.Flow) *App {
	return &App{app: a, flow: flow}
}

func (a *App) Run() error {
	m := newSlotModel(a.app, a.flow)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// --- Styles ---
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	// Same palette index the engine uses for unselectable entries.
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	border        = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// --- Messages ---

type rowsMsg struct {
	rows []app.SlotRow
	err  error
}

type autosaveMsg struct {
	res slots.AutosaveResult
	err error
}

type saveMsg struct {
	slot slots.SlotID
	err  error
}

type loadMsg struct {
	slot slots.SlotID
	err  error
}

// --- Slot list model ---

type slotModel struct {
	app  *app.App
	flow slots.Flow
	keys keyMap

	rows    []app.SlotRow
	cursor  int
	offset  int
	visible int

	status string
	busy   bool
}

func newSlotModel(a *app.App, flow slots.Flow) slotModel {
	return slotModel{app: a, flow: flow, keys: defaultKeyMap(), visible: defaultVisibleRows}
}

func (m slotModel) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m slotModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.visible = max(3, msg.Height-8-messageLines)
		m.clampScroll()
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.busy {
			// Ignore input while a save runs.
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Up):
			if len(m.rows) > 0 {
				m.cursor = (m.cursor + len(m.rows) - 1) % len(m.rows)
				m.clampScroll()
			}
		case key.Matches(msg, m.keys.Down):
			if len(m.rows) > 0 {
				m.cursor = (m.cursor + 1) % len(m.rows)
				m.clampScroll()
			}
		case key.Matches(msg, m.keys.Switch):
			if m.flow == slots.FlowSave {
				m.flow = slots.FlowLoad
			} else {
				m.flow = slots.FlowSave
			}
			m.status = ""
			return m, m.refreshCmd()
		case key.Matches(msg, m.keys.Autosave):
			m.busy = true
			m.status = "Autosaving…"
			return m, m.autosaveCmd()
		case key.Matches(msg, m.keys.Select):
			return m.selectRow()
		}
		return m, nil
	case rowsMsg:
		if msg.err != nil {
			m.status = "Listing slots failed: " + msg.err.Error()
			return m, nil
		}
		m.rows = msg.rows
		if m.cursor >= len(m.rows) {
			m.cursor = 0
		}
		m.clampScroll()
		return m, nil
	case autosaveMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Autosave skipped: " + msg.err.Error()
			return m, nil
		}
		m.status = m.app.Scene.Status()
		return m, m.refreshCmd()
	case saveMsg:
		m.busy = false
		switch {
		case errors.Is(msg.err, slots.ErrRestrictedSlot):
			m.status = m.app.Layout.Title(msg.slot) + " is reserved for autosaves."
		case msg.err != nil:
			m.status = "Save failed: " + msg.err.Error()
		default:
			m.status = "Saved to " + m.app.Layout.Title(msg.slot)
		}
		return m, m.refreshCmd()
	case loadMsg:
		m.busy = false
		switch {
		case errors.Is(msg.err, saverepo.ErrSlotEmpty):
			m.status = m.app.Layout.Title(msg.slot) + " is empty."
		case msg.err != nil:
			m.status = "Load failed: " + msg.err.Error()
		default:
			m.status = "Loaded " + m.app.Layout.Title(msg.slot) + ". " + m.app.State.Summary()
		}
		return m, nil
	}
	return m, nil
}

func (m slotModel) selectRow() (tea.Model, tea.Cmd) {
	if len(m.rows) == 0 {
		return m, nil
	}
	row := m.rows[m.cursor]
	if !row.Enabled {
		if m.flow == slots.FlowSave {
			m.status = row.Label.Text + " is reserved for autosaves."
		} else {
			m.status = row.Label.Text + " is empty."
		}
		return m, nil
	}
	m.busy = true
	if m.flow == slots.FlowSave {
		m.status = "Saving…"
		return m, m.saveCmd(row.ID)
	}
	m.status = "Loading…"
	return m, m.loadCmd(row.ID)
}

func (m *slotModel) clampScroll() {
	if m.visible <= 0 {
		m.visible = defaultVisibleRows
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.visible {
		m.offset = m.cursor - m.visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m slotModel) View() string {
	var b strings.Builder
	heading := "SAVE"
	if m.flow == slots.FlowLoad {
		heading = "LOAD"
	}
	b.WriteString(titleStyle.Render(heading) + dimStyle.Render("  "+m.app.State.Summary()) + "\n")
	b.WriteString(border.Render(strings.Repeat("-", 48)) + "\n")

	end := min(len(m.rows), m.offset+m.visible)
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i) + "\n")
	}

	b.WriteString(border.Render(strings.Repeat("-", 48)) + "\n")
	hints := make([]string, 0, 6)
	for _, h := range m.keys.hints() {
		help := h.Help()
		hints = append(hints, help.Key+" "+help.Desc)
	}
	b.WriteString(dimStyle.Render(strings.Join(hints, " • ")) + "\n")
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	if msgs := m.app.Scene.Messages(messageLines); len(msgs) > 0 {
		b.WriteString("\n")
		for _, line := range msgs {
			b.WriteString(dimStyle.Render(line) + "\n")
		}
	}
	return b.String()
}

func (m slotModel) renderRow(i int) string {
	row := m.rows[i]
	cursor := "  "
	if i == m.cursor {
		cursor = "> "
	}
	when := "-"
	if row.Exists {
		when = row.SavedAt.Local().Format("2006-01-02 15:04")
	}
	line := fmt.Sprintf("%-16s %s", row.Label.Text, when)
	switch {
	case row.Label.Disabled:
		return cursor + disabledStyle.Render(line)
	case i == m.cursor:
		return cursor + selectedStyle.Render(line)
	default:
		return cursor + normalStyle.Render(line)
	}
}

func (m slotModel) refreshCmd() tea.Cmd {
	a, flow := m.app, m.flow
	return func() tea.Msg {
		rows, err := a.Rows(context.Background(), flow)
		return rowsMsg{rows: rows, err: err}
	}
}

func (m slotModel) autosaveCmd() tea.Cmd {
	a := m.app
	return func() tea.Msg {
		res, err := a.Autosave(context.Background())
		return autosaveMsg{res: res, err: err}
	}
}

func (m slotModel) saveCmd(slot slots.SlotID) tea.Cmd {
	a := m.app
	return func() tea.Msg {
		return saveMsg{slot: slot, err: a.ManualSave(context.Background(), slot)}
	}
}

func (m slotModel) loadCmd(slot slots.SlotID) tea.Cmd {
	a := m.app
	return func() tea.Msg {
		return loadMsg{slot: slot, err: a.Load(context.Background(), slot)}
	}
}
