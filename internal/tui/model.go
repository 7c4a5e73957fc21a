// Package tui is the terminal host: it renders the menu grid and feeds
// keyboard, mouse and gamepad input into the session.
package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/soar/inputnav/internal/app"
	"github.com/soar/inputnav/internal/gamepad"
	"github.com/soar/inputnav/internal/input"
	"github.com/soar/inputnav/internal/menu"
	"github.com/soar/inputnav/internal/nav"
)

type intentMsg nav.Intent

type connectionMsg gamepad.ConnectionEvent

// Sink forwards gamepad output to a running program.
type Sink struct {
	Program *tea.Program
}

func (s Sink) Intent(intent nav.Intent) {
	s.Program.Send(intentMsg(intent))
}

func (s Sink) ConnectionChanged(ev gamepad.ConnectionEvent) {
	s.Program.Send(connectionMsg(ev))
}

type cell struct {
	id   string
	x, y int
}

// Model is the bubbletea model for the terminal host.
type Model struct {
	session *app.Session
	cells   []cell
	width   int
	height  int
	quit    bool
}

func New(s *app.Session) *Model {
	return &Model{session: s}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// RequestQuit ends the program after the current update. It is meant for the
// menu's Quit button, which runs inside Update.
func (m *Model) RequestQuit() {
	m.quit = true
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := m.session
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "g":
			s.Registry.SetGridNavigation(!s.Registry.GridNavigation())
			return m, nil
		}
		s.Mapper.HandleKey(msg.String(), input.ModNone)

	case tea.MouseMsg:
		id, ok := m.hitTest(msg.X, msg.Y)
		if !ok {
			break
		}
		switch {
		case msg.Action == tea.MouseActionMotion:
			s.Hover(id)
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			s.Click(id)
		}

	case intentMsg:
		s.Mapper.HandleIntent(nav.Intent(msg), input.Gamepad)

	case connectionMsg:
		s.SetConnection(gamepad.ConnectionEvent(msg))

	}
	if m.quit {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) View() string {
	v := m.session.View()

	var b strings.Builder
	b.WriteString(titleStyle.Render(v.Title))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("%s · input: %s · grid: %s",
		app.Status(v.Connected, v.Device), v.Modality, onOff(v.Grid))))
	b.WriteString("\n")

	m.cells = m.cells[:0]
	rows := layoutRows(v.Items)
	y := headerHeight
	for _, row := range rows {
		b.WriteString(m.renderRow(v, row, y))
		b.WriteString("\n")
		y += cellHeight
	}

	b.WriteString(helpStyle.Render("arrows/tab move · enter select · esc back · g grid · q quit"))
	return b.String()
}

// layoutRows groups visible items by row, in row order. Children of
// collapsed groups are hidden.
func layoutRows(items []menu.ItemView) [][]menu.ItemView {
	expanded := map[string]bool{}
	for _, it := range items {
		if it.Kind == "group" {
			expanded[it.ID] = it.Expanded
		}
	}

	byRow := map[int][]menu.ItemView{}
	for _, it := range items {
		if it.Parent != "" && !expanded[it.Parent] {
			continue
		}
		byRow[it.Row] = append(byRow[it.Row], it)
	}

	keys := make([]int, 0, len(byRow))
	for r := range byRow {
		keys = append(keys, r)
	}
	slices.Sort(keys)

	rows := make([][]menu.ItemView, 0, len(keys))
	for _, r := range keys {
		row := byRow[r]
		slices.SortFunc(row, func(a, b menu.ItemView) int { return a.Column - b.Column })
		rows = append(rows, row)
	}
	return rows
}

func (m *Model) renderRow(v menu.View, row []menu.ItemView, y int) string {
	var parts []string
	col := 0
	for _, it := range row {
		for ; col < it.Column; col++ {
			parts = append(parts, blankCellStyle.Render(""), " ")
		}
		m.cells = append(m.cells, cell{id: it.ID, x: col * (cellWidth + 2 + cellGap), y: y})
		parts = append(parts, renderCell(it, it.ID == v.Selected), " ")
		col++
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderCell(it menu.ItemView, selected bool) string {
	label := it.Label
	switch it.Kind {
	case "toggle":
		if it.On {
			label += " " + onStyle.Render("on")
		} else {
			label += " " + offStyle.Render("off")
		}
	case "group":
		if it.Expanded {
			label += " ▾"
		} else {
			label += " ▸"
		}
	}

	switch {
	case selected:
		return selectedCellStyle.Render(label)
	case !it.Enabled:
		return disabledCellStyle.Render(label)
	}
	return cellStyle.Render(label)
}

func (m *Model) hitTest(x, y int) (string, bool) {
	for _, c := range m.cells {
		if x >= c.x && x < c.x+cellWidth+2 && y >= c.y && y < c.y+cellHeight {
			return c.id, true
		}
	}
	return "", false
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
