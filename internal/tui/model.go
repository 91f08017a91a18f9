// Package tui implements an interactive stepper for scripted trees: each key
// press proceeds the tree by one tick, showing the resumption point and the
// blackboard as they change.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joeycumines/resumebt"
	"github.com/joeycumines/resumebt/internal/blackboard"
)

// RunLimit bounds the ticks taken by a single run-to-completion key press.
const RunLimit = 10000

// Model is a bubbletea model that steps a tree one tick at a time.
type Model struct {
	title   string
	root    resumebt.Node[blackboard.Blackboard]
	runner  *resumebt.Runner[blackboard.Blackboard]
	bb      *blackboard.Blackboard
	initial map[string]any

	ticks  int
	status string
	width  int
	height int
	// offset is the first visible row of the tree pane
	offset int

	styles    styles
	scrollbar scrollbar
}

type styles struct {
	title   lipgloss.Style
	status  map[string]lipgloss.Style
	section lipgloss.Style
	help    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		status: map[string]lipgloss.Style{
			"running": lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			"success": lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			"failure": lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		},
		section: lipgloss.NewStyle().Underline(true),
		help:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// New returns a stepper over root. Resetting restores bb to its current
// contents.
func New(title string, root resumebt.Node[blackboard.Blackboard], bb *blackboard.Blackboard) Model {
	return Model{
		title:     title,
		root:      root,
		runner:    resumebt.NewRunner(root),
		bb:        bb,
		initial:   bb.Snapshot(),
		status:    "ready",
		styles:    defaultStyles(),
		scrollbar: newScrollbar(),
	}
}

// Ticks is the number of ticks since the last reset.
func (m Model) Ticks() int { return m.ticks }

// Status is one of ready, running, success or failure.
func (m Model) Status() string { return m.status }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.offset = min(m.offset, m.maxOffset())
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ", "enter", "s":
			m.step()
		case "a":
			for range RunLimit {
				if m.step() {
					break
				}
			}
		case "r":
			m.reset()
		case "up", "k":
			m.offset = max(m.offset-1, 0)
		case "down", "j":
			m.offset = min(m.offset+1, m.maxOffset())
		}
	}
	return m, nil
}

// step proceeds the tree once, reporting whether it completed.
func (m *Model) step() bool {
	m.ticks++
	success, done := m.runner.Proceed(m.bb)
	switch {
	case !done:
		m.status = "running"
	case success:
		m.status = "success"
	default:
		m.status = "failure"
	}
	m.offset = min(m.offset, m.maxOffset())
	return done
}

func (m *Model) reset() {
	m.runner = resumebt.NewRunner(m.root)
	m.bb.Clear()
	for k, v := range m.initial {
		m.bb.Set(k, v)
	}
	m.ticks = 0
	m.status = "ready"
	m.offset = 0
}

func (m Model) treeLines() []string {
	return strings.Split(strings.TrimSuffix(resumebt.Sprint(m.runner.Active()), "\n"), "\n")
}

// paneHeight is the number of tree rows that fit, or 0 if the window size is
// unknown. Everything but the tree takes a fixed number of rows, plus one per
// blackboard entry.
func (m Model) paneHeight() int {
	if m.height <= 0 {
		return 0
	}
	const chrome = 9
	return max(m.height-chrome-max(m.bb.Len(), 1), 3)
}

func (m Model) maxOffset() int {
	if h := m.paneHeight(); h > 0 {
		return max(len(m.treeLines())-h, 0)
	}
	return 0
}

func (m Model) treePane() string {
	lines := m.treeLines()
	h := m.paneHeight()
	if h == 0 || len(lines) <= h {
		return strings.Join(lines, "\n")
	}
	offset := max(0, min(m.offset, len(lines)-h))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		strings.Join(lines[offset:offset+h], "\n"),
		" ",
		m.scrollbar.view(len(lines), h, offset),
	)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render(m.title))
	b.WriteString("\n\n")

	status := m.status
	if style, ok := m.styles.status[status]; ok {
		status = style.Render(status)
	}
	fmt.Fprintf(&b, "tick %d: %s\n\n", m.ticks, status)

	heading := "Tree"
	if m.runner.IsRunning() {
		heading = "Resuming"
	}
	b.WriteString(m.styles.section.Render(heading))
	b.WriteByte('\n')
	b.WriteString(m.treePane())
	b.WriteString("\n\n")

	b.WriteString(m.styles.section.Render("Blackboard"))
	b.WriteByte('\n')
	keys := m.bb.Keys()
	if len(keys) == 0 {
		b.WriteString("(empty)\n")
	}
	for _, key := range keys {
		fmt.Fprintf(&b, "%s = %v\n", key, m.bb.Get(key))
	}
	b.WriteByte('\n')

	help := "space: step • a: run to completion • r: reset • ↑/↓: scroll • q: quit"
	if m.width > 0 {
		help = lipgloss.NewStyle().MaxWidth(m.width).Render(help)
	}
	b.WriteString(m.styles.help.Render(help))
	b.WriteByte('\n')
	return b.String()
}
