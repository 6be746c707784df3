package ui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/cockroachdb/errors"

	"github.com/fsmiamoto/promptcraft/internal/resolver"
)

// Picker is a Bubble Tea model that lets the user choose one command.
type Picker struct {
	commands  []resolver.CommandInfo
	cursor    int
	offset    int // first visible row
	width     int
	height    int
	chosen    bool
	cancelled bool
	st        styles
}

// NewPicker creates a picker over cmds that draws on out. Colours follow
// out, not stdout.
func NewPicker(cmds []resolver.CommandInfo, out io.Writer) Picker {
	return Picker{
		commands: cmds,
		st:       newStyles(lipgloss.NewRenderer(out)),
	}
}

// Selected returns the chosen command, if any.
func (m Picker) Selected() (resolver.CommandInfo, bool) {
	if !m.chosen || m.cancelled || len(m.commands) == 0 {
		return resolver.CommandInfo{}, false
	}
	return m.commands[m.cursor], true
}

// Init implements tea.Model.
func (m Picker) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.commands)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(len(m.commands)-1, 0)
		case "enter":
			if len(m.commands) > 0 {
				m.chosen = true
			}
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
		m.clampOffset()
	}
	return m, nil
}

// visibleRows is the number of list rows that fit under the header.
func (m Picker) visibleRows() int {
	if m.height <= 3 {
		return len(m.commands)
	}
	return m.height - 3
}

func (m *Picker) clampOffset() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// View implements tea.Model.
func (m Picker) View() string {
	if m.chosen || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.st.title.Render("Select a command"))
	b.WriteString(m.st.dim.Render("  ↑/↓ move · enter select · q quit"))
	b.WriteString("\n\n")

	nameW := 0
	for _, c := range m.commands {
		nameW = max(nameW, min(ansi.StringWidth(c.Name), maxNameWidth))
	}

	end := min(m.offset+m.visibleRows(), len(m.commands))
	for i := m.offset; i < end; i++ {
		c := m.commands[i]
		line := fmt.Sprintf("%s  %-7s  %s", padRight(ansi.Truncate(c.Name, maxNameWidth, truncationTail), nameW), c.Source, c.Description)
		if m.width > 2 {
			line = ansi.Truncate(line, m.width-2, truncationTail)
		}
		if i == m.cursor {
			b.WriteString(m.st.indicator.Render("› "))
			b.WriteString(m.st.selected.Render(line))
		} else {
			b.WriteString("  ")
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Pick runs the picker on in/out and returns the chosen command. ok is
// false when the user cancelled.
func Pick(cmds []resolver.CommandInfo, in io.Reader, out io.Writer) (resolver.CommandInfo, bool, error) {
	p := tea.NewProgram(NewPicker(cmds, out), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return resolver.CommandInfo{}, false, errors.Wrap(err, "run picker")
	}
	m, ok := final.(Picker)
	if !ok {
		return resolver.CommandInfo{}, false, errors.AssertionFailedf("unexpected picker model %T", final)
	}
	c, ok := m.Selected()
	return c, ok, nil
}
