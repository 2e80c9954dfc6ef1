// Package tui is an interactive completion playground. Lines are typed one at a time; the
// completions for the cursor position are listed as you type, and committed lines feed
// variable inference for the lines after them.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rlch/beancomplete"
	"github.com/rlch/beancomplete/snippet"
)

type keyMap struct {
	Accept key.Binding
	Next   key.Binding
	Prev   key.Binding
	Commit key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Accept: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "accept")),
		Next:   key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next")),
		Prev:   key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "previous")),
		Commit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "new line")),
		Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// Model is the bubbletea model of the playground.
type Model struct {
	completer *beancomplete.Autocompleter
	styles    *Styles
	keys      keyMap
	input     textinput.Model

	// history holds the committed lines, above the input line.
	history []string

	result   beancomplete.Result
	selected int
	err      error

	width int
}

// New creates a playground completing with a.
func New(a *beancomplete.Autocompleter) *Model {
	styles := DefaultStyles()

	input := textinput.New()
	input.Prompt = "❯ "
	input.PromptStyle = styles.Prompt
	input.Placeholder = "type an expression, e.g. People.find(\"x\")."
	input.Focus()

	m := &Model{
		completer: a,
		styles:    styles,
		keys:      defaultKeyMap(),
		input:     input,
		width:     80,
	}

	m.refresh()

	return m
}

// Run starts the playground on in and out and blocks until the user quits. It returns the
// lines that were typed.
func Run(a *beancomplete.Autocompleter, in io.Reader, out io.Writer) ([]string, error) {
	m := New(a)

	_, err := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return nil, err
	}

	return m.Lines(), nil
}

// Lines returns the committed lines followed by the line being edited.
func (m *Model) Lines() []string {
	lines := append([]string(nil), m.history...)
	if v := m.input.Value(); v != "" {
		lines = append(lines, v)
	}

	return lines
}

// Result returns the completions for the current cursor position.
func (m *Model) Result() beancomplete.Result {
	return m.result
}

// Selected returns the highlighted entry.
func (m *Model) Selected() (beancomplete.Entry, bool) {
	if m.selected >= len(m.result.Entries) {
		return beancomplete.Entry{}, false
	}

	return m.result.Entries[m.selected], true
}

// Value returns the line being edited.
func (m *Model) Value() string {
	return m.input.Value()
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { //nolint:ireturn // bubbletea.Model interface required by tea.Program
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Accept):
			m.accept()

			return m, nil

		case key.Matches(msg, m.keys.Next):
			if n := len(m.result.Entries); n > 0 {
				m.selected = (m.selected + 1) % n
			}

			return m, nil

		case key.Matches(msg, m.keys.Prev):
			if n := len(m.result.Entries); n > 0 {
				m.selected = (m.selected - 1 + n) % n
			}

			return m, nil

		case key.Matches(msg, m.keys.Commit):
			m.history = append(m.history, m.input.Value())
			m.input.Reset()
			m.refresh()

			return m, nil
		}
	}

	var cmd tea.Cmd

	before, pos := m.input.Value(), m.input.Position()
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before || m.input.Position() != pos {
		m.refresh()
	}

	return m, cmd
}

// refresh recomputes the completions at the cursor over the whole typed text.
func (m *Model) refresh() {
	lines := append(append([]string(nil), m.history...), m.input.Value())
	buf := beancomplete.NewStringBuffer(strings.Join(lines, "\n"))
	line := len(m.history)
	col := min(m.input.Position(), buf.LineLength(line))

	m.selected = 0
	m.err = nil
	m.result = beancomplete.Result{Offset: col}

	m.completer.ScanLines(buf, 0, line)

	stream, err := beancomplete.NewBackwardStream(buf, line, col)
	if err != nil {
		m.err = err

		return
	}

	result, err := m.completer.EntriesForIncompleteString(col, stream)
	if err != nil {
		m.err = err

		return
	}

	m.result = result
}

// accept replaces the identifier being typed with the selected entry.
func (m *Model) accept() {
	e, ok := m.Selected()
	if !ok {
		return
	}

	value := []rune(m.input.Value())
	col := min(m.input.Position(), len(value))
	start := min(m.result.Offset, col)

	text, cursor := snippet.Insert(e)

	m.input.SetValue(string(value[:start]) + text + string(value[col:]))
	m.input.SetCursor(start + cursor)
	m.refresh()
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Bold.Render("beancomplete playground"))
	b.WriteString("\n\n")

	for _, line := range m.history {
		b.WriteString(m.styles.Dim.Render("  " + line))
		b.WriteByte('\n')
	}

	b.WriteString(m.input.View())
	b.WriteByte('\n')

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("  " + m.err.Error()))
		b.WriteByte('\n')
	} else if popup := m.renderPopup(); popup != "" {
		b.WriteString(popup)
		b.WriteByte('\n')
	}

	b.WriteString(m.styles.Dim.Render("  tab accept • ↑/↓ select • enter new line • esc quit"))
	b.WriteByte('\n')

	return b.String()
}

func (m *Model) renderPopup() string {
	entries := m.result.Entries
	if len(entries) == 0 {
		return ""
	}

	// Keep the selection in the visible window.
	first := max(0, m.selected-m.styles.MaxItems+1)
	last := min(len(entries), first+m.styles.MaxItems)

	rows := make([]string, 0, last-first+2)

	for i := first; i < last; i++ {
		rows = append(rows, m.renderEntry(entries[i], i == m.selected))
	}

	if last < len(entries) {
		rows = append(rows, m.styles.Dim.Render(fmt.Sprintf("  … %d more", len(entries)-last)))
	}

	if e, ok := m.Selected(); ok && e.Description != "" {
		rows = append(rows, "", m.styles.Muted.Render(e.Description))
	}

	return m.styles.Popup.MaxWidth(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderEntry(e beancomplete.Entry, selected bool) string {
	pointer := " "
	if selected {
		pointer = m.styles.SymbolPointer
	}

	kind := m.styles.Kind(e.Kind).Width(m.styles.KindWidth).Render(e.Kind.String())

	label := e.Label()

	switch {
	case e.Deprecated:
		label = m.styles.Deprecated.Render(label)
	case selected:
		label = m.styles.Selected.Render(label)
	}

	return pointer + " " + kind + " " + label
}
