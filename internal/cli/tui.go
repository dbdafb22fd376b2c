package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/levelkit/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PickerModel - Interactive document selection
// =============================================================================

// PickerItem is one selectable row.
type PickerItem struct {
	Name   string
	Detail string
}

// PickerModel is the bubbletea model for picking a document or template.
type PickerModel struct {
	Title    string
	Items    []PickerItem
	Cursor   int
	Selected *PickerItem
	Height   int
	Offset   int
}

// NewPickerModel creates a new picker over items.
func NewPickerModel(title string, items []PickerItem) PickerModel {
	return PickerModel{
		Title:  title,
		Items:  items,
		Height: 15,
	}
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Items) == 0 {
				return m, tea.Quit
			}
			item := m.Items[m.Cursor]
			m.Selected = &item
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Items))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, m.Items[i].Name, m.Items[i].Detail})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 2 {
				return listDimStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Items))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// interactive reports whether a picker can be shown.
func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// pick runs a picker and returns the chosen name, or "" if the user quit.
// Without a terminal it fails with INVALID_INPUT naming what is missing.
func pick(what string, items []PickerItem) (string, error) {
	if !interactive() {
		return "", errors.New(errors.ErrCodeInvalidInput, "%s required", what)
	}
	if len(items) == 0 {
		return "", errors.New(errors.ErrCodeNotFound, "nothing to choose a %s from", what)
	}
	final, err := tea.NewProgram(NewPickerModel("Select "+what, items)).Run()
	if err != nil {
		return "", err
	}
	fm, ok := final.(PickerModel)
	if !ok || fm.Selected == nil {
		return "", nil
	}
	return fm.Selected.Name, nil
}
