package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hadley31/chess-image-generator/pkg/render/styles"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// styleListModel is the bubbletea model for interactive piece style
// selection.
type styleListModel struct {
	names    []string
	cursor   int
	selected string
}

func newStyleListModel(current string) styleListModel {
	m := styleListModel{names: styles.Names}
	for i, name := range m.names {
		if name == current {
			m.cursor = i
		}
	}
	return m
}

func (m styleListModel) Init() tea.Cmd {
	return nil
}

func (m styleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.names)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = m.names[m.cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m styleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Piece Style"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	for i, name := range m.names {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%-12s", cursor, name)
		if name == styles.Default {
			line += listDimStyle.Render("(default)")
		}

		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// pickStyle runs the interactive style picker and returns the chosen
// style name. An empty string means the user quit without selecting.
func pickStyle(current string) (string, error) {
	p := tea.NewProgram(newStyleListModel(current))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("style picker: %w", err)
	}
	if m, ok := final.(styleListModel); ok {
		return m.selected, nil
	}
	return "", nil
}
