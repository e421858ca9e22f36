package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mkrale/upmeta/pkg/upstream"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// FieldListModel - Interactive metadata review
// =============================================================================

// FieldListModel is the bubbletea model for reviewing gathered metadata.
// Each row is one field; space toggles whether it is kept.
type FieldListModel struct {
	Data     []upstream.Datum
	Dropped  map[int]bool
	Cursor   int
	Accepted bool
	Height   int
	Offset   int
}

// NewFieldListModel creates a new field review model with all fields kept.
func NewFieldListModel(data []upstream.Datum) FieldListModel {
	return FieldListModel{
		Data:    data,
		Dropped: make(map[int]bool),
		Height:  15,
	}
}

func (m FieldListModel) Init() tea.Cmd {
	return nil
}

func (m FieldListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Data)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			m.Dropped[m.Cursor] = !m.Dropped[m.Cursor]
		case "enter":
			m.Accepted = true
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

func (m FieldListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Review Metadata"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ␣ toggle  ⏎ accept  q abort"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Data) {
		end = len(m.Data)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		d := m.Data[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		keep := iconSuccess
		if m.Dropped[i] {
			keep = iconError
		}

		value := truncate(d.String(), 60)

		rows = append(rows, []string{cursor, keep, string(d.Field), value, d.Certainty.String(), d.Origin.String()})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Field", "Value", "Confidence", "Origin").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Data) {
				return lipgloss.NewStyle()
			}
			dropped := m.Dropped[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if dropped {
				base = base.Foreground(colorDim).Strikethrough(col == 2 || col == 3)
			} else if col == 1 {
				base = base.Foreground(colorGreen)
			}
			if isCurrent {
				base = base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	kept := len(m.Data)
	for i := range m.Data {
		if m.Dropped[i] {
			kept--
		}
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  keeping %d", m.Cursor+1, len(m.Data), kept)))

	return b.String()
}

// truncate shortens s to at most max runes, marking the cut with "...".
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// reviewData runs the interactive review and returns the kept fields.
// Aborting the review keeps everything.
func reviewData(data []upstream.Datum) ([]upstream.Datum, error) {
	if len(data) == 0 {
		return data, nil
	}

	final, err := tea.NewProgram(NewFieldListModel(data)).Run()
	if err != nil {
		return nil, fmt.Errorf("run review: %w", err)
	}

	m, ok := final.(FieldListModel)
	if !ok || !m.Accepted {
		return data, nil
	}

	kept := make([]upstream.Datum, 0, len(data))
	for i, d := range data {
		if !m.Dropped[i] {
			kept = append(kept, d)
		}
	}
	return kept, nil
}
