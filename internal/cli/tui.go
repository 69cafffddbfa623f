package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/graphlearn/pkg/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NodeListModel - Interactive layout browser
// =============================================================================

// NodeListModel is the bubbletea model for browsing a computed layout.
// Enter toggles a detail pane for the node under the cursor.
type NodeListModel struct {
	Result   *layout.Result
	Cursor   int
	Height   int
	Offset   int
	Expanded bool
}

// NewNodeListModel creates a new node list model.
func NewNodeListModel(res *layout.Result) NodeListModel {
	return NodeListModel{Result: res, Height: 15}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.Result.Nodes)
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
			if m.Cursor < n-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = n - 1
			m.Offset = max(0, n-m.Height)
		case "enter", " ":
			m.Expanded = !m.Expanded
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")
	b.WriteString(nodeTable(m.Result, m.Offset, m.Height, m.Cursor).Render())
	b.WriteString("\n")

	if m.Expanded && len(m.Result.Nodes) > 0 {
		b.WriteString(m.details(m.Result.Nodes[m.Cursor]))
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  bounds %.0f×%.0f",
		m.Cursor+1, len(m.Result.Nodes), m.Result.Bounds.Width(), m.Result.Bounds.Height())))

	return b.String()
}

func (m NodeListModel) title() string {
	if m.Result.Title != nil && m.Result.Title.Text != "" {
		return m.Result.Title.Text
	}
	return "Layout"
}

func (m NodeListModel) details(n layout.Node) string {
	var b strings.Builder
	line := func(k, v string) {
		b.WriteString("  " + listDimStyle.Render(fmt.Sprintf("%-10s", k)) + " " + StyleValue.Render(v) + "\n")
	}
	line("id", n.Content.ID)
	line("title", n.Content.DisplayTitle())
	if n.Content.URL != "" {
		line("url", StyleLink.Render(n.Content.URL))
	}
	if n.Content.Text != "" {
		line("text", truncateRunes(n.Content.Text, 60))
	}
	line("parent", orDash(parentID(m.Result, n.Index)))
	line("children", fmt.Sprintf("%d", len(childIDs(m.Result, n.Index))))
	return b.String()
}

// nodeTable renders rows [offset, offset+height) of the layout, marking the
// cursor row.
func nodeTable(res *layout.Result, offset, height, cursor int) *table.Table {
	end := min(offset+height, len(res.Nodes))

	rows := [][]string{}
	for i := offset; i < end; i++ {
		n := res.Nodes[i]
		mark := "  "
		if i == cursor {
			mark = "▸ "
		}
		rows = append(rows, []string{
			mark,
			strings.Repeat("  ", n.Depth) + n.Content.ID,
			string(n.Content.Category),
			fmt.Sprintf("%.0f, %.0f", n.Position.X, n.Position.Y),
			fmt.Sprintf("%.0f×%.0f", n.Size.Width, n.Size.Height),
			fmt.Sprintf("%.0f", n.SubtreeWidth),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Type", "Position", "Size", "Subtree").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := offset + row
			if idx >= len(res.Nodes) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == cursor:
				return listSelectedStyle
			case !res.Nodes[idx].Content.Category.Known():
				return listDimStyle
			case col == 2:
				return categoryStyle(res.Nodes[idx].Content.Category)
			case col >= 3:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
}

// =============================================================================
// Helpers
// =============================================================================

func childIDs(res *layout.Result, parent int) []string {
	var ids []string
	for _, e := range res.Edges {
		if e.Parent == parent {
			ids = append(ids, res.Nodes[e.Child].Content.ID)
		}
	}
	return ids
}

func parentID(res *layout.Result, child int) string {
	for _, e := range res.Edges {
		if e.Child == child {
			return res.Nodes[e.Parent].Content.ID
		}
	}
	return ""
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
