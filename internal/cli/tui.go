package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gridsmith/gridview/pkg/topology"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// moveStep is how far one arrow key press drags a node, in canvas units.
const moveStep = 10

// =============================================================================
// CanvasModel - Interactive topology editing
// =============================================================================

// CanvasModel is the bubbletea model for terminal topology editing. The
// cursor walks the node list; arrow keys drag the focused node and enter
// toggles its selection. All interaction goes through the topology view,
// so the editor obeys the same rules as the dashboard canvas (the bus
// node can be dragged but never selected).
type CanvasModel struct {
	Canvas *topology.View
	Cursor int
	Moved  map[string]bool
}

// NewCanvasModel creates a canvas model around an already reconciled view.
func NewCanvasModel(view *topology.View) CanvasModel {
	return CanvasModel{
		Canvas: view,
		Moved:  make(map[string]bool),
	}
}

func (m CanvasModel) Init() tea.Cmd {
	return nil
}

func (m CanvasModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	nodes := m.Canvas.State().Nodes

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "j":
			if m.Cursor < len(nodes)-1 {
				m.Cursor++
			}
		case "shift+tab", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "up", "down", "left", "right":
			if m.Cursor < len(nodes) {
				m.drag(nodes[m.Cursor], msg.String())
			}
		case "enter", " ":
			if m.Cursor < len(nodes) {
				m.toggle(nodes[m.Cursor].ID)
			}
		}
	}
	return m, nil
}

// drag moves the focused node one step in the given direction.
func (m CanvasModel) drag(n topology.ViewNode, dir string) {
	pos := n.Position
	switch dir {
	case "up":
		pos.Y -= moveStep
	case "down":
		pos.Y += moveStep
	case "left":
		pos.X -= moveStep
	case "right":
		pos.X += moveStep
	}
	m.Canvas.MoveNode(n.ID, pos)
	m.Moved[n.ID] = true
}

// toggle selects the node, or clears the selection when it is already
// selected.
func (m CanvasModel) toggle(id string) {
	if m.Canvas.Selected() == id {
		m.Canvas.ClickNode(topology.NoSelection)
		return
	}
	m.Canvas.ClickNode(id)
}

func (m CanvasModel) View() string {
	st := m.Canvas.State()

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Topology Editor"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("tab/j/k focus  arrows drag  ⏎ select  q quit"))
	b.WriteString("\n\n")

	rows := [][]string{}
	for i, n := range st.Nodes {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		selected := ""
		if n.ID == st.Selected {
			selected = "●"
		}

		kind := "component"
		if n.Kind == topology.KindHub {
			kind = "bus"
		}

		moved := ""
		if m.Moved[n.ID] {
			moved = "moved"
		}

		pos := fmt.Sprintf("(%.0f, %.0f)", n.Position.X, n.Position.Y)
		rows = append(rows, []string{cursor, n.Label, kind, n.Caption, pos, selected, moved})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Kind", "Caption", "Position", "Sel", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= len(st.Nodes) {
				return lipgloss.NewStyle()
			}

			base := lipgloss.NewStyle()
			if st.Nodes[row].ID == st.Selected {
				base = base.Foreground(colorGreen)
			}
			if row == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d edge(s)", m.Cursor+1, len(st.Nodes), len(st.Edges))))

	return b.String()
}
