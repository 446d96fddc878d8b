package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gridsmith/gridview/pkg/component"
	"github.com/gridsmith/gridview/pkg/topology"
)

func testCanvas(t *testing.T) *topology.View {
	t.Helper()
	view := topology.NewView(nil)
	view.SetComponents([]component.Component{
		{ID: "s1", Category: component.CategorySolar, Name: "Roof array", Config: component.Config{"capacity_kw": 5.0}},
		{ID: "b1", Category: component.CategoryBattery, Name: "Cellar pack"},
	})
	return view
}

func keyPress(m tea.Model, key string) tea.Model {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next
}

func TestCanvasModelDragMovesNode(t *testing.T) {
	view := testCanvas(t)
	var m tea.Model = NewCanvasModel(view)

	// Cursor starts on the bus node; move focus to the first component.
	m = keyPress(m, "tab")

	node := view.State().Nodes[1]
	before := node.Position

	m = keyPress(m, "right")
	m = keyPress(m, "down")

	after, _ := view.State().Node(node.ID)
	if after.Position.X != before.X+moveStep || after.Position.Y != before.Y+moveStep {
		t.Errorf("position = %+v, want (%v, %v)", after.Position, before.X+moveStep, before.Y+moveStep)
	}

	model := m.(CanvasModel)
	if !model.Moved[node.ID] {
		t.Error("drag should record the node as moved")
	}
}

func TestCanvasModelToggleSelection(t *testing.T) {
	view := testCanvas(t)
	var m tea.Model = NewCanvasModel(view)

	m = keyPress(m, "tab")
	id := view.State().Nodes[1].ID

	m = keyPress(m, "enter")
	if view.Selected() != id {
		t.Fatalf("Selected() = %q, want %q", view.Selected(), id)
	}

	// Enter on the selected node clears the selection.
	m = keyPress(m, "enter")
	if view.Selected() != topology.NoSelection {
		t.Errorf("Selected() = %q, want cleared", view.Selected())
	}
	_ = m
}

func TestCanvasModelBusNotSelectable(t *testing.T) {
	view := testCanvas(t)
	var m tea.Model = NewCanvasModel(view)

	// Cursor starts on the bus node.
	m = keyPress(m, "enter")
	if view.Selected() != topology.NoSelection {
		t.Errorf("Selected() = %q, bus should not be selectable", view.Selected())
	}

	// But the bus can be dragged.
	m = keyPress(m, "up")
	hub, _ := view.State().Node(topology.HubID)
	if hub.Position.Y != topology.HubY-moveStep {
		t.Errorf("hub Y = %v, want %v", hub.Position.Y, topology.HubY-moveStep)
	}
	_ = m
}

func TestCanvasModelViewRenders(t *testing.T) {
	view := testCanvas(t)
	m := NewCanvasModel(view)

	out := m.View()
	if out == "" {
		t.Fatal("View() returned empty output")
	}
	for _, want := range []string{"Topology Editor", "Roof array", "Cellar pack"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() output missing %q", want)
		}
	}
}
