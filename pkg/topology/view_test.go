package topology

import (
	"testing"

	"github.com/gridsmith/gridview/pkg/component"
)

// recorder collects selection callbacks for assertions.
type recorder struct {
	calls []string
}

func (r *recorder) fn() SelectFunc {
	return func(id string) { r.calls = append(r.calls, id) }
}

func (r *recorder) last(t *testing.T) string {
	t.Helper()
	if len(r.calls) == 0 {
		t.Fatal("no selection callback fired")
	}
	return r.calls[len(r.calls)-1]
}

func TestNewViewHasOnlyHub(t *testing.T) {
	v := NewView(nil)
	st := v.State()

	if len(st.Nodes) != 1 || len(st.Edges) != 0 {
		t.Fatalf("fresh view has %d nodes / %d edges, want 1 / 0", len(st.Nodes), len(st.Edges))
	}
	hub := st.Nodes[0]
	if hub.ID != HubID || hub.Kind != KindHub {
		t.Errorf("hub node = %+v", hub)
	}
	if hub.Position != (Position{X: HubX, Y: HubY}) {
		t.Errorf("hub position = %v", hub.Position)
	}
}

func TestSetComponentsBuildsNodesAndEdges(t *testing.T) {
	v := NewView(nil)
	v.SetComponents(comps(
		solar("s1", "Roof PV"),
		component.Component{ID: "b1", Category: component.CategoryBattery, Name: "Shed Battery"},
	))

	st := v.State()
	if len(st.Nodes) != 3 || len(st.Edges) != 2 {
		t.Fatalf("got %d nodes / %d edges, want 3 / 2", len(st.Nodes), len(st.Edges))
	}
	for _, e := range st.Edges {
		if e.Target != HubID {
			t.Errorf("edge %s targets %q, want the hub", e.ID, e.Target)
		}
		if e.ID != EdgeID(e.Source, HubID) {
			t.Errorf("edge ID %q not derived from endpoints", e.ID)
		}
	}
}

func TestPositionPreservedAcrossReconciliation(t *testing.T) {
	v := NewView(nil)
	list := comps(solar("s1", "Roof PV"))

	v.SetComponents(list)
	v.MoveNode("s1", Position{X: 200, Y: 200})
	v.SetComponents(list)

	n, ok := v.State().Node("s1")
	if !ok {
		t.Fatal("s1 missing after reconciliation")
	}
	if n.Position != (Position{X: 200, Y: 200}) {
		t.Errorf("dragged position lost: %v", n.Position)
	}
}

func TestPruneRemovedComponents(t *testing.T) {
	v := NewView(nil)
	a := solar("a", "A")
	b := solar("b", "B")

	v.SetComponents(comps(a, b))
	v.SetComponents(comps(b))

	st := v.State()
	if len(st.Nodes) != 2 {
		t.Fatalf("got %d nodes, want hub and b only", len(st.Nodes))
	}
	if _, ok := st.Node("a"); ok {
		t.Error("removed component a still has a node")
	}
	if len(st.Edges) != 1 || st.Edges[0].Source != "b" {
		t.Errorf("edges not pruned: %+v", st.Edges)
	}
}

func TestSelectionClearedWhenComponentVanishes(t *testing.T) {
	var rec recorder
	v := NewView(rec.fn())
	a := solar("a", "A")
	b := solar("b", "B")

	v.SetComponents(comps(a, b))
	v.ClickNode("a")
	if v.Selected() != "a" {
		t.Fatalf("selection = %q, want a", v.Selected())
	}

	v.SetComponents(comps(b))
	if v.Selected() != NoSelection {
		t.Errorf("selection = %q, want cleared", v.Selected())
	}
	if rec.last(t) != NoSelection {
		t.Errorf("callback fired with %q, want none sentinel", rec.last(t))
	}
}

func TestSelectionSurvivesReconciliation(t *testing.T) {
	var rec recorder
	v := NewView(rec.fn())
	a := solar("a", "A")

	v.SetComponents(comps(a))
	v.ClickNode("a")
	calls := len(rec.calls)

	v.SetComponents(comps(a))
	if v.Selected() != "a" {
		t.Errorf("selection lost on identical snapshot")
	}
	if len(rec.calls) != calls {
		t.Errorf("spurious selection callback on reconciliation")
	}
}

func TestHubNeverSelectable(t *testing.T) {
	var rec recorder
	v := NewView(rec.fn())
	v.SetComponents(comps(solar("s1", "Roof PV")))

	v.ClickNode(HubID)
	if v.Selected() != NoSelection {
		t.Errorf("hub became selected")
	}
	if len(rec.calls) != 0 {
		t.Errorf("hub click fired a callback")
	}
}

func TestEmptyCanvasClickNotifiesNone(t *testing.T) {
	var rec recorder
	v := NewView(rec.fn())
	v.SetComponents(comps(solar("s1", "Roof PV")))

	v.ClickNode("s1")
	v.ClickNode(NoSelection)

	if v.Selected() != NoSelection {
		t.Errorf("selection = %q after empty-canvas click", v.Selected())
	}
	if rec.last(t) != NoSelection {
		t.Errorf("callback = %q, want none sentinel", rec.last(t))
	}
}

func TestEdgeIdentityStable(t *testing.T) {
	v := NewView(nil)
	list := comps(solar("s1", "Roof PV"))

	v.SetComponents(list)
	first := v.State().Edges[0].ID
	v.SetComponents(list)
	second := v.State().Edges[0].ID

	if first != second {
		t.Errorf("edge ID changed across passes: %q then %q", first, second)
	}
	if first != "e-s1-bus" {
		t.Errorf("edge ID = %q, want e-s1-bus", first)
	}
}

func TestDragSurvivesRemoveAndRestore(t *testing.T) {
	// Cache retention is deliberate: a component deleted and re-added under
	// the same ID reappears where the user left it.
	v := NewView(nil)
	s1 := solar("s1", "Roof PV")

	v.SetComponents(comps(s1))
	v.MoveNode("s1", Position{X: 512, Y: 64})
	v.SetComponents(nil)
	v.SetComponents(comps(s1))

	n, _ := v.State().Node("s1")
	if n.Position != (Position{X: 512, Y: 64}) {
		t.Errorf("restored component at %v, want last dragged position", n.Position)
	}
}

func TestMoveHub(t *testing.T) {
	v := NewView(nil)
	v.SetComponents(comps(solar("s1", "Roof PV")))

	v.MoveNode(HubID, Position{X: 10, Y: 20})
	v.SetComponents(comps(solar("s1", "Roof PV")))

	hub, _ := v.State().Node(HubID)
	if hub.Position != (Position{X: 10, Y: 20}) {
		t.Errorf("hub position lost: %v", hub.Position)
	}
}

func TestDuplicateIDKeepsLastOccurrence(t *testing.T) {
	v := NewView(nil)
	v.SetComponents(comps(
		solar("s1", "First"),
		solar("s1", "Second"),
		solar("s2", "Other"),
	))

	st := v.State()
	if len(st.Nodes) != 3 { // hub + s1 + s2
		t.Fatalf("got %d nodes, want 3", len(st.Nodes))
	}
	n, _ := st.Node("s1")
	if n.Label != "Second" {
		t.Errorf("duplicate ID label = %q, want last occurrence", n.Label)
	}
	if _, ok := st.Node("s2"); !ok {
		t.Error("duplicate ID corrupted a neighboring node")
	}
}

func TestStateIsACopy(t *testing.T) {
	v := NewView(nil)
	v.SetComponents(comps(solar("s1", "Roof PV")))

	st := v.State()
	st.Nodes[0].Position = Position{X: -1, Y: -1}

	if v.State().Nodes[0].Position == (Position{X: -1, Y: -1}) {
		t.Error("State() exposes internal node slice")
	}
}

// The concrete end-to-end scenario: initial placement, caption, edge color,
// then a drag followed by a same-category addition.
func TestScenarioSolarPair(t *testing.T) {
	v := NewView(nil)
	s1 := component.Component{
		ID:       "s1",
		Category: component.CategorySolar,
		Name:     "Roof PV",
		Config:   component.Config{"capacity_kw": 5},
	}

	v.SetComponents(comps(s1))

	st := v.State()
	n, ok := st.Node("s1")
	if !ok {
		t.Fatal("s1 missing")
	}
	if n.Caption != "5 kWp" {
		t.Errorf("caption = %q, want 5 kWp", n.Caption)
	}
	if n.Position != AnchorFor(component.CategorySolar, 0) {
		t.Errorf("s1 at %v, want the solar anchor", n.Position)
	}
	if len(st.Edges) != 1 || st.Edges[0].ID != "e-s1-bus" {
		t.Fatalf("edges = %+v", st.Edges)
	}
	if st.Edges[0].Color != StrokeColor(component.CategorySolar) {
		t.Errorf("edge color = %q", st.Edges[0].Color)
	}

	v.MoveNode("s1", Position{X: 200, Y: 200})
	s2 := component.Component{ID: "s2", Category: component.CategorySolar, Name: "Barn PV"}
	v.SetComponents(comps(s1, s2))

	st = v.State()
	n1, _ := st.Node("s1")
	if n1.Position != (Position{X: 200, Y: 200}) {
		t.Errorf("s1 moved to %v, want the dragged position kept", n1.Position)
	}
	// s1 keeps its rank even though it is no longer freshly assigned, so
	// s2 lands one spacing unit below the solar anchor.
	anchor := AnchorFor(component.CategorySolar, 0)
	n2, _ := st.Node("s2")
	if n2.Position != (Position{X: anchor.X, Y: anchor.Y + SpacingY}) {
		t.Errorf("s2 at %v, want anchor offset by one spacing unit", n2.Position)
	}
}

func TestReservedBusIDNeverBecomesComponent(t *testing.T) {
	v := NewView(nil)
	v.SetComponents(comps(
		component.Component{ID: HubID, Category: component.CategorySolar, Name: "Impostor"},
		solar("s1", "Roof PV"),
	))

	st := v.State()
	hubs := 0
	for _, n := range st.Nodes {
		if n.ID == HubID {
			hubs++
			if n.Kind != KindHub {
				t.Errorf("bus node has kind %q, want %q", n.Kind, KindHub)
			}
		}
	}
	if hubs != 1 {
		t.Fatalf("got %d nodes with the bus ID, want exactly 1", hubs)
	}
	if len(st.Nodes) != 2 || len(st.Edges) != 1 {
		t.Fatalf("got %d nodes / %d edges, want 2 / 1", len(st.Nodes), len(st.Edges))
	}
	for _, e := range st.Edges {
		if e.Source == HubID {
			t.Errorf("self-edge on the bus: %+v", e)
		}
	}
	if n, ok := st.Node("s1"); !ok || n.Position != AnchorFor(component.CategorySolar, 0) {
		t.Errorf("s1 position = %+v, want the rank-0 solar anchor", n.Position)
	}
}
