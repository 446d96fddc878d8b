package topology

import (
	"github.com/gridsmith/gridview/pkg/component"
)

// SelectFunc receives selection changes. id is the focused component's ID,
// or NoSelection when focus is cleared (vanished component, empty-canvas
// click).
type SelectFunc func(id string)

// View reconciles the authoritative component list with the locally edited
// topology graph. It owns the node/edge collections, the current selection,
// and a position cache that outlives individual reconciliation passes, so
// user-dragged positions survive any number of snapshot updates.
//
// View is not safe for concurrent use: the host (HTTP server, TUI event
// loop) serializes operations, and each one runs to completion before the
// next begins. Because drag and snapshot events pass through the same
// serialization point, a drag applied before a snapshot arrives is always
// reflected in that snapshot's reconciliation.
type View struct {
	nodes    []ViewNode
	edges    []ViewEdge
	selected string

	// positions persists across passes. Entries for removed components are
	// kept on purpose: a component deleted and later restored under the
	// same ID reappears where the user left it.
	positions map[string]Position

	onSelect SelectFunc
}

// NewView creates an empty topology view containing only the bus node.
// onSelect may be nil if the host has no use for selection events.
func NewView(onSelect SelectFunc) *View {
	v := &View{
		positions: map[string]Position{
			HubID: {X: HubX, Y: HubY},
		},
		onSelect: onSelect,
	}
	v.SetComponents(nil)
	return v
}

// SetComponents merges a full replacement snapshot into the view.
//
// Positions for IDs already in the cache are preserved untouched (whether
// the resolver or a drag put them there); new IDs get deterministic fresh
// positions from Resolve. Nodes and edges are rebuilt from scratch: one
// node and one bus edge per component, labels and captions taken from the
// current snapshot. Nodes for components no longer present are pruned, and
// a selection pointing at a pruned component is cleared with a NoSelection
// callback.
//
// Duplicate IDs in the snapshot keep the last occurrence. A snapshot entry
// carrying the reserved bus ID is dropped: the bus is never mirrored by a
// component, so exactly one hub node survives every pass.
func (v *View) SetComponents(components []component.Component) {
	for id, p := range Resolve(components, v.positions) {
		v.positions[id] = p
	}

	nodes := make([]ViewNode, 0, len(components)+1)
	edges := make([]ViewEdge, 0, len(components))
	nodes = append(nodes, ViewNode{
		ID:       HubID,
		Kind:     KindHub,
		Label:    HubLabel,
		Color:    hubColor,
		Position: v.positions[HubID],
	})

	index := make(map[string]int, len(components))
	for _, c := range components {
		if c.ID == HubID {
			continue
		}
		n := ViewNode{
			ID:       c.ID,
			Kind:     KindComponent,
			Category: c.Category,
			Label:    c.Name,
			Caption:  Caption(&c),
			Color:    StrokeColor(c.Category),
			Position: v.positions[c.ID],
		}
		e := ViewEdge{
			ID:       EdgeID(c.ID, HubID),
			Source:   c.ID,
			Target:   HubID,
			Category: c.Category,
			Color:    StrokeColor(c.Category),
		}
		if i, ok := index[c.ID]; ok {
			nodes[i+1] = n // +1 for the hub at slot 0
			edges[i] = e
			continue
		}
		index[c.ID] = len(edges)
		nodes = append(nodes, n)
		edges = append(edges, e)
	}

	v.nodes = nodes
	v.edges = edges

	if v.selected != NoSelection {
		if _, ok := index[v.selected]; !ok {
			v.selected = NoSelection
			v.notify(NoSelection)
		}
	}
}

// MoveNode records a drag: the node's position is updated in place and in
// the cache, so the next reconciliation keeps it. Unknown IDs are ignored.
// The bus is draggable like any node; edges and selection are unaffected.
func (v *View) MoveNode(id string, pos Position) {
	for i := range v.nodes {
		if v.nodes[i].ID == id {
			v.nodes[i].Position = pos
			v.positions[id] = pos
			return
		}
	}
}

// ClickNode records a click on a node, or on empty canvas when id is
// NoSelection. Clicking a component selects it and notifies the host;
// clicking empty canvas notifies with NoSelection so the host can clear a
// detail panel. The bus is never selectable: clicking it is a no-op.
func (v *View) ClickNode(id string) {
	if id == HubID {
		return
	}
	if id == NoSelection {
		v.selected = NoSelection
		v.notify(NoSelection)
		return
	}
	if _, ok := v.node(id); !ok {
		return
	}
	v.selected = id
	v.notify(id)
}

// Selected returns the focused component's ID, or NoSelection.
func (v *View) Selected() string {
	return v.selected
}

// State returns a copy of the current view state for a drawing surface.
// Mutating the returned slices does not affect the view.
func (v *View) State() ViewState {
	st := ViewState{
		Nodes:    make([]ViewNode, len(v.nodes)),
		Edges:    make([]ViewEdge, len(v.edges)),
		Selected: v.selected,
	}
	copy(st.Nodes, v.nodes)
	copy(st.Edges, v.edges)
	return st
}

func (v *View) node(id string) (ViewNode, bool) {
	for _, n := range v.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return ViewNode{}, false
}

func (v *View) notify(id string) {
	if v.onSelect != nil {
		v.onSelect(id)
	}
}
