package topology

import (
	"github.com/gridsmith/gridview/pkg/component"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// HubID is the node ID of the common electrical bus, the one node that
// never corresponds to a component. The component model refuses it as a
// component ID, and SetComponents drops any snapshot entry that still
// carries it, so exactly one node with this ID ever exists.
const HubID = component.ReservedBusID

// HubLabel is the display label of the bus node.
const HubLabel = "AC Bus"

// Node kinds.
const (
	KindHub       = "hub"
	KindComponent = "component"
)

// NoSelection is the sentinel passed to selection callbacks when no
// component is focused (selection cleared, or click on empty canvas).
const NoSelection = ""

// =============================================================================
// View State - Nodes, Edges, Selection
// =============================================================================

// Position is a point on the canvas plane.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// ViewNode is the visual representation of one component (or the bus).
// Position is locally owned and survives reconciliation; everything else is
// rebuilt from the component snapshot on every pass.
type ViewNode struct {
	ID       string             `json:"id" bson:"id"`
	Kind     string             `json:"kind" bson:"kind"` // "hub" or "component"
	Category component.Category `json:"category,omitempty" bson:"category,omitempty"`
	Label    string             `json:"label" bson:"label"`
	Caption  string             `json:"caption,omitempty" bson:"caption,omitempty"`
	Color    string             `json:"color" bson:"color"`
	Position Position           `json:"position" bson:"position"`
}

// ViewEdge connects a component node to the bus. Edges are fully derived:
// the user never moves or deletes them directly.
type ViewEdge struct {
	ID       string             `json:"id" bson:"id"`
	Source   string             `json:"source" bson:"source"`
	Target   string             `json:"target" bson:"target"`
	Category component.Category `json:"category,omitempty" bson:"category,omitempty"`
	Color    string             `json:"color" bson:"color"`
}

// ViewState is a read-only snapshot of the topology view, the contract
// consumed by drawing surfaces. Node order affects paint order only.
type ViewState struct {
	Nodes    []ViewNode `json:"nodes" bson:"nodes"`
	Edges    []ViewEdge `json:"edges" bson:"edges"`
	Selected string     `json:"selected,omitempty" bson:"selected,omitempty"`
}

// Node returns the node with the given ID, if present.
func (s ViewState) Node(id string) (ViewNode, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return ViewNode{}, false
}

// EdgeID derives the identifier for the edge between a component and the
// bus. Purely a function of the endpoint IDs, so the same component yields
// the same edge ID on every reconciliation pass.
func EdgeID(source, target string) string {
	return "e-" + source + "-" + target
}
