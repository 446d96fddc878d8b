package render

import (
	"strings"
	"testing"

	"github.com/gridsmith/gridview/pkg/component"
	"github.com/gridsmith/gridview/pkg/topology"
)

func stateWith(selected string) topology.ViewState {
	v := topology.NewView(nil)
	v.SetComponents([]component.Component{
		{ID: "s1", Category: component.CategorySolar, Name: "Roof PV", Config: component.Config{"capacity_kw": 5}},
		{ID: "b1", Category: component.CategoryBattery, Name: "Shed Battery"},
	})
	if selected != "" {
		v.ClickNode(selected)
	}
	return v.State()
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(stateWith(""))

	for _, want := range []string{
		"layout=neato",
		`"bus"`,
		`"s1"`,
		`"b1"`,
		`"s1" -- "bus"`,
		`"b1" -- "bus"`,
		"Roof PV\\n5 kWp",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	if !strings.Contains(dot, topology.StrokeColor(component.CategorySolar)) {
		t.Error("DOT missing the solar edge color")
	}
}

func TestToDOTPinsPositions(t *testing.T) {
	dot := ToDOT(stateWith(""))
	if !strings.Contains(dot, "!\"") {
		t.Error("node positions are not pinned")
	}
}

func TestToDOTDeterministic(t *testing.T) {
	if ToDOT(stateWith("")) != ToDOT(stateWith("")) {
		t.Error("ToDOT output is not deterministic")
	}
}

func TestToDOTMarksSelection(t *testing.T) {
	plain := ToDOT(stateWith(""))
	selected := ToDOT(stateWith("s1"))

	if plain == selected {
		t.Error("selection does not affect output")
	}
	if !strings.Contains(selected, "penwidth=3") {
		t.Error("selected node not outlined")
	}
}
