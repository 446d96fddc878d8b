// Package render draws topology view states with Graphviz.
//
// It is one of gridview's interchangeable drawing surfaces: it consumes the
// plain node/edge contract from pkg/topology and knows nothing about how
// the view state came to be. Node positions are pinned, so the output
// matches the canvas layout instead of being re-laid-out by Graphviz.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gridsmith/gridview/pkg/topology"
)

// pointsPerUnit converts canvas coordinates to Graphviz points. Canvas y
// grows downward; Graphviz y grows upward, so y is negated.
const pointsPerUnit = 0.75

// ToDOT converts a view state to Graphviz DOT with pinned node positions.
// The neato engine honors the pins, so the drawing reproduces the canvas
// layout. The selected node, if any, is drawn with a heavier outline.
func ToDOT(st topology.ViewState) string {
	var buf bytes.Buffer
	buf.WriteString("graph topology {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, n := range st.Nodes {
		attrs := nodeAttrs(n, n.ID == st.Selected)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range st.Edges {
		fmt.Fprintf(&buf, "  %q -- %q [color=%q, penwidth=2];\n", e.Source, e.Target, e.Color)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n topology.ViewNode, selected bool) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", nodeLabel(n)),
		fmt.Sprintf("pos=\"%g,%g!\"", n.Position.X*pointsPerUnit, -n.Position.Y*pointsPerUnit),
		fmt.Sprintf("color=%q", n.Color),
	}
	if n.Kind == topology.KindHub {
		attrs = append(attrs, "shape=ellipse", "fillcolor=\"#f1f3f5\"")
	}
	if selected {
		attrs = append(attrs, "penwidth=3")
	}
	return attrs
}

func nodeLabel(n topology.ViewNode) string {
	if n.Caption == "" {
		return n.Label
	}
	return n.Label + "\n" + n.Caption
}
