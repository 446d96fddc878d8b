// Package topology keeps an editable visual graph of a microgrid site in
// sync with the authoritative component list.
//
// The package has two cooperating parts:
//
//   - Resolve computes deterministic starting positions for components that
//     have never been placed, grouping them by category anchor and stacking
//     same-category components so fresh placements never overlap.
//   - View owns the mutable view state (nodes, edges, selection) and merges
//     each new component snapshot into it without discarding positions the
//     user has dragged into place.
//
// Rendering is deliberately absent: the view state is a plain data contract
// consumed by interchangeable drawing surfaces (the HTTP API feeding the
// browser canvas, the terminal editor, the Graphviz exporter). Surfaces
// report user interaction back through MoveNode and ClickNode.
//
// Every operation in this package is total: unknown categories, missing
// config fields, and vanished selections all degrade to documented
// fallbacks instead of errors.
package topology
