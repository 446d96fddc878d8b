package topology

import (
	"github.com/gridsmith/gridview/pkg/component"
)

// Resolve computes a position for every component in the snapshot.
//
// Components whose ID appears in known keep their recorded position
// byte-for-byte; the rest are assigned a fresh position at their category
// anchor, offset vertically by the component's category rank: the count of
// earlier same-category components in the input sequence. Already-placed
// components still occupy a rank, so a newcomer never lands on the slot a
// sibling was originally assigned, and two same-category components placed
// in the same pass never overlap.
//
// Resolve is a pure function of its inputs: identical (components, known)
// always yields identical output, independent of call history. Neither
// argument is mutated. It never fails; unknown categories fall back to a
// stacked anchor derived from the component's ordinal index.
//
// A duplicated ID in the snapshot is a contract violation by the caller;
// Resolve stays deterministic by letting the last occurrence win without
// disturbing any other ID. An entry carrying the reserved bus ID is
// likewise invalid input and is skipped entirely: it consumes no rank and
// produces no assignment, so the bus position is never shadowed.
func Resolve(components []component.Component, known map[string]Position) map[string]Position {
	out := make(map[string]Position, len(components))
	rank := make(map[component.Category]int)

	for i, c := range components {
		if c.ID == HubID {
			continue
		}
		r := rank[c.Category]
		rank[c.Category] = r + 1

		if p, ok := known[c.ID]; ok {
			out[c.ID] = p
			continue
		}

		anchor := AnchorFor(c.Category, i)
		out[c.ID] = Position{
			X: anchor.X,
			Y: anchor.Y + float64(r)*SpacingY,
		}
	}

	return out
}
