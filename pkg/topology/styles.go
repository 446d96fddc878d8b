package topology

import (
	"fmt"
	"strconv"

	"github.com/gridsmith/gridview/pkg/component"
)

// =============================================================================
// Category Styling - Anchors, Colors, Captions
// =============================================================================

// Canvas geometry. The hub sits mid-canvas; category anchors spread the
// component groups around it.
const (
	HubX = 400.0
	HubY = 300.0

	// SpacingY separates same-category components stacked under one anchor.
	SpacingY = 90.0

	// Fallback anchor column for categories missing from the anchor table.
	// Each such component gets its own row from its ordinal index, keeping
	// novel categories clear of the hub and of each other.
	fallbackX     = 680.0
	fallbackBaseY = 300.0
)

// Neutral stroke color for unrecognized categories.
const neutralColor = "#adb5bd"

// hubColor paints the bus node.
const hubColor = "#343a40"

// categoryStyle bundles everything the view derives from a category.
type categoryStyle struct {
	anchor  Position
	color   string
	caption func(c *component.Component) string
}

// categoryStyles is the total lookup table for the closed category set.
// Generation sources sit top-left, storage center, grid connection
// top-right, mirroring the way operators sketch single-line diagrams.
var categoryStyles = map[component.Category]categoryStyle{
	component.CategorySolar: {
		anchor:  Position{X: 120, Y: 80},
		color:   "#f59f00",
		caption: captionNum("kWp", "capacity_kw", "peak_kw"),
	},
	component.CategoryWind: {
		anchor:  Position{X: 120, Y: 200},
		color:   "#74c0fc",
		caption: captionNum("kW", "capacity_kw", "rated_kw"),
	},
	component.CategoryBattery: {
		// Offset from the hub column so a stacked battery row never lands
		// on the hub's default position.
		anchor:  Position{X: 480, Y: 120},
		color:   "#40c057",
		caption: captionNum("kWh", "capacity_kwh", "energy_kwh"),
	},
	component.CategoryDiesel: {
		anchor:  Position{X: 120, Y: 320},
		color:   "#a9722c",
		caption: captionNum("kW", "rated_kw", "capacity_kw"),
	},
	component.CategoryGrid: {
		anchor:  Position{X: 680, Y: 80},
		color:   "#845ef7",
		caption: captionNum("kW", "max_import_kw", "capacity_kw"),
	},
}

// AnchorFor returns the starting anchor for a category.
// ordinal is the component's index in the snapshot; it only matters for
// categories outside the anchor table, which fall back to a vertical stack
// so they never collide with the hub or with each other.
func AnchorFor(cat component.Category, ordinal int) Position {
	if s, ok := categoryStyles[cat]; ok {
		return s.anchor
	}
	return Position{X: fallbackX, Y: fallbackBaseY + float64(ordinal)*SpacingY}
}

// StrokeColor returns the paint color for a category.
// Unknown categories map to a fixed neutral grey, never an error.
func StrokeColor(cat component.Category) string {
	if s, ok := categoryStyles[cat]; ok {
		return s.color
	}
	return neutralColor
}

// Caption derives the short display caption for a component from its
// category and config, e.g. "5 kWp" for a solar array with capacity_kw=5.
// Total over all inputs: missing fields render as zero, unknown categories
// as an empty caption.
func Caption(c *component.Component) string {
	if s, ok := categoryStyles[c.Category]; ok {
		return s.caption(c)
	}
	return ""
}

// captionNum builds a caption function that reads the first present field
// from keys (in priority order) and formats it with the given unit.
// Falls back to zero when every field is absent.
func captionNum(unit string, keys ...string) func(*component.Component) string {
	return func(c *component.Component) string {
		for _, k := range keys {
			if v, ok := c.Num(k); ok {
				return fmt.Sprintf("%s %s", strconv.FormatFloat(v, 'f', -1, 64), unit)
			}
		}
		return "0 " + unit
	}
}
