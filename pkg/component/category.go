package component

import (
	"github.com/gridsmith/gridview/pkg/errors"
)

// Category identifies the kind of power-system component.
// The set is closed: every category gridview understands is listed below.
// Unknown strings survive parsing from external data but are treated by the
// topology engine with explicit fallbacks (neutral color, stacked anchor).
type Category string

// The supported component categories.
const (
	CategorySolar   Category = "generation-solar"
	CategoryWind    Category = "generation-wind"
	CategoryBattery Category = "storage-battery"
	CategoryDiesel  Category = "generation-diesel"
	CategoryGrid    Category = "grid-connection"
)

// Categories lists all known categories in canonical display order.
var Categories = []Category{
	CategorySolar,
	CategoryWind,
	CategoryBattery,
	CategoryDiesel,
	CategoryGrid,
}

// Valid reports whether the category is one of the closed enumeration.
func (c Category) Valid() bool {
	switch c {
	case CategorySolar, CategoryWind, CategoryBattery, CategoryDiesel, CategoryGrid:
		return true
	}
	return false
}

// DisplayName returns the human-readable name for the category.
// Unknown categories are returned verbatim.
func (c Category) DisplayName() string {
	switch c {
	case CategorySolar:
		return "Solar PV"
	case CategoryWind:
		return "Wind Turbine"
	case CategoryBattery:
		return "Battery Storage"
	case CategoryDiesel:
		return "Diesel Generator"
	case CategoryGrid:
		return "Grid Connection"
	}
	return string(c)
}

// ParseCategory converts a string to a Category.
// Returns ErrCodeInvalidCategory if the string is not a known category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", errors.New(errors.ErrCodeInvalidCategory, "unknown category: %q", s)
	}
	return c, nil
}
