// Package component defines the microgrid domain model: the components a
// site is built from (solar arrays, wind turbines, batteries, diesel
// generators, the grid connection) and their configuration.
//
// Components are the authoritative input to the topology engine
// (pkg/topology): the engine consumes ordered snapshots of them and never
// mutates them. Persistence lives in the store subpackage.
package component

import (
	"github.com/google/uuid"

	"github.com/gridsmith/gridview/pkg/errors"
)

// Config holds the component's configuration fields (ratings, capacities,
// setpoints) as loose key→value pairs. Values are numeric or string; the
// topology engine only reads them to derive display captions, so unknown
// keys are carried through untouched.
type Config map[string]any

// ReservedBusID is the canvas node ID of the shared AC bus every component
// connects to. Validate refuses it as a component ID, keeping the bus the
// only node that can ever carry it.
const ReservedBusID = "bus"

// Component is one power-system component of a microgrid site.
// It is the external, read-only entity the topology view mirrors.
type Component struct {
	ID       string   `json:"id" bson:"id"`
	Category Category `json:"category" bson:"category"`
	Name     string   `json:"name" bson:"name"`
	Config   Config   `json:"config,omitempty" bson:"config,omitempty"`
}

// New creates a component with a freshly minted UUID.
// The category and name are validated; config may be nil.
func New(category Category, name string, cfg Config) (*Component, error) {
	c := &Component{
		ID:       uuid.NewString(),
		Category: category,
		Name:     name,
		Config:   cfg,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the component's identifier, category, and name.
// The bus node ID is reserved and never a valid component ID.
func (c *Component) Validate() error {
	if err := errors.ValidateComponentID(c.ID); err != nil {
		return err
	}
	if c.ID == ReservedBusID {
		return errors.New(errors.ErrCodeInvalidComponent, "component ID %q is reserved for the bus node", c.ID)
	}
	if !c.Category.Valid() {
		return errors.New(errors.ErrCodeInvalidCategory, "unknown category: %q", c.Category)
	}
	return errors.ValidateComponentName(c.Name)
}

// Num returns the numeric value of a config field.
// JSON decoding yields float64, TOML yields int64, and callers may set
// plain ints; all three are accepted. Returns false for missing keys and
// non-numeric values.
func (c *Component) Num(key string) (float64, bool) {
	if c.Config == nil {
		return 0, false
	}
	switch v := c.Config[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
