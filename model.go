package ical

import "strings"

// Property is a named, parameterized, typed datum inside a Component.
// Cardinality (required/optional/multi) is not enforced on insertion; it
// is a validator concern (spec §3 "used by the validator, not enforced on
// insertion").
type Property struct {
	Name       string
	Parameters Parameters
	Value      Value
}

// NewProperty creates a property with no parameters.
func NewProperty(name string, value Value) *Property {
	return &Property{Name: name, Parameters: NewParameters(), Value: value}
}

// Component is a node in the iCalendar object tree: a case-insensitively
// named container holding an ordered sequence of properties (duplicates
// permitted, insertion order preserved for deterministic writing) and an
// ordered sequence of child components.
type Component struct {
	Name       string
	Properties []*Property
	Components []*Component
}

// NewComponent creates an empty component named name (e.g. "VTODO").
func NewComponent(name string) *Component {
	return &Component{Name: name}
}

// Add appends p to the component's property list.
func (c *Component) Add(p *Property) {
	c.Properties = append(c.Properties, p)
}

// AddChild appends child to the component's child list.
func (c *Component) AddChild(child *Component) {
	c.Components = append(c.Components, child)
}

// Get returns the first property named name (case-insensitive), or nil.
func (c *Component) Get(name string) *Property {
	for _, p := range c.Properties {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}

// GetAll returns every property named name, in insertion order.
func (c *Component) GetAll(name string) []*Property {
	var out []*Property
	for _, p := range c.Properties {
		if strings.EqualFold(p.Name, name) {
			out = append(out, p)
		}
	}
	return out
}

// Count returns the number of properties named name.
func (c *Component) Count(name string) int {
	n := 0
	for _, p := range c.Properties {
		if strings.EqualFold(p.Name, name) {
			n++
		}
	}
	return n
}

// Has reports whether any property named name is present.
func (c *Component) Has(name string) bool {
	return c.Get(name) != nil
}

// ChildrenNamed returns every direct child component named name.
func (c *Component) ChildrenNamed(name string) []*Component {
	var out []*Component
	for _, ch := range c.Components {
		if strings.EqualFold(ch.Name, name) {
			out = append(out, ch)
		}
	}
	return out
}

// IsA reports whether the component's name equals name, case-insensitively.
func (c *Component) IsA(name string) bool {
	return strings.EqualFold(c.Name, name)
}
