package ical

import "strings"

// Parameters is an ordered, case-insensitive multimap of parameter names
// to their (possibly multi-valued) parameter values, as they appear before
// the colon in a content line. Unlike a plain Go map, insertion order is
// preserved so that the writer can be deterministic and so duplicate
// parameter names observed on the wire are never silently coalesced.
type Parameters struct {
	keys   []string // original-case key as first seen
	values map[string][]string
}

// NewParameters creates an empty parameter set.
func NewParameters() Parameters {
	return Parameters{values: map[string][]string{}}
}

func normalizeParamKey(name string) string {
	return strings.ToUpper(name)
}

// Add appends value to name's value list, creating the entry if needed.
func (p *Parameters) Add(name, value string) {
	if p.values == nil {
		p.values = map[string][]string{}
	}
	key := normalizeParamKey(name)
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, name)
	}
	p.values[key] = append(p.values[key], value)
}

// Set replaces name's value list wholesale with a single value.
func (p *Parameters) Set(name, value string) {
	if p.values == nil {
		p.values = map[string][]string{}
	}
	key := normalizeParamKey(name)
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, name)
	}
	p.values[key] = []string{value}
}

// SetValueless records a parameter with no value, as produced by
// non-conformant input (spec §4.2 "value-less parameters").
func (p *Parameters) SetValueless(name string) {
	if p.values == nil {
		p.values = map[string][]string{}
	}
	key := normalizeParamKey(name)
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, name)
	}
	p.values[key] = nil
}

// Get returns the first value for name, and whether it was present at all
// (a value-less parameter is present with ok==true and value=="").
func (p Parameters) Get(name string) (value string, ok bool) {
	vs, ok := p.values[normalizeParamKey(name)]
	if !ok || len(vs) == 0 {
		return "", ok
	}
	return vs[0], true
}

// Values returns every value for name, in insertion order.
func (p Parameters) Values(name string) []string {
	return p.values[normalizeParamKey(name)]
}

// Has reports whether name appears at all, value-less or not.
func (p Parameters) Has(name string) bool {
	_, ok := p.values[normalizeParamKey(name)]
	return ok
}

// Names returns the parameter names in the order they were first added.
func (p Parameters) Names() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len reports the number of distinct parameter names.
func (p Parameters) Len() int {
	return len(p.keys)
}

// MergeParameters overlays override's entries onto base: names present in
// override replace base's values for that name (keeping base's original
// position in the order), and names only in override are appended. It is
// used to combine a property's user-set parameters with the parameters a
// scribe's Encode function derives from the value itself (e.g. VALUE=DATE).
func MergeParameters(base, override Parameters) Parameters {
	merged := NewParameters()
	for _, name := range base.Names() {
		setParamValues(&merged, name, base.Values(name))
	}
	for _, name := range override.Names() {
		setParamValues(&merged, name, override.Values(name))
	}
	return merged
}

func setParamValues(p *Parameters, name string, vals []string) {
	if vals == nil {
		p.SetValueless(name)
		return
	}
	for i, v := range vals {
		if i == 0 {
			p.Set(name, v)
		} else {
			p.Add(name, v)
		}
	}
}
