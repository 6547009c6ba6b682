package ical

import (
	"context"
	"io"
	"strings"
)

// ObjectReader drives a RawReader with a listener that assembles the
// component/property object model (spec §4.4). Property values are
// decoded through the supplied PropertyRegistry; names the registry does
// not recognize are preserved as RawValue so they round-trip unchanged.
type ObjectReader struct {
	rr       *RawReader
	registry *PropertyRegistry

	ctx      context.Context
	stack    []*Component
	roots    []*Component
	warnings []Warning
}

// NewObjectReader wraps r. By default it builds an RFC5545 registry; pass
// WithDialect or WithRegistry to change that.
func NewObjectReader(r io.Reader, opts ...Option) *ObjectReader {
	cfg := objectConfig{dialect: RFC5545}
	for _, opt := range opts {
		opt(&cfg)
	}

	registry := cfg.registry
	if registry == nil {
		registry = NewRegistry(cfg.dialect)
	}

	return &ObjectReader{
		rr:       NewRawReader(r, cfg.rawReaderOpts...),
		registry: registry,
	}
}

// Read consumes the stream and returns the first fully-parsed top-level
// component, along with any warnings accumulated along the way. Use
// ReadAll if the stream may contain more than one top-level component.
func (or *ObjectReader) Read(ctx context.Context) (*Component, []Warning, error) {
	roots, warnings, err := or.ReadAll(ctx)
	if len(roots) == 0 {
		return nil, warnings, err
	}
	return roots[0], warnings, err
}

// ReadAll consumes the entire stream, returning every top-level component
// whose BEGIN/END pair fully closed, plus accumulated warnings.
func (or *ObjectReader) ReadAll(ctx context.Context) ([]*Component, []Warning, error) {
	or.ctx = ctx
	or.stack = nil
	or.roots = nil
	or.warnings = nil

	err := or.rr.Start(or)
	return or.roots, or.warnings, err
}

// Close releases the underlying stream.
func (or *ObjectReader) Close() error {
	return or.rr.Close()
}

func (or *ObjectReader) shouldStop() bool {
	return or.ctx != nil && or.ctx.Err() != nil
}

func (or *ObjectReader) pathNames() []string {
	names := make([]string, len(or.stack))
	for i, c := range or.stack {
		names[i] = c.Name
	}
	return names
}

// BeginComponent implements Listener.
func (or *ObjectReader) BeginComponent(name string) bool {
	or.stack = append(or.stack, NewComponent(name))
	return or.shouldStop()
}

// EndComponent implements Listener.
func (or *ObjectReader) EndComponent(name string) bool {
	if len(or.stack) == 0 {
		or.warnings = append(or.warnings, newWarning(WarnMismatchedEnd, nil, "", "END:%s has no matching BEGIN", name))
		return or.shouldStop()
	}

	top := or.stack[len(or.stack)-1]
	if !strings.EqualFold(top.Name, name) {
		or.warnings = append(or.warnings, newWarning(WarnMismatchedEnd, or.pathNames(), "", "END:%s does not match BEGIN:%s", name, top.Name))
		return or.shouldStop()
	}

	or.stack = or.stack[:len(or.stack)-1]
	if len(or.stack) == 0 {
		or.roots = append(or.roots, top)
	} else {
		parent := or.stack[len(or.stack)-1]
		parent.AddChild(top)
	}
	return or.shouldStop()
}

// ReadProperty implements Listener.
func (or *ObjectReader) ReadProperty(name string, params Parameters, value string) bool {
	if len(or.stack) == 0 {
		or.warnings = append(or.warnings, newWarning(WarnInvalidLine, nil, name, "property outside any component"))
		return or.shouldStop()
	}

	cur := or.stack[len(or.stack)-1]

	var val Value
	if scribe, ok := or.registry.Lookup(name); ok {
		decoded, warns := scribe.Decode(value, params, DecodeContext{ComponentName: cur.Name})
		val = decoded
		for _, w := range warns {
			w.ComponentPath = or.pathNames()
			w.PropertyName = name
			or.warnings = append(or.warnings, w)
		}
	} else {
		val = RawValue{Value: value}
	}

	cur.Add(&Property{Name: name, Parameters: params, Value: val})
	return or.shouldStop()
}

// InvalidLine implements Listener.
func (or *ObjectReader) InvalidLine(raw string) bool {
	or.warnings = append(or.warnings, newWarning(WarnInvalidLine, or.pathNames(), "", "invalid content line: %q", raw))
	return or.shouldStop()
}

// ValuelessParameter implements Listener.
func (or *ObjectReader) ValuelessParameter(propertyName, paramName string) bool {
	or.warnings = append(or.warnings, newWarning(WarnValuelessParameter, or.pathNames(), propertyName, "parameter %q has no value", paramName))
	return or.shouldStop()
}
