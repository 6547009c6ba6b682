package ical

import (
	"context"
	"fmt"
	"io"
)

// ObjectWriter traverses a Component tree depth-first and serializes it
// through a RawWriter, encoding each property's value via the supplied
// PropertyRegistry (spec §4.4). RawValue properties - whether from an
// unregistered name or a decoder that degraded on bad input - are written
// back verbatim with their original parameters, matching ObjectReader's
// extensibility guarantee.
type ObjectWriter struct {
	rw       *RawWriter
	registry *PropertyRegistry
}

// NewObjectWriter wraps w. By default it builds an RFC5545 registry; pass
// WithDialect or WithRegistry to change that.
func NewObjectWriter(w io.Writer, opts ...Option) *ObjectWriter {
	cfg := objectConfig{dialect: RFC5545}
	for _, opt := range opts {
		opt(&cfg)
	}

	registry := cfg.registry
	if registry == nil {
		registry = NewRegistry(cfg.dialect)
	}

	return &ObjectWriter{
		rw:       NewRawWriter(w, cfg.rawWriterOpts...),
		registry: registry,
	}
}

// Write serializes c and all of its descendants.
func (ow *ObjectWriter) Write(ctx context.Context, c *Component) error {
	return ow.writeComponent(ctx, c)
}

// Close releases the underlying stream.
func (ow *ObjectWriter) Close() error {
	return ow.rw.Close()
}

func (ow *ObjectWriter) writeComponent(ctx context.Context, c *Component) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := ow.rw.WriteBeginComponent(c.Name); err != nil {
		return fmt.Errorf("write %s: %w", c.Name, err)
	}

	for _, p := range c.Properties {
		if err := ctx.Err(); err != nil {
			return err
		}
		wireValue, wireParams := ow.encodeProperty(p)
		if err := ow.rw.WriteProperty(p.Name, wireParams, wireValue); err != nil {
			return fmt.Errorf("write %s.%s: %w", c.Name, p.Name, err)
		}
	}

	for _, child := range c.Components {
		if err := ow.writeComponent(ctx, child); err != nil {
			return err
		}
	}

	if err := ow.rw.WriteEndComponent(c.Name); err != nil {
		return fmt.Errorf("write %s: %w", c.Name, err)
	}
	return nil
}

func (ow *ObjectWriter) encodeProperty(p *Property) (value string, params Parameters) {
	if raw, ok := p.Value.(RawValue); ok {
		return raw.Value, p.Parameters
	}

	scribe, ok := ow.registry.Lookup(p.Name)
	if !ok {
		return fmt.Sprintf("%v", p.Value), p.Parameters
	}

	wireValue, derived := scribe.Encode(p.Value)
	return wireValue, MergeParameters(p.Parameters, derived)
}
