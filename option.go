package ical

// Option configures an ObjectReader or ObjectWriter. The same Option type
// is shared by both constructors - a RawWriter-only option passed to
// NewObjectReader (or vice versa) is simply ignored - matching the single
// functional-options idiom used throughout the package (e.g.
// RawReaderOption's WithCaretDecoding).
type Option func(*objectConfig)

type objectConfig struct {
	dialect       Dialect
	registry      *PropertyRegistry
	rawReaderOpts []RawReaderOption
	rawWriterOpts []RawWriterOption
}

// WithDialect selects which legacy property names the default,
// automatically built registry understands (spec §9's RFC 2445 open
// question). Ignored if WithRegistry is also given, since an explicit
// registry already carries its own dialect.
func WithDialect(d Dialect) Option {
	return func(c *objectConfig) {
		c.dialect = d
	}
}

// WithRegistry overrides the default dialect-built registry with one the
// caller constructed or customized directly.
func WithRegistry(r *PropertyRegistry) Option {
	return func(c *objectConfig) {
		c.registry = r
	}
}

// WithRawReaderOptions forwards options to the ObjectReader's underlying
// RawReader, e.g. WithCaretDecoding.
func WithRawReaderOptions(opts ...RawReaderOption) Option {
	return func(c *objectConfig) {
		c.rawReaderOpts = append(c.rawReaderOpts, opts...)
	}
}

// WithRawWriterOptions forwards options to the ObjectWriter's underlying
// RawWriter, e.g. WithCaretEncoding.
func WithRawWriterOptions(opts ...RawWriterOption) Option {
	return func(c *objectConfig) {
		c.rawWriterOpts = append(c.rawWriterOpts, opts...)
	}
}
