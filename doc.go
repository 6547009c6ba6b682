// Package ical implements a reader, writer, and validator for iCalendar
// data as defined by RFC 5545, with legacy compatibility for RFC 2445 and
// RFC 6868 circumflex parameter encoding.
//
// The package is split into a line-level codec (FoldedLineReader,
// RawReader, RawWriter) that bridges the wire format's folded, escaped
// content lines to (name, parameters, value) triples, and a component
// object model (Component, Property, ObjectReader, ObjectWriter) built on
// top of it. Validate walks a Component tree and reports RFC violations as
// warnings; it never mutates the tree and never panics on malformed input.
//
// The package does not expand recurrence rules, perform network I/O,
// render calendars, or resolve time zones against a tz database. Date-time
// values are opaque time.Time instants tagged with whether they carry a
// time-of-day component.
package ical
