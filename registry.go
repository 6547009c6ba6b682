package ical

import (
	"fmt"
	"strings"
)

// Dialect selects which legacy property names a PropertyRegistry also
// understands, per spec §9's open design note on RFC 2445 compatibility.
type Dialect int

const (
	// RFC5545 is the current iCalendar specification.
	RFC5545 Dialect = iota
	// RFC2445 additionally registers the legacy EXRULE property under the
	// same scribe as RRULE.
	RFC2445
)

// DecodeContext carries the surrounding state a decoder may need beyond
// the raw value and parameters - currently just the enclosing component's
// name, since a handful of properties (e.g. DTSTAMP's required-ness)
// depend on it.
type DecodeContext struct {
	ComponentName string
}

// PropertyScribe is the property-type contract from spec §6: a decoder, an
// encoder, and the cardinality key instances of this property share (most
// properties key on their own name; legacy aliases such as EXRULE key on
// "RRULE"). Validate does not read CardinalityKey: its cardinality rules
// count properties by name, so an EXRULE is not counted toward RRULE's
// limit.
type PropertyScribe struct {
	Decode         func(value string, params Parameters, ctx DecodeContext) (Value, []Warning)
	Encode         func(v Value) (string, Parameters)
	CardinalityKey string
}

// PropertyRegistry maps property names to their PropertyScribe. It is an
// explicit value passed to ObjectReader and ObjectWriter (spec §9:
// replacing a global-static property key registry with an explicit
// dependency). Register can add or replace scribes after construction.
type PropertyRegistry struct {
	dialect Dialect
	scribes map[string]PropertyScribe
}

// NewRegistry builds the default registry for dialect.
func NewRegistry(dialect Dialect) *PropertyRegistry {
	r := &PropertyRegistry{dialect: dialect, scribes: map[string]PropertyScribe{}}
	r.registerDefaults()
	return r
}

// Register adds or replaces the scribe for name.
func (r *PropertyRegistry) Register(name string, scribe PropertyScribe) {
	r.scribes[strings.ToUpper(name)] = scribe
}

// Lookup returns the scribe registered for name, if any.
func (r *PropertyRegistry) Lookup(name string) (PropertyScribe, bool) {
	s, ok := r.scribes[strings.ToUpper(name)]
	return s, ok
}

// Dialect reports which dialect this registry was built for.
func (r *PropertyRegistry) Dialect() Dialect {
	return r.dialect
}

func textScribe(key string) PropertyScribe {
	return PropertyScribe{
		Decode:         decodeText,
		Encode:         encodeValueOf(encodeText),
		CardinalityKey: key,
	}
}

func dateTimeScribe(key string) PropertyScribe {
	return PropertyScribe{
		Decode:         decodeDateTime,
		Encode:         encodeValueOf(encodeDateTime),
		CardinalityKey: key,
	}
}

func durationScribe(key string) PropertyScribe {
	return PropertyScribe{
		Decode:         decodeDuration,
		Encode:         encodeValueOf(encodeDuration),
		CardinalityKey: key,
	}
}

func geoScribe(key string) PropertyScribe {
	return PropertyScribe{
		Decode:         decodeGeo,
		Encode:         encodeValueOf(encodeGeo),
		CardinalityKey: key,
	}
}

func intScribe(key string) PropertyScribe {
	return PropertyScribe{
		Decode:         decodeInt,
		Encode:         encodeValueOf(encodeInt),
		CardinalityKey: key,
	}
}

func recurrenceScribe(key string) PropertyScribe {
	return PropertyScribe{
		Decode:         decodeRecurrence,
		Encode:         encodeValueOf(encodeRecurrence),
		CardinalityKey: key,
	}
}

// encodeValueOf adapts a typed encoder func(T) (string, Parameters) into
// the Value-based Encode signature the registry needs, falling back to a
// plain %v rendering (and, for the common RawValue case, a verbatim
// pass-through) if a property's value isn't of the expected type - a
// RawValue from a decoder that degraded on bad input, or a value of another
// type set on the property directly.
func encodeValueOf[T Value](fn func(T) (string, Parameters)) func(Value) (string, Parameters) {
	return func(v Value) (string, Parameters) {
		if typed, ok := v.(T); ok {
			return fn(typed)
		}
		if raw, ok := v.(RawValue); ok {
			return raw.Value, NewParameters()
		}
		return fmt.Sprintf("%v", v), NewParameters()
	}
}

func (r *PropertyRegistry) registerDefaults() {
	r.Register("UID", textScribe("UID"))
	r.Register("DTSTAMP", dateTimeScribe("DTSTAMP"))
	r.Register("DTSTART", dateTimeScribe("DTSTART"))
	r.Register("DTEND", dateTimeScribe("DTEND"))
	r.Register("DUE", dateTimeScribe("DUE"))
	r.Register("DURATION", durationScribe("DURATION"))
	r.Register("SUMMARY", textScribe("SUMMARY"))
	r.Register("DESCRIPTION", textScribe("DESCRIPTION"))
	r.Register("STATUS", textScribe("STATUS"))
	r.Register("PERCENT-COMPLETE", intScribe("PERCENT-COMPLETE"))
	r.Register("PRIORITY", intScribe("PRIORITY"))
	r.Register("SEQUENCE", intScribe("SEQUENCE"))
	r.Register("REPEAT", intScribe("REPEAT"))
	r.Register("RRULE", recurrenceScribe("RRULE"))
	r.Register("RECURRENCE-ID", dateTimeScribe("RECURRENCE-ID"))
	r.Register("GEO", geoScribe("GEO"))
	r.Register("CLASS", textScribe("CLASS"))
	r.Register("CATEGORIES", textScribe("CATEGORIES"))
	r.Register("COMMENT", textScribe("COMMENT"))
	r.Register("CREATED", dateTimeScribe("CREATED"))
	r.Register("LAST-MODIFIED", dateTimeScribe("LAST-MODIFIED"))
	r.Register("URL", textScribe("URL"))
	r.Register("ORGANIZER", textScribe("ORGANIZER"))
	r.Register("ATTENDEE", textScribe("ATTENDEE"))
	r.Register("ACTION", textScribe("ACTION"))
	r.Register("TRIGGER", textScribe("TRIGGER"))
	r.Register("METHOD", textScribe("METHOD"))
	r.Register("PRODID", textScribe("PRODID"))
	r.Register("VERSION", textScribe("VERSION"))
	r.Register("CALSCALE", textScribe("CALSCALE"))

	if r.dialect == RFC2445 {
		// The legacy exception-rule property shares RRULE's grammar and
		// cardinality key, per spec §9's open question about dialects.
		r.Register("EXRULE", recurrenceScribe("RRULE"))
	}
}
