package ical

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// Value is the tagged variant every decoded property value implements
// (spec §9: "one concrete property record with a tagged variant value").
// Concrete implementations are TextValue, DateTimeValue, DurationValue,
// GeoValue, RecurrenceValue, IntValue, and RawValue.
type Value interface {
	isValue()
}

// TextValue is a free-text property value (SUMMARY, UID, STATUS, ...).
type TextValue string

func (TextValue) isValue() {}

// DateTimeValue is an opaque timestamp plus whether it carries a
// time-of-day component. No time-zone database lookups are performed; a
// TZID parameter is preserved on the property but never resolved against
// real zone data, per the Non-goals in spec §1.
type DateTimeValue struct {
	Time    time.Time
	HasTime bool
}

func (DateTimeValue) isValue() {}

// DurationValue is an RFC 5545 §3.3.6 duration.
type DurationValue time.Duration

func (DurationValue) isValue() {}

// GeoValue is an RFC 5545 §3.8.1.6 latitude/longitude pair.
type GeoValue struct {
	Lat, Lon float64
}

func (GeoValue) isValue() {}

// IntValue is an integer-valued property (PRIORITY, SEQUENCE, ...).
type IntValue int

func (IntValue) isValue() {}

// RecurrenceValue wraps a parsed RRULE/EXRULE grammar. Option is nil if
// the value could not be parsed as a recurrence rule; Raw always holds the
// original wire text so the property round-trips even then. The rule is
// parsed for inspection only (the validator reads Option.Byhour etc.) -
// this package never expands it into a set of occurrences.
type RecurrenceValue struct {
	Raw    string
	Option *rrule.ROption
}

func (RecurrenceValue) isValue() {}

// RawValue is the extensibility fallback for unregistered property names,
// and for any registered decoder that could not make sense of its input.
// It round-trips the original wire value and parameters unchanged.
type RawValue struct {
	Value string
}

func (RawValue) isValue() {}

const (
	dateLayout           = "20060102"
	dateTimeLayoutUTC    = "20060102T150405Z"
	dateTimeLayoutLocal  = "20060102T150405"
)

func decodeDateTime(value string, params Parameters, _ DecodeContext) (Value, []Warning) {
	if strings.HasSuffix(value, "Z") {
		t, err := time.Parse(dateTimeLayoutUTC, value)
		if err != nil {
			return RawValue{value}, []Warning{newWarning(WarnInvalidLine, nil, "", "cannot parse date-time %q: %v", value, err)}
		}
		return DateTimeValue{Time: t, HasTime: true}, nil
	}

	if valType, ok := params.Get("VALUE"); ok && strings.EqualFold(valType, "DATE") && len(value) == len(dateLayout) {
		t, err := time.ParseInLocation(dateLayout, value, time.UTC)
		if err != nil {
			return RawValue{value}, []Warning{newWarning(WarnInvalidLine, nil, "", "cannot parse date %q: %v", value, err)}
		}
		return DateTimeValue{Time: t, HasTime: false}, nil
	}

	if len(value) == len(dateLayout) {
		t, err := time.ParseInLocation(dateLayout, value, time.UTC)
		if err != nil {
			return RawValue{value}, []Warning{newWarning(WarnInvalidLine, nil, "", "cannot parse date %q: %v", value, err)}
		}
		return DateTimeValue{Time: t, HasTime: false}, nil
	}

	t, err := time.ParseInLocation(dateTimeLayoutLocal, value, time.UTC)
	if err != nil {
		return RawValue{value}, []Warning{newWarning(WarnInvalidLine, nil, "", "cannot parse date-time %q: %v", value, err)}
	}
	return DateTimeValue{Time: t, HasTime: true}, nil
}

func encodeDateTime(v DateTimeValue) (string, Parameters) {
	if !v.HasTime {
		p := NewParameters()
		p.Set("VALUE", "DATE")
		return v.Time.Format(dateLayout), p
	}
	if v.Time.Location() == time.UTC {
		return v.Time.Format(dateTimeLayoutUTC), NewParameters()
	}
	return v.Time.Format(dateTimeLayoutLocal), NewParameters()
}

var isoDurationRE = regexp.MustCompile(`^([+-]?)P(?:(\d+)W)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

func decodeDuration(value string, _ Parameters, _ DecodeContext) (Value, []Warning) {
	d, err := parseISODuration(value)
	if err != nil {
		return RawValue{value}, []Warning{newWarning(WarnInvalidLine, nil, "", "cannot parse duration %q: %v", value, err)}
	}
	return DurationValue(d), nil
}

func parseISODuration(s string) (time.Duration, error) {
	m := isoDurationRE.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%q is not a valid ISO 8601 duration", s)
	}

	var total time.Duration
	add := func(group string, unit time.Duration) error {
		if group == "" {
			return nil
		}
		n, err := strconv.Atoi(group)
		if err != nil {
			return err
		}
		total += time.Duration(n) * unit
		return nil
	}

	if err := add(m[2], 7*24*time.Hour); err != nil {
		return 0, err
	}
	if err := add(m[3], 24*time.Hour); err != nil {
		return 0, err
	}
	if err := add(m[4], time.Hour); err != nil {
		return 0, err
	}
	if err := add(m[5], time.Minute); err != nil {
		return 0, err
	}
	if err := add(m[6], time.Second); err != nil {
		return 0, err
	}
	if m[1] == "-" {
		total = -total
	}
	return total, nil
}

func encodeDuration(v DurationValue) (string, Parameters) {
	d := time.Duration(v)
	neg := d < 0
	if neg {
		d = -d
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('P')

	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second

	if days > 0 {
		fmt.Fprintf(&b, "%dD", days)
	}
	if hours > 0 || minutes > 0 || seconds > 0 {
		b.WriteByte('T')
		if hours > 0 {
			fmt.Fprintf(&b, "%dH", hours)
		}
		if minutes > 0 {
			fmt.Fprintf(&b, "%dM", minutes)
		}
		if seconds > 0 {
			fmt.Fprintf(&b, "%dS", seconds)
		}
	}
	if days == 0 && hours == 0 && minutes == 0 && seconds == 0 {
		b.WriteString("T0S")
	}

	return b.String(), NewParameters()
}

func decodeGeo(value string, _ Parameters, _ DecodeContext) (Value, []Warning) {
	parts := strings.SplitN(value, ";", 2)
	if len(parts) != 2 {
		return RawValue{value}, []Warning{newWarning(WarnInvalidLine, nil, "", "GEO value %q is not \"lat;lon\"", value)}
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return RawValue{value}, []Warning{newWarning(WarnInvalidLine, nil, "", "GEO value %q has a non-numeric component", value)}
	}
	return GeoValue{Lat: lat, Lon: lon}, nil
}

func encodeGeo(v GeoValue) (string, Parameters) {
	return fmt.Sprintf("%v;%v", v.Lat, v.Lon), NewParameters()
}

func decodeInt(value string, _ Parameters, _ DecodeContext) (Value, []Warning) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return RawValue{value}, []Warning{newWarning(WarnInvalidLine, nil, "", "cannot parse integer %q: %v", value, err)}
	}
	return IntValue(n), nil
}

func encodeInt(v IntValue) (string, Parameters) {
	return strconv.Itoa(int(v)), NewParameters()
}

func decodeRecurrence(value string, _ Parameters, _ DecodeContext) (Value, []Warning) {
	opt, err := rrule.StrToROption(value)
	if err != nil {
		return RecurrenceValue{Raw: value}, []Warning{newWarning(WarnUnparseableRecurrence, nil, "", "cannot parse recurrence rule %q: %v", value, err)}
	}
	return RecurrenceValue{Raw: value, Option: opt}, nil
}

func encodeRecurrence(v RecurrenceValue) (string, Parameters) {
	return v.Raw, NewParameters()
}

func decodeText(value string, _ Parameters, _ DecodeContext) (Value, []Warning) {
	return TextValue(value), nil
}

func encodeText(v TextValue) (string, Parameters) {
	return string(v), NewParameters()
}
