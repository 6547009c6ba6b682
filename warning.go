package ical

import "fmt"

// WarningCode identifies the cause of a Warning so callers can switch on it
// without string matching.
type WarningCode int

const (
	// WarnInvalidLine marks a content line with no property name or no
	// unquoted colon separator, a property outside any component, or a
	// property value its registered decoder could not parse.
	WarnInvalidLine WarningCode = iota + 1
	// WarnValuelessParameter marks a parameter region with no "=".
	WarnValuelessParameter
	// WarnMismatchedEnd marks an END marker with no matching BEGIN.
	WarnMismatchedEnd
	// WarnUnknownProperty decode error fallback; currently unused by the
	// default registry since unknown names decode to RawValue instead.
	WarnUnknownProperty
	// WarnCardinalityRequired marks a missing required property.
	WarnCardinalityRequired
	// WarnCardinalityAtMostOne marks a property repeated past its allowed
	// maximum.
	WarnCardinalityAtMostOne
	// WarnCardinalityAtLeastOne marks a component missing all instances of
	// a property that requires at least one.
	WarnCardinalityAtLeastOne
	// WarnInvalidStatus marks a STATUS value outside the component's
	// vocabulary.
	WarnInvalidStatus
	// WarnStartAfterEnd marks DTSTART later than DUE/DTEND.
	WarnStartAfterEnd
	// WarnDateTypeMismatch marks two properties disagreeing on
	// date-only vs. date-time.
	WarnDateTypeMismatch
	// WarnMutuallyExclusive marks two properties that may not both be
	// present.
	WarnMutuallyExclusive
	// WarnRequiresOther marks a property present without a property it
	// depends on.
	WarnRequiresOther
	// WarnRecurrenceNeedsDateTime marks an RRULE with BYHOUR/BYMINUTE/
	// BYSECOND on a date-only DTSTART.
	WarnRecurrenceNeedsDateTime
	// WarnUnparseableRecurrence marks an RRULE/EXRULE value that the
	// recurrence grammar parser rejected.
	WarnUnparseableRecurrence
)

// WarningSevereThreshold separates line-level/structural warnings (which a
// caller can often ignore, since RawValue or a skipped END marker already
// kept the data intact) from semantic warnings about the decoded object
// model, which callers such as cmd/icalfmt treat as reportable failures.
const WarningSevereThreshold = WarnCardinalityRequired

// Warning is a structured, non-fatal report produced while parsing or
// validating iCalendar data. Warnings never abort processing; callers that
// want parse/validation errors to be fatal must inspect the returned slice
// themselves.
type Warning struct {
	Code          WarningCode
	Message       string
	MessageArgs   []interface{}
	ComponentPath []string
	PropertyName  string
}

func (w Warning) String() string {
	msg := w.Message
	if len(w.MessageArgs) > 0 {
		msg = fmt.Sprintf(msg, w.MessageArgs...)
	}
	if w.PropertyName != "" {
		return fmt.Sprintf("%s: %s: %s", pathString(w.ComponentPath), w.PropertyName, msg)
	}
	return fmt.Sprintf("%s: %s", pathString(w.ComponentPath), msg)
}

func pathString(path []string) string {
	if len(path) == 0 {
		return "<root>"
	}
	s := path[0]
	for _, p := range path[1:] {
		s += "/" + p
	}
	return s
}

func newWarning(code WarningCode, path []string, propertyName, message string, args ...interface{}) Warning {
	return Warning{
		Code:          code,
		Message:       message,
		MessageArgs:   args,
		ComponentPath: path,
		PropertyName:  propertyName,
	}
}
