package ical

import "strings"

// Validate recursively walks c and its descendants and returns every
// warning the rule table below produces. It is a pure function: c is
// never mutated, and calling Validate twice on the same tree yields
// identical (deep-equal) results. ancestors is the chain of component
// names above c, used only to stamp each Warning's ComponentPath; pass
// nil when validating a top-level component.
func Validate(c *Component, ancestors []string) []Warning {
	path := make([]string, 0, len(ancestors)+1)
	path = append(path, ancestors...)
	path = append(path, c.Name)

	var warnings []Warning
	switch strings.ToUpper(c.Name) {
	case "VCALENDAR":
		warnings = append(warnings, validateCardinality(c, path, vcalendarRules)...)
	case "VTODO":
		warnings = append(warnings, validateCardinality(c, path, vtodoRules)...)
		warnings = append(warnings, validateStartEndCrossRules(c, path, "DUE")...)
	case "VEVENT":
		warnings = append(warnings, validateCardinality(c, path, veventRules)...)
		warnings = append(warnings, validateStartEndCrossRules(c, path, "DTEND")...)
	case "VALARM":
		warnings = append(warnings, validateCardinality(c, path, valarmRules)...)
		warnings = append(warnings, validateAlarmRules(c, path)...)
	}

	for _, child := range c.Components {
		warnings = append(warnings, Validate(child, path)...)
	}
	return warnings
}

type cardinalityKind int

const (
	requiredExactlyOne cardinalityKind = iota
	atMostOne
	atLeastOne
)

type cardinalityRule struct {
	property string
	kind     cardinalityKind
}

var vcalendarRules = []cardinalityRule{
	{"PRODID", requiredExactlyOne},
	{"VERSION", requiredExactlyOne},
	{"CALSCALE", atMostOne},
	{"METHOD", atMostOne},
}

var vtodoRules = []cardinalityRule{
	{"UID", requiredExactlyOne},
	{"DTSTAMP", requiredExactlyOne},
	{"DTSTART", atMostOne},
	{"DUE", atMostOne},
	{"DURATION", atMostOne},
	{"SUMMARY", atMostOne},
	{"DESCRIPTION", atMostOne},
	{"STATUS", atMostOne},
	{"PERCENT-COMPLETE", atMostOne},
	{"PRIORITY", atMostOne},
	{"RRULE", atMostOne},
	{"RECURRENCE-ID", atMostOne},
	{"SEQUENCE", atMostOne},
	{"CLASS", atMostOne},
	{"URL", atMostOne},
	{"GEO", atMostOne},
}

var veventRules = []cardinalityRule{
	{"UID", requiredExactlyOne},
	{"DTSTAMP", requiredExactlyOne},
	{"DTSTART", requiredExactlyOne},
	{"DTEND", atMostOne},
	{"DURATION", atMostOne},
	{"SUMMARY", atMostOne},
	{"DESCRIPTION", atMostOne},
	{"STATUS", atMostOne},
	{"PRIORITY", atMostOne},
	{"RRULE", atMostOne},
	{"RECURRENCE-ID", atMostOne},
	{"SEQUENCE", atMostOne},
	{"CLASS", atMostOne},
	{"URL", atMostOne},
	{"GEO", atMostOne},
}

var valarmRules = []cardinalityRule{
	{"ACTION", requiredExactlyOne},
	{"TRIGGER", requiredExactlyOne},
	{"DURATION", atMostOne},
	{"REPEAT", atMostOne},
}

func validateCardinality(c *Component, path []string, rules []cardinalityRule) []Warning {
	var warnings []Warning
	for _, r := range rules {
		count := c.Count(r.property)
		switch r.kind {
		case requiredExactlyOne:
			if count == 0 {
				warnings = append(warnings, newWarning(WarnCardinalityRequired, path, r.property, "%s is required", r.property))
			} else if count > 1 {
				warnings = append(warnings, newWarning(WarnCardinalityAtMostOne, path, r.property, "%s must not occur more than once", r.property))
			}
		case atMostOne:
			if count > 1 {
				warnings = append(warnings, newWarning(WarnCardinalityAtMostOne, path, r.property, "%s must not occur more than once", r.property))
			}
		case atLeastOne:
			if count == 0 {
				warnings = append(warnings, newWarning(WarnCardinalityAtLeastOne, path, r.property, "%s must occur at least once", r.property))
			}
		}
	}
	return warnings
}

var statusVocabulary = map[string][]string{
	"VTODO":  {"NEEDS-ACTION", "COMPLETED", "IN-PROGRESS", "CANCELLED"},
	"VEVENT": {"TENTATIVE", "CONFIRMED", "CANCELLED"},
}

func isValidStatus(componentName, status string) bool {
	valid, ok := statusVocabulary[strings.ToUpper(componentName)]
	if !ok {
		return true
	}
	for _, v := range valid {
		if strings.EqualFold(v, status) {
			return true
		}
	}
	return false
}

// validateStartEndCrossRules implements spec §4.5 rules 1-7 for a
// component whose "end" property is named endPropertyName (DUE for
// VTODO, DTEND for VEVENT). Rule 8 (at most one RRULE) is already covered
// by validateCardinality.
func validateStartEndCrossRules(c *Component, path []string, endPropertyName string) []Warning {
	var warnings []Warning

	// Rule 1: STATUS vocabulary.
	if statusProp := c.Get("STATUS"); statusProp != nil {
		if txt, ok := statusProp.Value.(TextValue); ok && !isValidStatus(c.Name, string(txt)) {
			warnings = append(warnings, newWarning(WarnInvalidStatus, path, "STATUS", "status %q is not valid for %s", string(txt), c.Name))
		}
	}

	dtstartProp := c.Get("DTSTART")
	endProp := c.Get(endPropertyName)
	durationProp := c.Get("DURATION")

	var dtstart, end DateTimeValue
	haveStart, haveEnd := false, false
	if dtstartProp != nil {
		if dv, ok := dtstartProp.Value.(DateTimeValue); ok {
			dtstart, haveStart = dv, true
		}
	}
	if endProp != nil {
		if dv, ok := endProp.Value.(DateTimeValue); ok {
			end, haveEnd = dv, true
		}
	}

	// Rules 2 & 3: ordering and has-time agreement.
	if haveStart && haveEnd {
		if dtstart.Time.After(end.Time) {
			warnings = append(warnings, newWarning(WarnStartAfterEnd, path, "DTSTART", "DTSTART must not be later than %s", endPropertyName))
		}
		if dtstart.HasTime != end.HasTime {
			warnings = append(warnings, newWarning(WarnDateTypeMismatch, path, "DTSTART", "DTSTART and %s must both be date-only or both date-time", endPropertyName))
		}
	}

	// Rule 4: end property and DURATION are mutually exclusive.
	if endProp != nil && durationProp != nil {
		warnings = append(warnings, newWarning(WarnMutuallyExclusive, path, "DURATION", "%s and DURATION must not both be present", endPropertyName))
	}

	// Rule 5: DURATION requires DTSTART.
	if durationProp != nil && dtstartProp == nil {
		warnings = append(warnings, newWarning(WarnRequiresOther, path, "DURATION", "DURATION requires DTSTART to be present"))
	}

	// Rule 6: RECURRENCE-ID and DTSTART has-time agreement.
	if recurIDProp := c.Get("RECURRENCE-ID"); recurIDProp != nil && haveStart {
		if dv, ok := recurIDProp.Value.(DateTimeValue); ok && dv.HasTime != dtstart.HasTime {
			warnings = append(warnings, newWarning(WarnDateTypeMismatch, path, "RECURRENCE-ID", "RECURRENCE-ID and DTSTART must both be date-only or both date-time"))
		}
	}

	// Rule 7: BYHOUR/BYMINUTE/BYSECOND on RRULE requires a date-time DTSTART.
	for _, rruleProp := range c.GetAll("RRULE") {
		rv, ok := rruleProp.Value.(RecurrenceValue)
		if !ok || rv.Option == nil {
			continue
		}
		hasSubDayParts := len(rv.Option.Byhour) > 0 || len(rv.Option.Byminute) > 0 || len(rv.Option.Bysecond) > 0
		if hasSubDayParts && haveStart && !dtstart.HasTime {
			warnings = append(warnings, newWarning(WarnRecurrenceNeedsDateTime, path, "RRULE", "RRULE specifies BYHOUR, BYMINUTE, or BYSECOND but DTSTART is date-only"))
		}
	}

	return warnings
}

func validateAlarmRules(c *Component, path []string) []Warning {
	var warnings []Warning
	hasDuration := c.Has("DURATION")
	hasRepeat := c.Has("REPEAT")
	if hasDuration != hasRepeat {
		warnings = append(warnings, newWarning(WarnRequiresOther, path, "DURATION", "DURATION and REPEAT must either both be present or both be absent"))
	}
	return warnings
}
