package ical

import "testing"

func TestRegistryLookupIsCaseInsensitive(t *testing.T) {
	r := NewRegistry(RFC5545)
	if _, ok := r.Lookup("uid"); !ok {
		t.Error("Lookup(uid) = false, want true")
	}
	if _, ok := r.Lookup("Dtstart"); !ok {
		t.Error("Lookup(Dtstart) = false, want true")
	}
}

func TestRegistryUnknownNameIsUnregistered(t *testing.T) {
	r := NewRegistry(RFC5545)
	if _, ok := r.Lookup("X-CUSTOM-PROP"); ok {
		t.Error("Lookup(X-CUSTOM-PROP) = true, want false")
	}
}

func TestRFC2445DialectAddsEXRULE(t *testing.T) {
	r5545 := NewRegistry(RFC5545)
	if _, ok := r5545.Lookup("EXRULE"); ok {
		t.Error("RFC5545 registry should not know EXRULE")
	}

	r2445 := NewRegistry(RFC2445)
	scribe, ok := r2445.Lookup("EXRULE")
	if !ok {
		t.Fatal("RFC2445 registry should know EXRULE")
	}
	if scribe.CardinalityKey != "RRULE" {
		t.Errorf("EXRULE cardinality key = %q, want RRULE", scribe.CardinalityKey)
	}
}

func TestDateTimeScribeRoundTrips(t *testing.T) {
	r := NewRegistry(RFC5545)
	scribe, ok := r.Lookup("DTSTAMP")
	if !ok {
		t.Fatal("DTSTAMP not registered")
	}

	v, warns := scribe.Decode("20230101T000000Z", NewParameters(), DecodeContext{ComponentName: "VTODO"})
	if len(warns) != 0 {
		t.Fatalf("warnings = %v", warns)
	}
	wire, params := scribe.Encode(v)
	if wire != "20230101T000000Z" {
		t.Errorf("encoded value = %q", wire)
	}
	if params.Len() != 0 {
		t.Errorf("expected no derived parameters for a UTC date-time, got %v", params.Names())
	}
}
