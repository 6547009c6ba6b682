package ical

import "testing"

func TestComponentPreservesInsertionOrderWithDuplicates(t *testing.T) {
	c := NewComponent("VEVENT")
	c.Add(NewProperty("ATTENDEE", TextValue("a")))
	c.Add(NewProperty("SUMMARY", TextValue("s")))
	c.Add(NewProperty("ATTENDEE", TextValue("b")))

	var names []string
	for _, p := range c.Properties {
		names = append(names, p.Name)
	}
	want := []string{"ATTENDEE", "SUMMARY", "ATTENDEE"}
	if !stringsEqual(names, want) {
		t.Errorf("insertion order = %v, want %v", names, want)
	}

	attendees := c.GetAll("ATTENDEE")
	if len(attendees) != 2 {
		t.Fatalf("GetAll(ATTENDEE) = %v", attendees)
	}
	if attendees[0].Value.(TextValue) != "a" || attendees[1].Value.(TextValue) != "b" {
		t.Errorf("GetAll(ATTENDEE) order wrong: %+v", attendees)
	}
}

func TestComponentNameLookupsAreCaseInsensitive(t *testing.T) {
	c := NewComponent("vtodo")
	if !c.IsA("VTODO") {
		t.Error("IsA(VTODO) = false, want true")
	}

	c.Add(NewProperty("uid", TextValue("x")))
	if !c.Has("UID") {
		t.Error("Has(UID) = false, want true")
	}
	if c.Count("Uid") != 1 {
		t.Errorf("Count(Uid) = %d, want 1", c.Count("Uid"))
	}
}

func TestComponentChildrenAreOrdered(t *testing.T) {
	cal := NewComponent("VCALENDAR")
	first := NewComponent("VTODO")
	second := NewComponent("VTODO")
	cal.AddChild(first)
	cal.AddChild(second)

	kids := cal.ChildrenNamed("VTODO")
	if len(kids) != 2 || kids[0] != first || kids[1] != second {
		t.Errorf("ChildrenNamed(VTODO) = %v", kids)
	}
}
