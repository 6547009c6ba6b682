package ical

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectReaderMinimalTodoRoundTrip(t *testing.T) {
	input := "BEGIN:VCALENDAR\r\n" +
		"BEGIN:VTODO\r\n" +
		"UID:abc\r\n" +
		"DTSTAMP:20230101T000000Z\r\n" +
		"SUMMARY:Write report\r\n" +
		"END:VTODO\r\n" +
		"END:VCALENDAR\r\n"

	or := NewObjectReader(strings.NewReader(input))
	cal, warnings, err := or.Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.NotNil(t, cal)
	assert.True(t, cal.IsA("VCALENDAR"))
	require.Len(t, cal.Components, 1)

	todo := cal.Components[0]
	assert.True(t, todo.IsA("VTODO"))

	uid := todo.Get("UID")
	require.NotNil(t, uid)
	assert.Equal(t, TextValue("abc"), uid.Value)

	summary := todo.Get("SUMMARY")
	require.NotNil(t, summary)
	assert.Equal(t, TextValue("Write report"), summary.Value)

	dtstamp := todo.Get("DTSTAMP")
	require.NotNil(t, dtstamp)
	dv, ok := dtstamp.Value.(DateTimeValue)
	require.True(t, ok)
	assert.True(t, dv.HasTime)
}

func TestObjectReaderPreservesUnknownPropertiesAsRaw(t *testing.T) {
	input := "BEGIN:VEVENT\r\nX-CUSTOM-THING:hello\r\nEND:VEVENT\r\n"

	or := NewObjectReader(strings.NewReader(input))
	ev, _, err := or.Read(context.Background())
	require.NoError(t, err)
	require.NotNil(t, ev)

	custom := ev.Get("X-CUSTOM-THING")
	require.NotNil(t, custom)
	raw, ok := custom.Value.(RawValue)
	require.True(t, ok)
	assert.Equal(t, "hello", raw.Value)
}

func TestObjectReaderMismatchedEndProducesWarningWithoutCorruptingStack(t *testing.T) {
	input := "BEGIN:VCALENDAR\r\n" +
		"BEGIN:VTODO\r\n" +
		"UID:abc\r\n" +
		"END:VALARM\r\n" + // stray, no matching BEGIN:VALARM
		"END:VTODO\r\n" +
		"END:VCALENDAR\r\n"

	or := NewObjectReader(strings.NewReader(input))
	roots, warnings, err := or.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, roots, 1)

	found := false
	for _, w := range warnings {
		if w.Code == WarnMismatchedEnd {
			found = true
		}
	}
	assert.True(t, found, "expected a WarnMismatchedEnd warning")

	cal := roots[0]
	require.Len(t, cal.Components, 1)
	assert.True(t, cal.Components[0].IsA("VTODO"))
}

func TestObjectReaderReadAllReturnsMultipleTopLevelComponents(t *testing.T) {
	input := "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n" +
		"BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"

	or := NewObjectReader(strings.NewReader(input))
	roots, _, err := or.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, roots, 2)
}

func TestObjectReaderRespectsContextCancellation(t *testing.T) {
	input := "BEGIN:VCALENDAR\r\nBEGIN:VTODO\r\nUID:abc\r\nEND:VTODO\r\nEND:VCALENDAR\r\n"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	or := NewObjectReader(strings.NewReader(input))
	roots, _, err := or.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, roots, "a pre-cancelled context should stop before any component completes")
}
