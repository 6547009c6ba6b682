package ical

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectReaderWithDialectUnderstandsEXRULE(t *testing.T) {
	input := "BEGIN:VEVENT\r\nEXRULE:FREQ=DAILY\r\nEND:VEVENT\r\n"

	or := NewObjectReader(strings.NewReader(input), WithDialect(RFC2445))
	ev, warnings, err := or.Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, warnings)

	exrule := ev.Get("EXRULE")
	require.NotNil(t, exrule)
	_, ok := exrule.Value.(RecurrenceValue)
	assert.True(t, ok, "EXRULE should decode as RecurrenceValue under RFC2445, not fall back to RawValue")
}

func TestObjectReaderWithoutDialectTreatsEXRULEAsUnregistered(t *testing.T) {
	input := "BEGIN:VEVENT\r\nEXRULE:FREQ=DAILY\r\nEND:VEVENT\r\n"

	or := NewObjectReader(strings.NewReader(input))
	ev, _, err := or.Read(context.Background())
	require.NoError(t, err)

	exrule := ev.Get("EXRULE")
	require.NotNil(t, exrule)
	_, ok := exrule.Value.(RawValue)
	assert.True(t, ok, "EXRULE should fall back to RawValue under the default RFC5545 dialect")
}

func TestObjectReaderWithRegistryOverridesDialect(t *testing.T) {
	custom := NewRegistry(RFC5545)
	custom.Register("X-CUSTOM-DATE", dateTimeScribe("X-CUSTOM-DATE"))

	input := "BEGIN:VEVENT\r\nX-CUSTOM-DATE:20230101T000000Z\r\nEND:VEVENT\r\n"

	// WithDialect is ignored once an explicit registry is supplied.
	or := NewObjectReader(strings.NewReader(input), WithDialect(RFC2445), WithRegistry(custom))
	ev, warnings, err := or.Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, warnings)

	_, ok := ev.Get("X-CUSTOM-DATE").Value.(DateTimeValue)
	assert.True(t, ok)
}

func TestObjectReaderWithRawReaderOptionsDisablesCaretDecoding(t *testing.T) {
	input := "BEGIN:VEVENT\r\nSUMMARY;X-ADDR=\"a^nb\":x\r\nEND:VEVENT\r\n"

	or := NewObjectReader(strings.NewReader(input), WithRawReaderOptions(WithCaretDecoding(false)))
	ev, _, err := or.Read(context.Background())
	require.NoError(t, err)

	v, _ := ev.Get("SUMMARY").Parameters.Get("X-ADDR")
	assert.Equal(t, "a^nb", v, "with caret decoding disabled, ^n must not be unescaped to a newline")
}

func TestObjectWriterWithRawWriterOptionsDisablesCaretEncoding(t *testing.T) {
	c := NewComponent("VEVENT")
	p := NewProperty("SUMMARY", TextValue("x"))
	p.Parameters.Set("X-ADDR", "a\nb")
	c.Add(p)

	var out strings.Builder
	ow := NewObjectWriter(&out, WithRawWriterOptions(WithCaretEncoding(false)))
	require.NoError(t, ow.Write(context.Background(), c))

	assert.NotContains(t, out.String(), "^n")
}
