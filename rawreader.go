package ical

import (
	"fmt"
	"io"
	"strings"
)

// Listener receives events from a RawReader as it scans content lines. Any
// method may return stop=true to make the reader cease pulling further
// input and return cleanly from Start; this is the only way to abort a
// read, by design there is no exception-based escape (spec §9's redesign
// flag against nonlocal control flow via a thrown StopReadingException).
type Listener interface {
	BeginComponent(name string) (stop bool)
	EndComponent(name string) (stop bool)
	ReadProperty(name string, params Parameters, value string) (stop bool)
	InvalidLine(raw string) (stop bool)
	ValuelessParameter(propertyName, paramName string) (stop bool)
}

// RawReaderOption configures a RawReader.
type RawReaderOption func(*RawReader)

// WithCaretDecoding enables or disables RFC 6868 circumflex decoding of
// parameter values. Enabled by default.
func WithCaretDecoding(enabled bool) RawReaderOption {
	return func(rr *RawReader) {
		rr.caretDecoding = enabled
	}
}

// RawReader scans an iCalendar data stream's logical lines into
// (name, parameters, value) triples, dispatching one event per line to a
// Listener. It owns the escape/quote state machine described in spec
// §4.2, ported from the escape-table semantics of the original
// ICalRawReader.parseLine.
type RawReader struct {
	flr           *FoldedLineReader
	caretDecoding bool
	eof           bool
}

// NewRawReader wraps r, applying any options.
func NewRawReader(r io.Reader, opts ...RawReaderOption) *RawReader {
	rr := &RawReader{
		flr:           NewFoldedLineReader(r),
		caretDecoding: true,
	}
	for _, opt := range opts {
		opt(rr)
	}
	return rr
}

// LineNumber returns the physical line number at which the most recently
// dispatched event's content line began.
func (rr *RawReader) LineNumber() int {
	return rr.flr.CurrentLineNumber()
}

// EOF reports whether the underlying stream has been fully consumed.
func (rr *RawReader) EOF() bool {
	return rr.eof
}

// Start reads from the data stream, dispatching one event per logical line
// to listener, until the stream ends, the listener requests a stop, or an
// I/O fault occurs. Calling Start again after a stop resumes reading where
// it left off.
func (rr *RawReader) Start(listener Listener) error {
	for {
		line, ok, err := rr.flr.NextLine()
		if err != nil {
			return fmt.Errorf("raw reader: %w", err)
		}
		if !ok {
			rr.eof = true
			return nil
		}
		if rr.parseLine(line, listener) {
			return nil
		}
	}
}

// Close releases the underlying stream.
func (rr *RawReader) Close() error {
	return rr.flr.Close()
}

func (rr *RawReader) parseLine(line string, listener Listener) (stopRequested bool) {
	runes := []rune(line)

	var propertyName string
	haveName := false
	params := NewParameters()
	var value string
	haveValue := false

	var escapeChar rune
	inQuotes := false
	var buf strings.Builder
	var curParamName string
	haveParamName := false

scan:
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if escapeChar != 0 {
			switch escapeChar {
			case '\\':
				switch ch {
				case '\\':
					buf.WriteRune('\\')
				case 'n', 'N':
					buf.WriteByte('\n')
				case '"':
					buf.WriteRune('"')
				default:
					buf.WriteRune(escapeChar)
					buf.WriteRune(ch)
				}
			case '^':
				switch ch {
				case '^':
					buf.WriteRune('^')
				case 'n':
					buf.WriteByte('\n')
				case '\'':
					buf.WriteRune('"')
				default:
					buf.WriteRune(escapeChar)
					buf.WriteRune(ch)
				}
			}
			escapeChar = 0
			continue
		}

		if ch == '\\' || (ch == '^' && rr.caretDecoding) {
			escapeChar = ch
			continue
		}

		switch {
		case (ch == ';' || ch == ':') && !inQuotes:
			switch {
			case !haveName:
				propertyName = buf.String()
				haveName = true
			case !haveParamName:
				paramName := buf.String()
				if listener.ValuelessParameter(propertyName, paramName) {
					stopRequested = true
				}
				params.SetValueless(paramName)
			default:
				params.Add(curParamName, buf.String())
				haveParamName = false
			}
			buf.Reset()

			if ch == ':' {
				if i < len(runes)-1 {
					value = string(runes[i+1:])
				} else {
					value = ""
				}
				haveValue = true
				break scan
			}
		case ch == ',' && !inQuotes:
			params.Add(curParamName, buf.String())
			buf.Reset()
		case ch == '=' && !haveParamName:
			curParamName = buf.String()
			haveParamName = true
			buf.Reset()
		case ch == '"':
			inQuotes = !inQuotes
		default:
			buf.WriteRune(ch)
		}
	}

	if !haveName || !haveValue {
		if listener.InvalidLine(line) {
			stopRequested = true
		}
		return stopRequested
	}

	switch {
	case strings.EqualFold(propertyName, "BEGIN"):
		if listener.BeginComponent(value) {
			stopRequested = true
		}
	case strings.EqualFold(propertyName, "END"):
		if listener.EndComponent(value) {
			stopRequested = true
		}
	default:
		if listener.ReadProperty(propertyName, params, value) {
			stopRequested = true
		}
	}

	return stopRequested
}
