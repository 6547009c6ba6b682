package ical

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxLineOctets = 75

// RawWriterOption configures a RawWriter.
type RawWriterOption func(*RawWriter)

// WithCaretEncoding enables or disables RFC 6868 circumflex encoding of
// reserved characters (", newline, ^) in parameter values. Enabled by
// default; disabling it is a legacy-compatibility escape hatch, not a
// safe way to carry such characters.
func WithCaretEncoding(enabled bool) RawWriterOption {
	return func(rw *RawWriter) {
		rw.caretEncoding = enabled
	}
}

// RawWriter is symmetric to RawReader: it accepts component/property
// events and serializes content lines, quoting and encoding parameter
// values and folding physical output to at most 75 octets per line.
type RawWriter struct {
	w             io.Writer
	caretEncoding bool
}

// NewRawWriter wraps w, applying any options.
func NewRawWriter(w io.Writer, opts ...RawWriterOption) *RawWriter {
	rw := &RawWriter{w: w, caretEncoding: true}
	for _, opt := range opts {
		opt(rw)
	}
	return rw
}

// WriteBeginComponent writes a "BEGIN:NAME" content line.
func (rw *RawWriter) WriteBeginComponent(name string) error {
	return rw.writeLine("BEGIN:" + name)
}

// WriteEndComponent writes an "END:NAME" content line.
func (rw *RawWriter) WriteEndComponent(name string) error {
	return rw.writeLine("END:" + name)
}

// WriteProperty writes one property's content line, in the order
// parameters appear in params (insertion order is preserved, per spec
// §4.3's determinism requirement).
func (rw *RawWriter) WriteProperty(name string, params Parameters, value string) error {
	return rw.writeLine(rw.formatProperty(name, params, value))
}

func (rw *RawWriter) formatProperty(name string, params Parameters, value string) string {
	var b strings.Builder
	b.WriteString(name)

	for _, paramName := range params.Names() {
		vals := params.Values(paramName)
		b.WriteString(";")
		b.WriteString(paramName)
		if vals == nil {
			continue
		}
		b.WriteString("=")
		for i, v := range vals {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(rw.formatParamValue(v))
		}
	}

	b.WriteString(":")
	b.WriteString(value)
	return b.String()
}

func (rw *RawWriter) formatParamValue(v string) string {
	encoded := v
	if rw.caretEncoding {
		encoded = caretEncode(v)
	}
	if needsParamQuoting(v) {
		return `"` + encoded + `"`
	}
	return encoded
}

func caretEncode(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch r {
		case '^':
			b.WriteString("^^")
		case '\n':
			b.WriteString("^n")
		case '"':
			b.WriteString("^'")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsParamQuoting(v string) bool {
	if strings.ContainsAny(v, ";:,") {
		return true
	}
	for _, r := range v {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}

func (rw *RawWriter) writeLine(raw string) error {
	for _, chunk := range foldLine(raw) {
		if _, err := io.WriteString(rw.w, chunk); err != nil {
			return fmt.Errorf("write content line: %w", err)
		}
		if _, err := io.WriteString(rw.w, "\r\n"); err != nil {
			return fmt.Errorf("write content line: %w", err)
		}
	}
	return nil
}

// foldLine splits an unfolded content line into physical lines of at most
// maxLineOctets octets each, breaking only on UTF-8 rune boundaries and
// prefixing every continuation with a single space (which counts toward
// that continuation's own 75-octet budget).
func foldLine(line string) []string {
	b := []byte(line)
	if len(b) <= maxLineOctets {
		return []string{line}
	}

	var chunks []string
	i := 0
	first := true
	for i < len(b) {
		limit := maxLineOctets
		if !first {
			limit = maxLineOctets - 1
		}
		end := i + limit
		if end > len(b) {
			end = len(b)
		}
		for end > i && end < len(b) && !utf8.RuneStart(b[end]) {
			end--
		}
		if end == i {
			_, size := utf8.DecodeRune(b[i:])
			end = i + size
		}

		chunk := string(b[i:end])
		if first {
			chunks = append(chunks, chunk)
		} else {
			chunks = append(chunks, " "+chunk)
		}
		first = false
		i = end
	}
	return chunks
}

// Close is a no-op unless the underlying writer is an io.Closer, in which
// case it is closed, matching RawReader's symmetric resource discipline.
func (rw *RawWriter) Close() error {
	if c, ok := rw.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
