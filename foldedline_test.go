package ical

import (
	"strings"
	"testing"
)

func TestFoldedLineReaderUnfolds(t *testing.T) {
	input := "BEGIN:VCALENDAR\r\n" +
		"SUMMARY:This is a long\r\n value that wraps\r\n\tacross lines\r\n" +
		"END:VCALENDAR\r\n"

	flr := NewFoldedLineReader(strings.NewReader(input))

	want := []string{
		"BEGIN:VCALENDAR",
		"SUMMARY:This is a longvalue that wrapsacross lines",
		"END:VCALENDAR",
	}

	for i, w := range want {
		line, ok, err := flr.NextLine()
		if err != nil {
			t.Fatalf("NextLine() error = %v", err)
		}
		if !ok {
			t.Fatalf("NextLine() ok = false at index %d, want %q", i, w)
		}
		if line != w {
			t.Errorf("NextLine() = %q, want %q", line, w)
		}
	}

	if _, ok, err := flr.NextLine(); ok || err != nil {
		t.Errorf("NextLine() at EOF = (ok=%v, err=%v), want (false, nil)", ok, err)
	}
}

func TestFoldedLineReaderBlankLinesTerminateAndAreDiscarded(t *testing.T) {
	input := "A:1\r\n\r\nB:2\r\n"
	flr := NewFoldedLineReader(strings.NewReader(input))

	line, ok, err := flr.NextLine()
	if err != nil || !ok || line != "A:1" {
		t.Fatalf("first NextLine() = (%q, %v, %v)", line, ok, err)
	}

	line, ok, err = flr.NextLine()
	if err != nil || !ok || line != "B:2" {
		t.Fatalf("second NextLine() = (%q, %v, %v)", line, ok, err)
	}
}

func TestFoldedLineReaderLineEndings(t *testing.T) {
	for _, terminator := range []string{"\r\n", "\n", "\r"} {
		input := "A:1" + terminator + "B:2" + terminator
		flr := NewFoldedLineReader(strings.NewReader(input))

		line, ok, err := flr.NextLine()
		if err != nil || !ok || line != "A:1" {
			t.Fatalf("terminator %q: first NextLine() = (%q, %v, %v)", terminator, line, ok, err)
		}
		line, ok, err = flr.NextLine()
		if err != nil || !ok || line != "B:2" {
			t.Fatalf("terminator %q: second NextLine() = (%q, %v, %v)", terminator, line, ok, err)
		}
	}
}

func TestFoldedLineReaderLineNumberTracksLogicalLineStart(t *testing.T) {
	input := "A:1\r\nB:cont\r\n ued\r\nC:3\r\n"
	flr := NewFoldedLineReader(strings.NewReader(input))

	wantLineNumbers := []int{1, 2, 4}
	for _, want := range wantLineNumbers {
		if _, ok, err := flr.NextLine(); err != nil || !ok {
			t.Fatalf("NextLine() = (ok=%v, err=%v)", ok, err)
		}
		if got := flr.CurrentLineNumber(); got != want {
			t.Errorf("CurrentLineNumber() = %d, want %d", got, want)
		}
	}
}
