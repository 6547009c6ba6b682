// icalfmt reads an iCalendar object from a file or stdin, round-trips it
// through the reader/writer pair, and reports validator warnings.
//
// Usage:
//
//	icalfmt [file.ics]
//
// If no file is given, icalfmt reads from stdin. Parse and validation
// warnings are printed to stderr; if any are at or above
// ical.WarningSevereThreshold, icalfmt exits with status 1.
package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/kenjinote/biweekly"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("icalfmt: ")

	var r io.Reader = os.Stdin
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			log.Fatalf("open %s: %v", os.Args[1], err)
		}
		defer f.Close()
		r = f
	}

	or := ical.NewObjectReader(r)
	roots, warnings, err := or.ReadAll(context.Background())
	if err != nil {
		log.Fatalf("read: %v", err)
	}

	for _, root := range roots {
		warnings = append(warnings, ical.Validate(root, nil)...)
	}

	severe := false
	for _, w := range warnings {
		log.Println(w.String())
		if w.Code >= ical.WarningSevereThreshold {
			severe = true
		}
	}

	ow := ical.NewObjectWriter(os.Stdout)
	for _, root := range roots {
		if err := ow.Write(context.Background(), root); err != nil {
			log.Fatalf("write: %v", err)
		}
	}

	if severe {
		os.Exit(1)
	}
}
