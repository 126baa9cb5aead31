// Package datefmt normalizes the date representations that show up in
// upstream payloads and user input into a single YYYY-MM-DD form.
package datefmt

import (
	"fmt"
	"time"
)

// ISO is the output layout for all normalized dates.
const ISO = "2006-01-02"

// layouts are the recognized input string layouts, tried in order.
// Day-first is tried before month-first, so an ambiguous value like
// 05/06/2024 is read as the 5th of June.
var layouts = []string{
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	"02/01/2006",
	"01/02/2006",
}

// Normalize formats v as a YYYY-MM-DD string, interpreting timestamps as
// UTC. Accepted inputs are time.Time values, integer or float epoch
// seconds, and strings in one of the recognized layouts. Anything else,
// including strings that match no layout, is returned via fmt.Sprint
// unchanged. Normalize never fails.
func Normalize(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(ISO)
	case int:
		return epoch(int64(t))
	case int32:
		return epoch(int64(t))
	case int64:
		return epoch(t)
	case float64:
		// JSON numbers decode as float64.
		return epoch(int64(t))
	case string:
		for _, layout := range layouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.Format(ISO)
			}
		}
		return t
	default:
		return fmt.Sprint(v)
	}
}

func epoch(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(ISO)
}
