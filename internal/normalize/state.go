// Package normalize reconciles the field names and values the API returns
// with the canonical ones the forms edit.
package normalize

import "strings"

var canonicalStates = []string{
	"New South Wales",
	"Victoria",
	"Queensland",
	"South Australia",
	"Western Australia",
	"Tasmania",
	"Northern Territory",
	"Australian Capital Territory",
}

var stateAbbreviations = map[string]string{
	"NSW": "New South Wales",
	"VIC": "Victoria",
	"QLD": "Queensland",
	"SA":  "South Australia",
	"WA":  "Western Australia",
	"TAS": "Tasmania",
	"NT":  "Northern Territory",
	"ACT": "Australian Capital Territory",
}

// States returns the canonical state and territory names in form order.
func States() []string {
	out := make([]string, len(canonicalStates))
	copy(out, canonicalStates)
	return out
}

// State maps an abbreviation (any case) or a full name (any case) to the
// canonical full name. Anything else is returned unchanged.
func State(value string) string {
	if value == "" {
		return value
	}
	if full, ok := stateAbbreviations[strings.ToUpper(value)]; ok {
		return full
	}
	for _, s := range canonicalStates {
		if strings.EqualFold(s, value) {
			return s
		}
	}
	return value
}

// Abbreviation returns the short code for a recognised state, or "".
func Abbreviation(value string) string {
	full := State(value)
	for abbr, name := range stateAbbreviations {
		if name == full {
			return abbr
		}
	}
	return ""
}
