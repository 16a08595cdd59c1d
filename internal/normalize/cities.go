package normalize

// OtherCity is the select option that switches the form to free text.
const OtherCity = "Other"

// Major cities only; the list is not meant to be exhaustive.
var citiesByState = map[string][]string{
	"New South Wales":              {"Sydney", "Newcastle", "Wollongong"},
	"Victoria":                     {"Melbourne", "Geelong", "Ballarat"},
	"Queensland":                   {"Brisbane", "Gold Coast", "Sunshine Coast", "Cairns"},
	"South Australia":              {"Adelaide", "Mount Gambier", "Whyalla"},
	"Western Australia":            {"Perth", "Fremantle", "Bunbury"},
	"Tasmania":                     {"Hobart", "Launceston", "Devonport"},
	"Northern Territory":           {"Darwin", "Alice Springs"},
	"Australian Capital Territory": {"Canberra"},
}

// Cities returns the city options for a state (abbreviations accepted),
// always ending with OtherCity.
func Cities(state string) []string {
	known := citiesByState[State(state)]
	out := make([]string, 0, len(known)+1)
	out = append(out, known...)
	return append(out, OtherCity)
}

// KnownCity reports whether city is one of the listed options for state.
func KnownCity(state, city string) bool {
	for _, c := range Cities(state) {
		if c == city {
			return true
		}
	}
	return false
}
