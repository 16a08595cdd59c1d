package normalize

import "github.com/alexanderramin/tradieone/internal/domain"

// Record returns a copy of r with canonical address keys and a canonical
// state. The API may send address1/address2 or addressLine1/addressLine2,
// and state or stateName; the canonical keys win when both are present.
// The input is not modified.
func Record(r domain.Record) domain.Record {
	out := r.Clone()

	if line, ok := firstPresent(r, "addressLine1", "address1"); ok {
		out["addressLine1"] = line
	}
	if line, ok := firstPresent(r, "addressLine2", "address2"); ok {
		out["addressLine2"] = line
	}

	if raw, ok := firstPresent(r, "state", "stateName"); ok {
		if s, isStr := raw.(string); isStr {
			out["state"] = State(s)
		} else {
			out["state"] = raw
		}
	}

	return out
}

// Records normalizes every record of a list response.
func Records(rs []domain.Record) []domain.Record {
	out := make([]domain.Record, len(rs))
	for i, r := range rs {
		out[i] = Record(r)
	}
	return out
}

func firstPresent(r domain.Record, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r.Lookup(k); ok {
			return v, true
		}
	}
	return nil, false
}
