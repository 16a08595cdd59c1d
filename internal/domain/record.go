package domain

import (
	"encoding/json"
	"strconv"
)

// Record is an entity as returned by the REST API. The backend schema is not
// strongly typed, so list and detail payloads are kept as decoded JSON
// objects and read through the accessors below.
type Record map[string]any

// Lookup returns the value stored under key. JSON null counts as absent.
func (r Record) Lookup(key string) (any, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String renders the scalar stored under key. Missing keys, nulls and
// nested objects or arrays render as "".
func (r Record) String(key string) string {
	v, ok := r.Lookup(key)
	if !ok {
		return ""
	}
	return ScalarString(v)
}

// ID returns the backend-assigned identifier.
func (r Record) ID() string {
	return CoalesceStr(r.String("id"), r.String("Id"), r.String("ID"))
}

// Clone returns a shallow copy; nested values are shared.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ScalarString renders a decoded JSON scalar; composites render as "".
func ScalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
