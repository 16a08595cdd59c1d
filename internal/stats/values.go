package stats

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/shopspring/decimal"
)

func number(r domain.Record, key string) (decimal.Decimal, bool) {
	v, ok := r.Lookup(key)
	if !ok {
		return decimal.Zero, false
	}
	return toDecimal(v)
}

func firstNumber(r domain.Record, keys ...string) (decimal.Decimal, bool) {
	for _, k := range keys {
		if d, ok := number(r, k); ok {
			return d, true
		}
	}
	return decimal.Zero, false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}

// Zoned layouts are converted into loc; zone-less layouts are read in loc.
var (
	zonedLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05Z0700"}
	localLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
)

func firstDate(r domain.Record, loc *time.Location, keys ...string) (time.Time, bool) {
	for _, k := range keys {
		v, ok := r.Lookup(k)
		if !ok {
			continue
		}
		if t, ok := toTime(v, loc); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// toTime accepts ISO-8601 strings and epoch milliseconds.
func toTime(v any, loc *time.Location) (time.Time, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		for _, layout := range zonedLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.In(loc), true
			}
		}
		for _, layout := range localLayouts {
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}
	ms, ok := toDecimal(v)
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(ms.IntPart()).In(loc), true
}
