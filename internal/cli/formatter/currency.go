package formatter

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var (
	million  = decimal.NewFromInt(1_000_000)
	thousand = decimal.NewFromInt(1_000)
)

// Currency renders an amount the way the stats cards do: $1.2M, $3.4K, or
// the plain AUD display below a thousand.
func Currency(d decimal.Decimal) string {
	switch {
	case d.GreaterThanOrEqual(million):
		return "$" + d.Div(million).StringFixed(1) + "M"
	case d.GreaterThanOrEqual(thousand):
		return "$" + d.Div(thousand).StringFixed(1) + "K"
	}
	cents := d.Shift(2).Round(0).IntPart()
	return money.New(cents, money.AUD).Display()
}
