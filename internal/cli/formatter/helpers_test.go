package formatter

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"12.5", "$12.50"},
		{"999.99", "$999.99"},
		{"1000", "$1.0K"},
		{"1550.5", "$1.6K"},
		{"250000", "$250.0K"},
		{"1000000", "$1.0M"},
		{"1250000", "$1.3M"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Currency(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestHumanDate(t *testing.T) {
	assert.Equal(t, "Mar 2, 2026", HumanDate("2026-03-02"))
	assert.Equal(t, "Mar 2, 2026", HumanDate("2026-03-02T08:30:00"))
	assert.Equal(t, "Mar 2, 2026", HumanDate("2026-03-02T08:30:00.000Z"))
	assert.Equal(t, "next week", HumanDate("next week"))
	assert.Equal(t, "--", HumanDate(" "))
}

func TestStatusPill(t *testing.T) {
	for _, s := range []string{"Active", "In Progress", "Open", "On Hold", "Completed", "Cancelled", "Weird"} {
		assert.Contains(t, StatusPill(s), s)
	}
	assert.Contains(t, StatusPill(""), "--")
}

func TestPriorityPill(t *testing.T) {
	assert.Contains(t, PriorityPill("High"), "▲ High")
	assert.Contains(t, PriorityPill("Normal"), "● Normal")
	assert.Contains(t, PriorityPill("Low"), "▼ Low")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"ID", "NAME"}, [][]string{
		{"1", "Acme"},
		{"22", StatusPill("Active")},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)

	nameCol := strings.Index(lines[2], "Acme")
	assert.Greater(t, nameCol, 0)
	assert.Equal(t, lipgloss.Width(lines[1]), lipgloss.Width(strings.Repeat("x", 2+colGap+len("● Active"))))
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "abcdefgh", Truncate("abcdefgh", 0))
}
