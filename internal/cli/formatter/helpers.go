package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// HumanDate renders an API date as "Jan 2, 2006". Values that do not parse
// are returned as given; empty values render as "--".
func HumanDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "--"
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}

// StatusPill colours the free-form statuses used by jobs, projects and
// workers.
func StatusPill(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "":
		return StyleDim.Render("--")
	case "active", "in progress", "in-progress", "ongoing":
		return StyleGreen.Render("● " + status)
	case "open", "planned", "scheduled":
		return StyleBlue.Render("○ " + status)
	case "on hold", "paused":
		return StyleYellow.Render("◐ " + status)
	case "completed", "done":
		return StyleDim.Render("✔ " + status)
	case "cancelled", "canceled", "inactive":
		return StyleDim.Render("✖ " + status)
	default:
		return StyleFg.Render(status)
	}
}

func PriorityPill(priority string) string {
	switch strings.ToLower(strings.TrimSpace(priority)) {
	case "high":
		return StyleRed.Render("▲ " + priority)
	case "normal":
		return StyleFg.Render("● " + priority)
	case "low":
		return StyleDim.Render("▼ " + priority)
	case "":
		return StyleDim.Render("--")
	default:
		return StyleFg.Render(priority)
	}
}
