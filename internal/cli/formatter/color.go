package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette of the TradieOne web app: blue accents on neutral greys.
var (
	ColorGreen  = lipgloss.Color("#16a34a")
	ColorYellow = lipgloss.Color("#f59e0b")
	ColorRed    = lipgloss.Color("#ef4444")
	ColorBlue   = lipgloss.Color("#60a5fa")
	ColorAccent = lipgloss.Color("#3b82f6")
	ColorDim    = lipgloss.Color("#9ca3af")
	ColorFg     = lipgloss.Color("#e5e7eb")
	ColorHeader = lipgloss.Color("#2563eb")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleAccent = lipgloss.NewStyle().Foreground(ColorAccent)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Header renders an upper-cased section title over a dim rule.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string  { return StyleDim.Render(text) }
func Bold(text string) string { return StyleBold.Render(text) }

// Success and Failure prefix one-line command results.
func Success(text string) string {
	return StyleGreen.Render("✔ ") + text
}

func Failure(text string) string {
	return StyleRed.Render("✖ ") + text
}
