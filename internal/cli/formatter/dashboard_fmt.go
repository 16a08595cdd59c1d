package formatter

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/alexanderramin/tradieone/internal/stats"
	"github.com/charmbracelet/lipgloss"
)

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorDim).
	Padding(0, 2).
	MarginRight(1)

// StatCard renders one stats card: a dim title over a large value.
func StatCard(title, value string, valueStyle lipgloss.Style) string {
	return cardStyle.Render(Dim(title) + "\n" + valueStyle.Bold(true).Render(value))
}

// StatCards renders the three summary cards side by side.
func StatCards(s stats.Summary) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		StatCard("Total Clients", strconv.Itoa(s.Clients), StyleFg),
		StatCard("Active Projects", strconv.Itoa(s.ActiveProjects), StyleGreen),
		StatCard("Monthly Revenue", Currency(s.MonthlyRevenue), StyleYellow),
	)
}

// FormatDashboard renders the stats cards and the per-kind record counts.
func FormatDashboard(s stats.Summary, counts map[domain.Kind]int) string {
	cards := StatCards(s)

	rows := make([][]string, 0, len(domain.Kinds()))
	for _, k := range domain.Kinds() {
		rows = append(rows, []string{k.Label(), fmt.Sprintf("%d", counts[k])})
	}
	return cards + "\n\n" + RenderTable([]string{"RECORDS", "COUNT"}, rows)
}
