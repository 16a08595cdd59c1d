package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/tradieone/internal/cli/formatter"
	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/alexanderramin/tradieone/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ── messages ─────────────────────────────────────────────────────────────────

// dashboardLoadedMsg signals that dashboard data has been loaded.
type dashboardLoadedMsg struct {
	data *service.Dashboard
	err  error
}

// ── view ─────────────────────────────────────────────────────────────────────

// dashboardView is the home screen of the TUI: the stats cards above a
// menu of the record kinds.
type dashboardView struct {
	state   *SharedState
	data    *service.Dashboard
	loading bool
	err     error
	cursor  int
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{
		state:   state,
		loading: true,
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("1", "5"), key.WithHelp("1-5", "jump")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadData()
}

func (v *dashboardView) loadData() tea.Cmd {
	v.loading = true
	app := v.state.App
	return func() tea.Msg {
		d, err := app.Stats.Dashboard(context.Background())
		return dashboardLoadedMsg{data: d, err: err}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.data = msg.data
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		kinds := domain.Kinds()
		switch s := msg.String(); s {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(kinds)-1 {
				v.cursor++
			}
		case "enter":
			return v, pushView(newRecordListView(v.state, kinds[v.cursor]))
		case "r":
			return v, v.loadData()
		default:
			if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(kinds) {
				v.cursor = n - 1
				return v, pushView(newRecordListView(v.state, kinds[n-1]))
			}
		}
	}
	return v, nil
}

func (v *dashboardView) View() string {
	var b strings.Builder
	b.WriteString("\n")

	switch {
	case v.data != nil:
		b.WriteString(indent(formatter.StatCards(v.data.Summary), "  ") + "\n")
	case v.err != nil:
		b.WriteString("  " + formatter.Failure(describeError(v.err)) + "\n")
	default:
		b.WriteString("  " + formatter.Dim("Loading dashboard...") + "\n")
	}
	if v.data != nil && v.err != nil {
		b.WriteString("  " + formatter.Failure(describeError(v.err)) + "\n")
	}

	total := 0
	if v.data != nil {
		for _, n := range v.data.Counts {
			total += n
		}
	}

	b.WriteString("\n")
	for i, k := range domain.Kinds() {
		cursor := "  "
		label := formatter.StyleFg.Render(k.Label())
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			label = formatter.StyleBold.Render(k.Label())
		}
		count := ""
		if v.data != nil {
			n := v.data.Counts[k]
			count = padRight(formatter.Dim(strconv.Itoa(n)), 6) + formatter.RenderProgress(share(n, total), 12)
		}
		b.WriteString(fmt.Sprintf("  %s%s %s  %s\n", cursor, formatter.Dim(strconv.Itoa(i+1)), padRight(label, 14), count))
	}
	return b.String()
}

// share is n as a fraction of total; 0 when there is nothing to count.
func share(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(n) / float64(total)
}

// padRight pads s with spaces to width visible columns.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
