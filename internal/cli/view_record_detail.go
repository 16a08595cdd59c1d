package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/tradieone/internal/cli/formatter"
	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type recordLoadedMsg struct {
	kind domain.Kind
	id   string
	rec  domain.Record
	err  error
}

// recordDetailView shows every field of one record. It opens with the row
// from the list and reloads the full record from the backend.
type recordDetailView struct {
	state   *SharedState
	kind    domain.Kind
	id      string
	rec     domain.Record
	loading bool
	err     error
}

func newRecordDetailView(state *SharedState, kind domain.Kind, rec domain.Record) *recordDetailView {
	return &recordDetailView{state: state, kind: kind, id: rec.ID(), rec: rec}
}

func (v *recordDetailView) ID() ViewID { return ViewRecordDetail }

func (v *recordDetailView) Title() string {
	return domain.DisplayName(v.kind, v.rec)
}

func (v *recordDetailView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *recordDetailView) Init() tea.Cmd {
	return v.load()
}

func (v *recordDetailView) load() tea.Cmd {
	v.loading = true
	app, kind, id := v.state.App, v.kind, v.id
	return func() tea.Msg {
		rec, err := app.Records.Get(context.Background(), kind, id)
		return recordLoadedMsg{kind: kind, id: id, rec: rec, err: err}
	}
}

func (v *recordDetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recordLoadedMsg:
		if msg.kind != v.kind || msg.id != v.id {
			return v, nil
		}
		v.loading = false
		v.err = msg.err
		if msg.err == nil && msg.rec != nil {
			v.rec = msg.rec
		}
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "e":
			return v, openRecordForm(v.state, v.kind, v.rec)
		case "d":
			return v, confirmDelete(v.state, v.kind, v.rec, true)
		case "r":
			return v, v.load()
		}
	}
	return v, nil
}

func (v *recordDetailView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(indent(formatter.FormatRecordDetail(v.kind, v.rec), "  ") + "\n")
	switch {
	case v.err != nil:
		b.WriteString("  " + formatter.Failure(describeError(v.err)) + "\n")
	case v.loading:
		b.WriteString("  " + formatter.Dim("refreshing...") + "\n")
	}
	return b.String()
}
