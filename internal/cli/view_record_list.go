package cli

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/tradieone/internal/cli/formatter"
	"github.com/alexanderramin/tradieone/internal/debounce"
	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"go.uber.org/zap"
)

type loadState int

const (
	loadIdle loadState = iota
	loadLoading
	loadSuccess
	loadError
)

// loadSeq numbers list loads across all views.
var loadSeq atomic.Uint64

// recordsLoadedMsg carries one list response. seq identifies the load; a
// view drops responses for loads it has since superseded.
type recordsLoadedMsg struct {
	kind domain.Kind
	seq  uint64
	page domain.Page
	err  error
}

// recordListView is the list page of one kind: a debounced search box, a
// paged table and the add, edit and delete actions.
type recordListView struct {
	state *SharedState
	kind  domain.Kind

	status loadState
	page   domain.Page
	opts   domain.ListOptions
	err    error
	cursor int
	seq    uint64

	search    textinput.Model
	searching bool
	gate      *debounce.Gate
}

func newRecordListView(state *SharedState, kind domain.Kind) *recordListView {
	ti := textinput.New()
	ti.Prompt = formatter.StyleYellow.Render("/") + " "
	ti.Placeholder = "search " + string(kind)
	ti.CharLimit = 100
	ti.Cursor.SetMode(cursor.CursorStatic)

	return &recordListView{
		state:  state,
		kind:   kind,
		opts:   domain.ListOptions{}.WithDefaults(state.App.PageSize),
		search: ti,
		gate:   &debounce.Gate{},
	}
}

func (v *recordListView) ID() ViewID    { return ViewRecordList }
func (v *recordListView) Title() string { return v.kind.Label() }

// CapturesInput routes every key to the search box while it has focus.
func (v *recordListView) CapturesInput() bool { return v.searching }

func (v *recordListView) ShortHelp() []key.Binding {
	if v.searching {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("n", "p"), key.WithHelp("n/p", "page")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *recordListView) Init() tea.Cmd {
	return v.load()
}

// load enters the loading state and fetches the current query. Rows cached
// for the same query stay on screen until the response arrives.
func (v *recordListView) load() tea.Cmd {
	v.seq = loadSeq.Add(1)
	v.status = loadLoading
	v.err = nil
	if cached, ok := v.state.App.Records.Cached(v.kind, v.opts); ok {
		v.page = cached
	} else {
		v.page = domain.Page{}
	}
	v.clampCursor()

	app, kind, opts, seq := v.state.App, v.kind, v.opts, v.seq
	return func() tea.Msg {
		page, err := app.Records.List(context.Background(), kind, opts)
		return recordsLoadedMsg{kind: kind, seq: seq, page: page, err: err}
	}
}

func (v *recordListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsLoadedMsg:
		if msg.seq != v.seq {
			return v, nil
		}
		if msg.err != nil {
			v.status = loadError
			v.err = msg.err
			v.state.App.logger().Warn("list load failed", zap.String("kind", string(msg.kind)), zap.Error(msg.err))
			return v, nil
		}
		v.status = loadSuccess
		v.page = msg.page
		v.clampCursor()
		return v, nil

	case debounce.SettledMsg:
		value, ok := v.gate.Settled(msg.Token)
		if !ok {
			return v, nil
		}
		keyword := strings.TrimSpace(value)
		if keyword == v.opts.Keyword {
			return v, nil
		}
		v.opts.Keyword = keyword
		v.opts.PageNumber = domain.DefaultPageNumber
		v.cursor = 0
		return v, v.load()

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		if v.searching {
			return v.updateSearch(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *recordListView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v.searching = false
		v.search.Blur()
		return v, nil
	case tea.KeyEsc:
		v.searching = false
		v.search.Blur()
		if v.search.Value() == "" {
			return v, nil
		}
		v.search.SetValue("")
		return v, v.state.scheduleSearch(v.gate.Bump(""))
	}

	before := v.search.Value()
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	if v.search.Value() == before {
		return v, cmd
	}
	return v, tea.Batch(cmd, v.state.scheduleSearch(v.gate.Bump(v.search.Value())))
}

func (v *recordListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.page.Items)-1 {
			v.cursor++
		}
	case "/":
		v.searching = true
		return v, v.search.Focus()
	case "r":
		return v, v.load()
	case "n", "right":
		if v.opts.PageNumber*v.opts.PageSize < v.page.Total() {
			v.opts.PageNumber++
			v.cursor = 0
			return v, v.load()
		}
	case "p", "left":
		if v.opts.PageNumber > 1 {
			v.opts.PageNumber--
			v.cursor = 0
			return v, v.load()
		}
	case "a":
		return v, openRecordForm(v.state, v.kind, nil)
	case "enter":
		if rec, ok := v.selected(); ok {
			return v, pushView(newRecordDetailView(v.state, v.kind, rec))
		}
	case "e":
		if rec, ok := v.selected(); ok {
			return v, openRecordForm(v.state, v.kind, rec)
		}
	case "d":
		if rec, ok := v.selected(); ok {
			return v, confirmDelete(v.state, v.kind, rec, false)
		}
	}
	return v, nil
}

func (v *recordListView) selected() (domain.Record, bool) {
	if v.cursor < 0 || v.cursor >= len(v.page.Items) {
		return nil, false
	}
	return v.page.Items[v.cursor], true
}

func (v *recordListView) clampCursor() {
	if v.cursor >= len(v.page.Items) {
		v.cursor = max(len(v.page.Items)-1, 0)
	}
}

func (v *recordListView) View() string {
	var b strings.Builder
	b.WriteString("\n")

	if v.searching || v.search.Value() != "" {
		b.WriteString("  " + v.search.View() + "\n\n")
	}

	switch {
	case v.status == loadError:
		b.WriteString("  " + formatter.Failure(describeError(v.err)) + "\n")
		b.WriteString("  " + formatter.Dim("press r to retry") + "\n")
		return b.String()
	case v.status == loadLoading && len(v.page.Items) == 0:
		b.WriteString("  " + formatter.Dim("Loading "+string(v.kind)+"...") + "\n")
		return b.String()
	case len(v.page.Items) == 0:
		msg := "No " + string(v.kind) + " found."
		if v.opts.Keyword != "" {
			msg = fmt.Sprintf("No %s match %q.", v.kind, v.opts.Keyword)
		}
		b.WriteString("  " + formatter.Dim(msg) + "\n")
		return b.String()
	}

	b.WriteString(v.renderTable())

	footer := fmt.Sprintf("page %d · %d of %d", v.opts.PageNumber, len(v.page.Items), v.page.Total())
	if v.status == loadLoading {
		footer += " · refreshing..."
	}
	b.WriteString("\n  " + formatter.Dim(footer) + "\n")
	return b.String()
}

func (v *recordListView) renderTable() string {
	cols := formatter.Columns(v.kind)
	headers := append([]string{""}, formatter.Headers(v.kind)...)
	rows := make([][]string, len(v.page.Items))
	for i, rec := range v.page.Items {
		marker := " "
		if i == v.cursor {
			marker = formatter.StyleGreen.Render("▸")
		}
		row := []string{marker}
		for _, c := range cols {
			cell := formatter.Truncate(c.Value(rec), formatter.MaxCellWidth)
			switch {
			case cell == "":
				cell = formatter.Dim("--")
			case i == v.cursor:
				cell = formatter.Bold(cell)
			case c.Style != nil:
				cell = c.Style(cell)
			}
			row = append(row, cell)
		}
		rows[i] = row
	}
	return indent(formatter.RenderTable(headers, rows), "  ")
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

// confirmDelete asks before deleting rec. popAfter also leaves the view
// below the confirmation, for deletes started from a detail page.
func confirmDelete(state *SharedState, kind domain.Kind, rec domain.Record, popAfter bool) tea.Cmd {
	confirmed := false
	title := fmt.Sprintf("Delete %s %q?", kind.Singular(), domain.DisplayName(kind, rec))
	f := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed),
	)).WithTheme(tradieHuhTheme()).WithShowHelp(false)

	id := rec.ID()
	return pushView(newWizardView(state, "Delete", f, func() tea.Cmd {
		if !confirmed {
			return outputCmd(formatter.Dim("Cancelled."))
		}
		return deleteRecordCmd(state.App, kind, id, popAfter)
	}))
}

// deleteRecordCmd deletes one record. Failures leave every view as it was.
func deleteRecordCmd(app *App, kind domain.Kind, id string, popAfter bool) tea.Cmd {
	return func() tea.Msg {
		if err := app.Records.Delete(context.Background(), kind, id); err != nil {
			return cmdOutputMsg{output: errorOutput(err)}
		}
		done := outputCmd(formatter.Success(fmt.Sprintf("Deleted %s #%s", kind.Singular(), id)))
		if popAfter {
			return tea.BatchMsg{popView(), done, refreshViews}
		}
		return tea.BatchMsg{done, refreshViews}
	}
}
