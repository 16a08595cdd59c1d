package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/tradieone/internal/cli/formatter"
	"github.com/alexanderramin/tradieone/internal/debounce"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// globalKeys apply whenever neither the command bar nor a text input has
// focus.
type globalKeys struct {
	Command key.Binding
	Help    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

var keys = globalKeys{
	Command: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

// appModel is the root bubbletea model: a stack of views under a header,
// with a status bar and the command bar below.
type appModel struct {
	state     *SharedState
	viewStack []View
	cmdBar    commandBar
	output    outputPane
	quitting  bool
}

func newAppModel(app *App) appModel {
	return newAppModelWithState(newSharedState(app))
}

// newAppModelWithState starts on the dashboard when a session exists and on
// the sign-in form otherwise.
func newAppModelWithState(state *SharedState) appModel {
	m := appModel{
		state:  state,
		cmdBar: newCommandBar(state),
		output: newOutputPane(),
	}
	if state.refreshSession(context.Background()) {
		m.viewStack = []View{newDashboardView(state)}
	} else {
		m.viewStack = []View{newSignInView(state)}
	}
	return m
}

func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// forward sends msg to the top view and stores the result.
func (m *appModel) forward(msg tea.Msg) tea.Cmd {
	top := len(m.viewStack) - 1
	if top < 0 {
		return nil
	}
	updated, cmd := m.viewStack[top].Update(msg)
	m.viewStack[top] = updated.(View)
	return cmd
}

// broadcast sends msg to every view on the stack, bottom first.
func (m *appModel) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.viewStack))
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *appModel) showOutput(text string) {
	m.output.show(text, m.state.Width, m.state.ContentHeight())
}

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width, m.state.Height = msg.Width, msg.Height
		m.cmdBar.SetWidth(msg.Width)
		m.output.resize(msg.Width, m.state.ContentHeight())
		return m, m.forward(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.output.active() {
			return m, m.output.update(msg)
		}
		return m, nil

	case pushViewMsg:
		m.cmdBar.Blur()
		m.output.clear()
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case resetViewsMsg:
		m.cmdBar.Blur()
		m.output.clear()
		m.viewStack = []View{msg.view}
		return m, msg.view.Init()

	case wizardCompleteMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		m.output.clear()
		return m, msg.nextCmd

	// Lists under a form reload after a mutation made above them, and a
	// load that finishes while its view is covered still lands. Views
	// ignore results that are not theirs.
	case refreshViewMsg, recordsLoadedMsg, recordLoadedMsg, dashboardLoadedMsg, debounce.SettledMsg:
		return m, m.broadcast(msg)

	case cmdOutputMsg:
		m.showOutput(msg.output)
		return m, nil

	case cmdLoadingMsg:
		m.showOutput("\n  " + formatter.Dim(msg.message))
		return m, nil

	case quitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	// Cursor blinks and form internals.
	var cmds []tea.Cmd
	if m.cmdBar.Focused() {
		cmds = append(cmds, m.cmdBar.UpdateNonKey(msg))
	}
	cmds = append(cmds, m.forward(msg))
	return m, tea.Batch(cmds...)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.cmdBar.Focused() {
		if msg.Type == tea.KeyEnter {
			m.output.clear()
		}
		return m, m.cmdBar.Update(msg)
	}

	if m.output.active() {
		if m.output.scrolls(msg) {
			return m, m.output.update(msg)
		}
		m.output.clear()
	}

	v := m.activeView()
	if viewCapturesInput(v) {
		return m, m.forward(msg)
	}

	switch {
	case key.Matches(msg, keys.Command):
		m.cmdBar.Focus()
		return m, nil
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		return m, outputCmd(helpText())
	case key.Matches(msg, keys.Back):
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil
	}
	return m, m.forward(msg)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	body := ""
	switch {
	case m.output.active():
		body = m.output.view()
	case m.activeView() != nil:
		body = m.activeView().View()
	}

	out := strings.Join([]string{m.header(), body, m.statusBar(), m.cmdBar.View()}, "\n")

	// Pad to the terminal height so the line-diff renderer does not leave
	// stale rows behind in alt-screen mode.
	if lines := strings.Count(out, "\n") + 1; lines < m.state.Height {
		out += strings.Repeat("\n", m.state.Height-lines)
	}
	return out
}

func (m *appModel) rule() string {
	return formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
}

// header is the app name, the breadcrumb of the view stack and the
// signed-in user.
func (m *appModel) header() string {
	var b strings.Builder
	b.WriteString(formatter.StyleAccent.Render("tradie"))

	crumbs := make([]string, 0, len(m.viewStack))
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	if len(crumbs) > 0 {
		b.WriteString(formatter.Dim(" › " + strings.Join(crumbs, " › ")))
	}
	if m.state.SignedInAs != "" {
		b.WriteString("  " + formatter.Dim("[") + formatter.StyleGreen.Render(m.state.SignedInAs) + formatter.Dim("]"))
	}
	return b.String() + "\n" + m.rule()
}

func (m *appModel) statusBar() string {
	var hints []key.Binding
	switch {
	case m.output.active() && m.output.overflows():
		return m.rule() + "\n" + strings.Join([]string{
			m.output.position(),
			formatter.Dim("↑↓ pgup/pgdn: scroll"),
			formatter.Dim("any key: dismiss"),
		}, "  ")
	case m.output.active():
		return m.rule() + "\n" + formatter.Dim("any key: dismiss")
	case m.cmdBar.Focused():
		return m.rule() + "\n" + formatter.Dim("enter: run  esc: cancel  ctrl+n/ctrl+p: suggestions")
	}

	if v := m.activeView(); v != nil {
		hints = append(hints, v.ShortHelp()...)
	}
	if len(m.viewStack) > 1 {
		hints = append(hints, keys.Back)
	}
	hints = append(hints, keys.Command, keys.Help)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = formatter.Dim(h.Help().Key + ": " + h.Help().Desc)
	}
	return m.rule() + "\n" + strings.Join(parts, "  ")
}

// viewCapturesInput reports whether v takes every key, including the
// global ones.
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	switch v.ID() {
	case ViewForm, ViewSignIn:
		return true
	}
	c, ok := v.(inputCapturer)
	return ok && c.CapturesInput()
}
