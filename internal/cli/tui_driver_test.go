package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/tradieone/internal/debounce"
	"github.com/alexanderramin/tradieone/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
)

// TestDriver wraps teatest.Driver with access to appModel internals (view
// stack, shared state, command bar focus) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the app model for app and drains Init. Search
// quiet periods never end on their own; tests deliver debounce.SettledMsg
// themselves.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	state := newSharedState(app)
	state.tick = func(time.Duration, debounce.Token) tea.Cmd { return nil }

	m := newAppModelWithState(state)
	// Requests go to a local httptest server; cursor blinks (~530ms) are
	// still skipped.
	d := teatest.New(t, m, teatest.WithCmdTimeout(300*time.Millisecond), teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// Command focuses the command bar with ':', types the command, and presses
// Enter. The bar blurs itself on Enter.
func (d *TestDriver) Command(input string) {
	d.T.Helper()
	d.PressKey(':')
	d.Type(input)
	d.PressEnter()
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveView returns the top view on the stack.
func (d *TestDriver) ActiveView() View {
	m := d.appModel()
	return m.activeView()
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	v := d.ActiveView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting reports whether the app has asked to quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// CmdBarFocused returns whether the command bar currently has focus.
func (d *TestDriver) CmdBarFocused() bool {
	m := d.appModel()
	return m.cmdBar.Focused()
}

// LastOutput returns the last command output displayed in the content area.
func (d *TestDriver) LastOutput() string {
	return d.appModel().output.text
}

// List returns the active record list view.
func (d *TestDriver) List() *recordListView {
	d.T.Helper()
	v, ok := d.ActiveView().(*recordListView)
	if !ok {
		d.T.Fatalf("active view is %T, not a record list", d.ActiveView())
	}
	return v
}

// Settle ends the search quiet period of the active list.
func (d *TestDriver) Settle() {
	d.T.Helper()
	tok, _ := d.List().gate.Latest()
	d.Send(debounce.SettledMsg{Token: tok})
}
