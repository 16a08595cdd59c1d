package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/tradieone/internal/cli/formatter"
	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/alexanderramin/tradieone/internal/form"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// recordSavedMsg reports the result of a form submission.
type recordSavedMsg struct {
	rec domain.Record
	err error
}

// recordFormView edits one record. A failed save keeps the form open with
// the entered values and shows the error above it.
type recordFormView struct {
	state   *SharedState
	spec    entitySpec
	id      string // empty when adding
	target  form.Form
	lookups lookups

	form   *huh.Form
	saving bool
	err    error
}

func newRecordFormView(state *SharedState, spec entitySpec, id string, target form.Form, lk lookups) *recordFormView {
	return &recordFormView{
		state:   state,
		spec:    spec,
		id:      id,
		target:  target,
		lookups: lk,
		form:    buildRecordForm(spec, target, lk),
	}
}

func (v *recordFormView) ID() ViewID { return ViewForm }

func (v *recordFormView) Title() string {
	if v.id == "" {
		return "New " + v.spec.kind.Singular()
	}
	return fmt.Sprintf("Edit %s #%s", v.spec.kind.Singular(), v.id)
}

func (v *recordFormView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *recordFormView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *recordFormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recordSavedMsg:
		v.saving = false
		if msg.err != nil {
			v.err = msg.err
			v.form = buildRecordForm(v.spec, v.target, v.lookups)
			return v, v.form.Init()
		}
		done := outputCmd(formatter.Success(v.successMessage(msg.rec)))
		return v, func() tea.Msg { return wizardCompleteMsg{nextCmd: tea.Batch(done, refreshViews)} }

	case tea.KeyMsg:
		if v.saving {
			return v, nil
		}
		if msg.Type == tea.KeyEsc {
			return v, func() tea.Msg { return wizardCompleteOutput(formatter.Dim("Cancelled.")) }
		}
	}

	updated, cmd := v.form.Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateCompleted:
		v.saving = true
		return v, v.save()
	case huh.StateAborted:
		return v, func() tea.Msg { return wizardCompleteOutput(formatter.Dim("Cancelled.")) }
	}
	return v, cmd
}

// save submits the form. Validation runs in the service; field errors come
// back without a request.
func (v *recordFormView) save() tea.Cmd {
	app, kind, id, target := v.state.App, v.spec.kind, v.id, v.target
	return func() tea.Msg {
		rec, err := app.Records.Save(context.Background(), kind, id, target)
		return recordSavedMsg{rec: rec, err: err}
	}
}

func (v *recordFormView) successMessage(rec domain.Record) string {
	if v.id != "" {
		return fmt.Sprintf("Updated %s #%s", v.spec.kind.Singular(), v.id)
	}
	if rec != nil && rec.ID() != "" {
		return fmt.Sprintf("Created %s #%s", v.spec.kind.Singular(), rec.ID())
	}
	return "Created " + v.spec.kind.Singular()
}

func (v *recordFormView) View() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.Header(v.Title()) + "\n\n")
	if v.err != nil {
		b.WriteString(renderFormError(v.err) + "\n\n")
	}
	if v.saving {
		b.WriteString("  " + formatter.Dim("Saving...") + "\n")
		return b.String()
	}
	b.WriteString(v.form.View())
	return b.String()
}

// renderFormError lists field errors one per line.
func renderFormError(err error) string {
	var fe form.FieldErrors
	if !errors.As(err, &fe) {
		return "  " + formatter.Failure(describeError(err))
	}
	lines := make([]string, 0, len(fe))
	for _, f := range fe.Fields() {
		lines = append(lines, "  "+formatter.Failure(fe[f]))
	}
	return strings.Join(lines, "\n")
}
