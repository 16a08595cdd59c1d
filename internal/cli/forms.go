package cli

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/alexanderramin/tradieone/internal/form"
	"github.com/alexanderramin/tradieone/internal/normalize"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"golang.org/x/sync/errgroup"
)

// lookups holds the records offered by reference selects, per kind.
type lookups map[domain.Kind][]domain.Record

// loadLookups fetches the lookup page of every kind concurrently.
func loadLookups(ctx context.Context, app *App, kinds []domain.Kind) (lookups, error) {
	out := make(lookups, len(kinds))
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for _, k := range kinds {
		g.Go(func() error {
			page, err := app.Records.Lookup(ctx, k)
			if err != nil {
				return fmt.Errorf("load %s: %w", k, err)
			}
			mu.Lock()
			out[k] = page.Items
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// openRecordForm loads the lookups a form needs and pushes it. rec is nil
// when adding.
func openRecordForm(state *SharedState, kind domain.Kind, rec domain.Record) tea.Cmd {
	spec := entitySpecs[kind]
	return func() tea.Msg {
		lk, err := loadLookups(context.Background(), state.App, spec.refKinds())
		if err != nil {
			return cmdOutputMsg{output: errorOutput(err)}
		}
		target, id := spec.blank(), ""
		if rec != nil {
			target, id = spec.fromRecord(rec), rec.ID()
		}
		return pushViewMsg{view: newRecordFormView(state, spec, id, target, lk)}
	}
}

// buildRecordForm lays the fields of spec out as huh groups bound to
// target. Field values survive a rebuild because they live in target.
func buildRecordForm(spec entitySpec, target form.Form, lk lookups) *huh.Form {
	var (
		order  []string
		fields = make(map[string][]huh.Field)
		hidden = make(map[string]func(form.Form) bool)
	)
	for _, f := range spec.fields {
		if _, ok := fields[f.group]; !ok {
			order = append(order, f.group)
		}
		fields[f.group] = append(fields[f.group], buildField(spec, f, target, lk))
		if f.hidden != nil {
			hidden[f.group] = f.hidden
		}
	}

	groups := make([]*huh.Group, 0, len(order))
	for _, name := range order {
		g := huh.NewGroup(fields[name]...).Title(name)
		if hide := hidden[name]; hide != nil {
			g = g.WithHideFunc(func() bool { return hide(target) })
		}
		groups = append(groups, g)
	}
	return huh.NewForm(groups...).
		WithTheme(tradieHuhTheme()).
		WithShowHelp(false)
}

func buildField(spec entitySpec, f fieldSpec, target form.Form, lk lookups) huh.Field {
	rule := form.Rule(target, f.name)

	switch f.typ {
	case fieldLong:
		return huh.NewText().Title(f.title).Value(f.str(target)).Validate(rule).Lines(3)

	case fieldChoice, fieldState:
		value := f.str(target)
		return huh.NewSelect[string]().
			Title(f.title).
			Options(huh.NewOptions(withCurrent(f.options, *value)...)...).
			Value(value).
			Validate(rule)

	case fieldCity:
		value := f.str(target)
		state, _ := spec.field("state")
		statePtr := state.str(target)
		return huh.NewSelect[string]().
			Title(f.title).
			OptionsFunc(func() []huh.Option[string] {
				return huh.NewOptions(withCurrent(normalize.Cities(*statePtr), *value)...)
			}, statePtr).
			Value(value).
			Validate(rule)

	case fieldRef:
		return refSelect(spec, f, target, lk)

	case fieldRefs:
		return huh.NewMultiSelect[string]().
			Title(f.title).
			Options(recordOptions(f.ref, lk[f.ref], nil)...).
			Value(f.list(target)).
			Filterable(true)
	}

	return huh.NewInput().Title(f.title).Value(f.str(target)).Validate(rule)
}

// refSelect picks one record of f.ref. Optional references get a "(none)"
// entry. The job project select only offers projects of the chosen client.
func refSelect(spec entitySpec, f fieldSpec, target form.Form, lk lookups) huh.Field {
	rule := form.Rule(target, f.name)
	sel := huh.NewSelect[string]().Title(f.title).Value(f.str(target)).Validate(rule)

	options := func(keep func(domain.Record) bool) []huh.Option[string] {
		opts := recordOptions(f.ref, lk[f.ref], keep)
		if rule("") == nil {
			opts = append([]huh.Option[string]{huh.NewOption("(none)", "")}, opts...)
		}
		return opts
	}

	client, ok := spec.field("clientId")
	if spec.kind != domain.KindJobs || f.ref != domain.KindProjects || !ok {
		return sel.Options(options(nil)...)
	}
	clientID := client.str(target)
	return sel.OptionsFunc(func() []huh.Option[string] {
		return options(func(r domain.Record) bool { return form.ProjectMatchesClient(r, *clientID) })
	}, clientID)
}

func recordOptions(kind domain.Kind, recs []domain.Record, keep func(domain.Record) bool) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(recs))
	for _, r := range recs {
		if keep != nil && !keep(r) {
			continue
		}
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (#%s)", domain.DisplayName(kind, r), r.ID()), r.ID()))
	}
	return opts
}

// withCurrent keeps a value the backend returned even when it is not one of
// the offered options, so opening and saving a form does not change it.
func withCurrent(options []string, current string) []string {
	if current == "" || slices.Contains(options, current) {
		return options
	}
	return append(slices.Clone(options), current)
}
