package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/tradieone/internal/cli/formatter"
	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/alexanderramin/tradieone/internal/export"
	"github.com/alexanderramin/tradieone/internal/form"
	"github.com/alexanderramin/tradieone/internal/normalize"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

const defaultExportPageSize = 100

func newEntityCmd(app *App, kind domain.Kind) *cobra.Command {
	cmd := &cobra.Command{
		Use:     string(kind),
		Aliases: []string{kind.Singular()},
		Short:   "Manage " + string(kind),
	}

	cmd.AddCommand(
		newEntityListCmd(app, kind),
		newEntityGetCmd(app, kind),
		newEntityAddCmd(app, kind),
		newEntityUpdateCmd(app, kind),
		newEntityDeleteCmd(app, kind),
		newEntityExportCmd(app, kind),
	)
	return cmd
}

// resolveID accepts a numeric id as is and resolves anything else by name.
func resolveID(ctx context.Context, app *App, kind domain.Kind, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind.Singular())
	}
	if _, err := strconv.Atoi(input); err == nil {
		return input, nil
	}
	rec, err := app.Records.Resolve(ctx, kind, input)
	if err != nil {
		return "", err
	}
	return rec.ID(), nil
}

func newEntityListCmd(app *App, kind domain.Kind) *cobra.Command {
	var (
		search string
		page   int
		size   int
	)
	output := newOutputFlag()

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List " + string(kind),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := domain.ListOptions{PageNumber: page, PageSize: size, Keyword: strings.TrimSpace(search)}.
				WithDefaults(app.PageSize)

			stop := formatter.StartSpinner(cmd.ErrOrStderr(), app.interactive(), "Loading "+string(kind)+"...")
			result, err := app.Records.List(commandContext(cmd), kind, opts)
			stop()
			if err != nil {
				return err
			}

			if output.value != outputTable {
				return encode(cmd.OutOrStdout(), output.value, map[string]any{
					"items":      result.Items,
					"totalCount": result.Total(),
					"pageNumber": opts.PageNumber,
					"pageSize":   opts.PageSize,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRecordList(kind, result, opts))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Keyword filter")
	cmd.Flags().IntVar(&page, "page", domain.DefaultPageNumber, "Page number")
	cmd.Flags().IntVar(&size, "size", 0, "Page size (defaults to TRADIE_PAGE_SIZE)")
	cmd.Flags().VarP(output, "output", "o", "Output format (table|json|yaml)")
	return cmd
}

func newEntityGetCmd(app *App, kind domain.Kind) *cobra.Command {
	output := newOutputFlag()

	cmd := &cobra.Command{
		Use:     "get ID",
		Aliases: []string{"show"},
		Short:   "Show one " + kind.Singular(),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			id, err := resolveID(ctx, app, kind, args[0])
			if err != nil {
				return err
			}
			rec, err := app.Records.Get(ctx, kind, id)
			if err != nil {
				return err
			}
			if output.value != outputTable {
				return encode(cmd.OutOrStdout(), output.value, rec)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRecordDetail(kind, rec))
			return nil
		},
	}

	cmd.Flags().VarP(output, "output", "o", "Output format (table|json|yaml)")
	return cmd
}

func newEntityAddCmd(app *App, kind domain.Kind) *cobra.Command {
	spec := entitySpecs[kind]
	var flags *fieldFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a " + kind.Singular(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			f := spec.blank()
			if err := flags.apply(ctx, app, cmd, f); err != nil {
				return err
			}
			rec, err := app.Records.Save(ctx, kind, "", f)
			if err != nil {
				return err
			}
			msg := "Created " + kind.Singular()
			if rec != nil && rec.ID() != "" {
				msg += " #" + rec.ID()
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(msg))
			return nil
		},
	}

	flags = bindFieldFlags(cmd, spec)
	return cmd
}

func newEntityUpdateCmd(app *App, kind domain.Kind) *cobra.Command {
	spec := entitySpecs[kind]
	var flags *fieldFlags

	cmd := &cobra.Command{
		Use:     "update ID",
		Aliases: []string{"edit"},
		Short:   "Change fields of a " + kind.Singular(),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !flags.anyChanged(cmd) {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}
			ctx := commandContext(cmd)
			id, err := resolveID(ctx, app, kind, args[0])
			if err != nil {
				return err
			}
			rec, err := app.Records.Get(ctx, kind, id)
			if err != nil {
				return err
			}
			f := spec.fromRecord(rec)
			if err := flags.apply(ctx, app, cmd, f); err != nil {
				return err
			}
			if _, err := app.Records.Save(ctx, kind, id, f); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Updated %s #%s", kind.Singular(), id)))
			return nil
		},
	}

	flags = bindFieldFlags(cmd, spec)
	return cmd
}

func newEntityDeleteCmd(app *App, kind domain.Kind) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a " + kind.Singular(),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			id, err := resolveID(ctx, app, kind, args[0])
			if err != nil {
				return err
			}

			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete %s #%s without --yes", kind.Singular(), id)
				}
				confirmed := false
				err := huh.NewConfirm().
					Title(fmt.Sprintf("Delete %s #%s?", kind.Singular(), id)).
					Affirmative("Delete").
					Negative("Cancel").
					Value(&confirmed).
					WithTheme(tradieHuhTheme()).
					Run()
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}

			if err := app.Records.Delete(ctx, kind, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Deleted %s #%s", kind.Singular(), id)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	return cmd
}

func newEntityExportCmd(app *App, kind domain.Kind) *cobra.Command {
	var path, search string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every " + kind.Singular() + " to a spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			size := app.ExportPageSize
			if size <= 0 {
				size = defaultExportPageSize
			}

			stop := formatter.StartSpinner(cmd.ErrOrStderr(), app.interactive(), "Exporting "+string(kind)+"...")
			rows, err := collectRows(ctx, app, kind, strings.TrimSpace(search), size)
			stop()
			if err != nil {
				return err
			}

			sheet := export.Sheet{Name: kind.Label(), Headers: formatter.Headers(kind), Rows: rows}
			if err := export.SaveXLSX(path, sheet); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Exported %d %s to %s", len(rows), kind, path)))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "xlsx", "", "Output .xlsx file")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Keyword filter")
	_ = cmd.MarkFlagRequired("xlsx")
	return cmd
}

// collectRows pages through the list until the backend runs out.
func collectRows(ctx context.Context, app *App, kind domain.Kind, keyword string, size int) ([][]string, error) {
	var rows [][]string
	for page := 1; ; page++ {
		result, err := app.Records.List(ctx, kind, domain.ListOptions{PageNumber: page, PageSize: size, Keyword: keyword})
		if err != nil {
			return nil, err
		}
		for _, rec := range result.Items {
			rows = append(rows, formatter.Row(kind, rec))
		}
		if len(result.Items) < size || len(rows) >= result.Total() {
			return rows, nil
		}
	}
}

// fieldFlags holds the per-field flags of add and update.
type fieldFlags struct {
	spec   entitySpec
	values map[string]*string
	lists  map[string]*[]string
}

func bindFieldFlags(cmd *cobra.Command, spec entitySpec) *fieldFlags {
	ff := &fieldFlags{
		spec:   spec,
		values: make(map[string]*string),
		lists:  make(map[string]*[]string),
	}
	fs := cmd.Flags()
	for _, f := range spec.fields {
		if f.hidden != nil {
			continue
		}
		switch f.typ {
		case fieldRefs:
			list := new([]string)
			fs.StringSliceVar(list, f.flag, nil, f.title+" (ids or names, comma separated)")
			ff.lists[f.name] = list
		case fieldChoice:
			ev := newEnumValue("string", "", f.options...)
			fs.Var(ev, f.flag, fmt.Sprintf("%s (%s)", f.title, strings.Join(f.options, "|")))
			ff.values[f.name] = &ev.value
		default:
			usage := f.title
			if f.typ == fieldRef {
				usage += " (id or name)"
			}
			ff.values[f.name] = fs.String(f.flag, "", usage)
		}
	}
	return ff
}

func (ff *fieldFlags) anyChanged(cmd *cobra.Command) bool {
	for _, f := range ff.spec.fields {
		if f.hidden == nil && cmd.Flags().Changed(f.flag) {
			return true
		}
	}
	return false
}

// apply copies the flags that were set onto target, resolving references
// by id or name. Fields are applied in declaration order, so state is set
// before city.
func (ff *fieldFlags) apply(ctx context.Context, app *App, cmd *cobra.Command, target form.Form) error {
	for _, f := range ff.spec.fields {
		if f.hidden != nil || !cmd.Flags().Changed(f.flag) {
			continue
		}

		if f.typ == fieldRefs {
			ids := make([]string, 0, len(*ff.lists[f.name]))
			for _, q := range *ff.lists[f.name] {
				rec, err := app.Records.Resolve(ctx, f.ref, q)
				if err != nil {
					return fmt.Errorf("--%s: %w", f.flag, err)
				}
				ids = append(ids, rec.ID())
			}
			*f.list(target) = ids
			continue
		}

		v := strings.TrimSpace(*ff.values[f.name])
		switch f.typ {
		case fieldRef:
			if v == "" {
				*f.str(target) = ""
				continue
			}
			rec, err := app.Records.Resolve(ctx, f.ref, v)
			if err != nil {
				return fmt.Errorf("--%s: %w", f.flag, err)
			}
			if job, ok := target.(*form.Job); ok && f.ref == domain.KindProjects && !form.ProjectMatchesClient(rec, job.ClientID) {
				return fmt.Errorf("--%s: project %q belongs to another client", f.flag, domain.DisplayName(f.ref, rec))
			}
			*f.str(target) = rec.ID()
		case fieldState:
			*f.str(target) = normalize.State(v)
		case fieldCity:
			ff.setCity(f, target, v)
		default:
			*f.str(target) = *ff.values[f.name]
		}
	}
	return nil
}

// setCity picks the listed city for the current state, falling back to the
// free-text input for anything else.
func (ff *fieldFlags) setCity(f fieldSpec, target form.Form, v string) {
	other, hasOther := ff.spec.field("cityOther")
	state := ""
	if sf, ok := ff.spec.field("state"); ok {
		state = *sf.str(target)
	}
	if !hasOther || normalize.KnownCity(state, v) {
		*f.str(target) = v
		if hasOther {
			*other.str(target) = ""
		}
		return
	}
	*f.str(target) = normalize.OtherCity
	*other.str(target) = v
}
