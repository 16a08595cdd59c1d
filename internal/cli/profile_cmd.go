package cli

import (
	"fmt"

	"github.com/alexanderramin/tradieone/internal/cli/formatter"
	"github.com/alexanderramin/tradieone/internal/form"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your profile",
	}
	cmd.AddCommand(newProfileShowCmd(app), newProfileUpdateCmd(app))
	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	output := newOutputFlag()

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.Profile.Get(commandContext(cmd))
			if err != nil {
				return err
			}
			if output.value != outputTable {
				return encode(cmd.OutOrStdout(), output.value, rec)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(rec))
			return nil
		},
	}

	cmd.Flags().VarP(output, "output", "o", "Output format (table|json|yaml)")
	return cmd
}

func newProfileUpdateCmd(app *App) *cobra.Command {
	fields := []struct {
		flag  string
		usage string
		get   func(*form.Profile) *string
		value string
	}{
		{flag: "first-name", usage: "First name", get: func(f *form.Profile) *string { return &f.FirstName }},
		{flag: "last-name", usage: "Last name", get: func(f *form.Profile) *string { return &f.LastName }},
		{flag: "email", usage: "Email address", get: func(f *form.Profile) *string { return &f.Email }},
		{flag: "phone", usage: "Phone number", get: func(f *form.Profile) *string { return &f.Phone }},
		{flag: "company", usage: "Company name", get: func(f *form.Profile) *string { return &f.Company }},
	}

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			rec, err := app.Profile.Get(ctx)
			if err != nil {
				return err
			}
			f := form.ProfileFromRecord(rec)
			changed := false
			for _, fl := range fields {
				if cmd.Flags().Changed(fl.flag) {
					changed = true
					*fl.get(f) = fl.value
				}
			}
			if !changed {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}
			if err := app.Profile.Update(ctx, f); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Profile updated"))
			return nil
		},
	}

	for i := range fields {
		cmd.Flags().StringVar(&fields[i].value, fields[i].flag, "", fields[i].usage)
	}
	return cmd
}
