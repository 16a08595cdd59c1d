package cli

import (
	"fmt"

	"github.com/alexanderramin/tradieone/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	output := newOutputFlag()

	cmd := &cobra.Command{
		Use:     "stats",
		Aliases: []string{"dashboard"},
		Short:   "Show dashboard figures",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := formatter.StartSpinner(cmd.ErrOrStderr(), app.interactive(), "Loading dashboard...")
			d, err := app.Stats.Dashboard(commandContext(cmd))
			stop()
			if err != nil {
				return err
			}

			if output.value != outputTable {
				counts := make(map[string]any, len(d.Counts))
				for k, n := range d.Counts {
					counts[string(k)] = n
				}
				return encode(cmd.OutOrStdout(), output.value, map[string]any{
					"clients":        d.Clients,
					"activeProjects": d.ActiveProjects,
					"monthlyRevenue": d.MonthlyRevenue.String(),
					"counts":         counts,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDashboard(d.Summary, d.Counts))
			return nil
		},
	}

	cmd.Flags().VarP(output, "output", "o", "Output format (table|json|yaml)")
	return cmd
}
