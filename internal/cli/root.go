package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/alexanderramin/tradieone/internal/form"
	"github.com/alexanderramin/tradieone/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds the services and settings shared by commands and the TUI.
type App struct {
	Records service.RecordService
	Auth    service.AuthService
	Profile service.ProfileService
	Stats   service.StatsService

	PageSize       int
	ExportPageSize int
	SearchDebounce time.Duration

	// HistoryPath keeps command bar history between runs. Empty keeps it
	// in memory.
	HistoryPath string

	Logger *zap.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// NewRootCmd creates the top-level "tradie" command. Run without a
// subcommand on a terminal it starts the TUI.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tradie",
		Short:         "Manage clients, jobs, employees, contractors and projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runTUI(app)
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newRegisterCmd(app),
		newForgotPasswordCmd(app),
		newLogoutCmd(app),
		newWhoAmICmd(app),
		newStatsCmd(app),
		newProfileCmd(app),
	)
	for _, kind := range domain.Kinds() {
		root.AddCommand(newEntityCmd(app, kind))
	}
	return root
}

func runTUI(app *App) error {
	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// commandContext bounds a command's requests; the api client applies the
// per-request timeout on top.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// describeError renders err for the terminal. Field errors are listed one
// per line.
func describeError(err error) string {
	var fe form.FieldErrors
	if errors.As(err, &fe) {
		msg := "Please fix the following:"
		for _, f := range fe.Fields() {
			msg += fmt.Sprintf("\n  %s: %s", f, fe[f])
		}
		return msg
	}
	if errors.Is(err, service.ErrNotSignedIn) {
		return "Not signed in. Run `tradie login` first."
	}
	return err.Error()
}

// PrintError writes err to w the way commands report failures.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error: "+describeError(err))
}
