package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/tradieone/internal/cli/formatter"
	"github.com/alexanderramin/tradieone/internal/form"
	"github.com/alexanderramin/tradieone/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// readSecret returns flagValue when set. Otherwise it prompts on a terminal
// or reads one line from stdin.
func readSecret(cmd *cobra.Command, app *App, title, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if app.interactive() {
		var v string
		err := huh.NewInput().
			Title(title).
			EchoMode(huh.EchoModePassword).
			Value(&v).
			WithTheme(tradieHuhTheme()).
			Run()
		return v, err
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(title), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLoginCmd(app *App) *cobra.Command {
	var email, password string
	var remember bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			f := &form.SignIn{Email: email, Remember: remember}
			if f.Email == "" {
				remembered, err := app.Auth.RememberedEmail(ctx)
				if err != nil {
					return err
				}
				f.Email = remembered
				if !cmd.Flags().Changed("remember") && remembered != "" {
					f.Remember = true
				}
			}
			pw, err := readSecret(cmd, app, "Password", password)
			if err != nil {
				return err
			}
			f.Password = pw

			stop := formatter.StartSpinner(cmd.ErrOrStderr(), app.interactive(), "Signing in...")
			err = app.Auth.SignIn(ctx, f)
			stop()
			if err != nil {
				return err
			}
			app.logger().Info("signed in")
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Signed in as "+f.Email))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Email address (defaults to the remembered one)")
	cmd.Flags().StringVar(&password, "password", "", "Password (read from stdin when omitted)")
	cmd.Flags().BoolVar(&remember, "remember", false, "Remember the email for next time")
	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var email, password, confirm string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readSecret(cmd, app, "Password", password)
			if err != nil {
				return err
			}
			if confirm == "" && app.interactive() {
				if confirm, err = readSecret(cmd, app, "Confirm password", ""); err != nil {
					return err
				}
			}
			f := &form.Register{Email: email, Password: pw, ConfirmPassword: confirm}
			if err := app.Auth.Register(commandContext(cmd), f); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Account created. Run `tradie login` to sign in."))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (read from stdin when omitted)")
	cmd.Flags().StringVar(&confirm, "confirm", "", "Repeat the password")
	return cmd
}

func newForgotPasswordCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password reset email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.ForgotPassword(commandContext(cmd), &form.ForgotPassword{Email: email}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("If the account exists, a reset link is on its way to "+email))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Email address")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.SignOut(commandContext(cmd)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Signed out"))
			return nil
		},
	}
}

func newWhoAmICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.Auth.Session(commandContext(cmd))
			if errors.Is(err, service.ErrNotSignedIn) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Not signed in."))
				return nil
			}
			if err != nil {
				return err
			}
			line := "Signed in as " + formatter.Bold(sess.Email)
			if !sess.UpdatedAt.IsZero() {
				line += formatter.Dim(" since " + sess.UpdatedAt.Local().Format("Jan 2, 2006 15:04"))
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}
}
