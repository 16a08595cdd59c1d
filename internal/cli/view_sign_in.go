package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/tradieone/internal/cli/formatter"
	"github.com/alexanderramin/tradieone/internal/form"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

type authMode int

const (
	modeSignIn authMode = iota
	modeRegister
	modeForgot
)

// authDoneMsg reports the result of a sign-in, registration or reset
// request.
type authDoneMsg struct {
	mode authMode
	err  error
}

// signInView is shown until a session exists. It also hosts the
// registration and password reset forms.
type signInView struct {
	state *SharedState
	mode  authMode

	signIn   form.SignIn
	register form.Register
	forgot   form.ForgotPassword

	form    *huh.Form
	busy    bool
	err     error
	message string
}

func newSignInView(state *SharedState) *signInView {
	v := &signInView{state: state}
	if email, err := state.App.Auth.RememberedEmail(context.Background()); err == nil && email != "" {
		v.signIn.Email = email
		v.signIn.Remember = true
	}
	v.form = v.buildForm()
	return v
}

func (v *signInView) ID() ViewID { return ViewSignIn }

func (v *signInView) Title() string {
	switch v.mode {
	case modeRegister:
		return "Create account"
	case modeForgot:
		return "Reset password"
	}
	return "Sign in"
}

func (v *signInView) ShortHelp() []key.Binding {
	if v.mode != modeSignIn {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to sign in")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "create account")),
		key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "forgot password")),
	}
}

func (v *signInView) buildForm() *huh.Form {
	email := func(value *string) *huh.Input {
		return huh.NewInput().Title("Email").Value(value).Validate(form.Rule(&form.SignIn{}, "email"))
	}
	password := func(title string, value *string) *huh.Input {
		return huh.NewInput().Title(title).EchoMode(huh.EchoModePassword).Value(value)
	}

	var group *huh.Group
	switch v.mode {
	case modeRegister:
		group = huh.NewGroup(
			email(&v.register.Email),
			password("Password", &v.register.Password),
			password("Confirm password", &v.register.ConfirmPassword),
		)
	case modeForgot:
		group = huh.NewGroup(email(&v.forgot.Email))
	default:
		group = huh.NewGroup(
			email(&v.signIn.Email),
			password("Password", &v.signIn.Password),
			huh.NewConfirm().Title("Remember me").Value(&v.signIn.Remember),
		)
	}
	return huh.NewForm(group).WithTheme(tradieHuhTheme()).WithShowHelp(false)
}

func (v *signInView) switchMode(mode authMode) tea.Cmd {
	v.mode = mode
	v.err = nil
	v.form = v.buildForm()
	return v.form.Init()
}

func (v *signInView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *signInView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		return v.handleDone(msg)

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch {
		case msg.Type == tea.KeyCtrlR && v.mode == modeSignIn:
			v.message = ""
			v.register.Email = v.signIn.Email
			return v, v.switchMode(modeRegister)
		case msg.Type == tea.KeyCtrlF && v.mode == modeSignIn:
			v.message = ""
			v.forgot.Email = v.signIn.Email
			return v, v.switchMode(modeForgot)
		case msg.Type == tea.KeyEsc && v.mode != modeSignIn:
			v.message = ""
			return v, v.switchMode(modeSignIn)
		}
	}

	updated, cmd := v.form.Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State == huh.StateCompleted {
		v.busy = true
		v.err = nil
		return v, v.submit()
	}
	return v, cmd
}

func (v *signInView) submit() tea.Cmd {
	auth, mode := v.state.App.Auth, v.mode
	signIn, register, forgot := v.signIn, v.register, v.forgot
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch mode {
		case modeRegister:
			err = auth.Register(ctx, &register)
		case modeForgot:
			err = auth.ForgotPassword(ctx, &forgot)
		default:
			err = auth.SignIn(ctx, &signIn)
		}
		return authDoneMsg{mode: mode, err: err}
	}
}

func (v *signInView) handleDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	v.busy = false
	if msg.err != nil {
		v.err = msg.err
		v.signIn.Password = ""
		v.form = v.buildForm()
		return v, v.form.Init()
	}

	switch msg.mode {
	case modeRegister:
		v.signIn.Email = v.register.Email
		v.register = form.Register{}
		v.message = "Account created. Sign in to continue."
		return v, v.switchMode(modeSignIn)
	case modeForgot:
		v.message = "If the account exists, a reset link is on its way."
		return v, v.switchMode(modeSignIn)
	}

	v.state.refreshSession(context.Background())
	v.state.App.logger().Info("signed in from the TUI")
	return v, resetViews(newDashboardView(v.state))
}

func (v *signInView) View() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.Header("TradieOne") + formatter.Dim(" · "+v.Title()) + "\n\n")
	if v.message != "" {
		b.WriteString("  " + formatter.Success(v.message) + "\n\n")
	}
	if v.err != nil {
		b.WriteString(renderFormError(v.err) + "\n\n")
	}
	if v.busy {
		b.WriteString("  " + formatter.Dim("Please wait...") + "\n")
		return b.String()
	}
	b.WriteString(v.form.View())
	return b.String()
}
