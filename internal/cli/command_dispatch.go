package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/tradieone/internal/cli/formatter"
	"github.com/alexanderramin/tradieone/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// executeCommand dispatches a text command and returns a tea.Cmd.
// Builtins navigate the TUI; everything else runs through the cobra tree
// and its output is shown in the content area.
func (c *commandBar) executeCommand(input string) tea.Cmd {
	parts, err := splitShellArgs(input)
	if err != nil {
		return outputCmd(formatter.Failure(err.Error()))
	}
	if len(parts) == 0 {
		return nil
	}
	// A leading "tradie" is habit from the shell.
	if strings.EqualFold(parts[0], "tradie") {
		parts = parts[1:]
		if len(parts) == 0 {
			return nil
		}
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "home":
		return resetViews(newDashboardView(c.state))
	case "help":
		if len(args) == 0 {
			return outputCmd(helpText())
		}
	case "clear":
		return nil
	case "exit", "quit":
		return func() tea.Msg { return quitMsg{} }
	case "login":
		if len(args) == 0 {
			return resetViews(newSignInView(c.state))
		}
	case "logout":
		return c.cmdLogout()
	}

	if kind, err := domain.ParseKind(cmd); err == nil && len(args) == 0 {
		return pushView(newRecordListView(c.state, kind))
	}

	return c.cmdCobra(parts)
}

func (c *commandBar) cmdLogout() tea.Cmd {
	state := c.state
	return func() tea.Msg {
		if err := state.App.Auth.SignOut(context.Background()); err != nil {
			return cmdOutputMsg{output: errorOutput(err)}
		}
		state.SignedInAs = ""
		return resetViewsMsg{view: newSignInView(state)}
	}
}

// cmdCobra runs parts through the cobra tree off the UI loop. Commands that
// change records also refresh the views on the stack.
func (c *commandBar) cmdCobra(parts []string) tea.Cmd {
	app := c.state.App
	mutating := mutates(parts)
	return tea.Sequence(
		loadingCmd("Running "+parts[0]+"..."),
		func() tea.Msg {
			out := captureCobraOutput(app, parts)
			app.logger().Debug("command finished", zap.String("command", parts[0]))
			if out == "" {
				out = formatter.Dim("(no output)")
			}
			if !mutating {
				return cmdOutputMsg{output: out}
			}
			return tea.BatchMsg{outputCmd(out), refreshViews}
		},
	)
}

// mutates reports whether parts names a command that writes records.
func mutates(parts []string) bool {
	if len(parts) < 2 {
		return false
	}
	sub := strings.ToLower(parts[1])
	if _, err := domain.ParseKind(parts[0]); err == nil {
		return sub == "add" || sub == "update" || sub == "delete"
	}
	return strings.EqualFold(parts[0], "profile") && sub == "update"
}

func helpText() string {
	return formatter.FormatHelp()
}

// splitShellArgs splits a command line on whitespace, honouring single and
// double quotes and backslash escapes.
func splitShellArgs(input string) ([]string, error) {
	var parts []string
	var cur strings.Builder

	inSingle := false
	inDouble := false
	escaped := false
	tokenStarted := false

	flush := func() {
		parts = append(parts, cur.String())
		cur.Reset()
		tokenStarted = false
	}

	for _, r := range input {
		if escaped {
			cur.WriteRune(r)
			tokenStarted = true
			escaped = false
			continue
		}

		if inSingle {
			if r == '\'' {
				inSingle = false
			} else {
				cur.WriteRune(r)
			}
			tokenStarted = true
			continue
		}

		if inDouble {
			switch r {
			case '"':
				inDouble = false
			case '\\':
				escaped = true
			default:
				cur.WriteRune(r)
			}
			tokenStarted = true
			continue
		}

		switch r {
		case '\\':
			escaped = true
			tokenStarted = true
		case '\'':
			inSingle = true
			tokenStarted = true
		case '"':
			inDouble = true
			tokenStarted = true
		case ' ', '\t', '\n', '\r':
			if tokenStarted {
				flush()
			}
		default:
			cur.WriteRune(r)
			tokenStarted = true
		}
	}

	if escaped {
		return nil, fmt.Errorf("unterminated escape sequence")
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quoted string")
	}
	if tokenStarted {
		flush()
	}

	return parts, nil
}
