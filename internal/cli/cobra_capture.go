package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alexanderramin/tradieone/internal/cli/formatter"
)

// captureCobraOutput runs a command through the cobra tree and returns what
// it printed. The command runs against a non-interactive copy of app, so
// anything that would prompt fails with a flag hint instead of reading the
// terminal underneath the TUI.
func captureCobraOutput(app *App, args []string) string {
	quiet := *app
	quiet.IsInteractive = nil

	var buf bytes.Buffer
	root := NewRootCmd(&quiet)
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		if buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
			buf.WriteString("\n")
		}
		buf.WriteString(formatter.Failure(describeError(err)))
		if strings.Contains(err.Error(), "unknown command") && len(args) > 0 {
			if hint := suggestAlternatives(commandSpecFrom(root), args[0]); hint != "" {
				buf.WriteString("\n" + hint)
			}
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}

// suggestAlternatives returns fuzzy-matched command suggestions for an unrecognized input.
func suggestAlternatives(spec *CommandSpec, input string) string {
	matches := spec.FuzzyMatch(input, 3)
	if len(matches) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(formatter.Dim("Did you mean:"))
	for _, match := range matches {
		b.WriteString(fmt.Sprintf("\n  %s  %s",
			formatter.StyleGreen.Render(match.FullPath),
			formatter.Dim(match.Short),
		))
	}
	return b.String()
}
