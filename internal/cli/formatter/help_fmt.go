package formatter

import (
	"fmt"
	"strings"
)

// helpCategory groups commands under a section header for the help display.
type helpCategory struct {
	title    string
	commands [][]string
}

// renderHelpCategory renders a single category section with header and command rows.
func renderHelpCategory(cat helpCategory) string {
	var b strings.Builder
	b.WriteString("\n " + StyleHeader.Render(strings.ToUpper(cat.title)) + "\n")
	for _, c := range cat.commands {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			StyleGreen.Render(padTo(c[0], 26)),
			StyleDim.Render(c[1])))
	}
	return b.String()
}

func padTo(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

// FormatHelp renders the TUI key and command reference.
func FormatHelp() string {
	categories := []helpCategory{
		{
			title: "Keys",
			commands: [][]string{
				{"1-5 / enter", "Open a list from the dashboard"},
				{"/", "Search the current list"},
				{"n / p", "Next and previous page"},
				{"a", "Add a record"},
				{"e / d", "Edit or delete the selected record"},
				{"r", "Reload"},
				{"esc", "Back"},
				{":", "Type a command"},
				{"q / ctrl+c", "Quit"},
			},
		},
		{
			title: "Records",
			commands: [][]string{
				{"clients [list]", "Browse clients (also jobs, employees, ...)"},
				{"jobs get <id|name>", "Show one job"},
				{"jobs add --title ...", "Create a job from flags"},
				{"jobs update <id> ...", "Change the fields you pass"},
				{"jobs delete <id> --yes", "Delete a job"},
				{"jobs export --xlsx f.xlsx", "Write every job to a spreadsheet"},
			},
		},
		{
			title: "Account",
			commands: [][]string{
				{"stats", "Dashboard numbers"},
				{"profile show", "Your profile"},
				{"whoami", "Who is signed in"},
				{"login / logout", "Switch account"},
			},
		},
		{
			title: "Utilities",
			commands: [][]string{
				{"home", "Back to the dashboard"},
				{"help", "Show this reference"},
				{"clear", "Dismiss command output"},
				{"exit / quit", "Quit tradie"},
			},
		},
	}

	var b strings.Builder
	for _, cat := range categories {
		b.WriteString(renderHelpCategory(cat))
	}

	b.WriteString("\n" + StyleDim.Render(
		"Every tradie subcommand runs here without the tradie prefix.\n"+
			"Tab or ctrl+n/ctrl+p cycle suggestions."))

	return RenderBox("Commands", b.String())
}
