package cli

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CommandSpec is a flat listing of the cobra tree, used by the command bar
// for suggestions and "did you mean" hints.
type CommandSpec struct {
	Commands []CommandEntry `json:"commands"`
}

// CommandEntry describes a single command or subcommand.
type CommandEntry struct {
	FullPath    string      `json:"full_path"`
	Short       string      `json:"short"`
	Aliases     []string    `json:"aliases,omitempty"`
	Flags       []FlagEntry `json:"flags,omitempty"`
	Subcommands []string    `json:"subcommands,omitempty"`
}

// FlagEntry describes a single flag on a command.
type FlagEntry struct {
	Name        string `json:"name"`
	Shorthand   string `json:"shorthand,omitempty"`
	Type        string `json:"type"`
	Default     string `json:"default,omitempty"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// commandSpecFrom walks root. Paths omit the root name, so "clients list"
// rather than "tradie clients list".
func commandSpecFrom(root *cobra.Command) *CommandSpec {
	spec := &CommandSpec{}
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		for _, sub := range c.Commands() {
			if sub.Hidden || !sub.IsAvailableCommand() {
				continue
			}
			spec.Commands = append(spec.Commands, entryFor(root, sub))
			walk(sub)
		}
	}
	walk(root)
	return spec
}

func entryFor(root, c *cobra.Command) CommandEntry {
	e := CommandEntry{
		FullPath: strings.TrimPrefix(c.CommandPath(), root.Name()+" "),
		Short:    c.Short,
		Aliases:  c.Aliases,
	}
	c.LocalFlags().VisitAll(func(f *pflag.Flag) {
		_, required := f.Annotations[cobra.BashCompOneRequiredFlag]
		e.Flags = append(e.Flags, FlagEntry{
			Name:        f.Name,
			Shorthand:   f.Shorthand,
			Type:        f.Value.Type(),
			Default:     f.DefValue,
			Description: f.Usage,
			Required:    required,
		})
	})
	for _, sub := range c.Commands() {
		if !sub.Hidden && sub.IsAvailableCommand() {
			e.Subcommands = append(e.Subcommands, sub.Name())
		}
	}
	return e
}

// TopLevel returns the names of the first-level commands.
func (spec *CommandSpec) TopLevel() []string {
	var out []string
	for _, c := range spec.Commands {
		if !strings.Contains(c.FullPath, " ") {
			out = append(out, c.FullPath)
		}
	}
	return out
}

// FindCommand returns the entry for path, matching aliases of the first
// word too, or nil.
func (spec *CommandSpec) FindCommand(path string) *CommandEntry {
	parts := strings.Fields(path)
	if len(parts) == 0 {
		return nil
	}
	for i := range spec.Commands {
		c := &spec.Commands[i]
		if c.FullPath == path {
			return c
		}
		if len(parts) == 1 && !strings.Contains(c.FullPath, " ") {
			for _, a := range c.Aliases {
				if a == parts[0] {
					return c
				}
			}
		}
	}
	return nil
}

// ValidateFlag checks that a flag exists for a given command path.
func (spec *CommandSpec) ValidateFlag(cmdPath, flagName string) bool {
	c := spec.FindCommand(cmdPath)
	if c == nil {
		return false
	}
	for _, f := range c.Flags {
		if f.Name == flagName {
			return true
		}
	}
	return false
}

// FuzzyMatch returns up to n commands whose path is a fuzzy match for
// query or whose path or description contains one of its words. Fuzzy
// path matches rank first, closest first.
func (spec *CommandSpec) FuzzyMatch(query string, n int) []CommandEntry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	paths := make([]string, len(spec.Commands))
	for i, c := range spec.Commands {
		paths[i] = c.FullPath
	}
	ranks := fuzzy.RankFindNormalizedFold(query, paths)
	sort.Sort(ranks)

	seen := make(map[int]bool)
	var result []CommandEntry
	add := func(i int) {
		if !seen[i] && len(result) < n {
			seen[i] = true
			result = append(result, spec.Commands[i])
		}
	}
	for _, r := range ranks {
		add(r.OriginalIndex)
	}
	terms := strings.Fields(query)
	for i, c := range spec.Commands {
		lowerPath, lowerShort := strings.ToLower(c.FullPath), strings.ToLower(c.Short)
		for _, term := range terms {
			if strings.Contains(lowerPath, term) || strings.Contains(lowerShort, term) {
				add(i)
				break
			}
		}
	}
	return result
}
