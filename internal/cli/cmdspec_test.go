package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandSpec_WalksCobraTree(t *testing.T) {
	spec := commandSpecFrom(NewRootCmd(&App{}))

	top := spec.TopLevel()
	for _, name := range []string{"login", "logout", "stats", "profile", "clients", "jobs", "employees", "contractors", "projects"} {
		assert.Contains(t, top, name)
	}

	require.NotNil(t, spec.FindCommand("clients list"))
	require.NotNil(t, spec.FindCommand("jobs export"))
	assert.Nil(t, spec.FindCommand("clients frobnicate"))
	assert.Nil(t, spec.FindCommand(""))
}

func TestCommandSpec_FindCommandByAlias(t *testing.T) {
	spec := commandSpecFrom(NewRootCmd(&App{}))

	c := spec.FindCommand("client")
	require.NotNil(t, c)
	assert.Equal(t, "clients", c.FullPath)
	assert.ElementsMatch(t, []string{"list", "get", "add", "update", "delete", "export"}, c.Subcommands)
}

func TestCommandSpec_IncludesFieldFlags(t *testing.T) {
	spec := commandSpecFrom(NewRootCmd(&App{}))

	assert.True(t, spec.ValidateFlag("jobs add", "title"))
	assert.True(t, spec.ValidateFlag("jobs add", "client"))
	assert.True(t, spec.ValidateFlag("jobs add", "employees"))
	assert.True(t, spec.ValidateFlag("jobs add", "address-line1"))
	assert.False(t, spec.ValidateFlag("jobs add", "city-other"))
	assert.True(t, spec.ValidateFlag("clients delete", "yes"))
	assert.False(t, spec.ValidateFlag("clients add", "nonexistent"))

	export := spec.FindCommand("clients export")
	require.NotNil(t, export)
	for _, f := range export.Flags {
		if f.Name == "xlsx" {
			assert.True(t, f.Required)
		}
	}
}

func TestCommandSpec_FuzzyMatch(t *testing.T) {
	spec := commandSpecFrom(NewRootCmd(&App{}))

	matches := spec.FuzzyMatch("clnts", 3)
	require.NotEmpty(t, matches)
	assert.Equal(t, "clients", matches[0].FullPath)

	matches = spec.FuzzyMatch("spreadsheet", 3)
	require.NotEmpty(t, matches)
	assert.Contains(t, matches[0].FullPath, "export")

	assert.Len(t, spec.FuzzyMatch("s", 2), 2)
	assert.Nil(t, spec.FuzzyMatch("  ", 3))
}
