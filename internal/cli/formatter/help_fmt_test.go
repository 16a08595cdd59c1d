package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatHelp(t *testing.T) {
	out := FormatHelp()
	assert.Contains(t, out, "COMMANDS")
	assert.Contains(t, out, "KEYS")
	assert.Contains(t, out, "jobs export --xlsx f.xlsx")
	assert.Contains(t, out, "exit / quit")
}

func TestPadTo(t *testing.T) {
	assert.Equal(t, "ab  ", padTo("ab", 4))
	assert.Equal(t, "abcdef", padTo("abcdef", 4))
}
