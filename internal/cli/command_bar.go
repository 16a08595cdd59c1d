package cli

import (
	"strings"

	"github.com/alexanderramin/tradieone/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// commandBar is the persistent text input at the bottom of the TUI.
// It handles command entry, autocomplete suggestions, and history navigation.
type commandBar struct {
	input   textinput.Model
	state   *SharedState
	spec    *CommandSpec
	focused bool

	// history
	history    []string
	historyIdx int
}

func newCommandBar(state *SharedState) commandBar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 500
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	hist := loadHistoryFromPath(state.HistoryPath)

	return commandBar{
		input:      ti,
		state:      state,
		spec:       commandSpecFrom(NewRootCmd(state.App)),
		history:    hist,
		historyIdx: len(hist),
	}
}

// Focus gives focus to the command bar.
func (c *commandBar) Focus() {
	c.focused = true
	c.input.Focus()
}

// Blur removes focus from the command bar.
func (c *commandBar) Blur() {
	c.focused = false
	c.input.Blur()
}

// Focused returns whether the command bar has focus.
func (c *commandBar) Focused() bool {
	return c.focused
}

// SetWidth updates the input width for terminal resizing.
func (c *commandBar) SetWidth(w int) {
	c.input.Width = w - len(promptPlain) - 1
}

// Update handles key messages when the command bar is focused.
// Returns a tea.Cmd that may include navigation or output messages.
func (c *commandBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(c.input.Value())
		c.input.Reset()
		c.input.SetSuggestions(nil)
		if input == "" {
			return nil
		}
		c.addHistory(input)
		c.Blur()
		return c.executeCommand(input)

	case tea.KeyUp:
		c.historyUp()
		return nil

	case tea.KeyDown:
		c.historyDown()
		return nil

	case tea.KeyEsc:
		c.Blur()
		return nil

	default:
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		c.updateSuggestions()
		return cmd
	}
}

// UpdateNonKey handles non-key messages (e.g., cursor blink).
func (c *commandBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// View renders the command bar.
func (c *commandBar) View() string {
	if !c.focused {
		return promptPrefix() + formatter.Dim("press : to type a command")
	}
	return promptPrefix() + c.input.View()
}

const promptPlain = "tradie > "

func promptPrefix() string {
	return formatter.StyleAccent.Render("tradie") + " " + formatter.Dim("❯") + " "
}

// ── history ──────────────────────────────────────────────────────────────────

func (c *commandBar) addHistory(line string) {
	if line == "" || !recordable(line) {
		return
	}
	c.history = append(c.history, line)
	c.historyIdx = len(c.history)
	appendHistoryToPath(c.state.HistoryPath, line)
}

func (c *commandBar) historyUp() {
	if c.historyIdx > 0 {
		c.historyIdx--
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	}
}

func (c *commandBar) historyDown() {
	if c.historyIdx < len(c.history)-1 {
		c.historyIdx++
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	} else {
		c.historyIdx = len(c.history)
		c.input.SetValue("")
	}
}

// ── suggestions ──────────────────────────────────────────────────────────────

// builtinCommands are handled by the TUI itself rather than cobra.
var builtinCommands = []string{"home", "help", "clear", "exit", "quit"}

func (c *commandBar) updateSuggestions() {
	c.input.SetSuggestions(c.suggestionsFor(c.input.Value()))
}

// suggestionsFor completes the first word from the command names and the
// second from the subcommands of the first. Suggestions are full lines.
func (c *commandBar) suggestionsFor(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.Fields(text)
	trailingSpace := strings.HasSuffix(text, " ")

	if len(parts) == 1 && !trailingSpace {
		return filterSuggestions(append(c.spec.TopLevel(), builtinCommands...), parts[0])
	}
	if len(parts) > 2 || (len(parts) == 2 && trailingSpace) {
		return nil
	}

	entry := c.spec.FindCommand(strings.ToLower(parts[0]))
	if entry == nil {
		return nil
	}
	prefix := ""
	if len(parts) == 2 {
		prefix = parts[1]
	}
	subs := filterSuggestions(entry.Subcommands, prefix)
	out := make([]string, len(subs))
	for i, s := range subs {
		out[i] = parts[0] + " " + s
	}
	return out
}

// filterSuggestions returns items from pool that start with prefix (case-insensitive).
func filterSuggestions(pool []string, prefix string) []string {
	if prefix == "" {
		return pool
	}
	lp := strings.ToLower(prefix)
	var result []string
	for _, s := range pool {
		if strings.HasPrefix(strings.ToLower(s), lp) {
			result = append(result, s)
		}
	}
	return result
}
