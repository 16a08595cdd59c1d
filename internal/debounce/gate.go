// Package debounce delays search queries until typing pauses. A Gate hands
// out a token per keystroke; only the token still current when the quiet
// period ends is allowed to reach the backend.
package debounce

import (
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDelay is the quiet period used when none is configured.
const DefaultDelay = 300 * time.Millisecond

// Token identifies one input change. Tokens increase monotonically and are
// never reused across Gates, so a SettledMsg cannot be mistaken for another
// Gate's.
type Token uint64

var lastToken atomic.Uint64

// Gate tracks the latest input value. The zero value is ready to use.
type Gate struct {
	mu    sync.Mutex
	token Token
	value string
}

// Bump records a new input value and supersedes every earlier token.
func (g *Gate) Bump(value string) Token {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = Token(lastToken.Add(1))
	g.value = value
	return g.token
}

// Settled reports the value recorded with t, if t is still the latest token.
func (g *Gate) Settled(t Token) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if t != g.token {
		return "", false
	}
	return g.value, true
}

// Latest returns the current token and its value.
func (g *Gate) Latest() (Token, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token, g.value
}

// SettledMsg is delivered once the quiet period following Token ends.
// Receivers must check the token with Gate.Settled before acting.
type SettledMsg struct {
	Token Token
}

// Tick waits d and then reports t. A non-positive d reports immediately.
func Tick(d time.Duration, t Token) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return SettledMsg{Token: t} }
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return SettledMsg{Token: t}
	})
}
