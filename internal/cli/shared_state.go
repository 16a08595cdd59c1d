package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/tradieone/internal/debounce"
	tea "github.com/charmbracelet/bubbletea"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Email of the signed-in user, shown in the header.
	SignedInAs string

	// Terminal dimensions
	Width  int
	Height int

	// HistoryPath is where command bar history is kept. Empty keeps it in
	// memory only.
	HistoryPath string

	// tick schedules the end of a search quiet period.
	tick func(time.Duration, debounce.Token) tea.Cmd
}

func newSharedState(app *App) *SharedState {
	return &SharedState{App: app, HistoryPath: app.HistoryPath, tick: debounce.Tick}
}

// refreshSession reloads the signed-in email from the session store.
func (s *SharedState) refreshSession(ctx context.Context) bool {
	sess, err := s.App.Auth.Session(ctx)
	if err != nil {
		s.SignedInAs = ""
		return false
	}
	s.SignedInAs = sess.Email
	return true
}

// scheduleSearch starts the quiet period for token t.
func (s *SharedState) scheduleSearch(t debounce.Token) tea.Cmd {
	return s.tick(s.App.SearchDebounce, t)
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and command bar (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
