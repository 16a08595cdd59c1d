package cli

import (
	"fmt"

	"github.com/alexanderramin/tradieone/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// outputPane shows command results in place of the active view until the
// next non-scroll key. Long output scrolls.
type outputPane struct {
	text string
	vp   viewport.Model
}

func newOutputPane() outputPane {
	vp := viewport.New(0, 0)
	// Letter keys stay free to dismiss the pane.
	vp.KeyMap = viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	return outputPane{vp: vp}
}

func (p *outputPane) active() bool { return p.text != "" }

func (p *outputPane) show(text string, width, height int) {
	p.text = text
	p.vp.Width = width
	p.vp.Height = height
	p.vp.SetContent(text)
	p.vp.GotoTop()
}

func (p *outputPane) clear() { p.text = "" }

func (p *outputPane) resize(width, height int) {
	p.vp.Width = width
	p.vp.Height = height
}

// scrolls reports whether msg moves the viewport rather than dismissing it.
func (p *outputPane) scrolls(msg tea.KeyMsg) bool {
	km := p.vp.KeyMap
	return key.Matches(msg, km.Up, km.Down, km.PageUp, km.PageDown, km.HalfPageUp, km.HalfPageDown)
}

func (p *outputPane) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return cmd
}

func (p *outputPane) overflows() bool {
	return p.vp.Height > 0 && p.vp.TotalLineCount() > p.vp.Height
}

func (p *outputPane) view() string {
	if p.vp.Height > 0 {
		return p.vp.View()
	}
	return p.text
}

// position is the scroll marker shown in the status bar.
func (p *outputPane) position() string {
	switch {
	case p.vp.AtTop():
		return formatter.Dim("[TOP]")
	case p.vp.AtBottom():
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(p.vp.ScrollPercent()*100)))
}
