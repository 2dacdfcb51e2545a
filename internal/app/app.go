// Package app hosts the Bubble Tea program: the screen router under a
// shared header and key-hint footer.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lauralie13/Spy-Academy/internal/router"
	"github.com/lauralie13/Spy-Academy/internal/screen"
	"github.com/lauralie13/Spy-Academy/internal/screens/deps"
	"github.com/lauralie13/Spy-Academy/internal/screens/home"
	"github.com/lauralie13/Spy-Academy/internal/screens/welcome"
	"github.com/lauralie13/Spy-Academy/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	d      *deps.Deps
	router *router.Router
	width  int
	height int
}

// newAppModel starts at home, or at the ethics gate until the pledge has
// been accepted.
func newAppModel(d *deps.Deps) AppModel {
	var root screen.Screen
	if d.Progress.Settings().EthicsAccepted {
		root = home.New(d)
	} else {
		root = welcome.New(
			d.Progress.MarkEthicsAccepted,
			func() screen.Screen { return home.New(d) },
			d.ReduceMotion(),
		)
	}
	return AppModel{
		d:      d,
		router: router.New(root),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if eh, ok := m.router.Active().(screen.EscapeHandler); ok && eh.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) footerHints() []layout.KeyHint {
	if kp, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(kp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.d.Status(), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, d *deps.Deps) error {
	if d == nil || d.Progress == nil || d.Runner == nil {
		return fmt.Errorf("app: progress store and session runner are required")
	}
	if d.Ctx == nil {
		d.Ctx = ctx
	}
	p := tea.NewProgram(newAppModel(d), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
