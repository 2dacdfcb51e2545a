// Package welcome is the intro and the authorized-use pledge every agent
// accepts before training.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lauralie13/Spy-Academy/internal/router"
	"github.com/lauralie13/Spy-Academy/internal/screen"
	"github.com/lauralie13/Spy-Academy/internal/ui/layout"
	"github.com/lauralie13/Spy-Academy/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

const shieldArt = `   ▄▄▄▄▄▄▄▄▄
  █  ◢███◣  █
  █  █ ◉ █  █
  █  ◥███◤  █
   ▀▄     ▄▀
     ▀▄▄▄▀`

// scan frames sweep across the shield
var scanFrames = []string{"░", "▒", "▓", "▒"}

const pledge = `Everything you practice here is for defending systems you own or are
explicitly authorized to test. Never use these techniques against people,
accounts or networks without written permission.`

type tickMsg time.Time

// WelcomeScreen plays the intro, then asks the learner to accept the
// pledge. Accepting records it and replaces the screen with home.
type WelcomeScreen struct {
	accept       func()
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates the gate. accept is called once when the pledge is taken.
// With reduceMotion the intro is skipped.
func New(accept func(), homeFactory func() screen.Screen, reduceMotion bool) *WelcomeScreen {
	w := &WelcomeScreen{accept: accept, homeFactory: homeFactory}
	if reduceMotion {
		w.elapsed = totalDur
	}
	return w
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	if !w.ready() {
		return []layout.KeyHint{{Key: "Any key", Description: "Skip"}}
	}
	return []layout.KeyHint{
		{Key: "Y", Description: "I agree"},
		{Key: "Q", Description: "Quit"},
	}
}

func (w *WelcomeScreen) ready() bool { return w.elapsed >= totalDur }

func (w *WelcomeScreen) Init() tea.Cmd {
	if w.ready() {
		return nil
	}
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.ready() {
			return w, nil
		}
		w.elapsed += tickInterval
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		if !w.ready() {
			w.elapsed = totalDur
			return w, nil
		}
		switch msg.String() {
		case "y", "enter":
			return w, w.transition()
		case "q":
			return w, tea.Quit
		}
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	if w.accept != nil {
		w.accept()
	}
	home := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	art := lipgloss.NewStyle().Foreground(theme.Secondary).Render(shieldArt)
	if w.elapsed >= phase1End && !w.ready() {
		frame := scanFrames[w.tickCount%len(scanFrames)]
		scan := lipgloss.NewStyle().Foreground(theme.Signal).Render(strings.Repeat(frame, 13))
		art = scan + "\n" + art
	}
	sections = append(sections, art)

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Train like a defender."))
	}

	if w.ready() {
		sections = append(sections, "")
		sections = append(sections, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Foreground(theme.Text).
			Padding(0, 2).
			Render(theme.Subtitle.Render("Agent pledge")+"\n\n"+pledge))
		sections = append(sections, "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press Y to accept"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
