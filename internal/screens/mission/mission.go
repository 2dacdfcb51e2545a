// Package mission plays a single mission: briefing, the type-specific
// task and the scored result.
package mission

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/missions"
	"github.com/lauralie13/Spy-Academy/internal/router"
	"github.com/lauralie13/Spy-Academy/internal/screen"
	"github.com/lauralie13/Spy-Academy/internal/screens/deps"
	"github.com/lauralie13/Spy-Academy/internal/ui/layout"
)

// task is the interactive part of one mission type.
type task interface {
	// Update handles a key. submit reports that the learner is done.
	Update(msg tea.KeyMsg) (cmd tea.Cmd, submit bool)
	View(width int, readable bool) string
	Attempt() missions.Attempt
	KeyHints() []layout.KeyHint
}

type phase int

const (
	phaseBriefing phase = iota
	phaseTask
	phaseResult
)

type loadedMsg struct {
	Mission catalog.Mission
	Err     error
}

// MissionScreen implements screen.Screen for one mission.
type MissionScreen struct {
	d  *deps.Deps
	id string

	mission catalog.Mission
	loaded  bool
	phase   phase
	task    task
	result  *missions.Result
	errMsg  string
}

var _ screen.Screen = (*MissionScreen)(nil)
var _ screen.KeyHintProvider = (*MissionScreen)(nil)
var _ screen.EscapeHandler = (*MissionScreen)(nil)

// New creates the screen for missionID. The mission is looked up in Init.
func New(d *deps.Deps, missionID string) *MissionScreen {
	return &MissionScreen{d: d, id: missionID}
}

func (s *MissionScreen) Init() tea.Cmd {
	d, id := s.d, s.id
	return func() tea.Msg {
		m, ok := d.Progress.Catalog().Mission(id)
		if !ok {
			return loadedMsg{Err: fmt.Errorf("unknown mission %q", id)}
		}
		if !d.Progress.Unlocked(id) {
			return loadedMsg{Err: missions.ErrLocked}
		}
		return loadedMsg{Mission: m}
	}
}

func (s *MissionScreen) Title() string {
	if s.loaded {
		return s.mission.Title
	}
	return "Mission"
}

func (s *MissionScreen) HandlesEscape() bool { return s.phase == phaseTask }

func (s *MissionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "" || s.phase == phaseResult:
		return []layout.KeyHint{{Key: "Enter", Description: "Back"}}
	case s.phase == phaseBriefing:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Begin"},
			{Key: "Esc", Description: "Back"},
		}
	case s.task != nil:
		return append(s.task.KeyHints(), layout.KeyHint{Key: "Esc", Description: "Abort"})
	}
	return nil
}

func (s *MissionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.mission = msg.Mission
		s.loaded = true
		t, err := newTask(msg.Mission)
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.task = t
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *MissionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if !s.loaded {
		return s, nil
	}

	switch s.phase {
	case phaseBriefing:
		if key == "enter" {
			s.phase = phaseTask
		}
		return s, nil

	case phaseTask:
		if key == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		cmd, submit := s.task.Update(msg)
		if submit {
			return s.submit()
		}
		return s, cmd

	case phaseResult:
		if key == "enter" || key == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *MissionScreen) submit() (screen.Screen, tea.Cmd) {
	if s.d.Missions == nil {
		s.errMsg = "missions are not available"
		return s, nil
	}
	res, err := s.d.Missions.Complete(s.d.Context(), s.mission.ID, s.task.Attempt())
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.result = &res
	s.phase = phaseResult
	return s, nil
}

func newTask(m catalog.Mission) (task, error) {
	switch t := m.Tasks.(type) {
	case catalog.LogHuntTasks:
		return newLogHunt(t), nil
	case catalog.ZoneBuilderTasks:
		return newZoneBuilder(t), nil
	case catalog.DialogueTasks:
		return newDialogue(t), nil
	case catalog.DetectorTasks:
		return newDetector(t)
	case catalog.PhishingTasks:
		return newPhishing(t), nil
	default:
		return nil, fmt.Errorf("%s: %w", m.Type, missions.ErrUnsupported)
	}
}
