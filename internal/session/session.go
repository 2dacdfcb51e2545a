package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lauralie13/Spy-Academy/internal/logger"
	"github.com/lauralie13/Spy-Academy/internal/mastery"
	"github.com/lauralie13/Spy-Academy/internal/placement"
	"github.com/lauralie13/Spy-Academy/internal/progress"
	"github.com/lauralie13/Spy-Academy/internal/store"
)

// ErrNotAnswering is returned when an answer arrives outside the active phase.
var ErrNotAnswering = errors.New("session is not waiting for an answer")

// ErrEmptyPlan is returned when a session is started without questions.
var ErrEmptyPlan = errors.New("session plan has no questions")

// EventLog is the part of the event store a session writes to.
type EventLog interface {
	AppendAnswerEvent(ctx context.Context, data store.AnswerEventData) error
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
	AppendMasteryEvent(ctx context.Context, data store.MasteryEventData) error
	AppendDiagnosisEvent(ctx context.Context, data store.DiagnosisEventData) error
}

// Runner drives sessions against the progress store. Event logging and
// placement history are optional; failures writing them are logged and
// never abort the learner's session.
type Runner struct {
	progress   *progress.Store
	events     EventLog
	placements store.PlacementRepo
	log        *logger.Logger
	now        func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithEvents sets the event log answers and transitions are written to.
func WithEvents(events EventLog) Option {
	return func(r *Runner) { r.events = events }
}

// WithPlacementRepo sets where finished placement runs are kept.
func WithPlacementRepo(repo store.PlacementRepo) Option {
	return func(r *Runner) { r.placements = repo }
}

// WithLogger sets the runner's logger.
func WithLogger(l *logger.Logger) Option {
	return func(r *Runner) { r.log = logger.OrNop(l) }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// NewRunner returns a Runner over ps.
func NewRunner(ps *progress.Store, opts ...Option) *Runner {
	r := &Runner{
		progress: ps,
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Progress returns the store the runner records into.
func (r *Runner) Progress() *progress.Store { return r.progress }

// Start begins a session for plan.
func (r *Runner) Start(ctx context.Context, plan *Plan) (*State, error) {
	if plan.Len() == 0 {
		return nil, ErrEmptyPlan
	}
	st := NewState(plan, r.now())
	r.append("session start", func(ev EventLog) error {
		return ev.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID: st.SessionID,
			Kind:      string(plan.Kind),
			Action:    store.ActionStart,
		})
	})
	r.log.Debug("session started", "session", st.SessionID, "kind", plan.Kind, "questions", plan.Len())
	return st, nil
}

// Answer grades choice for the current question and moves the session to
// the feedback phase. Drill and practice answers are recorded in the
// progress store immediately; placement answers are held until Finish.
func (r *Runner) Answer(ctx context.Context, st *State, choice, confidence int) (*Answered, error) {
	if st.Phase != PhaseActive || st.Done() {
		return nil, ErrNotAnswering
	}
	qid := st.CurrentQuestionID()
	q, ok := r.progress.Catalog().Question(qid)
	if !ok {
		return nil, fmt.Errorf("unknown question %q", qid)
	}

	a := Answered{
		QuestionID:  q.ID,
		ObjectiveID: q.ObjectiveID,
		Domain:      q.Domain,
		Choice:      choice,
		Correct:     q.IsCorrect(choice),
		Confidence:  mastery.ClampConfidence(confidence),
		Elapsed:     r.now().Sub(st.QuestionStartTime),
	}
	if st.Plan.Kind != KindPlacement {
		out, ok := r.progress.RecordTimedAnswer(q.ID, a.Correct, a.Confidence, a.Elapsed)
		if ok {
			a.Outcome = &out
		}
	}

	st.Answers = append(st.Answers, a)
	st.Last = &st.Answers[len(st.Answers)-1]
	st.Phase = PhaseFeedback

	r.logAnswer(ctx, st, a)
	return st.Last, nil
}

func (r *Runner) logAnswer(ctx context.Context, st *State, a Answered) {
	r.append("answer", func(ev EventLog) error {
		return ev.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:   st.SessionID,
			Source:      st.Plan.Kind.Source(),
			QuestionID:  a.QuestionID,
			ObjectiveID: a.ObjectiveID,
			Domain:      a.Domain,
			Correct:     a.Correct,
			Confidence:  a.Confidence,
			TimeMs:      int(a.Elapsed.Milliseconds()),
		})
	})
	if a.Outcome == nil {
		return
	}
	if d := a.Outcome.Diagnosis; d != nil {
		r.append("diagnosis", func(ev EventLog) error {
			return ev.AppendDiagnosisEvent(ctx, store.DiagnosisEventData{
				SessionID:      st.SessionID,
				QuestionID:     a.QuestionID,
				ObjectiveID:    a.ObjectiveID,
				Category:       string(d.Category),
				Confidence:     d.Confidence,
				ClassifierName: d.ClassifierName,
			})
		})
	}
	if t := a.Outcome.Transition; t != nil {
		r.logTransition(ctx, st.SessionID, *t, a.Outcome.MasteryAfter)
	}
}

func (r *Runner) logTransition(ctx context.Context, sessionID string, t mastery.Transition, m float64) {
	r.append("mastery transition", func(ev EventLog) error {
		return ev.AppendMasteryEvent(ctx, store.MasteryEventData{
			SessionID:   sessionID,
			ObjectiveID: t.ObjectiveID,
			FromState:   string(t.From),
			ToState:     string(t.To),
			Trigger:     t.Trigger,
			Mastery:     m,
		})
	})
}

// Next leaves the feedback phase and serves the following question. It
// reports false when the plan is exhausted.
func (r *Runner) Next(st *State) bool {
	if st.Phase != PhaseFeedback {
		return !st.Done()
	}
	st.Index++
	st.Last = nil
	if st.Done() {
		return false
	}
	st.Phase = PhaseActive
	st.QuestionStartTime = r.now()
	return true
}

// Finish ends the session and returns its summary. Finishing a placement
// session seeds the objectives from the quiz and stores the run in the
// placement history. Unanswered questions are simply not counted.
func (r *Runner) Finish(ctx context.Context, st *State) (*Summary, error) {
	st.Phase = PhaseSummary
	now := r.now()

	var err error
	if st.Plan.Kind == KindPlacement {
		err = r.finishPlacement(ctx, st, now)
	}

	sum := BuildSummary(st, now)
	r.append("session end", func(ev EventLog) error {
		return ev.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:       st.SessionID,
			Kind:            string(st.Plan.Kind),
			Action:          store.ActionEnd,
			QuestionsServed: sum.TotalQuestions,
			CorrectAnswers:  sum.TotalCorrect,
			DurationSecs:    int(sum.Duration.Seconds()),
		})
	})
	r.log.Info("session finished",
		"session", st.SessionID,
		"kind", st.Plan.Kind,
		"answered", sum.TotalQuestions,
		"correct", sum.TotalCorrect,
	)
	return sum, err
}

func (r *Runner) finishPlacement(ctx context.Context, st *State, now time.Time) error {
	cat := r.progress.Catalog()

	responses := make([]placement.Response, len(st.Answers))
	for i, a := range st.Answers {
		responses[i] = placement.Response{
			QuestionID: a.QuestionID,
			Correct:    a.Correct,
			Confidence: a.Confidence,
		}
	}
	profiles := placement.ComputeDomainProfile(cat, responses)
	transitions := r.progress.ApplyPlacement(placement.SeedObjectives(cat, profiles, now))
	for _, t := range transitions {
		var m float64
		if obj, ok := r.progress.Objective(t.ObjectiveID); ok {
			m = obj.Mastery
		}
		r.logTransition(ctx, st.SessionID, t, m)
	}

	res := &PlacementResult{
		RunID:       st.SessionID,
		Profiles:    profiles,
		Transitions: len(transitions),
	}
	res.RecommendedDomain, _ = placement.RecommendedDomain(profiles)
	if available := r.progress.AvailableMissions(); len(available) > 0 {
		m := available[0]
		res.RecommendedMission = &m
	}
	st.Placement = res

	if r.placements == nil {
		return nil
	}
	run := &store.PlacementRun{
		RunID:             res.RunID,
		TakenAt:           now,
		Responses:         make([]store.PlacementResponseData, len(responses)),
		Profiles:          make([]store.DomainProfileData, len(profiles)),
		RecommendedDomain: res.RecommendedDomain,
	}
	for i, resp := range responses {
		run.Responses[i] = store.PlacementResponseData(resp)
	}
	for i, p := range profiles {
		run.Profiles[i] = store.DomainProfileData(p)
	}
	if err := r.placements.Save(ctx, run); err != nil {
		return fmt.Errorf("save placement run: %w", err)
	}
	if err := r.placements.Prune(ctx, store.PlacementHistoryKeep); err != nil {
		return fmt.Errorf("prune placement history: %w", err)
	}
	return nil
}

func (r *Runner) append(what string, fn func(EventLog) error) {
	if r.events == nil {
		return
	}
	if err := fn(r.events); err != nil {
		r.log.Warn("event log write failed", "event", what, "error", err)
	}
}
