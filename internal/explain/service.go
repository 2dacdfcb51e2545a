// Package explain serves alternative explanations for questions: authored
// ones from the catalog, and generated ones from an LLM for modes the
// content does not cover.
package explain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/llm"
	"github.com/lauralie13/Spy-Academy/internal/logger"
	"github.com/lauralie13/Spy-Academy/internal/store"
)

// ErrUnavailable is returned when a mode has no authored text and no
// provider is configured to generate one.
var ErrUnavailable = errors.New("explanation not available")

// Explanation is one alternative explanation of a question.
type Explanation struct {
	QuestionID string
	Mode       catalog.ExplanationMode
	Text       string
	Generated  bool
}

// Result is the outcome of an asynchronous request.
type Result struct {
	Explanation *Explanation
	Err         error
}

// EventLog records explanation views.
type EventLog interface {
	AppendExplanationEvent(ctx context.Context, data store.ExplanationEventData) error
}

type cacheKey struct {
	questionID string
	mode       catalog.ExplanationMode
}

// Service resolves explanations. Generated text is cached for the life
// of the process. One asynchronous request is in flight at a time; a new
// request replaces the result of the previous one.
type Service struct {
	provider llm.Provider
	events   EventLog
	cfg      Config
	log      *logger.Logger

	mu      sync.Mutex
	cache   map[cacheKey]string
	gen     int
	pending *Result
}

// Option configures a Service.
type Option func(*Service)

// WithEvents sets where explanation views are logged.
func WithEvents(events EventLog) Option {
	return func(s *Service) { s.events = events }
}

// WithConfig overrides the generation settings.
func WithConfig(cfg Config) Option {
	return func(s *Service) { s.cfg = cfg }
}

// WithLogger sets the service logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = logger.OrNop(l) }
}

// NewService creates an explanation service. provider may be nil, in
// which case only authored explanations are served.
func NewService(provider llm.Provider, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		cfg:      DefaultConfig(),
		log:      logger.Nop(),
		cache:    make(map[cacheKey]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CanGenerate reports whether missing modes can be generated.
func (s *Service) CanGenerate() bool { return s.provider != nil }

// Modes returns the modes that can be shown for q, in switcher order.
func (s *Service) Modes(q catalog.Question) []catalog.ExplanationMode {
	var out []catalog.ExplanationMode
	for _, m := range catalog.AllExplanationModes() {
		if _, ok := q.Explanation(m); ok || s.CanGenerate() {
			out = append(out, m)
		}
	}
	return out
}

// Explain returns the explanation for q in mode, generating it when
// needed. It blocks for the duration of any LLM call.
func (s *Service) Explain(ctx context.Context, q catalog.Question, mode catalog.ExplanationMode) (*Explanation, error) {
	exp, err := s.resolve(ctx, q, mode)
	if err != nil {
		return nil, err
	}
	s.record(ctx, exp)
	return exp, nil
}

// Request starts resolving an explanation in the background. Poll
// Consume for the result.
func (s *Service) Request(ctx context.Context, q catalog.Question, mode catalog.ExplanationMode) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.pending = nil
	s.mu.Unlock()

	go func() {
		exp, err := s.Explain(ctx, q, mode)
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen {
			return
		}
		s.pending = &Result{Explanation: exp, Err: err}
	}()
}

// Consume returns the result of the latest Request once it is ready,
// clearing the slot. It returns false while the request is in flight.
func (s *Service) Consume() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return Result{}, false
	}
	r := *s.pending
	s.pending = nil
	return r, true
}

func (s *Service) resolve(ctx context.Context, q catalog.Question, mode catalog.ExplanationMode) (*Explanation, error) {
	if text, ok := q.Explanation(mode); ok {
		return &Explanation{QuestionID: q.ID, Mode: mode, Text: text}, nil
	}

	key := cacheKey{q.ID, mode}
	s.mu.Lock()
	text, ok := s.cache[key]
	s.mu.Unlock()
	if ok {
		return &Explanation{QuestionID: q.ID, Mode: mode, Text: text, Generated: true}, nil
	}

	if s.provider == nil {
		return nil, fmt.Errorf("%s for %s: %w", mode, q.ID, ErrUnavailable)
	}
	text, err := s.generate(ctx, q, mode)
	if err != nil {
		s.log.Warn("explanation generation failed", "question", q.ID, "mode", mode, "error", err)
		return nil, err
	}

	s.mu.Lock()
	s.cache[key] = text
	s.mu.Unlock()
	return &Explanation{QuestionID: q.ID, Mode: mode, Text: text, Generated: true}, nil
}

type explanationOutput struct {
	Mode string `json:"mode"`
	Text string `json:"text"`
}

func (s *Service) generate(ctx context.Context, q catalog.Question, mode catalog.ExplanationMode) (string, error) {
	resp, err := s.provider.Generate(ctx, llm.Request{
		Purpose:     "alt-explanation",
		System:      systemPrompt,
		Prompt:      buildUserMessage(q, mode),
		Schema:      ExplanationSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("explanation generation: %w", err)
	}

	var out explanationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse explanation response: %w", err)
	}
	return out.Text, nil
}

func (s *Service) record(ctx context.Context, exp *Explanation) {
	if s.events == nil {
		return
	}
	err := s.events.AppendExplanationEvent(ctx, store.ExplanationEventData{
		QuestionID: exp.QuestionID,
		Mode:       string(exp.Mode),
		Generated:  exp.Generated,
	})
	if err != nil {
		s.log.Warn("failed to log explanation event", "error", err)
	}
}
