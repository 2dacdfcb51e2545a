package llm

import (
	"context"
	"time"

	"github.com/lauralie13/Spy-Academy/internal/logger"
	"github.com/lauralie13/Spy-Academy/internal/store"
)

// Middleware wraps a Provider with extra behaviour.
type Middleware func(Provider) Provider

// Chain applies mws to p in order, so the first one sits closest to p
// and the last one sees the caller's request first.
func Chain(p Provider, mws ...Middleware) Provider {
	for _, mw := range mws {
		p = mw(p)
	}
	return p
}

// providerFunc adapts a function and a model ID to Provider.
type providerFunc struct {
	generate func(context.Context, Request) (*Response, error)
	model    func() string
}

func (f providerFunc) Generate(ctx context.Context, req Request) (*Response, error) {
	return f.generate(ctx, req)
}

func (f providerFunc) ModelID() string { return f.model() }

// RequestLog records LLM request events.
type RequestLog interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// WithLogging records every call, successful or not, as a request event
// and a log line. vendor names the provider in the record; events may be
// nil. A failed event write never fails the call.
func WithLogging(vendor string, events RequestLog, log *logger.Logger) Middleware {
	log = logger.OrNop(log)
	return func(next Provider) Provider {
		return providerFunc{
			model: next.ModelID,
			generate: func(ctx context.Context, req Request) (*Response, error) {
				purpose := req.Purpose
				if purpose == "" {
					purpose = "unknown"
				}
				start := time.Now()
				resp, err := next.Generate(ctx, req)

				ev := store.LLMRequestEventData{
					Provider:  vendor,
					Model:     next.ModelID(),
					Purpose:   purpose,
					LatencyMs: time.Since(start).Milliseconds(),
					Success:   err == nil,
				}
				if resp != nil {
					ev.InputTokens = resp.Usage.InputTokens
					ev.OutputTokens = resp.Usage.OutputTokens
					if resp.Model != "" {
						ev.Model = resp.Model
					}
				}
				if err != nil {
					ev.ErrorMessage = err.Error()
					log.Warn("llm request failed", "provider", vendor, "purpose", purpose, "error", err)
				} else {
					log.Info("llm request",
						"provider", vendor,
						"model", ev.Model,
						"purpose", purpose,
						"latency_ms", ev.LatencyMs,
						"tokens", resp.Usage.Total(),
					)
				}
				if events != nil {
					if werr := events.AppendLLMRequest(ctx, ev); werr != nil {
						log.Warn("record llm request", "error", werr)
					}
				}
				return resp, err
			},
		}
	}
}

// WithTimeout bounds every call, retries included when applied outside
// WithRetry. A non-positive d leaves calls unbounded.
func WithTimeout(d time.Duration) Middleware {
	return func(next Provider) Provider {
		if d <= 0 {
			return next
		}
		return providerFunc{
			model: next.ModelID,
			generate: func(ctx context.Context, req Request) (*Response, error) {
				ctx, cancel := context.WithTimeout(ctx, d)
				defer cancel()
				return next.Generate(ctx, req)
			},
		}
	}
}
