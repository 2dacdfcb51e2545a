package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// delay returns the wait before retry number attempt (0-based):
// exponential from InitialWait, capped at MaxWait, with ±20% jitter.
// jitter returns a value in [0, 1).
func (c RetryConfig) delay(attempt int, jitter func() float64) time.Duration {
	wait := float64(c.InitialWait)
	for range attempt {
		wait *= c.Multiplier
		if wait >= float64(c.MaxWait) {
			break
		}
	}
	wait = min(wait, float64(c.MaxWait))
	wait += wait * 0.2 * (2*jitter() - 1)
	return time.Duration(max(wait, 0))
}

// retryable decides whether err is worth another attempt. Invalid replies
// get a single retry; truncation and cancellation never retry.
func retryable(err error, invalidSeen bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	kind, ok := KindOf(err)
	if !ok {
		return true
	}
	switch kind {
	case KindTruncated:
		return false
	case KindInvalidResponse:
		return !invalidSeen
	default:
		return true
	}
}

// WithRetry retries transient failures up to cfg.MaxAttempts calls in
// total. A rate limit with RetryAfter waits exactly that long.
func WithRetry(cfg RetryConfig) Middleware {
	return withRetry(cfg, rand.Float64)
}

func withRetry(cfg RetryConfig, jitter func() float64) Middleware {
	attempts := max(cfg.MaxAttempts, 1)
	return func(next Provider) Provider {
		return providerFunc{
			model: next.ModelID,
			generate: func(ctx context.Context, req Request) (*Response, error) {
				invalidSeen := false
				for attempt := 0; ; attempt++ {
					resp, err := next.Generate(ctx, req)
					if err == nil {
						return resp, nil
					}
					if attempt == attempts-1 || !retryable(err, invalidSeen) {
						return nil, err
					}
					if kind, _ := KindOf(err); kind == KindInvalidResponse {
						invalidSeen = true
					}

					wait := cfg.delay(attempt, jitter)
					var e *Error
					if errors.As(err, &e) && e.Kind == KindRateLimited && e.RetryAfter > 0 {
						wait = e.RetryAfter
					}
					t := time.NewTimer(wait)
					select {
					case <-ctx.Done():
						t.Stop()
						return nil, ctx.Err()
					case <-t.C:
					}
				}
			},
		}
	}
}
