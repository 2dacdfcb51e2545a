// Package deps bundles the services screens are built from, so the
// screen constructors can pass one value down the navigation tree.
package deps

import (
	"context"
	"math/rand/v2"

	"github.com/lauralie13/Spy-Academy/internal/explain"
	"github.com/lauralie13/Spy-Academy/internal/logger"
	"github.com/lauralie13/Spy-Academy/internal/missions"
	"github.com/lauralie13/Spy-Academy/internal/progress"
	"github.com/lauralie13/Spy-Academy/internal/session"
	"github.com/lauralie13/Spy-Academy/internal/store"
	"github.com/lauralie13/Spy-Academy/internal/ui/layout"
)

// Deps holds everything a screen may need. Only Progress and Runner are
// required; the rest may be nil and screens degrade without them.
type Deps struct {
	Progress *progress.Store
	Runner   *session.Runner
	Missions *missions.Service
	Explain  *explain.Service
	Events   store.EventRepo
	Log      *logger.Logger

	// Rand seeds plan building; nil uses the global source.
	Rand *rand.Rand
	// Ctx is the parent context for store and LLM calls.
	Ctx context.Context
}

// Context returns d.Ctx or a background context.
func (d *Deps) Context() context.Context {
	if d.Ctx == nil {
		return context.Background()
	}
	return d.Ctx
}

// Logger returns d.Log or a no-op logger.
func (d *Deps) Logger() *logger.Logger {
	return logger.OrNop(d.Log)
}

// Readable reports whether dyslexia mode is on.
func (d *Deps) Readable() bool {
	return d.Progress.Settings().DyslexiaMode
}

// ReduceMotion reports whether animations should be skipped.
func (d *Deps) ReduceMotion() bool {
	return d.Progress.Settings().ReduceMotion
}

// Status returns the header summary for the current progress.
func (d *Deps) Status() layout.Status {
	st := d.Progress.Stats()
	return layout.Status{
		Intel:  st.TotalIntel,
		Rank:   string(st.Rank),
		Streak: st.Streak,
	}
}
