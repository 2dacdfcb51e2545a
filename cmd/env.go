package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/config"
	"github.com/lauralie13/Spy-Academy/internal/explain"
	"github.com/lauralie13/Spy-Academy/internal/llm"
	"github.com/lauralie13/Spy-Academy/internal/logger"
	"github.com/lauralie13/Spy-Academy/internal/missions"
	"github.com/lauralie13/Spy-Academy/internal/progress"
	"github.com/lauralie13/Spy-Academy/internal/screens/deps"
	"github.com/lauralie13/Spy-Academy/internal/session"
	"github.com/lauralie13/Spy-Academy/internal/store"
)

// env is everything a command needs, opened from config and the database.
type env struct {
	cfg       config.Config
	log       *logger.Logger
	store     *store.Store
	catalog   *catalog.Catalog
	progress  *progress.Store
	autosaver *progress.Autosaver
	runner    *session.Runner
	missions  *missions.Service
	explain   *explain.Service
}

type envOptions struct {
	// interactive sends logs to a file so they don't tear the TUI.
	interactive bool
	// withLLM builds a provider when one is configured.
	withLLM bool
}

// openEnv loads config, opens the store and restores the latest snapshot.
func openEnv(cmd *cobra.Command, opts envOptions) (*env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logFile, err := cfg.ResolveLogFile(opts.interactive)
	if err != nil {
		return nil, fmt.Errorf("resolve log file: %w", err)
	}
	log, err := logger.New(logger.Options{Mode: cfg.LogMode, Level: cfg.LogLevel, File: logFile})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	e := &env{cfg: cfg, log: log}
	if err := e.open(ctx, cmd, opts); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func (e *env) open(ctx context.Context, cmd *cobra.Command, opts envOptions) error {
	flagDB, _ := cmd.Flags().GetString("db")
	dbPath, err := e.cfg.ResolveDBPath(flagDB)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}

	e.catalog, err = loadCatalog(e.cfg.ContentDir)
	if err != nil {
		return err
	}

	e.store, err = store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	e.log.Debug("store opened", "path", dbPath, "content", e.catalog.Version())

	snapshots := e.store.SnapshotRepo()
	e.autosaver = progress.NewAutosaver(snapshots,
		progress.WithKeep(e.cfg.SnapshotKeep),
		progress.WithSequence(e.store.CurrentSequence),
		progress.WithLogger(e.log),
	)
	e.progress = progress.New(e.catalog, progress.WithOnChange(e.autosaver.Enqueue))

	latest, err := snapshots.Latest(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if latest == nil {
		e.progress.InitializeData()
	} else {
		report := e.progress.Restore(latest.Data)
		e.log.Debug("progress restored",
			"sequence", latest.Sequence,
			"restored", report.Restored,
			"added", report.Added,
			"dropped", report.Dropped,
			"discarded", report.DiscardedStates,
		)
	}

	events := e.store.EventRepo()
	e.runner = session.NewRunner(e.progress,
		session.WithEvents(events),
		session.WithPlacementRepo(e.store.PlacementRepo()),
		session.WithLogger(e.log),
	)
	e.missions = missions.NewService(e.progress, events, e.log)

	var provider llm.Provider
	if opts.withLLM {
		provider, err = llm.NewProvider(ctx, e.cfg.LLM, events, e.log)
		switch {
		case errors.Is(err, llm.ErrDisabled):
			e.log.Debug("explanations limited to authored content", "reason", err)
		case err != nil:
			fmt.Fprintln(os.Stderr, "LLM provider unavailable:", err)
			e.log.Warn("build llm provider", "error", err)
			provider = nil
		}
	}
	e.explain = explain.NewService(provider,
		explain.WithEvents(events),
		explain.WithConfig(explain.DefaultConfig()),
		explain.WithLogger(e.log),
	)
	return nil
}

func loadCatalog(dir string) (*catalog.Catalog, error) {
	if dir == "" {
		cat, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("load embedded content: %w", err)
		}
		return cat, nil
	}
	cat, err := catalog.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load content from %s: %w", dir, err)
	}
	return cat, nil
}

// deps bundles the env for the screens.
func (e *env) deps(ctx context.Context) *deps.Deps {
	return &deps.Deps{
		Progress: e.progress,
		Runner:   e.runner,
		Missions: e.missions,
		Explain:  e.explain,
		Events:   e.store.EventRepo(),
		Log:      e.log,
		Ctx:      ctx,
	}
}

// Close flushes the last snapshot before the database goes away.
func (e *env) Close() {
	if e.autosaver != nil {
		e.autosaver.Close()
	}
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.log.Warn("close store", "error", err)
		}
	}
	e.log.Sync()
}
