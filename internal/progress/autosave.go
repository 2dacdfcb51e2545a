package progress

import (
	"context"
	"sync"
	"time"

	"github.com/lauralie13/Spy-Academy/internal/logger"
	"github.com/lauralie13/Spy-Academy/internal/store"
)

// DefaultSnapshotKeep is how many snapshots the autosaver retains.
const DefaultSnapshotKeep = 20

// Autosaver persists snapshots on a background goroutine. Enqueue never
// blocks: a snapshot waiting to be written is replaced by a newer one, so
// a burst of mutations costs one write.
type Autosaver struct {
	repo    store.SnapshotRepo
	seq     func(context.Context) (int64, error)
	keep    int
	timeout time.Duration
	log     *logger.Logger

	mu      sync.Mutex
	closed  bool
	lastRev uint64
	pending chan store.SnapshotData
	done    chan struct{}
}

// AutosaveOption configures an Autosaver.
type AutosaveOption func(*Autosaver)

// WithKeep sets how many snapshots survive pruning.
func WithKeep(n int) AutosaveOption {
	return func(a *Autosaver) {
		if n > 0 {
			a.keep = n
		}
	}
}

// WithSequence stamps each snapshot with the event log position.
func WithSequence(fn func(context.Context) (int64, error)) AutosaveOption {
	return func(a *Autosaver) { a.seq = fn }
}

// WithLogger sets the logger for write failures.
func WithLogger(l *logger.Logger) AutosaveOption {
	return func(a *Autosaver) { a.log = logger.OrNop(l) }
}

// NewAutosaver starts the background writer.
func NewAutosaver(repo store.SnapshotRepo, opts ...AutosaveOption) *Autosaver {
	a := &Autosaver{
		repo:    repo,
		keep:    DefaultSnapshotKeep,
		timeout: 5 * time.Second,
		log:     logger.Nop(),
		pending: make(chan store.SnapshotData, 1),
		done:    make(chan struct{}),
	}
	for _, o := range opts {
		o(a)
	}
	go a.processLoop()
	return a
}

// Enqueue schedules data to be written. It is a ChangeFunc, so it can be
// passed to WithOnChange directly. Calls after Close are dropped, as are
// snapshots with a Revision older than one already enqueued.
func (a *Autosaver) Enqueue(data store.SnapshotData) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	if data.Revision != 0 {
		if data.Revision <= a.lastRev {
			return
		}
		a.lastRev = data.Revision
	}
	for {
		select {
		case a.pending <- data:
			return
		default:
		}
		// Slot taken by an older snapshot: drop it and retry.
		select {
		case <-a.pending:
		default:
		}
	}
}

func (a *Autosaver) processLoop() {
	defer close(a.done)
	for data := range a.pending {
		a.save(data)
	}
}

func (a *Autosaver) save(data store.SnapshotData) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	snap := &store.Snapshot{Timestamp: time.Now().UTC(), Data: data}
	if a.seq != nil {
		seq, err := a.seq(ctx)
		if err != nil {
			a.log.Warn("read event sequence", "error", err)
		}
		snap.Sequence = seq
	}
	if err := a.repo.Save(ctx, snap); err != nil {
		a.log.Warn("autosave snapshot", "error", err)
		return
	}
	if err := a.repo.Prune(ctx, a.keep); err != nil {
		a.log.Warn("prune snapshots", "error", err)
	}
}

// Close flushes the pending snapshot and stops the writer.
func (a *Autosaver) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	close(a.pending)
	a.mu.Unlock()
	<-a.done
}
