package progress

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lauralie13/Spy-Academy/internal/store"
)

// memSnapshotRepo is an in-memory SnapshotRepo.
type memSnapshotRepo struct {
	mu       sync.Mutex
	saved    []store.Snapshot
	pruned   []int
	failSave bool
}

func (r *memSnapshotRepo) Save(_ context.Context, snap *store.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave {
		return errors.New("disk full")
	}
	r.saved = append(r.saved, *snap)
	return nil
}

func (r *memSnapshotRepo) Latest(context.Context) (*store.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.saved) == 0 {
		return nil, nil
	}
	s := r.saved[len(r.saved)-1]
	return &s, nil
}

func (r *memSnapshotRepo) Prune(_ context.Context, keep int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruned = append(r.pruned, keep)
	return nil
}

func TestAutosaver_FlushesLatestOnClose(t *testing.T) {
	repo := &memSnapshotRepo{}
	saver := NewAutosaver(repo, WithKeep(3), WithSequence(func(context.Context) (int64, error) {
		return 42, nil
	}))

	for i := 1; i <= 100; i++ {
		saver.Enqueue(store.SnapshotData{TotalIntel: i})
	}
	saver.Close()

	latest, err := repo.Latest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 100, latest.Data.TotalIntel)
	assert.Equal(t, int64(42), latest.Sequence)
	assert.LessOrEqual(t, len(repo.saved), 100)
	for _, keep := range repo.pruned {
		assert.Equal(t, 3, keep)
	}
}

func TestAutosaver_WiredAsChangeHook(t *testing.T) {
	repo := &memSnapshotRepo{}
	saver := NewAutosaver(repo)
	s, _ := newTestStore(t, WithOnChange(saver.Enqueue))

	s.RecordAnswer("q-net-1", true, 70)
	s.MarkEthicsAccepted()
	saver.Close()

	latest, _ := repo.Latest(context.Background())
	require.NotNil(t, latest)
	assert.True(t, latest.Data.EthicsAccepted)
	assert.Equal(t, 17, latest.Data.TotalIntel)
}

func TestAutosaver_DropsOlderRevision(t *testing.T) {
	repo := &memSnapshotRepo{}
	saver := NewAutosaver(repo)
	saver.Enqueue(store.SnapshotData{TotalIntel: 20, Revision: 2})
	saver.Enqueue(store.SnapshotData{TotalIntel: 10, Revision: 1})
	saver.Close()

	latest, _ := repo.Latest(context.Background())
	require.NotNil(t, latest)
	assert.Equal(t, 20, latest.Data.TotalIntel)
	for _, snap := range repo.saved {
		assert.NotEqual(t, 10, snap.Data.TotalIntel)
	}
}

func TestAutosaver_ConcurrentMutatorsPersistFinalState(t *testing.T) {
	repo := &memSnapshotRepo{}
	saver := NewAutosaver(repo)
	s, _ := newTestStore(t, WithOnChange(saver.Enqueue))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				s.RecordAnswer("q-net-1", true, 60)
			}
		}()
	}
	wg.Wait()
	saver.Close()

	latest, _ := repo.Latest(context.Background())
	require.NotNil(t, latest)
	assert.Equal(t, s.Snapshot().TotalIntel, latest.Data.TotalIntel)
}

func TestAutosaver_EnqueueAfterCloseIsDropped(t *testing.T) {
	repo := &memSnapshotRepo{}
	saver := NewAutosaver(repo)
	saver.Close()
	saver.Close()
	saver.Enqueue(store.SnapshotData{TotalIntel: 1})
	assert.Empty(t, repo.saved)
}

func TestAutosaver_SaveFailureDoesNotStopLoop(t *testing.T) {
	repo := &memSnapshotRepo{failSave: true}
	saver := NewAutosaver(repo)
	saver.Enqueue(store.SnapshotData{TotalIntel: 1})
	saver.Close()
	assert.Empty(t, repo.saved)
	assert.Empty(t, repo.pruned, "no prune after a failed save")
}
