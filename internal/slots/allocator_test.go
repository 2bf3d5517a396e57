package slots

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestAllocator(t *testing.T) (*Allocator, *memStore, *memRepo) {
	t.Helper()
	store := newMemStore()
	repo := newMemRepo()
	return NewAllocator(mustLayout(t, 20, 5), store, repo), store, repo
}

func TestLoadLastSaveIndexDefaultsWhenAbsent(t *testing.T) {
	a, store, _ := newTestAllocator(t)

	a.LoadLastSaveIndex()

	idx, ok := a.CurrentIndex()
	require.True(t, ok)
	require.Equal(t, AutosaveSlotStart, idx)
	require.Equal(t, int(AutosaveSlotStart), store.values[LastSaveIndexKey])
}

func TestLoadLastSaveIndexResetsNonNumeric(t *testing.T) {
	a, store, _ := newTestAllocator(t)
	store.raw[LastSaveIndexKey] = true

	a.LoadLastSaveIndex()

	idx, ok := a.CurrentIndex()
	require.True(t, ok)
	require.Equal(t, AutosaveSlotStart, idx)
	require.False(t, store.raw[LastSaveIndexKey])
	require.Equal(t, 1, store.values[LastSaveIndexKey])
}

func TestLoadLastSaveIndexResetsOutOfRange(t *testing.T) {
	a, store, _ := newTestAllocator(t)
	store.values[LastSaveIndexKey] = 9

	a.LoadLastSaveIndex()

	idx, _ := a.CurrentIndex()
	require.Equal(t, AutosaveSlotStart, idx)
	require.Equal(t, 1, store.values[LastSaveIndexKey])
}

func TestLoadLastSaveIndexKeepsStoredValue(t *testing.T) {
	a, store, _ := newTestAllocator(t)
	store.values[LastSaveIndexKey] = 4

	a.LoadLastSaveIndex()

	idx, ok := a.CurrentIndex()
	require.True(t, ok)
	require.Equal(t, SlotID(4), idx)
	require.Equal(t, SlotID(5), a.NextSlot())
	require.Equal(t, 0, store.sets)
}

func TestSaveLastSaveIndexWithoutIndexIsNoop(t *testing.T) {
	a, store, _ := newTestAllocator(t)

	require.NoError(t, a.SaveLastSaveIndex(context.Background()))

	require.Empty(t, store.values)
	require.Zero(t, store.sets)
	require.Zero(t, store.commits)
}

func TestSaveLastSaveIndexCommits(t *testing.T) {
	a, store, _ := newTestAllocator(t)
	store.values[LastSaveIndexKey] = 2
	a.LoadLastSaveIndex()

	require.NoError(t, a.SaveLastSaveIndex(context.Background()))
	require.Equal(t, 2, store.values[LastSaveIndexKey])
	require.Equal(t, 1, store.commits)
}

func TestSaveLastSaveIndexPropagatesCommitError(t *testing.T) {
	a, store, _ := newTestAllocator(t)
	a.LoadLastSaveIndex()
	store.failErr = errors.New("read-only")

	err := a.SaveLastSaveIndex(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, store.failErr)
}

func TestExecuteAutosaveRotatesAndPersists(t *testing.T) {
	a, store, repo := newTestAllocator(t)
	store.values[LastSaveIndexKey] = 3
	a.LoadLastSaveIndex()
	host := &recordingHost{}

	want := []SlotID{4, 5, 1, 2, 3, 4}
	for _, slot := range want {
		res, err := a.ExecuteAutosave(context.Background(), host, host)
		require.NoError(t, err)
		require.Equal(t, StateCommitted, res.State)
		require.Equal(t, slot, res.Slot)
		require.Equal(t, int(slot), store.values[LastSaveIndexKey])
	}
	require.Equal(t, want, repo.saved)
	require.Equal(t, len(want), host.before)
	require.Equal(t, want, host.ok)
	require.Equal(t, len(want), store.commits)
	require.Equal(t, StateCommitted, a.State())
}

func TestExecuteAutosaveBeforeLoadStartsAfterSlotStart(t *testing.T) {
	a, store, repo := newTestAllocator(t)
	host := &recordingHost{}

	res, err := a.ExecuteAutosave(context.Background(), host, host)
	require.NoError(t, err)
	require.Equal(t, SlotID(2), res.Slot)
	require.Equal(t, []SlotID{2}, repo.saved)
	require.Equal(t, 2, store.values[LastSaveIndexKey])
}

func TestExecuteAutosaveFailureLeavesRotation(t *testing.T) {
	a, store, repo := newTestAllocator(t)
	store.values[LastSaveIndexKey] = 5
	a.LoadLastSaveIndex()
	repo.failOn[1] = errDiskFull
	host := &recordingHost{}

	res, err := a.ExecuteAutosave(context.Background(), host, host)
	require.NoError(t, err)
	require.Equal(t, StateFailed, res.State)
	require.Equal(t, SlotID(1), res.Slot)
	require.ErrorIs(t, res.Err, errDiskFull)
	require.Equal(t, []string{"before", "failure"}, host.events)

	idx, ok := a.CurrentIndex()
	require.True(t, ok)
	require.Equal(t, SlotID(5), idx)
	require.Equal(t, 5, store.values[LastSaveIndexKey])
	require.Zero(t, store.commits)

	// The next trigger retries the same slot.
	delete(repo.failOn, 1)
	res, err = a.ExecuteAutosave(context.Background(), host, host)
	require.NoError(t, err)
	require.Equal(t, StateCommitted, res.State)
	require.Equal(t, SlotID(1), res.Slot)
}

func TestExecuteAutosaveNeverTargetsManualRange(t *testing.T) {
	a, _, repo := newTestAllocator(t)
	a.LoadLastSaveIndex()
	for i := 0; i < 40; i++ {
		_, err := a.ExecuteAutosave(context.Background(), nil, nil)
		require.NoError(t, err)
	}
	for _, slot := range repo.saved {
		require.True(t, a.Layout().IsAutosaveSlot(slot), "slot %d", slot)
	}
}

type blockingRepo struct {
	started chan struct{}
	release chan struct{}
}

func (r *blockingRepo) Save(ctx context.Context, _ SlotID) error {
	close(r.started)
	<-r.release
	return nil
}

func TestExecuteAutosaveRejectsOverlap(t *testing.T) {
	repo := &blockingRepo{started: make(chan struct{}), release: make(chan struct{})}
	a := NewAllocator(mustLayout(t, 20, 5), newMemStore(), repo)
	a.LoadLastSaveIndex()

	done := make(chan AutosaveResult)
	go func() {
		res, _ := a.ExecuteAutosave(context.Background(), nil, nil)
		done <- res
	}()
	<-repo.started

	_, err := a.ExecuteAutosave(context.Background(), nil, nil)
	require.ErrorIs(t, err, ErrAutosaveInFlight)
	require.Equal(t, StateSaving, a.State())

	close(repo.release)
	res := <-done
	require.Equal(t, StateCommitted, res.State)
	require.Equal(t, SlotID(2), res.Slot)
}
