package saverepo

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/appengine-ltd/autosave-slots/internal/slots"
)

type staticState struct {
	body string
	err  error
}

func (s *staticState) Snapshot() (json.RawMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(s.body), nil
}

func newTestRepo(t *testing.T, body string) *Repository {
	t.Helper()
	r, err := New(t.TempDir(), &staticState{body: body})
	require.NoError(t, err)
	return r
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	r := newTestRepo(t, `{"gold":12}`)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, 3))

	rec, err := r.Load(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, FormatVersion, rec.FormatVersion)
	require.Equal(t, slots.SlotID(3), rec.Slot)
	require.JSONEq(t, `{"gold":12}`, string(rec.State))

	info, err := os.Stat(filepath.Join(r.Root(), "save-3.json"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestExistsAndDelete(t *testing.T) {
	r := newTestRepo(t, `{}`)
	ctx := context.Background()

	ok, err := r.Exists(ctx, 7)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, r.Save(ctx, 7))
	ok, err = r.Exists(ctx, 7)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, r.Delete(ctx, 7))
	require.NoError(t, r.Delete(ctx, 7))
	_, err = r.Load(ctx, 7)
	require.ErrorIs(t, err, ErrSlotEmpty)
}

func TestListNewestFirstSkipsJunk(t *testing.T) {
	r := newTestRepo(t, `{}`)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, slot := range []slots.SlotID{2, 9, 4} {
		at := base.Add(time.Duration(i) * time.Minute)
		r.now = func() time.Time { return at }
		require.NoError(t, r.Save(ctx, slot))
	}
	require.NoError(t, os.WriteFile(filepath.Join(r.Root(), "save-5.json"), []byte("nope"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(r.Root(), "save-x.json"), []byte("{}"), 0o600))

	entries, err := r.List(ctx)
	require.NoError(t, err)
	got := make([]slots.SlotID, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.Slot)
	}
	require.Equal(t, []slots.SlotID{4, 9, 2}, got)
}

func TestSaveRejectsInvalidSlot(t *testing.T) {
	r := newTestRepo(t, `{}`)
	require.Error(t, r.Save(context.Background(), 0))
	require.Error(t, r.Save(context.Background(), -3))
}

func TestSaveSnapshotFailure(t *testing.T) {
	boom := errors.New("boom")
	r, err := New(t.TempDir(), &staticState{err: boom})
	require.NoError(t, err)

	err = r.Save(context.Background(), 1)
	require.ErrorIs(t, err, boom)
	ok, _ := r.Exists(context.Background(), 1)
	require.False(t, ok)
}

func TestLoadRejectsNewerFormat(t *testing.T) {
	r := newTestRepo(t, `{}`)
	body := `{"format_version": 99, "slot": 6, "state": {}}`
	require.NoError(t, os.WriteFile(filepath.Join(r.Root(), "save-6.json"), []byte(body), 0o600))

	_, err := r.Load(context.Background(), 6)
	require.Error(t, err)
}

func TestValidateSlotFileName(t *testing.T) {
	allowed := []string{FileNameForSlot(1), FileNameForSlot(25), "save-103.json"}
	for _, name := range allowed {
		if err := validateSlotFileName(name); err != nil {
			t.Fatalf("expected allowed name %q, got error: %v", name, err)
		}
	}
	rejected := []string{
		"../save-1.json",
		"nested/save-1.json",
		"save-.json",
		"save-0.json",
		"save-*.json",
	}
	for _, name := range rejected {
		if err := validateSlotFileName(name); err == nil {
			t.Fatalf("expected name %q to be rejected", name)
		}
	}
}

func TestGuardedRepositoryOverFiles(t *testing.T) {
	r := newTestRepo(t, `{}`)
	guarded := slots.Guard(r, slots.DefaultLayout())

	require.ErrorIs(t, guarded.Save(context.Background(), 3), slots.ErrRestrictedSlot)
	ok, err := r.Exists(context.Background(), 3)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, guarded.Save(context.Background(), 8))
	ok, err = r.Exists(context.Background(), 8)
	require.NoError(t, err)
	require.True(t, ok)
}
