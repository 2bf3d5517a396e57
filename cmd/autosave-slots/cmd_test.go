package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/appengine-ltd/autosave-slots/internal/configstore"
	"github.com/appengine-ltd/autosave-slots/internal/logging"
	"github.com/appengine-ltd/autosave-slots/internal/slots"
)

type testEnv struct {
	dir      string
	settings string
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
}

func setupTestEnv(t *testing.T, settings string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:      dir,
		settings: filepath.Join(dir, "autosave-slots.toml"),
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
	}
	body := settings + "\n" +
		"save_dir = " + quote(filepath.Join(dir, "saves")) + "\n" +
		"config_path = " + quote(filepath.Join(dir, "config.json")) + "\n"
	require.NoError(t, os.WriteFile(env.settings, []byte(body), 0o600))

	logging.SetUserOutput(env.stdout, env.stderr)
	t.Cleanup(func() { logging.SetUserOutput(os.Stdout, os.Stderr) })
	return env
}

func quote(s string) string {
	return "'" + s + "'"
}

// run executes the root command with a clean flag state.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	verbose, jsonOutput, fresh = false, false, false
	saveDir, storePath = "", ""
	seed = 7
	listLoad, uiLoad = false, false

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(e.stderr)
	rootCmd.SetArgs(append([]string{"--config", e.settings}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAutosaveRotatesAcrossInvocations(t *testing.T) {
	env := setupTestEnv(t, "num_save_slots = 3")

	want := []string{"Autosave 2", "Autosave 3", "Autosave 1", "Autosave 2"}
	for _, title := range want {
		env.stdout.Reset()
		_, err := env.run(t, "autosave")
		require.NoError(t, err)
		require.Contains(t, env.stdout.String(), "✓ Autosaved to "+title)
	}

	store, err := configstore.Open(filepath.Join(env.dir, "config.json"))
	require.NoError(t, err)
	v, ok := store.GetInt(slots.LastSaveIndexKey)
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestSaveRefusesAutosaveSlot(t *testing.T) {
	env := setupTestEnv(t, "")

	_, err := env.run(t, "save", "3")
	require.ErrorIs(t, err, slots.ErrRestrictedSlot)
	require.Contains(t, err.Error(), "Autosave 3 is reserved")
	require.NoFileExists(t, filepath.Join(env.dir, "saves", "save-3.json"))

	_, err = env.run(t, "save", "6")
	require.NoError(t, err)
	require.Contains(t, env.stdout.String(), "✓ Saved to File 1")
	require.FileExists(t, filepath.Join(env.dir, "saves", "save-6.json"))
	require.NotContains(t, env.stderr.String(), "Overwriting")

	_, err = env.run(t, "save", "6")
	require.NoError(t, err)
	require.Contains(t, env.stderr.String(), "⚠ Overwriting File 1")
}

func TestSaveRejectsBadSlotArgument(t *testing.T) {
	env := setupTestEnv(t, "")

	_, err := env.run(t, "save", "abc")
	require.ErrorContains(t, err, "invalid slot")

	_, err = env.run(t, "save", "26")
	require.ErrorContains(t, err, "out of range 1-25")
}

func TestListMarksReservedSlots(t *testing.T) {
	env := setupTestEnv(t, "max_savefiles = 2\nnum_save_slots = 2")

	out, err := env.run(t, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	require.Contains(t, lines[1], "Autosave 1")
	require.Contains(t, lines[1], "locked")
	require.Contains(t, lines[3], "File 1")
	require.Contains(t, lines[3], "open")

	out, err = env.run(t, "list", "--load")
	require.NoError(t, err)
	require.NotContains(t, out, "open")
}

func TestStatusAfterAutosave(t *testing.T) {
	env := setupTestEnv(t, "")

	_, err := env.run(t, "autosave")
	require.NoError(t, err)
	out, err := env.run(t, "status")
	require.NoError(t, err)
	require.Contains(t, out, "Last autosave: Autosave 2")
	require.Contains(t, out, "Next autosave: Autosave 3")
	require.Contains(t, out, "Manual slots: 20 (6-25)")
	require.Contains(t, out, "Config store: "+filepath.Join(env.dir, "config.json"))
}

func TestLoadResumesSavedGame(t *testing.T) {
	env := setupTestEnv(t, "")

	_, err := env.run(t, "save", "7")
	require.NoError(t, err)
	out, err := env.run(t, "load", "7")
	require.NoError(t, err)
	require.Contains(t, out, "Day 1")

	_, err = env.run(t, "load", "8")
	require.Error(t, err)
}

func TestInvalidSettingsFailFast(t *testing.T) {
	env := setupTestEnv(t, "max_savefiles = 0")

	_, err := env.run(t, "status")
	require.ErrorContains(t, err, "max_savefiles")
}

func TestConsoleCommand(t *testing.T) {
	env := setupTestEnv(t, "")

	rootCmd.SetIn(strings.NewReader("save 2\nsave 9\nquit\n"))
	t.Cleanup(func() { rootCmd.SetIn(nil) })
	out, err := env.run(t, "--fresh", "console")
	require.NoError(t, err)
	require.Contains(t, out, "Autosave 2 is reserved for autosaves.")
	require.Contains(t, out, "Saved to File 4")
}

func TestVersion(t *testing.T) {
	env := setupTestEnv(t, "")

	out, err := env.run(t, "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "autosave-slots dev"))
}
