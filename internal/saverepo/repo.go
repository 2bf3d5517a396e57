// Package saverepo stores game-state snapshots in numbered slot files.
package saverepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/appengine-ltd/autosave-slots/internal/slots"
)

const FormatVersion = 1

var slotFileRE = regexp.MustCompile(`^save-([1-9][0-9]*)\.json$`)

// ErrSlotEmpty is returned by Load when nothing has been saved to a slot.
var ErrSlotEmpty = errors.New("save slot is empty")

// Snapshotter produces the serialized game state written into a slot.
type Snapshotter interface {
	Snapshot() (json.RawMessage, error)
}

type Record struct {
	FormatVersion int             `json:"format_version"`
	SavedAt       time.Time       `json:"saved_at"`
	Slot          slots.SlotID    `json:"slot"`
	State         json.RawMessage `json:"state"`
}

type Entry struct {
	Slot    slots.SlotID
	Path    string
	SavedAt time.Time
}

// Repository keeps one JSON file per slot under a root directory.
type Repository struct {
	root   string
	source Snapshotter
	now    func() time.Time
}

// New creates the root directory if needed. source may be nil for a
// read-only repository; Save then fails.
func New(root string, source Snapshotter) (*Repository, error) {
	if root == "" {
		return nil, errors.New("save directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create save directory: %w", err)
	}
	return &Repository{root: root, source: source, now: time.Now}, nil
}

func (r *Repository) Root() string { return r.root }

// FileNameForSlot is the file name used for slot inside the root.
func FileNameForSlot(slot slots.SlotID) string {
	if slot < 1 {
		slot = 1
	}
	return fmt.Sprintf("save-%d.json", slot)
}

func validateSlotFileName(name string) error {
	if !slotFileRE.MatchString(name) {
		return fmt.Errorf("invalid save file name %q", name)
	}
	return nil
}

func (r *Repository) pathForSlot(slot slots.SlotID) (string, error) {
	if slot < 1 {
		return "", fmt.Errorf("invalid slot %d", slot)
	}
	name := FileNameForSlot(slot)
	if err := validateSlotFileName(name); err != nil {
		return "", err
	}
	return securejoin.SecureJoin(r.root, name)
}

// Save snapshots the bound game state into slot, overwriting it.
func (r *Repository) Save(ctx context.Context, slot slots.SlotID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.source == nil {
		return errors.New("no game state bound to repository")
	}
	path, err := r.pathForSlot(slot)
	if err != nil {
		return err
	}
	state, err := r.source.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshot game state: %w", err)
	}
	payload := Record{FormatVersion: FormatVersion, SavedAt: r.now().UTC(), Slot: slot, State: state}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func (r *Repository) Load(ctx context.Context, slot slots.SlotID) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	path, err := r.pathForSlot(slot)
	if err != nil {
		return Record{}, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, fmt.Errorf("slot %d: %w", slot, ErrSlotEmpty)
	}
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("parse slot %d: %w", slot, err)
	}
	if rec.FormatVersion > FormatVersion {
		return Record{}, fmt.Errorf("slot %d: unsupported format version %d", slot, rec.FormatVersion)
	}
	return rec, nil
}

func (r *Repository) Exists(ctx context.Context, slot slots.SlotID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	path, err := r.pathForSlot(slot)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repository) Delete(ctx context.Context, slot slots.SlotID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := r.pathForSlot(slot)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// List returns every readable slot file, newest first. Unreadable or
// malformed files are skipped.
func (r *Repository) List(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matches, err := filepath.Glob(filepath.Join(r.root, "save-*.json"))
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(matches))
	for _, path := range matches {
		m := slotFileRE.FindStringSubmatch(filepath.Base(path))
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		entries = append(entries, Entry{Slot: slots.SlotID(n), Path: path, SavedAt: rec.SavedAt})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].SavedAt.Equal(entries[j].SavedAt) {
			return entries[i].Slot < entries[j].Slot
		}
		return entries[i].SavedAt.After(entries[j].SavedAt)
	})
	return entries, nil
}
