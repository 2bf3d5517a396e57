package slots

import (
	"context"
	"errors"
)

type memStore struct {
	values  map[string]int
	raw     map[string]bool // keys present but not numeric
	commits int
	sets    int
	failErr error
}

func newMemStore() *memStore {
	return &memStore{values: map[string]int{}, raw: map[string]bool{}}
}

func (s *memStore) GetInt(key string) (int, bool) {
	if s.raw[key] {
		return 0, false
	}
	v, ok := s.values[key]
	return v, ok
}

func (s *memStore) SetInt(key string, value int) {
	s.sets++
	delete(s.raw, key)
	s.values[key] = value
}

func (s *memStore) Commit(context.Context) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.commits++
	return nil
}

type memRepo struct {
	saved  []SlotID
	failOn map[SlotID]error
}

func newMemRepo() *memRepo {
	return &memRepo{failOn: map[SlotID]error{}}
}

var errDiskFull = errors.New("disk full")

func (r *memRepo) Save(_ context.Context, slot SlotID) error {
	if err := r.failOn[slot]; err != nil {
		return err
	}
	r.saved = append(r.saved, slot)
	return nil
}

type recordingHost struct {
	events []string
	before int
	ok     []SlotID
	failed []SlotID
}

func (h *recordingHost) OnBeforeSave() {
	h.before++
	h.events = append(h.events, "before")
}

func (h *recordingHost) OnAutosaveSuccess(slot SlotID) {
	h.ok = append(h.ok, slot)
	h.events = append(h.events, "success")
}

func (h *recordingHost) OnAutosaveFailure(slot SlotID, _ error) {
	h.failed = append(h.failed, slot)
	h.events = append(h.events, "failure")
}
