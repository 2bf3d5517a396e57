package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// State is the part of a run that goes into a save slot. Its methods may
// be called from a save worker while a UI goroutine reads Summary.
type State struct {
	mu sync.Mutex

	Seed       int64     `json:"seed"`
	Day        int       `json:"day"`
	ClockHours float64   `json:"clock_hours"`
	Location   string    `json:"location"`
	Gold       int       `json:"gold"`
	Steps      int       `json:"steps"`
	SaveCount  int       `json:"save_count"`
	SavedAt    time.Time `json:"saved_at,omitempty"`

	now func() time.Time
}

func NewState(seed int64) *State {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &State{
		Seed:       seed,
		Day:        1,
		ClockHours: 7,
		Location:   "Village",
		now:        time.Now,
	}
}

// OnBeforeSave stamps the state right before it is snapshotted.
func (s *State) OnBeforeSave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SaveCount++
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	s.SavedAt = now().UTC()
}

func (s *State) Snapshot() (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}

// Restore replaces s with a previously snapshotted state.
func (s *State) Restore(raw json.RawMessage) error {
	var loaded State
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	if loaded.Day < 1 {
		return errors.New("decode state: day must be at least 1")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Seed = loaded.Seed
	s.Day = loaded.Day
	s.ClockHours = loaded.ClockHours
	s.Location = loaded.Location
	s.Gold = loaded.Gold
	s.Steps = loaded.Steps
	s.SaveCount = loaded.SaveCount
	s.SavedAt = loaded.SavedAt
	return nil
}

// Travel moves to a new location and advances the clock. It reports true
// when the move should trigger an autosave, which is every map change.
func (s *State) Travel(to string, hours float64) bool {
	to = strings.TrimSpace(to)
	s.mu.Lock()
	defer s.mu.Unlock()
	if to == "" || strings.EqualFold(to, s.Location) {
		return false
	}
	s.Location = to
	s.Steps++
	s.advanceLocked(hours)
	rng := travelRNG(s.Seed, s.Steps, to)
	s.Gold += rng.IntN(20)
	return true
}

func (s *State) Advance(hours float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanceLocked(hours)
}

func (s *State) advanceLocked(hours float64) {
	if hours <= 0 {
		return
	}
	s.ClockHours += hours
	for s.ClockHours >= 24 {
		s.ClockHours -= 24
		s.Day++
	}
}

func (s *State) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("Day %d %02d:00 at %s, %d gold", s.Day, int(s.ClockHours), s.Location, s.Gold)
}

// Destinations are the maps a run can travel between.
var Destinations = []string{"Village", "Forest", "Harbor", "Keep", "Mine"}
