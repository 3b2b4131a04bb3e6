package storage

import (
	"strings"

	"github.com/habitflow/habitflow/internal/models"
)

// Snapshot is the whole persisted state: every mutation rewrites all of it.
type Snapshot struct {
	Users       []*models.User
	Habits      []*models.Habit
	NextUserID  int
	NextHabitID int
}

// EmptySnapshot returns a fresh store state with both id counters at 1.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		Users:       []*models.User{},
		Habits:      []*models.Habit{},
		NextUserID:  1,
		NextHabitID: 1,
	}
}

// Provider persists whole-store snapshots. Implementations are not safe for
// concurrent use; the tracker serializes access. Running multiple processes
// against the same path is unsupported.
type Provider interface {
	// Load reads the snapshot leniently: a missing file yields an empty
	// snapshot, malformed fields are defaulted. A snapshot is returned even
	// on error so the caller can continue with in-memory state.
	Load() (*Snapshot, error)

	// Save overwrites the entire persisted state.
	Save(*Snapshot) error

	Path() string
	Close() error
}

// New picks a backend by file extension, JSON for .json paths and SQLite
// otherwise.
func New(path string) Provider {
	if strings.HasSuffix(path, ".json") {
		return NewJSONStore(path)
	}
	return NewSQLiteStore(path)
}

// enforceCounters bumps the id counters past every issued id. The counters
// must stay strictly greater than any id ever handed out, even when a
// snapshot was written by an older run with lagging values.
func enforceCounters(snap *Snapshot) {
	if snap.NextUserID < 1 {
		snap.NextUserID = 1
	}
	if snap.NextHabitID < 1 {
		snap.NextHabitID = 1
	}
	for _, u := range snap.Users {
		if u.ID >= snap.NextUserID {
			snap.NextUserID = u.ID + 1
		}
	}
	for _, h := range snap.Habits {
		if h.ID >= snap.NextHabitID {
			snap.NextHabitID = h.ID + 1
		}
	}
}
