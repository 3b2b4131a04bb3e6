// Package tracker owns the in-memory collection of users and habits, the
// current-profile selection, and snapshot persistence. All derived counters
// are recomputed in full after every mutation.
package tracker

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/habitflow/habitflow/internal/models"
	"github.com/habitflow/habitflow/internal/storage"
)

// Filter selects a slice of the current user's habits by weekly status.
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

// Tracker is the aggregate root over (users, habits, currentUser). The mutex
// exists for the reminder goroutine, which reads habit state concurrently
// with the prompt loop's mutations.
type Tracker struct {
	mu     sync.RWMutex
	store  storage.Provider
	logger *log.Logger

	users       []*models.User
	habits      []*models.Habit
	current     *models.User
	nextUserID  int
	nextHabitID int
}

// New loads the persisted snapshot leniently and returns a ready tracker.
// A failed load is logged and the tracker starts from the empty snapshot the
// store hands back; it does not abort the program.
func New(store storage.Provider, logger *log.Logger) *Tracker {
	snap, err := store.Load()
	if err != nil {
		logger.Warn("failed to load data, starting empty", "path", store.Path(), "err", err)
	}
	return &Tracker{
		store:       store,
		logger:      logger,
		users:       snap.Users,
		habits:      snap.Habits,
		nextUserID:  snap.NextUserID,
		nextHabitID: snap.NextHabitID,
	}
}

// persist writes the whole snapshot. A write failure is logged and absorbed;
// in-memory state stays authoritative until the next successful save.
func (t *Tracker) persist() {
	snap := &storage.Snapshot{
		Users:       t.users,
		Habits:      t.habits,
		NextUserID:  t.nextUserID,
		NextHabitID: t.nextHabitID,
	}
	if err := t.store.Save(snap); err != nil {
		t.logger.Error("failed to save data", "path", t.store.Path(), "err", err)
	}
}

// AddUser creates a profile with the next sequential id and persists.
func (t *Tracker) AddUser(name string) *models.User {
	t.mu.Lock()
	defer t.mu.Unlock()

	user := models.NewUser(t.nextUserID, name)
	t.nextUserID++
	t.users = append(t.users, user)
	t.persist()
	t.logger.Info("user added", "id", user.ID, "name", user.Name)
	return user
}

// SelectUser makes the matching profile current, or clears the selection when
// no profile has the given id. Pure selection, no data side effect.
func (t *Tracker) SelectUser(id int) *models.User {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.current = nil
	for _, u := range t.users {
		if u.ID == id {
			t.current = u
			break
		}
	}
	return t.current
}

// CurrentUser returns the selected profile, or nil.
func (t *Tracker) CurrentUser() *models.User {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// Users returns the profile list in insertion order.
func (t *Tracker) Users() []*models.User {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*models.User, len(t.users))
	copy(out, t.users)
	return out
}

// HabitCountForUser counts the habits owned by a profile.
func (t *Tracker) HabitCountForUser(userID int) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, h := range t.habits {
		if h.UserID == userID {
			n++
		}
	}
	return n
}

// currentHabits returns the current user's habits in insertion order.
// Callers must hold the lock.
func (t *Tracker) currentHabits() []*models.Habit {
	if t.current == nil {
		return []*models.Habit{}
	}
	var out []*models.Habit
	for _, h := range t.habits {
		if h.UserID == t.current.ID {
			out = append(out, h)
		}
	}
	return out
}

// CurrentUserHabits returns the current user's habits; empty when no profile
// is selected.
func (t *Tracker) CurrentUserHabits() []*models.Habit {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.currentHabits()
}

// FilteredCurrentHabits narrows the current user's habits by weekly status.
func (t *Tracker) FilteredCurrentHabits(f Filter) []*models.Habit {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []*models.Habit
	for _, h := range t.currentHabits() {
		switch f {
		case FilterActive:
			if h.IsCompletedThisWeek() {
				continue
			}
		case FilterCompleted:
			if !h.IsCompletedThisWeek() {
				continue
			}
		}
		out = append(out, h)
	}
	return out
}

// AddHabit creates a habit owned by the current user. It is a silent no-op
// (nil) when no profile is selected; an unknown category falls back to the
// default rather than failing.
func (t *Tracker) AddHabit(name string, frequency int, category string) *models.Habit {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return nil
	}

	habit, err := models.NewHabit(t.nextHabitID, t.current.ID, name, frequency, models.NormalizeCategory(category))
	if err != nil {
		t.logger.Warn("rejected habit", "name", name, "err", err)
		return nil
	}
	t.nextHabitID++
	t.habits = append(t.habits, habit)
	t.current.UpdateStats(t.currentHabits())
	t.persist()
	t.logger.Info("habit added", "id", habit.ID, "name", habit.Name, "user", t.current.ID)
	return habit
}

// CompleteHabit marks the habit at the given 1-based position in the current
// user's habit list as done today. It returns whether state changed: false
// for an out-of-range index, no selection, or an already-marked day.
func (t *Tracker) CompleteHabit(index int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return false
	}
	habits := t.currentHabits()
	if index < 1 || index > len(habits) {
		return false
	}

	marked := habits[index-1].MarkComplete()
	t.current.UpdateStats(habits)
	t.persist()
	return marked
}

// DeleteHabit removes the habit at the given 1-based position in the current
// user's habit list from the whole collection. Removal is by identity, since
// per-user and global positions differ.
func (t *Tracker) DeleteHabit(index int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return false
	}
	habits := t.currentHabits()
	if index < 1 || index > len(habits) {
		return false
	}

	target := habits[index-1]
	for i, h := range t.habits {
		if h.ID == target.ID {
			t.habits = append(t.habits[:i], t.habits[i+1:]...)
			t.current.UpdateStats(t.currentHabits())
			t.persist()
			t.logger.Info("habit deleted", "id", target.ID, "name", target.Name)
			return true
		}
	}
	return false
}

// RefreshStats recounts the current user's aggregate counters.
func (t *Tracker) RefreshStats() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current != nil {
		t.current.UpdateStats(t.currentHabits())
	}
}

// IncompleteHabitNames returns the names of the current user's habits that
// have not met their weekly target. Used by the reminder tick, so it copies
// out plain strings rather than sharing habit pointers across goroutines.
func (t *Tracker) IncompleteHabitNames() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var names []string
	for _, h := range t.currentHabits() {
		if !h.IsCompletedThisWeek() {
			names = append(names, h.Name)
		}
	}
	return names
}

// SeedDemoData adds the starter habits when the current user has none.
// Returns whether anything was seeded.
func (t *Tracker) SeedDemoData() bool {
	if t.CurrentUser() == nil || len(t.CurrentUserHabits()) > 0 {
		return false
	}
	t.AddHabit("Drink 8 Glasses of Water", 7, string(models.CategoryHealth))
	t.AddHabit("Read 30 Minutes", 5, string(models.CategoryStudy))
	t.AddHabit("Exercise 15 Minutes", 3, string(models.CategoryFitness))
	return true
}

// ClearAllData wipes everything: both collections, the selection, and the id
// counters. Irreversible, persisted immediately.
func (t *Tracker) ClearAllData() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.users = []*models.User{}
	t.habits = []*models.Habit{}
	t.current = nil
	t.nextUserID = 1
	t.nextHabitID = 1
	t.persist()
	t.logger.Info("all data cleared")
}
