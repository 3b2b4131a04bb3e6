package models

import (
	"math"
	"time"
)

// User is a tracked profile. The counter fields are derived caches,
// recomputed in full by UpdateStats and never adjusted incrementally.
type User struct {
	ID       int
	Name     string
	JoinDate time.Time

	TotalHabits     int
	ActiveHabits    int
	CompletedHabits int
}

// NewUser creates a profile joining now. An empty name falls back to "User".
func NewUser(id int, name string) *User {
	if name == "" {
		name = "User"
	}
	return &User{
		ID:       id,
		Name:     name,
		JoinDate: time.Now(),
	}
}

// UpdateStats recounts the aggregate counters from the user's habit list.
func (u *User) UpdateStats(habits []*Habit) {
	u.TotalHabits = len(habits)
	completed := 0
	for _, h := range habits {
		if h.IsCompletedThisWeek() {
			completed++
		}
	}
	u.CompletedHabits = completed
	u.ActiveHabits = u.TotalHabits - completed
}

// DaysJoined returns the number of calendar days since the profile was
// created, rounded up, never less than 1.
func (u *User) DaysJoined() int {
	elapsed := time.Since(u.JoinDate).Hours() / 24
	days := int(math.Ceil(elapsed))
	if days < 1 {
		return 1
	}
	return days
}
