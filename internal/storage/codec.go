package storage

import (
	"time"

	"github.com/habitflow/habitflow/internal/models"
)

// DayFormat is the wire format for completion calendar days.
const DayFormat = "2006-01-02"

// storeFile is the on-disk JSON document.
type storeFile struct {
	Users       []userRecord  `json:"users"`
	Habits      []habitRecord `json:"habits"`
	NextUserID  int           `json:"nextUserId"`
	NextHabitID int           `json:"nextHabitId"`
}

type userRecord struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	JoinDate string `json:"joinDate"`
}

type habitRecord struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	TargetFrequency int      `json:"targetFrequency"`
	Category        string   `json:"category"`
	Completions     []string `json:"completions"`
	CreatedAt       string   `json:"createdAt"`
	UserID          int      `json:"userId"`
}

func encodeSnapshot(snap *Snapshot) storeFile {
	file := storeFile{
		Users:       make([]userRecord, 0, len(snap.Users)),
		Habits:      make([]habitRecord, 0, len(snap.Habits)),
		NextUserID:  snap.NextUserID,
		NextHabitID: snap.NextHabitID,
	}
	for _, u := range snap.Users {
		file.Users = append(file.Users, userRecord{
			ID:       u.ID,
			Name:     u.Name,
			JoinDate: u.JoinDate.Format(time.RFC3339),
		})
	}
	for _, h := range snap.Habits {
		file.Habits = append(file.Habits, encodeHabit(h))
	}
	return file
}

func encodeHabit(h *models.Habit) habitRecord {
	days := make([]string, 0, len(h.Completions))
	for _, c := range h.Completions {
		days = append(days, c.Format(DayFormat))
	}
	return habitRecord{
		ID:              h.ID,
		Name:            h.Name,
		TargetFrequency: h.TargetFrequency,
		Category:        string(h.Category),
		Completions:     days,
		CreatedAt:       h.CreatedAt.Format(time.RFC3339),
		UserID:          h.UserID,
	}
}

// decodeSnapshot applies the lenient load policy: missing or malformed
// fields become safe defaults instead of failing the load. Only this path
// defaults; the models constructors reject bad input.
func decodeSnapshot(file storeFile) *Snapshot {
	snap := EmptySnapshot()
	snap.NextUserID = file.NextUserID
	snap.NextHabitID = file.NextHabitID

	for _, r := range file.Users {
		snap.Users = append(snap.Users, decodeUser(r))
	}
	for _, r := range file.Habits {
		snap.Habits = append(snap.Habits, decodeHabit(r))
	}

	enforceCounters(snap)
	return snap
}

func decodeUser(r userRecord) *models.User {
	name := r.Name
	if name == "" {
		name = "User"
	}
	return &models.User{
		ID:       r.ID,
		Name:     name,
		JoinDate: parseTimeOrNow(r.JoinDate),
	}
}

func decodeHabit(r habitRecord) *models.Habit {
	name := r.Name
	if name == "" {
		name = "Unknown"
	}
	freq := r.TargetFrequency
	if freq < 1 {
		freq = 1
	}

	// Drop malformed entries and same-day duplicates.
	seen := make(map[string]bool, len(r.Completions))
	completions := make([]time.Time, 0, len(r.Completions))
	for _, s := range r.Completions {
		day, err := time.ParseInLocation(DayFormat, s, time.Local)
		if err != nil {
			continue
		}
		key := day.Format(DayFormat)
		if seen[key] {
			continue
		}
		seen[key] = true
		completions = append(completions, day)
	}

	return &models.Habit{
		ID:              r.ID,
		UserID:          r.UserID,
		Name:            name,
		TargetFrequency: freq,
		Category:        models.NormalizeCategory(r.Category),
		Completions:     completions,
		CreatedAt:       parseTimeOrNow(r.CreatedAt),
	}
}

func parseTimeOrNow(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Now()
}
