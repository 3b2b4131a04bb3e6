package tracker

import (
	"time"

	"github.com/habitflow/habitflow/internal/models"
	"github.com/habitflow/habitflow/internal/storage"
)

// HabitRate pairs a habit with its weekly completion percentage.
type HabitRate struct {
	Name       string
	Percentage int
}

// UserStats is the derived statistics view for the current profile.
type UserStats struct {
	TotalHabits int
	AverageRate int
	Best        HabitRate
	Worst       HabitRate
	Details     []HabitRate
}

// CurrentUserStats derives statistics over the current user's habits.
// The second return is false when no profile is selected or it has no habits.
func (t *Tracker) CurrentUserStats() (UserStats, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	habits := t.currentHabits()
	if len(habits) == 0 {
		return UserStats{}, false
	}

	stats := UserStats{TotalHabits: len(habits)}
	sum := 0
	for _, h := range habits {
		pct, err := h.ProgressPercentage()
		if err != nil {
			t.logger.Warn("skipping habit in stats", "id", h.ID, "err", err)
			continue
		}
		rate := HabitRate{Name: h.Name, Percentage: pct}
		stats.Details = append(stats.Details, rate)
		sum += pct
	}
	if len(stats.Details) == 0 {
		return UserStats{}, false
	}

	stats.AverageRate = (sum + len(stats.Details)/2) / len(stats.Details)
	stats.Best = stats.Details[0]
	stats.Worst = stats.Details[0]
	for _, r := range stats.Details[1:] {
		if r.Percentage > stats.Best.Percentage {
			stats.Best = r
		}
		if r.Percentage < stats.Worst.Percentage {
			stats.Worst = r
		}
	}
	return stats, true
}

// HistoryDay lists the habit names completed on one calendar day.
type HistoryDay struct {
	Day    string
	Habits []string
}

// History is the recent completion activity of the current profile.
type History struct {
	Days             []HistoryDay
	TotalCompletions int
	AveragePerHabit  float64
}

// CompletionHistory walks the last `days` calendar days, oldest first,
// keeping only days with at least one completion. Totals cover the habits'
// entire completion sets, not just the window.
func (t *Tracker) CompletionHistory(days int) (History, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	habits := t.currentHabits()
	if len(habits) == 0 {
		return History{}, false
	}

	completedOn := make(map[string][]string)
	total := 0
	for _, h := range habits {
		total += len(h.Completions)
		for _, c := range h.Completions {
			key := c.Format(storage.DayFormat)
			completedOn[key] = append(completedOn[key], h.Name)
		}
	}

	var hist History
	hist.TotalCompletions = total
	hist.AveragePerHabit = float64(total) / float64(len(habits))

	today := models.StartOfDay(time.Now())
	for i := days - 1; i >= 0; i-- {
		key := today.AddDate(0, 0, -i).Format(storage.DayFormat)
		if names, ok := completedOn[key]; ok {
			hist.Days = append(hist.Days, HistoryDay{Day: key, Habits: names})
		}
	}
	return hist, true
}
