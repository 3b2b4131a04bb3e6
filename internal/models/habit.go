package models

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// ErrInvalidArgument marks constructor and engine inputs that are rejected
// outright. The lenient persistence load path never produces it; direct
// in-memory construction does.
var ErrInvalidArgument = errors.New("invalid argument")

// Status is a habit's binary weekly state.
type Status string

const (
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
)

// Habit is a recurring practice with a weekly completion target.
// Completions hold at most one entry per calendar day, each truncated to
// local midnight.
type Habit struct {
	ID              int
	UserID          int
	Name            string
	TargetFrequency int
	Category        Category
	Completions     []time.Time
	CreatedAt       time.Time
}

// NewHabit validates and creates a habit. The name must be non-empty and the
// target frequency positive; violations return ErrInvalidArgument.
func NewHabit(id, userID int, name string, targetFrequency int, category Category) (*Habit, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: habit name must not be empty", ErrInvalidArgument)
	}
	if targetFrequency < 1 {
		return nil, fmt.Errorf("%w: target frequency must be >= 1, got %d", ErrInvalidArgument, targetFrequency)
	}
	return &Habit{
		ID:              id,
		UserID:          userID,
		Name:            strings.TrimSpace(name),
		TargetFrequency: targetFrequency,
		Category:        NormalizeCategory(string(category)),
		Completions:     []time.Time{},
		CreatedAt:       time.Now(),
	}, nil
}

// StartOfDay truncates a time to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the most recent Sunday at local midnight, which anchors
// the rolling week window.
func startOfWeek(now time.Time) time.Time {
	return StartOfDay(now).AddDate(0, 0, -int(now.Weekday()))
}

// MarkComplete records a completion for today. It returns true if state
// changed and false if today was already marked; calling it more than once
// per day is a no-op.
func (h *Habit) MarkComplete() bool {
	return h.MarkCompleteAt(time.Now())
}

// MarkCompleteAt is MarkComplete evaluated against an explicit "now".
func (h *Habit) MarkCompleteAt(now time.Time) bool {
	day := StartOfDay(now)
	for _, c := range h.Completions {
		if StartOfDay(c).Equal(day) {
			return false
		}
	}
	h.Completions = append(h.Completions, day)
	return true
}

// ThisWeekCompletions returns the completions falling inside the current
// rolling week window.
func (h *Habit) ThisWeekCompletions() []time.Time {
	return h.ThisWeekCompletionsAt(time.Now())
}

// ThisWeekCompletionsAt evaluates the week window against an explicit "now".
// A completion counts iff its calendar day is on or after the most recent
// Sunday midnight.
func (h *Habit) ThisWeekCompletionsAt(now time.Time) []time.Time {
	week := startOfWeek(now)
	var out []time.Time
	for _, c := range h.Completions {
		if !StartOfDay(c).Before(week) {
			out = append(out, c)
		}
	}
	return out
}

// IsCompletedThisWeek reports whether the weekly target has been met.
func (h *Habit) IsCompletedThisWeek() bool {
	return h.IsCompletedThisWeekAt(time.Now())
}

// IsCompletedThisWeekAt evaluates the weekly target against an explicit "now".
func (h *Habit) IsCompletedThisWeekAt(now time.Time) bool {
	return len(h.ThisWeekCompletionsAt(now)) >= h.TargetFrequency
}

// ProgressPercentage is the rounded this-week completion ratio, clamped to
// 100. A non-positive target frequency cannot occur through the constructor
// or the load path, but if one is ever observed the method fails rather than
// dividing.
func (h *Habit) ProgressPercentage() (int, error) {
	return h.ProgressPercentageAt(time.Now())
}

// ProgressPercentageAt is ProgressPercentage against an explicit "now".
func (h *Habit) ProgressPercentageAt(now time.Time) (int, error) {
	if h.TargetFrequency < 1 {
		return 0, fmt.Errorf("%w: target frequency %d", ErrInvalidArgument, h.TargetFrequency)
	}
	pct := float64(len(h.ThisWeekCompletionsAt(now))) / float64(h.TargetFrequency) * 100
	rounded := int(math.Round(pct))
	if rounded > 100 {
		return 100, nil
	}
	return rounded, nil
}

// GetStatus returns Completed once the weekly target is met, else Active.
func (h *Habit) GetStatus() Status {
	return h.GetStatusAt(time.Now())
}

// GetStatusAt is GetStatus against an explicit "now".
func (h *Habit) GetStatusAt(now time.Time) Status {
	if h.IsCompletedThisWeekAt(now) {
		return StatusCompleted
	}
	return StatusActive
}

// CurrentStreak counts consecutive completed calendar days walking backward
// from today. Today itself must be completed; a habit untouched today has a
// streak of 0.
func (h *Habit) CurrentStreak() int {
	return h.CurrentStreakAt(time.Now())
}

// CurrentStreakAt is CurrentStreak against an explicit "now".
func (h *Habit) CurrentStreakAt(now time.Time) int {
	return h.streakAt(now, false)
}

// CurrentStreakLenient is the "grace day" streak variant: a streak ending
// yesterday is still credited even if today has no completion yet. It is not
// wired into any view; it exists as the alternative reading of the streak
// rule pending a product decision.
func (h *Habit) CurrentStreakLenient() int {
	return h.CurrentStreakLenientAt(time.Now())
}

// CurrentStreakLenientAt is CurrentStreakLenient against an explicit "now".
func (h *Habit) CurrentStreakLenientAt(now time.Time) int {
	return h.streakAt(now, true)
}

func (h *Habit) streakAt(now time.Time, grace bool) int {
	if len(h.Completions) == 0 {
		return 0
	}

	days := h.sortedCompletionDays()
	target := StartOfDay(now)

	// The grace variant lets the walk start at yesterday when today is
	// unmarked.
	if grace && days[0].Equal(target.AddDate(0, 0, -1)) {
		target = target.AddDate(0, 0, -1)
	}

	streak := 0
	for _, day := range days {
		if !day.Equal(target) {
			break
		}
		streak++
		target = target.AddDate(0, 0, -1)
	}
	return streak
}

// sortedCompletionDays returns the completion calendar days newest first.
func (h *Habit) sortedCompletionDays() []time.Time {
	days := make([]time.Time, len(h.Completions))
	for i, c := range h.Completions {
		days[i] = StartOfDay(c)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}
