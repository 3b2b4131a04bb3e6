package models

import (
	"errors"
	"testing"
	"time"
)

// Dec 31 2025 is a Wednesday; the rolling week anchors at Sunday Dec 28.
var testNow = time.Date(2025, 12, 31, 15, 30, 0, 0, time.Local)

func day(t time.Time, offset int) time.Time {
	return StartOfDay(t).AddDate(0, 0, offset)
}

func TestNewHabit_Validation(t *testing.T) {
	if _, err := NewHabit(1, 1, "", 3, CategoryHealth); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for empty name, got %v", err)
	}
	if _, err := NewHabit(1, 1, "Read", 0, CategoryHealth); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for zero frequency, got %v", err)
	}
	if _, err := NewHabit(1, 1, "Read", -2, CategoryHealth); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for negative frequency, got %v", err)
	}

	h, err := NewHabit(1, 1, "  Read  ", 3, "study")
	if err != nil {
		t.Fatalf("NewHabit failed: %v", err)
	}
	if h.Name != "Read" {
		t.Errorf("expected trimmed name, got %q", h.Name)
	}
	if h.Category != CategoryStudy {
		t.Errorf("expected case-insensitive category match, got %q", h.Category)
	}
}

func TestNewHabit_UnknownCategoryFallsBack(t *testing.T) {
	h, err := NewHabit(1, 1, "Read", 3, "NotARealCategory")
	if err != nil {
		t.Fatalf("NewHabit failed: %v", err)
	}
	if h.Category != DefaultCategory {
		t.Errorf("expected default category, got %q", h.Category)
	}
}

func TestMarkComplete_IdempotentPerDay(t *testing.T) {
	h, _ := NewHabit(1, 1, "Read", 3, CategoryStudy)

	if !h.MarkCompleteAt(testNow) {
		t.Error("first mark should change state")
	}
	// Same calendar day, different time of day.
	if h.MarkCompleteAt(testNow.Add(4 * time.Hour)) {
		t.Error("second mark on the same day should be a no-op")
	}
	if len(h.Completions) != 1 {
		t.Errorf("expected 1 completion, got %d", len(h.Completions))
	}
}

func TestWeekWindow_AnchoredAtSunday(t *testing.T) {
	h, _ := NewHabit(1, 1, "Read", 7, CategoryStudy)

	// Saturday Dec 27 falls before the window, Sunday Dec 28 inside it.
	h.MarkCompleteAt(day(testNow, -4)) // Saturday
	h.MarkCompleteAt(day(testNow, -3)) // Sunday
	h.MarkCompleteAt(day(testNow, 0))  // Wednesday

	got := len(h.ThisWeekCompletionsAt(testNow))
	if got != 2 {
		t.Errorf("expected 2 completions inside the week window, got %d", got)
	}
}

func TestStatus_TargetBoundary(t *testing.T) {
	h, _ := NewHabit(1, 1, "Exercise", 3, CategoryFitness)

	h.MarkCompleteAt(day(testNow, -2))
	h.MarkCompleteAt(day(testNow, -1))

	if h.GetStatusAt(testNow) != StatusActive {
		t.Errorf("f-1 completions should be Active, got %q", h.GetStatusAt(testNow))
	}

	h.MarkCompleteAt(testNow)
	if h.GetStatusAt(testNow) != StatusCompleted {
		t.Errorf("f completions should be Completed, got %q", h.GetStatusAt(testNow))
	}
}

func TestProgressPercentage(t *testing.T) {
	h, _ := NewHabit(1, 1, "Read", 5, CategoryStudy)

	pct, err := h.ProgressPercentageAt(testNow)
	if err != nil {
		t.Fatalf("ProgressPercentage failed: %v", err)
	}
	if pct != 0 {
		t.Errorf("expected 0%%, got %d%%", pct)
	}

	h.MarkCompleteAt(testNow)
	pct, _ = h.ProgressPercentageAt(testNow)
	if pct != 20 {
		t.Errorf("expected 20%%, got %d%%", pct)
	}
}

func TestProgressPercentage_ClampedAt100(t *testing.T) {
	// Target 3 with 4 completions this week must clamp, not report 133%.
	h, _ := NewHabit(1, 1, "Exercise", 3, CategoryFitness)
	for i := 0; i < 4; i++ {
		h.MarkCompleteAt(day(testNow, -i))
	}

	pct, err := h.ProgressPercentageAt(testNow)
	if err != nil {
		t.Fatalf("ProgressPercentage failed: %v", err)
	}
	if pct != 100 {
		t.Errorf("expected clamp to 100%%, got %d%%", pct)
	}
}

func TestProgressPercentage_RejectsNonPositiveFrequency(t *testing.T) {
	h := &Habit{ID: 1, Name: "Broken", TargetFrequency: 0}
	if _, err := h.ProgressPercentageAt(testNow); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestCurrentStreak_Strict(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int
		want    int
	}{
		{"no completions", nil, 0},
		{"today only", []int{0}, 1},
		{"three consecutive days", []int{0, -1, -2}, 3},
		{"gap at yesterday", []int{0, -2}, 1},
		{"yesterday only", []int{-1}, 0},
		{"streak ended two days ago", []int{-2, -3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := NewHabit(1, 1, "Read", 3, CategoryStudy)
			for _, off := range tt.offsets {
				h.MarkCompleteAt(day(testNow, off))
			}
			if got := h.CurrentStreakAt(testNow); got != tt.want {
				t.Errorf("streak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrentStreak_LenientGraceDay(t *testing.T) {
	h, _ := NewHabit(1, 1, "Read", 3, CategoryStudy)
	h.MarkCompleteAt(day(testNow, -1))
	h.MarkCompleteAt(day(testNow, -2))

	if got := h.CurrentStreakAt(testNow); got != 0 {
		t.Errorf("strict streak should be 0 without today, got %d", got)
	}
	if got := h.CurrentStreakLenientAt(testNow); got != 2 {
		t.Errorf("lenient streak should credit yesterday, got %d", got)
	}

	// With today marked, both rules agree.
	h.MarkCompleteAt(testNow)
	if h.CurrentStreakAt(testNow) != 3 || h.CurrentStreakLenientAt(testNow) != 3 {
		t.Error("strict and lenient streaks should agree once today is marked")
	}
}

func TestCurrentStreak_UnsortedCompletions(t *testing.T) {
	// Streak must not depend on completion insertion order.
	h, _ := NewHabit(1, 1, "Read", 3, CategoryStudy)
	h.MarkCompleteAt(day(testNow, -2))
	h.MarkCompleteAt(testNow)
	h.MarkCompleteAt(day(testNow, -1))

	if got := h.CurrentStreakAt(testNow); got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}
}
