package models

import (
	"testing"
	"time"
)

func TestNewUser_EmptyNameFallsBack(t *testing.T) {
	u := NewUser(1, "")
	if u.Name != "User" {
		t.Errorf("expected placeholder name, got %q", u.Name)
	}
}

func TestUpdateStats_FullRecount(t *testing.T) {
	u := NewUser(1, "Ana")

	done, _ := NewHabit(1, 1, "Read", 1, CategoryStudy)
	done.MarkComplete()
	pending, _ := NewHabit(2, 1, "Exercise", 5, CategoryFitness)

	u.UpdateStats([]*Habit{done, pending})

	if u.TotalHabits != 2 {
		t.Errorf("TotalHabits = %d, want 2", u.TotalHabits)
	}
	if u.CompletedHabits != 1 {
		t.Errorf("CompletedHabits = %d, want 1", u.CompletedHabits)
	}
	if u.ActiveHabits != 1 {
		t.Errorf("ActiveHabits = %d, want 1", u.ActiveHabits)
	}

	// Recount from an empty list resets, never drifts.
	u.UpdateStats(nil)
	if u.TotalHabits != 0 || u.ActiveHabits != 0 || u.CompletedHabits != 0 {
		t.Errorf("expected zeroed counters, got %d/%d/%d", u.TotalHabits, u.ActiveHabits, u.CompletedHabits)
	}
}

func TestDaysJoined_NeverBelowOne(t *testing.T) {
	u := NewUser(1, "Ana")
	if got := u.DaysJoined(); got != 1 {
		t.Errorf("fresh profile DaysJoined = %d, want 1", got)
	}

	u.JoinDate = time.Now().Add(-9*24*time.Hour - 12*time.Hour)
	if got := u.DaysJoined(); got != 10 {
		t.Errorf("DaysJoined = %d, want 10", got)
	}
}
