// Package export writes a user's habits to CSV or JSON files for use
// outside the application.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/habitflow/habitflow/internal/models"
	"github.com/habitflow/habitflow/internal/storage"
)

// Format selects the export encoding.
type Format int

const (
	FormatCSV Format = iota
	FormatJSON
)

func (f Format) extension() string {
	if f == FormatJSON {
		return "json"
	}
	return "csv"
}

// csvHeader is a fixed contract; downstream spreadsheets depend on it.
var csvHeader = []string{"Name", "Category", "Target", "Progress", "Status", "Streak", "TotalCompletions"}

type habitExport struct {
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	TargetFrequency  int      `json:"targetFrequency"`
	Progress         int      `json:"progress"`
	Status           string   `json:"status"`
	Streak           int      `json:"streak"`
	TotalCompletions int      `json:"totalCompletions"`
	Completions      []string `json:"completions"`
}

type exportDocument struct {
	ExportDate  string        `json:"exportDate"`
	User        string        `json:"user"`
	TotalHabits int           `json:"totalHabits"`
	Habits      []habitExport `json:"habits"`
}

// Filename builds the export file name for a user and format:
// habits_export_<user>_<YYYY-MM-DD>.<ext>.
func Filename(userName string, f Format) string {
	return fmt.Sprintf("habits_export_%s_%s.%s", userName, time.Now().Format(storage.DayFormat), f.extension())
}

// Write exports the habits to the given path in the given format.
func Write(path string, f Format, userName string, habits []*models.Habit) error {
	switch f {
	case FormatJSON:
		return writeJSON(path, userName, habits)
	default:
		return writeCSV(path, habits)
	}
}

func writeCSV(path string, habits []*models.Habit) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, h := range habits {
		pct, err := h.ProgressPercentage()
		if err != nil {
			return fmt.Errorf("failed to compute progress for %q: %w", h.Name, err)
		}
		row := []string{
			h.Name,
			string(h.Category),
			strconv.Itoa(h.TargetFrequency),
			fmt.Sprintf("%d%%", pct),
			string(h.GetStatus()),
			strconv.Itoa(h.CurrentStreak()),
			strconv.Itoa(len(h.Completions)),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func writeJSON(path, userName string, habits []*models.Habit) error {
	doc := exportDocument{
		ExportDate:  time.Now().Format(time.RFC3339),
		User:        userName,
		TotalHabits: len(habits),
		Habits:      make([]habitExport, 0, len(habits)),
	}

	for _, h := range habits {
		pct, err := h.ProgressPercentage()
		if err != nil {
			return fmt.Errorf("failed to compute progress for %q: %w", h.Name, err)
		}
		days := make([]string, 0, len(h.Completions))
		for _, c := range h.Completions {
			days = append(days, c.Format(storage.DayFormat))
		}
		doc.Habits = append(doc.Habits, habitExport{
			Name:             h.Name,
			Category:         string(h.Category),
			TargetFrequency:  h.TargetFrequency,
			Progress:         pct,
			Status:           string(h.GetStatus()),
			Streak:           h.CurrentStreak(),
			TotalCompletions: len(h.Completions),
			Completions:      days,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize export: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
