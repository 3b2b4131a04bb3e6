package menu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/habitflow/habitflow/internal/export"
	"github.com/habitflow/habitflow/internal/models"
)

// prompt prints a question and reads one trimmed line. The error is only
// non-nil when input is exhausted (EOF), which callers treat as quit.
func (m *Menu) prompt(question string) (string, error) {
	m.printf("%s", question)
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (m *Menu) pause() {
	_, _ = m.prompt(dimStyle.Render("Press Enter to continue..."))
}

// habitForm collects the fields for a new habit. The category is picked from
// the fixed set; the frequency input must parse as a positive integer.
func (m *Menu) habitForm() (name string, frequency int, category models.Category, ok bool) {
	freqStr := "3"
	category = models.DefaultCategory

	catOptions := make([]huh.Option[models.Category], 0, len(models.Categories()))
	for _, c := range models.Categories() {
		catOptions = append(catOptions, huh.NewOption(string(c), c))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit name").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name must not be empty")
					}
					return nil
				}).
				Value(&name),
			huh.NewInput().
				Title("Target per week").
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("enter a whole number of at least 1")
					}
					return nil
				}).
				Value(&freqStr),
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(catOptions...).
				Value(&category),
		),
	)

	if err := form.Run(); err != nil {
		m.logger.Debug("habit form aborted", "err", err)
		return "", 0, "", false
	}

	frequency, err := strconv.Atoi(strings.TrimSpace(freqStr))
	if err != nil || frequency < 1 {
		frequency = 1
	}
	return strings.TrimSpace(name), frequency, category, true
}

// confirmDelete asks before a habit is removed for good.
func (m *Menu) confirmDelete(habitName string) bool {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q? This cannot be undone.", habitName)).
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		m.logger.Debug("delete confirm aborted", "err", err)
		return false
	}
	return confirmed
}

// exportFormatSelect picks the export encoding, false when aborted.
func (m *Menu) exportFormatSelect() (export.Format, bool) {
	format := export.FormatCSV
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[export.Format]().
				Title("Export format").
				Options(
					huh.NewOption("CSV", export.FormatCSV),
					huh.NewOption("JSON", export.FormatJSON),
				).
				Value(&format),
		),
	)
	if err := form.Run(); err != nil {
		m.logger.Debug("export select aborted", "err", err)
		return export.FormatCSV, false
	}
	return format, true
}
