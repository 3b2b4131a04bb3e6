// Package menu drives the interactive prompt loop: profile selection, the
// numbered main menu, and the handlers behind each entry. It is pure glue
// over the tracker; nothing here owns data.
package menu

import (
	"bufio"
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/habitflow/habitflow/internal/export"
	"github.com/habitflow/habitflow/internal/reminder"
	"github.com/habitflow/habitflow/internal/tracker"
)

// action is the control-flow result of one dispatched menu choice.
type action int

const (
	actionContinue action = iota
	actionSwitchProfile
	actionExit
)

type Menu struct {
	tracker *tracker.Tracker
	rem     *reminder.Reminder
	in      *bufio.Reader
	out     io.Writer
	logger  *log.Logger
}

func New(tr *tracker.Tracker, rem *reminder.Reminder, in io.Reader, out io.Writer, logger *log.Logger) *Menu {
	return &Menu{
		tracker: tr,
		rem:     rem,
		in:      bufio.NewReader(in),
		out:     out,
		logger:  logger,
	}
}

// Run is the top-level loop: pick a profile, serve the menu until the user
// exits or switches profiles. The reminder is always stopped before Run
// returns and before any profile switch.
func (m *Menu) Run() error {
	defer m.rem.Stop()

	m.banner("HABIT TRACKER")
	m.println(dimStyle.Render("Build good habits, reach your goals."))

	for {
		if !m.selectProfile() {
			return nil
		}
		if m.tracker.SeedDemoData() {
			m.println(successStyle.Render("Demo habits added to get you started!"))
		}

		switch m.menuLoop() {
		case actionExit:
			return nil
		case actionSwitchProfile:
			// back to profile selection
		}
	}
}

// selectProfile lists existing profiles (or creates the first one) and makes
// the choice current. Returns false when input is exhausted.
func (m *Menu) selectProfile() bool {
	for {
		users := m.tracker.Users()

		if len(users) == 0 {
			m.println(infoStyle.Render("Hello! Let's create your first profile."))
			name, err := m.prompt("Enter your name: ")
			if err != nil {
				return false
			}
			user := m.tracker.AddUser(name)
			m.tracker.SelectUser(user.ID)
			m.printf("%s\n", successStyle.Render("Welcome, "+user.Name+"!"))
			return true
		}

		m.println()
		m.println(highlightStyle.Render("CHOOSE A PROFILE"))
		for i, u := range users {
			count := m.tracker.HabitCountForUser(u.ID)
			m.printf("%d. %s %s\n", i+1, highlightStyle.Render(u.Name),
				dimStyle.Render(strconv.Itoa(count)+" habits, joined "+u.JoinDate.Format("Jan 2, 2006")))
		}
		m.printf("%d. %s\n", len(users)+1, infoStyle.Render("Create a new profile"))

		choice, err := m.prompt("Pick a profile (1-" + strconv.Itoa(len(users)+1) + "): ")
		if err != nil {
			return false
		}

		n, convErr := strconv.Atoi(choice)
		switch {
		case convErr == nil && n >= 1 && n <= len(users):
			user := m.tracker.SelectUser(users[n-1].ID)
			m.printf("%s\n", successStyle.Render("Welcome back, "+user.Name+"!"))
			return true
		case convErr == nil && n == len(users)+1:
			name, err := m.prompt("Enter a name for the new profile: ")
			if err != nil {
				return false
			}
			if name == "" {
				m.println(errorStyle.Render("The name must not be empty."))
				continue
			}
			user := m.tracker.AddUser(name)
			m.tracker.SelectUser(user.ID)
			m.printf("%s\n", successStyle.Render("Profile \""+user.Name+"\" created!"))
			return true
		default:
			m.println(errorStyle.Render("That is not a valid choice."))
		}
	}
}

func (m *Menu) menuLoop() action {
	for {
		m.printMenu()
		choice, err := m.prompt("Choose an option (0-14): ")
		if err != nil {
			m.rem.Stop()
			return actionExit
		}

		result := m.dispatch(choice)
		if result != actionContinue {
			return result
		}
		m.pause()
	}
}

// dispatch maps one menu choice onto its handler and reports how the loop
// should proceed.
func (m *Menu) dispatch(choice string) action {
	switch choice {
	case "1":
		m.showProfile()
	case "2":
		m.showHabits(tracker.FilterAll)
	case "3":
		m.showHabits(tracker.FilterActive)
	case "4":
		m.showHabits(tracker.FilterCompleted)
	case "5":
		m.showHabitsByCategory()
	case "6":
		m.showHistory()
	case "7":
		m.handleAddHabit()
	case "8":
		m.handleCompleteHabit()
	case "9":
		m.handleDeleteHabit()
	case "10":
		m.showStats()
	case "11":
		m.showCompactList()
	case "12":
		m.handleExport()
	case "13":
		m.toggleReminder()
	case "14":
		m.rem.Stop()
		m.println(infoStyle.Render("Back to profile selection..."))
		return actionSwitchProfile
	case "0":
		m.rem.Stop()
		m.println(successStyle.Render("Thanks for using Habit Tracker!"))
		return actionExit
	case "demo":
		if m.tracker.SeedDemoData() {
			m.println(successStyle.Render("Demo data added!"))
		} else {
			m.println(warnStyle.Render("Demo data is only seeded into an empty profile."))
		}
	case "clear":
		m.rem.Stop()
		m.tracker.ClearAllData()
		m.println(successStyle.Render("All data has been wiped."))
		return actionSwitchProfile
	default:
		m.println(errorStyle.Render("Invalid choice, pick 0-14."))
	}
	return actionContinue
}

func (m *Menu) handleAddHabit() {
	name, frequency, category, ok := m.habitForm()
	if !ok {
		return
	}
	if habit := m.tracker.AddHabit(name, frequency, string(category)); habit != nil {
		m.println(successStyle.Render("Habit added!"))
	} else {
		m.println(errorStyle.Render("Could not add the habit."))
	}
}

func (m *Menu) handleCompleteHabit() {
	m.showHabits(tracker.FilterAll)
	if len(m.tracker.CurrentUserHabits()) == 0 {
		return
	}

	choice, err := m.prompt("Habit number to mark: ")
	if err != nil {
		return
	}
	index, convErr := strconv.Atoi(choice)
	if convErr != nil {
		m.println(errorStyle.Render("That is not a valid habit number."))
		return
	}

	if m.tracker.CompleteHabit(index) {
		m.println(successStyle.Render("Marked complete for today!"))
	} else if index >= 1 && index <= len(m.tracker.CurrentUserHabits()) {
		m.println(warnStyle.Render("Already marked complete today."))
	} else {
		m.println(errorStyle.Render("That is not a valid habit number."))
	}
}

func (m *Menu) handleDeleteHabit() {
	m.showHabits(tracker.FilterAll)
	habits := m.tracker.CurrentUserHabits()
	if len(habits) == 0 {
		return
	}

	choice, err := m.prompt("Habit number to delete: ")
	if err != nil {
		return
	}
	index, convErr := strconv.Atoi(choice)
	if convErr != nil || index < 1 || index > len(habits) {
		m.println(errorStyle.Render("That is not a valid habit number."))
		return
	}

	if !m.confirmDelete(habits[index-1].Name) {
		return
	}
	if m.tracker.DeleteHabit(index) {
		m.println(successStyle.Render("Habit deleted."))
	}
}

func (m *Menu) handleExport() {
	user := m.tracker.CurrentUser()
	if user == nil {
		return
	}
	habits := m.tracker.CurrentUserHabits()
	if len(habits) == 0 {
		m.println(warnStyle.Render("Nothing to export yet."))
		return
	}

	format, ok := m.exportFormatSelect()
	if !ok {
		return
	}

	path := export.Filename(user.Name, format)
	if err := export.Write(path, format, user.Name, habits); err != nil {
		m.logger.Error("export failed", "path", path, "err", err)
		m.println(errorStyle.Render("Export failed: " + err.Error()))
		return
	}
	m.println(successStyle.Render("Exported to " + path))
}

func (m *Menu) toggleReminder() {
	if m.rem.Running() {
		m.rem.Stop()
		m.println(successStyle.Render("Reminder turned off."))
	} else {
		m.rem.Start()
		m.println(successStyle.Render("Reminder turned on."))
	}
}
