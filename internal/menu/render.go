package menu

import (
	"fmt"

	"github.com/habitflow/habitflow/internal/models"
	"github.com/habitflow/habitflow/internal/tracker"
)

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *Menu) println(args ...any) {
	fmt.Fprintln(m.out, args...)
}

func (m *Menu) banner(title string) {
	m.println()
	m.println(bannerStyle.Render(title))
}

// percentageOf reads a habit's progress, falling back to 0 on the
// structurally-impossible invalid-frequency case.
func (m *Menu) percentageOf(h *models.Habit) int {
	pct, err := h.ProgressPercentage()
	if err != nil {
		m.logger.Warn("failed to compute progress", "habit", h.ID, "err", err)
		return 0
	}
	return pct
}

func streakText(streak int) string {
	if streak > 0 {
		return successStyle.Render(fmt.Sprintf("%d days in a row", streak))
	}
	return dimStyle.Render("No streak yet")
}

func (m *Menu) renderHabit(position int, h *models.Habit) {
	pct := m.percentageOf(h)
	status := h.GetStatus()

	m.printf("%s [%s] %s\n",
		successStyle.Render(fmt.Sprintf("%d.", position)),
		statusStyle(status).Render(string(status)),
		highlightStyle.Render(h.Name))
	m.printf("   %s %dx/week\n", dimStyle.Render("Target:"), h.TargetFrequency)
	m.printf("   %s %d/%d (%d%%)\n", dimStyle.Render("Progress:"),
		len(h.ThisWeekCompletions()), h.TargetFrequency, pct)
	m.printf("   %s %s %s\n", dimStyle.Render("Bar:"), progressBar(pct),
		tierStyles[models.TierFor(pct)].Render(fmt.Sprintf("%d%%", pct)))
	m.printf("   %s %s\n", dimStyle.Render("Streak:"), streakText(h.CurrentStreak()))
	m.printf("   %s %s\n", dimStyle.Render("Category:"), infoStyle.Render(string(h.Category)))
	m.println()
}

func (m *Menu) showProfile() {
	user := m.tracker.CurrentUser()
	if user == nil {
		return
	}
	m.tracker.RefreshStats()

	m.banner("USER PROFILE")
	m.printf("Name: %s\n", highlightStyle.Render(user.Name))
	m.printf("Joined: %s\n", user.JoinDate.Format("Jan 2, 2006"))
	m.printf("Days as a member: %s\n", successStyle.Render(fmt.Sprintf("%d days", user.DaysJoined())))
	m.printf("Total habits: %s\n", infoStyle.Render(fmt.Sprintf("%d", user.TotalHabits)))
	m.printf("Active habits: %s\n", warnStyle.Render(fmt.Sprintf("%d", user.ActiveHabits)))
	m.printf("Completed habits: %s\n", successStyle.Render(fmt.Sprintf("%d", user.CompletedHabits)))
	m.println()
}

func (m *Menu) showHabits(filter tracker.Filter) {
	m.banner("HABIT LIST")
	habits := m.tracker.FilteredCurrentHabits(filter)
	if len(habits) == 0 {
		if filter == tracker.FilterAll {
			m.println(warnStyle.Render("No habits added yet."))
		} else {
			m.println(warnStyle.Render("No habits with that status."))
		}
		m.println()
		return
	}
	for i, h := range habits {
		m.renderHabit(i+1, h)
	}
}

func (m *Menu) showHabitsByCategory() {
	m.banner("HABITS BY CATEGORY")
	habits := m.tracker.CurrentUserHabits()
	if len(habits) == 0 {
		m.println(warnStyle.Render("No habits added yet."))
		m.println()
		return
	}

	// Preserve first-seen category order.
	var order []models.Category
	grouped := make(map[models.Category][]*models.Habit)
	for _, h := range habits {
		if _, ok := grouped[h.Category]; !ok {
			order = append(order, h.Category)
		}
		grouped[h.Category] = append(grouped[h.Category], h)
	}

	for _, cat := range order {
		m.println()
		m.println(highlightStyle.Render(string(cat)) + ":")
		for i, h := range grouped[cat] {
			pct := m.percentageOf(h)
			status := h.GetStatus()
			m.printf("%d. [%s] %s\n", i+1, statusStyle(status).Render(string(status)), h.Name)
			m.printf("   %s %s\n", progressBar(pct),
				tierStyles[models.TierFor(pct)].Render(fmt.Sprintf("%d%%", pct)))
			m.printf("   %s\n", streakText(h.CurrentStreak()))
		}
	}
	m.println()
}

func (m *Menu) showHistory() {
	m.banner("COMPLETION HISTORY (LAST 30 DAYS)")
	hist, ok := m.tracker.CompletionHistory(30)
	if !ok {
		m.println(warnStyle.Render("No habits added yet."))
		m.println()
		return
	}

	m.println()
	m.println("Date        | Habits completed")
	m.println("------------|-----------------")
	for _, day := range hist.Days {
		m.printf("%s  | ", day.Day)
		for i, name := range day.Habits {
			if i > 0 {
				m.printf(", ")
			}
			m.printf("%s", name)
		}
		m.println()
	}

	m.println()
	m.printf("Total completions: %d\n", hist.TotalCompletions)
	m.printf("Average per habit: %.1f\n", hist.AveragePerHabit)
	m.println()
}

func (m *Menu) showStats() {
	m.banner("HABIT STATISTICS")
	stats, ok := m.tracker.CurrentUserStats()
	if !ok {
		m.println(warnStyle.Render("No statistics yet."))
		m.println()
		return
	}

	m.printf("Total habits: %s\n", infoStyle.Render(fmt.Sprintf("%d", stats.TotalHabits)))
	m.printf("Average completion rate: %s\n",
		tierStyles[models.TierFor(stats.AverageRate)].Render(fmt.Sprintf("%d%%", stats.AverageRate)))
	m.printf("Best habit: %s %s\n", highlightStyle.Render(stats.Best.Name),
		successStyle.Render(fmt.Sprintf("(%d%%)", stats.Best.Percentage)))
	m.printf("Needs work: %s %s\n", highlightStyle.Render(stats.Worst.Name),
		errorStyle.Render(fmt.Sprintf("(%d%%)", stats.Worst.Percentage)))

	m.println()
	m.println("Completion rate detail:")
	for i, d := range stats.Details {
		m.printf("  %d. %s: %s\n", i+1, highlightStyle.Render(d.Name),
			tierStyles[models.TierFor(d.Percentage)].Render(fmt.Sprintf("%d%%", d.Percentage)))
	}
	m.println()
}

func (m *Menu) showCompactList() {
	m.banner("HABITS AT A GLANCE")
	habits := m.tracker.CurrentUserHabits()
	if len(habits) == 0 {
		m.println(warnStyle.Render("No habits added yet."))
		m.println()
		return
	}
	for i, h := range habits {
		m.printf("%d. %s - %s\n", i+1, h.Name, h.GetStatus())
	}
	m.println()
}

func (m *Menu) printMenu() {
	m.banner("HABIT TRACKER - MAIN MENU")
	items := []string{
		"View profile",
		"View all habits",
		"View active habits",
		"View completed habits",
		"View by category",
		"Completion history",
		"Add a habit",
		"Mark a habit complete",
		"Delete a habit",
		"View statistics",
		"Habits at a glance",
		"Export data",
		"Toggle reminder",
		"Switch profile",
	}
	for i, item := range items {
		m.printf("%s %s\n", successStyle.Render(fmt.Sprintf("%d.", i+1)), infoStyle.Render(item))
	}
	m.printf("%s %s\n", errorStyle.Render("0."), warnStyle.Render("Exit"))
}
