package cli

import (
	"os"

	"github.com/habitflow/habitflow/internal/menu"
	"github.com/habitflow/habitflow/internal/reminder"
)

// MenuCmd launches the interactive menu loop, the default command.
type MenuCmd struct{}

func (c *MenuCmd) Run(ctx *Context) error {
	rem := reminder.New(ctx.ReminderInterval, ctx.Tracker.IncompleteHabitNames, os.Stdout)
	defer rem.Stop()

	m := menu.New(ctx.Tracker, rem, os.Stdin, os.Stdout, ctx.Logger)
	return m.Run()
}
