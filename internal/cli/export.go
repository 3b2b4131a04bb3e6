package cli

import (
	"fmt"

	"github.com/habitflow/habitflow/internal/export"
)

// ExportCmd writes one user's habits to a file without entering the menu.
type ExportCmd struct {
	User   int    `arg:"" help:"Profile id to export."`
	Format string `help:"Export format: csv or json." enum:"csv,json" default:"csv"`
	Output string `help:"Output path (default: habits_export_<user>_<date>.<ext>)."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	user := ctx.Tracker.SelectUser(c.User)
	if user == nil {
		return fmt.Errorf("no profile with id %d", c.User)
	}

	format := export.FormatCSV
	if c.Format == "json" {
		format = export.FormatJSON
	}

	path := c.Output
	if path == "" {
		path = export.Filename(user.Name, format)
	}

	if err := export.Write(path, format, user.Name, ctx.Tracker.CurrentUserHabits()); err != nil {
		return err
	}
	fmt.Printf("Exported %s's habits to %s\n", user.Name, path)
	return nil
}
