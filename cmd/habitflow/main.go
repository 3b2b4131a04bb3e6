package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/habitflow/habitflow/internal/cli"
	"github.com/habitflow/habitflow/internal/logger"
	"github.com/habitflow/habitflow/internal/storage"
	"github.com/habitflow/habitflow/internal/tracker"
)

var CLI struct {
	Version          kong.VersionFlag
	Data             string        `help:"Data file path (.json for the JSON store, anything else for SQLite)." type:"path" default:"~/.local/share/habitflow/habits.json"`
	Debug            bool          `help:"Verbose logging to stderr."`
	ReminderInterval time.Duration `help:"How often the reminder fires." default:"1m"`

	Menu   cli.MenuCmd   `cmd:"" help:"Launch the interactive menu." default:"1"`
	Export cli.ExportCmd `cmd:"" help:"Export a profile's habits to CSV or JSON."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks."`
	Backup cli.BackupCmd `cmd:"" help:"Manage data file backups."`
	Clear  cli.ClearCmd  `cmd:"" hidden:"" help:"Wipe all data."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habitflow"),
		kong.Description("Personal habit tracker for the terminal"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	lg, err := logger.New(logger.Config{
		Debug:   CLI.Debug,
		DataDir: filepath.Dir(CLI.Data),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	lg = lg.With("session", uuid.NewString())

	store := storage.New(CLI.Data)
	defer store.Close()

	appCtx := &cli.Context{
		Store:            store,
		Tracker:          tracker.New(store, lg),
		Logger:           lg,
		ReminderInterval: CLI.ReminderInterval,
	}

	if err := ctx.Run(appCtx); err != nil {
		lg.Error("fatal", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
