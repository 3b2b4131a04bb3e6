package cli

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/habitflow/habitflow/internal/storage"
	"github.com/habitflow/habitflow/internal/tracker"
)

// Context carries everything a command needs; there is no package-level
// state anywhere in the application.
type Context struct {
	Store            storage.Provider
	Tracker          *tracker.Tracker
	Logger           *log.Logger
	ReminderInterval time.Duration
}
