package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/habitflow/habitflow/internal/backup"
)

// ClearCmd wipes all data, with a confirmation unless forced.
type ClearCmd struct {
	Force bool `help:"Skip the confirmation prompt."`
}

func (c *ClearCmd) Run(ctx *Context) error {
	if !c.Force {
		fmt.Print("This wipes every profile and habit. Type 'yes' to continue: ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(line) != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	// Keep a last copy so an accidental wipe is recoverable via backup restore.
	if _, err := os.Stat(ctx.Store.Path()); err == nil {
		if path, err := backup.NewManager(ctx.Store.Path()).Create(); err != nil {
			ctx.Logger.Warn("pre-clear backup failed", "err", err)
		} else {
			fmt.Printf("Safety backup written to %s\n", path)
		}
	}

	ctx.Tracker.ClearAllData()
	fmt.Println("All data has been wiped.")
	return nil
}
