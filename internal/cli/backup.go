package cli

import (
	"fmt"

	"github.com/habitflow/habitflow/internal/backup"
)

// BackupCmd manages rotating copies of the data file.
type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Back up the data file now." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Replace the data file with a backup."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	m := backup.NewManager(ctx.Store.Path())
	path, err := m.Create()
	if err != nil {
		return err
	}
	ctx.Logger.Info("backup created", "path", path)
	fmt.Printf("Backup written to %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	m := backup.NewManager(ctx.Store.Path())
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Printf("No backups found in %s\n", m.Dir())
		return nil
	}
	for _, b := range backups {
		fmt.Printf("%s  %s  %d bytes\n", b.Timestamp.Format("2006-01-02 15:04"), b.Path, b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	Path string `arg:"" help:"Backup file to restore from."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	m := backup.NewManager(ctx.Store.Path())
	if err := m.Restore(c.Path); err != nil {
		return err
	}
	ctx.Logger.Info("backup restored", "path", c.Path)
	fmt.Println("Restore complete. Restart the application to load the restored data.")
	return nil
}
