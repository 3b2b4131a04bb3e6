// Package backup keeps rotating copies of the habit data file so a wiped or
// corrupted file can be recovered. Backups are plain file copies; they work
// for both the JSON and the SQLite backend since Save always rewrites the
// whole snapshot.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// MaxBackups is how many copies are kept before the oldest is removed.
	MaxBackups = 14

	backupDirName = "backups"
	filePrefix    = "habitflow-"
)

// Info describes one backup file.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager copies the data file into a sibling backups/ directory and prunes
// old copies past the retention limit.
type Manager struct {
	dataPath  string
	backupDir string
	suffix    string
}

func NewManager(dataPath string) *Manager {
	return &Manager{
		dataPath:  dataPath,
		backupDir: filepath.Join(filepath.Dir(dataPath), backupDirName),
		suffix:    filepath.Ext(dataPath),
	}
}

// Dir returns the directory backups are written to.
func (m *Manager) Dir() string {
	return m.backupDir
}

// Create copies the current data file into the backup directory and rotates
// old copies. It fails when the data file does not exist yet.
func (m *Manager) Create() (string, error) {
	return m.create(false)
}

func (m *Manager) create(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}
	if _, err := os.Stat(m.dataPath); os.IsNotExist(err) {
		return "", fmt.Errorf("data file does not exist: %s", m.dataPath)
	}

	path, err := m.freshBackupPath()
	if err != nil {
		return "", err
	}
	if err := copyFile(m.dataPath, path); err != nil {
		return "", fmt.Errorf("copy data file: %w", err)
	}

	if !skipRotation {
		if err := m.rotate(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
		}
	}
	return path, nil
}

// freshBackupPath picks a timestamped filename that does not collide with an
// existing backup. Minute precision first, then seconds, then a counter.
func (m *Manager) freshBackupPath() (string, error) {
	now := time.Now()

	path := filepath.Join(m.backupDir, filePrefix+now.Format("20060102-1504")+m.suffix)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	stamp := now.Format("20060102-150405")
	path = filepath.Join(m.backupDir, filePrefix+stamp+m.suffix)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("could not generate a unique backup filename")
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", filePrefix, stamp, counter, m.suffix))
	}
}

// List returns available backups, newest first. A missing backup directory is
// not an error; it just means no backups exist.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, m.suffix) {
			continue
		}

		stamp, ok := parseStamp(strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), m.suffix))
		if !ok {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, name),
			Timestamp: stamp,
			Size:      fi.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseStamp reads the timestamp out of a backup filename, tolerating the
// optional collision counter after the last hyphen.
func parseStamp(s string) (time.Time, bool) {
	if t, err := time.Parse("20060102-1504", s); err == nil {
		return t, true
	}
	if t, err := time.Parse("20060102-150405", s); err == nil {
		return t, true
	}
	if i := strings.LastIndexByte(s, '-'); i > 0 {
		if t, err := time.Parse("20060102-150405", s[:i]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the data file with the given backup. The current data file
// is backed up first so a bad restore can itself be undone. The swap goes
// through a temp file and a rename so a crash cannot leave a half-written
// data file.
func (m *Manager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if _, err := os.Stat(m.dataPath); err == nil {
		current, err := m.create(true)
		if err != nil {
			return fmt.Errorf("backup current data file before restore: %w", err)
		}
		fmt.Printf("Saved current data as %s\n", filepath.Base(current))
	}

	tempPath := m.dataPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.dataPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove temporary file %s: %v\n", tempPath, removeErr)
		}
		return fmt.Errorf("restore data file: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
