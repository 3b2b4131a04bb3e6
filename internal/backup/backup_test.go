package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeDataFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCreate_CopiesDataFile(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeDataFile(t, dir, "habits.json", `{"users":[]}`)

	m := NewManager(dataPath)
	backupPath, err := m.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"users":[]}` {
		t.Errorf("backup contents = %q, want original data", got)
	}
	if filepath.Dir(backupPath) != filepath.Join(dir, "backups") {
		t.Errorf("backup written to %s, want the backups/ subdirectory", backupPath)
	}
	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("backup extension = %s, want the data file's", filepath.Ext(backupPath))
	}
}

func TestCreate_MissingDataFileFails(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "habits.json"))
	if _, err := m.Create(); err == nil {
		t.Fatal("expected an error when the data file does not exist")
	}
}

func TestCreate_CollisionGetsUniqueName(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeDataFile(t, dir, "habits.json", "{}")
	m := NewManager(dataPath)

	first, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Errorf("two backups in the same minute share a path: %s", first)
	}
}

func TestList_NewestFirstAndIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeDataFile(t, dir, "habits.json", "{}")
	m := NewManager(dataPath)

	backupDir := m.Dir()
	if err := os.MkdirAll(backupDir, 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{
		"habitflow-20250101-0900.json",
		"habitflow-20250601-0900.json",
		"habitflow-garbage.json",
		"notes.txt",
	} {
		writeDataFile(t, backupDir, name, "{}")
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("List() returned %d backups, want 2", len(backups))
	}
	if !backups[0].Timestamp.After(backups[1].Timestamp) {
		t.Error("backups are not sorted newest first")
	}
}

func TestList_NoBackupDirIsEmpty(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "habits.json"))
	backups, err := m.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestRotate_PrunesBeyondLimit(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeDataFile(t, dir, "habits.json", "{}")
	m := NewManager(dataPath)

	backupDir := m.Dir()
	if err := os.MkdirAll(backupDir, 0700); err != nil {
		t.Fatal(err)
	}
	base := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < MaxBackups+3; i++ {
		name := "habitflow-" + base.Add(time.Duration(i)*time.Minute).Format("20060102-1504") + ".json"
		writeDataFile(t, backupDir, name, "{}")
	}

	// Create triggers rotation after writing its own copy.
	if _, err := m.Create(); err != nil {
		t.Fatal(err)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != MaxBackups {
		t.Errorf("after rotation %d backups remain, want %d", len(backups), MaxBackups)
	}
}

func TestRestore_SwapsDataFileAndKeepsSafetyCopy(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeDataFile(t, dir, "habits.json", `{"state":"current"}`)
	m := NewManager(dataPath)

	backupPath := writeDataFile(t, dir, "old-backup.json", `{"state":"older"}`)

	if err := m.Restore(backupPath); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	got, err := os.ReadFile(dataPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"state":"older"}` {
		t.Errorf("data file = %q, want restored backup contents", got)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected the pre-restore safety copy, got %d backups", len(backups))
	}
	safety, err := os.ReadFile(backups[0].Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(safety) != `{"state":"current"}` {
		t.Errorf("safety copy = %q, want the pre-restore data", safety)
	}
}

func TestRestore_MissingBackupFails(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeDataFile(t, dir, "habits.json", "{}")
	m := NewManager(dataPath)

	if err := m.Restore(filepath.Join(dir, "nope.json")); err == nil {
		t.Fatal("expected an error for a missing backup file")
	}
}
