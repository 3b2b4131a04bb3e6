package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// JSONStore persists the snapshot as one pretty-printed JSON document,
// rewritten in full on every save.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// First run: start empty.
			return EmptySnapshot(), nil
		}
		return EmptySnapshot(), fmt.Errorf("failed to read storage: %w", err)
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return EmptySnapshot(), fmt.Errorf("failed to parse storage: %w", err)
	}

	return decodeSnapshot(file), nil
}

func (s *JSONStore) Save(snap *Snapshot) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(encodeSnapshot(snap), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Path() string {
	return s.path
}

func (s *JSONStore) Close() error {
	return nil
}
