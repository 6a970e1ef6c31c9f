package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONStore implements Store using a single JSON file.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) LoadItems() ([]ItemSnapshot, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return []ItemSnapshot{}, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	items := []ItemSnapshot{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshots: %w", err)
	}

	return items, nil
}

func (s *JSONStore) DumpItems(items []ItemSnapshot) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshots: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}
