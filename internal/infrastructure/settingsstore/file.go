package settingsstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"smartaccount_playground/internal/app/port"

	"gopkg.in/yaml.v3"
)

// FileStore persists settings as a flat YAML map. Every Set rewrites the file.
type FileStore struct {
	path string

	mu     sync.Mutex
	memory *MemoryStore
}

var _ port.SettingsStore = (*FileStore)(nil)

// OpenFileStore loads path if it exists. A missing file starts empty.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, memory: NewMemoryStore()}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings file %s: %w", path, err)
	}

	var values map[string]string
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse settings file %s: %w", path, err)
	}
	for k, v := range values {
		_ = s.memory.Set(k, v)
	}
	return s, nil
}

func (s *FileStore) Get(key string) (string, bool, error) {
	return s.memory.Get(key)
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.memory.Snapshot()
	values[key] = value
	if err := s.flush(values); err != nil {
		return err
	}
	return s.memory.Set(key, value)
}

func (s *FileStore) flush(values map[string]string) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".settings-*.yml")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}
