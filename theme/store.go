package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// state is the persisted application state. The theme is the only durable
// value the client keeps.
type state struct {
	Theme string `json:"theme"`
}

// Store reads and writes the preference at a fixed path.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the state file location.
func (s *Store) Path() string { return s.path }

// Load reads the preference. A missing or empty file yields Light and a nil
// error; a file that cannot be parsed yields Light and an error so callers
// can log it.
func (s *Store) Load() (Preference, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Light, nil
		}
		return Light, fmt.Errorf("open state: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return Light, fmt.Errorf("read state: %w", err)
	}
	if len(data) == 0 {
		return Light, nil
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return Light, fmt.Errorf("decode state: %w", err)
	}
	return Parse(st.Theme), nil
}

// Save writes p atomically. Concurrent calls are serialized and each
// writes through its own temp file.
func (s *Store) Save(p Preference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.CreateTemp(dir, "state-*.json")
	if err != nil {
		return fmt.Errorf("create tmp: %w", err)
	}
	tmp := f.Name()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state{Theme: p.String()}); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("encode state: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close tmp: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename tmp: %w", err)
	}
	return nil
}
