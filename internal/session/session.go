// Package session persists where the reader left off.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"

	"github.com/kyaoi/mdpull/internal/refresh"
)

// RelPath is the session file location below the XDG state directory.
const RelPath = "mdpull/session.toml"

// Session is the reader state saved on quit.
type Session struct {
	// Root is the absolute library directory and Loaded the documents shown,
	// in order, relative to it.
	Root    string             `toml:"root"`
	Loaded  []string           `toml:"loaded"`
	YOffset int                `toml:"y_offset"`
	Refresh refresh.SavedState `toml:"refresh"`
	SavedAt time.Time          `toml:"saved_at"`
}

// Matches reports whether s was saved for the same root and first document.
func (s Session) Matches(root, first string) bool {
	return s.Root == root && len(s.Loaded) > 0 && s.Loaded[0] == first
}

// Store reads and writes one session file.
type Store struct {
	path string
}

// NewStore returns a store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore returns a store in the XDG state directory.
func DefaultStore() (*Store, error) {
	path, err := xdg.StateFile(RelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session file: %w", err)
	}
	return NewStore(path), nil
}

func (s *Store) Path() string { return s.path }

// Load returns the saved session. ok is false when none was saved yet.
func (s *Store) Load() (sess Session, ok bool, err error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("failed to read session: %w", err)
	}
	if err := toml.Unmarshal(data, &sess); err != nil {
		return Session{}, false, fmt.Errorf("failed to parse session: %w", err)
	}
	return sess, true, nil
}

// Save replaces the session file. Concurrent readers quitting at the same
// time are serialized by a lock file next to it.
func (s *Store) Save(sess Session) error {
	data, err := toml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock session: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}
