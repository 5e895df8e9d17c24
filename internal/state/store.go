package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// Store manages the storage file with locking.
type Store struct {
	path string
}

// NewStore creates a store whose record lives in dir under StorageKey.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, StorageKey+".json")}
}

// NewStoreAt creates a store backed by an explicit file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the storage file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) dir() string {
	return filepath.Dir(s.path)
}

func (s *Store) lockPath() string {
	return s.path + ".lock"
}

// Load reads the envelope from disk. Returns an empty document if the file
// doesn't exist.
func (s *Store) Load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &Document{Version: CurrentVersion}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &Document{Version: CurrentVersion}, nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	if doc.Version > CurrentVersion {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrUnsupportedVersion, doc.Version, CurrentVersion)
	}

	return &doc, nil
}

// Save writes the envelope to disk.
func (s *Store) Save(doc *Document) error {
	if err := os.MkdirAll(s.dir(), 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if existing, err := os.ReadFile(s.path); err == nil {
		if bytes.Equal(existing, data) {
			return nil
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read state file: %w", err)
	}

	// Write atomically via temp file
	tmpFile, err := os.CreateTemp(s.dir(), filepath.Base(s.path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp state file: %w", err)
	}

	if err := os.Rename(name, s.path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename state file: %w", err)
	}

	return nil
}

// Update atomically reads, modifies, and writes the envelope with file locking.
// Nothing is written when fn returns an error.
func (s *Store) Update(fn func(doc *Document) error) error {
	if err := os.MkdirAll(s.dir(), 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	lockFile, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	doc, err := s.Load()
	if err != nil {
		return err
	}

	if err := fn(doc); err != nil {
		return err
	}

	return s.Save(doc)
}
