package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
)

// FileStore is a file-based preset store for CLI applications.
// Each preset is stored as preset-<name>.json next to an index file
// (presets.json) holding the list order and previews.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
	now     func() time.Time
}

// DefaultDir returns $XDG_CONFIG_HOME/tilejar/presets, falling back to
// ~/.config/tilejar/presets.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tilejar", "presets"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "tilejar", "presets"), nil
}

// NewFileStore creates a new file-based preset store.
// If baseDir is empty, [DefaultDir] is used.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create preset dir: %w", err)
	}
	return &FileStore{baseDir: baseDir, now: time.Now}, nil
}

func (s *FileStore) presetPath(name string) string {
	return filepath.Join(s.baseDir, "preset-"+name+".json")
}

func (s *FileStore) indexPath() string   { return filepath.Join(s.baseDir, "presets.json") }
func (s *FileStore) currentPath() string { return filepath.Join(s.baseDir, "current.json") }

func (s *FileStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readIndex()
}

func (s *FileStore) Get(ctx context.Context, name string) (*Entry, error) {
	if err := errors.ValidatePresetName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := s.read(name)
	if err != nil {
		return nil, err
	}
	if e == nil {
		if name == DefaultName {
			return defaultEntry(), nil
		}
		return nil, notFound(name)
	}
	return e, nil
}

func (s *FileStore) Save(ctx context.Context, e *Entry) (*Entry, error) {
	if e == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "entry is nil")
	}
	if err := errors.ValidatePresetName(e.Name); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.read(e.Name)
	if err != nil {
		return nil, err
	}
	out, err := prepare(e, existing, s.now())
	if err != nil {
		return nil, err
	}

	if err := writeJSON(s.presetPath(out.Name), out); err != nil {
		return nil, err
	}

	index, err := s.readIndex()
	if err != nil {
		return nil, err
	}
	if i := slices.IndexFunc(index, func(it Summary) bool { return it.Name == out.Name }); i >= 0 {
		index[i] = out.Summary
	} else {
		index = append(index, out.Summary)
	}
	if err := writeJSON(s.indexPath(), index); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidatePresetName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := s.readIndex()
	if err != nil {
		return err
	}
	i := slices.IndexFunc(index, func(it Summary) bool { return it.Name == name })
	if err := os.Remove(s.presetPath(name)); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("remove preset file: %w", err)
		}
		if i < 0 {
			return notFound(name)
		}
	}
	if i >= 0 {
		index = slices.Delete(index, i, i+1)
		if err := writeJSON(s.indexPath(), index); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileStore) Current(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var name string
	ok, err := readJSON(s.currentPath(), &name)
	if err != nil || !ok || name == "" {
		return DefaultName, nil
	}
	return name, nil
}

func (s *FileStore) SetCurrent(ctx context.Context, name string) error {
	if err := errors.ValidatePresetName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s.currentPath(), name)
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for preset files.
func (s *FileStore) Path() string {
	return s.baseDir
}

// read returns the stored entry or nil when the file does not exist.
func (s *FileStore) read(name string) (*Entry, error) {
	var e Entry
	ok, err := readJSON(s.presetPath(name), &e)
	if err != nil || !ok {
		return nil, err
	}
	return &e, nil
}

// readIndex returns the list index. A missing or unreadable index is an
// empty list.
func (s *FileStore) readIndex() ([]Summary, error) {
	var index []Summary
	if ok, err := readJSON(s.indexPath(), &index); err != nil || !ok {
		return []Summary{}, nil
	}
	return index, nil
}

func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidPreset, err, "parse %s", filepath.Base(path))
	}
	return true, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return os.Rename(tmp, path)
}

var _ Store = (*FileStore)(nil)
