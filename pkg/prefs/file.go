package prefs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/google/renameio"

	"github.com/matzehuels/levelkit/pkg/errors"
)

// FileStore is a file-based preference store for CLI applications.
// All keys live in one flat TOML table; the file is re-read on every Get
// so edits by other processes are picked up, and replaced atomically on
// every Set.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore creates a store backed by the TOML file at path.
// If path is empty, defaults to ~/.config/levelkit/prefs.toml.
// The file itself is created on the first Set.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "get home dir")
		}
		path = filepath.Join(home, ".config", "levelkit", "prefs.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create config dir")
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) load() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", s.path)
	}
	if _, err := toml.Decode(string(data), &values); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "parse %s", s.path)
	}
	return values, nil
}

func (s *FileStore) save(values map[string]string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(values); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode preferences")
	}
	if err := renameio.WriteFile(s.path, buf.Bytes(), 0600); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", s.path)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
