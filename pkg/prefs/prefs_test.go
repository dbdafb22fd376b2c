package prefs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/levelkit/pkg/errors"
)

func storeFactories(t *testing.T) map[string]func() Store {
	factories := map[string]func() Store{
		"memory": func() Store { return NewMemoryStore() },
		"file": func() Store {
			s, err := NewFileStore(filepath.Join(t.TempDir(), "prefs.toml"))
			if err != nil {
				t.Fatalf("NewFileStore: %v", err)
			}
			return s
		},
	}
	if url := os.Getenv("LEVELKIT_TEST_REDIS_URL"); url != "" {
		factories["redis"] = func() Store {
			s, err := NewRedisStore(context.Background(), RedisConfig{URL: url, Prefix: "levelkit:test:" + t.Name() + ":"})
			if err != nil {
				t.Fatalf("NewRedisStore: %v", err)
			}
			t.Cleanup(func() { s.Close() })
			return s
		}
	}
	return factories
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore()

			if _, ok, err := s.Get(ctx, FolderKey); err != nil || ok {
				t.Fatalf("Get on empty store = ok %v, err %v", ok, err)
			}

			if err := s.Set(ctx, FolderKey, "file:///levels"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			v, ok, err := s.Get(ctx, FolderKey)
			if err != nil || !ok || v != "file:///levels" {
				t.Errorf("Get = %q, %v, %v", v, ok, err)
			}

			if err := s.Set(ctx, FolderKey, "mem://other"); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			if v, _, _ := s.Get(ctx, FolderKey); v != "mem://other" {
				t.Errorf("after overwrite Get = %q", v)
			}

			if err := s.Delete(ctx, FolderKey); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, ok, _ := s.Get(ctx, FolderKey); ok {
				t.Error("key still present after Delete")
			}
			if err := s.Delete(ctx, FolderKey); err != nil {
				t.Errorf("Delete of absent key: %v", err)
			}
		})
	}
}

func TestStoreRejectsEmptyKey(t *testing.T) {
	ctx := context.Background()
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			if err := newStore().Set(ctx, "", "x"); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Set(\"\") error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestFileStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")

	s1, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s1.Set(ctx, FolderKey, `C:\Users\me\levels`); err != nil {
		t.Fatal(err)
	}
	s1.Set(ctx, "theme", "dark")

	// A second store over the same file sees the values.
	s2, _ := NewFileStore(path)
	if v, ok, _ := s2.Get(ctx, FolderKey); !ok || v != `C:\Users\me\levels` {
		t.Errorf("second store Get = %q, %v", v, ok)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "theme") {
		t.Errorf("file content = %q", data)
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	os.WriteFile(path, []byte("folder_uri = [unterminated"), 0600)

	s, _ := NewFileStore(path)
	if _, _, err := s.Get(context.Background(), FolderKey); !errors.Is(err, errors.ErrCodeDecodeFailed) {
		t.Errorf("Get on corrupt file error = %v, want DECODE_FAILED", err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("Open(\"\") = %T, want *MemoryStore", s)
	}

	path := filepath.Join(t.TempDir(), "prefs.toml")
	s, err = Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if fs, ok := s.(*FileStore); !ok || fs.Path() != path {
		t.Errorf("Open(path) = %T", s)
	}

	if _, err := Open(ctx, "redis://[bad"); err == nil {
		t.Error("Open with a malformed redis URL should fail")
	}
}
