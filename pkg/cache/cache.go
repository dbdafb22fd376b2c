// Package cache implements the app-private working copy of level documents.
//
// A Dir is a flat directory of plain files keyed by document name. Every
// write lands through a temporary file that atomically replaces the entry,
// so a crash mid-write never leaves a truncated document in the cache.
// Temporary files live in a staging directory next to the cache, never in
// it, so every regular file in the cache directory is a document.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio"

	"github.com/matzehuels/levelkit/pkg/errors"
	"github.com/matzehuels/levelkit/pkg/natural"
)

// stagingSuffix names the sibling directory holding in-flight writes.
const stagingSuffix = ".staging"

// Dir is a file-based cache rooted at one directory.
type Dir struct {
	dir     string
	staging string
}

// Entry describes one cached document.
type Entry struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// New creates a cache in the given directory, along with its staging
// directory dir+".staging". Both are created if they don't exist.
func New(dir string) (*Dir, error) {
	dir = filepath.Clean(dir)
	staging := dir + stagingSuffix
	for _, d := range []string{dir, staging} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "create cache dir %s", d)
		}
	}
	return &Dir{dir: dir, staging: staging}, nil
}

// Root returns the cache directory.
func (c *Dir) Root() string {
	return c.dir
}

// Path returns the file path backing name. It does not check that the
// entry exists.
func (c *Dir) Path(name string) (string, error) {
	if err := errors.ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(c.dir, name), nil
}

// Exists reports whether name is cached.
func (c *Dir) Exists(name string) bool {
	path, err := c.Path(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Read returns the cached bytes of name, or a NOT_FOUND error.
func (c *Dir) Read(name string) ([]byte, error) {
	path, err := c.Path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fileErr(err, "read", name)
	}
	return data, nil
}

// Open returns a reader over the cached bytes of name.
func (c *Dir) Open(name string) (io.ReadCloser, error) {
	path, err := c.Path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fileErr(err, "open", name)
	}
	return f, nil
}

// Write replaces the entry with data atomically.
func (c *Dir) Write(name string, data []byte) error {
	p, err := c.Create(name)
	if err != nil {
		return err
	}
	defer p.Discard()
	if _, err := p.Write(data); err != nil {
		return err
	}
	return p.Commit()
}

// Create starts a streaming write of name. Nothing is visible in the cache
// until Commit succeeds; Discard drops the pending data.
func (c *Dir) Create(name string) (*Pending, error) {
	path, err := c.Path(name)
	if err != nil {
		return nil, err
	}
	f, err := renameio.TempFile(c.staging, path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create %s", name)
	}
	return &Pending{name: name, f: f}, nil
}

// Remove deletes name. Removing an absent entry is not an error.
func (c *Dir) Remove(name string) error {
	path, err := c.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeIO, err, "remove %s", name)
	}
	return nil
}

// Rename moves oldName to newName, replacing any entry under newName.
func (c *Dir) Rename(oldName, newName string) error {
	from, err := c.Path(oldName)
	if err != nil {
		return err
	}
	to, err := c.Path(newName)
	if err != nil {
		return err
	}
	if err := os.Rename(from, to); err != nil {
		return fileErr(err, "rename", oldName)
	}
	return nil
}

// List returns the cached documents in natural order.
func (c *Dir) List() ([]Entry, error) {
	dirents, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "list cache")
	}
	out := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		if !d.Type().IsRegular() {
			continue
		}
		info, err := d.Info()
		if err != nil {
			continue
		}
		out = append(out, Entry{Name: d.Name(), Size: info.Size(), ModTime: info.ModTime()})
	}
	natural.SortFunc(out, func(e Entry) string { return e.Name })
	return out, nil
}

// Clear removes every cached document and returns how many were removed.
func (c *Dir) Clear() (int, error) {
	dirents, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errors.Wrap(errors.ErrCodeIO, err, "clear cache")
	}
	n := 0
	for _, d := range dirents {
		if !d.Type().IsRegular() {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, d.Name())); err != nil && !os.IsNotExist(err) {
			return n, errors.Wrap(errors.ErrCodeIO, err, "remove %s", d.Name())
		}
		n++
	}
	return n, nil
}

// Digest returns the hex SHA-256 of the cached bytes of name.
func (c *Dir) Digest(name string) (string, error) {
	f, err := c.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "digest %s", name)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Pending is an uncommitted streaming write.
type Pending struct {
	name string
	f    *renameio.PendingFile
	done bool
}

// Write appends p to the pending entry.
func (p *Pending) Write(b []byte) (int, error) {
	n, err := p.f.Write(b)
	if err != nil {
		return n, errors.Wrap(errors.ErrCodeIO, err, "write %s", p.name)
	}
	return n, nil
}

// Commit atomically replaces the entry with everything written so far.
func (p *Pending) Commit() error {
	if p.done {
		return errors.New(errors.ErrCodeInternal, "write of %s already finished", p.name)
	}
	p.done = true
	if err := p.f.Chmod(0644); err != nil {
		p.f.Cleanup()
		return errors.Wrap(errors.ErrCodeIO, err, "commit %s", p.name)
	}
	if err := p.f.CloseAtomicallyReplace(); err != nil {
		p.f.Cleanup()
		return errors.Wrap(errors.ErrCodeIO, err, "commit %s", p.name)
	}
	return nil
}

// Discard drops the pending data, leaving any existing entry untouched.
// It is safe to call after Commit.
func (p *Pending) Discard() {
	if p.done {
		return
	}
	p.done = true
	p.f.Cleanup()
}

func fileErr(err error, op, name string) error {
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeNotFound, err, "%s %s", op, name)
	}
	return errors.Wrap(errors.ErrCodeIO, err, "%s %s", op, name)
}
