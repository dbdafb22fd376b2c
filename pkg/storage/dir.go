package storage

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matzehuels/levelkit/pkg/errors"
)

// DirTree is a Tree over a local directory. Entry access goes through an
// os.Root, so names can never resolve outside the directory.
type DirTree struct {
	dir  string
	root *os.Root
}

// OpenDir opens dir as a Tree. The directory must already exist; a missing
// or unreadable directory is reported as NO_ROOT, the same as a revoked
// grant.
func OpenDir(dir string) (*DirTree, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNoRoot, err, "open root %s", dir)
	}
	return &DirTree{dir: dir, root: root}, nil
}

// Dir returns the directory the tree is rooted at.
func (t *DirTree) Dir() string {
	return t.dir
}

// List implements Tree.
func (t *DirTree) List() ([]Handle, error) {
	entries, err := fs.ReadDir(t.root.FS(), ".")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "list %s", t.dir)
	}
	out := make([]Handle, 0, len(entries))
	for _, e := range entries {
		h := Handle{Name: e.Name(), IsFile: e.Type().IsRegular(), ref: e.Name()}
		if h.IsFile {
			if info, err := e.Info(); err == nil {
				h.Size = info.Size()
			}
		}
		out = append(out, h)
	}
	return out, nil
}

// Find implements Tree.
func (t *DirTree) Find(name string) (*Handle, error) {
	if err := errors.ValidateName(name); err != nil {
		return nil, err
	}
	info, err := t.root.Stat(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "stat %s", name)
	}
	return &Handle{Name: name, IsFile: info.Mode().IsRegular(), Size: info.Size(), ref: name}, nil
}

// Create implements Tree. It fails with ALREADY_EXISTS rather than
// replacing an existing entry. The MIME type is implied by the name on a
// plain filesystem and otherwise ignored.
func (t *DirTree) Create(name, mimeType string) (*Handle, error) {
	if err := errors.ValidateName(name); err != nil {
		return nil, err
	}
	f, err := t.root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, errors.Wrap(errors.ErrCodeAlreadyExists, err, "create %s", name)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create %s", name)
	}
	if err := f.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create %s", name)
	}
	return &Handle{Name: name, IsFile: true, ref: name}, nil
}

// OpenRead implements Tree.
func (t *DirTree) OpenRead(h *Handle) (io.ReadCloser, error) {
	f, err := t.root.Open(h.ref)
	if err != nil {
		return nil, t.entryErr(err, "open", h)
	}
	return f, nil
}

// OpenWrite implements Tree. The entry must exist.
func (t *DirTree) OpenWrite(h *Handle, truncate bool) (io.WriteCloser, error) {
	flag := os.O_WRONLY
	if truncate {
		flag |= os.O_TRUNC
	}
	f, err := t.root.OpenFile(h.ref, flag, 0o644)
	if err != nil {
		return nil, t.entryErr(err, "open for write", h)
	}
	return &syncWriter{f}, nil
}

// Rename implements Tree. It refuses to replace an existing entry.
func (t *DirTree) Rename(h *Handle, newName string) error {
	if err := errors.ValidateName(newName); err != nil {
		return err
	}
	if _, err := t.root.Stat(newName); err == nil {
		return errors.New(errors.ErrCodeAlreadyExists, "%s already exists", newName)
	}
	// os.Root has no Rename before Go 1.25; both names are validated
	// single path elements, so joining them cannot leave the directory.
	if err := os.Rename(filepath.Join(t.dir, h.ref), filepath.Join(t.dir, newName)); err != nil {
		return t.entryErr(err, "rename", h)
	}
	h.Name, h.ref = newName, newName
	return nil
}

// Delete implements Tree.
func (t *DirTree) Delete(h *Handle) error {
	if err := t.root.Remove(h.ref); err != nil {
		return t.entryErr(err, "delete", h)
	}
	return nil
}

// Close releases the root.
func (t *DirTree) Close() error {
	return t.root.Close()
}

func (t *DirTree) entryErr(err error, op string, h *Handle) error {
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeNotFound, err, "%s %s", op, h.Name)
	}
	return errors.Wrap(errors.ErrCodeIO, err, "%s %s", op, h.Name)
}

// syncWriter flushes to stable storage before reporting a successful Close,
// so a removed volume surfaces as a Close error rather than silent loss.
type syncWriter struct {
	f *os.File
}

func (w *syncWriter) Write(p []byte) (int, error) {
	return w.f.Write(p)
}

func (w *syncWriter) Close() error {
	if err := w.f.Sync(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

var _ Tree = (*DirTree)(nil)
