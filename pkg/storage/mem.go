package storage

import (
	"bytes"
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/levelkit/pkg/errors"
)

// ErrInjected is the cause of failures produced by MemTree fault injection.
var ErrInjected = errors.New(errors.ErrCodeIO, "injected failure")

// MemTree is an in-memory Tree. Entries are keyed by a random document ID,
// like content-provider URIs, so a handle survives renames.
//
// MemTree can simulate failures: FailWritesAfter cuts off writes after a
// byte budget and Revoke makes every operation fail as if the grant had
// been withdrawn.
type MemTree struct {
	mu         sync.Mutex
	entries    map[string]*memEntry
	writeLimit int
	revoked    bool
}

type memEntry struct {
	name   string
	mime   string
	isFile bool
	data   []byte
}

// NewMemTree returns an empty tree.
func NewMemTree() *MemTree {
	return &MemTree{entries: make(map[string]*memEntry), writeLimit: -1}
}

// Put stores a file entry directly, replacing any entry with that name.
func (t *MemTree) Put(name string, data []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.idLocked(name); ok {
		delete(t.entries, id)
	}
	t.entries[uuid.NewString()] = &memEntry{name: name, mime: MimeJSON, isFile: true, data: bytes.Clone(data)}
}

// PutDir adds a directory entry.
func (t *MemTree) PutDir(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[uuid.NewString()] = &memEntry{name: name}
}

// Bytes returns a copy of the named file's content.
func (t *MemTree) Bytes(name string) ([]byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id, ok := t.idLocked(name)
	if !ok {
		return nil, false
	}
	return bytes.Clone(t.entries[id].data), true
}

// FailWritesAfter makes writers fail once n more bytes have been written
// through the tree. A negative n disables the limit.
func (t *MemTree) FailWritesAfter(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writeLimit = n
}

// Revoke makes all subsequent operations fail; Restore undoes it.
func (t *MemTree) Revoke() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.revoked = true
}

// Restore undoes Revoke.
func (t *MemTree) Restore() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.revoked = false
}

// List implements Tree, ordered by name.
func (t *MemTree) List() ([]Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.revoked {
		return nil, ErrInjected
	}
	out := make([]Handle, 0, len(t.entries))
	for id, e := range t.entries {
		out = append(out, e.handle(id))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Find implements Tree.
func (t *MemTree) Find(name string) (*Handle, error) {
	if err := errors.ValidateName(name); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.revoked {
		return nil, ErrInjected
	}
	id, ok := t.idLocked(name)
	if !ok {
		return nil, nil
	}
	h := t.entries[id].handle(id)
	return &h, nil
}

// Create implements Tree.
func (t *MemTree) Create(name, mimeType string) (*Handle, error) {
	if err := errors.ValidateName(name); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.revoked {
		return nil, ErrInjected
	}
	if _, ok := t.idLocked(name); ok {
		return nil, errors.New(errors.ErrCodeAlreadyExists, "%s already exists", name)
	}
	id := uuid.NewString()
	e := &memEntry{name: name, mime: mimeType, isFile: true}
	t.entries[id] = e
	h := e.handle(id)
	return &h, nil
}

// OpenRead implements Tree.
func (t *MemTree) OpenRead(h *Handle) (io.ReadCloser, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, err := t.entryLocked(h)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(bytes.Clone(e.data))), nil
}

// OpenWrite implements Tree. Written bytes land in the entry immediately,
// so a failed transfer leaves a partial entry behind.
func (t *MemTree) OpenWrite(h *Handle, truncate bool) (io.WriteCloser, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, err := t.entryLocked(h)
	if err != nil {
		return nil, err
	}
	if truncate {
		e.data = e.data[:0]
	}
	return &memWriter{tree: t, entry: e}, nil
}

// Rename implements Tree.
func (t *MemTree) Rename(h *Handle, newName string) error {
	if err := errors.ValidateName(newName); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	e, err := t.entryLocked(h)
	if err != nil {
		return err
	}
	if _, ok := t.idLocked(newName); ok {
		return errors.New(errors.ErrCodeAlreadyExists, "%s already exists", newName)
	}
	e.name = newName
	h.Name = newName
	return nil
}

// Delete implements Tree.
func (t *MemTree) Delete(h *Handle) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.entryLocked(h); err != nil {
		return err
	}
	delete(t.entries, h.ref)
	return nil
}

// Close implements Tree. A MemTree stays usable after Close.
func (t *MemTree) Close() error {
	return nil
}

func (t *MemTree) idLocked(name string) (string, bool) {
	for id, e := range t.entries {
		if e.name == name {
			return id, true
		}
	}
	return "", false
}

func (t *MemTree) entryLocked(h *Handle) (*memEntry, error) {
	if t.revoked {
		return nil, ErrInjected
	}
	e, ok := t.entries[h.ref]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "%s no longer exists", h.Name)
	}
	return e, nil
}

func (e *memEntry) handle(id string) Handle {
	return Handle{Name: e.name, IsFile: e.isFile, Size: int64(len(e.data)), ref: id}
}

type memWriter struct {
	tree  *MemTree
	entry *memEntry
}

func (w *memWriter) Write(p []byte) (int, error) {
	w.tree.mu.Lock()
	defer w.tree.mu.Unlock()
	if w.tree.revoked {
		return 0, ErrInjected
	}
	n := len(p)
	if w.tree.writeLimit >= 0 && n > w.tree.writeLimit {
		n = w.tree.writeLimit
	}
	w.entry.data = append(w.entry.data, p[:n]...)
	if w.tree.writeLimit >= 0 {
		w.tree.writeLimit -= n
	}
	if n < len(p) {
		return n, ErrInjected
	}
	return n, nil
}

func (w *memWriter) Close() error {
	return nil
}

var _ Tree = (*MemTree)(nil)
