// Package storage defines the document-tree capability level files live
// behind, and the backends that provide it.
//
// A Tree is scoped to one user-granted root. Callers address entries by
// name only; there is no way to reach outside the root through a Tree.
// Entries are opened through Handles returned by List, Find or Create,
// mirroring platform document providers where an entry's identity is not
// its path.
//
// Backends:
//   - DirTree: a local directory, confined with os.Root
//   - MemTree: an in-memory tree, used in tests and for scratch folders
//
// Open maps a root URI from configuration to a backend.
package storage

import (
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/matzehuels/levelkit/pkg/errors"
)

// MimeJSON is the MIME type level documents are created with.
const MimeJSON = "application/json"

// Handle identifies one entry of a Tree. Handles are only meaningful to the
// Tree that returned them.
type Handle struct {
	Name   string
	IsFile bool
	Size   int64

	ref string
}

// Tree is a capability-scoped document tree.
//
// Find returns nil, nil when no entry has the name. Writers returned by
// OpenWrite must be closed, and the Close error reports whether the data
// reached the tree.
type Tree interface {
	List() ([]Handle, error)
	Find(name string) (*Handle, error)
	Create(name, mimeType string) (*Handle, error)
	OpenRead(h *Handle) (io.ReadCloser, error)
	OpenWrite(h *Handle, truncate bool) (io.WriteCloser, error)
	Rename(h *Handle, newName string) error
	Delete(h *Handle) error
	Close() error
}

// Opener turns a configured root URI into a Tree.
type Opener func(uri string) (Tree, error)

// Open resolves uri to a backend:
//   - "mem://<name>" selects the process-local MemTree registered as name
//   - "file:///path" and plain paths select a DirTree
func Open(uri string) (Tree, error) {
	if uri == "" {
		return nil, errors.New(errors.ErrCodeNoRoot, "no root configured")
	}
	if name, ok := strings.CutPrefix(uri, "mem://"); ok {
		return lookupMem(name)
	}
	dir := uri
	if strings.HasPrefix(uri, "file://") {
		u, err := url.Parse(uri)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse root %q", uri)
		}
		dir = filepath.FromSlash(u.Path)
	}
	return OpenDir(dir)
}

var (
	memMu    sync.Mutex
	memTrees = map[string]*MemTree{}
)

// RegisterMem makes t reachable through Open("mem://" + name).
func RegisterMem(name string, t *MemTree) {
	memMu.Lock()
	defer memMu.Unlock()
	memTrees[name] = t
}

// UnregisterMem removes a registration made with RegisterMem.
func UnregisterMem(name string) {
	memMu.Lock()
	defer memMu.Unlock()
	delete(memTrees, name)
}

func lookupMem(name string) (Tree, error) {
	memMu.Lock()
	defer memMu.Unlock()
	t, ok := memTrees[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeNoRoot, "no in-memory tree %q", name)
	}
	return t, nil
}
