// Package store keeps the two copies of every level document consistent:
// the external copy in the user-chosen folder and the internal copy in the
// app-private cache.
//
// Editing always works on the cache. SaveAndExport writes the cache first
// and then rewrites the external entry from exactly those bytes, so the
// cache is the last known good copy even when the export fails partway.
//
// The external root is read from preferences at the start of every
// operation and never remembered between calls; the user may replace or
// revoke it at any time.
//
// # Errors
//
// Operations return coded errors from pkg/errors:
//   - NO_ROOT: no folder chosen yet, or the folder can no longer be opened
//   - NOT_FOUND: the addressed entry is missing
//   - ALREADY_EXISTS: the destination name is taken; nothing was changed
//   - IO_ERROR: a transfer failed partway
//
// ListDocuments and Load never fail for a missing root or a missing or
// corrupt cache entry; they return an empty result instead.
//
// A Store holds no per-document state. One document must only be edited
// by one session at a time; the Store does not lock.
package store

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/levelkit/pkg/cache"
	"github.com/matzehuels/levelkit/pkg/errors"
	"github.com/matzehuels/levelkit/pkg/level"
	"github.com/matzehuels/levelkit/pkg/prefs"
	"github.com/matzehuels/levelkit/pkg/storage"
	"github.com/matzehuels/levelkit/pkg/templates"
)

// DocumentExt is the extension level documents are listed by, compared
// case-insensitively.
const DocumentExt = ".json"

// Options configures a Store. Prefs and Cache are required.
type Options struct {
	Prefs     prefs.Store       // holds prefs.FolderKey
	Cache     *cache.Dir        // internal copies
	Templates templates.Catalog // default: templates.Bundled()
	Codec     level.Codec       // default: level.JSONCodec{}
	Order     *level.Registry   // default: the built-in order
	OpenTree  storage.Opener    // default: storage.Open
	Logger    *log.Logger       // default: log.Default()
}

// Store is the level document store.
type Store struct {
	prefs     prefs.Store
	cache     *cache.Dir
	templates templates.Catalog
	codec     level.Codec
	order     *level.Registry
	openTree  storage.Opener
	logger    *log.Logger
}

// New creates a Store from opts.
func New(opts Options) (*Store, error) {
	if opts.Prefs == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "store: preferences are required")
	}
	if opts.Cache == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "store: cache is required")
	}
	s := &Store{
		prefs:     opts.Prefs,
		cache:     opts.Cache,
		templates: opts.Templates,
		codec:     opts.Codec,
		order:     opts.Order,
		openTree:  opts.OpenTree,
		logger:    opts.Logger,
	}
	if s.templates == nil {
		s.templates = templates.Bundled()
	}
	if s.codec == nil {
		s.codec = level.JSONCodec{}
	}
	if s.order == nil {
		s.order = level.NewRegistry()
	}
	if s.openTree == nil {
		s.openTree = storage.Open
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s, nil
}

// Cache returns the internal cache the store writes to.
func (s *Store) Cache() *cache.Dir {
	return s.cache
}

// Root returns the configured external root URI, or a NO_ROOT error.
func (s *Store) Root(ctx context.Context) (string, error) {
	uri, ok, err := s.prefs.Get(ctx, prefs.FolderKey)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeNoRoot, err, "read %s", prefs.FolderKey)
	}
	if !ok || uri == "" {
		return "", errors.New(errors.ErrCodeNoRoot, "no levels folder chosen")
	}
	return uri, nil
}

// tree opens the external root for one operation. The caller must close it.
func (s *Store) tree(ctx context.Context) (storage.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	uri, err := s.Root(ctx)
	if err != nil {
		return nil, err
	}
	t, err := s.openTree(uri)
	if err != nil {
		if errors.Is(err, errors.ErrCodeNoRoot) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeNoRoot, err, "open %s", uri)
	}
	return t, nil
}

// IsDocument reports whether name passes the listing filter.
func IsDocument(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), DocumentExt)
}

// copyStream copies r into w and closes both. The Close error of w is
// reported, since for external entries it is when data is committed.
func copyStream(w io.WriteCloser, r io.ReadCloser) (int64, error) {
	defer r.Close()
	n, err := io.Copy(w, r)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return n, err
}
