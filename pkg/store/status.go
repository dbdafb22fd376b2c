package store

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/stevegt/readercomp"

	"github.com/matzehuels/levelkit/pkg/errors"
	"github.com/matzehuels/levelkit/pkg/storage"
)

// State is where a document stands between its two copies.
type State int

const (
	// Untracked: neither copy exists.
	Untracked State = iota
	// ExternalOnly: only the external entry exists, e.g. after Copy or
	// InstantiateFromTemplate.
	ExternalOnly
	// CacheOnly: only the cached copy exists, e.g. after an export that
	// never reached the folder.
	CacheOnly
	// Cached: both copies exist and differ.
	Cached
	// Synced: both copies exist with identical bytes.
	Synced
)

func (s State) String() string {
	switch s {
	case Untracked:
		return "untracked"
	case ExternalOnly:
		return "external only"
	case CacheOnly:
		return "cache only"
	case Cached:
		return "modified"
	case Synced:
		return "synced"
	default:
		return "unknown"
	}
}

// compareBufSize is the chunk size used when comparing the two copies.
const compareBufSize = 4096

// Status reports the State of name. Without a usable root the external
// copy counts as absent.
func (s *Store) Status(ctx context.Context, name string) (State, error) {
	if err := errors.ValidateName(name); err != nil {
		return Untracked, err
	}
	cached := s.cache.Exists(name)

	t, err := s.tree(ctx)
	if err != nil {
		if !errors.Is(err, errors.ErrCodeNoRoot) {
			return Untracked, err
		}
		if cached {
			return CacheOnly, nil
		}
		return Untracked, nil
	}
	defer t.Close()

	h, err := t.Find(name)
	if err != nil {
		return Untracked, err
	}
	if h != nil && !h.IsFile {
		h = nil
	}
	switch {
	case h == nil && !cached:
		return Untracked, nil
	case h == nil:
		return CacheOnly, nil
	case !cached:
		return ExternalOnly, nil
	}

	same, err := s.sameBytes(t, h)
	if err != nil {
		return Untracked, err
	}
	if same {
		return Synced, nil
	}
	return Cached, nil
}

func (s *Store) sameBytes(t storage.Tree, h *storage.Handle) (bool, error) {
	ext, err := t.OpenRead(h)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeIO, err, "open %s", h.Name)
	}
	defer ext.Close()

	local, err := s.cache.Open(h.Name)
	if err != nil {
		return false, err
	}
	defer local.Close()

	same, err := readercomp.Equal(ext, local, compareBufSize)
	if err != nil {
		// Differing streams come back as a ReaderCompError, not as false.
		var mismatch *readercomp.ReaderCompError
		if stderrors.As(err, &mismatch) {
			return false, nil
		}
		return false, errors.Wrap(errors.ErrCodeIO, err, "compare %s", h.Name)
	}
	return same, nil
}

// Document is one row of the document overview.
type Document struct {
	Name   string
	Size   int64
	State  State
	Cached time.Time // modification time of the cached copy, zero if none
}

// Overview lists every document of the external root together with its
// State, followed by documents that exist only in the cache. Both parts
// are in natural order.
func (s *Store) Overview(ctx context.Context) ([]Document, error) {
	entries, err := s.listEntries(ctx)
	if err != nil {
		return nil, err
	}
	cached, err := s.cache.List()
	if err != nil {
		return nil, err
	}
	byName := make(map[string]int, len(cached))
	for i, c := range cached {
		byName[c.Name] = i
	}

	out := make([]Document, 0, len(entries)+len(cached))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		seen[e.Name] = true
		st, err := s.Status(ctx, e.Name)
		if err != nil {
			return nil, err
		}
		d := Document{Name: e.Name, Size: e.Size, State: st}
		if i, ok := byName[e.Name]; ok {
			d.Cached = cached[i].ModTime
		}
		out = append(out, d)
	}
	for _, c := range cached {
		if seen[c.Name] || !IsDocument(c.Name) {
			continue
		}
		out = append(out, Document{Name: c.Name, Size: c.Size, State: CacheOnly, Cached: c.ModTime})
	}
	return out, nil
}
