package store

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/matzehuels/levelkit/pkg/errors"
	"github.com/matzehuels/levelkit/pkg/level"
	"github.com/matzehuels/levelkit/pkg/natural"
	"github.com/matzehuels/levelkit/pkg/observability"
	"github.com/matzehuels/levelkit/pkg/storage"
)

// ListDocuments returns the names of the level documents in the external
// root, in natural order. With no usable root it returns nil and no error.
func (s *Store) ListDocuments(ctx context.Context) ([]string, error) {
	entries, err := s.listEntries(ctx)
	if err != nil || entries == nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names, nil
}

// listEntries returns the document entries of the external root in
// natural order, or nil when there is no usable root.
func (s *Store) listEntries(ctx context.Context) ([]storage.Handle, error) {
	t, err := s.tree(ctx)
	if err != nil {
		if errors.Is(err, errors.ErrCodeNoRoot) {
			s.logger.Debug("no levels folder", "err", err)
			return nil, nil
		}
		return nil, err
	}
	defer t.Close()

	all, err := t.List()
	if err != nil {
		return nil, err
	}
	out := make([]storage.Handle, 0, len(all))
	for _, h := range all {
		if h.IsFile && IsDocument(h.Name) {
			out = append(out, h)
		}
	}
	natural.SortFunc(out, func(h storage.Handle) string { return h.Name })
	return out, nil
}

// Load decodes the cached copy of name. It returns nil and no error when
// the cache has no entry or the entry cannot be decoded; an undecodable
// entry is logged and otherwise treated like an absent one.
func (s *Store) Load(ctx context.Context, name string) (*level.Document, error) {
	if err := errors.ValidateName(name); err != nil {
		return nil, err
	}
	data, err := s.cache.Read(name)
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			observability.Cache().OnCacheMiss(ctx, name)
			return nil, nil
		}
		return nil, err
	}
	doc, err := s.codec.Decode(data)
	if err != nil {
		s.logger.Warn("cached level is unreadable", "file", name, "err", err)
		observability.Cache().OnCacheMiss(ctx, name)
		return nil, nil
	}
	return doc, nil
}

// CacheFromExternal replaces the cached copy of name with the external
// entry's bytes. The cache entry is only replaced once the whole entry has
// been read, so a failed copy leaves the previous cache content in place
// and can simply be retried.
func (s *Store) CacheFromExternal(ctx context.Context, name string) (err error) {
	var n int64
	defer s.observe(ctx, observability.OpPull, name, time.Now(), &n, &err)

	if err := errors.ValidateName(name); err != nil {
		return err
	}
	t, err := s.tree(ctx)
	if err != nil {
		return err
	}
	defer t.Close()

	h, err := find(t, name)
	if err != nil {
		return err
	}
	r, err := t.OpenRead(h)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "open %s", name)
	}
	defer r.Close()

	p, err := s.cache.Create(name)
	if err != nil {
		return err
	}
	defer p.Discard()

	n, err = io.Copy(p, r)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "copy %s into cache", name)
	}
	if err := p.Commit(); err != nil {
		return err
	}
	observability.Cache().OnCacheWrite(ctx, name, n)
	s.logger.Debug("cached level", "file", name, "bytes", humanize.Bytes(uint64(n)))
	return nil
}

// SaveAndExport puts doc's objects into serialization order, writes the
// encoded document to the cache and then exports the cached bytes to the
// external entry, creating it if needed.
//
// doc.Objects is replaced by the normalized slice, so the caller's copy
// matches what was written.
//
// If the cache write fails nothing was exported and the whole call must be
// repeated. If only the export fails the cache already holds the new
// content and Export retries the export alone. With no folder chosen the
// cache is still written and a NO_ROOT error is returned.
func (s *Store) SaveAndExport(ctx context.Context, name string, doc *level.Document) error {
	if err := errors.ValidateName(name); err != nil {
		return err
	}
	if doc == nil {
		return errors.New(errors.ErrCodeInvalidInput, "save %s: nil document", name)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	doc.Objects = s.order.Normalize(doc.Objects)
	data, err := s.codec.Encode(doc)
	if err != nil {
		return err
	}
	if err := s.cache.Write(name, data); err != nil {
		return err
	}
	observability.Cache().OnCacheWrite(ctx, name, int64(len(data)))
	s.logger.Debug("saved level to cache", "file", name, "bytes", humanize.Bytes(uint64(len(data))))

	return s.Export(ctx, name)
}

// Export rewrites the external entry name from its cached bytes, creating
// the entry if it does not exist. The external entry is truncated and
// rewritten in one pass.
func (s *Store) Export(ctx context.Context, name string) (err error) {
	var n int64
	defer s.observe(ctx, observability.OpExport, name, time.Now(), &n, &err)

	if err := errors.ValidateName(name); err != nil {
		return err
	}
	t, err := s.tree(ctx)
	if err != nil {
		return err
	}
	defer t.Close()

	src, err := s.cache.Open(name)
	if err != nil {
		return err
	}
	defer src.Close()

	h, err := t.Find(name)
	if err != nil {
		return err
	}
	switch {
	case h == nil:
		if h, err = t.Create(name, storage.MimeJSON); err != nil {
			return err
		}
	case !h.IsFile:
		return errors.New(errors.ErrCodeNotFound, "%s is not a file", name)
	}
	w, err := t.OpenWrite(h, true)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "open %s for export", name)
	}
	n, err = copyStream(w, src)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "export %s", name)
	}
	s.logger.Debug("exported level", "file", name, "bytes", humanize.Bytes(uint64(n)))
	return nil
}

// Copy duplicates the external entry src as dst. It never overwrites: an
// existing dst fails with ALREADY_EXISTS. A copy that fails partway
// removes the incomplete dst again.
func (s *Store) Copy(ctx context.Context, src, dst string) (err error) {
	var n int64
	defer s.observe(ctx, observability.OpCopy, dst, time.Now(), &n, &err)

	if err := validateNames(src, dst); err != nil {
		return err
	}
	t, err := s.tree(ctx)
	if err != nil {
		return err
	}
	defer t.Close()

	from, err := find(t, src)
	if err != nil {
		return err
	}
	to, err := create(t, dst)
	if err != nil {
		return err
	}

	r, err := t.OpenRead(from)
	if err != nil {
		s.discard(t, to)
		return errors.Wrap(errors.ErrCodeIO, err, "open %s", src)
	}
	w, err := t.OpenWrite(to, true)
	if err != nil {
		r.Close()
		s.discard(t, to)
		return errors.Wrap(errors.ErrCodeIO, err, "open %s", dst)
	}
	n, err = copyStream(w, r)
	if err != nil {
		s.discard(t, to)
		return errors.Wrap(errors.ErrCodeIO, err, "copy %s to %s", src, dst)
	}
	s.logger.Debug("copied level", "file", src, "dst", dst, "bytes", humanize.Bytes(uint64(n)))
	return nil
}

// Rename renames the external entry and then the cached copy, if there is
// one. Success is decided by the external rename alone: a cache entry that
// is missing or cannot be renamed is logged, not reported.
func (s *Store) Rename(ctx context.Context, oldName, newName string) error {
	if err := validateNames(oldName, newName); err != nil {
		return err
	}
	t, err := s.tree(ctx)
	if err != nil {
		return err
	}
	defer t.Close()

	h, err := find(t, oldName)
	if err != nil {
		return err
	}
	if err := ensureAbsent(t, newName); err != nil {
		return err
	}
	if err := t.Rename(h, newName); err != nil {
		return err
	}
	s.logger.Debug("renamed level", "file", oldName, "dst", newName)

	if s.cache.Exists(oldName) {
		if err := s.cache.Rename(oldName, newName); err != nil {
			s.logger.Warn("cache entry not renamed", "file", oldName, "dst", newName, "err", err)
		}
	}
	return nil
}

// Delete removes name from the external root and from the cache. Deleting
// an absent document is not an error. With no folder chosen Delete does
// nothing, leaving the cached copy for when the folder is back.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateName(name); err != nil {
		return err
	}
	t, err := s.tree(ctx)
	if err != nil {
		if errors.Is(err, errors.ErrCodeNoRoot) {
			s.logger.Debug("delete skipped, no levels folder", "file", name)
			return nil
		}
		return err
	}
	defer t.Close()

	h, err := t.Find(name)
	if err != nil {
		return err
	}
	if h != nil {
		if err := t.Delete(h); err != nil && !errors.Is(err, errors.ErrCodeNotFound) {
			return err
		}
	}
	if err := s.cache.Remove(name); err != nil {
		return err
	}
	s.logger.Debug("deleted level", "file", name)
	return nil
}

// InstantiateFromTemplate writes the template tmpl as the new external
// entry name. It fails with ALREADY_EXISTS if name is taken and leaves the
// cache untouched.
func (s *Store) InstantiateFromTemplate(ctx context.Context, tmpl, name string) (err error) {
	var n int64
	defer s.observe(ctx, observability.OpTemplate, name, time.Now(), &n, &err)

	if err := errors.ValidateName(name); err != nil {
		return err
	}
	t, err := s.tree(ctx)
	if err != nil {
		return err
	}
	defer t.Close()

	if err := ensureAbsent(t, name); err != nil {
		return err
	}
	data, err := s.templates.Read(tmpl)
	if err != nil {
		return err
	}
	h, err := create(t, name)
	if err != nil {
		return err
	}
	w, err := t.OpenWrite(h, true)
	if err != nil {
		s.discard(t, h)
		return errors.Wrap(errors.ErrCodeIO, err, "open %s", name)
	}
	if n, err = copyStream(w, io.NopCloser(bytes.NewReader(data))); err != nil {
		s.discard(t, h)
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", name)
	}
	s.logger.Debug("created level from template", "file", name, "template", tmpl)
	return nil
}

// Templates lists the template names in natural order.
func (s *Store) Templates(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.templates.List()
}

// observe reports a finished transfer to the registered hooks.
func (s *Store) observe(ctx context.Context, op observability.Op, name string, start time.Time, n *int64, err *error) {
	observability.Transfer().OnTransfer(ctx, op, name, *n, time.Since(start), *err)
}

// discard removes an entry created by a failed operation. Failure to do so
// is logged; the original error is what the caller reports.
func (s *Store) discard(t storage.Tree, h *storage.Handle) {
	if err := t.Delete(h); err != nil {
		s.logger.Warn("incomplete entry left behind", "file", h.Name, "err", err)
	}
}

func find(t storage.Tree, name string) (*storage.Handle, error) {
	h, err := t.Find(name)
	if err != nil {
		return nil, err
	}
	if h == nil || !h.IsFile {
		return nil, errors.New(errors.ErrCodeNotFound, "%s not found", name)
	}
	return h, nil
}

func ensureAbsent(t storage.Tree, name string) error {
	h, err := t.Find(name)
	if err != nil {
		return err
	}
	if h != nil {
		return errors.New(errors.ErrCodeAlreadyExists, "%s already exists", name)
	}
	return nil
}

func create(t storage.Tree, name string) (*storage.Handle, error) {
	if err := ensureAbsent(t, name); err != nil {
		return nil, err
	}
	return t.Create(name, storage.MimeJSON)
}

func validateNames(names ...string) error {
	for _, name := range names {
		if err := errors.ValidateName(name); err != nil {
			return err
		}
	}
	return nil
}
