package store

import (
	"context"
	"encoding/json"
	"io"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/levelkit/pkg/cache"
	"github.com/matzehuels/levelkit/pkg/errors"
	"github.com/matzehuels/levelkit/pkg/level"
	"github.com/matzehuels/levelkit/pkg/prefs"
	"github.com/matzehuels/levelkit/pkg/storage"
	"github.com/matzehuels/levelkit/pkg/templates"
)

type fixture struct {
	store *Store
	tree  *storage.MemTree
	prefs *prefs.MemoryStore
	cache *cache.Dir
	uri   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	c, err := cache.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	f := &fixture{
		tree:  storage.NewMemTree(),
		prefs: prefs.NewMemoryStore(),
		cache: c,
		uri:   "mem://" + t.Name(),
	}
	storage.RegisterMem(t.Name(), f.tree)
	t.Cleanup(func() { storage.UnregisterMem(t.Name()) })

	f.store, err = New(Options{
		Prefs: f.prefs,
		Cache: c,
		Templates: templates.FromFS(fstest.MapFS{
			"basic.json": {Data: []byte(`{"objects":[{"objclass":"LevelDefinition","objdata":{"Name":"T"}}],"version":1}`)},
		}),
		Logger: log.New(io.Discard),
	})
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func (f *fixture) setRoot(t *testing.T) {
	t.Helper()
	if err := f.prefs.Set(context.Background(), prefs.FolderKey, f.uri); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) clearRoot(t *testing.T) {
	t.Helper()
	if err := f.prefs.Delete(context.Background(), prefs.FolderKey); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) external(t *testing.T, name string) string {
	t.Helper()
	data, ok := f.tree.Bytes(name)
	if !ok {
		t.Fatalf("external %s missing", name)
	}
	return string(data)
}

func (f *fixture) cached(t *testing.T, name string) string {
	t.Helper()
	data, err := f.cache.Read(name)
	if err != nil {
		t.Fatalf("cache %s: %v", name, err)
	}
	return string(data)
}

func sampleDoc() *level.Document {
	return &level.Document{
		Version: 1,
		Objects: []*level.Object{
			{Aliases: []string{"Wave1"}, Class: "SpawnZombiesJitteredWaveActionProps", Data: json.RawMessage(`{"Zombies":[]}`)},
			{Aliases: []string{"Custom"}, Class: "SomethingNew", Data: json.RawMessage(`{}`)},
			{Aliases: []string{"WM"}, Class: "WaveManagerProperties", Data: json.RawMessage(`{"Waves":[["RTID(Wave1@CurrentLevel)"]]}`)},
			{Class: "LevelDefinition", Data: json.RawMessage(`{"Name":"Test"}`)},
			{Aliases: []string{"Wave2"}, Class: "SpawnZombiesJitteredWaveActionProps", Data: json.RawMessage(`{"Zombies":[]}`)},
		},
	}
}

func classes(doc *level.Document) []string {
	var out []string
	for _, o := range doc.Objects {
		out = append(out, o.Label())
	}
	return out
}

func TestEndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	names, err := f.store.ListDocuments(ctx)
	if err != nil || len(names) != 0 {
		t.Fatalf("ListDocuments without root = %v, %v; want empty", names, err)
	}
	doc, err := f.store.Load(ctx, "a.json")
	if err != nil || doc != nil {
		t.Fatalf("Load without root = %v, %v; want nil, nil", doc, err)
	}

	f.setRoot(t)
	for _, name := range []string{"b.json", "a10.json", "a2.json"} {
		f.tree.Put(name, []byte(`{"objects":[],"version":1}`))
	}
	names, err = f.store.ListDocuments(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"a2.json", "a10.json", "b.json"}; !slices.Equal(names, want) {
		t.Fatalf("ListDocuments = %v, want %v", names, want)
	}

	if err := f.store.Copy(ctx, "b.json", "c.json"); err != nil {
		t.Fatalf("first Copy: %v", err)
	}
	if err := f.store.Copy(ctx, "b.json", "c.json"); !errors.Is(err, errors.ErrCodeAlreadyExists) {
		t.Fatalf("second Copy error = %v, want ALREADY_EXISTS", err)
	}

	if err := f.store.InstantiateFromTemplate(ctx, "basic.json", "d.json"); err != nil {
		t.Fatalf("InstantiateFromTemplate: %v", err)
	}
	if err := f.store.CacheFromExternal(ctx, "d.json"); err != nil {
		t.Fatalf("CacheFromExternal: %v", err)
	}
	doc, err = f.store.Load(ctx, "d.json")
	if err != nil || doc == nil {
		t.Fatalf("Load(d.json) = %v, %v", doc, err)
	}
	if len(doc.Objects) != 1 || doc.Objects[0].Class != "LevelDefinition" || doc.Version != 1 {
		t.Errorf("Load(d.json) = %+v, want the template content", doc)
	}
}

func TestEndToEndBundledTemplate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s, err := New(Options{Prefs: f.prefs, Cache: f.cache, Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatal(err)
	}
	f.setRoot(t)

	if err := s.InstantiateFromTemplate(ctx, "basic.json", "d.json"); err != nil {
		t.Fatal(err)
	}
	if err := s.CacheFromExternal(ctx, "d.json"); err != nil {
		t.Fatal(err)
	}
	doc, err := s.Load(ctx, "d.json")
	if err != nil || doc == nil {
		t.Fatalf("Load = %v, %v", doc, err)
	}
	want, _ := templates.Bundled().Read("basic.json")
	if got := f.cached(t, "d.json"); got != string(want) {
		t.Error("cached copy differs from the bundled template")
	}
	if _, ok := doc.FindByAlias("WaveManagerProps"); !ok {
		t.Error("decoded template lacks WaveManagerProps")
	}
}

func TestListDocumentsFilter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setRoot(t)

	f.tree.Put("Level1.JSON", nil)
	f.tree.Put("level2.json", nil)
	f.tree.Put("notes.txt", nil)
	f.tree.Put("json", nil)
	f.tree.PutDir("folder.json")

	names, err := f.store.ListDocuments(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"Level1.JSON", "level2.json"}; !slices.Equal(names, want) {
		t.Errorf("ListDocuments = %v, want %v", names, want)
	}
}

func TestListDocumentsUnopenableRoot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.prefs.Set(ctx, prefs.FolderKey, "mem://nobody-registered-this")

	names, err := f.store.ListDocuments(ctx)
	if err != nil || names != nil {
		t.Errorf("ListDocuments = %v, %v; want nil, nil", names, err)
	}
}

func TestListDocumentsRevoked(t *testing.T) {
	f := newFixture(t)
	f.setRoot(t)
	f.tree.Revoke()

	if _, err := f.store.ListDocuments(context.Background()); !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("ListDocuments on revoked tree error = %v, want IO_ERROR", err)
	}
}

func TestRootReadOnEveryCall(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setRoot(t)
	f.tree.Put("a.json", nil)

	other := storage.NewMemTree()
	other.Put("z.json", nil)
	storage.RegisterMem(t.Name()+"-other", other)
	defer storage.UnregisterMem(t.Name() + "-other")

	names, _ := f.store.ListDocuments(ctx)
	if !slices.Equal(names, []string{"a.json"}) {
		t.Fatalf("first root lists %v", names)
	}

	f.prefs.Set(ctx, prefs.FolderKey, "mem://"+t.Name()+"-other")
	names, _ = f.store.ListDocuments(ctx)
	if !slices.Equal(names, []string{"z.json"}) {
		t.Errorf("after switching root lists %v", names)
	}

	f.clearRoot(t)
	if err := f.store.Copy(ctx, "z.json", "y.json"); !errors.Is(err, errors.ErrCodeNoRoot) {
		t.Errorf("Copy after clearing root error = %v, want NO_ROOT", err)
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	doc, err := f.store.Load(ctx, "missing.json")
	if err != nil || doc != nil {
		t.Errorf("Load(missing) = %v, %v", doc, err)
	}

	// A corrupt cache entry reads as absent.
	f.cache.Write("corrupt.json", []byte("{not json"))
	doc, err = f.store.Load(ctx, "corrupt.json")
	if err != nil || doc != nil {
		t.Errorf("Load(corrupt) = %v, %v; want nil, nil", doc, err)
	}
	f.cache.Write("array.json", []byte("[1,2]"))
	if doc, _ := f.store.Load(ctx, "array.json"); doc != nil {
		t.Errorf("Load(array) = %v, want nil", doc)
	}

	if _, err := f.store.Load(ctx, "../escape.json"); !errors.Is(err, errors.ErrCodeInvalidName) {
		t.Errorf("Load(../escape.json) error = %v, want INVALID_NAME", err)
	}
}

func TestSaveAndExport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setRoot(t)

	doc := sampleDoc()
	if err := f.store.SaveAndExport(ctx, "a.json", doc); err != nil {
		t.Fatalf("SaveAndExport: %v", err)
	}

	want := []string{"LevelDefinition", "WM", "Wave1", "Wave2", "Custom"}
	if got := classes(doc); !slices.Equal(got, want) {
		t.Errorf("normalized order = %v, want %v", got, want)
	}
	if f.external(t, "a.json") != f.cached(t, "a.json") {
		t.Error("external and cached bytes differ after save")
	}

	loaded, err := f.store.Load(ctx, "a.json")
	if err != nil || loaded == nil {
		t.Fatalf("Load: %v, %v", loaded, err)
	}
	if got := classes(loaded); !slices.Equal(got, want) {
		t.Errorf("loaded order = %v, want %v", got, want)
	}

	// Saving the loaded document again changes nothing.
	before := f.cached(t, "a.json")
	if err := f.store.SaveAndExport(ctx, "a.json", loaded); err != nil {
		t.Fatal(err)
	}
	if after := f.cached(t, "a.json"); after != before {
		t.Errorf("resave changed bytes:\n%s\n%s", before, after)
	}

	st, err := f.store.Status(ctx, "a.json")
	if err != nil || st != Synced {
		t.Errorf("Status = %v, %v; want synced", st, err)
	}
}

func TestSaveAndExportTruncatesExternal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setRoot(t)
	f.tree.Put("a.json", []byte(strings.Repeat("x", 10000)))

	if err := f.store.SaveAndExport(ctx, "a.json", &level.Document{Version: 1}); err != nil {
		t.Fatal(err)
	}
	if f.external(t, "a.json") != f.cached(t, "a.json") {
		t.Errorf("external = %q, leftover bytes from the old content", f.external(t, "a.json"))
	}
}

func TestSaveAndExportWithoutRoot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	err := f.store.SaveAndExport(ctx, "a.json", sampleDoc())
	if !errors.Is(err, errors.ErrCodeNoRoot) {
		t.Fatalf("SaveAndExport error = %v, want NO_ROOT", err)
	}
	if !f.cache.Exists("a.json") {
		t.Fatal("cache should hold the document even without a root")
	}
	if st, _ := f.store.Status(ctx, "a.json"); st != CacheOnly {
		t.Errorf("Status = %v, want cache only", st)
	}

	f.setRoot(t)
	if err := f.store.Export(ctx, "a.json"); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if f.external(t, "a.json") != f.cached(t, "a.json") {
		t.Error("Export did not copy the cached bytes")
	}
}

func TestSaveAndExportFailsMidTransfer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setRoot(t)
	f.tree.Put("a.json", []byte("old external content"))
	f.tree.FailWritesAfter(8)

	doc := sampleDoc()
	err := f.store.SaveAndExport(ctx, "a.json", doc)
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Fatalf("SaveAndExport error = %v, want IO_ERROR", err)
	}

	// The cache holds the complete new document.
	loaded, err := f.store.Load(ctx, "a.json")
	if err != nil || loaded == nil || len(loaded.Objects) != len(doc.Objects) {
		t.Fatalf("cache after failed export: %v, %v", loaded, err)
	}
	if ext := f.external(t, "a.json"); len(ext) != 8 {
		t.Errorf("external after failed export = %q, want 8 partial bytes", ext)
	}
	if st, _ := f.store.Status(ctx, "a.json"); st != Cached {
		t.Errorf("Status = %v, want modified", st)
	}

	// Retry without resupplying the document.
	f.tree.FailWritesAfter(-1)
	if err := f.store.Export(ctx, "a.json"); err != nil {
		t.Fatalf("Export retry: %v", err)
	}
	if f.external(t, "a.json") != f.cached(t, "a.json") {
		t.Error("retried export left copies different")
	}
}

func TestSaveAndExportRevoked(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setRoot(t)
	f.tree.Revoke()

	if err := f.store.SaveAndExport(ctx, "a.json", sampleDoc()); err == nil {
		t.Fatal("SaveAndExport should fail on a revoked tree")
	}
	if !f.cache.Exists("a.json") {
		t.Error("cache write must survive a failed export")
	}
}

func TestSaveAndExportRejectsInput(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setRoot(t)

	if err := f.store.SaveAndExport(ctx, "a.json", nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil document error = %v, want INVALID_INPUT", err)
	}
	if err := f.store.SaveAndExport(ctx, "sub/a.json", sampleDoc()); !errors.Is(err, errors.ErrCodeInvalidName) {
		t.Errorf("nested name error = %v, want INVALID_NAME", err)
	}
	if f.cache.Exists("a.json") {
		t.Error("rejected save must not touch the cache")
	}
}

func TestExportWithoutCache(t *testing.T) {
	f := newFixture(t)
	f.setRoot(t)
	if err := f.store.Export(context.Background(), "a.json"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Export without cache error = %v, want NOT_FOUND", err)
	}
	if h, _ := f.tree.Find("a.json"); h != nil {
		t.Error("Export without cache must not create an external entry")
	}
}

func TestCacheFromExternal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if err := f.store.CacheFromExternal(ctx, "a.json"); !errors.Is(err, errors.ErrCodeNoRoot) {
		t.Errorf("without root error = %v, want NO_ROOT", err)
	}

	f.setRoot(t)
	if err := f.store.CacheFromExternal(ctx, "a.json"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing entry error = %v, want NOT_FOUND", err)
	}

	f.cache.Write("a.json", []byte("stale cache"))
	f.tree.Put("a.json", []byte(`{"objects":[],"version":2}`))
	if err := f.store.CacheFromExternal(ctx, "a.json"); err != nil {
		t.Fatal(err)
	}
	if got := f.cached(t, "a.json"); got != `{"objects":[],"version":2}` {
		t.Errorf("cache = %q, want external bytes", got)
	}

	// Idempotent.
	if err := f.store.CacheFromExternal(ctx, "a.json"); err != nil {
		t.Fatal(err)
	}
	if st, _ := f.store.Status(ctx, "a.json"); st != Synced {
		t.Errorf("Status = %v, want synced", st)
	}
}

func TestCacheFromExternalRevokedKeepsCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setRoot(t)
	f.tree.Put("a.json", []byte("external"))
	f.cache.Write("a.json", []byte("cached"))
	f.tree.Revoke()

	if err := f.store.CacheFromExternal(ctx, "a.json"); err == nil {
		t.Fatal("CacheFromExternal should fail on a revoked tree")
	}
	if got := f.cached(t, "a.json"); got != "cached" {
		t.Errorf("cache = %q, want previous content", got)
	}
}

func TestCopy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setRoot(t)
	f.tree.Put("a.json", []byte("A"))
	f.tree.Put("b.json", []byte("B"))

	if err := f.store.Copy(ctx, "a.json", "c.json"); err != nil {
		t.Fatal(err)
	}
	if got := f.external(t, "c.json"); got != "A" {
		t.Errorf("copy content = %q", got)
	}
	if f.cache.Exists("c.json") {
		t.Error("Copy must not populate the cache")
	}

	if err := f.store.Copy(ctx, "a.json", "b.json"); !errors.Is(err, errors.ErrCodeAlreadyExists) {
		t.Errorf("Copy onto existing error = %v", err)
	}
	if got := f.external(t, "b.json"); got != "B" {
		t.Errorf("collision overwrote destination: %q", got)
	}
	if err := f.store.Copy(ctx, "missing.json", "d.json"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Copy of missing source error = %v", err)
	}
	if h, _ := f.tree.Find("d.json"); h != nil {
		t.Error("failed Copy created the destination")
	}
}

func TestCopyFailureRemovesPartialDestination(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setRoot(t)
	f.tree.Put("a.json", []byte(strings.Repeat("a", 100)))
	f.tree.FailWritesAfter(10)

	if err := f.store.Copy(ctx, "a.json", "b.json"); !errors.Is(err, errors.ErrCodeIO) {
		t.Fatalf("Copy error = %v, want IO_ERROR", err)
	}
	if h, _ := f.tree.Find("b.json"); h != nil {
		t.Error("partial destination left behind")
	}
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setRoot(t)
	f.tree.Put("old.json", []byte("x"))
	f.cache.Write("old.json", []byte("x"))

	if err := f.store.Rename(ctx, "old.json", "new.json"); err != nil {
		t.Fatal(err)
	}
	names, _ := f.store.ListDocuments(ctx)
	if slices.Contains(names, "old.json") || !slices.Contains(names, "new.json") {
		t.Errorf("ListDocuments after rename = %v", names)
	}
	if f.cache.Exists("old.json") || !f.cache.Exists("new.json") {
		t.Error("cache entry did not follow the rename")
	}
}

func TestRenameWithoutCacheEntry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setRoot(t)
	f.tree.Put("old.json", []byte("x"))

	if err := f.store.Rename(ctx, "old.json", "new.json"); err != nil {
		t.Fatalf("Rename without cache entry: %v", err)
	}
	if f.cache.Exists("new.json") {
		t.Error("Rename should not create a cache entry")
	}
}

func TestRenameCollision(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setRoot(t)
	f.tree.Put("a.json", []byte("A"))
	f.tree.Put("b.json", []byte("B"))
	f.cache.Write("a.json", []byte("A"))

	err := f.store.Rename(ctx, "a.json", "b.json")
	if !errors.Is(err, errors.ErrCodeAlreadyExists) {
		t.Fatalf("Rename error = %v, want ALREADY_EXISTS", err)
	}
	names, _ := f.store.ListDocuments(ctx)
	if !slices.Equal(names, []string{"a.json", "b.json"}) {
		t.Errorf("ListDocuments = %v", names)
	}
	if f.external(t, "b.json") != "B" || !f.cache.Exists("a.json") {
		t.Error("failed rename changed state")
	}
	if err := f.store.Rename(ctx, "missing.json", "c.json"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Rename of missing error = %v, want NOT_FOUND", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setRoot(t)
	f.tree.Put("a.json", []byte("x"))
	f.cache.Write("a.json", []byte("x"))

	if err := f.store.Delete(ctx, "a.json"); err != nil {
		t.Fatal(err)
	}
	if h, _ := f.tree.Find("a.json"); h != nil {
		t.Error("external entry still present")
	}
	if f.cache.Exists("a.json") {
		t.Error("cache entry still present")
	}
	if err := f.store.Delete(ctx, "a.json"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
	if st, _ := f.store.Status(ctx, "a.json"); st != Untracked {
		t.Errorf("Status after delete = %v", st)
	}

	// Cache-only documents are removed as well.
	f.cache.Write("b.json", []byte("x"))
	if err := f.store.Delete(ctx, "b.json"); err != nil || f.cache.Exists("b.json") {
		t.Errorf("Delete of cache-only document: %v", err)
	}
}

func TestDeleteWithoutRoot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.cache.Write("a.json", []byte("x"))

	if err := f.store.Delete(ctx, "a.json"); err != nil {
		t.Fatalf("Delete without root: %v", err)
	}
	if !f.cache.Exists("a.json") {
		t.Error("Delete without root must leave the cache alone")
	}
}

func TestDeleteRevokedKeepsCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setRoot(t)
	f.tree.Put("a.json", []byte("x"))
	f.cache.Write("a.json", []byte("x"))
	f.tree.Revoke()

	if err := f.store.Delete(ctx, "a.json"); err == nil {
		t.Fatal("Delete should fail on a revoked tree")
	}
	if !f.cache.Exists("a.json") {
		t.Error("failed external delete must keep the cached copy")
	}
}

func TestInstantiateFromTemplate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setRoot(t)
	f.tree.Put("taken.json", []byte("keep"))

	if err := f.store.InstantiateFromTemplate(ctx, "basic.json", "taken.json"); !errors.Is(err, errors.ErrCodeAlreadyExists) {
		t.Errorf("onto existing error = %v", err)
	}
	if f.external(t, "taken.json") != "keep" {
		t.Error("collision overwrote the existing entry")
	}

	if err := f.store.InstantiateFromTemplate(ctx, "nope.json", "new.json"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown template error = %v", err)
	}
	if h, _ := f.tree.Find("new.json"); h != nil {
		t.Error("unreadable template created an entry")
	}

	if err := f.store.InstantiateFromTemplate(ctx, "basic.json", "new.json"); err != nil {
		t.Fatal(err)
	}
	if f.cache.Exists("new.json") {
		t.Error("template instantiation must not populate the cache")
	}
	if st, _ := f.store.Status(ctx, "new.json"); st != ExternalOnly {
		t.Errorf("Status = %v, want external only", st)
	}
}

func TestInstantiateFromTemplateWriteFailure(t *testing.T) {
	f := newFixture(t)
	f.setRoot(t)
	f.tree.FailWritesAfter(3)

	err := f.store.InstantiateFromTemplate(context.Background(), "basic.json", "new.json")
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Fatalf("error = %v, want IO_ERROR", err)
	}
	if h, _ := f.tree.Find("new.json"); h != nil {
		t.Error("partial entry left behind")
	}
}

func TestTemplates(t *testing.T) {
	f := newFixture(t)
	names, err := f.store.Templates(context.Background())
	if err != nil || !slices.Equal(names, []string{"basic.json"}) {
		t.Errorf("Templates = %v, %v", names, err)
	}
}

func TestStatusLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setRoot(t)

	step := func(label string, want State) {
		t.Helper()
		got, err := f.store.Status(ctx, "a.json")
		if err != nil {
			t.Fatalf("%s: Status: %v", label, err)
		}
		if got != want {
			t.Errorf("%s: Status = %v, want %v", label, got, want)
		}
	}

	step("initial", Untracked)
	f.store.InstantiateFromTemplate(ctx, "basic.json", "a.json")
	step("from template", ExternalOnly)
	f.store.CacheFromExternal(ctx, "a.json")
	step("cached", Synced)

	doc, _ := f.store.Load(ctx, "a.json")
	doc.Comment = "edited"
	enc, _ := level.JSONCodec{}.Encode(doc)
	f.cache.Write("a.json", enc)
	step("edited", Cached)

	f.store.SaveAndExport(ctx, "a.json", doc)
	step("saved", Synced)

	f.store.Delete(ctx, "a.json")
	step("deleted", Untracked)
}

func TestOverview(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setRoot(t)
	f.tree.Put("a10.json", []byte("x"))
	f.tree.Put("a2.json", []byte("same"))
	f.cache.Write("a2.json", []byte("same"))
	f.cache.Write("orphan.json", []byte("o"))

	docs, err := f.store.Overview(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		name  string
		state State
	}{
		{"a2.json", Synced},
		{"a10.json", ExternalOnly},
		{"orphan.json", CacheOnly},
	}
	if len(docs) != len(want) {
		t.Fatalf("Overview = %+v", docs)
	}
	for i, w := range want {
		if docs[i].Name != w.name || docs[i].State != w.state {
			t.Errorf("Overview[%d] = %s %v, want %s %v", i, docs[i].Name, docs[i].State, w.name, w.state)
		}
	}
	if docs[0].Cached.IsZero() || !docs[1].Cached.IsZero() {
		t.Error("Cached timestamps wrong")
	}
}

func TestStatusDetectsEditedCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setRoot(t)
	f.tree.Put("same.json", []byte("abcd"))
	f.cache.Write("same.json", []byte("abce"))
	f.tree.Put("long.json", []byte("abcd"))
	f.cache.Write("long.json", []byte("abcdef"))
	f.tree.Put("short.json", []byte("abcdef"))
	f.cache.Write("short.json", []byte("abc"))

	for _, name := range []string{"same.json", "long.json", "short.json"} {
		got, err := f.store.Status(ctx, name)
		if err != nil {
			t.Fatalf("Status(%s): %v", name, err)
		}
		if got != Cached {
			t.Errorf("Status(%s) = %v, want %v", name, got, Cached)
		}
	}

	docs, err := f.store.Overview(ctx)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("Overview = %+v", docs)
	}
	for _, d := range docs {
		if d.State != Cached {
			t.Errorf("Overview %s = %v, want %v", d.Name, d.State, Cached)
		}
	}
}

func TestDirectoryEntriesAreNotDocuments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setRoot(t)
	f.tree.PutDir("dir.json")

	if err := f.store.CacheFromExternal(ctx, "dir.json"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("CacheFromExternal(dir) error = %v, want NOT_FOUND", err)
	}
	if f.cache.Exists("dir.json") {
		t.Error("directory entry was cached")
	}
	if st, err := f.store.Status(ctx, "dir.json"); err != nil || st != Untracked {
		t.Errorf("Status(dir) = %v, %v, want %v", st, err, Untracked)
	}

	f.cache.Write("dir.json", []byte("{}"))
	if err := f.store.Export(ctx, "dir.json"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Export onto dir error = %v, want NOT_FOUND", err)
	}
}

func TestCanceledContext(t *testing.T) {
	f := newFixture(t)
	f.setRoot(t)
	f.tree.Put("a.json", []byte("x"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := f.store.Copy(ctx, "a.json", "b.json"); err != context.Canceled {
		t.Errorf("Copy with canceled context = %v", err)
	}
}

func TestNewRequiresDependencies(t *testing.T) {
	if _, err := New(Options{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("New(Options{}) error = %v", err)
	}
}
