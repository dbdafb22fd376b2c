// Package pkg provides the libraries behind levelkit, the level document
// manager for a tower-defense level editor.
//
// # Overview
//
// A level is a JSON document: a list of typed objects that refer to each
// other and to the game's built-in tables through RTID references such as
// RTID(Wave1@CurrentLevel). levelkit keeps two copies of every level in
// step: the external copy in a user-chosen levels folder and a private
// working copy in the cache.
//
// # Architecture
//
// A typical edit cycle:
//
//	levels folder ([storage] Tree)
//	         ↓  CacheFromExternal
//	working cache ([cache] Dir)
//	         ↓  Load, edit, SaveAndExport
//	normalized document ([level] order registry)
//	         ↓  Export
//	levels folder
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/levelkit/pkg/cache"
//	    "github.com/matzehuels/levelkit/pkg/prefs"
//	    "github.com/matzehuels/levelkit/pkg/store"
//	)
//
//	p := prefs.NewMemoryStore()
//	_ = p.Set(ctx, prefs.FolderKey, "/home/me/levels")
//	c, _ := cache.New("/home/me/.cache/levelkit/levels")
//	s, _ := store.New(store.Options{Prefs: p, Cache: c})
//
//	_ = s.CacheFromExternal(ctx, "level1.json")
//	doc, _ := s.Load(ctx, "level1.json")
//	// ... edit doc ...
//	_ = s.SaveAndExport(ctx, "level1.json", doc)
//
// # Main Packages
//
// ## Documents
//
// [store] - The level document store: listing, pulling, saving, exporting,
// copying, renaming, deleting and creating levels from templates.
//
// [level] - The document model, its JSON codec, the object serialization
// order and reference checking.
//
// [rtid] - Parsing and building RTID references.
//
// [catalog] - Read-only tables that catalog references point into.
//
// [templates] - The bundled level templates.
//
// ## Infrastructure
//
// [storage] - The levels folder capability: a directory or an in-memory tree.
//
// [cache] - The private working cache with atomic writes.
//
// [prefs] - Process-wide preferences in a TOML file, in memory or in redis.
//
// [observability] - Transfer and cache hooks for metrics.
//
// ## Utilities
//
// [natural] - Natural ordering of names such as level2 before level10.
//
// [errors] - Coded errors shared by all packages.
//
// [buildinfo] - Version information set at link time.
//
// [store]: https://pkg.go.dev/github.com/matzehuels/levelkit/pkg/store
// [level]: https://pkg.go.dev/github.com/matzehuels/levelkit/pkg/level
// [rtid]: https://pkg.go.dev/github.com/matzehuels/levelkit/pkg/rtid
// [catalog]: https://pkg.go.dev/github.com/matzehuels/levelkit/pkg/catalog
// [templates]: https://pkg.go.dev/github.com/matzehuels/levelkit/pkg/templates
// [storage]: https://pkg.go.dev/github.com/matzehuels/levelkit/pkg/storage
// [cache]: https://pkg.go.dev/github.com/matzehuels/levelkit/pkg/cache
// [prefs]: https://pkg.go.dev/github.com/matzehuels/levelkit/pkg/prefs
// [observability]: https://pkg.go.dev/github.com/matzehuels/levelkit/pkg/observability
// [natural]: https://pkg.go.dev/github.com/matzehuels/levelkit/pkg/natural
// [errors]: https://pkg.go.dev/github.com/matzehuels/levelkit/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/levelkit/pkg/buildinfo
package pkg
