// Package observability lets an application watch document transfers and
// cache traffic without the store depending on a metrics backend.
//
// Hooks are registered once at startup and default to no-ops:
//
//	func main() {
//	    observability.SetTransferHooks(&myTransferHooks{})
//	    // ... run application
//	}
//
// The store reports every byte-moving operation:
//
//	observability.Transfer().OnTransfer(ctx, observability.OpPull, name, n, elapsed, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Op names a kind of document transfer.
type Op string

const (
	OpPull     Op = "pull"     // external entry into the cache
	OpExport   Op = "export"   // cached bytes onto the external entry
	OpCopy     Op = "copy"     // external entry onto a new external entry
	OpTemplate Op = "template" // template onto a new external entry
)

// =============================================================================
// Transfer Hooks
// =============================================================================

// TransferHooks receives one event per finished transfer. n is the number
// of bytes moved before the transfer ended; err is nil on success.
type TransferHooks interface {
	OnTransfer(ctx context.Context, op Op, name string, n int64, elapsed time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from the working cache.
type CacheHooks interface {
	// OnCacheMiss records a load of a document that has no usable cached copy.
	OnCacheMiss(ctx context.Context, name string)

	// OnCacheWrite records a committed cache entry.
	OnCacheWrite(ctx context.Context, name string, size int64)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopTransferHooks is a no-op implementation of TransferHooks.
type NoopTransferHooks struct{}

func (NoopTransferHooks) OnTransfer(context.Context, Op, string, int64, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheMiss(context.Context, string)         {}
func (NoopCacheHooks) OnCacheWrite(context.Context, string, int64) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	transferHooks TransferHooks = NoopTransferHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetTransferHooks registers transfer hooks. A nil h is ignored.
func SetTransferHooks(h TransferHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		transferHooks = h
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Transfer returns the registered transfer hooks.
func Transfer() TransferHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return transferHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores the no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	transferHooks = NoopTransferHooks{}
	cacheHooks = NoopCacheHooks{}
}
