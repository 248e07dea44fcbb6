// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional: the library packages call the registered
// hooks, and the defaults do nothing. A binary that wants metrics registers
// its own implementations once at startup.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetReportHooks(&myReportHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Report().OnLoadStart(ctx, "json")
//	// ... build the tree ...
//	observability.Report().OnLoadComplete(ctx, "json", nodeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Report Hooks
// =============================================================================

// ReportHooks receives events from the load and render pipeline.
type ReportHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, format string)
	OnLoadComplete(ctx context.Context, format string, nodeCount int, duration time.Duration, err error)

	// Render events; output is "report", "dot" or "svg".
	OnRenderStart(ctx context.Context, output string)
	OnRenderComplete(ctx context.Context, output string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path, requestID string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, path, requestID string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopReportHooks is a no-op implementation of ReportHooks.
type NoopReportHooks struct{}

func (NoopReportHooks) OnLoadStart(context.Context, string)                                 {}
func (NoopReportHooks) OnLoadComplete(context.Context, string, int, time.Duration, error)   {}
func (NoopReportHooks) OnRenderStart(context.Context, string)                               {}
func (NoopReportHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	reportHooks ReportHooks = NoopReportHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetReportHooks registers custom report hooks.
// This should be called once at application startup.
func SetReportHooks(h ReportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		reportHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Report returns the registered report hooks.
func Report() ReportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return reportHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	reportHooks = NoopReportHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
