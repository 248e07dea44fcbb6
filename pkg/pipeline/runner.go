package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rtree/pkg/cache"
	pkgio "github.com/matzehuels/rtree/pkg/io"
	"github.com/matzehuels/rtree/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-output default expiry when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache("no cache configured")
	}
	if logger == nil {
		logger = log.Default()
	}
	if nc, ok := c.(*cache.NullCache); ok && nc.Reason != "" {
		logger.Debug("caching disabled", "reason", nc.Reason)
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the parse → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{InputHash: cache.Hash(opts.Input)}
	key := r.key(result.InputHash, &opts)
	keyType := opts.KeyType()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		} else if hit {
			observability.Cache().OnCacheHit(ctx, keyType)
			r.Logger.Debug("cache hit", "key", key)
			result.Output = data
			result.CacheHit = true
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyType)
	}

	parseStart := time.Now()
	t, err := Parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Tree = t
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = t.Len()

	r.Logger.Info("parsed tree",
		"format", opts.Format,
		"nodes", result.Stats.NodeCount,
		"duration", result.Stats.ParseTime)

	renderStart := time.Now()
	out, err := Render(ctx, t, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Output = out
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered output",
		"output", opts.Output,
		"bytes", len(out),
		"cache", "miss",
		"duration", result.Stats.RenderTime)

	if err := r.Cache.Set(ctx, key, out, r.ttl(&opts)); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, keyType, len(out))
	}

	return result, nil
}

// Load parses the input without rendering or caching. Interactive
// consumers that re-render on every keystroke use it.
func (r *Runner) Load(ctx context.Context, opts Options) (*pkgio.Tree, error) {
	r.applyLogger(&opts)
	start := time.Now()
	t, err := Parse(ctx, opts)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded tree", "nodes", t.Len(), "duration", time.Since(start))
	return t, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) key(inputHash string, opts *Options) string {
	if opts.IsReport() {
		return r.Keyer.ReportKey(inputHash, opts.ReportKeyOpts())
	}
	return r.Keyer.DOTKey(inputHash, opts.DOTKeyOpts())
}

func (r *Runner) ttl(opts *Options) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	if opts.IsReport() {
		return cache.TTLReport
	}
	return cache.TTLDOT
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
