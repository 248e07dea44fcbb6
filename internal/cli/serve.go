package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/rtree/pkg/cache"
	"github.com/matzehuels/rtree/pkg/pipeline"
)

// keyPrefix namespaces server cache entries away from CLI entries.
const keyPrefix = "serve:"

const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reports and diagrams over HTTP",
		Long: `Serve reports and diagrams over HTTP.

Endpoints:
  POST /v1/report  {"input": "...", "format": "json", "max_children": 5, ...}
  POST /v1/dot     same body, plus "output": "dot" or "svg"
  GET  /healthz

Rendered results are cached in Redis when --redis-url is set, otherwise in
the local cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && c.Config.Serve.Addr != "" {
				addr = c.Config.Serve.Addr
			}
			if redisURL == "" {
				redisURL = c.Config.Cache.RedisURL
			}
			return c.runServe(cmd.Context(), addr, redisURL, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultServeAddr, "listen address")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis URL for the shared cache (redis:// or rediss://)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisURL string, noCache bool) error {
	store, err := c.serverCache(ctx, redisURL, noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, keyPrefix), c.Logger)
	runner.TTL = c.Config.Cache.TTL.Duration
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newServer(runner, c.Logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c.Logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		c.Logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// serverCache picks Redis when a URL is configured, else the file cache.
func (c *CLI) serverCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if noCache || redisURL == "" {
		return c.newCache(noCache)
	}
	rc, err := cache.NewRedisCache(ctx, redisURL)
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using redis cache")
	return rc, nil
}
