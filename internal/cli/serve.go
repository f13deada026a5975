package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/hadley31/chess-image-generator/internal/server"
	"github.com/hadley31/chess-image-generator/pkg/cache"
	"github.com/hadley31/chess-image-generator/pkg/render"
)

// serveCommand creates the serve command running the HTTP board service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		redisAddr  string
		cacheTTL   time.Duration
		noCache    bool
		configFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve board images over HTTP",
		Long: `Serve board images over HTTP.

GET /board.png renders a position passed via query parameters (fen or
pgn, plus size, style, light, dark, flipped, labels, highlight). The
service caches rendered images; with --redis the cache is shared across
instances, otherwise the local file cache is used.

Config-file defaults (see 'chessimg render --config') seed every
request and individual query parameters override them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, configFile, cacheTTL, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address (host:port) for a shared cache")
	cmd.Flags().DurationVar(&cacheTTL, "cache-ttl", 24*time.Hour, "lifetime of cached images (0 = no expiry)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&configFile, "config", "", "config file (default ~/.config/chessimg/config.toml)")

	return cmd
}

// runServe starts the HTTP service and blocks until the context is
// cancelled, then shuts down gracefully.
func (c *CLI) runServe(ctx context.Context, addr, redisAddr, configFile string, cacheTTL time.Duration, noCache bool) error {
	store, err := c.serveCache(ctx, redisAddr, noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	path := configFile
	if path == "" {
		path = configPath()
	}
	fc, err := loadFileConfig(path)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	defaults := fc.renderConfig()
	if _, err := render.New(defaults); err != nil {
		return fmt.Errorf("config defaults: %w", err)
	}

	srv := server.New(server.Options{
		Logger:   c.Logger,
		Cache:    store,
		Defaults: defaults,
		CacheTTL: cacheTTL,
	})

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Infof("Listening on %s", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

// serveCache picks the cache backend for the service: redis when
// configured, the local file cache otherwise.
func (c *CLI) serveCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		store, err := cache.NewRedisCache(ctx, redisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", redisAddr, err)
		}
		c.Logger.Infof("Using redis cache at %s", redisAddr)
		return store, nil
	}
	return newCache(false)
}
