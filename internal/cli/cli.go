// Package cli implements the chessimg command-line interface.
//
// This package provides commands for rendering chess positions (from FEN,
// PGN, or raw grid files) to PNG images, serving boards over HTTP, and
// managing the local render cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate a board PNG from a position
//   - serve: Run the board image HTTP service
//   - styles: List the bundled piece styles
//   - cache: Manage the local render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hadley31/chess-image-generator/pkg/buildinfo"
	"github.com/hadley31/chess-image-generator/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "chessimg"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "chessimg renders chess positions as PNG images",
		Long:         `chessimg turns a chess position (FEN, PGN, or a raw 8x8 grid file) into a board image, with configurable piece styles, colors, orientation, and square highlights.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.stylesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newCache creates the render cache used by commands. It falls back to
// a null cache when caching is disabled or the cache dir is unavailable.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/chessimg/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configPath returns the default config file path using XDG standard
// (~/.config/chessimg/config.toml). An empty string means no config file.
func configPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}
