package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hadley31/chess-image-generator/pkg/board"
	"github.com/hadley31/chess-image-generator/pkg/cache"
	"github.com/hadley31/chess-image-generator/pkg/render"
	"github.com/hadley31/chess-image-generator/pkg/render/styles"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	fen         string // position as a FEN string
	pgnPath     string // path to a PGN file ("-" for stdin)
	gridPath    string // path to a raw 8x8 grid file ("-" for stdin)
	output      string // output PNG path
	highlights  string // comma-separated highlight list, e.g. "e4,d5:#ff0000"
	configFile  string // config file override
	noCache     bool   // disable the render cache
	interactive bool   // pick the piece style interactively
}

// renderCommand creates the render command for generating board images.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts
	var cfg render.Config

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a chess position to a PNG image",
		Long: `Render a chess position to a PNG image.

The position comes from exactly one of --fen, --pgn, or --grid. A PGN
input renders the final position of the game's main line. A grid file
holds eight lines of eight cells (letters by side: uppercase white,
lowercase black; "." for empty).

Square highlights are given as a comma-separated list; each square may
carry its own color after a colon:

  chessimg render --fen "..." --highlight "e4,d5:#ff0000" -o board.png

Defaults can be set in ~/.config/chessimg/config.toml. Command-line
flags override the config file. Rendered images are cached locally for
faster repeat runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			merged, err := c.mergeConfig(cmd, cfg, opts.configFile)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, merged)
		},
	}

	cmd.Flags().StringVar(&opts.fen, "fen", "", "position as a FEN string")
	cmd.Flags().StringVar(&opts.pgnPath, "pgn", "", "PGN file to render the final position of (\"-\" for stdin)")
	cmd.Flags().StringVar(&opts.gridPath, "grid", "", "8x8 grid file (\"-\" for stdin)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "board.png", "output PNG file")
	cmd.Flags().StringVar(&opts.highlights, "highlight", "", "squares to highlight, e.g. \"e4,d5:#ff0000\"")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "config file (default ~/.config/chessimg/config.toml)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick the piece style interactively")

	cmd.Flags().IntVar(&cfg.Size, "size", render.DefaultSize, "board size in pixels")
	cmd.Flags().StringVar(&cfg.Style, "style", "", "piece style (see 'chessimg styles')")
	cmd.Flags().StringVar(&cfg.Light, "light", render.DefaultLight, "light square color")
	cmd.Flags().StringVar(&cfg.Dark, "dark", render.DefaultDark, "dark square color")
	cmd.Flags().StringVar(&cfg.Highlight, "highlight-color", render.DefaultHighlight, "default highlight color")
	cmd.Flags().BoolVar(&cfg.Flipped, "flip", false, "render with black at the bottom")
	cmd.Flags().BoolVar(&cfg.NoLabels, "no-labels", false, "hide rank and file labels")

	_ = cmd.RegisterFlagCompletionFunc("style", completeStyles)

	return cmd
}

// completeStyles offers the bundled style names for --style completion.
func completeStyles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return styles.Names, cobra.ShellCompDirectiveNoFileComp
}

// mergeConfig layers flag values over the config file: file values apply
// only where the flag was left at its default.
func (c *CLI) mergeConfig(cmd *cobra.Command, flags render.Config, configFile string) (render.Config, error) {
	path := configFile
	if path == "" {
		path = configPath()
	}
	fc, err := loadFileConfig(path)
	if err != nil {
		return render.Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	c.Logger.Debugf("Config file: %s", path)

	cfg := fc.renderConfig()
	f := cmd.Flags()
	if f.Changed("size") {
		cfg.Size = flags.Size
	}
	if f.Changed("style") {
		cfg.Style = flags.Style
	}
	if f.Changed("light") {
		cfg.Light = flags.Light
	}
	if f.Changed("dark") {
		cfg.Dark = flags.Dark
	}
	if f.Changed("highlight-color") {
		cfg.Highlight = flags.Highlight
	}
	if f.Changed("flip") {
		cfg.Flipped = flags.Flipped
	}
	if f.Changed("no-labels") {
		cfg.NoLabels = flags.NoLabels
	}
	return cfg, nil
}

// runRender loads the position, renders it (or serves it from cache),
// and writes the PNG.
func (c *CLI) runRender(ctx context.Context, opts renderOpts, cfg render.Config) error {
	pos, err := loadPosition(opts)
	if err != nil {
		return err
	}

	if opts.interactive {
		style, err := pickStyle(cfg.Style)
		if err != nil {
			return err
		}
		if style == "" {
			printWarning("No style selected, keeping %q", cfg.Style)
		} else {
			cfg.Style = style
		}
	}

	highlights, err := render.ParseHighlights(opts.highlights)
	if err != nil {
		return err
	}

	r, err := render.New(cfg)
	if err != nil {
		return err
	}
	// Key the cache on the defaulted config so equivalent invocations
	// share an entry.
	cfg = r.Config()

	store, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Rendering board...")
	spinner.Start()

	key := cache.RenderKey(pos.String(), cfg, highlights)
	data, hit, err := store.Get(ctx, key)
	if err != nil {
		c.Logger.Debugf("Cache read failed: %v", err)
	}
	if !hit {
		data, err = render.Encode(pos, cfg, highlights)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		if err := store.Set(ctx, key, data, 0); err != nil {
			c.Logger.Debugf("Cache write failed: %v", err)
		}
	}
	spinner.Stop()

	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	prog.done("Rendered board")

	printSuccess("Board rendered")
	printFile(opts.output)
	printStats(cfg.Size, cfg.Style, hit)
	return nil
}

// loadPosition resolves the position input flags. Exactly one of fen,
// pgn, or grid must be set.
func loadPosition(opts renderOpts) (*board.Position, error) {
	set := 0
	for _, v := range []string{opts.fen, opts.pgnPath, opts.gridPath} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("exactly one of --fen, --pgn, or --grid is required")
	}

	switch {
	case opts.fen != "":
		return board.FromFEN(opts.fen)
	case opts.pgnPath != "":
		text, err := readInput(opts.pgnPath)
		if err != nil {
			return nil, err
		}
		return board.FromPGN(text)
	default:
		text, err := readInput(opts.gridPath)
		if err != nil {
			return nil, err
		}
		grid, err := parseGrid(text)
		if err != nil {
			return nil, err
		}
		return board.FromGrid(grid), nil
	}
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
