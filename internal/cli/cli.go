package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/doctree/pkg/buildinfo"
	"github.com/matzehuels/doctree/pkg/cache"
	"github.com/matzehuels/doctree/pkg/config"
	"github.com/matzehuels/doctree/pkg/observability"
)

// appName is the application name used in help and completion output.
const appName = "doctree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command results: graph output on stdout and summaries.
	Out io.Writer

	// Err receives progress indicators. Logs go to the Logger.
	Err io.Writer
}

// New creates a CLI that logs to w at level and writes results to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		Err:    w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
//
// The --verbose flag switches the logger to debug level and routes pipeline
// and server hooks to it.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   appName,
		Short: "Doctree draws the dependency graph of a note collection",
		Long: `Doctree reads YAML front matter from a directory of notes, links each note to
the notes it depends on, and writes the result as a Graphviz graph.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !verbose {
				return
			}
			c.SetLogLevel(LogDebug)
			hooks := observability.NewLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetServerHooks(hooks)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.graphCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// interactive reports whether progress indicators should be drawn.
func (c *CLI) interactive() bool {
	f, ok := c.Err.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// =============================================================================
// Artifact Cache
// =============================================================================

// openCache opens the cache configured in cfg, or the fallback backend when
// cfg names none. A file cache without a configured directory lives under
// the user cache directory; if that cannot be located, caching is disabled.
func (c *CLI) openCache(ctx context.Context, cfg *config.Config, fallback string, disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	opts := cache.Options{
		Backend: cfg.Cache.Backend,
		Dir:     cfg.Cache.Dir,
		URL:     cfg.Cache.URL,
	}
	if opts.Backend == "" {
		opts.Backend = fallback
	}
	if opts.Backend == cache.BackendFile && opts.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Debug("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		opts.Dir = dir
	}
	return cache.Open(ctx, opts)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/doctree/).
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
