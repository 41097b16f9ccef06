package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/doctree/pkg/cache"
	"github.com/matzehuels/doctree/pkg/corpus"
	doctreeerrors "github.com/matzehuels/doctree/pkg/errors"
	"github.com/matzehuels/doctree/pkg/pipeline"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	corpus  corpusFlags
	focus   string
	format  string // comma-separated
	output  string // output file, or base path for several formats
	watch   bool
	noCache bool
}

// graphCommand creates the graph command.
//
// Without --focus the whole corpus is drawn. With --focus only the focal
// document and its dependencies up to --depth levels are drawn. Output goes
// to stdout unless --output is given.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph [root]",
		Short: "Build the dependency graph of a note collection",
		Long: `Build the dependency graph of the notes under root (default: the current
directory) and write it as Graphviz DOT, SVG, PNG or JSON.

Examples:
  doctree graph notes > notes.dot
  doctree graph notes --focus "Tangent cones" --depth 2 --format svg -o cones.svg
  doctree graph notes --tag algebra --format dot,svg -o out/algebra
  doctree graph notes --format svg -o notes.svg --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, rootArg(args), &opts)
		},
	}

	opts.corpus.register(cmd)
	opts.corpus.registerGraph(cmd)
	cmd.Flags().StringVarP(&opts.focus, "focus", "f", "", "title of the document to center the graph on")
	cmd.Flags().StringVar(&opts.format, "format", pipeline.DefaultFormat, "output format(s): "+strings.Join(pipeline.Formats, ", ")+" (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (several formats)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "rebuild the output whenever a document changes")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "render without reading or writing the artifact cache")
	_ = cmd.RegisterFlagCompletionFunc("focus", completeTitles)

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, root string, g *graphOpts) error {
	ctx := cmd.Context()

	cfg, err := g.corpus.loadConfig(root)
	if err != nil {
		return err
	}
	opts := g.corpus.options(cmd, root, cfg)
	opts.Focus = strings.TrimSpace(g.focus)
	opts.Logger = c.Logger
	if cmd.Flags().Changed("format") {
		opts.Formats = parseFormats(g.format)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if g.output == "" {
		if len(opts.Formats) > 1 {
			return doctreeerrors.New(doctreeerrors.ErrCodeInvalidInput, "writing several formats requires --output")
		}
		if g.watch {
			return doctreeerrors.New(doctreeerrors.ErrCodeInvalidInput, "--watch requires --output")
		}
	}

	store, err := c.openCache(ctx, cfg, cache.BackendFile, g.noCache)
	if err != nil {
		return err
	}
	defer store.Close()
	runner := pipeline.NewRunner(store, c.Logger)
	if !g.watch {
		return c.writeGraph(ctx, runner, opts, g.output)
	}

	// A broken corpus is reported but does not end watch mode; the next save
	// may fix it.
	if err := c.writeGraph(ctx, runner, opts, g.output); err != nil {
		c.Logger.Error("Build failed", "err", err)
	}
	c.Logger.Info("Watching for changes", "root", root)
	return corpus.Watch(ctx, root, corpus.Options{Extensions: opts.Extensions, Logger: c.Logger}, 0, func() {
		if err := c.writeGraph(ctx, runner, opts, g.output); err != nil {
			c.Logger.Error("Rebuild failed", "err", err)
		}
	})
}

// writeGraph runs the pipeline once and writes every requested format.
func (c *CLI) writeGraph(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, output string) error {
	prog := newProgress(c.Logger)
	sp := c.spinner(ctx, "Building graph")
	sp.Start()
	res, err := runner.Execute(ctx, opts)
	sp.Stop()
	if err != nil {
		return err
	}

	if output == "" {
		_, err := c.Out.Write(res.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(output, opts.Formats)
	for i, format := range opts.Formats {
		if dir := filepath.Dir(paths[i]); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(paths[i], res.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[i], err)
		}
	}

	prog.done(fmt.Sprintf("Built graph of %d documents", res.Stats.NodeCount))
	printStats(c.Out, res.Stats.NodeCount, res.Stats.EdgeCount, res.Stats.RootCount)
	for _, p := range paths {
		printFile(c.Out, p)
	}
	return nil
}

// outputPaths returns the file for each format. A single format is written
// to output as given; several formats share output minus its extension as
// base name.
func outputPaths(output string, formats []string) []string {
	if len(formats) == 1 {
		return []string{output}
	}
	base := strings.TrimSuffix(output, filepath.Ext(output))
	paths := make([]string, len(formats))
	for i, f := range formats {
		paths[i] = base + "." + f
	}
	return paths
}
