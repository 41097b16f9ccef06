package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/doctree/pkg/config"
	"github.com/matzehuels/doctree/pkg/pipeline"
)

// corpusFlags are the flags shared by every command that reads a corpus.
type corpusFlags struct {
	configPath string
	extensions []string
	tags       []string
	depth      int
	dotConfig  []string
}

func (f *corpusFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "configuration file (default: <root>/"+config.FileName+")")
	cmd.Flags().StringSliceVar(&f.extensions, "ext", nil, "document file extensions, e.g. .md,.markdown (default .md)")
	cmd.Flags().StringArrayVarP(&f.tags, "tag", "t", nil, "only include documents with this tag (repeatable)")
}

// registerGraph adds the flags that shape graph output.
func (f *corpusFlags) registerGraph(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.depth, "depth", "d", pipeline.DefaultDepth, "neighborhood depth around the focus")
	cmd.Flags().StringArrayVar(&f.dotConfig, "dot", nil, "extra DOT statement for the graph, e.g. rankdir=LR (repeatable)")
}

// rootArg returns the corpus root given on the command line, or ".".
func rootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// loadConfig reads the file named by --config, or doctree.toml at root when
// it exists.
func (f *corpusFlags) loadConfig(root string) (*config.Config, error) {
	if f.configPath != "" {
		return config.Load(f.configPath)
	}
	return config.Find(root)
}

// options merges flags over cfg. Flags the user did not set fall back to the
// configuration, then to the pipeline defaults.
func (f *corpusFlags) options(cmd *cobra.Command, root string, cfg *config.Config) pipeline.Options {
	opts := pipeline.Options{
		Root:       root,
		Extensions: cfg.Extensions,
		Tags:       cfg.Tags,
		Depth:      pipeline.DefaultDepth,
		DOTConfig:  cfg.Graph.Config,
	}
	if cfg.Graph.Format != "" {
		opts.Formats = []string{cfg.Graph.Format}
	}
	if cfg.Graph.Depth != nil {
		opts.Depth = *cfg.Graph.Depth
	}

	flags := cmd.Flags()
	if flags.Changed("ext") {
		opts.Extensions = f.extensions
	}
	if flags.Changed("tag") {
		opts.Tags = f.tags
	}
	if flags.Changed("depth") {
		opts.Depth = f.depth
	}
	if flags.Changed("dot") {
		opts.DOTConfig = f.dotConfig
	}
	return opts
}

// parseFormats parses a comma-separated format list.
func parseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
