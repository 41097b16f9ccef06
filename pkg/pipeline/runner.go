package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/doctree/pkg/buildinfo"
	"github.com/matzehuels/doctree/pkg/cache"
	"github.com/matzehuels/doctree/pkg/corpus"
	"github.com/matzehuels/doctree/pkg/docgraph"
	"github.com/matzehuels/doctree/pkg/graph"
	"github.com/matzehuels/doctree/pkg/observability"
)

// ArtifactTTL bounds how long rendered artifacts stay cached. Keys are
// derived from content, so entries never go stale; the TTL only frees space.
const ArtifactTTL = 24 * time.Hour

// Runner executes pipeline runs.
//
// The Runner keeps no state between runs other than its cache. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil logger
// uses the default logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete load → build → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result, err := r.Build(ctx, opts)
	if err != nil {
		return nil, err
	}

	renderStart := time.Now()
	for _, format := range opts.Formats {
		data, err := r.render(ctx, result, format, opts)
		if err != nil {
			return nil, err
		}
		result.Artifacts[format] = data
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// Build loads the corpus and constructs the graph without rendering it.
// The returned Result has an empty Artifacts map.
func (r *Runner) Build(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Load
	loadStart := time.Now()
	docs, err := corpus.Load(ctx, opts.Root, corpus.Options{
		Extensions: opts.Extensions,
		Logger:     opts.Logger,
	})
	result.Stats.LoadTime = time.Since(loadStart)
	hooks.OnDiscoverComplete(ctx, opts.Root, len(docs), result.Stats.LoadTime, err)
	if err != nil {
		return nil, err
	}
	result.Stats.Documents = len(docs)
	result.Fingerprint = cache.Key("corpus", corpus.Records(docs))

	// Stage 2: Build
	resolveStart := time.Now()
	g, retained, err := r.build(ctx, docs, opts)
	result.Stats.ResolveTime = time.Since(resolveStart)
	nodes, edges := 0, 0
	if g != nil {
		nodes, edges = g.NodeCount(), g.EdgeCount()
	}
	hooks.OnResolveComplete(ctx, opts.Mode(), nodes, edges, result.Stats.ResolveTime, err)
	if err != nil {
		return nil, err
	}

	result.Graph = g
	result.Stats.Retained = retained
	result.Stats.NodeCount = nodes
	result.Stats.EdgeCount = edges
	result.Stats.RootCount = len(g.Roots())
	result.Stats.Cycle = g.FindCycle()

	r.Logger.Debug("built graph",
		"mode", opts.Mode(),
		"documents", result.Stats.Documents,
		"nodes", nodes,
		"edges", edges,
		"duration", result.Stats.ResolveTime)
	return result, nil
}

// render returns the artifact for format from the cache, rendering and
// storing it on a miss. Cache failures are logged and otherwise ignored.
func (r *Runner) render(ctx context.Context, result *Result, format string, opts Options) ([]byte, error) {
	dotConfig := opts.DOTConfig
	if format == FormatJSON {
		dotConfig = nil
	}
	key := cache.Key("artifact", buildinfo.Version, result.Fingerprint,
		opts.Tags, opts.Focus, opts.Depth, dotConfig, format)

	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "format", format, "err", err)
	}
	if hit {
		result.Stats.CacheHits++
		r.Logger.Debug("cache hit", "format", format)
		return data, nil
	}

	data, err = Render(ctx, result.Graph, format, opts)
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, data, ArtifactTTL); err != nil {
		r.Logger.Warn("cache write failed", "format", format, "err", err)
	}
	return data, nil
}

// build ingests docs and returns the emitted graph and the retained count.
func (r *Runner) build(ctx context.Context, docs []corpus.Document, opts Options) (*graph.Graph, int, error) {
	hooks := observability.Pipeline()

	store := docgraph.NewStore(docgraph.StoreOptions{
		Tags:   opts.Tags,
		Focus:  opts.Focus,
		Logger: opts.Logger,
	})
	for _, d := range docs {
		if err := store.Ingest(d.Record); err != nil {
			return nil, 0, err
		}
		hooks.OnIngest(ctx, d.Record.Title, len(d.Record.Dependencies))
	}

	ns, err := store.NodeSet()
	if err != nil {
		return nil, 0, err
	}
	retained := ns.Len()

	hooks.OnResolveStart(ctx, opts.Mode(), retained)
	ns, err = docgraph.Build(ns, opts.Depth)
	if err != nil {
		return nil, 0, err
	}

	g, err := docgraph.ToGraph(ns)
	if err != nil {
		return nil, 0, fmt.Errorf("emit graph: %w", err)
	}
	return g, retained, nil
}

// applyLogger routes library logging to the runner's logger unless the
// options carry their own.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
