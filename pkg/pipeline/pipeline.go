// Package pipeline runs the complete discover → ingest → resolve → render
// flow for doctree.
//
// The CLI and the HTTP server both build graphs through this package so that
// defaults, validation and error codes are the same on every entry point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: discover documents under the corpus root and parse their front
//     matter ([corpus.Load])
//  2. Build: ingest the records, admit the retained ones, and resolve either
//     the full graph or the focal neighborhood ([docgraph])
//  3. Render: serialize the graph as DOT, SVG, PNG or JSON
//
// Any failure aborts the run; there is no partial graph.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Root:    "notes",
//	    Focus:   "Tangent cones",
//	    Depth:   2,
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	doctreeerrors "github.com/matzehuels/doctree/pkg/errors"
	"github.com/matzehuels/doctree/pkg/graph"
)

// DefaultDepth is the neighborhood depth the CLI and server supply when a
// focus is given without an explicit depth. [Options.ValidateAndSetDefaults]
// does not apply it: a zero Depth keeps only the focal document.
const DefaultDepth = 1

// Format constants for output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// DefaultFormat is the output format when none is requested.
const DefaultFormat = FormatDOT

// Formats lists the supported output formats in display order.
var Formats = []string{FormatDOT, FormatSVG, FormatPNG, FormatJSON}

// ContentTypes maps each format to its HTTP content type.
var ContentTypes = map[string]string{
	FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Load options
	Root       string   `json:"-"`
	Extensions []string `json:"extensions,omitempty"`

	// Build options
	Tags  []string `json:"tags,omitempty"`
	Focus string   `json:"focus,omitempty"`
	Depth int      `json:"depth,omitempty"` // ignored without Focus

	// Render options
	Formats   []string `json:"formats,omitempty"`
	DOTConfig []string `json:"dot_config,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return doctreeerrors.New(doctreeerrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Root == "" {
		return doctreeerrors.New(doctreeerrors.ErrCodeInvalidInput, "corpus root is required")
	}
	if o.Depth < 0 {
		return doctreeerrors.New(doctreeerrors.ErrCodeInvalidInput, "depth must not be negative: %d", o.Depth)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Mode returns "neighborhood" when a focus is set and "full" otherwise.
func (o *Options) Mode() string {
	if o.Focus != "" {
		return "neighborhood"
	}
	return "full"
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the emitted document graph.
	Graph *graph.Graph

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Fingerprint identifies the loaded document records. Two runs over
	// unchanged documents have the same fingerprint.
	Fingerprint string

	// Stats contains counts and timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Documents int // documents with front matter
	Retained  int // documents that passed the tag filter
	NodeCount int
	EdgeCount int
	RootCount int

	// Cycle holds the node IDs of one dependency cycle, or nil.
	Cycle []int

	// CacheHits counts artifacts served from the cache.
	CacheHits int

	LoadTime    time.Duration
	ResolveTime time.Duration
	RenderTime  time.Duration
}
