package pipeline

import (
	"bytes"
	"context"
	"time"

	doctreeerrors "github.com/matzehuels/doctree/pkg/errors"
	"github.com/matzehuels/doctree/pkg/graph"
	docio "github.com/matzehuels/doctree/pkg/io"
	"github.com/matzehuels/doctree/pkg/observability"
	"github.com/matzehuels/doctree/pkg/render/nodelink"
)

// Render serializes g in one format. DOT statements from opts.DOTConfig are
// applied to the dot, svg and png outputs.
func Render(ctx context.Context, g *graph.Graph, format string, opts Options) (data []byte, err error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()
	defer func() {
		hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	}()

	dotOpts := nodelink.Options{Config: opts.DOTConfig}
	switch format {
	case FormatDOT:
		return []byte(nodelink.ToDOT(g, dotOpts)), nil
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(g, dotOpts))
	case FormatPNG:
		data, err = nodelink.RenderPNG(ctx, nodelink.ToDOT(g, dotOpts))
	case FormatJSON:
		var buf bytes.Buffer
		err = docio.WriteJSON(g, &buf)
		data = buf.Bytes()
	}
	if err != nil {
		return nil, doctreeerrors.Wrap(doctreeerrors.ErrCodeInternal, err, "render %s", format)
	}
	return data, nil
}
