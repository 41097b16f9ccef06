package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements PipelineHooks and ServerHooks by writing debug-level
// log lines. It is the tracing used by the CLI's verbose mode.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnDiscoverComplete(_ context.Context, root string, documents int, d time.Duration, err error) {
	h.done("discover", d, err, "root", root, "documents", documents)
}

func (h *LogHooks) OnIngest(_ context.Context, title string, dependencies int) {
	h.logger.Debug("ingest", "title", title, "deps", dependencies)
}

func (h *LogHooks) OnResolveStart(_ context.Context, mode string, nodeCount int) {
	h.logger.Debug("resolve start", "mode", mode, "nodes", nodeCount)
}

func (h *LogHooks) OnResolveComplete(_ context.Context, mode string, nodeCount, edgeCount int, d time.Duration, err error) {
	h.done("resolve", d, err, "mode", mode, "nodes", nodeCount, "edges", edgeCount)
}

func (h *LogHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("render start", "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.done("render", d, err, "format", format, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d.Round(time.Microsecond))
}

func (h *LogHooks) done(stage string, d time.Duration, err error, kv ...any) {
	kv = append(kv, "duration", d.Round(time.Microsecond))
	if err != nil {
		h.logger.Debug(stage+" failed", append(kv, "err", err)...)
		return
	}
	h.logger.Debug(stage, kv...)
}
