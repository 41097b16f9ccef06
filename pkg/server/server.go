package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/doctree/pkg/buildinfo"
	"github.com/matzehuels/doctree/pkg/cache"
	"github.com/matzehuels/doctree/pkg/pipeline"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// shutdownTimeout bounds how long in-flight requests may take after the
// server context is canceled.
const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	// Root is the corpus directory. It is re-read on every request.
	Root       string
	Extensions []string

	// Tags is the tag filter applied when a request does not give one.
	Tags []string

	// DOTConfig holds extra DOT statements for dot, svg and png output.
	DOTConfig []string

	// Depth is the neighborhood depth used when a request gives a focus
	// but no depth. Zero means [pipeline.DefaultDepth].
	Depth int

	// Cache holds rendered artifacts across requests. Nil means a
	// process-local [cache.MemoryCache].
	Cache cache.Cache

	Logger *log.Logger
}

// Server serves document graphs over HTTP.
//
// Every request reloads the corpus through a [pipeline.Runner], so edits
// show up on the next request. Only rendered artifacts are shared between
// requests, keyed by document content.
type Server struct {
	opts   Options
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a Server and its routes.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Depth <= 0 {
		opts.Depth = pipeline.DefaultDepth
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewMemoryCache()
	}
	s := &Server{
		opts:   opts,
		runner: pipeline.NewRunner(opts.Cache, logger),
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.SetHeader("Server", buildinfo.ServerHeader()))
	r.Use(requestLogger(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader, "X-Doctree-Nodes", "X-Doctree-Edges", "X-Doctree-Cache"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/graph", s.handleGraph)
	r.Get("/documents", s.handleDocuments)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" is not allowed")
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("serving", "addr", ln.Addr().String(), "root", s.opts.Root)
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
