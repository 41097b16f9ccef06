package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/doctree/pkg/buildinfo"
	"github.com/matzehuels/doctree/pkg/corpus"
	doctreeerrors "github.com/matzehuels/doctree/pkg/errors"
	"github.com/matzehuels/doctree/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

// handleGraph serves GET /graph.
//
// Query parameters: tag (repeatable), focus, depth, format. Without a focus
// the full graph is returned and depth is ignored.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	opts, err := s.graphOptions(r)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Doctree-Nodes", strconv.Itoa(res.Stats.NodeCount))
	w.Header().Set("X-Doctree-Edges", strconv.Itoa(res.Stats.EdgeCount))
	if res.Stats.CacheHits > 0 {
		w.Header().Set("X-Doctree-Cache", "hit")
	} else {
		w.Header().Set("X-Doctree-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) graphOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Root:       s.opts.Root,
		Extensions: s.opts.Extensions,
		Tags:       s.opts.Tags,
		Focus:      strings.TrimSpace(q.Get("focus")),
		Depth:      s.opts.Depth,
		Formats:    []string{pipeline.DefaultFormat},
		DOTConfig:  s.opts.DOTConfig,
	}
	if tags := q["tag"]; len(tags) > 0 {
		opts.Tags = tags
	}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	}
	if d := q.Get("depth"); d != "" {
		depth, err := strconv.Atoi(d)
		if err != nil {
			return opts, doctreeerrors.New(doctreeerrors.ErrCodeInvalidInput, "depth %q is not an integer", d)
		}
		opts.Depth = depth
	}
	return opts, nil
}

type documentResponse struct {
	Path         string   `json:"path"`
	Title        string   `json:"title"`
	Date         string   `json:"date,omitempty"`
	Description  string   `json:"description,omitempty"`
	Dependencies []string `json:"dependencies"`
	Tags         []string `json:"tags"`
}

// handleDocuments serves GET /documents: every document with front matter,
// in path order, without resolving dependencies.
func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := corpus.Load(r.Context(), s.opts.Root, corpus.Options{
		Extensions: s.opts.Extensions,
		Logger:     s.logger,
	})
	if err != nil {
		writeErr(w, r, err)
		return
	}

	out := make([]documentResponse, len(docs))
	for i, d := range docs {
		out[i] = documentResponse{
			Path:         d.Path,
			Title:        d.Record.Title,
			Date:         d.Record.Date,
			Description:  d.Record.Description,
			Dependencies: nonNil(d.Record.Dependencies),
			Tags:         nonNil(d.Record.Tags),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": out})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch doctreeerrors.GetCode(err) {
	case doctreeerrors.ErrCodeDuplicateTitle,
		doctreeerrors.ErrCodeFocalNodeNotFound,
		doctreeerrors.ErrCodeUnresolvedDependency,
		doctreeerrors.ErrCodeMalformedMetadata:
		return http.StatusUnprocessableEntity
	case doctreeerrors.ErrCodeInvalidInput, doctreeerrors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case doctreeerrors.ErrCodeNotFound, doctreeerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	code := string(doctreeerrors.GetCode(err))
	if code == "" {
		code = string(doctreeerrors.ErrCodeInternal)
	}
	writeError(w, r, statusFor(err), code, err.Error())
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, status, errorResponse{
		Error:     code,
		Message:   msg,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
