package docgraph

import (
	"cmp"
	"errors"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	doctreeerrors "github.com/matzehuels/doctree/pkg/errors"
	"github.com/matzehuels/doctree/pkg/metadata"
)

var errMissingTitle = errors.New("missing required field: title")

// StoreOptions configures a [Store].
type StoreOptions struct {
	// Tags is the tag filter. A document is retained when Tags is empty or
	// shares at least one tag with it.
	Tags []string

	// Focus is the title of the focal document. When set, that document is
	// retained even if the tag filter would exclude it, and it receives ID 0.
	Focus string

	// Logger receives debug-level ingestion traces. Nil discards them.
	Logger *log.Logger
}

// Store collects metadata records and admits the retained ones into a
// [NodeSet].
//
// Titles are unique across everything ingested, including documents the tag
// filter later drops and the focal document. Store is not safe for
// concurrent use; ingestion is sequential.
type Store struct {
	opts    StoreOptions
	logger  *log.Logger
	records []metadata.Record
	seen    map[string]struct{}
}

// NewStore creates an empty Store.
func NewStore(opts StoreOptions) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Store{
		opts:   opts,
		logger: logger,
		seen:   make(map[string]struct{}),
	}
}

// Ingest adds one record.
//
// It returns a DuplicateTitle error if a record with the same title was
// ingested before, whatever its other fields, and a MalformedMetadata error
// if the title is blank. Rejected records are not stored.
func (s *Store) Ingest(rec metadata.Record) error {
	rec = rec.Normalize()
	if rec.Title == "" {
		return doctreeerrors.MalformedMetadata(rec.Source, errMissingTitle)
	}
	if _, dup := s.seen[rec.Title]; dup {
		return doctreeerrors.DuplicateTitle(rec.Title)
	}
	s.seen[rec.Title] = struct{}{}
	s.records = append(s.records, rec)
	s.logger.Debug("ingested", "title", rec.Title, "deps", len(rec.Dependencies), "tags", rec.Tags)
	return nil
}

// IngestAll ingests records in order and stops at the first error.
func (s *Store) IngestAll(recs []metadata.Record) error {
	for _, r := range recs {
		if err := s.Ingest(r); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of ingested records.
func (s *Store) Len() int { return len(s.records) }

// Retained returns how many ingested records pass the tag filter or are the
// focal record.
func (s *Store) Retained() int {
	n := 0
	for _, r := range s.records {
		if s.retains(r) {
			n++
		}
	}
	return n
}

func (s *Store) retains(r metadata.Record) bool {
	return (s.opts.Focus != "" && r.Title == s.opts.Focus) || r.HasAnyTag(s.opts.Tags)
}

// NodeSet admits the retained records and returns them as a NodeSet.
//
// The focal record, if requested, is admitted first with ID 0; it fails with
// FocalNodeNotFound when no ingested record carries that title. The other
// retained records follow in title order, so IDs do not depend on the order
// of ingestion.
//
// Each call builds a fresh NodeSet; the Store can keep ingesting afterwards.
func (s *Store) NodeSet() (*NodeSet, error) {
	var (
		focal    []metadata.Record
		retained []metadata.Record
	)
	for _, r := range s.records {
		switch {
		case s.opts.Focus != "" && r.Title == s.opts.Focus:
			focal = append(focal, r)
		case r.HasAnyTag(s.opts.Tags):
			retained = append(retained, r)
		default:
			s.logger.Debug("filtered out", "title", r.Title, "tags", r.Tags)
		}
	}

	if s.opts.Focus != "" {
		switch len(focal) {
		case 0:
			return nil, doctreeerrors.FocalNodeNotFound(s.opts.Focus)
		case 1:
		default:
			return nil, doctreeerrors.DuplicateTitle(s.opts.Focus)
		}
	}

	slices.SortFunc(retained, func(a, b metadata.Record) int {
		return cmp.Compare(a.Title, b.Title)
	})

	arena := make([]metadata.Record, 0, len(focal)+len(retained))
	arena = append(arena, focal...)
	arena = append(arena, retained...)

	s.logger.Debug("admitted", "nodes", len(arena), "ingested", len(s.records), "focal", s.opts.Focus)
	return newNodeSet(arena, len(focal) == 1), nil
}
