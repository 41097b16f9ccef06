package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	doctreeerrors "github.com/matzehuels/doctree/pkg/errors"
	"github.com/matzehuels/doctree/pkg/metadata"
)

// DefaultExtensions lists the file extensions treated as documents when
// [Options.Extensions] is empty.
var DefaultExtensions = []string{".md"}

// deletedSuffix marks files and directories that are kept on disk but are no
// longer part of the corpus.
const deletedSuffix = "_deleted"

// Options configures discovery and loading.
type Options struct {
	// Extensions are the document file extensions, including the dot.
	// Matching is case-sensitive. Empty means [DefaultExtensions].
	Extensions []string

	// Logger receives debug-level discovery traces. Nil discards them.
	Logger *log.Logger
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions
	}
	return o.Extensions
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.Logger
}

// Document is a discovered file together with its metadata record.
type Document struct {
	// Path is the file path relative to the corpus root, with forward slashes.
	Path   string
	Record metadata.Record
}

// Skip reports whether a directory entry named name is excluded from the
// corpus: hidden entries (leading dot) and entries whose name ends in
// "_deleted". An excluded directory is excluded with its whole subtree.
func Skip(name string) bool {
	return (strings.HasPrefix(name, ".") && name != "." && name != "..") ||
		strings.HasSuffix(name, deletedSuffix)
}

// Discover walks root and returns the paths of all document files, sorted.
//
// The root itself is always walked even if its own name would be skipped.
// Returned paths are joined onto root as given. Discover returns a
// FILE_NOT_FOUND error when root does not exist and stops early when ctx is
// canceled.
func Discover(ctx context.Context, root string, opts Options) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, doctreeerrors.Wrap(doctreeerrors.ErrCodeFileNotFound, err, "corpus root %s", root)
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, doctreeerrors.New(doctreeerrors.ErrCodeInvalidInput, "corpus root %s is not a directory", root)
	}

	exts := opts.extensions()
	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path != root && Skip(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && slices.Contains(exts, filepath.Ext(path)) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	slices.Sort(paths)
	return paths, nil
}

// Load discovers the documents under root and parses their front matter.
//
// Files without a front-matter block are not documents and are skipped.
// A block that fails to parse aborts loading with a MALFORMED_METADATA error
// naming the file. Documents are returned in path order.
func Load(ctx context.Context, root string, opts Options) ([]Document, error) {
	logger := opts.logger()

	paths, err := Discover(ctx, root, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered", "root", root, "files", len(paths))

	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		rec, ok, err := metadata.ParseFile(path)
		if err != nil {
			var mm *doctreeerrors.MalformedMetadataError
			if errors.As(err, &mm) {
				return nil, doctreeerrors.MalformedMetadata(rel, mm.Cause)
			}
			return nil, err
		}
		if !ok {
			logger.Debug("no front matter", "path", rel)
			continue
		}
		rec.Source = rel
		docs = append(docs, Document{Path: rel, Record: rec})
	}
	return docs, nil
}

// Records returns the metadata records of docs in order.
func Records(docs []Document) []metadata.Record {
	recs := make([]metadata.Record, len(docs))
	for i, d := range docs {
		recs[i] = d.Record
	}
	return recs
}
