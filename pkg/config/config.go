package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	doctreeerrors "github.com/matzehuels/doctree/pkg/errors"
)

// FileName is the project configuration file looked up at the corpus root.
const FileName = "doctree.toml"

// Config is the decoded project configuration. Zero fields mean "not set";
// callers apply their own defaults for those.
type Config struct {
	// Extensions are the document file extensions, including the dot.
	Extensions []string `toml:"extensions"`

	// Tags is the default tag filter.
	Tags []string `toml:"tags"`

	Graph  Graph  `toml:"graph"`
	Server Server `toml:"server"`
	Cache  Cache  `toml:"cache"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

// Graph holds graph output settings.
type Graph struct {
	// Depth is the default neighborhood depth when a focus is given.
	Depth *int `toml:"depth"`

	// Format is the default output format. It is checked when a graph is
	// rendered, not here.
	Format string `toml:"format"`

	// Config holds extra DOT statements written at the top of the graph.
	Config []string `toml:"config"`
}

// Server holds HTTP server settings.
type Server struct {
	Addr string `toml:"addr"`
}

// Cache selects where rendered artifacts are cached.
type Cache struct {
	// Backend is one of none, memory, file or redis. Empty means the entry
	// point's default: file for the CLI, memory for the server.
	Backend string `toml:"backend"`

	// Dir is the file cache directory. Empty means the user cache directory.
	Dir string `toml:"dir"`

	// URL is the Redis URL, e.g. redis://localhost:6379/0.
	URL string `toml:"url"`
}

// Load reads the configuration file at path.
//
// Unknown keys are rejected so that typos do not silently fall back to
// defaults. Errors carry the INVALID_CONFIG code, or FILE_NOT_FOUND when
// path does not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, doctreeerrors.Wrap(doctreeerrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes configuration data. name is used in error messages.
func Parse(name string, data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, doctreeerrors.Wrap(doctreeerrors.ErrCodeInvalidConfig, err, "parse %s", name)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, doctreeerrors.New(doctreeerrors.ErrCodeInvalidConfig,
			"%s: unknown keys: %s", name, strings.Join(keys, ", "))
	}
	cfg.Path = name
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Find loads root/doctree.toml if it exists and returns an empty Config
// otherwise.
func Find(root string) (*Config, error) {
	path := filepath.Join(root, FileName)
	cfg, err := Load(path)
	if doctreeerrors.Is(err, doctreeerrors.ErrCodeFileNotFound) {
		return &Config{}, nil
	}
	return cfg, err
}

// Validate checks field values.
func (c *Config) Validate() error {
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return doctreeerrors.New(doctreeerrors.ErrCodeInvalidConfig,
				"extension %q must start with a dot", ext)
		}
	}
	if c.Graph.Depth != nil && *c.Graph.Depth < 0 {
		return doctreeerrors.New(doctreeerrors.ErrCodeInvalidConfig,
			"graph.depth must not be negative: %d", *c.Graph.Depth)
	}
	return nil
}
