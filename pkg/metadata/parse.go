package metadata

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	doctreeerrors "github.com/matzehuels/doctree/pkg/errors"
)

// errMissingTitle is the cause reported for blocks without a title field.
var errMissingTitle = errors.New("missing required field: title")

// yamlFront mirrors the recognized YAML fields. Date stays a string: yaml.v3
// stores the raw scalar text for string targets, so an unquoted 2023-02-03
// is kept verbatim rather than reinterpreted as a timestamp.
type yamlFront struct {
	Title        string   `yaml:"title"`
	Date         string   `yaml:"date"`
	Description  string   `yaml:"description"`
	Dependencies []string `yaml:"dependencies"`
	Tags         []string `yaml:"tags"`
}

// tomlFront mirrors the recognized TOML fields. TOML has native date types,
// so Date is decoded loosely and formatted afterwards.
type tomlFront struct {
	Title        string   `toml:"title"`
	Date         any      `toml:"date"`
	Description  string   `toml:"description"`
	Dependencies []string `toml:"dependencies"`
	Tags         []string `toml:"tags"`
}

// Parse decodes a front-matter block into a normalized Record.
//
// Any decoding failure, and a missing or blank title, is reported as a
// MalformedMetadata error naming b.Source. Unknown fields are ignored.
func Parse(b Block) (Record, error) {
	var (
		rec Record
		err error
	)
	switch b.Format {
	case FormatYAML:
		rec, err = parseYAML(b.Text)
	case FormatTOML:
		rec, err = parseTOML(b.Text)
	default:
		err = fmt.Errorf("unknown front matter format %q", b.Format)
	}
	if err != nil {
		return Record{}, doctreeerrors.MalformedMetadata(b.Source, err)
	}

	rec.Source = b.Source
	rec = rec.Normalize()
	if rec.Title == "" {
		return Record{}, doctreeerrors.MalformedMetadata(b.Source, errMissingTitle)
	}
	return rec, nil
}

// ParseFile reads the document at path and parses its front matter.
// ok is false when the document has no front-matter block; such documents
// are not part of the corpus and are not an error.
func ParseFile(path string) (rec Record, ok bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, false, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	b, ok, err := Extract(f)
	if err != nil {
		return Record{}, false, doctreeerrors.MalformedMetadata(path, err)
	}
	if !ok {
		return Record{}, false, nil
	}
	b.Source = path

	rec, err = Parse(b)
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

func parseYAML(text string) (Record, error) {
	var fm yamlFront
	if err := yaml.Unmarshal([]byte(text), &fm); err != nil {
		return Record{}, err
	}
	return Record{
		Title:        fm.Title,
		Date:         fm.Date,
		Description:  fm.Description,
		Dependencies: fm.Dependencies,
		Tags:         fm.Tags,
	}, nil
}

func parseTOML(text string) (Record, error) {
	var fm tomlFront
	if _, err := toml.Decode(text, &fm); err != nil {
		return Record{}, err
	}
	return Record{
		Title:        fm.Title,
		Date:         formatDate(fm.Date),
		Description:  fm.Description,
		Dependencies: fm.Dependencies,
		Tags:         fm.Tags,
	}, nil
}

// formatDate renders a decoded TOML date value. Local dates come back as
// midnight timestamps and are printed without a clock.
func formatDate(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case string:
		return d
	case time.Time:
		if d.Hour() == 0 && d.Minute() == 0 && d.Second() == 0 && d.Nanosecond() == 0 {
			return d.Format(time.DateOnly)
		}
		return d.Format(time.RFC3339)
	default:
		return fmt.Sprint(d)
	}
}
