package metadata

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Format identifies the syntax of a front-matter block.
type Format string

const (
	// FormatYAML is a block delimited by "---" lines.
	FormatYAML Format = "yaml"
	// FormatTOML is a block delimited by "+++" lines.
	FormatTOML Format = "toml"
)

const (
	yamlDelim = "---"
	tomlDelim = "+++"
)

// maxLineSize bounds a single front-matter line. Long descriptions on one
// line are common in note corpora, so this is well above bufio's default.
const maxLineSize = 1 << 20

// Block is the raw text of a front-matter block, without its delimiter lines.
type Block struct {
	Format Format
	Text   string
	Source string
}

// Extract reads the front-matter block at the start of r.
//
// The first line must start with "---" (YAML) or "+++" (TOML). Lines are
// collected until a line starting with the same delimiter. If the document
// does not open with a delimiter, or the block is never closed, ok is false.
// Only read errors are returned as err.
func Extract(r io.Reader) (b Block, ok bool, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	if !sc.Scan() {
		return Block{}, false, sc.Err()
	}
	first := strings.TrimPrefix(sc.Text(), "\ufeff")

	var delim string
	switch {
	case strings.HasPrefix(first, yamlDelim):
		b.Format, delim = FormatYAML, yamlDelim
	case strings.HasPrefix(first, tomlDelim):
		b.Format, delim = FormatTOML, tomlDelim
	default:
		return Block{}, false, nil
	}

	var lines []string
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, delim) {
			b.Text = strings.Join(lines, "\n")
			return b, true, nil
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return Block{}, false, fmt.Errorf("read front matter: %w", err)
	}
	return Block{}, false, nil
}
