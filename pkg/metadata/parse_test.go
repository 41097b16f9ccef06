package metadata

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	doctreeerrors "github.com/matzehuels/doctree/pkg/errors"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantOK     bool
		wantFormat Format
		wantText   string
	}{
		{
			name:       "yaml block",
			input:      "---\ntitle: A\ntags: [x]\n---\n# Body\n",
			wantOK:     true,
			wantFormat: FormatYAML,
			wantText:   "title: A\ntags: [x]",
		},
		{
			name:       "toml block",
			input:      "+++\ntitle = \"A\"\n+++\nbody",
			wantOK:     true,
			wantFormat: FormatTOML,
			wantText:   `title = "A"`,
		},
		{
			name:       "crlf line endings",
			input:      "---\r\ntitle: A\r\n---\r\n",
			wantOK:     true,
			wantFormat: FormatYAML,
			wantText:   "title: A",
		},
		{
			name:       "byte order mark",
			input:      "\ufeff---\ntitle: A\n---\n",
			wantOK:     true,
			wantFormat: FormatYAML,
			wantText:   "title: A",
		},
		{
			name:   "no front matter",
			input:  "# Just a heading\n---\ntitle: A\n---\n",
			wantOK: false,
		},
		{
			name:   "unterminated block",
			input:  "---\ntitle: A\n",
			wantOK: false,
		},
		{
			name:   "empty document",
			input:  "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok, err := Extract(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("Extract() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if b.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", b.Format, tt.wantFormat)
			}
			if b.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", b.Text, tt.wantText)
			}
		})
	}
}

func TestParseYAML(t *testing.T) {
	b := Block{
		Format: FormatYAML,
		Source: "ag/families.md",
		Text: `    title: '一般代数几何：概形族'
    date: 2023-02-03
    description:
    dependencies: []
    tags:
      - 代数几何
      - 一般代数几何
      - 代数几何`,
	}

	rec, err := Parse(b)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if rec.Title != "一般代数几何：概形族" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Date != "2023-02-03" {
		t.Errorf("Date = %q, want 2023-02-03", rec.Date)
	}
	if rec.Description != "" {
		t.Errorf("Description = %q, want empty", rec.Description)
	}
	if len(rec.Dependencies) != 0 {
		t.Errorf("Dependencies = %v, want none", rec.Dependencies)
	}
	if !slices.Equal(rec.Tags, []string{"一般代数几何", "代数几何"}) {
		t.Errorf("Tags = %v, want de-duplicated and sorted", rec.Tags)
	}
	if rec.Source != "ag/families.md" {
		t.Errorf("Source = %q", rec.Source)
	}
}

func TestParseTOML(t *testing.T) {
	b := Block{
		Format: FormatTOML,
		Text: `title = "Tangent cones"
date = 2023-02-03
description = "Local structure"
dependencies = ["Varieties", "Local rings", "Varieties"]
tags = ["ag"]`,
	}

	rec, err := Parse(b)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if rec.Title != "Tangent cones" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Date != "2023-02-03" {
		t.Errorf("Date = %q, want 2023-02-03", rec.Date)
	}
	if !slices.Equal(rec.Dependencies, []string{"Local rings", "Varieties"}) {
		t.Errorf("Dependencies = %v", rec.Dependencies)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		block Block
	}{
		{"invalid yaml", Block{Format: FormatYAML, Text: "title: [unclosed", Source: "a.md"}},
		{"invalid toml", Block{Format: FormatTOML, Text: "title = ", Source: "a.md"}},
		{"missing title", Block{Format: FormatYAML, Text: "tags: [x]", Source: "a.md"}},
		{"blank title", Block{Format: FormatYAML, Text: "title: '  '", Source: "a.md"}},
		{"wrong field type", Block{Format: FormatYAML, Text: "title: A\ntags: {a: b}", Source: "a.md"}},
		{"unknown format", Block{Format: "json", Text: "{}", Source: "a.md"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.block)
			if err == nil {
				t.Fatal("Parse() error = nil, want MalformedMetadata")
			}
			if !doctreeerrors.Is(err, doctreeerrors.ErrCodeMalformedMetadata) {
				t.Errorf("Parse() error code = %v, want MALFORMED_METADATA", doctreeerrors.GetCode(err))
			}
			if !strings.Contains(err.Error(), "a.md") {
				t.Errorf("error %q does not name the source", err)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	withMeta := filepath.Join(dir, "a.md")
	if err := os.WriteFile(withMeta, []byte("---\ntitle: A\ndependencies: [B]\n---\ntext\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	plain := filepath.Join(dir, "plain.md")
	if err := os.WriteFile(plain, []byte("no metadata here\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec, ok, err := ParseFile(withMeta)
	if err != nil || !ok {
		t.Fatalf("ParseFile(a.md) = ok %v, err %v", ok, err)
	}
	if rec.Title != "A" || !slices.Equal(rec.Dependencies, []string{"B"}) {
		t.Errorf("ParseFile(a.md) = %+v", rec)
	}
	if rec.Source != withMeta {
		t.Errorf("Source = %q, want %q", rec.Source, withMeta)
	}

	_, ok, err = ParseFile(plain)
	if err != nil || ok {
		t.Errorf("ParseFile(plain.md) = ok %v, err %v, want no block and no error", ok, err)
	}

	if _, _, err := ParseFile(filepath.Join(dir, "missing.md")); err == nil {
		t.Error("ParseFile(missing) error = nil")
	}
}

func TestRecordHasAnyTag(t *testing.T) {
	rec := NewRecord("A", nil, []string{"ag", "topology"})

	tests := []struct {
		filter []string
		want   bool
	}{
		{nil, true},
		{[]string{}, true},
		{[]string{"ag"}, true},
		{[]string{"algebra", "topology"}, true},
		{[]string{"algebra"}, false},
	}
	for _, tt := range tests {
		if got := rec.HasAnyTag(tt.filter); got != tt.want {
			t.Errorf("HasAnyTag(%v) = %v, want %v", tt.filter, got, tt.want)
		}
	}
}

func TestRecordNormalizeDoesNotMutate(t *testing.T) {
	deps := []string{"C", "A", "C", " "}
	rec := Record{Title: " X ", Dependencies: deps}.Normalize()

	if rec.Title != "X" {
		t.Errorf("Title = %q, want trimmed", rec.Title)
	}
	if !slices.Equal(rec.Dependencies, []string{"A", "C"}) {
		t.Errorf("Dependencies = %v", rec.Dependencies)
	}
	if !slices.Equal(deps, []string{"C", "A", "C", " "}) {
		t.Errorf("input slice was modified: %v", deps)
	}
}
