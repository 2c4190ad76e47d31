// internal/store/file.go
//
// File-backed catalog source and exporter.
//
// Document shape (YAML shown, JSON uses the same field names):
//
//	groups:
//	  - title: 韵母
//	    key: final
//	    pinyins:
//	      - {display: ü, fileKey: v}
//
// Entries without a category inherit their group's key, mirroring how the
// built-in tables are tagged.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/pinyin-game/internal/pinyin"
)

// Format is a catalog document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat checks a format name given on the command line.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatYAML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unsupported catalog format %q", s)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported catalog file extension %q", filepath.Ext(path))
}

type document struct {
	Groups []pinyin.Group `json:"groups" yaml:"groups"`
}

// FileSource loads a catalog document from disk.
type FileSource struct {
	path string
}

// NewFileSource returns a source reading path on every Load.
func NewFileSource(path string) *FileSource { return &FileSource{path: path} }

// Name describes the source for logs.
func (f *FileSource) Name() string { return "file:" + f.path }

// Load reads, decodes and validates the file.
func (f *FileSource) Load(ctx context.Context) (*pinyin.Catalog, error) {
	format, err := FormatFromPath(f.path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	cat, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}
	return cat, nil
}

// Decode parses a catalog document and validates it.
func Decode(r io.Reader, format Format) (*pinyin.Catalog, error) {
	var doc document
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
			return nil, fmt.Errorf("parsing catalog yaml: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
			return nil, fmt.Errorf("parsing catalog json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}

	for gi := range doc.Groups {
		g := &doc.Groups[gi]
		for ei := range g.Entries {
			if g.Entries[ei].Category == "" {
				g.Entries[ei].Category = g.Key
			}
		}
	}
	return pinyin.NewCatalog(doc.Groups)
}

// Encode writes cat as a catalog document.
func Encode(w io.Writer, cat *pinyin.Catalog, format Format) error {
	doc := document{Groups: cat.Groups()}
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	return fmt.Errorf("unsupported catalog format %q", format)
}
