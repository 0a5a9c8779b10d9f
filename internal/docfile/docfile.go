// Package docfile reads and writes block documents as JSON or YAML files.
package docfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roboco-io/tablekit/internal/ir"
)

// Format represents a document file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatYAML
)

var (
	ErrUnknownFormat = errors.New("unknown document format")
	ErrEmptyDocument = errors.New("document has no content")
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name as used by command-line flags.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
}

// DetectFormat detects the document format from the file path.
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// DetectFormatFromReader detects the format from the first non-blank byte:
// an object or array opener means JSON, anything else YAML.
func DetectFormatFromReader(r io.ReaderAt) (Format, error) {
	buf := make([]byte, 512)
	n, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return FormatUnknown, fmt.Errorf("failed to read document head: %w", err)
	}

	head := bytes.TrimLeft(buf[:n], " \t\r\n\ufeff")
	if len(head) == 0 {
		return FormatUnknown, ErrEmptyDocument
	}
	if head[0] == '{' || head[0] == '[' {
		return FormatJSON, nil
	}
	return FormatYAML, nil
}

// Document is the on-disk form of an editor state.
type Document struct {
	Blocks    []ir.Block    `json:"blocks" yaml:"blocks"`
	Selection *ir.Selection `json:"selection,omitempty" yaml:"selection,omitempty"`
}

// Options contains load and save options.
type Options struct {
	HistoryLimit int // undo entries kept by loaded states
}

// DefaultOptions returns default document file options.
func DefaultOptions() Options {
	return Options{
		HistoryLimit: ir.DefaultHistoryLimit,
	}
}

// FromState captures the current content and selection of state.
func FromState(state *ir.EditorState) *Document {
	sel := state.Selection()
	return &Document{
		Blocks:    state.Tree().Blocks(),
		Selection: &sel,
	}
}

// State builds an editor state from the document. Without a stored selection
// the caret is placed at the start of the first block.
func (d *Document) State(opts Options) (*ir.EditorState, error) {
	if len(d.Blocks) == 0 {
		return nil, ErrEmptyDocument
	}
	tree, err := ir.NewTree(d.Blocks...)
	if err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}

	state := ir.CreateWithContent(tree)
	if d.Selection != nil && tree.Has(d.Selection.AnchorKey) && tree.Has(d.Selection.FocusKey) {
		state = ir.NewEditorState(tree, *d.Selection)
	}
	return state.WithHistoryLimit(opts.HistoryLimit), nil
}

// Decode reads a document in the given format.
func Decode(r io.Reader, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode JSON document: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrEmptyDocument
			}
			return nil, fmt.Errorf("failed to decode YAML document: %w", err)
		}
	default:
		return nil, ErrUnknownFormat
	}
	return &doc, nil
}

// Encode writes the document in the given format.
func Encode(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode JSON document: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode YAML document: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML document: %w", err)
		}
	default:
		return ErrUnknownFormat
	}
	return nil
}

// Load reads an editor state from path. The format comes from the extension,
// falling back to content sniffing.
func Load(path string, opts Options) (*ir.EditorState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	format := DetectFormat(path)
	if format == FormatUnknown {
		if format, err = DetectFormatFromReader(f); err != nil {
			return nil, fmt.Errorf("failed to detect format of %s: %w", path, err)
		}
	}

	doc, err := Decode(f, format)
	if err != nil {
		return nil, err
	}
	return doc.State(opts)
}

// Save writes state to path. The format comes from the extension; files
// without a known extension are written as JSON.
func Save(path string, state *ir.EditorState) error {
	format := DetectFormat(path)
	if format == FormatUnknown {
		format = FormatJSON
	}

	var buf bytes.Buffer
	if err := Encode(&buf, FromState(state), format); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}
