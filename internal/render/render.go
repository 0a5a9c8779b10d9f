// Package render writes block documents as Markdown, plain text or HTML.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/roboco-io/tablekit/internal/ir"
)

// Format represents an output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatHTML     Format = "html"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatMarkdown, FormatText, FormatHTML}

// ParseFormat parses an output format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unsupported output format: %s", name)
}

// Render writes the top-level blocks of tree to w in the given format.
func Render(w io.Writer, tree *ir.Tree, format Format) error {
	var (
		out string
		err error
	)
	switch format {
	case FormatMarkdown:
		out, err = Markdown(tree)
	case FormatText:
		out, err = Text(tree)
	case FormatHTML:
		out, err = HTML(tree)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// topLevel returns the blocks of tree without a parent, in document order.
func topLevel(tree *ir.Tree) []ir.Block {
	var blocks []ir.Block
	for _, b := range tree.Blocks() {
		if b.IsTopLevel() {
			blocks = append(blocks, b)
		}
	}
	return blocks
}
