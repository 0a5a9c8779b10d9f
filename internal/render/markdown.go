package render

import (
	"fmt"
	"strings"

	"github.com/roboco-io/tablekit/internal/ir"
	"github.com/roboco-io/tablekit/internal/table"
)

// Markdown renders tree as GitHub-flavoured Markdown.
func Markdown(tree *ir.Tree) (string, error) {
	var sb strings.Builder

	for _, block := range topLevel(tree) {
		switch block.Type {
		case ir.BlockTypeTable:
			m, err := table.Snapshot(tree, block.Key)
			if err != nil {
				return "", fmt.Errorf("failed to render table %s: %w", block.Key, err)
			}
			writeMarkdownTable(&sb, m)
		case ir.BlockTypeHeaderOne:
			writeMarkdownParagraph(&sb, "# ", block.Text)
		case ir.BlockTypeHeaderTwo:
			writeMarkdownParagraph(&sb, "## ", block.Text)
		default:
			writeMarkdownParagraph(&sb, "", block.Text)
		}
	}

	return sb.String(), nil
}

func writeMarkdownParagraph(sb *strings.Builder, prefix, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	sb.WriteString(prefix + text + "\n\n")
}

// writeMarkdownTable writes m as a pipe table. The first row becomes the
// Markdown header row; ragged rows are padded to m.Cols.
func writeMarkdownTable(sb *strings.Builder, m *ir.TableBlock) {
	if len(m.Cells) == 0 || m.Cols == 0 {
		return
	}

	for i, row := range m.Cells {
		sb.WriteString("|")
		for j := 0; j < m.Cols; j++ {
			text := ""
			if j < len(row) {
				text = markdownCellText(row[j].Text)
			}
			sb.WriteString(fmt.Sprintf(" %s |", text))
		}
		sb.WriteString("\n")

		// Write separator after header row
		if i == 0 {
			sb.WriteString("|")
			for j := 0; j < m.Cols; j++ {
				sb.WriteString(" " + separator(columnAlign(m, j)) + " |")
			}
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
}

func markdownCellText(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.TrimSpace(s)
}

// columnAlign returns the alignment of the first cell of column j that has
// one.
func columnAlign(m *ir.TableBlock, j int) table.Align {
	for _, row := range m.Cells {
		if j < len(row) && row[j].Style.Alignment != "" {
			if a, err := table.ParseAlign(row[j].Style.Alignment); err == nil {
				return a
			}
		}
	}
	return ""
}

func separator(a table.Align) string {
	switch a {
	case table.AlignLeft:
		return ":---"
	case table.AlignCenter:
		return ":---:"
	case table.AlignRight:
		return "---:"
	default:
		return "---"
	}
}
