package render

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/roboco-io/tablekit/internal/ir"
	"github.com/roboco-io/tablekit/internal/table"
)

// Text renders tree as plain text. Tables are written one row per line with
// cells separated by " | " and a dashed rule under the header.
func Text(tree *ir.Tree) (string, error) {
	var sb strings.Builder

	for _, block := range topLevel(tree) {
		if block.Type != ir.BlockTypeTable {
			sb.WriteString(block.Text + "\n\n")
			continue
		}
		m, err := table.Snapshot(tree, block.Key)
		if err != nil {
			return "", fmt.Errorf("failed to render table %s: %w", block.Key, err)
		}
		sb.WriteString(formatTableAsText(m) + "\n")
	}

	return sb.String(), nil
}

// formatTableAsText pads every column but the last to its widest cell, in
// terminal display width, so that wide characters line up.
func formatTableAsText(m *ir.TableBlock) string {
	widths := make([]int, m.Cols)
	for _, row := range m.Cells {
		for j, cell := range row {
			widths[j] = max(widths[j], uniseg.StringWidth(cell.Text))
		}
	}
	if m.HasHeader {
		for j := range widths {
			widths[j] = max(widths[j], 3)
		}
	}

	var sb strings.Builder
	for i, row := range m.Cells {
		for j, cell := range row {
			if j > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(cell.Text)
			if j < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", widths[j]-uniseg.StringWidth(cell.Text)))
			}
		}
		sb.WriteString("\n")
		if i == 0 && m.HasHeader {
			for j := range row {
				if j > 0 {
					sb.WriteString(" | ")
				}
				sb.WriteString(strings.Repeat("-", widths[j]))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
