package render

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/roboco-io/tablekit/internal/ir"
	"github.com/roboco-io/tablekit/internal/table"
)

var textElements = map[ir.BlockType]string{
	ir.BlockTypeUnstyled:  "p",
	ir.BlockTypeHeaderOne: "h1",
	ir.BlockTypeHeaderTwo: "h2",
}

// HTML renders tree as an HTML fragment, one top-level element per line.
// Table blocks map to elements through table.DefaultBlockRenderMap; cells
// under the table header become th elements.
func HTML(tree *ir.Tree) (string, error) {
	var sb strings.Builder

	for _, block := range topLevel(tree) {
		var (
			node *html.Node
			err  error
		)
		if block.Type == ir.BlockTypeTable {
			node, err = tableNode(tree, block, false, 0)
			if err != nil {
				return "", err
			}
		} else {
			name, ok := textElements[block.Type]
			if !ok {
				name = "p"
			}
			node = element(name)
			node.AppendChild(&html.Node{Type: html.TextNode, Data: block.Text})
		}

		if err := html.Render(&sb, node); err != nil {
			return "", fmt.Errorf("failed to render %s: %w", block.Key, err)
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// tableNode converts block and its table-structural descendants.
func tableNode(tree *ir.Tree, block ir.Block, inHeader bool, depth int) (*html.Node, error) {
	if depth > tree.Len() {
		return nil, &table.StructureError{Key: block.Key, Reason: "table nesting exceeds document size"}
	}

	spec, ok := table.DefaultBlockRenderMap[block.Type]
	if !ok {
		return nil, &table.StructureError{Key: block.Key, Reason: fmt.Sprintf("unexpected %s block in table", block.Type)}
	}

	name := spec.Element
	if block.Type == ir.BlockTypeHeader {
		inHeader = true
	}
	if block.Type == ir.BlockTypeCell {
		if inHeader {
			name = table.HeaderCellElement
		}
		n := element(name)
		if a := block.DataValue(table.AlignDataKey); a != "" {
			n.Attr = append(n.Attr, html.Attribute{Key: "style", Val: "text-align: " + a})
		}
		n.AppendChild(&html.Node{Type: html.TextNode, Data: block.Text})
		return n, nil
	}

	n := element(name)
	for _, child := range tree.Children(block.Key) {
		c, err := tableNode(tree, child, inHeader, depth+1)
		if err != nil {
			return nil, err
		}
		n.AppendChild(c)
	}
	return n, nil
}

func element(name string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     name,
		DataAtom: atom.Lookup([]byte(name)),
	}
}
