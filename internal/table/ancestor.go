package table

import (
	"github.com/roboco-io/tablekit/internal/ir"
)

// FindNearestAncestorOfType walks parent links from block upward and returns
// the first block of type typ. The block itself is returned when it already
// matches. The walk is bounded by the size of the tree; a parent chain that
// does not terminate, or that points at a missing block, is a StructureError.
func FindNearestAncestorOfType(tree *ir.Tree, block ir.Block, typ ir.BlockType) (ir.Block, bool, error) {
	cur := block
	for steps := 0; ; steps++ {
		if cur.Type == typ {
			return cur, true, nil
		}
		if cur.ParentKey == "" {
			return ir.Block{}, false, nil
		}
		if steps >= tree.Len() {
			return ir.Block{}, false, structureErrorf(block.Key, "parent chain does not terminate")
		}
		parent, ok := tree.Block(cur.ParentKey)
		if !ok {
			return ir.Block{}, false, structureErrorf(cur.Key, "parent %q not found", cur.ParentKey)
		}
		cur = parent
	}
}

// TableForBlock returns the table enclosing the block with the given key.
func TableForBlock(tree *ir.Tree, key ir.Key) (ir.Block, bool, error) {
	block, ok := tree.Block(key)
	if !ok {
		return ir.Block{}, false, nil
	}
	return FindNearestAncestorOfType(tree, block, ir.BlockTypeTable)
}

// TableForSelection returns the table enclosing the start of sel.
func TableForSelection(tree *ir.Tree, sel ir.Selection) (ir.Block, bool, error) {
	return TableForBlock(tree, sel.StartKey())
}

// HasSelectionInTable reports whether the selection starts inside a table.
// Malformed structure counts as not in a table.
func HasSelectionInTable(state *ir.EditorState) bool {
	_, ok, err := TableForSelection(state.Tree(), state.Selection())
	return ok && err == nil
}

// HeaderForTable returns the header container of a table, if any.
func HeaderForTable(tree *ir.Tree, tableKey ir.Key) (ir.Block, bool) {
	return childOfType(tree, tableKey, ir.BlockTypeHeader)
}

// BodyForTable returns the body container of a table.
func BodyForTable(tree *ir.Tree, tableKey ir.Key) (ir.Block, bool) {
	return childOfType(tree, tableKey, ir.BlockTypeBody)
}

// RowsOf returns the rows of a header or body container in document order.
func RowsOf(tree *ir.Tree, containerKey ir.Key) []ir.Block {
	return childrenOfType(tree, containerKey, ir.BlockTypeRow)
}

// CellsOf returns the cells of a row in document order.
func CellsOf(tree *ir.Tree, rowKey ir.Key) []ir.Block {
	return childrenOfType(tree, rowKey, ir.BlockTypeCell)
}

// TableRows returns every row of a table, header rows first, in document order.
func TableRows(tree *ir.Tree, tableKey ir.Key) []ir.Block {
	var rows []ir.Block
	for _, c := range tree.Children(tableKey) {
		if c.Type == ir.BlockTypeHeader || c.Type == ir.BlockTypeBody {
			rows = append(rows, RowsOf(tree, c.Key)...)
		}
	}
	return rows
}

// TableCells returns every cell of a table in document order.
func TableCells(tree *ir.Tree, tableKey ir.Key) []ir.Block {
	var cells []ir.Block
	for _, row := range TableRows(tree, tableKey) {
		cells = append(cells, CellsOf(tree, row.Key)...)
	}
	return cells
}

func childOfType(tree *ir.Tree, key ir.Key, typ ir.BlockType) (ir.Block, bool) {
	for _, c := range tree.Children(key) {
		if c.Type == typ {
			return c, true
		}
	}
	return ir.Block{}, false
}

func childrenOfType(tree *ir.Tree, key ir.Key, typ ir.BlockType) []ir.Block {
	var out []ir.Block
	for _, c := range tree.Children(key) {
		if c.Type == typ {
			out = append(out, c)
		}
	}
	return out
}

// rowInTable resolves the row enclosing key and checks that it belongs to
// the given table.
func rowInTable(tree *ir.Tree, key ir.Key, tableKey ir.Key) (ir.Block, bool, error) {
	block, ok := tree.Block(key)
	if !ok {
		return ir.Block{}, false, nil
	}
	row, ok, err := FindNearestAncestorOfType(tree, block, ir.BlockTypeRow)
	if err != nil || !ok {
		return ir.Block{}, false, err
	}
	owner, ok, err := FindNearestAncestorOfType(tree, row, ir.BlockTypeTable)
	if err != nil {
		return ir.Block{}, false, err
	}
	if !ok || owner.Key != tableKey {
		return ir.Block{}, false, nil
	}
	return row, true, nil
}

func indexOfKey(blocks []ir.Block, key ir.Key) int {
	for i, b := range blocks {
		if b.Key == key {
			return i
		}
	}
	return -1
}
