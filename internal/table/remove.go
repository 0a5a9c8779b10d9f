package table

import (
	"github.com/roboco-io/tablekit/internal/ir"
)

// RemoveColumn removes the cell at the selection's column from every row of
// the table. The caret is forced to the last cell of the table found at or
// after the original row. When no cell is left the whole table is removed.
// The align argument is accepted for symmetry with InsertColumn.
func (e *Editor) RemoveColumn(state *ir.EditorState, align Align) *ir.EditorState {
	tree := state.Tree()
	sel := state.Selection()

	table, ok, err := TableForSelection(tree, sel)
	if err != nil {
		return e.abort(ir.ChangeRemoveColumn, state, err)
	}
	if !ok {
		return state
	}
	anchor, ok, err := AnchorFromSelection(tree, sel)
	if err != nil {
		return e.abort(ir.ChangeRemoveColumn, state, err)
	}
	if !ok {
		return state
	}
	rowBlock, ok, err := rowInTable(tree, sel.StartKey(), table.Key)
	if err != nil {
		return e.abort(ir.ChangeRemoveColumn, state, err)
	}
	if !ok {
		return e.abort(ir.ChangeRemoveColumn, state, structureErrorf(sel.StartKey(), "cell outside of a row"))
	}
	column := anchor.Column

	next := tree
	for _, row := range TableRows(tree, table.Key) {
		cells := CellsOf(next, row.Key)
		if column >= len(cells) {
			return e.abort(ir.ChangeRemoveColumn, state,
				structureErrorf(row.Key, "row has %d cells, cannot remove column %d", len(cells), column))
		}
		start, end, _ := next.Span(cells[column].Key)
		next, err = next.Splice(start, end)
		if err != nil {
			return e.abort(ir.ChangeRemoveColumn, state, err)
		}
	}

	if len(CellsOf(next, rowBlock.Key)) == 0 {
		return e.RemoveTable(state, table.Key)
	}
	target, ok := lastCellFrom(next, table.Key, rowBlock.Key)
	if !ok {
		return e.RemoveTable(state, table.Key)
	}

	return commit(state, next, ir.Collapsed(target.Key, 0), ir.ChangeRemoveColumn, true)
}

// lastCellFrom returns the last cell of the table at or after the row.
func lastCellFrom(tree *ir.Tree, tableKey, rowKey ir.Key) (ir.Block, bool) {
	from, ok := tree.IndexOf(rowKey)
	if !ok {
		return ir.Block{}, false
	}
	_, end, _ := tree.Span(tableKey)
	for i := end - 1; i >= from; i-- {
		if b := tree.At(i); b.Type == ir.BlockTypeCell {
			return b, true
		}
	}
	return ir.Block{}, false
}

// RemoveRow removes the row holding the start of the selection with all its
// cells. The caret is forced to the first cell of the next row in the same
// container, or of the previous one, or else of the other container. A header
// left without rows is removed. When the table has no row left it is removed.
func (e *Editor) RemoveRow(state *ir.EditorState) *ir.EditorState {
	tree := state.Tree()
	sel := state.Selection()

	table, ok, err := TableForSelection(tree, sel)
	if err != nil {
		return e.abort(ir.ChangeRemoveRow, state, err)
	}
	if !ok {
		return state
	}
	rowBlock, ok, err := rowInTable(tree, sel.StartKey(), table.Key)
	if err != nil {
		return e.abort(ir.ChangeRemoveRow, state, err)
	}
	if !ok {
		return state
	}
	container, ok := tree.Block(rowBlock.ParentKey)
	if !ok || (container.Type != ir.BlockTypeHeader && container.Type != ir.BlockTypeBody) {
		return e.abort(ir.ChangeRemoveRow, state, structureErrorf(rowBlock.Key, "row outside of a header or body"))
	}

	siblings := RowsOf(tree, container.Key)
	pos := indexOfKey(siblings, rowBlock.Key)

	start, end, _ := tree.Span(rowBlock.Key)
	next, err := tree.Splice(start, end)
	if err != nil {
		return e.abort(ir.ChangeRemoveRow, state, err)
	}
	if container.Type == ir.BlockTypeHeader && len(siblings) == 1 {
		start, end, _ := next.Span(container.Key)
		if next, err = next.Splice(start, end); err != nil {
			return e.abort(ir.ChangeRemoveRow, state, err)
		}
	}

	var candidates []ir.Block
	if pos+1 < len(siblings) {
		candidates = append(candidates, siblings[pos+1])
	}
	if pos > 0 {
		candidates = append(candidates, siblings[pos-1])
	}
	other := ir.BlockTypeHeader
	if container.Type == ir.BlockTypeHeader {
		other = ir.BlockTypeBody
	}
	if c, ok := childOfType(next, table.Key, other); ok {
		candidates = append(candidates, RowsOf(next, c.Key)...)
	}

	if len(candidates) == 0 {
		return e.RemoveTable(state, table.Key)
	}
	cells := CellsOf(next, candidates[0].Key)
	if len(cells) == 0 {
		return e.abort(ir.ChangeRemoveRow, state, structureErrorf(candidates[0].Key, "row has no cells"))
	}

	return commit(state, next, ir.Collapsed(cells[0].Key, 0), ir.ChangeRemoveRow, true)
}

// RemoveTable removes every block carrying the table's key prefix. The caret
// is forced to the start of the first remaining block; an empty paragraph is
// created when the table was the whole document.
func (e *Editor) RemoveTable(state *ir.EditorState, tableKey ir.Key) *ir.EditorState {
	tree := state.Tree()

	block, ok := tree.Block(tableKey)
	if !ok || block.Type != ir.BlockTypeTable {
		return state
	}

	next := tree.Filter(func(b ir.Block) bool {
		return !b.Key.Within(tableKey)
	})
	if next.Len() == 0 {
		key, err := newKeyer(e.opts.Keys, next).next("")
		if err != nil {
			return e.abort(ir.ChangeRemoveTable, state, err)
		}
		next, err = ir.NewTree(ir.NewBlock(key, ir.BlockTypeUnstyled, "", ""))
		if err != nil {
			return e.abort(ir.ChangeRemoveTable, state, err)
		}
	}

	first, _ := next.First()
	return commit(state, next, ir.Collapsed(first.Key, 0), ir.ChangeRemoveTable, true)
}
