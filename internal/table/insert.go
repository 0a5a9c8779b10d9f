package table

import (
	"github.com/roboco-io/tablekit/internal/ir"
)

// InsertTable inserts a table of rows body rows and cols columns right after
// the block holding the start of the selection. The block itself is kept.
// The caret moves to the first cell at the original start offset.
// Selections already inside a table are left alone.
func (e *Editor) InsertTable(state *ir.EditorState, rows, cols int) *ir.EditorState {
	tree := state.Tree()
	sel := state.Selection()

	current, ok := tree.Block(sel.StartKey())
	if !ok {
		return state
	}
	if _, inTable, err := TableForBlock(tree, current.Key); err != nil {
		return e.abort(ir.ChangeInsertTable, state, err)
	} else if inTable {
		return state
	}

	if rows <= 0 {
		rows = e.opts.DefaultRows
	}
	if cols <= 0 {
		cols = e.opts.DefaultColumns
	}

	m := ir.NewTable(rows, cols)
	for _, row := range m.Cells {
		for j := range row {
			row[j].Text = e.opts.CellText
		}
	}
	blocks, _, err := e.build(newKeyer(e.opts.Keys, tree), m)
	if err != nil {
		return e.abort(ir.ChangeInsertTable, state, err)
	}

	_, end, _ := tree.Span(current.Key)
	next, err := tree.InsertAt(end, blocks...)
	if err != nil {
		return e.abort(ir.ChangeInsertTable, state, err)
	}

	var firstCell ir.Key
	for _, b := range blocks {
		if b.Type == ir.BlockTypeCell {
			firstCell = b.Key
			break
		}
	}

	return commit(state, next, ir.Collapsed(firstCell, sel.StartOffset()), ir.ChangeInsertTable, false)
}

// InsertRow inserts an empty row right after the row holding the end of the
// selection. It has as many cells as the last body row, or as the first
// header row when the body is empty. A row inserted from the header becomes
// the first body row. The caret is forced to the new row's first cell.
func (e *Editor) InsertRow(state *ir.EditorState) *ir.EditorState {
	tree := state.Tree()
	sel := state.Selection()

	table, ok, err := TableForSelection(tree, sel)
	if err != nil {
		return e.abort(ir.ChangeInsertRow, state, err)
	}
	if !ok {
		return state
	}
	rowBlock, ok, err := rowInTable(tree, sel.EndKey(), table.Key)
	if err != nil {
		return e.abort(ir.ChangeInsertRow, state, err)
	}
	if !ok {
		return state
	}

	body, ok := BodyForTable(tree, table.Key)
	if !ok {
		return e.abort(ir.ChangeInsertRow, state, structureErrorf(table.Key, "table has no body"))
	}

	var model ir.Block
	if rows := RowsOf(tree, body.Key); len(rows) > 0 {
		model = rows[len(rows)-1]
	} else if header, ok := HeaderForTable(tree, table.Key); ok {
		rows := RowsOf(tree, header.Key)
		if len(rows) == 0 {
			return state
		}
		model = rows[0]
	} else {
		return state
	}

	count := len(CellsOf(tree, model.Key))
	if count == 0 {
		return e.abort(ir.ChangeInsertRow, state, structureErrorf(model.Key, "row has no cells"))
	}

	var at int
	if rowBlock.ParentKey == body.Key {
		_, at, _ = tree.Span(rowBlock.Key)
	} else {
		at, _ = tree.IndexOf(body.Key)
		at++
	}

	row, err := e.newRow(newKeyer(e.opts.Keys, tree), body.Key, count)
	if err != nil {
		return e.abort(ir.ChangeInsertRow, state, err)
	}
	next, err := tree.InsertAt(at, row...)
	if err != nil {
		return e.abort(ir.ChangeInsertRow, state, err)
	}

	return commit(state, next, ir.Collapsed(row[1].Key, 0), ir.ChangeInsertRow, true)
}

// InsertColumn inserts a cell into every row of the table, header included,
// at the column of the selection. The existing cell at that column and the
// ones after it shift right. The selection does not move.
func (e *Editor) InsertColumn(state *ir.EditorState, align Align) *ir.EditorState {
	if align == "" {
		align = e.opts.DefaultAlign
	}
	tree := state.Tree()
	sel := state.Selection()

	table, ok, err := TableForSelection(tree, sel)
	if err != nil {
		return e.abort(ir.ChangeInsertColumn, state, err)
	}
	if !ok {
		return state
	}
	anchor, ok, err := AnchorFromSelection(tree, sel)
	if err != nil {
		return e.abort(ir.ChangeInsertColumn, state, err)
	}
	if !ok {
		return state
	}
	column := anchor.Column

	k := newKeyer(e.opts.Keys, tree)
	next := tree
	for _, row := range TableRows(tree, table.Key) {
		cells := CellsOf(next, row.Key)
		var at int
		switch {
		case column < len(cells):
			at, _ = next.IndexOf(cells[column].Key)
		case column == len(cells):
			_, at, _ = next.Span(row.Key)
		default:
			return e.abort(ir.ChangeInsertColumn, state,
				structureErrorf(row.Key, "row has %d cells, cannot insert at column %d", len(cells), column))
		}

		key, err := k.next(row.Key)
		if err != nil {
			return e.abort(ir.ChangeInsertColumn, state, err)
		}
		cell := ir.NewBlock(key, ir.BlockTypeCell, row.Key, e.opts.ColumnFill).
			WithData(AlignDataKey, string(align))
		next, err = next.InsertAt(at, cell)
		if err != nil {
			return e.abort(ir.ChangeInsertColumn, state, err)
		}
	}

	return commit(state, next, sel, ir.ChangeInsertColumn, false)
}
