package table

import (
	"github.com/roboco-io/tablekit/internal/ir"
)

// Anchor is a logical position in a table, independent of block keys.
// Row 0 is the header row; body rows are numbered from 1.
type Anchor struct {
	TableKey ir.Key `json:"table_key"`
	Row      int    `json:"row"`
	Column   int    `json:"column"`
	Offset   int    `json:"offset"` // rune offset in the cell text
}

// ContainerType returns the container holding the anchor's row.
func (a Anchor) ContainerType() ir.BlockType {
	if a.Row == 0 {
		return ir.BlockTypeHeader
	}
	return ir.BlockTypeBody
}

// RowIndex returns the index of the row within its container.
func (a Anchor) RowIndex() int {
	if a.Row > 0 {
		return a.Row - 1
	}
	return a.Row
}

// WithRow returns a copy of the anchor moved to row.
func (a Anchor) WithRow(row int) Anchor {
	a.Row = row
	return a
}

// WithOffset returns a copy of the anchor with a new cell offset.
func (a Anchor) WithOffset(offset int) Anchor {
	a.Offset = offset
	return a
}

// AnchorFromSelection resolves the start of sel to a table anchor.
// It returns false when the selection is not inside a table cell.
func AnchorFromSelection(tree *ir.Tree, sel ir.Selection) (Anchor, bool, error) {
	current, ok := tree.Block(sel.StartKey())
	if !ok {
		return Anchor{}, false, nil
	}

	cell, ok, err := FindNearestAncestorOfType(tree, current, ir.BlockTypeCell)
	if err != nil || !ok {
		return Anchor{}, false, err
	}
	row, ok, err := FindNearestAncestorOfType(tree, current, ir.BlockTypeRow)
	if err != nil || !ok {
		return Anchor{}, false, err
	}
	container, ok, err := FindNearestAncestorOfType(tree, current, ir.BlockTypeBody)
	if err != nil {
		return Anchor{}, false, err
	}
	if !ok {
		container, ok, err = FindNearestAncestorOfType(tree, current, ir.BlockTypeHeader)
		if err != nil || !ok {
			return Anchor{}, false, err
		}
	}

	table, ok, err := FindNearestAncestorOfType(tree, container, ir.BlockTypeTable)
	if err != nil {
		return Anchor{}, false, err
	}
	if !ok {
		return Anchor{}, false, structureErrorf(container.Key, "container outside of a table")
	}

	rowIndex := indexOfKey(RowsOf(tree, container.Key), row.Key)
	if rowIndex < 0 {
		return Anchor{}, false, structureErrorf(row.Key, "row is not a child of %q", container.Key)
	}
	column := indexOfKey(CellsOf(tree, row.Key), cell.Key)
	if column < 0 {
		return Anchor{}, false, structureErrorf(cell.Key, "cell is not a child of %q", row.Key)
	}

	if container.Type == ir.BlockTypeBody {
		rowIndex++
	}

	return Anchor{
		TableKey: table.Key,
		Row:      rowIndex,
		Column:   column,
		Offset:   sel.StartOffset(),
	}, true, nil
}

// AnchorFromBlock resolves a caret at the start of the block key.
func AnchorFromBlock(tree *ir.Tree, key ir.Key) (Anchor, bool, error) {
	return AnchorFromSelection(tree, ir.Collapsed(key, 0))
}

// AnchorFromEditor resolves the current selection of an editor state.
func AnchorFromEditor(state *ir.EditorState) (Anchor, bool, error) {
	return AnchorFromSelection(state.Tree(), state.Selection())
}

// ToSelection returns a caret at the anchor's cell and offset. It returns
// false when the row or the column does not exist.
func (a Anchor) ToSelection(tree *ir.Tree) (ir.Selection, bool) {
	if a.Row < 0 || a.Column < 0 {
		return ir.Selection{}, false
	}
	table, ok := tree.Block(a.TableKey)
	if !ok || table.Type != ir.BlockTypeTable {
		return ir.Selection{}, false
	}
	container, ok := childOfType(tree, a.TableKey, a.ContainerType())
	if !ok {
		return ir.Selection{}, false
	}

	rows := RowsOf(tree, container.Key)
	if a.RowIndex() >= len(rows) {
		return ir.Selection{}, false
	}
	cells := CellsOf(tree, rows[a.RowIndex()].Key)
	if a.Column >= len(cells) {
		return ir.Selection{}, false
	}

	return ir.Collapsed(cells[a.Column].Key, a.Offset), true
}
