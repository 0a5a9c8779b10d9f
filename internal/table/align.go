package table

import (
	"fmt"
	"strings"

	"github.com/roboco-io/tablekit/internal/ir"
)

// AlignDataKey is the block data entry holding a cell's alignment.
const AlignDataKey = "align"

// Align is the horizontal alignment of a column.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ParseAlign parses an alignment name. The empty string is AlignLeft.
func ParseAlign(s string) (Align, error) {
	switch Align(strings.ToLower(strings.TrimSpace(s))) {
	case "", AlignLeft:
		return AlignLeft, nil
	case AlignCenter:
		return AlignCenter, nil
	case AlignRight:
		return AlignRight, nil
	}
	return "", fmt.Errorf("unknown alignment: %s", s)
}

// AlignForCell returns the alignment of the cell holding key.
func AlignForCell(tree *ir.Tree, key ir.Key) Align {
	block, ok := tree.Block(key)
	if !ok {
		return AlignLeft
	}
	cell, ok, err := FindNearestAncestorOfType(tree, block, ir.BlockTypeCell)
	if err != nil || !ok {
		return AlignLeft
	}
	if a, err := ParseAlign(cell.DataValue(AlignDataKey)); err == nil {
		return a
	}
	return AlignLeft
}

// SetAlignForCell sets the alignment of every cell in the selection's column,
// header included. The selection does not move.
func (e *Editor) SetAlignForCell(state *ir.EditorState, align Align) *ir.EditorState {
	tree := state.Tree()
	sel := state.Selection()

	anchor, ok, err := AnchorFromSelection(tree, sel)
	if err != nil {
		return e.abort(ir.ChangeBlockData, state, err)
	}
	if !ok {
		return state
	}

	var updated []ir.Block
	for _, row := range TableRows(tree, anchor.TableKey) {
		cells := CellsOf(tree, row.Key)
		if anchor.Column < len(cells) {
			updated = append(updated, cells[anchor.Column].WithData(AlignDataKey, string(align)))
		}
	}

	next, err := tree.Replace(updated...)
	if err != nil {
		return e.abort(ir.ChangeBlockData, state, err)
	}
	return commit(state, next, sel, ir.ChangeBlockData, false)
}
