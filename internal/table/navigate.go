package table

import (
	"unicode/utf8"

	"github.com/roboco-io/tablekit/internal/ir"
)

// KeyEvent is the key event that triggered a navigation.
type KeyEvent interface {
	// PreventDefault suppresses the host's default caret movement.
	PreventDefault()
}

// OnUpArrow moves the caret to the same column of the previous row.
func (e *Editor) OnUpArrow(state *ir.EditorState, ev KeyEvent) *ir.EditorState {
	return e.OnDirectionalArrow(-1, state, ev)
}

// OnDownArrow moves the caret to the same column of the next row.
func (e *Editor) OnDownArrow(state *ir.EditorState, ev KeyEvent) *ir.EditorState {
	return e.OnDirectionalArrow(1, state, ev)
}

// OnDirectionalArrow moves the caret delta rows within the table and places it
// at the end of the destination cell. The state is returned unchanged, and
// the event left alone, when the caret is not in a cell, when the move would
// land on row 0, or when the destination row does not exist.
func (e *Editor) OnDirectionalArrow(delta int, state *ir.EditorState, ev KeyEvent) *ir.EditorState {
	tree := state.Tree()
	sel := state.Selection()

	current, ok := tree.Block(sel.StartKey())
	if !ok || current.Type != ir.BlockTypeCell {
		return state
	}

	anchor, ok, err := AnchorFromSelection(tree, sel)
	if err != nil {
		op := ir.ChangeType("move-down")
		if delta < 0 {
			op = "move-up"
		}
		return e.abort(op, state, err)
	}
	if !ok || anchor.Row+delta == 0 {
		return state
	}

	target := anchor.WithRow(anchor.Row + delta).WithOffset(0)
	newSel, ok := target.ToSelection(tree)
	if !ok {
		// TODO: insert a paragraph below the table when moving down past the last row.
		return state
	}

	cell, _ := tree.Block(newSel.StartKey())
	newSel = newSel.WithOffsets(utf8.RuneCountInString(cell.Text))

	if ev != nil {
		ev.PreventDefault()
	}
	return state.ForceSelection(newSel)
}
