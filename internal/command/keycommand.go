package command

import (
	"unicode/utf8"

	"github.com/roboco-io/tablekit/internal/ir"
)

// Host key commands with special meaning inside a cell.
const (
	KeyBackspace = "backspace"
	KeyDelete    = "delete"
)

// HandleKeyCommand handles a host key command with the default registry.
func HandleKeyCommand(state *ir.EditorState, cmd string) (*ir.EditorState, bool) {
	return DefaultRegistry.HandleKeyCommand(state, cmd)
}

// HandleKeyCommand handles a host key command while the caret is in a table
// cell. Backspace at the start of a cell and delete at its end are swallowed
// so that cells never merge; any other command registered in r is applied.
// The second result reports whether the command was handled.
func (r *Registry) HandleKeyCommand(state *ir.EditorState, cmd string) (*ir.EditorState, bool) {
	sel := state.Selection()
	cell, ok := state.Tree().Block(sel.StartKey())
	if !ok || cell.Type != ir.BlockTypeCell {
		return state, false
	}

	switch cmd {
	case KeyBackspace:
		if sel.IsCollapsed() && sel.StartOffset() == 0 {
			return state, true
		}
		return state, false
	case KeyDelete:
		if sel.IsCollapsed() && sel.StartOffset() >= utf8.RuneCountInString(cell.Text) {
			return state, true
		}
		return state, false
	}

	op, err := r.Lookup(cmd)
	if err != nil {
		return state, false
	}
	return op.Apply(state), true
}
