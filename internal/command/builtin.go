package command

import (
	"github.com/roboco-io/tablekit/internal/ir"
	"github.com/roboco-io/tablekit/internal/table"
)

// Built-in operation names.
const (
	InsertTable  = "insert-table"
	InsertRow    = "insert-row"
	RemoveRow    = "remove-row"
	InsertColumn = "insert-column"
	RemoveColumn = "remove-column"
	RemoveTable  = "remove-table"
	AlignLeft    = "align-left"
	AlignCenter  = "align-center"
	AlignRight   = "align-right"
	MoveUp       = "move-up"
	MoveDown     = "move-down"
	Undo         = "undo"
	Redo         = "redo"
)

// RegisterBuiltins registers the table operations of e in r. A nil editor
// resolves table.Default() each time an operation runs.
func RegisterBuiltins(r *Registry, e *table.Editor) {
	editor := func() *table.Editor {
		if e != nil {
			return e
		}
		return table.Default()
	}

	ops := []Func{
		{InsertTable, func(s *ir.EditorState) *ir.EditorState { return editor().InsertTable(s, 0, 0) }},
		{InsertRow, func(s *ir.EditorState) *ir.EditorState { return editor().InsertRow(s) }},
		{RemoveRow, func(s *ir.EditorState) *ir.EditorState { return editor().RemoveRow(s) }},
		{InsertColumn, func(s *ir.EditorState) *ir.EditorState {
			ed := editor()
			return ed.InsertColumn(s, ed.Options().DefaultAlign)
		}},
		{RemoveColumn, func(s *ir.EditorState) *ir.EditorState {
			ed := editor()
			return ed.RemoveColumn(s, ed.Options().DefaultAlign)
		}},
		{RemoveTable, func(s *ir.EditorState) *ir.EditorState {
			tbl, ok, err := table.TableForSelection(s.Tree(), s.Selection())
			if err != nil || !ok {
				return s
			}
			return editor().RemoveTable(s, tbl.Key)
		}},
		{AlignLeft, alignOp(editor, table.AlignLeft)},
		{AlignCenter, alignOp(editor, table.AlignCenter)},
		{AlignRight, alignOp(editor, table.AlignRight)},
		{MoveUp, func(s *ir.EditorState) *ir.EditorState { return editor().OnUpArrow(s, nil) }},
		{MoveDown, func(s *ir.EditorState) *ir.EditorState { return editor().OnDownArrow(s, nil) }},
		{Undo, func(s *ir.EditorState) *ir.EditorState {
			if next, err := s.Undo(); err == nil {
				return next
			}
			return s
		}},
		{Redo, func(s *ir.EditorState) *ir.EditorState {
			if next, err := s.Redo(); err == nil {
				return next
			}
			return s
		}},
	}

	for _, op := range ops {
		// Names already in r keep their operation.
		_ = r.Register(op)
	}
}

func alignOp(editor func() *table.Editor, align table.Align) func(*ir.EditorState) *ir.EditorState {
	return func(s *ir.EditorState) *ir.EditorState {
		return editor().SetAlignForCell(s, align)
	}
}
