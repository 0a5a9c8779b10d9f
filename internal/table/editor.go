// Package table implements structural editing of tables encoded in a flat
// block tree: inserting and removing rows, columns and whole tables, the
// anchor coordinate system, and arrow-key navigation between rows.
//
// Every operation takes an *ir.EditorState and returns a new one. A
// selection outside of any table makes an operation a no-op. A malformed
// table aborts the operation: the error is logged and the input state is
// returned unchanged.
package table

import (
	"io"
	"log"
	"sync"

	"github.com/roboco-io/tablekit/internal/ir"
)

// Options contains editor configuration.
type Options struct {
	DefaultRows    int    // body rows for InsertTable when none are given
	DefaultColumns int    // columns for InsertTable when none are given
	DefaultAlign   Align  // alignment of cells created by InsertColumn
	CellText       string // text of cells created by InsertRow and InsertTable
	ColumnFill     string // text of cells created by InsertColumn

	Keys   KeyGenerator
	Logger *log.Logger

	// OnError is called with every error that aborts an operation.
	OnError func(op ir.ChangeType, err error)
}

// DefaultOptions returns default editor options.
func DefaultOptions() Options {
	return Options{
		DefaultRows:    1,
		DefaultColumns: 2,
		DefaultAlign:   AlignLeft,
		CellText:       "",
		ColumnFill:     " ",
		Keys:           UUIDKeys{},
		Logger:         log.New(io.Discard, "", 0),
	}
}

// Editor applies structural table edits to editor states.
type Editor struct {
	opts Options
}

// NewEditor creates an editor. Unset numeric options, key generator and
// logger fall back to the defaults.
func NewEditor(opts Options) *Editor {
	def := DefaultOptions()
	if opts.DefaultRows <= 0 {
		opts.DefaultRows = def.DefaultRows
	}
	if opts.DefaultColumns <= 0 {
		opts.DefaultColumns = def.DefaultColumns
	}
	if opts.DefaultAlign == "" {
		opts.DefaultAlign = def.DefaultAlign
	}
	if opts.Keys == nil {
		opts.Keys = def.Keys
	}
	if opts.Logger == nil {
		opts.Logger = def.Logger
	}
	return &Editor{opts: opts}
}

// Options returns the editor's options.
func (e *Editor) Options() Options {
	return e.opts
}

// abort logs err and returns the unchanged input state.
func (e *Editor) abort(op ir.ChangeType, state *ir.EditorState, err error) *ir.EditorState {
	e.opts.Logger.Printf("%s aborted: %v", op, err)
	if e.opts.OnError != nil {
		e.opts.OnError(op, err)
	}
	return state
}

// commit pushes a new tree with the selection moving from the current one to
// after. When force is set the host must move the visible caret.
func commit(state *ir.EditorState, tree *ir.Tree, after ir.Selection, change ir.ChangeType, force bool) *ir.EditorState {
	content := ir.NewContent(tree, state.Selection(), after)
	next := state.Push(content, change)
	if force {
		return next.ForceSelection(after)
	}
	return next
}

var (
	defaultMu     sync.RWMutex
	defaultEditor = NewEditor(DefaultOptions())
)

// Default returns the editor used by the package-level functions.
func Default() *Editor {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultEditor
}

// SetDefault replaces the editor used by the package-level functions.
func SetDefault(e *Editor) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultEditor = e
}

// InsertTable inserts a table after the current block using the default editor.
func InsertTable(state *ir.EditorState, rows, cols int) *ir.EditorState {
	return Default().InsertTable(state, rows, cols)
}

// InsertRow inserts a row after the current one using the default editor.
func InsertRow(state *ir.EditorState) *ir.EditorState {
	return Default().InsertRow(state)
}

// RemoveRow removes the current row using the default editor.
func RemoveRow(state *ir.EditorState) *ir.EditorState {
	return Default().RemoveRow(state)
}

// InsertColumn inserts a column before the current one using the default editor.
func InsertColumn(state *ir.EditorState, align Align) *ir.EditorState {
	return Default().InsertColumn(state, align)
}

// RemoveColumn removes the current column using the default editor.
func RemoveColumn(state *ir.EditorState, align Align) *ir.EditorState {
	return Default().RemoveColumn(state, align)
}

// RemoveTable removes a whole table using the default editor.
func RemoveTable(state *ir.EditorState, tableKey ir.Key) *ir.EditorState {
	return Default().RemoveTable(state, tableKey)
}

// OnUpArrow moves the caret one row up using the default editor.
func OnUpArrow(state *ir.EditorState, ev KeyEvent) *ir.EditorState {
	return Default().OnUpArrow(state, ev)
}

// OnDownArrow moves the caret one row down using the default editor.
func OnDownArrow(state *ir.EditorState, ev KeyEvent) *ir.EditorState {
	return Default().OnDownArrow(state, ev)
}

// SetAlignForCell aligns the current column using the default editor.
func SetAlignForCell(state *ir.EditorState, align Align) *ir.EditorState {
	return Default().SetAlignForCell(state, align)
}
