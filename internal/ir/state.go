package ir

import "errors"

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultHistoryLimit bounds the undo stack when no limit is given.
const DefaultHistoryLimit = 1000

// ChangeType labels a committed edit for the undo stack.
type ChangeType string

const (
	ChangeInsertTable  ChangeType = "insert-table"
	ChangeInsertRow    ChangeType = "insert-row"
	ChangeInsertColumn ChangeType = "insert-column"
	ChangeRemoveRow    ChangeType = "remove-row"
	ChangeRemoveColumn ChangeType = "remove-column"
	ChangeRemoveTable  ChangeType = "remove-table"
	ChangeBlockData    ChangeType = "change-block-data"
	ChangeUndo         ChangeType = "undo"
	ChangeRedo         ChangeType = "redo"
)

// ContentState pairs a tree snapshot with the selections around the edit
// that produced it.
type ContentState struct {
	Tree            *Tree
	SelectionBefore Selection
	SelectionAfter  Selection
}

// NewContent creates a content state.
func NewContent(tree *Tree, before, after Selection) *ContentState {
	return &ContentState{
		Tree:            tree,
		SelectionBefore: before,
		SelectionAfter:  after,
	}
}

// EditorState is an immutable snapshot of a document being edited: the
// current content, the current selection, and the undo/redo history.
// Every method that changes something returns a new EditorState.
type EditorState struct {
	content        *ContentState
	selection      Selection
	forceSelection bool
	lastChange     ChangeType
	undo           []*ContentState
	redo           []*ContentState
	limit          int
}

// NewEditorState creates an editor state over tree with the given selection.
func NewEditorState(tree *Tree, sel Selection) *EditorState {
	return &EditorState{
		content:   NewContent(tree, sel, sel),
		selection: sel,
		limit:     DefaultHistoryLimit,
	}
}

// CreateWithContent creates an editor state with a caret at the start of the
// first block.
func CreateWithContent(tree *Tree) *EditorState {
	var sel Selection
	if first, ok := tree.First(); ok {
		sel = Collapsed(first.Key, 0)
	}
	return NewEditorState(tree, sel)
}

// WithHistoryLimit returns a copy that keeps at most limit undo entries.
func (s *EditorState) WithHistoryLimit(limit int) *EditorState {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	next := s.clone()
	next.limit = limit
	next.undo = trimHistory(next.undo, limit)
	return next
}

// Content returns the current content state.
func (s *EditorState) Content() *ContentState { return s.content }

// Tree returns the current block tree.
func (s *EditorState) Tree() *Tree { return s.content.Tree }

// Selection returns the current selection.
func (s *EditorState) Selection() Selection { return s.selection }

// MustForceSelection reports whether the host has to move the visible caret
// to Selection rather than merely record it.
func (s *EditorState) MustForceSelection() bool { return s.forceSelection }

// LastChangeType returns the label of the last committed edit.
func (s *EditorState) LastChangeType() ChangeType { return s.lastChange }

// CanUndo returns true if there is an edit to undo.
func (s *EditorState) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo returns true if there is an undone edit to redo.
func (s *EditorState) CanRedo() bool { return len(s.redo) > 0 }

// UndoDepth returns the number of entries on the undo stack.
func (s *EditorState) UndoDepth() int { return len(s.undo) }

// Push commits content as a new undoable edit. The selection becomes the
// content's SelectionAfter and the redo stack is cleared.
func (s *EditorState) Push(content *ContentState, change ChangeType) *EditorState {
	next := s.clone()
	next.undo = trimHistory(append(next.undo, s.content), next.limit)
	next.redo = nil
	next.content = content
	next.selection = content.SelectionAfter
	next.forceSelection = false
	next.lastChange = change
	return next
}

// ForceSelection returns a copy whose selection is sel and must be applied
// by the host. Content is unchanged.
func (s *EditorState) ForceSelection(sel Selection) *EditorState {
	next := s.clone()
	next.selection = sel
	next.forceSelection = true
	return next
}

// AcceptSelection returns a copy whose selection is sel without forcing it.
func (s *EditorState) AcceptSelection(sel Selection) *EditorState {
	next := s.clone()
	next.selection = sel
	next.forceSelection = false
	return next
}

// Undo restores the content before the last edit.
func (s *EditorState) Undo() (*EditorState, error) {
	if len(s.undo) == 0 {
		return s, ErrNothingToUndo
	}
	next := s.clone()
	prev := next.undo[len(next.undo)-1]
	next.undo = next.undo[:len(next.undo)-1]
	next.redo = append(next.redo, s.content)
	next.content = prev
	next.selection = s.content.SelectionBefore
	next.forceSelection = true
	next.lastChange = ChangeUndo
	return next, nil
}

// Redo re-applies the last undone edit.
func (s *EditorState) Redo() (*EditorState, error) {
	if len(s.redo) == 0 {
		return s, ErrNothingToRedo
	}
	next := s.clone()
	content := next.redo[len(next.redo)-1]
	next.redo = next.redo[:len(next.redo)-1]
	next.undo = trimHistory(append(next.undo, s.content), next.limit)
	next.content = content
	next.selection = content.SelectionAfter
	next.forceSelection = true
	next.lastChange = ChangeRedo
	return next, nil
}

// clone copies the state; stacks are copied so that appends on the copy
// never alias the original's backing arrays.
func (s *EditorState) clone() *EditorState {
	next := *s
	next.undo = append([]*ContentState(nil), s.undo...)
	next.redo = append([]*ContentState(nil), s.redo...)
	return &next
}

func trimHistory(stack []*ContentState, limit int) []*ContentState {
	if limit > 0 && len(stack) > limit {
		return stack[len(stack)-limit:]
	}
	return stack
}
