package ir

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleTree() *Tree {
	return MustTree(
		NewBlock("intro", BlockTypeUnstyled, "", "Intro"),
		NewBlock("t", BlockTypeTable, "", ""),
		NewBlock("t.h", BlockTypeHeader, "t", ""),
		NewBlock("t.h.r", BlockTypeRow, "t.h", ""),
		NewBlock("t.h.r.a", BlockTypeCell, "t.h.r", "H1"),
		NewBlock("t.h.r.b", BlockTypeCell, "t.h.r", "H2"),
		NewBlock("t.b", BlockTypeBody, "t", ""),
		NewBlock("t.b.r", BlockTypeRow, "t.b", ""),
		NewBlock("t.b.r.a", BlockTypeCell, "t.b.r", "a"),
		NewBlock("t.b.r.b", BlockTypeCell, "t.b.r", "b"),
		NewBlock("outro", BlockTypeUnstyled, "", "Outro"),
	)
}

func keys(blocks []Block) []Key {
	out := make([]Key, len(blocks))
	for i, b := range blocks {
		out[i] = b.Key
	}
	return out
}

func TestKey_Within(t *testing.T) {
	tests := []struct {
		key, root Key
		expected  bool
	}{
		{"t", "t", true},
		{"t.b.r", "t", true},
		{"tx", "t", false},
		{"tx.b", "t", false},
		{"t", "", false},
		{"intro", "t", false},
	}

	for _, tc := range tests {
		if got := tc.key.Within(tc.root); got != tc.expected {
			t.Errorf("%q.Within(%q) = %v, want %v", tc.key, tc.root, got, tc.expected)
		}
	}
}

func TestKey_Child(t *testing.T) {
	if got := Key("t").Child("r1"); got != "t.r1" {
		t.Errorf("expected 't.r1', got %s", got)
	}
}

func TestNewTree_DuplicateKey(t *testing.T) {
	_, err := NewTree(
		NewBlock("a", BlockTypeUnstyled, "", ""),
		NewBlock("a", BlockTypeUnstyled, "", ""),
	)
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestNewTree_EmptyKey(t *testing.T) {
	_, err := NewTree(NewBlock("", BlockTypeUnstyled, "", ""))
	if !errors.Is(err, ErrEmptyKey) {
		t.Errorf("expected ErrEmptyKey, got %v", err)
	}
}

func TestTree_Lookup(t *testing.T) {
	tree := sampleTree()

	if tree.Len() != 11 {
		t.Fatalf("expected 11 blocks, got %d", tree.Len())
	}
	b, ok := tree.Block("t.b.r.b")
	if !ok || b.Text != "b" {
		t.Errorf("expected cell 'b', got %+v (found=%v)", b, ok)
	}
	if i, _ := tree.IndexOf("t.b"); i != 6 {
		t.Errorf("expected body at 6, got %d", i)
	}
	if _, ok := tree.Block("missing"); ok {
		t.Error("expected missing key not to be found")
	}
	first, _ := tree.First()
	last, _ := tree.Last()
	if first.Key != "intro" || last.Key != "outro" {
		t.Errorf("unexpected first/last: %s/%s", first.Key, last.Key)
	}
}

func TestTree_Span(t *testing.T) {
	tree := sampleTree()

	tests := []struct {
		key        Key
		start, end int
	}{
		{"t", 1, 10},
		{"t.h", 2, 6},
		{"t.b.r", 7, 10},
		{"t.b.r.a", 8, 9},
		{"intro", 0, 1},
	}

	for _, tc := range tests {
		t.Run(string(tc.key), func(t *testing.T) {
			start, end, ok := tree.Span(tc.key)
			if !ok {
				t.Fatal("expected span to be found")
			}
			if start != tc.start || end != tc.end {
				t.Errorf("Span(%s) = [%d,%d), want [%d,%d)", tc.key, start, end, tc.start, tc.end)
			}
		})
	}
}

func TestTree_Children(t *testing.T) {
	tree := sampleTree()

	want := []Key{"t.h", "t.b"}
	if diff := cmp.Diff(want, keys(tree.Children("t"))); diff != "" {
		t.Errorf("table children mismatch (-want +got):\n%s", diff)
	}
	want = []Key{"t.b.r.a", "t.b.r.b"}
	if diff := cmp.Diff(want, keys(tree.Children("t.b.r"))); diff != "" {
		t.Errorf("row children mismatch (-want +got):\n%s", diff)
	}
	if got := tree.Children("t.b.r.a"); len(got) != 0 {
		t.Errorf("expected no children for a cell, got %d", len(got))
	}
}

func TestTree_SpliceIsCopyOnWrite(t *testing.T) {
	tree := sampleTree()

	next, err := tree.Splice(7, 10)
	if err != nil {
		t.Fatalf("splice failed: %v", err)
	}
	if next.Len() != 8 {
		t.Errorf("expected 8 blocks after splice, got %d", next.Len())
	}
	if tree.Len() != 11 {
		t.Errorf("original tree changed: %d blocks", tree.Len())
	}
	if next.Has("t.b.r") {
		t.Error("expected row to be removed")
	}
	if i, _ := next.IndexOf("outro"); i != 7 {
		t.Errorf("expected outro reindexed to 7, got %d", i)
	}

	if _, err := tree.Splice(5, 2); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
	if _, err := tree.InsertAt(0, NewBlock("t", BlockTypeUnstyled, "", "")); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestTree_FilterAndReplace(t *testing.T) {
	tree := sampleTree()

	outside := tree.Filter(func(b Block) bool { return !b.Key.Within("t") })
	if diff := cmp.Diff([]Key{"intro", "outro"}, keys(outside.Blocks())); diff != "" {
		t.Errorf("filter mismatch (-want +got):\n%s", diff)
	}

	cell, _ := tree.Block("t.b.r.a")
	next, err := tree.Replace(cell.WithData("align", "center"))
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	got, _ := next.Block("t.b.r.a")
	if got.DataValue("align") != "center" {
		t.Errorf("expected align center, got %q", got.DataValue("align"))
	}
	orig, _ := tree.Block("t.b.r.a")
	if orig.DataValue("align") != "" {
		t.Error("expected original block data to be untouched")
	}

	if _, err := tree.Replace(NewBlock("nope", BlockTypeCell, "", "")); err == nil {
		t.Error("expected error replacing unknown block")
	}
}

func TestTree_BlockDataIsNotShared(t *testing.T) {
	data := map[string]string{"align": "left"}
	cell := NewBlock("c", BlockTypeCell, "", "x")
	cell.Data = data
	tree := MustTree(cell)
	next, err := tree.InsertAt(1, NewBlock("p", BlockTypeUnstyled, "", ""))
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	data["align"] = "input"
	byKey, _ := next.Block("c")
	byKey.Data["align"] = "block"
	next.At(0).Data["align"] = "at"
	next.Blocks()[0].Data["align"] = "blocks"
	first, _ := next.First()
	first.Data["align"] = "first"
	next.Filter(func(b Block) bool {
		b.Data["align"] = "filter"
		return true
	})

	for name, tr := range map[string]*Tree{"original": tree, "derived": next} {
		got, _ := tr.Block("c")
		if got.DataValue("align") != "left" {
			t.Errorf("%s tree: expected align left, got %q", name, got.DataValue("align"))
		}
	}

	replaced := next.At(0).WithData("align", "right")
	after, err := next.Replace(replaced)
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	replaced.Data["align"] = "mutated"
	if got, _ := after.Block("c"); got.DataValue("align") != "right" {
		t.Errorf("expected replaced block to keep align right, got %q", got.DataValue("align"))
	}
}

func TestSelection_StartEnd(t *testing.T) {
	forward := Selection{AnchorKey: "a", AnchorOffset: 1, FocusKey: "b", FocusOffset: 3}
	if forward.StartKey() != "a" || forward.StartOffset() != 1 || forward.EndKey() != "b" || forward.EndOffset() != 3 {
		t.Errorf("unexpected forward bounds: %+v", forward)
	}

	backward := forward
	backward.IsBackward = true
	if backward.StartKey() != "b" || backward.StartOffset() != 3 || backward.EndKey() != "a" || backward.EndOffset() != 1 {
		t.Errorf("unexpected backward bounds: %+v", backward)
	}

	if forward.IsCollapsed() {
		t.Error("expected ranged selection not to be collapsed")
	}
	if !Collapsed("a", 2).IsCollapsed() {
		t.Error("expected caret to be collapsed")
	}
	if got := Collapsed("a", 2).WithOffsets(5); got.AnchorOffset != 5 || got.FocusOffset != 5 {
		t.Errorf("expected offsets 5, got %+v", got)
	}
}

func TestEditorState_PushUndoRedo(t *testing.T) {
	tree := sampleTree()
	state := CreateWithContent(tree)

	if state.Selection() != Collapsed("intro", 0) {
		t.Errorf("unexpected initial selection: %+v", state.Selection())
	}
	if state.CanUndo() {
		t.Error("expected empty undo stack")
	}

	trimmed := tree.Filter(func(b Block) bool { return b.Key != "outro" })
	after := Collapsed("t.b.r.a", 0)
	pushed := state.Push(NewContent(trimmed, state.Selection(), after), ChangeRemoveTable)

	if pushed.Tree().Len() != 10 || state.Tree().Len() != 11 {
		t.Errorf("unexpected lengths: pushed=%d original=%d", pushed.Tree().Len(), state.Tree().Len())
	}
	if pushed.Selection() != after {
		t.Errorf("expected selection after push, got %+v", pushed.Selection())
	}
	if pushed.LastChangeType() != ChangeRemoveTable {
		t.Errorf("expected change type remove-table, got %s", pushed.LastChangeType())
	}

	undone, err := pushed.Undo()
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if undone.Tree() != tree {
		t.Error("expected undo to restore the original tree")
	}
	if undone.Selection() != Collapsed("intro", 0) || !undone.MustForceSelection() {
		t.Errorf("expected forced selection before the edit, got %+v", undone.Selection())
	}

	redone, err := undone.Redo()
	if err != nil {
		t.Fatalf("redo failed: %v", err)
	}
	if redone.Tree() != trimmed || redone.Selection() != after {
		t.Error("expected redo to re-apply the edit")
	}

	if _, err := state.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
	if _, err := state.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestEditorState_HistoryLimit(t *testing.T) {
	state := CreateWithContent(sampleTree()).WithHistoryLimit(2)
	for i := 0; i < 5; i++ {
		state = state.Push(state.Content(), ChangeBlockData)
	}
	if state.UndoDepth() != 2 {
		t.Errorf("expected undo depth 2, got %d", state.UndoDepth())
	}
}

func TestEditorState_ForceSelection(t *testing.T) {
	state := CreateWithContent(sampleTree())
	sel := Collapsed("t.b.r.b", 1)

	forced := state.ForceSelection(sel)
	if !forced.MustForceSelection() || forced.Selection() != sel {
		t.Errorf("expected forced selection %+v, got %+v", sel, forced.Selection())
	}
	if state.MustForceSelection() {
		t.Error("expected original state to be untouched")
	}
	if forced.AcceptSelection(sel).MustForceSelection() {
		t.Error("expected accepted selection not to be forced")
	}
}

func TestTableBlock_FromRows(t *testing.T) {
	table := NewTableFromRows([]string{"H1", "H2"}, []string{"a", "b"}, []string{"c"})

	if table.Rows != 3 || table.Cols != 2 {
		t.Errorf("expected 3x2, got %dx%d", table.Rows, table.Cols)
	}
	if !table.HasHeader || !table.Cells[0][1].Style.IsHeader {
		t.Error("expected header row to be marked")
	}
	if len(table.BodyRows()) != 2 {
		t.Errorf("expected 2 body rows, got %d", len(table.BodyRows()))
	}
	table.SetCell(2, 0, "z")
	table.SetCell(9, 9, "ignored")
	want := [][]string{{"H1", "H2"}, {"a", "b"}, {"z"}}
	if diff := cmp.Diff(want, table.Texts()); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
	if table.GetCell(2, 1) != nil {
		t.Error("expected ragged cell lookup to return nil")
	}
}

func TestBlock_JSONSerialization(t *testing.T) {
	b := NewBlock("t.b.r.a", BlockTypeCell, "t.b.r", "a").WithData("align", "right")

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var restored Block
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if diff := cmp.Diff(b, restored); diff != "" {
		t.Errorf("block mismatch (-want +got):\n%s", diff)
	}
}
