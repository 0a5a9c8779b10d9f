package table

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/roboco-io/tablekit/internal/ir"
)

type seqKeys struct{ n int }

func (s *seqKeys) NewID() string {
	s.n++
	return fmt.Sprintf("k%d", s.n)
}

type recordingEvent struct{ prevented bool }

func (r *recordingEvent) PreventDefault() { r.prevented = true }

func newTestEditor() *Editor {
	return NewEditor(Options{Keys: &seqKeys{}, ColumnFill: " "})
}

// newDoc returns a document made of an intro paragraph followed by m.
func newDoc(t *testing.T, e *Editor, m *ir.TableBlock) (*ir.EditorState, ir.Key) {
	t.Helper()
	base := ir.MustTree(ir.NewBlock("intro", ir.BlockTypeUnstyled, "", "Intro"))
	blocks, key, err := e.Build(base, m)
	if err != nil {
		t.Fatalf("failed to build table: %v", err)
	}
	tree, err := base.InsertAt(1, blocks...)
	if err != nil {
		t.Fatalf("failed to build document: %v", err)
	}
	return ir.CreateWithContent(tree), key
}

func scenarioTable() *ir.TableBlock {
	return ir.NewTableFromRows([]string{"H1", "H2"}, []string{"a", "b"})
}

func snapshot(t *testing.T, state *ir.EditorState, tableKey ir.Key) *ir.TableBlock {
	t.Helper()
	m, err := Snapshot(state.Tree(), tableKey)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	return m
}

func cellKey(t *testing.T, state *ir.EditorState, tableKey ir.Key, row, col int) ir.Key {
	t.Helper()
	c := snapshot(t, state, tableKey).GetCell(row, col)
	if c == nil {
		t.Fatalf("no cell at %d,%d", row, col)
	}
	return c.Key
}

func caretAt(state *ir.EditorState, key ir.Key, offset int) *ir.EditorState {
	return state.AcceptSelection(ir.Collapsed(key, offset))
}

func assertKeyPrefixInvariant(t *testing.T, tree *ir.Tree) {
	t.Helper()
	tables := Tables(tree)
	for _, b := range tree.Blocks() {
		owner, ok, err := FindNearestAncestorOfType(tree, b, ir.BlockTypeTable)
		if err != nil {
			t.Fatalf("ancestor lookup failed for %s: %v", b.Key, err)
		}
		if ok {
			if !b.Key.Within(owner.Key) {
				t.Errorf("block %s is in table %s but lacks its key prefix", b.Key, owner.Key)
			}
			continue
		}
		for _, tk := range tables {
			if b.Key.Within(tk) {
				t.Errorf("block %s is outside table %s but carries its key prefix", b.Key, tk)
			}
		}
	}
}

func TestFindNearestAncestorOfType(t *testing.T) {
	tree := ir.MustTree(
		ir.NewBlock("t", ir.BlockTypeTable, "", ""),
		ir.NewBlock("t.b", ir.BlockTypeBody, "t", ""),
		ir.NewBlock("t.b.r", ir.BlockTypeRow, "t.b", ""),
		ir.NewBlock("t.b.r.c", ir.BlockTypeCell, "t.b.r", "x"),
		ir.NewBlock("p", ir.BlockTypeUnstyled, "", "para"),
	)
	cell, _ := tree.Block("t.b.r.c")

	tests := []struct {
		name     string
		block    ir.Key
		typ      ir.BlockType
		expected ir.Key
		found    bool
	}{
		{"self", "t.b.r.c", ir.BlockTypeCell, "t.b.r.c", true},
		{"row", "t.b.r.c", ir.BlockTypeRow, "t.b.r", true},
		{"table", "t.b.r.c", ir.BlockTypeTable, "t", true},
		{"no header", "t.b.r.c", ir.BlockTypeHeader, "", false},
		{"top level", "p", ir.BlockTypeTable, "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, _ := tree.Block(tc.block)
			got, ok, err := FindNearestAncestorOfType(tree, b, tc.typ)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tc.found || got.Key != tc.expected {
				t.Errorf("got %q (found=%v), want %q (found=%v)", got.Key, ok, tc.expected, tc.found)
			}
		})
	}

	if _, ok, _ := FindNearestAncestorOfType(tree, cell, ir.BlockTypeBody); !ok {
		t.Error("expected body ancestor")
	}
}

func TestFindNearestAncestorOfType_Malformed(t *testing.T) {
	t.Run("cycle", func(t *testing.T) {
		tree := ir.MustTree(
			ir.NewBlock("a", ir.BlockTypeCell, "b", ""),
			ir.NewBlock("b", ir.BlockTypeRow, "a", ""),
		)
		a, _ := tree.Block("a")
		_, _, err := FindNearestAncestorOfType(tree, a, ir.BlockTypeTable)
		var serr *StructureError
		if !errors.As(err, &serr) {
			t.Fatalf("expected StructureError, got %v", err)
		}
	})

	t.Run("dangling parent", func(t *testing.T) {
		tree := ir.MustTree(ir.NewBlock("a", ir.BlockTypeCell, "gone", ""))
		a, _ := tree.Block("a")
		_, _, err := FindNearestAncestorOfType(tree, a, ir.BlockTypeTable)
		var serr *StructureError
		if !errors.As(err, &serr) || serr.Key != "a" {
			t.Fatalf("expected StructureError at a, got %v", err)
		}
	})
}

func TestAnchorFromSelection(t *testing.T) {
	e := newTestEditor()
	state, tableKey := newDoc(t, e, scenarioTable())

	tests := []struct {
		name     string
		row, col int
		expected Anchor
	}{
		{"header first cell", 0, 0, Anchor{TableKey: tableKey, Row: 0, Column: 0, Offset: 1}},
		{"header second cell", 0, 1, Anchor{TableKey: tableKey, Row: 0, Column: 1, Offset: 1}},
		{"body second cell", 1, 1, Anchor{TableKey: tableKey, Row: 1, Column: 1, Offset: 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sel := ir.Collapsed(cellKey(t, state, tableKey, tc.row, tc.col), 1)
			got, ok, err := AnchorFromSelection(state.Tree(), sel)
			if err != nil || !ok {
				t.Fatalf("expected anchor, got ok=%v err=%v", ok, err)
			}
			if got != tc.expected {
				t.Errorf("got %+v, want %+v", got, tc.expected)
			}
		})
	}

	if _, ok, err := AnchorFromBlock(state.Tree(), "intro"); ok || err != nil {
		t.Errorf("expected no anchor outside a table, got ok=%v err=%v", ok, err)
	}
	if _, ok, _ := AnchorFromBlock(state.Tree(), "missing"); ok {
		t.Error("expected no anchor for a missing block")
	}
	if _, ok, _ := AnchorFromEditor(state); ok {
		t.Error("expected no anchor for the initial caret in the intro")
	}
}

func TestAnchor_Derived(t *testing.T) {
	header := Anchor{Row: 0}
	if header.ContainerType() != ir.BlockTypeHeader || header.RowIndex() != 0 {
		t.Errorf("unexpected header derivation: %s %d", header.ContainerType(), header.RowIndex())
	}
	body := Anchor{Row: 3}
	if body.ContainerType() != ir.BlockTypeBody || body.RowIndex() != 2 {
		t.Errorf("unexpected body derivation: %s %d", body.ContainerType(), body.RowIndex())
	}
}

func TestAnchor_RoundTrip(t *testing.T) {
	tables := map[string]*ir.TableBlock{
		"with header":    ir.NewTableFromRows([]string{"H1", "H2", "H3"}, []string{"a", "b", "c"}, []string{"d", "e", "f"}),
		"without header": ir.NewTableFromRows(nil, []string{"a", "b"}, []string{"c", "d"}, []string{"e", "f"}),
	}

	for name, m := range tables {
		t.Run(name, func(t *testing.T) {
			state, tableKey := newDoc(t, newTestEditor(), m)
			tree := state.Tree()
			first := 1
			if m.HasHeader {
				first = 0
			}
			for row := first; row < first+m.Rows; row++ {
				for col := 0; col < m.Cols; col++ {
					a := Anchor{TableKey: tableKey, Row: row, Column: col, Offset: 2}
					sel, ok := a.ToSelection(tree)
					if !ok {
						t.Fatalf("anchor %+v did not resolve", a)
					}
					got, ok, err := AnchorFromSelection(tree, sel)
					if err != nil || !ok {
						t.Fatalf("selection %+v did not resolve back: %v", sel, err)
					}
					if got != a {
						t.Errorf("round trip mismatch: got %+v, want %+v", got, a)
					}
				}
			}
		})
	}
}

func TestAnchor_ToSelectionMissing(t *testing.T) {
	state, tableKey := newDoc(t, newTestEditor(), ir.NewTableFromRows(nil, []string{"a", "b"}))
	tree := state.Tree()

	tests := []struct {
		name   string
		anchor Anchor
	}{
		{"no header", Anchor{TableKey: tableKey, Row: 0}},
		{"past last row", Anchor{TableKey: tableKey, Row: 2}},
		{"negative row", Anchor{TableKey: tableKey, Row: -1}},
		{"past last column", Anchor{TableKey: tableKey, Row: 1, Column: 2}},
		{"negative column", Anchor{TableKey: tableKey, Row: 1, Column: -1}},
		{"unknown table", Anchor{TableKey: "nope", Row: 1}},
		{"not a table", Anchor{TableKey: "intro", Row: 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if sel, ok := tc.anchor.ToSelection(tree); ok {
				t.Errorf("expected no selection, got %+v", sel)
			}
		})
	}
}

func TestHasSelectionInTable(t *testing.T) {
	state, tableKey := newDoc(t, newTestEditor(), scenarioTable())
	if HasSelectionInTable(state) {
		t.Error("expected caret in intro to be outside the table")
	}
	if !HasSelectionInTable(caretAt(state, cellKey(t, state, tableKey, 1, 0), 0)) {
		t.Error("expected caret in a cell to be inside the table")
	}
}

func TestSnapshot_Errors(t *testing.T) {
	tree := ir.MustTree(
		ir.NewBlock("p", ir.BlockTypeUnstyled, "", ""),
		ir.NewBlock("t", ir.BlockTypeTable, "", ""),
	)
	var serr *StructureError
	if _, err := Snapshot(tree, "p"); !errors.As(err, &serr) {
		t.Errorf("expected StructureError for a paragraph, got %v", err)
	}
	if _, err := Snapshot(tree, "t"); !errors.As(err, &serr) {
		t.Errorf("expected StructureError for a table without body, got %v", err)
	}
}

func TestUUIDKeys(t *testing.T) {
	id := UUIDKeys{}.NewID()
	if len(id) != 8 {
		t.Errorf("expected 8 character id, got %q", id)
	}
	if id == (UUIDKeys{}).NewID() {
		t.Error("expected distinct ids")
	}
}

func TestBuild_KeyPrefixInvariant(t *testing.T) {
	e := NewEditor(DefaultOptions())
	state, tableKey := newDoc(t, e, scenarioTable())

	assertKeyPrefixInvariant(t, state.Tree())
	if diff := cmp.Diff([]ir.Key{tableKey}, Tables(state.Tree())); diff != "" {
		t.Errorf("tables mismatch (-want +got):\n%s", diff)
	}
}

// constKeys returns the same id on every call.
type constKeys struct {
	id    string
	calls int
}

func (c *constKeys) NewID() string {
	c.calls++
	return c.id
}

func TestKeyer_GivesUpOnTakenKeys(t *testing.T) {
	tree := ir.MustTree(ir.NewBlock("intro", ir.BlockTypeUnstyled, "", "Intro"))
	gen := &constKeys{id: "intro"}

	_, err := newKeyer(gen, tree).next("")
	var se *StructureError
	if !errors.As(err, &se) {
		t.Fatalf("expected StructureError, got %v", err)
	}
	if gen.calls != maxKeyAttempts {
		t.Errorf("expected %d attempts, got %d", maxKeyAttempts, gen.calls)
	}
}

func TestKeyGeneratorExhausted_AbortsOperations(t *testing.T) {
	state, tableKey := newDoc(t, newTestEditor(), scenarioTable())

	var errs []error
	e := NewEditor(Options{
		Keys:    &constKeys{id: "dup"},
		OnError: func(_ ir.ChangeType, err error) { errs = append(errs, err) },
	})

	// A row of two cells needs two distinct cell ids under one row key.
	intro := caretAt(state, "intro", 0)
	if got := e.InsertTable(intro, 1, 2); got != intro {
		t.Error("expected InsertTable to return the input state")
	}
	inCell := caretAt(state, cellKey(t, state, tableKey, 1, 0), 0)
	if got := e.InsertRow(inCell); got != inCell {
		t.Error("expected InsertRow to return the input state")
	}

	if len(errs) != 2 {
		t.Fatalf("expected 2 reported errors, got %d", len(errs))
	}
	for _, err := range errs {
		var se *StructureError
		if !errors.As(err, &se) {
			t.Errorf("expected StructureError, got %v", err)
		}
	}

	if _, _, err := e.Build(nil, scenarioTable()); err == nil {
		t.Error("expected Build to fail")
	}
}
