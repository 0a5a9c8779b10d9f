package ir

// TableBlock is a matrix view of a table region of the document.
// When HasHeader is set, Cells[0] is the header row.
type TableBlock struct {
	Key       Key      `json:"key,omitempty" yaml:"key,omitempty"`
	Rows      int      `json:"rows" yaml:"rows"`
	Cols      int      `json:"cols" yaml:"cols"`
	Cells     [][]Cell `json:"cells,omitempty" yaml:"cells,omitempty"`
	HasHeader bool     `json:"has_header,omitempty" yaml:"has_header,omitempty"` // first row is header
}

// Cell represents a single cell in a table.
type Cell struct {
	Key   Key       `json:"key,omitempty" yaml:"key,omitempty"`
	Text  string    `json:"text" yaml:"text"`
	Style CellStyle `json:"style,omitempty" yaml:"style,omitempty"`
}

// CellStyle contains cell-level styling hints.
type CellStyle struct {
	Alignment string `json:"alignment,omitempty" yaml:"alignment,omitempty"` // left, center, right
	IsHeader  bool   `json:"is_header,omitempty" yaml:"is_header,omitempty"`
}

// NewTable creates a new table with the specified dimensions.
func NewTable(rows, cols int) *TableBlock {
	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, cols)
	}
	return &TableBlock{
		Rows:  rows,
		Cols:  cols,
		Cells: cells,
	}
}

// NewTableFromRows creates a table from row texts. Rows may be ragged;
// Cols is the widest row.
func NewTableFromRows(header []string, body ...[]string) *TableBlock {
	t := &TableBlock{}
	if header != nil {
		t.AddRow(header...)
		t.SetHeaderRow()
	}
	for _, row := range body {
		t.AddRow(row...)
	}
	return t
}

// AddRow appends a row of cells with the given texts.
func (t *TableBlock) AddRow(texts ...string) {
	row := make([]Cell, len(texts))
	for i, text := range texts {
		row[i] = Cell{Text: text, Style: CellStyle{IsHeader: t.HasHeader && t.Rows == 0}}
	}
	t.Cells = append(t.Cells, row)
	t.Rows = len(t.Cells)
	if len(texts) > t.Cols {
		t.Cols = len(texts)
	}
}

// SetCell sets the content of a specific cell.
func (t *TableBlock) SetCell(row, col int, text string) {
	if c := t.GetCell(row, col); c != nil {
		c.Text = text
	}
}

// GetCell returns the cell at the specified position.
func (t *TableBlock) GetCell(row, col int) *Cell {
	if row >= 0 && row < len(t.Cells) && col >= 0 && col < len(t.Cells[row]) {
		return &t.Cells[row][col]
	}
	return nil
}

// SetHeaderRow marks the first row as a header row.
func (t *TableBlock) SetHeaderRow() {
	t.HasHeader = true
	if len(t.Cells) > 0 {
		for j := range t.Cells[0] {
			t.Cells[0][j].Style.IsHeader = true
		}
	}
}

// BodyRows returns the rows below the header.
func (t *TableBlock) BodyRows() [][]Cell {
	if t.HasHeader && len(t.Cells) > 0 {
		return t.Cells[1:]
	}
	return t.Cells
}

// Texts returns the cell texts row by row.
func (t *TableBlock) Texts() [][]string {
	out := make([][]string, len(t.Cells))
	for i, row := range t.Cells {
		out[i] = make([]string, len(row))
		for j, c := range row {
			out[i][j] = c.Text
		}
	}
	return out
}
