package table

import (
	"github.com/roboco-io/tablekit/internal/ir"
)

// Build encodes a matrix as table blocks, ready to be spliced into tree.
// The first row becomes the header when m.HasHeader is set; a table always
// gets a body, possibly empty. It returns the blocks and the table key, or
// a *StructureError when the key generator cannot supply fresh keys.
func (e *Editor) Build(tree *ir.Tree, m *ir.TableBlock) ([]ir.Block, ir.Key, error) {
	return e.build(newKeyer(e.opts.Keys, tree), m)
}

func (e *Editor) build(k *keyer, m *ir.TableBlock) ([]ir.Block, ir.Key, error) {
	tableKey, err := k.next("")
	if err != nil {
		return nil, "", err
	}
	blocks := []ir.Block{ir.NewBlock(tableKey, ir.BlockTypeTable, "", "")}

	rows := m.Cells
	if m.HasHeader && len(rows) > 0 {
		headerKey, err := k.next(tableKey)
		if err != nil {
			return nil, "", err
		}
		blocks = append(blocks, ir.NewBlock(headerKey, ir.BlockTypeHeader, tableKey, ""))
		row, err := e.buildRow(k, headerKey, rows[0])
		if err != nil {
			return nil, "", err
		}
		blocks = append(blocks, row...)
		rows = rows[1:]
	}

	bodyKey, err := k.next(tableKey)
	if err != nil {
		return nil, "", err
	}
	blocks = append(blocks, ir.NewBlock(bodyKey, ir.BlockTypeBody, tableKey, ""))
	for _, cells := range rows {
		row, err := e.buildRow(k, bodyKey, cells)
		if err != nil {
			return nil, "", err
		}
		blocks = append(blocks, row...)
	}
	return blocks, tableKey, nil
}

func (e *Editor) buildRow(k *keyer, containerKey ir.Key, cells []ir.Cell) ([]ir.Block, error) {
	rowKey, err := k.next(containerKey)
	if err != nil {
		return nil, err
	}
	blocks := make([]ir.Block, 0, len(cells)+1)
	blocks = append(blocks, ir.NewBlock(rowKey, ir.BlockTypeRow, containerKey, ""))
	for _, c := range cells {
		cellKey, err := k.next(rowKey)
		if err != nil {
			return nil, err
		}
		cell := ir.NewBlock(cellKey, ir.BlockTypeCell, rowKey, c.Text)
		if c.Style.Alignment != "" {
			cell = cell.WithData(AlignDataKey, c.Style.Alignment)
		}
		blocks = append(blocks, cell)
	}
	return blocks, nil
}

// newRow builds an empty row of n cells under containerKey.
func (e *Editor) newRow(k *keyer, containerKey ir.Key, n int) ([]ir.Block, error) {
	cells := make([]ir.Cell, n)
	for i := range cells {
		cells[i].Text = e.opts.CellText
	}
	return e.buildRow(k, containerKey, cells)
}

// Snapshot reads the table with the given key into a matrix.
func Snapshot(tree *ir.Tree, tableKey ir.Key) (*ir.TableBlock, error) {
	block, ok := tree.Block(tableKey)
	if !ok || block.Type != ir.BlockTypeTable {
		return nil, structureErrorf(tableKey, "not a table")
	}
	if _, ok := BodyForTable(tree, tableKey); !ok {
		return nil, structureErrorf(tableKey, "table has no body")
	}

	m := &ir.TableBlock{Key: tableKey}
	if header, ok := HeaderForTable(tree, tableKey); ok {
		if rows := RowsOf(tree, header.Key); len(rows) > 0 {
			m.HasHeader = true
			for _, row := range rows {
				m.Cells = append(m.Cells, snapshotRow(tree, row, true))
			}
		}
	}
	body, _ := BodyForTable(tree, tableKey)
	for _, row := range RowsOf(tree, body.Key) {
		m.Cells = append(m.Cells, snapshotRow(tree, row, false))
	}

	m.Rows = len(m.Cells)
	for _, row := range m.Cells {
		if len(row) > m.Cols {
			m.Cols = len(row)
		}
	}
	return m, nil
}

func snapshotRow(tree *ir.Tree, row ir.Block, header bool) []ir.Cell {
	blocks := CellsOf(tree, row.Key)
	cells := make([]ir.Cell, len(blocks))
	for i, b := range blocks {
		cells[i] = ir.Cell{
			Key:  b.Key,
			Text: b.Text,
			Style: ir.CellStyle{
				Alignment: b.DataValue(AlignDataKey),
				IsHeader:  header,
			},
		}
	}
	return cells
}

// Tables returns the keys of every table in document order.
func Tables(tree *ir.Tree) []ir.Key {
	var keys []ir.Key
	for _, b := range tree.Blocks() {
		if b.Type == ir.BlockTypeTable {
			keys = append(keys, b.Key)
		}
	}
	return keys
}
