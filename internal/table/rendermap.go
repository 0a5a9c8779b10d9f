package table

import "github.com/roboco-io/tablekit/internal/ir"

// RenderSpec names the element a block type renders to.
type RenderSpec struct {
	Element string
}

// HeaderCellElement replaces the cell element for cells under the header.
const HeaderCellElement = "th"

// DefaultBlockRenderMap describes how the table block types nest when
// rendered.
var DefaultBlockRenderMap = map[ir.BlockType]RenderSpec{
	ir.BlockTypeTable:  {Element: "table"},
	ir.BlockTypeHeader: {Element: "thead"},
	ir.BlockTypeBody:   {Element: "tbody"},
	ir.BlockTypeRow:    {Element: "tr"},
	ir.BlockTypeCell:   {Element: "td"},
}
