// Package ir defines the block representation of a document.
// A document is a flat, ordered sequence of keyed blocks; tables are
// encoded as contiguous runs of table-structural blocks linked by parent keys.
package ir

import "strings"

// KeySeparator joins a parent key and a child id.
const KeySeparator = "."

// Key identifies a block. Keys are unique within a document.
type Key string

// Child returns the key of a block owned by k with the given id.
func (k Key) Child(id string) Key {
	return k + Key(KeySeparator+id)
}

// Within reports whether k is root or carries root's key prefix.
func (k Key) Within(root Key) bool {
	if root == "" {
		return false
	}
	return k == root || strings.HasPrefix(string(k), string(root)+KeySeparator)
}

// BlockType represents the type of a block.
type BlockType string

const (
	BlockTypeUnstyled  BlockType = "unstyled"
	BlockTypeHeaderOne BlockType = "header-one"
	BlockTypeHeaderTwo BlockType = "header-two"

	BlockTypeTable  BlockType = "table"
	BlockTypeHeader BlockType = "table-header"
	BlockTypeBody   BlockType = "table-body"
	BlockTypeRow    BlockType = "table-row"
	BlockTypeCell   BlockType = "table-cell"
)

// IsTableStructural returns true for the five table block types.
func (t BlockType) IsTableStructural() bool {
	switch t {
	case BlockTypeTable, BlockTypeHeader, BlockTypeBody, BlockTypeRow, BlockTypeCell:
		return true
	}
	return false
}

// Block is a node of the document. Blocks are never modified in place;
// the With* methods return updated copies.
type Block struct {
	Key       Key               `json:"key" yaml:"key"`
	Type      BlockType         `json:"type" yaml:"type"`
	ParentKey Key               `json:"parent_key,omitempty" yaml:"parent_key,omitempty"`
	Text      string            `json:"text" yaml:"text"`
	Data      map[string]string `json:"data,omitempty" yaml:"data,omitempty"`
}

// NewBlock creates a block with the given key, type, parent and text.
func NewBlock(key Key, typ BlockType, parent Key, text string) Block {
	return Block{
		Key:       key,
		Type:      typ,
		ParentKey: parent,
		Text:      text,
	}
}

// Clone returns a copy of the block that shares no Data map with b.
func (b Block) Clone() Block {
	b.Data = cloneData(b.Data)
	return b
}

// WithText returns a copy of the block with its text replaced.
func (b Block) WithText(text string) Block {
	b = b.Clone()
	b.Text = text
	return b
}

// WithData returns a copy of the block with one data entry set.
func (b Block) WithData(name, value string) Block {
	data := cloneData(b.Data)
	if data == nil {
		data = make(map[string]string, 1)
	}
	data[name] = value
	b.Data = data
	return b
}

// DataValue returns a data entry, or "" when absent.
func (b Block) DataValue(name string) string {
	return b.Data[name]
}

// IsTopLevel returns true if the block has no structural parent.
func (b Block) IsTopLevel() bool {
	return b.ParentKey == ""
}

func cloneData(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
