package ir

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is returned when two blocks share a key.
	ErrDuplicateKey = errors.New("duplicate block key")
	// ErrEmptyKey is returned for a block without a key.
	ErrEmptyKey = errors.New("empty block key")
	// ErrRangeInvalid is returned when a splice range is out of bounds.
	ErrRangeInvalid = errors.New("invalid block range")
)

// Tree is an immutable ordered sequence of blocks. Order encodes shape:
// the children of a block are found in the contiguous run that follows it.
// Blocks are cloned on the way in and on the way out, so a Data map held
// by a caller never aliases one held by a tree.
type Tree struct {
	blocks []Block
	index  map[Key]int
}

// NewTree creates a tree from blocks in document order.
func NewTree(blocks ...Block) (*Tree, error) {
	return newTree(cloneBlocks(blocks))
}

// MustTree is like NewTree but panics on error. Intended for fixtures.
func MustTree(blocks ...Block) *Tree {
	t, err := NewTree(blocks...)
	if err != nil {
		panic(err)
	}
	return t
}

func newTree(blocks []Block) (*Tree, error) {
	index := make(map[Key]int, len(blocks))
	for i, b := range blocks {
		if b.Key == "" {
			return nil, fmt.Errorf("block %d: %w", i, ErrEmptyKey)
		}
		if _, dup := index[b.Key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, b.Key)
		}
		index[b.Key] = i
	}
	return &Tree{blocks: blocks, index: index}, nil
}

func cloneBlocks(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}

// Len returns the number of blocks.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.blocks)
}

// At returns the block at position i.
func (t *Tree) At(i int) Block {
	return t.blocks[i].Clone()
}

// Block returns the block with the given key.
func (t *Tree) Block(key Key) (Block, bool) {
	i, ok := t.IndexOf(key)
	if !ok {
		return Block{}, false
	}
	return t.blocks[i].Clone(), true
}

// Has reports whether a block with the key exists.
func (t *Tree) Has(key Key) bool {
	_, ok := t.IndexOf(key)
	return ok
}

// IndexOf returns the document position of a key.
func (t *Tree) IndexOf(key Key) (int, bool) {
	if t == nil {
		return 0, false
	}
	i, ok := t.index[key]
	return i, ok
}

// First returns the first block of the document.
func (t *Tree) First() (Block, bool) {
	if t.Len() == 0 {
		return Block{}, false
	}
	return t.blocks[0].Clone(), true
}

// Last returns the last block of the document.
func (t *Tree) Last() (Block, bool) {
	if t.Len() == 0 {
		return Block{}, false
	}
	return t.blocks[len(t.blocks)-1].Clone(), true
}

// Blocks returns a copy of all blocks in document order.
func (t *Tree) Blocks() []Block {
	if t == nil {
		return []Block{}
	}
	return cloneBlocks(t.blocks)
}

// Span returns the half-open position range [start, end) covering the block
// with the given key and the contiguous run of its descendants.
func (t *Tree) Span(key Key) (start, end int, ok bool) {
	start, ok = t.IndexOf(key)
	if !ok {
		return 0, 0, false
	}
	members := map[Key]bool{key: true}
	end = start + 1
	for end < len(t.blocks) {
		b := t.blocks[end]
		if b.ParentKey == "" || !members[b.ParentKey] {
			break
		}
		members[b.Key] = true
		end++
	}
	return start, end, true
}

// Children returns the direct children of a block in document order.
func (t *Tree) Children(key Key) []Block {
	start, end, ok := t.Span(key)
	if !ok {
		return nil
	}
	var children []Block
	for _, b := range t.blocks[start+1 : end] {
		if b.ParentKey == key {
			children = append(children, b.Clone())
		}
	}
	return children
}

// Splice returns a new tree with positions [start, end) replaced by insert.
func (t *Tree) Splice(start, end int, insert ...Block) (*Tree, error) {
	if start < 0 || end < start || end > t.Len() {
		return nil, fmt.Errorf("%w: [%d, %d) of %d", ErrRangeInvalid, start, end, t.Len())
	}
	blocks := make([]Block, 0, t.Len()-(end-start)+len(insert))
	blocks = append(blocks, t.blocks[:start]...)
	blocks = append(blocks, cloneBlocks(insert)...)
	blocks = append(blocks, t.blocks[end:]...)
	return newTree(blocks)
}

// InsertAt returns a new tree with blocks inserted before position i.
func (t *Tree) InsertAt(i int, insert ...Block) (*Tree, error) {
	return t.Splice(i, i, insert...)
}

// Filter returns a new tree holding only the blocks keep accepts.
func (t *Tree) Filter(keep func(Block) bool) *Tree {
	blocks := make([]Block, 0, t.Len())
	for _, b := range t.blocks {
		if keep(b.Clone()) {
			blocks = append(blocks, b)
		}
	}
	// Keys stay unique under removal.
	out, _ := newTree(blocks)
	return out
}

// Replace returns a new tree where each given block takes the place of the
// existing block with the same key.
func (t *Tree) Replace(updated ...Block) (*Tree, error) {
	blocks := make([]Block, t.Len())
	copy(blocks, t.blocks)
	for _, b := range updated {
		i, ok := t.IndexOf(b.Key)
		if !ok {
			return nil, fmt.Errorf("replace %s: block not found", b.Key)
		}
		blocks[i] = b.Clone()
	}
	return newTree(blocks)
}
