package table

import (
	"strings"

	"github.com/google/uuid"

	"github.com/roboco-io/tablekit/internal/ir"
)

// KeyGenerator produces ids for new blocks. Ids must not contain
// ir.KeySeparator.
type KeyGenerator interface {
	NewID() string
}

// UUIDKeys generates short random ids from version 4 UUIDs.
type UUIDKeys struct{}

// NewID returns the first eight hex digits of a random UUID.
func (UUIDKeys) NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// keyer hands out keys that are unused in a tree. A child key always extends
// its parent key, so every block created under a table carries the table's
// key prefix.
type keyer struct {
	gen  KeyGenerator
	tree *ir.Tree
	used map[ir.Key]bool
}

func newKeyer(gen KeyGenerator, tree *ir.Tree) *keyer {
	return &keyer{gen: gen, tree: tree, used: make(map[ir.Key]bool)}
}

// maxKeyAttempts bounds the ids drawn for one key before a generator is
// considered unable to produce a free one.
const maxKeyAttempts = 64

// next returns a fresh key under parent, or a *StructureError when the
// generator keeps producing ids that are invalid or taken.
func (k *keyer) next(parent ir.Key) (ir.Key, error) {
	for i := 0; i < maxKeyAttempts; i++ {
		id := k.gen.NewID()
		key := ir.Key(id)
		if parent != "" {
			key = parent.Child(id)
		}
		if id == "" || strings.Contains(id, ir.KeySeparator) || k.used[key] || k.tree.Has(key) {
			continue
		}
		if parent == "" && k.claimsExisting(key) {
			continue
		}
		k.used[key] = true
		return key, nil
	}
	return "", structureErrorf(parent, "no free key after %d attempts", maxKeyAttempts)
}

// claimsExisting reports whether a new root key would capture existing
// blocks through the key prefix.
func (k *keyer) claimsExisting(root ir.Key) bool {
	for _, b := range k.tree.Blocks() {
		if b.Key.Within(root) {
			return true
		}
	}
	return false
}
