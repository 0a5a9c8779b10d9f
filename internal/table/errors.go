package table

import (
	"fmt"

	"github.com/roboco-io/tablekit/internal/ir"
)

// StructureError reports a block tree that violates the table shape
// TABLE -> [HEADER?, BODY] -> ROW* -> CELL* at a point an operation
// depends on it. Operations that hit one are aborted.
type StructureError struct {
	Key    ir.Key // block where the violation was detected
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("malformed table structure at %q: %s", e.Key, e.Reason)
}

func structureErrorf(key ir.Key, format string, args ...any) error {
	return &StructureError{Key: key, Reason: fmt.Sprintf(format, args...)}
}
