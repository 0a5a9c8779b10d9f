// Package command maps operation names such as "insert-row" to editor
// operations, and routes host key commands to them.
package command

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/roboco-io/tablekit/internal/ir"
)

// Operation is a named edit over an editor state.
type Operation interface {
	// Name returns the name the operation is registered under.
	Name() string

	// Apply returns the state after the operation. Operations that do not
	// apply return state unchanged.
	Apply(state *ir.EditorState) *ir.EditorState
}

// Func adapts a function to the Operation interface.
type Func struct {
	ID string
	Fn func(state *ir.EditorState) *ir.EditorState
}

// Name returns f.ID.
func (f Func) Name() string { return f.ID }

// Apply calls f.Fn.
func (f Func) Apply(state *ir.EditorState) *ir.EditorState { return f.Fn(state) }

// UnknownOperationError reports a name with no registered operation.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation: %s", e.Name)
}

// ErrInvalidOperation is returned when registering a nil or unnamed operation.
var ErrInvalidOperation = errors.New("invalid operation")

// Registry maps names to operations.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]Operation
}

// NewRegistry creates an empty operation registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]Operation)}
}

// Register adds ops to the registry as a batch: when one of them is invalid
// or its name is already taken, nothing is added.
func (r *Registry) Register(ops ...Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := make(map[string]bool, len(ops))
	for _, op := range ops {
		if op == nil || op.Name() == "" {
			return ErrInvalidOperation
		}
		name := op.Name()
		if _, taken := r.ops[name]; taken || batch[name] {
			return fmt.Errorf("operation %q is already registered", name)
		}
		batch[name] = true
	}
	for _, op := range ops {
		r.ops[op.Name()] = op
	}
	return nil
}

// Lookup returns the operation registered under name, or an
// *UnknownOperationError.
func (r *Registry) Lookup(name string) (Operation, error) {
	r.mu.RLock()
	op, ok := r.ops[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnknownOperationError{Name: name}
	}
	return op, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Resolve looks up every name and fails on the first unknown one.
func (r *Registry) Resolve(names ...string) ([]Operation, error) {
	ops := make([]Operation, 0, len(names))
	for _, name := range names {
		op, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// Apply runs the named operation against state.
func (r *Registry) Apply(name string, state *ir.EditorState) (*ir.EditorState, error) {
	return r.Sequence(state, name)
}

// Sequence applies the named operations in order. The names are resolved
// before anything runs, so an unknown name returns the input state.
func (r *Registry) Sequence(state *ir.EditorState, names ...string) (*ir.EditorState, error) {
	ops, err := r.Resolve(names...)
	if err != nil {
		return state, err
	}
	cur := state
	for _, op := range ops {
		cur = op.Apply(cur)
	}
	return cur, nil
}

// DefaultRegistry is the global operation registry, preloaded with the
// built-in table operations of the default editor.
var DefaultRegistry = NewRegistry()

func init() {
	RegisterBuiltins(DefaultRegistry, nil)
}
