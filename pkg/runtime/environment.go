package runtime

import (
	"sort"

	"sigh/interpreter-go/pkg/semantic"
	"sigh/interpreter-go/pkg/types"
)

// Environment is the frame for one active instance of a static scope. Frames
// are chained to the frame that was active when they were created.
type Environment struct {
	scope      *semantic.Scope
	values     map[string]Value
	parent     *Environment
	predicates *PredicateStore
}

// NewEnvironment creates a frame for scope, nested under parent.
func NewEnvironment(scope *semantic.Scope, parent *Environment) *Environment {
	return &Environment{
		scope:  scope,
		values: make(map[string]Value),
		parent: parent,
	}
}

// Scope returns the static scope this frame instantiates.
func (e *Environment) Scope() *semantic.Scope {
	return e.scope
}

// Parent exposes the enclosing frame (nil for the root frame).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Root returns the outermost frame of the chain.
func (e *Environment) Root() *Environment {
	current := e
	for current.parent != nil {
		current = current.parent
	}
	return current
}

// Lookup walks the chain for the frame instantiating scope.
func (e *Environment) Lookup(scope *semantic.Scope) (*Environment, bool) {
	for current := e; current != nil; current = current.parent {
		if current.scope == scope {
			return current, true
		}
	}
	return nil, false
}

// Define writes a binding directly into this frame.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get reads a binding from this frame only.
func (e *Environment) Get(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Read returns the value bound to name in the active frame for scope.
func (e *Environment) Read(scope *semantic.Scope, name string) (Value, error) {
	frame, ok := e.Lookup(scope)
	if !ok {
		return nil, NewFault(EvaluationFault, "no active frame for %s while reading %s", scope, name)
	}
	v, ok := frame.values[name]
	if !ok {
		return nil, NewFault(EvaluationFault, "%s read before assignment", name)
	}
	return v, nil
}

// Write binds name in the active frame for scope, widening Int to Float when
// the target type is Float.
func (e *Environment) Write(scope *semantic.Scope, name string, value Value, target types.Type) error {
	frame, ok := e.Lookup(scope)
	if !ok {
		return NewFault(EvaluationFault, "no active frame for %s while writing %s", scope, name)
	}
	frame.values[name] = Widen(value, target)
	return nil
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Predicates returns the predicate store owned by this frame, creating it on
// first use.
func (e *Environment) Predicates() *PredicateStore {
	if e.predicates == nil {
		e.predicates = NewPredicateStore()
	}
	return e.predicates
}

// HasPredicates reports whether anything was ever declared in this frame's
// store.
func (e *Environment) HasPredicates() bool {
	return e.predicates != nil && e.predicates.Len() > 0
}

// Widen promotes an Int to Float when target is the Float type.
func Widen(value Value, target types.Type) Value {
	if iv, ok := value.(IntValue); ok && types.IsFloat(target) {
		return FloatValue{Val: float64(iv.Val)}
	}
	return value
}
