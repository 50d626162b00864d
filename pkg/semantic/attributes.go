package semantic

import (
	"sigh/interpreter-go/pkg/ast"
	"sigh/interpreter-go/pkg/types"
)

// Attribute keys produced by the analysis pass.
const (
	KeyScope     = "scope"
	KeyDecl      = "decl"
	KeyType      = "type"
	KeyBodyScope = "bodyScope"
)

// Attributes is the read side of the analysis results. The evaluator pulls
// attributes through it and never recomputes them.
type Attributes interface {
	Attribute(node ast.Node, key string) (any, bool)
}

// Table is the in-memory Attributes implementation built by Analyze.
type Table struct {
	Root   *Scope
	values map[ast.Node]map[string]any
}

func NewTable() *Table {
	return &Table{values: make(map[ast.Node]map[string]any)}
}

func (t *Table) Set(node ast.Node, key string, value any) {
	attrs, ok := t.values[node]
	if !ok {
		attrs = make(map[string]any)
		t.values[node] = attrs
	}
	attrs[key] = value
}

func (t *Table) Attribute(node ast.Node, key string) (any, bool) {
	attrs, ok := t.values[node]
	if !ok {
		return nil, false
	}
	value, ok := attrs[key]
	return value, ok
}

func ScopeOf(attrs Attributes, node ast.Node) (*Scope, bool) {
	value, ok := attrs.Attribute(node, KeyScope)
	if !ok {
		return nil, false
	}
	scope, ok := value.(*Scope)
	return scope, ok
}

func BodyScopeOf(attrs Attributes, node ast.Node) (*Scope, bool) {
	value, ok := attrs.Attribute(node, KeyBodyScope)
	if !ok {
		return nil, false
	}
	scope, ok := value.(*Scope)
	return scope, ok
}

func DeclOf(attrs Attributes, node ast.Node) (ast.Declaration, bool) {
	value, ok := attrs.Attribute(node, KeyDecl)
	if !ok {
		return nil, false
	}
	decl, ok := value.(ast.Declaration)
	return decl, ok
}

func TypeOf(attrs Attributes, node ast.Node) (types.Type, bool) {
	value, ok := attrs.Attribute(node, KeyType)
	if !ok {
		return nil, false
	}
	typ, ok := value.(types.Type)
	return typ, ok
}
