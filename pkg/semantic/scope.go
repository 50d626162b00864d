package semantic

import "sigh/interpreter-go/pkg/ast"

// Scope is a static lexical scope. One Scope exists per scope-opening node and
// is shared by every runtime frame created for that node.
type Scope struct {
	Node   ast.Node
	Parent *Scope

	names        []string
	declarations map[string]ast.Declaration
}

func NewScope(node ast.Node, parent *Scope) *Scope {
	return &Scope{Node: node, Parent: parent, declarations: make(map[string]ast.Declaration)}
}

// Declare records decl under name and reports false if the name was already
// declared in this scope.
func (s *Scope) Declare(name string, decl ast.Declaration) bool {
	if _, exists := s.declarations[name]; exists {
		return false
	}
	s.declarations[name] = decl
	s.names = append(s.names, name)
	return true
}

// LookupLocal finds a declaration in this scope only.
func (s *Scope) LookupLocal(name string) (ast.Declaration, bool) {
	decl, ok := s.declarations[name]
	return decl, ok
}

// Lookup walks the scope chain and returns the declaration together with the
// scope it was found in.
func (s *Scope) Lookup(name string) (ast.Declaration, *Scope) {
	for current := s; current != nil; current = current.Parent {
		if decl, ok := current.declarations[name]; ok {
			return decl, current
		}
	}
	return nil, nil
}

// Names returns the declared names in declaration order.
func (s *Scope) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *Scope) IsRoot() bool { return s.Parent == nil }

func (s *Scope) Root() *Scope {
	current := s
	for current.Parent != nil {
		current = current.Parent
	}
	return current
}

func (s *Scope) String() string {
	if s == nil || s.Node == nil {
		return "<scope>"
	}
	return "scope(" + string(s.Node.NodeType()) + ")"
}
