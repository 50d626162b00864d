package semantic

import (
	"fmt"
	"strings"

	"sigh/interpreter-go/pkg/ast"
	"sigh/interpreter-go/pkg/types"
)

// Error aggregates the problems found while attributing a tree.
type Error struct {
	Issues []string
}

func (e *Error) Error() string {
	if len(e.Issues) == 0 {
		return "semantic: invalid program"
	}
	var b strings.Builder
	b.WriteString("semantic analysis failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// PrintFunction is the name of the builtin output function.
const PrintFunction = "print"

// Analyze attributes root with the scope, decl and type attributes the
// interpreter consumes. It resolves names and computes static types; it does
// not reject ill-typed programs beyond unresolvable names and types.
//
// Atoms and predicate calls are resolved once the whole tree has been
// declared, so a rule body may name a functor declared further down.
func Analyze(root *ast.Root) (*Table, error) {
	a := &analyzer{table: NewTable(), declTypes: make(map[ast.Declaration]types.Type)}
	rootScope := NewScope(root, nil)
	a.table.Root = rootScope
	a.table.Set(root, KeyScope, rootScope)
	for name := range types.Builtins {
		rootScope.Declare(name, ast.NewBuiltinDeclaration(name, ast.BuiltinType))
	}
	rootScope.Declare(PrintFunction, ast.NewBuiltinDeclaration(PrintFunction, ast.BuiltinFunction))

	a.statements(root.Statements, rootScope)
	for _, resolve := range a.deferred {
		resolve()
	}
	if len(a.issues) > 0 {
		return a.table, &Error{Issues: a.issues}
	}
	return a.table, nil
}

type analyzer struct {
	table     *Table
	issues    []string
	declTypes map[ast.Declaration]types.Type
	deferred  []func()
}

func (a *analyzer) report(node ast.Node, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if node != nil {
		if span := node.Span(); span != (ast.Span{}) {
			msg = fmt.Sprintf("line %d, column %d: %s", span.Start.Line, span.Start.Column, msg)
		}
	}
	a.issues = append(a.issues, msg)
}

func (a *analyzer) declare(scope *Scope, name string, decl ast.Declaration) {
	if !scope.Declare(name, decl) {
		a.report(decl, "%s is already declared in this scope", name)
	}
	a.table.Set(decl, KeyScope, scope)
}

// statements hoists the functions and structs of a statement list so they can
// be referenced before their declaration, then walks the list in order.
func (a *analyzer) statements(list []ast.Statement, scope *Scope) {
	for _, stmt := range list {
		switch decl := stmt.(type) {
		case *ast.StructDeclaration:
			a.declare(scope, decl.Name, decl)
		case *ast.FunctionDeclaration:
			a.declare(scope, decl.Name, decl)
		}
	}
	for _, stmt := range list {
		a.statement(stmt, scope)
	}
}

func (a *analyzer) statement(node ast.Statement, scope *Scope) {
	switch n := node.(type) {
	case *ast.Block:
		inner := NewScope(n, scope)
		a.table.Set(n, KeyScope, inner)
		a.statements(n.Statements, inner)
	case *ast.ExpressionStatement:
		a.expression(n.Expression, scope)
	case *ast.VarDeclaration:
		var typ types.Type = types.Void
		if n.Initializer != nil {
			typ = a.expression(n.Initializer, scope)
		}
		if n.Type != nil {
			typ = a.resolveType(n.Type, scope)
		}
		a.declare(scope, n.Name, n)
		a.declTypes[n] = typ
		a.table.Set(n, KeyType, typ)
	case *ast.FunctionDeclaration:
		a.function(n, scope)
	case *ast.StructDeclaration:
		a.table.Set(n, KeyType, types.TypeT)
		for _, field := range n.Fields {
			typ := a.resolveType(field.Type, scope)
			a.declTypes[field] = typ
			a.table.Set(field, KeyType, typ)
		}
	case *ast.IfStatement:
		a.expression(n.Condition, scope)
		a.statement(n.Then, scope)
		if n.Else != nil {
			a.statement(n.Else, scope)
		}
	case *ast.WhileStatement:
		a.expression(n.Condition, scope)
		a.statement(n.Body, scope)
	case *ast.ReturnStatement:
		if n.Expression != nil {
			a.expression(n.Expression, scope)
		}
	case *ast.AtomDeclaration:
		if existing, ok := scope.LookupLocal(n.Name); ok {
			if _, isAtom := existing.(*ast.AtomDeclaration); !isAtom {
				a.report(n, "%s is already declared in this scope", n.Name)
			}
		} else {
			scope.Declare(n.Name, n)
		}
		a.table.Set(n, KeyScope, scope)
		a.table.Set(n, KeyType, types.Bool)
	case *ast.FactDeclaration:
		params := make([]types.Type, len(n.Arguments))
		for idx, arg := range n.Arguments {
			params[idx] = a.expression(arg, scope)
		}
		a.predicate(n, n.Functor, types.PredicateType{Functor: n.Functor, Params: params}, scope)
	case *ast.RuleDeclaration:
		body := NewScope(n, scope)
		a.table.Set(n, KeyBodyScope, body)
		params := make([]types.Type, len(n.Parameters))
		for idx, param := range n.Parameters {
			params[idx] = a.parameter(param, body)
		}
		a.predicate(n, n.Functor, types.PredicateType{Functor: n.Functor, Params: params}, scope)
		if n.Body == nil {
			a.report(n, "rule %s has no body", n.Functor)
			return
		}
		a.expression(n.Body, body)
	case *ast.Unification:
		if n.Left == nil || n.Right == nil {
			a.report(n, "unification requires two predicates")
			return
		}
		a.expression(n.Left, scope)
		a.expression(n.Right, scope)
	default:
		a.report(node, "unsupported statement type: %s", node.NodeType())
	}
}

// predicate attaches a fact or rule declaration to the entry of an already
// visible functor, or declares the functor in the current scope.
func (a *analyzer) predicate(decl ast.Declaration, functor string, typ types.Type, scope *Scope) {
	a.table.Set(decl, KeyType, typ)
	if existing, owner := scope.Lookup(functor); existing != nil {
		switch existing.(type) {
		case *ast.FactDeclaration, *ast.RuleDeclaration:
			a.table.Set(decl, KeyScope, owner)
			a.table.Set(decl, KeyDecl, existing)
			return
		}
	}
	a.declare(scope, functor, decl)
	a.declTypes[decl] = typ
	a.table.Set(decl, KeyDecl, decl)
}

func (a *analyzer) parameter(param *ast.Parameter, scope *Scope) types.Type {
	typ := a.resolveType(param.Type, scope)
	a.declare(scope, param.Name, param)
	a.declTypes[param] = typ
	a.table.Set(param, KeyType, typ)
	return typ
}

func (a *analyzer) function(fn *ast.FunctionDeclaration, scope *Scope) {
	typ := a.functionType(fn, scope)
	a.table.Set(fn, KeyType, typ)
	body := NewScope(fn, scope)
	a.table.Set(fn, KeyBodyScope, body)
	for _, param := range fn.Parameters {
		a.parameter(param, body)
	}
	if fn.Body == nil {
		a.report(fn, "function %s has no body", fn.Name)
		return
	}
	a.statement(fn.Body, body)
}

func (a *analyzer) functionType(fn *ast.FunctionDeclaration, scope *Scope) types.FunctionType {
	if cached, ok := a.declTypes[fn].(types.FunctionType); ok {
		return cached
	}
	params := make([]types.Type, len(fn.Parameters))
	for idx, param := range fn.Parameters {
		params[idx] = a.resolveType(param.Type, scope)
	}
	ret := types.Void
	if fn.ReturnType != nil {
		ret = a.resolveType(fn.ReturnType, scope)
	}
	typ := types.FunctionType{Params: params, Return: ret}
	a.declTypes[fn] = typ
	return typ
}

func (a *analyzer) resolveType(expr ast.TypeExpression, scope *Scope) types.Type {
	switch t := expr.(type) {
	case nil:
		return types.Void
	case *ast.SimpleType:
		decl, _ := scope.Lookup(t.Name)
		switch d := decl.(type) {
		case *ast.BuiltinDeclaration:
			if builtin, ok := types.Builtins[d.Name]; ok && d.Kind == ast.BuiltinType {
				return builtin
			}
		case *ast.StructDeclaration:
			return types.StructType{Decl: d}
		}
		a.report(t, "unknown type %s", t.Name)
		return types.Void
	case *ast.ArrayType:
		return types.ArrayType{Element: a.resolveType(t.Element, scope)}
	default:
		a.report(expr, "unsupported type expression: %s", expr.NodeType())
		return types.Void
	}
}

// declType returns the type a reference to decl evaluates to.
func (a *analyzer) declType(decl ast.Declaration, scope *Scope) types.Type {
	switch d := decl.(type) {
	case *ast.BuiltinDeclaration:
		if d.Kind == ast.BuiltinFunction {
			return types.FunctionType{Params: []types.Type{types.String}, Return: types.String}
		}
		return types.TypeT
	case *ast.StructDeclaration:
		return types.TypeT
	case *ast.FunctionDeclaration:
		return a.functionType(d, scope)
	case *ast.AtomDeclaration:
		return types.Bool
	}
	if typ, ok := a.declTypes[decl]; ok {
		return typ
	}
	return types.Void
}

func (a *analyzer) expression(node ast.Expression, scope *Scope) types.Type {
	typ := a.expressionType(node, scope)
	a.table.Set(node, KeyType, typ)
	return typ
}

func (a *analyzer) expressionType(node ast.Expression, scope *Scope) types.Type {
	switch n := node.(type) {
	case *ast.IntLiteral:
		return types.Int
	case *ast.FloatLiteral:
		return types.Float
	case *ast.StringLiteral:
		return types.String
	case *ast.BoolLiteral:
		return types.Bool
	case *ast.NullLiteral:
		return types.Null
	case *ast.Reference:
		decl, owner := scope.Lookup(n.Name)
		if decl == nil {
			a.report(n, "could not resolve: %s", n.Name)
			return types.Void
		}
		a.table.Set(n, KeyDecl, decl)
		a.table.Set(n, KeyScope, owner)
		return a.declType(decl, owner)
	case *ast.Constructor:
		decl, owner := scope.Lookup(n.Name)
		structDecl, ok := decl.(*ast.StructDeclaration)
		if !ok {
			a.report(n, "%s is not a struct", n.Name)
			return types.Void
		}
		a.table.Set(n, KeyDecl, structDecl)
		a.table.Set(n, KeyScope, owner)
		params := make([]types.Type, len(structDecl.Fields))
		for idx, field := range structDecl.Fields {
			params[idx] = a.resolveType(field.Type, owner)
		}
		return types.FunctionType{Params: params, Return: types.StructType{Decl: structDecl}}
	case *ast.ArrayLiteral:
		var element types.Type = types.Null
		for _, el := range n.Elements {
			elType := a.expression(el, scope)
			switch {
			case types.IsNull(element):
				element = elType
			case types.IsInt(element) && types.IsFloat(elType):
				element = types.Float
			}
		}
		return types.ArrayType{Element: element}
	case *ast.FieldAccess:
		stem := a.expression(n.Stem, scope)
		switch st := stem.(type) {
		case types.ArrayType:
			if n.Field == "length" {
				return types.Int
			}
		case types.StructType:
			if idx := st.Decl.FieldIndex(n.Field); idx >= 0 {
				return a.resolveType(st.Decl.Fields[idx].Type, scope)
			}
		}
		a.report(n, "unknown field %s on %s", n.Field, stem.Name())
		return types.Void
	case *ast.ArrayAccess:
		arr := a.expression(n.Array, scope)
		a.expression(n.Index, scope)
		if at, ok := arr.(types.ArrayType); ok {
			return at.Element
		}
		return types.Void
	case *ast.FunctionCall:
		callee := a.expression(n.Callee, scope)
		for _, arg := range n.Arguments {
			a.expression(arg, scope)
		}
		if fn, ok := callee.(types.FunctionType); ok {
			return fn.Return
		}
		return types.Void
	case *ast.UnaryExpression:
		a.expression(n.Operand, scope)
		return types.Bool
	case *ast.BinaryExpression:
		left := a.expression(n.Left, scope)
		right := a.expression(n.Right, scope)
		if !n.Operator.IsArithmetic() {
			return types.Bool
		}
		switch {
		case n.Operator == ast.OpAdd && (types.IsString(left) || types.IsString(right)):
			return types.String
		case types.IsFloat(left) || types.IsFloat(right):
			return types.Float
		default:
			return types.Int
		}
	case *ast.Assignment:
		a.expression(n.Right, scope)
		return a.expression(n.Left, scope)
	case *ast.Parenthesized:
		return a.expression(n.Expression, scope)
	case *ast.BoolQuery:
		if n.Target == nil {
			a.report(n, "boolean query requires a target")
		} else {
			a.expression(n.Target, scope)
		}
		if n.Query != nil {
			a.expression(n.Query, scope)
		}
		return types.Bool
	case *ast.UnboundParameter:
		return a.unbound(n, scope)
	case *ast.AtomLiteral:
		a.deferred = append(a.deferred, func() {
			if decl, owner := scope.Lookup(n.Name); decl != nil {
				if atom, ok := decl.(*ast.AtomDeclaration); ok {
					a.table.Set(n, KeyDecl, atom)
					a.table.Set(n, KeyScope, owner)
				}
			}
		})
		return types.Atom
	case *ast.PredicateCall:
		for _, arg := range n.Arguments {
			a.expression(arg, scope)
		}
		a.deferred = append(a.deferred, func() {
			if decl, owner := scope.Lookup(n.Functor); decl != nil {
				switch decl.(type) {
				case *ast.FactDeclaration, *ast.RuleDeclaration:
					a.table.Set(n, KeyDecl, decl)
					a.table.Set(n, KeyScope, owner)
				}
			}
		})
		return types.Bool
	case *ast.LogicParenthesized:
		a.expression(n.Expression, scope)
		return types.Bool
	case *ast.LogicNot:
		a.expression(n.Operand, scope)
		return types.Bool
	case *ast.LogicBinary:
		a.expression(n.Left, scope)
		a.expression(n.Right, scope)
		return types.Bool
	default:
		a.report(node, "unsupported expression type: %s", node.NodeType())
		return types.Void
	}
}

// unbound declares a unification placeholder in the root scope, where the
// bound value will be written.
func (a *analyzer) unbound(param *ast.UnboundParameter, scope *Scope) types.Type {
	root := scope.Root()
	typ := a.resolveType(param.Type, scope)
	existing, ok := root.LookupLocal(param.Name)
	if !ok {
		root.Declare(param.Name, param)
	} else if _, reused := existing.(*ast.UnboundParameter); !reused {
		a.report(param, "%s is already declared in the root scope", param.Name)
	}
	a.table.Set(param, KeyScope, root)
	a.table.Set(param, KeyDecl, param)
	a.declTypes[param] = typ
	return typ
}
