package interpreter

import (
	"fmt"

	"sigh/interpreter-go/pkg/ast"
	"sigh/interpreter-go/pkg/runtime"
	"sigh/interpreter-go/pkg/semantic"
	"sigh/interpreter-go/pkg/types"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.expression(node, env)
	if err != nil {
		return nil, attachNode(err, node)
	}
	return val, nil
}

func (i *Interpreter) expression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.IntLiteral:
		return runtime.IntValue{Val: n.Value}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BoolLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NullLiteral:
		return runtime.Null, nil
	case *ast.AtomLiteral:
		return runtime.AtomValue{Name: n.Name}, nil
	case *ast.Reference:
		return i.evaluateReference(n, env)
	case *ast.Constructor:
		decl, ok := semantic.DeclOf(i.attrs, n)
		structDecl, isStruct := decl.(*ast.StructDeclaration)
		if !ok || !isStruct {
			return nil, fmt.Errorf("%s does not name a struct", n.Name)
		}
		return runtime.ConstructorValue{Decl: structDecl}, nil
	case *ast.ArrayLiteral:
		return i.evaluateArrayLiteral(n, env)
	case *ast.FieldAccess:
		return i.evaluateFieldAccess(n, env)
	case *ast.ArrayAccess:
		return i.evaluateArrayAccess(n, env)
	case *ast.FunctionCall:
		return i.evaluateCall(n, env)
	case *ast.UnaryExpression:
		return i.evaluateUnary(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinary(n, env)
	case *ast.Assignment:
		return i.evaluateAssignment(n, env)
	case *ast.Parenthesized:
		return i.evaluateExpression(n.Expression, env)
	case *ast.BoolQuery:
		return i.resolver.Query(n, env)
	case *ast.UnboundParameter:
		return nil, runtime.NewFault(runtime.EvaluationFault, "unbound parameter %s can only appear in a unification", n.Name)
	case ast.LogicExpression:
		ok, err := i.resolver.Resolve(n, env)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: ok}, nil
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", node.NodeType())
	}
}

func (i *Interpreter) evaluateReference(ref *ast.Reference, env *runtime.Environment) (runtime.Value, error) {
	decl, ok := semantic.DeclOf(i.attrs, ref)
	if !ok {
		return nil, fmt.Errorf("unresolved reference %s", ref.Name)
	}
	switch d := decl.(type) {
	case *ast.BuiltinDeclaration:
		if d.Kind == ast.BuiltinFunction {
			return i.print, nil
		}
		return runtime.TypeValue{Name: d.Name, Decl: d}, nil
	case *ast.FunctionDeclaration:
		return runtime.FunctionValue{Decl: d}, nil
	case *ast.StructDeclaration:
		return runtime.TypeValue{Name: d.Name, Decl: d}, nil
	}
	scope, err := i.scopeOf(ref)
	if err != nil {
		return nil, err
	}
	return env.Read(scope, ref.Name)
}

func (i *Interpreter) evaluateArrayLiteral(lit *ast.ArrayLiteral, env *runtime.Environment) (runtime.Value, error) {
	var element types.Type = types.Void
	if arr, ok := i.typeOf(lit).(types.ArrayType); ok {
		element = arr.Element
	}
	values := make([]runtime.Value, 0, len(lit.Elements))
	for _, el := range lit.Elements {
		val, err := i.evaluateExpression(el, env)
		if err != nil {
			return nil, err
		}
		values = append(values, runtime.Widen(val, element))
	}
	return &runtime.ArrayValue{Elements: values}, nil
}

func (i *Interpreter) evaluateFieldAccess(access *ast.FieldAccess, env *runtime.Environment) (runtime.Value, error) {
	stem, err := i.evaluateExpression(access.Stem, env)
	if err != nil {
		return nil, err
	}
	switch s := stem.(type) {
	case runtime.NullValue:
		return nil, runtime.NewFault(runtime.NullReference, "accessing field %s on null", access.Field)
	case *runtime.ArrayValue:
		if access.Field == "length" {
			return runtime.IntValue{Val: int64(len(s.Elements))}, nil
		}
	case *runtime.StructValue:
		if val, ok := s.Fields[access.Field]; ok {
			return val, nil
		}
	}
	return nil, runtime.NewFault(runtime.TypeMismatch, "%s has no field %s", stem.Kind(), access.Field)
}

func (i *Interpreter) evaluateArrayAccess(access *ast.ArrayAccess, env *runtime.Environment) (runtime.Value, error) {
	arr, idx, err := i.arrayAndIndex(access, env)
	if err != nil {
		return nil, err
	}
	return arr.Elements[idx], nil
}

// arrayAndIndex evaluates the array then the index and checks the bounds.
func (i *Interpreter) arrayAndIndex(access *ast.ArrayAccess, env *runtime.Environment) (*runtime.ArrayValue, int, error) {
	target, err := i.evaluateExpression(access.Array, env)
	if err != nil {
		return nil, 0, err
	}
	indexVal, err := i.evaluateExpression(access.Index, env)
	if err != nil {
		return nil, 0, err
	}
	var arr *runtime.ArrayValue
	switch t := target.(type) {
	case runtime.NullValue:
		return nil, 0, runtime.NewFault(runtime.NullReference, "indexing null array")
	case *runtime.ArrayValue:
		arr = t
	default:
		return nil, 0, runtime.NewFault(runtime.TypeMismatch, "cannot index %s", target.Kind())
	}
	index, ok := indexVal.(runtime.IntValue)
	if !ok {
		return nil, 0, runtime.NewFault(runtime.TypeMismatch, "array index must be an Int, got %s", indexVal.Kind())
	}
	if index.Val < 0 || index.Val >= int64(len(arr.Elements)) {
		return nil, 0, runtime.NewFault(runtime.IndexOutOfRange, "index %d out of bounds for length %d", index.Val, len(arr.Elements))
	}
	return arr, int(index.Val), nil
}

func (i *Interpreter) evaluateAssignment(assign *ast.Assignment, env *runtime.Environment) (runtime.Value, error) {
	switch target := assign.Left.(type) {
	case *ast.Reference:
		val, err := i.evaluateExpression(assign.Right, env)
		if err != nil {
			return nil, err
		}
		switch decl, _ := semantic.DeclOf(i.attrs, target); decl.(type) {
		case *ast.VarDeclaration, *ast.Parameter, *ast.UnboundParameter:
		default:
			return nil, fmt.Errorf("cannot assign to %s", target.Name)
		}
		scope, err := i.scopeOf(target)
		if err != nil {
			return nil, err
		}
		targetType := i.typeOf(target)
		if err := env.Write(scope, target.Name, val, targetType); err != nil {
			return nil, err
		}
		return runtime.Widen(val, targetType), nil
	case *ast.ArrayAccess:
		arr, idx, err := i.arrayAndIndex(target, env)
		if err != nil {
			return nil, err
		}
		val, err := i.evaluateExpression(assign.Right, env)
		if err != nil {
			return nil, err
		}
		val = runtime.Widen(val, i.typeOf(target))
		arr.Elements[idx] = val
		return val, nil
	case *ast.FieldAccess:
		stem, err := i.evaluateExpression(target.Stem, env)
		if err != nil {
			return nil, err
		}
		val, err := i.evaluateExpression(assign.Right, env)
		if err != nil {
			return nil, err
		}
		switch s := stem.(type) {
		case runtime.NullValue:
			return nil, runtime.NewFault(runtime.NullReference, "assigning field %s on null", target.Field)
		case *runtime.StructValue:
			if _, ok := s.Fields[target.Field]; ok {
				val = runtime.Widen(val, i.typeOf(target))
				s.Fields[target.Field] = val
				return val, nil
			}
		}
		return nil, runtime.NewFault(runtime.TypeMismatch, "%s has no assignable field %s", stem.Kind(), target.Field)
	default:
		return nil, fmt.Errorf("cannot assign to %s", assign.Left.NodeType())
	}
}
