package logic

import (
	"fmt"

	"go.uber.org/zap"

	"sigh/interpreter-go/pkg/ast"
	"sigh/interpreter-go/pkg/runtime"
	"sigh/interpreter-go/pkg/types"
)

// Unify matches two predicate-shaped expressions position by position, left to
// right. A position with one unbound parameter binds that parameter in the
// root scope; two bound positions must hold equal values.
func (r *Resolver) Unify(node *ast.Unification, env *runtime.Environment) error {
	left, right := node.Left, node.Right
	if left.Functor != right.Functor {
		return &runtime.Fault{
			Kind:    runtime.UnificationMismatch,
			Message: fmt.Sprintf("cannot unify %s with %s", left.Functor, right.Functor),
			Node:    node,
		}
	}
	if len(left.Arguments) != len(right.Arguments) {
		return &runtime.Fault{
			Kind:    runtime.ArityMismatch,
			Message: fmt.Sprintf("%s has %d arguments on the left and %d on the right", left.Functor, len(left.Arguments), len(right.Arguments)),
			Node:    node,
		}
	}
	for idx := range left.Arguments {
		if err := r.unifyPosition(left.Arguments[idx], right.Arguments[idx], env); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) unifyPosition(left, right ast.Expression, env *runtime.Environment) error {
	leftParam, leftUnbound := left.(*ast.UnboundParameter)
	rightParam, rightUnbound := right.(*ast.UnboundParameter)
	switch {
	case leftUnbound && rightUnbound:
		return &runtime.Fault{
			Kind:    runtime.AmbiguousUnification,
			Message: fmt.Sprintf("%s and %s are both unbound", leftParam.Name, rightParam.Name),
			Node:    left,
		}
	case leftUnbound:
		return r.bind(leftParam, right, env)
	case rightUnbound:
		return r.bind(rightParam, left, env)
	}

	leftType, rightType := r.typeOf(left), r.typeOf(right)
	if !types.Comparable(leftType, rightType) {
		return &runtime.Fault{
			Kind:    runtime.UnificationMismatch,
			Message: fmt.Sprintf("cannot unify %s with %s", leftType.Name(), rightType.Name()),
			Node:    right,
		}
	}
	leftVal, err := r.eval.Evaluate(left, env)
	if err != nil {
		return err
	}
	rightVal, err := r.eval.Evaluate(right, env)
	if err != nil {
		return err
	}
	if !runtime.NumericEqual(leftVal, rightVal) {
		return &runtime.Fault{
			Kind:    runtime.UnificationMismatch,
			Message: fmt.Sprintf("%s does not unify with %s", runtime.DisplayString(leftVal), runtime.DisplayString(rightVal)),
			Node:    right,
		}
	}
	return nil
}

func (r *Resolver) bind(param *ast.UnboundParameter, expr ast.Expression, env *runtime.Environment) error {
	valueType, paramType := r.typeOf(expr), r.typeOf(param)
	if !types.IsAssignable(valueType, paramType) {
		return &runtime.Fault{
			Kind:    runtime.TypeMismatch,
			Message: fmt.Sprintf("cannot bind %s of type %s to %s", param.Name, paramType.Name(), valueType.Name()),
			Node:    param,
		}
	}
	val, err := r.eval.Evaluate(expr, env)
	if err != nil {
		return err
	}
	scope, err := r.scopeOf(param)
	if err != nil {
		return err
	}
	if err := env.Write(scope, param.Name, val, paramType); err != nil {
		return err
	}
	r.logger.Debug("unification bound", zap.String("name", param.Name), zap.String("value", runtime.DisplayString(val)))
	return nil
}
