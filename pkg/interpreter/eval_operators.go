package interpreter

import (
	"fmt"
	"math"

	"sigh/interpreter-go/pkg/ast"
	"sigh/interpreter-go/pkg/runtime"
	"sigh/interpreter-go/pkg/types"
)

func (i *Interpreter) evaluateUnary(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	if expr.Operator != ast.UnaryNot {
		return nil, fmt.Errorf("unsupported unary operator %s", expr.Operator)
	}
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	b, ok := operand.(runtime.BoolValue)
	if !ok {
		return nil, runtime.NewFault(runtime.TypeMismatch, "! requires a Bool, got %s", operand.Kind())
	}
	return runtime.BoolValue{Val: !b.Val}, nil
}

func (i *Interpreter) evaluateBinary(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	if expr.Operator == ast.OpAnd || expr.Operator == ast.OpOr {
		return i.evaluateShortCircuit(expr, env)
	}
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	leftType, rightType := i.typeOf(expr.Left), i.typeOf(expr.Right)

	switch {
	case expr.Operator == ast.OpAdd && (types.IsString(leftType) || types.IsString(rightType)):
		return runtime.StringValue{Val: runtime.DisplayString(left) + runtime.DisplayString(right)}, nil
	case expr.Operator == ast.OpEqual:
		return runtime.BoolValue{Val: runtime.NumericEqual(left, right)}, nil
	case expr.Operator == ast.OpNotEqual:
		return runtime.BoolValue{Val: !runtime.NumericEqual(left, right)}, nil
	case expr.Operator.IsArithmetic(), expr.Operator.IsComparison():
		if types.IsFloat(leftType) || types.IsFloat(rightType) {
			return floatOperation(expr.Operator, left, right)
		}
		return intOperation(expr.Operator, left, right)
	default:
		return nil, fmt.Errorf("unsupported binary operator %s", expr.Operator)
	}
}

// evaluateShortCircuit only evaluates the right operand when the left one
// does not decide the result.
func (i *Interpreter) evaluateShortCircuit(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateBool(expr.Left, env)
	if err != nil {
		return nil, err
	}
	if expr.Operator == ast.OpAnd && !left {
		return runtime.BoolValue{Val: false}, nil
	}
	if expr.Operator == ast.OpOr && left {
		return runtime.BoolValue{Val: true}, nil
	}
	right, err := i.evaluateBool(expr.Right, env)
	if err != nil {
		return nil, err
	}
	return runtime.BoolValue{Val: right}, nil
}

func (i *Interpreter) evaluateBool(expr ast.Expression, env *runtime.Environment) (bool, error) {
	val, err := i.evaluateExpression(expr, env)
	if err != nil {
		return false, err
	}
	b, ok := val.(runtime.BoolValue)
	if !ok {
		return false, runtime.NewFault(runtime.TypeMismatch, "expected a Bool operand, got %s", val.Kind())
	}
	return b.Val, nil
}

func floatOperation(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, error) {
	l, lok := runtime.AsFloat(left)
	r, rok := runtime.AsFloat(right)
	if !lok || !rok {
		return nil, runtime.NewFault(runtime.TypeMismatch, "%s requires numeric operands, got %s and %s", op, left.Kind(), right.Kind())
	}
	switch op {
	case ast.OpAdd:
		return runtime.FloatValue{Val: l + r}, nil
	case ast.OpSubtract:
		return runtime.FloatValue{Val: l - r}, nil
	case ast.OpMultiply:
		return runtime.FloatValue{Val: l * r}, nil
	case ast.OpDivide:
		return runtime.FloatValue{Val: l / r}, nil
	case ast.OpRemain:
		return runtime.FloatValue{Val: math.Mod(l, r)}, nil
	case ast.OpLess:
		return runtime.BoolValue{Val: l < r}, nil
	case ast.OpLessEq:
		return runtime.BoolValue{Val: l <= r}, nil
	case ast.OpGreater:
		return runtime.BoolValue{Val: l > r}, nil
	case ast.OpGreatEq:
		return runtime.BoolValue{Val: l >= r}, nil
	}
	return nil, fmt.Errorf("unsupported numeric operator %s", op)
}

func intOperation(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, error) {
	lv, lok := left.(runtime.IntValue)
	rv, rok := right.(runtime.IntValue)
	if !lok || !rok {
		return nil, runtime.NewFault(runtime.TypeMismatch, "%s requires numeric operands, got %s and %s", op, left.Kind(), right.Kind())
	}
	l, r := lv.Val, rv.Val
	switch op {
	case ast.OpAdd:
		return runtime.IntValue{Val: l + r}, nil
	case ast.OpSubtract:
		return runtime.IntValue{Val: l - r}, nil
	case ast.OpMultiply:
		return runtime.IntValue{Val: l * r}, nil
	case ast.OpDivide:
		if r == 0 {
			return nil, runtime.NewFault(runtime.ArithmeticFault, "integer division by zero")
		}
		return runtime.IntValue{Val: l / r}, nil
	case ast.OpRemain:
		if r == 0 {
			return nil, runtime.NewFault(runtime.ArithmeticFault, "integer remainder by zero")
		}
		return runtime.IntValue{Val: l % r}, nil
	case ast.OpLess:
		return runtime.BoolValue{Val: l < r}, nil
	case ast.OpLessEq:
		return runtime.BoolValue{Val: l <= r}, nil
	case ast.OpGreater:
		return runtime.BoolValue{Val: l > r}, nil
	case ast.OpGreatEq:
		return runtime.BoolValue{Val: l >= r}, nil
	}
	return nil, fmt.Errorf("unsupported numeric operator %s", op)
}
