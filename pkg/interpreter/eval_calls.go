package interpreter

import (
	"fmt"

	"go.uber.org/zap"

	"sigh/interpreter-go/pkg/ast"
	"sigh/interpreter-go/pkg/runtime"
	"sigh/interpreter-go/pkg/semantic"
	"sigh/interpreter-go/pkg/types"
)

// evaluateCall evaluates the callee, then the arguments left to right, then
// performs the call.
func (i *Interpreter) evaluateCall(call *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(call.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		val, err := i.evaluateExpression(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}

	switch fn := callee.(type) {
	case runtime.NullValue:
		return nil, runtime.NewFault(runtime.NullReference, "calling a null function")
	case *runtime.NativeFunctionValue:
		if err := checkArity(fn.Name, fn.Arity, len(args)); err != nil {
			return nil, err
		}
		return fn.Impl(args)
	case runtime.ConstructorValue:
		return i.construct(fn.Decl, args)
	case runtime.FunctionValue:
		return i.callFunction(fn.Decl, args, env)
	default:
		return nil, runtime.NewFault(runtime.TypeMismatch, "%s is not callable", callee.Kind())
	}
}

func checkArity(name string, want, got int) error {
	if want != got {
		return runtime.NewFault(runtime.ArityMismatch, "%s expects %d arguments, got %d", name, want, got)
	}
	return nil
}

// construct builds a fresh struct, binding fields positionally in declaration
// order.
func (i *Interpreter) construct(decl *ast.StructDeclaration, args []runtime.Value) (runtime.Value, error) {
	if err := checkArity("$"+decl.Name, len(decl.Fields), len(args)); err != nil {
		return nil, err
	}
	instance := runtime.NewStructValue(decl)
	for idx, field := range decl.Fields {
		instance.Fields[field.Name] = runtime.Widen(args[idx], i.typeOf(field))
	}
	return instance, nil
}

// callFunction runs a user function in a frame chained to the root frame, so
// its body sees its parameters and the top-level bindings only.
func (i *Interpreter) callFunction(decl *ast.FunctionDeclaration, args []runtime.Value, env *runtime.Environment) (runtime.Value, error) {
	if err := checkArity(decl.Name, len(decl.Parameters), len(args)); err != nil {
		return nil, err
	}
	scope, ok := semantic.BodyScopeOf(i.attrs, decl)
	if !ok {
		return nil, fmt.Errorf("function %s has no body scope", decl.Name)
	}
	frame := runtime.NewEnvironment(scope, env.Root())
	for idx, param := range decl.Parameters {
		if err := frame.Write(scope, param.Name, args[idx], i.typeOf(param)); err != nil {
			return nil, err
		}
	}
	i.logger.Debug("call", zap.String("function", decl.Name), zap.Int("args", len(args)))

	c, err := i.evaluateStatement(decl.Body, frame)
	if err != nil {
		return nil, err
	}
	if !c.returning {
		return runtime.Void, nil
	}
	if fnType, ok := i.typeOf(decl).(types.FunctionType); ok {
		return runtime.Widen(c.value, fnType.Return), nil
	}
	return c.value, nil
}
