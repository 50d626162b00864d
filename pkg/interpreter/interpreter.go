package interpreter

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"sigh/interpreter-go/pkg/ast"
	"sigh/interpreter-go/pkg/logic"
	"sigh/interpreter-go/pkg/runtime"
	"sigh/interpreter-go/pkg/semantic"
	"sigh/interpreter-go/pkg/types"
)

// Interpreter walks an attributed syntax tree. It keeps no current-frame
// state: every evaluation method takes the active frame as a parameter.
type Interpreter struct {
	attrs    semantic.Attributes
	stdout   io.Writer
	logger   *zap.Logger
	maxDepth int
	resolver *logic.Resolver
	print    *runtime.NativeFunctionValue
}

type Option func(*Interpreter)

// WithStdout redirects the output of print.
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) {
		if w != nil {
			i.stdout = w
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithMaxResolutionDepth bounds how deeply rules may call other rules.
func WithMaxResolutionDepth(depth int) Option {
	return func(i *Interpreter) {
		i.maxDepth = depth
	}
}

// New returns an interpreter reading scope, decl and type attributes from attrs.
func New(attrs semantic.Attributes, opts ...Option) *Interpreter {
	i := &Interpreter{
		attrs:    attrs,
		stdout:   os.Stdout,
		logger:   zap.NewNop(),
		maxDepth: logic.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.resolver = logic.NewResolver(attrs, i, logic.WithLogger(i.logger), logic.WithMaxDepth(i.maxDepth))
	i.print = &runtime.NativeFunctionValue{
		Name:  semantic.PrintFunction,
		Arity: 1,
		Impl: func(args []runtime.Value) (runtime.Value, error) {
			text := runtime.DisplayString(args[0])
			if _, err := fmt.Fprintln(i.stdout, text); err != nil {
				return nil, err
			}
			return runtime.StringValue{Val: text}, nil
		},
	}
	return i
}

// Result is the outcome of running a program.
type Result struct {
	// Value is the value of a top-level return, or Void.
	Value runtime.Value
	// Returned reports whether evaluation ended on a top-level return.
	Returned bool
	// Root is the root frame, holding top-level bindings and predicates.
	Root *runtime.Environment
}

// Run evaluates the root's statements in order in a fresh root frame.
func (i *Interpreter) Run(root *ast.Root) (Result, error) {
	scope, ok := semantic.ScopeOf(i.attrs, root)
	if !ok {
		return Result{}, runtime.NewFault(runtime.EvaluationFault, "root has no scope attribute")
	}
	env := runtime.NewEnvironment(scope, nil)
	result := Result{Value: runtime.Void, Root: env}
	for _, stmt := range root.Statements {
		c, err := i.evaluateStatement(stmt, env)
		if err != nil {
			return result, err
		}
		if c.returning {
			result.Value = c.value
			result.Returned = true
			break
		}
	}
	i.logger.Debug("program finished",
		zap.Bool("returned", result.Returned),
		zap.String("value", runtime.DisplayString(result.Value)))
	return result, nil
}

// Evaluate evaluates one expression in env.
func (i *Interpreter) Evaluate(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	return i.evaluateExpression(expr, env)
}

// Resolver exposes the logic resolver bound to this interpreter.
func (i *Interpreter) Resolver() *logic.Resolver {
	return i.resolver
}

func (i *Interpreter) typeOf(node ast.Node) types.Type {
	typ, ok := semantic.TypeOf(i.attrs, node)
	if !ok {
		return types.Void
	}
	return typ
}

func (i *Interpreter) scopeOf(node ast.Node) (*semantic.Scope, error) {
	scope, ok := semantic.ScopeOf(i.attrs, node)
	if !ok {
		return nil, runtime.NewFault(runtime.EvaluationFault, "%s has no scope attribute", node.NodeType())
	}
	return scope, nil
}
