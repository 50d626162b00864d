package logic

import (
	"go.uber.org/zap"

	"sigh/interpreter-go/pkg/ast"
	"sigh/interpreter-go/pkg/runtime"
	"sigh/interpreter-go/pkg/semantic"
	"sigh/interpreter-go/pkg/types"
)

// DefaultMaxDepth bounds nested rule resolution.
const DefaultMaxDepth = 256

// Evaluator evaluates the plain expressions found in predicate arguments.
type Evaluator interface {
	Evaluate(expr ast.Expression, env *runtime.Environment) (runtime.Value, error)
}

// Resolver stores facts and rules in frames and answers boolean queries over
// them. It holds no frame state of its own; every call receives the active
// frame explicitly.
type Resolver struct {
	attrs    semantic.Attributes
	eval     Evaluator
	logger   *zap.Logger
	maxDepth int
}

type Option func(*Resolver)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithMaxDepth(depth int) Option {
	return func(r *Resolver) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

func NewResolver(attrs semantic.Attributes, eval Evaluator, opts ...Option) *Resolver {
	r := &Resolver{
		attrs:    attrs,
		eval:     eval,
		logger:   zap.NewNop(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) MaxDepth() int { return r.maxDepth }

func (r *Resolver) scopeOf(node ast.Node) (*semantic.Scope, error) {
	scope, ok := semantic.ScopeOf(r.attrs, node)
	if !ok {
		return nil, runtime.NewFault(runtime.EvaluationFault, "%s has no scope attribute", node.NodeType())
	}
	return scope, nil
}

func (r *Resolver) typeOf(node ast.Node) types.Type {
	typ, ok := semantic.TypeOf(r.attrs, node)
	if !ok {
		return types.Void
	}
	return typ
}

// storeFor returns the predicate store of the frame instantiating the scope a
// declaration belongs to.
func (r *Resolver) storeFor(node ast.Node, env *runtime.Environment) (*runtime.PredicateStore, error) {
	scope, err := r.scopeOf(node)
	if err != nil {
		return nil, err
	}
	frame, ok := env.Lookup(scope)
	if !ok {
		return nil, runtime.NewFault(runtime.EvaluationFault, "no active frame for %s", scope)
	}
	return frame.Predicates(), nil
}

// DeclareAtom records the atom in its scope's frame. Declaring it again is a
// no-op.
func (r *Resolver) DeclareAtom(decl *ast.AtomDeclaration, env *runtime.Environment) error {
	scope, err := r.scopeOf(decl)
	if err != nil {
		return err
	}
	r.logger.Debug("atom declared", zap.String("atom", decl.Name))
	return env.Write(scope, decl.Name, runtime.BoolValue{Val: true}, types.Bool)
}

// DeclareFact evaluates the arguments to a ground tuple and appends it to the
// functor's facts.
func (r *Resolver) DeclareFact(decl *ast.FactDeclaration, env *runtime.Environment) error {
	tuple := make([]runtime.Value, len(decl.Arguments))
	for idx, arg := range decl.Arguments {
		if param, ok := unwrapParens(arg).(*ast.UnboundParameter); ok {
			return &runtime.Fault{
				Kind:    runtime.NonGroundFact,
				Message: "fact " + decl.Functor + " cannot hold unbound parameter " + param.Name,
				Node:    arg,
			}
		}
		val, err := r.eval.Evaluate(arg, env)
		if err != nil {
			return err
		}
		if val.Kind() == runtime.KindVoid {
			return &runtime.Fault{Kind: runtime.NonGroundFact, Message: "fact " + decl.Functor + " argument has no value", Node: arg}
		}
		tuple[idx] = val
	}
	store, err := r.storeFor(decl, env)
	if err != nil {
		return err
	}
	if err := store.AddFact(decl.Functor, tuple); err != nil {
		return err
	}
	r.logger.Debug("fact declared", zap.String("functor", decl.Functor), zap.Int("arity", len(tuple)))
	return nil
}

func unwrapParens(expr ast.Expression) ast.Expression {
	for {
		paren, ok := expr.(*ast.Parenthesized)
		if !ok {
			return expr
		}
		expr = paren.Expression
	}
}

// DeclareRule registers the rule for its functor.
func (r *Resolver) DeclareRule(decl *ast.RuleDeclaration, env *runtime.Environment) error {
	body, ok := semantic.BodyScopeOf(r.attrs, decl)
	if !ok {
		return runtime.NewFault(runtime.EvaluationFault, "rule %s has no body scope", decl.Functor)
	}
	store, err := r.storeFor(decl, env)
	if err != nil {
		return err
	}
	if err := store.SetRule(decl.Functor, &runtime.Rule{Decl: decl, Scope: body, Env: env}); err != nil {
		return err
	}
	r.logger.Debug("rule registered", zap.String("functor", decl.Functor), zap.Int("arity", len(decl.Parameters)))
	return nil
}

// Query resolves the query expression and stores the outcome in the target.
func (r *Resolver) Query(node *ast.BoolQuery, env *runtime.Environment) (runtime.Value, error) {
	expr, ok := node.Query.(ast.LogicExpression)
	if !ok {
		kind := ast.NodeType("nothing")
		if node.Query != nil {
			kind = node.Query.NodeType()
		}
		return nil, &runtime.Fault{Kind: runtime.InvalidQuery, Message: "cannot query " + string(kind), Node: node}
	}
	targetType := r.typeOf(node.Target)
	if !types.IsAssignable(types.Bool, targetType) {
		return nil, &runtime.Fault{
			Kind:    runtime.TypeMismatch,
			Message: "query target " + node.Target.Name + " has type " + targetType.Name(),
			Node:    node.Target,
		}
	}
	result, err := r.Resolve(expr, env)
	if err != nil {
		return nil, err
	}
	scope, err := r.scopeOf(node.Target)
	if err != nil {
		return nil, err
	}
	value := runtime.BoolValue{Val: result}
	if err := env.Write(scope, node.Target.Name, value, targetType); err != nil {
		return nil, err
	}
	r.logger.Debug("query resolved", zap.String("target", node.Target.Name), zap.Bool("result", result))
	return value, nil
}

// Resolve evaluates a logic expression to a boolean against the active frame.
func (r *Resolver) Resolve(expr ast.LogicExpression, env *runtime.Environment) (bool, error) {
	return r.resolve(expr, env, 0)
}

func (r *Resolver) resolve(expr ast.LogicExpression, env *runtime.Environment, depth int) (bool, error) {
	if depth > r.maxDepth {
		return false, &runtime.Fault{
			Kind:    runtime.EvaluationFault,
			Message: "logic resolution exceeded maximum depth",
			Node:    expr,
		}
	}
	switch n := expr.(type) {
	case *ast.AtomLiteral:
		return r.resolveAtom(n), nil
	case *ast.PredicateCall:
		return r.resolveCall(n, env, depth)
	case *ast.LogicParenthesized:
		return r.resolve(n.Expression, env, depth)
	case *ast.LogicNot:
		ok, err := r.resolve(n.Operand, env, depth)
		return !ok, err
	case *ast.LogicBinary:
		// Both sides are always resolved.
		left, err := r.resolve(n.Left, env, depth)
		if err != nil {
			return false, err
		}
		right, err := r.resolve(n.Right, env, depth)
		if err != nil {
			return false, err
		}
		if n.Operator == ast.LogicAnd {
			return left && right, nil
		}
		return left || right, nil
	default:
		return false, &runtime.Fault{Kind: runtime.InvalidQuery, Message: "unsupported logic expression", Node: expr}
	}
}

// resolveAtom is true when the atom names a declaration reachable through the
// lexical scope chain, whether or not that declaration has run yet.
func (r *Resolver) resolveAtom(atom *ast.AtomLiteral) bool {
	decl, ok := semantic.DeclOf(r.attrs, atom)
	if !ok {
		return false
	}
	_, isAtom := decl.(*ast.AtomDeclaration)
	return isAtom
}

func (r *Resolver) resolveCall(call *ast.PredicateCall, env *runtime.Environment, depth int) (bool, error) {
	if _, ok := semantic.DeclOf(r.attrs, call); !ok {
		return false, nil
	}
	scope, ok := semantic.ScopeOf(r.attrs, call)
	if !ok {
		return false, nil
	}
	frame, ok := env.Lookup(scope)
	if !ok || !frame.HasPredicates() {
		return false, nil
	}
	entry, ok := frame.Predicates().Lookup(call.Functor)
	if !ok {
		return false, nil
	}

	if entry.Kind == runtime.PredicateFacts {
		args, err := r.evaluateArguments(call.Arguments, env)
		if err != nil {
			return false, err
		}
		return entry.Contains(args), nil
	}

	rule := entry.Rule
	params := rule.Decl.Parameters
	if len(params) != len(call.Arguments) {
		return false, nil
	}
	for idx, arg := range call.Arguments {
		if !types.IsAssignable(r.typeOf(arg), r.typeOf(params[idx])) {
			return false, nil
		}
	}
	args, err := r.evaluateArguments(call.Arguments, env)
	if err != nil {
		return false, err
	}
	parent := rule.Env
	if parent == nil {
		parent = frame
	}
	ruleEnv := runtime.NewEnvironment(rule.Scope, parent)
	for idx, param := range params {
		if err := ruleEnv.Write(rule.Scope, param.Name, args[idx], r.typeOf(param)); err != nil {
			return false, err
		}
	}
	return r.resolve(rule.Decl.Body, ruleEnv, depth+1)
}

func (r *Resolver) evaluateArguments(args []ast.Expression, env *runtime.Environment) ([]runtime.Value, error) {
	values := make([]runtime.Value, len(args))
	for idx, arg := range args {
		val, err := r.eval.Evaluate(arg, env)
		if err != nil {
			return nil, err
		}
		values[idx] = val
	}
	return values, nil
}
